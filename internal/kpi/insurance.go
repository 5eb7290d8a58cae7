package kpi

import (
	"github.com/wonny/pulseboard/backend/internal/contracts"
	"github.com/wonny/pulseboard/backend/internal/field"
)

var openClaimWords = []string{
	"open", "opened", "reopened", "pending", "submitted", "in review", "under review", "in progress",
}

// Insurance computes the policy and claims bundle.
// A row counts as a claim when it carries a positive claim amount; premium
// rows and claim rows may be mixed in one dataset.
func (c *Calculator) Insurance(rows []contracts.Record) contracts.InsuranceKPIs {
	var (
		out      contracts.InsuranceKPIs
		open     int
		severe   int
		policies = make(map[string]struct{})
		byPolicy = newEntities()
		recency  anchor
		claims   []dated
	)

	// Pass 1
	for _, rec := range rows {
		ix := field.NewIndex(rec)
		premium, hasPremium := ix.Number(field.Insurance.Premium)
		claim, hasClaim := ix.Number(field.Insurance.Claim)
		if !hasPremium && !hasClaim {
			continue
		}

		policy := ix.String(field.Insurance.Policy)
		if policy != "" {
			policies[policy] = struct{}{}
		}
		if hasPremium {
			out.TotalPremium += premium
		}

		at, hasDate := ix.Date(field.Insurance.Date)
		if hasDate {
			recency.observe(at)
		}

		if !hasClaim || claim <= 0 {
			continue
		}
		out.ClaimCount++
		out.TotalClaims += claim
		if claim >= c.th.Insurance.HighSeverityClaim {
			severe++
		}
		if containsAny(keywordText(ix.String(field.Insurance.ClaimStatus)), openClaimWords) {
			open++
		}
		byPolicy.add(policy, claim, at, hasDate)
		if hasDate {
			claims = append(claims, dated{at: at, value: claim})
		}
	}

	out.PolicyCount = float64(len(policies))
	out.LossRatio = pct(out.TotalClaims, out.TotalPremium)
	out.OpenClaimRate = pct(float64(open), out.ClaimCount)
	out.HighSeverityShare = pct(float64(severe), out.ClaimCount)
	out.AvgClaimAmount = safeDiv(out.TotalClaims, out.ClaimCount)
	out.Top10PolicyClaimShare = share(topSum(byPolicy.ranked(), 10), out.TotalClaims)

	// Pass 2
	if recency.ok {
		cur, prior := windowSums(recency, claims, c.th.WindowDays)
		out.ClaimsLast30d = cur
		out.ClaimsGrowthRate = growth(cur, prior)
	}

	sanitize(&out)
	return out
}
