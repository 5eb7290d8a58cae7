package kpi

import (
	"github.com/wonny/pulseboard/backend/internal/contracts"
	"github.com/wonny/pulseboard/backend/internal/field"
)

var denialWords = []string{"denied", "deny", "denial", "rejected", "reject", "rejection"}

// Healthcare computes the medical billing bundle. Each row with a billed
// amount is one claim line.
func (c *Calculator) Healthcare(rows []contracts.Record) contracts.HealthcareKPIs {
	var (
		out        contracts.HealthcareKPIs
		denied     int
		highCost   int
		patients   = make(map[string]struct{})
		byProvider = newEntities()
		recency    anchor
		charges    []dated
	)

	for _, rec := range rows {
		ix := field.NewIndex(rec)
		charged, ok := ix.Number(field.Healthcare.Charged)
		if !ok {
			continue
		}

		out.ClaimCount++
		out.TotalCharged += charged
		if paid, ok := ix.Number(field.Healthcare.Paid); ok {
			out.TotalPaid += paid
		}
		if charged >= c.th.Healthcare.HighCostCharge {
			highCost++
		}
		if ix.Bool(field.Healthcare.DeniedFlag) ||
			containsAny(keywordText(ix.String(field.Healthcare.Status)), denialWords) {
			denied++
		}
		if p := ix.String(field.Healthcare.Patient); p != "" {
			patients[p] = struct{}{}
		}

		at, hasDate := ix.Date(field.Healthcare.Date)
		if hasDate {
			recency.observe(at)
			charges = append(charges, dated{at: at, value: charged})
		}
		byProvider.add(ix.String(field.Healthcare.Provider), charged, at, hasDate)
	}

	out.UniquePatients = float64(len(patients))
	out.UniqueProviders = float64(byProvider.len())
	out.DenialRate = pct(float64(denied), out.ClaimCount)
	out.HighCostShare = pct(float64(highCost), out.ClaimCount)
	out.BillingEfficiency = pct(out.TotalPaid, out.TotalCharged)
	out.AvgCharge = safeDiv(out.TotalCharged, out.ClaimCount)
	out.Top3ProviderShare = topShare(byProvider.ranked(), 3)

	if recency.ok {
		out.ChargesLast30d, _ = windowSums(recency, charges, c.th.WindowDays)
	}

	sanitize(&out)
	return out
}
