package kpi

import (
	"math"

	"github.com/wonny/pulseboard/backend/internal/contracts"
	"github.com/wonny/pulseboard/backend/internal/field"
)

// Finance computes the transaction ledger bundle
// ⭐ SSOT: 재무 KPI 계산은 여기서만
func (c *Calculator) Finance(rows []contracts.Record) contracts.FinanceKPIs {
	var (
		out       contracts.FinanceKPIs
		absSum    float64
		fraud     int
		highValue int
		accounts  = make(map[string]struct{})
		recency   anchor
		inflows   []dated
		outflows  []dated
	)

	// Pass 1: accumulate
	for _, rec := range rows {
		ix := field.NewIndex(rec)
		amount, ok := ix.Number(field.Finance.Amount)
		if !ok {
			continue
		}
		abs := math.Abs(amount)

		dir := financeLadder.Classify(ix)
		if dir == Negative {
			out.TotalOutflow += abs
		} else {
			out.TotalInflow += abs
		}

		out.TxnCount++
		absSum += abs
		if abs >= c.th.Finance.HighValueAmount {
			highValue++
		}
		if ix.Bool(field.Finance.FraudFlag) || ix.String(field.Finance.FraudRule) != "" {
			fraud++
		}
		if acct := ix.String(field.Finance.Account); acct != "" {
			accounts[acct] = struct{}{}
		}

		if at, ok := ix.Date(field.Finance.Date); ok {
			recency.observe(at)
			if dir == Negative {
				outflows = append(outflows, dated{at: at, value: abs})
			} else {
				inflows = append(inflows, dated{at: at, value: abs})
			}
		}
	}

	out.NetCashFlow = out.TotalInflow - out.TotalOutflow
	out.AvgTxnAmount = safeDiv(absSum, out.TxnCount)
	out.UniqueAccounts = float64(len(accounts))
	out.FraudRate = pct(float64(fraud), out.TxnCount)
	out.HighValueTxnShare = pct(float64(highValue), out.TxnCount)

	// Pass 2: windows relative to the newest transaction
	if recency.ok {
		days := c.th.WindowDays
		in, _ := windowSums(recency, inflows, days)
		outCur, outPrior := windowSums(recency, outflows, days)
		out.InflowLast30d = in
		out.OutflowLast30d = outCur
		out.NetFlowLast30d = in - outCur
		out.OutflowGrowthRate = growth(outCur, outPrior)
	}

	sanitize(&out)
	return out
}
