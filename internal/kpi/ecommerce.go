package kpi

import (
	"math"
	"time"

	"github.com/wonny/pulseboard/backend/internal/contracts"
	"github.com/wonny/pulseboard/backend/internal/field"
)

var refundWords = []string{
	"refunded", "refund", "returned", "return", "cancelled", "canceled", "chargeback", "voided",
}

// Ecommerce computes the order bundle.
//
// Cohorts are relative to the anchor: a customer is new when its first order
// falls in the trailing window, returning when it ordered in the window after
// an earlier first order, and at risk once its last order is at least
// InactivityDays old.
func (c *Calculator) Ecommerce(rows []contracts.Record) contracts.EcommerceKPIs {
	var (
		out        contracts.EcommerceKPIs
		refunds    int
		byCustomer = newEntities()
		recency    anchor
		orders     []dated
	)

	// Pass 1
	for _, rec := range rows {
		ix := field.NewIndex(rec)
		amount, ok := ix.Number(field.Ecommerce.Amount)
		if !ok {
			continue
		}

		out.OrderCount++
		out.TotalRevenue += amount
		if containsAny(keywordText(ix.String(field.Ecommerce.Status)), refundWords) {
			refunds++
		}

		at, hasDate := ix.Date(field.Ecommerce.Date)
		if hasDate {
			recency.observe(at)
			orders = append(orders, dated{at: at, value: amount})
		}
		byCustomer.add(ix.String(field.Ecommerce.Customer), amount, at, hasDate)
	}

	var repeat int
	for _, e := range byCustomer.order {
		if e.count > 1 {
			repeat++
		}
	}

	ranked := byCustomer.ranked()
	out.UniqueCustomers = float64(byCustomer.len())
	out.AvgOrderValue = safeDiv(out.TotalRevenue, out.OrderCount)
	out.RepeatCustomerRate = pct(float64(repeat), out.UniqueCustomers)
	out.RefundRate = pct(float64(refunds), out.OrderCount)
	out.Top1CustomerShare = topShare(ranked, 1)
	out.Top3CustomerShare = topShare(ranked, 3)
	out.Top10CustomerShare = topShare(ranked, 10)

	// Pass 2
	if recency.ok {
		days := c.th.WindowDays
		cur, prior := windowSums(recency, orders, days)
		out.RevenueLast30d = cur
		out.RevenueGrowthRate = growth(cur, prior)

		for _, e := range byCustomer.order {
			if !e.dated {
				continue
			}
			switch {
			case recency.inCurrent(e.first, days):
				out.NewCustomers++
			case recency.inCurrent(e.last, days):
				out.ReturningCustomers++
			}
			if recency.ageDays(e.last) >= float64(c.th.Ecommerce.InactivityDays) {
				out.AtRiskCustomers++
				out.AtRiskRevenue += e.total
			}
		}

		out.WeeklyOrderVolatility = weeklyVolatility(orders)
	}

	sanitize(&out)
	return out
}

// weeklyVolatility is the coefficient of variation (population stdev / mean)
// of order counts per ISO week, over every week from the first to the last
// order. Fewer than two weeks yields 0.
func weeklyVolatility(orders []dated) float64 {
	if len(orders) == 0 {
		return 0
	}

	counts := make(map[time.Time]float64)
	first := isoWeekStart(orders[0].at)
	last := first
	for _, o := range orders {
		w := isoWeekStart(o.at)
		counts[w]++
		if w.Before(first) {
			first = w
		}
		if w.After(last) {
			last = w
		}
	}

	var buckets []float64
	for w := first; !w.After(last); w = w.AddDate(0, 0, 7) {
		buckets = append(buckets, counts[w])
	}
	if len(buckets) < 2 {
		return 0
	}

	var sum float64
	for _, b := range buckets {
		sum += b
	}
	mean := sum / float64(len(buckets))

	var sq float64
	for _, b := range buckets {
		sq += (b - mean) * (b - mean)
	}
	return safeDiv(math.Sqrt(sq/float64(len(buckets))), mean)
}
