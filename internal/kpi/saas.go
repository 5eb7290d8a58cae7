package kpi

import (
	"time"

	"github.com/wonny/pulseboard/backend/internal/contracts"
	"github.com/wonny/pulseboard/backend/internal/field"
)

// SaaS computes the subscription bundle.
//
// Periods are calendar months: the anchor's month is current, the month
// before it is previous. A customer is active in a month when its MRR there is
// positive. Without any dated row every row is treated as current and the
// cohort metrics stay zero. Once any row is dated, undated rows belong to no
// period and are left out of every metric.
func (c *Calculator) SaaS(rows []contracts.Record) contracts.SaaSKPIs {
	type observation struct {
		customer string
		mrr      float64
		month    time.Time
		dated    bool
	}

	var (
		out     contracts.SaaSKPIs
		obs     []observation
		recency anchor
	)

	// Pass 1: resolve and find the newest billing period
	for _, rec := range rows {
		ix := field.NewIndex(rec)
		mrr, ok := ix.Number(field.SaaS.MRR)
		if !ok {
			continue
		}
		customer := ix.String(field.SaaS.Customer)
		if customer == "" {
			continue
		}
		o := observation{customer: customer, mrr: mrr}
		if at, ok := ix.Date(field.SaaS.Date); ok {
			recency.observe(at)
			o.month = monthKey(at)
			o.dated = true
		}
		obs = append(obs, o)
	}

	// Pass 2: bucket into current and previous month per customer
	current := newEntities()
	previous := newEntities()
	if recency.ok {
		curMonth := monthKey(recency.at)
		prevMonth := curMonth.AddDate(0, -1, 0)
		for _, o := range obs {
			switch {
			case o.dated && o.month.Equal(curMonth):
				current.add(o.customer, o.mrr, o.month, true)
			case o.dated && o.month.Equal(prevMonth):
				previous.add(o.customer, o.mrr, o.month, true)
			}
		}
	} else {
		for _, o := range obs {
			current.add(o.customer, o.mrr, time.Time{}, false)
		}
	}

	active := activeSet(current)
	prevActive := activeSet(previous)

	// iterate in encounter order so float sums are reproducible
	var churnedMRR, contraction, expansion float64
	for _, e := range previous.order {
		prevMRR, wasActive := prevActive[e.id]
		if !wasActive {
			continue
		}
		out.PreviousMRR += prevMRR
		curMRR, stillActive := active[e.id]
		switch {
		case !stillActive:
			out.ChurnedCustomers++
			churnedMRR += prevMRR
		case curMRR < prevMRR:
			contraction += prevMRR - curMRR
		case curMRR > prevMRR:
			expansion += curMRR - prevMRR
		}
	}
	for _, e := range current.order {
		mrr, isActive := active[e.id]
		if !isActive {
			continue
		}
		out.TotalMRR += mrr
		if _, ok := prevActive[e.id]; !ok && recency.ok {
			out.NewCustomers++
		}
	}

	out.ActiveCustomers = float64(len(active))
	out.MRRGrowthRate = growth(out.TotalMRR, out.PreviousMRR)
	out.CustomerChurnRate = pct(out.ChurnedCustomers, float64(len(prevActive)))
	out.RevenueChurnRate = pct(churnedMRR+contraction, out.PreviousMRR)
	out.ExpansionRate = pct(expansion, out.PreviousMRR)
	out.ARPU = safeDiv(out.TotalMRR, out.ActiveCustomers)
	out.Top10RevenueShare = topShare(current.ranked(), 10)

	sanitize(&out)
	return out
}

// activeSet maps customers with positive MRR in a period to that MRR.
func activeSet(period *entities) map[string]float64 {
	out := make(map[string]float64, period.len())
	for _, e := range period.order {
		if e.total > 0 {
			out[e.id] = e.total
		}
	}
	return out
}
