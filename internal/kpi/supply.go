package kpi

import (
	"math"
	"time"

	"github.com/wonny/pulseboard/backend/internal/contracts"
	"github.com/wonny/pulseboard/backend/internal/field"
)

// Supply computes the shipment bundle.
//
// On-time and delay rates are over classified shipments only; high_delay_share
// and avg_delay_days are over shipments with a computable delay, with early
// arrivals counted as zero days late.
func (c *Calculator) Supply(rows []contracts.Record) contracts.SupplyKPIs {
	type outcome struct {
		at     time.Time
		onTime bool
	}

	var (
		out        contracts.SupplyKPIs
		delayRows  int
		highDelay  int
		delaySum   float64
		bySupplier = newEntities()
		recency    anchor
		outcomes   []outcome
	)

	// Pass 1
	for _, rec := range rows {
		ix := field.NewIndex(rec)
		verdict := supplyLadder.Classify(ix)
		if verdict == Unclassified && !ix.Has(field.Supply.Shipment) && !ix.Has(field.Supply.ShipDate) {
			continue
		}

		out.ShipmentCount++
		switch verdict {
		case Positive:
			out.OnTimeCount++
		case Negative:
			out.DelayedCount++
		}

		if delay, ok := delayDays(ix); ok {
			late := math.Max(delay, 0)
			delayRows++
			delaySum += late
			if late >= c.th.Supply.HighDelayDays {
				highDelay++
			}
		}
		if cost, ok := ix.Number(field.Supply.FreightCost); ok {
			out.TotalFreightCost += cost
		}

		at, hasDate := shipmentDate(ix)
		if hasDate {
			recency.observe(at)
			if verdict != Unclassified {
				outcomes = append(outcomes, outcome{at: at, onTime: verdict == Positive})
			}
		}
		bySupplier.add(ix.String(field.Supply.Supplier), 1, at, hasDate)
	}

	classified := out.OnTimeCount + out.DelayedCount
	out.OnTimeDeliveryRate = pct(out.OnTimeCount, classified)
	out.DelayRate = pct(out.DelayedCount, classified)
	out.HighDelayShare = pct(float64(highDelay), float64(delayRows))
	out.AvgDelayDays = safeDiv(delaySum, float64(delayRows))
	out.UniqueSuppliers = float64(bySupplier.len())
	out.TopSupplierShare = topShare(bySupplier.ranked(), 1)

	// Pass 2: on-time trend, current window vs the one before
	if recency.ok {
		days := c.th.WindowDays
		var curOn, curAll, priorOn, priorAll float64
		for _, o := range outcomes {
			switch {
			case recency.inCurrent(o.at, days):
				curAll++
				if o.onTime {
					curOn++
				}
			case recency.inPrior(o.at, days):
				priorAll++
				if o.onTime {
					priorOn++
				}
			}
		}
		out.OnTimeRateLast30d = pct(curOn, curAll)
		if curAll > 0 && priorAll > 0 {
			out.OnTimeRateChange = out.OnTimeRateLast30d - pct(priorOn, priorAll)
		}
	}

	sanitize(&out)
	return out
}

// shipmentDate places a shipment in time: delivery, then ship, then promise.
func shipmentDate(ix field.Index) (time.Time, bool) {
	if at, ok := ix.Date(field.Supply.ActualDate); ok {
		return at, true
	}
	if at, ok := ix.Date(field.Supply.ShipDate); ok {
		return at, true
	}
	return ix.Date(field.Supply.PromisedDate)
}
