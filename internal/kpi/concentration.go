package kpi

import (
	"sort"
	"time"
)

// entity is the per-id aggregate built during pass 1.
type entity struct {
	id    string
	total float64
	count int
	first time.Time
	last  time.Time
	dated bool
}

// entities keeps aggregates in first-encounter order so ranking ties are stable.
type entities struct {
	order []*entity
	byID  map[string]*entity
}

func newEntities() *entities {
	return &entities{byID: make(map[string]*entity)}
}

// add folds one observation into the aggregate for id. Empty ids are ignored.
func (e *entities) add(id string, amount float64, at time.Time, hasDate bool) *entity {
	if id == "" {
		return nil
	}
	agg, ok := e.byID[id]
	if !ok {
		agg = &entity{id: id}
		e.byID[id] = agg
		e.order = append(e.order, agg)
	}
	agg.total += amount
	agg.count++
	if hasDate {
		if !agg.dated || at.Before(agg.first) {
			agg.first = at
		}
		if !agg.dated || at.After(agg.last) {
			agg.last = at
		}
		agg.dated = true
	}
	return agg
}

func (e *entities) len() int {
	return len(e.order)
}

// ranked returns aggregates sorted by total, descending. Ties keep encounter order.
func (e *entities) ranked() []*entity {
	out := make([]*entity, len(e.order))
	copy(out, e.order)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].total > out[j].total
	})
	return out
}

// topSum is the sum of the k largest positive totals.
func topSum(ranked []*entity, k int) float64 {
	var sum float64
	for i := 0; i < k && i < len(ranked); i++ {
		if ranked[i].total > 0 {
			sum += ranked[i].total
		}
	}
	return sum
}

// positiveTotal is the share denominator: negative aggregates (net refunds)
// are left out so no share can exceed 100.
func positiveTotal(ranked []*entity) float64 {
	var sum float64
	for _, r := range ranked {
		if r.total > 0 {
			sum += r.total
		}
	}
	return sum
}

// topShare is the percentage of the positive total held by the top k entities.
func topShare(ranked []*entity, k int) float64 {
	return pct(topSum(ranked, k), positiveTotal(ranked))
}
