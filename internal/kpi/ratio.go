package kpi

import (
	"math"
	"reflect"
)

// safeDiv returns 0 for a non-positive denominator.
func safeDiv(num, den float64) float64 {
	if den <= 0 {
		return 0
	}
	return finite(num / den)
}

// pct is safeDiv scaled to a percentage.
func pct(num, den float64) float64 {
	return safeDiv(num, den) * 100
}

// share is pct capped at 100, for parts summed separately from their whole.
func share(part, whole float64) float64 {
	return math.Min(pct(part, whole), 100)
}

// growth is the period-over-period change in percent; 0 without a prior base.
func growth(current, prior float64) float64 {
	return pct(current-prior, prior)
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// sanitize zeroes every non-finite float64 field of the bundle ptr points to.
func sanitize(ptr any) {
	v := reflect.ValueOf(ptr).Elem()
	for i := 0; i < v.NumField(); i++ {
		f := v.Field(i)
		if f.Kind() == reflect.Float64 && f.CanSet() {
			f.SetFloat(finite(f.Float()))
		}
	}
}
