// Package kpi turns validated rows into fixed-shape per-domain KPI bundles.
//
// Every calculator makes two passes: pass 1 resolves fields, accumulates sums
// and builds the entity map while tracking the recency anchor; pass 2 derives
// windowed, cohort and concentration metrics relative to that anchor. A row
// without its primary measure is skipped; bad cells never abort a run. Empty
// input yields the zero bundle.
package kpi

import "github.com/wonny/pulseboard/backend/internal/contracts"

// Calculator computes KPI bundles under one threshold policy.
// It holds no mutable state and is safe for concurrent use.
type Calculator struct {
	th Thresholds
}

// NewCalculator creates a calculator. A non-positive window falls back to the default.
func NewCalculator(th Thresholds) *Calculator {
	if th.WindowDays <= 0 {
		th.WindowDays = DefaultThresholds().WindowDays
	}
	return &Calculator{th: th}
}

// Thresholds returns the policy in effect.
func (c *Calculator) Thresholds() Thresholds {
	return c.th
}

var defaultCalculator = NewCalculator(DefaultThresholds())

// ComputeFinanceKPIs uses the default thresholds.
func ComputeFinanceKPIs(rows []contracts.Record) contracts.FinanceKPIs {
	return defaultCalculator.Finance(rows)
}

// ComputeInsuranceKPIs uses the default thresholds.
func ComputeInsuranceKPIs(rows []contracts.Record) contracts.InsuranceKPIs {
	return defaultCalculator.Insurance(rows)
}

// ComputeHealthcareKPIs uses the default thresholds.
func ComputeHealthcareKPIs(rows []contracts.Record) contracts.HealthcareKPIs {
	return defaultCalculator.Healthcare(rows)
}

// ComputeSaaSKPIs uses the default thresholds.
func ComputeSaaSKPIs(rows []contracts.Record) contracts.SaaSKPIs {
	return defaultCalculator.SaaS(rows)
}

// ComputeSupplyKPIs uses the default thresholds.
func ComputeSupplyKPIs(rows []contracts.Record) contracts.SupplyKPIs {
	return defaultCalculator.Supply(rows)
}

// ComputeEcommerceKPIs uses the default thresholds.
func ComputeEcommerceKPIs(rows []contracts.Record) contracts.EcommerceKPIs {
	return defaultCalculator.Ecommerce(rows)
}
