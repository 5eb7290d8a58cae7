package kpi

// Thresholds holds every fixed cut-off used by the calculators
// ⭐ SSOT: KPI 임계값은 여기서만
type Thresholds struct {
	WindowDays int `yaml:"window_days" json:"window_days"` // trailing window, 30

	Finance    FinanceThresholds    `yaml:"finance" json:"finance"`
	Insurance  InsuranceThresholds  `yaml:"insurance" json:"insurance"`
	Healthcare HealthcareThresholds `yaml:"healthcare" json:"healthcare"`
	Supply     SupplyThresholds     `yaml:"supply" json:"supply"`
	Ecommerce  EcommerceThresholds  `yaml:"ecommerce" json:"ecommerce"`
}

// FinanceThresholds for transaction ledgers.
type FinanceThresholds struct {
	HighValueAmount float64 `yaml:"high_value_amount" json:"high_value_amount"` // 10,000 (absolute amount)
}

// InsuranceThresholds for claim registers.
type InsuranceThresholds struct {
	HighSeverityClaim float64 `yaml:"high_severity_claim" json:"high_severity_claim"` // 25,000
}

// HealthcareThresholds for billing extracts.
type HealthcareThresholds struct {
	HighCostCharge float64 `yaml:"high_cost_charge" json:"high_cost_charge"` // 5,000
}

// SupplyThresholds for shipment logs.
type SupplyThresholds struct {
	HighDelayDays float64 `yaml:"high_delay_days" json:"high_delay_days"` // 3
}

// EcommerceThresholds for order exports.
type EcommerceThresholds struct {
	InactivityDays int `yaml:"inactivity_days" json:"inactivity_days"` // 60
}

// DefaultThresholds returns the documented policy.
func DefaultThresholds() Thresholds {
	return Thresholds{
		WindowDays: 30,
		Finance: FinanceThresholds{
			HighValueAmount: 10000,
		},
		Insurance: InsuranceThresholds{
			HighSeverityClaim: 25000,
		},
		Healthcare: HealthcareThresholds{
			HighCostCharge: 5000,
		},
		Supply: SupplyThresholds{
			HighDelayDays: 3,
		},
		Ecommerce: EcommerceThresholds{
			InactivityDays: 60,
		},
	}
}
