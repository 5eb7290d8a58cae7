package policy

import "fmt"

// ValidationError 검증 실패 (로딩 중단)
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks every threshold is usable.
func Validate(p *Policy) error {
	th := p.Thresholds

	// === Meta ===
	if p.Meta.PolicyID == "" {
		return ValidationError{"meta.policy_id", "required"}
	}

	// === Thresholds ===
	if th.WindowDays <= 0 || th.WindowDays > 365 {
		return ValidationError{"thresholds.window_days", "must be in [1, 365]"}
	}
	if th.Finance.HighValueAmount <= 0 {
		return ValidationError{"thresholds.finance.high_value_amount", "must be > 0"}
	}
	if th.Insurance.HighSeverityClaim <= 0 {
		return ValidationError{"thresholds.insurance.high_severity_claim", "must be > 0"}
	}
	if th.Healthcare.HighCostCharge <= 0 {
		return ValidationError{"thresholds.healthcare.high_cost_charge", "must be > 0"}
	}
	if th.Supply.HighDelayDays <= 0 {
		return ValidationError{"thresholds.supply.high_delay_days", "must be > 0"}
	}
	if th.Ecommerce.InactivityDays <= 0 {
		return ValidationError{"thresholds.ecommerce.inactivity_days", "must be > 0"}
	}
	if th.Ecommerce.InactivityDays < th.WindowDays {
		return ValidationError{"thresholds.ecommerce.inactivity_days", "must be >= window_days"}
	}

	// === Insights ===
	if p.Insights.Limit <= 0 {
		return ValidationError{"insights.limit", "must be > 0"}
	}

	return nil
}
