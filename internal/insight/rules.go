package insight

import (
	"fmt"

	"github.com/wonny/pulseboard/backend/internal/contracts"
)

// DefaultRules is the rule registry. Append new rules at the end.
func DefaultRules() []Rule {
	return []Rule{
		RuleFunc(saasSupplyGrowthStrain),
		RuleFunc(ecommerceFinanceCashSqueeze),
		RuleFunc(saasChurnConcentration),
		RuleFunc(ecommerceCustomerConcentration),
		RuleFunc(insuranceHealthcareCostPressure),
		RuleFunc(healthcareDenialsCashDrain),
		RuleFunc(financeFraudHighValueExposure),
		RuleFunc(supplyEcommerceFulfillmentRisk),
		RuleFunc(insuranceOpenClaimsBacklog),
		RuleFunc(ecommerceAtRiskRevenue),
		RuleFunc(saasExpansionOffsetsChurn),
		RuleFunc(ecommerceFinanceHealthyGrowth),
	}
}

func saasSupplyGrowthStrain(ctx contracts.InsightContext) *contracts.Insight {
	s, sc := ctx.SaaS, ctx.Supply
	if s == nil || sc == nil {
		return nil
	}
	if s.MRRGrowthRate < 5 || sc.OnTimeDeliveryRate >= 85 {
		return nil
	}

	severity, priority := contracts.SeverityMedium, contracts.PriorityMedium
	if sc.DelayRate >= 10 {
		severity, priority = contracts.SeverityHigh, contracts.PriorityHigh
	}

	return &contracts.Insight{
		ID:       "saas_supply_growth_strain",
		Severity: severity,
		Priority: priority,
		Domains:  []contracts.Domain{contracts.DomainSaaS, contracts.DomainSupply},
		Title:    "Growth is outpacing fulfilment",
		Message: fmt.Sprintf("MRR grew %s while only %s of shipments arrived on time.",
			percent(s.MRRGrowthRate), percent(sc.OnTimeDeliveryRate)),
		Explanation:       "Revenue growth adds delivery load; an on-time rate below 85% suggests operations are not keeping up, which tends to show up as churn a period later.",
		RecommendedAction: "Review supplier capacity and delivery SLAs before the next growth push.",
		Facts: []contracts.Fact{
			{Label: "MRR growth", Value: percent(s.MRRGrowthRate)},
			{Label: "On-time delivery", Value: percent(sc.OnTimeDeliveryRate)},
			{Label: "Delay rate", Value: percent(sc.DelayRate)},
		},
	}
}

func ecommerceFinanceCashSqueeze(ctx contracts.InsightContext) *contracts.Insight {
	e, f := ctx.Ecommerce, ctx.Finance
	if e == nil || f == nil {
		return nil
	}
	if e.RevenueGrowthRate >= 0 || f.NetCashFlow >= 0 {
		return nil
	}

	return &contracts.Insight{
		ID:       "ecommerce_finance_cash_squeeze",
		Severity: contracts.SeverityHigh,
		Priority: contracts.PriorityHigh,
		Domains:  []contracts.Domain{contracts.DomainEcommerce, contracts.DomainFinance},
		Title:    "Falling sales with negative cash flow",
		Message: fmt.Sprintf("Order revenue changed %s over the last 30 days while net cash flow is %s.",
			percent(e.RevenueGrowthRate), amount(f.NetCashFlow)),
		Explanation:       "Shrinking revenue and net outflows together shorten the cash runway faster than either alone.",
		RecommendedAction: "Defer discretionary spend and review receivables until sales recover.",
		Facts: []contracts.Fact{
			{Label: "Revenue growth", Value: percent(e.RevenueGrowthRate)},
			{Label: "Net cash flow", Value: amount(f.NetCashFlow)},
			{Label: "Revenue last 30d", Value: amount(e.RevenueLast30d)},
		},
	}
}

func saasChurnConcentration(ctx contracts.InsightContext) *contracts.Insight {
	s := ctx.SaaS
	if s == nil {
		return nil
	}
	if s.CustomerChurnRate < 5 || s.Top10RevenueShare < 50 {
		return nil
	}

	severity := contracts.SeverityMedium
	if s.CustomerChurnRate >= 10 {
		severity = contracts.SeverityHigh
	}

	return &contracts.Insight{
		ID:       "saas_churn_concentration",
		Severity: severity,
		Priority: contracts.PriorityHigh,
		Domains:  []contracts.Domain{contracts.DomainSaaS},
		Title:    "Churn against a concentrated revenue base",
		Message: fmt.Sprintf("%s of customers churned and the top 10 accounts hold %s of MRR.",
			percent(s.CustomerChurnRate), percent(s.Top10RevenueShare)),
		Explanation:       "When revenue sits in a few accounts, each further churn event removes a large slice of MRR.",
		RecommendedAction: "Run account reviews with the largest customers this month.",
		Facts: []contracts.Fact{
			{Label: "Customer churn", Value: percent(s.CustomerChurnRate)},
			{Label: "Top 10 revenue share", Value: percent(s.Top10RevenueShare)},
			{Label: "Churned customers", Value: count(s.ChurnedCustomers)},
		},
	}
}

func ecommerceCustomerConcentration(ctx contracts.InsightContext) *contracts.Insight {
	e := ctx.Ecommerce
	if e == nil {
		return nil
	}
	if e.Top3CustomerShare < 40 || e.RepeatCustomerRate >= 25 {
		return nil
	}

	return &contracts.Insight{
		ID:       "ecommerce_customer_concentration",
		Severity: contracts.SeverityMedium,
		Priority: contracts.PriorityMedium,
		Domains:  []contracts.Domain{contracts.DomainEcommerce},
		Title:    "Revenue depends on a few buyers",
		Message: fmt.Sprintf("The top 3 customers account for %s of revenue, yet only %s of customers order again.",
			percent(e.Top3CustomerShare), percent(e.RepeatCustomerRate)),
		Explanation:       "A narrow buyer base with weak repeat behaviour leaves revenue exposed to a handful of accounts.",
		RecommendedAction: "Invest in retention offers for the broader customer base.",
		Facts: []contracts.Fact{
			{Label: "Top 3 customer share", Value: percent(e.Top3CustomerShare)},
			{Label: "Repeat customer rate", Value: percent(e.RepeatCustomerRate)},
		},
	}
}

func insuranceHealthcareCostPressure(ctx contracts.InsightContext) *contracts.Insight {
	i, h := ctx.Insurance, ctx.Healthcare
	if i == nil || h == nil {
		return nil
	}
	if i.LossRatio < 80 || h.HighCostShare < 20 {
		return nil
	}

	severity := contracts.SeverityMedium
	if i.LossRatio >= 100 {
		severity = contracts.SeverityHigh
	}

	return &contracts.Insight{
		ID:       "insurance_healthcare_cost_pressure",
		Severity: severity,
		Priority: contracts.PriorityHigh,
		Domains:  []contracts.Domain{contracts.DomainInsurance, contracts.DomainHealthcare},
		Title:    "Claims cost pressure from high-cost care",
		Message: fmt.Sprintf("Loss ratio is %s and %s of medical claims are high cost.",
			percent(i.LossRatio), percent(h.HighCostShare)),
		Explanation:       "A loss ratio near or above premium income combined with a heavy tail of expensive claims erodes underwriting margin.",
		RecommendedAction: "Review pricing on affected policies and audit high-cost claim drivers.",
		Facts: []contracts.Fact{
			{Label: "Loss ratio", Value: percent(i.LossRatio)},
			{Label: "High-cost claim share", Value: percent(h.HighCostShare)},
			{Label: "Average charge", Value: amount(h.AvgCharge)},
		},
	}
}

func healthcareDenialsCashDrain(ctx contracts.InsightContext) *contracts.Insight {
	h, f := ctx.Healthcare, ctx.Finance
	if h == nil || f == nil {
		return nil
	}
	if h.DenialRate < 10 || f.NetCashFlow >= 0 {
		return nil
	}

	return &contracts.Insight{
		ID:       "healthcare_denials_cash_drain",
		Severity: contracts.SeverityHigh,
		Priority: contracts.PriorityHigh,
		Domains:  []contracts.Domain{contracts.DomainHealthcare, contracts.DomainFinance},
		Title:    "Claim denials are draining cash",
		Message: fmt.Sprintf("%s of claims were denied while net cash flow is %s.",
			percent(h.DenialRate), amount(f.NetCashFlow)),
		Explanation:       "Denied claims delay or remove expected receipts at a time when the ledger already shows net outflows.",
		RecommendedAction: "Prioritise resubmission of denied claims and check coding on the most common denial reasons.",
		Facts: []contracts.Fact{
			{Label: "Denial rate", Value: percent(h.DenialRate)},
			{Label: "Net cash flow", Value: amount(f.NetCashFlow)},
			{Label: "Billing efficiency", Value: percent(h.BillingEfficiency)},
		},
	}
}

func financeFraudHighValueExposure(ctx contracts.InsightContext) *contracts.Insight {
	f := ctx.Finance
	if f == nil {
		return nil
	}
	if f.FraudRate < 2 || f.HighValueTxnShare < 10 {
		return nil
	}

	severity := contracts.SeverityMedium
	if f.FraudRate >= 5 {
		severity = contracts.SeverityHigh
	}

	return &contracts.Insight{
		ID:       "finance_fraud_high_value_exposure",
		Severity: severity,
		Priority: contracts.PriorityHigh,
		Domains:  []contracts.Domain{contracts.DomainFinance},
		Title:    "Fraud flags on a high-value ledger",
		Message: fmt.Sprintf("%s of transactions are flagged and %s are high value.",
			percent(f.FraudRate), percent(f.HighValueTxnShare)),
		Explanation:       "Flagged activity matters more when a meaningful share of transactions is large enough to hurt.",
		RecommendedAction: "Tighten approval on high-value transactions and review flagged accounts.",
		Facts: []contracts.Fact{
			{Label: "Fraud rate", Value: percent(f.FraudRate)},
			{Label: "High-value share", Value: percent(f.HighValueTxnShare)},
		},
	}
}

func supplyEcommerceFulfillmentRisk(ctx contracts.InsightContext) *contracts.Insight {
	sc, e := ctx.Supply, ctx.Ecommerce
	if sc == nil || e == nil {
		return nil
	}
	if sc.DelayRate < 15 || e.RepeatCustomerRate >= 30 {
		return nil
	}

	return &contracts.Insight{
		ID:       "supply_ecommerce_fulfillment_risk",
		Severity: contracts.SeverityMedium,
		Priority: contracts.PriorityHigh,
		Domains:  []contracts.Domain{contracts.DomainSupply, contracts.DomainEcommerce},
		Title:    "Late deliveries may be hurting repeat purchases",
		Message: fmt.Sprintf("%s of shipments are delayed and only %s of customers buy again.",
			percent(sc.DelayRate), percent(e.RepeatCustomerRate)),
		Explanation:       "Delivery delays are a common reason first-time buyers do not return.",
		RecommendedAction: "Fix the slowest lanes and follow up with customers whose orders arrived late.",
		Facts: []contracts.Fact{
			{Label: "Delay rate", Value: percent(sc.DelayRate)},
			{Label: "Repeat customer rate", Value: percent(e.RepeatCustomerRate)},
			{Label: "Average delay", Value: fmt.Sprintf("%.1f days", sc.AvgDelayDays)},
		},
	}
}

func insuranceOpenClaimsBacklog(ctx contracts.InsightContext) *contracts.Insight {
	i := ctx.Insurance
	if i == nil {
		return nil
	}
	if i.OpenClaimRate < 30 || i.HighSeverityShare < 15 {
		return nil
	}

	return &contracts.Insight{
		ID:       "insurance_open_claims_backlog",
		Severity: contracts.SeverityMedium,
		Priority: contracts.PriorityMedium,
		Domains:  []contracts.Domain{contracts.DomainInsurance},
		Title:    "Backlog of severe open claims",
		Message: fmt.Sprintf("%s of claims are still open and %s are high severity.",
			percent(i.OpenClaimRate), percent(i.HighSeverityShare)),
		Explanation:       "Open high-severity claims are unreserved exposure; the longer they stay open the wider the settlement range.",
		RecommendedAction: "Assign senior adjusters to the largest open claims.",
		Facts: []contracts.Fact{
			{Label: "Open claim rate", Value: percent(i.OpenClaimRate)},
			{Label: "High-severity share", Value: percent(i.HighSeverityShare)},
		},
	}
}

func ecommerceAtRiskRevenue(ctx contracts.InsightContext) *contracts.Insight {
	e := ctx.Ecommerce
	if e == nil {
		return nil
	}
	atRiskShare := ratio(e.AtRiskRevenue, e.TotalRevenue)
	if atRiskShare < 25 || e.RevenueGrowthRate > 0 {
		return nil
	}

	return &contracts.Insight{
		ID:       "ecommerce_at_risk_revenue",
		Severity: contracts.SeverityMedium,
		Priority: contracts.PriorityMedium,
		Domains:  []contracts.Domain{contracts.DomainEcommerce},
		Title:    "Lapsed customers hold a large revenue share",
		Message: fmt.Sprintf("%s customers with %s of historic revenue have gone quiet and revenue is not growing.",
			count(e.AtRiskCustomers), percent(atRiskShare)),
		Explanation:       "Customers who stopped ordering are cheaper to win back than to replace, but only for a while.",
		RecommendedAction: "Launch a win-back campaign for inactive customers.",
		Facts: []contracts.Fact{
			{Label: "At-risk revenue", Value: amount(e.AtRiskRevenue)},
			{Label: "At-risk share", Value: percent(atRiskShare)},
			{Label: "Revenue growth", Value: percent(e.RevenueGrowthRate)},
		},
	}
}

func saasExpansionOffsetsChurn(ctx contracts.InsightContext) *contracts.Insight {
	s := ctx.SaaS
	if s == nil {
		return nil
	}
	if s.ExpansionRate <= s.RevenueChurnRate || s.ChurnedCustomers <= 0 {
		return nil
	}

	return &contracts.Insight{
		ID:       "saas_expansion_offsets_churn",
		Severity: contracts.SeverityLow,
		Priority: contracts.PriorityLow,
		Domains:  []contracts.Domain{contracts.DomainSaaS},
		Title:    "Expansion is covering churn",
		Message: fmt.Sprintf("Expansion of %s outweighs revenue churn of %s.",
			percent(s.ExpansionRate), percent(s.RevenueChurnRate)),
		Explanation: "Net revenue retention is above 100% despite losing customers.",
		Facts: []contracts.Fact{
			{Label: "Expansion rate", Value: percent(s.ExpansionRate)},
			{Label: "Revenue churn", Value: percent(s.RevenueChurnRate)},
		},
	}
}

func ecommerceFinanceHealthyGrowth(ctx contracts.InsightContext) *contracts.Insight {
	e, f := ctx.Ecommerce, ctx.Finance
	if e == nil || f == nil {
		return nil
	}
	if e.RevenueGrowthRate < 10 || f.NetCashFlow <= 0 {
		return nil
	}

	return &contracts.Insight{
		ID:       "ecommerce_finance_healthy_growth",
		Severity: contracts.SeverityLow,
		Priority: contracts.PriorityLow,
		Domains:  []contracts.Domain{contracts.DomainEcommerce, contracts.DomainFinance},
		Title:    "Growth is funding itself",
		Message: fmt.Sprintf("Order revenue grew %s with positive net cash flow of %s.",
			percent(e.RevenueGrowthRate), amount(f.NetCashFlow)),
		Explanation: "Sales growth backed by positive cash flow leaves room to reinvest.",
		Facts: []contracts.Fact{
			{Label: "Revenue growth", Value: percent(e.RevenueGrowthRate)},
			{Label: "Net cash flow", Value: amount(f.NetCashFlow)},
		},
	}
}

func percent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

func amount(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func count(v float64) string {
	return fmt.Sprintf("%.0f", v)
}

// ratio is part/whole in percent; 0 when whole is not positive.
func ratio(part, whole float64) float64 {
	if whole <= 0 {
		return 0
	}
	return part / whole * 100
}
