package contracts

// KPI bundles passed from the calculators to the insight stage and to renderers
// ⭐ SSOT: KPI → insight/rendering 전달
//
// Field names and units are a public contract. Currency fields are in the
// dataset's own currency; *_rate and *_share fields are percentages.
// Every field is finite; the zero value is the documented empty bundle.

// FinanceKPIs summarises transaction ledgers.
type FinanceKPIs struct {
	TotalInflow       float64 `json:"total_inflow"`
	TotalOutflow      float64 `json:"total_outflow"`
	NetCashFlow       float64 `json:"net_cash_flow"`
	TxnCount          float64 `json:"txn_count"`
	AvgTxnAmount      float64 `json:"avg_txn_amount"`
	UniqueAccounts    float64 `json:"unique_accounts"`
	FraudRate         float64 `json:"fraud_rate"`           // [0,100]
	HighValueTxnShare float64 `json:"high_value_txn_share"` // [0,100]

	InflowLast30d     float64 `json:"inflow_last_30d"`
	OutflowLast30d    float64 `json:"outflow_last_30d"`
	NetFlowLast30d    float64 `json:"net_flow_last_30d"`
	OutflowGrowthRate float64 `json:"outflow_growth_rate"` // unbounded
}

// InsuranceKPIs summarises policy premium and claim rows.
type InsuranceKPIs struct {
	TotalPremium          float64 `json:"total_premium"`
	TotalClaims           float64 `json:"total_claims"`
	LossRatio             float64 `json:"loss_ratio"` // unbounded
	ClaimCount            float64 `json:"claim_count"`
	PolicyCount           float64 `json:"policy_count"`
	OpenClaimRate         float64 `json:"open_claim_rate"`          // [0,100]
	HighSeverityShare     float64 `json:"high_severity_share"`      // [0,100]
	AvgClaimAmount        float64 `json:"avg_claim_amount"`
	Top10PolicyClaimShare float64 `json:"top10_policy_claim_share"` // [0,100]
	ClaimsLast30d         float64 `json:"claims_last_30d"`
	ClaimsGrowthRate      float64 `json:"claims_growth_rate"` // unbounded
}

// HealthcareKPIs summarises medical billing claims.
type HealthcareKPIs struct {
	TotalCharged      float64 `json:"total_charged"`
	TotalPaid         float64 `json:"total_paid"`
	ClaimCount        float64 `json:"claim_count"`
	UniquePatients    float64 `json:"unique_patients"`
	UniqueProviders   float64 `json:"unique_providers"`
	DenialRate        float64 `json:"denial_rate"`        // [0,100]
	HighCostShare     float64 `json:"high_cost_share"`    // [0,100]
	BillingEfficiency float64 `json:"billing_efficiency"` // paid/charged, unbounded
	AvgCharge         float64 `json:"avg_charge"`
	ChargesLast30d    float64 `json:"charges_last_30d"`
	Top3ProviderShare float64 `json:"top3_provider_share"` // [0,100]
}

// SaaSKPIs summarises subscription revenue by customer and month.
type SaaSKPIs struct {
	TotalMRR          float64 `json:"total_mrr"`
	PreviousMRR       float64 `json:"previous_mrr"`
	MRRGrowthRate     float64 `json:"mrr_growth_rate"` // unbounded
	ActiveCustomers   float64 `json:"active_customers"`
	NewCustomers      float64 `json:"new_customers"`
	ChurnedCustomers  float64 `json:"churned_customers"`
	CustomerChurnRate float64 `json:"customer_churn_rate"` // [0,100]
	RevenueChurnRate  float64 `json:"revenue_churn_rate"`  // unbounded
	ExpansionRate     float64 `json:"expansion_rate"`      // unbounded
	ARPU              float64 `json:"arpu"`
	Top10RevenueShare float64 `json:"top10_revenue_share"` // [0,100]
}

// SupplyKPIs summarises shipment and delivery rows.
type SupplyKPIs struct {
	ShipmentCount      float64 `json:"shipment_count"`
	OnTimeCount        float64 `json:"on_time_count"`
	DelayedCount       float64 `json:"delayed_count"`
	OnTimeDeliveryRate float64 `json:"on_time_delivery_rate"` // [0,100]
	DelayRate          float64 `json:"delay_rate"`            // [0,100]
	HighDelayShare     float64 `json:"high_delay_share"`      // [0,100]
	AvgDelayDays       float64 `json:"avg_delay_days"`
	UniqueSuppliers    float64 `json:"unique_suppliers"`
	TopSupplierShare   float64 `json:"top_supplier_share"` // [0,100]
	TotalFreightCost   float64 `json:"total_freight_cost"`
	OnTimeRateLast30d  float64 `json:"on_time_rate_last_30d"` // [0,100]
	OnTimeRateChange   float64 `json:"on_time_rate_change"`   // percentage points
}

// EcommerceKPIs summarises order rows.
type EcommerceKPIs struct {
	TotalRevenue          float64 `json:"total_revenue"`
	OrderCount            float64 `json:"order_count"`
	UniqueCustomers       float64 `json:"unique_customers"`
	AvgOrderValue         float64 `json:"avg_order_value"`
	RepeatCustomerRate    float64 `json:"repeat_customer_rate"` // [0,100]
	NewCustomers          float64 `json:"new_customers"`
	ReturningCustomers    float64 `json:"returning_customers"`
	RevenueLast30d        float64 `json:"revenue_last_30d"`
	RevenueGrowthRate     float64 `json:"revenue_growth_rate"` // unbounded
	AtRiskCustomers       float64 `json:"at_risk_customers"`
	AtRiskRevenue         float64 `json:"at_risk_revenue"`
	Top1CustomerShare     float64 `json:"top1_customer_share"`  // [0,100]
	Top3CustomerShare     float64 `json:"top3_customer_share"`  // [0,100]
	Top10CustomerShare    float64 `json:"top10_customer_share"` // [0,100]
	WeeklyOrderVolatility float64 `json:"weekly_order_volatility"`
	RefundRate            float64 `json:"refund_rate"` // [0,100]
}

// InsightContext carries the per-domain bundles into the rule engine.
// A nil bundle means the domain had no ready data.
type InsightContext struct {
	Finance    *FinanceKPIs    `json:"finance,omitempty"`
	Insurance  *InsuranceKPIs  `json:"insurance,omitempty"`
	Healthcare *HealthcareKPIs `json:"healthcare,omitempty"`
	SaaS       *SaaSKPIs       `json:"saas,omitempty"`
	Supply     *SupplyKPIs     `json:"supply,omitempty"`
	Ecommerce  *EcommerceKPIs  `json:"ecommerce,omitempty"`
}

// Domains returns the domains present in the context, in canonical order.
func (c InsightContext) Domains() []Domain {
	var out []Domain
	if c.Finance != nil {
		out = append(out, DomainFinance)
	}
	if c.Insurance != nil {
		out = append(out, DomainInsurance)
	}
	if c.Healthcare != nil {
		out = append(out, DomainHealthcare)
	}
	if c.SaaS != nil {
		out = append(out, DomainSaaS)
	}
	if c.Supply != nil {
		out = append(out, DomainSupply)
	}
	if c.Ecommerce != nil {
		out = append(out, DomainEcommerce)
	}
	return out
}
