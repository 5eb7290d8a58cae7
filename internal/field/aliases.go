package field

// Alias tables per domain. Order is priority: the first alias present wins.

// FinanceFields are the logical fields of a transaction ledger.
type FinanceFields struct {
	Amount     []string
	Type       []string
	InflowFlag []string
	Date       []string
	Account    []string
	FraudFlag  []string
	FraudRule  []string
}

// Finance aliases
var Finance = FinanceFields{
	Amount:     []string{"amount", "txn_amount", "transaction_amount", "amt", "value", "net_amount"},
	Type:       []string{"type", "txn_type", "transaction_type", "direction", "dr_cr", "category_type"},
	InflowFlag: []string{"is_inflow", "is_credit", "inflow"},
	Date:       []string{"date", "txn_date", "transaction_date", "posted_date", "posting_date", "timestamp"},
	Account:    []string{"account_id", "account", "account_number", "acct", "customer_id"},
	FraudFlag:  []string{"is_fraud", "fraud", "fraud_flag", "flagged", "is_flagged"},
	FraudRule:  []string{"fraud_rule", "fraud_reason", "alert_rule", "rule_triggered"},
}

// InsuranceFields are the logical fields of a policy/claims register.
type InsuranceFields struct {
	Policy      []string
	Premium     []string
	Claim       []string
	ClaimStatus []string
	Date        []string
}

// Insurance aliases
var Insurance = InsuranceFields{
	Policy:      []string{"policy_id", "policy", "policy_number", "policy_no"},
	Premium:     []string{"premium", "written_premium", "premium_amount", "gross_premium", "earned_premium"},
	Claim:       []string{"claim_amount", "claim", "claims", "paid_claim", "loss_amount", "incurred_amount"},
	ClaimStatus: []string{"claim_status", "status"},
	Date:        []string{"claim_date", "loss_date", "date", "incident_date", "policy_start", "effective_date"},
}

// HealthcareFields are the logical fields of a medical billing extract.
type HealthcareFields struct {
	Charged    []string
	Paid       []string
	Patient    []string
	Provider   []string
	Status     []string
	DeniedFlag []string
	Date       []string
}

// Healthcare aliases
var Healthcare = HealthcareFields{
	Charged:    []string{"billed_amount", "charge_amount", "charges", "billed", "total_charge", "amount"},
	Paid:       []string{"paid_amount", "paid", "payment_amount", "reimbursed_amount", "allowed_amount"},
	Patient:    []string{"patient_id", "patient", "member_id", "mrn", "claim_id"},
	Provider:   []string{"provider_id", "provider", "npi", "physician", "facility"},
	Status:     []string{"claim_status", "status", "adjudication_status"},
	DeniedFlag: []string{"denied", "is_denied", "denial_flag", "denial"},
	Date:       []string{"service_date", "date_of_service", "dos", "claim_date", "date"},
}

// SaaSFields are the logical fields of a subscription revenue export.
type SaaSFields struct {
	Customer []string
	MRR      []string
	Date     []string
}

// SaaS aliases
var SaaS = SaaSFields{
	Customer: []string{"customer_id", "account_id", "customer", "subscriber_id", "company", "account"},
	MRR:      []string{"mrr", "monthly_recurring_revenue", "recurring_revenue", "subscription_amount", "revenue", "amount"},
	Date:     []string{"month", "period", "billing_date", "billing_month", "invoice_date", "date"},
}

// SupplyFields are the logical fields of a shipment log.
type SupplyFields struct {
	Shipment     []string
	Supplier     []string
	OnTimeFlag   []string
	Status       []string
	DelayDays    []string
	ActualDate   []string
	PromisedDate []string
	ShipDate     []string
	FreightCost  []string
}

// Supply aliases
var Supply = SupplyFields{
	Shipment:     []string{"shipment_id", "shipment", "tracking_number", "order_id", "po_number", "po"},
	Supplier:     []string{"supplier_id", "supplier", "vendor", "carrier", "vendor_id"},
	OnTimeFlag:   []string{"on_time", "is_on_time", "ontime", "on_time_flag"},
	Status:       []string{"delivery_status", "status", "shipment_status"},
	DelayDays:    []string{"delay_days", "days_late", "delay", "lateness_days"},
	ActualDate:   []string{"actual_delivery_date", "delivery_date", "delivered_at", "actual_date", "received_date"},
	PromisedDate: []string{"promised_date", "expected_delivery_date", "expected_date", "due_date", "eta"},
	ShipDate:     []string{"ship_date", "shipped_at", "dispatch_date", "order_date", "date"},
	FreightCost:  []string{"freight_cost", "shipping_cost", "cost", "freight"},
}

// EcommerceFields are the logical fields of an order export.
type EcommerceFields struct {
	Amount   []string
	Customer []string
	Order    []string
	Date     []string
	Status   []string
}

// Ecommerce aliases
var Ecommerce = EcommerceFields{
	Amount:   []string{"order_total", "total", "amount", "revenue", "order_value", "sales", "price"},
	Customer: []string{"customer_id", "customer", "customer_email", "email", "buyer_id", "user_id"},
	Order:    []string{"order_id", "order_number", "order", "id"},
	Date:     []string{"order_date", "date", "created_at", "purchase_date", "timestamp"},
	Status:   []string{"order_status", "status", "financial_status"},
}
