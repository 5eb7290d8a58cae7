package kpi

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wonny/pulseboard/backend/internal/contracts"
	"github.com/wonny/pulseboard/backend/internal/field"
)

func TestFinanceLadder_Priority(t *testing.T) {
	tests := []struct {
		name string
		row  contracts.Record
		want Verdict
	}{
		{"flag beats type", contracts.Record{"is_inflow": "no", "type": "credit", "amount": 10}, Negative},
		{"type keyword", contracts.Record{"type": "Debit", "amount": 10}, Negative},
		{"short code", contracts.Record{"dr_cr": "CR", "amount": -10}, Positive},
		{"type beats sign", contracts.Record{"type": "deposit", "amount": -10}, Positive},
		{"unknown type falls back to sign", contracts.Record{"type": "misc", "amount": -5}, Negative},
		{"no type positive amount", contracts.Record{"amount": 5}, Positive},
		{"zero is inflow", contracts.Record{"amount": 0}, Positive},
		{"unrecognised flag ignored", contracts.Record{"is_inflow": "maybe", "amount": -1}, Negative},
		{"nothing resolvable", contracts.Record{"memo": "x"}, Unclassified},
		{"payment received is inflow", contracts.Record{"type": "Payment received", "amount": 10}, Positive},
		{"refund payment in is inflow", contracts.Record{"type": "refund payment in", "amount": 10}, Positive},
		{"bare payment is outflow", contracts.Record{"type": "payment", "amount": 10}, Negative},
		{"bill payment is outflow", contracts.Record{"type": "Bill Payment", "amount": 10}, Negative},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, financeLadder.Classify(field.NewIndex(tt.row)))
		})
	}
}

func TestSupplyLadder_Priority(t *testing.T) {
	tests := []struct {
		name string
		row  contracts.Record
		want Verdict
	}{
		{"flag beats status", contracts.Record{"on_time": "yes", "status": "late"}, Positive},
		{"negative phrase first", contracts.Record{"status": "Not on time"}, Negative},
		{"delivered late", contracts.Record{"delivery_status": "Delivered-Late!"}, Negative},
		{"on time text", contracts.Record{"status": "On Time"}, Positive},
		{"status beats delay", contracts.Record{"status": "early", "delay_days": 4}, Positive},
		{"delay fallback late", contracts.Record{"status": "in transit", "delay_days": 2}, Negative},
		{"delay fallback on time", contracts.Record{"delay_days": "0"}, Positive},
		{"date diff", contracts.Record{"promised_date": "2024-05-01", "delivery_date": "2024-04-30"}, Positive},
		{"unclassified", contracts.Record{"status": "in transit"}, Unclassified},
		{"delivered uses dates", contracts.Record{"status": "Delivered", "promised_date": "2024-01-01", "delivery_date": "2024-01-10"}, Negative},
		{"completed uses delay", contracts.Record{"status": "completed", "delay_days": 0}, Positive},
		{"received without dates", contracts.Record{"status": "Received"}, Unclassified},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, supplyLadder.Classify(field.NewIndex(tt.row)))
		})
	}
}

func TestKeywordText(t *testing.T) {
	assert.Equal(t, " delivered late ", keywordText("Delivered-Late!"))
	assert.Equal(t, " ", keywordText(""))
	assert.True(t, containsAny(keywordText("Claim DENIED by payer"), denialWords))
	assert.False(t, containsAny(keywordText("incoming"), []string{"in"}))
	assert.Equal(t, len("payment received"), longestMatch(keywordText("Payment received"), financeLadder.PositiveWords))
	assert.Equal(t, 0, longestMatch(keywordText("misc"), financeLadder.NegativeWords))
}
