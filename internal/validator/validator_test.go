package validator

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/pulseboard/backend/internal/contracts"
)

func TestValidate_PerDomain(t *testing.T) {
	tests := []struct {
		name        string
		domain      contracts.Domain
		row         contracts.Record
		wantMissing []string
	}{
		{
			name:        "finance ready",
			domain:      contracts.DomainFinance,
			row:         contracts.Record{"Txn Amount": "10", "Posted Date": "2024-01-01"},
			wantMissing: []string{},
		},
		{
			name:        "finance without amount",
			domain:      contracts.DomainFinance,
			row:         contracts.Record{"date": "2024-01-01", "memo": "x"},
			wantMissing: []string{"Amount"},
		},
		{
			name:        "insurance claim only",
			domain:      contracts.DomainInsurance,
			row:         contracts.Record{"Policy Number": "P1", "claim_amount": "100"},
			wantMissing: []string{},
		},
		{
			name:        "healthcare missing patient",
			domain:      contracts.DomainHealthcare,
			row:         contracts.Record{"billed_amount": "100"},
			wantMissing: []string{"Patient"},
		},
		{
			name:        "saas missing everything",
			domain:      contracts.DomainSaaS,
			row:         contracts.Record{"foo": "bar"},
			wantMissing: []string{"Customer", "MRR", "Billing Period"},
		},
		{
			name:        "supply with delay only",
			domain:      contracts.DomainSupply,
			row:         contracts.Record{"shipment_id": "S1", "delay_days": "2"},
			wantMissing: []string{},
		},
		{
			name:        "ecommerce missing date",
			domain:      contracts.DomainEcommerce,
			row:         contracts.Record{"order_total": "10", "email": "a@b.c"},
			wantMissing: []string{"Order Date"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Validate(tt.domain, []contracts.Record{tt.row})
			assert.Equal(t, tt.wantMissing, res.Missing)
			assert.Equal(t, len(tt.wantMissing) == 0, res.Ready())
			assert.NotEmpty(t, res.Notes)
		})
	}
}

func TestValidate_UnionOfHeaders(t *testing.T) {
	rows := []contracts.Record{
		{"amount": "10"},
		{"date": "2024-01-01"},
	}

	res := Validate(contracts.DomainFinance, rows)
	assert.True(t, res.Ready())
	assert.Equal(t, []string{"amount", "date"}, res.Cols)
	assert.Equal(t, "amount", res.Matched["Amount"])
}

func TestValidate_EmptyAndUnknown(t *testing.T) {
	res := Validate(contracts.DomainFinance, nil)
	assert.Equal(t, []string{"Amount", "Date"}, res.Missing)
	assert.Contains(t, res.Notes, "dataset has no rows")

	res = Validate(contracts.Domain("astrology"), []contracts.Record{{"amount": 1}})
	assert.Equal(t, []string{"Domain"}, res.Missing)
}

func TestApply_ReplacesIssues(t *testing.T) {
	ds := &contracts.Dataset{
		Domain: contracts.DomainFinance,
		Rows:   []contracts.Record{{"amount": "1", "date": "2024-01-01"}},
		Issues: &contracts.Issues{Missing: []string{"stale"}},
	}

	Apply(ds)
	require.NotNil(t, ds.Issues)
	assert.Empty(t, ds.Issues.Missing)
	assert.True(t, ds.Ready())
}

func TestCollectValidRows_OnlyReadyDatasets(t *testing.T) {
	ready := &contracts.Dataset{ID: "ready", Domain: contracts.DomainFinance}
	for i := 0; i < 10; i++ {
		ready.Rows = append(ready.Rows, contracts.Record{"amount": fmt.Sprint(i)})
	}
	ready.Issues = &contracts.Issues{Missing: []string{}}

	notReady := &contracts.Dataset{ID: "broken", Domain: contracts.DomainFinance}
	for i := 0; i < 5; i++ {
		notReady.Rows = append(notReady.Rows, contracts.Record{"memo": "x"})
	}
	notReady.Issues = &contracts.Issues{Missing: []string{"Amount"}}

	rows := CollectValidRows(ready, notReady)
	assert.Len(t, rows, 10)

	c := contracts.Collection{"ready": ready, "broken": notReady}
	assert.Len(t, CollectValidRowsFor(contracts.DomainFinance, c), 10)
	assert.Len(t, CollectValidRowsFor(contracts.DomainSaaS, c), 0)
}

func TestCollectValidRows_NoIssuesMeansReady(t *testing.T) {
	ds := &contracts.Dataset{Rows: []contracts.Record{{"a": 1}, {"a": 2}}}
	assert.Len(t, CollectValidRows(ds, nil), 2)
}
