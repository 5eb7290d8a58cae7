package contracts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDataset_Ready(t *testing.T) {
	tests := []struct {
		name string
		ds   Dataset
		want bool
	}{
		{"no issues", Dataset{}, true},
		{"empty missing", Dataset{Issues: &Issues{Missing: []string{}}}, true},
		{"notes only", Dataset{Issues: &Issues{Notes: []string{"matched amount"}}}, true},
		{"missing group", Dataset{Issues: &Issues{Missing: []string{"Amount"}}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.ds.Ready())
		})
	}
}

func TestCollection_ByDomain(t *testing.T) {
	c := Collection{
		"b": {ID: "b", Domain: DomainFinance},
		"a": {ID: "a", Domain: DomainFinance},
		"c": {ID: "c", Domain: DomainSaaS},
		"d": nil,
	}

	got := c.ByDomain(DomainFinance)
	if assert.Len(t, got, 2) {
		assert.Equal(t, "a", got[0].ID)
		assert.Equal(t, "b", got[1].ID)
	}
	assert.Len(t, c.ByDomain(DomainEcommerce), 0)
	assert.Equal(t, []string{"a", "b", "c", "d"}, c.IDs())
}

func TestAllDomains(t *testing.T) {
	assert.Len(t, AllDomains(), 6)
}
