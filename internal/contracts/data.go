package contracts

import (
	"sort"
	"strings"
)

// Record is one raw row of an uploaded dataset.
// Keys are arbitrary, case-varying column names; values are scalars
// (string, number, bool, time.Time) exactly as the ingestion side produced them.
type Record map[string]any

// Domain identifies the business domain a dataset feeds.
type Domain string

const (
	DomainFinance    Domain = "finance"
	DomainInsurance  Domain = "insurance"
	DomainHealthcare Domain = "healthcare"
	DomainSaaS       Domain = "saas"
	DomainSupply     Domain = "supply"
	DomainEcommerce  Domain = "ecommerce"
)

// AllDomains lists every domain in canonical order.
func AllDomains() []Domain {
	return []Domain{
		DomainFinance,
		DomainInsurance,
		DomainHealthcare,
		DomainSaaS,
		DomainSupply,
		DomainEcommerce,
	}
}

// Issues is the header-level validation outcome stored on a dataset.
type Issues struct {
	Missing []string `json:"missing"`
	Notes   []string `json:"notes,omitempty"`
}

// Dataset represents an uploaded table passed from ingestion to the KPI stage
// ⭐ SSOT: ingestion → KPI 데이터셋 전달
//
// Rows and Issues are only ever replaced wholesale.
type Dataset struct {
	ID     string   `json:"id"`
	Domain Domain   `json:"domain"`
	Rows   []Record `json:"rows"`
	Issues *Issues  `json:"issues,omitempty"`
}

// Ready reports whether the dataset may contribute rows to aggregation.
func (d *Dataset) Ready() bool {
	return d.Issues == nil || len(d.Issues.Missing) == 0
}

// Collection is the caller-owned set of datasets keyed by dataset id.
type Collection map[string]*Dataset

// IDs returns dataset ids in sorted order so iteration is deterministic.
func (c Collection) IDs() []string {
	ids := make([]string, 0, len(c))
	for id := range c {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ByDomain returns the datasets of one domain, ordered by id.
func (c Collection) ByDomain(domain Domain) []*Dataset {
	var out []*Dataset
	for _, id := range c.IDs() {
		ds := c[id]
		if ds != nil && strings.EqualFold(string(ds.Domain), string(domain)) {
			out = append(out, ds)
		}
	}
	return out
}
