// Package validator is the header-level readiness gate between ingestion and
// the KPI calculators. A dataset is checked once, as a whole, against the
// required field groups of its domain; per-row checks would repeat the same
// header test for every row.
package validator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/wonny/pulseboard/backend/internal/contracts"
	"github.com/wonny/pulseboard/backend/internal/field"
)

// Group is a required-any field group: satisfied when any alias is a column.
type Group struct {
	Label   string
	Aliases []string
}

// Result is the outcome of validating one dataset
// ⭐ SSOT: ingestion → KPI 준비 상태 판정
type Result struct {
	Cols    []string          `json:"cols"`
	Missing []string          `json:"missing"`
	Notes   []string          `json:"notes"`
	Matched map[string]string `json:"matched,omitempty"` // group label → column
}

// Ready reports whether every required group was satisfied.
func (r Result) Ready() bool {
	return len(r.Missing) == 0
}

// RequiredGroups returns the required-any groups for a domain, nil if unknown.
func RequiredGroups(domain contracts.Domain) []Group {
	switch domain {
	case contracts.DomainFinance:
		return []Group{
			{Label: "Amount", Aliases: field.Finance.Amount},
			{Label: "Date", Aliases: field.Finance.Date},
		}
	case contracts.DomainInsurance:
		return []Group{
			{Label: "Policy", Aliases: field.Insurance.Policy},
			{Label: "Premium or Claim Amount", Aliases: concat(field.Insurance.Premium, field.Insurance.Claim)},
		}
	case contracts.DomainHealthcare:
		return []Group{
			{Label: "Billed Amount", Aliases: field.Healthcare.Charged},
			{Label: "Patient", Aliases: field.Healthcare.Patient},
		}
	case contracts.DomainSaaS:
		return []Group{
			{Label: "Customer", Aliases: field.SaaS.Customer},
			{Label: "MRR", Aliases: field.SaaS.MRR},
			{Label: "Billing Period", Aliases: field.SaaS.Date},
		}
	case contracts.DomainSupply:
		return []Group{
			{Label: "Shipment", Aliases: concat(field.Supply.Shipment, field.Supply.ShipDate)},
			{Label: "Delivery Outcome", Aliases: concat(
				field.Supply.OnTimeFlag,
				field.Supply.Status,
				field.Supply.DelayDays,
				field.Supply.ActualDate,
			)},
		}
	case contracts.DomainEcommerce:
		return []Group{
			{Label: "Order Amount", Aliases: field.Ecommerce.Amount},
			{Label: "Customer", Aliases: field.Ecommerce.Customer},
			{Label: "Order Date", Aliases: field.Ecommerce.Date},
		}
	default:
		return nil
	}
}

// Validate checks the union of observed column names against the domain's
// required groups. It never fails; problems are reported in Missing and Notes.
func Validate(domain contracts.Domain, rows []contracts.Record) Result {
	res := Result{
		Cols:    Headers(rows),
		Missing: []string{},
		Notes:   []string{},
		Matched: make(map[string]string),
	}

	groups := RequiredGroups(domain)
	if groups == nil {
		res.Missing = append(res.Missing, "Domain")
		res.Notes = append(res.Notes, fmt.Sprintf("unknown domain %q: no required fields are defined", domain))
		return res
	}

	if len(rows) == 0 {
		res.Notes = append(res.Notes, "dataset has no rows")
	}

	for _, g := range groups {
		_, header, ok := field.MatchHeader(res.Cols, g.Aliases)
		if ok {
			res.Matched[g.Label] = header
			res.Notes = append(res.Notes, fmt.Sprintf("%s: using column %q", g.Label, header))
			continue
		}
		res.Missing = append(res.Missing, g.Label)
		res.Notes = append(res.Notes, fmt.Sprintf("%s: add a column named one of %s", g.Label, strings.Join(g.Aliases, ", ")))
	}

	return res
}

// Apply validates ds and replaces its Issues wholesale.
func Apply(ds *contracts.Dataset) Result {
	res := Validate(ds.Domain, ds.Rows)
	ds.Issues = &contracts.Issues{
		Missing: res.Missing,
		Notes:   res.Notes,
	}
	return res
}

// Headers returns the sorted union of keys observed across rows.
func Headers(rows []contracts.Record) []string {
	seen := make(map[string]struct{})
	for _, r := range rows {
		for k := range r {
			seen[k] = struct{}{}
		}
	}
	cols := make([]string, 0, len(seen))
	for k := range seen {
		cols = append(cols, k)
	}
	sort.Strings(cols)
	return cols
}

// CollectValidRows concatenates the rows of ready datasets, in argument order.
// Datasets whose Issues list missing groups contribute nothing.
func CollectValidRows(datasets ...*contracts.Dataset) []contracts.Record {
	var rows []contracts.Record
	for _, ds := range datasets {
		if ds == nil || !ds.Ready() {
			continue
		}
		rows = append(rows, ds.Rows...)
	}
	return rows
}

// CollectValidRowsFor is CollectValidRows over one domain of a collection.
func CollectValidRowsFor(domain contracts.Domain, c contracts.Collection) []contracts.Record {
	return CollectValidRows(c.ByDomain(domain)...)
}

func concat(lists ...[]string) []string {
	var out []string
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}
