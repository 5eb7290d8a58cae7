// Package source loads dataset collections from files and from Postgres.
package source

import (
	"errors"
	"fmt"
	"strings"

	"github.com/wonny/pulseboard/backend/internal/contracts"
	"github.com/wonny/pulseboard/backend/internal/field"
)

// ErrUnknownDomain is returned when a domain name matches none of the six domains.
var ErrUnknownDomain = errors.New("unknown domain")

var domainNames = map[string]contracts.Domain{
	"finance":      contracts.DomainFinance,
	"banking":      contracts.DomainFinance,
	"transactions": contracts.DomainFinance,
	"insurance":    contracts.DomainInsurance,
	"claims":       contracts.DomainInsurance,
	"healthcare":   contracts.DomainHealthcare,
	"health":       contracts.DomainHealthcare,
	"medical":      contracts.DomainHealthcare,
	"saas":         contracts.DomainSaaS,
	"subscription": contracts.DomainSaaS,
	"supply":       contracts.DomainSupply,
	"supply_chain": contracts.DomainSupply,
	"logistics":    contracts.DomainSupply,
	"ecommerce":    contracts.DomainEcommerce,
	"e_commerce":   contracts.DomainEcommerce,
	"retail":       contracts.DomainEcommerce,
	"orders":       contracts.DomainEcommerce,
}

// ParseDomain maps a user-supplied name such as "Supply Chain" or "e-commerce" to a Domain.
func ParseDomain(s string) (contracts.Domain, error) {
	key := field.NormalizeKey(s)
	if d, ok := domainNames[key]; ok {
		return d, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDomain, strings.TrimSpace(s))
}
