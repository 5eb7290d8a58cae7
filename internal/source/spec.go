package source

import (
	"context"
	"fmt"
	"strings"

	"github.com/wonny/pulseboard/backend/internal/contracts"
)

// Loader resolves "domain=location" specs, e.g. "finance=ledger.csv" or
// "saas=https://exports.example.com/mrr.csv". HTTP may be nil, in which case
// URL locations are rejected.
type Loader struct {
	CSV  CSVLoader
	HTTP *HTTPLoader
}

// LoadSpecs loads every spec into one collection. Later datasets with the
// same id replace earlier ones.
func (l Loader) LoadSpecs(ctx context.Context, specs []string) (contracts.Collection, error) {
	c := make(contracts.Collection, len(specs))
	for _, spec := range specs {
		name, location, ok := strings.Cut(spec, "=")
		if !ok || location == "" {
			return nil, fmt.Errorf("dataset %q: expected domain=path", spec)
		}
		domain, err := ParseDomain(name)
		if err != nil {
			return nil, err
		}

		var ds *contracts.Dataset
		switch {
		case IsURL(location) && l.HTTP == nil:
			return nil, fmt.Errorf("dataset %q: URL sources are not enabled", spec)
		case IsURL(location):
			ds, err = l.HTTP.Load(ctx, location, domain)
		default:
			ds, err = l.CSV.LoadFile(location, domain)
		}
		if err != nil {
			return nil, err
		}
		c[ds.ID] = ds
	}
	return c, nil
}
