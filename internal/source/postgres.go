package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wonny/pulseboard/backend/internal/contracts"
	"github.com/wonny/pulseboard/backend/internal/validator"
)

// PostgresSource reads uploaded datasets from pulse.datasets
// ⭐ SSOT: 데이터셋 저장소는 여기서만
type PostgresSource struct {
	pool *pgxpool.Pool
}

// NewPostgresSource creates a new Postgres-backed source
func NewPostgresSource(pool *pgxpool.Pool) *PostgresSource {
	return &PostgresSource{pool: pool}
}

// LoadCollection reads every dataset and validates it.
// Unrecognised domain names are kept verbatim so the validator reports them.
func (s *PostgresSource) LoadCollection(ctx context.Context) (contracts.Collection, error) {
	query := `
		SELECT id, domain, rows
		FROM pulse.datasets
		ORDER BY id
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query datasets: %w", err)
	}
	defer rows.Close()

	c := make(contracts.Collection)
	for rows.Next() {
		var (
			id, domain string
			raw        []byte
		)
		if err := rows.Scan(&id, &domain, &raw); err != nil {
			return nil, fmt.Errorf("scan dataset: %w", err)
		}

		records, err := decodeRows(raw)
		if err != nil {
			return nil, fmt.Errorf("dataset %s: %w", id, err)
		}

		d, err := ParseDomain(domain)
		if err != nil {
			d = contracts.Domain(strings.ToLower(strings.TrimSpace(domain)))
		}

		ds := &contracts.Dataset{ID: id, Domain: d, Rows: records}
		validator.Apply(ds)
		c[id] = ds
	}
	return c, rows.Err()
}

// Upsert stores a dataset, replacing any previous rows under the same id.
func (s *PostgresSource) Upsert(ctx context.Context, ds *contracts.Dataset) error {
	query := `
		INSERT INTO pulse.datasets (id, domain, rows, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (id) DO UPDATE
		SET domain = EXCLUDED.domain, rows = EXCLUDED.rows, updated_at = NOW()
	`

	raw, err := json.Marshal(ds.Rows)
	if err != nil {
		return fmt.Errorf("encode dataset %s: %w", ds.ID, err)
	}
	if _, err := s.pool.Exec(ctx, query, ds.ID, string(ds.Domain), raw); err != nil {
		return fmt.Errorf("upsert dataset %s: %w", ds.ID, err)
	}
	return nil
}

// decodeRows keeps numbers as json.Number so amounts are not rounded through float64.
func decodeRows(raw []byte) ([]contracts.Record, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var records []contracts.Record
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("decode rows: %w", err)
	}
	if records == nil {
		records = []contracts.Record{}
	}
	return records, nil
}
