// Package pipeline wires validation, KPI calculation and insight ranking into
// one analysis run over a dataset collection.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/wonny/pulseboard/backend/internal/contracts"
	"github.com/wonny/pulseboard/backend/internal/insight"
	"github.com/wonny/pulseboard/backend/internal/kpi"
	"github.com/wonny/pulseboard/backend/internal/validator"
	"github.com/wonny/pulseboard/backend/pkg/logger"
)

// DatasetStatus reports how one dataset took part in a run.
type DatasetStatus struct {
	ID      string           `json:"id"`
	Domain  contracts.Domain `json:"domain"`
	Rows    int              `json:"rows"`
	Ready   bool             `json:"ready"`
	Missing []string         `json:"missing,omitempty"`
	Notes   []string         `json:"notes,omitempty"`
}

// Report is the outcome of one analysis run.
type Report struct {
	ID          string                   `json:"id"`
	GeneratedAt time.Time                `json:"generated_at"`
	Datasets    []DatasetStatus          `json:"datasets"`
	Bundles     contracts.InsightContext `json:"bundles"`
	Insights    insight.Result           `json:"insights"`
}

// Builder orchestrates validator → calculators → rule engine
// ⭐ SSOT: 분석 실행 오케스트레이션은 여기서만
type Builder struct {
	calc   *kpi.Calculator
	engine *insight.Engine
	limit  int
	logger *logger.Logger
}

// NewBuilder creates a new analysis builder
func NewBuilder(calc *kpi.Calculator, engine *insight.Engine, limit int, log *logger.Logger) *Builder {
	if limit <= 0 {
		limit = insight.DefaultLimit
	}
	return &Builder{
		calc:   calc,
		engine: engine,
		limit:  limit,
		logger: log,
	}
}

// WithLimit returns a copy of the builder whose reports keep n top insights.
func (b *Builder) WithLimit(n int) *Builder {
	if n <= 0 {
		return b
	}
	cp := *b
	cp.limit = n
	return &cp
}

// Run analyses the collection. Datasets that arrive without Issues are
// validated first; datasets that already carry Issues are taken as-is.
// The collection's datasets may be updated in place (Issues only).
func (b *Builder) Run(ctx context.Context, c contracts.Collection) (*Report, error) {
	start := time.Now()
	b.logger.WithFields(map[string]interface{}{
		"datasets": len(c),
	}).Info("Starting analysis run")

	report := &Report{
		ID:          uuid.NewString(),
		GeneratedAt: start.UTC(),
		Datasets:    make([]DatasetStatus, 0, len(c)),
	}

	// 1. 검증
	for _, id := range c.IDs() {
		ds := c[id]
		if ds == nil {
			continue
		}
		if ds.Issues == nil {
			validator.Apply(ds)
		}
		status := DatasetStatus{
			ID:     id,
			Domain: ds.Domain,
			Rows:   len(ds.Rows),
			Ready:  ds.Ready(),
		}
		if ds.Issues != nil {
			status.Missing = ds.Issues.Missing
			status.Notes = ds.Issues.Notes
		}
		if !status.Ready {
			b.logger.WithFields(map[string]interface{}{
				"dataset": id,
				"domain":  ds.Domain,
				"missing": status.Missing,
			}).Warn("Dataset excluded from aggregation")
		}
		report.Datasets = append(report.Datasets, status)
	}

	// 2. 도메인별 KPI
	for _, domain := range contracts.AllDomains() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("analysis cancelled: %w", err)
		}
		rows := validator.CollectValidRowsFor(domain, c)
		if len(rows) == 0 {
			continue
		}
		b.computeDomain(&report.Bundles, domain, rows)
		b.logger.WithFields(map[string]interface{}{
			"domain": domain,
			"rows":   len(rows),
		}).Debug("Computed domain KPIs")
	}

	// 3. 인사이트
	report.Insights = b.engine.Compute(report.Bundles, insight.Options{Limit: b.limit})

	b.logger.WithFields(map[string]interface{}{
		"report_id": report.ID,
		"domains":   report.Bundles.Domains(),
		"insights":  len(report.Insights.All),
		"duration":  time.Since(start).String(),
	}).Info("Analysis run completed")

	return report, nil
}

func (b *Builder) computeDomain(bundles *contracts.InsightContext, domain contracts.Domain, rows []contracts.Record) {
	switch domain {
	case contracts.DomainFinance:
		k := b.calc.Finance(rows)
		bundles.Finance = &k
	case contracts.DomainInsurance:
		k := b.calc.Insurance(rows)
		bundles.Insurance = &k
	case contracts.DomainHealthcare:
		k := b.calc.Healthcare(rows)
		bundles.Healthcare = &k
	case contracts.DomainSaaS:
		k := b.calc.SaaS(rows)
		bundles.SaaS = &k
	case contracts.DomainSupply:
		k := b.calc.Supply(rows)
		bundles.Supply = &k
	case contracts.DomainEcommerce:
		k := b.calc.Ecommerce(rows)
		bundles.Ecommerce = &k
	}
}
