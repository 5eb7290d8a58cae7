package jobs

import (
	"context"
	"fmt"

	"github.com/wonny/pulseboard/backend/internal/contracts"
	"github.com/wonny/pulseboard/backend/internal/pipeline"
	"github.com/wonny/pulseboard/backend/pkg/logger"
)

// CollectionSource loads the current dataset collection.
type CollectionSource interface {
	LoadCollection(ctx context.Context) (contracts.Collection, error)
}

// ReportObserver is notified of every refreshed report.
type ReportObserver interface {
	ObserveReport(r *pipeline.Report)
}

// InsightRefreshJob recomputes KPIs and insights from the dataset source
// ⭐ SSOT: 인사이트 갱신 스케줄은 이 Job에서만
type InsightRefreshJob struct {
	source   CollectionSource
	builder  *pipeline.Builder
	latest   *pipeline.Latest
	observer ReportObserver
	schedule string
	logger   *logger.Logger
}

// NewInsightRefreshJob creates a new insight refresh job. observer may be nil.
func NewInsightRefreshJob(
	source CollectionSource,
	builder *pipeline.Builder,
	latest *pipeline.Latest,
	observer ReportObserver,
	schedule string,
	log *logger.Logger,
) *InsightRefreshJob {
	return &InsightRefreshJob{
		source:   source,
		builder:  builder,
		latest:   latest,
		observer: observer,
		schedule: schedule,
		logger:   log,
	}
}

// Name returns the job name
func (j *InsightRefreshJob) Name() string {
	return "insight_refresh"
}

// Schedule returns the configured cron schedule (with seconds)
func (j *InsightRefreshJob) Schedule() string {
	if j.schedule == "" {
		return "0 */15 * * * *"
	}
	return j.schedule
}

// Run loads datasets, builds a report and publishes it as the latest one.
// A failed run leaves the previous report in place.
func (j *InsightRefreshJob) Run(ctx context.Context) error {
	j.logger.Debug("Starting scheduled insight refresh")

	collection, err := j.source.LoadCollection(ctx)
	if err != nil {
		return fmt.Errorf("load datasets: %w", err)
	}

	report, err := j.builder.Run(ctx, collection)
	if err != nil {
		return fmt.Errorf("build report: %w", err)
	}

	j.latest.Store(report)
	if j.observer != nil {
		j.observer.ObserveReport(report)
	}

	for i, in := range report.Insights.Top {
		j.logger.WithFields(map[string]interface{}{
			"rank":     i + 1,
			"insight":  in.ID,
			"severity": in.Severity,
		}).Info(in.Title)
	}

	j.logger.WithFields(map[string]interface{}{
		"report_id": report.ID,
		"datasets":  len(report.Datasets),
		"insights":  len(report.Insights.All),
	}).Info("Insight refresh completed")

	return nil
}
