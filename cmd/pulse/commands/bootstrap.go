package commands

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/time/rate"

	"github.com/wonny/pulseboard/backend/internal/insight"
	"github.com/wonny/pulseboard/backend/internal/kpi"
	"github.com/wonny/pulseboard/backend/internal/pipeline"
	"github.com/wonny/pulseboard/backend/internal/policy"
	"github.com/wonny/pulseboard/backend/internal/source"
	"github.com/wonny/pulseboard/backend/pkg/config"
	"github.com/wonny/pulseboard/backend/pkg/httputil"
	"github.com/wonny/pulseboard/backend/pkg/logger"
)

// runtimeDeps is what every command builds before doing its work.
type runtimeDeps struct {
	cfg        *config.Config
	log        *logger.Logger
	policy     *policy.Policy
	policyPath string
	builder    *pipeline.Builder
	loader     source.Loader
}

// loadRuntime loads config, logger, threshold policy and the analysis builder.
// One-shot commands log warnings to stderr so stdout stays clean for reports;
// long-running commands (daemon) log to stdout at the configured level.
func loadRuntime(daemon bool) (*runtimeDeps, error) {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if env != "" {
		switch env {
		case "development", "staging", "production":
			cfg.Env = env
		default:
			return nil, fmt.Errorf("--env must be one of: development, staging, production")
		}
	}

	// 2. Initialize logger
	var out io.Writer = os.Stdout
	if !daemon {
		out = os.Stderr
		if !verbose {
			cfg.LogLevel = "warn"
		}
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	log := logger.NewWithWriter(cfg, out)

	// 3. Threshold policy: --thresholds > KPI_THRESHOLDS_FILE > built-in
	path := thresholdsFile
	if path == "" {
		path = cfg.Engine.ThresholdsFile
	}
	pol, err := policy.LoadOrDefault(path)
	if err != nil {
		return nil, fmt.Errorf("load thresholds: %w", err)
	}

	limit := cfg.Engine.InsightLimit
	if path != "" {
		limit = pol.Insights.Limit
	}

	// 4. Analysis builder
	builder := pipeline.NewBuilder(kpi.NewCalculator(pol.Thresholds), insight.NewEngine(), limit, log)

	// 5. Dataset loader (files and http(s) URLs)
	client := httputil.New(cfg, log).
		WithRateLimiter(rate.NewLimiter(rate.Limit(cfg.Fetch.RateLimitRPS), 1))
	loader := source.Loader{HTTP: source.NewHTTPLoader(client, cfg.Fetch.MaxBytes)}

	log.WithFields(map[string]interface{}{
		"policy_id": pol.Meta.PolicyID,
		"limit":     limit,
	}).Debug("Runtime initialized")

	return &runtimeDeps{
		cfg:        cfg,
		log:        log,
		policy:     pol,
		policyPath: path,
		builder:    builder,
		loader:     loader,
	}, nil
}
