package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wonny/pulseboard/backend/internal/api"
	"github.com/wonny/pulseboard/backend/internal/api/handlers"
	"github.com/wonny/pulseboard/backend/internal/pipeline"
	"github.com/wonny/pulseboard/backend/internal/scheduler"
	"github.com/wonny/pulseboard/backend/pkg/database"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "API 서버 시작",
	Long: `REST API 서버를 시작합니다.

DATABASE_URL 이 설정되어 있으면 insight_refresh 작업을 같은 프로세스에서
스케줄하여 /api/insights/latest 를 갱신합니다.

Endpoints:
  GET  /health               - Health check
  GET  /metrics              - Prometheus metrics (METRICS_ENABLED)
  POST /api/analyze          - 데이터셋 분석
  POST /api/validate         - 헤더 검증
  GET  /api/insights/latest  - 최근 스케줄 리포트

Example:
  go run ./cmd/pulse api
  go run ./cmd/pulse api --port 8080`,
	RunE: runAPIServer,
}

var (
	apiPort string
)

func init() {
	rootCmd.AddCommand(apiCmd)

	// Flags
	apiCmd.Flags().StringVar(&apiPort, "port", "", "API 서버 포트 (기본: PORT)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Pulseboard API Server ===")

	// 1. Load config, logger, policy
	rt, err := loadRuntime(true)
	if err != nil {
		return err
	}
	cfg, log := rt.cfg, rt.log

	// Override port if flag is set
	if apiPort != "" {
		cfg.Port = apiPort
	}

	log.WithFields(map[string]interface{}{
		"port":      cfg.Port,
		"env":       cfg.Env,
		"policy_id": rt.policy.Meta.PolicyID,
	}).Info("Initializing API server")

	// 2. Metrics
	var metrics *api.Metrics
	var observer handlers.ReportObserver
	if cfg.MetricsEnabled {
		metrics = api.NewMetrics()
		observer = metrics
	}

	// 3. Latest report holder, refreshed by the scheduler when a database is configured
	latest := pipeline.NewLatest()

	var sched *scheduler.Scheduler
	if cfg.RequireDatabase() == nil {
		db, err := database.New(context.Background(), cfg)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer db.Close()

		log.Info("Connected to database")

		sched, err = newRefreshScheduler(rt, db, latest, observer)
		if err != nil {
			return err
		}
		sched.Start()
		defer sched.Stop()

		// warm up so /api/insights/latest is served right away
		if err := sched.RunJob(refreshJobName); err != nil {
			log.WithError(err).Warn("Initial insight refresh not started")
		}
	} else {
		log.Info("DATABASE_URL not set, scheduled insight refresh disabled")
	}

	// 4. Handlers and server (router + middleware composed by api.New)
	analysisHandler := handlers.NewAnalysisHandler(rt.builder, latest, observer, log)
	server := api.New(cfg, analysisHandler, metrics, log)

	// 5. Serve until interrupted; Run drains in-flight requests on shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("\n✅ Server running on http://localhost:%s\n", cfg.Port)
	fmt.Println("\nPress Ctrl+C to stop")

	if err := server.Run(ctx); err != nil {
		return err
	}

	log.Info("Server stopped")
	return nil
}
