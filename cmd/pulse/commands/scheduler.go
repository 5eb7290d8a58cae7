package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wonny/pulseboard/backend/internal/pipeline"
	"github.com/wonny/pulseboard/backend/internal/scheduler"
	"github.com/wonny/pulseboard/backend/internal/scheduler/jobs"
	"github.com/wonny/pulseboard/backend/internal/source"
	"github.com/wonny/pulseboard/backend/pkg/database"
)

const refreshJobName = "insight_refresh"

// schedulerCmd represents the scheduler command
var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "스케줄러 관리",
	Long: `스케줄러를 시작하거나 작업을 관리합니다.

Subcommands:
  start   - 스케줄러 시작
  list    - 등록된 작업 목록
  run     - 특정 작업 즉시 실행 (완료까지 대기)

Example:
  go run ./cmd/pulse scheduler start
  go run ./cmd/pulse scheduler list
  go run ./cmd/pulse scheduler run insight_refresh`,
}

var (
	schedulerStartCmd = &cobra.Command{
		Use:   "start",
		Short: "스케줄러 시작",
		Long: `스케줄러를 시작하고 등록된 모든 작업을 스케줄합니다.

등록되는 작업:
- insight_refresh: INSIGHT_REFRESH_SCHEDULE (기본 15분마다)
  pulse.datasets 를 읽어 KPI/인사이트를 다시 계산

스케줄러는 Ctrl+C로 종료할 수 있습니다.`,
		RunE: runScheduler,
	}

	schedulerListCmd = &cobra.Command{
		Use:   "list",
		Short: "등록된 작업 목록",
		RunE:  listJobs,
	}

	schedulerRunCmd = &cobra.Command{
		Use:   "run [job_name]",
		Short: "특정 작업 즉시 실행",
		Args:  cobra.ExactArgs(1),
		RunE:  runJob,
	}
)

func init() {
	rootCmd.AddCommand(schedulerCmd)
	schedulerCmd.AddCommand(schedulerStartCmd)
	schedulerCmd.AddCommand(schedulerListCmd)
	schedulerCmd.AddCommand(schedulerRunCmd)
}

// newRefreshScheduler registers the insight refresh job over the Postgres source.
func newRefreshScheduler(rt *runtimeDeps, db *database.DB, latest *pipeline.Latest, observer jobs.ReportObserver) (*scheduler.Scheduler, error) {
	sched := scheduler.New(rt.log)

	job := jobs.NewInsightRefreshJob(
		source.NewPostgresSource(db.Pool),
		rt.builder,
		latest,
		observer,
		rt.cfg.Engine.RefreshSchedule,
		rt.log,
	)
	if err := sched.AddJob(job); err != nil {
		return nil, fmt.Errorf("register %s: %w", job.Name(), err)
	}
	return sched, nil
}

func initScheduler() (*scheduler.Scheduler, *database.DB, error) {
	rt, err := loadRuntime(true)
	if err != nil {
		return nil, nil, err
	}

	db, err := database.New(context.Background(), rt.cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to database: %w", err)
	}

	sched, err := newRefreshScheduler(rt, db, pipeline.NewLatest(), nil)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return sched, db, nil
}

func runScheduler(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Pulseboard Scheduler ===")

	sched, db, err := initScheduler()
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}
	defer db.Close()

	sched.Start()

	fmt.Println("\n✅ Scheduler started successfully")
	fmt.Println("\nRegistered jobs:")
	for _, jobName := range sched.GetAllJobs() {
		next, _ := sched.NextRun(jobName)
		fmt.Printf("  - %s (next: %s)\n", jobName, next.Format("2006-01-02 15:04:05"))
	}
	fmt.Println("\nPress Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	fmt.Println("\nShutting down scheduler...")
	sched.Stop()
	fmt.Println("Scheduler stopped")

	return nil
}

func listJobs(cmd *cobra.Command, args []string) error {
	sched, db, err := initScheduler()
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}
	defer db.Close()

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Registered jobs:")
	for name, stat := range sched.GetJobStats() {
		fmt.Fprintf(out, "  - %s  [%s]\n", name, stat.Schedule)
	}

	return nil
}

func runJob(cmd *cobra.Command, args []string) error {
	jobName := args[0]

	sched, db, err := initScheduler()
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}
	defer db.Close()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Running job: %s\n", jobName)

	result, err := sched.RunJobSync(jobName)
	if err != nil {
		return fmt.Errorf("run job: %w", err)
	}

	PrintKeyValue(out, "Duration", result.Duration.String(), 10)
	if !result.Success {
		PrintError(out, result.Error)
		return fmt.Errorf("job %s failed", jobName)
	}
	PrintSuccess(out, "Job completed")
	return nil
}
