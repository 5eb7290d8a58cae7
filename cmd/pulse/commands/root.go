package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	env            string
	verbose        bool
	thresholdsFile string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pulse",
	Short: "Pulseboard - 멀티 도메인 KPI / 인사이트 엔진",
	Long: `Pulseboard Unified CLI

업로드된 데이터셋(Finance, Insurance, Healthcare, SaaS, Supply, E-commerce)에서
도메인 KPI를 계산하고 교차 도메인 인사이트를 순위화합니다.

Usage:
  go run ./cmd/pulse [command]

Examples:
  go run ./cmd/pulse analyze --dataset finance=tx.csv --dataset saas=mrr.csv
  go run ./cmd/pulse validate --domain supply shipments.csv
  go run ./cmd/pulse thresholds --thresholds config/thresholds.example.yaml
  go run ./cmd/pulse api`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&env, "env", "", "environment override (development|staging|production)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&thresholdsFile, "thresholds", "", "threshold policy YAML (default: KPI_THRESHOLDS_FILE or built-in)")
}
