package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/pulseboard/backend/internal/contracts"
	"github.com/wonny/pulseboard/backend/internal/source"
	"github.com/wonny/pulseboard/backend/pkg/database"
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "데이터셋 분석 (KPI + 인사이트)",
	Long: `CSV 데이터셋(또는 Postgres에 저장된 데이터셋)을 읽어 도메인 KPI를 계산하고
교차 도메인 인사이트를 순위화합니다.

--dataset 은 domain=path 또는 domain=URL 형식이며 여러 번 지정할 수 있습니다.
도메인 별칭: supply_chain, logistics, e-commerce, retail, subscription ...

Example:
  go run ./cmd/pulse analyze --dataset finance=tx.csv --dataset supply=shipments.csv
  go run ./cmd/pulse analyze --dataset saas=mrr.csv --json --limit 5
  go run ./cmd/pulse analyze --db`,
	RunE: runAnalyze,
}

var (
	analyzeDatasets []string
	analyzeJSON     bool
	analyzeLimit    int
	analyzeFromDB   bool
)

func init() {
	rootCmd.AddCommand(analyzeCmd)

	// Flags
	analyzeCmd.Flags().StringArrayVar(&analyzeDatasets, "dataset", nil, "domain=path.csv 또는 domain=https://... (repeatable)")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "리포트를 JSON으로 출력")
	analyzeCmd.Flags().IntVar(&analyzeLimit, "limit", 0, "top 인사이트 개수 (기본: 정책 값)")
	analyzeCmd.Flags().BoolVar(&analyzeFromDB, "db", false, "pulse.datasets 테이블의 데이터셋도 포함")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if len(analyzeDatasets) == 0 && !analyzeFromDB {
		return fmt.Errorf("at least one --dataset or --db is required")
	}

	rt, err := loadRuntime(false)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// 1. CSV datasets
	collection, err := rt.loader.LoadSpecs(ctx, analyzeDatasets)
	if err != nil {
		return fmt.Errorf("load datasets: %w", err)
	}

	// 2. Postgres datasets (CSV wins on id collisions)
	if analyzeFromDB {
		db, err := database.New(ctx, rt.cfg)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer db.Close()

		stored, err := source.NewPostgresSource(db.Pool).LoadCollection(ctx)
		if err != nil {
			return fmt.Errorf("load stored datasets: %w", err)
		}
		mergeCollection(collection, stored)
	}

	// 3. Run
	report, err := rt.builder.WithLimit(analyzeLimit).Run(ctx, collection)
	if err != nil {
		return fmt.Errorf("analysis: %w", err)
	}

	out := cmd.OutOrStdout()
	if analyzeJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	PrintReport(out, report)
	return nil
}

// mergeCollection copies src datasets into dst unless the id is taken.
func mergeCollection(dst, src contracts.Collection) {
	for id, ds := range src {
		if _, exists := dst[id]; !exists {
			dst[id] = ds
		}
	}
}
