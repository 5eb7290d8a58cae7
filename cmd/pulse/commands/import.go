package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/pulseboard/backend/internal/source"
	"github.com/wonny/pulseboard/backend/pkg/database"
)

// importCmd loads CSV datasets into Postgres
var importCmd = &cobra.Command{
	Use:   "import",
	Short: "CSV 데이터셋을 Postgres에 저장",
	Long: `CSV 데이터셋을 pulse.datasets 테이블에 저장(upsert)합니다.
스케줄러의 insight_refresh 작업은 이 테이블을 읽습니다.
데이터셋 id는 파일명(확장자 제외)입니다.

Example:
  go run ./cmd/pulse import --dataset finance=tx.csv --dataset saas=mrr.csv`,
	RunE: runImport,
}

var importDatasets []string

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringArrayVar(&importDatasets, "dataset", nil, "domain=path.csv 또는 domain=https://... (repeatable)")
	_ = importCmd.MarkFlagRequired("dataset")
}

func runImport(cmd *cobra.Command, args []string) error {
	rt, err := loadRuntime(false)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	collection, err := rt.loader.LoadSpecs(ctx, importDatasets)
	if err != nil {
		return fmt.Errorf("load datasets: %w", err)
	}

	db, err := database.New(ctx, rt.cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	store := source.NewPostgresSource(db.Pool)
	out := cmd.OutOrStdout()
	for _, id := range collection.IDs() {
		ds := collection[id]
		if err := store.Upsert(ctx, ds); err != nil {
			return fmt.Errorf("store %s: %w", id, err)
		}
		msg := fmt.Sprintf("%s (%s): %d rows", id, ds.Domain, len(ds.Rows))
		if ds.Ready() {
			PrintSuccess(out, msg)
		} else {
			PrintWarning(out, msg+fmt.Sprintf(", missing %v", ds.Issues.Missing))
		}
	}

	return nil
}
