package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/wonny/pulseboard/backend/internal/source"
	"github.com/wonny/pulseboard/backend/internal/validator"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate [file.csv...]",
	Short: "데이터셋 헤더 검증",
	Long: `CSV 파일의 헤더가 도메인 KPI 계산에 필요한 컬럼을 갖추었는지 확인합니다.
KPI는 계산하지 않습니다. 준비되지 않은 파일이 있으면 exit code 1.

Example:
  go run ./cmd/pulse validate --domain saas mrr.csv
  go run ./cmd/pulse validate --domain insurance claims_2023.csv claims_2024.csv`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

var validateDomain string

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(&validateDomain, "domain", "", "데이터셋 도메인 (finance|insurance|healthcare|saas|supply|ecommerce)")
	_ = validateCmd.MarkFlagRequired("domain")
}

func runValidate(cmd *cobra.Command, args []string) error {
	domain, err := source.ParseDomain(validateDomain)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	loader := source.CSVLoader{}
	notReady := 0

	for _, path := range args {
		ds, err := loader.LoadFile(path, domain)
		if err != nil {
			return err
		}

		res := validator.Validate(domain, ds.Rows)
		PrintHeader(out, fmt.Sprintf("%s (%s)", filepath.Base(path), domain))
		PrintKeyValue(out, "Rows", fmt.Sprintf("%d", len(ds.Rows)), 8)
		PrintKeyValue(out, "Columns", fmt.Sprintf("%d", len(res.Cols)), 8)
		PrintList(out, res.Notes)

		if res.Ready() {
			PrintSuccess(out, "ready")
		} else {
			notReady++
			PrintError(out, fmt.Sprintf("missing: %v", res.Missing))
		}
	}

	if notReady > 0 {
		return fmt.Errorf("%d of %d dataset(s) not ready", notReady, len(args))
	}
	return nil
}
