package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/wonny/pulseboard/backend/internal/policy"
)

// thresholdsCmd prints the effective threshold policy
var thresholdsCmd = &cobra.Command{
	Use:   "thresholds",
	Short: "적용 중인 임계값 정책 출력",
	Long: `현재 적용되는 임계값 정책(--thresholds, KPI_THRESHOLDS_FILE 또는 기본값)과
그 SHA256 해시를 출력합니다. 해시는 리포트 재현성 확인에 사용합니다.

Example:
  go run ./cmd/pulse thresholds
  go run ./cmd/pulse thresholds --thresholds config/thresholds.example.yaml --format json`,
	RunE: runThresholds,
}

var thresholdsFormat string

func init() {
	rootCmd.AddCommand(thresholdsCmd)

	thresholdsCmd.Flags().StringVar(&thresholdsFormat, "format", "yaml", "출력 형식 (yaml|json)")
}

func runThresholds(cmd *cobra.Command, args []string) error {
	rt, err := loadRuntime(false)
	if err != nil {
		return err
	}

	hash, err := policy.Hash(rt.policy)
	if err != nil {
		return fmt.Errorf("hash policy: %w", err)
	}

	source := rt.policyPath
	if source == "" {
		source = "(built-in)"
	}

	out := cmd.OutOrStdout()
	switch thresholdsFormat {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]interface{}{
			"source": source,
			"hash":   hash,
			"policy": rt.policy,
		})
	case "yaml":
		fmt.Fprintf(out, "# source: %s\n# sha256: %s\n", source, hash)
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(rt.policy); err != nil {
			return fmt.Errorf("encode policy: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("--format must be yaml or json")
	}
}
