package policy

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/pulseboard/backend/internal/kpi"
)

func writePolicy(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "thresholds.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	p := Default()
	require.NoError(t, Validate(p))
	assert.Equal(t, kpi.DefaultThresholds(), p.Thresholds)
	assert.Equal(t, 3, p.Insights.Limit)
}

func TestLoad_OverlaysDefaults(t *testing.T) {
	path := writePolicy(t, `
meta:
  policy_id: strict
thresholds:
  finance:
    high_value_amount: 5000
  supply:
    high_delay_days: 1
insights:
  limit: 5
`)

	p, raw, err := Load(path)
	require.NoError(t, err)
	assert.NotEmpty(t, raw)
	assert.Equal(t, "strict", p.Meta.PolicyID)
	assert.Equal(t, 5000.0, p.Thresholds.Finance.HighValueAmount)
	assert.Equal(t, 1.0, p.Thresholds.Supply.HighDelayDays)
	assert.Equal(t, 5, p.Insights.Limit)

	// untouched keys keep defaults
	assert.Equal(t, 30, p.Thresholds.WindowDays)
	assert.Equal(t, 25000.0, p.Thresholds.Insurance.HighSeverityClaim)
	assert.Equal(t, 60, p.Thresholds.Ecommerce.InactivityDays)
}

func TestLoad_RejectsUnknownFields(t *testing.T) {
	path := writePolicy(t, `
thresholds:
  finance:
    high_valu_amount: 5000
`)

	_, _, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "high_valu_amount")
}

func TestLoad_ValidationError(t *testing.T) {
	path := writePolicy(t, `
thresholds:
  window_days: 0
`)

	_, _, err := Load(path)
	require.Error(t, err)

	var verr ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "thresholds.window_days", verr.Field)
}

func TestValidate_Table(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *Policy)
		field  string
	}{
		{"missing id", func(p *Policy) { p.Meta.PolicyID = "" }, "meta.policy_id"},
		{"negative high value", func(p *Policy) { p.Thresholds.Finance.HighValueAmount = -1 }, "thresholds.finance.high_value_amount"},
		{"zero severity", func(p *Policy) { p.Thresholds.Insurance.HighSeverityClaim = 0 }, "thresholds.insurance.high_severity_claim"},
		{"zero cost", func(p *Policy) { p.Thresholds.Healthcare.HighCostCharge = 0 }, "thresholds.healthcare.high_cost_charge"},
		{"zero delay", func(p *Policy) { p.Thresholds.Supply.HighDelayDays = 0 }, "thresholds.supply.high_delay_days"},
		{"inactivity shorter than window", func(p *Policy) { p.Thresholds.Ecommerce.InactivityDays = 10 }, "thresholds.ecommerce.inactivity_days"},
		{"zero limit", func(p *Policy) { p.Insights.Limit = 0 }, "insights.limit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Default()
			tt.mutate(p)
			err := Validate(p)
			var verr ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestParse_EmptyDocumentIsDefault(t *testing.T) {
	p, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), p)
}

func TestHash(t *testing.T) {
	h1, err := Hash(Default())
	require.NoError(t, err)
	assert.Len(t, h1, 64)

	h2, err := Hash(Default())
	require.NoError(t, err)
	assert.Equal(t, h1, h2)

	p := Default()
	p.Thresholds.WindowDays = 45
	h3, err := Hash(p)
	require.NoError(t, err)
	assert.NotEqual(t, h1, h3)
}

func TestLoadOrDefault(t *testing.T) {
	p, err := LoadOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, "default", p.Meta.PolicyID)

	_, err = LoadOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestExamplePolicyMatchesDefaults(t *testing.T) {
	p, _, err := Load(filepath.Join("..", "..", "config", "thresholds.example.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "example-v1", p.Meta.PolicyID)
	assert.Equal(t, kpi.DefaultThresholds(), p.Thresholds)
	assert.Equal(t, Default().Insights, p.Insights)
}
