// Package policy loads the threshold policy file that parameterises the KPI
// calculators and the insight engine.
package policy

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/wonny/pulseboard/backend/internal/kpi"
)

// Policy is the full threshold policy
// ⭐ SSOT: 임계값 정책 파일 구조
type Policy struct {
	Meta       Meta           `yaml:"meta" json:"meta"`
	Thresholds kpi.Thresholds `yaml:"thresholds" json:"thresholds"`
	Insights   Insights       `yaml:"insights" json:"insights"`
}

// Meta identifies a policy revision.
type Meta struct {
	PolicyID    string `yaml:"policy_id" json:"policy_id"`
	Description string `yaml:"description" json:"description"`
}

// Insights tunes the rule engine output.
type Insights struct {
	Limit int `yaml:"limit" json:"limit"` // size of the top list, 3
}

// Default returns the built-in policy.
func Default() *Policy {
	return &Policy{
		Meta: Meta{
			PolicyID:    "default",
			Description: "built-in thresholds",
		},
		Thresholds: kpi.DefaultThresholds(),
		Insights: Insights{
			Limit: 3,
		},
	}
}

// Load reads a YAML policy file and returns it with the raw bytes.
// Keys omitted from the file keep their default values.
func Load(path string) (*Policy, []byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read policy %s: %w", path, err)
	}

	p, err := Parse(data)
	if err != nil {
		return nil, data, fmt.Errorf("policy %s: %w", path, err)
	}
	return p, data, nil
}

// Parse decodes YAML over the defaults and validates the result.
// KnownFields(true): 오타/미사용 필드는 즉시 실패
func Parse(data []byte) (*Policy, error) {
	p := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(p); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	if err := Validate(p); err != nil {
		return nil, err
	}
	return p, nil
}

// LoadOrDefault loads path, or returns the default policy when path is empty.
func LoadOrDefault(path string) (*Policy, error) {
	if path == "" {
		return Default(), nil
	}
	p, _, err := Load(path)
	return p, err
}

// Hash generates a SHA256 hash of the policy (canonical JSON).
// 주의: map 대신 struct 사용으로 해시 재현성 보장
func Hash(p *Policy) (string, error) {
	jsonBytes, err := json.Marshal(p)
	if err != nil {
		return "", err
	}

	sum := sha256.Sum256(jsonBytes)
	return hex.EncodeToString(sum[:]), nil
}
