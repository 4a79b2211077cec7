package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/MarwanRagab123/Bank-risk-analysis/internal/domain/service"
	"github.com/MarwanRagab123/Bank-risk-analysis/internal/domain/valueobject"
)

// Policy is the scoring configuration a pipeline is built from.
//
//	threshold: High Risk
//	features:
//	  - count_transaction
//	  - avg_amount
type Policy struct {
	Threshold valueobject.RiskBand `yaml:"threshold"`
	Features  []valueobject.Feature `yaml:"features"`
}

// DefaultPolicy flags High Risk and above using every feature.
func DefaultPolicy() Policy {
	return Policy{
		Threshold: service.DefaultFlagThreshold,
		Features:  valueobject.DefaultFeatures(),
	}
}

// LoadPolicyFile reads a YAML policy from path.
func LoadPolicyFile(path string) (Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Policy{}, fmt.Errorf("failed to read scoring policy: %w", err)
	}
	p, err := ParsePolicy(bytes.NewReader(data))
	if err != nil {
		return Policy{}, fmt.Errorf("scoring policy %s: %w", path, err)
	}
	return p, nil
}

// ParsePolicy decodes a YAML policy. Omitted keys keep their defaults and
// unknown keys are rejected.
func ParsePolicy(r io.Reader) (Policy, error) {
	var p Policy
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return Policy{}, fmt.Errorf("failed to decode scoring policy: %w", err)
	}

	def := DefaultPolicy()
	if p.Threshold.IsZero() {
		p.Threshold = def.Threshold
	}
	if len(p.Features) == 0 {
		p.Features = def.Features
	}
	if err := validateFeatures(p.Features); err != nil {
		return Policy{}, err
	}
	return p, nil
}

// Pipeline builds the three-stage pipeline this policy describes.
func (p Policy) Pipeline() *service.Pipeline {
	return service.NewPipeline(
		service.NewFeatureBuilder(),
		service.NewRiskScorer(p.Features...),
		service.NewTransactionFlagger(p.Threshold),
	)
}

func validateFeatures(features []valueobject.Feature) error {
	seen := make(map[string]bool, len(features))
	for _, f := range features {
		if seen[f.Column()] {
			return fmt.Errorf("feature %q listed twice", f)
		}
		seen[f.Column()] = true
	}
	return nil
}
