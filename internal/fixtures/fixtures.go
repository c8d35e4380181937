// Package fixtures holds the canned interview questions and tier report
// payloads used in simulation mode and tests.
package fixtures

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/RayanBabar/validator-ai/internal/domain/report"
	"gopkg.in/yaml.v3"
)

//go:embed fixtures.yaml
var raw []byte

type fixtureFile struct {
	Questions []string                  `yaml:"questions"`
	Reports   map[string]map[string]any `yaml:"reports"`
}

// Library serves parsed fixture data.
type Library struct {
	file fixtureFile
}

// Load parses the embedded fixture file.
func Load() (*Library, error) {
	var f fixtureFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse fixtures: %w", err)
	}
	if len(f.Questions) == 0 {
		return nil, fmt.Errorf("fixtures contain no questions")
	}
	return &Library{file: f}, nil
}

// Questions returns the canned interview questions in order.
func (l *Library) Questions() []string {
	return l.file.Questions
}

// Body returns the fixture report payload for a tier.
func (l *Library) Body(tier report.Tier) (report.Body, error) {
	payload, ok := l.file.Reports[string(tier)]
	if !ok {
		return report.Body{}, fmt.Errorf("no fixture report for tier %q", tier)
	}
	// Route through JSON so the payload lands in the typed variant.
	data, err := json.Marshal(payload)
	if err != nil {
		return report.Body{}, fmt.Errorf("encode fixture: %w", err)
	}
	return report.DecodeVariant(tier, data)
}
