package report

import (
	"encoding/json"
	"fmt"
	"time"
)

// Record is the authoritative output for one (thread, tier) pair. A persisted
// record always takes precedence over a remote fetch for the same key.
type Record struct {
	ThreadID    string    `json:"thread_id"`
	Tier        Tier      `json:"tier"`
	Body        Body      `json:"body"`
	GeneratedAt time.Time `json:"generated_at"`
}

// Body is a tagged union keyed by tier. Exactly one variant is populated;
// the rendering layer switches on the tag rather than probing optional
// fields.
type Body struct {
	Tier     Tier            `json:"tier"`
	Free     *FreeReport     `json:"free,omitempty"`
	Basic    *BasicReport    `json:"basic,omitempty"`
	Standard *StandardReport `json:"standard,omitempty"`
	Premium  *PremiumReport  `json:"premium,omitempty"`
}

// Validate checks that the variant matching the tag is present.
func (b Body) Validate() error {
	var ok bool
	switch b.Tier {
	case TierFree:
		ok = b.Free != nil
	case TierBasic:
		ok = b.Basic != nil
	case TierStandard:
		ok = b.Standard != nil
	case TierPremium:
		ok = b.Premium != nil
	default:
		return fmt.Errorf("unknown tier %q", b.Tier)
	}
	if !ok {
		return fmt.Errorf("report body missing %s payload", b.Tier)
	}
	return nil
}

// FreeReport is the half-page instant viability snapshot.
type FreeReport struct {
	Title                 string  `json:"title"`
	ViabilityScore        float64 `json:"viability_score"`
	GaugeStatus           string  `json:"gauge_status"`
	ValueProposition      string  `json:"value_proposition"`
	CustomerProfile       string  `json:"customer_profile"`
	WhatIfScenario        string  `json:"what_if_scenario"`
	PackageRecommendation string  `json:"package_recommendation"`
	NextStep              string  `json:"personalized_next_step"`
}

// BasicReport is the short-form paid deliverable.
type BasicReport struct {
	Title            string              `json:"title"`
	GoNoGoScore      float64             `json:"go_no_go_score"`
	ExecutiveSummary string              `json:"executive_summary"`
	CanvasBlocks     map[string][]string `json:"business_model_canvas"`
}

// ModuleSection is one analysis module's content within a long-form report.
type ModuleSection struct {
	Module  string `json:"module"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// StandardReport is the long-form paid deliverable.
type StandardReport struct {
	Title            string             `json:"title"`
	GoNoGoScore      float64            `json:"go_no_go_score"`
	ScoreBreakdown   map[string]float64 `json:"score_breakdown"`
	ExecutiveSummary string             `json:"executive_summary"`
	Modules          []ModuleSection    `json:"modules"`
}

// PitchSlide is one slide of the premium pitch deck outline.
type PitchSlide struct {
	Number       int      `json:"slide_number"`
	Title        string   `json:"title"`
	Bullets      []string `json:"content_bullets"`
	SpeakerNotes string   `json:"speaker_notes"`
}

// PremiumReport extends the standard deliverable with an investor pitch deck.
type PremiumReport struct {
	StandardReport
	PitchDeck []PitchSlide `json:"pitch_deck"`
}

// DecodeVariant unmarshals a bare tier payload (no union wrapper) into a
// tagged body. This is the shape the backend and the fixture files use.
func DecodeVariant(tier Tier, data []byte) (Body, error) {
	if len(data) == 0 || string(data) == "null" {
		return Body{}, fmt.Errorf("empty %s report payload", tier)
	}
	body := Body{Tier: tier}
	var err error
	switch tier {
	case TierFree:
		body.Free = &FreeReport{}
		err = json.Unmarshal(data, body.Free)
	case TierBasic:
		body.Basic = &BasicReport{}
		err = json.Unmarshal(data, body.Basic)
	case TierStandard:
		body.Standard = &StandardReport{}
		err = json.Unmarshal(data, body.Standard)
	case TierPremium:
		body.Premium = &PremiumReport{}
		err = json.Unmarshal(data, body.Premium)
	default:
		return Body{}, fmt.Errorf("unknown tier %q", tier)
	}
	if err != nil {
		return Body{}, fmt.Errorf("decode %s report: %w", tier, err)
	}
	return body, nil
}

// EncodeBody serializes a body for storage.
func EncodeBody(b Body) ([]byte, error) {
	return json.Marshal(b)
}

// DecodeBody deserializes a stored body.
func DecodeBody(data []byte) (Body, error) {
	var b Body
	if err := json.Unmarshal(data, &b); err != nil {
		return Body{}, fmt.Errorf("decode report body: %w", err)
	}
	return b, nil
}
