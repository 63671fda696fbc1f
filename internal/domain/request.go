package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Request kinds accepted on the source topic.
const (
	KindCurrent = "current"
	KindWeekly  = "weekly"
	KindAssess  = "assess"
)

// AdvisoryRequest is the JSON payload of one advisory request message.
type AdvisoryRequest struct {
	RequestID    string           `json:"request_id"`
	Kind         string           `json:"kind"` // "current" (default), "weekly", or "assess"
	FarmerID     string           `json:"farmer_id"`
	District     string           `json:"district"`
	Crops        []string         `json:"crops"`
	Weather      map[string]any   `json:"weather"`
	Season       string           `json:"season"`
	RiskOverride string           `json:"risk_override"`
	Forecast     []RawForecastDay `json:"forecast"`
}

// AdvisoryBundle is the processed result published to the sink topic. The
// populated section depends on the request kind: current fills Advisories and
// Rendered, weekly fills Weekly plus the week-level Overall/Summary, assess
// fills Assessment, Plans, and Fieldwork.
type AdvisoryBundle struct {
	ID             string    `json:"id"`
	RequestID      string    `json:"request_id"`
	Kind           string    `json:"kind"`
	FarmerID       string    `json:"farmer_id"`
	District       string    `json:"district"`
	DistrictBangla string    `json:"district_bangla,omitempty"`
	GeneratedAt    time.Time `json:"generated_at"`

	Advisories []Advisory    `json:"advisories,omitempty"`
	Rendered   []string      `json:"rendered,omitempty"`
	Weekly     []DayAdvisory `json:"weekly,omitempty"`

	// Week-level aggregate for weekly bundles: the threshold-count scorer run
	// over the full window, plus its rendered Bangla headline.
	Overall *ForecastAssessment `json:"overall,omitempty"`
	Summary string              `json:"summary,omitempty"`

	// Weighted-factor results for assess bundles.
	Assessment *Assessment       `json:"assessment,omitempty"`
	Plans      []AdvisoryPlan    `json:"plans,omitempty"`
	Fieldwork  *FieldworkOutlook `json:"fieldwork,omitempty"`

	RawPayload json.RawMessage `json:"-"`
}

// ParseAdvisoryRequest deserializes a RawEvent's value into an AdvisoryRequest.
// An empty kind defaults to current.
func ParseAdvisoryRequest(raw RawEvent) (AdvisoryRequest, error) {
	var req AdvisoryRequest
	if err := json.Unmarshal(raw.Value, &req); err != nil {
		return AdvisoryRequest{}, fmt.Errorf("parse advisory request: %w", err)
	}

	req.Kind = strings.ToLower(strings.TrimSpace(req.Kind))
	if req.Kind == "" {
		req.Kind = KindCurrent
	}
	return req, nil
}

// ProcessRequest runs the advisory path selected by the request kind and
// assembles the bundle. Bundle IDs are deterministic over the request's key
// fields, so replaying a message produces the same bundle ID.
func ProcessRequest(raw RawEvent) (AdvisoryBundle, error) {
	req, err := ParseAdvisoryRequest(raw)
	if err != nil {
		return AdvisoryBundle{}, err
	}

	bundle := AdvisoryBundle{
		ID:             generateBundleID(req),
		RequestID:      req.RequestID,
		Kind:           req.Kind,
		FarmerID:       req.FarmerID,
		District:       req.District,
		DistrictBangla: DistrictNameBangla(req.District),
		GeneratedAt:    clock.Now(),
		RawPayload:     raw.Value,
	}

	switch req.Kind {
	case KindWeekly:
		forecast, err := BuildForecast(req.Forecast)
		if err != nil {
			return AdvisoryBundle{}, err
		}
		bundle.Weekly = GenerateWeeklyAdvisory(forecast)
		overall, summary := SummarizeWeek(forecast)
		bundle.Overall = &overall
		bundle.Summary = summary
	case KindAssess:
		reading, err := NormalizeReading(req.Weather)
		if err != nil {
			return AdvisoryBundle{}, err
		}
		assessment := AssessReading(reading)
		bundle.Assessment = &assessment
		for _, crop := range req.Crops {
			cropText := strings.TrimSpace(crop)
			if cropText == "" {
				continue
			}
			bundle.Plans = append(bundle.Plans, BuildAdvisoryPlan(cropText, reading, assessment))
		}
		outlook := EvaluateFieldwork(reading)
		bundle.Fieldwork = &outlook
	case KindCurrent:
		advisories, err := GenerateCropsAdvisory(req.Crops, req.Weather, req.Season, req.RiskOverride)
		if err != nil {
			return AdvisoryBundle{}, err
		}
		bundle.Advisories = advisories
		bundle.Rendered = RenderAdvisories(advisories)
	default:
		return AdvisoryBundle{}, fmt.Errorf("advisory request %q: unknown kind %q", req.RequestID, req.Kind)
	}

	return bundle, nil
}

// generateBundleID produces a deterministic ID from the request's key fields.
// Deterministic IDs make downstream upserts idempotent and keep replays from
// fanning out duplicate SMS alerts.
func generateBundleID(req AdvisoryRequest) string {
	input := fmt.Sprintf("%s|%s|%s|%s|%s",
		req.RequestID, req.Kind, req.FarmerID, req.District, strings.Join(req.Crops, ","))
	hash := sha256.Sum256([]byte(input))
	short := hex.EncodeToString(hash[:8])
	if req.Kind == "" {
		return short
	}
	return req.Kind + "-" + short
}
