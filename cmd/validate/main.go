// Command validate performs data integrity checks across the advisory
// fixtures: raw request JSON and processed bundle JSON. It verifies request
// well-formedness, re-runs the advisory generation to confirm the bundle
// fixture matches pipeline behavior, and checks bundle schema invariants.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -requests-json data/fixtures/advisory_requests.json \
//	  -bundles-json data/fixtures/advisory_bundles.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/krishisheba/agri-advisory/internal/domain"
)

var fixedNow = time.Date(2024, time.November, 15, 9, 0, 0, 0, time.UTC)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	requestsJSON := flag.String("requests-json", "", "path to raw request JSON fixture")
	bundlesJSON := flag.String("bundles-json", "", "path to processed bundle JSON fixture")
	flag.Parse()

	if *requestsJSON == "" || *bundlesJSON == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*requestsJSON, *bundlesJSON); code != 0 {
		os.Exit(code)
	}
}

func run(requestsPath, bundlesPath string) int {
	// Fix the clock matching genfixtures so regenerated bundles compare equal.
	domain.SetClock(clockwork.NewFakeClockAt(fixedNow))
	defer domain.SetClock(nil)

	fmt.Println("=== Advisory Fixture Integrity Validation ===")
	fmt.Println()

	requests, err := loadJSON[domain.AdvisoryRequest](requestsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load request fixture: %v\n", err)
		return 1
	}

	bundles, err := loadJSON[domain.AdvisoryBundle](bundlesPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load bundle fixture: %v\n", err)
		return 1
	}

	phases := []*phase{
		validateRequests(requests),
		validateTransformation(requests, bundles),
		validateBundleSchema(bundles),
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Records: %d requests, %d bundles\n", len(requests), len(bundles))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

func loadJSON[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// ── Phase 1: Request Integrity ──
// Validates that the request fixture is well-formed.

func validateRequests(requests []domain.AdvisoryRequest) *phase {
	p := &phase{name: "Phase 1: Request Integrity"}

	seenIDs := map[string]bool{}
	for i, req := range requests {
		if req.RequestID == "" {
			p.errorf("request %d: missing request_id", i)
			continue
		}
		if seenIDs[req.RequestID] {
			p.errorf("request %d: duplicate request_id %q", i, req.RequestID)
		}
		seenIDs[req.RequestID] = true

		switch req.Kind {
		case domain.KindCurrent:
			if len(req.Crops) == 0 {
				p.errorf("request %s: current kind with no crops", req.RequestID)
			}
			if _, err := domain.NormalizeReading(req.Weather); err != nil {
				p.errorf("request %s: invalid weather: %v", req.RequestID, err)
			}
		case domain.KindWeekly:
			if len(req.Forecast) == 0 {
				p.errorf("request %s: weekly kind with no forecast days", req.RequestID)
			}
			if _, err := domain.BuildForecast(req.Forecast); err != nil {
				p.errorf("request %s: invalid forecast: %v", req.RequestID, err)
			}
		case domain.KindAssess:
			if len(req.Crops) == 0 {
				p.errorf("request %s: assess kind with no crops", req.RequestID)
			}
			if _, err := domain.NormalizeReading(req.Weather); err != nil {
				p.errorf("request %s: invalid weather: %v", req.RequestID, err)
			}
		default:
			p.errorf("request %s: unknown kind %q", req.RequestID, req.Kind)
		}

		if req.RiskOverride != "" {
			if _, ok := domain.ParseRiskLevel(req.RiskOverride); !ok {
				p.errorf("request %s: invalid risk_override %q", req.RequestID, req.RiskOverride)
			}
		}
	}
	return p
}

// ── Phase 2: Transformation ──
// Re-runs advisory generation on each request and compares with the bundle fixture.

func validateTransformation(requests []domain.AdvisoryRequest, bundles []domain.AdvisoryBundle) *phase {
	p := &phase{name: "Phase 2: Transformation (regeneration)"}

	bundleByRequest := map[string]*domain.AdvisoryBundle{}
	for i := range bundles {
		bundleByRequest[bundles[i].RequestID] = &bundles[i]
	}

	if len(bundles) != len(requests) {
		p.errorf("count mismatch: %d requests, %d bundles", len(requests), len(bundles))
	}

	for _, req := range requests {
		payload, err := json.Marshal(req)
		if err != nil {
			p.errorf("request %s: marshal: %v", req.RequestID, err)
			continue
		}
		expected, err := domain.ProcessRequest(domain.RawEvent{Value: payload, Timestamp: fixedNow})
		if err != nil {
			p.errorf("request %s: process: %v", req.RequestID, err)
			continue
		}

		actual, ok := bundleByRequest[req.RequestID]
		if !ok {
			p.errorf("request %s: no bundle in fixture", req.RequestID)
			continue
		}

		compareBundles(p, expected, actual)
	}
	return p
}

func compareBundles(p *phase, expected domain.AdvisoryBundle, actual *domain.AdvisoryBundle) {
	id := expected.RequestID

	if actual.ID != expected.ID {
		p.errorf("request %s: bundle ID: expected %q, got %q", id, expected.ID, actual.ID)
	}
	if actual.Kind != expected.Kind {
		p.errorf("request %s: kind: expected %q, got %q", id, expected.Kind, actual.Kind)
	}
	if actual.DistrictBangla != expected.DistrictBangla {
		p.errorf("request %s: district_bangla: expected %q, got %q", id, expected.DistrictBangla, actual.DistrictBangla)
	}
	if !actual.GeneratedAt.Equal(expected.GeneratedAt) {
		p.errorf("request %s: generated_at: expected %s, got %s", id,
			expected.GeneratedAt.Format(time.RFC3339), actual.GeneratedAt.Format(time.RFC3339))
	}

	if len(actual.Advisories) != len(expected.Advisories) {
		p.errorf("request %s: advisory count: expected %d, got %d", id, len(expected.Advisories), len(actual.Advisories))
		return
	}
	for i := range expected.Advisories {
		exp, act := expected.Advisories[i], actual.Advisories[i]
		if act.Crop != exp.Crop {
			p.errorf("request %s advisory %d: crop: expected %q, got %q", id, i, exp.Crop, act.Crop)
		}
		if act.Risk != exp.Risk {
			p.errorf("request %s advisory %d: risk: expected %q, got %q", id, i, exp.Risk, act.Risk)
		}
		if act.Alert != exp.Alert {
			p.errorf("request %s advisory %d: alert mismatch", id, i)
		}
	}

	if len(actual.Weekly) != len(expected.Weekly) {
		p.errorf("request %s: weekly day count: expected %d, got %d", id, len(expected.Weekly), len(actual.Weekly))
	}
	if actual.Summary != expected.Summary {
		p.errorf("request %s: summary: expected %q, got %q", id, expected.Summary, actual.Summary)
	}
	if (actual.Overall == nil) != (expected.Overall == nil) {
		p.errorf("request %s: overall presence mismatch", id)
	} else if expected.Overall != nil && actual.Overall.Score != expected.Overall.Score {
		p.errorf("request %s: overall score: expected %d, got %d", id, expected.Overall.Score, actual.Overall.Score)
	}

	if len(actual.Plans) != len(expected.Plans) {
		p.errorf("request %s: plan count: expected %d, got %d", id, len(expected.Plans), len(actual.Plans))
	}
	if (actual.Assessment == nil) != (expected.Assessment == nil) {
		p.errorf("request %s: assessment presence mismatch", id)
	} else if expected.Assessment != nil && actual.Assessment.Score != expected.Assessment.Score {
		p.errorf("request %s: assessment score: expected %d, got %d", id, expected.Assessment.Score, actual.Assessment.Score)
	}
}

// ── Phase 3: Bundle Schema ──
// Validates bundle invariants independent of the request fixture.

var validRisks = map[domain.RiskLevel]bool{
	domain.RiskLow:      true,
	domain.RiskModerate: true,
	domain.RiskHigh:     true,
	domain.RiskCritical: true,
}

func validateBundleSchema(bundles []domain.AdvisoryBundle) *phase {
	p := &phase{name: "Phase 3: Bundle Schema"}
	for i := range bundles {
		checkBundle(p, i, &bundles[i])
	}
	return p
}

func checkBundle(p *phase, i int, b *domain.AdvisoryBundle) {
	pf := func(format string, args ...any) {
		p.errorf("bundle %d (ID %s): "+format, append([]any{i, b.ID}, args...)...)
	}

	if b.ID == "" {
		pf("id is empty")
	} else if !strings.HasPrefix(b.ID, b.Kind+"-") {
		pf("id %q doesn't start with kind prefix %q-", b.ID, b.Kind)
	}
	if b.GeneratedAt.IsZero() {
		pf("generated_at is zero")
	}

	switch b.Kind {
	case domain.KindCurrent:
		if len(b.Weekly) != 0 {
			pf("current bundle carries %d weekly entries", len(b.Weekly))
		}
		if len(b.Rendered) != len(b.Advisories) {
			pf("rendered count %d != advisory count %d", len(b.Rendered), len(b.Advisories))
		}
		for j, a := range b.Advisories {
			if !validRisks[a.Risk] {
				pf("advisory %d: risk %q not in vocabulary", j, a.Risk)
			}
			if n := len(a.BodyLines); n < 1 || n > 3 {
				pf("advisory %d: %d body lines (expected 1-3)", j, n)
			}
			if a.CropText == "" {
				pf("advisory %d: empty crop text", j)
			}
		}
	case domain.KindWeekly:
		if len(b.Advisories) != 0 {
			pf("weekly bundle carries %d current advisories", len(b.Advisories))
		}
		if len(b.Weekly) > 7 {
			pf("%d weekly entries (max 7)", len(b.Weekly))
		}
		for j, day := range b.Weekly {
			if day.Label == "" {
				pf("weekly day %d: empty label", j)
			}
			if len(day.Crops) == 0 {
				pf("weekly day %d: no crop advice", j)
			}
		}
		if b.Overall == nil {
			pf("weekly bundle missing overall assessment")
		} else if b.Overall.Score < 0 || b.Overall.Score > 100 {
			pf("overall score %d outside [0,100]", b.Overall.Score)
		}
		if b.Summary == "" {
			pf("weekly bundle missing summary line")
		}
	case domain.KindAssess:
		if len(b.Advisories) != 0 || len(b.Weekly) != 0 {
			pf("assess bundle carries advisory or weekly sections")
		}
		if b.Assessment == nil {
			pf("assess bundle missing assessment")
		} else if b.Assessment.Score < 0 || b.Assessment.Score > 100 {
			pf("assessment score %d outside [0,100]", b.Assessment.Score)
		}
		if b.Fieldwork == nil {
			pf("assess bundle missing fieldwork outlook")
		} else if len(b.Fieldwork.Reasons) == 0 {
			pf("fieldwork outlook has no reasons")
		}
		for j, plan := range b.Plans {
			switch plan.RiskLevel {
			case "LOW", "MEDIUM", "HIGH":
			default:
				pf("plan %d: risk level %q not in vocabulary", j, plan.RiskLevel)
			}
			if len(plan.Recommendations) == 0 {
				pf("plan %d: no recommendations", j)
			}
		}
	default:
		pf("unknown kind %q", b.Kind)
	}
}
