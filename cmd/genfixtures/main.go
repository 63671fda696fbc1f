// Command genfixtures generates deterministic advisory request and bundle
// fixtures for the test suites and for seeding local Kafka topics. It runs the
// actual domain advisory generators under a fixed clock so the bundle fixture
// matches real pipeline behavior.
//
// Usage:
//
//	go run ./cmd/genfixtures \
//	  -requests-out data/fixtures/advisory_requests.json \
//	  -bundles-out data/fixtures/advisory_bundles.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/krishisheba/agri-advisory/internal/domain"
)

var fixedNow = time.Date(2024, time.November, 15, 9, 0, 0, 0, time.UTC)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	requestsOut := flag.String("requests-out", "", "output path for raw request JSON fixture")
	bundlesOut := flag.String("bundles-out", "", "output path for processed bundle JSON fixture")
	flag.Parse()

	if *requestsOut == "" || *bundlesOut == "" {
		flag.Usage()
		return fmt.Errorf("missing required flags: -requests-out, -bundles-out")
	}

	// Fix the clock for reproducible GeneratedAt timestamps.
	domain.SetClock(clockwork.NewFakeClockAt(fixedNow))
	defer domain.SetClock(nil)

	requests := buildRequests()

	bundles := make([]domain.AdvisoryBundle, 0, len(requests))
	for _, req := range requests {
		payload, err := json.Marshal(req)
		if err != nil {
			return fmt.Errorf("marshal request %s: %w", req.RequestID, err)
		}
		bundle, err := domain.ProcessRequest(domain.RawEvent{Value: payload, Timestamp: fixedNow})
		if err != nil {
			return fmt.Errorf("process request %s: %w", req.RequestID, err)
		}
		bundles = append(bundles, bundle)
	}

	log.Printf("total: %d requests", len(requests))

	if err := writeJSON(*requestsOut, requests); err != nil {
		return fmt.Errorf("writing request fixture: %w", err)
	}
	log.Printf("wrote request fixture: %s", *requestsOut)

	if err := writeJSON(*bundlesOut, bundles); err != nil {
		return fmt.Errorf("writing bundle fixture: %w", err)
	}
	log.Printf("wrote bundle fixture: %s", *bundlesOut)

	printStats(bundles)
	return nil
}

// buildRequests covers each catalog crop across the weather bands, the generic
// fallback, a risk override, a weekly forecast request, and an assess request.
func buildRequests() []domain.AdvisoryRequest {
	type band struct {
		name    string
		weather map[string]any
	}
	bands := []band{
		{"calm", map[string]any{"temperature": 26.0, "humidity": 55.0, "rainfall": 0.0, "condition": "clear"}},
		{"warm", map[string]any{"temperature": 34.0, "humidity": 78.0, "rainfall": 10.0, "condition": "partly cloudy"}},
		{"hot", map[string]any{"temperature": 38.0, "humidity": 87.0, "rainfall": 55.0, "condition": "rain"}},
		{"extreme", map[string]any{"temperature": 43.0, "humidity": 95.0, "rainfall": 85.0, "condition": "thunderstorm"}},
	}

	crops := []string{"আলু", "ধান", "গম", "ভুট্টা", "টমেটো", "পেঁয়াজ", "শাকসবজি", "চাল/ধান মজুদ"}
	districts := []string{"Jhenaidah", "Bogura", "Rangpur", "Jashore"}

	var requests []domain.AdvisoryRequest
	for i, crop := range crops {
		for _, b := range bands {
			requests = append(requests, domain.AdvisoryRequest{
				RequestID: fmt.Sprintf("req-%s-%d", b.name, i),
				Kind:      domain.KindCurrent,
				FarmerID:  fmt.Sprintf("farmer-%d", i+1),
				District:  districts[i%len(districts)],
				Crops:     []string{crop},
				Weather:   b.weather,
			})
		}
	}

	requests = append(requests,
		domain.AdvisoryRequest{
			RequestID: "req-generic",
			Kind:      domain.KindCurrent,
			FarmerID:  "farmer-9",
			District:  "Khulna",
			Crops:     []string{"Quinoa"},
			Weather:   bands[0].weather,
		},
		domain.AdvisoryRequest{
			RequestID:    "req-override",
			Kind:         domain.KindCurrent,
			FarmerID:     "farmer-10",
			District:     "Jhenaidah",
			Crops:        []string{"ধান"},
			Weather:      bands[3].weather,
			RiskOverride: "low",
		},
		domain.AdvisoryRequest{
			RequestID: "req-harvest",
			Kind:      domain.KindCurrent,
			FarmerID:  "farmer-11",
			District:  "Bogura",
			Crops:     []string{"ধান"},
			Weather:   bands[0].weather,
			Season:    "kharif harvest",
		},
		domain.AdvisoryRequest{
			RequestID: "req-weekly",
			Kind:      domain.KindWeekly,
			FarmerID:  "farmer-12",
			District:  "Rangpur",
			Forecast:  buildForecastWeek(),
		},
		domain.AdvisoryRequest{
			RequestID: "req-assess",
			Kind:      domain.KindAssess,
			FarmerID:  "farmer-13",
			District:  "Jashore",
			Crops:     []string{"rice", "wheat"},
			Weather:   bands[2].weather,
		},
	)

	return requests
}

func buildForecastWeek() []domain.RawForecastDay {
	days := make([]domain.RawForecastDay, 0, 7)
	for i := 0; i < 7; i++ {
		date := fixedNow.AddDate(0, 0, i).Format("2006-01-02")
		day := domain.RawForecastDay{
			Date:        date,
			TempMax:     29 + float64(i),
			TempMin:     20 + float64(i),
			Humidity:    60 + float64(i*5),
			Rainfall:    float64(i * 10),
			WindSpeed:   8,
			WeatherCode: 2,
		}
		if i >= 5 {
			day.WeatherCode = 63
		}
		days = append(days, day)
	}
	return days
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

func printStats(bundles []domain.AdvisoryBundle) {
	riskCounts := map[domain.RiskLevel]int{}
	cropCounts := map[domain.Crop]int{}
	var alertCount, weeklyBundles, assessBundles int

	for i := range bundles {
		b := &bundles[i]
		switch b.Kind {
		case domain.KindWeekly:
			weeklyBundles++
			continue
		case domain.KindAssess:
			assessBundles++
			continue
		}
		for _, a := range b.Advisories {
			riskCounts[a.Risk]++
			cropCounts[a.Crop]++
			if a.Alert != "" {
				alertCount++
			}
		}
	}

	fmt.Println("\n=== Stats for updating test assertions ===")
	fmt.Printf("Total bundles: %d (%d weekly, %d assess)\n", len(bundles), weeklyBundles, assessBundles)
	fmt.Printf("By risk: Low=%d, Moderate=%d, High=%d, Critical=%d\n",
		riskCounts[domain.RiskLow], riskCounts[domain.RiskModerate],
		riskCounts[domain.RiskHigh], riskCounts[domain.RiskCritical])
	fmt.Printf("With SMS alert: %d\n", alertCount)
	fmt.Printf("Crops seen: ")
	for crop, n := range cropCounts {
		fmt.Printf("%s=%d ", crop, n)
	}
	fmt.Println()

	// First critical advisory details.
	for i := range bundles {
		b := &bundles[i]
		for _, a := range b.Advisories {
			if a.Risk != domain.RiskCritical {
				continue
			}
			fmt.Printf("\nFirst critical advisory:\n")
			fmt.Printf("  Bundle: %s\n", b.ID)
			fmt.Printf("  Crop: %s (%s)\n", a.CropText, a.Crop)
			fmt.Printf("  Concern: %s\n", a.Concern)
			fmt.Printf("  Body lines: %d\n", len(a.BodyLines))
			fmt.Printf("  Alert: %s\n", a.Alert)
			return
		}
	}
}
