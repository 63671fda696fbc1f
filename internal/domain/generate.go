package domain

import (
	"fmt"
	"strings"
)

// GenerateCropsAdvisory produces one advisory per crop from a raw weather
// mapping. Blank crop entries are skipped. A non-empty riskOverride is
// title-case normalized and always wins over the computed level; an override
// outside the four-level vocabulary is rejected rather than silently
// producing a misleading advisory.
func GenerateCropsAdvisory(crops []string, weather map[string]any, season, riskOverride string) ([]Advisory, error) {
	reading, err := NormalizeReading(weather)
	if err != nil {
		return nil, err
	}

	var override RiskLevel
	if strings.TrimSpace(riskOverride) != "" {
		level, ok := ParseRiskLevel(riskOverride)
		if !ok {
			return nil, fmt.Errorf("risk override %q is not one of Low/Moderate/High/Critical", riskOverride)
		}
		override = level
	}

	concern := MapConcern(reading.Condition)

	advisories := make([]Advisory, 0, len(crops))
	for _, crop := range crops {
		cropText := strings.TrimSpace(crop)
		if cropText == "" {
			continue
		}

		level := override
		if level == "" {
			level = ClassifyReading(reading)
		}

		advisories = append(advisories, Synthesize(cropText, level, reading, concern, season))
	}
	return advisories, nil
}

// RenderAdvisories renders each advisory to its full text block.
func RenderAdvisories(advisories []Advisory) []string {
	rendered := make([]string, 0, len(advisories))
	for _, a := range advisories {
		rendered = append(rendered, a.Render())
	}
	return rendered
}
