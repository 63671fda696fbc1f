package domain

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// RiskLevel is the four-level scale used by the per-crop advisory paths.
type RiskLevel string

const (
	RiskLow      RiskLevel = "Low"
	RiskModerate RiskLevel = "Moderate"
	RiskHigh     RiskLevel = "High"
	RiskCritical RiskLevel = "Critical"
)

// riskRank orders the four levels for comparisons.
var riskRank = map[RiskLevel]int{
	RiskLow:      0,
	RiskModerate: 1,
	RiskHigh:     2,
	RiskCritical: 3,
}

// AtLeast reports whether l is at least as severe as other.
func (l RiskLevel) AtLeast(other RiskLevel) bool {
	return riskRank[l] >= riskRank[other]
}

// ParseRiskLevel normalizes a free-text risk string to title case and matches
// it against the four-level vocabulary. Used for caller-supplied overrides.
func ParseRiskLevel(s string) (RiskLevel, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	normalized := strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
	level := RiskLevel(normalized)
	if _, ok := riskRank[level]; !ok {
		return "", false
	}
	return level, true
}

// ForecastRiskLevel is the three-level scale used by the aggregate forecast
// scorers. It is a separate vocabulary from RiskLevel and must stay separate.
type ForecastRiskLevel string

const (
	ForecastRiskLow    ForecastRiskLevel = "low"
	ForecastRiskMedium ForecastRiskLevel = "medium"
	ForecastRiskHigh   ForecastRiskLevel = "high"
)

// forecastLevelFromScore maps a 0–100 score to the three-level scale. Both
// aggregate scorers share these breakpoints.
func forecastLevelFromScore(score int) ForecastRiskLevel {
	switch {
	case score >= 60:
		return ForecastRiskHigh
	case score >= 35:
		return ForecastRiskMedium
	default:
		return ForecastRiskLow
	}
}

// ClassifyReading maps a canonical reading to the four-level scale using the
// simple-threshold ladder. Thresholds check rain, then humidity, then
// temperature at each severity step; any one trigger is enough.
func ClassifyReading(r WeatherReading) RiskLevel {
	switch {
	case r.Rain > 70 || r.Humidity > 90 || r.Temperature > 42:
		return RiskCritical
	case r.Rain > 50 || r.Humidity > 85 || r.Temperature > 36:
		return RiskHigh
	case r.Rain > 25 || r.Humidity > 75 || r.Temperature > 32:
		return RiskModerate
	default:
		return RiskLow
	}
}

// Concern is a labeled, ranked contributor to risk.
type Concern struct {
	Label        string  `json:"label"`
	Contribution float64 `json:"contribution"`
}

// ForecastAssessment is the result of the threshold-count scorer.
type ForecastAssessment struct {
	Score   int               `json:"score"`   // per-day points averaged across the window
	Level   ForecastRiskLevel `json:"level"`   // three-level scale
	Factors []string          `json:"factors"` // unique top-3 factor labels, highest points first
}

// thresholdFactor is one per-day scoring contribution in threshold-count mode.
type thresholdFactor struct {
	label  string
	points int
}

// AssessForecast scores a multi-day forecast with the threshold-count
// strategy: fixed points per exceeded threshold, summed per day, averaged
// across the window. Returns a zero assessment at level low for an empty
// window.
func AssessForecast(days []WeatherReading) ForecastAssessment {
	if len(days) == 0 {
		return ForecastAssessment{Level: ForecastRiskLow}
	}

	total := 0
	var factors []thresholdFactor
	for _, day := range days {
		for _, f := range scoreForecastDay(day) {
			total += f.points
			factors = append(factors, f)
		}
	}

	score := total / len(days)
	return ForecastAssessment{
		Score:   score,
		Level:   forecastLevelFromScore(score),
		Factors: topFactorLabels(factors, 3),
	}
}

// scoreForecastDay applies the fixed per-day threshold points: temperature,
// then humidity, then rain chance.
func scoreForecastDay(day WeatherReading) []thresholdFactor {
	var factors []thresholdFactor

	switch {
	case day.Temperature > 38:
		factors = append(factors, thresholdFactor{fmt.Sprintf("অত্যধিক তাপমাত্রা (%.0f°C)", day.Temperature), 20})
	case day.Temperature > 35:
		factors = append(factors, thresholdFactor{fmt.Sprintf("উচ্চ তাপমাত্রা (%.0f°C)", day.Temperature), 10})
	case day.Temperature < 5:
		factors = append(factors, thresholdFactor{fmt.Sprintf("অত্যধিক ঠান্ডা (%.0f°C)", day.Temperature), 15})
	case day.Temperature < 10:
		factors = append(factors, thresholdFactor{fmt.Sprintf("শীত (%.0f°C)", day.Temperature), 8})
	}

	switch {
	case day.Humidity > 90:
		factors = append(factors, thresholdFactor{fmt.Sprintf("অত্যধিক আর্দ্রতা (%.0f%%) - ছত্রাক রোগের ঝুঁকি", day.Humidity), 18})
	case day.Humidity > 80:
		factors = append(factors, thresholdFactor{fmt.Sprintf("উচ্চ আর্দ্রতা (%.0f%%)", day.Humidity), 12})
	case day.Humidity < 40:
		factors = append(factors, thresholdFactor{fmt.Sprintf("কম আর্দ্রতা (%.0f%%)", day.Humidity), 5})
	}

	switch {
	case day.Rain > 90:
		factors = append(factors, thresholdFactor{fmt.Sprintf("খুব বেশি বৃষ্টির সম্ভাবনা (%.0f%%)", day.Rain), 25})
	case day.Rain > 70:
		factors = append(factors, thresholdFactor{fmt.Sprintf("বৃষ্টির সম্ভাবনা (%.0f%%)", day.Rain), 15})
	case day.Rain > 50:
		factors = append(factors, thresholdFactor{fmt.Sprintf("মাঝারি বৃষ্টির সম্ভাবনা (%.0f%%)", day.Rain), 8})
	}

	return factors
}

// topFactorLabels returns up to n unique labels ordered by points descending.
// Ties keep first-seen order (stable sort over insertion order).
func topFactorLabels(factors []thresholdFactor, n int) []string {
	sort.SliceStable(factors, func(i, j int) bool {
		return factors[i].points > factors[j].points
	})

	seen := make(map[string]struct{}, len(factors))
	labels := make([]string, 0, n)
	for _, f := range factors {
		if _, ok := seen[f.label]; ok {
			continue
		}
		seen[f.label] = struct{}{}
		labels = append(labels, f.label)
		if len(labels) == n {
			break
		}
	}
	return labels
}

// Assessment is the result of the weighted-factor scorer for a single reading.
type Assessment struct {
	Score    int               `json:"score"`    // clamped to [0,100]
	Level    ForecastRiskLevel `json:"level"`    // three-level scale
	Concerns []Concern         `json:"concerns"` // top-3, contribution descending
	Factors  []string          `json:"factors"`  // human-readable trigger descriptions
}

// AssessReading scores a single reading with the weighted-factor strategy.
// Each factor contributes independently; contributions are floored at zero per
// factor, the total is clamped to [0,100]. Factors are evaluated in fixed
// order (temperature, humidity, rainfall, condition) so equal contributions
// rank deterministically.
func AssessReading(r WeatherReading) Assessment {
	var concerns []Concern
	var factors []string
	add := func(label string, contribution float64) {
		concerns = append(concerns, Concern{Label: label, Contribution: contribution})
	}

	// Temperature deviation from the 25 °C ideal.
	switch {
	case r.Temperature > 35:
		add("High Temperature", math.Min(30, (r.Temperature-35)*3))
		factors = append(factors, fmt.Sprintf("High temperature (%.1f°C)", r.Temperature))
	case r.Temperature < 10:
		add("Low Temperature", math.Min(25, (10-r.Temperature)*2.5))
		factors = append(factors, fmt.Sprintf("Low temperature (%.1f°C)", r.Temperature))
	default:
		add("Temperature", math.Max(0, 15-math.Abs(r.Temperature-25))/2)
	}

	// Humidity deviation from the 60 % ideal.
	switch {
	case r.Humidity > 80:
		add("High Humidity (Disease Risk)", math.Min(25, (r.Humidity-80)*2))
		factors = append(factors, fmt.Sprintf("High humidity (%.0f%%) - disease risk", r.Humidity))
	case r.Humidity < 40:
		add("Low Humidity (Crop Stress)", math.Min(20, (40-r.Humidity)*1.5))
		factors = append(factors, fmt.Sprintf("Low humidity (%.0f%%) - drought stress", r.Humidity))
	default:
		add("Humidity", math.Max(0, 20-math.Abs(r.Humidity-60))/3)
	}

	// Rainfall excess; light rain is beneficial and scores near zero.
	switch {
	case r.Rain > 100:
		add("Heavy Rainfall (Waterlogging)", math.Min(30, (r.Rain-100)*0.2))
		factors = append(factors, fmt.Sprintf("Heavy rainfall (%.0fmm) - waterlogging risk", r.Rain))
	case r.Rain > 50:
		add("Moderate Rainfall", math.Min(15, (r.Rain-50)*0.3))
		factors = append(factors, fmt.Sprintf("Moderate rainfall (%.0fmm)", r.Rain))
	default:
		add("Rainfall", math.Max(0, math.Min(10, r.Rain/10)))
	}

	// Condition severity bonus.
	switch {
	case conditionIsSevere(r.Condition):
		add("Severe Weather", 25)
		factors = append(factors, fmt.Sprintf("Severe weather condition: %s", r.Condition))
	case conditionIsAdverse(r.Condition):
		add("Adverse Condition", 10)
	}

	var sum float64
	for _, c := range concerns {
		sum += c.Contribution
	}
	score := int(math.Round(math.Min(100, math.Max(0, sum))))

	return Assessment{
		Score:    score,
		Level:    forecastLevelFromScore(score),
		Concerns: topConcerns(concerns, 3),
		Factors:  factors,
	}
}

// topConcerns returns up to n nonzero concerns sorted by contribution
// descending; ties keep factor evaluation order.
func topConcerns(concerns []Concern, n int) []Concern {
	nonzero := make([]Concern, 0, len(concerns))
	for _, c := range concerns {
		if c.Contribution > 0 {
			nonzero = append(nonzero, c)
		}
	}
	sort.SliceStable(nonzero, func(i, j int) bool {
		return nonzero[i].Contribution > nonzero[j].Contribution
	})
	if len(nonzero) > n {
		nonzero = nonzero[:n]
	}
	return nonzero
}

func conditionIsSevere(condition string) bool {
	return strings.Contains(condition, "thunderstorm") ||
		strings.Contains(condition, "heavy rain") ||
		strings.Contains(condition, "hail")
}

func conditionIsAdverse(condition string) bool {
	return strings.Contains(condition, "rain") ||
		strings.Contains(condition, "drizzle") ||
		strings.Contains(condition, "cloud") ||
		strings.Contains(condition, "overcast")
}
