package domain

import "fmt"

// AdvisoryPlan is the extension-officer view of a weighted-factor assessment:
// English recommendations, urgent actions, and monitoring notes keyed off the
// top concerns.
type AdvisoryPlan struct {
	Title             string   `json:"advisory_title"`
	RiskLevel         string   `json:"risk_level"` // upper-cased three-level label
	CurrentConditions string   `json:"current_conditions"`
	Recommendations   []string `json:"recommendations"`
	CriticalActions   []string `json:"critical_actions,omitempty"`
	MonitoringNotes   []string `json:"monitoring_notes,omitempty"`
}

// cropThresholds holds per-crop ideal growing bands used by the plan builder.
type cropThresholds struct {
	tempMin       float64
	tempMax       float64
	humidityIdeal float64
}

var cropPlanThresholds = map[Crop]cropThresholds{
	CropPaddy:     {tempMin: 15, tempMax: 35, humidityIdeal: 70},
	CropWheat:     {tempMin: 5, tempMax: 30, humidityIdeal: 50},
	CropVegetable: {tempMin: 15, tempMax: 30, humidityIdeal: 65},
	CropMaize:     {tempMin: 8, tempMax: 32, humidityIdeal: 60},
}

// planThresholdsFor falls back to the vegetable band for crops without their
// own entry.
func planThresholdsFor(crop Crop) cropThresholds {
	if t, ok := cropPlanThresholds[crop]; ok {
		return t
	}
	return cropPlanThresholds[CropVegetable]
}

// BuildAdvisoryPlan expands a weighted-factor assessment into concrete
// recommendations for one crop. The concern labels drive rule selection;
// extreme readings add urgent actions on top.
func BuildAdvisoryPlan(cropText string, r WeatherReading, assessment Assessment) AdvisoryPlan {
	band := planThresholdsFor(ResolveCrop(cropText))

	concerns := make(map[string]struct{}, len(assessment.Concerns))
	for _, c := range assessment.Concerns {
		concerns[c.Label] = struct{}{}
	}
	has := func(label string) bool {
		_, ok := concerns[label]
		return ok
	}

	var recommendations, criticalActions, monitoringNotes []string

	if has("High Temperature") {
		recommendations = append(recommendations,
			"Increase irrigation frequency to prevent water stress",
			"Apply mulch to maintain soil moisture and reduce temperature")
		if r.Temperature > 40 {
			criticalActions = append(criticalActions, "URGENT: Provide emergency irrigation - extreme heat detected")
			monitoringNotes = append(monitoringNotes, "Monitor for heat-induced crop wilting every 2-3 hours")
		}
	}

	if has("Low Temperature") {
		recommendations = append(recommendations,
			"Reduce irrigation to prevent frost damage",
			"Apply protective measures (straw, covers) if frost expected")
		if r.Temperature < 5 {
			criticalActions = append(criticalActions, "URGENT: Install frost protection measures immediately")
		}
	}

	if has("High Humidity (Disease Risk)") {
		recommendations = append(recommendations,
			"Ensure proper drainage to reduce waterlogging",
			"Increase air circulation by pruning excess foliage",
			"Monitor for fungal diseases and apply preventive spray if needed",
			"Avoid overhead irrigation - use drip irrigation instead")
		if r.Humidity > 85 {
			criticalActions = append(criticalActions, "URGENT: High disease risk - apply fungicide preventively")
		}
	}

	if has("Low Humidity (Crop Stress)") {
		recommendations = append(recommendations,
			"Increase irrigation to prevent drought stress",
			"Apply mulch to conserve soil moisture")
		monitoringNotes = append(monitoringNotes, "Check soil moisture at least once daily")
	}

	if has("Heavy Rainfall (Waterlogging)") {
		recommendations = append(recommendations,
			"Ensure drainage channels are clear and functioning",
			"Check for standing water in field - drain if present")
		criticalActions = append(criticalActions, "URGENT: Waterlogging detected - monitor crop health closely")
		if r.Rain > 150 {
			criticalActions = append(criticalActions, "Consider immediate drainage intervention if water levels rising")
		}
		monitoringNotes = append(monitoringNotes, "Watch for root rot and fungal infection symptoms")
	}

	if has("Moderate Rainfall") && r.Rain > 0 {
		monitoringNotes = append(monitoringNotes,
			fmt.Sprintf("Optimal rainfall (%.0fmm) - continue normal monitoring", r.Rain))
	}

	if has("Severe Weather") {
		criticalActions = append(criticalActions, "URGENT: Severe weather approaching - take protective measures")
		recommendations = append(recommendations,
			"Secure plants and protective structures",
			"Remove weak or damaged branches")
		monitoringNotes = append(monitoringNotes, "Monitor weather updates every hour")
	}

	switch assessment.Level {
	case ForecastRiskHigh:
		monitoringNotes = append(monitoringNotes,
			"HIGH RISK: Monitor crop health every 4-6 hours",
			"Document any damage or changes in crop condition")
	case ForecastRiskMedium:
		monitoringNotes = append(monitoringNotes, "MEDIUM RISK: Monitor crop health daily")
	default:
		monitoringNotes = append(monitoringNotes, "Conditions favorable - continue normal management")
	}

	if len(recommendations) == 0 {
		recommendations = []string{
			"Maintain regular irrigation schedule",
			"Continue standard crop management practices",
			"Monitor for any signs of pest or disease",
		}
	}

	return AdvisoryPlan{
		Title:     fmt.Sprintf("Weather Advisory for %s", cropText),
		RiskLevel: upperLevel(assessment.Level),
		CurrentConditions: fmt.Sprintf("Temp: %.1f°C (ideal %.0f-%.0f°C), Humidity: %.0f%% (ideal ~%.0f%%), Rainfall: %.0fmm",
			r.Temperature, band.tempMin, band.tempMax, r.Humidity, band.humidityIdeal, r.Rain),
		Recommendations: recommendations,
		CriticalActions: criticalActions,
		MonitoringNotes: monitoringNotes,
	}
}

func upperLevel(level ForecastRiskLevel) string {
	switch level {
	case ForecastRiskHigh:
		return "HIGH"
	case ForecastRiskMedium:
		return "MEDIUM"
	default:
		return "LOW"
	}
}

// FieldworkOutlook reports whether current conditions suit field work.
type FieldworkOutlook struct {
	Favorable         bool     `json:"favorable"`
	Reasons           []string `json:"reasons"`
	SuggestedActivity string   `json:"suggested_activity"`
}

// EvaluateFieldwork checks a reading against broad operating bands and
// suggests the day's activity. Marginal readings add reasons without flipping
// the favorable flag.
func EvaluateFieldwork(r WeatherReading) FieldworkOutlook {
	favorable := true
	var reasons []string
	suggested := "Routine crop management"

	switch {
	case r.Temperature < 10 || r.Temperature > 40:
		favorable = false
		reasons = append(reasons, fmt.Sprintf("Temperature %.1f°C is outside optimal range (10-40°C)", r.Temperature))
	case r.Temperature < 15 || r.Temperature > 35:
		reasons = append(reasons, fmt.Sprintf("Suboptimal temperature %.1f°C", r.Temperature))
	}

	switch {
	case r.Humidity < 30:
		favorable = false
		reasons = append(reasons, fmt.Sprintf("Very low humidity %.0f%% - drought stress risk", r.Humidity))
	case r.Humidity > 90:
		reasons = append(reasons, fmt.Sprintf("Very high humidity %.0f%% - disease risk", r.Humidity))
	}

	switch {
	case r.Rain > 100:
		favorable = false
		reasons = append(reasons, fmt.Sprintf("Heavy rainfall %.0fmm - waterlogging risk", r.Rain))
		suggested = "Ensure proper drainage"
	case r.Rain > 50:
		reasons = append(reasons, fmt.Sprintf("Moderate rainfall %.0fmm - monitor waterlogging", r.Rain))
	case r.Rain < 5 && r.Humidity < 50:
		suggested = "Schedule irrigation"
	}

	if conditionIsSevere(r.Condition) {
		favorable = false
		reasons = append(reasons, fmt.Sprintf("Severe weather: %s", r.Condition))
		suggested = "Protect crops, stay indoors"
	}

	if favorable && len(reasons) == 0 {
		reasons = append(reasons, "All conditions favorable for farming")
		if suggested == "Routine crop management" {
			suggested = "Good day for field work"
		}
	}

	return FieldworkOutlook{Favorable: favorable, Reasons: reasons, SuggestedActivity: suggested}
}
