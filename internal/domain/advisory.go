package domain

import (
	"fmt"
	"strings"
)

// Advisory is the rendered, localized guidance for one crop under one risk
// assessment.
type Advisory struct {
	CropText  string    `json:"crop"`  // literal farmer-entered name, used in the header
	Crop      Crop      `json:"crop_id"`
	Risk      RiskLevel `json:"risk"`
	Concern   string    `json:"concern"`
	BodyLines []string  `json:"body_lines"`      // 1–3 actionable Bangla lines
	Alert     string    `json:"alert,omitempty"` // critical SMS alert content, out-of-band
}

// Render produces the advisory block: header, body lines, and the alert after
// a blank-line separator. Callers routing alerts separately should use the
// Alert field and ignore the trailing block.
func (a Advisory) Render() string {
	var b strings.Builder
	b.WriteString(a.CropText)
	b.WriteString(" — ঝুঁকি: ")
	b.WriteString(string(a.Risk))
	for _, line := range a.BodyLines {
		b.WriteString("\n")
		b.WriteString(line)
	}
	if a.Alert != "" {
		b.WriteString("\n\n")
		b.WriteString(a.Alert)
	}
	return b.String()
}

// maxBodyLines bounds the advisory body; extra candidate lines are dropped in
// generation order.
const maxBodyLines = 3

// adviceRule is one prioritized entry in a crop's rule table. Rules are
// evaluated in order and the first match wins; the last rule of every table
// has a nil matcher and always matches.
type adviceRule struct {
	match func(level RiskLevel, r WeatherReading) bool
	line  func(cropText string, r WeatherReading) string
	alert func(cropText string, r WeatherReading) string
}

func fixedLine(s string) func(string, WeatherReading) string {
	return func(string, WeatherReading) string { return s }
}

func fixedAlert(s string) func(string, WeatherReading) string {
	return func(string, WeatherReading) string { return s }
}

// cropAdviceRules holds the hand-authored single-reading rule tables. Each
// recognized crop has one row per risk level plus secondary numeric guards
// that promote severe readings even when the computed level is lower. High
// and Critical templates embed the triggering reading.
var cropAdviceRules = map[Crop][]adviceRule{
	CropPotato: {
		{
			match: func(level RiskLevel, r WeatherReading) bool {
				return level == RiskCritical || (r.Humidity > 88 && r.Rain > 60)
			},
			line: func(_ string, r WeatherReading) string {
				return fmt.Sprintf("তীব্র সতর্কতা: %.0f%% আর্দ্রতায় আলুর গুদামে পচা ও ছত্রাকের ঝুঁকি উচ্চ; এখনই ভেন্টিলেশন বাড়ান।", r.Humidity)
			},
			alert: fixedAlert("SMS ALERT: আলু গুদামে পচা ঝুঁকি, দ্রুত ব্যবস্থা নিন।"),
		},
		{
			match: func(level RiskLevel, r WeatherReading) bool {
				return level == RiskHigh || r.Humidity > 80
			},
			line: func(_ string, r WeatherReading) string {
				return fmt.Sprintf("আলুর গুদামে আর্দ্রতা বেশি (%.0f%%); ফ্যান চালু করে বায়ু চলাচল বাড়ান।", r.Humidity)
			},
		},
		{
			match: matchLevel(RiskModerate),
			line:  fixedLine("আর্দ্রতা বাড়ছে; পচা অংশ আলাদা করে রাখুন ও বায়ু বাড়ান।"),
		},
		{
			line: fixedLine("আলু ভাল আছে; শুকনো পরিবেশ বজায় রাখুন।"),
		},
	},
	CropMaize: {
		{
			match: func(level RiskLevel, r WeatherReading) bool {
				return level == RiskCritical || r.Temperature > 40
			},
			line: func(_ string, r WeatherReading) string {
				return fmt.Sprintf("তীব্র তাপ/শুকনো: %.0f°সে তাপমাত্রায় ভুট্টা ঝুঁকিতে; দ্রুত সেচ দিন বা ছায়া দিন।", r.Temperature)
			},
			alert: fixedAlert("SMS ALERT: ভুট্টা তাপে ঝুঁকিতে, সেচ/ছায়া দিন।"),
		},
		{
			match: func(level RiskLevel, r WeatherReading) bool {
				return level == RiskHigh || r.Temperature > 36
			},
			line: func(_ string, r WeatherReading) string {
				return fmt.Sprintf("তাপ বৃদ্ধি (%.0f°সে); নিয়মিত সেচ ও বিকালে ছায়া দিন।", r.Temperature)
			},
		},
		{
			match: matchLevel(RiskModerate),
			line:  fixedLine("শুকনো ঝুঁকি আছে; সেচ পরিকল্পনা প্রস্তুত রাখুন।"),
		},
		{
			line: fixedLine("ভুট্টা স্বাভাবিক; পর্যবেক্ষণ চালিয়ে যান।"),
		},
	},
	CropPaddy: {
		{
			match: func(level RiskLevel, r WeatherReading) bool {
				return level == RiskCritical || r.Rain > 80
			},
			line: func(_ string, r WeatherReading) string {
				return fmt.Sprintf("জরুরি: ভারী বৃষ্টি/জমে থাকা পানি (%.0f%%); এখনই নিকাশপথ খুলুন ও পানি সরান।", r.Rain)
			},
			alert: fixedAlert("SMS ALERT: ধান জমে আছে, পানি নিষ্কাশন করুন।"),
		},
		{
			match: func(level RiskLevel, r WeatherReading) bool {
				return level == RiskHigh || r.Rain > 60
			},
			line: func(_ string, r WeatherReading) string {
				return fmt.Sprintf("ভারী বৃষ্টির আশঙ্কা (%.0f%%); নিকাশপথ ও জমির অবস্থা যাচাই করুন।", r.Rain)
			},
		},
		{
			match: matchLevel(RiskModerate),
			line:  fixedLine("বৃষ্টি বাড়তে পারে; নিকাশপথ পরিষ্কার রাখুন।"),
		},
		{
			line: fixedLine("ধান স্বাভাবিক; নিকাশ ও পর্যবেক্ষণ বজায় রাখুন।"),
		},
	},
	CropTomato: {
		{
			match: func(level RiskLevel, r WeatherReading) bool {
				return level == RiskCritical || r.Temperature > 40
			},
			line: func(_ string, r WeatherReading) string {
				return fmt.Sprintf("তীব্র তাপ: %.0f°সে তাপমাত্রায় টমেটো ঝুলে পড়তে পারে; দ্রুত ছায়া দিন ও সেচ বাড়ান।", r.Temperature)
			},
			alert: fixedAlert("SMS ALERT: টমেটো তাপ-স্ট্রেস, ছায়া ও পানি দিন।"),
		},
		{
			match: func(level RiskLevel, r WeatherReading) bool {
				return level == RiskHigh || r.Temperature > 36
			},
			line: func(_ string, r WeatherReading) string {
				return fmt.Sprintf("তাপ বেশি (%.0f°সে); বিকালে ছায়া ও সেচ দিন।", r.Temperature)
			},
		},
		{
			match: matchLevel(RiskModerate),
			line:  fixedLine("ফসল পর্যবেক্ষণ করুন ও বিকালে হালকা সেচ দিন।"),
		},
		{
			line: fixedLine("টমেটো ভালো চলছে; নিয়মিত পানি ও পরিচর্যা দিন।"),
		},
	},
	CropOnion: {
		{
			match: func(level RiskLevel, r WeatherReading) bool {
				return level == RiskCritical || (r.Humidity > 85 && r.Rain > 50)
			},
			line: func(_ string, r WeatherReading) string {
				return fmt.Sprintf("তীব্র আর্দ্রতা (%.0f%%): পেঁয়াজে পচা বাড়বে; দ্রুত জমি/সংরক্ষণ স্থান শুকিয়ে নিন।", r.Humidity)
			},
			alert: fixedAlert("SMS ALERT: পেঁয়াজ পচা ঝুঁকি, জায়গা শুকিয়ে দিন।"),
		},
		{
			match: func(level RiskLevel, r WeatherReading) bool {
				return level == RiskHigh || r.Humidity > 80
			},
			line: func(_ string, r WeatherReading) string {
				return fmt.Sprintf("আর্দ্রতা বেশি (%.0f%%); সংরক্ষণস্থলে বাতাস চলাচল বাড়ান।", r.Humidity)
			},
		},
		{
			match: matchLevel(RiskModerate),
			line:  fixedLine("ভেজা মাটি আছে; শুকানোর ব্যবস্থা রাখুন।"),
		},
		{
			line: fixedLine("পেঁয়াজ ঠিক আছে; শুকনো পরিবেশ বজায় রাখুন।"),
		},
	},
	CropWheat: {
		{
			match: func(level RiskLevel, r WeatherReading) bool {
				return level == RiskCritical || (r.Rain > 60 && strings.Contains(r.Condition, "rain"))
			},
			line: func(_ string, r WeatherReading) string {
				return fmt.Sprintf("জরুরি: দানা গঠন পর্যায়ে ভারী বৃষ্টি (%.0f%%); ত্রিপল দিয়ে জমি ঢেকে পানি নিষ্কাশন চালু রাখুন।", r.Rain)
			},
			alert: fixedAlert("SMS ALERT: গম ক্ষেতে বৃষ্টির ঝুঁকি, দ্রুত ব্যবস্থা নিন।"),
		},
		{
			match: func(level RiskLevel, r WeatherReading) bool {
				return level == RiskHigh || r.Humidity > 85
			},
			line: func(_ string, r WeatherReading) string {
				return fmt.Sprintf("আর্দ্রতায় ব্লাইট রোগের ঝুঁকি (%.0f%%); সকালে ছত্রাকনাশক স্প্রে করুন।", r.Humidity)
			},
		},
		{
			match: matchLevel(RiskModerate),
			line:  fixedLine("শুকনা দিনে হালকা সেচ দিন ও টিলারিং বাড়ান।"),
		},
		{
			line: fixedLine("আবহাওয়া অনুকূল; টপ ড্রেসিং ও আগাছা দমন চালিয়ে যান।"),
		},
	},
	CropVegetable: {
		{
			match: func(level RiskLevel, r WeatherReading) bool {
				return level == RiskCritical || r.Temperature > 38
			},
			line: func(_ string, r WeatherReading) string {
				return fmt.Sprintf("অত্যধিক গরম/বৃষ্টি (%.0f°সে): শাকসবজি ঝুঁকিতে; উঁচু বেডে পানি বের করে ছায়া জাল ব্যবহার করুন।", r.Temperature)
			},
			alert: fixedAlert("SMS ALERT: শাকসবজি ঝুঁকিতে, দ্রুত সুরক্ষা দিন।"),
		},
		{
			match: func(level RiskLevel, r WeatherReading) bool {
				return level == RiskHigh || r.Humidity > 88
			},
			line: func(_ string, r WeatherReading) string {
				return fmt.Sprintf("আর্দ্র পরিবেশে পোকার আক্রমণ বাড়ে (%.0f%%); ড্রেন পরিষ্কার করে জৈব কীটনাশক স্প্রে করুন।", r.Humidity)
			},
		},
		{
			match: matchLevel(RiskModerate),
			line:  fixedLine("সকালে পাতার শিশির ঝেড়ে দিন ও রোগের লক্ষণ দেখুন।"),
		},
		{
			line: fixedLine("নিয়মিত গাছ ছাঁটাই ও সুষম সেচ চালিয়ে যান।"),
		},
	},
	CropRiceStorage: {
		{
			match: func(level RiskLevel, r WeatherReading) bool {
				return level == RiskCritical || r.Humidity > 90
			},
			line: func(_ string, r WeatherReading) string {
				return fmt.Sprintf("তীব্র আর্দ্রতা (%.0f%%): গুদামে ডিহিউমিডিফায়ার চালু রাখুন ও ধান ঢেকে রাখুন।", r.Humidity)
			},
			alert: fixedAlert("SMS ALERT: ধান মজুদে আর্দ্রতা ঝুঁকি, দ্রুত ব্যবস্থা নিন।"),
		},
		{
			match: func(level RiskLevel, r WeatherReading) bool {
				return level == RiskHigh || r.Humidity > 85
			},
			line: func(_ string, r WeatherReading) string {
				return fmt.Sprintf("গুদামের দরজা-জানালা বন্ধ রেখে শুকনা বাতাস চলাচল করান (%.0f%%)।", r.Humidity)
			},
		},
		{
			match: matchLevel(RiskModerate),
			line:  fixedLine("ধানের বস্তা প্রতি দুই দিনে উল্টে দিন যাতে ফাঙ্গাস না ধরে।"),
		},
		{
			line: fixedLine("বস্তা প্যালেটে রেখে নিয়মিত ধুলোময়লা পরিষ্কার করুন।"),
		},
	},
}

// genericAdviceRules handles unrecognized crops; lines interpolate the
// literal crop text the farmer entered.
var genericAdviceRules = []adviceRule{
	{
		match: matchLevel(RiskCritical),
		line: func(cropText string, _ WeatherReading) string {
			return fmt.Sprintf("জরুরি: %s তীব্র ঝুঁকিতে। দ্রুত সুরক্ষা নিন।", cropText)
		},
		alert: func(cropText string, _ WeatherReading) string {
			return fmt.Sprintf("SMS ALERT: %s তীব্র ঝুঁকি, দ্রুত ব্যবস্থা নিন।", cropText)
		},
	},
	{
		match: matchLevel(RiskHigh),
		line: func(cropText string, _ WeatherReading) string {
			return fmt.Sprintf("%s উচ্চ ঝুঁকিতে আছে; অবিলম্বে ব্যবস্থা নিন।", cropText)
		},
	},
	{
		match: matchLevel(RiskModerate),
		line: func(cropText string, _ WeatherReading) string {
			return fmt.Sprintf("%s সতর্ক করুন; পর্যবেক্ষণ বাড়ান।", cropText)
		},
	},
	{
		line: func(cropText string, _ WeatherReading) string {
			return fmt.Sprintf("%s স্বাভাবিক; নিয়মিত পরিচর্যা চালান।", cropText)
		},
	},
}

func matchLevel(want RiskLevel) func(RiskLevel, WeatherReading) bool {
	return func(level RiskLevel, _ WeatherReading) bool { return level == want }
}

// harvestSeasons are the season tokens that unlock the harvest hint at low
// and moderate risk.
var harvestSeasons = map[string]struct{}{
	"harvest": {},
	"kharif":  {},
	"rabi":    {},
	"autumn":  {},
	"fall":    {},
}

// Synthesize builds the advisory for one crop: resolve the crop, select the
// first matching rule, optionally append the season harvest hint, truncate
// the body to three lines. The concern is carried as structured context and
// never rendered into the body.
func Synthesize(cropText string, level RiskLevel, r WeatherReading, concern, season string) Advisory {
	crop := ResolveCrop(cropText)
	rules, ok := cropAdviceRules[crop]
	if !ok {
		rules = genericAdviceRules
	}

	var lines []string
	var alert string
	for _, rule := range rules {
		if rule.match != nil && !rule.match(level, r) {
			continue
		}
		lines = append(lines, rule.line(cropText, r))
		if rule.alert != nil {
			alert = rule.alert(cropText, r)
		}
		break
	}

	if hint := seasonHint(season, level); hint != "" {
		lines = append(lines, hint)
	}
	if len(lines) > maxBodyLines {
		lines = lines[:maxBodyLines]
	}

	return Advisory{
		CropText:  cropText,
		Crop:      crop,
		Risk:      level,
		Concern:   concern,
		BodyLines: lines,
		Alert:     alert,
	}
}

// seasonHint returns the harvest hint line: a gentle "consider harvest"
// during harvest-adjacent seasons at low/moderate risk, an urgent variant at
// high risk regardless of season, nothing otherwise.
func seasonHint(season string, level RiskLevel) string {
	_, harvestSeason := harvestSeasons[strings.ToLower(strings.TrimSpace(season))]
	switch {
	case harvestSeason && (level == RiskLow || level == RiskModerate):
		return "ফসল পরিপক্ক হলে সংগ্রহ বিবেচনা করুন।"
	case level == RiskHigh:
		return "পরিপক্ক হলে এখনই সংগ্রহ বিবেচনা করুন।"
	default:
		return ""
	}
}
