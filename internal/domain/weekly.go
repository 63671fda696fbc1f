package domain

import (
	"fmt"
	"strings"
)

// WeeklyCropKeys is the fixed crop set assessed for every forecast day, in
// display order.
var WeeklyCropKeys = []string{"ধান", "চাল/ধান মজুদ", "আলু", "গম", "ভুট্টা", "শাকসবজি"}

// weeklyHorizon caps the advisory table at a 7-day window.
const weeklyHorizon = 7

// CropDayAdvice is the risk and single advisory sentence for one crop on one
// forecast day.
type CropDayAdvice struct {
	Risk   RiskLevel `json:"risk"`
	Advice string    `json:"advice"`
}

// DayAdvisory is one row of the weekly advisory table.
type DayAdvisory struct {
	Label       string                   `json:"label"` // আজ, আগামীকাল, ২ দিন, …
	Date        string                   `json:"date"`
	DateEnglish string                   `json:"date_english"`
	Crops       map[string]CropDayAdvice `json:"crops"`
}

// GenerateWeeklyAdvisory builds the per-day, per-crop advisory table for up
// to seven forecast days. Risk is re-derived per day from that day's averaged
// temperature and recorded humidity/rainfall via the simple-threshold ladder;
// the per-day granularity is the point, not the aggregate scorers.
func GenerateWeeklyAdvisory(forecast []DailyWeather) []DayAdvisory {
	days := forecast
	if len(days) > weeklyHorizon {
		days = days[:weeklyHorizon]
	}

	table := make([]DayAdvisory, 0, len(days))
	for _, day := range days {
		level := ClassifyReading(day.Reading())

		crops := make(map[string]CropDayAdvice, len(WeeklyCropKeys))
		for _, key := range WeeklyCropKeys {
			crops[key] = CropDayAdvice{
				Risk:   level,
				Advice: weeklyAdvice(ResolveCrop(key), level, day),
			}
		}

		table = append(table, DayAdvisory{
			Label:       day.DateLabel,
			Date:        day.Date,
			DateEnglish: day.DateEnglish,
			Crops:       crops,
		})
	}
	return table
}

// SummarizeWeek runs the threshold-count scorer over the capped forecast
// window and renders the Bangla week-level summary line that heads the
// weekly advisory.
func SummarizeWeek(forecast []DailyWeather) (ForecastAssessment, string) {
	days := forecast
	if len(days) > weeklyHorizon {
		days = days[:weeklyHorizon]
	}

	readings := make([]WeatherReading, 0, len(days))
	for _, day := range days {
		readings = append(readings, day.Reading())
	}

	assessment := AssessForecast(readings)
	return assessment, weeklySummaryLine(assessment)
}

var weeklyLevelBangla = map[ForecastRiskLevel]string{
	ForecastRiskHigh:   "উচ্চ",
	ForecastRiskMedium: "মাঝারি",
	ForecastRiskLow:    "কম",
}

func weeklySummaryLine(a ForecastAssessment) string {
	return fmt.Sprintf("এই সপ্তাহের ঝুঁকি স্তর: %s (%d/100)", weeklyLevelBangla[a.Level], a.Score)
}

// weeklyLine is one guarded template in a weekly rule cell. A nil guard
// always matches; every cell ends with a nil-guard line.
type weeklyLine struct {
	guard func(day DailyWeather) bool
	text  string
}

// weeklyAdviceRules maps (crop, level) to a prioritized list of guarded
// lines. Guards refine the level with the day's readings; first match wins.
var weeklyAdviceRules = map[Crop]map[RiskLevel][]weeklyLine{
	CropPaddy: {
		RiskCritical: {
			{guard: func(d DailyWeather) bool { return d.Rainfall >= 90 || d.WindSpeed >= 40 },
				text: "ভারী বৃষ্টি ও ঝড়ে জমির পানি দ্রুত বের করে দিন। গাছকে বাঁশের খুঁটি দিয়ে বেঁধে রাখুন।"},
			{text: "জরুরি অবস্থা - জমি পর্যবেক্ষণ করুন এবং প্রয়োজনীয় ব্যবস্থা নিন।"},
		},
		RiskHigh: {
			{guard: func(d DailyWeather) bool { return d.Rainfall >= 60 },
				text: "জমিতে পানি জমার ঝুঁকি রয়েছে। নালা পরিষ্কার রাখুন এবং পানি নিষ্কাশন ব্যবস্থা চালু রাখুন।"},
			{guard: func(d DailyWeather) bool { return d.Humidity >= 85 },
				text: "উচ্চ আর্দ্রতায় ব্লাস্ট রোগের সম্ভাবনা। প্রতিরোধমূলক স্প্রে প্রয়োগ করুন।"},
			{text: "ঝুঁকিপূর্ণ অবস্থা - বিশেষ সতর্কতা প্রয়োজন।"},
		},
		RiskModerate: {
			{guard: func(d DailyWeather) bool { return d.Rainfall <= 5 && d.Humidity < 55 },
				text: "মাঠ শুকিয়ে যাওয়ার লক্ষণ। সন্ধ্যায় হালকা সেচ দিন এবং মাটির আর্দ্রতা বজায় রাখুন।"},
			{text: "সাধারণ পরিচর্যা চালিয়ে যান সাথে অতিরিক্ত সতর্কতা অবলম্বন করুন।"},
		},
		RiskLow: {
			{text: "পর্যাপ্ত আর্দ্রতা রয়েছে। অনুকূল আবহাওয়ায় টপ ড্রেসিং ও আগাছা দমন চালিয়ে যান।"},
		},
	},
	CropRiceStorage: {
		RiskCritical: {
			{text: "গুদামে ডিহিউমিডিফায়ার চালু রাখুন এবং ধান প্লাস্টিক শিটে ঢেকে আর্দ্রতা রোধ করুন।"},
		},
		RiskHigh: {
			{text: "গুদামের দরজা-জানালা বন্ধ রেখে ভেন্টের মাধ্যমে শুকনা বাতাস চলাচল করান।"},
		},
		RiskModerate: {
			{text: "ধানের বস্তা প্রতি দুই দিনে উল্টে দিন যাতে ফাঙ্গাস না ধরে।"},
		},
		RiskLow: {
			{text: "শুকনা আবহাওয়ায় বস্তা প্যালেটে রেখে নিত্যদিন ধুলোময়লা পরিষ্কার করুন।"},
		},
	},
	CropPotato: {
		RiskCritical: {
			{guard: func(d DailyWeather) bool { return d.Humidity >= 92 || d.Rainfall >= 60 },
				text: "কোল্ড স্টোরে আর্দ্রতা তৎক্ষণাৎ ৮৫% এর নিচে নামান। পচা আলু আলাদা করুন এবং বায়ু চলাচল বাড়ান।"},
			{text: "জরুরি ব্যবস্থা প্রয়োজন - আলুর গুদাম দ্রুত পরীক্ষা করুন।"},
		},
		RiskHigh: {
			{guard: func(d DailyWeather) bool { return d.Humidity >= 85 },
				text: "গুদামে বায়ু চলাচল বাড়িয়ে দিন এবং অ্যান্টিফাঙ্গাল ধূম্রায়ন করুন।"},
			{text: "আলুর সংরক্ষণে বিশেষ সতর্কতা প্রয়োজন।"},
		},
		RiskModerate: {
			{guard: func(d DailyWeather) bool { return d.Temperature <= 10 },
				text: "তাপমাত্রা কমে যাওয়ায় আলুর অঙ্কুরোদগম ধীর হবে। থার্মোস্ট্যাট ৮-১০°সে তে সমন্বয় করুন।"},
			{text: "স্বাভাবিক পরিচর্যা চালিয়ে যান সাথে নিয়মিত পরীক্ষা করুন।"},
		},
		RiskLow: {
			{text: "স্থিতিশীল আবহাওয়ায় আলু বাছাই ও প্যাকেজিং চালিয়ে যান।"},
		},
	},
	CropWheat: {
		RiskCritical: {
			{guard: func(d DailyWeather) bool {
				return d.Rainfall >= 45 && strings.Contains(strings.ToLower(d.Condition), "rain")
			},
				text: "দানা গঠন পর্যায়ে বৃষ্টি পড়ছে। ত্রিপল দিয়ে জমি ঢেকে দিন এবং পানি নিষ্কাশন ব্যবস্থা চালু রাখুন।"},
			{text: "জরুরি ব্যবস্থা প্রয়োজন - গম ক্ষেত রক্ষা করুন।"},
		},
		RiskHigh: {
			{guard: func(d DailyWeather) bool {
				return d.Humidity >= 88 || strings.Contains(strings.ToLower(d.Condition), "fog")
			},
				text: "কুয়াশা ও আর্দ্রতায় ব্লাইট রোগের ঝুঁকি। সকালেই কপার বা ম্যানকোজেব স্প্রে করুন।"},
			{guard: func(d DailyWeather) bool { return d.Temperature >= 36 },
				text: "উচ্চ তাপমাত্রায় সেচ দিন এবং মালচ দিয়ে মাটি স্যাঁতসেঁতে রাখুন।"},
			{text: "উচ্চ ঝুঁকির অবস্থা - বিশেষ যত্ন প্রয়োজন।"},
		},
		RiskModerate: {
			{guard: func(d DailyWeather) bool { return d.Rainfall <= 5 && d.Temperature > 30 },
				text: "শুকনা দিনে হালকা সেচ দিন এবং টিলারিং বাড়ান।"},
			{text: "সাধারণ পরিচর্যা চালিয়ে যান।"},
		},
		RiskLow: {
			{text: "আবহাওয়া অনুকূল। টপ ড্রেসিং ও আগাছা দমন চালিয়ে যান।"},
		},
	},
	CropMaize: {
		RiskCritical: {
			{guard: func(d DailyWeather) bool { return d.WindSpeed >= 40 },
				text: "প্রবল বাতাসে ভুট্টা গাছ হেলে পড়ার ঝুঁকি। খুঁটি ও দড়ি ব্যবহার করে গাছ সাপোর্ট দিন।"},
			{text: "জরুরি ব্যবস্থা প্রয়োজন - ভুট্টা ক্ষেত সুরক্ষিত করুন।"},
		},
		RiskHigh: {
			{guard: func(d DailyWeather) bool { return d.WindSpeed >= 30 || d.Rainfall >= 55 },
				text: "দমকা হাওয়া/বৃষ্টিতে গাছ বাঁশের খুঁটিতে বেঁধে দিন এবং জমির পানি বের করুন।"},
			{text: "উচ্চ ঝুঁকি - বিশেষ সতর্কতা প্রয়োজন।"},
		},
		RiskModerate: {
			{guard: func(d DailyWeather) bool {
				return strings.Contains(strings.ToLower(d.Condition), "overcast") || d.Rainfall >= 35
			},
				text: "মেঘলা আবহাওয়ায় পরাগায়নে সমস্যা হতে পারে। দুপুরে হালকা কাঁপুনি দিয়ে পলেন ঝরিয়ে দিন।"},
			{text: "স্বাভাবিক পরিচর্যা চালিয়ে যান।"},
		},
		RiskLow: {
			{text: "পর্যাপ্ত রোদে পাতায় জমা ধুলো ঝেড়ে সেচ সূচি বজায় রাখুন।"},
		},
	},
	CropVegetable: {
		RiskCritical: {
			{guard: func(d DailyWeather) bool { return d.Temperature >= 37 || d.Rainfall >= 70 },
				text: "অত্যধিক গরম/বৃষ্টির প্রভাব। উঁচু বেডে পানি বের করে ছায়া জাল ব্যবহার করুন।"},
			{text: "জরুরি ব্যবস্থা প্রয়োজন - শাকসবজি রক্ষা করুন।"},
		},
		RiskHigh: {
			{guard: func(d DailyWeather) bool { return d.Rainfall >= 50 || d.Humidity >= 90 },
				text: "আর্দ্র পরিবেশে পোকার আক্রমণ বাড়ে। বেডের ড্রেন পরিষ্কার করুন এবং জৈব কীটনাশক স্প্রে করুন।"},
			{text: "উচ্চ ঝুঁকি - বিশেষ যত্ন প্রয়োজন।"},
		},
		RiskModerate: {
			{guard: func(d DailyWeather) bool { return d.Temperature <= 16 || d.Humidity >= 80 },
				text: "সকালে পাতার শিশির ঝেড়ে দিন এবং লিফ মাইনর/ডাউনি মিলডিউয়ের লক্ষণ দেখুন।"},
			{text: "সাধারণ পরিচর্যা চালিয়ে যান।"},
		},
		RiskLow: {
			{text: "মাঝারি আবহাওয়ায় নিয়মিত গাছ ছাঁটাই ও সুষম সেচ চালিয়ে যান।"},
		},
	},
}

// weeklyGenericAdvice covers crops without a weekly rule table, by level only.
var weeklyGenericAdvice = map[RiskLevel]string{
	RiskCritical: "জরুরি অবস্থা - ফসল সুরক্ষার জন্য অবিলম্বে ব্যবস্থা নিন। ক্ষেত পরিদর্শন করুন এবং প্রয়োজনীয় সুরক্ষা মজবুত করুন।",
	RiskHigh:     "উচ্চ ঝুঁকিপূর্ণ অবস্থা। ফসলের বিশেষ যত্ন প্রয়োজন। নিয়মিত পর্যবেক্ষণ করুন এবং সমস্যা দেখা দিলে অবিলম্বে ব্যবস্থা নিন।",
	RiskModerate: "মধ্যম ঝুঁকির অবস্থা। সাধারণ পরিচর্যার সাথে অতিরিক্ত সতর্কতা অবলম্বন করুন।",
	RiskLow:      "স্বাভাবিক আবহাওয়া। নিয়মিত ফসল পরিচর্যা ও আগাছা দমন চালিয়ে যান।",
}

// weeklyAdvice selects the advisory sentence for a crop on one forecast day.
func weeklyAdvice(crop Crop, level RiskLevel, day DailyWeather) string {
	cell, ok := weeklyAdviceRules[crop][level]
	if !ok {
		return weeklyGenericAdvice[level]
	}
	for _, line := range cell {
		if line.guard == nil || line.guard(day) {
			return line.text
		}
	}
	return weeklyGenericAdvice[level]
}
