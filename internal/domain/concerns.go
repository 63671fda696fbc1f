package domain

import "strings"

// concernKeywords maps condition-text keywords to a Bangla concern phrase.
// Scanned in order; the first group with any keyword present in the condition
// wins. Rain outranks humidity outranks heat outranks storm.
var concernKeywords = []struct {
	keywords []string
	phrase   string
}{
	{[]string{"বৃষ্টি", "বর্ষণ", "rain"}, "বৃষ্টি/আর্দ্রতার কারণে ফাঙ্গাস বা পচনের ঝুঁকি"},
	{[]string{"আর্দ্র", "humidity"}, "উচ্চ আর্দ্রতায় ছত্রাকের ঝুঁকি"},
	{[]string{"গরম", "তাপ", "heat"}, "উচ্চ তাপের কারণে তাপ-স্ট্রেস"},
	{[]string{"ঝড়", "storm"}, "ঝড়/বাতাসে ভাঙ্গার ঝুঁকি"},
}

// defaultConcern is returned when no keyword matches.
const defaultConcern = "স্বাভাবিক অবস্থায় পর্যবেক্ষণ প্রয়োজন"

// MapConcern identifies the dominant weather concern from free-text condition
// input. Matching is case-insensitive and keyword-priority ordered.
func MapConcern(condition string) string {
	w := strings.ToLower(condition)
	for _, group := range concernKeywords {
		for _, kw := range group.keywords {
			if strings.Contains(w, kw) {
				return group.phrase
			}
		}
	}
	return defaultConcern
}

// MapAssessmentConcerns converts a weighted-factor assessment into ranked
// concern labels, highest contribution first.
func MapAssessmentConcerns(a Assessment) []string {
	labels := make([]string, 0, len(a.Concerns))
	for _, c := range a.Concerns {
		labels = append(labels, c.Label)
	}
	return labels
}
