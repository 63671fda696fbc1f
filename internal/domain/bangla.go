package domain

import (
	"strconv"
	"strings"
	"time"
)

// banglaMonths maps time.Month to the Bangla month name.
var banglaMonths = map[time.Month]string{
	time.January:   "জানুয়ারি",
	time.February:  "ফেব্রুয়ারি",
	time.March:     "মার্চ",
	time.April:     "এপ্রিল",
	time.May:       "মে",
	time.June:      "জুন",
	time.July:      "জুলাই",
	time.August:    "আগস্ট",
	time.September: "সেপ্টেম্বর",
	time.October:   "অক্টোবর",
	time.November:  "নভেম্বর",
	time.December:  "ডিসেম্বর",
}

var banglaWeekdays = map[time.Weekday]string{
	time.Monday:    "সোমবার",
	time.Tuesday:   "মঙ্গলবার",
	time.Wednesday: "বুধবার",
	time.Thursday:  "বৃহস্পতিবার",
	time.Friday:    "শুক্রবার",
	time.Saturday:  "শনিবার",
	time.Sunday:    "রবিবার",
}

var banglaDigits = map[rune]rune{
	'0': '০', '1': '১', '2': '২', '3': '৩', '4': '৪',
	'5': '৫', '6': '৬', '7': '৭', '8': '৮', '9': '৯',
}

// dayLabels are the fixed Dhaka-style labels for the 7-day forecast window.
var dayLabels = []string{"আজ", "আগামীকাল", "২ দিন", "৩ দিন", "৪ দিন", "৫ দিন", "৬ দিন"}

// ToBanglaDigits transliterates ASCII digits in a string to Bangla numerals.
func ToBanglaDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if b, ok := banglaDigits[r]; ok {
			return b
		}
		return r
	}, s)
}

// BanglaDate formats a date as Bangla weekday + day-of-month + month,
// e.g. "শুক্রবার, ১৫ নভেম্বর".
func BanglaDate(t time.Time) string {
	day := ToBanglaDigits(strconv.Itoa(t.Day()))
	return banglaWeekdays[t.Weekday()] + ", " + day + " " + banglaMonths[t.Month()]
}

// DayLabel returns the Bangla label for the ith forecast day: আজ for today,
// আগামীকাল for tomorrow, then "N দিন".
func DayLabel(idx int) string {
	if idx >= 0 && idx < len(dayLabels) {
		return dayLabels[idx]
	}
	return ToBanglaDigits(strconv.Itoa(idx)) + " দিন"
}

// banglaDistricts maps English district aliases to Bangla display names.
var banglaDistricts = map[string]string{
	"dhaka":      "ঢাকা",
	"chittagong": "চট্টগ্রাম",
	"rajshahi":   "রাজশাহী",
	"khulna":     "খুলনা",
	"barisal":    "বরিশাল",
	"sylhet":     "সিলেট",
	"rangpur":    "রংপুর",
	"mymensingh": "ময়মনসিংহ",
	"jhenaidah":  "ঝিনাইদহ",
	"noakhali":   "নোয়াখালী",
	"comilla":    "কুমিল্লা",
	"jashore":    "যশোর",
	"bogra":      "বগুড়া",
	"dinajpur":   "দিনাজপুর",
	"pabna":      "পাবনা",
}

// DistrictNameBangla returns the Bangla display name for an English district
// alias, or the input unchanged when unknown.
func DistrictNameBangla(district string) string {
	if name, ok := banglaDistricts[strings.ToLower(district)]; ok {
		return name
	}
	return district
}
