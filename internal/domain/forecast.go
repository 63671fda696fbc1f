package domain

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// RawForecastDay is one day of the flat JSON forecast block handed over by
// the weather provider.
type RawForecastDay struct {
	Date        string  `json:"date"` // "2006-01-02"
	TempMax     float64 `json:"temp_max"`
	TempMin     float64 `json:"temp_min"`
	Humidity    float64 `json:"humidity"` // relative humidity max, %
	Rainfall    float64 `json:"rainfall"` // daily sum, mm
	WindSpeed   float64 `json:"wind_speed"`
	WeatherCode int     `json:"weather_code"` // WMO code
}

// DailyWeather is one normalized forecast day with localized display fields.
type DailyWeather struct {
	Date        string  `json:"date"`         // Bangla weekday + date
	DateEnglish string  `json:"date_english"` // "2006-01-02"
	DateLabel   string  `json:"date_label"`   // আজ, আগামীকাল, ২ দিন, …
	Temperature float64 `json:"temperature"`  // (max+min)/2, 1 decimal
	TempMax     float64 `json:"temp_max"`
	TempMin     float64 `json:"temp_min"`
	Humidity    float64 `json:"humidity"`
	Rainfall    float64 `json:"rainfall"`
	WindSpeed   float64 `json:"wind_speed"`
	Condition   string  `json:"condition"`
}

// weatherCodes maps WMO weather codes to readable condition text.
var weatherCodes = map[int]string{
	0:  "Clear",
	1:  "Mainly Clear",
	2:  "Partly Cloudy",
	3:  "Overcast",
	45: "Foggy",
	48: "Foggy with Rime",
	51: "Light Drizzle",
	53: "Moderate Drizzle",
	55: "Heavy Drizzle",
	61: "Slight Rain",
	63: "Moderate Rain",
	65: "Heavy Rain",
	71: "Slight Snow",
	73: "Moderate Snow",
	75: "Heavy Snow",
	80: "Slight Rain Showers",
	81: "Moderate Rain Showers",
	82: "Heavy Rain Showers",
	85: "Snow Showers",
	86: "Heavy Snow Showers",
	95: "Thunderstorm",
	96: "Thunderstorm with Hail",
	99: "Thunderstorm with Heavy Hail",
}

// InterpretWeatherCode converts a WMO weather code to condition text.
func InterpretWeatherCode(code int) string {
	if condition, ok := weatherCodes[code]; ok {
		return condition
	}
	return "Unknown"
}

// BuildForecast normalizes raw provider days into DailyWeather entries with
// Bangla dates and fixed day labels. Fails on an unparseable date; everything
// else is taken as-is.
func BuildForecast(days []RawForecastDay) ([]DailyWeather, error) {
	forecast := make([]DailyWeather, 0, len(days))
	for idx, day := range days {
		date, err := time.Parse("2006-01-02", day.Date)
		if err != nil {
			return nil, fmt.Errorf("forecast day %d: parse date %q: %w", idx, day.Date, err)
		}
		forecast = append(forecast, DailyWeather{
			Date:        BanglaDate(date),
			DateEnglish: day.Date,
			DateLabel:   DayLabel(idx),
			Temperature: math.Round((day.TempMax+day.TempMin)/2*10) / 10,
			TempMax:     day.TempMax,
			TempMin:     day.TempMin,
			Humidity:    day.Humidity,
			Rainfall:    day.Rainfall,
			WindSpeed:   day.WindSpeed,
			Condition:   InterpretWeatherCode(day.WeatherCode),
		})
	}
	return forecast, nil
}

// Reading projects a forecast day onto the canonical reading used by the risk
// classifiers: averaged temperature plus the day's recorded humidity and
// rainfall.
func (d DailyWeather) Reading() WeatherReading {
	return WeatherReading{
		Temperature: d.Temperature,
		Humidity:    d.Humidity,
		Rain:        d.Rainfall,
		WindSpeed:   d.WindSpeed,
		Condition:   strings.ToLower(d.Condition),
	}
}
