package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// WeatherReading is the canonical, defaulted weather record used uniformly by
// all scoring paths.
type WeatherReading struct {
	Temperature float64 `json:"temperature"` // °C
	Humidity    float64 `json:"humidity"`    // relative humidity, 0–100 %
	Rain        float64 `json:"rain"`        // rain chance in % or rainfall in mm, per feed
	WindSpeed   float64 `json:"wind_speed"`  // km/h
	Condition   string  `json:"condition"`   // lowercased free text, e.g. "heavy rain"
}

// RawEvent represents an unprocessed message from the source topic.
type RawEvent struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// ValidationError reports a raw weather field whose value is present but not
// numeric. Missing fields never produce this error; they fall back to defaults.
type ValidationError struct {
	Field string
	Value any
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("weather field %q: value %v is not numeric", e.Field, e.Value)
}

// Neutral defaults applied when a field is absent from raw input.
const (
	defaultTemperature = 25.0
	defaultHumidity    = 0.0
	defaultRain        = 0.0
	defaultWindSpeed   = 0.0
)

// Alias lists probed in priority order; the first present key wins.
var (
	temperatureAliases = []string{"temperature", "temp"}
	humidityAliases    = []string{"humidity"}
	rainAliases        = []string{"rain_chance", "rain", "rainfall"}
	windAliases        = []string{"wind_speed", "wind"}
)

// NormalizeReading converts a heterogeneous raw weather mapping into a
// canonical reading. Absent fields default (temp 25, everything else 0); a
// present non-numeric value fails with *ValidationError. Empty strings count
// as absent, matching the upstream collector which emits "" for unmeasured
// fields. No side effects.
func NormalizeReading(raw map[string]any) (WeatherReading, error) {
	reading := WeatherReading{}

	var err error
	if reading.Temperature, err = probeNumeric(raw, temperatureAliases, defaultTemperature); err != nil {
		return WeatherReading{}, err
	}
	if reading.Humidity, err = probeNumeric(raw, humidityAliases, defaultHumidity); err != nil {
		return WeatherReading{}, err
	}
	if reading.Rain, err = probeNumeric(raw, rainAliases, defaultRain); err != nil {
		return WeatherReading{}, err
	}
	if reading.WindSpeed, err = probeNumeric(raw, windAliases, defaultWindSpeed); err != nil {
		return WeatherReading{}, err
	}

	if v, ok := raw["condition"]; ok && v != nil {
		if s, ok := v.(string); ok {
			reading.Condition = strings.ToLower(strings.TrimSpace(s))
		} else {
			reading.Condition = strings.ToLower(strings.TrimSpace(fmt.Sprint(v)))
		}
	}

	return reading, nil
}

// probeNumeric returns the first present alias value coerced to float64, or
// the default when every alias is absent.
func probeNumeric(raw map[string]any, aliases []string, def float64) (float64, error) {
	for _, key := range aliases {
		v, ok := raw[key]
		if !ok || v == nil {
			continue
		}
		if s, isString := v.(string); isString && strings.TrimSpace(s) == "" {
			continue
		}
		f, err := coerceNumeric(key, v)
		if err != nil {
			return 0, err
		}
		return f, nil
	}
	return def, nil
}

// coerceNumeric accepts the numeric shapes that survive JSON decoding and
// form input: float64, json.Number, integer types, and numeric strings.
func coerceNumeric(field string, v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, &ValidationError{Field: field, Value: v}
		}
		return f, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, &ValidationError{Field: field, Value: v}
		}
		return f, nil
	default:
		return 0, &ValidationError{Field: field, Value: v}
	}
}
