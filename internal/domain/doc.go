// Package domain implements the weather risk assessment and crop advisory
// engine for Bangladeshi smallholder farming.
//
// # Data Source
//
// Weather data arrives as flat JSON produced by the forecast collector: either
// a single current-conditions reading (free-form key aliases, fields may be
// missing) or a 7-day daily forecast block (date, temp max/min, relative
// humidity, rainfall sum, wind speed, WMO weather code). The engine itself
// performs no I/O; it receives already-fetched data and returns advisory
// structures.
//
// # Canonical Weather Reading
//
// Raw readings are normalized by [NormalizeReading]. For each canonical field a
// fixed alias list is probed in priority order and the first present value
// wins:
//
//	temperature: "temperature", "temp"               (default 25 °C)
//	humidity:    "humidity"                          (default 0 %)
//	rain:        "rain_chance", "rain", "rainfall"   (default 0)
//	wind:        "wind_speed", "wind"                (default 0)
//	condition:   "condition"                         (default "", lowercased)
//
// Missing fields are the common case and never fail. A present value that
// cannot be coerced to a number fails with [*ValidationError].
//
// The rain field carries either a rain chance in percent or a rainfall sum in
// millimetres depending on the feed; each scorer applies its own thresholds.
// This mirrors the upstream data contract and is deliberately not unified.
//
// # Risk Scales
//
// Three scoring paths coexist and must not be merged; they serve different
// call sites with different granularity:
//
//	simple threshold  → Low / Moderate / High / Critical  ([ClassifyReading])
//	threshold count   → low / medium / high               ([AssessForecast])
//	weighted factor   → low / medium / high               ([AssessReading])
//
// The simple-threshold ladder:
//
//	rain > 70 or humidity > 90 or temp > 42  → Critical
//	rain > 50 or humidity > 85 or temp > 36  → High
//	rain > 25 or humidity > 75 or temp > 32  → Moderate
//	otherwise                                → Low
//
// A caller-supplied risk override, normalized to title case, always takes
// precedence over the computed level.
//
// # Crop Catalog
//
// Free-text crop names (Bangla or English) resolve against an ordered synonym
// catalog by case-insensitive substring containment; the first match wins.
// Ordering is part of the contract: "rice storage" must be checked before
// "rice". Unrecognized names fall back to a generic rule table that keeps the
// literal crop text, so farmer-entered free text always yields a well-formed
// advisory.
//
// # Advisories
//
// Each advisory is a header line ("<crop> — ঝুঁকি: <level>"), one to three
// Bangla body lines selected from per-crop prioritized rule tables, and an
// optional critical alert string. The alert is plain message content for
// out-of-band delivery (SMS gateway, push, alert topic); it is a separate
// field, never mixed into the body.
package domain
