package utils

import "strconv"

// Default values substituted when a query parameter is absent,
// non-numeric, or not strictly positive.
const (
	DefaultPage              = "1"
	DefaultLimit             = "20"
	DefaultDescriptionLength = "200"
)

// Page normalizes the raw page query value. A valid value is passed
// through unconverted; anything else yields the default.
func Page(raw string) string {
	return normalize(raw, DefaultPage)
}

// Limit normalizes the raw limit query value.
func Limit(raw string) string {
	return normalize(raw, DefaultLimit)
}

// DescriptionLength normalizes the raw description_length query value.
func DescriptionLength(raw string) string {
	return normalize(raw, DefaultDescriptionLength)
}

// normalize keeps raw as-is when it parses as a strictly positive
// number, so values like "007" or "2.5" survive untouched.
func normalize(raw, fallback string) string {
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v <= 0 {
		return fallback
	}
	return raw
}

// Atoi converts a normalized parameter to an int, truncating fractional
// values the way the legacy arithmetic did.
func Atoi(s string) int {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return int(v)
}
