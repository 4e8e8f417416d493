package convert

import (
	"strconv"
	"strings"
	"time"
)

// DefaultTimeLayouts are tried in order by [Time]. Inputs without a zone are
// interpreted as UTC; fractional seconds are accepted after any seconds field.
var DefaultTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	time.DateTime,
	time.DateOnly,
}

// Text is the identity conversion. It accepts every token, the empty one
// included.
func Text(token string) (string, bool) {
	return token, true
}

// Int parses a signed integer that fits in bitSize bits (0 means int).
func Int(token string, bitSize int) (int64, bool) {
	v, err := strconv.ParseInt(strings.TrimSpace(token), 10, bitSize)
	if err != nil {
		return 0, false
	}

	return v, true
}

// Uint parses an unsigned integer that fits in bitSize bits (0 means uint).
func Uint(token string, bitSize int) (uint64, bool) {
	v, err := strconv.ParseUint(strings.TrimSpace(token), 10, bitSize)
	if err != nil {
		return 0, false
	}

	return v, true
}

// Float parses a floating-point number of the given precision.
func Float(token string, bitSize int) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(token), bitSize)
	if err != nil {
		return 0, false
	}

	return v, true
}

// Bool parses true/false, yes/no, on/off, t/f, y/n and 1/0 in any letter case.
func Bool(token string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(token)) {
	default:
		return false, false
	case "true", "yes", "on", "t", "y", "1":
		return true, true
	case "false", "no", "off", "f", "n", "0":
		return false, true
	}
}

// Time parses a timestamp with [DefaultTimeLayouts].
func Time(token string) (time.Time, bool) {
	return TimeIn(token, DefaultTimeLayouts)
}

// TimeIn parses a timestamp with the first of layouts that accepts it.
func TimeIn(token string, layouts []string) (time.Time, bool) {
	token = strings.TrimSpace(token)
	if token == "" {
		return time.Time{}, false
	}

	for _, layout := range layouts {
		t, err := time.Parse(layout, token)
		if err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// Duration parses a duration such as "2h45m".
func Duration(token string) (time.Duration, bool) {
	d, err := time.ParseDuration(strings.TrimSpace(token))
	if err != nil {
		return 0, false
	}

	return d, true
}
