package helpers

import (
	"time"
)

func ParseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}

	return time.ParseDuration(s)
}

// ParseDurationOr parses s and falls back to def when s is empty or invalid.
func ParseDurationOr(s string, def time.Duration) time.Duration {
	d, err := ParseDuration(s)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
