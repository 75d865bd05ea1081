package cache

import (
	"fmt"
	"strconv"
	"time"
)

// TTL limits and defaults.
const (
	// DefaultTTLSeconds is the default entry lifetime (5 minutes).
	DefaultTTLSeconds = 300

	// MaxTTLSeconds is the longest allowed lifetime (1 day).
	MaxTTLSeconds = 86400

	minutesPerHour = 60
)

// ErrInvalidTTL is returned for a TTL outside 0..MaxTTLSeconds.
var ErrInvalidTTL = fmt.Errorf("TTL must be between 0 and %d seconds", MaxTTLSeconds)

// ValidateTTL checks a TTL in seconds. Zero is valid and disables caching.
func ValidateTTL(seconds int) error {
	if seconds < 0 || seconds > MaxTTLSeconds {
		return fmt.Errorf("%w: got %d", ErrInvalidTTL, seconds)
	}
	return nil
}

// ParseTTL parses a TTL given either as integer seconds ("300") or as a
// duration string ("5m", "1h30m").
func ParseTTL(s string) (int, error) {
	seconds, err := strconv.Atoi(s)
	if err != nil {
		d, durErr := time.ParseDuration(s)
		if durErr != nil {
			return 0, fmt.Errorf("invalid TTL format: %w", durErr)
		}
		seconds = int(d.Seconds())
	}

	if err := ValidateTTL(seconds); err != nil {
		return 0, err
	}
	return seconds, nil
}

// FormatDuration formats a duration for logs and status output, e.g. "30s",
// "5m" or "2h30m".
func FormatDuration(d time.Duration) string {
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%.0fs", d.Seconds())
	case d < time.Hour:
		return fmt.Sprintf("%.0fm", d.Minutes())
	}
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % minutesPerHour
	if minutes == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh%dm", hours, minutes)
}
