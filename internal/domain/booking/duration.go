package booking

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidWindow = errors.New("collection must not precede delivery")

const (
	// Grace hours past a full 24h multiple before an extra day is billed.
	MinHourTolerance = 1
	MaxHourTolerance = 12

	DefaultHourTolerance = 1
)

// DurationQuote is the derived billing view of a rental window. It is never
// persisted; every reader recomputes it from the two instants and the
// per-booking tolerance.
type DurationQuote struct {
	BilledDays        int
	ExactHours        float64
	ExceedsTolerance  bool
	FormattedDuration string
	FormattedTotal    string
}

// QuoteDuration converts a delivery instant, a collection instant and an
// hour-tolerance into the billed day count. A rental is billed per started
// 24h period, except that a remainder of up to hourTolerance hours past the
// last full day is forgiven; a remainder exactly equal to the tolerance is
// still within grace. Tolerances outside [1,12] are clamped. Same-instant
// windows bill one day. A collection before delivery returns ErrInvalidWindow.
//
// Both arguments are absolute instants; callers resolve wall-clock input to
// instants before calling. The function reads no ambient clock.
func QuoteDuration(delivery, collection time.Time, hourTolerance int) (DurationQuote, error) {
	delta := collection.Sub(delivery)
	if delta < 0 {
		return DurationQuote{}, ErrInvalidWindow
	}

	tolerance := clampTolerance(hourTolerance)

	fullDays := int(delta / (24 * time.Hour))
	remainder := delta - time.Duration(fullDays)*24*time.Hour
	remainderHours := remainder.Hours()

	exceeds := remainderHours > float64(tolerance)

	billedDays := fullDays
	if exceeds {
		billedDays++
	}
	if billedDays < 1 {
		billedDays = 1
	}

	return DurationQuote{
		BilledDays:        billedDays,
		ExactHours:        delta.Hours(),
		ExceedsTolerance:  exceeds,
		FormattedDuration: formatElapsed(delta),
		FormattedTotal:    FormatBilledDays(billedDays),
	}, nil
}

func clampTolerance(hours int) int {
	if hours < MinHourTolerance {
		return MinHourTolerance
	}
	if hours > MaxHourTolerance {
		return MaxHourTolerance
	}
	return hours
}

// FormatBilledDays renders a billed day count, e.g. "1 day", "3 days".
func FormatBilledDays(days int) string {
	return pluralize(days, "day")
}

// formatElapsed renders the exact elapsed time at minute granularity,
// omitting zero components: "2 days 3 hours", "1 day 1 hour 30 minutes",
// "5 hours". A zero-length window renders "0 hours".
func formatElapsed(d time.Duration) string {
	days := int(d / (24 * time.Hour))
	d -= time.Duration(days) * 24 * time.Hour
	hours := int(d / time.Hour)
	d -= time.Duration(hours) * time.Hour
	minutes := int(d / time.Minute)

	var parts []string
	if days > 0 {
		parts = append(parts, pluralize(days, "day"))
	}
	if hours > 0 {
		parts = append(parts, pluralize(hours, "hour"))
	}
	if minutes > 0 {
		parts = append(parts, pluralize(minutes, "minute"))
	}
	if len(parts) == 0 {
		return "0 hours"
	}
	return strings.Join(parts, " ")
}

func pluralize(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
