package booking

import (
	"fmt"
	"strconv"
	"strings"
)

// MalformedAvailabilityError reports an availability range string that cannot
// be parsed. It is fatal only to that therapist's slot computation; the
// surrounding search continues.
type MalformedAvailabilityError struct {
	Range  string
	Reason string
}

func (e *MalformedAvailabilityError) Error() string {
	return fmt.Sprintf("malformed availability range %q: %s", e.Range, e.Reason)
}

// DeriveSlots expands a range string of the form "H:MM - H:MM" (24-hour)
// into one bookable slot label per whole hour, start inclusive, end
// exclusive, rendered on the 12-hour clock. A degenerate range (end <= start)
// yields an empty set without error; callers disable slot selection instead.
func DeriveSlots(rangeStr string) ([]string, error) {
	parts := strings.SplitN(rangeStr, " - ", 2)
	if len(parts) != 2 {
		return nil, &MalformedAvailabilityError{Range: rangeStr, Reason: "missing \" - \" separator"}
	}

	startHour, err := parseHour(parts[0])
	if err != nil {
		return nil, &MalformedAvailabilityError{Range: rangeStr, Reason: err.Error()}
	}
	endHour, err := parseHour(parts[1])
	if err != nil {
		return nil, &MalformedAvailabilityError{Range: rangeStr, Reason: err.Error()}
	}

	slots := make([]string, 0)
	for hour := startHour; hour < endHour; hour++ {
		slots = append(slots, formatSlot(hour, 0))
	}
	return slots, nil
}

// parseHour extracts the hour component of a "H:MM" token.
func parseHour(token string) (int, error) {
	hourStr := strings.SplitN(strings.TrimSpace(token), ":", 2)[0]
	hour, err := strconv.Atoi(hourStr)
	if err != nil {
		return 0, fmt.Errorf("non-numeric hour %q", hourStr)
	}
	return hour, nil
}

// formatSlot renders an hour/minute pair on the 12-hour clock. Hours 0 and
// 12 both render as 12.
func formatSlot(hour, minute int) string {
	period := "AM"
	if hour >= 12 {
		period = "PM"
	}
	adjusted := hour % 12
	if adjusted == 0 {
		adjusted = 12
	}
	return fmt.Sprintf("%d:%02d %s", adjusted, minute, period)
}
