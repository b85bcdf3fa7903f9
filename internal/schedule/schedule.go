// Package schedule validates notification schedules client-side so bad
// input never reaches the backend scheduler.
package schedule

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/robfig/cron/v3"
)

// ParseNotificationTime parses an "HH:MM" notification time
func ParseNotificationTime(value string) (hour, minute int, err error) {
	parts := strings.SplitN(value, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("time %q must be HH:MM", value)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("time %q must be HH:MM", value)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("time %q must be HH:MM", value)
	}
	if err := ValidateDaily(hour, minute); err != nil {
		return 0, 0, err
	}
	return hour, minute, nil
}

// ValidateNotificationTime checks an "HH:MM" string
func ValidateNotificationTime(value string) error {
	_, _, err := ParseNotificationTime(value)
	return err
}

// ValidateDaily checks an hour/minute pair by building the daily cron spec
// the backend scheduler would register and parsing it with the same
// standard grammar.
func ValidateDaily(hour, minute int) error {
	spec := fmt.Sprintf("%d %d * * *", minute, hour)
	if _, err := cron.ParseStandard(spec); err != nil {
		return fmt.Errorf("invalid schedule %02d:%02d: %w", hour, minute, err)
	}
	return nil
}
