package env

import (
	"fmt"
	"strconv"
	"time"
)

type Error struct {
	Name string
}

func (e *Error) Error() string {
	return fmt.Sprintf("unable to access environment variable: %s", e.Name)
}

type TypeError struct {
	Name string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("unable to convert environment variable: %s", e.Name)
}

// ParseDuration parses a duration, reading numbers without a unit as
// seconds. Negative durations are turned positive.
func ParseDuration(s string) (time.Duration, error) {
	if _, err := strconv.Atoi(s); err == nil {
		s += "s"
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("unable to parse duration: %w", err)
	}
	if d < 0 {
		d = -d
	}

	return d, nil
}
