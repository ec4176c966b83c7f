// Package clitime parses the "HH:MM" flag values every CLI subcommand
// accepts into timeutil.Time and timeutil.TimeInterval values.
package clitime

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/adrienmarchand/schedcore/internal/timeutil"
)

// ParseHHMM parses a "HH:MM" string into a Time.
func ParseHHMM(s string) (timeutil.Time, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return timeutil.Time{}, fmt.Errorf("clitime: %q is not HH:MM", s)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return timeutil.Time{}, fmt.Errorf("clitime: %q is not HH:MM: %w", s, err)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return timeutil.Time{}, fmt.Errorf("clitime: %q is not HH:MM: %w", s, err)
	}
	return timeutil.New(hours, minutes)
}

// ParseInterval parses a pair of "HH:MM" strings into a TimeInterval.
func ParseInterval(beginning, end string) (timeutil.TimeInterval, error) {
	b, err := ParseHHMM(beginning)
	if err != nil {
		return timeutil.TimeInterval{}, err
	}
	e, err := ParseHHMM(end)
	if err != nil {
		return timeutil.TimeInterval{}, err
	}
	return timeutil.NewInterval(b, e)
}
