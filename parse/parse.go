// Package parse extracts identifiers and timestamps from recording names
// such as "R216_1578240_01302020_15-45-07UTC.mp4".
package parse

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var ErrMalformed = errors.New("malformed input")

// missingDate stands in for timestamps that only carry a time of day.
const missingDate = "01010001"

// StoreCameraID returns the first two "_" separated fields of fname.
func StoreCameraID(fname string) (store, camera string, err error) {
	fields := strings.Split(fname, "_")
	if len(fields) < 2 {
		return "", "", fmt.Errorf("store and camera id from %q: %w", fname, ErrMalformed)
	}
	return fields[0], fields[1], nil
}

// Timestamp parses "MMDDYYYY_HHMMSS" style timestamps into a UTC time.
//
// The date and time may be separated by "_" or " " and the date may be
// absent, giving 0001-01-01. The time is "HH-MM-SS", "HHMMSS" or "HHMM",
// optionally followed by "UTC" or "AM"/"PM". Of a range like "1545-1600"
// only the start is kept, and anything after "_-_" is ignored.
func Timestamp(s string) (time.Time, error) {
	t, err := timestamp(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t, nil
}

func timestamp(s string) (time.Time, error) {
	s, _, _ = strings.Cut(s, "_-_")

	sep := " "
	if strings.Contains(s, "_") {
		sep = "_"
	}
	parts := strings.Split(s, sep)
	var date string
	switch len(parts) {
	case 1:
		date = missingDate
	case 2:
		date = parts[0]
	default:
		return time.Time{}, fmt.Errorf("%w: %d %q separated fields", ErrMalformed, len(parts), sep)
	}
	if len(date) != len(missingDate) {
		return time.Time{}, fmt.Errorf("%w: date %q is not MMDDYYYY", ErrMalformed, date)
	}

	clock := parts[len(parts)-1]
	if fields := strings.Split(clock, "-"); len(fields) == 2 {
		clock = fields[0]
	}
	clock, err := to24Hour(clock)
	if err != nil {
		return time.Time{}, err
	}
	clock = strings.NewReplacer("UTC", "", "PM", "", "AM", "").Replace(clock)

	var layout string
	switch {
	case strings.Contains(clock, "-"):
		layout = "15-04-05"
	case len(clock) == 4:
		layout = "1504"
	default:
		layout = "150405"
	}
	return time.ParseInLocation("01022006"+sep+layout, date+sep+clock, time.UTC)
}

// to24Hour rewrites a 12-hour clock with an AM/PM suffix; other input is
// returned unchanged.
func to24Hour(clock string) (string, error) {
	if !strings.Contains(clock, "AM") && !strings.Contains(clock, "PM") {
		return clock, nil
	}
	noon := strings.HasPrefix(clock, "12")
	switch {
	case strings.HasSuffix(clock, "AM") && noon:
		return "00" + clock[2:len(clock)-2], nil
	case strings.HasSuffix(clock, "AM"):
		return clock[:len(clock)-2], nil
	case strings.HasSuffix(clock, "PM") && noon:
		return clock[:len(clock)-2], nil
	}
	if len(clock) < 2 {
		return "", fmt.Errorf("%w: clock %q", ErrMalformed, clock)
	}
	hour, err := strconv.Atoi(clock[:2])
	if err != nil {
		return "", fmt.Errorf("%w: clock %q", ErrMalformed, clock)
	}
	rest := clock[2:]
	if len(rest) > 6 {
		rest = rest[:6]
	}
	return strconv.Itoa(hour+12) + rest, nil
}
