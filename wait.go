package vbbvg

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Returns the time left from now until a departure at the given
// HH:MM (or HH:MM:SS) on the same calendar day as now.
//
// Departures earlier than now give a zero wait; they are never taken
// to mean the next day. Waits under an hour are formatted MM:SS, all
// others HH:MM:SS.
func WaitTime(departure string, now time.Time) (string, error) {
	hour, minute, second, err := parseClock(departure)
	if err != nil {
		return "", err
	}

	dt := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, second, 0, now.Location())

	delta := int(dt.Sub(now) / time.Second)
	if dt.Before(now) {
		delta = 0
	}

	if delta < 3600 {
		return fmt.Sprintf("%02d:%02d", delta/60, delta%60), nil
	}
	return fmt.Sprintf("%02d:%02d:%02d", delta/3600, delta%3600/60, delta%60), nil
}

func parseClock(s string) (int, int, int, error) {
	split := strings.Split(strings.TrimSpace(s), ":")
	if len(split) != 2 && len(split) != 3 {
		return 0, 0, 0, fmt.Errorf("found %d parts in '%s'", len(split), s)
	}

	hms := [3]int{}
	for i, str := range split {
		j, err := strconv.Atoi(str)
		if err != nil {
			return 0, 0, 0, fmt.Errorf("non-integer in '%s' pos %d", s, i)
		}
		hms[i] = j
	}

	if hms[0] < 0 || hms[0] > 23 {
		return 0, 0, 0, fmt.Errorf("invalid hour in '%s'", s)
	}

	if hms[1] < 0 || hms[1] > 59 {
		return 0, 0, 0, fmt.Errorf("invalid minute in '%s'", s)
	}

	if hms[2] < 0 || hms[2] > 59 {
		return 0, 0, 0, fmt.Errorf("invalid second in '%s'", s)
	}

	return hms[0], hms[1], hms[2], nil
}
