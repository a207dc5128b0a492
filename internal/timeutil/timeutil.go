// Package timeutil provides utility functions and types for working with
// time-related operations.
package timeutil

import (
	"errors"
	"math"
	"strings"
	"time"

	dps "github.com/markusmobius/go-dateparser"
)

const minutesInAnHour = 60

const (
	HoursInADay = 24
	Day         = HoursInADay * time.Hour
)

// keyLayout is a fixed-width layout so that keys sort chronologically.
const keyLayout = "2006-01-02T15:04:05.000000000Z"

var errEmptyTime = errors.New("no time was provided")

type Period string

const (
	PeriodAllTime   Period = "all-time"
	PeriodToday     Period = "today"
	PeriodYesterday Period = "yesterday"
	Period7Days     Period = "7days"
	Period14Days    Period = "14days"
	Period30Days    Period = "30days"
	Period90Days    Period = "90days"
	Period180Days   Period = "180days"
	Period365Days   Period = "365days"
)

var Range = map[Period]int{
	PeriodAllTime:   0,
	PeriodToday:     0,
	PeriodYesterday: -1,
	Period7Days:     -6,
	Period14Days:    -13,
	Period30Days:    -29,
	Period90Days:    -89,
	Period180Days:   -179,
	Period365Days:   -364,
}

var PeriodCollection = []Period{
	PeriodAllTime,
	PeriodToday,
	PeriodYesterday,
	Period7Days,
	Period14Days,
	Period30Days,
	Period90Days,
	Period180Days,
	Period365Days,
}

// Round rounds a time value in seconds, minutes, or hours to the nearest integer.
func Round(t float64) int {
	return int(math.Round(t))
}

// MinsToHoursAndMins expresses a minutes value in hours and mins.
func MinsToHoursAndMins(val int) (hrs, mins int) {
	hrs = val / minutesInAnHour
	mins = val % minutesInAnHour

	return
}

// RoundToStart resets the given time to the start of the day.
func RoundToStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// RoundToEnd resets the given time to the end of the day.
func RoundToEnd(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}

// PeriodRange returns the start and end of a reporting period relative to
// now. The all-time period starts at the zero time.
func PeriodRange(period Period, now time.Time) (start, end time.Time) {
	start = RoundToStart(now)
	end = RoundToEnd(now)

	//nolint:exhaustive // other cases covered by default
	switch period {
	case PeriodToday:
		return
	case PeriodYesterday:
		start = RoundToStart(now.AddDate(0, 0, Range[period]))
		end = RoundToEnd(start)

		return
	case PeriodAllTime:
		start = time.Time{}

		return
	default:
		start = RoundToStart(now.AddDate(0, 0, Range[period]))
	}

	return
}

// ToKey converts a time value to a database key for Bolt.
func ToKey(t time.Time) []byte {
	return []byte(t.UTC().Format(keyLayout))
}

// ParseClock parses a wall-clock time such as "06:30" or "6:30am" and
// places it on the same day as now.
func ParseClock(s string, now time.Time) (time.Time, bool) {
	s = strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))

	for _, layout := range []string{"15:04", "3:04pm", "3pm", "1504"} {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}

		return time.Date(
			now.Year(), now.Month(), now.Day(),
			t.Hour(), t.Minute(), 0, 0,
			now.Location(),
		), true
	}

	return time.Time{}, false
}

// FromStr converts a human-readable time ("22:45", "yesterday 11pm",
// "20 mins ago") into a time value relative to now.
func FromStr(s string, now time.Time) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return time.Time{}, errEmptyTime
	}

	if t, ok := ParseClock(s, now); ok {
		return t, nil
	}

	cfg := &dps.Configuration{
		CurrentTime: now,
	}

	dt, err := dps.Parse(cfg, s)
	if err != nil {
		return time.Time{}, err
	}

	return dt.Time, nil
}
