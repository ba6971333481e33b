// Package timeutil is the clock and calendar used by the tracker. It breaks
// local timestamps into fields, computes ISO week numbers, parses dates and
// converts between seconds and fractional hours.
package timeutil

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode"

	dps "github.com/markusmobius/go-dateparser"
)

// DateLayout is the canonical date format stored in the ledger.
const DateLayout = "2006-01-02"

// DateLen is the length of a canonical date string.
const DateLen = len(DateLayout)

const (
	secondsInAMinute = 60
	secondsInAnHour  = 3600
	minutesInAnHour  = 60
	HoursInADay      = 24
)

// Clock supplies the current instant. Values returned by the system clock
// carry a monotonic reading, so Sub between two of them ignores wall clock
// adjustments.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// System is the local system clock.
var System Clock = systemClock{}

// Date is a calendar date with its ISO week number.
type Date struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
	Week  int `json:"week"`
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Stamp is a local timestamp broken into fields.
type Stamp struct {
	Date
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
	Second int `json:"second"`
}

// DateOf returns the local calendar date of t.
func DateOf(t time.Time) Date {
	t = t.Local()

	_, week := t.ISOWeek()

	return Date{
		Year:  t.Year(),
		Month: int(t.Month()),
		Day:   t.Day(),
		Week:  week,
	}
}

// StampOf breaks t into local time fields.
func StampOf(t time.Time) Stamp {
	t = t.Local()

	return Stamp{
		Date:   DateOf(t),
		Hour:   t.Hour(),
		Minute: t.Minute(),
		Second: t.Second(),
	}
}

// ParseDate parses a YYYY-MM-DD string in local time.
func ParseDate(s string) (Date, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return Date{}, err
	}

	return DateOf(t), nil
}

// WeekNumber returns the ISO week number of a YYYY-MM-DD date.
func WeekNumber(date string) (int, error) {
	d, err := ParseDate(date)
	if err != nil {
		return 0, err
	}

	return d.Week, nil
}

// FromStr converts a date string to a time value. Canonical dates are parsed
// directly; anything else goes through the natural language parser, so
// phrases like "yesterday" or "3 days ago" are accepted.
func FromStr(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)

	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err == nil {
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

// NormalizeDate turns a phrase such as "yesterday" or "3 days ago" into a
// canonical date. Input without letters is a date written by hand and is
// returned unchanged, so a malformed one is never reinterpreted.
func NormalizeDate(s string, now time.Time) string {
	if !strings.ContainsFunc(s, unicode.IsLetter) {
		return s
	}

	t, err := FromStr(s, now)
	if err != nil {
		return s
	}

	return t.In(now.Location()).Format(DateLayout)
}

// Round4 rounds a value to four decimal places.
func Round4(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}

// SecondsToHours converts seconds to hours rounded to four decimal places.
func SecondsToHours(seconds int) float64 {
	return Round4(float64(seconds) / secondsInAnHour)
}

// HoursToClock formats fractional hours as H:MM.
func HoursToClock(hours float64) string {
	h := int(hours)
	m := int(math.Round((hours - float64(h)) * minutesInAnHour))

	if m == minutesInAnHour {
		h++
		m = 0
	}

	return fmt.Sprintf("%d:%02d", h, m)
}

// FormatElapsed formats a duration as HH:MM:SS.
func FormatElapsed(d time.Duration) string {
	total := int(d / time.Second)

	return fmt.Sprintf(
		"%02d:%02d:%02d",
		total/secondsInAnHour,
		(total%secondsInAnHour)/secondsInAMinute,
		total%secondsInAMinute,
	)
}

// HoursBeforeMidnight is the wall clock time left in the day of s.
func HoursBeforeMidnight(s Stamp) float64 {
	return float64(HoursInADay-s.Hour) -
		float64(s.Minute)/minutesInAnHour -
		float64(s.Second)/secondsInAnHour
}

// HoursAfterMidnight is the wall clock time elapsed in the day of s.
func HoursAfterMidnight(s Stamp) float64 {
	return float64(s.Hour) +
		float64(s.Minute)/minutesInAnHour +
		float64(s.Second)/secondsInAnHour
}

// RoundToStart resets the given time to the start of the day.
func RoundToStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
