// Package calendar holds the date arithmetic the scheduler is built on:
// weekday names, inclusive date ranges and wall-clock times of day.
package calendar

import (
	"errors"
	"fmt"
	"iter"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidWeekday   = errors.New("invalid weekday")
	ErrInvalidTimeOfDay = errors.New("invalid time of day")
)

// weekdays maps lowercase names and abbreviations to Sunday=0 ... Saturday=6
var weekdays = map[string]int{
	"sunday": 0, "sun": 0,
	"monday": 1, "mon": 1,
	"tuesday": 2, "tue": 2,
	"wednesday": 3, "wed": 3,
	"thursday": 4, "thu": 4,
	"friday": 5, "fri": 5,
	"saturday": 6, "sat": 6,
}

var clockRegex = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)

// WeekdayIndex maps a weekday name to its ordinal, Sunday=0 ... Saturday=6
func WeekdayIndex(name string) (int, error) {
	idx, ok := weekdays[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidWeekday, name)
	}
	return idx, nil
}

// WeekdayName returns the canonical name for a weekday name or abbreviation
func WeekdayName(name string) (string, error) {
	idx, err := WeekdayIndex(name)
	if err != nil {
		return "", err
	}
	return time.Weekday(idx).String(), nil
}

// DateOf truncates t to midnight of its calendar date, keeping its location
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EachDate yields every calendar date from start to end inclusive, ascending.
// Each range over the returned sequence walks the window from the beginning.
func EachDate(start, end time.Time) iter.Seq[time.Time] {
	first := DateOf(start)
	last := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, start.Location())
	return func(yield func(time.Time) bool) {
		// time.Date normalizes day overflow, so DST shifts never skip or repeat a date
		for d := first; !d.After(last); d = time.Date(d.Year(), d.Month(), d.Day()+1, 0, 0, 0, 0, d.Location()) {
			if !yield(d) {
				return
			}
		}
	}
}

// Clock is a wall-clock time of day
type Clock struct {
	Hour   int
	Minute int
}

// Validate checks the clock is within 00:00..23:59
func (c Clock) Validate() error {
	if c.Hour < 0 || c.Hour > 23 || c.Minute < 0 || c.Minute > 59 {
		return fmt.Errorf("%w: %02d:%02d", ErrInvalidTimeOfDay, c.Hour, c.Minute)
	}
	return nil
}

// Before reports whether c is earlier in the day than other
func (c Clock) Before(other Clock) bool {
	return c.Hour*60+c.Minute < other.Hour*60+other.Minute
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// ParseClock parses "HH:MM" (24h, hour may be a single digit)
func ParseClock(input string) (Clock, error) {
	matches := clockRegex.FindStringSubmatch(strings.TrimSpace(input))
	if len(matches) != 3 {
		return Clock{}, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, input)
	}

	hour, _ := strconv.Atoi(matches[1])
	minute, _ := strconv.Atoi(matches[2])
	c := Clock{Hour: hour, Minute: minute}
	if err := c.Validate(); err != nil {
		return Clock{}, err
	}
	return c, nil
}

// Combine sets the hour and minute of date to clock, leaving the date unchanged
func Combine(date time.Time, clock Clock) (time.Time, error) {
	if err := clock.Validate(); err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), clock.Hour, clock.Minute, 0, 0, date.Location()), nil
}
