package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	dmyRegex = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	isoRegex = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})$`)
)

// ParseDate parses a calendar date in loc
// Supported formats:
// - dd/mm/yyyy (e.g., "15/12/2025")
// - yyyy-mm-dd (e.g., "2025-12-15")
// - today, tomorrow, yesterday (relative to now)
func ParseDate(input string, now time.Time, loc *time.Location) (time.Time, error) {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return time.Time{}, fmt.Errorf("date is required")
	}

	today := time.Date(now.In(loc).Year(), now.In(loc).Month(), now.In(loc).Day(), 0, 0, 0, 0, loc)
	switch input {
	case "today":
		return today, nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	}

	var day, month, year int
	if matches := dmyRegex.FindStringSubmatch(input); len(matches) == 4 {
		day, _ = strconv.Atoi(matches[1])
		month, _ = strconv.Atoi(matches[2])
		year, _ = strconv.Atoi(matches[3])
	} else if matches := isoRegex.FindStringSubmatch(input); len(matches) == 4 {
		year, _ = strconv.Atoi(matches[1])
		month, _ = strconv.Atoi(matches[2])
		day, _ = strconv.Atoi(matches[3])
	} else {
		return time.Time{}, fmt.Errorf("invalid date %q. Use: dd/mm/yyyy or yyyy-mm-dd", input)
	}

	// Validate date ranges
	if month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("month must be between 1 and 12")
	}
	if day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("day must be between 1 and 31")
	}

	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)

	// Check if date is valid (handles leap years, etc.)
	if date.Day() != day || date.Month() != time.Month(month) || date.Year() != year {
		return time.Time{}, fmt.Errorf("invalid date %q", input)
	}

	return date, nil
}

// FormatDate formats a calendar date for display
func FormatDate(date time.Time) string {
	return date.Format("Mon 02/01/2006")
}

// FormatRelative describes a session's start relative to now
func FormatRelative(start, now time.Time) string {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	startLocal := start.In(now.Location())
	day := time.Date(startLocal.Year(), startLocal.Month(), startLocal.Day(), 0, 0, 0, 0, now.Location())
	daysDiff := int(day.Sub(today).Hours() / 24)

	clock := startLocal.Format("15:04")
	switch {
	case daysDiff == 0:
		return "today " + clock
	case daysDiff == 1:
		return "tomorrow " + clock
	case daysDiff == -1:
		return "yesterday " + clock
	case daysDiff > 1 && daysDiff <= 6:
		return startLocal.Format("Monday") + " " + clock
	default:
		return startLocal.Format("02/01/2006") + " " + clock
	}
}
