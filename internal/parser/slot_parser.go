package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/balkashynov/skipsmart/internal/calendar"
	"github.com/balkashynov/skipsmart/internal/models"
)

// "Mon 10:00-11:00", "monday 9:00 - 10:30", "Wed@14:00-15:00"
var slotRegex = regexp.MustCompile(`^([A-Za-z]+)[\s@]+(\d{1,2}:\d{2})\s*-\s*(\d{1,2}:\d{2})$`)

// ParseSlot parses a weekly slot like "Mon 10:00-11:00" into a schedule entry
func ParseSlot(input string) (models.ScheduleEntry, error) {
	matches := slotRegex.FindStringSubmatch(strings.TrimSpace(input))
	if len(matches) != 4 {
		return models.ScheduleEntry{}, fmt.Errorf("invalid slot %q. Use: <day> HH:MM-HH:MM, e.g. \"Mon 10:00-11:00\"", input)
	}

	day, err := calendar.WeekdayName(matches[1])
	if err != nil {
		return models.ScheduleEntry{}, err
	}
	start, err := calendar.ParseClock(matches[2])
	if err != nil {
		return models.ScheduleEntry{}, err
	}
	end, err := calendar.ParseClock(matches[3])
	if err != nil {
		return models.ScheduleEntry{}, err
	}

	return models.ScheduleEntry{
		Day:       day,
		StartTime: start.String(),
		EndTime:   end.String(),
	}, nil
}

// ParseSlots parses every slot, collecting all errors instead of stopping at the first
func ParseSlots(inputs []string) ([]models.ScheduleEntry, []string) {
	entries := []models.ScheduleEntry{}
	errors := []string{}

	for _, group := range inputs {
		// Allow "Mon 10:00-11:00; Wed 10:00-11:00" in a single flag value
		for _, raw := range strings.Split(group, ";") {
			raw = strings.TrimSpace(raw)
			if raw == "" {
				continue
			}
			entry, err := ParseSlot(raw)
			if err != nil {
				errors = append(errors, err.Error())
				continue
			}
			entries = append(entries, entry)
		}
	}

	return entries, errors
}

// ParseTimeRange parses "HH:MM-HH:MM"
func ParseTimeRange(input string) (calendar.Clock, calendar.Clock, error) {
	parts := strings.Split(input, "-")
	if len(parts) != 2 {
		return calendar.Clock{}, calendar.Clock{}, fmt.Errorf("invalid time range %q. Use: HH:MM-HH:MM", input)
	}
	start, err := calendar.ParseClock(parts[0])
	if err != nil {
		return calendar.Clock{}, calendar.Clock{}, err
	}
	end, err := calendar.ParseClock(parts[1])
	if err != nil {
		return calendar.Clock{}, calendar.Clock{}, err
	}
	return start, end, nil
}
