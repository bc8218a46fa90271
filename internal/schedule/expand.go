// Package schedule turns a subject's weekly timetable into concrete class
// sessions across a semester.
package schedule

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/balkashynov/skipsmart/internal/calendar"
	"github.com/balkashynov/skipsmart/internal/models"
)

var ErrInvalidScheduleEntry = errors.New("invalid schedule entry")

// slot is a validated schedule entry
type slot struct {
	weekday time.Weekday
	start   calendar.Clock
	end     calendar.Clock
}

// ValidateEntry checks an entry's weekday and times, and that it ends after it starts
func ValidateEntry(e models.ScheduleEntry) error {
	_, err := parseEntry(e)
	return err
}

// parseEntry validates an entry and converts it into a slot
func parseEntry(e models.ScheduleEntry) (slot, error) {
	day, err := calendar.WeekdayIndex(e.Day)
	if err != nil {
		return slot{}, fmt.Errorf("%w %s: %w", ErrInvalidScheduleEntry, e, err)
	}
	start, err := calendar.ParseClock(e.StartTime)
	if err != nil {
		return slot{}, fmt.Errorf("%w %s: start: %w", ErrInvalidScheduleEntry, e, err)
	}
	end, err := calendar.ParseClock(e.EndTime)
	if err != nil {
		return slot{}, fmt.Errorf("%w %s: end: %w", ErrInvalidScheduleEntry, e, err)
	}
	if !start.Before(end) {
		return slot{}, fmt.Errorf("%w %s: end must be later in the day than start", ErrInvalidScheduleEntry, e)
	}
	return slot{weekday: time.Weekday(day), start: start, end: end}, nil
}

// Expand materializes newEntries into PENDING sessions for every matching date
// in the semester window. Only entries not yet expanded for the subject may be
// passed; the caller keeps the merged schedule of record.
//
// All entries are validated before anything is produced: one bad entry fails
// the whole call and no sessions are returned.
func Expand(semester models.Semester, newEntries []models.ScheduleEntry, subjectID uint) ([]models.ClassSession, error) {
	slots := make([]slot, 0, len(newEntries))
	for _, e := range newEntries {
		s, err := parseEntry(e)
		if err != nil {
			return nil, err
		}
		slots = append(slots, s)
	}

	sessions := []models.ClassSession{}
	if len(slots) == 0 {
		return sessions, nil
	}

	for d := range calendar.EachDate(semester.StartDate, semester.EndDate) {
		for _, s := range slots {
			if d.Weekday() != s.weekday {
				continue
			}
			// Clocks were validated above, Combine cannot fail here
			start, _ := calendar.Combine(d, s.start)
			end, _ := calendar.Combine(d, s.end)

			sessions = append(sessions, models.ClassSession{
				SubjectID: subjectID,
				Date:      d,
				StartTime: start,
				EndTime:   end,
				Status:    models.StatusPending,
			})
		}
	}

	// Two entries on the same weekday may be listed out of time order
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].StartTime.Before(sessions[j].StartTime)
	})

	return sessions, nil
}

// MergeEntries returns the schedule of record after appending newEntries,
// with weekday names normalized to their canonical form.
func MergeEntries(existing, newEntries []models.ScheduleEntry) []models.ScheduleEntry {
	merged := make([]models.ScheduleEntry, 0, len(existing)+len(newEntries))
	merged = append(merged, existing...)
	for _, e := range newEntries {
		if name, err := calendar.WeekdayName(e.Day); err == nil {
			e.Day = name
		}
		merged = append(merged, e)
	}
	return merged
}
