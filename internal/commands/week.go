package commands

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/balkashynov/skipsmart/internal/db"
	"github.com/balkashynov/skipsmart/internal/models"
)

var weekCmd = &cobra.Command{
	Use:   "week",
	Short: "Show this week's attendance grid",
	Long: `Show one row per subject and one column per day of the calendar week
(Monday to Sunday) with the status of every class:

  A attended   S skipped   C cancelled   · pending

Examples:
  skipsmart week
  skipsmart week --offset -1   # Last week`,
	Run: func(cmd *cobra.Command, args []string) {
		initDB()

		semester, err := resolveSemester(cmd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		offset, _ := cmd.Flags().GetInt("offset")
		weekStart := getWeekStart(now().In(db.Location)).AddDate(0, 0, 7*offset)

		sessions, err := db.GetSessionsForSemester(semester.ID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		grid := buildWeekGrid(sessions, weekStart)
		if len(grid.rows) == 0 {
			fmt.Printf("No classes in the week of %s.\n", weekStart.Format("02/01/2006"))
			return
		}
		fmt.Printf("🗓️  Week of %s\n\n", weekStart.Format("Mon 02/01/2006"))
		displayWeekGrid(grid)
	},
}

// weekGrid is a subject by weekday view of one calendar week
type weekGrid struct {
	days []time.Weekday
	rows []weekRow
}

type weekRow struct {
	subject  string
	cells    map[time.Weekday]string
	attended int
	held     int
}

// getWeekStart returns the start of the calendar week (Monday) for the given time
func getWeekStart(t time.Time) time.Time {
	weekday := t.Weekday()
	daysFromMonday := int(weekday - time.Monday)
	if weekday == time.Sunday {
		daysFromMonday = 6
	}

	weekStart := t.AddDate(0, 0, -daysFromMonday)
	return time.Date(weekStart.Year(), weekStart.Month(), weekStart.Day(), 0, 0, 0, 0, weekStart.Location())
}

// buildWeekGrid groups the sessions falling in [weekStart, weekStart+7d) by subject and day
func buildWeekGrid(sessions []models.ClassSession, weekStart time.Time) weekGrid {
	weekEnd := weekStart.AddDate(0, 0, 7)

	bySubject := make(map[uint]*weekRow)
	var order []uint
	activeDays := make(map[time.Weekday]bool)

	for _, s := range sessions {
		if s.StartTime.Before(weekStart) || !s.StartTime.Before(weekEnd) {
			continue
		}

		row, ok := bySubject[s.SubjectID]
		if !ok {
			row = &weekRow{subject: s.Subject.DisplayName(), cells: make(map[time.Weekday]string)}
			bySubject[s.SubjectID] = row
			order = append(order, s.SubjectID)
		}

		day := s.StartTime.Weekday()
		row.cells[day] += statusLetter(s.Status)
		activeDays[day] = true

		if s.Status.Held() {
			row.held++
			if s.Status == models.StatusAttended {
				row.attended++
			}
		}
	}

	sort.Slice(order, func(i, j int) bool {
		return bySubject[order[i]].subject < bySubject[order[j]].subject
	})

	var grid weekGrid
	for _, id := range order {
		grid.rows = append(grid.rows, *bySubject[id])
	}

	// Mon-Fri always, weekend days only when they have classes
	weekdays := []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday, time.Sunday}
	for i, weekday := range weekdays {
		if i < 5 || activeDays[weekday] {
			grid.days = append(grid.days, weekday)
		}
	}
	return grid
}

func statusLetter(status models.Status) string {
	switch status {
	case models.StatusAttended:
		return "A"
	case models.StatusSkipped:
		return "S"
	case models.StatusCancelled:
		return "C"
	default:
		return "·"
	}
}

// displayWeekGrid prints the grid as a fixed-width table
func displayWeekGrid(grid weekGrid) {
	subjectWidth := 20
	for _, row := range grid.rows {
		subjectWidth = max(subjectWidth, len([]rune(row.subject)))
	}
	subjectWidth = min(subjectWidth, 36)

	dayColumnWidth := 5
	totalColumnWidth := 7

	// Header
	fmt.Printf("%-*s", subjectWidth, "Subject")
	for _, day := range grid.days {
		fmt.Printf("  %*s", dayColumnWidth-2, day.String()[:3])
	}
	fmt.Printf("  %*s\n", totalColumnWidth-2, "Held")

	separator := strings.Repeat("-", subjectWidth)
	for range grid.days {
		separator += "  " + strings.Repeat("-", dayColumnWidth-2)
	}
	separator += "  " + strings.Repeat("-", totalColumnWidth-2)
	fmt.Println(separator)

	attended, held := 0, 0
	for _, row := range grid.rows {
		fmt.Printf("%-*s", subjectWidth, truncate(row.subject, subjectWidth))
		for _, day := range grid.days {
			cell := row.cells[day]
			if cell == "" {
				cell = "-"
			}
			fmt.Printf("  %*s", dayColumnWidth-2, cell)
		}
		fmt.Printf("  %*s\n", totalColumnWidth-2, fmt.Sprintf("%d/%d", row.attended, row.held))
		attended += row.attended
		held += row.held
	}

	fmt.Println(separator)
	fmt.Printf("%-*s", subjectWidth, "Total")
	for range grid.days {
		fmt.Printf("  %*s", dayColumnWidth-2, "")
	}
	fmt.Printf("  %*s\n", totalColumnWidth-2, fmt.Sprintf("%d/%d", attended, held))
}

func init() {
	weekCmd.Flags().Uint("semester", 0, "Semester ID (default: current semester)")
	weekCmd.Flags().Int("offset", 0, "Weeks relative to this one, e.g. -1 for last week")
}
