package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/balkashynov/skipsmart/internal/db"
	"github.com/balkashynov/skipsmart/internal/models"
)

// parseID parses a numeric ID argument
func parseID(kind, arg string) (uint, error) {
	id, err := strconv.ParseUint(arg, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s ID '%s'", kind, arg)
	}
	return uint(id), nil
}

// resolveSemester returns the semester named by --semester, or the current one
func resolveSemester(cmd *cobra.Command) (*models.Semester, error) {
	id, _ := cmd.Flags().GetUint("semester")
	return lookupSemester(id)
}

// lookupSemester returns semester id, or the current one when id is 0
func lookupSemester(id uint) (*models.Semester, error) {
	if id != 0 {
		return db.GetSemesterByID(id)
	}
	return db.GetCurrentSemester(now())
}

// formatPercent renders an optional percentage as a dash when there is no data yet
func formatPercent(p *float64) string {
	if p == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", *p)
}

// truncate shortens s to fit width, marking the cut with "..."
func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 3 {
		return string(r[:width])
	}
	return string(r[:width-3]) + "..."
}
