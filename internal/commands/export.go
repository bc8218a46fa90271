package commands

import (
	"fmt"
	"os"

	ics "github.com/arran4/golang-ical"
	"github.com/spf13/cobra"

	"github.com/balkashynov/skipsmart/internal/db"
	"github.com/balkashynov/skipsmart/internal/models"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export class sessions as an iCalendar (.ics) file",
	Long: `Write the sessions of a semester as iCalendar events, one VEVENT per class.
Cancelled classes are exported with STATUS:CANCELLED.

Examples:
  skipsmart export > fall.ics
  skipsmart export --subject 3 -o algebra.ics`,
	Run: func(cmd *cobra.Command, args []string) {
		initDB()

		semester, err := resolveSemester(cmd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		sessions, err := db.GetSessionsForSemester(semester.ID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		subjectID, _ := cmd.Flags().GetUint("subject")
		sessions = filterSessions(sessions, subjectID, "")

		cal := buildCalendar(semester.Name, sessions)

		output, _ := cmd.Flags().GetString("output")
		if output == "" || output == "-" {
			if err := cal.SerializeTo(os.Stdout); err != nil {
				fmt.Fprintf(os.Stderr, "Error: failed to write calendar: %v\n", err)
				os.Exit(1)
			}
			return
		}

		if err := writeCalendar(output, cal); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("✅ Exported %d session(s) to %s\n", len(sessions), output)
	},
}

// buildCalendar converts sessions into a calendar with one event per session
func buildCalendar(name string, sessions []models.ClassSession) *ics.Calendar {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//skipsmart//class sessions//EN")
	cal.SetXWRCalName(name)

	for _, s := range sessions {
		event := cal.AddEvent(fmt.Sprintf("session-%d@skipsmart", s.ID))
		event.SetDtStampTime(s.UpdatedAt)
		event.SetCreatedTime(s.CreatedAt)
		event.SetStartAt(s.StartTime)
		event.SetEndAt(s.EndTime)
		event.SetSummary(s.Subject.DisplayName())
		event.SetDescription(fmt.Sprintf("Session #%d · %s", s.ID, s.Status))
		if s.Status == models.StatusCancelled {
			event.SetProperty(ics.ComponentPropertyStatus, "CANCELLED")
		}
	}
	return cal
}

// writeCalendar writes cal to path, closing the file before returning
func writeCalendar(path string, cal *ics.Calendar) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := cal.SerializeTo(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write calendar: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write calendar: %w", err)
	}
	return nil
}

func init() {
	exportCmd.Flags().Uint("semester", 0, "Semester ID (default: current semester)")
	exportCmd.Flags().Uint("subject", 0, "Only sessions of this subject")
	exportCmd.Flags().StringP("output", "o", "", "Output file (default stdout)")
}
