package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/balkashynov/skipsmart/internal/attendance"
	"github.com/balkashynov/skipsmart/internal/db"
	"github.com/balkashynov/skipsmart/internal/models"
	"github.com/balkashynov/skipsmart/internal/tui"
)

var sessionsCmd = &cobra.Command{
	Use:     "sessions",
	Aliases: []string{"ls"},
	Short:   "Browse and mark class sessions",
	Long: `List the class sessions of a semester. Opens an interactive list by default
where a/s/c/p mark the selected session; use --no-ui for plain output.

Examples:
  skipsmart sessions                    # Interactive list of the current semester
  skipsmart sessions --subject 3 --no-ui
  skipsmart sessions --status pending --json`,
	Run: func(cmd *cobra.Command, args []string) {
		initDB()

		semester, err := resolveSemester(cmd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		reconcileOnRead(semester.ID)

		sessions, err := db.GetSessionsForSemester(semester.ID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		subjectID, _ := cmd.Flags().GetUint("subject")
		statusFlag, _ := cmd.Flags().GetString("status")
		var status models.Status
		if statusFlag != "" {
			if status, err = attendance.ParseStatus(statusFlag); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		}
		// The TUI budget panel needs every status, so it filters rows itself
		sessions = filterSessions(sessions, subjectID, "")

		jsonOutput, _ := cmd.Flags().GetBool("json")
		if jsonOutput {
			out, err := json.MarshalIndent(filterSessions(sessions, 0, status), "", "  ")
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			fmt.Println(string(out))
			return
		}

		noUI, _ := cmd.Flags().GetBool("no-ui")
		if noUI || !isatty.IsTerminal(os.Stdout.Fd()) {
			printSessions(semester.Name, filterSessions(sessions, 0, status))
			return
		}

		if err := tui.RunSessionsTUI(semester.Name, sessions, status, db.MarkSession, now); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

// filterSessions keeps sessions of one subject and/or status; zero values match all
func filterSessions(sessions []models.ClassSession, subjectID uint, status models.Status) []models.ClassSession {
	if subjectID == 0 && status == "" {
		return sessions
	}

	filtered := make([]models.ClassSession, 0, len(sessions))
	for _, s := range sessions {
		if subjectID != 0 && s.SubjectID != subjectID {
			continue
		}
		if status != "" && s.Status != status {
			continue
		}
		filtered = append(filtered, s)
	}
	return filtered
}

// printSessions prints sessions as a plain table
func printSessions(title string, sessions []models.ClassSession) {
	fmt.Printf("📅 %s\n\n", title)
	if len(sessions) == 0 {
		fmt.Println("No sessions found.")
		return
	}

	fmt.Printf("%-6s %-16s %-11s %-28s %s\n", "ID", "DATE", "TIME", "SUBJECT", "STATUS")
	for _, s := range sessions {
		fmt.Printf("%-6s %-16s %-11s %-28s %s %s\n",
			fmt.Sprintf("#%d", s.ID),
			s.Date.Format("Mon 02/01/2006"),
			s.StartTime.Format("15:04")+"-"+s.EndTime.Format("15:04"),
			truncate(s.Subject.DisplayName(), 28),
			statusIcon(s.Status),
			s.Status)
	}
	fmt.Printf("\n%d session(s)\n", len(sessions))
}

func init() {
	sessionsCmd.Flags().Uint("semester", 0, "Semester ID (default: current semester)")
	sessionsCmd.Flags().Uint("subject", 0, "Only sessions of this subject")
	sessionsCmd.Flags().String("status", "", "Only sessions with this status")
	sessionsCmd.Flags().Bool("no-ui", false, "Plain text output")
	sessionsCmd.Flags().Bool("json", false, "JSON output")
}
