package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/balkashynov/skipsmart/internal/db"
	"github.com/balkashynov/skipsmart/internal/parser"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Add or remove individual class sessions",
}

var sessionAddCmd = &cobra.Command{
	Use:   "add <subject-id>",
	Short: "Add a one-off class outside the weekly timetable",
	Long: `Add a single extra class session to a subject.

Example:
  skipsmart session add 3 --date 24/10/2025 --time 16:00-17:30`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		initDB()

		subjectID, err := parseID("subject", args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		dateFlag, _ := cmd.Flags().GetString("date")
		timeFlag, _ := cmd.Flags().GetString("time")
		if timeFlag == "" {
			fmt.Fprintln(os.Stderr, "Error: --time is required, e.g. --time 10:00-11:30")
			os.Exit(1)
		}

		date, err := parser.ParseDate(dateFlag, now(), db.Location)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: --date: %v\n", err)
			os.Exit(1)
		}
		start, end, err := parser.ParseTimeRange(timeFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: --time: %v\n", err)
			os.Exit(1)
		}

		session, err := db.CreateSession(db.CreateSessionRequest{
			SubjectID: subjectID,
			Date:      date,
			Start:     start,
			End:       end,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("✅ Session added - ID: %d (%s %s-%s)\n",
			session.ID, parser.FormatDate(session.Date), start, end)
	},
}

var sessionRemoveCmd = &cobra.Command{
	Use:     "rm <session-id>",
	Aliases: []string{"delete"},
	Short:   "Delete a class session",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		initDB()

		id, err := parseID("session", args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		session, err := db.DeleteSession(id)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("🗑️  Session #%d of \"%s\" on %s deleted\n",
			session.ID, session.Subject.DisplayName(), parser.FormatDate(session.Date))
	},
}

func init() {
	sessionAddCmd.Flags().String("date", "today", "Date of the class")
	sessionAddCmd.Flags().String("time", "", "Time range, HH:MM-HH:MM")

	sessionCmd.AddCommand(sessionAddCmd)
	sessionCmd.AddCommand(sessionRemoveCmd)
}
