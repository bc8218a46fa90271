package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/balkashynov/skipsmart/internal/attendance"
	"github.com/balkashynov/skipsmart/internal/db"
	"github.com/balkashynov/skipsmart/internal/models"
	"github.com/balkashynov/skipsmart/internal/parser"
)

var markCmd = &cobra.Command{
	Use:   "mark <session-id> <status>",
	Short: "Set a session's status",
	Long: `Set a class session's status. Any status can be overwritten by any other.

Statuses: attended (a), skipped (s), cancelled (c), pending (p)`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		initDB()

		status, err := attendance.ParseStatus(args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if !markSessions([]string{args[0]}, status) {
			os.Exit(1)
		}
	},
}

var attendCmd = &cobra.Command{
	Use:   "attend <session-id>...",
	Short: "Mark sessions as attended",
	Args:  cobra.MinimumNArgs(1),
	Run:   markShortcut(models.StatusAttended),
}

var skipCmd = &cobra.Command{
	Use:   "skip <session-id>...",
	Short: "Mark sessions as skipped",
	Args:  cobra.MinimumNArgs(1),
	Run:   markShortcut(models.StatusSkipped),
}

var cancelCmd = &cobra.Command{
	Use:   "cancel <session-id>...",
	Short: "Mark sessions as cancelled (excluded from every figure)",
	Args:  cobra.MinimumNArgs(1),
	Run:   markShortcut(models.StatusCancelled),
}

func markShortcut(status models.Status) func(cmd *cobra.Command, args []string) {
	return func(cmd *cobra.Command, args []string) {
		initDB()
		if !markSessions(args, status) {
			os.Exit(1)
		}
	}
}

// markSessions marks every session in args, reporting each result.
// Returns false if any of them failed.
func markSessions(args []string, status models.Status) bool {
	ok := true
	for _, arg := range args {
		id, err := parseID("session", arg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			ok = false
			continue
		}

		session, err := db.MarkSession(id, status)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: session %d: %v\n", id, err)
			ok = false
			continue
		}

		fmt.Printf("%s %s %s → %s\n",
			statusIcon(session.Status),
			session.Subject.DisplayName(),
			parser.FormatRelative(session.StartTime, now().In(db.Location)),
			session.Status)
	}
	return ok
}

// statusIcon returns the glyph shown next to a session status
func statusIcon(status models.Status) string {
	switch status {
	case models.StatusAttended:
		return "✅"
	case models.StatusSkipped:
		return "❌"
	case models.StatusCancelled:
		return "🚫"
	default:
		return "⏳"
	}
}
