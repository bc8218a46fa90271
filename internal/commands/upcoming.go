package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/balkashynov/skipsmart/internal/db"
	"github.com/balkashynov/skipsmart/internal/parser"
)

var upcomingCmd = &cobra.Command{
	Use:     "upcoming",
	Aliases: []string{"next"},
	Short:   "Show the next pending classes",
	Run: func(cmd *cobra.Command, args []string) {
		initDB()

		semester, err := resolveSemester(cmd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		limit, _ := cmd.Flags().GetInt("limit")
		if limit <= 0 {
			limit = cfg.Defaults.UpcomingLimit
		}

		sessions, err := db.GetUpcomingSessions(semester.ID, now(), limit)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if len(sessions) == 0 {
			fmt.Println("🎉 No upcoming classes.")
			return
		}

		current := now().In(db.Location)
		fmt.Printf("⏭️  Upcoming in %s\n\n", semester.Name)
		for _, s := range sessions {
			fmt.Printf("#%-6d %-20s %s\n",
				s.ID,
				parser.FormatRelative(s.StartTime, current),
				s.Subject.DisplayName())
		}
	},
}

func init() {
	upcomingCmd.Flags().Uint("semester", 0, "Semester ID (default: current semester)")
	upcomingCmd.Flags().IntP("limit", "n", 0, "Number of classes to show (default from config)")
}
