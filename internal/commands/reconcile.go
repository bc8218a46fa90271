package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/balkashynov/skipsmart/internal/db"
)

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Mark elapsed, unmarked sessions as skipped",
	Long: `Close out every pending session that has already ended by marking it skipped.
Attended, skipped and cancelled sessions are never touched. Safe to run any
number of times.

Examples:
  skipsmart reconcile              # All semesters
  skipsmart reconcile --semester 2`,
	Run: func(cmd *cobra.Command, args []string) {
		initDB()

		semesterID, _ := cmd.Flags().GetUint("semester")

		var (
			res db.ReconcileResult
			err error
		)
		if semesterID != 0 {
			res, err = db.ReconcileSemester(semesterID, now())
		} else {
			res, err = db.ReconcileAll(now())
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if res.Skipped == 0 {
			fmt.Printf("✅ Nothing to reconcile (%d subject(s) checked)\n", res.Subjects)
			return
		}
		fmt.Printf("✅ Marked %d elapsed session(s) as skipped across %d subject(s)\n", res.Skipped, res.Subjects)
	},
}

func init() {
	reconcileCmd.Flags().Uint("semester", 0, "Only reconcile this semester")
}
