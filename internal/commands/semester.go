package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/skipsmart/internal/db"
	"github.com/balkashynov/skipsmart/internal/parser"
)

var semesterCmd = &cobra.Command{
	Use:     "semester",
	Aliases: []string{"sem"},
	Short:   "Manage semesters",
}

var semesterAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a semester",
	Long: `Create a semester spanning --start to --end (inclusive).

Dates accept dd/mm/yyyy, yyyy-mm-dd, today, tomorrow and yesterday.

Example:
  skipsmart semester add "Fall 2025" --start 01/09/2025 --end 19/12/2025`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		initDB()

		startFlag, _ := cmd.Flags().GetString("start")
		endFlag, _ := cmd.Flags().GetString("end")
		if startFlag == "" || endFlag == "" {
			fmt.Fprintln(os.Stderr, "Error: both --start and --end are required")
			os.Exit(1)
		}

		start, err := parser.ParseDate(startFlag, now(), db.Location)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: --start: %v\n", err)
			os.Exit(1)
		}
		end, err := parser.ParseDate(endFlag, now(), db.Location)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: --end: %v\n", err)
			os.Exit(1)
		}

		semester, err := db.CreateSemester(db.CreateSemesterRequest{
			Name:      strings.Join(args, " "),
			Owner:     cfg.OwnerName(),
			StartDate: start,
			EndDate:   end,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("✅ Semester \"%s\" added - ID: %d (%s → %s)\n",
			semester.Name, semester.ID,
			parser.FormatDate(semester.StartDate), parser.FormatDate(semester.EndDate))
	},
}

var semesterListCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List semesters",
	Run: func(cmd *cobra.Command, args []string) {
		initDB()

		semesters, err := db.GetSemesters()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if len(semesters) == 0 {
			fmt.Println("No semesters yet. Add one with: skipsmart semester add <name> --start <date> --end <date>")
			return
		}

		current, _ := db.GetCurrentSemester(now())

		fmt.Printf("%-4s %-24s %-16s %-16s %s\n", "ID", "NAME", "START", "END", "SUBJECTS")
		for _, s := range semesters {
			marker := " "
			if current != nil && current.ID == s.ID {
				marker = "*"
			}
			fmt.Printf("%-4s %-24s %-16s %-16s %d\n",
				fmt.Sprintf("%s%d", marker, s.ID),
				truncate(s.Name, 24),
				parser.FormatDate(s.StartDate),
				parser.FormatDate(s.EndDate),
				len(s.Subjects))
		}
		fmt.Println("\n* current semester")
	},
}

var semesterRemoveCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete"},
	Short:   "Delete a semester with all its subjects and sessions",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		initDB()

		id, err := parseID("semester", args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		semester, err := db.DeleteSemester(id)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("🗑️  Semester \"%s\" deleted\n", semester.Name)
	},
}

func init() {
	semesterAddCmd.Flags().String("start", "", "First day of the semester")
	semesterAddCmd.Flags().String("end", "", "Last day of the semester")

	semesterCmd.AddCommand(semesterAddCmd)
	semesterCmd.AddCommand(semesterListCmd)
	semesterCmd.AddCommand(semesterRemoveCmd)
}
