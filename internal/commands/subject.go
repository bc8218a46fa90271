package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/skipsmart/internal/db"
	"github.com/balkashynov/skipsmart/internal/parser"
)

var subjectCmd = &cobra.Command{
	Use:     "subject",
	Aliases: []string{"sub"},
	Short:   "Manage subjects and their weekly timetable",
}

var subjectAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a subject and generate its class sessions",
	Long: `Add a subject to a semester and generate one session per weekly slot.

Slots are "<weekday> HH:MM-HH:MM"; repeat --slot or separate slots with ";".
Adding a subject whose --code already exists in the semester appends the new
slots to that subject instead of creating a second one.

Example:
  skipsmart subject add "Linear Algebra" --code MATH201 --slot "Mon 10:00-11:30" --slot "Thu 14:00-15:30"`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		initDB()

		semester, err := resolveSemester(cmd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		code, _ := cmd.Flags().GetString("code")
		color, _ := cmd.Flags().GetString("color")
		target, _ := cmd.Flags().GetFloat64("target")
		slots, _ := cmd.Flags().GetStringArray("slot")

		if code != "" && !parser.IsValidCode(code) {
			fmt.Fprintf(os.Stderr, "Error: invalid subject code '%s'\n", code)
			os.Exit(1)
		}
		if target == 0 {
			target = cfg.Defaults.TargetPercentage
		}

		entries, errs := parser.ParseSlots(slots)
		if len(errs) > 0 {
			for _, e := range errs {
				fmt.Fprintf(os.Stderr, "Error: %s\n", e)
			}
			os.Exit(1)
		}
		if len(entries) == 0 {
			fmt.Fprintln(os.Stderr, "Error: at least one --slot is required")
			os.Exit(1)
		}

		result, err := db.CreateSubject(db.CreateSubjectRequest{
			SemesterID:       semester.ID,
			Name:             strings.Join(args, " "),
			Code:             code,
			Color:            color,
			TargetPercentage: target,
			Schedule:         entries,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if result.Merged {
			fmt.Printf("✅ Added %d slot(s) to \"%s\" - ID: %d\n", len(entries), result.Subject.DisplayName(), result.Subject.ID)
		} else {
			fmt.Printf("✅ New subject \"%s\" added - ID: %d\n", result.Subject.DisplayName(), result.Subject.ID)
		}
		fmt.Printf("   %d class session(s) generated in %s\n", result.Sessions, semester.Name)
	},
}

var subjectListCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List subjects in a semester",
	Run: func(cmd *cobra.Command, args []string) {
		initDB()

		semester, err := resolveSemester(cmd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		subjects, err := db.GetSubjects(semester.ID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("📚 %s\n\n", semester.Name)
		if len(subjects) == 0 {
			fmt.Println("No subjects yet. Add one with: skipsmart subject add <name> --slot \"Mon 10:00-11:00\"")
			return
		}

		for _, s := range subjects {
			fmt.Printf("#%-4d %-32s target %.0f%%\n", s.ID, truncate(s.DisplayName(), 32), s.TargetPercentage)
			for _, entry := range s.Schedule {
				fmt.Printf("      %s\n", entry.String())
			}
		}
	},
}

var subjectEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a subject's name, color or target",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		initDB()

		id, err := parseID("subject", args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		var req db.UpdateSubjectRequest
		if cmd.Flags().Changed("name") {
			name, _ := cmd.Flags().GetString("name")
			req.Name = &name
		}
		if cmd.Flags().Changed("color") {
			color, _ := cmd.Flags().GetString("color")
			req.Color = &color
		}
		if cmd.Flags().Changed("target") {
			target, _ := cmd.Flags().GetFloat64("target")
			req.TargetPercentage = &target
		}
		if req.Name == nil && req.Color == nil && req.TargetPercentage == nil {
			fmt.Fprintln(os.Stderr, "Error: nothing to change; pass --name, --color or --target")
			os.Exit(1)
		}

		subject, err := db.UpdateSubject(id, req)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("✅ Subject \"%s\" updated (target %.0f%%)\n", subject.DisplayName(), subject.TargetPercentage)
	},
}

var subjectRemoveCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete"},
	Short:   "Delete a subject and its sessions",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		initDB()

		id, err := parseID("subject", args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		subject, err := db.DeleteSubject(id)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("🗑️  Subject \"%s\" deleted\n", subject.DisplayName())
	},
}

func init() {
	subjectAddCmd.Flags().Uint("semester", 0, "Semester ID (default: current semester)")
	subjectAddCmd.Flags().String("code", "", "Subject code; an existing code merges the new slots")
	subjectAddCmd.Flags().String("color", "", "Display color, e.g. #7C3AED")
	subjectAddCmd.Flags().Float64("target", 0, "Target attendance percentage (default from config)")
	subjectAddCmd.Flags().StringArrayP("slot", "s", nil, `Weekly slot, e.g. "Mon 10:00-11:00" (repeatable)`)

	subjectListCmd.Flags().Uint("semester", 0, "Semester ID (default: current semester)")

	subjectEditCmd.Flags().String("name", "", "New name")
	subjectEditCmd.Flags().String("color", "", "New display color")
	subjectEditCmd.Flags().Float64("target", 0, "New target attendance percentage")

	subjectCmd.AddCommand(subjectAddCmd)
	subjectCmd.AddCommand(subjectListCmd)
	subjectCmd.AddCommand(subjectEditCmd)
	subjectCmd.AddCommand(subjectRemoveCmd)
}
