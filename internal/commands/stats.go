package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/balkashynov/skipsmart/internal/budget"
	"github.com/balkashynov/skipsmart/internal/db"
	"github.com/balkashynov/skipsmart/internal/tui"
)

var (
	statsHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(tui.ColorAccentBright)).Padding(0, 1)
	statsCellStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(tui.ColorPrimaryText)).Padding(0, 1)
	statsMutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(tui.ColorHelpText))
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show attendance and skip budget per subject",
	Long: `Show each subject's attendance percentage against its target, how many of the
remaining classes you can still skip, and how many you must attend if you are
behind.

Examples:
  skipsmart stats
  skipsmart stats --subject 3
  skipsmart stats --semester 1 --json`,
	Run: func(cmd *cobra.Command, args []string) {
		initDB()

		semesterID, _ := cmd.Flags().GetUint("semester")
		subjectID, _ := cmd.Flags().GetUint("subject")
		title, reports, err := loadStats(semesterID, subjectID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		jsonOutput, _ := cmd.Flags().GetBool("json")
		if jsonOutput {
			out, err := json.MarshalIndent(reports, "", "  ")
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			fmt.Println(string(out))
			return
		}

		fmt.Printf("📊 %s\n\n", title)
		if len(reports) == 0 {
			fmt.Println("No subjects yet. Add one with: skipsmart subject add <name> --slot \"Mon 10:00-11:00\"")
			return
		}
		fmt.Println(renderStatsTable(reports))
		printStatsFooter(reports)
	},
}

// loadStats reconciles what is about to be read when configured to, then builds
// the reports. A single subject is reported under its own semester.
func loadStats(semesterID, subjectID uint) (string, []db.SubjectReport, error) {
	if subjectID != 0 {
		subject, err := db.GetSubjectByID(subjectID)
		if err != nil {
			return "", nil, err
		}
		reconcileSubjectOnRead(subjectID)

		report, err := db.SubjectStats(subjectID, now())
		if err != nil {
			return "", nil, err
		}
		return subject.Semester.Name, []db.SubjectReport{*report}, nil
	}

	semester, err := lookupSemester(semesterID)
	if err != nil {
		return "", nil, err
	}
	reconcileOnRead(semester.ID)

	reports, err := db.SemesterStats(semester.ID, now())
	if err != nil {
		return "", nil, err
	}
	return semester.Name, reports, nil
}

// renderStatsTable renders one row per subject report
func renderStatsTable(reports []db.SubjectReport) string {
	rows := make([][]string, 0, len(reports))
	for _, r := range reports {
		mustAttend := "-"
		if r.Report.RequiredAttendances > 0 {
			mustAttend = fmt.Sprintf("%d", r.Report.RequiredAttendances)
		}
		rows = append(rows, []string{
			fmt.Sprintf("#%d", r.Subject.ID),
			truncate(r.Subject.DisplayName(), 28),
			formatPercent(r.Report.CurrentPercentage),
			fmt.Sprintf("%.0f%%", r.Report.TargetPercentage),
			fmt.Sprintf("%d/%d", r.Report.Attended, r.Report.Held),
			fmt.Sprintf("%d", r.Report.Future),
			fmt.Sprintf("%d", r.Report.MaxSkippable),
			mustAttend,
			string(r.Report.Standing()),
		})
	}

	const standingCol = 8
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color(tui.ColorBorder))).
		Headers("ID", "SUBJECT", "ATTENDED", "TARGET", "HELD", "LEFT", "CAN SKIP", "MUST ATTEND", "STANDING").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return statsHeaderStyle
			}
			if col == standingCol && row >= 0 && row < len(reports) {
				return statsCellStyle.Foreground(lipgloss.Color(standingColor(reports[row].Report.Standing())))
			}
			return statsCellStyle
		}).
		String()
}

// printStatsFooter prints notes that do not fit the table
func printStatsFooter(reports []db.SubjectReport) {
	overdue, cancelled := 0, 0
	for _, r := range reports {
		overdue += r.Report.Overdue
		cancelled += r.Report.Cancelled
	}

	if overdue > 0 {
		fmt.Println(lipgloss.NewStyle().Foreground(lipgloss.Color(tui.ColorWarning)).
			Render(fmt.Sprintf("⚠️  %d past class(es) still unmarked; run 'skipsmart reconcile' or mark them", overdue)))
	}
	if cancelled > 0 {
		fmt.Println(statsMutedStyle.Render(fmt.Sprintf("%d cancelled class(es) excluded", cancelled)))
	}
}

func standingColor(s budget.Standing) string {
	switch s {
	case budget.StandingSafe:
		return tui.ColorSuccess
	case budget.StandingBehind:
		return tui.ColorError
	default:
		return tui.ColorDisabledText
	}
}

func init() {
	statsCmd.Flags().Uint("semester", 0, "Semester ID (default: current semester)")
	statsCmd.Flags().Uint("subject", 0, "Only this subject")
	statsCmd.Flags().Bool("json", false, "JSON output")
}
