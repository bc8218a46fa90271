package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var helpCmd = &cobra.Command{
	Use:   "help",
	Short: "Show comprehensive help for skipsmart",
	Long:  `Display detailed help for all skipsmart commands and flags.`,
	Run: func(cmd *cobra.Command, args []string) {
		showCustomHelp()
	},
}

func showCustomHelp() {
	fmt.Print(`
skipsmart - know how many classes you can still skip

COMMANDS:

  semester add <name>     Create a semester
    --start, --end        First and last day (dd/mm/yyyy, yyyy-mm-dd, today)
  semester ls             List semesters (* marks the current one)
  semester rm <id>        Delete a semester with its subjects and sessions

  subject add <name>      Add a subject and generate its sessions
    -s, --slot            Weekly slot "Mon 10:00-11:30" (repeatable, or ";"-separated)
    --code                Subject code; an existing code appends the new slots
    --target              Target attendance percentage (default 75)
    --color               Display color
    --semester            Semester ID (default: current)

    Example:
      skipsmart subject add "Linear Algebra" --code MATH201 -s "Mon 10:00-11:30" -s "Thu 14:00-15:30"

  subject ls              List subjects and their timetable
  subject edit <id>       Change --name, --color or --target
  subject rm <id>         Delete a subject and its sessions

  sessions                Browse and mark sessions interactively
    --subject             Only one subject
    --status              Only one status
    --no-ui               Simple text output
    --json                JSON output

    Quick actions:
      ↑/↓           Navigate sessions
      ←/→           Change page
      t             Jump to the next class
      /             Filter by subject
      a / s / c / p Mark attended / skipped / cancelled / pending
      esc/q         Quit

  mark <id> <status>      Set a session's status (attended|skipped|cancelled|pending)
  attend <id>...          Mark sessions attended
  skip <id>...            Mark sessions skipped
  cancel <id>...          Mark sessions cancelled (excluded from every figure)

  session add <subject>   Add a one-off class
    --date, --time        e.g. --date 24/10/2025 --time 16:00-17:30
  session rm <id>         Delete a session

  stats                   Attendance, skip budget and required attendances per subject
    --subject, --json
  upcoming                Next pending classes
    -n, --limit
  week                    This week's attendance grid
    --offset              Weeks relative to this one

  reconcile               Mark elapsed, unmarked sessions as skipped
  daemon                  Reconcile on a cron schedule
  export                  Write sessions as an .ics calendar
    -o, --output

  config init             Write the default config file
  config show             Print the effective configuration
  version                 Print version information
  help                    Show this help

GLOBAL FLAGS:
  --config <path>         Config file (default ~/.config/skipsmart/config.toml)
  -v, --verbose           Debug logging, including SQL

`)
}
