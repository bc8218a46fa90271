package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/balkashynov/skipsmart/internal/config"
	"github.com/balkashynov/skipsmart/internal/db"
	applog "github.com/balkashynov/skipsmart/internal/log"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	flagConfig  string
	flagVerbose bool

	cfg = config.DefaultConfig()
)

// now is the clock every command reads
var now = time.Now

var rootCmd = &cobra.Command{
	Use:   "skipsmart",
	Short: "Know how many classes you can still skip",
	Long: `skipsmart tracks class attendance against a per-subject target percentage.

Add a semester, add subjects with their weekly timetable, mark each class as
attended, skipped or cancelled, and skipsmart tells you how many future classes
you can still skip - or how many you must attend to get back on track.`,
	SilenceUsage: true,
}

// initDB loads the config and initializes the database, exiting on failure
func initDB() {
	loaded, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cfg = loaded

	if flagVerbose {
		applog.SetLevel(applog.LevelDebug)
	}

	path, err := cfg.DatabasePath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to get database path: %v\n", err)
		os.Exit(1)
	}
	loc, err := cfg.Location()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := db.Initialize(db.Options{Path: path, Location: loc, Verbose: flagVerbose}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	applog.Debug("database ready", "path", path, "timezone", loc.String())
}

// reconcileOnRead closes out elapsed sessions before a read when configured to
func reconcileOnRead(semesterID uint) {
	if !cfg.Reconcile.OnRead {
		return
	}
	res, err := db.ReconcileSemester(semesterID, now())
	if err != nil {
		applog.Error("reconcile before read failed", err, "semester", semesterID)
		return
	}
	if res.Skipped > 0 {
		fmt.Fprintf(os.Stderr, "Marked %d elapsed unmarked class(es) as skipped\n\n", res.Skipped)
	}
}

// reconcileSubjectOnRead is reconcileOnRead for a single subject
func reconcileSubjectOnRead(subjectID uint) {
	if !cfg.Reconcile.OnRead {
		return
	}
	n, err := db.ReconcileSubject(subjectID, now())
	if err != nil {
		applog.Error("reconcile before read failed", err, "subject", subjectID)
		return
	}
	if n > 0 {
		fmt.Fprintf(os.Stderr, "Marked %d elapsed unmarked class(es) as skipped\n\n", n)
	}
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("skipsmart %s (commit %s, built %s)\n", version, commit, date)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default "+config.ConfigPath()+")")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Verbose logging, including SQL")

	// Add subcommands here
	rootCmd.AddCommand(semesterCmd)
	rootCmd.AddCommand(subjectCmd)
	rootCmd.AddCommand(sessionCmd)
	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(markCmd)
	rootCmd.AddCommand(attendCmd)
	rootCmd.AddCommand(skipCmd)
	rootCmd.AddCommand(cancelCmd)
	rootCmd.AddCommand(reconcileCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(upcomingCmd)
	rootCmd.AddCommand(weekCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(daemonCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.SetHelpCommand(helpCmd)
	rootCmd.AddCommand(versionCmd)
}
