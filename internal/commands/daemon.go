package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/balkashynov/skipsmart/internal/db"
	applog "github.com/balkashynov/skipsmart/internal/log"
)

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Periodically mark elapsed, unmarked sessions as skipped",
	Long: `Run in the foreground and reconcile every semester on the cron schedule from
the config file ([reconcile] cron, default every 15 minutes).

Examples:
  skipsmart daemon
  skipsmart daemon --cron "0 * * * *"`,
	Run: func(cmd *cobra.Command, args []string) {
		initDB()

		spec, _ := cmd.Flags().GetString("cron")
		if spec == "" {
			spec = cfg.Reconcile.Cron
		}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		if err := runDaemon(ctx, spec); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

// runDaemon reconciles once, then on every tick of spec until ctx is done
func runDaemon(ctx context.Context, spec string) error {
	logger := applog.CronLogger{}
	c := cron.New(
		cron.WithLocation(db.Location),
		cron.WithLogger(logger),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)

	if _, err := c.AddFunc(spec, reconcileSweep); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", spec, err)
	}

	applog.Info("daemon started", "schedule", spec, "timezone", db.Location.String())
	reconcileSweep()

	c.Start()
	<-ctx.Done()

	applog.Info("daemon stopping")
	<-c.Stop().Done()
	return nil
}

// reconcileSweep runs one reconciliation pass over every semester
func reconcileSweep() {
	if _, err := db.ReconcileAll(now()); err != nil {
		applog.Error("reconcile sweep failed", err)
	}
}

func init() {
	daemonCmd.Flags().String("cron", "", "Cron schedule (default from config)")
}
