// Command autosuspend runs the idle-detection and scheduled-wake-up daemon
// described by the project's configuration format. It is a thin cobra CLI
// (spec.md §6 "Command-line surface") over internal/config, internal/engine,
// internal/actions and internal/scheduler, mirroring the shutdown sequence
// the teacher's cmd/probe/main.go uses for its HTTP server.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cbluth/autosuspend/internal/actions"
	"github.com/cbluth/autosuspend/internal/buildinfo"
	"github.com/cbluth/autosuspend/internal/clock"
	"github.com/cbluth/autosuspend/internal/config"
	"github.com/cbluth/autosuspend/internal/engine"
	"github.com/cbluth/autosuspend/internal/probe"
	"github.com/cbluth/autosuspend/internal/scheduler"
	"github.com/cbluth/autosuspend/internal/sleepd"

	_ "github.com/cbluth/autosuspend/internal/probe/cmdprobe"
	_ "github.com/cbluth/autosuspend/internal/probe/cronwakeup"
	_ "github.com/cbluth/autosuspend/internal/probe/httpcheck"
	_ "github.com/cbluth/autosuspend/internal/probe/loadavg"
	_ "github.com/cbluth/autosuspend/internal/probe/procname"
	_ "github.com/cbluth/autosuspend/internal/probe/stub"
)

const defaultConfigPath = "/etc/autosuspend.conf"

var (
	configPath string
	loggingTo  string
	debug      bool

	allChecks bool
	runFor    time.Duration
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "autosuspend",
		Short:         "Suspend a host to RAM when it is idle, and wake it up on schedule",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", defaultConfigPath, "the config file to use")
	root.PersistentFlags().StringVarP(&loggingTo, "logging", "l", "", "write logs to the given file instead of stdout")
	root.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug-level logging on stdout")

	root.AddCommand(versionCmd(), schemaCmd(), daemonCmd())
	return root
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the release version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("autosuspend %s (commit %s, built %s)\n", buildinfo.Version, buildinfo.Commit, buildinfo.Date)
			return nil
		},
	}
}

func schemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print a JSON description of every recognised configuration option",
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := config.BuildSchema().ToJSON()
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	}
}

func daemonCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "daemon",
		Short: "Run the continuously operating daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDaemon(cmd.Context())
		},
	}
	cmd.Flags().BoolVarP(&allChecks, "allchecks", "a", false,
		"evaluate every activity probe every tick, even once one already reports active")
	cmd.Flags().DurationVarP(&runFor, "runfor", "r", 0,
		"if set, run for this long before exiting instead of indefinitely")
	return cmd
}

func runDaemon(ctx context.Context) error {
	log, err := buildLogger()
	if err != nil {
		return err
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	activityProbes, err := probe.BuildActivities(cfg.Checks, true)
	if err != nil {
		return fmt.Errorf("build activity checks: %w", err)
	}
	wakeupProbes, err := probe.BuildWakeups(cfg.Wakeups)
	if err != nil {
		return fmt.Errorf("build wakeup checks: %w", err)
	}

	act := actions.New(cfg.General.Templates(), log.WithField("component", "actions"))
	eng := engine.New(
		cfg.General.EngineConfig(allChecks),
		activityProbes,
		wakeupProbes,
		sleepd.NewInhibitChecker(),
		clock.New(),
		act.NotifyAndSuspend,
		act.ScheduleWakeup,
		log.WithField("component", "engine"),
	)

	sched := scheduler.New(scheduler.Config{
		Interval:      cfg.General.Interval,
		MaxIterations: maxIterations(runFor, cfg.General.Interval),
	}, eng, clock.New(), log.WithField("component", "scheduler"))

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	if runFor > 0 {
		var timeoutCancel context.CancelFunc
		runCtx, timeoutCancel = context.WithTimeout(runCtx, runFor)
		defer timeoutCancel()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Info("received shutdown signal")
		cancel()
	}()

	sched.Run(runCtx)
	log.Info("daemon exited cleanly")
	return nil
}

func buildLogger() (*logrus.Logger, error) {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if debug {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.InfoLevel)
	}

	if loggingTo != "" {
		f, err := os.OpenFile(loggingTo, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file %s: %w", loggingTo, err)
		}
		log.SetOutput(f)
	}

	log.WithField("run_id", uuid.NewString()).Debug("logger initialized")
	return log, nil
}

func maxIterations(runFor, interval time.Duration) int {
	if runFor <= 0 || interval <= 0 {
		return 0
	}
	n := int(runFor/interval) + 1
	if n < 1 {
		n = 1
	}
	return n
}
