package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muurk/adb-autoconnect/internal/adb"
	"github.com/muurk/adb-autoconnect/internal/address"
	"github.com/muurk/adb-autoconnect/internal/config"
	"github.com/muurk/adb-autoconnect/internal/connect"
	"github.com/muurk/adb-autoconnect/internal/discovery"
	"github.com/muurk/adb-autoconnect/internal/logging"
	"github.com/muurk/adb-autoconnect/internal/session"
	"github.com/muurk/adb-autoconnect/internal/ui"
	"github.com/muurk/adb-autoconnect/internal/version"
)

// Command flags
var (
	configPath  string
	adbPath     string
	sourceName  string
	timeoutMS   int
	listOnly    bool
	connectAll  bool
	infoFlag    bool
	verboseFlag bool
	silentFlag  bool
	forceInit   bool
)

func init() {
	// Common flags for all commands (persistent on root)
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: OS config dir/adb-autoconnect/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&adbPath, "adb", "", "Path to the adb binary (default from config, else \"adb\")")
	rootCmd.PersistentFlags().StringVar(&sourceName, "source", "", "Discovery source: adb or zeroconf (default from config, else adb)")
	rootCmd.PersistentFlags().BoolVarP(&infoFlag, "info", "i", false, "Show discovery and connection progress")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Show everything, including the adb devices listing")
	rootCmd.PersistentFlags().BoolVarP(&silentFlag, "silent", "s", false, "Print nothing; rely on the exit status")
	rootCmd.MarkFlagsMutuallyExclusive("info", "verbose", "silent")

	rootCmd.Flags().IntVarP(&timeoutMS, "timeout", "t", 15000, "Discovery timeout in milliseconds")
	rootCmd.Flags().BoolVarP(&listOnly, "list", "l", false, "List discovered targets and exit without connecting")
	rootCmd.Flags().BoolVarP(&connectAll, "all", "a", false, "Connect to all discovered targets instead of the first working one")

	rootCmd.AddCommand(devicesCmd)
	rootCmd.AddCommand(cleanupCmd)
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)

	configInitCmd.Flags().BoolVar(&forceInit, "force", false, "Overwrite an existing config file")
}

// settings is the resolved run configuration: the config file with
// command-line overrides applied.
type settings struct {
	cfg   *config.Config
	level logging.Level
	list  bool
	all   bool
}

// loadSettings reads the config file and applies the flags the user set.
func loadSettings(cmd *cobra.Command) (settings, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return settings{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("adb") {
		cfg.ADBPath = adbPath
	}
	if flags.Changed("source") {
		cfg.Source = sourceName
	}
	if flags.Changed("timeout") {
		cfg.TimeoutMS = timeoutMS
	}

	if err := cfg.Validate(); err != nil {
		return settings{}, fmt.Errorf("invalid options: %w", err)
	}

	return settings{
		cfg:   cfg,
		level: logging.FromFlags(silentFlag, verboseFlag, infoFlag),
		list:  listOnly,
		all:   connectAll,
	}, nil
}

// app wires the components for one run.
type app struct {
	settings settings
	client   *adb.Client
	sessions *session.Manager
	source   discovery.Source
	clock    discovery.Clock // nil means the wall clock
	reporter *ui.Reporter
	logger   *zap.Logger
}

func newApp(s settings, runner adb.Runner, reporter *ui.Reporter, logger *zap.Logger) *app {
	client := adb.NewClient(runner, logger.Named("adb"))

	var source discovery.Source = discovery.SourceFunc(client.MDNSServices)
	if s.cfg.Source == config.SourceZeroconf {
		source = discovery.NewZeroconfSource(logger.Named("zeroconf"))
	}

	return &app{
		settings: s,
		client:   client,
		sessions: session.NewManager(client, logger.Named("session")),
		source:   source,
		reporter: reporter,
		logger:   logger,
	}
}

// setup resolves settings, logging and the adb binary for a command.
func setup(cmd *cobra.Command) (*app, func(), error) {
	// Suppress usage on execution errors (we're past argument parsing)
	cmd.SilenceUsage = true

	s, err := loadSettings(cmd)
	if err != nil {
		return nil, nil, err
	}

	logger, err := logging.New(s.level)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() { logging.Sync(logger) }

	resolved, err := adb.ValidateADBPath(cmd.Context(), s.cfg.ADBPath)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	runner := adb.NewExecRunner(adb.Config{
		ADBPath:    resolved,
		Timeout:    s.cfg.CommandTimeout(),
		OpenScreen: s.cfg.OpenScreen,
	}, logger.Named("exec"))

	reporter := ui.NewReporter(cmd.OutOrStdout(), cmd.ErrOrStderr(), s.level)
	return newApp(s, runner, reporter, logger), cleanup, nil
}

func runConnect(cmd *cobra.Command, args []string) error {
	a, cleanup, err := setup(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	return a.connect(cmd.Context())
}

// connect runs cleanup, discovery and the connect policy.
func (a *app) connect(ctx context.Context) error {
	cfg := a.settings.cfg

	mode := "first working target"
	if a.settings.all {
		mode = "all targets"
	}
	if a.settings.list {
		mode = "list only"
	}
	a.reporter.RunHeader("adb-autoconnect",
		ui.Detail{Key: "adb", Value: cfg.ADBPath},
		ui.Detail{Key: "Source", Value: cfg.Source},
		ui.Detail{Key: "Timeout", Value: strconv.Itoa(cfg.TimeoutMS) + " ms"},
		ui.Detail{Key: "Mode", Value: mode},
	)

	cleaned, err := a.sessions.CleanupStale(ctx)
	if err != nil {
		return fmt.Errorf("stale session cleanup failed: %w", err)
	}
	a.reporter.StaleCleaned(cleaned)

	targets, err := a.discover(ctx)
	if err != nil {
		return err
	}

	if len(targets) == 0 {
		a.reporter.NoTargets(cfg.Timeout())
		return &exitError{code: 1, err: discovery.ErrNoTargets}
	}

	if a.settings.list {
		a.reporter.ListTargets(targets)
		return nil
	}
	a.reporter.TargetsFound(targets)

	if a.settings.all {
		orchestrator := connect.NewOrchestrator(a.client, a.sessions, a.reporter.AllObserver(), a.logger.Named("connect"))
		if _, err := orchestrator.ConnectAll(ctx, targets); err != nil {
			return err
		}
	} else {
		orchestrator := connect.NewOrchestrator(a.client, a.sessions, a.reporter.FirstObserver(), a.logger.Named("connect"))
		if _, _, err := orchestrator.ConnectFirst(ctx, targets); err != nil {
			if errors.Is(err, connect.ErrNoTargetConnected) {
				a.reporter.AllTargetsFailed()
				return &exitError{code: 1, err: err}
			}
			return err
		}
	}

	if a.settings.level == logging.LevelVerbose {
		listing, err := a.client.Devices(ctx)
		if err != nil {
			return err
		}
		a.reporter.Devices(listing)
	}

	return nil
}

// discover runs the poll loop, under a spinner when interactive.
func (a *app) discover(ctx context.Context) ([]address.Address, error) {
	cfg := a.settings.cfg

	poller := discovery.NewPoller(a.source, a.logger.Named("discovery"))
	poller.Interval = cfg.PollInterval()
	if a.clock != nil {
		poller.Clock = a.clock
	}

	a.reporter.DiscoveryStarted(cfg.Timeout())

	return ui.RunWithSpinner(ctx, a.reporter.SpinnerEnabled(), "Discovering wireless ADB targets…",
		func(ctx context.Context) ([]address.Address, error) {
			return poller.Poll(ctx, cfg.Timeout())
		})
}

// devicesCmd shows the wireless sessions adb currently knows about
var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "Show wireless adb sessions and their state",
	Long: `Show the wireless sessions listed by "adb devices".

USB devices and emulators are not shown. Sessions in the offline or
unauthorized state are the ones removed by 'adb-autoconnect cleanup'.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, cleanup, err := setup(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		return a.devices(cmd.Context())
	},
}

func (a *app) devices(ctx context.Context) error {
	listing, err := a.client.Devices(ctx)
	if err != nil {
		return err
	}
	a.reporter.SessionTable(session.ParseStatus(listing))
	a.reporter.Devices(listing)
	return nil
}

// cleanupCmd disconnects stale sessions without discovering anything
var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Disconnect offline and unauthorized wireless sessions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, cleanup, err := setup(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		return a.cleanup(cmd.Context())
	},
}

func (a *app) cleanup(ctx context.Context) error {
	cleaned, err := a.sessions.CleanupStale(ctx)
	if err != nil {
		return fmt.Errorf("stale session cleanup failed: %w", err)
	}
	for _, rec := range cleaned {
		a.reporter.Default("disconnected %s (%s)", rec.Address, rec.State)
	}
	a.reporter.Info("%d stale session(s) removed", len(cleaned))
	return nil
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a configuration file with default values",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		path, err := resolveConfigPath()
		if err != nil {
			return err
		}

		if _, err := os.Stat(path); err == nil && !forceInit {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to check config file: %w", err)
		}

		if err := config.Default().Save(path); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveConfigPath()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func resolveConfigPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	return config.GetConfigPath()
}

func runVersion(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "adb-autoconnect %s\n", version.Full())

	cfg, err := config.Load(configPath)
	if err != nil {
		cfg = config.Default()
	}
	if cmd.Flags().Changed("adb") {
		cfg.ADBPath = adbPath
	}

	resolved, err := adb.ValidateADBPath(cmd.Context(), cfg.ADBPath)
	if err != nil {
		fmt.Fprintf(out, "adb: not available (%s)\n", cfg.ADBPath)
		return nil
	}

	client := adb.NewClient(adb.NewExecRunner(adb.Config{ADBPath: resolved}, nil), nil)
	line, err := client.Version(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "adb: %s (%s)\n", line, resolved)
	return nil
}
