// Quickpanel is a pop-up quick settings panel for the terminal.
//
// It shows network, Bluetooth, power profile, night light, dark style and
// airplane mode toggles plus volume and brightness sliders, reading every
// value live from the system each time the panel is rebuilt.
//
// Usage:
//
//	quickpanel [command] [flags]
//
// Running without arguments opens the panel. It closes on Escape, on a
// click outside it, or when an action launches an external tool.
// See 'quickpanel --help' for available commands.
package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muurk/quickpanel/internal/action"
	"github.com/muurk/quickpanel/internal/config"
	"github.com/muurk/quickpanel/internal/logging"
	"github.com/muurk/quickpanel/internal/module"
	"github.com/muurk/quickpanel/internal/panel"
	"github.com/muurk/quickpanel/internal/state"
	"github.com/muurk/quickpanel/internal/sysexec"
	"github.com/muurk/quickpanel/internal/version"
)

// Global flags
var (
	configPath string
	logLevel   string
	logFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "quickpanel",
	Short: "Quick settings panel",
	Long: `A pop-up quick settings panel.

Shows connectivity, power and display toggles with live system state.
Toggles act immediately; launchers open the matching tool and close the
panel. Press Escape or click outside the panel to dismiss it.

If no command is specified, the panel opens.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logging.Initialize(logLevel, logFile)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync()
	},
	RunE: runPanel,
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/quickpanel/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (default $"+logging.LogLevelEnvVar+", silent when unset)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Log file (default $XDG_STATE_HOME/quickpanel/quickpanel.log)")

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("quickpanel %s (commit: %s)\n", version.Version, version.Commit)
	},
}

// environment is everything a panel session or a subcommand needs.
type environment struct {
	cfg       *config.Config
	provider  *state.Provider
	executor  *action.Executor
	registry  *module.Registry
	resolvers module.Resolvers
}

func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		var err error
		path, err = config.GetConfigPath()
		if err != nil {
			return nil, err
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	logging.Debug("Loaded config", zap.String("path", path))
	return cfg, nil
}

func newEnvironment() (*environment, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	registry, err := module.Default(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build modules: %w", err)
	}

	provider := state.NewProvider(sysexec.NewExecutor(logging.GetLogger()), nil, state.OptionsFromConfig(cfg))

	return &environment{
		cfg:       cfg,
		provider:  provider,
		executor:  action.NewExecutor(provider, action.SettingsFromConfig(cfg)),
		registry:  registry,
		resolvers: module.DefaultResolvers(),
	}, nil
}

func runPanel(cmd *cobra.Command, args []string) error {
	if fd := os.Stdout.Fd(); !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return errors.New("the panel needs an interactive terminal")
	}

	env, err := newEnvironment()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sessionID := uuid.NewString()
	logging.Info("Opening panel", zap.String("session", sessionID))

	return panel.Run(ctx, panel.Deps{
		Registry:  env.registry,
		Resolvers: env.resolvers,
		State:     env.provider,
		Actions:   env.executor,
	}, panel.OptionsFromConfig(env.cfg, sessionID))
}
