// gastudio renames KNX group addresses from an ETS export according to a
// lighting-module convention.
//
// It runs either offline (convert) or as a local web editor (serve).
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/nerrad567/knx-ga-studio/internal/infrastructure/config"
	"github.com/nerrad567/knx-ga-studio/internal/infrastructure/logging"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// configEnv names the environment variable consulted when --config is unset.
const configEnv = "GASTUDIO_CONFIG"

func main() {
	// Cancel on Ctrl+C and SIGTERM so serve can shut down gracefully.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// A missing .env file is normal; a broken one is worth a warning.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logging.Default().Warn("ignoring .env file", "error", err)
	}

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		cancel()
		os.Exit(1)
	}
}

// options holds flags shared by every command.
type options struct {
	configPath string
}

// newRootCmd builds the command tree.
func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "gastudio",
		Short:         "Rename KNX group addresses by lighting module",
		Long:          "gastudio reads an ETS group address export, names every light and group object by its module position, and writes a renamed export plus an Excel mapping sheet.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "",
		"path to a YAML config file (default $"+configEnv+", then built-in defaults)")

	root.AddCommand(newConvertCmd(opts))
	root.AddCommand(newServeCmd(opts))
	root.AddCommand(newDBCmd(opts))
	root.AddCommand(newTokenCmd(opts))
	root.AddCommand(newVersionCmd())

	return root
}

// resolveConfigPath returns the --config value, falling back to the environment.
// An empty result selects the built-in defaults.
func (o *options) resolveConfigPath() string {
	if o.configPath != "" {
		return o.configPath
	}
	return os.Getenv(configEnv)
}

// loadConfig loads and validates the configuration.
func (o *options) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(o.resolveConfigPath())
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "gastudio %s (commit %s, built %s)\n", version, commit, date)
			return err
		},
	}
}
