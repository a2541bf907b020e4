package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/willibrandon/sqlcreds/internal/config"
	"github.com/willibrandon/sqlcreds/internal/logger"
	"github.com/willibrandon/sqlcreds/internal/prompt"
)

var (
	// Version info (set by ldflags)
	version = "dev"

	// errCancelled is returned when the user abandons an interactive prompt.
	errCancelled = errors.New("cancelled")
)

// globalOptions holds persistent flags shared by every subcommand.
type globalOptions struct {
	configPath string
	debug      bool
	platform   string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errCancelled) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "sqlcreds",
		Short: "Complete and convert SQL Server connection credentials",
		Long: `sqlcreds loads saved SQL Server connection profiles, asks for any
required field that is missing, and prints the connection details handed to
the driver layer.

  sqlcreds details [--profile name] [-o json|yaml|connstr]
  sqlcreds complete
  sqlcreds auth-types
  sqlcreds profiles`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Close()
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file path (default ~/.config/sqlcreds/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&opts.platform, "platform", "auto", "platform capabilities: auto, windows, other")

	rootCmd.AddCommand(
		newDetailsCmd(opts),
		newCompleteCmd(opts),
		newAuthTypesCmd(opts),
		newProfilesCmd(opts),
	)

	return rootCmd
}

// setup loads configuration and initializes logging.
func (o *globalOptions) setup() (*config.Config, error) {
	var cfg *config.Config
	var err error

	if o.configPath != "" {
		cfg, err = config.LoadFromPath(o.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	if o.debug {
		level = logger.LevelDebug
	}
	logger.InitLogger(level, cfg.LogFile)
	logger.Debug("sqlcreds starting", "version", version, "config", cfg.Path())

	return cfg, nil
}

// hostPlatform resolves the --platform flag.
func (o *globalOptions) hostPlatform() (prompt.Platform, error) {
	switch o.platform {
	case "", "auto":
		return prompt.HostPlatform(), nil
	case "windows":
		return prompt.StaticPlatform(true), nil
	case "other":
		return prompt.StaticPlatform(false), nil
	default:
		return nil, fmt.Errorf("--platform must be one of auto, windows, other, got %q", o.platform)
	}
}
