package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ironsheep/tablelines/internal/config"
	"github.com/ironsheep/tablelines/internal/logger"
)

const appName = "tablelines"

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	logLevel   string
	logFile    bool
}

// app carries what PersistentPreRunE prepared to the subcommands.
type app struct {
	flags   globalFlags
	config  *config.Config
	logFile *os.File
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.LoadConfigFromFile(a.flags.configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = a.flags.logLevel
	}
	a.config = cfg

	// stdout carries results or MCP traffic, so logs go to stderr or a file.
	switch {
	case a.flags.logFile || cfg.Log.File != "":
		path := cfg.Log.File
		if path == "" {
			path = filepath.Join(config.StateDir(), appName+".log")
		}
		_, f, err := logger.InitFile(path, cfg.Log.Level)
		if err != nil {
			return err
		}
		a.logFile = f
	default:
		logger.Init(cmd.ErrOrStderr(), cfg.Log.Level)
	}
	return nil
}

func (a *app) teardown() {
	if a.logFile != nil {
		a.logFile.Close() // nolint: errcheck
		a.logFile = nil
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   appName,
		Short: "Find table cells drawn as ruled borders in page images",
		Long: color.New(color.FgHiMagenta).Sprintf(
			"Find table cells drawn as ruled borders in page images. %s",
			color.New(color.FgBlue).Sprintf("(%s)", Version),
		),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.teardown()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.flags.configPath, "config", "c", "", "Config file (default $XDG_CONFIG_HOME/tablelines/config.toml)")
	rootCmd.PersistentFlags().StringVar(&a.flags.logLevel, "log-level", "info", "Log level: debug, info, warn, error (env "+logger.EnvLevel+" wins)")
	rootCmd.PersistentFlags().BoolVar(&a.flags.logFile, "log-file", false, "Log to $XDG_STATE_HOME/tablelines/tablelines.log instead of stderr")

	rootCmd.AddCommand(newDetectCmd(a), newServeCmd(a), newVersionCmd())
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		// Skip config and logging setup.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", appName, Version)
			fmt.Fprintf(out, "  Build time: %s\n", BuildTime)
			fmt.Fprintf(out, "  Git commit: %s\n", GitCommit)
		},
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		slog.Error("Error executing command", "error", err)
		os.Exit(1)
	}
}
