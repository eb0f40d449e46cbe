// Package cli implements the stretch command line tool.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/cwbudde/algo-stretch/internal/config"
	"github.com/cwbudde/algo-stretch/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type app struct {
	stdout io.Writer
	stderr io.Writer

	envFiles  []string
	logLevel  string
	logFormat string
	logFile   string

	cfg    *config.Config
	logger *zap.Logger
}

// NewRootCommand builds the command tree writing to stdout and stderr.
func NewRootCommand(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr, logger: zap.NewNop()}

	root := &cobra.Command{
		Use:           "stretch",
		Short:         "Latency-compensated time stretching and pitch shifting for WAV files.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			_ = a.logger.Sync()
		},
	}

	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringSliceVar(&a.envFiles, "env-file", nil, "env files to load (default .env when present)")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error (env STRETCH_LOG_LEVEL)")
	flags.StringVar(&a.logFormat, "log-format", "", "log format: console or json (env STRETCH_LOG_FORMAT)")
	flags.StringVar(&a.logFile, "log-file", "", "also write JSON logs to this rotated file (env STRETCH_LOG_FILE)")

	root.AddCommand(newProcessCommand(a), newInfoCommand(a), newBenchCommand(a))

	return root
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(a.envFiles...)
	if err != nil {
		return err
	}

	a.cfg = cfg

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}

	if flags.Changed("log-format") {
		cfg.LogFormat = a.logFormat
	}

	if flags.Changed("log-file") {
		cfg.LogFile = a.logFile
	}

	logger, err := logging.New(logging.Config{
		Level:      cfg.LogLevel,
		Format:     cfg.LogFormat,
		File:       cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAgeDays: cfg.LogMaxAgeDays,
		Compress:   cfg.LogCompress,
		Output:     a.stderr,
	})
	if err != nil {
		return err
	}

	a.logger = logger

	return nil
}

// Execute runs the command line and returns the process exit code.
func Execute(args []string) int {
	root := NewRootCommand(os.Stdout, os.Stderr)
	root.SetArgs(args)

	err := root.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "stretch:", err)
		return 1
	}

	return 0
}
