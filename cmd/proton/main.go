package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/proton/internal/config"
	"github.com/vango-dev/proton/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ┌─┐┬─┐┌─┐┌┬┐┌─┐┌┐┌
  ├─┘├┬┘│ │ │ │ ││││
  ┴  ┴└─└─┘ ┴ └─┘┘└┘
`

// app carries state shared by every command.
type app struct {
	configPath string
	logLevel   string
	logFormat  string

	cfg    *config.Config
	logger *slog.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		errors.Fprint(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "proton",
		Short: "A fine-grained reactive runtime for Go",
		Long: `proton runs, measures and inspects fine-grained reactive graphs.

Effects re-run automatically when the signals and memos they read
change. The CLI exercises the runtime:

  • demo     walk through signals, memos, scopes and tracked maps
  • bench    drive a synthetic graph and report throughput
  • inspect  serve live runtime events over WebSocket
  • explain  describe an error code`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd.ErrOrStderr())
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "Config file (default: proton.json or proton.yaml in the working directory)")
	flags.StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error (default from config)")
	flags.StringVar(&a.logFormat, "log-format", "", "Log format: text or json (default from config)")

	rootCmd.AddCommand(
		demoCmd(a),
		benchCmd(a),
		inspectCmd(a),
		explainCmd(),
		initCmd(),
		versionCmd(),
	)

	return rootCmd
}

// setup loads configuration, applies flag overrides and installs the
// logger.
func (a *app) setup(stderr io.Writer) error {
	var err error
	if a.configPath != "" {
		a.cfg, err = config.LoadFile(a.configPath)
	} else {
		a.cfg, err = config.Load(".")
	}
	if err != nil {
		return err
	}

	if a.logLevel != "" {
		a.cfg.Log.Level = a.logLevel
	}
	if a.logFormat != "" {
		a.cfg.Log.Format = a.logFormat
	}
	if err := a.cfg.Validate(); err != nil {
		return err
	}

	level, _ := a.cfg.SlogLevel()
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if a.cfg.Log.Format == "json" {
		handler = slog.NewJSONHandler(stderr, opts)
	} else {
		handler = slog.NewTextHandler(stderr, opts)
	}
	a.logger = slog.New(handler)
	slog.SetDefault(a.logger)
	return nil
}

// printBanner prints the ASCII art banner.
func printBanner(w io.Writer) {
	fmt.Fprint(w, banner)
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "  %s\n", fmt.Sprintf(format, args...))
}
