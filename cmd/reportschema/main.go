// Command reportschema validates, formats and serves report templates.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-reportschema/internal/config"
	"github.com/goliatone/go-reportschema/pkg/validation"
)

const appName = "reportschema"

// Set at build time via -ldflags.
var (
	Version   = "0.1.0"
	BuildTime = "dev"
)

// errIssuesFound makes the process exit non-zero without printing anything
// beyond the per-file report.
var errIssuesFound = errors.New("templates have validation errors")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errIssuesFound) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// app holds state shared by every subcommand.
type app struct {
	configPath string
	logLevel   string

	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:           appName,
		Short:         "Inspection report template toolkit",
		Long:          "reportschema validates, formats, previews and serves inspection report templates.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	cmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		a.validateCmd(),
		a.lintCmd(),
		a.fmtCmd(),
		a.sampleCmd(),
		a.schemaCmd(),
		a.previewCmd(),
		a.newCmd(),
		a.serveCmd(),
		versionCmd(),
	)
	return cmd
}

func (a *app) setup(cmd *cobra.Command) error {
	bootstrap := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelWarn}))
	cfg, err := config.NewLoader(bootstrap).Load(a.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
		if _, err := cfg.Log.SlogLevel(); err != nil {
			return err
		}
	}
	a.cfg = cfg
	a.logger = cfg.Log.NewLogger(cmd.ErrOrStderr())
	slog.SetDefault(a.logger)
	return nil
}

// validator builds the configured validator: the local engine, or a remote
// endpoint optionally backed by the local engine.
func (a *app) validator() validation.Validator {
	local := validation.LocalValidator{Engine: validation.New(
		validation.WithMaxFields(a.cfg.Validation.MaxFields),
		validation.WithMaxSections(a.cfg.Validation.MaxSections),
	)}
	if a.cfg.Remote.Endpoint == "" {
		return local
	}
	remote := validation.NewRemoteValidator(a.cfg.Remote.Endpoint, a.cfg.Remote.Timeout)
	if !a.cfg.Remote.Fallback {
		return remote
	}
	return &validation.FallbackValidator{Primary: remote, Local: local, Logger: a.logger}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	}
}

func writeOutput(w io.Writer, data []byte) error {
	_, err := w.Write(data)
	return err
}
