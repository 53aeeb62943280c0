package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"JSMChanges/internal/app"
	"JSMChanges/internal/config"
	"JSMChanges/internal/domain"
	"JSMChanges/internal/logging"
)

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := newRootCmd()
	if err := cmd.ExecuteContext(ctx); err != nil {
		stop()
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

type flags struct {
	configPath string
	format     string
	noOpen     bool
	output     string
	section    string
	timeout    time.Duration
	debug      bool
	interval   time.Duration
}

func newRootCmd() *cobra.Command {
	f := &flags{}

	cmd := &cobra.Command{
		Use:           "jsmchanges",
		Short:         "Report Jira Service Management entries new in this week's Atlassian Cloud changes",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			application, closer, err := f.build()
			if err != nil {
				return err
			}
			defer func() { _ = closer.Close() }()

			_, err = application.Run(cmd.Context())
			return err
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&f.configPath, "config", "", "Path to a YAML config file (default $JSM_CHANGES_CONFIG)")
	pf.StringVar(&f.format, "format", "", "Report format: html|json|text|atom")
	pf.BoolVar(&f.noOpen, "no-open", false, "Do not open the report; print it unless --output is set")
	pf.StringVarP(&f.output, "output", "o", "", "Write the report to this path instead of a temp file")
	pf.StringVar(&f.section, "section", "", "Heading phrase of the product section to compare")
	pf.DurationVar(&f.timeout, "timeout", 0, "Per-request HTTP timeout (e.g. 5s)")
	pf.BoolVar(&f.debug, "debug", false, "Enable debug logging")

	cmd.AddCommand(watchCmd(f))
	return cmd
}

func watchCmd(f *flags) *cobra.Command {
	c := &cobra.Command{
		Use:   "watch",
		Short: "Repeat the comparison on a fixed interval until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			application, closer, err := f.build()
			if err != nil {
				return err
			}
			defer func() { _ = closer.Close() }()

			return application.Watch(cmd.Context())
		},
	}

	c.Flags().DurationVar(&f.interval, "interval", 0, "Time between runs (default from config, 168h)")
	return c
}

// resolve loads configuration and applies command-line overrides.
func (f *flags) resolve() config.Config {
	cfg := config.Load(f.configPath)

	if f.format != "" {
		cfg.Report.Format = f.format
	}
	if f.noOpen {
		cfg.Report.NoOpen = true
	}
	if f.output != "" {
		cfg.Report.OutputPath = f.output
	}
	if f.section != "" {
		cfg.Markup.Section = f.section
	}
	if f.timeout > 0 {
		cfg.HTTP.Timeout = f.timeout
	}
	if f.debug {
		cfg.Logging.Level = "debug"
	}
	if f.interval > 0 {
		cfg.Scheduler.Interval = f.interval
	}
	return cfg
}

func (f *flags) build() (*app.Application, io.Closer, error) {
	cfg := f.resolve()
	logger, closer := logging.NewFromConfig(cfg.Logging)

	application, err := app.New(cfg, logger)
	if err != nil {
		_ = closer.Close()
		return nil, nil, err
	}
	return application, closer, nil
}

func printError(w io.Writer, err error) {
	red := color.New(color.FgRed, color.Bold).SprintFunc()

	switch {
	case errors.Is(err, domain.ErrInsufficientPages):
		fmt.Fprintf(w, "%s could not find two weekly change pages to compare: %v\n", red("error:"), err)
	case errors.Is(err, domain.ErrNoCurrentEntries):
		fmt.Fprintf(w, "%s no entries found for the current week: %v\n", red("error:"), err)
	case errors.Is(err, context.Canceled):
		fmt.Fprintf(w, "%s interrupted\n", red("error:"))
	default:
		fmt.Fprintf(w, "%s %v\n", red("error:"), err)
	}
}
