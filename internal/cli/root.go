package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alexanderramin/stagetrack/internal/app"
	"github.com/alexanderramin/stagetrack/internal/config"
	"github.com/alexanderramin/stagetrack/internal/logging"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// Options customise terminal interaction. Zero values use the real terminal.
type Options struct {
	// IsInteractive reports whether prompts can be shown.
	IsInteractive func() bool
	// Confirm asks a yes/no question.
	Confirm func(title string) (bool, error)
	// LogOutput receives log lines. Defaults to stderr.
	LogOutput io.Writer
}

// state is shared by all subcommands of one root command.
type state struct {
	opts       Options
	configPath string
	cfg        config.Config
	logger     *slog.Logger
}

// NewRootCmd creates the top-level "stagetrack" command.
func NewRootCmd(opts Options) *cobra.Command {
	if opts.IsInteractive == nil {
		opts.IsInteractive = func() bool {
			return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		}
	}
	if opts.Confirm == nil {
		opts.Confirm = confirmPrompt
	}
	if opts.LogOutput == nil {
		opts.LogOutput = os.Stderr
	}
	st := &state{opts: opts}

	root := &cobra.Command{
		Use:           "stagetrack",
		Short:         "Project stage and task tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return st.load(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&st.configPath, "config", "", "path to a YAML config file (default ./stagetrack.yml)")
	pf.String(config.FlagDSN, "", "SQLite path, :memory:, or postgres:// URL")
	pf.String(config.FlagLogLevel, "", "log level: debug, info, warn, error")
	pf.String(config.FlagLogFormat, "", "log format: text or json")

	root.AddCommand(
		newServeCmd(st),
		newStagesCmd(st),
		newStatsCmd(st),
		newExportCmd(st),
		newImportCmd(st),
		newResetCmd(st),
	)
	return root
}

func (st *state) load(cmd *cobra.Command) error {
	cfg, err := config.Load(st.configPath)
	if err != nil {
		return err
	}
	if err := cfg.ApplyFlags(cmd.Flags()); err != nil {
		return err
	}
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	format, err := logging.ParseFormat(cfg.LogFormat)
	if err != nil {
		return err
	}
	st.cfg = cfg
	st.logger = logging.New(st.opts.LogOutput, level, format)
	return nil
}

func (st *state) openApp() (*app.App, error) {
	a, err := app.Open(st.cfg.DSN, st.logger)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return a, nil
}

// withApp opens the store for the duration of fn. An empty store is seeded
// with the default template first, so every command sees the same data the
// server would.
func (st *state) withApp(ctx context.Context, fn func(a *app.App) error) error {
	a, err := st.openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	seeded, err := a.Schema.SeedIfEmpty(ctx)
	if err != nil {
		return err
	}
	if seeded {
		st.logger.Info("seeded default stages")
	}
	return fn(a)
}
