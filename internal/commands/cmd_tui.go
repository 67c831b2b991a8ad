package commands

import (
	"context"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/tasklist/internal/core/logging"
	"github.com/hay-kot/tasklist/internal/profiler"
	"github.com/hay-kot/tasklist/internal/tasklist"
	"github.com/hay-kot/tasklist/internal/tui"
)

type TuiCmd struct {
	flags *Flags
	app   *tasklist.App
}

// NewTuiCmd creates a new tui command
func NewTuiCmd(flags *Flags, app *tasklist.App) *TuiCmd {
	return &TuiCmd{
		flags: flags,
		app:   app,
	}
}

// Flags returns the TUI-specific flags for registration on the root command
func (cmd *TuiCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:        "profiler-port",
			Usage:       "enable pprof HTTP endpoint on localhost at the given port (e.g., 6060)",
			Sources:     cli.EnvVars("TASKLIST_PROFILER_PORT"),
			Destination: &cmd.flags.ProfilerPort,
		},
	}
}

// Run executes the TUI. Exported for use as default command.
func (cmd *TuiCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *TuiCmd) run(ctx context.Context, _ *cli.Command) error {
	if cmd.flags.ProfilerPort > 0 {
		profServer := profiler.New(cmd.flags.ProfilerPort, logging.Component("profiler"))
		if err := profServer.Start(ctx); err != nil {
			return fmt.Errorf("failed to start profiler: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := profServer.Shutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("failed to shutdown profiler server")
			}
		}()
	}

	m := tui.New(ctx, cmd.app.Tasks, tui.Options{
		Changes:  cmd.app.Changes(),
		ShowHelp: cmd.app.Config.TUI.ShowHelp,
		Logger:   logging.Component("tui"),
	})

	if _, err := tea.NewProgram(m).Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
