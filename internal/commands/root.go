package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/tasklist/internal/tasklist"
)

// NewRoot builds the tasklist command tree with global flags bound to flags.
// The caller attaches Before/After hooks; commands read app once Before has
// filled it.
func NewRoot(flags *Flags, app *tasklist.App) *cli.Command {
	root := &cli.Command{
		Name:      "tasklist",
		Usage:     "Keep a short list of things to do",
		UsageText: "tasklist [global options] command [command options]",
		Description: `tasklist keeps a list of short text tasks in a single local slot.

Run 'tasklist' with no arguments to open the interactive list.
Run 'tasklist add buy milk' to add a task from the shell.`,
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("TASKLIST_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to <data-dir>/tasklist.log)",
				Sources:     cli.EnvVars("TASKLIST_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("TASKLIST_CONFIG"),
				Value:       DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("TASKLIST_DATA_DIR"),
				Value:       DefaultDataDir(),
				Destination: &flags.DataDir,
			},
		},
	}

	tuiCmd := NewTuiCmd(flags, app)

	root = NewLsCmd(flags, app).Register(root)
	root = NewAddCmd(flags, app).Register(root)
	root = NewTaskCmd(flags, app).Register(root)
	root = NewImportCmd(flags, app).Register(root)
	root = NewDoctorCmd(flags, app).Register(root)
	root = NewConfigValidateCmd(flags).Register(root)

	// Register TUI flags on root command
	root.Flags = append(root.Flags, tuiCmd.Flags()...)

	// Set TUI as default action when no subcommand is provided
	root.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'tasklist --help' for usage", c.Args().First())
		}
		return tuiCmd.Run(ctx, c)
	}

	return root
}
