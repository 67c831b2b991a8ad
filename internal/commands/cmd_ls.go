package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/tasklist/internal/core/styles"
	"github.com/hay-kot/tasklist/internal/core/task"
	"github.com/hay-kot/tasklist/internal/tasklist"
	"github.com/hay-kot/tasklist/pkg/iojson"
)

type LsCmd struct {
	flags *Flags
	app   *tasklist.App

	// flags
	filter     string
	jsonOutput bool
}

// NewLsCmd creates a new ls command
func NewLsCmd(flags *Flags, app *tasklist.App) *LsCmd {
	return &LsCmd{flags: flags, app: app}
}

// Register adds the ls command to the application
func (cmd *LsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "ls",
		Usage:     "List tasks",
		UsageText: "tasklist ls [--filter all|active|completed] [--json]",
		Description: `Lists the tasks visible under a filter, newest first.

Output is JSON lines when stdout is not a terminal or --json is set, so it can be
piped into other tools. In terminal mode the remaining count follows the list on
stderr; JSON lines output carries only the tasks.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "filter",
				Usage:       "which tasks to show (all, active, completed)",
				Value:       string(task.FilterAll),
				Destination: &cmd.filter,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "force JSON lines output",
				Destination: &cmd.jsonOutput,
			},
		},
		ShellComplete: FilterCompleter(),
		Action:        cmd.run,
	})

	return app
}

func (cmd *LsCmd) run(ctx context.Context, c *cli.Command) error {
	if err := cmd.app.Tasks.Dispatch(ctx, tasklist.Event{Kind: tasklist.EventFilter, Filter: cmd.filter}); err != nil {
		return err
	}

	view := cmd.app.Tasks.Render()
	out := c.Root().Writer

	if cmd.jsonOutput || !iojson.IsTerminal(out) {
		for _, row := range view.Rows {
			line := task.Task{ID: row.ID, Text: row.Text, Completed: row.Completed}
			if err := iojson.WriteLine(out, line); err != nil {
				return fmt.Errorf("encode task: %w", err)
			}
		}
		return nil
	}

	writeListing(out, view)
	_, _ = fmt.Fprintln(os.Stderr, styles.RemainingStyle.Render(view.Remaining))
	return nil
}

func writeListing(w io.Writer, view tasklist.View) {
	if view.Empty() {
		_, _ = fmt.Fprintln(w, styles.PlaceholderStyle.Render(view.Placeholder))
		return
	}

	for _, row := range view.Rows {
		box := styles.CheckboxStyle.Render("[ ]")
		text := styles.TaskActiveStyle.Render(row.Text)
		if row.Completed {
			box = styles.CheckboxDoneStyle.Render("[x]")
			text = styles.TaskCompletedStyle.Render(row.Text)
		}
		id := styles.MutedStyle.Render(fmt.Sprintf("%d", row.ID))
		_, _ = fmt.Fprintf(w, "%s %s %s\n", box, text, id)
	}
}
