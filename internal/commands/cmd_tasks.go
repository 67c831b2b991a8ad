package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/tasklist/internal/tasklist"
)

// TaskCmd registers the commands that act on existing tasks by id.
type TaskCmd struct {
	flags *Flags
	app   *tasklist.App
}

// NewTaskCmd creates the toggle, rm and clear commands.
func NewTaskCmd(flags *Flags, app *tasklist.App) *TaskCmd {
	return &TaskCmd{flags: flags, app: app}
}

func (cmd *TaskCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands,
		&cli.Command{
			Name:          "toggle",
			Aliases:       []string{"done"},
			Usage:         "Flip the completed state of tasks",
			UsageText:     "tasklist toggle <id...>",
			ShellComplete: TaskIDCompleter(cmd.app),
			Action:        cmd.eachID(tasklist.EventToggle),
		},
		&cli.Command{
			Name:          "rm",
			Usage:         "Delete tasks",
			UsageText:     "tasklist rm <id...>",
			ShellComplete: TaskIDCompleter(cmd.app),
			Action:        cmd.eachID(tasklist.EventDelete),
		},
		&cli.Command{
			Name:      "clear",
			Usage:     "Delete every completed task",
			UsageText: "tasklist clear",
			Action: func(ctx context.Context, _ *cli.Command) error {
				return cmd.app.Tasks.Dispatch(ctx, tasklist.Event{Kind: tasklist.EventClearCompleted})
			},
		},
	)

	return app
}

// eachID parses every argument as a task id, then dispatches kind for each.
// Unknown ids are ignored.
func (cmd *TaskCmd) eachID(kind tasklist.EventKind) cli.ActionFunc {
	return func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() == 0 {
			return fmt.Errorf("at least one task id is required")
		}

		ids := make([]int64, 0, c.Args().Len())
		for _, arg := range c.Args().Slice() {
			id, err := strconv.ParseInt(arg, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid task id %q", arg)
			}
			ids = append(ids, id)
		}

		for _, id := range ids {
			if err := cmd.app.Tasks.Dispatch(ctx, tasklist.Event{Kind: kind, ID: id}); err != nil {
				return err
			}
		}
		return nil
	}
}
