package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/tasklist/internal/core/validate"
	"github.com/hay-kot/tasklist/internal/tasklist"
	"github.com/hay-kot/tasklist/pkg/iojson"
)

type AddCmd struct {
	flags *Flags
	app   *tasklist.App
}

// NewAddCmd creates a new add command
func NewAddCmd(flags *Flags, app *tasklist.App) *AddCmd {
	return &AddCmd{flags: flags, app: app}
}

// Register adds the add command to the application
func (cmd *AddCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "add",
		Usage:     "Add a task",
		UsageText: "tasklist add <text...>",
		Description: `Adds a task to the front of the list and prints it as JSON.

All arguments are joined with spaces. Text that is empty after trimming is
ignored and nothing is printed.`,
		Action: cmd.run,
	})

	return app
}

func (cmd *AddCmd) run(ctx context.Context, c *cli.Command) error {
	text := strings.Join(c.Args().Slice(), " ")

	if err := validate.TaskTextField("text", text); err != nil {
		log.Debug().Err(err).Msg("ignoring empty task")
		return nil
	}

	created, added, err := cmd.app.Tasks.AddTask(ctx, text)
	if err != nil {
		return fmt.Errorf("add task: %w", err)
	}
	if !added {
		return nil
	}

	return iojson.WriteLine(c.Root().Writer, created)
}
