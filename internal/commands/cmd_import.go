package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/tasklist/internal/core/task"
	"github.com/hay-kot/tasklist/internal/tasklist"
	"github.com/hay-kot/tasklist/pkg/iojson"
)

type ImportCmd struct {
	flags *Flags
	app   *tasklist.App

	reader iojson.FileReader[[]task.Task]
}

// NewImportCmd creates a new import command
func NewImportCmd(flags *Flags, app *tasklist.App) *ImportCmd {
	return &ImportCmd{flags: flags, app: app}
}

// Register adds the import command to the application
func (cmd *ImportCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "import",
		Usage:     "Replace the task list from JSON",
		UsageText: "tasklist import [-f file.json]",
		Description: `Replaces the whole task list with a JSON array read from a file or stdin.

Input format:
  [
    {"id": 1700000000000, "text": "Buy milk", "completed": false},
    {"id": 1699999999999, "text": "Walk dog", "completed": true}
  ]

Every task needs a positive, unique id and non-empty text. Nothing is written
unless the whole list is valid.`,
		Flags:  []cli.Flag{cmd.reader.Flag()},
		Action: cmd.run,
	})

	return app
}

func (cmd *ImportCmd) run(ctx context.Context, c *cli.Command) error {
	tasks, err := cmd.reader.Read()
	if err != nil {
		if werr := iojson.WriteError(err.Error(), nil); werr != nil {
			return werr
		}
		return cli.Exit("", 1)
	}

	if err := cmd.app.Tasks.Replace(ctx, tasks); err != nil {
		var fieldErrs criterio.FieldErrors
		if errors.As(err, &fieldErrs) {
			data := make(map[string]any, len(fieldErrs))
			for _, fe := range fieldErrs {
				data[fe.Field] = fe.Err.Error()
			}
			if werr := iojson.WriteError("invalid task list", data); werr != nil {
				return werr
			}
			return cli.Exit("", 1)
		}
		return fmt.Errorf("import tasks: %w", err)
	}

	_, _ = fmt.Fprintf(os.Stderr, "imported %d tasks\n", len(tasks))
	return nil
}
