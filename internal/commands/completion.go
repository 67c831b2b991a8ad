package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/tasklist/internal/core/task"
	"github.com/hay-kot/tasklist/internal/tasklist"
)

// TaskIDCompleter suggests task ids, each followed by its text as the
// completion description.
//
// When the user's last typed argument starts with "-", it falls back to the
// default flag completion behavior.
func TaskIDCompleter(app *tasklist.App) cli.ShellCompleteFunc {
	return func(ctx context.Context, cmd *cli.Command) {
		if typingFlag(cmd) {
			cli.DefaultCompleteWithFlags(ctx, cmd)
			return
		}
		if app.Tasks == nil {
			return
		}

		w := cmd.Root().Writer
		for _, t := range app.Tasks.Tasks() {
			_, _ = fmt.Fprintf(w, "%s:%s\n", strconv.FormatInt(t.ID, 10), t.Text)
		}
	}
}

// FilterCompleter suggests filter names after --filter.
func FilterCompleter() cli.ShellCompleteFunc {
	return func(ctx context.Context, cmd *cli.Command) {
		args := cmd.Args().Slice()
		if len(args) == 0 || args[len(args)-1] != "--filter" {
			cli.DefaultCompleteWithFlags(ctx, cmd)
			return
		}

		w := cmd.Root().Writer
		for _, f := range task.Filters {
			_, _ = fmt.Fprintln(w, f)
		}
	}
}

func typingFlag(cmd *cli.Command) bool {
	args := cmd.Args()
	if !args.Present() {
		return false
	}
	last := args.Slice()[args.Len()-1]
	return len(last) > 0 && last[0] == '-'
}
