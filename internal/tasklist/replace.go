package tasklist

import (
	"context"
	"fmt"
	"strings"

	"github.com/hay-kot/criterio"
	"github.com/hay-kot/tasklist/internal/core/task"
	"github.com/hay-kot/tasklist/internal/core/validate"
)

// ValidateTasks checks an imported list against the list invariants: every
// task has a positive, unique id and non-blank text. All violations are
// reported together, keyed by their position in the list.
func ValidateTasks(tasks []task.Task) error {
	var errs criterio.FieldErrorsBuilder
	seen := make(map[int64]int, len(tasks))

	for i, t := range tasks {
		field := fmt.Sprintf("tasks[%d]", i)

		switch first, dup := seen[t.ID]; {
		case t.ID <= 0:
			errs = errs.Append(field+".id", fmt.Errorf("id must be positive, got %d", t.ID))
		case dup:
			errs = errs.Append(field+".id", fmt.Errorf("duplicate id %d (also tasks[%d])", t.ID, first))
		default:
			seen[t.ID] = i
		}

		if err := validate.TaskText(t.Text); err != nil {
			errs = errs.Append(field+".text", err)
		}
	}

	return errs.ToError()
}

// Replace swaps the whole list for tasks, persisting it first. Text is
// trimmed; the list must pass ValidateTasks. An open edit is discarded and
// the filter is kept.
func (c *Controller) Replace(ctx context.Context, tasks []task.Task) error {
	if err := ValidateTasks(tasks); err != nil {
		return err
	}

	next := make([]task.Task, len(tasks))
	for i, t := range tasks {
		t.Text = strings.TrimSpace(t.Text)
		next[i] = t
	}

	if err := c.commit(ctx, next); err != nil {
		return err
	}
	c.edit = nil
	c.log.Info().Int("tasks", len(next)).Msg("task list replaced")
	return nil
}
