package doctor

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/hay-kot/criterio"

	"github.com/hay-kot/tasklist/internal/core/kv"
	"github.com/hay-kot/tasklist/internal/core/task"
)

// DataDirCheck verifies the data directory exists and is writable.
type DataDirCheck struct {
	dir string
}

func NewDataDirCheck(dir string) *DataDirCheck {
	return &DataDirCheck{dir: dir}
}

func (c *DataDirCheck) Name() string {
	return "Data directory"
}

func (c *DataDirCheck) Run(_ context.Context) Result {
	result := Result{Name: c.Name()}

	info, err := os.Stat(c.dir)
	switch {
	case errors.Is(err, os.ErrNotExist):
		result.Items = append(result.Items, CheckItem{
			Label:  c.dir,
			Status: StatusWarn,
			Detail: "does not exist yet, created on first save",
		})
		return result
	case err != nil:
		result.Items = append(result.Items, CheckItem{Label: c.dir, Status: StatusFail, Detail: err.Error()})
		return result
	case !info.IsDir():
		result.Items = append(result.Items, CheckItem{Label: c.dir, Status: StatusFail, Detail: "not a directory"})
		return result
	}

	probe, err := os.CreateTemp(c.dir, ".doctor-*")
	if err != nil {
		result.Items = append(result.Items, CheckItem{Label: c.dir, Status: StatusFail, Detail: "not writable: " + err.Error()})
		return result
	}
	_ = probe.Close()
	_ = os.Remove(probe.Name())

	result.Items = append(result.Items, CheckItem{Label: c.dir, Status: StatusPass, Detail: "writable"})
	return result
}

// SlotCheck reads the persisted task list and reports entries that would be
// dropped when it is loaded.
type SlotCheck struct {
	store    kv.KV
	key      string
	backend  string
	validate func([]task.Task) error
}

// NewSlotCheck creates a check over the list stored at key. validate reports
// invalid entries as criterio field errors.
func NewSlotCheck(store kv.KV, key, backend string, validate func([]task.Task) error) *SlotCheck {
	return &SlotCheck{store: store, key: key, backend: backend, validate: validate}
}

func (c *SlotCheck) Name() string {
	return "Task storage"
}

func (c *SlotCheck) Run(ctx context.Context) Result {
	result := Result{Name: c.Name()}
	label := fmt.Sprintf("%s (%s)", c.key, c.backend)

	var tasks []task.Task
	if err := c.store.Get(ctx, c.key, &tasks); err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			result.Items = append(result.Items, CheckItem{Label: label, Status: StatusPass, Detail: "no tasks saved yet"})
			return result
		}
		result.Items = append(result.Items, CheckItem{
			Label:   label,
			Status:  StatusFail,
			Detail:  "unreadable, the list will start empty: " + err.Error(),
			Fixable: true,
		})
		return result
	}

	if err := c.validate(tasks); err != nil {
		var fieldErrs criterio.FieldErrors
		if !errors.As(err, &fieldErrs) {
			result.Items = append(result.Items, CheckItem{Label: label, Status: StatusFail, Detail: err.Error()})
			return result
		}
		for _, fe := range fieldErrs {
			result.Items = append(result.Items, CheckItem{
				Label:   fe.Field,
				Status:  StatusWarn,
				Detail:  fe.Err.Error() + ", dropped on load",
				Fixable: true,
			})
		}
		return result
	}

	result.Items = append(result.Items, CheckItem{
		Label:  label,
		Status: StatusPass,
		Detail: fmt.Sprintf("%d tasks, %s", len(tasks), task.RemainingText(task.CountActive(tasks))),
	})
	return result
}
