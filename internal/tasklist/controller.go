// Package tasklist holds the task list controller: the in-memory list, the
// active filter and the row being edited, kept consistent with the persisted
// slot on every mutation.
package tasklist

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/hay-kot/tasklist/internal/core/kv"
	"github.com/hay-kot/tasklist/internal/core/logging"
	"github.com/hay-kot/tasklist/internal/core/task"
	"github.com/hay-kot/tasklist/internal/core/validate"
	"github.com/rs/zerolog"
)

const (
	// Namespace scopes the controller's keys in the slot.
	Namespace = "tasklist"
	// SlotKey is the key, within Namespace, holding the whole task list.
	SlotKey = "tasks"
)

// pendingEdit tracks the row currently open in the editor.
type pendingEdit struct {
	id       int64
	original string
	draft    string
}

// Controller owns the task list and active filter. It is not safe for
// concurrent use; callers deliver events from a single goroutine.
type Controller struct {
	slot     *kv.TypedKV[[]task.Task]
	log      zerolog.Logger
	now      func() time.Time
	tasks    []task.Task
	filter   task.Filter
	edit     *pendingEdit
	handlers map[EventKind]handler
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock replaces the time source used for new task ids.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithLogger replaces the controller's logger.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Controller) { c.log = log }
}

// New creates a Controller persisting to slot. Call Initialize before use.
func New(slot kv.KV, opts ...Option) *Controller {
	c := &Controller{
		slot:   kv.Scoped[[]task.Task](slot, Namespace),
		log:    logging.Component("controller"),
		now:    time.Now,
		tasks:  []task.Task{},
		filter: task.FilterAll,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.Hook(logging.ContextHook{})
	c.handlers = c.buildHandlers()
	return c
}

// StorageKey returns the fully qualified slot key holding the list.
func StorageKey() string {
	return kv.Scoped[[]task.Task](nil, Namespace).Key(SlotKey)
}

// Key returns the fully qualified key the controller persists to.
func (c *Controller) Key() string {
	return c.slot.Key(SlotKey)
}

// Initialize loads the persisted list and resets the filter to all.
// Missing or unreadable data yields an empty list.
func (c *Controller) Initialize(ctx context.Context) {
	c.tasks = c.load(ctx)
	c.filter = task.FilterAll
	c.edit = nil
	c.log.Debug().Int("tasks", len(c.tasks)).Msg("task list loaded")
}

// AddTask prepends a new active task. Text is trimmed; empty text is ignored
// and reported with added=false.
func (c *Controller) AddTask(ctx context.Context, raw string) (task.Task, bool, error) {
	text := strings.TrimSpace(raw)
	if err := validate.TaskText(text); err != nil {
		return task.Task{}, false, nil
	}

	if err := c.settleEdit(ctx); err != nil {
		return task.Task{}, false, err
	}

	t := task.Task{ID: c.nextID(), Text: text}

	next := make([]task.Task, 0, len(c.tasks)+1)
	next = append(next, t)
	next = append(next, c.tasks...)

	if err := c.commit(ctx, next); err != nil {
		return task.Task{}, false, err
	}
	return t, true, nil
}

// ToggleComplete flips the completed flag of the task with id. Unknown ids
// are ignored.
func (c *Controller) ToggleComplete(ctx context.Context, id int64) error {
	if err := c.settleEdit(ctx); err != nil {
		return err
	}

	idx := task.IndexOf(c.tasks, id)
	if idx < 0 {
		return nil
	}

	next := slices.Clone(c.tasks)
	next[idx].Completed = !next[idx].Completed
	return c.commit(ctx, next)
}

// BeginEdit opens the task with id for editing and returns its current text
// to seed the editor. An edit already open on another row is committed first.
func (c *Controller) BeginEdit(ctx context.Context, id int64) (string, bool, error) {
	if c.edit != nil && c.edit.id == id {
		return c.edit.draft, true, nil
	}

	if err := c.settleEdit(ctx); err != nil {
		return "", false, err
	}

	idx := task.IndexOf(c.tasks, id)
	if idx < 0 {
		return "", false, nil
	}

	text := c.tasks[idx].Text
	c.edit = &pendingEdit{id: id, original: text, draft: text}
	return text, true, nil
}

// UpdateDraft records the editor's current text for the open edit. It never
// persists anything.
func (c *Controller) UpdateDraft(text string) {
	if c.edit != nil {
		c.edit.draft = text
	}
}

// CommitEdit closes the open edit. Trimmed text that is non-empty and differs
// from the original replaces it and is persisted; anything else reverts the
// row without writing. With no open edit it does nothing. A failed write
// leaves the edit open holding raw as its draft.
func (c *Controller) CommitEdit(ctx context.Context, raw string) (bool, error) {
	if c.edit == nil {
		return false, nil
	}
	edit := c.edit
	c.edit = nil

	idx := task.IndexOf(c.tasks, edit.id)
	if idx < 0 {
		return false, nil
	}

	text := strings.TrimSpace(raw)
	if validate.TaskText(text) != nil || text == edit.original {
		return false, nil
	}

	next := slices.Clone(c.tasks)
	next[idx].Text = text
	if err := c.commit(ctx, next); err != nil {
		edit.draft = raw
		c.edit = edit
		return false, err
	}
	return true, nil
}

// DeleteTask removes the task with id. An open edit is committed first, so
// deleting the row being edited saves the draft and then removes the row.
// Unknown ids are ignored.
func (c *Controller) DeleteTask(ctx context.Context, id int64) error {
	if err := c.settleEdit(ctx); err != nil {
		return err
	}

	idx := task.IndexOf(c.tasks, id)
	if idx < 0 {
		return nil
	}

	next := slices.Delete(slices.Clone(c.tasks), idx, idx+1)
	return c.commit(ctx, next)
}

// ClearCompleted removes every completed task. The list is written even when
// nothing was removed.
func (c *Controller) ClearCompleted(ctx context.Context) error {
	if err := c.settleEdit(ctx); err != nil {
		return err
	}

	next := task.FilterActive.Apply(c.tasks)
	return c.commit(ctx, next)
}

// SetFilter changes the active filter. Unknown names return an error wrapping
// task.ErrInvalidFilter and leave the filter unchanged.
func (c *Controller) SetFilter(ctx context.Context, name string) error {
	f, err := task.ParseFilter(name)
	if err != nil {
		return err
	}

	if err := c.settleEdit(ctx); err != nil {
		return err
	}

	c.filter = f
	return nil
}

// Persist writes the whole list to the slot.
func (c *Controller) Persist(ctx context.Context) error {
	return c.commit(ctx, c.tasks)
}

// Reload re-reads the slot after an external change. An open edit is dropped
// if its task no longer exists.
func (c *Controller) Reload(ctx context.Context) {
	c.tasks = c.load(ctx)
	if c.edit != nil && task.IndexOf(c.tasks, c.edit.id) < 0 {
		c.log.Debug().Int64("task_id", c.edit.id).Msg("edited task removed externally")
		c.edit = nil
	}
}

// RemainingCount returns the number of active tasks across the whole list.
func (c *Controller) RemainingCount() int {
	return task.CountActive(c.tasks)
}

// Tasks returns a copy of the full list, newest first.
func (c *Controller) Tasks() []task.Task {
	return slices.Clone(c.tasks)
}

// Filter returns the active filter.
func (c *Controller) Filter() task.Filter {
	return c.filter
}

// Editing returns the id and draft text of the open edit, if any.
func (c *Controller) Editing() (int64, string, bool) {
	if c.edit == nil {
		return 0, "", false
	}
	return c.edit.id, c.edit.draft, true
}

// settleEdit commits an open edit using its draft text.
func (c *Controller) settleEdit(ctx context.Context) error {
	if c.edit == nil {
		return nil
	}
	_, err := c.CommitEdit(ctx, c.edit.draft)
	return err
}

// commit persists next and, only once the write succeeded, makes it the
// in-memory list.
func (c *Controller) commit(ctx context.Context, next []task.Task) error {
	if next == nil {
		next = []task.Task{}
	}
	if err := c.slot.Set(ctx, SlotKey, next); err != nil {
		return fmt.Errorf("persist tasks: %w", err)
	}
	c.tasks = next
	return nil
}

func (c *Controller) load(ctx context.Context) []task.Task {
	stored, err := c.slot.Get(ctx, SlotKey)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return []task.Task{}
		}
		c.log.Warn().Err(err).Msg("stored tasks unreadable, starting empty")
		return []task.Task{}
	}
	return c.sanitize(stored)
}

// sanitize drops entries that break the list invariants: a non-positive id,
// blank text or an id seen earlier in the list. It applies the same rules as
// ValidateTasks.
func (c *Controller) sanitize(stored []task.Task) []task.Task {
	tasks := make([]task.Task, 0, len(stored))
	seen := make(map[int64]struct{}, len(stored))

	for _, t := range stored {
		if t.ID <= 0 {
			c.log.Warn().Int64("task_id", t.ID).Str("text", t.Text).Msg("dropping stored task with invalid id")
			continue
		}
		t.Text = strings.TrimSpace(t.Text)
		if t.Text == "" {
			c.log.Warn().Int64("task_id", t.ID).Msg("dropping stored task with empty text")
			continue
		}
		if _, dup := seen[t.ID]; dup {
			c.log.Warn().Int64("task_id", t.ID).Msg("dropping stored task with duplicate id")
			continue
		}
		seen[t.ID] = struct{}{}
		tasks = append(tasks, t)
	}
	return tasks
}

// nextID returns the creation time in unix milliseconds, bumped past the
// largest existing id so ids stay unique and increasing.
func (c *Controller) nextID() int64 {
	id := c.now().UnixMilli()
	if highest := task.MaxID(c.tasks); id <= highest {
		id = highest + 1
	}
	return id
}
