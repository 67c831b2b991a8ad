package tasklist

import (
	"context"
	"errors"
	"fmt"

	"github.com/hay-kot/tasklist/internal/core/logging"
)

// ErrUnknownEvent is returned by Dispatch for an event kind with no handler.
var ErrUnknownEvent = errors.New("unknown event")

// EventKind names a user action the controller reacts to.
type EventKind string

const (
	EventAdd            EventKind = "add"
	EventToggle         EventKind = "toggle"
	EventEditBegin      EventKind = "edit.begin"
	EventEditInput      EventKind = "edit.input"
	EventEditCommit     EventKind = "edit.commit"
	EventDelete         EventKind = "delete"
	EventClearCompleted EventKind = "clear-completed"
	EventFilter         EventKind = "filter"
	EventReload         EventKind = "reload"
)

// Event is a single discrete action. Which fields matter depends on Kind:
// ID for toggle, edit.begin and delete; Text for add, edit.input and
// edit.commit; Filter for filter.
type Event struct {
	Kind   EventKind
	ID     int64
	Text   string
	Filter string
}

type handler func(ctx context.Context, ev Event) error

func (c *Controller) buildHandlers() map[EventKind]handler {
	return map[EventKind]handler{
		EventAdd: func(ctx context.Context, ev Event) error {
			_, _, err := c.AddTask(ctx, ev.Text)
			return err
		},
		EventToggle: func(ctx context.Context, ev Event) error {
			return c.ToggleComplete(ctx, ev.ID)
		},
		EventEditBegin: func(ctx context.Context, ev Event) error {
			_, _, err := c.BeginEdit(ctx, ev.ID)
			return err
		},
		EventEditInput: func(_ context.Context, ev Event) error {
			c.UpdateDraft(ev.Text)
			return nil
		},
		EventEditCommit: func(ctx context.Context, ev Event) error {
			_, err := c.CommitEdit(ctx, ev.Text)
			return err
		},
		EventDelete: func(ctx context.Context, ev Event) error {
			return c.DeleteTask(ctx, ev.ID)
		},
		EventClearCompleted: func(ctx context.Context, _ Event) error {
			return c.ClearCompleted(ctx)
		},
		EventFilter: func(ctx context.Context, ev Event) error {
			return c.SetFilter(ctx, ev.Filter)
		},
		EventReload: func(ctx context.Context, _ Event) error {
			c.Reload(ctx)
			return nil
		},
	}
}

// Dispatch routes ev to its handler. Handlers run synchronously in call
// order; the caller re-renders afterwards regardless of the outcome.
func (c *Controller) Dispatch(ctx context.Context, ev Event) error {
	h, ok := c.handlers[ev.Kind]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownEvent, ev.Kind)
	}

	ctx = logging.WithEvent(ctx, string(ev.Kind))
	if ev.ID != 0 {
		ctx = logging.WithTaskID(ctx, ev.ID)
	}

	c.log.Debug().Ctx(ctx).Msg("dispatch")

	if err := h(ctx, ev); err != nil {
		c.log.Error().Ctx(ctx).Err(err).Msg("event failed")
		return err
	}
	return nil
}
