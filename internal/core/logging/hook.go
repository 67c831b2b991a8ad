package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// ContextHook copies the event kind and task id from the context onto log events.
type ContextHook struct{}

// Run adds contextual fields to the zerolog event.
func (h ContextHook) Run(e *zerolog.Event, level zerolog.Level, msg string) {
	ctx := e.GetCtx()
	if ctx == context.Background() || ctx == nil {
		return
	}

	if ev := GetEvent(ctx); ev != "" {
		e.Str("event", ev)
	}

	if id, ok := GetTaskID(ctx); ok {
		e.Int64("task_id", id)
	}
}
