package logging

import "context"

type contextKey string

const (
	eventKey  contextKey = "event"
	taskIDKey contextKey = "task_id"
)

// WithEvent adds the kind of event being handled to the context.
func WithEvent(ctx context.Context, event string) context.Context {
	return context.WithValue(ctx, eventKey, event)
}

// WithTaskID adds the id of the task an event targets to the context.
func WithTaskID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, taskIDKey, id)
}

// GetEvent retrieves the event kind from the context.
// Returns empty string if not present.
func GetEvent(ctx context.Context) string {
	if ev, ok := ctx.Value(eventKey).(string); ok {
		return ev
	}
	return ""
}

// GetTaskID retrieves the task id from the context.
func GetTaskID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(taskIDKey).(int64)
	return id, ok
}
