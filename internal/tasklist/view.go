package tasklist

import "github.com/hay-kot/tasklist/internal/core/task"

// Row is one visible task.
type Row struct {
	ID        int64
	Text      string
	Completed bool
	Editing   bool
}

// View is the renderable state: the rows visible under the active filter (or
// a placeholder when none are) and the remaining-count summary.
type View struct {
	Filter         task.Filter
	Rows           []Row
	Placeholder    string
	RemainingCount int
	Remaining      string
}

// Empty reports whether the view shows the placeholder instead of rows.
func (v View) Empty() bool {
	return len(v.Rows) == 0
}

// Render builds the view for the current state. It has no side effects.
func (c *Controller) Render() View {
	editingID, _, editing := c.Editing()

	visible := c.filter.Apply(c.tasks)
	rows := make([]Row, 0, len(visible))
	for _, t := range visible {
		rows = append(rows, Row{
			ID:        t.ID,
			Text:      t.Text,
			Completed: t.Completed,
			Editing:   editing && t.ID == editingID,
		})
	}

	remaining := c.RemainingCount()
	v := View{
		Filter:         c.filter,
		Rows:           rows,
		RemainingCount: remaining,
		Remaining:      task.RemainingText(remaining),
	}
	if len(rows) == 0 {
		v.Placeholder = c.filter.EmptyMessage()
	}
	return v
}
