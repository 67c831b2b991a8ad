// Package task defines the task list domain model: tasks, view filters, and the
// remaining-count summary shown beneath the list.
package task

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidFilter is returned when a filter name is not one of the known filters.
var ErrInvalidFilter = errors.New("invalid filter")

// Task is a single to-do entry. The JSON shape is the persisted format.
type Task struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// Filter selects which tasks are visible. Filters are never persisted.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// Filters lists every filter in display order.
var Filters = []Filter{FilterAll, FilterActive, FilterCompleted}

// ParseFilter converts a filter name into a Filter.
func ParseFilter(name string) (Filter, error) {
	f := Filter(strings.ToLower(strings.TrimSpace(name)))
	if !f.IsValid() {
		return "", fmt.Errorf("%w %q: must be one of all, active, completed", ErrInvalidFilter, name)
	}
	return f, nil
}

// IsValid reports whether f is one of the known filters.
func (f Filter) IsValid() bool {
	switch f {
	case FilterAll, FilterActive, FilterCompleted:
		return true
	default:
		return false
	}
}

// Matches reports whether t is visible under f.
func (f Filter) Matches(t Task) bool {
	switch f {
	case FilterActive:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	default:
		return true
	}
}

// Next returns the filter after f, wrapping around.
func (f Filter) Next() Filter {
	for i, candidate := range Filters {
		if candidate == f {
			return Filters[(i+1)%len(Filters)]
		}
	}
	return FilterAll
}

// EmptyMessage is the placeholder shown when nothing matches f.
func (f Filter) EmptyMessage() string {
	switch f {
	case FilterActive:
		return "No active tasks!"
	case FilterCompleted:
		return "No completed tasks!"
	default:
		return "No tasks yet!"
	}
}

// Apply returns the tasks visible under f, preserving order.
func (f Filter) Apply(tasks []Task) []Task {
	visible := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Matches(t) {
			visible = append(visible, t)
		}
	}
	return visible
}

// CountActive returns the number of tasks that are not completed.
func CountActive(tasks []Task) int {
	n := 0
	for _, t := range tasks {
		if !t.Completed {
			n++
		}
	}
	return n
}

// RemainingText formats the remaining-count summary.
func RemainingText(n int) string {
	if n == 1 {
		return "1 task remaining"
	}
	return fmt.Sprintf("%d tasks remaining", n)
}

// IndexOf returns the index of the task with the given id, or -1.
func IndexOf(tasks []Task, id int64) int {
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// MaxID returns the largest id in tasks, or 0 for an empty list.
func MaxID(tasks []Task) int64 {
	var highest int64
	for _, t := range tasks {
		if t.ID > highest {
			highest = t.ID
		}
	}
	return highest
}
