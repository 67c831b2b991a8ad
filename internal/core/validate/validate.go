// Package validate provides shared validation functions.
package validate

import (
	"errors"
	"strings"

	"github.com/hay-kot/criterio"
)

// ErrEmptyText is returned for task text that is empty after trimming.
var ErrEmptyText = errors.New("text is required")

// TaskText validates task text is non-empty after trimming whitespace.
func TaskText(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyText
	}
	return nil
}

// TaskTextField returns a criterio validator for task text.
func TaskTextField(field, text string) error {
	return criterio.Run(field, text, TaskText)
}
