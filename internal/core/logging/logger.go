// Package logging holds the zerolog helpers shared by tasklist components.
package logging

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Component returns the global logger tagged with a component name under "cmp".
func Component(name string) zerolog.Logger {
	return log.With().Str("cmp", name).Logger()
}
