package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/tasklist/internal/core/config"
	"github.com/hay-kot/tasklist/internal/core/styles"
	"github.com/hay-kot/tasklist/pkg/iojson"
)

type ConfigValidateCmd struct {
	flags  *Flags
	format string
}

// NewConfigValidateCmd creates a new config validate command.
func NewConfigValidateCmd(flags *Flags) *ConfigValidateCmd {
	return &ConfigValidateCmd{flags: flags}
}

// Register adds the config validate command to the application.
func (cmd *ConfigValidateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:        "validate",
				Usage:       "Validate configuration file",
				UsageText:   "tasklist config validate [options]",
				Description: "Validates the configuration file, checking the storage backend, theme name, and file paths.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format (text, json)",
						Value:       "text",
						Destination: &cmd.format,
					},
				},
				Action: cmd.run,
			},
		},
	})

	return app
}

// validationError is one failed field in the JSON report.
type validationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (cmd *ConfigValidateCmd) run(_ context.Context, c *cli.Command) error {
	cfg := cmd.flags.Config
	errs := collectErrors(cfg.ValidateDeep(cmd.flags.ConfigPath, styles.ThemeNames()))
	warnings := cfg.Warnings()

	if cmd.format == "json" {
		out := struct {
			Valid    bool                       `json:"valid"`
			Errors   []validationError          `json:"errors,omitempty"`
			Warnings []config.ValidationWarning `json:"warnings,omitempty"`
		}{
			Valid:    len(errs) == 0,
			Errors:   errs,
			Warnings: warnings,
		}
		if err := iojson.WriteWith(c.Root().Writer, os.Stderr, out); err != nil {
			return err
		}
		if len(errs) > 0 {
			return cli.Exit("", 1)
		}
		return nil
	}

	w := c.Root().Writer
	for _, warn := range warnings {
		_, _ = fmt.Fprintf(w, "%s %s: %s\n", styles.WarningStyle.Render("●"), warn.Item, warn.Message)
	}
	for _, e := range errs {
		_, _ = fmt.Fprintf(w, "%s %s: %s\n", styles.ErrorStyle.Render("✘"), e.Field, e.Message)
	}

	if len(errs) == 0 {
		_, _ = fmt.Fprintf(w, "%s Configuration is valid\n", styles.SuccessStyle.Render("✔"))
		return nil
	}

	_, _ = fmt.Fprintf(w, "%d error(s) found\n", len(errs))
	return cli.Exit("", 1)
}

// collectErrors flattens criterio field errors; any other error becomes a
// single entry under "config".
func collectErrors(err error) []validationError {
	if err == nil {
		return nil
	}

	var fieldErrs criterio.FieldErrors
	if !errors.As(err, &fieldErrs) {
		return []validationError{{Field: "config", Message: err.Error()}}
	}

	out := make([]validationError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, validationError{Field: fe.Field, Message: fe.Err.Error()})
	}
	return out
}
