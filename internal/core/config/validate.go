package config

import (
	"fmt"
	"os"
	"slices"

	"github.com/hay-kot/criterio"
)

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// ValidateDeep performs comprehensive validation of the configuration including
// theme names and file accessibility. The configPath argument specifies the
// config file location to validate (empty string skips config file check).
// This calls Validate() first for basic structural validation, then adds I/O checks.
func (c *Config) ValidateDeep(configPath string, themes []string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		c.validateFileAccess(configPath),
		c.validateTUI(themes),
	)
}

// Warnings returns non-fatal configuration issues.
func (c *Config) Warnings() []ValidationWarning {
	var warnings []ValidationWarning

	if c.Storage.Watch != nil && *c.Storage.Watch && c.Storage.Backend != BackendFile {
		warnings = append(warnings, ValidationWarning{
			Category: "Storage",
			Item:     "watch",
			Message:  fmt.Sprintf("watch has no effect with the %s backend", c.Storage.Backend),
		})
	}

	if c.Storage.Backend == BackendMemory {
		warnings = append(warnings, ValidationWarning{
			Category: "Storage",
			Item:     "backend",
			Message:  "memory backend discards tasks on exit",
		})
	}

	return warnings
}

// validateFileAccess checks the config file and data directory.
func (c *Config) validateFileAccess(configPath string) error {
	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		criterio.Run("data_dir", c.DataDir, isDirectoryOrNotExist),
	)
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

// isDirectoryOrNotExist validates that a path is a directory or doesn't exist.
func isDirectoryOrNotExist(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil // will be created
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("exists but is not a directory")
	}
	return nil
}

func (c *Config) validateTUI(themes []string) error {
	var errs criterio.FieldErrorsBuilder
	if len(themes) > 0 && !slices.Contains(themes, c.TUI.Theme) {
		errs = errs.Append("tui.theme", fmt.Errorf("unknown theme %q, available: %v", c.TUI.Theme, themes))
	}
	return errs.ToError()
}
