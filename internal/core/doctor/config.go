package doctor

import (
	"context"
	"errors"

	"github.com/hay-kot/criterio"

	"github.com/hay-kot/tasklist/internal/core/config"
)

// ConfigCheck validates the loaded configuration and reports its warnings.
type ConfigCheck struct {
	cfg        *config.Config
	configPath string
	themes     []string
}

func NewConfigCheck(cfg *config.Config, configPath string, themes []string) *ConfigCheck {
	return &ConfigCheck{cfg: cfg, configPath: configPath, themes: themes}
}

func (c *ConfigCheck) Name() string {
	return "Configuration"
}

func (c *ConfigCheck) Run(_ context.Context) Result {
	result := Result{Name: c.Name()}

	err := c.cfg.ValidateDeep(c.configPath, c.themes)

	var fieldErrs criterio.FieldErrors
	switch {
	case err == nil:
		result.Items = append(result.Items, CheckItem{
			Label:  "config",
			Status: StatusPass,
			Detail: c.configPath,
		})
	case errors.As(err, &fieldErrs):
		for _, fe := range fieldErrs {
			result.Items = append(result.Items, CheckItem{
				Label:  fe.Field,
				Status: StatusFail,
				Detail: fe.Err.Error(),
			})
		}
	default:
		result.Items = append(result.Items, CheckItem{
			Label:  "config",
			Status: StatusFail,
			Detail: err.Error(),
		})
	}

	for _, w := range c.cfg.Warnings() {
		result.Items = append(result.Items, CheckItem{
			Label:  w.Item,
			Status: StatusWarn,
			Detail: w.Message,
		})
	}

	return result
}
