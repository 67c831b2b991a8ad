package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/tasklist/internal/core/doctor"
	"github.com/hay-kot/tasklist/internal/core/styles"
	"github.com/hay-kot/tasklist/internal/tasklist"
	"github.com/hay-kot/tasklist/pkg/iojson"
)

type DoctorCmd struct {
	flags   *Flags
	app     *tasklist.App
	format  string
	autofix bool
}

func NewDoctorCmd(flags *Flags, app *tasklist.App) *DoctorCmd {
	return &DoctorCmd{flags: flags, app: app}
}

func (cmd *DoctorCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "doctor",
		Usage:       "Run health checks on config and stored tasks",
		UsageText:   "tasklist doctor [options]",
		Description: "Checks the configuration, the data directory, and the stored task list.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "format",
				Usage:       "output format (text, json)",
				Value:       "text",
				Destination: &cmd.format,
			},
			&cli.BoolFlag{
				Name:        "autofix",
				Usage:       "rewrite the stored list without the entries that fail to load",
				Destination: &cmd.autofix,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *DoctorCmd) checks() []doctor.Check {
	cfg := cmd.app.Config
	return []doctor.Check{
		doctor.NewConfigCheck(cfg, cmd.flags.ConfigPath, styles.ThemeNames()),
		doctor.NewDataDirCheck(cfg.DataDir),
		doctor.NewSlotCheck(cmd.app.Storage.KV, cmd.app.Tasks.Key(), cfg.Storage.Backend, tasklist.ValidateTasks),
	}
}

func (cmd *DoctorCmd) run(ctx context.Context, c *cli.Command) error {
	results := doctor.RunAll(ctx, cmd.checks())

	if cmd.autofix && doctor.CountFixable(results) > 0 {
		// The controller dropped invalid entries when it loaded; writing its
		// list back replaces what is stored.
		if err := cmd.app.Tasks.Persist(ctx); err != nil {
			return fmt.Errorf("autofix: %w", err)
		}
		results = doctor.RunAll(ctx, cmd.checks())
	}

	if cmd.format == "json" {
		return cmd.outputJSON(c, results)
	}

	return cmd.outputText(results)
}

type summaryJSON struct {
	Passed int `json:"passed"`
	Warned int `json:"warned"`
	Failed int `json:"failed"`
}

func (cmd *DoctorCmd) outputJSON(c *cli.Command, results []doctor.Result) error {
	passed, warned, failed := doctor.Summary(results)

	out := struct {
		Healthy bool            `json:"healthy"`
		Summary summaryJSON     `json:"summary"`
		Checks  []doctor.Result `json:"checks"`
	}{
		Healthy: failed == 0,
		Summary: summaryJSON{Passed: passed, Warned: warned, Failed: failed},
		Checks:  results,
	}

	if err := iojson.WriteWith(c.Root().Writer, os.Stderr, out); err != nil {
		return err
	}
	if failed > 0 {
		return cli.Exit("", 1)
	}
	return nil
}

func (cmd *DoctorCmd) outputText(results []doctor.Result) error {
	w := os.Stderr
	divider := styles.DividerStyle.Render(strings.Repeat("─", 40))

	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, styles.HeaderStyle.Render("tasklist doctor"))
	_, _ = fmt.Fprintln(w, divider)
	_, _ = fmt.Fprintln(w)

	for _, result := range results {
		_, _ = fmt.Fprintln(w, styles.HeaderStyle.Render(result.Name))

		for _, item := range result.Items {
			var detail string
			if item.Detail != "" {
				detail = " " + styles.MutedStyle.Render(item.Detail)
			}

			var icon string
			switch item.Status {
			case doctor.StatusPass:
				icon = styles.SuccessStyle.Render("✔")
			case doctor.StatusWarn:
				icon = styles.WarningStyle.Render("●")
			case doctor.StatusFail:
				icon = styles.ErrorStyle.Render("✘")
			}

			_, _ = fmt.Fprintf(w, "  %s %s%s\n", icon, item.Label, detail)
		}

		_, _ = fmt.Fprintln(w)
	}

	passed, warned, failed := doctor.Summary(results)
	_, _ = fmt.Fprintf(w, "%s  %s  %s\n",
		styles.SuccessStyle.Render(fmt.Sprintf("%d passed", passed)),
		styles.WarningStyle.Render(fmt.Sprintf("%d warnings", warned)),
		styles.ErrorStyle.Render(fmt.Sprintf("%d failed", failed)),
	)

	if !cmd.autofix {
		if fixable := doctor.CountFixable(results); fixable > 0 {
			_, _ = fmt.Fprintln(w)
			_, _ = fmt.Fprintln(w, styles.MutedStyle.Render(fmt.Sprintf("Run 'tasklist doctor --autofix' to fix %d issue(s)", fixable)))
		}
	}

	if failed > 0 {
		return cli.Exit("", 1)
	}
	return nil
}
