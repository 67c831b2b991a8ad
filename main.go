package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/tasklist/internal/commands"
	"github.com/hay-kot/tasklist/internal/core/config"
	"github.com/hay-kot/tasklist/internal/core/logging"
	"github.com/hay-kot/tasklist/internal/core/styles"
	"github.com/hay-kot/tasklist/internal/data/storage"
	"github.com/hay-kot/tasklist/internal/tasklist"
	"github.com/hay-kot/tasklist/pkg/logutils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, init() populates
	// these from runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

func main() {
	ctx := context.Background()

	var (
		logCloser func()
		store     *storage.Storage
		app       = &tasklist.App{}
	)

	flags := &commands.Flags{}

	root := commands.NewRoot(flags, app)
	root.Version = build()
	root.Before = func(ctx context.Context, c *cli.Command) (context.Context, error) {
		cfg, err := config.Load(flags.ConfigPath, flags.DataDir)
		if err != nil {
			return ctx, fmt.Errorf("load config: %w", err)
		}
		flags.Config = cfg

		// Always log to a file; the TUI owns the terminal.
		logFile := flags.LogFile
		if logFile == "" {
			logFile = cfg.LogFile()
		}

		logger, closer, err := logutils.New(flags.LogLevel, logFile)
		if err != nil {
			return ctx, fmt.Errorf("setup logger: %w", err)
		}
		log.Logger = logger
		logCloser = closer

		if palette, ok := styles.GetPalette(cfg.TUI.Theme); ok {
			styles.SetTheme(palette)
		} else {
			log.Warn().Str("theme", cfg.TUI.Theme).Msg("unknown theme, using default")
		}

		store, err = storage.Open(ctx, cfg, logging.Component("storage"), tasklist.StorageKey())
		if err != nil {
			return ctx, fmt.Errorf("open storage: %w", err)
		}

		ctl := tasklist.New(store.KV)
		ctl.Initialize(ctx)

		// Populate the pre-allocated App struct (commands already hold a pointer to it)
		*app = *tasklist.NewApp(cfg, store, ctl)

		return ctx, nil
	}
	root.After = func(ctx context.Context, c *cli.Command) error {
		if store != nil {
			if err := store.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close storage")
				return err
			}
		}

		if logCloser != nil {
			logCloser()
		}
		return nil
	}

	exitCode := 0
	if err := root.Run(ctx, os.Args); err != nil {
		fmt.Println()
		fmt.Println(err.Error())
		exitCode = 1
	}

	os.Exit(exitCode)
}
