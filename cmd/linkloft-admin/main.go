package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"linkloft-admin/internal/config"
	"linkloft-admin/internal/core/bulk"
	"linkloft-admin/internal/infra/logx"
	"linkloft-admin/internal/lh"
	"linkloft-admin/internal/ui"
)

// Populated at build time via -ldflags; go install builds fall back to
// module metadata.
var version = "dev"

func build() string {
	if version != "dev" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		if mv := info.Main.Version; mv != "" && mv != "(devel)" {
			return mv
		}
	}
	return version
}

type flags struct {
	configPath string
	serverURL  string
	token      string
	logFile    string
	debug      bool
	ids        []string
}

func main() {
	ctx := context.Background()
	f := &flags{}

	app := &cli.Command{
		Name:    "linkloft-admin",
		Usage:   "Admin console for a Linkloft bookmark server",
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("LINKLOFT_CONFIG"),
				Value:       config.DefaultPath(),
				Destination: &f.configPath,
			},
			&cli.StringFlag{
				Name:        "server",
				Usage:       "Linkloft server URL (overrides config)",
				Destination: &f.serverURL,
			},
			&cli.StringFlag{
				Name:        "token",
				Usage:       "API token (overrides config)",
				Destination: &f.token,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "write logs to this file instead of discarding them",
				Sources:     cli.EnvVars("LINKLOFT_LOG_FILE"),
				Destination: &f.logFile,
			},
			&cli.BoolFlag{
				Name:        "debug",
				Usage:       "enable debug logging",
				Destination: &f.debug,
			},
		},
		Commands: []*cli.Command{
			consoleCmd(f),
			bulkCmd(f, bulk.ActionPublish, "publish marked bookmarks on the server"),
			bulkCmd(f, bulk.ActionUnpublish, "move bookmarks back to draft"),
			bulkCmd(f, bulk.ActionArchive, "archive bookmarks"),
		},
		// no subcommand opens the interactive console, like plain `linkloft-admin`
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() > 0 {
				return fmt.Errorf("unknown command %q, run 'linkloft-admin --help' for usage", c.Args().First())
			}
			return runConsole(ctx, f)
		},
	}

	if err := app.Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func consoleCmd(f *flags) *cli.Command {
	return &cli.Command{
		Name:   "console",
		Usage:  "open the interactive console (default)",
		Action: func(ctx context.Context, _ *cli.Command) error { return runConsole(ctx, f) },
	}
}

func runConsole(_ context.Context, f *flags) error {
	cfg, err := loadConfig(f)
	if err != nil {
		return err
	}

	logPath := f.logFile
	if logPath == "" {
		logPath = cfg.LogFile
	}
	closer, err := logx.Setup(logPath, f.debug)
	if err != nil {
		return fmt.Errorf("setup logging: %w", err)
	}
	if closer != nil {
		defer closer.Close()
	}

	hasRC := false
	if _, statErr := os.Stat(cfg.Path); statErr == nil {
		hasRC = true
	}

	p := tea.NewProgram(ui.InitialModel(cfg, hasRC), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run console: %w", err)
	}
	return nil
}

// bulkCmd builds one headless bulk command per action so scripts can drive
// the same stream the console uses.
func bulkCmd(f *flags, action bulk.Action, usage string) *cli.Command {
	return &cli.Command{
		Name:  string(action),
		Usage: usage,
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:        "id",
				Usage:       "bookmark id to include (repeatable)",
				Required:    true,
				Destination: &f.ids,
			},
		},
		Action: func(ctx context.Context, _ *cli.Command) error {
			return runBulk(ctx, f, action)
		},
	}
}

func runBulk(ctx context.Context, f *flags, action bulk.Action) error {
	cfg, err := loadConfig(f)
	if err != nil {
		return err
	}
	if cfg.ServerURL == "" || cfg.Token == "" {
		return fmt.Errorf("server URL and token required; set them in %s or via --server/--token", f.configPath)
	}
	logx.SetupConsole(f.debug)

	client := lh.New(cfg.ServerURL, cfg.Token)

	var lastDone int
	run, err := bulk.Execute(ctx, client.Bulk(), action, f.ids, func(r *bulk.Run) {
		if done := r.DoneCount(); done != lastDone {
			lastDone = done
			if total, ok := r.Total(); ok {
				log.Info().Int("done", done).Int("total", total).Msg("progress")
			}
		}
	})
	if err != nil {
		return err
	}

	switch run.State() {
	case bulk.StateCompleted:
		fmt.Printf("%s %d items", run.Action().Verb(), run.SuccessCount())
		if n := run.FailedCount(); n > 0 {
			fmt.Printf("; %d failed", n)
		}
		fmt.Println(".")
		for _, row := range run.Rows() {
			if row.Status == bulk.ItemFailed {
				fmt.Printf("  %s: %s\n", row.ID, row.Message)
			}
		}
		if run.FailedCount() > 0 {
			return cli.Exit("", 1)
		}
		return nil
	case bulk.StateCancelled:
		return cli.Exit(fmt.Sprintf("Bulk %s cancelled.", action), 130)
	default:
		return cli.Exit(fmt.Sprintf("Bulk %s failed: %s", action, run.ErrMessage()), 1)
	}
}

func loadConfig(f *flags) (config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return cfg, err
	}
	if f.serverURL != "" {
		cfg.ServerURL = f.serverURL
	}
	if f.token != "" {
		cfg.Token = f.token
	}
	return cfg, nil
}
