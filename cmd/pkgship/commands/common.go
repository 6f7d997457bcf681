package commands

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"git.home.luguber.info/inful/pkgship/internal/config"
	"git.home.luguber.info/inful/pkgship/internal/history"
	"git.home.luguber.info/inful/pkgship/internal/pipeline"
	"github.com/alecthomas/kong"
)

// Global context passed to subcommands if we need to share global state later.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"pkgship.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Release ReleaseCmd `cmd:"" help:"Build, pack, and publish the newest package artifact"`
	Pack    PackCmd    `cmd:"" help:"Build and pack without publishing; prints the artifact path"`
	Latest  LatestCmd  `cmd:"" help:"Print the newest package artifact without building"`
	Init    InitCmd    `cmd:"" help:"Initialize a new configuration file"`
	History HistoryCmd `cmd:"" help:"List recorded publish attempts"`
	Notes   NotesCmd   `cmd:"" help:"Print the newest changelog section"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// recordAttempt writes a publish attempt to the ledger. Ledger failures are
// logged and swallowed; bookkeeping never turns a successful release into a
// failed one.
func recordAttempt(ctx context.Context, cfg *config.Config, rec history.Record) {
	if cfg.History.Path == "" {
		return
	}
	store, err := history.Open(cfg.History.Path)
	if err != nil {
		slog.Warn("Could not open publish ledger", "path", cfg.History.Path, "error", err)
		return
	}
	defer func() {
		_ = store.Close()
	}()
	if err := store.Append(ctx, rec); err != nil {
		slog.Warn("Could not record publish attempt", "error", err)
	}
}

// attemptRecord builds the ledger entry for a finished pipeline run.
func attemptRecord(cfg *config.Config, artifactPath, commit string, runErr error) history.Record {
	rec := history.Record{
		Artifact: artifactPath,
		Source:   cfg.Registry.Source,
		Commit:   commit,
		Status:   history.StatusPublished,
	}
	if runErr != nil {
		rec.Status = history.StatusFailed
		rec.ExitCode = pipeline.ExitCode(runErr)
	}
	return rec
}

var errWorktreeDirty = errors.New("worktree has uncommitted changes (use --allow-dirty to override)")
