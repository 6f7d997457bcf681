package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"git.home.luguber.info/inful/pkgship/internal/changelog"
	"git.home.luguber.info/inful/pkgship/internal/config"
	"git.home.luguber.info/inful/pkgship/internal/pipeline"
	"git.home.luguber.info/inful/pkgship/internal/repostate"
	"git.home.luguber.info/inful/pkgship/internal/step"
)

// ReleaseCmd implements the 'release' command.
type ReleaseCmd struct {
	AllowDirty bool `help:"Publish even if the git worktree has uncommitted changes"`
}

func (r *ReleaseCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// The credential check comes first: nothing external runs without it.
	key, err := cfg.ResolveCredential()
	if err != nil {
		return err
	}

	ctx := context.Background()

	summary := describeRepo(cfg, r.AllowDirty)
	if summary != nil && summary.Dirty && cfg.Release.RequireClean && !r.AllowDirty {
		return errWorktreeDirty
	}

	logReleaseNotes(cfg)

	var commit string
	if summary != nil {
		commit = summary.Commit
	}

	pub := pipeline.New(cfg, step.ExecRunner{})
	artifactPath, runErr := pub.Release(ctx, key)
	recordAttempt(ctx, cfg, attemptRecord(cfg, artifactPath, commit, runErr))
	if runErr != nil {
		return runErr
	}

	fmt.Printf("Published %s to %s\n", artifactPath, cfg.Registry.Source)
	return nil
}

// describeRepo summarizes the local repository for gating and bookkeeping.
// A missing repository is fine; other inspection failures are logged and
// treated as no information rather than blocking the release.
func describeRepo(cfg *config.Config, allowDirty bool) *repostate.Summary {
	summary, err := repostate.Describe(".")
	if err != nil {
		if !errors.Is(err, repostate.ErrNotARepository) {
			slog.Warn("Could not inspect git repository", "error", err)
		}
		return nil
	}
	slog.Info("Repository state", "commit", summary.Commit, "tag", summary.Tag, "dirty", summary.Dirty)
	if summary.Dirty && !cfg.Release.RequireClean && !allowDirty {
		slog.Warn("Publishing from a dirty worktree")
	}
	return summary
}

// logReleaseNotes surfaces the newest changelog section so the operator sees
// what is about to ship. Absence of a changelog is not an error.
func logReleaseNotes(cfg *config.Config) {
	data, err := os.ReadFile(cfg.Release.Changelog)
	if err != nil {
		return
	}
	section, err := changelog.Latest(data)
	if err != nil {
		slog.Debug("No release notes found in changelog", "path", cfg.Release.Changelog)
		return
	}
	slog.Info("Release notes", "version", section.Title)
}
