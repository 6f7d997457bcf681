// Package pipeline drives the build, pack, select, push release sequence.
//
// The pipeline is strictly sequential and fail-fast: each step must complete
// before the next begins, and the first failure aborts the whole run. There
// is deliberately no retry and no partial recovery; a failed release is rerun
// by the operator after the underlying problem is fixed.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"git.home.luguber.info/inful/pkgship/internal/artifact"
	"git.home.luguber.info/inful/pkgship/internal/config"
	"git.home.luguber.info/inful/pkgship/internal/step"
)

// Selector picks the artifact produced by the pack step.
type Selector func(dir, ext string) (string, error)

// Publisher runs the release pipeline against an external toolchain.
type Publisher struct {
	cfg    *config.Config
	runner step.Runner
	sel    Selector
}

// New creates a Publisher using the given runner and the default
// newest-artifact selector.
func New(cfg *config.Config, runner step.Runner) *Publisher {
	return &Publisher{cfg: cfg, runner: runner, sel: artifact.SelectLatest}
}

// WithSelector overrides artifact selection.
func (p *Publisher) WithSelector(sel Selector) *Publisher {
	p.sel = sel
	return p
}

// BuildAndPack runs the build and pack steps, then selects the newest
// artifact from the configured package directory.
func (p *Publisher) BuildAndPack(ctx context.Context) (string, error) {
	slog.Info("Building project", "project", p.cfg.Project, "configuration", p.cfg.Configuration)
	if err := p.runner.Run(ctx, "build", "dotnet", "build", "-c", p.cfg.Configuration, p.cfg.Project); err != nil {
		return "", err
	}

	slog.Info("Packing project", "project", p.cfg.Project, "configuration", p.cfg.Configuration)
	if err := p.runner.Run(ctx, "pack", "dotnet", "pack", "-c", p.cfg.Configuration, p.cfg.Project); err != nil {
		return "", err
	}

	artifactPath, err := p.sel(p.cfg.Package.Directory, p.cfg.Package.Extension)
	if err != nil {
		return "", err
	}
	slog.Info("Selected artifact", "path", artifactPath)
	return artifactPath, nil
}

// Release runs the full pipeline: build, pack, artifact selection, push.
// It returns the published artifact path. The credential is checked before
// any external step runs.
func (p *Publisher) Release(ctx context.Context, key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", fmt.Errorf("%w: %s", config.ErrMissingCredential, p.cfg.Registry.KeyEnv)
	}

	artifactPath, err := p.BuildAndPack(ctx)
	if err != nil {
		return "", err
	}

	slog.Info("Pushing artifact",
		"artifact", artifactPath,
		"source", p.cfg.Registry.Source,
		"command", fmt.Sprintf("dotnet nuget push %s -k **** -s %s", artifactPath, p.cfg.Registry.Source))
	if err := p.runner.Run(ctx, "push", "dotnet", "nuget", "push", artifactPath, "-k", key, "-s", p.cfg.Registry.Source); err != nil {
		return artifactPath, err
	}

	slog.Info("Artifact published", "artifact", artifactPath, "source", p.cfg.Registry.Source)
	return artifactPath, nil
}

// ExitCode maps a pipeline failure to the process exit status: a failing
// external step exits with that step's own code, every other failure exits 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var stepErr *step.Error
	if errors.As(err, &stepErr) && stepErr.Code != 0 {
		return stepErr.Code
	}
	return 1
}
