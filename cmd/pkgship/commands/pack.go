package commands

import (
	"context"
	"fmt"

	"git.home.luguber.info/inful/pkgship/internal/config"
	"git.home.luguber.info/inful/pkgship/internal/pipeline"
	"git.home.luguber.info/inful/pkgship/internal/step"
)

// PackCmd implements the 'pack' command: build and pack without publishing.
type PackCmd struct{}

func (p *PackCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	pub := pipeline.New(cfg, step.ExecRunner{})
	artifactPath, err := pub.BuildAndPack(context.Background())
	if err != nil {
		return err
	}

	fmt.Println(artifactPath)
	return nil
}
