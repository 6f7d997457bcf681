package commands

import (
	"fmt"

	"git.home.luguber.info/inful/pkgship/internal/artifact"
	"git.home.luguber.info/inful/pkgship/internal/config"
)

// LatestCmd implements the 'latest' command: artifact selection only.
type LatestCmd struct{}

func (l *LatestCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	path, err := artifact.SelectLatest(cfg.Package.Directory, cfg.Package.Extension)
	if err != nil {
		return err
	}

	fmt.Println(path)
	return nil
}
