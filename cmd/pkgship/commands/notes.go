package commands

import (
	"fmt"
	"os"

	"git.home.luguber.info/inful/pkgship/internal/changelog"
	"git.home.luguber.info/inful/pkgship/internal/config"
)

// NotesCmd implements the 'notes' command.
type NotesCmd struct{}

func (n *NotesCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	data, err := os.ReadFile(cfg.Release.Changelog)
	if err != nil {
		return fmt.Errorf("read changelog: %w", err)
	}

	section, err := changelog.Latest(data)
	if err != nil {
		return err
	}

	fmt.Println(section.Title)
	if section.Body != "" {
		fmt.Println()
		fmt.Println(section.Body)
	}
	return nil
}
