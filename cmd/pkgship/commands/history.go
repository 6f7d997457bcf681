package commands

import (
	"context"
	"fmt"

	"git.home.luguber.info/inful/pkgship/internal/config"
	"git.home.luguber.info/inful/pkgship/internal/history"
)

// HistoryCmd implements the 'history' command.
type HistoryCmd struct {
	Limit int `short:"n" help:"Maximum number of attempts to show" default:"20"`
}

func (h *HistoryCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.History.Path == "" {
		return fmt.Errorf("publish ledger is disabled (history.path is empty)")
	}

	store, err := history.Open(cfg.History.Path)
	if err != nil {
		return fmt.Errorf("open publish ledger: %w", err)
	}
	defer func() {
		_ = store.Close()
	}()

	records, err := store.List(context.Background(), h.Limit)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("No publish attempts recorded")
		return nil
	}

	for _, rec := range records {
		line := fmt.Sprintf("%s  %-9s  %s", rec.CreatedAt.Format("2006-01-02 15:04:05"), rec.Status, rec.Artifact)
		if rec.Status == history.StatusFailed {
			line += fmt.Sprintf("  (exit %d)", rec.ExitCode)
		}
		fmt.Println(line)
	}
	return nil
}
