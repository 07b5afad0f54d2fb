package ui

import (
	"context"
	"io"
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/DaanHessen/cmmc-trail/internal/store"
	"github.com/DaanHessen/cmmc-trail/internal/text"
	"github.com/DaanHessen/cmmc-trail/internal/util"
)

// Run boots the TUI program and blocks until it exits. repo may be nil.
func Run(ctx context.Context, repo store.Repository, narrator text.Narrator, cfg util.Config) error {
	if cfg.Debug {
		f, err := tea.LogToFile(cfg.LogFile, "cmmc")
		if err != nil {
			return err
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}
	m := newModel(ctx, repo, narrator, cfg)
	program := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen())
	_, err := program.Run()
	return err
}
