package main

import (
	"context"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/notewise/internal/config"
	"github.com/jask/notewise/internal/session"
	"github.com/jask/notewise/internal/tui"
)

func runTUI(ctx context.Context) error {
	e, err := openEnv(ctx, cfg)
	if err != nil {
		return err
	}
	defer e.Close()

	logger := slog.Default()
	nav := session.New(e.store, session.WithLogger(logger))
	nav.OnChange(func(from, to session.Screen) {
		logger.Info("screen", "from", from, "to", to)
	})

	app := tui.New(ctx, cfg, cfgFile, nav, e.services, tui.WithLogger(logger))
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))

	if err := config.Watch(cfgFile, func(c config.Config, err error) {
		if err != nil {
			logger.Warn("config reload", "err", err)
			return
		}
		p.Send(tui.ConfigMsg(c))
	}); err != nil {
		logger.Debug("config watch disabled", "err", err)
	}

	_, err = p.Run()
	return err
}
