package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	zlog "github.com/rs/zerolog/log"

	"github.com/tuneflow/tuneflow/internal/artwork"
	"github.com/tuneflow/tuneflow/internal/catalog"
	"github.com/tuneflow/tuneflow/internal/collections"
	"github.com/tuneflow/tuneflow/internal/config"
	"github.com/tuneflow/tuneflow/internal/device"
	"github.com/tuneflow/tuneflow/internal/errmsg"
	"github.com/tuneflow/tuneflow/internal/logger"
	"github.com/tuneflow/tuneflow/internal/mpris"
	"github.com/tuneflow/tuneflow/internal/notify"
	"github.com/tuneflow/tuneflow/internal/session"
	"github.com/tuneflow/tuneflow/internal/stderr"
	"github.com/tuneflow/tuneflow/internal/store"
	"github.com/tuneflow/tuneflow/internal/suggest"
	"github.com/tuneflow/tuneflow/internal/ui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, errmsg.Format(errmsg.OpInitialize, err))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := logger.Init(logger.Config(cfg.Log)); err != nil {
		return err
	}

	if err := stderr.Start(); err != nil {
		zlog.Warn().Err(err).Msg("stderr capture unavailable")
	}
	defer stderr.Stop()

	st, err := store.Open()
	if err != nil {
		return fmt.Errorf("open state database: %w", err)
	}
	defer st.Close()

	cat := catalog.Load(cfg.CatalogPath)
	cols := collections.New(st)

	dev := device.NewSpeaker()
	defer dev.Close()

	sess := session.New(cat, cols, dev, st)
	sug := suggest.New(cfg.Suggest.Endpoint, cfg.Suggest.APIKey, cfg.Suggest.Model)
	if !cfg.HasSuggestConfig() {
		zlog.Info().Msg("suggestion service not configured")
	}
	art := artwork.NewResolver()

	transport := ui.NewRemoteTransport()
	remote, err := mpris.New(transport)
	if err != nil {
		zlog.Warn().Err(err).Msg("desktop media controls unavailable")
		remote = nil
	} else {
		defer remote.Close()
	}

	var publisher ui.Publisher
	if remote != nil {
		publisher = remote
	}

	notifier, err := notify.New()
	if err != nil {
		zlog.Warn().Err(err).Msg("desktop notifications unavailable")
		notifier = nil
	}

	model := ui.New(sess, cat, cols, dev, sug, art, publisher, notifier)
	program := tea.NewProgram(model, tea.WithAltScreen())
	transport.Attach(program)

	zlog.Info().Int("tracks", cat.Len()).Msg("starting")

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}
