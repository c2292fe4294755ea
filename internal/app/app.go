package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/five82/avgang/internal/applog"
	"github.com/five82/avgang/internal/config"
	"github.com/five82/avgang/internal/desktop"
	"github.com/five82/avgang/internal/prefs"
	"github.com/five82/avgang/internal/state"
	"github.com/five82/avgang/internal/ui"
	"github.com/five82/avgang/internal/vasttrafik"
)

// Options configure the avgang application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/avgang/prefs.toml
}

// Run boots the departure widget until the user quits or the context is
// cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logFile, err := applog.Open(cfg.LogPath)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer func() { _ = logFile.Close() }()

	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	surface := desktop.Detect()
	defer func() { _ = surface.Close() }()
	if err := surface.PinToDesktopBackground(); err != nil {
		log.Printf("pin %s window failed: %v", surface.Name(), err)
	}

	log.Printf("watching stop area %s (%s) every %s on %s surface",
		cfg.StopAreaGID, cfg.StopName, cfg.UpdateInterval, surface.Name())

	store := &state.Store{}
	userPrefs := prefs.Load(opts.PrefsPath)

	return ui.Run(ui.Options{
		Context:   ctx,
		Refresher: NewRefresher(client, store, cfg.StopAreaGID),
		Store:     store,
		StopName:  cfg.StopName,
		Interval:  cfg.UpdateInterval,
		Location:  time.Local,
		ThemeName: userPrefs.Theme,
		PrefsPath: opts.PrefsPath,
	})
}

// Board is the result of a single refresh cycle.
type Board struct {
	StopName string
	Rows     []ui.Row
}

// Once runs one refresh cycle and returns the rendered rows. Unlike the
// widget, a failed cycle is returned as an error.
func Once(ctx context.Context, opts Options) (Board, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return Board{}, fmt.Errorf("load config: %w", err)
	}

	client, err := newClient(cfg)
	if err != nil {
		return Board{}, err
	}

	store := &state.Store{}
	if err := NewRefresher(client, store, cfg.StopAreaGID).Refresh(ctx); err != nil {
		return Board{}, err
	}

	snap := store.Snapshot()
	return Board{
		StopName: cfg.StopName,
		Rows:     ui.BuildRows(snap.Departures, time.Local),
	}, nil
}

func newClient(cfg config.Config) (*vasttrafik.Client, error) {
	client, err := vasttrafik.NewClient(cfg.Credentials, vasttrafik.Options{
		TokenURL: cfg.TokenURL,
		BaseURL:  cfg.APIBaseURL,
	})
	if err != nil {
		return nil, fmt.Errorf("init vasttrafik client: %w", err)
	}
	return client, nil
}
