package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/five82/standups/internal/clock"
	"github.com/five82/standups/internal/config"
	"github.com/five82/standups/internal/list"
	"github.com/five82/standups/internal/logging"
	"github.com/five82/standups/internal/mainloop"
	"github.com/five82/standups/internal/prefs"
	"github.com/five82/standups/internal/speech"
	"github.com/five82/standups/internal/standup"
	"github.com/five82/standups/internal/state"
	"github.com/five82/standups/internal/storage"
	"github.com/five82/standups/internal/ui"
)

// Options configure the standups application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/standups/prefs.toml
	Verbose    bool
	// Demo starts from the sample standup and keeps everything in memory.
	Demo bool
}

// Run boots the standups TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(logging.Options{File: cfg.LogFile, Level: cfg.LogLevel, Verbose: opts.Verbose})
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		logger.Warn("load prefs failed, using defaults", zap.Error(err))
	}

	gateway, closeGateway, err := openGateway(cfg, opts.Demo)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeGateway(); err != nil {
			logger.Warn("close storage failed", zap.Error(err))
		}
	}()

	logger.Info("standups starting",
		zap.String("storage", string(cfg.Storage)),
		zap.Bool("demo", opts.Demo),
		zap.Duration("save_debounce", cfg.SaveDebounce))

	loop := mainloop.New()
	controller := list.New(list.Deps{
		Store:        storage.NewStore(gateway),
		Clock:        clock.Real{},
		Speech:       speechClient(cfg, userPrefs, opts, logger),
		Dispatcher:   loop,
		Logger:       logger,
		Status:       &state.Store{},
		SaveDebounce: cfg.SaveDebounce,
		SettleDelay:  cfg.SettleDelay,
	})
	// The program has exited by the time this runs, so nothing else touches
	// the controller tree.
	defer controller.Close()

	return ui.Run(ui.Options{
		Context:   ctx,
		List:      controller,
		Loop:      loop,
		Logger:    logger,
		ThemeName: userPrefs.Palette,
		PrefsPath: opts.PrefsPath,
	})
}

// LoadStandups reads the persisted collection without starting the UI.
func LoadStandups(opts Options) ([]standup.Standup, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	gateway, closeGateway, err := openGateway(cfg, opts.Demo)
	if err != nil {
		return nil, err
	}
	defer func() { _ = closeGateway() }()
	return storage.NewStore(gateway).Load()
}

// LogFile returns the configured log path.
func LogFile(opts Options) (string, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return "", fmt.Errorf("load config: %w", err)
	}
	return cfg.LogFile, nil
}

func openGateway(cfg config.Config, demo bool) (storage.Gateway, func() error, error) {
	noop := func() error { return nil }
	if demo {
		data, err := storage.Encode([]standup.Standup{standup.Mock()})
		if err != nil {
			return nil, nil, fmt.Errorf("seed demo: %w", err)
		}
		return storage.NewMemory(data), noop, nil
	}

	switch cfg.Storage {
	case config.BackendBolt:
		db, err := storage.OpenBolt(cfg.StoragePath())
		if err != nil {
			return nil, nil, fmt.Errorf("open storage: %w", err)
		}
		return db, db.Close, nil
	default:
		return storage.Files{Dir: cfg.DataDir}, noop, nil
	}
}

// speechClient picks the transcription source. The answer to the permission
// prompt is remembered in prefs so it is only asked once.
func speechClient(cfg config.Config, p prefs.Prefs, opts Options, logger *zap.Logger) speech.Client {
	if opts.Demo {
		return &speech.Scripted{
			Status:    speech.Authorized,
			Snapshots: []string{standup.Mock().Meetings[0].Transcript},
			Hold:      true,
		}
	}

	var client speech.Client = speech.Unavailable{}
	if cfg.TranscriptFile != "" {
		client = &speech.FileTranscriber{Path: cfg.TranscriptFile, Logger: logger}
	}

	answer, err := speech.ParseAuthorization(p.Speech)
	if err != nil {
		logger.Warn("ignoring stored speech answer", zap.Error(err))
	}
	return speech.Remember(client, answer, func(a speech.Authorization) {
		err := prefs.Update(opts.PrefsPath, func(p *prefs.Prefs) { p.Speech = a.String() })
		if err != nil {
			logger.Warn("save speech answer failed", zap.Error(err))
		}
	})
}
