// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/jeranaias/saveit/internal/commands"
	"github.com/jeranaias/saveit/internal/config"
	"github.com/jeranaias/saveit/internal/logging"
	"github.com/jeranaias/saveit/internal/storage"
	"github.com/jeranaias/saveit/internal/suggestion"
)

// =============================================================================
// APPLICATION
// =============================================================================

// Options are the global flags.
type Options struct {
	ConfigPath string
	DataPath   string
	Verbose    bool
}

// App wires configuration, storage and the command language together. Every
// front end runs against one App.
type App struct {
	Config    *config.Config
	Logger    *zap.Logger
	Store     *storage.IssueStore
	Registry  *commands.Registry
	Parser    *commands.Parser
	Completer *commands.Completer

	configPath string
	env        *commands.Env

	mu sync.Mutex // guards env and Config against reloads
}

// NewApp loads the configuration and opens the issue database.
func NewApp(ctx context.Context, opts Options) (*App, error) {
	cfg, configPath, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if opts.DataPath != "" {
		cfg.Data.Path = opts.DataPath
	}

	logger, err := logging.New(cfg, opts.Verbose)
	if err != nil {
		return nil, err
	}

	dataPath, err := cfg.DataPath()
	if err != nil {
		return nil, err
	}
	store, err := storage.Open(dataPath, logger)
	if err != nil {
		return nil, err
	}
	if cfg.Data.SampleOnEmpty {
		if _, err := store.SeedSamples(ctx); err != nil {
			store.Close()
			return nil, WrapError(err, "seeding sample issues")
		}
	}

	sortType, err := cfg.SortType()
	if err != nil {
		store.Close()
		return nil, err
	}
	store.SetSortType(sortType)

	registry := commands.NewRegistry()
	env := &commands.Env{
		Store:       store,
		Registry:    registry,
		DefaultSort: sortType,
		Logger:      logger,
	}

	app := &App{
		Config:     cfg,
		Logger:     logger,
		Store:      store,
		Registry:   registry,
		Parser:     commands.NewParser(registry, env),
		configPath: configPath,
		env:        env,
	}

	engineCfg, err := app.suggestionConfig(cfg)
	if err != nil {
		store.Close()
		return nil, err
	}
	app.Completer, err = commands.NewCompleter(registry, store, engineCfg)
	if err != nil {
		store.Close()
		return nil, err
	}

	logger.Info("saveit started",
		zap.String("data", dataPath),
		zap.String("config", configPath),
		zap.String("sort", sortType.String()))
	return app, nil
}

// loadConfig loads path, or the default locations when path is empty. It
// returns the file that should be watched for changes.
func loadConfig(path string) (*config.Config, string, error) {
	if path != "" {
		cfg, err := config.LoadFromPath(path)
		return cfg, path, err
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, "", err
	}
	watched, err := config.Locate()
	if err != nil {
		watched = ""
	}
	return cfg, watched, nil
}

func (a *App) suggestionConfig(cfg *config.Config) (suggestion.Config, error) {
	kinds, err := cfg.SuggestionKinds()
	if err != nil {
		return suggestion.Config{}, err
	}
	return suggestion.Config{
		Kinds:      kinds,
		MaxResults: cfg.Suggestion.MaxResults,
		Logger:     a.Logger,
	}, nil
}

// Apply switches to a reloaded configuration. Only the settings that can
// change while running are taken over: suggestion kinds and limit, the
// default sort and the display options.
func (a *App) Apply(cfg *config.Config) error {
	engineCfg, err := a.suggestionConfig(cfg)
	if err != nil {
		return err
	}
	sortType, err := cfg.SortType()
	if err != nil {
		return err
	}
	if err := a.Completer.Reconfigure(a.Registry, engineCfg); err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.env.DefaultSort = sortType
	a.Config.List = cfg.List
	a.Config.Suggestion = cfg.Suggestion
	a.Config.UI = cfg.UI
	a.Logger.Info("configuration reloaded",
		zap.Strings("suggestions", cfg.Suggestion.Enabled),
		zap.String("sort", sortType.String()))
	return nil
}

// WatchConfig follows the config file until ctx is done. Failed reloads are
// logged and the running configuration is kept.
func (a *App) WatchConfig(ctx context.Context, onApplied func()) {
	if a.configPath == "" {
		return
	}
	err := config.Watch(ctx, a.configPath, func(cfg *config.Config, err error) {
		if err == nil {
			err = a.Apply(cfg)
		}
		if err != nil {
			a.Logger.Warn("ignoring config change", zap.Error(err))
			return
		}
		if onApplied != nil {
			onApplied()
		}
	})
	if err != nil {
		a.Logger.Debug("config watch stopped", zap.Error(err))
	}
}

// Execute runs one command line.
func (a *App) Execute(ctx context.Context, line string) (commands.Result, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.Parser.Execute(ctx, line)
}

// Complete returns the suggestions for line at caret.
func (a *App) Complete(line string, caret int) (suggestion.Result, error) {
	return a.Completer.Complete(line, caret)
}

// UI returns the current display settings.
func (a *App) UI() config.UIConfig {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.Config.UI
}

// Close releases the database and flushes the log.
func (a *App) Close() error {
	_ = a.Logger.Sync()
	if err := a.Store.Close(); err != nil {
		return fmt.Errorf("closing issue database: %w", err)
	}
	return nil
}
