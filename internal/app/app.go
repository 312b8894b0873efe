// Package app assembles the registry, the conversation, the Telegram
// adapter and the HTTP listing into one runnable unit.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/m3rciful/ipbot/core/bootstrap"
	corecmd "github.com/m3rciful/ipbot/core/cmd"
	coreconfig "github.com/m3rciful/ipbot/core/config"
	"github.com/m3rciful/ipbot/core/logger"
	coretelegram "github.com/m3rciful/ipbot/core/telegram"
	tgsender "github.com/m3rciful/ipbot/core/telegram/sender"
	"github.com/m3rciful/ipbot/internal/bot"
	"github.com/m3rciful/ipbot/internal/httpapi"
	"github.com/m3rciful/ipbot/internal/registry"
	"github.com/m3rciful/ipbot/internal/session"
	"github.com/m3rciful/ipbot/internal/storage"
)

// App owns every long-lived component.
type App struct {
	cfg      *coreconfig.Config
	store    storage.Store
	registry *registry.Registry
	bot      *bot.Bot
	telegram *bot.Telegram
	http     *httpapi.Server
}

// New loads the registry from store and wires the components around it.
func New(ctx context.Context, cfg *coreconfig.Config, store storage.Store) *App {
	reg := registry.Load(ctx, store)
	b := bot.New(reg, session.NewManager(reg, cfg.Session.MaxAttempts))
	return &App{
		cfg:      cfg,
		store:    store,
		registry: reg,
		bot:      b,
		telegram: bot.NewTelegram(b),
		http:     httpapi.New(cfg.HTTP.ListenAddr(), reg),
	}
}

// Bootstrap initializes logging and storage, then builds the App.
func Bootstrap(ctx context.Context, cfg *coreconfig.Config) (corecmd.TelegramApp, error) {
	res, err := bootstrap.Run(ctx, bootstrap.Options{Config: cfg})
	if err != nil {
		return nil, err
	}
	return New(ctx, cfg, res.Store), nil
}

// Registry returns the IP registry.
func (a *App) Registry() *registry.Registry { return a.registry }

// TelegramRunOptions registers handlers and hooks the HTTP server into the bot lifecycle.
func (a *App) TelegramRunOptions() (coretelegram.RunOptions, error) {
	reg := coretelegram.NewRegistry()
	if err := a.telegram.Register(reg); err != nil {
		return coretelegram.RunOptions{}, fmt.Errorf("app: %w", err)
	}
	return coretelegram.RunOptions{
		Config:            a.cfg,
		Registry:          reg,
		DispatcherOptions: tgsender.Options{MaxRetries: 2},
		Middlewares:       coretelegram.DefaultMiddlewares(a.cfg, nil),
		Routes:            a.telegram.Routes(reg),
		OnStart: func(ctx context.Context, _ coretelegram.Runtime) error {
			if err := a.http.Start(); err != nil {
				return fmt.Errorf("app: %w", err)
			}
			logger.Info(ctx, "app", "registry.ready",
				slog.Int("entries", a.registry.Len()),
				slog.String("driver", a.cfg.Storage.Driver),
			)
			return nil
		},
		OnStop: func(ctx context.Context, _ coretelegram.Runtime) error {
			return a.http.Shutdown(ctx)
		},
	}, nil
}

// Close releases the storage backend.
func (a *App) Close() error {
	if a.store == nil {
		return nil
	}
	return a.store.Close()
}
