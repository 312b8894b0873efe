package bootstrap

import (
	"context"
	"fmt"

	coreconfig "github.com/m3rciful/ipbot/core/config"
	"github.com/m3rciful/ipbot/core/logger"
	"github.com/m3rciful/ipbot/internal/storage"
)

// Options control the bootstrap pipeline.
type Options struct {
	Config *coreconfig.Config

	LoggerInit func(*coreconfig.Config) error
	OpenStore  func(context.Context, coreconfig.StorageConfig) (storage.Store, error)
}

// Result exposes infrastructure initialized by the bootstrap pipeline.
type Result struct {
	Store storage.Store
}

// Run initializes the logger and opens the configured registry storage.
// For postgres the embedded migrations are applied on open.
func Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("bootstrap: nil config provided")
	}

	loggerInit := opts.LoggerInit
	if loggerInit == nil {
		loggerInit = logger.InitLogger
	}
	if err := loggerInit(opts.Config); err != nil {
		return nil, fmt.Errorf("bootstrap: logger init failed: %w", err)
	}

	open := opts.OpenStore
	if open == nil {
		open = storage.Open
	}
	store, err := open(ctx, opts.Config.Storage)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: storage initialization failed: %w", err)
	}
	return &Result{Store: store}, nil
}
