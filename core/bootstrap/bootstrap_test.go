package bootstrap

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	coreconfig "github.com/m3rciful/ipbot/core/config"
	"github.com/m3rciful/ipbot/internal/storage"
)

func noLogger(*coreconfig.Config) error { return nil }

func TestRunOpensFileStore(t *testing.T) {
	cfg := &coreconfig.Config{}
	cfg.Storage.Driver = coreconfig.StorageFile
	cfg.Storage.Path = filepath.Join(t.TempDir(), "ips.json")

	res, err := Run(context.Background(), Options{Config: cfg, LoggerInit: noLogger})
	if err != nil {
		t.Fatal(err)
	}
	defer res.Store.Close()
	if _, ok := res.Store.(*storage.FileStore); !ok {
		t.Fatalf("store = %T", res.Store)
	}
}

func TestRunPropagatesErrors(t *testing.T) {
	if _, err := Run(context.Background(), Options{}); err == nil {
		t.Fatal("expected nil config error")
	}

	boom := errors.New("boom")
	_, err := Run(context.Background(), Options{
		Config:     &coreconfig.Config{},
		LoggerInit: func(*coreconfig.Config) error { return boom },
	})
	if !errors.Is(err, boom) {
		t.Fatalf("logger error = %v", err)
	}

	_, err = Run(context.Background(), Options{
		Config:     &coreconfig.Config{},
		LoggerInit: noLogger,
		OpenStore: func(context.Context, coreconfig.StorageConfig) (storage.Store, error) {
			return nil, boom
		},
	})
	if !errors.Is(err, boom) {
		t.Fatalf("storage error = %v", err)
	}
}
