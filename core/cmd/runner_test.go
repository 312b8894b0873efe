package cmd

import (
	"context"
	"errors"
	"testing"

	coreconfig "github.com/m3rciful/ipbot/core/config"
	coretelegram "github.com/m3rciful/ipbot/core/telegram"
)

type fakeApp struct {
	closed  bool
	started bool
	stopped bool
}

func (f *fakeApp) TelegramRunOptions() (coretelegram.RunOptions, error) {
	return coretelegram.RunOptions{
		OnStart: func(context.Context, coretelegram.Runtime) error { f.started = true; return nil },
		OnStop:  func(context.Context, coretelegram.Runtime) error { f.stopped = true; return nil },
	}, nil
}

func (f *fakeApp) Close() error {
	f.closed = true
	return nil
}

func TestRunWiresLifecycle(t *testing.T) {
	app := &fakeApp{}
	var gotPath string
	err := Run(Options{
		ConfigPath: "custom.yaml",
		LoadConfig: func(path string) (*coreconfig.Config, error) {
			gotPath = path
			return &coreconfig.Config{}, nil
		},
		Bootstrap: func(context.Context, *coreconfig.Config) (TelegramApp, error) {
			return app, nil
		},
		ShutdownLogger: func() error { return nil },
		RunTelegram: func(ctx context.Context, opts coretelegram.RunOptions) error {
			if err := opts.OnStart(ctx, coretelegram.Runtime{}); err != nil {
				return err
			}
			return opts.OnStop(ctx, coretelegram.Runtime{})
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if gotPath != "custom.yaml" {
		t.Fatalf("config path = %q", gotPath)
	}
	if !app.started || !app.stopped || !app.closed {
		t.Fatalf("lifecycle = %+v", app)
	}
}

func TestRunConfigError(t *testing.T) {
	boom := errors.New("boom")
	err := Run(Options{
		LoadConfig: func(string) (*coreconfig.Config, error) { return nil, boom },
		Bootstrap:  func(context.Context, *coreconfig.Config) (TelegramApp, error) { return nil, nil },
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
}

func TestResolveConfigPath(t *testing.T) {
	t.Setenv("IPBOT_TEST_CONFIG", "from-env.yaml")
	if got := ResolveConfigPath("", "IPBOT_TEST_CONFIG"); got != "from-env.yaml" {
		t.Fatalf("env path = %q", got)
	}
	if got := ResolveConfigPath("flag.yaml", "IPBOT_TEST_CONFIG"); got != "flag.yaml" {
		t.Fatalf("flag path = %q", got)
	}
}
