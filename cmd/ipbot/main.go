package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/m3rciful/ipbot/core/buildinfo"
	corecmd "github.com/m3rciful/ipbot/core/cmd"
	coreconfig "github.com/m3rciful/ipbot/core/config"
	"github.com/m3rciful/ipbot/core/logger"
	"github.com/m3rciful/ipbot/internal/app"
	"github.com/m3rciful/ipbot/internal/registry"
	"github.com/m3rciful/ipbot/internal/storage"
)

var configPath string

func main() {
	root := &cobra.Command{
		Use:           "ipbot",
		Short:         "Telegram bot that keeps a list of IP addresses",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          func(*cobra.Command, []string) error { return serve() },
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config.yaml (default: $CONFIG_PATH)")

	root.AddCommand(serveCmd(), listCmd(), versionCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serve() error {
	return corecmd.Run(corecmd.Options{
		ConfigPath:     configPath,
		Bootstrap:      app.Bootstrap,
		ShutdownLogger: logger.Shutdown,
	})
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the bot and the HTTP listing",
		RunE:  func(*cobra.Command, []string) error { return serve() },
	}
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the stored addresses, one per line",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := coreconfig.Load(corecmd.ResolveConfigPath(configPath, ""))
			if err != nil {
				return err
			}
			ctx := context.Background()
			store, err := storage.Open(ctx, cfg.Storage)
			if err != nil {
				return err
			}
			defer store.Close()

			for _, ip := range registry.Load(ctx, store).List() {
				fmt.Fprintln(cmd.OutOrStdout(), ip)
			}
			return nil
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), buildinfo.String())
		},
	}
}
