package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"weatherctl/internal/cache"
	"weatherctl/internal/config"
	"weatherctl/internal/location"
	"weatherctl/internal/provider"
	"weatherctl/internal/render"
	"weatherctl/internal/weather"
	"weatherctl/pkg/http/client"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath, cachePath string

	rootCmd := &cobra.Command{
		Use:           "weatherctl",
		Short:         "Fetch and display the current weather",
		Long:          "weatherctl resolves your location, fetches current weather from the configured provider, and caches the result on disk.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			env, err := config.LoadEnv()
			if err != nil {
				return err
			}
			initLogging(env.LogLevel)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(cmd.Context(), cmd.OutOrStdout(), configPath, cachePath)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", defaultConfigPath(), "path to the config file")
	rootCmd.PersistentFlags().StringVar(&cachePath, "cache", defaultCachePath(), "path to the cache file")

	clearCacheCmd := &cobra.Command{
		Use:   "clear-cache",
		Short: "Remove the on-disk weather cache",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cache.NewStore(cachePath, 0).Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Cache cleared")
			return nil
		},
	}

	rootCmd.AddCommand(clearCacheCmd)

	return rootCmd
}

func runFetch(ctx context.Context, out io.Writer, configPath, cachePath string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	env, err := config.LoadEnv()
	if err != nil {
		return err
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	httpClient := client.New(client.Options{Timeout: env.HTTPTimeout})

	prov, err := provider.New(cfg, httpClient)
	if err != nil {
		return err
	}

	svc := weather.NewService(
		cfg,
		location.NewResolver(httpClient),
		prov,
		cache.NewStore(cachePath, cfg.CachingDuration.Duration),
	)

	report, err := svc.Fetch(ctx)
	if err != nil {
		return err
	}

	render.Write(out, report, cfg, time.Now())
	return nil
}

func initLogging(levelStr string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(levelStr)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "weatherctl.toml"
	}
	return filepath.Join(dir, "weatherctl", "config.toml")
}

func defaultCachePath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "weatherctl-cache.json"
	}
	return filepath.Join(dir, "weatherctl", "cache.json")
}
