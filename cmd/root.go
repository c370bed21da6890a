package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Uraniumking007/frametracking/internal/cache"
	"github.com/Uraniumking007/frametracking/internal/config"
	"github.com/Uraniumking007/frametracking/internal/feature"
	"github.com/Uraniumking007/frametracking/internal/fetch"
	"github.com/Uraniumking007/frametracking/internal/resolve"
	"github.com/Uraniumking007/frametracking/internal/worldstate"
)

var (
	configPath string
	verbose    bool
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "frametracking",
	Short: "Resolve and serve live Warframe world-state data",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.toml", "Path to configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
}

func Execute() error {
	return rootCmd.Execute()
}

// newFeatureService wires the full resolution stack from the loaded config.
func newFeatureService() *feature.Service {
	client := fetch.New(cfg.Fetch.RateLimit, fetch.RetryPolicy{
		MaxRetries: cfg.Fetch.MaxRetries,
		BaseDelay:  time.Duration(cfg.Fetch.BaseRetryDelayMS) * time.Millisecond,
		Retryable:  fetch.DefaultRetryable,
	}, cfg.Upstream.UserAgent)

	caches := cache.NewService(cache.Options{
		WorldStateTTL: time.Duration(cfg.Cache.WorldStateTTLSeconds) * time.Second,
		RotationTTL:   time.Duration(cfg.Cache.RotationTTLSeconds) * time.Second,
	})

	world := worldstate.NewFetcher(client, cfg.Upstream.WorldStateURL, cfg.Upstream.WorldStateMirrorURL,
		caches, time.Duration(cfg.Cache.WorldStateTTLSeconds)*time.Second)

	return feature.NewService(
		world,
		resolve.NewNodeResolver(),
		resolve.NewItemResolver(caches),
		resolve.NewDictResolver(client, cfg.Upstream.DictPrimaryURL, cfg.Upstream.DictFallbackURL),
		resolve.NewFactionResolver(client, cfg.Upstream.FactionsURL, cfg.Upstream.RegionsURL),
		client,
		feature.FeedURLs{
			Arbitration: cfg.Upstream.ArbitrationFeedURL,
			Incursions:  cfg.Upstream.IncursionFeedURL,
			BountyCycle: cfg.Upstream.BountyCycleURL,
		},
		caches,
	)
}
