package cli

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/contre95/lyricfetch/src/features/config"
	"github.com/contre95/lyricfetch/src/features/logging"
	"github.com/contre95/lyricfetch/src/features/resolving"
	"github.com/contre95/lyricfetch/src/features/scanning"
	"github.com/contre95/lyricfetch/src/features/sidecar"
	"github.com/contre95/lyricfetch/src/infra/providers"
	"github.com/contre95/lyricfetch/src/infra/tag"
)

var (
	cfgFile  string
	delay    float64
	watch    bool
	logLevel string

	cfg *config.Manager
)

var rootCmd = &cobra.Command{
	Use:   "lyricfetch <directory>",
	Short: "Fetch lyrics for the audio files in a directory",
	Long: `Lyricfetch recursively scans a directory for audio files, reads their
artist/title tags and fetches lyrics from multiple providers (LRCLIB,
ChartLyrics, lyrics.ovh). Synced lyrics are saved as .lrc sidecar files,
plain text as .txt. Existing synced lyrics are never refetched; plain
lyrics are upgraded in place when a synced version turns up.`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context(), args[0])
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (optional)")
	rootCmd.Flags().Float64VarP(&delay, "delay", "d", 2.0, "delay between API requests in seconds")
	rootCmd.Flags().BoolVarP(&watch, "watch", "w", false, "keep watching the directory for new files")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
}

func initConfig(cmd *cobra.Command) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Flags beat the config file when set explicitly.
	conf := cfg.Get()
	if cmd.Flags().Changed("delay") {
		if delay < 0 {
			return fmt.Errorf("--delay must be >= 0, got %v", delay)
		}
		conf.Scan.Delay = delay
	}
	if cmd.Flags().Changed("watch") {
		conf.Scan.Watch = watch
	}
	if logLevel != "" {
		conf.Logger.Level = logLevel
	}
	cfg.Update(conf)

	logger := logging.SetupLogger(cfg)
	slog.SetDefault(logger)
	return nil
}

func run(ctx context.Context, root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("cannot access directory %s: %w", root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", root)
	}

	conf := cfg.Get()

	// One HTTP client shared by every provider, for connection reuse only.
	client := &http.Client{}
	userAgent := conf.Network.UserAgent
	timeout := time.Duration(conf.Network.TimeoutSeconds * float64(time.Second))

	ovh := providers.NewLyricsOvhProvider(conf.ProviderEnabled("lyricsovh"), client, userAgent, timeout)
	chain := resolving.NewChain([]resolving.LyricsProvider{
		providers.NewLRCLibProvider(conf.ProviderEnabled("lrclib"), client, userAgent, timeout),
		providers.NewChartLyricsProvider(conf.ProviderEnabled("chartlyrics"), client, userAgent, timeout),
		ovh,
		providers.NewAllOriginsProvider(conf.ProviderEnabled("allorigins"), client, userAgent, timeout, ovh),
	})

	scanner := scanning.NewService(tag.NewTagReader(), chain, sidecar.NewStore(), cfg)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	if _, err := scanner.Scan(ctx, root); err != nil && ctx.Err() == nil {
		return err
	}

	if conf.Scan.Watch && ctx.Err() == nil {
		return scanner.Watch(ctx, root)
	}
	return nil
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
