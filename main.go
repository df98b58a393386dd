// Package main provides the entry point for the samplecask CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	gap "github.com/muesli/go-app-paths"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/samplecask/samplecask/internal/manifest"
	"github.com/samplecask/samplecask/pkg/samples"
)

var (
	// Version as provided by goreleaser.
	Version = ""
	// CommitSHA as provided by goreleaser.
	CommitSHA = ""

	configFile string
	debug      bool
	formats    string
	sampleID   string

	rootCmd = &cobra.Command{
		Use:           "samplecask",
		Short:         "Resolve, preload and play CDN-hosted audio sample packs",
		SilenceErrors: false,
		SilenceUsage:  true,
		PersistentPreRun: func(*cobra.Command, []string) {
			if debug || os.Getenv("SAMPLECASK_DEBUG") != "" {
				log.SetLevel(log.DebugLevel)
			}
		},
	}

	resolveCmd = &cobra.Command{
		Use:   "resolve DIRECTORY FILE",
		Short: "Resolve a sample to a playable URL",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			loader, err := newLoader()
			if err != nil {
				return err
			}
			defer loader.Close()

			fmt.Println(loader.Resolve(cmd.Context(), args[0], args[1]))
			return nil
		},
	}

	decodeCmd = &cobra.Command{
		Use:   "decode DIRECTORY FILE",
		Short: "Resolve and decode a sample, printing buffer details",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			loader, err := newLoader()
			if err != nil {
				return err
			}
			defer loader.Close()

			id := sampleID
			if id == "" {
				id = args[0] + "/" + args[1]
			}

			buf, err := loader.Predecode(cmd.Context(), args[0], args[1], id)
			if err != nil {
				return err
			}

			fmt.Printf("id:          %s\n", id)
			fmt.Printf("format:      %s\n", buf.SourceFormat)
			fmt.Printf("sample rate: %d Hz\n", buf.SampleRate())
			fmt.Printf("channels:    %d\n", buf.Channels())
			fmt.Printf("duration:    %s\n", buf.Duration().Round(time.Millisecond))
			fmt.Printf("pcm size:    %s\n", humanize.Bytes(uint64(buf.SizeBytes())))
			return nil
		},
	}

	preloadCmd = &cobra.Command{
		Use:   "preload MANIFEST",
		Short: "Sequentially resolve and pre-decode every sample in a manifest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := manifest.Load(args[0])
			if err != nil {
				return err
			}

			loader, err := newLoader()
			if err != nil {
				return err
			}
			defer loader.Close()

			start := time.Now()
			err = loader.PreloadAll(cmd.Context(), m.Samples, func(done, total int) {
				log.Info("preloaded", "done", done, "total", total)
			})
			if err != nil {
				return err
			}

			var decoded int64
			for _, s := range m.Samples {
				if s.ID == "" {
					continue
				}
				if buf, ok := loader.Dispatcher().Cached(s.ID); ok {
					decoded += buf.SizeBytes()
				}
			}
			log.Info("preload complete",
				"samples", len(m.Samples),
				"decoded", humanize.Bytes(uint64(decoded)),
				"elapsed", time.Since(start).Round(time.Millisecond))
			return nil
		},
	}

	playCmd = &cobra.Command{
		Use:   "play DIRECTORY FILE",
		Short: "Resolve, decode and play a sample",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			audio, err := samples.NewOtoAudioContext()
			if err != nil {
				return fmt.Errorf("unable to initialize audio: %w", err)
			}
			defer audio.Close()

			loader, err := newLoader(samples.WithAudioContext(audio))
			if err != nil {
				return err
			}
			defer loader.Close()

			id := sampleID
			if id == "" {
				id = args[0] + "/" + args[1]
			}

			handle := loader.NewHandle(cmd.Context(), args[0], args[1], id)
			if err := handle.Play(cmd.Context()); err != nil {
				return err
			}
			defer handle.Close()

			for handle.IsPlaying() {
				time.Sleep(50 * time.Millisecond)
			}
			return nil
		},
	}
)

// newLoader builds a loader from the merged config file, environment and
// flag settings.
func newLoader(opts ...samples.LoaderOption) (*samples.Loader, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return samples.NewLoader(cfg, opts...)
}

// loadConfig merges, in increasing precedence: library defaults, the YAML
// config file, SAMPLECASK_* environment variables, and flags.
func loadConfig() (samples.Config, error) {
	cfg, err := env.ParseAs[samples.Config]()
	if err != nil {
		return cfg, fmt.Errorf("error parsing environment: %w", err)
	}
	if len(cfg.FormatPreference) == 0 {
		cfg.FormatPreference = samples.DefaultConfig().FormatPreference
	}

	if viper.IsSet("username") {
		cfg.Username = viper.GetString("username")
	}
	if viper.IsSet("repo") {
		cfg.Repo = viper.GetString("repo")
	}
	if viper.IsSet("release_tag") {
		cfg.ReleaseTag = viper.GetString("release_tag")
	}
	if viper.IsSet("cdn_host") {
		cfg.CDNHost = viper.GetString("cdn_host")
	}
	if viper.IsSet("use_jsdelivr") {
		cfg.UseJsDelivr = viper.GetBool("use_jsdelivr")
	}
	if viper.IsSet("local_base_path") {
		cfg.LocalBasePath = viper.GetString("local_base_path")
	}
	if viper.IsSet("use_progressive_loading") {
		cfg.UseProgressiveLoading = viper.GetBool("use_progressive_loading")
	}
	if viper.IsSet("use_worker_decoding") {
		cfg.UseWorkerDecoding = viper.GetBool("use_worker_decoding")
	}
	if viper.IsSet("fetch_cache_bytes") {
		cfg.FetchCacheBytes = viper.GetInt64("fetch_cache_bytes")
	}
	if viper.IsSet("format_preference") {
		cfg.FormatPreference = nil
		for _, s := range viper.GetStringSlice("format_preference") {
			f, err := samples.ParseFormat(s)
			if err != nil {
				return cfg, err
			}
			cfg.FormatPreference = append(cfg.FormatPreference, f)
		}
	}

	// Flags win over everything.
	if formats != "" {
		cfg.FormatPreference = nil
		for _, s := range strings.Split(formats, ",") {
			f, err := samples.ParseFormat(s)
			if err != nil {
				return cfg, err
			}
			cfg.FormatPreference = append(cfg.FormatPreference, f)
		}
	}

	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	tryLoadConfigFromDefaultPlaces()

	if len(CommitSHA) >= 7 {
		vt := rootCmd.VersionTemplate()
		rootCmd.SetVersionTemplate(vt[:len(vt)-1] + " (" + CommitSHA[0:7] + ")\n")
	}
	if Version == "" {
		Version = "unknown (built from source)"
	}
	rootCmd.Version = Version
	rootCmd.InitDefaultCompletionCmd()

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", fmt.Sprintf("config file (default %s)", viper.GetViper().ConfigFileUsed()))
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&formats, "formats", "", "comma-separated format preference (e.g. opus,mp3,flac)")
	decodeCmd.Flags().StringVar(&sampleID, "id", "", "sample id for the decoded-buffer cache (default DIRECTORY/FILE)")
	playCmd.Flags().StringVar(&sampleID, "id", "", "sample id for the decoded-buffer cache (default DIRECTORY/FILE)")

	rootCmd.AddCommand(resolveCmd, decodeCmd, preloadCmd, playCmd, configCmd)
}

func tryLoadConfigFromDefaultPlaces() {
	scope := gap.NewScope(gap.User, "samplecask")
	dirs, err := scope.ConfigDirs()
	if err != nil {
		fmt.Println("Could not find configuration directory.")
		os.Exit(1)
	}

	if c := os.Getenv("XDG_CONFIG_HOME"); c != "" {
		dirs = append([]string{filepath.Join(c, "samplecask")}, dirs...)
	}

	if c := os.Getenv("SAMPLECASK_CONFIG_HOME"); c != "" {
		dirs = append([]string{c}, dirs...)
	}

	for _, v := range dirs {
		viper.AddConfigPath(v)
	}

	viper.SetConfigName("samplecask")
	viper.SetConfigType("yaml")
	viper.SetEnvPrefix("samplecask")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Warn("Could not parse configuration file", "err", err)
		}
	}

	if used := viper.ConfigFileUsed(); used != "" {
		log.Debug("Using configuration file", "path", used)
		return
	}

	configFile = filepath.Join(dirs[0], "samplecask.yml")
}
