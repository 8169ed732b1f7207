package cmd

import (
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/use-agent/pagesift/config"
)

var (
	cfgFile string
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:   "pagesift",
	Short: "pagesift: structural analysis and record extraction for HTML documents",
	Long: `pagesift discovers repeating structures in HTML documents and extracts
structured records from them using selector configurations with ordered
fallbacks, attribute extraction, and regex post-processing.

Commands:
  summarize  Analyze a document's structure and emit a JSON summary
  extract    Extract records using a selector configuration
  validate   Score an extraction and propose selector improvements`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig, initLogger)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config-file", "", "app config file (default is ./pagesift.yaml)")
}

func initConfig() {
	cfg = config.Defaults()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pagesift")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("/etc/pagesift")
	}

	// Environment overrides: PAGESIFT_SUMMARIZER_TOP_N -> summarizer.top_n
	viper.SetEnvPrefix("PAGESIFT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.BindEnv("summarizer.top_n", "PAGESIFT_SUMMARIZER_TOP_N")
	viper.BindEnv("summarizer.sample_size", "PAGESIFT_SUMMARIZER_SAMPLE_SIZE")
	viper.BindEnv("summarizer.js_heavy_threshold", "PAGESIFT_SUMMARIZER_JS_HEAVY_THRESHOLD")
	viper.BindEnv("log.level", "PAGESIFT_LOG_LEVEL")
	viper.BindEnv("log.format", "PAGESIFT_LOG_FORMAT")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Warn("app config file error", "error", err)
		}
		// No config file — defaults plus env vars.
	}

	if err := viper.Unmarshal(&cfg); err != nil {
		slog.Warn("failed to parse app config", "error", err)
	}
}

// initLogger configures slog based on the Log config.
func initLogger() {
	var level slog.Level
	switch cfg.Log.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Log.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	slog.SetDefault(slog.New(handler))
}

// outputWriter opens the -o target, or stdout when empty.
func outputWriter(path string) (*os.File, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}
