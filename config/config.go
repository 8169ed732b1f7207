// Package config holds application settings for the pagesift CLI. The
// selector configurations that drive extraction are separate documents
// owned by models; this package only tunes analysis behavior and
// logging.
package config

// Config holds all application configuration.
type Config struct {
	Summarizer Summarizer `mapstructure:"summarizer"`
	Log        Log        `mapstructure:"log"`
}

// Summarizer tunes structural summarization.
type Summarizer struct {
	// TopN truncates the tag-frequency table and ranked repeat list.
	TopN int `mapstructure:"top_n"`

	// SampleSize is the serialized occurrences kept per repeated group.
	SampleSize int `mapstructure:"sample_size"`

	// MaxPatternExamples caps retained hits per text-pattern matcher.
	MaxPatternExamples int `mapstructure:"max_pattern_examples"`

	// JSHeavyThreshold flags documents scoring at or above it.
	JSHeavyThreshold float64 `mapstructure:"js_heavy_threshold"`
}

// Log controls structured logging.
type Log struct {
	Level  string `mapstructure:"level"`  // "debug", "info", "warn", "error"
	Format string `mapstructure:"format"` // "json" or "text"
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Summarizer: Summarizer{
			TopN:               20,
			SampleSize:         3,
			MaxPatternExamples: 20,
			JSHeavyThreshold:   0.3,
		},
		Log: Log{
			Level:  "info",
			Format: "text",
		},
	}
}
