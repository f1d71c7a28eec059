package config

import "github.com/spf13/viper"

// ─────────────────────────────────────────────────────────────────────────────
// Default value constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = "console"

	DefaultPrecedence   = "last"
	DefaultPredicate    = "first_rune"
	DefaultNamesTag     = "PLNAME"
	DefaultInflectedTag = "GEONOUN"

	DefaultRenderFormat     = "html"
	DefaultUnknownTagPolicy = "fail"
	DefaultFallbackColor    = "#FFFFFF"

	DefaultMetricsNamespace = "entitylens"
)

// DefaultCategories are the semantic categories highlighted when a tokens
// file is given without explicit categories.
var DefaultCategories = []string{"TIME", "MOVEMENT"}

// ApplyDefaults fills every zero-value field in cfg with its default.  Values
// already set are left alone so explicit configuration always wins.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	// ── Log ──────────────────────────────────────────────────────────────────
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
	if len(cfg.Log.OutputPaths) == 0 {
		cfg.Log.OutputPaths = []string{"stderr"}
	}

	// ── Extraction ───────────────────────────────────────────────────────────
	if cfg.Extraction.Precedence == "" {
		cfg.Extraction.Precedence = DefaultPrecedence
	}
	if cfg.Extraction.Predicate == "" {
		cfg.Extraction.Predicate = DefaultPredicate
	}
	if len(cfg.Extraction.Categories) == 0 {
		cfg.Extraction.Categories = append([]string(nil), DefaultCategories...)
	}
	if cfg.Extraction.NamesTag == "" {
		cfg.Extraction.NamesTag = DefaultNamesTag
	}
	if cfg.Extraction.InflectedTag == "" {
		cfg.Extraction.InflectedTag = DefaultInflectedTag
	}

	// ── Render ───────────────────────────────────────────────────────────────
	if cfg.Render.Format == "" {
		cfg.Render.Format = DefaultRenderFormat
	}
	if cfg.Render.UnknownTagPolicy == "" {
		cfg.Render.UnknownTagPolicy = DefaultUnknownTagPolicy
	}
	if cfg.Render.FallbackColor == "" {
		cfg.Render.FallbackColor = DefaultFallbackColor
	}

	// ── Metrics ──────────────────────────────────────────────────────────────
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}
}

// NewDefaultConfig returns a Config with every default applied.
func NewDefaultConfig() *Config {
	cfg := &Config{Lexicon: LexiconConfig{Rules: true}}
	ApplyDefaults(cfg)
	return cfg
}

// registerDefaults tells viper about every scalar key so that AutomaticEnv
// overrides are picked up by Unmarshal even without a config file.
func registerDefaults(v *viper.Viper) {
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.format", DefaultLogFormat)
	v.SetDefault("log.output_paths", []string{"stderr"})

	v.SetDefault("extraction.precedence", DefaultPrecedence)
	v.SetDefault("extraction.predicate", DefaultPredicate)
	v.SetDefault("extraction.categories", DefaultCategories)
	v.SetDefault("extraction.names_tag", DefaultNamesTag)
	v.SetDefault("extraction.inflected_tag", DefaultInflectedTag)

	v.SetDefault("render.format", DefaultRenderFormat)
	v.SetDefault("render.unknown_tag_policy", DefaultUnknownTagPolicy)
	v.SetDefault("render.fallback_color", DefaultFallbackColor)
	v.SetDefault("render.raw_text", false)

	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.namespace", DefaultMetricsNamespace)

	v.SetDefault("lexicon.rules", true)
}
