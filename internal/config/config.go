// Package config defines the configuration structures for entitylens.  No I/O
// or parsing logic lives here, only plain data types and validation.
package config

import (
	"strings"

	"github.com/turtacn/entitylens/pkg/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// Sub-configuration structs
// ─────────────────────────────────────────────────────────────────────────────

// LogConfig holds logging settings.
type LogConfig struct {
	Level       string   `mapstructure:"level"`  // debug | info | warn | error
	Format      string   `mapstructure:"format"` // json | console
	OutputPaths []string `mapstructure:"output_paths"`
}

// ExtractionConfig tunes the span extractors.
type ExtractionConfig struct {
	// Precedence resolves offset collisions inside one source: last | first | longest.
	Precedence string `mapstructure:"precedence"`
	// Predicate matches tagger codes to categories: first_rune | prefix | exact.
	Predicate string `mapstructure:"predicate"`
	// Categories are the semantic categories requested when none are given.
	Categories []string `mapstructure:"categories"`
	// NamesTag tags plain name-list matches.
	NamesTag string `mapstructure:"names_tag"`
	// InflectedTag tags name-list matches found through inflection.
	InflectedTag string `mapstructure:"inflected_tag"`
}

// ColorConfig binds a tag to a hex color.  Colors are a list rather than a
// map because viper lower-cases map keys and tags are case-sensitive.
type ColorConfig struct {
	Tag   string `mapstructure:"tag"`
	Color string `mapstructure:"color"`
}

// RenderConfig holds renderer settings.
type RenderConfig struct {
	Format           string        `mapstructure:"format"`             // html | ansi | json
	UnknownTagPolicy string        `mapstructure:"unknown_tag_policy"` // fail | fallback
	FallbackColor    string        `mapstructure:"fallback_color"`
	RawText          bool          `mapstructure:"raw_text"`
	Colors           []ColorConfig `mapstructure:"colors"`
}

// MetricsConfig holds metrics settings.
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Namespace string `mapstructure:"namespace"`
}

// LexiconEntry lists the inflections of one word.
type LexiconEntry struct {
	Word    string   `mapstructure:"word"`
	Plurals []string `mapstructure:"plurals"`
	Lemmas  []string `mapstructure:"lemmas"`
}

// LexiconConfig feeds the static inflector.
type LexiconConfig struct {
	// Rules enables regular English plural rules for words not in Entries.
	Rules   bool           `mapstructure:"rules"`
	Entries []LexiconEntry `mapstructure:"entries"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Root configuration
// ─────────────────────────────────────────────────────────────────────────────

// Config is the root configuration object.
type Config struct {
	Log        LogConfig        `mapstructure:"log"`
	Extraction ExtractionConfig `mapstructure:"extraction"`
	Render     RenderConfig     `mapstructure:"render"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
	Lexicon    LexiconConfig    `mapstructure:"lexicon"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Validation
// ─────────────────────────────────────────────────────────────────────────────

func invalid(field, format string, args ...interface{}) error {
	return errors.Newf(errors.ErrCodeConfigInvalid, format, args...).WithDetail("field=" + field)
}

func oneOf(v string, allowed ...string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}

// Validate performs semantic validation of a fully-populated Config and
// returns the first problem found.
func (c *Config) Validate() error {
	// Log
	if !oneOf(c.Log.Level, "debug", "info", "warn", "error") {
		return invalid("log.level", "log.level %q is invalid; expected debug|info|warn|error", c.Log.Level)
	}
	if !oneOf(c.Log.Format, "json", "console") {
		return invalid("log.format", "log.format %q is invalid; expected json|console", c.Log.Format)
	}

	// Extraction
	if !oneOf(c.Extraction.Precedence, "last", "first", "longest") {
		return invalid("extraction.precedence", "extraction.precedence %q is invalid; expected last|first|longest", c.Extraction.Precedence)
	}
	if !oneOf(c.Extraction.Predicate, "first_rune", "prefix", "exact") {
		return invalid("extraction.predicate", "extraction.predicate %q is invalid; expected first_rune|prefix|exact", c.Extraction.Predicate)
	}
	if strings.TrimSpace(c.Extraction.NamesTag) == "" {
		return invalid("extraction.names_tag", "extraction.names_tag is required")
	}

	// Render
	if !oneOf(c.Render.Format, "html", "ansi", "json") {
		return invalid("render.format", "render.format %q is invalid; expected html|ansi|json", c.Render.Format)
	}
	if !oneOf(c.Render.UnknownTagPolicy, "fail", "fallback") {
		return invalid("render.unknown_tag_policy", "render.unknown_tag_policy %q is invalid; expected fail|fallback", c.Render.UnknownTagPolicy)
	}
	for i, col := range c.Render.Colors {
		if col.Tag == "" || col.Color == "" {
			return invalid("render.colors", "render.colors[%d] needs both tag and color", i)
		}
	}

	// Metrics
	if c.Metrics.Enabled && c.Metrics.Namespace == "" {
		return invalid("metrics.namespace", "metrics.namespace is required when metrics are enabled")
	}

	// Lexicon
	for i, e := range c.Lexicon.Entries {
		if strings.TrimSpace(e.Word) == "" {
			return invalid("lexicon.entries", "lexicon.entries[%d] has an empty word", i)
		}
	}
	return nil
}
