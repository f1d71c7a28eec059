// Package render turns a segmented text into display markup.  Colors come
// from an explicit Palette; nothing here holds global mutable state.
package render

import (
	"regexp"
	"strings"

	"github.com/turtacn/entitylens/pkg/errors"
)

// UnknownTagPolicy decides what a Palette does for a tag it does not know.
type UnknownTagPolicy int

const (
	// UnknownTagFail makes Color return ErrCodeUnknownTag.
	UnknownTagFail UnknownTagPolicy = iota
	// UnknownTagFallback makes Color return Palette.Fallback.
	UnknownTagFallback
)

// ParseUnknownTagPolicy maps "fail" or "fallback" to a policy.
func ParseUnknownTagPolicy(s string) (UnknownTagPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "fail":
		return UnknownTagFail, nil
	case "fallback":
		return UnknownTagFallback, nil
	default:
		return UnknownTagFail, errors.New(errors.ErrCodeInvalidPalette, "unknown tag policy").WithDetail("policy=" + s)
	}
}

func (p UnknownTagPolicy) String() string {
	if p == UnknownTagFallback {
		return "fallback"
	}
	return "fail"
}

// ColorEntry binds a tag to a CSS hex color.
type ColorEntry struct {
	Tag   string `json:"tag"`
	Color string `json:"color"`
}

var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Palette is a read-only tag to color table.
type Palette struct {
	colors   map[string]string
	order    []string
	policy   UnknownTagPolicy
	fallback string
}

// DefaultFallbackColor is used by fallback palettes that set no color.
const DefaultFallbackColor = "#FFFFFF"

// NewPalette validates entries and builds a Palette.  A later entry for the
// same tag replaces the earlier color but keeps its position.
func NewPalette(entries []ColorEntry, policy UnknownTagPolicy, fallback string) (*Palette, error) {
	p := &Palette{
		colors: make(map[string]string, len(entries)),
		policy: policy,
	}
	for _, e := range entries {
		if e.Tag == "" {
			return nil, errors.New(errors.ErrCodeInvalidPalette, "palette entry has an empty tag")
		}
		if !hexColor.MatchString(e.Color) {
			return nil, errors.New(errors.ErrCodeInvalidPalette, "invalid color").WithDetail("tag=" + e.Tag + " color=" + e.Color)
		}
		if _, ok := p.colors[e.Tag]; !ok {
			p.order = append(p.order, e.Tag)
		}
		p.colors[e.Tag] = e.Color
	}
	if policy == UnknownTagFallback {
		if fallback == "" {
			fallback = DefaultFallbackColor
		}
		if !hexColor.MatchString(fallback) {
			return nil, errors.New(errors.ErrCodeInvalidPalette, "invalid fallback color").WithDetail("color=" + fallback)
		}
		p.fallback = fallback
	}
	return p, nil
}

// defaultEntries is the stock color table for spaCy NER labels and the
// semantic categories used by the highlighter.
var defaultEntries = []ColorEntry{
	{"PLNAME", "#feca74"},
	{"GEONOUN", "#9cc9cc"},
	{"GPE", "#feca74"},
	{"CARDINAL", "#e4e7d2"},
	{"FAC", "#9cc9cc"},
	{"QUANTITY", "#e4e7d2"},
	{"PERSON", "#aa9cfc"},
	{"ORDINAL", "#e4e7d2"},
	{"ORG", "#7aecec"},
	{"NORP", "#d9fe74"},
	{"LOC", "#9ac9f5"},
	{"DATE", "#c7f5a9"},
	{"PRODUCT", "#edf5a9"},
	{"EVENT", "#e1a9f5"},
	{"TIME", "#a9f5bc"},
	{"WORK_OF_ART", "#e6c1d7"},
	{"LAW", "#e6e6c1"},
	{"LOCADV", "#f5b5cf"},
	{"PERCENT", "#c9ebf5"},
	{"MONEY", "#b3d6f2"},
	{"+EMOTION", "#94f72a"},
	{"-EMOTION", "#f75252"},
	{"TIME-SEM", "#d0e0f2"},
	{"MOVEMENT", "#f2d0d0"},
	{"no_tag", "#FFFFFF"},
}

// DefaultEntries returns a copy of the stock color table.
func DefaultEntries() []ColorEntry {
	return append([]ColorEntry(nil), defaultEntries...)
}

// DefaultPalette returns the stock table with the fail policy.
func DefaultPalette() *Palette {
	p, err := NewPalette(defaultEntries, UnknownTagFail, "")
	if err != nil {
		panic(err)
	}
	return p
}

// Color returns the color for tag, applying the unknown-tag policy.
func (p *Palette) Color(tag string) (string, error) {
	if c, ok := p.colors[tag]; ok {
		return c, nil
	}
	if p.policy == UnknownTagFallback {
		return p.fallback, nil
	}
	return "", errors.New(errors.ErrCodeUnknownTag, "no color for tag").WithDetail("tag=" + tag)
}

// Policy returns the unknown-tag policy.
func (p *Palette) Policy() UnknownTagPolicy { return p.policy }

// Fallback returns the fallback color, empty under the fail policy.
func (p *Palette) Fallback() string { return p.fallback }

// Entries returns the table in insertion order.
func (p *Palette) Entries() []ColorEntry {
	out := make([]ColorEntry, 0, len(p.order))
	for _, tag := range p.order {
		out = append(out, ColorEntry{Tag: tag, Color: p.colors[tag]})
	}
	return out
}

// Len returns the number of known tags.
func (p *Palette) Len() int { return len(p.order) }

// With returns a new Palette holding p's entries followed by overrides.
func (p *Palette) With(overrides []ColorEntry, policy UnknownTagPolicy, fallback string) (*Palette, error) {
	return NewPalette(append(p.Entries(), overrides...), policy, fallback)
}
