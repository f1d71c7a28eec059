package cli

import (
	"github.com/turtacn/entitylens/internal/config"
	"github.com/turtacn/entitylens/internal/intelligence/entity_span"
	"github.com/turtacn/entitylens/internal/intelligence/render"
	"github.com/turtacn/entitylens/pkg/errors"
)

// buildPalette layers the configured colors over the default palette.
func buildPalette(cfg config.RenderConfig) (*render.Palette, error) {
	policy, err := render.ParseUnknownTagPolicy(cfg.UnknownTagPolicy)
	if err != nil {
		return nil, err
	}
	overrides := make([]render.ColorEntry, 0, len(cfg.Colors))
	for _, c := range cfg.Colors {
		overrides = append(overrides, render.ColorEntry{Tag: c.Tag, Color: c.Color})
	}
	return render.DefaultPalette().With(overrides, policy, cfg.FallbackColor)
}

// buildInflector turns the configured lexicon into a StaticInflector.
func buildInflector(cfg config.LexiconConfig) *entity_span.StaticInflector {
	entries := make([]entity_span.LexiconEntry, 0, len(cfg.Entries))
	for _, e := range cfg.Entries {
		entries = append(entries, entity_span.LexiconEntry{Word: e.Word, Plurals: e.Plurals, Lemmas: e.Lemmas})
	}
	return entity_span.NewStaticInflector(entries, cfg.Rules)
}

func parsePrecedence(name string) (entity_span.Precedence, error) {
	p, ok := entity_span.ParsePrecedence(name)
	if !ok {
		return p, errors.InvalidParam("unknown precedence").WithDetail("precedence=" + name)
	}
	return p, nil
}

func parsePredicate(name string) (entity_span.TagPredicate, error) {
	switch name {
	case "", "first_rune":
		return entity_span.FirstRunePrefix, nil
	case "prefix":
		return entity_span.PrefixPredicate, nil
	case "exact":
		return entity_span.ExactPredicate, nil
	default:
		return nil, errors.InvalidParam("unknown tag predicate").WithDetail("predicate=" + name)
	}
}
