package entity_span

import (
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Inflector looks up inflected forms of a noun.
type Inflector interface {
	// Plurals returns the plural forms of noun.
	Plurals(noun string) []string
	// Lemmas returns the lemma forms of noun.
	Lemmas(noun string) []string
}

// ExpandInflections returns every name together with the plurals and lemmas
// of its trimmed form.  Forms that are equal after NFC normalisation are
// collapsed to the first one seen, empty forms are dropped and the result is
// sorted.  A nil inflector only deduplicates names.
func ExpandInflections(names []string, inflector Inflector) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0, len(names))
	add := func(s string) {
		if s == "" {
			return
		}
		key := norm.NFC.String(s)
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}

	for _, name := range names {
		add(name)
		if inflector == nil {
			continue
		}
		w := strings.TrimSpace(name)
		if w == "" {
			continue
		}
		for _, p := range inflector.Plurals(w) {
			add(p)
		}
		for _, l := range inflector.Lemmas(w) {
			add(l)
		}
	}
	sort.Strings(out)
	return out
}

// LexiconEntry lists the known inflections of one word.
type LexiconEntry struct {
	Word    string
	Plurals []string
	Lemmas  []string
}

// StaticInflector answers from a fixed lexicon.  Words missing from the
// lexicon fall back to regular English noun rules when Rules is set:
// the plural is built by suffixing and the lemma is the word itself.
type StaticInflector struct {
	entries map[string]LexiconEntry
	Rules   bool
}

// NewStaticInflector indexes entries by their NFC-normalised, lower-cased
// word.  A later entry for the same word replaces an earlier one.
func NewStaticInflector(entries []LexiconEntry, rules bool) *StaticInflector {
	idx := make(map[string]LexiconEntry, len(entries))
	for _, e := range entries {
		if strings.TrimSpace(e.Word) == "" {
			continue
		}
		idx[lexiconKey(e.Word)] = e
	}
	return &StaticInflector{entries: idx, Rules: rules}
}

func lexiconKey(w string) string {
	return strings.ToLower(norm.NFC.String(strings.TrimSpace(w)))
}

// Len returns the number of lexicon entries.
func (s *StaticInflector) Len() int {
	return len(s.entries)
}

func (s *StaticInflector) Plurals(noun string) []string {
	if e, ok := s.entries[lexiconKey(noun)]; ok {
		return append([]string(nil), e.Plurals...)
	}
	if s.Rules {
		return []string{regularPlural(noun)}
	}
	return nil
}

func (s *StaticInflector) Lemmas(noun string) []string {
	if e, ok := s.entries[lexiconKey(noun)]; ok {
		return append([]string(nil), e.Lemmas...)
	}
	if s.Rules {
		return []string{noun}
	}
	return nil
}

// regularPlural applies the regular English pluralisation rules.
func regularPlural(w string) string {
	lower := strings.ToLower(w)
	switch {
	case w == "":
		return ""
	case strings.HasSuffix(lower, "s"), strings.HasSuffix(lower, "x"), strings.HasSuffix(lower, "z"),
		strings.HasSuffix(lower, "ch"), strings.HasSuffix(lower, "sh"):
		return w + "es"
	case strings.HasSuffix(lower, "y") && len(lower) > 1 && !isVowel(lower[len(lower)-2]):
		return w[:len(w)-1] + "ies"
	default:
		return w + "s"
	}
}

func isVowel(b byte) bool {
	switch b {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}
