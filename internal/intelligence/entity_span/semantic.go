package entity_span

import (
	"strings"
	"unicode/utf8"
)

// TaggedToken is one token produced by an upstream semantic tagger.  Tags[0]
// is its fine-grained code; further entries are alternatives and are ignored.
type TaggedToken struct {
	Offset int      `json:"offset"`
	Text   string   `json:"text"`
	Tags   []string `json:"tags"`
}

// FineTag returns the first tag, or "" if the token is untagged.
func (t TaggedToken) FineTag() string {
	if len(t.Tags) == 0 {
		return ""
	}
	return t.Tags[0]
}

// TagPredicate reports whether a token's fine-grained tag belongs to the
// requested category.
type TagPredicate func(fineTag, category string) bool

// FirstRunePrefix matches when fineTag starts with the first rune of
// category.  This follows the coarse/fine convention of USAS-style taggers,
// where "T1.1.2" belongs to the "TIME" category.
func FirstRunePrefix(fineTag, category string) bool {
	if fineTag == "" || category == "" {
		return false
	}
	r, size := utf8.DecodeRuneInString(category)
	if r == utf8.RuneError && size <= 1 {
		return false
	}
	return strings.HasPrefix(fineTag, category[:size])
}

// PrefixPredicate matches when fineTag starts with the whole category.
func PrefixPredicate(fineTag, category string) bool {
	return fineTag != "" && category != "" && strings.HasPrefix(fineTag, category)
}

// ExactPredicate matches identical codes only.
func ExactPredicate(fineTag, category string) bool {
	return fineTag != "" && fineTag == category
}

// ExtractSemanticEntities selects, per category, the tokens whose fine tag
// satisfies the predicate, merges adjacent selections and stores them tagged
// with the category.  Categories are processed in order, so with the default
// KeepLast precedence a later category overwrites an earlier one at the same
// offset.
func ExtractSemanticEntities(tokens []TaggedToken, categories []string, opts ...Option) *Mapping {
	o := applyOptions(opts)
	m := NewMapping()

	for _, category := range categories {
		if category == "" {
			continue
		}
		var selected []IndexedToken
		for i, tok := range tokens {
			if o.predicate(tok.FineTag(), category) {
				selected = append(selected, IndexedToken{
					Index:  i,
					Offset: tok.Offset,
					Text:   tok.Text,
					Tag:    category,
				})
			}
		}
		for _, merged := range CombineAdjacent(selected) {
			m.Put(Entity{Offset: merged.Offset, Text: merged.Text, Tag: merged.Tag}, o.precedence)
		}
	}
	return m
}
