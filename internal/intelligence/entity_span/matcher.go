package entity_span

import (
	"regexp"
	"unicode/utf8"
)

// delimiterClass is one trailing delimiter: . , ; : or any Unicode
// whitespace.  RE2's \s is [\t\n\f\r ] only, so VT, the information
// separators, NEL and the separator category are listed as well.
const delimiterClass = `[.,;:\s\v\x{1c}-\x{1f}\x{85}\p{Z}]`

// namePattern builds the boundary pattern for one candidate: a single leading
// space, the literal name, and one trailing delimiter.
func namePattern(name string) *regexp.Regexp {
	return regexp.MustCompile(" " + regexp.QuoteMeta(name) + delimiterClass)
}

// ExtractEntities finds every bounded occurrence of each name in text and
// tags it with tag.  The recorded entity excludes the leading space and the
// trailing delimiter.
//
// A name at offset 0 is never found because the pattern needs a leading
// space.  Names are tried in the order given, duplicates and empty names are
// skipped, and collisions on one offset follow the configured Precedence.
func ExtractEntities(text string, names []string, tag string, opts ...Option) *Mapping {
	o := applyOptions(opts)
	m := NewMapping()

	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}

		for _, loc := range namePattern(name).FindAllStringIndex(text, -1) {
			// The delimiter may be a multi-byte rune such as U+00A0.
			_, size := utf8.DecodeLastRuneInString(text[:loc[1]])
			start, end := loc[0]+1, loc[1]-size
			m.Put(Entity{Offset: start, Text: text[start:end], Tag: tag}, o.precedence)
		}
	}
	return m
}
