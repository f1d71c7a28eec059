package entity_span

import (
	"sort"
	"strings"
)

// IndexedToken is a token selected for adjacency merging: its position in
// the token stream, its byte offset in the text, its text and the tag it was
// selected under.
type IndexedToken struct {
	Index  int    `json:"index"`
	Offset int    `json:"offset"`
	Text   string `json:"text"`
	Tag    string `json:"tag"`
}

// CombineAdjacent merges runs of consecutive token indices into single
// multi-word tokens.  A run keeps the index, offset and tag of its lowest
// index token, and its text is the run's texts joined by one space in index
// order.  Tags are not compared and a repeated index starts a new run.
//
// The result is sorted by offset.  The input slice is left untouched and an
// empty input yields an empty, non-nil slice.
func CombineAdjacent(tokens []IndexedToken) []IndexedToken {
	if len(tokens) == 0 {
		return []IndexedToken{}
	}

	sorted := make([]IndexedToken, len(tokens))
	copy(sorted, tokens)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Index < sorted[j].Index })

	out := make([]IndexedToken, 0, len(sorted))
	head := sorted[0]
	parts := []string{head.Text}
	last := head.Index

	flush := func() {
		head.Text = strings.Join(parts, " ")
		out = append(out, head)
	}

	for _, tok := range sorted[1:] {
		if tok.Index == last+1 {
			parts = append(parts, tok.Text)
			last = tok.Index
			continue
		}
		flush()
		head = tok
		parts = []string{tok.Text}
		last = tok.Index
	}
	flush()

	sort.SliceStable(out, func(i, j int) bool { return out[i].Offset < out[j].Offset })
	return out
}
