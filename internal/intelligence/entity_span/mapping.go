// Package entity_span locates entity spans inside a text, resolves collisions
// between annotation sources and partitions the text into tagged spans ready
// for rendering.
//
// Offsets are zero-based byte offsets into the Go string.  Every producer
// (matcher, semantic extractor) and the consumer (Segment) use the same byte
// arithmetic, so Text == text[Offset:End()] holds for every entity produced
// from that text.
package entity_span

import (
	"sort"
)

// ---------------------------------------------------------------------------
// Entity
// ---------------------------------------------------------------------------

// Entity is a tagged substring of a text, identified by its start offset.
type Entity struct {
	Offset int    `json:"offset"`
	Text   string `json:"text"`
	Tag    string `json:"tag"`
}

// End returns the exclusive end offset.
func (e Entity) End() int {
	return e.Offset + len(e.Text)
}

// TaggedSpan is one piece of a segmented text.  An empty Tag means untagged.
type TaggedSpan struct {
	Text string `json:"text"`
	Tag  string `json:"tag,omitempty"`
}

// Tagged reports whether the span carries a tag.
func (s TaggedSpan) Tagged() bool {
	return s.Tag != ""
}

// ---------------------------------------------------------------------------
// Precedence
// ---------------------------------------------------------------------------

// Precedence decides which entity survives when two land on the same offset
// within a single extraction call.
type Precedence int

const (
	// KeepLast lets the later insertion overwrite the earlier one.
	KeepLast Precedence = iota
	// KeepFirst ignores any insertion at an occupied offset.
	KeepFirst
	// KeepLongest keeps whichever entity has the longer text.  On equal
	// length the existing entity stays.
	KeepLongest
)

func (p Precedence) String() string {
	switch p {
	case KeepLast:
		return "last"
	case KeepFirst:
		return "first"
	case KeepLongest:
		return "longest"
	default:
		return "unknown"
	}
}

// ParsePrecedence maps "last", "first" or "longest" to a Precedence.
func ParsePrecedence(s string) (Precedence, bool) {
	switch s {
	case "", "last":
		return KeepLast, true
	case "first":
		return KeepFirst, true
	case "longest":
		return KeepLongest, true
	default:
		return KeepLast, false
	}
}

// ---------------------------------------------------------------------------
// Mapping
// ---------------------------------------------------------------------------

// Mapping is an offset-keyed set of entities.  Offsets are unique; overlap
// between entities at different offsets is allowed and only resolved by
// Segment.
type Mapping struct {
	byOffset   map[int]Entity
	collisions int
}

// NewMapping returns an empty mapping.
func NewMapping() *Mapping {
	return &Mapping{byOffset: make(map[int]Entity)}
}

// NewMappingFrom builds a mapping from entities inserted in order under p.
func NewMappingFrom(p Precedence, entities ...Entity) *Mapping {
	m := NewMapping()
	for _, e := range entities {
		m.Put(e, p)
	}
	return m
}

// Put inserts e under precedence p and reports whether e is now stored.
// An insertion at an occupied offset counts as a collision whatever the
// outcome.
func (m *Mapping) Put(e Entity, p Precedence) bool {
	existing, occupied := m.byOffset[e.Offset]
	if !occupied {
		m.byOffset[e.Offset] = e
		return true
	}
	m.collisions++
	switch p {
	case KeepFirst:
		return false
	case KeepLongest:
		if len(e.Text) <= len(existing.Text) {
			return false
		}
	}
	m.byOffset[e.Offset] = e
	return true
}

// Get returns the entity at offset.
func (m *Mapping) Get(offset int) (Entity, bool) {
	if m == nil {
		return Entity{}, false
	}
	e, ok := m.byOffset[offset]
	return e, ok
}

// Len returns the number of entities.  A nil mapping is empty.
func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}
	return len(m.byOffset)
}

// Collisions returns how many insertions hit an occupied offset.
func (m *Mapping) Collisions() int {
	if m == nil {
		return 0
	}
	return m.collisions
}

// Entities returns a fresh slice sorted ascending by offset.
func (m *Mapping) Entities() []Entity {
	if m == nil {
		return []Entity{}
	}
	out := make([]Entity, 0, len(m.byOffset))
	for _, e := range m.byOffset {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Offset < out[j].Offset })
	return out
}

// TagCounts returns the number of entities per tag.
func (m *Mapping) TagCounts() map[string]int {
	counts := make(map[string]int)
	if m == nil {
		return counts
	}
	for _, e := range m.byOffset {
		counts[e.Tag]++
	}
	return counts
}

// Clone returns an independent copy.
func (m *Mapping) Clone() *Mapping {
	c := NewMapping()
	if m == nil {
		return c
	}
	for k, v := range m.byOffset {
		c.byOffset[k] = v
	}
	c.collisions = m.collisions
	return c
}

// Equal reports whether both mappings hold the same entities.  Collision
// counters are ignored.
func (m *Mapping) Equal(other *Mapping) bool {
	if m.Len() != other.Len() {
		return false
	}
	if m == nil || other == nil {
		return true
	}
	for k, v := range m.byOffset {
		if ov, ok := other.byOffset[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

// ---------------------------------------------------------------------------
// Merge
// ---------------------------------------------------------------------------

// Merge returns the key-wise union of both mappings where primary wins at any
// shared offset.  Neither input is modified and nil counts as empty.
func Merge(primary, secondary *Mapping) *Mapping {
	out := NewMapping()
	if secondary != nil {
		for k, v := range secondary.byOffset {
			out.byOffset[k] = v
		}
	}
	if primary != nil {
		for k, v := range primary.byOffset {
			out.byOffset[k] = v
		}
	}
	return out
}

// MergeAll folds mappings left to right so that earlier mappings win.
func MergeAll(mappings ...*Mapping) *Mapping {
	out := NewMapping()
	for _, m := range mappings {
		out = Merge(out, m)
	}
	return out
}

// sharedOffsets counts offsets present in both mappings.
func sharedOffsets(a, b *Mapping) int {
	if a.Len() > b.Len() {
		a, b = b, a
	}
	if a.Len() == 0 {
		return 0
	}
	n := 0
	for k := range a.byOffset {
		if _, ok := b.byOffset[k]; ok {
			n++
		}
	}
	return n
}
