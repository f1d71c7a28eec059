package entity_span

import (
	"strconv"
	"strings"

	"github.com/turtacn/entitylens/pkg/errors"
)

// Segment partitions text into alternating untagged gaps and tagged entity
// spans.  Entities are walked in ascending offset order; one that starts
// before the end of the previously emitted entity is dropped whole.  Gaps may
// be empty, and Join of the result always equals text.
//
// An entity that reaches outside text fails the call with
// ErrCodeSpanOutOfBounds.
func Segment(text string, m *Mapping) ([]TaggedSpan, error) {
	spans, _, err := SegmentWithStats(text, m)
	return spans, err
}

// SegmentWithStats is Segment that also returns how many entities were
// dropped for overlapping an earlier one.
func SegmentWithStats(text string, m *Mapping) ([]TaggedSpan, int, error) {
	entities := m.Entities()
	for _, e := range entities {
		if e.Offset < 0 || e.End() > len(text) {
			return nil, 0, errors.New(errors.ErrCodeSpanOutOfBounds, "entity span outside text").
				WithDetail("offset=" + strconv.Itoa(e.Offset) + " end=" + strconv.Itoa(e.End()) + " len=" + strconv.Itoa(len(text)))
		}
	}

	spans := make([]TaggedSpan, 0, 2*len(entities)+1)
	begin, dropped := 0, 0
	for _, e := range entities {
		if e.Offset < begin {
			dropped++
			continue
		}
		spans = append(spans,
			TaggedSpan{Text: text[begin:e.Offset]},
			TaggedSpan{Text: text[e.Offset:e.End()], Tag: e.Tag},
		)
		begin = e.End()
	}
	spans = append(spans, TaggedSpan{Text: text[begin:]})
	return spans, dropped, nil
}

// Join concatenates span texts.
func Join(spans []TaggedSpan) string {
	var sb strings.Builder
	for _, s := range spans {
		sb.WriteString(s.Text)
	}
	return sb.String()
}
