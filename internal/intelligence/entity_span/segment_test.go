package entity_span

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/entitylens/pkg/errors"
)

func TestSegment_MatcherOutput(t *testing.T) {
	text := "Visit Paris, France."
	spans, err := Segment(text, ExtractEntities(text, []string{"Paris", "France"}, "GPE"))
	require.NoError(t, err)
	assert.Equal(t, []TaggedSpan{
		{Text: "Visit "},
		{Text: "Paris", Tag: "GPE"},
		{Text: ", "},
		{Text: "France", Tag: "GPE"},
		{Text: "."},
	}, spans)
	assert.Equal(t, text, Join(spans))
}

func TestSegment_EmptyGapsAreEmitted(t *testing.T) {
	text := "ab"
	m := NewMappingFrom(KeepLast,
		Entity{Offset: 0, Text: "a", Tag: "X"},
		Entity{Offset: 1, Text: "b", Tag: "Y"},
	)
	spans, err := Segment(text, m)
	require.NoError(t, err)
	assert.Equal(t, []TaggedSpan{
		{Text: ""},
		{Text: "a", Tag: "X"},
		{Text: ""},
		{Text: "b", Tag: "Y"},
		{Text: ""},
	}, spans)
}

func TestSegment_OverlapDropsLaterEntityWhole(t *testing.T) {
	text := "New York City is big"
	m := NewMappingFrom(KeepLast,
		Entity{Offset: 0, Text: "New York", Tag: "GPE"},
		Entity{Offset: 4, Text: "York City", Tag: "LOC"},
	)
	spans, dropped, err := SegmentWithStats(text, m)
	require.NoError(t, err)
	assert.Equal(t, 1, dropped)
	assert.Equal(t, []TaggedSpan{
		{Text: ""},
		{Text: "New York", Tag: "GPE"},
		{Text: " City is big"},
	}, spans)
}

func TestSegment_NilMappingAndEmptyText(t *testing.T) {
	spans, err := Segment("plain text", nil)
	require.NoError(t, err)
	assert.Equal(t, []TaggedSpan{{Text: "plain text"}}, spans)

	spans, err = Segment("", NewMapping())
	require.NoError(t, err)
	assert.Equal(t, []TaggedSpan{{Text: ""}}, spans)
}

func TestSegment_OutOfBounds(t *testing.T) {
	cases := []Entity{
		{Offset: 3, Text: "toolong", Tag: "X"},
		{Offset: -1, Text: "a", Tag: "X"},
	}
	for _, e := range cases {
		_, err := Segment("short", NewMappingFrom(KeepLast, e))
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrCodeSpanOutOfBounds))
	}
}

func TestSegment_UsesTextNotEntityText(t *testing.T) {
	m := NewMappingFrom(KeepLast, Entity{Offset: 0, Text: "XYZ", Tag: "T"})
	spans, err := Segment("abcdef", m)
	require.NoError(t, err)
	assert.Equal(t, "abc", spans[1].Text)
	assert.Equal(t, "abcdef", Join(spans))
}

// Random mappings over random text must always reconstruct the text and
// never tag a byte twice.
func TestSegment_ReconstructionAndNonOverlap(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	alphabet := []byte("abc de,f.")

	for iter := 0; iter < 500; iter++ {
		n := rng.Intn(40)
		buf := make([]byte, n)
		for i := range buf {
			buf[i] = alphabet[rng.Intn(len(alphabet))]
		}
		text := string(buf)

		m := NewMapping()
		for k := rng.Intn(8); k > 0 && n > 0; k-- {
			start := rng.Intn(n)
			end := start + rng.Intn(n-start+1)
			m.Put(Entity{Offset: start, Text: text[start:end], Tag: "T"}, KeepLast)
		}

		spans, dropped, err := SegmentWithStats(text, m)
		require.NoError(t, err)
		require.Equal(t, text, Join(spans))

		tagged := 0
		pos := 0
		lastEnd := -1
		for _, s := range spans {
			if s.Tagged() {
				require.GreaterOrEqual(t, pos, lastEnd)
				lastEnd = pos + len(s.Text)
				tagged++
			}
			pos += len(s.Text)
		}
		assert.Equal(t, m.Len(), tagged+dropped)
	}
}
