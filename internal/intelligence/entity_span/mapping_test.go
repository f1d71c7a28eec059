package entity_span

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntity_End(t *testing.T) {
	e := Entity{Offset: 6, Text: "Paris", Tag: "GPE"}
	assert.Equal(t, 11, e.End())
}

func TestMapping_EntitiesSortedAscending(t *testing.T) {
	m := NewMappingFrom(KeepLast,
		Entity{Offset: 9, Text: "c", Tag: "X"},
		Entity{Offset: 0, Text: "a", Tag: "X"},
		Entity{Offset: 4, Text: "b", Tag: "X"},
	)
	got := m.Entities()
	require.Len(t, got, 3)
	assert.Equal(t, []int{0, 4, 9}, []int{got[0].Offset, got[1].Offset, got[2].Offset})
}

func TestMapping_Precedence(t *testing.T) {
	short := Entity{Offset: 3, Text: "New", Tag: "A"}
	long := Entity{Offset: 3, Text: "New York", Tag: "B"}

	tests := []struct {
		name  string
		p     Precedence
		order []Entity
		want  Entity
	}{
		{"last keeps later", KeepLast, []Entity{long, short}, short},
		{"last keeps later reversed", KeepLast, []Entity{short, long}, long},
		{"first keeps earlier", KeepFirst, []Entity{long, short}, long},
		{"first keeps earlier reversed", KeepFirst, []Entity{short, long}, short},
		{"longest short then long", KeepLongest, []Entity{short, long}, long},
		{"longest long then short", KeepLongest, []Entity{long, short}, long},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMappingFrom(tt.p, tt.order...)
			got, ok := m.Get(3)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, 1, m.Collisions())
			assert.Equal(t, 1, m.Len())
		})
	}
}

func TestMapping_KeepLongestTieKeepsExisting(t *testing.T) {
	m := NewMappingFrom(KeepLongest,
		Entity{Offset: 0, Text: "abc", Tag: "first"},
		Entity{Offset: 0, Text: "xyz", Tag: "second"},
	)
	got, _ := m.Get(0)
	assert.Equal(t, "first", got.Tag)
}

func TestParsePrecedence(t *testing.T) {
	for in, want := range map[string]Precedence{"": KeepLast, "last": KeepLast, "first": KeepFirst, "longest": KeepLongest} {
		p, ok := ParsePrecedence(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, p, in)
	}
	_, ok := ParsePrecedence("random")
	assert.False(t, ok)
	assert.Equal(t, "longest", KeepLongest.String())
	assert.Equal(t, "unknown", Precedence(42).String())
}

func TestMapping_NilIsEmpty(t *testing.T) {
	var m *Mapping
	assert.Equal(t, 0, m.Len())
	assert.Equal(t, 0, m.Collisions())
	assert.Empty(t, m.Entities())
	assert.NotNil(t, m.Entities())
	assert.Empty(t, m.TagCounts())
	_, ok := m.Get(0)
	assert.False(t, ok)
	assert.True(t, m.Equal(NewMapping()))
	assert.Equal(t, 0, m.Clone().Len())
}

func TestMapping_TagCounts(t *testing.T) {
	m := NewMappingFrom(KeepLast,
		Entity{Offset: 0, Text: "a", Tag: "GPE"},
		Entity{Offset: 2, Text: "b", Tag: "GPE"},
		Entity{Offset: 4, Text: "c", Tag: "ORG"},
	)
	assert.Equal(t, map[string]int{"GPE": 2, "ORG": 1}, m.TagCounts())
}

func TestMerge_PrimaryWinsAtSharedOffset(t *testing.T) {
	a := NewMappingFrom(KeepLast,
		Entity{Offset: 0, Text: "Paris", Tag: "GPE"},
		Entity{Offset: 10, Text: "Lyon", Tag: "GPE"},
	)
	b := NewMappingFrom(KeepLast,
		Entity{Offset: 0, Text: "Paris", Tag: "PERSON"},
		Entity{Offset: 20, Text: "Nice", Tag: "LOC"},
	)
	aBefore, bBefore := a.Clone(), b.Clone()

	merged := Merge(a, b)
	require.Equal(t, 3, merged.Len())
	got, _ := merged.Get(0)
	assert.Equal(t, "GPE", got.Tag)

	ents := merged.Entities()
	assert.Equal(t, []int{0, 10, 20}, []int{ents[0].Offset, ents[1].Offset, ents[2].Offset})

	assert.True(t, a.Equal(aBefore))
	assert.True(t, b.Equal(bBefore))
}

func TestMerge_Idempotent(t *testing.T) {
	a := NewMappingFrom(KeepLast,
		Entity{Offset: 0, Text: "x", Tag: "T"},
		Entity{Offset: 5, Text: "yy", Tag: "U"},
	)
	assert.True(t, Merge(a, a).Equal(a))
}

func TestMerge_NilInputs(t *testing.T) {
	a := NewMappingFrom(KeepLast, Entity{Offset: 1, Text: "x", Tag: "T"})
	assert.True(t, Merge(a, nil).Equal(a))
	assert.True(t, Merge(nil, a).Equal(a))
	assert.Equal(t, 0, Merge(nil, nil).Len())
}

func TestMergeAll_EarlierWins(t *testing.T) {
	a := NewMappingFrom(KeepLast, Entity{Offset: 0, Text: "x", Tag: "A"})
	b := NewMappingFrom(KeepLast, Entity{Offset: 0, Text: "x", Tag: "B"}, Entity{Offset: 3, Text: "y", Tag: "B"})
	c := NewMappingFrom(KeepLast, Entity{Offset: 3, Text: "y", Tag: "C"}, Entity{Offset: 6, Text: "z", Tag: "C"})

	m := MergeAll(a, b, c)
	assert.True(t, m.Equal(Merge(Merge(a, b), c)))

	e0, _ := m.Get(0)
	e3, _ := m.Get(3)
	e6, _ := m.Get(6)
	assert.Equal(t, "A", e0.Tag)
	assert.Equal(t, "B", e3.Tag)
	assert.Equal(t, "C", e6.Tag)
	assert.Equal(t, 0, MergeAll().Len())
}

func TestSharedOffsets(t *testing.T) {
	a := NewMappingFrom(KeepLast, Entity{Offset: 0, Text: "x"}, Entity{Offset: 2, Text: "y"})
	b := NewMappingFrom(KeepLast, Entity{Offset: 2, Text: "y"}, Entity{Offset: 4, Text: "z"}, Entity{Offset: 6, Text: "w"})
	assert.Equal(t, 1, sharedOffsets(a, b))
	assert.Equal(t, 1, sharedOffsets(b, a))
	assert.Equal(t, 0, sharedOffsets(NewMapping(), b))
}
