// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFold(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"punctuation becomes single spaces", "ПНА: стеноз 80%", "пна стеноз 80%"},
		{"yo folds to ye and edges are trimmed", "  Ёлка, (ствол-ЛКА)  ", "елка ствол лка"},
		{"decimal comma kept between digits", "стеноз 50,5%", "стеноз 50.5%"},
		{"trailing comma after number dropped", "стеноз 50, ОА", "стеноз 50 оа"},
		{"stress mark removed", "сте́ноз", "стеноз"},
		{"empty", "", ""},
		{"only punctuation", "!!! ... ???", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Fold(tt.in))
		})
	}
}

func TestSurfaceWords(t *testing.T) {
	s := Normalize("ЛКА и ствол ЛКА")
	require.Equal(t, "лка и ствол лка", s.String())

	assert.Equal(t, []Span{{0, 3}, {12, 15}}, s.Words("лка"))
	assert.Empty(t, s.Words("лк"), "partial word must not match")
	assert.Equal(t, []Span{{6, 15}}, s.Words("ствол лка"))
}

func TestSurfaceFind(t *testing.T) {
	s := Normalize("стеноз передней нисходящей артерии")

	spans := s.Find("нисходящей артерии")
	require.Len(t, spans, 1)
	assert.Equal(t, "нисходящей артерии", s.Slice(spans[0]))

	assert.Equal(t, []Span{{0, 2}}, s.Find("ст"))
	assert.True(t, s.Contains("стеноз"))
	assert.False(t, s.Contains(""))
	assert.True(t, s.ContainsAny([]string{"окклюз", "артер"}))
	assert.False(t, s.ContainsAny(nil))
}

func TestSurfaceFindAllOrdersBySurface(t *testing.T) {
	s := Normalize("окклюдирована, ранее окклюзия")
	spans := s.FindAll([]string{"окклюз", "окклюд"})
	require.Len(t, spans, 2)
	assert.Less(t, spans[0].Start, spans[1].Start)
	assert.Equal(t, "окклюд", s.Slice(spans[0]))
}

func TestSurfacePercents(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []Percent
	}{
		{
			name: "two tokens, space before sign allowed",
			in:   "ПНА 80%, ОА 45 %",
			want: []Percent{
				{Value: 80, Span: Span{4, 7}},
				{Value: 45, Span: Span{11, 15}},
			},
		},
		{
			name: "range keeps the number next to the sign",
			in:   "стеноз 70-80%",
			want: []Percent{{Value: 80, Span: Span{10, 13}}},
		},
		{
			name: "decimal rounds",
			in:   "стеноз 50,5%",
			want: []Percent{{Value: 51, Span: Span{7, 12}}},
		},
		{
			name: "number glued to a letter is not a percent",
			in:   "ВТК1%",
			want: nil,
		},
		{
			name: "over one hundred dropped",
			in:   "стеноз 150%",
			want: nil,
		},
		{
			name: "number without sign ignored",
			in:   "стеноз 80 мм",
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in).Percents())
		})
	}
}

func TestWindowAround(t *testing.T) {
	w := Window{Before: 3, After: 4}

	assert.Equal(t, Span{2, 12}, w.Around(Span{5, 8}, 20))
	assert.Equal(t, Span{0, 9}, w.Around(Span{1, 5}, 9), "clamped to the surface")
}

func TestSpan(t *testing.T) {
	a := Span{2, 6}

	assert.Equal(t, 4, a.Len())
	assert.True(t, a.Overlaps(Span{5, 9}))
	assert.False(t, a.Overlaps(Span{6, 9}), "half-open ranges touching at an edge do not overlap")
	assert.True(t, a.Contains(Span{2, 6}))
	assert.False(t, a.Contains(Span{1, 3}))
}
