package decode

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	charts "github.com/midbel/titledash"
)

func TestDecoder_Decode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		options []Option
		want    []charts.Entry
	}{
		{
			name:  "mapping keeps document order",
			input: `{"R": 120, "PG-13": "85", "G": 10}`,
			want: []charts.Entry{
				{Key: "R", Value: num("120")},
				{Key: "PG-13", Value: "85"},
				{Key: "G", Value: num("10")},
			},
		},
		{
			name:  "records with series",
			input: `[{"release_year": 2019, "type": "MOVIE", "count": 4}, {"release_year": 2019, "type": "SHOW", "count": 2}]`,
			want: []charts.Entry{
				{Key: "2019", Value: num("4"), Series: "MOVIE"},
				{Key: "2019", Value: num("2"), Series: "SHOW"},
			},
		},
		{
			name:    "records with explicit key and value",
			input:   `[{"imdb_score": 7.5, "title": "Dune"}]`,
			options: []Option{WithKey("title"), WithValue("imdb_score")},
			want: []charts.Entry{
				{Key: "Dune", Value: num("7.5")},
			},
		},
		{
			name:  "pairs",
			input: `[["0-30", 12], ["180+", 3]]`,
			want: []charts.Entry{
				{Key: "0-30", Value: num("12")},
				{Key: "180+", Value: num("3")},
			},
		},
		{
			name:  "non standard literals become null",
			input: `{"drama": NaN, "comedy": -Infinity, "NaN": 1, "text": "Infinity"}`,
			want: []charts.Entry{
				{Key: "drama"},
				{Key: "comedy"},
				{Key: "NaN", Value: num("1")},
				{Key: "text", Value: "Infinity"},
			},
		},
		{
			name:  "nested values are dropped",
			input: `{"a": {"b": 1}, "c": [1, 2]}`,
			want: []charts.Entry{
				{Key: "a"},
				{Key: "c"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agg, err := NewDecoder(strings.NewReader(tt.input), tt.options...).Decode()
			require.NoError(t, err)
			assert.Equal(t, tt.want, agg.Entries)
		})
	}
}

func TestDecoder_DecodeShape(t *testing.T) {
	agg, err := NewDecoder(strings.NewReader(`{"1999": 3, "2001": "x", "": 4, "2000": NaN}`)).Decode()
	require.NoError(t, err)

	list := charts.Shape(agg, charts.FieldYear)
	require.Len(t, list, 1)
	assert.Equal(t, "1999", list[0].Key)
	assert.Equal(t, 1999.0, list[0].Number)
	assert.Equal(t, 3.0, list[0].Count)
	assert.False(t, math.IsNaN(list[0].Count))
}

func TestDecoder_DecodeSections(t *testing.T) {
	input := `{
  "graph1": {"2019": 10},
  "graph2": [{"age_certification": "R", "count": 4}],
  "graph3": {}
}`
	list, err := NewDecoder(strings.NewReader(input)).DecodeSections()
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "graph1", list[0].Name)
	assert.Equal(t, "graph2", list[1].Name)
	assert.Equal(t, "R", list[1].Entries[0].Key)
	assert.Zero(t, list[2].Len())
}

func TestDecoder_DecodeValues(t *testing.T) {
	list, err := NewDecoder(strings.NewReader(`[2019, 2020, "2021"]`)).DecodeValues()
	require.NoError(t, err)
	assert.Equal(t, []any{num("2019"), num("2020"), "2021"}, list)
}

func TestDecoder_Errors(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		_, err := NewDecoder(strings.NewReader("  \n")).Decode()
		assert.True(t, errors.Is(err, ErrEmpty))
	})
	t.Run("scalar document", func(t *testing.T) {
		_, err := NewDecoder(strings.NewReader("42")).Decode()
		assert.True(t, errors.Is(err, ErrShape))
	})
	t.Run("syntax", func(t *testing.T) {
		_, err := NewDecoder(strings.NewReader("{\n\"a\": 1,\n\"b\" 2}")).Decode()
		require.Error(t, err)
		var de DecodeError
		require.True(t, errors.As(err, &de))
		assert.Equal(t, 3, de.Line)
	})
	t.Run("truncated", func(t *testing.T) {
		_, err := NewDecoder(strings.NewReader(`{"a": 1`)).Decode()
		var de DecodeError
		assert.True(t, errors.As(err, &de))
	})
}

func num(str string) json.Number {
	return json.Number(str)
}
