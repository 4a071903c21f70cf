package charts

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShape(t *testing.T) {
	data := []struct {
		Name  string
		Field Field
		Input Aggregate
		Keys  []string
		Count []float64
	}{
		{
			Name:  "categories",
			Field: FieldCertification,
			Input: aggregateOf("PG", 10, "R", json.Number("5"), "G", "3"),
			Keys:  []string{"PG", "R", "G"},
			Count: []float64{10, 5, 3},
		},
		{
			Name:  "invalid counts",
			Field: FieldCertification,
			Input: aggregateOf("PG", -1, "R", nil, "G", "abc", "TV-MA", math.NaN(), "NC-17", 0),
			Keys:  []string{"NC-17"},
			Count: []float64{0},
		},
		{
			Name:  "numeric keys",
			Field: FieldYear,
			Input: aggregateOf("2001", 4, "unknown", 8, " 1999 ", 2),
			Keys:  []string{"2001", "1999"},
			Count: []float64{4, 2},
		},
		{
			Name:  "buckets",
			Field: FieldRuntime,
			Input: aggregateOf("0-30", 1, "61-90", 2, "180+", 3, "90-61", 4, "long", 5),
			Keys:  []string{"0-30", "61-90", "180+"},
			Count: []float64{1, 2, 3},
		},
		{
			Name:  "empty",
			Field: FieldGenre,
			Input: Aggregate{},
		},
	}
	for _, d := range data {
		t.Run(d.Name, func(t *testing.T) {
			list := Shape(d.Input, d.Field)
			require.Len(t, list, len(d.Keys))
			for i := range list {
				assert.Equal(t, d.Field.Name, list[i].Field)
				assert.Equal(t, d.Keys[i], list[i].Key)
				assert.Equal(t, d.Count[i], list[i].Count)
			}
		})
	}
}

func TestShapeNumber(t *testing.T) {
	list := Shape(aggregateOf("61-90", 2, "180+", 3, "2019", 1), FieldRuntime)
	require.Len(t, list, 3)
	assert.Equal(t, 61.0, list[0].Number)
	assert.Equal(t, 180.0, list[1].Number)
	assert.Equal(t, 2019.0, list[2].Number)

	list = Shape(aggregateOf("Drama", 2), FieldGenre)
	require.Len(t, list, 1)
	assert.False(t, list[0].Numeric())
}

func TestShapeSeries(t *testing.T) {
	var agg Aggregate
	agg.AddSerie("MOVIE", "2000", 3)
	agg.AddSerie("SHOW", "2000", 1)

	list := Shape(agg, FieldYear)
	require.Len(t, list, 2)
	assert.Equal(t, "MOVIE", list[0].Series)
	assert.Equal(t, "SHOW", list[1].Series)
}

func TestAggregateFrom(t *testing.T) {
	agg := AggregateFrom(map[string]int{
		"R":  2,
		"G":  1,
		"PG": 3,
	})
	require.Equal(t, 3, agg.Len())
	assert.Equal(t, "G", agg.Entries[0].Key)
	assert.Equal(t, "PG", agg.Entries[1].Key)
	assert.Equal(t, "R", agg.Entries[2].Key)
}

func TestSortByCategory(t *testing.T) {
	list := []Record{
		{Key: "2001", Number: 2001, Count: 1},
		{Key: "1999", Number: 1999, Count: 2},
		{Key: "2001", Number: 2001, Count: 3},
		{Key: "2000", Number: 2000, Count: 4},
	}
	got := SortByCategory(list)
	require.Len(t, got, 4)
	assert.Equal(t, []float64{2, 4, 1, 3}, []float64{got[0].Count, got[1].Count, got[2].Count, got[3].Count})
	assert.Equal(t, "2001", list[0].Key, "input must be left untouched")
}

func TestCoerce(t *testing.T) {
	assert.Equal(t, 1.0, coerce(true))
	assert.Equal(t, 0.0, coerce(false))
	assert.Equal(t, 7.0, coerce(int64(7)))
	assert.Equal(t, 2.5, coerce(json.Number("2.5")))
	assert.True(t, math.IsNaN(coerce([]any{1})))
	assert.True(t, math.IsNaN(coerce("")))
}

func aggregateOf(kv ...any) Aggregate {
	var agg Aggregate
	for i := 0; i+1 < len(kv); i += 2 {
		agg.Add(kv[i].(string), kv[i+1])
	}
	return agg
}
