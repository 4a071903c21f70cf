package dash

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wcharczuk/go-chart/v2/drawing"

	charts "github.com/midbel/titledash"
)

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

func TestSnapshot(t *testing.T) {
	var (
		specs = append(DefaultSpecs(), ScoreSpec())
		data  = map[string][]charts.Record{
			ChartLine: {
				{Key: "2018", Number: 2018, Count: 7, Series: "MOVIE"},
				{Key: "2019", Number: 2019, Count: 10, Series: "MOVIE"},
				{Key: "2018", Number: 2018, Count: 4, Series: "SHOW"},
				{Key: "2019", Number: 2019, Count: 3, Series: "SHOW"},
			},
			ChartBar: {
				{Key: "PG", Count: 12},
				{Key: "R", Count: 12},
			},
			ChartRuntime: {
				{Key: "0-30", Number: 0, Count: 2},
				{Key: "31-60", Number: 31, Count: 6},
			},
			ChartGenres: {
				{Key: "drama", Count: 40},
				{Key: "comedy", Count: 30},
			},
			ChartIMDb: {
				{Key: "Title A", Count: 8.1},
			},
		}
	)
	for _, spec := range specs {
		t.Run(spec.Id, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Snapshot(&buf, spec, data[spec.Id]))
			assert.True(t, bytes.HasPrefix(buf.Bytes(), pngSignature))
		})
	}
}

func TestSnapshotEmpty(t *testing.T) {
	var buf bytes.Buffer
	err := Snapshot(&buf, DefaultSpecs()[0], nil)
	assert.ErrorIs(t, err, charts.ErrEmptyDataset)
	assert.Zero(t, buf.Len())
}

func TestSnapshotSingleYear(t *testing.T) {
	var (
		spec, _ = specOf(ChartLine)
		list    = []charts.Record{{Key: "2019", Number: 2019, Count: 7}}
		buf     bytes.Buffer
	)
	require.NoError(t, Snapshot(&buf, spec, list))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngSignature))

	xr, yr := snapshotRanges(list)
	assert.Equal(t, 2018.5, xr.Min)
	assert.Equal(t, 2019.5, xr.Max)
	assert.Equal(t, 0.0, yr.Min)
	assert.Equal(t, 7.0, yr.Max)
}

func TestSnapshotZeroPie(t *testing.T) {
	var (
		spec, _ = specOf(ChartGenres)
		list    = []charts.Record{
			{Key: "Drama", Count: 0},
			{Key: "Comedy", Count: 0},
		}
		buf bytes.Buffer
	)
	err := Snapshot(&buf, spec, list)
	assert.ErrorIs(t, err, charts.ErrEmptyDataset)
	assert.Zero(t, buf.Len())
}

func specOf(id string) (Spec, bool) {
	for _, s := range append(DefaultSpecs(), ScoreSpec()) {
		if s.Id == id {
			return s, true
		}
	}
	return Spec{}, false
}

func TestColorOf(t *testing.T) {
	assert.Equal(t, drawing.Color{R: 0x46, G: 0x82, B: 0xb4, A: 255}, colorOf("steelblue"))
	assert.Equal(t, drawing.Color{R: 0x1f, G: 0x77, B: 0xb4, A: 255}, colorOf("#1f77b4"))
	assert.Equal(t, drawing.Color{R: 0xff, G: 0xff, B: 0xff, A: 255}, colorOf("#fff"))
	assert.Equal(t, drawing.ColorBlack, colorOf("#12"))
	assert.Equal(t, drawing.ColorTeal, colorOf("teal"))
}
