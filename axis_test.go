package charts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/midbel/titledash/svg"
)

func TestTickFormat(t *testing.T) {
	data := []struct {
		Ticks []float64
		Value float64
		Want  string
	}{
		{Ticks: []float64{0, 0.2, 0.4}, Value: 0.4, Want: "0.4"},
		{Ticks: []float64{0, 0.05}, Value: 0.05, Want: "0.05"},
		{Ticks: []float64{0, 1000, 2000}, Value: 2000, Want: "2,000"},
		{Ticks: []float64{0, 5000}, Value: -12000, Want: "-12,000"},
		{Ticks: []float64{0, 20, 40}, Value: 140, Want: "140"},
		{Ticks: []float64{7}, Value: 7, Want: "7"},
	}
	for _, d := range data {
		format := TickFormat(d.Ticks)
		assert.Equal(t, d.Want, format(d.Value))
	}
	assert.Equal(t, "1,234,567.5", groupThousands("1234567.5"))
	assert.Equal(t, "2000", FormatInteger(1999.6))
}

func TestNumberAxis(t *testing.T) {
	a := NumberAxis{
		Orientation:    OrientBottom,
		Scaler:         NumberScaler(NumberDomain(0, 100), NewRange(0, 500)),
		Ticks:          10,
		WithInnerTicks: true,
		WithLabelTicks: true,
	}
	el := a.Render(500, 300, 0, 300)
	assert.Equal(t, 11, svg.Count(el, "tick"))
	assert.Equal(t, 1, svg.Count(el, "domain"))

	grp, ok := el.(svg.Group)
	require.True(t, ok)
	assert.Equal(t, 300.0, grp.Transform.TY)

	a.Domain = []float64{0, 50, 100}
	assert.Equal(t, 3, svg.Count(a.Render(500, 300, 0, 0), "tick"))
}

func TestCategoryAxis(t *testing.T) {
	s, err := BandScale([]Record{{Key: "G"}, {Key: "PG"}, {Key: "R"}}, ByKey, NewRange(0, 300), 0)
	require.NoError(t, err)

	a := CategoryAxis{
		Orientation: OrientLeft,
		Scaler:      s,
		Rotate:      -45,
	}
	el := a.Render(300, 200, 0, 0)
	assert.Equal(t, 3, svg.Count(el, "tick"))

	ticks := svg.Find(el, "tick")
	second, ok := ticks[1].(svg.Group)
	require.True(t, ok)
	assert.Equal(t, 100.0, second.Transform.TY)
	assert.Equal(t, 0.0, second.Transform.TX)

	text, ok := second.Children[0].(svg.Text)
	require.True(t, ok)
	assert.Equal(t, "PG", text.Literal)
	assert.Equal(t, "end", text.Anchor)
}
