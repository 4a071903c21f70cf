package charts

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type renderFunc func(*Surface, []Record) error

func (f renderFunc) Render(s *Surface, list []Record) error {
	return f(s, list)
}

func testChart(t *testing.T, rdr Renderer) (*Chart, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	surface := NewSurface("test-chart", 400, 300, Padding{Top: 50, Right: 30, Bottom: 50, Left: 50})
	return NewChart(surface, rdr, zap.New(core).Sugar()), logs
}

func ratings() []Record {
	return []Record{
		{Field: FieldCertification.Name, Key: "G", Count: 12},
		{Field: FieldCertification.Name, Key: "PG", Count: 30},
		{Field: FieldCertification.Name, Key: "R", Count: 0},
	}
}

func TestChartEmptyDataset(t *testing.T) {
	c, logs := testChart(t, BarRenderer{Padding: 0.2})
	assert.Equal(t, StateEmpty, c.State())

	err := c.Draw(nil)
	assert.ErrorIs(t, err, ErrEmptyDataset)
	assert.Equal(t, StateEmpty, c.State())
	assert.True(t, c.Surface().Empty())

	entries := logs.FilterMessage("chart not drawn: empty dataset").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, "test-chart", entries[0].ContextMap()["chart"])
}

func TestChartDraw(t *testing.T) {
	c, _ := testChart(t, BarRenderer{Padding: 0.2})
	c.Labels = Labels{Title: "Ratings", X: "Age Certification", Y: "Number of Titles"}

	require.NoError(t, c.Draw(ratings()))
	assert.Equal(t, StateRendered, c.State())
	assert.Equal(t, 3, c.Surface().Count("bar"))
	assert.Equal(t, 2, c.Surface().Count("caption"))
	assert.Equal(t, 1, c.Surface().Count("title"))

	// drawing again replaces the marks
	require.NoError(t, c.Draw(ratings()[:2]))
	assert.Equal(t, 2, c.Surface().Count("bar"))

	// no data clears what was drawn before
	assert.ErrorIs(t, c.Draw(nil), ErrEmptyDataset)
	assert.Equal(t, 0, c.Surface().Count("bar"))
	assert.Equal(t, StateEmpty, c.State())
}

func TestChartRenderError(t *testing.T) {
	var states []State
	c, logs := testChart(t, nil)
	c.Renderer = renderFunc(func(s *Surface, list []Record) error {
		states = append(states, c.State())
		s.Append(NewTooltip("partial").Element())
		return errors.Wrap(ErrEmptyDomain, "no category")
	})
	err := c.Draw(ratings())
	assert.True(t, errors.Is(err, ErrEmptyDataset))
	assert.Equal(t, []State{StateRendering}, states)
	assert.Equal(t, StateEmpty, c.State())
	assert.True(t, c.Surface().Empty())
	assert.Equal(t, 1, logs.FilterMessage("chart not drawn").Len())
}

func TestChartClose(t *testing.T) {
	var (
		c, _ = testChart(t, ScoreRenderer{MinWidth: 10})
		tip  = NewTooltip("test-tooltip")
	)
	c.Use(tip)
	require.NoError(t, c.Draw(ratings()))
	assert.True(t, tip.Attached())

	c.Close()
	assert.False(t, tip.Attached())
	assert.True(t, c.Surface().Empty())
	assert.ErrorIs(t, c.Draw(ratings()), ErrClosed)
	c.Close()
}

func TestChartRender(t *testing.T) {
	c, _ := testChart(t, BarRenderer{Padding: 0.2, Hover: DefaultHover})
	require.NoError(t, c.Draw(ratings()))

	var buf bytes.Buffer
	require.NoError(t, c.Render(&buf))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<svg"))
	assert.Contains(t, out, `data-chart="test-chart"`)
	assert.Contains(t, out, `svg[data-chart="test-chart"] .bar:hover { fill: orange; }`)
	assert.Equal(t, 1, strings.Count(out, "<style"))
}

func TestChartRedrawSameData(t *testing.T) {
	years := []Record{
		{Key: "2019", Number: 2019, Count: 72},
		{Key: "2018", Number: 2018, Count: 50},
	}
	data := []struct {
		Name string
		Renderer
		List []Record
	}{
		{Name: "line", Renderer: LineRenderer{}, List: years},
		{Name: "bar", Renderer: BarRenderer{Padding: 0.2, Hover: DefaultHover, WithValue: true}, List: ratings()},
		{Name: "pie", Renderer: PieRenderer{Selection: new(Selection), Legend: true}, List: ratings()},
		{Name: "score", Renderer: ScoreRenderer{MinWidth: 10}, List: ratings()},
	}
	for _, d := range data {
		t.Run(d.Name, func(t *testing.T) {
			c, _ := testChart(t, d.Renderer)
			c.Use(NewTooltip("test-tooltip"))

			render := func() string {
				require.NoError(t, c.Draw(d.List))
				var buf bytes.Buffer
				require.NoError(t, c.Render(&buf))
				return buf.String()
			}
			var (
				once  = render()
				twice = render()
			)
			assert.Equal(t, strings.Count(once, "<"), strings.Count(twice, "<"))
			assert.Equal(t, once, twice)
		})
	}
}
