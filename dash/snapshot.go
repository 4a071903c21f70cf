package dash

import (
	"io"
	"math"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/midbel/svg"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	charts "github.com/midbel/titledash"
)

// Snapshot writes a PNG rendition of the records of a chart. The picture is
// meant for previews and exports: it carries none of the interactions of the
// SVG charts.
func Snapshot(w io.Writer, spec Spec, list []charts.Record) error {
	if len(list) == 0 {
		return charts.ErrEmptyDataset
	}
	style := spec.Style.merge(GlobalStyle())
	var err error
	switch style.Type {
	case RenderLine:
		err = snapshotLine(w, spec, style, list)
	case RenderBar, RenderScore:
		err = snapshotBar(w, spec, style, list)
	case RenderPie:
		err = snapshotPie(w, spec, list)
	default:
		err = errors.Newf("%s: unknown chart type", style.Type)
	}
	return errors.Wrapf(err, "snapshot %s", spec.Id)
}

func snapshotLine(w io.Writer, spec Spec, style Style, list []charts.Record) error {
	var (
		series = charts.Split(charts.SortByCategory(list))
		graph  = chart.Chart{
			Title:  spec.Labels.Title,
			Width:  int(spec.Width),
			Height: int(spec.Height),
			XAxis: chart.XAxis{
				Name: spec.Labels.X,
				ValueFormatter: func(v interface{}) string {
					f, _ := v.(float64)
					return charts.FormatInteger(f)
				},
			},
			YAxis: chart.YAxis{
				Name: spec.Labels.Y,
			},
		}
	)
	for i, s := range series {
		color := style.Stroke
		if len(series) > 1 {
			color = charts.Category10.Color(i)
		}
		cs := chart.ContinuousSeries{
			Name: s.Title,
			Style: chart.Style{
				StrokeColor: colorOf(color),
				StrokeWidth: 1.5,
				DotColor:    colorOf(charts.DefaultMarker),
				DotWidth:    2,
			},
		}
		for _, r := range s.Records {
			cs.XValues = append(cs.XValues, r.Number)
			cs.YValues = append(cs.YValues, r.Count)
		}
		graph.Series = append(graph.Series, cs)
	}
	graph.XAxis.Range, graph.YAxis.Range = snapshotRanges(list)
	if len(series) > 1 {
		graph.Elements = []chart.Renderable{
			chart.Legend(&graph),
		}
	}
	return graph.Render(chart.PNG, w)
}

// snapshotRanges gives the ranges of the axes of a line snapshot. A single
// category is widened to one unit around it and the count axis starts at 0.
func snapshotRanges(list []charts.Record) (*chart.ContinuousRange, *chart.ContinuousRange) {
	var (
		minx = math.Inf(1)
		maxx = math.Inf(-1)
		top  float64
	)
	for _, r := range list {
		minx = math.Min(minx, r.Number)
		maxx = math.Max(maxx, r.Number)
		top = math.Max(top, r.Count)
	}
	if minx == maxx {
		minx, maxx = minx-0.5, maxx+0.5
	}
	if top == 0 {
		top = 1
	}
	xr := chart.ContinuousRange{
		Min: minx,
		Max: maxx,
	}
	yr := chart.ContinuousRange{
		Min: 0,
		Max: top,
	}
	return &xr, &yr
}

func snapshotBar(w io.Writer, spec Spec, style Style, list []charts.Record) error {
	var (
		width = spec.Width - spec.Padding.Horizontal()
		top   float64
	)
	for _, r := range list {
		top = math.Max(top, r.Count)
	}
	if top == 0 {
		top = 1
	}
	bar := chart.BarChart{
		Title:    spec.Labels.Title,
		Width:    int(spec.Width),
		Height:   int(spec.Height),
		BarWidth: int(math.Max(1, width/float64(len(list))*(1-style.Padding))),
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{
				Min: 0,
				Max: top,
			},
		},
	}
	for _, r := range list {
		bar.Bars = append(bar.Bars, chart.Value{
			Label: r.Key,
			Value: r.Count,
			Style: chart.Style{
				FillColor:   colorOf(style.Fill),
				StrokeColor: colorOf(style.Fill),
			},
		})
	}
	return bar.Render(chart.PNG, w)
}

func snapshotPie(w io.Writer, spec Spec, list []charts.Record) error {
	var total float64
	for _, r := range list {
		total += r.Count
	}
	if total == 0 {
		return charts.ErrEmptyDataset
	}
	pie := chart.PieChart{
		Title:  spec.Labels.Title,
		Width:  int(spec.Width),
		Height: int(spec.Height),
	}
	for i, r := range list {
		pie.Values = append(pie.Values, chart.Value{
			Label: r.Key,
			Value: r.Count,
			Style: chart.Style{
				FillColor:   charts.RainbowAt(float64(i) / float64(len(list))),
				StrokeColor: drawing.ColorWhite,
			},
		})
	}
	return pie.Render(chart.PNG, w)
}

var namedColors = map[string]int{
	"steelblue": svg.SteelBlue,
	"orange":    svg.Orange,
	"red":       svg.Red,
	"white":     svg.White,
	"black":     svg.Black,
	"teal":      svg.Teal,
}

func colorOf(str string) drawing.Color {
	if rgb, ok := namedColors[str]; ok {
		return drawing.Color{
			R: uint8(rgb >> 16),
			G: uint8(rgb >> 8),
			B: uint8(rgb),
			A: 255,
		}
	}
	if strings.HasPrefix(str, "#") && len(str) != 4 && len(str) != 7 {
		return drawing.ColorBlack
	}
	return drawing.ParseColor(str)
}
