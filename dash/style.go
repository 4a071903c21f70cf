package dash

import (
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/midbel/svg"

	charts "github.com/midbel/titledash"
)

const (
	RenderLine  = "line"
	RenderBar   = "bar"
	RenderPie   = "pie"
	RenderScore = "score"
)

type Style struct {
	Type        string
	Stroke      string
	Fill        string
	Hover       string
	Point       string
	Rotate      float64
	Padding     float64
	OuterRadius float64
	MinWidth    float64
	WithValue   bool
	Legend      bool
}

func GlobalStyle() Style {
	def := charts.DefaultStyle()
	return Style{
		Type:    RenderLine,
		Stroke:  def.Line.Color,
		Fill:    def.Fill.Color,
		Point:   def.Point.Shape,
		Padding: 0.2,
	}
}

func (s Style) getPointFunc() charts.PointFunc {
	return charts.Marker(s.Point)
}

func (s Style) merge(g Style) Style {
	if s.Type == "" {
		s.Type = g.Type
	}
	if s.Stroke == "" {
		s.Stroke = g.Stroke
	}
	if s.Fill == "" {
		s.Fill = g.Fill
	}
	if s.Point == "" {
		s.Point = g.Point
	}
	if s.Padding == 0 {
		s.Padding = g.Padding
	}
	if s.OuterRadius == 0 && g.OuterRadius != 0 {
		s.OuterRadius = g.OuterRadius
	}
	return s
}

// ErrColor is returned for a color that is neither a SVG color keyword nor a
// #rgb or #rrggbb value.
var ErrColor = errors.New("invalid color")

func checkColor(str string) error {
	if str == "" || slices.Contains(svg.Colors, str) {
		return nil
	}
	if hex, ok := strings.CutPrefix(str, "#"); ok && (len(hex) == 3 || len(hex) == 6) {
		if strings.Trim(strings.ToLower(hex), "0123456789abcdef") == "" {
			return nil
		}
	}
	return errors.Wrapf(ErrColor, "%q", str)
}

func (s Style) makeRenderer(sel *charts.Selection) (charts.Renderer, error) {
	for _, c := range []string{s.Stroke, s.Fill, s.Hover} {
		if err := checkColor(c); err != nil {
			return nil, err
		}
	}
	switch s.Type {
	case RenderLine:
		def := charts.DefaultStyle()
		return charts.LineRenderer{
			Color:      s.Stroke,
			PointColor: def.Point.Color,
			Point:      s.getPointFunc(),
			Width:      def.Line.Width,
		}, nil
	case RenderBar:
		return charts.BarRenderer{
			Fill:      s.Fill,
			Hover:     s.Hover,
			Padding:   s.Padding,
			Rotate:    s.Rotate,
			WithValue: s.WithValue,
		}, nil
	case RenderPie:
		return charts.PieRenderer{
			Radius:    s.OuterRadius,
			Selection: sel,
			Stroke:    "white",
			Legend:    s.Legend,
		}, nil
	case RenderScore:
		return charts.ScoreRenderer{
			Fill:     s.Fill,
			Padding:  s.Padding,
			MinWidth: s.MinWidth,
		}, nil
	default:
		return nil, errors.Newf("%s: unknown chart type", s.Type)
	}
}
