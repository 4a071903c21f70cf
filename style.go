package charts

const (
	DefaultStroke = "steelblue"
	DefaultFill   = "steelblue"
	DefaultHover  = "orange"
	DefaultMarker = "red"
	DimOpacity    = 0.4
)

type Style struct {
	Line struct {
		Color string
		Width float64
	}
	Fill struct {
		Color string
		Hover string
	}
	Point struct {
		Color string
		Shape string
	}
}

func DefaultStyle() Style {
	var s Style
	s.Line.Color = DefaultStroke
	s.Line.Width = 1.5
	s.Fill.Color = DefaultFill
	s.Fill.Hover = DefaultHover
	s.Point.Color = DefaultMarker
	s.Point.Shape = "circle"
	return s
}
