package charts

import (
	"fmt"
	"math"
	"strconv"

	"github.com/midbel/titledash/svg"
)

// LineRenderer draws records sorted by their numeric category as a polyline
// with a marker on every point. Records carrying distinct series labels are
// drawn as one line per series.
type LineRenderer struct {
	Color      string
	PointColor string
	Point      PointFunc
	Palette    Palette
	Ticks      int
	Width      float64
	FormatX    func(float64) string
	FormatY    func(float64) string
}

func (r LineRenderer) Render(s *Surface, list []Record) error {
	list = SortByCategory(list)
	var (
		width  = s.DrawingWidth()
		height = s.DrawingHeight()
	)
	x, err := ContinuousScale(list, ByCategory, NewRange(0, width))
	if err != nil {
		return err
	}
	y, err := ContinuousScale(list, ByCount, NewRange(height, 0), WithZero(), WithNice(r.Ticks))
	if err != nil {
		return err
	}
	area := s.Area("area")
	area.Append(r.drawAxis(x, y, width, height))

	var (
		series = Split(list)
		items  []legendItem
	)
	for i, ser := range series {
		color, dot := r.colors(i, len(series))
		grp := r.drawSerie(ser, x, y, color, dot)
		area.Append(grp.AsElement())
		items = append(items, legendItem{
			Key:   ser.Title,
			Label: ser.Title,
			Color: color,
			Class: "legend-serie",
		})
	}
	if len(series) > 1 {
		lg := drawLegend(items, width-FontSize*10, 0)
		area.Append(lg.AsElement())
	}
	s.Append(area.AsElement())
	return nil
}

func (r LineRenderer) colors(ix, n int) (string, string) {
	var (
		line = r.Color
		dot  = r.PointColor
	)
	if line == "" {
		line = DefaultStroke
	}
	if dot == "" {
		dot = DefaultMarker
	}
	if n > 1 {
		palette := r.Palette
		if len(palette) == 0 {
			palette = Category10
		}
		line = palette.Color(ix)
		dot = line
	}
	return line, dot
}

func (r LineRenderer) drawSerie(ser Serie, x, y LinearScaler, color, dot string) svg.Group {
	var (
		grp   = getBaseGroup("", "serie")
		pat   = getBasePath(false)
		point = r.Point
	)
	if point == nil {
		point = GetCircle
	}
	if ser.Title != "" {
		grp.SetData("serie", ser.Title)
	}
	pat.Class = append(pat.Class, "line")
	pat.Stroke = svg.NewStroke(color, r.Width)
	if pat.Stroke.Width <= 0 {
		pat.Stroke.Width = 1.5
	}

	var dots []svg.Element
	for i, rec := range ser.Records {
		pos := svg.NewPos(x.Scale(rec.Number), y.Scale(rec.Count))
		if i == 0 {
			pat.AbsMoveTo(pos)
		} else {
			pat.AbsLineTo(pos)
		}
		dots = append(dots, point(pos, dot))
	}
	grp.Append(pat.AsElement())
	for _, el := range dots {
		grp.Append(el)
	}
	return grp
}

func (r LineRenderer) drawAxis(x, y LinearScaler, width, height float64) svg.Element {
	format := r.FormatX
	if format == nil {
		format = FormatInteger
	}
	bottom := NumberAxis{
		Orientation:    OrientBottom,
		Scaler:         x,
		Ticks:          r.Ticks,
		Format:         format,
		WithInnerTicks: true,
		WithLabelTicks: true,
	}
	left := NumberAxis{
		Orientation:    OrientLeft,
		Scaler:         y,
		Ticks:          r.Ticks,
		Format:         r.FormatY,
		WithInnerTicks: true,
		WithLabelTicks: true,
	}
	return drawAxis(left, bottom, width, height)
}

// BarRenderer draws one vertical bar per record in input order with the count
// written above each bar.
type BarRenderer struct {
	Fill      string
	Hover     string
	Padding   float64
	Rotate    float64
	Ticks     int
	WithValue bool
}

func (r BarRenderer) Render(s *Surface, list []Record) error {
	var (
		width  = s.DrawingWidth()
		height = s.DrawingHeight()
		fill   = r.Fill
	)
	if fill == "" {
		fill = DefaultFill
	}
	x, err := BandScale(list, ByKey, NewRange(0, width), r.Padding)
	if err != nil {
		return err
	}
	y, err := ContinuousScale(list, ByCount, NewRange(height, 0), WithZero(), WithNice(r.Ticks))
	if err != nil {
		return err
	}
	area := s.Area("area")
	bottom := CategoryAxis{
		Orientation:    OrientBottom,
		Scaler:         x,
		Rotate:         r.Rotate,
		WithInnerTicks: true,
	}
	left := NumberAxis{
		Orientation:    OrientLeft,
		Scaler:         y,
		Ticks:          r.Ticks,
		WithInnerTicks: true,
		WithLabelTicks: true,
	}
	area.Append(drawAxis(left, bottom, width, height))

	var (
		bars   = getBaseGroup("", "bars")
		labels = getBaseGroup("", "labels")
	)
	for _, rec := range list {
		var (
			top = y.Scale(rec.Count)
			el  svg.Rect
		)
		el.Class = append(el.Class, "bar")
		el.SetData("category", rec.Key)
		el.SetData("count", formatCount(rec.Count))
		el.Pos = svg.NewPos(x.Scale(rec.Key), top)
		el.Dim = svg.NewDim(x.Bandwidth(), height-top)
		el.Fill = svg.NewFill(fill)
		bars.Append(el.AsElement())

		if !r.WithValue {
			continue
		}
		tx := svg.NewText(formatCount(rec.Count))
		tx.Class = append(tx.Class, "label")
		tx.Pos = svg.NewPos(x.Scale(rec.Key)+x.Bandwidth()/2, top-5)
		tx.Font = svg.NewFont(FontSize * 1.2)
		tx.Anchor = "middle"
		labels.Append(tx.AsElement())
	}
	area.Append(bars.AsElement())
	if labels.Len() > 0 {
		area.Append(labels.AsElement())
	}
	if r.Hover != "" {
		hover := NewHoverFill("bar", fill, r.Hover)
		hover.Attach(s)
	}
	s.Append(area.AsElement())
	return nil
}

// Wedge is the angular extent of one record in a pie. Angles are in radians,
// clockwise from twelve o'clock.
type Wedge struct {
	Record
	Start float64
	End   float64
}

func (w Wedge) Angle() float64 {
	return w.End - w.Start
}

// Pie computes the wedges of the records, in input order. A null total gives
// wedges of zero angle.
func Pie(list []Record) []Wedge {
	var total float64
	for _, r := range list {
		total += r.Count
	}
	var (
		k     float64
		angle float64
		res   = make([]Wedge, 0, len(list))
	)
	if total > 0 {
		k = 2 * math.Pi / total
	}
	for _, r := range list {
		w := Wedge{
			Record: r,
			Start:  angle,
			End:    angle + r.Count*k,
		}
		angle = w.End
		res = append(res, w)
	}
	return res
}

// PieRenderer draws the records as wedges of a circle centered on the
// surface, colored by category, with a legend on the side.
type PieRenderer struct {
	Radius    float64
	Palette   func(int) Palette
	Selection *Selection
	Stroke    string
	Legend    bool
}

func (r PieRenderer) Render(s *Surface, list []Record) error {
	if len(list) == 0 {
		return ErrEmptyDomain
	}
	var (
		radius  = r.Radius
		palette = r.Palette
		keys    = make([]string, 0, len(list))
	)
	if radius <= 0 {
		radius = math.Min(s.DrawingWidth(), s.DrawingHeight()) / 2
	}
	if palette == nil {
		palette = Rainbow
	}
	for _, rec := range list {
		keys = append(keys, rec.Key)
	}
	var (
		colors = NewOrdinal(keys, palette(len(keys)))
		grp    = getBaseGroup("", "pie")
	)
	grp.Transform = svg.Translate(s.Width/2, s.Height/2)
	for _, w := range Pie(list) {
		pat := getWedgePath(w, radius)
		pat.Class = append(pat.Class, "wedge")
		pat.SetData("category", w.Key)
		pat.SetData("count", formatCount(w.Count))
		pat.Fill = svg.NewFill(colors.Color(w.Key))
		if r.Stroke != "" {
			pat.Stroke = svg.NewStroke(r.Stroke, 2)
		}
		pat.Opacity = r.Selection.Opacity(w.Key)
		grp.Append(pat.AsElement())
	}
	s.Append(grp.AsElement())

	if r.Legend {
		var items []legendItem
		for _, k := range keys {
			items = append(items, legendItem{
				Key:    k,
				Label:  k,
				Color:  colors.Color(k),
				Class:  "legend-item",
				Cursor: "pointer",
			})
		}
		items = append(items, legendItem{
			Label:  "Show all",
			Class:  "legend-clear",
			Cursor: "pointer",
		})
		lg := drawLegend(items, s.Padding.Left-40, s.Padding.Top+70)
		s.Append(lg.AsElement())
	}
	return nil
}

func getWedgePath(w Wedge, radius float64) svg.Path {
	var (
		pat = getBasePath(true)
		da  = w.Angle()
	)
	if da >= 2*math.Pi-1e-6 {
		pat.AbsMoveTo(getPosFromAngle(0, radius))
		pat.AbsArcTo(getPosFromAngle(math.Pi, radius), radius, radius, 0, true, true)
		pat.AbsArcTo(getPosFromAngle(0, radius), radius, radius, 0, true, true)
		pat.ClosePath()
		return pat
	}
	pat.AbsMoveTo(getPosFromAngle(w.Start, radius))
	pat.AbsArcTo(getPosFromAngle(w.End, radius), radius, radius, 0, da > math.Pi, true)
	pat.AbsLineTo(svg.NewPos(0, 0))
	pat.ClosePath()
	return pat
}

// ScoreRenderer draws one horizontal bar per title with a length proportional
// to its score. Bars carry the text shown by the tooltip of the chart.
type ScoreRenderer struct {
	Fill     string
	Padding  float64
	MinWidth float64
	Ticks    int
}

func (r ScoreRenderer) Render(s *Surface, list []Record) error {
	var (
		width  = s.DrawingWidth()
		height = s.DrawingHeight()
		fill   = r.Fill
	)
	if fill == "" {
		fill = DefaultFill
	}
	y, err := BandScale(list, ByKey, NewRange(0, height), r.Padding)
	if err != nil {
		return err
	}
	x, err := ContinuousScale(list, ByCount, NewRange(0, width), WithZero())
	if err != nil {
		return err
	}
	area := s.Area("area")
	bottom := NumberAxis{
		Orientation:    OrientBottom,
		Scaler:         x,
		Ticks:          r.Ticks,
		WithInnerTicks: true,
		WithLabelTicks: true,
	}
	left := CategoryAxis{
		Orientation:    OrientLeft,
		Scaler:         y,
		WithInnerTicks: true,
	}
	area.Append(drawAxis(left, bottom, width, height))

	bars := getBaseGroup("", "bars")
	for _, rec := range list {
		var el svg.Rect
		el.Class = append(el.Class, "bar")
		el.SetData("title", rec.Key)
		el.SetData("score", formatCount(rec.Count))
		el.SetData("tooltip", fmt.Sprintf("%s: %s", rec.Key, formatCount(rec.Count)))
		el.Pos = svg.NewPos(0, y.Scale(rec.Key))
		el.Dim = svg.NewDim(math.Max(x.Scale(rec.Count), r.MinWidth), y.Bandwidth())
		el.Fill = svg.NewFill(fill)
		bars.Append(el.AsElement())
	}
	area.Append(bars.AsElement())
	s.Append(area.AsElement())
	return nil
}

func drawAxis(left, bottom Axis, width, height float64) svg.Element {
	g := svg.NewGroup(svg.WithClass("axes"))
	if left != nil {
		g.Append(left.Render(height, width, 0, 0))
	}
	if bottom != nil {
		g.Append(bottom.Render(width, height, 0, height))
	}
	return g.AsElement()
}

func formatCount(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func getBasePath(fill bool) svg.Path {
	var pat svg.Path
	pat.Rendering = "geometricPrecision"
	if fill {
		pat.Fill.Opacity = 1
	} else {
		pat.Fill = svg.NewFill("none")
	}
	return pat
}

func getBaseGroup(color string, class ...string) svg.Group {
	var g svg.Group
	if color != "" {
		g.Fill = svg.NewFill(color)
		g.Stroke = svg.NewStroke(color, 1)
	}
	g.Class = class
	return g
}

// getPosFromAngle gives the position on the circle of the angle, measured
// clockwise from twelve o'clock.
func getPosFromAngle(angle, radius float64) svg.Pos {
	var (
		x1 = radius * math.Sin(angle)
		y1 = -radius * math.Cos(angle)
	)
	return svg.NewPos(x1, y1)
}
