package charts

import (
	"math"
	"strconv"
	"strings"

	"github.com/midbel/titledash/svg"
)

const (
	FontSize  = 10.0
	TickSize  = 6.0
	TickSpace = 9.0
)

type Orientation int

const (
	OrientTop Orientation = 1 << iota
	OrientRight
	OrientBottom
	OrientLeft
)

func (o Orientation) Vertical() bool {
	return o == OrientLeft || o == OrientRight
}

func (o Orientation) Reverse() bool {
	return o == OrientRight || o == OrientTop
}

type Axis interface {
	Render(float64, float64, float64, float64) svg.Element
}

type NumberAxis struct {
	Rotate float64
	Orientation
	Ticks          int
	Scaler         Scaler[float64]
	Domain         []float64
	Format         func(float64) string
	WithInnerTicks bool
	WithLabelTicks bool
}

func (a NumberAxis) Render(length, size, left, top float64) svg.Element {
	g := svg.NewGroup(svg.WithTranslate(left, top), svg.WithClass("axis"))
	d := domainLine(a.Orientation, length, svg.NewStroke("black", 1))
	g.Append(d.AsElement())

	var (
		data   = a.Domain
		font   = svg.NewFont(FontSize)
		format = a.Format
		ticks  = a.Ticks
	)
	if ticks <= 0 {
		ticks = DefaultTicks
	}
	if len(data) == 0 {
		data = a.Scaler.Values(ticks)
	}
	if format == nil {
		format = TickFormat(data)
	}
	for _, f := range data {
		var (
			pos = a.Scaler.Scale(f)
			grp = svg.NewGroup(svg.WithTranslate(pos, 0), svg.WithClass("tick"))
		)
		if a.Vertical() {
			grp.Transform.TX = 0
			grp.Transform.TY = pos
		}
		if a.WithInnerTicks {
			tick := lineTick(a.Orientation, 0, TickSize, d.Stroke)
			grp.Append(tick.AsElement())
		}
		if a.WithLabelTicks {
			text := tickText(a.Orientation, format(f), 0, a.Rotate, font)
			grp.Append(text.AsElement())
		}
		g.Append(grp.AsElement())
	}

	return g.AsElement()
}

type CategoryAxis struct {
	Rotate float64
	Scaler BandScaler
	Orientation
	Domain         []string
	WithInnerTicks bool
}

func (a CategoryAxis) Render(length, size, left, top float64) svg.Element {
	g := svg.NewGroup(svg.WithTranslate(left, top), svg.WithClass("axis"))
	d := domainLine(a.Orientation, length, svg.NewStroke("black", 1))
	g.Append(d.AsElement())

	var (
		align = a.Scaler.Bandwidth() / 2
		font  = svg.NewFont(FontSize)
		data  = a.Domain
	)
	if len(data) == 0 {
		data = a.Scaler.Values(0)
	}
	for _, s := range data {
		var (
			pos  = a.Scaler.Scale(s)
			text = tickText(a.Orientation, s, align, a.Rotate, font)
			grp  = svg.NewGroup(svg.WithTranslate(pos, 0), svg.WithClass("tick"))
		)
		if a.Vertical() {
			grp.Transform.TX = 0
			grp.Transform.TY = pos
		}
		if a.WithInnerTicks {
			tick := lineTick(a.Orientation, align, TickSize, d.Stroke)
			grp.Append(tick.AsElement())
		}
		grp.Append(text.AsElement())
		g.Append(grp.AsElement())
	}

	return g.AsElement()
}

// TickFormat gives the default formatting of numeric ticks: as many decimals
// as the step between ticks needs and thousands grouped by commas.
func TickFormat(ticks []float64) func(float64) string {
	var prec int
	if len(ticks) > 1 {
		step := math.Abs(ticks[1] - ticks[0])
		if step > 0 {
			prec = max(0, -int(math.Floor(math.Log10(step))))
		}
	}
	return func(f float64) string {
		return groupThousands(strconv.FormatFloat(f, 'f', prec, 64))
	}
}

// FormatInteger formats ticks without decimals and without grouping, years
// being the main use.
func FormatInteger(f float64) string {
	return strconv.FormatFloat(math.Round(f), 'f', 0, 64)
}

func groupThousands(str string) string {
	var sign string
	if strings.HasPrefix(str, "-") {
		sign, str = "-", str[1:]
	}
	whole, frac, ok := strings.Cut(str, ".")
	if len(whole) <= 3 {
		return sign + str
	}
	var buf strings.Builder
	buf.WriteString(sign)
	for i, c := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			buf.WriteByte(',')
		}
		buf.WriteRune(c)
	}
	if ok {
		buf.WriteByte('.')
		buf.WriteString(frac)
	}
	return buf.String()
}

func domainLine(orient Orientation, length float64, stroke svg.Stroke) svg.Line {
	x, y := length, 0.0
	if orient.Vertical() {
		x, y = y, x
	}
	d := svg.NewLine(svg.NewPos(0, 0), svg.NewPos(x, y))
	d.Class = append(d.Class, "domain")
	d.Stroke = stroke
	return d
}

func lineTick(orient Orientation, offset, size float64, stroke svg.Stroke) svg.Line {
	var (
		pos1 = svg.NewPos(offset, 0)
		pos2 = svg.NewPos(offset, size)
	)
	switch {
	case orient.Vertical() && !orient.Reverse():
		pos2.X, pos2.Y = -pos2.Y, pos2.X
		pos1.X, pos1.Y = 0, offset
	case orient.Vertical() && orient.Reverse():
		pos2.X, pos2.Y = pos2.Y, pos2.X
		pos1.X, pos1.Y = 0, offset
	case !orient.Vertical() && orient.Reverse():
		pos2.Y = -pos2.Y
	default:
	}
	tick := svg.NewLine(pos1, pos2)
	tick.Stroke = stroke
	return tick
}

func tickText(orient Orientation, str string, offset, rotate float64, font svg.Font) svg.Text {
	var (
		base   = "hanging"
		anchor = "middle"
		x, y   = offset, TickSpace
	)
	switch {
	case orient.Vertical() && !orient.Reverse():
		base = "middle"
		anchor = "end"
		x, y = -y, x
	case orient.Vertical() && orient.Reverse():
		base = "middle"
		anchor = "start"
		x, y = y, x
	case !orient.Vertical() && orient.Reverse():
		base = "auto"
		y = -y
	default:
	}
	text := svg.NewText(str)
	text.Pos = svg.NewPos(x, y)
	text.Font = font
	text.Anchor = anchor
	text.Baseline = base
	if rotate != 0 {
		text.Transform = svg.Rotate(rotate, x, y)
		if rotate < 0 {
			text.Anchor = "end"
		} else {
			text.Anchor = "start"
		}
	}
	return text
}
