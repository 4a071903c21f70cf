package charts

import (
	"github.com/midbel/titledash/svg"
)

var DefaultSize float64 = 4

type PointFunc func(svg.Pos, string) svg.Element

func GetCircle(pos svg.Pos, color string) svg.Element {
	var el svg.Circle
	el.Class = append(el.Class, "dot")
	el.Pos = pos
	el.Fill = svg.NewFill(color)
	el.Radius = DefaultSize / 2
	return el.AsElement()
}

func GetSquare(pos svg.Pos, color string) svg.Element {
	half := DefaultSize / 2
	pos.X -= half
	pos.Y -= half

	var el svg.Rect
	el.Class = append(el.Class, "dot")
	el.Pos = pos
	el.Dim = svg.NewDim(DefaultSize, DefaultSize)
	el.Fill = svg.NewFill(color)

	return el.AsElement()
}

func GetDiamond(pos svg.Pos, color string) svg.Element {
	half := DefaultSize / 2
	pos.X -= half
	pos.Y -= half

	var el svg.Rect
	el.Class = append(el.Class, "dot")
	el.Pos = pos
	el.Dim = svg.NewDim(DefaultSize, DefaultSize)
	el.Fill = svg.NewFill(color)
	el.Transform.RA = 45
	el.Transform.RX = pos.X + half
	el.Transform.RY = pos.Y + half

	return el.AsElement()
}

// Marker gives the point function registered under name, circles being the
// default.
func Marker(name string) PointFunc {
	switch name {
	case "square":
		return GetSquare
	case "diamond":
		return GetDiamond
	default:
		return GetCircle
	}
}
