package svg

import (
	"strings"

	svgo "github.com/ajstarks/svgo/float"
)

type Path struct {
	Attributes
	Fill      Fill
	Stroke    Stroke
	Transform Transform
	Rendering string

	commands []string
}

func (p *Path) AbsMoveTo(pos Pos) {
	p.commands = append(p.commands, "M"+formatPos(pos))
}

func (p *Path) AbsLineTo(pos Pos) {
	p.commands = append(p.commands, "L"+formatPos(pos))
}

func (p *Path) AbsArcTo(pos Pos, rx, ry, rotate float64, large, sweep bool) {
	var str strings.Builder
	str.WriteString("A")
	str.WriteString(formatFloat(rx))
	str.WriteString(",")
	str.WriteString(formatFloat(ry))
	str.WriteString(",")
	str.WriteString(formatFloat(rotate))
	str.WriteString(",")
	str.WriteString(formatFlag(large))
	str.WriteString(",")
	str.WriteString(formatFlag(sweep))
	str.WriteString(",")
	str.WriteString(formatPos(pos))
	p.commands = append(p.commands, str.String())
}

func (p *Path) ClosePath() {
	p.commands = append(p.commands, "Z")
}

// Len gives the number of commands of the path.
func (p Path) Len() int {
	return len(p.commands)
}

func (p Path) Data() string {
	return strings.Join(p.commands, "")
}

func (p Path) AsElement() Element {
	return p
}

func (p Path) Render(canvas *svgo.SVG) {
	if len(p.commands) == 0 {
		return
	}
	var list []string
	list = append(list, p.Attributes.attrs()...)
	list = append(list, p.Fill.attrs()...)
	list = append(list, p.Stroke.attrs()...)
	list = append(list, p.Transform.attrs()...)
	if p.Rendering != "" {
		list = append(list, attr("shape-rendering", p.Rendering))
	}
	canvas.Path(p.Data(), list...)
}

func formatPos(pos Pos) string {
	return formatFloat(pos.X) + "," + formatFloat(pos.Y)
}

func formatFlag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
