// Package svg is a small retained element tree serialized with svgo.
//
// Charts build a tree of groups and shapes, inspect it (mark counting, class
// lookup) and only then write it out. svgo itself is a streaming writer, the
// tree gives the charts something to clear and redraw.
package svg

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"math"
	"strconv"
	"strings"

	svgo "github.com/ajstarks/svgo/float"
)

type Element interface {
	Render(*svgo.SVG)
}

type Pos struct {
	X float64
	Y float64
}

func NewPos(x, y float64) Pos {
	return Pos{
		X: x,
		Y: y,
	}
}

type Dim struct {
	W float64
	H float64
}

func NewDim(w, h float64) Dim {
	return Dim{
		W: w,
		H: h,
	}
}

type Fill struct {
	Color   string
	Opacity float64
}

func NewFill(color string) Fill {
	return Fill{
		Color: color,
	}
}

func (f Fill) attrs() []string {
	var list []string
	if f.Color != "" {
		list = append(list, attr("fill", f.Color))
	}
	if f.Opacity > 0 {
		list = append(list, attr("fill-opacity", formatFloat(f.Opacity)))
	}
	return list
}

type Stroke struct {
	Color   string
	Width   float64
	Opacity float64
	Dash    []float64
}

func NewStroke(color string, width float64) Stroke {
	return Stroke{
		Color: color,
		Width: width,
	}
}

func (s *Stroke) DashArray(values ...float64) {
	s.Dash = append(s.Dash[:0], values...)
}

func (s Stroke) attrs() []string {
	var list []string
	if s.Color != "" {
		list = append(list, attr("stroke", s.Color))
	}
	if s.Width > 0 {
		list = append(list, attr("stroke-width", formatFloat(s.Width)))
	}
	if s.Opacity > 0 {
		list = append(list, attr("stroke-opacity", formatFloat(s.Opacity)))
	}
	if len(s.Dash) > 0 {
		var str []string
		for _, d := range s.Dash {
			str = append(str, formatFloat(d))
		}
		list = append(list, attr("stroke-dasharray", strings.Join(str, " ")))
	}
	return list
}

type Font struct {
	Size   float64
	Weight string
	Family string
}

func NewFont(size float64) Font {
	return Font{
		Size: size,
	}
}

func (f Font) attrs() []string {
	var list []string
	if f.Size > 0 {
		list = append(list, attr("font-size", formatFloat(f.Size)+"px"))
	}
	if f.Weight != "" {
		list = append(list, attr("font-weight", f.Weight))
	}
	if f.Family != "" {
		list = append(list, attr("font-family", f.Family))
	}
	return list
}

type Transform struct {
	TX float64
	TY float64
	RA float64
	RX float64
	RY float64
}

func Translate(x, y float64) Transform {
	return Transform{
		TX: x,
		TY: y,
	}
}

func Rotate(angle, x, y float64) Transform {
	return Transform{
		RA: angle,
		RX: x,
		RY: y,
	}
}

func (t Transform) IsZero() bool {
	return t.TX == 0 && t.TY == 0 && t.RA == 0
}

func (t Transform) String() string {
	var parts []string
	if t.TX != 0 || t.TY != 0 {
		parts = append(parts, fmt.Sprintf("translate(%s,%s)", formatFloat(t.TX), formatFloat(t.TY)))
	}
	if t.RA != 0 {
		if t.RX == 0 && t.RY == 0 {
			parts = append(parts, fmt.Sprintf("rotate(%s)", formatFloat(t.RA)))
		} else {
			parts = append(parts, fmt.Sprintf("rotate(%s,%s,%s)", formatFloat(t.RA), formatFloat(t.RX), formatFloat(t.RY)))
		}
	}
	return strings.Join(parts, " ")
}

func (t Transform) attrs() []string {
	if t.IsZero() {
		return nil
	}
	return []string{attr("transform", t.String())}
}

type Attr struct {
	Name  string
	Value string
}

// Attributes are shared by every element of the tree.
type Attributes struct {
	Id      string
	Class   []string
	Data    []Attr
	Opacity float64
	Cursor  string
	Hidden  bool
}

func (a *Attributes) SetData(name, value string) {
	for i := range a.Data {
		if a.Data[i].Name == name {
			a.Data[i].Value = value
			return
		}
	}
	a.Data = append(a.Data, Attr{Name: name, Value: value})
}

func (a Attributes) GetData(name string) (string, bool) {
	for _, d := range a.Data {
		if d.Name == name {
			return d.Value, true
		}
	}
	return "", false
}

func (a Attributes) HasClass(class string) bool {
	for _, c := range a.Class {
		if c == class {
			return true
		}
	}
	return false
}

func (a Attributes) attrs() []string {
	var list []string
	if a.Id != "" {
		list = append(list, attr("id", a.Id))
	}
	if len(a.Class) > 0 {
		list = append(list, attr("class", strings.Join(a.Class, " ")))
	}
	for _, d := range a.Data {
		list = append(list, attr("data-"+d.Name, d.Value))
	}
	if a.Opacity > 0 {
		list = append(list, attr("opacity", formatFloat(a.Opacity)))
	}
	if a.Cursor != "" {
		list = append(list, attr("cursor", a.Cursor))
	}
	if a.Hidden {
		list = append(list, attr("visibility", "hidden"))
	}
	return list
}

type Option func(*Group)

func WithID(id string) Option {
	return func(g *Group) {
		g.Id = id
	}
}

func WithClass(class ...string) Option {
	return func(g *Group) {
		g.Class = append(g.Class, class...)
	}
}

func WithTranslate(x, y float64) Option {
	return func(g *Group) {
		g.Transform.TX = x
		g.Transform.TY = y
	}
}

type Group struct {
	Attributes
	Title     string
	Transform Transform
	Fill      Fill
	Stroke    Stroke
	Font      Font

	Children []Element
}

func NewGroup(options ...Option) Group {
	var g Group
	for _, o := range options {
		o(&g)
	}
	return g
}

func (g *Group) Append(el Element) {
	if el == nil {
		return
	}
	g.Children = append(g.Children, el)
}

func (g *Group) Len() int {
	return len(g.Children)
}

func (g Group) AsElement() Element {
	return g
}

func (g Group) Render(canvas *svgo.SVG) {
	var list []string
	list = append(list, g.Attributes.attrs()...)
	list = append(list, g.Transform.attrs()...)
	list = append(list, g.Fill.attrs()...)
	list = append(list, g.Stroke.attrs()...)
	list = append(list, g.Font.attrs()...)
	if len(list) == 0 {
		canvas.Writer.Write([]byte("<g>\n"))
	} else {
		canvas.Group(list...)
	}
	if g.Title != "" {
		canvas.Title(g.Title)
	}
	for _, c := range g.Children {
		c.Render(canvas)
	}
	canvas.Gend()
}

type Rect struct {
	Attributes
	Pos
	Dim
	Fill      Fill
	Stroke    Stroke
	Transform Transform
}

func (r Rect) AsElement() Element {
	return r
}

func (r Rect) Render(canvas *svgo.SVG) {
	var list []string
	list = append(list, r.Attributes.attrs()...)
	list = append(list, r.Fill.attrs()...)
	list = append(list, r.Stroke.attrs()...)
	list = append(list, r.Transform.attrs()...)
	canvas.Rect(r.X, r.Y, math.Max(r.W, 0), math.Max(r.H, 0), list...)
}

type Circle struct {
	Attributes
	Pos
	Radius float64
	Fill   Fill
	Stroke Stroke
}

func (c Circle) AsElement() Element {
	return c
}

func (c Circle) Render(canvas *svgo.SVG) {
	var list []string
	list = append(list, c.Attributes.attrs()...)
	list = append(list, c.Fill.attrs()...)
	list = append(list, c.Stroke.attrs()...)
	canvas.Circle(c.X, c.Y, c.Radius, list...)
}

type Line struct {
	Attributes
	Starts Pos
	Ends   Pos
	Stroke Stroke
}

func NewLine(starts, ends Pos) Line {
	return Line{
		Starts: starts,
		Ends:   ends,
	}
}

func (i Line) AsElement() Element {
	return i
}

func (i Line) Render(canvas *svgo.SVG) {
	var list []string
	list = append(list, i.Attributes.attrs()...)
	list = append(list, i.Stroke.attrs()...)
	canvas.Line(i.Starts.X, i.Starts.Y, i.Ends.X, i.Ends.Y, list...)
}

type Text struct {
	Attributes
	Pos
	Literal   string
	Font      Font
	Fill      Fill
	Anchor    string
	Baseline  string
	Transform Transform
}

func NewText(str string) Text {
	return Text{
		Literal: str,
	}
}

func (t Text) AsElement() Element {
	return t
}

func (t Text) Render(canvas *svgo.SVG) {
	var list []string
	list = append(list, t.Attributes.attrs()...)
	list = append(list, t.Font.attrs()...)
	list = append(list, t.Fill.attrs()...)
	if t.Anchor != "" {
		list = append(list, attr("text-anchor", t.Anchor))
	}
	if t.Baseline != "" {
		list = append(list, attr("dominant-baseline", t.Baseline))
	}
	list = append(list, t.Transform.attrs()...)
	canvas.Text(t.X, t.Y, t.Literal, list...)
}

// SVG is the document root.
type SVG struct {
	Attributes
	Width  float64
	Height float64

	OmitProlog bool
	Styles     []string
	Scripts    []string
	Children   []Element
}

func NewSVG(width, height float64) SVG {
	return SVG{
		Width:  width,
		Height: height,
	}
}

func (s *SVG) Append(el Element) {
	if el == nil {
		return
	}
	s.Children = append(s.Children, el)
}

func (s SVG) Render(w io.Writer) error {
	var (
		buf    bytes.Buffer
		canvas = svgo.New(&buf)
		list   = s.Attributes.attrs()
	)
	list = append(list, attr("viewBox", fmt.Sprintf("0 0 %s %s", formatFloat(s.Width), formatFloat(s.Height))))
	canvas.Start(s.Width, s.Height, list...)
	if len(s.Styles) > 0 {
		canvas.Style("text/css", s.Styles...)
	}
	for _, c := range s.Children {
		c.Render(canvas)
	}
	if len(s.Scripts) > 0 {
		canvas.Script("application/javascript", s.Scripts...)
	}
	canvas.End()

	out := buf.Bytes()
	if s.OmitProlog {
		if ix := bytes.Index(out, []byte("<svg")); ix > 0 {
			out = out[ix:]
		}
	}
	_, err := w.Write(out)
	return err
}

// Find returns, in document order, the elements of the tree carrying the given
// class.
func Find(root Element, class string) []Element {
	var list []Element
	walk(root, func(el Element) {
		if c, ok := el.(interface{ HasClass(string) bool }); ok && c.HasClass(class) {
			list = append(list, el)
		}
	})
	return list
}

func Count(root Element, class string) int {
	return len(Find(root, class))
}

func walk(el Element, fn func(Element)) {
	if el == nil {
		return
	}
	fn(el)
	switch e := el.(type) {
	case Group:
		for _, c := range e.Children {
			walk(c, fn)
		}
	case *Group:
		for _, c := range e.Children {
			walk(c, fn)
		}
	}
}

func attr(name, value string) string {
	return fmt.Sprintf(`%s="%s"`, name, html.EscapeString(value))
}

func formatFloat(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "0"
	}
	return strconv.FormatFloat(math.Round(f*100)/100, 'f', -1, 64)
}

func (s SVG) Find(class string) []Element {
	var list []Element
	for _, c := range s.Children {
		list = append(list, Find(c, class)...)
	}
	return list
}
