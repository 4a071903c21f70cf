package charts

import (
	"bufio"
	"fmt"
	"io"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/midbel/titledash/logger"
	"github.com/midbel/titledash/svg"
)

type Padding struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

func (p Padding) Horizontal() float64 {
	return p.Left + p.Right
}

func (p Padding) Vertical() float64 {
	return p.Top + p.Bottom
}

// Surface is the drawing target of one chart: the root of its SVG document
// and the id of the mount point it is rendered in.
type Surface struct {
	Id     string
	Width  float64
	Height float64
	Padding

	styles  []string
	scripts []string
	layers  []svg.Element
}

func NewSurface(id string, width, height float64, pad Padding) *Surface {
	return &Surface{
		Id:      id,
		Width:   width,
		Height:  height,
		Padding: pad,
	}
}

func (s *Surface) DrawingWidth() float64 {
	return s.Width - s.Padding.Horizontal()
}

func (s *Surface) DrawingHeight() float64 {
	return s.Height - s.Padding.Vertical()
}

// Selector is the CSS selector of the root element of the surface.
func (s *Surface) Selector() string {
	return fmt.Sprintf(`svg[data-chart="%s"]`, s.Id)
}

// Area gives a group translated to the top left corner of the drawing area.
func (s *Surface) Area(class string) svg.Group {
	return svg.NewGroup(svg.WithClass(class), svg.WithTranslate(s.Padding.Left, s.Padding.Top))
}

func (s *Surface) Append(el svg.Element) {
	if el == nil {
		return
	}
	s.layers = append(s.layers, el)
}

func (s *Surface) AddStyle(css string) {
	for _, c := range s.styles {
		if c == css {
			return
		}
	}
	s.styles = append(s.styles, css)
}

func (s *Surface) AddScript(js string) {
	for _, c := range s.scripts {
		if c == js {
			return
		}
	}
	s.scripts = append(s.scripts, js)
}

// Clear removes every mark, style and script from the surface.
func (s *Surface) Clear() {
	s.layers = s.layers[:0]
	s.styles = s.styles[:0]
	s.scripts = s.scripts[:0]
}

func (s *Surface) Empty() bool {
	return len(s.layers) == 0
}

func (s *Surface) Find(class string) []svg.Element {
	return s.Document().Find(class)
}

func (s *Surface) Count(class string) int {
	return len(s.Find(class))
}

func (s *Surface) Document() svg.SVG {
	doc := svg.NewSVG(s.Width, s.Height)
	doc.OmitProlog = true
	doc.Class = append(doc.Class, "chart")
	doc.SetData("chart", s.Id)
	doc.Styles = append(doc.Styles, s.styles...)
	doc.Scripts = append(doc.Scripts, s.scripts...)
	doc.Children = append(doc.Children, s.layers...)
	return doc
}

func (s *Surface) Render(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if err := s.Document().Render(bw); err != nil {
		return err
	}
	return bw.Flush()
}

type State int

const (
	StateEmpty State = iota
	StateRendering
	StateRendered
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateRendering:
		return "rendering"
	case StateRendered:
		return "rendered"
	default:
		return "unknown"
	}
}

type Renderer interface {
	Render(*Surface, []Record) error
}

// Resource is attached to the surface after every render and lives as long as
// the chart does.
type Resource interface {
	Attach(*Surface)
	Detach()
}

type Labels struct {
	Title string
	X     string
	Y     string
}

// Chart owns a surface and redraws it from records. A chart is not safe for
// concurrent use.
type Chart struct {
	Labels

	Renderer Renderer

	surface   *Surface
	resources []Resource
	state     State
	closed    bool
	logger    *zap.SugaredLogger
}

func NewChart(surface *Surface, rdr Renderer, log *zap.SugaredLogger) *Chart {
	if log == nil {
		log = logger.Logger
	}
	return &Chart{
		Renderer: rdr,
		surface:  surface,
		logger:   log,
	}
}

// Use registers a resource that the chart keeps until it is closed.
func (c *Chart) Use(res Resource) {
	c.resources = append(c.resources, res)
}

func (c *Chart) Id() string {
	return c.surface.Id
}

func (c *Chart) State() State {
	return c.state
}

func (c *Chart) Surface() *Surface {
	return c.surface
}

// Draw clears the surface and renders the records on it. Without records the
// chart goes back to the empty state and ErrEmptyDataset is returned.
func (c *Chart) Draw(list []Record) error {
	if c.closed {
		return ErrClosed
	}
	c.surface.Clear()
	if len(list) == 0 {
		c.state = StateEmpty
		c.logger.Warnw("chart not drawn: empty dataset", logger.FieldChart, c.Id())
		return ErrEmptyDataset
	}
	c.state = StateRendering
	if err := c.Renderer.Render(c.surface, list); err != nil {
		c.surface.Clear()
		c.state = StateEmpty
		c.logger.Warnw("chart not drawn", logger.FieldChart, c.Id(), logger.FieldError, err)
		if errors.Is(err, ErrEmptyDomain) {
			return errors.Mark(err, ErrEmptyDataset)
		}
		return err
	}
	c.drawLabels()
	for _, r := range c.resources {
		r.Attach(c.surface)
	}
	c.state = StateRendered
	c.logger.Debugw("chart drawn", logger.FieldChart, c.Id(), logger.FieldCount, len(list))
	return nil
}

// Reset clears the chart without drawing anything.
func (c *Chart) Reset() {
	c.surface.Clear()
	c.state = StateEmpty
}

func (c *Chart) Render(w io.Writer) error {
	return c.surface.Render(w)
}

// Close tears the chart down: the surface is cleared and the resources are
// released. A closed chart can not be drawn anymore.
func (c *Chart) Close() {
	if c.closed {
		return
	}
	c.closed = true
	for _, r := range c.resources {
		r.Detach()
	}
	c.Reset()
}

func (c *Chart) drawLabels() {
	var (
		s    = c.surface
		grp  = svg.NewGroup(svg.WithClass("labels"))
		font = svg.NewFont(FontSize)
	)
	if c.X != "" {
		tx := svg.NewText(c.X)
		tx.Class = append(tx.Class, "caption")
		tx.Pos = svg.NewPos(s.Padding.Left+s.DrawingWidth()/2, s.Height-s.Padding.Bottom/3)
		tx.Font = font
		tx.Anchor = "middle"
		grp.Append(tx.AsElement())
	}
	if c.Y != "" {
		var (
			x  = s.Padding.Left / 3
			y  = s.Padding.Top + s.DrawingHeight()/2
			tx = svg.NewText(c.Y)
		)
		tx.Class = append(tx.Class, "caption")
		tx.Pos = svg.NewPos(x, y)
		tx.Font = font
		tx.Anchor = "middle"
		tx.Transform = svg.Rotate(-90, x, y)
		grp.Append(tx.AsElement())
	}
	if c.Title != "" {
		tx := svg.NewText(c.Title)
		tx.Class = append(tx.Class, "title")
		tx.Pos = svg.NewPos(s.Width/2, s.Padding.Top/2)
		tx.Font = svg.NewFont(FontSize * 1.5)
		tx.Font.Weight = "bold"
		tx.Anchor = "middle"
		tx.Baseline = "middle"
		grp.Append(tx.AsElement())
	}
	if grp.Len() > 0 {
		s.Append(grp.AsElement())
	}
}

func drawLegend(items []legendItem, left, top float64) svg.Group {
	var (
		offset = FontSize * 2
		grp    = svg.NewGroup(svg.WithClass("legend"), svg.WithTranslate(left, top))
	)
	for i, it := range items {
		g := svg.NewGroup(svg.WithTranslate(0, float64(i)*offset), svg.WithClass(it.Class))
		if it.Key != "" {
			g.SetData("category", it.Key)
		}
		g.Cursor = it.Cursor

		if it.Color != "" {
			var sw svg.Rect
			sw.Class = append(sw.Class, "swatch")
			sw.Dim = svg.NewDim(15, 15)
			sw.Fill = svg.NewFill(it.Color)
			g.Append(sw.AsElement())
		}

		tx := svg.NewText(it.Label)
		tx.Pos = svg.NewPos(20, 12)
		tx.Font = svg.NewFont(FontSize * 1.2)
		g.Append(tx.AsElement())
		grp.Append(g.AsElement())
	}
	return grp
}

type legendItem struct {
	Key    string
	Label  string
	Color  string
	Class  string
	Cursor string
}
