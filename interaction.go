package charts

import (
	"fmt"
	"strconv"

	"github.com/midbel/titledash/svg"
)

// HoverFill swaps the fill of the marks of a class while the pointer is over
// them. The base color is restored by the browser when the pointer leaves.
type HoverFill struct {
	Class  string
	Base   string
	Active string
}

func NewHoverFill(class, base, active string) HoverFill {
	return HoverFill{
		Class:  class,
		Base:   base,
		Active: active,
	}
}

// Fill gives the color of a mark depending on whether the pointer is over it.
func (h HoverFill) Fill(over bool) string {
	if over {
		return h.Active
	}
	return h.Base
}

func (h HoverFill) CSS(selector string) string {
	return fmt.Sprintf("%[1]s .%[2]s { fill: %[3]s; } %[1]s .%[2]s:hover { fill: %[4]s; }", selector, h.Class, h.Base, h.Active)
}

func (h HoverFill) Attach(s *Surface) {
	s.AddStyle(h.CSS(s.Selector()))
}

func (h HoverFill) Detach() {}

// Selection is the highlighted category of a pie chart. Selecting a category
// again keeps it selected; only Clear returns to the unselected state.
type Selection struct {
	category string
	active   bool
}

func (s *Selection) Select(category string) {
	s.category = category
	s.active = true
}

func (s *Selection) Clear() {
	s.category = ""
	s.active = false
}

func (s *Selection) Selected() (string, bool) {
	if s == nil {
		return "", false
	}
	return s.category, s.active
}

func (s *Selection) Opacity(category string) float64 {
	if s == nil || !s.active || s.category == category {
		return 1
	}
	return DimOpacity
}

func (s *Selection) Attach(surface *Surface) {
	surface.AddScript(selectionScript(surface.Selector()))
}

func (s *Selection) Detach() {
	s.Clear()
}

const selectionCode = `(function () {
  var root = document.querySelector('%[1]s');
  if (!root) {
    return;
  }
  var wedges = root.querySelectorAll('.wedge');
  function highlight(category) {
    wedges.forEach(function (w) {
      var on = category === null || w.getAttribute('data-category') === category;
      w.setAttribute('opacity', on ? 1 : %[2]s);
    });
  }
  root.querySelectorAll('.legend-item').forEach(function (item) {
    item.addEventListener('click', function () {
      highlight(item.getAttribute('data-category'));
    });
  });
  root.querySelectorAll('.legend-clear').forEach(function (item) {
    item.addEventListener('click', function () {
      highlight(null);
    });
  });
})();`

func selectionScript(selector string) string {
	return fmt.Sprintf(selectionCode, selector, strconv.FormatFloat(DimOpacity, 'f', -1, 64))
}

// Tooltip is the single tooltip element of a chart. It is created with the
// chart, put back on the surface after every render and removed when the
// chart is closed.
type Tooltip struct {
	Id string

	surface *Surface
}

func NewTooltip(id string) *Tooltip {
	return &Tooltip{
		Id: id,
	}
}

func (t *Tooltip) Attached() bool {
	return t.surface != nil
}

func (t *Tooltip) Attach(s *Surface) {
	t.surface = s
	s.Append(t.Element())
	s.AddScript(tooltipScript(s.Selector(), t.Id))
}

func (t *Tooltip) Detach() {
	t.surface = nil
}

func (t *Tooltip) Element() svg.Element {
	grp := svg.NewGroup(svg.WithID(t.Id), svg.WithClass("tooltip"))
	grp.Hidden = true

	var bg svg.Rect
	bg.Fill = svg.NewFill("black")
	bg.Fill.Opacity = 0.7
	bg.Dim = svg.NewDim(0, 0)

	tx := svg.NewText("")
	tx.Pos = svg.NewPos(5, 5)
	tx.Font = svg.NewFont(FontSize * 1.2)
	tx.Fill = svg.NewFill("white")
	tx.Baseline = "hanging"

	grp.Append(bg.AsElement())
	grp.Append(tx.AsElement())
	return grp.AsElement()
}

const tooltipCode = `(function () {
  var root = document.querySelector('%[1]s');
  if (!root) {
    return;
  }
  var tip = root.querySelector('#%[2]s');
  var text = tip.querySelector('text');
  var box = tip.querySelector('rect');
  function move(evt) {
    var pt = root.createSVGPoint();
    pt.x = evt.clientX;
    pt.y = evt.clientY;
    var p = pt.matrixTransform(root.getScreenCTM().inverse());
    tip.setAttribute('transform', 'translate(' + (p.x + 5) + ',' + (p.y + 5) + ')');
  }
  root.querySelectorAll('[data-tooltip]').forEach(function (el) {
    el.addEventListener('mouseover', function (evt) {
      text.textContent = el.getAttribute('data-tooltip');
      var bb = text.getBBox();
      box.setAttribute('width', bb.width + 10);
      box.setAttribute('height', bb.height + 10);
      tip.setAttribute('visibility', 'visible');
      move(evt);
    });
    el.addEventListener('mousemove', move);
    el.addEventListener('mouseout', function () {
      tip.setAttribute('visibility', 'hidden');
    });
  });
})();`

func tooltipScript(selector, id string) string {
	return fmt.Sprintf(tooltipCode, selector, id)
}
