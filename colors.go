package charts

import (
	"fmt"
	"math"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

type Palette []string

var Category10 Palette

func init() {
	Category10 = splitColorString("1f77b4ff7f0e2ca02cd627289467bd8c564be377c27f7f7fbcbd2217becf")
}

func splitColorString(str string) []string {
	var arr []string
	for i := 0; i < len(str); i += 6 {
		arr = append(arr, "#"+str[i:i+6])
	}
	return arr
}

// Color gives the color at index i, cycling over the palette.
func (p Palette) Color(i int) string {
	if len(p) == 0 {
		return "black"
	}
	return p[i%len(p)]
}

// Rainbow samples n colors of the cyclical rainbow scheme. The end of the
// cycle is excluded so the first and the last colors differ.
func Rainbow(n int) Palette {
	var list Palette
	for i := 0; i < n; i++ {
		c := RainbowAt(float64(i) / float64(n))
		list = append(list, HexColor(c))
	}
	return list
}

// RainbowAt gives the color at t of the cubehelix rainbow, t being wrapped in
// [0, 1].
func RainbowAt(t float64) drawing.Color {
	if t < 0 || t > 1 {
		t -= math.Floor(t)
	}
	ts := math.Abs(t - 0.5)
	return cubehelix(360*t-100, 1.5-1.5*ts, 0.8-0.9*ts)
}

func cubehelix(h, s, l float64) drawing.Color {
	const (
		A = -0.14861
		B = 1.78277
		C = -0.29227
		D = -0.90649
		E = 1.97294
	)
	h = (h + 120) * math.Pi / 180
	var (
		a    = s * l * (1 - l)
		cosh = math.Cos(h)
		sinh = math.Sin(h)
	)
	return drawing.Color{
		R: clampChannel(255 * (l + a*(A*cosh+B*sinh))),
		G: clampChannel(255 * (l + a*(C*cosh+D*sinh))),
		B: clampChannel(255 * (l + a*(E*cosh))),
		A: 255,
	}
}

func clampChannel(v float64) uint8 {
	if math.IsNaN(v) {
		return 0
	}
	return uint8(math.Max(0, math.Min(255, roundHalfUp(v))))
}

func HexColor(c drawing.Color) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Ordinal assigns a color to each category in first-seen order. The same
// category always gets the same color.
type Ordinal struct {
	palette Palette
	index   map[string]int
}

func NewOrdinal(keys []string, palette Palette) Ordinal {
	o := Ordinal{
		palette: palette,
		index:   make(map[string]int),
	}
	for _, k := range keys {
		if _, ok := o.index[k]; ok {
			continue
		}
		o.index[k] = len(o.index)
	}
	return o
}

func (o Ordinal) Color(key string) string {
	ix, ok := o.index[key]
	if !ok {
		ix = len(o.index)
		o.index[key] = ix
	}
	return o.palette.Color(ix)
}
