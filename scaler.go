package charts

import (
	"math"
	"slices"

	"github.com/cockroachdb/errors"
)

const DefaultTicks = 10

type ScalerConstraint interface {
	~float64 | ~string
}

type Scaler[T ScalerConstraint] interface {
	Scale(T) float64
	Space() float64
	Values(int) []T
	Max() float64
	Min() float64
}

type Domain struct {
	Fst float64
	Lst float64
}

func NumberDomain(f, t float64) Domain {
	return Domain{
		Fst: f,
		Lst: t,
	}
}

func (d Domain) Diff(v float64) float64 {
	return v - d.Fst
}

func (d Domain) Extend() float64 {
	return d.Lst - d.Fst
}

func (d Domain) Degenerate() bool {
	return d.Extend() == 0
}

// Nice extends the domain outward to round tick boundaries. It gives back the
// domain unchanged when no stable tick step can be found.
func (d Domain) Nice(count int) Domain {
	if d.Degenerate() || math.IsNaN(d.Extend()) || math.IsInf(d.Extend(), 0) {
		return d
	}
	start, stop := d.Fst, d.Lst
	reverse := stop < start
	if reverse {
		start, stop = stop, start
	}
	var prestep float64
	for i := 0; i < 10; i++ {
		step := tickIncrement(start, stop, float64(count))
		if step == prestep {
			if reverse {
				start, stop = stop, start
			}
			return NumberDomain(start, stop)
		}
		switch {
		case step > 0:
			start = math.Floor(start/step) * step
			stop = math.Ceil(stop/step) * step
		case step < 0:
			start = math.Ceil(start*step) / step
			stop = math.Floor(stop*step) / step
		default:
			return d
		}
		prestep = step
	}
	return d
}

type Range struct {
	F float64
	T float64
}

func NewRange(f, t float64) Range {
	return Range{
		F: f,
		T: t,
	}
}

func (r Range) Len() float64 {
	return r.T - r.F
}

func (r Range) Max() float64 {
	return math.Max(r.F, r.T)
}

func (r Range) Min() float64 {
	return math.Min(r.F, r.T)
}

// LinearScaler maps a continuous domain on a pixel range. The range can be
// inverted to get a Y axis growing upward.
type LinearScaler struct {
	Range
	Domain
}

func NumberScaler(dom Domain, rg Range) LinearScaler {
	return LinearScaler{
		Range:  rg,
		Domain: dom,
	}
}

func (s LinearScaler) Scale(v float64) float64 {
	if s.Degenerate() {
		return s.F + s.Len()/2
	}
	return s.F + s.Diff(v)/s.Extend()*s.Len()
}

func (s LinearScaler) Space() float64 {
	if s.Degenerate() {
		return 0
	}
	return s.Len() / s.Extend()
}

func (s LinearScaler) Values(count int) []float64 {
	return Ticks(s.Fst, s.Lst, count)
}

func (s LinearScaler) Nice(count int) LinearScaler {
	x := s
	x.Domain = s.Domain.Nice(count)
	return x
}

type Accessor func(Record) float64

func ByCount(r Record) float64 {
	return r.Count
}

func ByCategory(r Record) float64 {
	return r.Number
}

type scaleConfig struct {
	zero bool
	nice int
}

type ScaleOption func(*scaleConfig)

// WithZero forces the lower bound of the domain to 0.
func WithZero() ScaleOption {
	return func(c *scaleConfig) {
		c.zero = true
	}
}

func WithNice(count int) ScaleOption {
	return func(c *scaleConfig) {
		if count <= 0 {
			count = DefaultTicks
		}
		c.nice = count
	}
}

func ContinuousScale(list []Record, get Accessor, rg Range, options ...ScaleOption) (LinearScaler, error) {
	var cfg scaleConfig
	for _, o := range options {
		o(&cfg)
	}
	var (
		fst  = math.Inf(1)
		lst  = math.Inf(-1)
		seen bool
	)
	for _, r := range list {
		v := get(r)
		if math.IsNaN(v) {
			continue
		}
		seen = true
		fst = math.Min(fst, v)
		lst = math.Max(lst, v)
	}
	if !seen {
		return LinearScaler{}, errors.Wrap(ErrEmptyDomain, "continuous scale")
	}
	if cfg.zero {
		fst = math.Min(fst, 0)
		if lst == 0 && fst == 0 {
			lst = 1
		}
	}
	s := NumberScaler(NumberDomain(fst, lst), rg)
	if cfg.nice > 0 {
		s = s.Nice(cfg.nice)
	}
	return s, nil
}

// BandScaler assigns to each category an equal band of the range. Padding is
// used both between bands and on the outer edges of the range.
type BandScaler struct {
	Range
	Strings []string
	Padding float64

	index map[string]int
}

func StringScaler(str []string, rg Range, padding float64) BandScaler {
	s := BandScaler{
		Range:   rg,
		Padding: padding,
		index:   make(map[string]int),
	}
	for _, v := range str {
		if _, ok := s.index[v]; ok {
			continue
		}
		s.index[v] = len(s.Strings)
		s.Strings = append(s.Strings, v)
	}
	return s
}

func BandScale(list []Record, key func(Record) string, rg Range, padding float64) (BandScaler, error) {
	if padding < 0 || padding >= 1 || math.IsNaN(padding) {
		return BandScaler{}, errors.Wrapf(ErrPadding, "band scale: %.2f", padding)
	}
	if len(list) == 0 {
		return BandScaler{}, errors.Wrap(ErrEmptyDomain, "band scale")
	}
	str := make([]string, 0, len(list))
	for _, r := range list {
		str = append(str, key(r))
	}
	return StringScaler(str, rg, padding), nil
}

func ByKey(r Record) string {
	return r.Key
}

func (s BandScaler) Len() int {
	return len(s.Strings)
}

func (s BandScaler) Step() float64 {
	n := float64(len(s.Strings))
	if n == 0 {
		return 0
	}
	return (s.Max() - s.Min()) / math.Max(1, n-s.Padding+s.Padding*2)
}

func (s BandScaler) Bandwidth() float64 {
	return s.Step() * (1 - s.Padding)
}

func (s BandScaler) Space() float64 {
	return s.Step()
}

func (s BandScaler) offset() float64 {
	var (
		n    = float64(len(s.Strings))
		step = s.Step()
	)
	return s.Min() + (s.Max()-s.Min()-step*(n-s.Padding))*0.5
}

// Scale gives the start of the band of the category or NaN when the category
// is not part of the domain.
func (s BandScaler) Scale(v string) float64 {
	ix, ok := s.index[v]
	if !ok {
		return math.NaN()
	}
	if s.T < s.F {
		ix = len(s.Strings) - 1 - ix
	}
	return s.offset() + s.Step()*float64(ix)
}

func (s BandScaler) Values(c int) []string {
	if c > 0 && c < len(s.Strings) {
		return s.Strings[:c]
	}
	return s.Strings
}

// Ticks computes round tick values between start and stop in the same way
// d3-array does.
func Ticks(start, stop float64, count int) []float64 {
	if count <= 0 || math.IsNaN(start) || math.IsNaN(stop) {
		return nil
	}
	if start == stop {
		return []float64{start}
	}
	reverse := stop < start
	if reverse {
		start, stop = stop, start
	}
	i1, i2, inc := tickSpec(start, stop, float64(count))
	if !(i2 >= i1) {
		return nil
	}
	var (
		n    = int(i2-i1) + 1
		list = make([]float64, n)
	)
	for i := 0; i < n; i++ {
		if inc < 0 {
			list[i] = (i1 + float64(i)) / -inc
		} else {
			list[i] = (i1 + float64(i)) * inc
		}
	}
	if reverse {
		slices.Reverse(list)
	}
	return list
}

var (
	e10 = math.Sqrt(50)
	e5  = math.Sqrt(10)
	e2  = math.Sqrt(2)
)

func tickIncrement(start, stop, count float64) float64 {
	_, _, inc := tickSpec(start, stop, count)
	return inc
}

func tickSpec(start, stop, count float64) (float64, float64, float64) {
	var (
		step   = (stop - start) / math.Max(0, count)
		power  = math.Floor(math.Log10(step))
		err    = step / math.Pow(10, power)
		factor = 1.0
	)
	switch {
	case err >= e10:
		factor = 10
	case err >= e5:
		factor = 5
	case err >= e2:
		factor = 2
	}
	var i1, i2, inc float64
	if power < 0 {
		inc = math.Pow(10, -power) / factor
		i1 = roundHalfUp(start * inc)
		i2 = roundHalfUp(stop * inc)
		if i1/inc < start {
			i1++
		}
		if i2/inc > stop {
			i2--
		}
		inc = -inc
	} else {
		inc = math.Pow(10, power) * factor
		i1 = roundHalfUp(start / inc)
		i2 = roundHalfUp(stop / inc)
		if i1*inc < start {
			i1++
		}
		if i2*inc > stop {
			i2--
		}
	}
	if i2 < i1 && 0.5 <= count && count < 2 {
		return tickSpec(start, stop, count*2)
	}
	return i1, i2, inc
}

func roundHalfUp(f float64) float64 {
	return math.Floor(f + 0.5)
}
