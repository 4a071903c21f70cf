package charts

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/midbel/slices"
)

type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindBucket
)

func (k Kind) Numeric() bool {
	return k == KindNumber || k == KindBucket
}

type Field struct {
	Name string
	Kind Kind
}

var (
	FieldYear          = Field{Name: "release_year", Kind: KindNumber}
	FieldCertification = Field{Name: "age_certification", Kind: KindString}
	FieldRuntime       = Field{Name: "runtime", Kind: KindBucket}
	FieldGenre         = Field{Name: "main_genre", Kind: KindString}
	FieldTitle         = Field{Name: "title", Kind: KindString}
)

// Entry is one key/value pair of an aggregate as received from the backend.
// Value is left untouched: a number, a string, a json.Number, a bool or nil.
type Entry struct {
	Key    string
	Value  any
	Series string
}

type Aggregate struct {
	Entries []Entry
}

func (a *Aggregate) Add(key string, value any) {
	a.Entries = append(a.Entries, Entry{Key: key, Value: value})
}

func (a *Aggregate) AddSerie(serie, key string, value any) {
	a.Entries = append(a.Entries, Entry{Key: key, Value: value, Series: serie})
}

func (a Aggregate) Len() int {
	return len(a.Entries)
}

// AggregateFrom builds an aggregate from a map. Keys are sorted since maps do
// not keep the order of insertion.
func AggregateFrom[T any](values map[string]T) Aggregate {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var agg Aggregate
	for _, k := range keys {
		agg.Add(k, values[k])
	}
	return agg
}

type Record struct {
	Field  string
	Key    string
	Number float64
	Count  float64
	Series string
}

func (r Record) Numeric() bool {
	return !math.IsNaN(r.Number)
}

func (r Record) valid(kind Kind) bool {
	if math.IsNaN(r.Count) || math.IsInf(r.Count, 0) || r.Count < 0 {
		return false
	}
	if kind.Numeric() {
		return !math.IsNaN(r.Number) && !math.IsInf(r.Number, 0)
	}
	return true
}

// Shape turns an aggregate into records of the given field. Entries that can
// not be coerced are dropped without notice: only an empty result matters to
// the callers.
func Shape(raw Aggregate, field Field) []Record {
	list := make([]Record, 0, raw.Len())
	for _, e := range raw.Entries {
		r := Record{
			Field:  field.Name,
			Key:    strings.TrimSpace(e.Key),
			Number: math.NaN(),
			Count:  coerce(e.Value),
			Series: e.Series,
		}
		switch field.Kind {
		case KindNumber:
			r.Number = parseNumber(r.Key)
		case KindBucket:
			r.Number = parseBucket(r.Key)
		default:
		}
		list = append(list, r)
	}
	return filterRecords(list, field.Kind)
}

func filterRecords(list []Record, kind Kind) []Record {
	return slices.Filter(list, func(r Record) bool {
		return r.valid(kind)
	})
}

// SortByCategory gives a copy of the records sorted by their numeric category.
// Records with the same category keep their relative order.
func SortByCategory(list []Record) []Record {
	res := make([]Record, len(list))
	copy(res, list)
	sort.SliceStable(res, func(i, j int) bool {
		return res[i].Number < res[j].Number
	})
	return res
}

func coerce(v any) float64 {
	switch v := v.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case int32:
		return float64(v)
	case uint64:
		return float64(v)
	case json.Number:
		return parseNumber(string(v))
	case string:
		return parseNumber(v)
	case bool:
		if v {
			return 1
		}
		return 0
	default:
		return math.NaN()
	}
}

func parseNumber(str string) float64 {
	str = strings.TrimSpace(str)
	if str == "" {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

// parseBucket accepts plain numbers and bucket labels such as 61-90 or 180+;
// the lower bound of the bucket is used.
func parseBucket(str string) float64 {
	if f := parseNumber(str); !math.IsNaN(f) {
		return f
	}
	str = strings.TrimSpace(str)
	if x, ok := strings.CutSuffix(str, "+"); ok {
		return parseNumber(x)
	}
	if ix := strings.Index(str, "-"); ix > 0 {
		lo, hi := parseNumber(str[:ix]), parseNumber(str[ix+1:])
		if math.IsNaN(hi) || hi < lo {
			return math.NaN()
		}
		return lo
	}
	return math.NaN()
}
