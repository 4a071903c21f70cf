// Package decode reads the aggregates sent by the backend. Entries keep the
// order in which they appear in the document.
package decode

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/cockroachdb/errors"

	charts "github.com/midbel/titledash"
)

const (
	DefaultValue  = "count"
	DefaultSeries = "type"
)

type Option func(*Decoder)

// WithKey sets the property giving the category in arrays of records.
func WithKey(field string) Option {
	return func(d *Decoder) {
		d.key = field
	}
}

func WithValue(field string) Option {
	return func(d *Decoder) {
		d.value = field
	}
}

func WithSeries(field string) Option {
	return func(d *Decoder) {
		d.series = field
	}
}

// Section is one named aggregate of a combined document.
type Section struct {
	Name string
	charts.Aggregate
}

type Decoder struct {
	key    string
	value  string
	series string

	reader io.Reader
	input  []byte
}

func NewDecoder(r io.Reader, options ...Option) *Decoder {
	d := Decoder{
		value:  DefaultValue,
		series: DefaultSeries,
		reader: r,
	}
	for _, o := range options {
		o(&d)
	}
	return &d
}

// Decode reads a single aggregate. The document is either a mapping of
// category to value or an array of records.
func (d *Decoder) Decode() (charts.Aggregate, error) {
	dec, err := d.decoder()
	if err != nil {
		return charts.Aggregate{}, err
	}
	tok, err := dec.Token()
	if err != nil {
		return charts.Aggregate{}, d.wrap(dec, err)
	}
	agg, err := d.decodeAggregate(dec, tok)
	if err != nil {
		return agg, d.wrap(dec, err)
	}
	return agg, nil
}

// DecodeSections reads a mapping of name to aggregate.
func (d *Decoder) DecodeSections() ([]Section, error) {
	dec, err := d.decoder()
	if err != nil {
		return nil, err
	}
	if err := expectDelim(dec, '{'); err != nil {
		return nil, d.wrap(dec, err)
	}
	var list []Section
	for dec.More() {
		name, err := readKey(dec)
		if err != nil {
			return nil, d.wrap(dec, err)
		}
		tok, err := dec.Token()
		if err != nil {
			return nil, d.wrap(dec, err)
		}
		agg, err := d.decodeAggregate(dec, tok)
		if err != nil {
			return nil, d.wrap(dec, errors.Wrapf(err, "section %s", name))
		}
		list = append(list, Section{Name: name, Aggregate: agg})
	}
	if err := expectDelim(dec, '}'); err != nil {
		return nil, d.wrap(dec, err)
	}
	return list, nil
}

// DecodeValues reads an array of scalar values.
func (d *Decoder) DecodeValues() ([]any, error) {
	dec, err := d.decoder()
	if err != nil {
		return nil, err
	}
	if err := expectDelim(dec, '['); err != nil {
		return nil, d.wrap(dec, err)
	}
	var list []any
	for dec.More() {
		var v any
		if err := dec.Decode(&v); err != nil {
			return nil, d.wrap(dec, err)
		}
		list = append(list, scalar(v))
	}
	if err := expectDelim(dec, ']'); err != nil {
		return nil, d.wrap(dec, err)
	}
	return list, nil
}

func (d *Decoder) decoder() (*json.Decoder, error) {
	sc, err := Scan(d.reader)
	if err != nil {
		return nil, errors.Wrap(err, "read document")
	}
	d.input = sc.Sanitize()
	if len(bytes.TrimSpace(d.input)) == 0 {
		return nil, ErrEmpty
	}
	dec := json.NewDecoder(bytes.NewReader(d.input))
	dec.UseNumber()
	return dec, nil
}

func (d *Decoder) decodeAggregate(dec *json.Decoder, tok json.Token) (charts.Aggregate, error) {
	switch tok {
	case json.Delim('{'):
		return d.decodeObject(dec)
	case json.Delim('['):
		return d.decodeArray(dec)
	default:
		return charts.Aggregate{}, errors.Wrapf(ErrShape, "got %v", tok)
	}
}

func (d *Decoder) decodeObject(dec *json.Decoder) (charts.Aggregate, error) {
	var agg charts.Aggregate
	for dec.More() {
		key, err := readKey(dec)
		if err != nil {
			return agg, err
		}
		var v any
		if err := dec.Decode(&v); err != nil {
			return agg, err
		}
		agg.Add(key, scalar(v))
	}
	return agg, expectDelim(dec, '}')
}

func (d *Decoder) decodeArray(dec *json.Decoder) (charts.Aggregate, error) {
	var agg charts.Aggregate
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return agg, err
		}
		switch tok {
		case json.Delim('{'):
			e, err := d.decodeRecord(dec)
			if err != nil {
				return agg, err
			}
			agg.Entries = append(agg.Entries, e)
		case json.Delim('['):
			e, err := d.decodePair(dec)
			if err != nil {
				return agg, err
			}
			agg.Entries = append(agg.Entries, e)
		default:
			return agg, errors.Wrapf(ErrShape, "array element %v", tok)
		}
	}
	return agg, expectDelim(dec, ']')
}

// decodeRecord reads one object of an array of records. Without an explicit
// key property, the first property that is neither the value nor the series
// gives the category.
func (d *Decoder) decodeRecord(dec *json.Decoder) (charts.Entry, error) {
	var (
		e     charts.Entry
		found bool
	)
	for dec.More() {
		name, err := readKey(dec)
		if err != nil {
			return e, err
		}
		var v any
		if err := dec.Decode(&v); err != nil {
			return e, err
		}
		switch {
		case name == d.value:
			e.Value = scalar(v)
		case name == d.series:
			e.Series = stringify(v)
		case d.key == "" && !found:
			e.Key, found = stringify(v), true
		case name == d.key:
			e.Key, found = stringify(v), true
		default:
		}
	}
	return e, expectDelim(dec, '}')
}

func (d *Decoder) decodePair(dec *json.Decoder) (charts.Entry, error) {
	var (
		e    charts.Entry
		list []any
	)
	for dec.More() {
		var v any
		if err := dec.Decode(&v); err != nil {
			return e, err
		}
		list = append(list, v)
	}
	if len(list) != 2 {
		return e, errors.Wrapf(ErrShape, "pair with %d elements", len(list))
	}
	e.Key = stringify(list[0])
	e.Value = scalar(list[1])
	return e, expectDelim(dec, ']')
}

func (d *Decoder) wrap(dec *json.Decoder, err error) error {
	var (
		syn *json.SyntaxError
		typ *json.UnmarshalTypeError
	)
	switch {
	case errors.As(err, &syn):
		return errors.WithStack(DecodeError{
			Message:  syn.Error(),
			Position: positionAt(d.input, syn.Offset),
		})
	case errors.As(err, &typ):
		return errors.WithStack(DecodeError{
			Message:  typ.Error(),
			Position: positionAt(d.input, typ.Offset),
		})
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return errors.WithStack(DecodeError{
			Message:  "unexpected end of document",
			Position: positionAt(d.input, dec.InputOffset()),
		})
	default:
		return err
	}
}

func readKey(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", err
	}
	key, ok := tok.(string)
	if !ok {
		return "", errors.Wrapf(ErrShape, "property name %v", tok)
	}
	return key, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok != want {
		return errors.Wrapf(ErrShape, "want %s, got %v", want, tok)
	}
	return nil
}

// scalar keeps numbers, strings, booleans and null. Nested values are
// replaced by nil.
func scalar(v any) any {
	switch v.(type) {
	case map[string]any, []any:
		return nil
	default:
		return v
	}
}

func stringify(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		if v {
			return "true"
		}
		return "false"
	default:
		return ""
	}
}
