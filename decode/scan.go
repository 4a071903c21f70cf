package decode

import (
	"bytes"
	"io"
	"unicode/utf8"
)

// Scanner walks a JSON document and rewrites the NaN, Infinity and -Infinity
// literals some producers emit into null. Strings are copied untouched.
type Scanner struct {
	input []byte

	curr int
	next int
	char rune

	Position
	quoted  bool
	escaped bool
}

func Scan(r io.Reader) (*Scanner, error) {
	in, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	sc := Scanner{
		input: bytes.ReplaceAll(in, []byte{byte(cr), byte(nl)}, []byte{byte(nl)}),
	}
	sc.Line++
	return &sc, nil
}

func (s *Scanner) Sanitize() []byte {
	var out bytes.Buffer
	out.Grow(len(s.input))
	for s.read(); !s.done(); s.read() {
		if s.quoted {
			s.scanQuoted()
			out.WriteRune(s.char)
			continue
		}
		if isQuote(s.char) {
			s.quoted = true
			out.WriteRune(s.char)
			continue
		}
		if s.accept(litNaN) || s.accept(litInf) || s.accept(litNegInf) {
			out.Write(litNull)
			continue
		}
		out.WriteRune(s.char)
	}
	return out.Bytes()
}

func (s *Scanner) scanQuoted() {
	switch {
	case s.escaped:
		s.escaped = false
	case isEscape(s.char):
		s.escaped = true
	case isQuote(s.char):
		s.quoted = false
	default:
	}
}

// accept consumes lit when the input continues with it at the current
// position.
func (s *Scanner) accept(lit []byte) bool {
	if !bytes.HasPrefix(s.input[s.curr:], lit) {
		return false
	}
	s.Column += len(lit) - 1
	s.next = s.curr + len(lit)
	return true
}

func (s *Scanner) done() bool {
	return s.curr >= len(s.input)
}

func (s *Scanner) read() {
	if s.next >= len(s.input) {
		s.curr = len(s.input)
		s.char = utf8.RuneError
		return
	}
	if s.char == nl {
		s.Line++
		s.Column = 0
	}
	s.Column++

	r, size := utf8.DecodeRune(s.input[s.next:])
	s.curr = s.next
	s.next += size
	s.char = r
}

// positionAt gives the line and column of the byte at offset.
func positionAt(input []byte, offset int64) Position {
	pos := Position{Line: 1}
	if offset > int64(len(input)) {
		offset = int64(len(input))
	}
	for _, b := range input[:offset] {
		if rune(b) == nl {
			pos.Line++
			pos.Column = 0
			continue
		}
		pos.Column++
	}
	return pos
}
