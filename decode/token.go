package decode

import (
	"fmt"
)

type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

const (
	nl        rune = '\n'
	cr             = '\r'
	dquote         = '"'
	backslash      = '\\'
	minus          = '-'
)

var (
	litNaN    = []byte("NaN")
	litInf    = []byte("Infinity")
	litNegInf = []byte("-Infinity")
	litNull   = []byte("null")
)

func isQuote(r rune) bool {
	return r == dquote
}

func isEscape(r rune) bool {
	return r == backslash
}
