package decode

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

var (
	ErrShape = errors.New("unexpected document shape")
	ErrEmpty = errors.New("empty document")
)

type DecodeError struct {
	Message string
	Position
}

func (e DecodeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Position, e.Message)
}
