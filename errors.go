package charts

import (
	"github.com/cockroachdb/errors"
)

var (
	ErrEmptyDataset = errors.New("empty dataset")
	ErrEmptyDomain  = errors.New("empty domain")
	ErrPadding      = errors.New("padding out of range")
	ErrClosed       = errors.New("chart closed")
)
