package filter

import (
	"errors"
	"math"

	"github.com/gogpu/ggedit/internal/image"
	"github.com/gogpu/ggedit/internal/parallel"
)

// Common errors for filter operations.
var (
	// ErrInvalidParameter is returned when a filter parameter is out of range.
	// Returned errors wrap it with the specific reason.
	ErrInvalidParameter = errors.New("filter: invalid parameter")

	// ErrNilSource is returned when Apply receives no image or a released one.
	ErrNilSource = errors.New("filter: nil source image")
)

// Filter transforms an image.
//
// Apply returns the resulting buffer. Filters that work in place return src
// itself; the others return a newly allocated buffer and leave src unchanged.
// A nil exec selects parallel.Default().
type Filter interface {
	Apply(exec *parallel.Executor, src *image.ImageBuf) (*image.ImageBuf, error)
}

// prepare validates the source and resolves the executor.
func prepare(exec *parallel.Executor, src *image.ImageBuf) (*parallel.Executor, error) {
	if src.IsEmpty() {
		return nil, ErrNilSource
	}
	if exec == nil {
		exec = parallel.Default()
	}
	return exec, nil
}

// clamp255 clamps an integer to the byte range.
func clamp255(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// roundUint8 rounds half away from zero and clamps to [0, 255].
func roundUint8(v float64) uint8 {
	return clamp255(int(math.Round(v)))
}
