package filter

import (
	"fmt"

	"github.com/gogpu/ggedit/internal/image"
	"github.com/gogpu/ggedit/internal/parallel"
)

// Resize scales an image to Width × Height with bilinear resampling.
//
// Destination pixel centers are mapped onto source pixel centers, so resizing
// to the current size is an exact copy.
type Resize struct {
	// Width is the destination width in pixels; > 0.
	Width int

	// Height is the destination height in pixels; > 0.
	Height int

	// Workers is the requested number of row workers.
	Workers int
}

// NewResize creates a resize filter.
func NewResize(width, height, workers int) *Resize {
	return &Resize{
		Width:   width,
		Height:  height,
		Workers: workers,
	}
}

// Apply renders src scaled into a newly allocated buffer.
func (f *Resize) Apply(exec *parallel.Executor, src *image.ImageBuf) (*image.ImageBuf, error) {
	if f.Width <= 0 || f.Height <= 0 {
		return nil, fmt.Errorf("%w: size %dx%d must be positive", ErrInvalidParameter, f.Width, f.Height)
	}
	exec, err := prepare(exec, src)
	if err != nil {
		return nil, err
	}

	dst, err := image.NewImageBuf(f.Width, f.Height, src.Format())
	if err != nil {
		return nil, err
	}

	inverse := image.PixelCenterScale(
		float64(src.Width())/float64(f.Width),
		float64(src.Height())/float64(f.Height))
	channels := src.Channels()

	exec.ForRows(f.Height, f.Workers, func(r parallel.RowRange) {
		for y := r.Start; y < r.End; y++ {
			row := dst.RowBytes(y)
			for x := range f.Width {
				sx, sy := inverse.TransformPoint(float64(x), float64(y))
				image.SampleBilinear(src, sx, sy, row[x*channels:(x+1)*channels])
			}
		}
	})

	return dst, nil
}
