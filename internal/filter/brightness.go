package filter

import (
	"github.com/gogpu/ggedit/internal/image"
	"github.com/gogpu/ggedit/internal/parallel"
)

// DefaultBrightnessWorkers is the worker count editors use for brightness
// unless configured otherwise.
const DefaultBrightnessWorkers = 2

// Brightness adds Delta to every sample in place, saturating at 0 and 255.
type Brightness struct {
	// Delta is the signed offset added to each sample.
	Delta int

	// Workers is the requested number of row workers.
	Workers int
}

// NewBrightness creates a brightness filter.
func NewBrightness(delta, workers int) *Brightness {
	return &Brightness{
		Delta:   delta,
		Workers: workers,
	}
}

// Apply shifts every sample of src and returns src.
// Each worker only touches the rows of its own range.
func (f *Brightness) Apply(exec *parallel.Executor, src *image.ImageBuf) (*image.ImageBuf, error) {
	exec, err := prepare(exec, src)
	if err != nil {
		return nil, err
	}

	exec.ForRows(src.Height(), f.Workers, func(r parallel.RowRange) {
		for y := r.Start; y < r.End; y++ {
			row := src.RowBytes(y)
			for i, v := range row {
				row[i] = clamp255(int(v) + f.Delta)
			}
		}
	})

	return src, nil
}
