package filter

import (
	"github.com/gogpu/ggedit/internal/image"
	"github.com/gogpu/ggedit/internal/parallel"
)

// GaussianBlur convolves an image with a square Gaussian kernel.
//
// Samples outside the image are replaced by the nearest edge sample, so the
// output has the same dimensions as the input.
type GaussianBlur struct {
	// KernelSize is the kernel width in pixels; odd and >= 3.
	KernelSize int

	// Sigma is the standard deviation of the Gaussian; > 0.
	Sigma float64

	// Workers is the requested number of row workers.
	Workers int
}

// NewGaussianBlur creates a Gaussian blur filter.
func NewGaussianBlur(kernelSize int, sigma float64, workers int) *GaussianBlur {
	return &GaussianBlur{
		KernelSize: kernelSize,
		Sigma:      sigma,
		Workers:    workers,
	}
}

// Apply blurs src into a newly allocated buffer of the same size.
func (f *GaussianBlur) Apply(exec *parallel.Executor, src *image.ImageBuf) (*image.ImageBuf, error) {
	exec, err := prepare(exec, src)
	if err != nil {
		return nil, err
	}

	kernel, err := GaussianKernel2D(f.KernelSize, f.Sigma)
	if err != nil {
		return nil, err
	}

	dst, err := image.NewImageBuf(src.Width(), src.Height(), src.Format())
	if err != nil {
		return nil, err
	}

	exec.ForRows(dst.Height(), f.Workers, func(r parallel.RowRange) {
		convolveRows(src, dst, kernel, r)
	})

	return dst, nil
}

// convolveRows fills rows r of dst with the kernel applied to src.
func convolveRows(src, dst *image.ImageBuf, kernel *Kernel, r parallel.RowRange) {
	size := kernel.Size()
	center := kernel.Center()
	width := src.Width()
	channels := src.Channels()

	for y := r.Start; y < r.End; y++ {
		row := dst.RowBytes(y)
		for x := range width {
			for c := range channels {
				var acc float64
				for ky := range size {
					sy := y + ky - center
					for kx := range size {
						acc += float64(src.ClampedAt(x+kx-center, sy, c)) * kernel.At(kx, ky)
					}
				}
				row[x*channels+c] = roundUint8(acc)
			}
		}
	}
}
