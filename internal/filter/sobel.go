package filter

import (
	"math"

	"github.com/gogpu/ggedit/internal/image"
	"github.com/gogpu/ggedit/internal/parallel"
)

// Sobel gradient kernels.
var (
	sobelX = [3][3]int{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	}
	sobelY = [3][3]int{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	}
)

// Sobel replaces every pixel with its gradient magnitude.
//
// RGB neighbors are reduced to gray by an unweighted average before
// convolving. The magnitude is written to every channel, so the result is a
// colorless edge map with the source dimensions and format.
type Sobel struct {
	// Workers is the requested number of row workers.
	Workers int
}

// NewSobel creates a Sobel edge detector.
func NewSobel(workers int) *Sobel {
	return &Sobel{Workers: workers}
}

// Apply writes the edge map of src into a newly allocated buffer.
func (f *Sobel) Apply(exec *parallel.Executor, src *image.ImageBuf) (*image.ImageBuf, error) {
	exec, err := prepare(exec, src)
	if err != nil {
		return nil, err
	}

	dst, err := image.NewImageBuf(src.Width(), src.Height(), src.Format())
	if err != nil {
		return nil, err
	}

	width := src.Width()
	channels := src.Channels()
	exec.ForRows(dst.Height(), f.Workers, func(r parallel.RowRange) {
		for y := r.Start; y < r.End; y++ {
			row := dst.RowBytes(y)
			for x := range width {
				v := gradientMagnitude(src, x, y)
				for c := range channels {
					row[x*channels+c] = v
				}
			}
		}
	})

	return dst, nil
}

// gradientMagnitude returns round(sqrt(gx² + gy²)) at (x, y), clamped to 255.
func gradientMagnitude(src *image.ImageBuf, x, y int) uint8 {
	var sumX, sumY float64
	for ky := -1; ky <= 1; ky++ {
		for kx := -1; kx <= 1; kx++ {
			g := float64(grayAt(src, x+kx, y+ky))
			sumX += float64(sobelX[ky+1][kx+1]) * g
			sumY += float64(sobelY[ky+1][kx+1]) * g
		}
	}
	return roundUint8(math.Sqrt(sumX*sumX + sumY*sumY))
}

// grayAt returns the edge-clamped gray value at (x, y).
func grayAt(src *image.ImageBuf, x, y int) uint8 {
	if src.Format().IsGrayscale() {
		return src.ClampedAt(x, y, 0)
	}
	return RGBToGray(src.ClampedAt(x, y, 0), src.ClampedAt(x, y, 1), src.ClampedAt(x, y, 2))
}

// RGBToGray averages the three channels, rounding to nearest.
func RGBToGray(r, g, b uint8) uint8 {
	return roundUint8((float64(r) + float64(g) + float64(b)) / 3)
}
