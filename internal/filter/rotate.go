package filter

import (
	"fmt"
	"math"

	"github.com/gogpu/ggedit/internal/image"
	"github.com/gogpu/ggedit/internal/parallel"
)

// Rotate turns an image by an arbitrary angle about its center.
//
// The destination canvas grows so the whole rotated source fits; pixels that
// map outside the source take the nearest edge color.
type Rotate struct {
	// Angle is the rotation in degrees. Positive values turn counter-clockwise on screen.
	Angle float64

	// Workers is the requested number of row workers.
	Workers int
}

// NewRotate creates a rotation filter.
func NewRotate(angle float64, workers int) *Rotate {
	return &Rotate{
		Angle:   angle,
		Workers: workers,
	}
}

// RotatedSize returns the canvas size holding a width × height image turned
// by angle degrees: ceil(W·|cos θ| + H·|sin θ|) × ceil(W·|sin θ| + H·|cos θ|).
//
// Residue below 1e-9 is dropped before taking the ceiling, so quarter turns
// give exactly H × W. A plain ceiling would add a row and a column there
// (6×3 at 90° would become 4×7).
func RotatedSize(width, height int, angle float64) (int, int) {
	rad := normalizeAngle(angle)
	cosA := math.Abs(math.Cos(rad))
	sinA := math.Abs(math.Sin(rad))

	w, h := float64(width), float64(height)
	newW := ceilSnap(w*cosA + h*sinA)
	newH := ceilSnap(w*sinA + h*cosA)
	return max(newW, 1), max(newH, 1)
}

// sizeEpsilon absorbs the error of cos/sin at multiples of 90°, where
// cos(π/2) is 6e-17 rather than 0.
const sizeEpsilon = 1e-9

// ceilSnap is math.Ceil that treats values within sizeEpsilon of an integer
// as that integer.
func ceilSnap(v float64) int {
	return int(math.Ceil(v - sizeEpsilon))
}

// normalizeAngle reduces degrees into (-360, 360) and converts to radians.
func normalizeAngle(angle float64) float64 {
	return math.Mod(angle, 360) * math.Pi / 180
}

// Apply renders src rotated into a newly allocated buffer.
func (f *Rotate) Apply(exec *parallel.Executor, src *image.ImageBuf) (*image.ImageBuf, error) {
	exec, err := prepare(exec, src)
	if err != nil {
		return nil, err
	}
	if math.IsNaN(f.Angle) || math.IsInf(f.Angle, 0) {
		return nil, fmt.Errorf("%w: angle %v must be finite", ErrInvalidParameter, f.Angle)
	}

	width, height := src.Bounds()
	newW, newH := RotatedSize(width, height, f.Angle)

	dst, err := image.NewImageBuf(newW, newH, src.Format())
	if err != nil {
		return nil, err
	}

	// Maps destination pixels back to source pixels about the two centers:
	// src = R(θ)·(dst - dstCenter) + srcCenter.
	inverse := image.RotateBetween(normalizeAngle(f.Angle),
		float64(newW-1)/2, float64(newH-1)/2,
		float64(width-1)/2, float64(height-1)/2)

	channels := src.Channels()
	exec.ForRows(newH, f.Workers, func(r parallel.RowRange) {
		for y := r.Start; y < r.End; y++ {
			row := dst.RowBytes(y)
			for x := range newW {
				sx, sy := inverse.TransformPoint(float64(x), float64(y))
				image.SampleBilinear(src, sx, sy, row[x*channels:(x+1)*channels])
			}
		}
	})

	return dst, nil
}
