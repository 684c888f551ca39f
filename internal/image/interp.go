package image

import "math"

// ClampedAt returns sample c of pixel (x, y) after snapping x to [0, width-1]
// and y to [0, height-1]. Neighborhood filters read through it so that the
// border pixels are replicated outward.
func (b *ImageBuf) ClampedAt(x, y, c int) byte {
	x = clamp(x, 0, b.width-1)
	y = clamp(y, 0, b.height-1)
	return b.data[(y*b.width+x)*b.format.BytesPerPixel()+c]
}

// SampleBilinear samples img at the sub-pixel position (fx, fy), given in
// pixel coordinates where integer values address pixel centers.
//
// The four surrounding pixels are read with edge clamping and blended per
// channel. Each result is rounded to nearest (ties away from zero) and
// clamped to [0, 255]. out must hold at least img.Channels() bytes.
func SampleBilinear(img *ImageBuf, fx, fy float64, out []byte) {
	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	x1 := x0 + 1
	y1 := y0 + 1
	tx := fx - float64(x0)
	ty := fy - float64(y0)

	for c := range img.Channels() {
		v00 := float64(img.ClampedAt(x0, y0, c))
		v10 := float64(img.ClampedAt(x1, y0, c))
		v01 := float64(img.ClampedAt(x0, y1, c))
		v11 := float64(img.ClampedAt(x1, y1, c))
		out[c] = roundByte(lerp2D(v00, v10, v01, v11, tx, ty))
	}
}

// clamp clamps an integer value to [minVal, maxVal].
//
//nolint:unparam // minVal is always 0 currently, but function is general-purpose
func clamp(val, minVal, maxVal int) int {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

// roundByte rounds half away from zero and saturates to a byte.
func roundByte(v float64) byte {
	r := math.Round(v)
	if r < 0 {
		return 0
	}
	if r > 255 {
		return 255
	}
	return byte(r)
}

// lerp performs linear interpolation between a and b.
func lerp(a, b, t float64) float64 {
	return a*(1-t) + b*t
}

// lerp2D performs bilinear interpolation on a 2x2 grid.
func lerp2D(v00, v10, v01, v11, tx, ty float64) float64 {
	v0 := lerp(v00, v10, tx)
	v1 := lerp(v01, v11, tx)
	return lerp(v0, v1, ty)
}
