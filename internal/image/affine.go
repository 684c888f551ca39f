package image

import "math"

// Affine represents a 2D affine transformation matrix.
//
// The transformation is represented as a 3x3 matrix:
//
//	| a  b  c |
//	| d  e  f |
//	| 0  0  1 |
//
// Filters use it to map destination pixel coordinates back into the source.
type Affine struct {
	a, b, c float64 // First row: x' = ax + by + c
	d, e, f float64 // Second row: y' = dx + ey + f
}

// Translate returns a translation transformation that shifts points by (tx, ty).
func Translate(tx, ty float64) Affine {
	return Affine{
		a: 1, b: 0, c: tx,
		d: 0, e: 1, f: ty,
	}
}

// Scale returns a scaling transformation that scales by (sx, sy) around the origin.
func Scale(sx, sy float64) Affine {
	return Affine{
		a: sx, b: 0, c: 0,
		d: 0, e: sy, f: 0,
	}
}

// Rotate returns a rotation by angle radians around the origin.
// In image coordinates (y pointing down) a positive angle moves points
// clockwise; used as an inverse mapping it turns the image counter-clockwise.
func Rotate(angle float64) Affine {
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	return Affine{
		a: cos, b: -sin, c: 0,
		d: sin, e: cos, f: 0,
	}
}

// Multiply returns the result of multiplying this affine transform by another.
// The result applies 'other' first, then 'this'.
func (a Affine) Multiply(other Affine) Affine {
	return Affine{
		a: a.a*other.a + a.b*other.d,
		b: a.a*other.b + a.b*other.e,
		c: a.a*other.c + a.b*other.f + a.c,
		d: a.d*other.a + a.e*other.d,
		e: a.d*other.b + a.e*other.e,
		f: a.d*other.c + a.e*other.f + a.f,
	}
}

// TransformPoint applies the affine transformation to point (x, y).
func (a Affine) TransformPoint(x, y float64) (float64, float64) {
	return a.a*x + a.b*y + a.c, a.d*x + a.e*y + a.f
}

// PixelCenterScale maps destination pixel centers onto source pixel centers
// for a resampling by (sx, sy) source pixels per destination pixel.
func PixelCenterScale(sx, sy float64) Affine {
	return Translate(-0.5, -0.5).Multiply(Scale(sx, sy)).Multiply(Translate(0.5, 0.5))
}

// RotateBetween maps points of a canvas centered at (fromX, fromY) onto a
// canvas centered at (toX, toY), rotating by angle radians about the centers.
func RotateBetween(angle, fromX, fromY, toX, toY float64) Affine {
	return Translate(toX, toY).Multiply(Rotate(angle)).Multiply(Translate(-fromX, -fromY))
}
