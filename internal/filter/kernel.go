package filter

import (
	"fmt"
	"math"
)

// Kernel is a square convolution kernel stored row-major.
// It is never mutated after construction.
type Kernel struct {
	size    int
	weights []float64
}

// GaussianKernel2D builds a size × size Gaussian kernel.
//
// The weight at offset (dx, dy) from the center is
// exp(-(dx²+dy²)/(2σ²)); weights are then divided by their sum so they add up
// to 1.0. Normalization is skipped if the raw sum is exactly 0.
//
// size must be odd and at least 3, sigma must be positive; otherwise the
// error wraps ErrInvalidParameter.
func GaussianKernel2D(size int, sigma float64) (*Kernel, error) {
	if err := validateKernel(size, sigma); err != nil {
		return nil, err
	}

	center := size / 2
	twoSigmaSq := 2 * sigma * sigma
	weights := make([]float64, size*size)
	sum := 0.0

	for y := range size {
		for x := range size {
			dx := float64(x - center)
			dy := float64(y - center)
			val := math.Exp(-(dx*dx + dy*dy) / twoSigmaSq)
			weights[y*size+x] = val
			sum += val
		}
	}

	if sum != 0 {
		for i := range weights {
			weights[i] /= sum
		}
	}

	return &Kernel{size: size, weights: weights}, nil
}

func validateKernel(size int, sigma float64) error {
	if size < 3 || size%2 == 0 {
		return fmt.Errorf("%w: kernel size %d must be an odd number >= 3", ErrInvalidParameter, size)
	}
	// NaN fails the comparison as well.
	if !(sigma > 0) {
		return fmt.Errorf("%w: sigma %v must be > 0", ErrInvalidParameter, sigma)
	}
	return nil
}

// Size returns the kernel width (and height).
func (k *Kernel) Size() int {
	return k.size
}

// Center returns the index of the center row and column.
func (k *Kernel) Center() int {
	return k.size / 2
}

// At returns the weight at column kx, row ky.
func (k *Kernel) At(kx, ky int) float64 {
	return k.weights[ky*k.size+kx]
}
