package filter

import (
	"errors"
	"math"
	"testing"
)

func TestGaussianKernel2DInvalid(t *testing.T) {
	tests := []struct {
		name  string
		size  int
		sigma float64
	}{
		{"even size", 4, 1},
		{"size one", 1, 1},
		{"size zero", 0, 1},
		{"negative size", -3, 1},
		{"zero sigma", 3, 0},
		{"negative sigma", 5, -1},
		{"NaN sigma", 3, math.NaN()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k, err := GaussianKernel2D(tt.size, tt.sigma)
			if !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("GaussianKernel2D(%d, %v) error = %v, want ErrInvalidParameter", tt.size, tt.sigma, err)
			}
			if k != nil {
				t.Errorf("GaussianKernel2D(%d, %v) returned a kernel on error", tt.size, tt.sigma)
			}
		})
	}
}

func TestGaussianKernel2DNormalized(t *testing.T) {
	for _, size := range []int{3, 5, 7, 11} {
		for _, sigma := range []float64{0.1, 0.5, 1, 2.5, 100} {
			k, err := GaussianKernel2D(size, sigma)
			if err != nil {
				t.Fatalf("GaussianKernel2D(%d, %v) error: %v", size, sigma, err)
			}
			sum := 0.0
			for ky := range k.Size() {
				for kx := range k.Size() {
					sum += k.At(kx, ky)
				}
			}
			if math.Abs(sum-1.0) > 1e-9 {
				t.Errorf("GaussianKernel2D(%d, %v) sum = %v, want ~1.0", size, sigma, sum)
			}
		}
	}
}

func TestGaussianKernel2DShape(t *testing.T) {
	k, err := GaussianKernel2D(5, 1.2)
	if err != nil {
		t.Fatalf("GaussianKernel2D error: %v", err)
	}

	if k.Size() != 5 || k.Center() != 2 {
		t.Fatalf("Size() = %d, Center() = %d, want 5, 2", k.Size(), k.Center())
	}

	center := k.At(2, 2)
	for ky := range 5 {
		for kx := range 5 {
			w := k.At(kx, ky)
			if w > center {
				t.Errorf("weight (%d,%d) = %v exceeds center %v", kx, ky, w, center)
			}
			// Radial symmetry.
			if mirror := k.At(4-kx, 4-ky); math.Abs(w-mirror) > 1e-15 {
				t.Errorf("weight (%d,%d) = %v != mirrored %v", kx, ky, w, mirror)
			}
			if transposed := k.At(ky, kx); math.Abs(w-transposed) > 1e-15 {
				t.Errorf("weight (%d,%d) = %v != transposed %v", kx, ky, w, transposed)
			}
		}
	}
}

func TestGaussianKernel2DValues(t *testing.T) {
	k, err := GaussianKernel2D(3, 1)
	if err != nil {
		t.Fatalf("GaussianKernel2D error: %v", err)
	}

	sum := 1 + 4*math.Exp(-0.5) + 4*math.Exp(-1)
	tests := []struct {
		kx, ky int
		want   float64
	}{
		{1, 1, 1 / sum},
		{0, 1, math.Exp(-0.5) / sum},
		{0, 0, math.Exp(-1) / sum},
	}
	for _, tt := range tests {
		if got := k.At(tt.kx, tt.ky); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("At(%d, %d) = %v, want %v", tt.kx, tt.ky, got, tt.want)
		}
	}
}

func TestGaussianKernel2DLargeSigmaIsNearlyFlat(t *testing.T) {
	k, err := GaussianKernel2D(3, 100)
	if err != nil {
		t.Fatalf("GaussianKernel2D error: %v", err)
	}
	for ky := range 3 {
		for kx := range 3 {
			if math.Abs(k.At(kx, ky)-1.0/9) > 1e-4 {
				t.Errorf("At(%d, %d) = %v, want ~1/9", kx, ky, k.At(kx, ky))
			}
		}
	}
}
