// Package ggedit is an in-memory raster image editor.
//
// # Overview
//
// An Editor holds one decoded image, grayscale or RGB with 8 bits per sample,
// and applies filters to it. Every filter splits the destination rows into
// contiguous ranges and processes each range on its own goroutine, joining
// before the call returns.
//
// # Quick Start
//
//	import "github.com/gogpu/ggedit"
//
//	ed := ggedit.New()
//	defer ed.Close()
//
//	if err := ed.Load("input.png"); err != nil {
//	    log.Fatal(err)
//	}
//	_ = ed.GaussianBlur(5, 1.2, 4)
//	_ = ed.Rotate(30, 4)
//	_ = ed.Save("output.png")
//
// # Filters
//
//   - Brightness: adds a signed delta to every sample, saturating at 0 and 255.
//   - GaussianBlur: convolves with a normalized odd-sized Gaussian kernel.
//   - Rotate: turns the image about its center onto a canvas that fits it.
//   - Sobel: replaces each pixel with its gradient magnitude.
//   - Resize: bilinear scaling to an arbitrary size.
//
// Pixels outside the image are read as the nearest edge pixel. Resampled
// values are rounded half away from zero and clamped to [0, 255].
//
// # Errors
//
// A failing operation leaves the current image exactly as it was. Invalid
// arguments are reported as ErrInvalidParameter, out-of-memory conditions as
// ErrAllocation and operations on an empty editor as ErrNoImage.
//
// # Coordinate System
//
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//   - Rotation angles in degrees, positive turns counter-clockwise on screen
package ggedit

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
