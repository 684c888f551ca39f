package ggedit

import (
	"errors"

	"github.com/gogpu/ggedit/internal/filter"
	"github.com/gogpu/ggedit/internal/image"
)

var (
	// ErrNoImage is returned when an operation needs an image and none is loaded.
	ErrNoImage = errors.New("ggedit: no image loaded")

	// ErrAllocation is returned when pixel storage cannot be allocated.
	ErrAllocation = image.ErrAllocation

	// ErrInvalidParameter is returned for out-of-range filter arguments:
	// an even or too small kernel, a non-positive sigma, a non-finite angle
	// or a non-positive resize dimension.
	ErrInvalidParameter = filter.ErrInvalidParameter

	// ErrUnsupportedFormat is returned when saving to an unknown file extension.
	ErrUnsupportedFormat = image.ErrUnsupportedFormat
)
