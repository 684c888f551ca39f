// Package image provides the pixel buffer shared by every ggedit filter.
//
// An ImageBuf stores width × height × channels 8-bit samples in one contiguous
// slice. Sample (x, y, c) lives at (y*width+x)*channels + c, so a row is a
// contiguous run of width*channels bytes and disjoint row ranges never share
// memory.
package image

import (
	"errors"
	"fmt"
)

// Common errors for image operations.
var (
	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("image: invalid dimensions")

	// ErrInvalidFormat is returned when the format or channel count is not supported.
	ErrInvalidFormat = errors.New("image: invalid format")

	// ErrDataTooSmall is returned when provided data is smaller than required.
	ErrDataTooSmall = errors.New("image: data buffer too small")

	// ErrOutOfBounds is returned when pixel coordinates are outside image bounds.
	ErrOutOfBounds = errors.New("image: coordinates out of bounds")

	// ErrAllocation is returned when the requested sample storage is too
	// large to represent or exceeds MaxImageBytes.
	// The caller's existing buffer is never touched when this is returned.
	ErrAllocation = errors.New("image: allocation failed")
)

// MaxImageBytes is the largest sample storage a single ImageBuf may hold.
const MaxImageBytes = 1 << 34

// ImageBuf is a width × height grid of Gray8 or RGB8 pixels.
//
// Thread safety: concurrent readers are safe. Writers must own disjoint rows;
// the parallel filters rely on this and never lock.
type ImageBuf struct {
	data   []byte
	width  int
	height int
	format Format
}

// NewImageBuf allocates a zeroed image buffer with the given dimensions and format.
//
// Allocation is all-or-nothing: on failure no buffer is returned and the error
// wraps ErrInvalidDimensions, ErrInvalidFormat or ErrAllocation.
func NewImageBuf(width, height int, format Format) (*ImageBuf, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if !format.IsValid() {
		return nil, ErrInvalidFormat
	}

	bpp := format.BytesPerPixel()
	if width > MaxImageBytes/bpp/height {
		return nil, fmt.Errorf("%w: %dx%d %s exceeds %d bytes", ErrAllocation, width, height, format, MaxImageBytes)
	}

	data, err := allocate(format.ImageBytes(width, height))
	if err != nil {
		return nil, err
	}

	return &ImageBuf{
		data:   data,
		width:  width,
		height: height,
		format: format,
	}, nil
}

// allocate turns a make length panic into ErrAllocation. Running out of
// memory is fatal to the runtime and is not reported here.
func allocate(n int) (data []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			data = nil
			err = fmt.Errorf("%w: %d bytes: %v", ErrAllocation, n, r)
		}
	}()
	return make([]byte, n), nil
}

// FromRaw creates an ImageBuf holding a copy of interleaved samples.
// data must hold at least width*height*channels bytes laid out row by row.
func FromRaw(data []byte, width, height, channels int) (*ImageBuf, error) {
	format, err := FormatForChannels(channels)
	if err != nil {
		return nil, fmt.Errorf("%w: %d channels", err, channels)
	}

	buf, err := NewImageBuf(width, height, format)
	if err != nil {
		return nil, err
	}

	if len(data) < len(buf.data) {
		return nil, ErrDataTooSmall
	}
	copy(buf.data, data)
	return buf, nil
}

// Clone creates a deep copy of the image buffer.
func (b *ImageBuf) Clone() *ImageBuf {
	newData := make([]byte, len(b.data))
	copy(newData, b.data)

	return &ImageBuf{
		data:   newData,
		width:  b.width,
		height: b.height,
		format: b.format,
	}
}

// Release drops the sample storage. The buffer reports zero dimensions
// afterwards and must not be used by filters again.
func (b *ImageBuf) Release() {
	if b == nil {
		return
	}
	b.data = nil
	b.width = 0
	b.height = 0
}

// Width returns the image width in pixels.
func (b *ImageBuf) Width() int {
	return b.width
}

// Height returns the image height in pixels.
func (b *ImageBuf) Height() int {
	return b.height
}

// Channels returns the number of samples per pixel (1 or 3).
func (b *ImageBuf) Channels() int {
	return b.format.Channels()
}

// Stride returns the number of bytes per row.
func (b *ImageBuf) Stride() int {
	return b.format.RowBytes(b.width)
}

// Format returns the pixel format.
func (b *ImageBuf) Format() Format {
	return b.format
}

// Bounds returns the image dimensions as (width, height).
func (b *ImageBuf) Bounds() (int, int) {
	return b.width, b.height
}

// Data returns the raw sample slice.
func (b *ImageBuf) Data() []byte {
	return b.data
}

// RowBytes returns the samples of row y.
// Returns nil if y is out of bounds.
func (b *ImageBuf) RowBytes(y int) []byte {
	if y < 0 || y >= b.height {
		return nil
	}
	stride := b.Stride()
	start := y * stride
	return b.data[start : start+stride]
}

// PixelOffset returns the byte offset of pixel (x, y) in the data slice.
// Returns -1 if coordinates are out of bounds.
func (b *ImageBuf) PixelOffset(x, y int) int {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return -1
	}
	return (y*b.width + x) * b.format.BytesPerPixel()
}

// PixelBytes returns the samples of pixel (x, y).
// Returns nil if coordinates are out of bounds.
func (b *ImageBuf) PixelBytes(x, y int) []byte {
	offset := b.PixelOffset(x, y)
	if offset < 0 {
		return nil
	}
	return b.data[offset : offset+b.format.BytesPerPixel()]
}

// At returns sample c of pixel (x, y), or 0 when out of bounds.
func (b *ImageBuf) At(x, y, c int) byte {
	offset := b.PixelOffset(x, y)
	if offset < 0 || c < 0 || c >= b.Channels() {
		return 0
	}
	return b.data[offset+c]
}

// Set stores sample c of pixel (x, y).
// Returns ErrOutOfBounds if the coordinates or channel are outside the image.
func (b *ImageBuf) Set(x, y, c int, v byte) error {
	offset := b.PixelOffset(x, y)
	if offset < 0 || c < 0 || c >= b.Channels() {
		return ErrOutOfBounds
	}
	b.data[offset+c] = v
	return nil
}

// SetPixelBytes sets all samples of pixel (x, y).
// Returns ErrOutOfBounds if coordinates are outside image bounds.
func (b *ImageBuf) SetPixelBytes(x, y int, pixel []byte) error {
	offset := b.PixelOffset(x, y)
	if offset < 0 {
		return ErrOutOfBounds
	}
	copy(b.data[offset:offset+b.format.BytesPerPixel()], pixel)
	return nil
}

// Fill sets every pixel to the given samples.
// Missing channels are left at zero; extra values are ignored.
func (b *ImageBuf) Fill(pixel ...byte) {
	bpp := b.format.BytesPerPixel()
	for off := 0; off < len(b.data); off += bpp {
		copy(b.data[off:off+bpp], pixel)
	}
}

// SameSize reports whether both buffers have identical dimensions and format.
func (b *ImageBuf) SameSize(other *ImageBuf) bool {
	return b.width == other.width && b.height == other.height && b.format == other.format
}

// ByteSize returns the total size of the image data in bytes.
func (b *ImageBuf) ByteSize() int {
	return len(b.data)
}

// IsEmpty returns true if the image has zero dimensions or was released.
func (b *ImageBuf) IsEmpty() bool {
	return b == nil || b.width == 0 || b.height == 0
}
