package image

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
)

// SnapshotExt is the file extension of lossless ImageBuf snapshots.
const SnapshotExt = ".ggraw"

// Snapshot layout:
//
//	magic    [4]byte "GGRW"
//	version  uint8   1
//	width    uint32  big endian
//	height   uint32  big endian
//	channels uint8   1 or 3
//	payload  zstd frame holding width*height*channels samples
const (
	snapshotMagic   = "GGRW"
	snapshotVersion = 1
)

// ErrInvalidSnapshot is returned when a snapshot header or payload is malformed.
var ErrInvalidSnapshot = errors.New("image: invalid snapshot")

type snapshotHeader struct {
	Magic    [4]byte
	Version  uint8
	Width    uint32
	Height   uint32
	Channels uint8
}

// WriteSnapshot writes the buffer to w in the .ggraw format.
func (b *ImageBuf) WriteSnapshot(w io.Writer) error {
	hdr := snapshotHeader{
		Version:  snapshotVersion,
		Width:    uint32(b.width),  //nolint:gosec // bounded by MaxImageBytes
		Height:   uint32(b.height), //nolint:gosec // bounded by MaxImageBytes
		Channels: uint8(b.Channels()),
	}
	copy(hdr.Magic[:], snapshotMagic)

	if err := binary.Write(w, binary.BigEndian, &hdr); err != nil {
		return fmt.Errorf("image: write snapshot header: %w", err)
	}

	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		return fmt.Errorf("image: snapshot encoder: %w", err)
	}
	if _, err := enc.Write(b.data); err != nil {
		_ = enc.Close()
		return fmt.Errorf("image: write snapshot payload: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("image: write snapshot payload: %w", err)
	}
	return nil
}

// ReadSnapshot reads a buffer written by WriteSnapshot.
func ReadSnapshot(r io.Reader) (*ImageBuf, error) {
	var hdr snapshotHeader
	if err := binary.Read(r, binary.BigEndian, &hdr); err != nil {
		return nil, fmt.Errorf("%w: header: %w", ErrInvalidSnapshot, err)
	}
	if string(hdr.Magic[:]) != snapshotMagic {
		return nil, fmt.Errorf("%w: bad magic %q", ErrInvalidSnapshot, hdr.Magic[:])
	}
	if hdr.Version != snapshotVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrInvalidSnapshot, hdr.Version)
	}

	format, err := FormatForChannels(int(hdr.Channels))
	if err != nil {
		return nil, fmt.Errorf("%w: %d channels", ErrInvalidSnapshot, hdr.Channels)
	}

	width, height := int(hdr.Width), int(hdr.Height)
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSnapshot, ErrInvalidDimensions)
	}
	if width > MaxImageBytes/format.BytesPerPixel()/height {
		return nil, fmt.Errorf("%w: %dx%d %s exceeds %d bytes", ErrInvalidSnapshot, width, height, format, MaxImageBytes)
	}
	size := format.ImageBytes(width, height)

	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: payload: %w", ErrInvalidSnapshot, err)
	}
	defer dec.Close()

	// The header is untrusted: storage grows with the samples actually
	// decoded, and one byte past size is enough to spot trailing data.
	data, err := io.ReadAll(io.LimitReader(dec, int64(size)+1))
	if err != nil {
		return nil, fmt.Errorf("%w: payload: %w", ErrInvalidSnapshot, err)
	}
	switch {
	case len(data) < size:
		return nil, fmt.Errorf("%w: payload: %d of %d bytes", ErrInvalidSnapshot, len(data), size)
	case len(data) > size:
		return nil, fmt.Errorf("%w: payload longer than %d bytes", ErrInvalidSnapshot, size)
	}

	return &ImageBuf{
		data:   data[:size:size],
		width:  width,
		height: height,
		format: format,
	}, nil
}
