package image

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif" // register GIF decoding
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xfmoulet/qoi"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp" // register WebP decoding
)

// I/O errors.
var (
	// ErrUnsupportedFormat is returned when the image format is not supported.
	ErrUnsupportedFormat = errors.New("image: unsupported format")

	// ErrEmptyData is returned when image data is empty.
	ErrEmptyData = errors.New("image: empty data")
)

// jpegQuality is the quality used when saving JPEG files.
const jpegQuality = 95

// LoadImage loads an image from the given file path.
//
// Snapshots (.ggraw) are read directly; every other file is decoded by
// content sniffing, covering PNG, JPEG, GIF, BMP, TIFF, WebP and QOI.
func LoadImage(path string) (*ImageBuf, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("image: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if strings.EqualFold(filepath.Ext(path), SnapshotExt) {
		return ReadSnapshot(f)
	}
	return Decode(f)
}

// LoadImageFromBytes loads an image from a byte slice, auto-detecting the format.
func LoadImageFromBytes(data []byte) (*ImageBuf, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}
	if bytes.HasPrefix(data, []byte(snapshotMagic)) {
		return ReadSnapshot(bytes.NewReader(data))
	}
	return Decode(bytes.NewReader(data))
}

// Decode decodes an image from the given reader, auto-detecting the format.
func Decode(r io.Reader) (*ImageBuf, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("image: decode: %w", err)
	}
	return FromStdImage(img)
}

// FromStdImage converts a standard library image into an ImageBuf.
//
// Gray and Gray16 sources become FormatGray8; everything else becomes
// FormatRGB8 with the alpha channel dropped.
func FromStdImage(img image.Image) (*ImageBuf, error) {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	switch src := img.(type) {
	case *image.Gray:
		buf, err := NewImageBuf(width, height, FormatGray8)
		if err != nil {
			return nil, err
		}
		for y := range height {
			srcStart := y * src.Stride
			copy(buf.RowBytes(y), src.Pix[srcStart:srcStart+width])
		}
		return buf, nil

	case *image.Gray16:
		buf, err := NewImageBuf(width, height, FormatGray8)
		if err != nil {
			return nil, err
		}
		for y := range height {
			row := buf.RowBytes(y)
			for x := range width {
				row[x] = byte(src.Gray16At(bounds.Min.X+x, bounds.Min.Y+y).Y >> 8)
			}
		}
		return buf, nil
	}

	buf, err := NewImageBuf(width, height, FormatRGB8)
	if err != nil {
		return nil, err
	}

	// Fast path for NRGBA images
	if nrgba, ok := img.(*image.NRGBA); ok {
		for y := range height {
			srcStart := y * nrgba.Stride
			row := buf.RowBytes(y)
			for x := range width {
				copy(row[x*3:x*3+3], nrgba.Pix[srcStart+x*4:srcStart+x*4+3])
			}
		}
		return buf, nil
	}

	// Generic slow path for any image type
	for y := range height {
		row := buf.RowBytes(y)
		for x := range width {
			c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			row[x*3] = c.R
			row[x*3+1] = c.G
			row[x*3+2] = c.B
		}
	}
	return buf, nil
}

// ToStdImage converts the ImageBuf to a standard library image.
// Returns *image.Gray for FormatGray8 and an opaque *image.NRGBA for FormatRGB8.
func (b *ImageBuf) ToStdImage() image.Image {
	rect := image.Rect(0, 0, b.width, b.height)

	if b.format == FormatGray8 {
		gray := image.NewGray(rect)
		for y := range b.height {
			copy(gray.Pix[y*gray.Stride:], b.RowBytes(y))
		}
		return gray
	}

	nrgba := image.NewNRGBA(rect)
	for y := range b.height {
		row := b.RowBytes(y)
		dstStart := y * nrgba.Stride
		for x := range b.width {
			srcOff := x * 3
			dstOff := dstStart + x*4
			nrgba.Pix[dstOff] = row[srcOff]
			nrgba.Pix[dstOff+1] = row[srcOff+1]
			nrgba.Pix[dstOff+2] = row[srcOff+2]
			nrgba.Pix[dstOff+3] = 255
		}
	}
	return nrgba
}

// Save writes the image to path, choosing the encoder from the file extension.
// Supported extensions: .png, .jpg, .jpeg, .bmp, .tif, .tiff, .qoi and .ggraw.
func (b *ImageBuf) Save(path string) error {
	ext := filepath.Ext(path)
	if !CanEncode(ext) {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("image: create file: %w", err)
	}

	if err := b.Encode(f, ext); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}

// CanEncode reports whether Encode supports the file extension.
func CanEncode(ext string) bool {
	switch strings.ToLower(ext) {
	case ".png", ".jpg", ".jpeg", ".bmp", ".tif", ".tiff", ".qoi", SnapshotExt:
		return true
	default:
		return false
	}
}

// Encode writes the image to w in the format named by ext (e.g. ".png").
func (b *ImageBuf) Encode(w io.Writer, ext string) error {
	var err error
	switch strings.ToLower(ext) {
	case ".png":
		err = png.Encode(w, b.ToStdImage())
	case ".jpg", ".jpeg":
		err = jpeg.Encode(w, b.ToStdImage(), &jpeg.Options{Quality: jpegQuality})
	case ".bmp":
		err = bmp.Encode(w, b.ToStdImage())
	case ".tif", ".tiff":
		err = tiff.Encode(w, b.ToStdImage(), &tiff.Options{Compression: tiff.Deflate})
	case ".qoi":
		err = qoi.Encode(w, b.ToStdImage())
	case SnapshotExt:
		return b.WriteSnapshot(w)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return fmt.Errorf("image: encode %s: %w", strings.TrimPrefix(strings.ToLower(ext), "."), err)
	}
	return nil
}
