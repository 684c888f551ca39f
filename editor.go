package ggedit

import (
	"bufio"
	"fmt"
	"io"

	"github.com/gogpu/ggedit/internal/filter"
	"github.com/gogpu/ggedit/internal/image"
	"github.com/gogpu/ggedit/internal/parallel"
)

// DefaultMatrixRows is the number of rows WriteMatrix prints when asked for
// a non-positive count.
const DefaultMatrixRows = 10

// Editor owns a single image and applies filters to it.
//
// Every operation either replaces the image completely or leaves it exactly
// as it was. The image buffer is released when it is replaced or when the
// Editor is closed.
//
// Editor is not safe for concurrent use; each filter call parallelizes
// internally and blocks until done.
type Editor struct {
	img               *image.ImageBuf
	exec              *parallel.Executor
	brightnessWorkers int
}

// Ensure Editor implements io.Closer
var _ io.Closer = (*Editor)(nil)

// New creates an empty editor.
func New(opts ...Option) *Editor {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	exec := o.exec
	if exec == nil {
		exec = parallel.Default()
	}

	return &Editor{
		exec:              exec,
		brightnessWorkers: o.brightnessWorkers,
	}
}

// Load decodes the image file at path and makes it the current image.
//
// PNG, JPEG, GIF, BMP, TIFF, WebP, QOI and .ggraw snapshots are recognized.
// Gray images load with one channel, everything else with three; alpha is
// discarded. If decoding fails the current image is kept.
func (e *Editor) Load(path string) error {
	img, err := image.LoadImage(path)
	if err != nil {
		return fmt.Errorf("ggedit: load %s: %w", path, err)
	}
	e.replace(img)
	Logger().Info("ggedit: image loaded", "path", path,
		"width", img.Width(), "height", img.Height(), "channels", img.Channels())
	return nil
}

// LoadBytes decodes an encoded image held in memory, like Load.
func (e *Editor) LoadBytes(data []byte) error {
	img, err := image.LoadImageFromBytes(data)
	if err != nil {
		return fmt.Errorf("ggedit: load: %w", err)
	}
	e.replace(img)
	Logger().Info("ggedit: image loaded",
		"width", img.Width(), "height", img.Height(), "channels", img.Channels())
	return nil
}

// SetImage installs a copy of raw interleaved samples as the current image.
// channels must be 1 (gray) or 3 (RGB) and data must hold at least
// width*height*channels bytes, row by row.
func (e *Editor) SetImage(width, height, channels int, data []byte) error {
	img, err := image.FromRaw(data, width, height, channels)
	if err != nil {
		return fmt.Errorf("ggedit: set image: %w", err)
	}
	e.replace(img)
	return nil
}

// Save encodes the current image to path. The format follows the file
// extension: .png, .jpg, .jpeg, .bmp, .tif, .tiff, .qoi or .ggraw.
func (e *Editor) Save(path string) error {
	if !e.Loaded() {
		return ErrNoImage
	}
	if err := e.img.Save(path); err != nil {
		return fmt.Errorf("ggedit: save %s: %w", path, err)
	}
	Logger().Info("ggedit: image saved", "path", path)
	return nil
}

// Loaded reports whether the editor holds an image.
func (e *Editor) Loaded() bool {
	return !e.img.IsEmpty()
}

// Width returns the image width, or 0 when nothing is loaded.
func (e *Editor) Width() int {
	if !e.Loaded() {
		return 0
	}
	return e.img.Width()
}

// Height returns the image height, or 0 when nothing is loaded.
func (e *Editor) Height() int {
	if !e.Loaded() {
		return 0
	}
	return e.img.Height()
}

// Channels returns 1 for gray, 3 for RGB, or 0 when nothing is loaded.
func (e *Editor) Channels() int {
	if !e.Loaded() {
		return 0
	}
	return e.img.Channels()
}

// Pixels returns a copy of the samples in row-major order, channels
// interleaved. It returns nil when nothing is loaded.
func (e *Editor) Pixels() []byte {
	if !e.Loaded() {
		return nil
	}
	return append([]byte(nil), e.img.Data()...)
}

// WorkerFallbacks returns how many filter runs had to process rows on the
// calling goroutine because the worker budget was exhausted.
func (e *Editor) WorkerFallbacks() int64 {
	return e.exec.Fallbacks()
}

// Brightness adds delta to every sample in place, saturating at 0 and 255.
func (e *Editor) Brightness(delta int) error {
	Logger().Debug("ggedit: brightness", "delta", delta, "workers", e.brightnessWorkers)
	return e.apply("brightness", filter.NewBrightness(delta, e.brightnessWorkers))
}

// GaussianBlur blurs the image with a kernelSize × kernelSize Gaussian.
// kernelSize must be odd and at least 3, sigma must be positive.
func (e *Editor) GaussianBlur(kernelSize int, sigma float64, workers int) error {
	Logger().Debug("ggedit: gaussian blur", "size", kernelSize, "sigma", sigma, "workers", workers)
	return e.apply("gaussian blur", filter.NewGaussianBlur(kernelSize, sigma, workers))
}

// Rotate turns the image by angle degrees about its center. The canvas
// grows to hold the whole rotated image; uncovered corners repeat the
// nearest edge pixel.
func (e *Editor) Rotate(angle float64, workers int) error {
	Logger().Debug("ggedit: rotate", "angle", angle, "workers", workers)
	return e.apply("rotate", filter.NewRotate(angle, workers))
}

// Sobel replaces the image with its edge magnitude map.
func (e *Editor) Sobel(workers int) error {
	Logger().Debug("ggedit: sobel", "workers", workers)
	return e.apply("sobel", filter.NewSobel(workers))
}

// Resize scales the image to width × height with bilinear sampling.
func (e *Editor) Resize(width, height, workers int) error {
	Logger().Debug("ggedit: resize", "width", width, "height", height, "workers", workers)
	return e.apply("resize", filter.NewResize(width, height, workers))
}

// apply runs f on the current image and installs the result.
func (e *Editor) apply(op string, f filter.Filter) error {
	if !e.Loaded() {
		return ErrNoImage
	}

	dst, err := f.Apply(e.exec, e.img)
	if err != nil {
		return fmt.Errorf("ggedit: %s: %w", op, err)
	}
	e.replace(dst)

	Logger().Info("ggedit: "+op+" applied",
		"width", dst.Width(), "height", dst.Height(), "channels", dst.Channels())
	return nil
}

// replace makes img current, releasing the previous buffer unless it is img.
func (e *Editor) replace(img *image.ImageBuf) {
	if e.img != img {
		e.img.Release()
	}
	e.img = img
}

// WriteMatrix prints the first maxRows rows of samples to w, one text line
// per row. Gray pixels print as "%3d ", RGB pixels as "(%3d,%3d,%3d) ".
// A trailing "... (more rows)" line marks truncated output.
func (e *Editor) WriteMatrix(w io.Writer, maxRows int) error {
	if !e.Loaded() {
		return ErrNoImage
	}
	if maxRows <= 0 {
		maxRows = DefaultMatrixRows
	}

	bw := bufio.NewWriter(w)
	channels := e.img.Channels()
	gray := e.img.Format().IsGrayscale()
	rows := min(maxRows, e.img.Height())
	for y := range rows {
		row := e.img.RowBytes(y)
		for x := range e.img.Width() {
			px := row[x*channels : (x+1)*channels]
			if gray {
				fmt.Fprintf(bw, "%3d ", px[0])
			} else {
				fmt.Fprintf(bw, "(%3d,%3d,%3d) ", px[0], px[1], px[2])
			}
		}
		_ = bw.WriteByte('\n')
	}
	if e.img.Height() > rows {
		_, _ = bw.WriteString("... (more rows)\n")
	}
	return bw.Flush()
}

// Close releases the current image. The editor may be reused by loading
// another image.
func (e *Editor) Close() error {
	e.img.Release()
	e.img = nil
	return nil
}
