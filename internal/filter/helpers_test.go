package filter

import (
	"testing"

	"github.com/gogpu/ggedit/internal/image"
)

// Test helper functions shared across filter tests.

// newFilledBuf creates a buffer with every pixel set to pixel.
func newFilledBuf(t testing.TB, w, h int, format image.Format, pixel ...byte) *image.ImageBuf {
	t.Helper()
	buf, err := image.NewImageBuf(w, h, format)
	if err != nil {
		t.Fatalf("NewImageBuf(%d, %d, %v) failed: %v", w, h, format, err)
	}
	buf.Fill(pixel...)
	return buf
}

// newPatternBuf creates a buffer whose samples follow a deterministic,
// non-uniform pattern.
func newPatternBuf(t testing.TB, w, h int, format image.Format) *image.ImageBuf {
	t.Helper()
	buf, err := image.NewImageBuf(w, h, format)
	if err != nil {
		t.Fatalf("NewImageBuf(%d, %d, %v) failed: %v", w, h, format, err)
	}
	data := buf.Data()
	for i := range data {
		data[i] = byte((i*37 + i/7*11) % 256)
	}
	return buf
}

// newGrayRows creates a Gray8 buffer from rows of samples.
func newGrayRows(t testing.TB, rows ...[]byte) *image.ImageBuf {
	t.Helper()
	var data []byte
	for _, r := range rows {
		data = append(data, r...)
	}
	buf, err := image.FromRaw(data, len(rows[0]), len(rows), 1)
	if err != nil {
		t.Fatalf("FromRaw failed: %v", err)
	}
	return buf
}

// assertSameSamples fails if the buffers differ in size or in any sample.
func assertSameSamples(t testing.TB, got, want *image.ImageBuf) {
	t.Helper()
	if !got.SameSize(want) {
		t.Fatalf("size = %dx%d %v, want %dx%d %v",
			got.Width(), got.Height(), got.Format(), want.Width(), want.Height(), want.Format())
	}
	g, w := got.Data(), want.Data()
	for i := range g {
		if g[i] != w[i] {
			t.Fatalf("sample %d (pixel %d, channel %d) = %d, want %d",
				i, i/want.Channels(), i%want.Channels(), g[i], w[i])
		}
	}
}

// assertAllSamples fails unless every sample equals v.
func assertAllSamples(t testing.TB, buf *image.ImageBuf, v byte) {
	t.Helper()
	for i, s := range buf.Data() {
		if s != v {
			t.Fatalf("sample %d = %d, want %d", i, s, v)
		}
	}
}
