package image

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"os"
	"path/filepath"
	"testing"
)

// newGradient creates an RGB8 buffer with distinct values per pixel.
func newGradient(t testing.TB, w, h int) *ImageBuf {
	t.Helper()
	buf, err := NewImageBuf(w, h, FormatRGB8)
	if err != nil {
		t.Fatal(err)
	}
	for y := range h {
		for x := range w {
			_ = buf.SetPixelBytes(x, y, []byte{uint8(x * 8), uint8(y * 8), uint8(x + y)})
		}
	}
	return buf
}

func samePixels(t *testing.T, got, want *ImageBuf) {
	t.Helper()
	if !got.SameSize(want) {
		t.Fatalf("got %dx%d %v, want %dx%d %v",
			got.Width(), got.Height(), got.Format(), want.Width(), want.Height(), want.Format())
	}
	if !bytes.Equal(got.Data(), want.Data()) {
		t.Fatal("pixel data differs")
	}
}

func TestFromStdImage_NRGBA(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	src.SetNRGBA(0, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	src.SetNRGBA(1, 0, color.NRGBA{R: 40, G: 50, B: 60, A: 7})

	buf, err := FromStdImage(src)
	if err != nil {
		t.Fatal(err)
	}
	if buf.Format() != FormatRGB8 {
		t.Fatalf("Format() = %v, want RGB8", buf.Format())
	}
	// Alpha is dropped, color kept.
	want := []byte{10, 20, 30, 40, 50, 60}
	if !bytes.Equal(buf.Data(), want) {
		t.Errorf("Data() = %v, want %v", buf.Data(), want)
	}
}

func TestFromStdImage_Gray(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 3, 2))
	for i := range src.Pix {
		src.Pix[i] = uint8(i * 40)
	}

	buf, err := FromStdImage(src)
	if err != nil {
		t.Fatal(err)
	}
	if buf.Format() != FormatGray8 {
		t.Fatalf("Format() = %v, want Gray8", buf.Format())
	}
	if !bytes.Equal(buf.Data(), src.Pix) {
		t.Errorf("Data() = %v, want %v", buf.Data(), src.Pix)
	}
}

func TestFromStdImage_Gray16(t *testing.T) {
	src := image.NewGray16(image.Rect(0, 0, 2, 1))
	src.SetGray16(0, 0, color.Gray16{Y: 0xABCD})
	src.SetGray16(1, 0, color.Gray16{Y: 0x00FF})

	buf, err := FromStdImage(src)
	if err != nil {
		t.Fatal(err)
	}
	if got := buf.Data(); got[0] != 0xAB || got[1] != 0x00 {
		t.Errorf("Data() = %v, want [171 0]", got)
	}
}

func TestFromStdImage_SubImage(t *testing.T) {
	full := image.NewRGBA(image.Rect(0, 0, 4, 4))
	full.Set(2, 3, color.RGBA{R: 1, G: 2, B: 3, A: 255})
	sub := full.SubImage(image.Rect(2, 2, 4, 4))

	buf, err := FromStdImage(sub)
	if err != nil {
		t.Fatal(err)
	}
	if buf.Width() != 2 || buf.Height() != 2 {
		t.Fatalf("size = %dx%d, want 2x2", buf.Width(), buf.Height())
	}
	if px := buf.PixelBytes(0, 1); px[0] != 1 || px[1] != 2 || px[2] != 3 {
		t.Errorf("PixelBytes(0,1) = %v, want [1 2 3]", px)
	}
}

func TestToStdImage(t *testing.T) {
	rgb, _ := FromRaw([]byte{1, 2, 3}, 1, 1, 3)
	nrgba, ok := rgb.ToStdImage().(*image.NRGBA)
	if !ok {
		t.Fatalf("RGB8 ToStdImage() = %T, want *image.NRGBA", rgb.ToStdImage())
	}
	if c := nrgba.NRGBAAt(0, 0); c != (color.NRGBA{R: 1, G: 2, B: 3, A: 255}) {
		t.Errorf("pixel = %v", c)
	}

	gray, _ := FromRaw([]byte{9, 8}, 2, 1, 1)
	g, ok := gray.ToStdImage().(*image.Gray)
	if !ok {
		t.Fatalf("Gray8 ToStdImage() = %T, want *image.Gray", gray.ToStdImage())
	}
	if !bytes.Equal(g.Pix, []byte{9, 8}) {
		t.Errorf("Pix = %v", g.Pix)
	}
}

func TestSaveLoadLossless(t *testing.T) {
	dir := t.TempDir()
	rgb := newGradient(t, 13, 7)
	gray, _ := FromRaw(bytes.Repeat([]byte{0, 64, 128, 255}, 6), 4, 6, 1)

	tests := []struct {
		ext  string
		buf  *ImageBuf
		name string
	}{
		{".png", rgb, "rgb png"},
		{".png", gray, "gray png"},
		{".bmp", rgb, "rgb bmp"},
		{".tiff", rgb, "rgb tiff"},
		{".tif", gray, "gray tif"},
		{".qoi", rgb, "rgb qoi"},
		{SnapshotExt, rgb, "rgb snapshot"},
		{SnapshotExt, gray, "gray snapshot"},
		{".PNG", rgb, "upper-case extension"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, "out"+tt.ext)
			if err := tt.buf.Save(path); err != nil {
				t.Fatalf("Save(%s) failed: %v", tt.ext, err)
			}
			loaded, err := LoadImage(path)
			if err != nil {
				t.Fatalf("LoadImage(%s) failed: %v", tt.ext, err)
			}
			samePixels(t, loaded, tt.buf)
		})
	}
}

func TestSaveLoadBMPGray(t *testing.T) {
	// BMP stores gray as a palette, so it reads back as RGB with equal channels.
	gray, _ := FromRaw([]byte{0, 100, 200, 255}, 2, 2, 1)
	path := filepath.Join(t.TempDir(), "gray.bmp")
	if err := gray.Save(path); err != nil {
		t.Fatal(err)
	}
	loaded, err := LoadImage(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Format() != FormatRGB8 {
		t.Fatalf("Format() = %v, want RGB8", loaded.Format())
	}
	for i, v := range gray.Data() {
		px := loaded.PixelBytes(i%2, i/2)
		if px[0] != v || px[1] != v || px[2] != v {
			t.Errorf("pixel %d = %v, want all %d", i, px, v)
		}
	}
}

func TestSaveLoadJPEG(t *testing.T) {
	buf, _ := NewImageBuf(16, 16, FormatRGB8)
	buf.Fill(100, 150, 200)

	path := filepath.Join(t.TempDir(), "out.jpg")
	if err := buf.Save(path); err != nil {
		t.Fatal(err)
	}
	loaded, err := LoadImage(path)
	if err != nil {
		t.Fatal(err)
	}
	if !loaded.SameSize(buf) {
		t.Fatalf("size = %dx%d %v", loaded.Width(), loaded.Height(), loaded.Format())
	}

	// JPEG is lossy; a flat color survives within a small tolerance.
	want := []int{100, 150, 200}
	px := loaded.PixelBytes(8, 8)
	for c, w := range want {
		if d := int(px[c]) - w; d < -3 || d > 3 {
			t.Errorf("channel %d = %d, want %d±3", c, px[c], w)
		}
	}
}

func TestDecodeGIF(t *testing.T) {
	pal := color.Palette{color.Black, color.RGBA{R: 10, G: 20, B: 30, A: 255}}
	src := image.NewPaletted(image.Rect(0, 0, 2, 1), pal)
	src.SetColorIndex(1, 0, 1)

	var encoded bytes.Buffer
	if err := gif.Encode(&encoded, src, nil); err != nil {
		t.Fatal(err)
	}

	buf, err := LoadImageFromBytes(encoded.Bytes())
	if err != nil {
		t.Fatalf("LoadImageFromBytes(gif) failed: %v", err)
	}
	want := []byte{0, 0, 0, 10, 20, 30}
	if !bytes.Equal(buf.Data(), want) {
		t.Errorf("Data() = %v, want %v", buf.Data(), want)
	}
}

func TestLoadImageFromBytes(t *testing.T) {
	buf := newGradient(t, 5, 5)

	var encoded bytes.Buffer
	if err := buf.Encode(&encoded, ".png"); err != nil {
		t.Fatal(err)
	}
	loaded, err := LoadImageFromBytes(encoded.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	samePixels(t, loaded, buf)

	var snap bytes.Buffer
	if err := buf.Encode(&snap, SnapshotExt); err != nil {
		t.Fatal(err)
	}
	loaded, err = LoadImageFromBytes(snap.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	samePixels(t, loaded, buf)
}

func TestLoadImageFromBytes_Empty(t *testing.T) {
	if _, err := LoadImageFromBytes(nil); !errors.Is(err, ErrEmptyData) {
		t.Errorf("error = %v, want ErrEmptyData", err)
	}
}

func TestDecode_InvalidData(t *testing.T) {
	for _, data := range [][]byte{[]byte("not an image"), []byte("RIFF\x00\x00\x00\x00WEBPVP8 ")} {
		if _, err := Decode(bytes.NewReader(data)); err == nil {
			t.Errorf("Decode(%q) should fail", data)
		}
	}
}

func TestLoadImage_NotFound(t *testing.T) {
	_, err := LoadImage(filepath.Join(t.TempDir(), "missing.png"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error = %v, want os.ErrNotExist", err)
	}
}

func TestSave_UnsupportedExtension(t *testing.T) {
	buf := newGradient(t, 2, 2)
	path := filepath.Join(t.TempDir(), "out.xyz")

	if err := buf.Save(path); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Save(.xyz) error = %v, want ErrUnsupportedFormat", err)
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Error("Save must not create a file for an unsupported extension")
	}
}

func TestCanEncode(t *testing.T) {
	for _, ext := range []string{".png", ".JPG", ".jpeg", ".bmp", ".tif", ".tiff", ".qoi", ".ggraw"} {
		if !CanEncode(ext) {
			t.Errorf("CanEncode(%q) = false", ext)
		}
	}
	for _, ext := range []string{"", ".gif", ".webp", "png"} {
		if CanEncode(ext) {
			t.Errorf("CanEncode(%q) = true", ext)
		}
	}
}

func BenchmarkFromStdImage_RGBA(b *testing.B) {
	rgba := image.NewRGBA(image.Rect(0, 0, 1920, 1080))
	b.ReportAllocs()
	for b.Loop() {
		if _, err := FromStdImage(rgba); err != nil {
			b.Fatal(err)
		}
	}
}
