package image

import (
	"bytes"
	"encoding/binary"
	"errors"
	"runtime"
	"testing"

	"github.com/klauspost/compress/zstd"
)

func encodeSnapshot(t *testing.T, buf *ImageBuf) []byte {
	t.Helper()
	var out bytes.Buffer
	if err := buf.WriteSnapshot(&out); err != nil {
		t.Fatalf("WriteSnapshot failed: %v", err)
	}
	return out.Bytes()
}

func TestSnapshotRoundTrip(t *testing.T) {
	for _, buf := range []*ImageBuf{
		newGradient(t, 31, 17),
		func() *ImageBuf { b, _ := FromRaw([]byte{7}, 1, 1, 1); return b }(),
	} {
		data := encodeSnapshot(t, buf)
		if !bytes.HasPrefix(data, []byte("GGRW")) {
			t.Fatalf("snapshot starts with %q", data[:4])
		}
		got, err := ReadSnapshot(bytes.NewReader(data))
		if err != nil {
			t.Fatalf("ReadSnapshot failed: %v", err)
		}
		samePixels(t, got, buf)
	}
}

func TestSnapshotHeader(t *testing.T) {
	buf := newGradient(t, 300, 2)
	data := encodeSnapshot(t, buf)

	var hdr snapshotHeader
	if err := binary.Read(bytes.NewReader(data), binary.BigEndian, &hdr); err != nil {
		t.Fatal(err)
	}
	if hdr.Version != snapshotVersion || hdr.Width != 300 || hdr.Height != 2 || hdr.Channels != 3 {
		t.Errorf("header = %+v", hdr)
	}
}

func TestReadSnapshot_Invalid(t *testing.T) {
	valid := encodeSnapshot(t, newGradient(t, 4, 4))

	patch := func(off int, b byte) []byte {
		d := bytes.Clone(valid)
		d[off] = b
		return d
	}

	// 2x1 gray header followed by a 4-byte payload.
	var long bytes.Buffer
	two, _ := FromRaw([]byte{1, 2, 3, 4}, 2, 2, 1)
	_ = two.WriteSnapshot(&long)
	longData := long.Bytes()
	binary.BigEndian.PutUint32(longData[9:13], 1)

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"short header", valid[:6]},
		{"bad magic", patch(0, 'X')},
		{"bad version", patch(4, 9)},
		{"zero width", func() []byte { d := bytes.Clone(valid); binary.BigEndian.PutUint32(d[5:9], 0); return d }()},
		{"two channels", patch(13, 2)},
		{"truncated payload", valid[:14+(len(valid)-14)/2]},
		{"payload missing", valid[:14]},
		{"payload too long", longData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf, err := ReadSnapshot(bytes.NewReader(tt.data))
			if !errors.Is(err, ErrInvalidSnapshot) {
				t.Errorf("ReadSnapshot() error = %v, want ErrInvalidSnapshot", err)
			}
			if buf != nil {
				t.Error("ReadSnapshot() returned a buffer on error")
			}
		})
	}
}

// hugeSnapshot returns a header claiming width x height RGB pixels followed
// by a zstd frame holding only a few samples.
func hugeSnapshot(t *testing.T, width, height uint32) []byte {
	t.Helper()
	var out bytes.Buffer
	hdr := snapshotHeader{Version: snapshotVersion, Width: width, Height: height, Channels: 3}
	copy(hdr.Magic[:], snapshotMagic)
	if err := binary.Write(&out, binary.BigEndian, &hdr); err != nil {
		t.Fatal(err)
	}
	enc, err := zstd.NewWriter(&out)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := enc.Write([]byte{1, 2, 3, 4, 5, 6}); err != nil {
		t.Fatal(err)
	}
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}
	return out.Bytes()
}

func TestReadSnapshot_OversizedHeader(t *testing.T) {
	tests := []struct {
		name          string
		width, height uint32
	}{
		{"below limit", 65535, 65535},
		{"above limit", 0xFFFFFFFF, 0xFFFFFFFF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := hugeSnapshot(t, tt.width, tt.height)

			var before, after runtime.MemStats
			runtime.ReadMemStats(&before)
			buf, err := ReadSnapshot(bytes.NewReader(data))
			runtime.ReadMemStats(&after)

			if !errors.Is(err, ErrInvalidSnapshot) {
				t.Errorf("ReadSnapshot() error = %v, want ErrInvalidSnapshot", err)
			}
			if buf != nil {
				t.Error("ReadSnapshot() returned a buffer on error")
			}
			// Storage follows the decoded payload, not the header.
			if n := after.TotalAlloc - before.TotalAlloc; n > 64<<20 {
				t.Errorf("ReadSnapshot() allocated %d bytes for a 6-byte payload", n)
			}
		})
	}
}
