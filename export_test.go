package flashanimedit

import (
	"archive/zip"
	"bytes"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func readArchive(t *testing.T, data []byte) map[string]*Surface {
	t.Helper()

	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}

	entries := make(map[string]*Surface)
	for _, file := range reader.File {
		rc, err := file.Open()
		if err != nil {
			t.Fatalf("open %s: %v", file.Name, err)
		}
		img, err := png.Decode(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("decode %s: %v", file.Name, err)
		}
		entries[file.Name] = SurfaceFromImage(img)
	}
	return entries
}

func TestWriteArchiveSkipsBlanksKeepsNumbering(t *testing.T) {
	s1 := fillSurface(10, 20, 30, 255)
	s2 := fillSurface(90, 80, 70, 255)
	frames := []*Surface{nil, s1, nil, s2}

	var buf bytes.Buffer
	if err := WriteArchive(&buf, frames); err != nil {
		t.Fatalf("WriteArchive: %v", err)
	}

	entries := readArchive(t, buf.Bytes())
	if len(entries) != 2 {
		t.Fatalf("archive holds %d images, want 2", len(entries))
	}

	// Names follow the original 1-based frame position, not the count of
	// exported files.
	got1, ok := entries["frame2.png"]
	if !ok {
		t.Fatal("frame2.png missing from archive")
	}
	got2, ok := entries["frame4.png"]
	if !ok {
		t.Fatal("frame4.png missing from archive")
	}

	if !got1.Eq(s1) {
		t.Error("frame2.png is not pixel-identical to its source")
	}
	if !got2.Eq(s2) {
		t.Error("frame4.png is not pixel-identical to its source")
	}
}

func TestWriteArchiveAllBlank(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteArchive(&buf, []*Surface{nil, nil}); err != nil {
		t.Fatalf("WriteArchive: %v", err)
	}

	entries := readArchive(t, buf.Bytes())
	if len(entries) != 0 {
		t.Errorf("archive holds %d images, want 0", len(entries))
	}
}

func TestWriteArchiveImageSize(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteArchive(&buf, []*Surface{fillSurface(0, 0, 0, 255)}); err != nil {
		t.Fatal(err)
	}

	entries := readArchive(t, buf.Bytes())
	surface := entries["frame1.png"]
	if surface == nil {
		t.Fatal("frame1.png missing")
	}
	if surface.Width != CanvasWidth || surface.Height != CanvasHeight {
		t.Errorf("exported image is %dx%d, want %dx%d",
			surface.Width, surface.Height, CanvasWidth, CanvasHeight)
	}
}

func TestWriteArchiveEncodingFailure(t *testing.T) {
	var buf bytes.Buffer
	err := WriteArchive(&buf, []*Surface{NewSurface(0, 0)})
	if !errors.Is(err, ErrEncode) {
		t.Errorf("error = %v, want ErrEncode", err)
	}
}

func TestWriteAPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "animation.png")
	frames := []*Surface{fillSurface(255, 0, 0, 255), nil, fillSurface(0, 0, 255, 255)}

	if err := WriteAPNG(path, frames); err != nil {
		t.Fatalf("WriteAPNG: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat preview: %v", err)
	}
	if info.Size() == 0 {
		t.Error("preview file is empty")
	}
}

func TestWriteAPNGWithoutDrawnFrames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "animation.png")

	err := WriteAPNG(path, []*Surface{nil, nil})
	if !errors.Is(err, ErrEncode) {
		t.Errorf("error = %v, want ErrEncode", err)
	}
}
