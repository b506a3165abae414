package enhancer

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestSaveLoadPNG(t *testing.T) {
	dir := t.TempDir()
	for _, channels := range []int{1, 3} {
		im := gradient(t, 6, 9, channels)
		filename := filepath.Join(dir, "nested", "out.png")
		if err := SaveImageFile(im.ToStd(), filename); err != nil {
			t.Fatal(err)
		}
		back, err := LoadImageFile(filename)
		if err != nil {
			t.Fatal(err)
		}
		if !back.Equal(im) {
			t.Fatalf("channels=%d: png round trip changed the image", channels)
		}
	}
}

func TestSaveJPEG(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "out.jpg")
	im := filled(t, 8, 8, 3, 200)
	if err := SaveImageFile(im.ToStd(), filename); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte{0xFF, 0xD8}) {
		t.Fatal("jpg extension must produce a JPEG file")
	}
	_, format, err := DecodeImage(bytes.NewReader(data))
	if err != nil || format != "jpeg" {
		t.Fatalf("format=%q err=%v", format, err)
	}
}

func TestLoadImageFileErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadImageFile(filepath.Join(dir, "missing.png")); !errors.Is(err, ErrInvalidImage) {
		t.Errorf("missing file: want ErrInvalidImage, got %v", err)
	}
	garbage := filepath.Join(dir, "garbage.png")
	if err := os.WriteFile(garbage, []byte("definitely not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadImageFile(garbage); !errors.Is(err, ErrInvalidImage) {
		t.Errorf("garbage file: want ErrInvalidImage, got %v", err)
	}
}

func TestApplyFilter(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.png")
	dst := filepath.Join(dir, "dst.png")
	if err := SaveImageFile(gradient(t, 5, 5, 3).ToStd(), src); err != nil {
		t.Fatal(err)
	}
	if err := ApplyFilter(src, dst, InvertOp{}); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(dst); err != nil {
		t.Fatal(err)
	}
	if err := ApplyFilter(src, dst, BrightnessOp{Level: 9}); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("want ErrInvalidParameter, got %v", err)
	}
}
