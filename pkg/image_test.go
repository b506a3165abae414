package enhancer

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func TestNewImageRejectsBadShape(t *testing.T) {
	for _, tc := range []struct{ h, w, c int }{
		{0, 4, 3},
		{4, -1, 3},
		{4, 4, 2},
		{4, 4, 4},
	} {
		if _, err := NewImage(tc.h, tc.w, tc.c); !errors.Is(err, ErrInvalidImage) {
			t.Errorf("NewImage(%d, %d, %d): want ErrInvalidImage, got %v", tc.h, tc.w, tc.c, err)
		}
	}
}

func TestValidateBufferLength(t *testing.T) {
	im := &Image{Height: 2, Width: 2, Channels: 3, Pix: make([]uint8, 11)}
	if err := im.Validate(); !errors.Is(err, ErrInvalidImage) {
		t.Fatalf("want ErrInvalidImage, got %v", err)
	}
	var nilImage *Image
	if err := nilImage.Validate(); !errors.Is(err, ErrInvalidImage) {
		t.Fatalf("want ErrInvalidImage for nil image, got %v", err)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	im := gradient(t, 3, 4, 3)
	clone := im.Clone()
	clone.Set(0, 0, 0, im.At(0, 0, 0)+1)
	if im.Equal(clone) {
		t.Fatal("modifying clone changed the original")
	}
}

func TestStdRoundTrip(t *testing.T) {
	for _, channels := range []int{1, 3} {
		im := gradient(t, 5, 7, channels)
		back, err := FromStd(im.ToStd())
		if err != nil {
			t.Fatal(err)
		}
		if !im.Equal(back) {
			t.Errorf("channels=%d: round trip changed the image", channels)
		}
	}
}

func TestFromStdDropsAlphaAndOffset(t *testing.T) {
	src := image.NewNRGBA(image.Rect(10, 20, 12, 21))
	src.SetNRGBA(10, 20, color.NRGBA{R: 10, G: 20, B: 30, A: 0})
	src.SetNRGBA(11, 20, color.NRGBA{R: 200, G: 100, B: 50, A: 128})
	im, err := FromStd(src)
	if err != nil {
		t.Fatal(err)
	}
	if im.Height != 1 || im.Width != 2 || im.Channels != 3 {
		t.Fatalf("unexpected shape %dx%dx%d", im.Height, im.Width, im.Channels)
	}
	if got := [3]uint8{im.At(0, 1, 0), im.At(0, 1, 1), im.At(0, 1, 2)}; got != [3]uint8{200, 100, 50} {
		t.Fatalf("want {200 100 50}, got %v", got)
	}
}

func TestClampUint8(t *testing.T) {
	for _, tc := range []struct {
		in   float64
		want uint8
	}{
		{-3, 0},
		{0.4, 0},
		{0.5, 1},
		{127.49, 127},
		{254.6, 255},
		{1e9, 255},
	} {
		if got := clampUint8(tc.in); got != tc.want {
			t.Errorf("clampUint8(%v): want %d, got %d", tc.in, tc.want, got)
		}
	}
}
