package enhancer

import (
	"errors"
	"testing"
)

// step returns a grayscale image with value lo left of column at and hi from it on.
func step(t *testing.T, height, width, at int, lo, hi uint8) *Image {
	t.Helper()
	im := filled(t, height, width, 1, lo)
	for y := 0; y < height; y++ {
		for x := at; x < width; x++ {
			im.Set(y, x, 0, hi)
		}
	}
	return im
}

func TestDetectEdgesFlatImage(t *testing.T) {
	for _, d := range Directions {
		out, err := DetectEdges(filled(t, 6, 5, 3, 123), d, 1)
		if err != nil {
			t.Fatal(err)
		}
		for i, v := range out.Pix {
			if v != 0 {
				t.Fatalf("%s: sample %d is %d, want 0", d, i, v)
			}
		}
	}
}

func TestDetectEdgesVerticalStep(t *testing.T) {
	im := step(t, 5, 5, 2, 0, 255)

	out, err := DetectEdges(im, Horizontal, 1)
	if err != nil {
		t.Fatal(err)
	}
	if out.Channels != 3 {
		t.Fatalf("want 3 channels, got %d", out.Channels)
	}
	want := []uint8{0, 255, 255, 0, 0}
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			for c := 0; c < 3; c++ {
				if got := out.At(y, x, c); got != want[x] {
					t.Fatalf("at %d,%d,%d: want %d, got %d", y, x, c, want[x], got)
				}
			}
		}
	}

	// no change along columns, so the vertical response is flat
	out, err = DetectEdges(im, Vertical, 1)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range out.Pix {
		if v != 0 {
			t.Fatalf("vertical: sample %d is %d, want 0", i, v)
		}
	}

	both, err := DetectEdges(im, Both, 1)
	if err != nil {
		t.Fatal(err)
	}
	if both.At(0, 1, 0) != 255 || both.At(0, 4, 0) != 0 {
		t.Fatalf("both: unexpected magnitude row %v", both.Pix[:15])
	}
}

func TestDetectEdgesSymmetricBorder(t *testing.T) {
	// Symmetric pads 0 30 as 0 | 0 30, so the first column sees a gradient
	// of 4*30 instead of the zero a reflected 30 | 0 30 would give.
	im := rows(t, 3, 0, 30, 40, 50, 60)
	out, err := DetectEdges(im, Horizontal, 1)
	if err != nil {
		t.Fatal(err)
	}
	// responses 120 160 80 80 40 stretched onto [0, 255]
	want := []uint8{170, 255, 85, 85, 0}
	for x, w := range want {
		if got := out.At(1, x, 0); got != w {
			t.Errorf("column %d: want %d, got %d", x, w, got)
		}
	}
}

func TestDetectEdgesSensitivity(t *testing.T) {
	im := filled(t, 5, 5, 1, 0)
	im.Set(2, 2, 0, 200)

	low, err := DetectEdges(im, Both, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	high, err := DetectEdges(im, Both, 2)
	if err != nil {
		t.Fatal(err)
	}
	for i := range low.Pix {
		if low.Pix[i] > 128 {
			t.Fatalf("sensitivity 0.5 must cap at half range, got %d", low.Pix[i])
		}
		if high.Pix[i] < low.Pix[i] {
			t.Fatalf("higher sensitivity darkened sample %d", i)
		}
	}
}

func TestDetectEdgesValidation(t *testing.T) {
	im := filled(t, 3, 3, 3, 0)
	for _, tc := range []struct {
		d Direction
		s float64
	}{
		{"diagonal", 1},
		{Both, 0.05},
		{Both, 2.5},
		{Horizontal, -1},
	} {
		if _, err := DetectEdges(im, tc.d, tc.s); !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("DetectEdges(%q, %v): want ErrInvalidParameter, got %v", tc.d, tc.s, err)
		}
	}
	if _, err := DetectEdges(&Image{Height: 1, Width: 1, Channels: 3}, Both, 1); !errors.Is(err, ErrInvalidImage) {
		t.Errorf("want ErrInvalidImage, got %v", err)
	}
}

func TestDetectEdgesLeavesInput(t *testing.T) {
	im := gradient(t, 6, 6, 3)
	before := im.Clone()
	if _, err := DetectEdges(im, Both, 1); err != nil {
		t.Fatal(err)
	}
	if !im.Equal(before) {
		t.Fatal("input was modified")
	}
}
