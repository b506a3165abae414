package enhancer

import (
	"math"
	"testing"
)

func TestMirror(t *testing.T) {
	for _, tc := range []struct {
		border Border
		n      int
		in     []int
		want   []int
	}{
		{Reflect, 4, []int{-2, -1, 0, 3, 4, 5}, []int{2, 1, 0, 3, 2, 1}},
		{Symmetric, 4, []int{-2, -1, 0, 3, 4, 5}, []int{1, 0, 0, 3, 3, 2}},
		{Reflect, 3, []int{-5, -4, -3, 6}, []int{1, 0, 1, 2}},
		{Symmetric, 2, []int{-3, -2, 4, 5}, []int{1, 1, 0, 0}},
		{Reflect, 1, []int{-3, 2}, []int{0, 0}},
		{Symmetric, 1, []int{-1, 1}, []int{0, 0}},
	} {
		for i, in := range tc.in {
			if got := tc.border.mirror(in, tc.n); got != tc.want[i] {
				t.Errorf("%s n=%d mirror(%d): want %d, got %d", tc.border, tc.n, in, tc.want[i], got)
			}
		}
	}
}

func TestCorrelateKeepsShape(t *testing.T) {
	for _, channels := range []int{1, 3} {
		for _, size := range []int{3, 5, 7, 9} {
			im := gradient(t, 4, 6, channels)
			k, err := Gaussian(size, 1.5)
			if err != nil {
				t.Fatal(err)
			}
			for _, border := range []Border{Reflect, Symmetric} {
				out := Correlate(im.Field(), k, border)
				if out.Height != 4 || out.Width != 6 || out.Channels != channels {
					t.Errorf("size %d %s: got %dx%dx%d", size, border, out.Height, out.Width, out.Channels)
				}
			}
		}
	}
}

func TestCorrelateFlatGaussian(t *testing.T) {
	im := filled(t, 4, 4, 1, 100)
	k, err := Gaussian(3, 1.0)
	if err != nil {
		t.Fatal(err)
	}
	out := Correlate(im.Field(), k, Reflect)
	for i, v := range out.Data {
		if math.Abs(v-100) > 1e-9 {
			t.Fatalf("sample %d: want 100, got %v", i, v)
		}
	}
	if !out.Image().Equal(im) {
		t.Fatal("flat image changed after rounding")
	}
}

func TestCorrelateSobelOnZeros(t *testing.T) {
	im := filled(t, 3, 3, 1, 0)
	out := Correlate(im.Field(), SobelX(), Reflect)
	for i, v := range out.Data {
		if v != 0 {
			t.Fatalf("sample %d: want 0, got %v", i, v)
		}
	}
}

func TestCorrelateDoesNotFlip(t *testing.T) {
	impulse := NewField(5, 5, 1)
	impulse.Set(2, 2, 0, 1)
	k, err := NewKernel([][]float64{
		{1, 2, 3},
		{4, 5, 6},
		{7, 8, 9},
	})
	if err != nil {
		t.Fatal(err)
	}

	out := Correlate(impulse, k, Reflect)
	if out.At(1, 1, 0) != 9 || out.At(3, 3, 0) != 1 || out.At(1, 3, 0) != 7 {
		t.Fatalf("correlation of an impulse must show the kernel rotated, got %v", out.Data)
	}

	conv := Correlate(impulse, k.Flip(), Reflect)
	if conv.At(1, 1, 0) != 1 || conv.At(3, 3, 0) != 9 {
		t.Fatalf("flipped kernel must reproduce it, got %v", conv.Data)
	}
}

func TestCorrelateChannelsIndependent(t *testing.T) {
	im := gradient(t, 5, 5, 3)
	k, err := Gaussian(3, 1)
	if err != nil {
		t.Fatal(err)
	}
	all := Correlate(im.Field(), k, Reflect)
	for c := 0; c < 3; c++ {
		single := NewField(5, 5, 1)
		for y := 0; y < 5; y++ {
			for x := 0; x < 5; x++ {
				single.Set(y, x, 0, float64(im.At(y, x, c)))
			}
		}
		one := Correlate(single, k, Reflect)
		for y := 0; y < 5; y++ {
			for x := 0; x < 5; x++ {
				if one.At(y, x, 0) != all.At(y, x, c) {
					t.Fatalf("channel %d at %d,%d: %v != %v", c, y, x, one.At(y, x, 0), all.At(y, x, c))
				}
			}
		}
	}
}

func TestSeparableMatches2D(t *testing.T) {
	im := gradient(t, 9, 11, 3)
	for _, size := range []int{3, 5, 7} {
		g, err := Gaussian1D(size, 1.3)
		if err != nil {
			t.Fatal(err)
		}
		k, _ := Gaussian(size, 1.3)
		for _, border := range []Border{Reflect, Symmetric} {
			full := Correlate(im.Field(), k, border)
			sep := CorrelateSeparable(im.Field(), g, border)
			for i := range full.Data {
				if math.Abs(full.Data[i]-sep.Data[i]) > 1e-9 {
					t.Fatalf("size %d %s sample %d: %v != %v", size, border, i, full.Data[i], sep.Data[i])
				}
			}
		}
	}
}

func TestApplyKernel(t *testing.T) {
	flat := filled(t, 4, 4, 3, 77)
	out, err := ApplyKernel(flat, edgeDetect2Kernel)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range out.Pix {
		if v != 0 {
			t.Fatalf("flat image sample %d: want 0, got %d", i, v)
		}
	}

	im := gradient(t, 6, 6, 3)
	out, err = ApplyKernel(im, blurKernel)
	if err != nil {
		t.Fatal(err)
	}
	assertSameShape(t, im, out)
	var lo, hi uint8 = 255, 0
	for _, v := range out.Pix {
		lo, hi = min(lo, v), max(hi, v)
	}
	if lo != 0 || hi != 255 {
		t.Fatalf("response must be stretched to [0, 255], got [%d, %d]", lo, hi)
	}
}

func BenchmarkCorrelate(b *testing.B) {
	im := gradient(b, 128, 128, 3).Field()
	k, _ := Gaussian(7, 2)
	g, _ := Gaussian1D(7, 2)
	b.Run("2d", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			Correlate(im, k, Reflect)
		}
	})
	b.Run("separable", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			CorrelateSeparable(im, g, Reflect)
		}
	})
}
