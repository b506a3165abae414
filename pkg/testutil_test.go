package enhancer

import "testing"

func filled(t testing.TB, height, width, channels int, v uint8) *Image {
	t.Helper()
	im, err := NewImage(height, width, channels)
	if err != nil {
		t.Fatal(err)
	}
	for i := range im.Pix {
		im.Pix[i] = v
	}
	return im
}

// gradient returns an image whose samples depend on position and channel.
func gradient(t testing.TB, height, width, channels int) *Image {
	t.Helper()
	im := filled(t, height, width, channels, 0)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			for c := 0; c < channels; c++ {
				im.Set(y, x, c, uint8((y*31+x*17+c*53)%256))
			}
		}
	}
	return im
}

// rows returns a grayscale image of height identical rows.
func rows(t testing.TB, height int, row ...uint8) *Image {
	t.Helper()
	im := filled(t, height, len(row), 1, 0)
	for y := 0; y < height; y++ {
		for x, v := range row {
			im.Set(y, x, 0, v)
		}
	}
	return im
}

func assertSameShape(t *testing.T, want, got *Image) {
	t.Helper()
	if want.Height != got.Height || want.Width != got.Width {
		t.Fatalf("shape: want %dx%d, got %dx%d", want.Width, want.Height, got.Width, got.Height)
	}
}
