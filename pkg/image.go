package enhancer

import (
	"image"
	"image/color"
	"math"
)

// Image is a grid of 8-bit samples stored row by row with channels interleaved.
// Channels is 1 for grayscale and 3 for RGB.
type Image struct {
	Height, Width, Channels int
	Pix                     []uint8
}

// NewImage allocates a zeroed image.
func NewImage(height, width, channels int) (*Image, error) {
	if err := checkShape(height, width, channels); err != nil {
		return nil, err
	}
	return &Image{
		Height:   height,
		Width:    width,
		Channels: channels,
		Pix:      make([]uint8, height*width*channels),
	}, nil
}

func checkShape(height, width, channels int) error {
	switch {
	case height <= 0 || width <= 0:
		return invalidImage("size must be positive, got %dx%d", width, height)
	case channels != 1 && channels != 3:
		return invalidImage("expected 1 or 3 channels, got %d", channels)
	}
	return nil
}

// Validate checks that the image shape is consistent with its buffer.
func (im *Image) Validate() error {
	if im == nil {
		return invalidImage("no image")
	}
	if err := checkShape(im.Height, im.Width, im.Channels); err != nil {
		return err
	}
	if len(im.Pix) != im.Height*im.Width*im.Channels {
		return invalidImage("buffer holds %d samples, shape %dx%dx%d needs %d",
			len(im.Pix), im.Height, im.Width, im.Channels, im.Height*im.Width*im.Channels)
	}
	return nil
}

func (im *Image) offset(y, x int) int {
	return (y*im.Width + x) * im.Channels
}

// At returns sample of channel c at row y, column x.
func (im *Image) At(y, x, c int) uint8 {
	return im.Pix[im.offset(y, x)+c]
}

// Set stores sample v into channel c at row y, column x.
func (im *Image) Set(y, x, c int, v uint8) {
	im.Pix[im.offset(y, x)+c] = v
}

// Clone creates a deep copy of the image.
func (im *Image) Clone() *Image {
	clone := *im
	clone.Pix = make([]uint8, len(im.Pix))
	copy(clone.Pix, im.Pix)
	return &clone
}

// Equal reports whether both images have the same shape and samples.
func (im *Image) Equal(other *Image) bool {
	if im.Height != other.Height || im.Width != other.Width || im.Channels != other.Channels {
		return false
	}
	for i := range im.Pix {
		if im.Pix[i] != other.Pix[i] {
			return false
		}
	}
	return true
}

// FromStd converts any image.Image. Gray images keep a single channel,
// everything else becomes RGB with alpha dropped.
func FromStd(src image.Image) (*Image, error) {
	b := src.Bounds()
	channels := 3
	if _, ok := src.(*image.Gray); ok {
		channels = 1
	}
	im, err := NewImage(b.Dy(), b.Dx(), channels)
	if err != nil {
		return nil, err
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			i := im.offset(y-b.Min.Y, x-b.Min.X)
			if channels == 1 {
				im.Pix[i] = color.GrayModel.Convert(src.At(x, y)).(color.Gray).Y
				continue
			}
			c := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
			im.Pix[i], im.Pix[i+1], im.Pix[i+2] = c.R, c.G, c.B
		}
	}
	return im, nil
}

// ToStd converts the image into *image.Gray or *image.RGBA.
func (im *Image) ToStd() image.Image {
	rect := image.Rect(0, 0, im.Width, im.Height)
	if im.Channels == 1 {
		g := image.NewGray(rect)
		for y := 0; y < im.Height; y++ {
			copy(g.Pix[y*g.Stride:y*g.Stride+im.Width], im.Pix[y*im.Width:(y+1)*im.Width])
		}
		return g
	}
	rgba := image.NewRGBA(rect)
	for y := 0; y < im.Height; y++ {
		for x := 0; x < im.Width; x++ {
			i := im.offset(y, x)
			rgba.SetRGBA(x, y, color.RGBA{im.Pix[i], im.Pix[i+1], im.Pix[i+2], 255})
		}
	}
	return rgba
}

// Field is a floating point image, the intermediate result of filtering.
type Field struct {
	Height, Width, Channels int
	Data                    []float64
}

// NewField allocates a zeroed field.
func NewField(height, width, channels int) *Field {
	return &Field{
		Height:   height,
		Width:    width,
		Channels: channels,
		Data:     make([]float64, height*width*channels),
	}
}

// At returns sample of channel c at row y, column x.
func (f *Field) At(y, x, c int) float64 {
	return f.Data[(y*f.Width+x)*f.Channels+c]
}

// Set stores v into channel c at row y, column x.
func (f *Field) Set(y, x, c int, v float64) {
	f.Data[(y*f.Width+x)*f.Channels+c] = v
}

// Field converts samples to float64 without scaling.
func (im *Image) Field() *Field {
	f := NewField(im.Height, im.Width, im.Channels)
	for i, v := range im.Pix {
		f.Data[i] = float64(v)
	}
	return f
}

// Image clamps every sample into [0, 255] rounding to the nearest integer.
func (f *Field) Image() *Image {
	im := &Image{
		Height:   f.Height,
		Width:    f.Width,
		Channels: f.Channels,
		Pix:      make([]uint8, len(f.Data)),
	}
	for i, v := range f.Data {
		im.Pix[i] = clampUint8(v)
	}
	return im
}

// clampUint8 clamps a float64 to [0, 255] and converts to uint8.
func clampUint8(v float64) uint8 {
	switch {
	case math.IsNaN(v), v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(math.Round(v))
}
