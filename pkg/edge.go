package enhancer

import "math"

// Direction selects which gradients the edge detector uses.
type Direction string

const (
	Horizontal Direction = "horizontal"
	Vertical   Direction = "vertical"
	Both       Direction = "both"
)

// Directions lists the accepted edge directions.
var Directions = []Direction{Horizontal, Vertical, Both}

const (
	MinSensitivity = 0.1
	MaxSensitivity = 2.0
)

func (d Direction) valid() bool {
	return d == Horizontal || d == Vertical || d == Both
}

// luma projects channels onto one float channel using perceptual weights.
func luma(im *Image) *Field {
	if im.Channels == 1 {
		return im.Field()
	}
	f := NewField(im.Height, im.Width, 1)
	for i := range f.Data {
		p := im.Pix[i*3 : i*3+3]
		f.Data[i] = 0.299*float64(p[0]) + 0.587*float64(p[1]) + 0.114*float64(p[2])
	}
	return f
}

// DetectEdges computes Sobel gradients of the luma channel and visualizes
// them as a three channel image. For Both the gradient magnitude is used.
func DetectEdges(im *Image, direction Direction, sensitivity float64) (*Image, error) {
	if !direction.valid() {
		return nil, invalidParameter("unknown edge direction %q", direction)
	}
	if !(sensitivity >= MinSensitivity && sensitivity <= MaxSensitivity) {
		return nil, invalidParameter("sensitivity must be within [%v, %v], got %v", MinSensitivity, MaxSensitivity, sensitivity)
	}
	if err := im.Validate(); err != nil {
		return nil, err
	}

	gray := luma(im)
	var edges *Field
	switch direction {
	case Horizontal:
		edges = Correlate(gray, SobelX(), Symmetric)
	case Vertical:
		edges = Correlate(gray, SobelY(), Symmetric)
	case Both:
		gx := Correlate(gray, SobelX(), Symmetric)
		gy := Correlate(gray, SobelY(), Symmetric)
		edges = gx
		for i := range edges.Data {
			edges.Data[i] = math.Hypot(gx.Data[i], gy.Data[i])
		}
	}
	return replicate(scale255(stretch(edges, sensitivity)).Image()), nil
}

// replicate copies a single channel image into three channels.
func replicate(gray *Image) *Image {
	rgb := &Image{
		Height:   gray.Height,
		Width:    gray.Width,
		Channels: 3,
		Pix:      make([]uint8, len(gray.Pix)*3),
	}
	for i, v := range gray.Pix {
		rgb.Pix[3*i], rgb.Pix[3*i+1], rgb.Pix[3*i+2] = v, v, v
	}
	return rgb
}
