// Package cvdenoise removes noise with OpenCV filters.
// Requires OpenCV 4 installed, see gocv.io for setup.
package cvdenoise

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"

	enhancer "github.com/rprtr258/enhancer/pkg"
)

// Method is a noise removal algorithm.
type Method string

const (
	Median    Method = "median"
	Gaussian  Method = "gaussian"
	Bilateral Method = "bilateral"
)

// Methods lists supported methods.
var Methods = []Method{Median, Gaussian, Bilateral}

// Params tune the filters. Zero values are replaced by Defaults.
type Params struct {
	// KernelSize is aperture of median and Gaussian filters, odd.
	KernelSize int
	// Sigma of Gaussian filter, 0 lets OpenCV derive it from KernelSize.
	Sigma float64
	// Diameter of bilateral pixel neighbourhood.
	Diameter   int
	SigmaColor float64
	SigmaSpace float64
}

var Defaults = Params{KernelSize: 5, Sigma: 0, Diameter: 9, SigmaColor: 75, SigmaSpace: 75}

// RemoveNoise applies Method with Params and satisfies enhancer.Applier.
type RemoveNoise struct {
	Method Method
	Params Params
}

func (o RemoveNoise) Title() string { return fmt.Sprintf("Noise removal (%s)", o.Method) }
func (o RemoveNoise) Stem() string  { return fmt.Sprintf("denoised_%s", o.Method) }

// New validates method and fills default parameters.
func New(method Method) (RemoveNoise, error) {
	switch method {
	case Median, Gaussian, Bilateral:
		return RemoveNoise{Method: method, Params: Defaults}, nil
	default:
		return RemoveNoise{}, fmt.Errorf("%w: unknown noise removal method %q", enhancer.ErrInvalidParameter, method)
	}
}

func (o RemoveNoise) validate() error {
	p := o.Params
	switch o.Method {
	case Median, Gaussian:
		if p.KernelSize < 3 || p.KernelSize%2 == 0 || p.KernelSize > enhancer.MaxKernelSize {
			return fmt.Errorf("%w: kernel size must be odd within [3, %d], got %d", enhancer.ErrInvalidParameter, enhancer.MaxKernelSize, p.KernelSize)
		}
		if p.Sigma < 0 {
			return fmt.Errorf("%w: sigma must not be negative, got %v", enhancer.ErrInvalidParameter, p.Sigma)
		}
	case Bilateral:
		if p.Diameter <= 0 || p.SigmaColor <= 0 || p.SigmaSpace <= 0 {
			return fmt.Errorf("%w: bilateral parameters must be positive", enhancer.ErrInvalidParameter)
		}
		if p.Diameter > enhancer.MaxKernelSize {
			return fmt.Errorf("%w: bilateral diameter must be at most %d, got %d", enhancer.ErrInvalidParameter, enhancer.MaxKernelSize, p.Diameter)
		}
	default:
		return fmt.Errorf("%w: unknown noise removal method %q", enhancer.ErrInvalidParameter, o.Method)
	}
	return nil
}

func matType(channels int) gocv.MatType {
	if channels == 1 {
		return gocv.MatTypeCV8UC1
	}
	return gocv.MatTypeCV8UC3
}

// Apply runs the OpenCV filter. Channel order does not matter to these
// filters so samples are passed as is.
func (o RemoveNoise) Apply(im *enhancer.Image) (*enhancer.Image, error) {
	if err := o.validate(); err != nil {
		return nil, err
	}
	if err := im.Validate(); err != nil {
		return nil, err
	}

	src, err := gocv.NewMatFromBytes(im.Height, im.Width, matType(im.Channels), im.Pix)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", enhancer.ErrInvalidImage, err)
	}
	defer src.Close()

	dst := gocv.NewMat()
	defer dst.Close()

	switch o.Method {
	case Median:
		gocv.MedianBlur(src, &dst, o.Params.KernelSize)
	case Gaussian:
		ksize := image.Point{X: o.Params.KernelSize, Y: o.Params.KernelSize}
		gocv.GaussianBlur(src, &dst, ksize, o.Params.Sigma, o.Params.Sigma, gocv.BorderDefault)
	case Bilateral:
		gocv.BilateralFilter(src, &dst, o.Params.Diameter, o.Params.SigmaColor, o.Params.SigmaSpace)
	}
	if dst.Empty() {
		return nil, fmt.Errorf("opencv %s filter produced no output", o.Method)
	}

	out := &enhancer.Image{
		Height:   im.Height,
		Width:    im.Width,
		Channels: im.Channels,
		Pix:      dst.ToBytes(),
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}
