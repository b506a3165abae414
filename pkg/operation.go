package enhancer

import (
	"fmt"
	"math/rand"
	"slices"
	"strconv"
	"time"
)

// Kind identifies an operation of the catalog.
type Kind string

const (
	KindBrightness      Kind = "brightness"
	KindGrayscale       Kind = "grayscale"
	KindGaussianNoise   Kind = "gaussian-noise"
	KindSaltPepper      Kind = "salt-pepper"
	KindEdges           Kind = "edges"
	KindSharpen         Kind = "sharpen"
	KindChannels        Kind = "channels"
	KindInvert          Kind = "invert"
	KindGaussianDenoise Kind = "denoise-gaussian"
	KindMedianDenoise   Kind = "denoise-median"
	KindKernel          Kind = "kernel"
)

// Ranges offered for the denoisers.
const (
	MinDenoiseSigma = 0.5
	MaxDenoiseSigma = 2.0
)

var MedianSizes = []int{3, 5, 7}

// Kinds lists the catalog in menu order.
var Kinds = []Kind{
	KindBrightness, KindGrayscale, KindGaussianNoise, KindSaltPepper,
	KindGaussianDenoise, KindMedianDenoise, KindInvert, KindEdges,
	KindSharpen, KindChannels, KindKernel,
}

// Applier transforms an image into a new one.
type Applier interface {
	Apply(im *Image) (*Image, error)
	// Title is a caption describing the applied transform.
	Title() string
	// Stem is the base name for saving the result.
	Stem() string
}

// Operation is one of the catalog variants declared in this file.
type Operation interface {
	Applier
	Kind() Kind
	validate() error
}

type (
	BrightnessOp struct{ Level int }
	GrayscaleOp  struct{}
	InvertOp     struct{}

	GaussianNoiseOp struct {
		Intensity float64
		Seed      int64
	}
	SaltPepperOp struct {
		Intensity float64
		Seed      int64
	}
	EdgesOp struct {
		Direction   Direction
		Sensitivity float64
	}
	SharpenOp  struct{ SharpenParams }
	ChannelsOp struct{ Mode ChannelMode }

	GaussianDenoiseOp struct{ Sigma float64 }
	MedianDenoiseOp   struct{ Size int }
	KernelOp          struct{ Name string }
)

func (BrightnessOp) Kind() Kind      { return KindBrightness }
func (GrayscaleOp) Kind() Kind       { return KindGrayscale }
func (InvertOp) Kind() Kind          { return KindInvert }
func (GaussianNoiseOp) Kind() Kind   { return KindGaussianNoise }
func (SaltPepperOp) Kind() Kind      { return KindSaltPepper }
func (EdgesOp) Kind() Kind           { return KindEdges }
func (SharpenOp) Kind() Kind         { return KindSharpen }
func (ChannelsOp) Kind() Kind        { return KindChannels }
func (GaussianDenoiseOp) Kind() Kind { return KindGaussianDenoise }
func (MedianDenoiseOp) Kind() Kind   { return KindMedianDenoise }
func (KernelOp) Kind() Kind          { return KindKernel }

func (o BrightnessOp) validate() error { _, err := lookupBrightness(o.Level); return err }
func (GrayscaleOp) validate() error    { return nil }
func (InvertOp) validate() error       { return nil }
func (o GaussianNoiseOp) validate() error {
	return checkIntensity(o.Intensity)
}
func (o SaltPepperOp) validate() error {
	return checkIntensity(o.Intensity)
}
func (o EdgesOp) validate() error {
	if !o.Direction.valid() {
		return invalidParameter("unknown edge direction %q", o.Direction)
	}
	if !(o.Sensitivity >= MinSensitivity && o.Sensitivity <= MaxSensitivity) {
		return invalidParameter("sensitivity must be within [%v, %v], got %v", MinSensitivity, MaxSensitivity, o.Sensitivity)
	}
	return nil
}
func (o SharpenOp) validate() error { return o.SharpenParams.validate() }
func (o ChannelsOp) validate() error {
	if _, ok := channelModes[o.Mode]; !ok {
		return invalidParameter("unknown channel mode %q", o.Mode)
	}
	return nil
}
func (o GaussianDenoiseOp) validate() error {
	if !(o.Sigma >= MinDenoiseSigma && o.Sigma <= MaxDenoiseSigma) {
		return invalidParameter("sigma must be within [%v, %v], got %v", MinDenoiseSigma, MaxDenoiseSigma, o.Sigma)
	}
	return nil
}
func (o MedianDenoiseOp) validate() error {
	if !slices.Contains(MedianSizes, o.Size) {
		return invalidParameter("window size must be one of %v, got %d", MedianSizes, o.Size)
	}
	return nil
}
func (o KernelOp) validate() error { _, _, err := PresetKernel(o.Name); return err }

func (o BrightnessOp) Apply(im *Image) (*Image, error) { return Brightness(im, o.Level) }
func (GrayscaleOp) Apply(im *Image) (*Image, error)    { return Grayscale(im) }
func (InvertOp) Apply(im *Image) (*Image, error)       { return Invert(im) }
func (o GaussianNoiseOp) Apply(im *Image) (*Image, error) {
	return GaussianNoise(im, o.Intensity, newRand(o.Seed))
}
func (o SaltPepperOp) Apply(im *Image) (*Image, error) {
	return SaltPepperNoise(im, o.Intensity, newRand(o.Seed))
}
func (o EdgesOp) Apply(im *Image) (*Image, error) {
	return DetectEdges(im, o.Direction, o.Sensitivity)
}
func (o SharpenOp) Apply(im *Image) (*Image, error)         { return Sharpen(im, o.SharpenParams) }
func (o ChannelsOp) Apply(im *Image) (*Image, error)        { return SwapChannels(im, o.Mode) }
func (o GaussianDenoiseOp) Apply(im *Image) (*Image, error) { return Smooth(im, o.Sigma) }
func (o MedianDenoiseOp) Apply(im *Image) (*Image, error)   { return Median(im, o.Size) }
func (o KernelOp) Apply(im *Image) (*Image, error) {
	kernel, _, err := PresetKernel(o.Name)
	if err != nil {
		return nil, err
	}
	return ApplyKernel(im, kernel)
}

func (o BrightnessOp) Title() string {
	return fmt.Sprintf("Brightness level %+d (%s)", o.Level, BrightnessDescription(o.Level))
}
func (GrayscaleOp) Title() string { return "Grayscale" }
func (InvertOp) Title() string    { return "Inverted colors" }
func (o GaussianNoiseOp) Title() string {
	return fmt.Sprintf("Gaussian noise (intensity %.2f)", o.Intensity)
}
func (o SaltPepperOp) Title() string {
	return fmt.Sprintf("Salt & pepper noise (intensity %.2f)", o.Intensity)
}
func (o EdgesOp) Title() string {
	return fmt.Sprintf("Edges %s (sensitivity %.1f)", o.Direction, o.Sensitivity)
}
func (o SharpenOp) Title() string {
	return fmt.Sprintf("Unsharp mask (size %d, sigma %.1f, amount %.1f, threshold %d)",
		o.KernelSize, o.Sigma, o.Amount, o.Threshold)
}
func (o ChannelsOp) Title() string { return fmt.Sprintf("Channels %s", o.Mode) }
func (o GaussianDenoiseOp) Title() string {
	return fmt.Sprintf("Gaussian denoise (sigma %.1f)", o.Sigma)
}
func (o MedianDenoiseOp) Title() string {
	return fmt.Sprintf("Median denoise (%dx%d)", o.Size, o.Size)
}
func (o KernelOp) Title() string {
	if _, title, err := PresetKernel(o.Name); err == nil {
		return title
	}
	return o.Name
}

func (o BrightnessOp) Stem() string    { return fmt.Sprintf("brightness_%+d", o.Level) }
func (GrayscaleOp) Stem() string       { return "grayscale" }
func (InvertOp) Stem() string          { return "inverted" }
func (o GaussianNoiseOp) Stem() string { return fmt.Sprintf("gaussian_%.2f", o.Intensity) }
func (o SaltPepperOp) Stem() string    { return fmt.Sprintf("saltpep_%.2f", o.Intensity) }
func (o EdgesOp) Stem() string {
	return fmt.Sprintf("edges_%s_%.1f", o.Direction, o.Sensitivity)
}
func (o SharpenOp) Stem() string {
	return fmt.Sprintf("sharpened_k%d_s%.1f_a%.1f_t%d", o.KernelSize, o.Sigma, o.Amount, o.Threshold)
}
func (o ChannelsOp) Stem() string        { return fmt.Sprintf("channels_%s", o.Mode) }
func (o GaussianDenoiseOp) Stem() string { return fmt.Sprintf("denoised_gaussian_%.1f", o.Sigma) }
func (o MedianDenoiseOp) Stem() string   { return fmt.Sprintf("denoised_median_%d", o.Size) }
func (o KernelOp) Stem() string          { return o.Name }

// newRand seeds from the clock when seed is zero.
func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Params supplies raw operation parameters, e.g. url.Values.
type Params interface {
	Get(key string) string
}

func intParam(params Params, key string, def int) (int, error) {
	s := params.Get(key)
	if s == "" {
		return def, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, invalidParameter("parsing %q: %v", key, err)
	}
	return v, nil
}

func floatParam(params Params, key string, def float64) (float64, error) {
	s := params.Get(key)
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, invalidParameter("parsing %q: %v", key, err)
	}
	return v, nil
}

func stringParam(params Params, key, def string) string {
	if s := params.Get(key); s != "" {
		return s
	}
	return def
}

// ParseOperation builds and validates an operation of kind from string
// parameters. Missing parameters take the front end defaults.
func ParseOperation(kind Kind, params Params) (Operation, error) {
	op, err := parseOperation(kind, params)
	if err != nil {
		return nil, err
	}
	if err := op.validate(); err != nil {
		return nil, err
	}
	return op, nil
}

// Validate checks parameters of an operation built by hand.
func Validate(op Operation) error {
	return op.validate()
}

func parseOperation(kind Kind, params Params) (Operation, error) {
	var err error
	switch kind {
	case KindBrightness:
		var o BrightnessOp
		o.Level, err = intParam(params, "level", 0)
		return o, err
	case KindGrayscale:
		return GrayscaleOp{}, nil
	case KindInvert:
		return InvertOp{}, nil
	case KindGaussianNoise, KindSaltPepper:
		intensity, err := floatParam(params, "intensity", 0.2)
		if err != nil {
			return nil, err
		}
		seed, err := intParam(params, "seed", 0)
		if err != nil {
			return nil, err
		}
		if kind == KindSaltPepper {
			return SaltPepperOp{intensity, int64(seed)}, nil
		}
		return GaussianNoiseOp{intensity, int64(seed)}, nil
	case KindEdges:
		o := EdgesOp{Direction: Direction(stringParam(params, "direction", string(Both)))}
		o.Sensitivity, err = floatParam(params, "sensitivity", 1.0)
		return o, err
	case KindSharpen:
		o := SharpenOp{DefaultSharpenParams}
		if o.KernelSize, err = intParam(params, "ksize", o.KernelSize); err != nil {
			return nil, err
		}
		if o.Sigma, err = floatParam(params, "sigma", o.Sigma); err != nil {
			return nil, err
		}
		if o.Amount, err = floatParam(params, "amount", o.Amount); err != nil {
			return nil, err
		}
		o.Threshold, err = intParam(params, "threshold", o.Threshold)
		return o, err
	case KindChannels:
		return ChannelsOp{ChannelMode(stringParam(params, "mode", "rgb"))}, nil
	case KindGaussianDenoise:
		var o GaussianDenoiseOp
		o.Sigma, err = floatParam(params, "sigma", 1.0)
		return o, err
	case KindMedianDenoise:
		var o MedianDenoiseOp
		o.Size, err = intParam(params, "size", 3)
		return o, err
	case KindKernel:
		return KernelOp{stringParam(params, "name", "blur")}, nil
	default:
		return nil, invalidParameter("unknown operation %q", kind)
	}
}
