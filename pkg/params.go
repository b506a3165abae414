package enhancer

import (
	"fmt"
	"strconv"
	"strings"
)

// Parameter describes one string parameter read by ParseOperation.
type Parameter struct {
	Name    string
	Usage   string
	Default string
}

// Join lists names separated by commas.
func Join[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}

var parameters = map[Kind][]Parameter{
	KindBrightness: {
		{"level", fmt.Sprintf("brightness level in [%d, %d]", MinBrightnessLevel, MaxBrightnessLevel), "0"},
	},
	KindGaussianNoise: {{"intensity", "noise intensity in [0, 1]", "0.2"}},
	KindSaltPepper:    {{"intensity", "share of replaced pixels in [0, 1]", "0.2"}},
	KindEdges: {
		{"direction", "edge direction: " + Join(Directions), string(Both)},
		{"sensitivity", fmt.Sprintf("edge sensitivity in [%v, %v]", MinSensitivity, MaxSensitivity), "1.0"},
	},
	KindSharpen: {
		{"ksize", fmt.Sprintf("odd gaussian kernel size in [3, %d]", MaxKernelSize), strconv.Itoa(DefaultSharpenParams.KernelSize)},
		{"sigma", "gaussian standard deviation", "1.0"},
		{"amount", "sharpening strength, negative blurs", "1.5"},
		{"threshold", "minimal difference to sharpen", "0"},
	},
	KindChannels:        {{"mode", "channel order: " + Join(ChannelModes), "rgb"}},
	KindGaussianDenoise: {{"sigma", fmt.Sprintf("gaussian standard deviation in [%v, %v]", MinDenoiseSigma, MaxDenoiseSigma), "1.0"}},
	KindMedianDenoise:   {{"size", fmt.Sprintf("window size, one of %v", MedianSizes), "3"}},
	KindKernel:          {{"name", "preset kernel: " + Join(PresetKernelNames()), "blur"}},
}

var summaries = map[Kind]string{
	KindBrightness:      "Brightness",
	KindGrayscale:       "Grayscale",
	KindGaussianNoise:   "Gaussian noise",
	KindSaltPepper:      "Salt and pepper noise",
	KindEdges:           "Edge detection",
	KindSharpen:         "Unsharp mask",
	KindChannels:        "Channel swap",
	KindInvert:          "Invert colors",
	KindGaussianDenoise: "Gaussian denoise",
	KindMedianDenoise:   "Median denoise",
	KindKernel:          "Preset kernel",
}

// Parameters lists what ParseOperation reads for kind, in prompt order.
// The seed of noise operations is not listed.
func Parameters(kind Kind) []Parameter {
	return parameters[kind]
}

// Summary is a short human name of kind.
func Summary(kind Kind) string {
	return summaries[kind]
}
