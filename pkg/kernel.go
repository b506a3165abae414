package enhancer

import (
	"math"
	"sort"
)

// Kernel is a square grid of weights with odd side length, stored row by row.
type Kernel struct {
	Size    int
	Weights []float64
}

// NewKernel validates and flattens a square kernel of odd side length.
func NewKernel(rows [][]float64) (*Kernel, error) {
	size := len(rows)
	if size == 0 || size%2 == 0 {
		return nil, invalidParameter("kernel side must be odd, got %d", size)
	}
	k := &Kernel{Size: size, Weights: make([]float64, 0, size*size)}
	for i, row := range rows {
		if len(row) != size {
			return nil, invalidParameter("kernel row %d has %d weights, want %d", i, len(row), size)
		}
		k.Weights = append(k.Weights, row...)
	}
	return k, nil
}

func mustKernel(rows [][]float64) *Kernel {
	k, err := NewKernel(rows)
	if err != nil {
		panic(err)
	}
	return k
}

// At returns weight at row y, column x.
func (k *Kernel) At(y, x int) float64 {
	return k.Weights[y*k.Size+x]
}

// Sum returns sum of all weights.
func (k *Kernel) Sum() float64 {
	s := 0.0
	for _, w := range k.Weights {
		s += w
	}
	return s
}

// Clone returns a copy with its own weights.
func (k *Kernel) Clone() *Kernel {
	return &Kernel{Size: k.Size, Weights: append([]float64(nil), k.Weights...)}
}

// Flip rotates kernel by 180 degrees. Correlating with a flipped kernel
// is a true convolution with the original one.
func (k *Kernel) Flip() *Kernel {
	n := len(k.Weights)
	flipped := &Kernel{Size: k.Size, Weights: make([]float64, n)}
	for i, w := range k.Weights {
		flipped.Weights[n-1-i] = w
	}
	return flipped
}

// SobelX returns horizontal gradient operator.
func SobelX() *Kernel {
	return mustKernel([][]float64{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	})
}

// SobelY returns vertical gradient operator.
func SobelY() *Kernel {
	return mustKernel([][]float64{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	})
}

// MaxKernelSize bounds the side of generated kernels and filter windows.
const MaxKernelSize = 31

func checkWindow(size int) error {
	if size < 3 || size%2 == 0 || size > MaxKernelSize {
		return invalidParameter("kernel size must be odd within [3, %d], got %d", MaxKernelSize, size)
	}
	return nil
}

func checkGaussian(size int, sigma float64) error {
	if err := checkWindow(size); err != nil {
		return err
	}
	if !(sigma > 0) || math.IsInf(sigma, 0) {
		return invalidParameter("sigma must be positive, got %v", sigma)
	}
	return nil
}

// Gaussian1D samples the Gaussian density on integer offsets -size/2..size/2
// and normalizes it to sum to 1.
func Gaussian1D(size int, sigma float64) ([]float64, error) {
	if err := checkGaussian(size, sigma); err != nil {
		return nil, err
	}
	return gaussianSamples(size/2, sigma), nil
}

func gaussianSamples(radius int, sigma float64) []float64 {
	g := make([]float64, 2*radius+1)
	sum := 0.0
	for i := range g {
		x := float64(i-radius) / sigma
		g[i] = math.Exp(-0.5 * x * x)
		sum += g[i]
	}
	for i := range g {
		g[i] /= sum
	}
	return g
}

// Gaussian builds the 2D kernel as outer product of Gaussian1D with itself.
func Gaussian(size int, sigma float64) (*Kernel, error) {
	g, err := Gaussian1D(size, sigma)
	if err != nil {
		return nil, err
	}
	return outer(g), nil
}

func outer(g []float64) *Kernel {
	k := &Kernel{Size: len(g), Weights: make([]float64, len(g)*len(g))}
	for y, wy := range g {
		for x, wx := range g {
			k.Weights[y*k.Size+x] = wy * wx
		}
	}
	return k
}

var (
	blurKernel = mustKernel([][]float64{
		{1, 1, 1},
		{1, 1, 1},
		{1, 1, 1},
	})
	weakBlurKernel = mustKernel([][]float64{
		{0, 1, 0},
		{1, 1, 1},
		{0, 1, 0},
	})
	embossKernel = mustKernel([][]float64{
		{-2, -1, 0},
		{-1, 1, 1},
		{0, 1, 2},
	})
	sharpenKernel = mustKernel([][]float64{
		{0, -1, 0},
		{-1, 5, -1},
		{0, -1, 0},
	})
	edgeEnhanceKernel = mustKernel([][]float64{
		{0, 0, 0},
		{-1, 1, 0},
		{0, 0, 0},
	})
	edgeDetect1Kernel = mustKernel([][]float64{
		{1, 0, -1},
		{0, 0, 0},
		{-1, 0, 1},
	})
	edgeDetect2Kernel = mustKernel([][]float64{
		{0, -1, 0},
		{-1, 4, -1},
		{0, -1, 0},
	})
	horizontalLinesKernel = mustKernel([][]float64{
		{-1, -1, -1},
		{2, 2, 2},
		{-1, -1, -1},
	})
	verticalLinesKernel = mustKernel([][]float64{
		{-1, 2, -1},
		{-1, 2, -1},
		{-1, 2, -1},
	})
)

// presetKernels are classic 3x3 filters addressed by name.
var presetKernels = map[string]struct {
	title  string
	kernel *Kernel
}{
	"blur":            {"Blur", blurKernel},
	"weakblur":        {"Weak blur", weakBlurKernel},
	"emboss":          {"Emboss", embossKernel},
	"sharpen3":        {"Sharpen", sharpenKernel},
	"edgeenhance":     {"Edge enhance", edgeEnhanceKernel},
	"edgedetect1":     {"Edge detect 1", edgeDetect1Kernel},
	"edgedetect2":     {"Edge detect 2", edgeDetect2Kernel},
	"horizontallines": {"Horizontal lines", horizontalLinesKernel},
	"verticallines":   {"Vertical lines", verticalLinesKernel},
}

// PresetKernel looks up a classic kernel by name. The result is a copy the
// caller may modify.
func PresetKernel(name string) (*Kernel, string, error) {
	p, ok := presetKernels[name]
	if !ok {
		return nil, "", invalidParameter("unknown kernel %q", name)
	}
	return p.kernel.Clone(), p.title, nil
}

// PresetKernelNames lists preset names in sorted order.
func PresetKernelNames() []string {
	names := make([]string, 0, len(presetKernels))
	for name := range presetKernels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
