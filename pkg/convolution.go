package enhancer

import "math"

// Border selects how samples outside the image are synthesized.
type Border int

const (
	// Reflect mirrors around the edge sample without repeating it: d c b | a b c d.
	Reflect Border = iota
	// Symmetric mirrors including the edge sample: c b a | a b c d.
	Symmetric
)

func (b Border) String() string {
	switch b {
	case Reflect:
		return "reflect"
	case Symmetric:
		return "symmetric"
	default:
		return "unknown"
	}
}

// mirror maps any index into [0, n) by repeated reflection.
func (b Border) mirror(i, n int) int {
	if i >= 0 && i < n {
		return i
	}
	switch b {
	case Symmetric:
		period := 2 * n
		i %= period
		if i < 0 {
			i += period
		}
		if i >= n {
			i = period - 1 - i
		}
	default:
		if n == 1 {
			return 0
		}
		period := 2 * (n - 1)
		i %= period
		if i < 0 {
			i += period
		}
		if i >= n {
			i = period - i
		}
	}
	return i
}

// pad extends one channel of f by p samples on each side.
func pad(f *Field, c, p int, border Border) (data []float64, stride int) {
	stride = f.Width + 2*p
	data = make([]float64, (f.Height+2*p)*stride)
	for y := 0; y < f.Height+2*p; y++ {
		sy := border.mirror(y-p, f.Height)
		for x := 0; x < stride; x++ {
			sx := border.mirror(x-p, f.Width)
			data[y*stride+x] = f.At(sy, sx, c)
		}
	}
	return data, stride
}

// Correlate slides kernel over every channel of f and returns the weighted
// window sums. The kernel is not flipped. Output has the shape of f.
func Correlate(f *Field, k *Kernel, border Border) *Field {
	p := k.Size / 2
	dst := NewField(f.Height, f.Width, f.Channels)
	for c := 0; c < f.Channels; c++ {
		padded, stride := pad(f, c, p, border)
		for y := 0; y < f.Height; y++ {
			for x := 0; x < f.Width; x++ {
				var sum float64
				for ky := 0; ky < k.Size; ky++ {
					row := padded[(y+ky)*stride+x:]
					for kx := 0; kx < k.Size; kx++ {
						sum += row[kx] * k.Weights[ky*k.Size+kx]
					}
				}
				dst.Set(y, x, c, sum)
			}
		}
	}
	return dst
}

// CorrelateSeparable applies 1D kernel g along rows, then along columns.
// The result equals Correlate with the outer product of g up to rounding.
func CorrelateSeparable(f *Field, g []float64, border Border) *Field {
	p := len(g) / 2
	tmp := NewField(f.Height, f.Width, f.Channels)
	for c := 0; c < f.Channels; c++ {
		for y := 0; y < f.Height; y++ {
			for x := 0; x < f.Width; x++ {
				var sum float64
				for i, w := range g {
					sum += f.At(y, border.mirror(x+i-p, f.Width), c) * w
				}
				tmp.Set(y, x, c, sum)
			}
		}
	}
	dst := NewField(f.Height, f.Width, f.Channels)
	for c := 0; c < f.Channels; c++ {
		for y := 0; y < f.Height; y++ {
			for x := 0; x < f.Width; x++ {
				var sum float64
				for i, w := range g {
					sum += tmp.At(border.mirror(y+i-p, f.Height), x, c) * w
				}
				dst.Set(y, x, c, sum)
			}
		}
	}
	return dst
}

// minMax returns the smallest and largest sample of f.
func minMax(f *Field) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range f.Data {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}

// stretch linearly rescales f from its observed range onto [0, 1] and
// multiplies by gain, clipping to [0, 1]. A flat field maps to zero.
func stretch(f *Field, gain float64) *Field {
	dst := NewField(f.Height, f.Width, f.Channels)
	lo, hi := minMax(f)
	diff := hi - lo
	if diff == 0 {
		return dst
	}
	for i, v := range f.Data {
		dst.Data[i] = math.Min(math.Max((v-lo)/diff*gain, 0), 1)
	}
	return dst
}

// ApplyKernel correlates every channel of im with kernel and stretches the
// response range onto [0, 255]. Borders replicate the edge sample.
func ApplyKernel(im *Image, kernel *Kernel) (*Image, error) {
	if err := im.Validate(); err != nil {
		return nil, err
	}
	if kernel == nil || kernel.Size%2 == 0 || len(kernel.Weights) != kernel.Size*kernel.Size {
		return nil, invalidParameter("kernel must be square with odd side")
	}
	response := Correlate(im.Field(), kernel, Symmetric)
	return scale255(stretch(response, 1)).Image(), nil
}

func scale255(f *Field) *Field {
	for i := range f.Data {
		f.Data[i] *= 255
	}
	return f
}
