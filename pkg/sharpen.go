package enhancer

import "math"

// SharpenParams configures unsharp masking.
type SharpenParams struct {
	KernelSize int
	Sigma      float64
	// Amount scales the detail mask. Negative values blur instead of sharpen.
	Amount float64
	// Threshold suppresses mask entries with smaller absolute value.
	Threshold int
}

// DefaultSharpenParams are the values offered by the front ends.
var DefaultSharpenParams = SharpenParams{KernelSize: 5, Sigma: 1.0, Amount: 1.5, Threshold: 0}

func (p SharpenParams) validate() error {
	if err := checkGaussian(p.KernelSize, p.Sigma); err != nil {
		return err
	}
	if math.IsNaN(p.Amount) || math.IsInf(p.Amount, 0) {
		return invalidParameter("amount must be finite, got %v", p.Amount)
	}
	if p.Threshold < 0 {
		return invalidParameter("threshold must not be negative, got %d", p.Threshold)
	}
	return nil
}

// Sharpen amplifies the difference between im and its Gaussian blur.
func Sharpen(im *Image, p SharpenParams) (*Image, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	if err := im.Validate(); err != nil {
		return nil, err
	}

	kernel, err := Gaussian(p.KernelSize, p.Sigma)
	if err != nil {
		return nil, err
	}
	original := im.Field()
	blurred := Correlate(original, kernel, Reflect)

	threshold := float64(p.Threshold)
	out := NewField(im.Height, im.Width, im.Channels)
	for i, v := range original.Data {
		mask := v - blurred.Data[i]
		if threshold > 0 && math.Abs(mask) < threshold {
			mask = 0
		}
		out.Data[i] = v + p.Amount*mask
	}
	return out.Image(), nil
}
