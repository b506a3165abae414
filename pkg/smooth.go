package enhancer

// truncate is the kernel radius in standard deviations.
const truncate = 4.0

// MaxSmoothSigma is the largest sigma whose kernel fits in MaxKernelSize.
const MaxSmoothSigma = 3.5

// Smooth blurs each channel with a Gaussian of the given sigma using two
// 1D passes. Radius is truncate*sigma rounded, borders mirror the edge sample.
func Smooth(im *Image, sigma float64) (*Image, error) {
	if !(sigma > 0 && sigma <= MaxSmoothSigma) {
		return nil, invalidParameter("sigma must be within (0, %v], got %v", MaxSmoothSigma, sigma)
	}
	if err := im.Validate(); err != nil {
		return nil, err
	}
	radius := int(truncate*sigma + 0.5)
	return CorrelateSeparable(im.Field(), gaussianSamples(radius, sigma), Symmetric).Image(), nil
}
