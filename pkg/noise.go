package enhancer

import "math/rand"

func checkIntensity(intensity float64) error {
	if !(intensity >= 0 && intensity <= 1) {
		return invalidParameter("noise intensity must be within [0, 1], got %v", intensity)
	}
	return nil
}

// GaussianNoise adds zero mean normal noise with standard deviation
// intensity*255 to every sample.
func GaussianNoise(im *Image, intensity float64, rng *rand.Rand) (*Image, error) {
	if err := checkIntensity(intensity); err != nil {
		return nil, err
	}
	if err := im.Validate(); err != nil {
		return nil, err
	}
	stdDev := intensity * 255
	out := &Image{Height: im.Height, Width: im.Width, Channels: im.Channels, Pix: make([]uint8, len(im.Pix))}
	for i, v := range im.Pix {
		out.Pix[i] = clampUint8(float64(v) + rng.NormFloat64()*stdDev)
	}
	return out, nil
}

// SaltPepperNoise turns each pixel white with probability intensity/2 and
// black with probability intensity/2. All channels of a pixel change together.
func SaltPepperNoise(im *Image, intensity float64, rng *rand.Rand) (*Image, error) {
	if err := checkIntensity(intensity); err != nil {
		return nil, err
	}
	if err := im.Validate(); err != nil {
		return nil, err
	}
	out := im.Clone()
	for i := 0; i < im.Height*im.Width; i++ {
		var v uint8
		switch u := rng.Float64(); {
		case u < intensity/2:
			v = 255
		case u < intensity:
			v = 0
		default:
			continue
		}
		px := out.Pix[i*im.Channels : (i+1)*im.Channels]
		for c := range px {
			px[c] = v
		}
	}
	return out, nil
}
