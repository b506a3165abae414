package enhancer

// Grayscale projects channels with perceptual weights and replicates the
// result into three channels. Applying it twice gives the same image.
func Grayscale(im *Image) (*Image, error) {
	if err := im.Validate(); err != nil {
		return nil, err
	}
	return replicate(luma(im).Image()), nil
}
