package enhancer

// Invert produces the negative of im.
func Invert(im *Image) (*Image, error) {
	if err := im.Validate(); err != nil {
		return nil, err
	}
	out := &Image{Height: im.Height, Width: im.Width, Channels: im.Channels, Pix: make([]uint8, len(im.Pix))}
	for i, v := range im.Pix {
		out.Pix[i] = 255 - v
	}
	return out, nil
}
