package enhancer

const (
	MinBrightnessLevel = -4
	MaxBrightnessLevel = 4
)

type brightnessLevel struct {
	factor      float64
	description string
}

// brightnessLevels is indexed by level - MinBrightnessLevel.
var brightnessLevels = [...]brightnessLevel{
	{0.2, "Very dark (20% brightness)"},
	{0.3, "Darker (30% brightness)"},
	{0.5, "Somewhat dark (50% brightness)"},
	{0.7, "Slightly dark (70% brightness)"},
	{1.0, "Normal (100% brightness)"},
	{1.3, "Slightly bright (130% brightness)"},
	{1.6, "Somewhat bright (160% brightness)"},
	{1.9, "Brighter (190% brightness)"},
	{2.2, "Very bright (220% brightness)"},
}

func lookupBrightness(level int) (brightnessLevel, error) {
	if level < MinBrightnessLevel || level > MaxBrightnessLevel {
		return brightnessLevel{}, invalidParameter("brightness level must be between %d and %d, got %d",
			MinBrightnessLevel, MaxBrightnessLevel, level)
	}
	return brightnessLevels[level-MinBrightnessLevel], nil
}

// BrightnessFactor returns the multiplier for level.
func BrightnessFactor(level int) (float64, error) {
	l, err := lookupBrightness(level)
	return l.factor, err
}

// BrightnessDescription returns a human readable name of level.
func BrightnessDescription(level int) string {
	l, err := lookupBrightness(level)
	if err != nil {
		return "Unknown level"
	}
	return l.description
}

// Brightness multiplies every sample by the factor of level.
func Brightness(im *Image, level int) (*Image, error) {
	l, err := lookupBrightness(level)
	if err != nil {
		return nil, err
	}
	if err := im.Validate(); err != nil {
		return nil, err
	}
	out := &Image{Height: im.Height, Width: im.Width, Channels: im.Channels, Pix: make([]uint8, len(im.Pix))}
	for i, v := range im.Pix {
		out.Pix[i] = clampUint8(float64(v) * l.factor)
	}
	return out, nil
}

// LeveledImage is the result of one brightness level.
type LeveledImage struct {
	Level int
	Image *Image
}

// BrightnessAll applies every level except the identity one, darkest first.
func BrightnessAll(im *Image) ([]LeveledImage, error) {
	res := make([]LeveledImage, 0, len(brightnessLevels)-1)
	for level := MinBrightnessLevel; level <= MaxBrightnessLevel; level++ {
		if level == 0 {
			continue
		}
		out, err := Brightness(im, level)
		if err != nil {
			return nil, err
		}
		res = append(res, LeveledImage{level, out})
	}
	return res, nil
}
