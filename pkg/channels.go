package enhancer

import "fmt"

// ChannelMode names an output channel arrangement.
type ChannelMode string

// channelModes maps every mode to the source channel of output R, G, B.
// -1 zeroes the output channel.
var channelModes = map[ChannelMode][3]int{
	"rgb": {0, 1, 2},
	"rbg": {0, 2, 1},
	"grb": {1, 0, 2},
	"gbr": {2, 0, 1},
	"brg": {1, 2, 0},
	"bgr": {2, 1, 0},
	"r":   {0, -1, -1},
	"g":   {-1, 1, -1},
	"b":   {-1, -1, 2},
}

// ChannelModes lists accepted modes, permutations first.
var ChannelModes = []ChannelMode{"rgb", "rbg", "grb", "gbr", "brg", "bgr", "r", "g", "b"}

// SwapChannels rearranges or isolates the channels of an RGB image.
func SwapChannels(im *Image, mode ChannelMode) (*Image, error) {
	sources, ok := channelModes[mode]
	if !ok {
		return nil, invalidParameter("unknown channel mode %q", mode)
	}
	if err := im.Validate(); err != nil {
		return nil, err
	}
	if im.Channels != 3 {
		return nil, fmt.Errorf("channel swap: %w", invalidImage("expected 3 channels, got %d", im.Channels))
	}
	out := &Image{Height: im.Height, Width: im.Width, Channels: 3, Pix: make([]uint8, len(im.Pix))}
	for i := 0; i < len(im.Pix); i += 3 {
		for c, src := range sources {
			if src >= 0 {
				out.Pix[i+c] = im.Pix[i+src]
			}
		}
	}
	return out, nil
}
