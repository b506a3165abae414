package enhancer

import "math/rand"

func randomPartition(arr []uint8, l, r int) int {
	pivot := l + rand.Intn(r-l)
	arr[pivot], arr[r-1] = arr[r-1], arr[pivot]
	x := arr[r-1]
	i := l
	for j := l; j < r-1; j++ {
		if arr[j] < x {
			arr[i], arr[j] = arr[j], arr[i]
			i++
		}
	}
	arr[i], arr[r-1] = arr[r-1], arr[i]
	return i
}

// kthSmallest returns element which would be at index k of sorted arr[l:r].
// arr is reordered in place.
func kthSmallest(arr []uint8, l, r, k int) uint8 {
	for {
		if r-l == 1 {
			return arr[l]
		}
		pos := randomPartition(arr, l, r)
		switch {
		case pos == k:
			return arr[pos]
		case pos > k:
			r = pos
		default:
			l = pos + 1
		}
	}
}

// Median replaces every sample by the median of its windowSize x windowSize
// neighbourhood in the same channel. Borders mirror the edge sample.
func Median(im *Image, windowSize int) (*Image, error) {
	if err := checkWindow(windowSize); err != nil {
		return nil, err
	}
	if err := im.Validate(); err != nil {
		return nil, err
	}
	half := windowSize / 2
	out := &Image{Height: im.Height, Width: im.Width, Channels: im.Channels, Pix: make([]uint8, len(im.Pix))}
	window := make([]uint8, windowSize*windowSize)
	for y := 0; y < im.Height; y++ {
		for x := 0; x < im.Width; x++ {
			for c := 0; c < im.Channels; c++ {
				k := 0
				for ky := -half; ky <= half; ky++ {
					sy := Symmetric.mirror(y+ky, im.Height)
					for kx := -half; kx <= half; kx++ {
						window[k] = im.At(sy, Symmetric.mirror(x+kx, im.Width), c)
						k++
					}
				}
				out.Set(y, x, c, kthSmallest(window, 0, len(window), len(window)/2))
			}
		}
	}
	return out, nil
}
