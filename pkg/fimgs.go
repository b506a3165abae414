package enhancer

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const jpegQuality = 95

// DecodeImage reads any registered image format.
func DecodeImage(r io.Reader) (*Image, string, error) {
	im, format, err := image.Decode(r)
	if err != nil {
		return nil, "", invalidImage("decoding: %v", err)
	}
	res, err := FromStd(im)
	if err != nil {
		return nil, "", err
	}
	return res, format, nil
}

func LoadImageFile(imageFilename string) (*Image, error) {
	imageFile, err := os.Open(imageFilename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, invalidImage("image file not found: %s", imageFilename)
		}
		return nil, invalidImage("could not open or read image: %v", err)
	}
	defer imageFile.Close()

	im, _, err := DecodeImage(imageFile)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", imageFilename, err)
	}
	return im, nil
}

// EncodeImage writes im as PNG, or JPEG when format is "jpeg" or "jpg".
func EncodeImage(w io.Writer, im image.Image, format string) error {
	switch strings.ToLower(format) {
	case "jpg", "jpeg":
		return jpeg.Encode(w, im, &jpeg.Options{Quality: jpegQuality})
	default:
		return png.Encode(w, im)
	}
}

// SaveImageFile picks the encoder from the file extension and creates
// missing parent directories.
func SaveImageFile(im image.Image, imageFilename string) (err error) {
	if dir := filepath.Dir(imageFilename); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	imageFile, err := os.Create(imageFilename)
	if err != nil {
		return
	}
	defer func() {
		if errClose := imageFile.Close(); err == nil {
			err = errClose
		}
	}()
	return EncodeImage(imageFile, im, strings.TrimPrefix(filepath.Ext(imageFilename), "."))
}

// ApplyFilter loads the source image, applies op and saves the result.
func ApplyFilter(sourceImageFilename, resultImageFilename string, op Applier) error {
	im, err := LoadImageFile(sourceImageFilename)
	if err != nil {
		return fmt.Errorf("loading image: %w", err)
	}
	res, err := op.Apply(im)
	if err != nil {
		return err
	}
	return SaveImageFile(res.ToStd(), resultImageFilename)
}
