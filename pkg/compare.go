package enhancer

import (
	"image"
	"image/color"
	"sync"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	// PreviewWidth is width of each panel of a comparison sheet.
	PreviewWidth = 400

	captionSize   = 16
	captionHeight = 32
	sheetMargin   = 10
)

var captionFont = sync.OnceValues(func() (*truetype.Font, error) {
	return freetype.ParseFont(goregular.TTF)
})

// Preview scales im to PreviewWidth keeping the aspect ratio.
func Preview(im image.Image) *image.RGBA {
	b := im.Bounds()
	height := max(1, b.Dy()*PreviewWidth/max(1, b.Dx()))
	dst := image.NewRGBA(image.Rect(0, 0, PreviewWidth, height))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), im, b, draw.Src, nil)
	return dst
}

// Comparison renders original and result side by side with captions.
func Comparison(original, result *Image, title string) (*image.RGBA, error) {
	if err := original.Validate(); err != nil {
		return nil, err
	}
	if err := result.Validate(); err != nil {
		return nil, err
	}
	ttf, err := captionFont()
	if err != nil {
		return nil, err
	}

	left, right := Preview(original.ToStd()), Preview(result.ToStd())
	panelHeight := max(left.Bounds().Dy(), right.Bounds().Dy())
	sheet := image.NewRGBA(image.Rect(0, 0,
		2*PreviewWidth+3*sheetMargin,
		captionHeight+panelHeight+2*sheetMargin,
	))
	draw.Draw(sheet, sheet.Bounds(), &image.Uniform{color.White}, image.Point{}, draw.Src)

	face := truetype.NewFace(ttf, &truetype.Options{Size: captionSize, DPI: 72, Hinting: font.HintingFull})
	defer face.Close()

	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(ttf)
	ctx.SetFontSize(captionSize)
	ctx.SetClip(sheet.Bounds())
	ctx.SetDst(sheet)
	ctx.SetSrc(image.Black)
	ctx.SetHinting(font.HintingFull)

	for i, panel := range []struct {
		caption string
		im      *image.RGBA
	}{
		{"Original Image", left},
		{title, right},
	} {
		x0 := sheetMargin + i*(PreviewWidth+sheetMargin)
		width := font.MeasureString(face, panel.caption).Ceil()
		pt := freetype.Pt(x0+max(0, (PreviewWidth-width)/2), sheetMargin+captionSize)
		if _, err := ctx.DrawString(panel.caption, pt); err != nil {
			return nil, err
		}
		r := panel.im.Bounds().Add(image.Pt(x0, sheetMargin+captionHeight))
		draw.Draw(sheet, r, panel.im, image.Point{}, draw.Src)
	}
	return sheet, nil
}
