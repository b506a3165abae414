package enhancer

import (
	"image/color"
	"testing"
)

func TestPreviewKeepsAspect(t *testing.T) {
	p := Preview(gradient(t, 50, 100, 3).ToStd())
	if p.Bounds().Dx() != PreviewWidth || p.Bounds().Dy() != PreviewWidth/2 {
		t.Fatalf("unexpected preview size %v", p.Bounds())
	}
}

func TestComparison(t *testing.T) {
	original := gradient(t, 20, 40, 3)
	result, err := Invert(original)
	if err != nil {
		t.Fatal(err)
	}
	sheet, err := Comparison(original, result, "Inverted colors")
	if err != nil {
		t.Fatal(err)
	}
	b := sheet.Bounds()
	if b.Dx() != 2*PreviewWidth+3*sheetMargin || b.Dy() != captionHeight+200+2*sheetMargin {
		t.Fatalf("unexpected sheet size %v", b)
	}
	if sheet.RGBAAt(0, 0) != (color.RGBA{255, 255, 255, 255}) {
		t.Fatal("background must be white")
	}

	dark := false
	for y := sheetMargin; y < captionHeight; y++ {
		for x := 0; x < b.Dx(); x++ {
			if sheet.RGBAAt(x, y).R < 128 {
				dark = true
			}
		}
	}
	if !dark {
		t.Fatal("captions were not drawn")
	}
}
