package service

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const watermarkStripHeight = 22

// Watermark burns the attribution username into the bottom-left corner of an
// image, over a dark strip for contrast, and re-encodes it as PNG.
func Watermark(src []byte, username string) ([]byte, error) {
	decoded, err := imaging.Decode(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	img := imaging.Clone(decoded)
	bounds := img.Bounds()

	strip := image.Rect(bounds.Min.X, bounds.Max.Y-watermarkStripHeight, bounds.Max.X, bounds.Max.Y)
	draw.Draw(img, strip, image.NewUniform(color.NRGBA{0, 0, 0, 160}), image.Point{}, draw.Over)

	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.White),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(bounds.Min.X+6, bounds.Max.Y-7),
	}
	drawer.DrawString("@" + username)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}
	return buf.Bytes(), nil
}
