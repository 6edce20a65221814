package sink

import (
	"bytes"
	"image"
	"image/draw"
	"image/png"

	"github.com/matzehuels/welcomescreen/pkg/errors"
	"github.com/matzehuels/welcomescreen/pkg/render/layout"
)

// EncodePNG encodes a finished composite. The image must be exactly
// layout.Width×layout.Height. Fully opaque composites are written as 8-bit
// RGB, anything else as 8-bit RGBA.
func EncodePNG(img image.Image) ([]byte, error) {
	if img == nil {
		return nil, errors.New(errors.ErrCodeRenderFailed, "no image to encode")
	}
	b := img.Bounds()
	if b.Dx() != layout.Width || b.Dy() != layout.Height {
		return nil, errors.New(errors.ErrCodeRenderFailed, "composite is %dx%d, want %dx%d", b.Dx(), b.Dy(), layout.Width, layout.Height)
	}

	switch img.(type) {
	case *image.RGBA, *image.NRGBA:
	default:
		rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
		img = rgba
	}

	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.DefaultCompression}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "encode png")
	}
	return buf.Bytes(), nil
}

// DecodeDimensions returns the size of PNG data without decoding pixels.
func DecodeDimensions(data []byte) (width, height int, err error) {
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read png header")
	}
	return cfg.Width, cfg.Height, nil
}
