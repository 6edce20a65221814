// Package qr rasterizes payload strings into square black-on-white QR
// bitmaps sized for the welcome-screen cards.
//
// Every code uses error-correction level Q and a four-module quiet zone.
// The symbol is first built at one pixel per module and then scaled to the
// requested size by nearest-module sampling, so every output pixel is either
// pure black or pure white even when the size is not a multiple of the
// module count.
package qr

import (
	"bytes"
	"image"
	"image/color"
	"image/png"

	"github.com/boombuler/barcode"
	bqr "github.com/boombuler/barcode/qr"
	"golang.org/x/image/draw"

	"github.com/matzehuels/welcomescreen/pkg/errors"
)

// Level is the error-correction level used for every code.
const Level = "Q"

// MarginModules is the width of the quiet zone on each side.
const MarginModules = 4

// Image is an encoded QR code and its raster.
type Image struct {
	Payload       string
	Level         string
	MarginModules int
	PixelSize     int

	// Modules is the symbol matrix without the quiet zone, indexed [row][col].
	// True is a dark module.
	Modules [][]bool

	Bitmap *image.RGBA
}

// Encode builds a PixelSize×PixelSize QR bitmap for payload.
//
// A payload that does not fit in a level-Q symbol fails with
// QR_ENCODE_ERROR. A size smaller than one pixel per module fails with
// VALIDATION_ERROR.
func Encode(payload string, pixelSize int) (*Image, error) {
	if pixelSize <= 0 {
		return nil, errors.New(errors.ErrCodeValidation, "qr pixel size must be positive, got %d", pixelSize)
	}

	code, err := bqr.Encode(payload, bqr.Q, bqr.Auto)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQREncode, err, "payload of %d bytes does not fit a level-Q code", len(payload))
	}

	modules := matrix(code)
	total := len(modules) + 2*MarginModules
	if pixelSize < total {
		return nil, errors.New(errors.ErrCodeValidation, "qr pixel size %d is smaller than %d modules", pixelSize, total)
	}

	q := &Image{
		Payload:       payload,
		Level:         Level,
		MarginModules: MarginModules,
		PixelSize:     pixelSize,
		Modules:       modules,
	}
	q.Bitmap = q.Raster(pixelSize, pixelSize)
	return q, nil
}

// Raster draws the code, quiet zone included, into a fresh w×h bitmap.
// Each pixel takes the module under its center, so module edges land
// within half a pixel of their exact position at any size.
func (q *Image) Raster(w, h int) *image.RGBA {
	total := q.TotalModules()
	src := image.NewGray(image.Rect(0, 0, total, total))
	draw.Draw(src, src.Bounds(), image.White, image.Point{}, draw.Src)
	for y, row := range q.Modules {
		for x, dark := range row {
			if dark {
				src.SetGray(x+q.MarginModules, y+q.MarginModules, color.Gray{Y: 0})
			}
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// TotalModules is the symbol width including both quiet zones.
func (q *Image) TotalModules() int {
	return len(q.Modules) + 2*q.MarginModules
}

// ModulePitch is the width of one module in output pixels.
func (q *Image) ModulePitch() float64 {
	return float64(q.PixelSize) / float64(q.TotalModules())
}

// PNG encodes the bitmap as PNG.
func (q *Image) PNG() ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, q.Bitmap); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode qr bitmap")
	}
	return buf.Bytes(), nil
}

func matrix(code barcode.Barcode) [][]bool {
	b := code.Bounds()
	rows := make([][]bool, b.Dy())
	for y := range rows {
		rows[y] = make([]bool, b.Dx())
		for x := range rows[y] {
			g := color.GrayModel.Convert(code.At(b.Min.X+x, b.Min.Y+y)).(color.Gray)
			rows[y][x] = g.Y < 128
		}
	}
	return rows
}
