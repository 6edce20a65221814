package qr

import (
	"fmt"
	"image"
	"math"
	"strings"
	"testing"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"

	"github.com/matzehuels/welcomescreen/pkg/errors"
)

func decode(t *testing.T, img image.Image) string {
	t.Helper()
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		t.Fatalf("NewBinaryBitmapFromImage: %v", err)
	}
	res, err := qrcode.NewQRCodeReader().Decode(bmp, nil)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	return res.GetText()
}

func TestEncodeRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		size    int
	}{
		{"wifi preview", "WIFI:T:WPA;S:Regatas_San Jose;P:RegatasWelcome2024;H:false;;", 480},
		{"contact preview", "https://wa.me/51990411197?text=Pedido%20Bungalow%20208", 480},
		{"contact print", "https://wa.me/51990411197?text=Pedido%20Bungalow%20208", 960},
		{"odd size", "regatas.tv/r/208", 333},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := Encode(tt.payload, tt.size)
			if err != nil {
				t.Fatalf("Encode() error: %v", err)
			}
			if got := decode(t, img.Bitmap); got != tt.payload {
				t.Errorf("decoded %q, want %q", got, tt.payload)
			}
		})
	}
}

func TestEncodeShape(t *testing.T) {
	img, err := Encode("https://wa.me/51990411197?text=Pedido%20Bungalow%20208", 480)
	if err != nil {
		t.Fatal(err)
	}

	if b := img.Bitmap.Bounds(); b.Dx() != 480 || b.Dy() != 480 {
		t.Errorf("bitmap = %dx%d, want 480x480", b.Dx(), b.Dy())
	}
	if img.Level != "Q" || img.MarginModules != 4 || img.PixelSize != 480 {
		t.Errorf("metadata = %s/%d/%d", img.Level, img.MarginModules, img.PixelSize)
	}
	n := len(img.Modules)
	if n < 21 || (n-21)%4 != 0 {
		t.Errorf("symbol width %d is not a QR version size", n)
	}
	if img.TotalModules() != n+8 {
		t.Errorf("TotalModules() = %d, want %d", img.TotalModules(), n+8)
	}

	// Quiet zone stays white and every pixel is pure black or white.
	for y := 0; y < 480; y++ {
		for x := 0; x < 480; x++ {
			c := img.Bitmap.RGBAAt(x, y)
			if c.R != c.G || c.G != c.B || (c.R != 0 && c.R != 255) || c.A != 255 {
				t.Fatalf("pixel (%d,%d) = %v, want black or white", x, y, c)
			}
		}
	}
	margin := int(img.ModulePitch() * 4)
	for i := 0; i < margin; i++ {
		if img.Bitmap.RGBAAt(i, i).R != 255 {
			t.Fatalf("quiet zone pixel (%d,%d) is dark", i, i)
		}
	}
	// Top-left finder pattern corner is dark.
	p := int(img.ModulePitch()*4) + 1
	if img.Bitmap.RGBAAt(p, p).R != 0 {
		t.Errorf("finder corner (%d,%d) is not dark", p, p)
	}
}

func TestRasterGridAlignment(t *testing.T) {
	img, err := Encode("WIFI:T:WPA;S:Regatas_San Jose;P:RegatasWelcome2024;H:false;;", 960)
	if err != nil {
		t.Fatal(err)
	}
	symbol := len(img.Modules)

	for _, size := range []int{480, 500, 960} {
		t.Run(fmt.Sprint(size), func(t *testing.T) {
			bmp := img.Raster(size, size)
			pitch := float64(size) / float64(img.TotalModules())

			// The finder patterns make the first and last symbol columns dark.
			first, last := -1, -1
			for x := 0; x < size; x++ {
				for y := 0; y < size; y++ {
					if bmp.RGBAAt(x, y).R == 0 {
						if first < 0 {
							first = x
						}
						last = x
						break
					}
				}
			}
			if want := 4 * pitch; math.Abs(float64(first)-want) > 0.5 {
				t.Errorf("first dark column = %d, want %.2f", first, want)
			}
			if want := float64(4+symbol) * pitch; math.Abs(float64(last+1)-want) > 0.5 {
				t.Errorf("symbol ends at %d, want %.2f", last+1, want)
			}
			if got := decode(t, bmp); got != img.Payload {
				t.Errorf("decode = %q", got)
			}
		})
	}
}

func TestEncodeErrors(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		size    int
		code    errors.Code
	}{
		{"oversize payload", strings.Repeat("a", 3000), 480, errors.ErrCodeQREncode},
		{"zero size", "hello", 0, errors.ErrCodeValidation},
		{"negative size", "hello", -4, errors.ErrCodeValidation},
		{"smaller than modules", "hello", 10, errors.ErrCodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := Encode(tt.payload, tt.size)
			if err == nil {
				t.Fatal("expected error")
			}
			if img != nil {
				t.Error("expected nil image on error")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("code = %v, want %v", errors.GetCode(err), tt.code)
			}
		})
	}
}

func TestPNG(t *testing.T) {
	img, err := Encode("hello", 120)
	if err != nil {
		t.Fatal(err)
	}
	data, err := img.PNG()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "\x89PNG") {
		t.Error("PNG() did not return PNG data")
	}
}
