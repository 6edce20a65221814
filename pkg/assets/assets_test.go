package assets

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/matzehuels/welcomescreen/pkg/cache"
	"github.com/matzehuels/welcomescreen/pkg/errors"
)

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestLoadDefault(t *testing.T) {
	s := NewStore()
	bg, err := s.Load(context.Background(), "")
	if err != nil {
		t.Fatalf("Load(\"\"): %v", err)
	}
	if bg.Image == nil {
		t.Fatal("default background has no image")
	}

	b := bg.Image.Bounds()
	top := color.NRGBAModel.Convert(bg.Image.At(b.Min.X, b.Min.Y)).(color.NRGBA)
	bottom := color.NRGBAModel.Convert(bg.Image.At(b.Min.X, b.Max.Y-1)).(color.NRGBA)
	if top != (color.NRGBA{R: 0x0A, G: 0x1A, B: 0x34, A: 255}) {
		t.Errorf("top row = %v, want navy", top)
	}
	if bottom != (color.NRGBA{R: 0x0E, G: 0x5A, B: 0xA7, A: 255}) {
		t.Errorf("bottom row = %v, want pacific", bottom)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "beach.png")
	if err := os.WriteFile(path, testPNG(t, 64, 36), 0o644); err != nil {
		t.Fatal(err)
	}

	s := NewStore()
	first, err := s.Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := first.Image.Bounds().Size(); got != image.Pt(64, 36) {
		t.Errorf("size = %v, want 64x36", got)
	}
	if first.MIME != "image/png" {
		t.Errorf("MIME = %q, want image/png", first.MIME)
	}

	// Removing the file proves the second load is served from memory.
	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	second, err := s.Load(context.Background(), path)
	if err != nil {
		t.Fatalf("second Load: %v", err)
	}
	if second.Image != first.Image {
		t.Error("second Load should return the cached image")
	}
	if s.Len() != 1 {
		t.Errorf("Len = %d, want 1", s.Len())
	}
}

func TestLoadDataURI(t *testing.T) {
	ref := "data:image/png;base64," + base64.StdEncoding.EncodeToString(testPNG(t, 8, 8))
	bg, err := NewStore().Load(context.Background(), ref)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := bg.Image.Bounds().Dx(); got != 8 {
		t.Errorf("width = %d, want 8", got)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	garbage := filepath.Join(dir, "garbage.jpg")
	if err := os.WriteFile(garbage, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	big := filepath.Join(dir, "big.png")
	if err := os.WriteFile(big, testPNG(t, 64, 64), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		ref  string
		opts []Option
	}{
		{"missing file", filepath.Join(dir, "nope.jpg"), nil},
		{"undecodable file", garbage, nil},
		{"too large", big, []Option{WithMaxBytes(16)}},
		{"bad base64", "data:image/png;base64,!!!", nil},
		{"unsupported scheme", "ftp://example.com/beach.jpg", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewStore(tt.opts...).Load(context.Background(), tt.ref)
			if !errors.Is(err, errors.ErrCodeAssetLoad) {
				t.Errorf("Load(%q) err = %v, want %s", tt.ref, err, errors.ErrCodeAssetLoad)
			}
		})
	}
}

func TestLoadURL(t *testing.T) {
	body := testPNG(t, 32, 18)
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path != "/beach.png" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write(body)
	}))
	defer srv.Close()

	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	bg, err := NewStore(WithCache(c, time.Hour), WithHTTPClient(srv.Client())).Load(ctx, srv.URL+"/beach.png")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := bg.Image.Bounds().Size(); got != image.Pt(32, 18) {
		t.Errorf("size = %v, want 32x18", got)
	}

	// A fresh store shares only the byte cache.
	if _, err := NewStore(WithCache(c, time.Hour), WithHTTPClient(srv.Client())).Load(ctx, srv.URL+"/beach.png"); err != nil {
		t.Fatalf("second Load: %v", err)
	}
	if n := hits.Load(); n != 1 {
		t.Errorf("server hits = %d, want 1", n)
	}

	_, err = NewStore(WithHTTPClient(srv.Client())).Load(ctx, srv.URL+"/missing.png")
	if !errors.Is(err, errors.ErrCodeAssetLoad) {
		t.Errorf("404 err = %v, want %s", err, errors.ErrCodeAssetLoad)
	}
}

func TestLoadCanceled(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewStore(WithHTTPClient(srv.Client())).Load(ctx, srv.URL+"/beach.png")
	if !errors.Is(err, errors.ErrCodeCanceled) {
		t.Errorf("err = %v, want %s", err, errors.ErrCodeCanceled)
	}
}

func TestLoadConcurrent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "beach.png")
	if err := os.WriteFile(path, testPNG(t, 16, 16), 0o644); err != nil {
		t.Fatal(err)
	}

	s := NewStore()
	images := make([]image.Image, 8)
	var wg sync.WaitGroup
	for i := range images {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			bg, err := s.Load(context.Background(), path)
			if err != nil {
				t.Error(err)
				return
			}
			images[i] = bg.Image
		}(i)
	}
	wg.Wait()

	for i, img := range images {
		if img != images[0] {
			t.Errorf("load %d returned a different image", i)
		}
	}
}
