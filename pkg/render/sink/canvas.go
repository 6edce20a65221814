package sink

import (
	"context"
	"image"
	"math"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/welcomescreen/pkg/errors"
	"github.com/matzehuels/welcomescreen/pkg/fonts"
	"github.com/matzehuels/welcomescreen/pkg/qr"
	"github.com/matzehuels/welcomescreen/pkg/render/layout"
	"github.com/matzehuels/welcomescreen/pkg/render/scene"
	"github.com/matzehuels/welcomescreen/pkg/render/styles"
)

// CanvasQRPixelSize is the QR bitmap size for the canvas backend.
const CanvasQRPixelSize = 480

type canvasBackend struct {
	opts options
}

// NewCanvas returns the in-process gg backend.
func NewCanvas(opts ...Option) Backend {
	return &canvasBackend{opts: newOptions(CanvasQRPixelSize, opts)}
}

func (c *canvasBackend) Name() string     { return Canvas }
func (c *canvasBackend) QRPixelSize() int { return c.opts.qrSize }

func (c *canvasBackend) Render(ctx context.Context, s *scene.Scene) (image.Image, error) {
	if err := s.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "invalid scene")
	}

	// Card QR bitmaps are scaled to their boxes independently before
	// painting starts.
	cards := s.Cards()
	fitted := make([]image.Image, len(cards))
	g, gctx := errgroup.WithContext(ctx)
	for i, card := range cards {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fitted[i] = fitQR(card.QR, card.QRRect)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.FromContext(err, "canvas backend")
	}

	surf := &ggSurface{
		dc:  gg.NewContext(s.Width, s.Height),
		qrs: make(map[*qr.Image]image.Image, len(cards)),
	}
	for i, card := range cards {
		surf.qrs[card.QR] = fitted[i]
	}

	if err := walk(ctx, s, surf, c.opts.logger); err != nil {
		return nil, errors.FromContext(err, "canvas backend")
	}
	return surf.dc.Image(), nil
}

// Measure reports the text and panel anchors the paint walk uses, and
// measures each QR grid from the bitmap the canvas actually draws.
func (c *canvasBackend) Measure(s *scene.Scene) (layout.Geometry, error) {
	rec := pixelRecorder{newRecorder(s)}
	if err := walk(context.Background(), s, rec, c.opts.logger); err != nil {
		return layout.Geometry{}, err
	}
	return rec.g, nil
}

// fitQR rasterizes q at the pixel size of r straight from its modules, so
// the grid does not pick up rounding from an intermediate bitmap.
func fitQR(q *qr.Image, r layout.Rect) image.Image {
	w, h := int(math.Round(r.W)), int(math.Round(r.H))
	if b := q.Bitmap.Bounds(); b.Dx() == w && b.Dy() == h {
		return q.Bitmap
	}
	return q.Raster(w, h)
}

// qrOrigin is the pixel where a QR bitmap for r is drawn.
func qrOrigin(r layout.Rect) image.Point {
	return image.Pt(int(math.Round(r.X)), int(math.Round(r.Y)))
}

// pixelRecorder is a recorder whose QR placement comes from the rendered
// bitmap rather than the scene.
type pixelRecorder struct {
	*recorder
}

func (p pixelRecorder) qr(q *qr.Image, r layout.Rect) error {
	img := fitQR(q, r)
	at := qrOrigin(r)
	b := img.Bounds()

	c := p.current()
	if c == nil {
		return nil
	}
	c.QR = layout.Rect{X: float64(at.X), Y: float64(at.Y), W: float64(b.Dx()), H: float64(b.Dy())}
	c.Grid = measureGrid(img, at, len(q.Modules))
	return nil
}

// measureGrid finds the dark bounding box of a QR bitmap drawn at at. The
// finder patterns guarantee the box spans the whole symbol.
func measureGrid(img image.Image, at image.Point, symbol int) layout.Grid {
	b := img.Bounds()
	minX, minY, maxX := b.Max.X, b.Max.Y, b.Min.X-1
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if r, _, _, _ := img.At(x, y).RGBA(); r >= 0x8000 {
				continue
			}
			minX, maxX = min(minX, x), max(maxX, x)
			minY = min(minY, y)
		}
	}
	if maxX < minX {
		return layout.Grid{}
	}
	return layout.Grid{
		Symbol: symbol,
		Pitch:  float64(maxX-minX+1) / float64(symbol),
		Origin: layout.Point{X: float64(at.X + minX - b.Min.X), Y: float64(at.Y + minY - b.Min.Y)},
	}
}

type ggSurface struct {
	dc  *gg.Context
	qrs map[*qr.Image]image.Image
}

func (s *ggSurface) background(b scene.BackgroundLayer) error {
	w, h := s.dc.Width(), s.dc.Height()

	s.dc.SetColor(styles.Navy.NRGBA())
	s.dc.Clear()

	fitted := imaging.Fill(b.Image, w, h, imaging.Center, imaging.Lanczos)
	if b.Blur > 0 {
		fitted = imaging.Blur(fitted, b.Blur)
	}
	s.dc.DrawImage(fitted, 0, 0)
	return nil
}

func (s *ggSurface) gradient(g styles.Gradient) error {
	dst, ok := s.dc.Image().(*image.RGBA)
	if !ok {
		return errors.New(errors.ErrCodeInternal, "canvas is not RGBA")
	}
	w, h := s.dc.Width(), s.dc.Height()

	span, length := h, w
	if g.Axis == styles.Horizontal {
		span, length = w, h
	}
	for i := 0; i < span; i++ {
		c := g.At((float64(i) + 0.5) / float64(span))
		if c.A <= 0 {
			continue
		}
		r := image.Rect(0, i, length, i+1)
		if g.Axis == styles.Horizontal {
			r = image.Rect(i, 0, i+1, length)
		}
		draw.Draw(dst, r, image.NewUniform(c.NRGBA()), image.Point{}, draw.Over)
	}
	return nil
}

func (s *ggSurface) panel(c scene.CardLayer) error {
	r, glass := c.Rect, c.Glass

	if sh := glass.Shadow; sh.Color.A > 0 {
		sigma := sh.Sigma()
		pad := math.Ceil(3 * sigma)
		mask := gg.NewContext(int(r.W+2*pad), int(r.H+2*pad))
		mask.DrawRoundedRectangle(pad, pad, r.W, r.H, c.Radius)
		mask.SetColor(sh.Color.NRGBA())
		mask.Fill()
		blurred := imaging.Blur(mask.Image(), sigma)

		// Shadow is only visible outside the panel.
		s.dc.DrawRoundedRectangle(r.X, r.Y, r.W, r.H, c.Radius)
		s.dc.Clip()
		s.dc.InvertMask()
		s.dc.DrawImage(blurred, int(r.X-pad), int(r.Y+sh.DY-pad))
		s.dc.ResetClip()
	}

	s.dc.DrawRoundedRectangle(r.X, r.Y, r.W, r.H, c.Radius)
	s.dc.SetColor(glass.Fill.NRGBA())
	s.dc.Fill()

	if hl := glass.Highlight; hl != nil {
		s.dc.DrawRoundedRectangle(r.X+hl.Inset, r.Y+hl.Inset, r.W-2*hl.Inset, r.H-2*hl.Inset, hl.Radius)
		s.dc.SetLineWidth(hl.Width)
		s.dc.SetColor(hl.Color.NRGBA())
		s.dc.Stroke()
	}

	s.dc.DrawRoundedRectangle(r.X, r.Y, r.W, r.H, c.Radius)
	s.dc.SetLineWidth(glass.BorderWidth)
	s.dc.SetColor(glass.Border.NRGBA())
	s.dc.Stroke()
	return nil
}

func (s *ggSurface) text(t scene.TextLayer) error {
	st := t.Style
	face, err := fonts.NewFace(st.Weight, st.Size)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "load %s font", t.Role)
	}
	defer face.Close()

	s.dc.SetFontFace(face)
	ax := st.Align.Anchor()

	if sh := st.Shadow; sh != nil {
		width, _ := s.dc.MeasureString(t.Text)
		m := face.Metrics()
		ascent, descent := float64(m.Ascent)/64, float64(m.Descent)/64
		sigma := sh.Blur / 2
		pad := math.Ceil(3*sigma) + 1

		sprite := gg.NewContext(int(math.Ceil(width+2*pad)), int(math.Ceil(ascent+descent+2*pad)))
		sprite.SetFontFace(face)
		sprite.SetColor(sh.Color.NRGBA())
		sprite.DrawString(t.Text, pad, pad+ascent)
		blurred := imaging.Blur(sprite.Image(), sigma)

		left := t.X - ax*width - pad + sh.DX
		top := t.Y - ascent - pad + sh.DY
		s.dc.DrawImage(blurred, int(math.Round(left)), int(math.Round(top)))
	}

	s.dc.SetColor(st.Color.NRGBA())
	s.dc.DrawStringAnchored(t.Text, t.X, t.Y, ax, 0)
	return nil
}

func (s *ggSurface) qr(q *qr.Image, r layout.Rect) error {
	img, ok := s.qrs[q]
	if !ok {
		img = fitQR(q, r)
	}
	at := qrOrigin(r)
	s.dc.DrawImage(img, at.X, at.Y)
	return nil
}
