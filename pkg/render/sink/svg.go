package sink

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"image"
	"image/png"
	"io"
	"os/exec"
	"strconv"

	"github.com/matzehuels/welcomescreen/pkg/errors"
	"github.com/matzehuels/welcomescreen/pkg/fonts"
	"github.com/matzehuels/welcomescreen/pkg/render/layout"
	"github.com/matzehuels/welcomescreen/pkg/render/scene"
	"github.com/matzehuels/welcomescreen/pkg/render/styles"
)

// SVGQRPixelSize is the QR bitmap size for the svg backend.
const SVGQRPixelSize = 480

const defaultRSVGPath = "rsvg-convert"

type svgBackend struct {
	opts options
}

// NewSVG returns the rsvg-convert backend.
func NewSVG(opts ...Option) Backend {
	return &svgBackend{opts: newOptions(SVGQRPixelSize, opts)}
}

func (b *svgBackend) Name() string     { return SVG }
func (b *svgBackend) QRPixelSize() int { return b.opts.qrSize }

// Render rasterizes the SVG document with rsvg-convert.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func (b *svgBackend) Render(ctx context.Context, s *scene.Scene) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.FromContext(err, "svg backend")
	}
	if err := s.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "invalid scene")
	}
	doc, err := RenderSVG(s)
	if err != nil {
		return nil, err
	}

	path := b.opts.rsvgPath
	if path == "" {
		path = defaultRSVGPath
	}
	if _, err := exec.LookPath(path); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "svg backend requires librsvg. Install with:\n  macOS:  brew install librsvg\n  Linux:  apt install librsvg2-bin")
	}

	cmd := exec.CommandContext(ctx, path,
		"--format", "png",
		"--width", strconv.Itoa(s.Width),
		"--height", strconv.Itoa(s.Height),
		"--unlimited",
	)
	cmd.Stdin = bytes.NewReader(doc)

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	b.opts.logger.Debug("running rsvg-convert", "path", path, "bytes", len(doc))
	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, errors.FromContext(ctxErr, "svg backend")
		}
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "rsvg-convert: %s", errBuf.String())
	}

	img, err := png.Decode(&out)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "decode rsvg-convert output")
	}
	return img, nil
}

func (b *svgBackend) Measure(s *scene.Scene) (layout.Geometry, error) {
	doc, err := RenderSVG(s)
	if err != nil {
		return layout.Geometry{}, err
	}
	return MeasureSVG(doc)
}

// RenderSVG returns the standalone SVG document for s.
func RenderSVG(s *scene.Scene) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n",
		s.Width, s.Height, s.Width, s.Height)

	svgDefs(&buf, s)
	fmt.Fprintf(&buf, `<rect width="%d" height="%d" fill="%s"/>`+"\n", s.Width, s.Height, styles.Navy.HexString())

	for _, l := range s.Layers {
		var err error
		switch l := l.(type) {
		case scene.BackgroundLayer:
			err = svgBackground(&buf, s, l)
		case scene.GradientLayer:
			fmt.Fprintf(&buf, `<rect data-pass="%s" x="0" y="0" width="%d" height="%d" fill="url(#%s)"/>`+"\n",
				l.Gradient.Pass, s.Width, s.Height, l.Gradient.Pass)
		case scene.TextLayer:
			svgText(&buf, l, "")
		case scene.CardLayer:
			err = svgCard(&buf, l)
		case scene.FooterLayer:
			svgText(&buf, l.URL, "")
			svgText(&buf, l.Logo, "")
		}
		if err != nil {
			return nil, err
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}

func svgDefs(buf *bytes.Buffer, s *scene.Scene) {
	buf.WriteString("<defs>\n")

	blur := s.Background().Blur
	fmt.Fprintf(buf, `<filter id="background-blur" x="0" y="0" width="1" height="1" color-interpolation-filters="sRGB"><feGaussianBlur stdDeviation="%s" edgeMode="duplicate"/></filter>`+"\n", num(blur))

	for _, l := range s.Layers {
		gl, ok := l.(scene.GradientLayer)
		if !ok {
			continue
		}
		g := gl.Gradient
		x2, y2 := 0, 1
		if g.Axis == styles.Horizontal {
			x2, y2 = 1, 0
		}
		fmt.Fprintf(buf, `<linearGradient id="%s" x1="0" y1="0" x2="%d" y2="%d">`, g.Pass, x2, y2)
		for _, st := range g.Stops {
			fmt.Fprintf(buf, `<stop offset="%s" stop-color="%s" stop-opacity="%s"/>`, num(st.Offset), st.Color.HexString(), num(st.Color.A))
		}
		buf.WriteString("</linearGradient>\n")
	}

	if sh := styles.Typography(styles.RoleTitle).Shadow; sh != nil {
		fmt.Fprintf(buf, `<filter id="text-shadow" x="-10%%" y="-50%%" width="120%%" height="200%%" color-interpolation-filters="sRGB">`+
			`<feGaussianBlur in="SourceAlpha" stdDeviation="%s"/><feOffset dx="%s" dy="%s" result="blur"/>`+
			`<feFlood flood-color="%s" flood-opacity="%s"/><feComposite in2="blur" operator="in"/>`+
			`<feMerge><feMergeNode/><feMergeNode in="SourceGraphic"/></feMerge></filter>`+"\n",
			num(sh.Blur/2), num(sh.DX), num(sh.DY), sh.Color.HexString(), num(sh.Color.A))
	}

	for _, c := range s.Cards() {
		r, sh := c.Rect, c.Glass.Shadow
		pad := 3 * sh.Sigma()
		name := c.Card.String()
		fmt.Fprintf(buf, `<filter id="shadow-%s" filterUnits="userSpaceOnUse" x="%s" y="%s" width="%s" height="%s"><feGaussianBlur stdDeviation="%s"/></filter>`+"\n",
			name, num(r.X-pad), num(r.Y+sh.DY-pad), num(r.W+2*pad), num(r.H+2*pad), num(sh.Sigma()))
		fmt.Fprintf(buf, `<mask id="outside-%s" maskUnits="userSpaceOnUse" x="0" y="0" width="%d" height="%d"><rect width="%d" height="%d" fill="white"/><rect x="%s" y="%s" width="%s" height="%s" rx="%s" fill="black"/></mask>`+"\n",
			name, s.Width, s.Height, s.Width, s.Height, num(r.X), num(r.Y), num(r.W), num(r.H), num(c.Radius))
	}

	buf.WriteString("</defs>\n")
}

func svgBackground(buf *bytes.Buffer, s *scene.Scene, b scene.BackgroundLayer) error {
	uri, err := backgroundURI(b)
	if err != nil {
		return err
	}
	fmt.Fprintf(buf, `<image id="background" x="0" y="0" width="%d" height="%d" preserveAspectRatio="xMidYMid slice" filter="url(#background-blur)" xlink:href="%s"/>`+"\n",
		s.Width, s.Height, uri)
	return nil
}

func svgText(buf *bytes.Buffer, t scene.TextLayer, card string) {
	st := t.Style
	var extra string
	if card != "" {
		extra += fmt.Sprintf(` data-card="%s"`, card)
	}
	if st.Shadow != nil {
		extra += ` filter="url(#text-shadow)"`
	}
	fmt.Fprintf(buf, `<text data-role="%s"%s x="%s" y="%s" text-anchor="%s" font-family="%s" font-weight="%d" font-size="%s" fill="%s" fill-opacity="%s">%s</text>`+"\n",
		t.Role, extra, num(t.X), num(t.Y), st.Align.SVG(),
		escape(fonts.FallbackFontFamily), int(st.Weight), num(st.Size),
		st.Color.HexString(), num(st.Color.A), escape(t.Text))
}

func svgCard(buf *bytes.Buffer, c scene.CardLayer) error {
	r, g := c.Rect, c.Glass
	name := c.Card.String()
	rect := func(x, y, w, h, rx float64) string {
		return fmt.Sprintf(`x="%s" y="%s" width="%s" height="%s" rx="%s"`, num(x), num(y), num(w), num(h), num(rx))
	}

	fmt.Fprintf(buf, `<g data-card="%s">`+"\n", name)
	fmt.Fprintf(buf, `<g mask="url(#outside-%s)"><rect class="shadow" %s fill="%s" fill-opacity="%s" filter="url(#shadow-%s)"/></g>`+"\n",
		name, rect(r.X, r.Y+g.Shadow.DY, r.W, r.H, c.Radius), g.Shadow.Color.HexString(), num(g.Shadow.Color.A), name)
	fmt.Fprintf(buf, `<rect class="panel" data-card="%s" %s fill="%s" fill-opacity="%s"/>`+"\n",
		name, rect(r.X, r.Y, r.W, r.H, c.Radius), g.Fill.HexString(), num(g.Fill.A))
	if hl := g.Highlight; hl != nil {
		fmt.Fprintf(buf, `<rect class="highlight" %s fill="none" stroke="%s" stroke-opacity="%s" stroke-width="%s"/>`+"\n",
			rect(r.X+hl.Inset, r.Y+hl.Inset, r.W-2*hl.Inset, r.H-2*hl.Inset, hl.Radius), hl.Color.HexString(), num(hl.Color.A), num(hl.Width))
	}
	fmt.Fprintf(buf, `<rect class="border" %s fill="none" stroke="%s" stroke-opacity="%s" stroke-width="%s"/>`+"\n",
		rect(r.X, r.Y, r.W, r.H, c.Radius), g.Border.HexString(), num(g.Border.A), num(g.BorderWidth))

	svgText(buf, c.Label, name)

	uri, err := qrURI(c.QR)
	if err != nil {
		return err
	}
	fmt.Fprintf(buf, `<image class="qr" data-card="%s"%s x="%s" y="%s" width="%s" height="%s" preserveAspectRatio="none" image-rendering="optimizeSpeed" xlink:href="%s"/>`+"\n",
		name, qrGridAttrs(c.QR), num(c.QRRect.X), num(c.QRRect.Y), num(c.QRRect.W), num(c.QRRect.H), uri)

	for _, t := range c.Captions {
		svgText(buf, t, name)
	}
	buf.WriteString("</g>\n")
	return nil
}

// MeasureSVG parses a document produced by RenderSVG and returns the
// geometry it lays out.
func MeasureSVG(doc []byte) (layout.Geometry, error) {
	var (
		g     layout.Geometry
		cards = map[string]int{}
	)
	card := func(name string) *layout.Card {
		if i, ok := cards[name]; ok {
			return &g.Cards[i]
		}
		return nil
	}

	dec := xml.NewDecoder(bytes.NewReader(doc))
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return layout.Geometry{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse svg")
		}
		el, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		attrs := map[string]string{}
		for _, a := range el.Attr {
			attrs[a.Name.Local] = a.Value
		}
		var perr error
		f := func(name string) float64 {
			v, err := strconv.ParseFloat(attrs[name], 64)
			if err != nil && perr == nil {
				perr = errors.Wrap(errors.ErrCodeInvalidFormat, err, "<%s> %s", el.Name.Local, name)
			}
			return v
		}

		switch {
		case el.Name.Local == "svg":
			g.Width, g.Height = f("width"), f("height")
		case el.Name.Local == "rect" && attrs["class"] == "panel":
			cards[attrs["data-card"]] = len(g.Cards)
			g.Cards = append(g.Cards, layout.Card{
				Rect:   layout.Rect{X: f("x"), Y: f("y"), W: f("width"), H: f("height")},
				Radius: f("rx"),
			})
		case el.Name.Local == "image" && attrs["class"] == "qr":
			if c := card(attrs["data-card"]); c != nil {
				c.QR = layout.Rect{X: f("x"), Y: f("y"), W: f("width"), H: f("height")}
				grid, err := parseGrid(attrs, c.QR)
				if err != nil {
					return layout.Geometry{}, err
				}
				c.Grid = grid
			}
		case el.Name.Local == "text":
			at := layout.Point{X: f("x"), Y: f("y")}
			switch attrs["data-role"] {
			case styles.RoleTitle.String():
				g.Title = at
			case styles.RoleGuestName.String():
				g.Name = at
			case styles.RoleFooterURL.String():
				g.FooterURL = at
			case styles.RoleFooterLogo.String():
				g.Logo = at
			case styles.RoleCardLabel.String():
				if c := card(attrs["data-card"]); c != nil {
					c.Label = at
				}
			case styles.RoleCaptionPrimary.String(), styles.RoleCaptionSecondary.String():
				if c := card(attrs["data-card"]); c != nil {
					c.Captions = append(c.Captions, at)
				}
			}
		}
		if perr != nil {
			return layout.Geometry{}, perr
		}
	}
	return g, nil
}
