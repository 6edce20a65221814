package sink

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"math"
	"strconv"
	"strings"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
	"golang.org/x/net/html"

	"github.com/matzehuels/welcomescreen/pkg/errors"
	"github.com/matzehuels/welcomescreen/pkg/fonts"
	"github.com/matzehuels/welcomescreen/pkg/render/layout"
	"github.com/matzehuels/welcomescreen/pkg/render/scene"
	"github.com/matzehuels/welcomescreen/pkg/render/styles"
)

// HTMLQRPixelSize is the QR bitmap size for the html backend.
const HTMLQRPixelSize = 960

// Text boxes span this far either side of a centered anchor.
const htmlTextHalfWidth = 1920

// htmlReadyScript resolves once fonts and every <img>, background
// included, have decoded.
const htmlReadyScript = `Promise.all([
  document.fonts.ready,
  ...Array.from(document.images).map(img => img.decode()),
]).then(() => true)`

type htmlBackend struct {
	opts options
}

// NewHTML returns the headless Chrome backend.
func NewHTML(opts ...Option) Backend {
	return &htmlBackend{opts: newOptions(HTMLQRPixelSize, opts)}
}

func (h *htmlBackend) Name() string     { return HTML }
func (h *htmlBackend) QRPixelSize() int { return h.opts.qrSize }

func (h *htmlBackend) Render(ctx context.Context, s *scene.Scene) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.FromContext(err, "html backend")
	}
	if err := s.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "invalid scene")
	}
	doc, err := RenderHTML(s)
	if err != nil {
		return nil, err
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.WindowSize(s.Width, s.Height),
		chromedp.Flag("hide-scrollbars", true),
	)
	if h.opts.chromePath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(h.opts.chromePath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer cancelAlloc()
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx, chromedp.WithLogf(h.opts.logger.Debugf))
	defer cancelBrowser()

	var (
		ready bool
		shot  []byte
	)
	h.opts.logger.Debug("starting headless chrome", "bytes", len(doc))
	err = chromedp.Run(browserCtx,
		chromedp.EmulateViewport(int64(s.Width), int64(s.Height)),
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, string(doc)).Do(ctx)
		}),
		chromedp.Evaluate(htmlReadyScript, &ready, func(p *runtime.EvaluateParams) *runtime.EvaluateParams {
			return p.WithAwaitPromise(true)
		}),
		chromedp.CaptureScreenshot(&shot),
	)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, errors.FromContext(ctxErr, "html backend")
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "html backend")
	}

	img, err := png.Decode(bytes.NewReader(shot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "decode chrome screenshot")
	}
	return img, nil
}

func (h *htmlBackend) Measure(s *scene.Scene) (layout.Geometry, error) {
	doc, err := RenderHTML(s)
	if err != nil {
		return layout.Geometry{}, err
	}
	return MeasureHTML(doc)
}

// RenderHTML returns the standalone HTML document for s. Every asset is
// inlined, so the document renders without network access.
func RenderHTML(s *scene.Scene) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\">\n<style>\n")
	buf.WriteString(fonts.FaceCSS())
	fmt.Fprintf(&buf, `html,body{margin:0;padding:0;width:%dpx;height:%dpx;overflow:hidden;background:%s}
#screen{position:relative;overflow:hidden}
#screen>*{position:absolute;box-sizing:border-box}
.layer{left:0;top:0;width:100%%;height:100%%}
.text{margin:0;padding:0;white-space:nowrap;font-family:%s}
.highlight{position:absolute;box-sizing:border-box}
.qr{image-rendering:pixelated}
`, s.Width, s.Height, styles.Navy.HexString(), fonts.FallbackFontFamily)
	buf.WriteString("</style></head>\n<body>\n")
	fmt.Fprintf(&buf, "<main id=\"screen\" style=\"width:%dpx;height:%dpx\">\n", s.Width, s.Height)

	for _, l := range s.Layers {
		var err error
		switch l := l.(type) {
		case scene.BackgroundLayer:
			err = htmlBackground(&buf, l, s.Width, s.Height)
		case scene.GradientLayer:
			htmlGradient(&buf, l.Gradient)
		case scene.TextLayer:
			err = htmlText(&buf, l, "")
		case scene.CardLayer:
			err = htmlCard(&buf, l)
		case scene.FooterLayer:
			if err = htmlText(&buf, l.URL, ""); err == nil {
				err = htmlText(&buf, l.Logo, "")
			}
		}
		if err != nil {
			return nil, err
		}
	}

	buf.WriteString("</main>\n</body></html>\n")
	return buf.Bytes(), nil
}

// htmlBackground emits the background as an <img>, so the ready script
// waits for it to decode. The box bleeds three standard deviations past
// each canvas edge: the blur then never mixes in the page color and the
// edges clamp the way the other backends do.
func htmlBackground(buf *bytes.Buffer, b scene.BackgroundLayer, w, h int) error {
	uri, err := backgroundURI(b)
	if err != nil {
		return err
	}
	bleed := math.Ceil(3 * b.Blur)
	fmt.Fprintf(buf, `<img id="background" alt="" src="%s" style="left:%spx;top:%spx;width:%spx;height:%spx;object-fit:cover;object-position:center;filter:blur(%spx)">`+"\n",
		uri, num(-bleed), num(-bleed), num(float64(w)+2*bleed), num(float64(h)+2*bleed), num(b.Blur))
	return nil
}

func htmlGradient(buf *bytes.Buffer, g styles.Gradient) {
	dir := "to bottom"
	if g.Axis == styles.Horizontal {
		dir = "to right"
	}
	stops := make([]string, len(g.Stops))
	for i, st := range g.Stops {
		stops[i] = fmt.Sprintf("%s %s%%", st.Color.CSS(), num(st.Offset*100))
	}
	fmt.Fprintf(buf, `<div class="layer gradient" data-pass="%s" style="background:linear-gradient(%s, %s)"></div>`+"\n",
		g.Pass, dir, strings.Join(stops, ", "))
}

// htmlText places a line box whose baseline lands on the anchor: the box
// top sits one ascent above it and the line height equals ascent plus
// descent, so there is no half-leading.
func htmlText(buf *bytes.Buffer, t scene.TextLayer, card string) error {
	st := t.Style
	m, err := fonts.MetricsFor(st.Weight, st.Size)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "font metrics for %s", t.Role)
	}

	left := t.X - htmlTextHalfWidth
	if st.Align == styles.AlignRight {
		left = t.X - 2*htmlTextHalfWidth
	}

	var attrs, extra string
	if card != "" {
		attrs = fmt.Sprintf(` data-card="%s"`, card)
	}
	if sh := st.Shadow; sh != nil {
		extra = fmt.Sprintf(";text-shadow:%spx %spx %spx %s", num(sh.DX), num(sh.DY), num(sh.Blur), sh.Color.CSS())
	}

	fmt.Fprintf(buf, `<p class="text" data-role="%s"%s style="left:%spx;top:%spx;width:%dpx;line-height:%spx;font-weight:%d;font-size:%spx;color:%s;text-align:%s%s">%s</p>`+"\n",
		t.Role, attrs,
		num(left), num(t.Y-m.Ascent), 2*htmlTextHalfWidth, num(m.LineHeight()),
		int(st.Weight), num(st.Size), st.Color.CSS(), st.Align.CSS(), extra,
		escape(t.Text))
	return nil
}

func htmlCard(buf *bytes.Buffer, c scene.CardLayer) error {
	r, g := c.Rect, c.Glass
	name := c.Card.String()

	fmt.Fprintf(buf, `<div class="card" data-card="%s" style="left:%spx;top:%spx;width:%spx;height:%spx;border-radius:%spx;background:%s;border:%spx solid %s;box-shadow:0 %spx %spx %s">`,
		name, num(r.X), num(r.Y), num(r.W), num(r.H), num(c.Radius),
		g.Fill.CSS(), num(g.BorderWidth), g.Border.CSS(),
		num(g.Shadow.DY), num(g.Shadow.Blur), g.Shadow.Color.CSS())
	if hl := g.Highlight; hl != nil {
		// Offsets are relative to the padding box, inside the border.
		in := hl.Inset - g.BorderWidth
		fmt.Fprintf(buf, `<div class="highlight" style="left:%spx;top:%spx;width:%spx;height:%spx;border:%spx solid %s;border-radius:%spx"></div>`,
			num(in), num(in), num(r.W-2*hl.Inset), num(r.H-2*hl.Inset), num(hl.Width), hl.Color.CSS(), num(hl.Radius))
	}
	buf.WriteString("</div>\n")

	if err := htmlText(buf, c.Label, name); err != nil {
		return err
	}

	uri, err := qrURI(c.QR)
	if err != nil {
		return err
	}
	fmt.Fprintf(buf, `<img class="qr" data-card="%s"%s alt="" src="%s" style="left:%spx;top:%spx;width:%spx;height:%spx">`+"\n",
		name, qrGridAttrs(c.QR), uri, num(c.QRRect.X), num(c.QRRect.Y), num(c.QRRect.W), num(c.QRRect.H))

	for _, t := range c.Captions {
		if err := htmlText(buf, t, name); err != nil {
			return err
		}
	}
	return nil
}

// MeasureHTML parses a document produced by RenderHTML and returns the
// geometry it lays out. Text baselines are derived from each box's top,
// line height and font metrics the way a browser places them.
func MeasureHTML(doc []byte) (layout.Geometry, error) {
	root, err := html.Parse(bytes.NewReader(doc))
	if err != nil {
		return layout.Geometry{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse html")
	}

	m := &htmlMeasurer{cards: map[string]int{}}
	m.visit(root)
	if m.err != nil {
		return layout.Geometry{}, m.err
	}
	return m.g, nil
}

type htmlMeasurer struct {
	g     layout.Geometry
	cards map[string]int
	err   error
}

func (m *htmlMeasurer) visit(n *html.Node) {
	if m.err != nil {
		return
	}
	if n.Type == html.ElementNode {
		m.element(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		m.visit(c)
	}
}

func (m *htmlMeasurer) element(n *html.Node) {
	attrs := map[string]string{}
	for _, a := range n.Attr {
		attrs[a.Key] = a.Val
	}
	style := parseStyle(attrs["style"])
	length := func(prop string) float64 {
		v, err := parseLength(style[prop])
		if err != nil && m.err == nil {
			m.err = errors.Wrap(errors.ErrCodeInvalidFormat, err, "<%s> %s", n.Data, prop)
		}
		return v
	}

	switch {
	case attrs["id"] == "screen":
		m.g.Width, m.g.Height = length("width"), length("height")

	case attrs["class"] == "card":
		m.cards[attrs["data-card"]] = len(m.g.Cards)
		m.g.Cards = append(m.g.Cards, layout.Card{
			Rect:   layout.Rect{X: length("left"), Y: length("top"), W: length("width"), H: length("height")},
			Radius: length("border-radius"),
		})

	case attrs["class"] == "qr":
		if c := m.card(attrs["data-card"]); c != nil {
			c.QR = layout.Rect{X: length("left"), Y: length("top"), W: length("width"), H: length("height")}
			grid, err := parseGrid(attrs, c.QR)
			if err != nil {
				m.err = err
				return
			}
			c.Grid = grid
		}

	case attrs["data-role"] != "":
		at, err := m.baseline(style, length)
		if err != nil {
			m.err = err
			return
		}
		m.text(attrs["data-role"], attrs["data-card"], at)
	}
}

func (m *htmlMeasurer) baseline(style map[string]string, length func(string) float64) (layout.Point, error) {
	left, width := length("left"), length("width")
	top, lineHeight, size := length("top"), length("line-height"), length("font-size")

	weight, err := strconv.Atoi(style["font-weight"])
	if err != nil {
		return layout.Point{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "font-weight")
	}
	metrics, err := fonts.MetricsFor(fonts.Weight(weight), size)
	if err != nil {
		return layout.Point{}, err
	}

	x := left + width/2
	if style["text-align"] == "right" {
		x = left + width
	}
	halfLeading := (lineHeight - metrics.LineHeight()) / 2
	return layout.Point{X: x, Y: top + halfLeading + metrics.Ascent}, nil
}

func (m *htmlMeasurer) text(role, card string, at layout.Point) {
	switch role {
	case styles.RoleTitle.String():
		m.g.Title = at
	case styles.RoleGuestName.String():
		m.g.Name = at
	case styles.RoleFooterURL.String():
		m.g.FooterURL = at
	case styles.RoleFooterLogo.String():
		m.g.Logo = at
	case styles.RoleCardLabel.String():
		if c := m.card(card); c != nil {
			c.Label = at
		}
	case styles.RoleCaptionPrimary.String(), styles.RoleCaptionSecondary.String():
		if c := m.card(card); c != nil {
			c.Captions = append(c.Captions, at)
		}
	}
}

func (m *htmlMeasurer) card(name string) *layout.Card {
	i, ok := m.cards[name]
	if !ok {
		return nil
	}
	return &m.g.Cards[i]
}
