// Package scene describes a welcome screen as an ordered list of layers.
//
// A [Scene] is the single description every backend renders. Layers are
// listed back to front; backends paint them in order and never reorder or
// skip them. [Assemble] builds a scene from a guest profile, copy strings,
// a decoded background and two encoded QR codes, and [Scene.Validate]
// checks the structural rules all backends rely on.
package scene

import (
	"fmt"
	"image"

	"github.com/matzehuels/welcomescreen/pkg/qr"
	"github.com/matzehuels/welcomescreen/pkg/render/layout"
	"github.com/matzehuels/welcomescreen/pkg/render/styles"
)

// BackgroundBlur is the Gaussian sigma applied to the cover-fitted
// background photo.
const BackgroundBlur = 2.5

// Layer is one paint step. The concrete types are BackgroundLayer,
// GradientLayer, TextLayer, CardLayer and FooterLayer.
type Layer interface {
	Kind() string
	layer()
}

// BackgroundLayer is the full-canvas photo, cover-fitted and blurred.
type BackgroundLayer struct {
	Ref   string
	Image image.Image
	// Data and MIME hold the original encoded bytes when the image came
	// from a file, URL or data URI. Both are empty for generated images.
	Data []byte
	MIME string
	Blur float64
}

// GradientLayer is a full-canvas overlay pass.
type GradientLayer struct {
	Gradient styles.Gradient
}

// TextLayer is a single line of text anchored at its baseline.
type TextLayer struct {
	Role  styles.Role
	Text  string
	X, Y  float64
	Style styles.TextStyle
}

// CardKind identifies which information card a CardLayer is.
type CardKind int

const (
	WiFiCard CardKind = iota
	ContactCard
)

func (k CardKind) String() string {
	if k == ContactCard {
		return "contact"
	}
	return "wifi"
}

// CardLayer is a glass card with a label, a QR code and one or two captions.
type CardLayer struct {
	Card     CardKind
	Rect     layout.Rect
	Radius   float64
	Glass    styles.GlassStyle
	Label    TextLayer
	QR       *qr.Image
	QRRect   layout.Rect
	Captions []TextLayer
}

// FooterLayer is the room URL and the logo word.
type FooterLayer struct {
	URL  TextLayer
	Logo TextLayer
}

func (BackgroundLayer) Kind() string { return "background" }
func (g GradientLayer) Kind() string { return "gradient:" + g.Gradient.Pass.String() }
func (t TextLayer) Kind() string     { return "text:" + t.Role.String() }
func (c CardLayer) Kind() string     { return "card:" + c.Card.String() }
func (FooterLayer) Kind() string     { return "footer" }

func (BackgroundLayer) layer() {}
func (GradientLayer) layer()   {}
func (TextLayer) layer()       {}
func (CardLayer) layer()       {}
func (FooterLayer) layer()     {}

// Scene is a complete welcome screen ready for a backend.
type Scene struct {
	Width  int
	Height int
	Preset styles.Preset
	Layers []Layer
}

// Background returns the background layer.
func (s *Scene) Background() BackgroundLayer {
	for _, l := range s.Layers {
		if b, ok := l.(BackgroundLayer); ok {
			return b
		}
	}
	return BackgroundLayer{}
}

// Cards returns the card layers in paint order.
func (s *Scene) Cards() []CardLayer {
	var out []CardLayer
	for _, l := range s.Layers {
		if c, ok := l.(CardLayer); ok {
			out = append(out, c)
		}
	}
	return out
}

// Text returns the text layer for role, if present.
func (s *Scene) Text(role styles.Role) (TextLayer, bool) {
	for _, l := range s.Layers {
		if t, ok := l.(TextLayer); ok && t.Role == role {
			return t, true
		}
	}
	return TextLayer{}, false
}

// Geometry returns the positions the scene asks backends to draw at.
func (s *Scene) Geometry() layout.Geometry {
	g := layout.Geometry{Width: float64(s.Width), Height: float64(s.Height)}
	for _, l := range s.Layers {
		switch l := l.(type) {
		case TextLayer:
			switch l.Role {
			case styles.RoleTitle:
				g.Title = layout.Point{X: l.X, Y: l.Y}
			case styles.RoleGuestName:
				g.Name = layout.Point{X: l.X, Y: l.Y}
			}
		case CardLayer:
			c := layout.Card{
				Rect:   l.Rect,
				Radius: l.Radius,
				Label:  layout.Point{X: l.Label.X, Y: l.Label.Y},
				QR:     l.QRRect,
			}
			for _, t := range l.Captions {
				c.Captions = append(c.Captions, layout.Point{X: t.X, Y: t.Y})
			}
			g.Cards = append(g.Cards, c)
		case FooterLayer:
			g.FooterURL = layout.Point{X: l.URL.X, Y: l.URL.Y}
			g.Logo = layout.Point{X: l.Logo.X, Y: l.Logo.Y}
		}
	}
	return g
}

// Validate checks the layer structure: one background, the vertical and
// horizontal gradient passes, a right vignette only for the enhanced
// preset, the title and guest name, the Wi-Fi and contact cards, and the
// footer, in that order.
func (s *Scene) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("scene size %dx%d is not positive", s.Width, s.Height)
	}

	want := []string{
		"background",
		"gradient:" + styles.PassVerticalVignette.String(),
		"gradient:" + styles.PassHorizontalOverlay.String(),
	}
	if styles.Glass(s.Preset).RightVignette {
		want = append(want, "gradient:"+styles.PassRightVignette.String())
	}
	want = append(want,
		"text:"+styles.RoleTitle.String(),
		"text:"+styles.RoleGuestName.String(),
		"card:"+WiFiCard.String(),
		"card:"+ContactCard.String(),
		"footer",
	)

	if len(s.Layers) != len(want) {
		return fmt.Errorf("scene has %d layers, want %d (%s preset)", len(s.Layers), len(want), s.Preset)
	}
	for i, l := range s.Layers {
		if l.Kind() != want[i] {
			return fmt.Errorf("layer %d is %s, want %s", i, l.Kind(), want[i])
		}
	}

	if s.Background().Image == nil {
		return fmt.Errorf("background has no image")
	}
	for _, c := range s.Cards() {
		if c.QR == nil || c.QR.Bitmap == nil {
			return fmt.Errorf("%s card has no qr code", c.Card)
		}
		if n := len(c.Captions); n < 1 || n > 2 {
			return fmt.Errorf("%s card has %d captions, want 1 or 2", c.Card, n)
		}
	}
	return nil
}
