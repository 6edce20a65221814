package sink

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/welcomescreen/pkg/qr"
	"github.com/matzehuels/welcomescreen/pkg/render/layout"
	"github.com/matzehuels/welcomescreen/pkg/render/scene"
	"github.com/matzehuels/welcomescreen/pkg/render/styles"
)

// surface receives paint calls in scene order. A card arrives as a panel
// call followed by its label, QR code and captions.
type surface interface {
	background(b scene.BackgroundLayer) error
	gradient(g styles.Gradient) error
	panel(c scene.CardLayer) error
	text(t scene.TextLayer) error
	qr(q *qr.Image, r layout.Rect) error
}

func walk(ctx context.Context, s *scene.Scene, surf surface, logger *log.Logger) error {
	for i, l := range s.Layers {
		if err := ctx.Err(); err != nil {
			return err
		}
		logger.Debug("paint layer", "index", i, "kind", l.Kind())

		var err error
		switch l := l.(type) {
		case scene.BackgroundLayer:
			err = surf.background(l)
		case scene.GradientLayer:
			err = surf.gradient(l.Gradient)
		case scene.TextLayer:
			err = surf.text(l)
		case scene.CardLayer:
			err = paintCard(surf, l)
		case scene.FooterLayer:
			if err = surf.text(l.URL); err == nil {
				err = surf.text(l.Logo)
			}
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func paintCard(surf surface, c scene.CardLayer) error {
	if err := surf.panel(c); err != nil {
		return err
	}
	if err := surf.text(c.Label); err != nil {
		return err
	}
	if err := surf.qr(c.QR, c.QRRect); err != nil {
		return err
	}
	for _, t := range c.Captions {
		if err := surf.text(t); err != nil {
			return err
		}
	}
	return nil
}

// recorder notes where panels and text would be drawn. Embedders supply
// the qr method.
type recorder struct {
	g layout.Geometry
}

func newRecorder(s *scene.Scene) *recorder {
	return &recorder{g: layout.Geometry{Width: float64(s.Width), Height: float64(s.Height)}}
}

func (r *recorder) background(scene.BackgroundLayer) error { return nil }
func (r *recorder) gradient(styles.Gradient) error         { return nil }

func (r *recorder) panel(c scene.CardLayer) error {
	r.g.Cards = append(r.g.Cards, layout.Card{Rect: c.Rect, Radius: c.Radius})
	return nil
}

func (r *recorder) text(t scene.TextLayer) error {
	at := layout.Point{X: t.X, Y: t.Y}
	switch t.Role {
	case styles.RoleTitle:
		r.g.Title = at
	case styles.RoleGuestName:
		r.g.Name = at
	case styles.RoleFooterURL:
		r.g.FooterURL = at
	case styles.RoleFooterLogo:
		r.g.Logo = at
	case styles.RoleCardLabel:
		if c := r.current(); c != nil {
			c.Label = at
		}
	case styles.RoleCaptionPrimary, styles.RoleCaptionSecondary:
		if c := r.current(); c != nil {
			c.Captions = append(c.Captions, at)
		}
	}
	return nil
}

func (r *recorder) current() *layout.Card {
	if len(r.g.Cards) == 0 {
		return nil
	}
	return &r.g.Cards[len(r.g.Cards)-1]
}
