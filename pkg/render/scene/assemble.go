package scene

import (
	"fmt"
	"image"

	"github.com/matzehuels/welcomescreen/pkg/guest"
	"github.com/matzehuels/welcomescreen/pkg/payload"
	"github.com/matzehuels/welcomescreen/pkg/qr"
	"github.com/matzehuels/welcomescreen/pkg/render/layout"
	"github.com/matzehuels/welcomescreen/pkg/render/styles"
)

// Copy holds the fixed strings printed on every screen.
type Copy struct {
	Title        string `toml:"title"`
	WiFiLabel    string `toml:"wifi_label"`
	ContactLabel string `toml:"contact_label"`
	ScanPrompt   string `toml:"scan_prompt"`
	FooterBase   string `toml:"footer_base"`
	Logo         string `toml:"logo"`
}

// DefaultCopy returns the stock Spanish copy.
func DefaultCopy() Copy {
	return Copy{
		Title:        "BIENVENIDOS",
		WiFiLabel:    "Wi-Fi",
		ContactLabel: "Ordena por WhatsApp",
		ScanPrompt:   "Escanea para conectarte",
		FooterBase:   "regatas.tv/r/",
		Logo:         "regatas",
	}
}

// Background is a decoded background image with its source bytes.
type Background struct {
	Ref   string
	Image image.Image
	Data  []byte
	MIME  string
}

// Input is everything Assemble needs.
type Input struct {
	Profile    guest.Profile
	Copy       Copy
	Preset     styles.Preset
	Background Background
	WiFiQR     *qr.Image
	ContactQR  *qr.Image
}

// Assemble builds and validates the scene for in on the standard canvas.
func Assemble(in Input) (*Scene, error) {
	g := layout.Default()
	glass := styles.Glass(in.Preset)

	s := &Scene{
		Width:  layout.Width,
		Height: layout.Height,
		Preset: in.Preset,
	}

	s.Layers = append(s.Layers, BackgroundLayer{
		Ref:   in.Background.Ref,
		Image: in.Background.Image,
		Data:  in.Background.Data,
		MIME:  in.Background.MIME,
		Blur:  BackgroundBlur,
	})
	for _, grad := range styles.Gradients(in.Preset) {
		s.Layers = append(s.Layers, GradientLayer{Gradient: grad})
	}

	s.Layers = append(s.Layers,
		text(styles.RoleTitle, in.Copy.Title, g.Title),
		text(styles.RoleGuestName, guest.DisplayName(in.Profile), g.Name),
	)

	wifi := g.Cards[layout.WiFiCard]
	s.Layers = append(s.Layers, CardLayer{
		Card:   WiFiCard,
		Rect:   wifi.Rect,
		Radius: wifi.Radius,
		Glass:  glass,
		Label:  text(styles.RoleCardLabel, in.Copy.WiFiLabel, wifi.Label),
		QR:     in.WiFiQR,
		QRRect: wifi.QR,
		Captions: []TextLayer{
			text(styles.RoleCaptionPrimary, in.Copy.ScanPrompt, wifi.Captions[0]),
			text(styles.RoleCaptionSecondary, payload.SSIDCaption(in.Profile.SSID), wifi.Captions[1]),
		},
	})

	contact := g.Cards[layout.ContactCard]
	s.Layers = append(s.Layers, CardLayer{
		Card:   ContactCard,
		Rect:   contact.Rect,
		Radius: contact.Radius,
		Glass:  glass,
		Label:  text(styles.RoleCardLabel, in.Copy.ContactLabel, contact.Label),
		QR:     in.ContactQR,
		QRRect: contact.QR,
		Captions: []TextLayer{
			text(styles.RoleCaptionSecondary, in.Profile.VenueName, contact.Captions[0]),
		},
	})

	s.Layers = append(s.Layers, FooterLayer{
		URL:  text(styles.RoleFooterURL, in.Copy.FooterBase+in.Profile.RoomNumber, g.FooterURL),
		Logo: text(styles.RoleFooterLogo, in.Copy.Logo, g.Logo),
	})

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("assemble scene: %w", err)
	}
	return s, nil
}

func text(role styles.Role, s string, at layout.Point) TextLayer {
	return TextLayer{Role: role, Text: s, X: at.X, Y: at.Y, Style: styles.Typography(role)}
}
