package scene

import (
	"image"
	"testing"

	"github.com/matzehuels/welcomescreen/pkg/guest"
	"github.com/matzehuels/welcomescreen/pkg/qr"
	"github.com/matzehuels/welcomescreen/pkg/render/layout"
	"github.com/matzehuels/welcomescreen/pkg/render/styles"
)

func testInput(t *testing.T, preset styles.Preset) Input {
	t.Helper()
	wifi, err := qr.Encode("WIFI:T:WPA;S:Regatas_San Jose;P:RegatasWelcome2024;H:false;;", 480)
	if err != nil {
		t.Fatal(err)
	}
	contact, err := qr.Encode("https://wa.me/51990411197?text=Pedido%20Bungalow%20208", 480)
	if err != nil {
		t.Fatal(err)
	}
	return Input{
		Profile: guest.Profile{
			PreferredName: "Familia Sánchez Gutiérrez",
			GuestType:     guest.Family,
			RoomNumber:    "208",
			VenueName:     "Zsa Zsa / Playa 3",
			VenueWhatsApp: "https://wa.me/51990411197?text=Pedido%20Bungalow%20{ROOM}",
			SSID:          "Regatas_San Jose",
		},
		Copy:       DefaultCopy(),
		Preset:     preset,
		Background: Background{Image: image.NewRGBA(image.Rect(0, 0, 16, 9))},
		WiFiQR:     wifi,
		ContactQR:  contact,
	}
}

func TestAssemble(t *testing.T) {
	tests := []struct {
		preset styles.Preset
		layers int
	}{
		{styles.Basic, 8},
		{styles.Enhanced, 9},
	}

	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			s, err := Assemble(testInput(t, tt.preset))
			if err != nil {
				t.Fatalf("Assemble() error: %v", err)
			}
			if len(s.Layers) != tt.layers {
				t.Errorf("layers = %d, want %d", len(s.Layers), tt.layers)
			}
			if s.Width != 3840 || s.Height != 2160 {
				t.Errorf("size = %dx%d", s.Width, s.Height)
			}
			if d := layout.Diff(layout.Default(), s.Geometry(), 0); len(d) != 0 {
				t.Errorf("scene geometry differs from layout: %v", d)
			}
			if s.Background().Blur != 2.5 {
				t.Errorf("background blur = %v", s.Background().Blur)
			}
			for _, c := range s.Cards() {
				if c.Glass != styles.Glass(tt.preset) {
					t.Errorf("%s card glass does not match preset", c.Card)
				}
			}
		})
	}
}

func TestAssembleText(t *testing.T) {
	s, err := Assemble(testInput(t, styles.Basic))
	if err != nil {
		t.Fatal(err)
	}

	title, _ := s.Text(styles.RoleTitle)
	name, _ := s.Text(styles.RoleGuestName)
	if title.Text != "BIENVENIDOS" {
		t.Errorf("title = %q", title.Text)
	}
	if name.Text != "Familia S." {
		t.Errorf("name = %q", name.Text)
	}

	cards := s.Cards()
	if cards[0].Label.Text != "Wi-Fi" || cards[1].Label.Text != "Ordena por WhatsApp" {
		t.Errorf("labels = %q, %q", cards[0].Label.Text, cards[1].Label.Text)
	}
	if got := cards[0].Captions[0].Text; got != "Escanea para conectarte" {
		t.Errorf("wifi caption 1 = %q", got)
	}
	if got := cards[0].Captions[1].Text; got != "Regatas-San Jose" {
		t.Errorf("wifi caption 2 = %q", got)
	}
	if got := cards[1].Captions[0]; got.Text != "Zsa Zsa / Playa 3" || got.Role != styles.RoleCaptionSecondary {
		t.Errorf("contact caption = %+v", got)
	}

	footer := s.Layers[len(s.Layers)-1].(FooterLayer)
	if footer.URL.Text != "regatas.tv/r/208" || footer.Logo.Text != "regatas" {
		t.Errorf("footer = %q, %q", footer.URL.Text, footer.Logo.Text)
	}
	if footer.Logo.Style.Align != styles.AlignRight {
		t.Error("logo should be right aligned")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Scene)
	}{
		{"swapped cards", func(s *Scene) {
			n := len(s.Layers)
			s.Layers[n-3], s.Layers[n-2] = s.Layers[n-2], s.Layers[n-3]
		}},
		{"missing footer", func(s *Scene) { s.Layers = s.Layers[:len(s.Layers)-1] }},
		{"right vignette on basic", func(s *Scene) {
			v := GradientLayer{Gradient: styles.RightVignette()}
			s.Layers = append(s.Layers[:3], append([]Layer{v}, s.Layers[3:]...)...)
		}},
		{"duplicate background", func(s *Scene) { s.Layers[1] = s.Layers[0] }},
		{"no background image", func(s *Scene) { s.Layers[0] = BackgroundLayer{} }},
		{"card without qr", func(s *Scene) {
			c := s.Layers[5].(CardLayer)
			c.QR = nil
			s.Layers[5] = c
		}},
		{"card without captions", func(s *Scene) {
			c := s.Layers[6].(CardLayer)
			c.Captions = nil
			s.Layers[6] = c
		}},
		{"zero size", func(s *Scene) { s.Width = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Assemble(testInput(t, styles.Basic))
			if err != nil {
				t.Fatal(err)
			}
			tt.mutate(s)
			if err := s.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

func TestAssembleMissingQR(t *testing.T) {
	in := testInput(t, styles.Enhanced)
	in.ContactQR = nil
	if _, err := Assemble(in); err == nil {
		t.Error("Assemble() without contact qr should fail")
	}
}
