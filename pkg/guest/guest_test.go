package guest

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/matzehuels/welcomescreen/pkg/errors"
)

func validProfile() Profile {
	return Profile{
		PreferredName: "Familia Sánchez Gutiérrez",
		GuestType:     Family,
		RoomNumber:    "208",
		VenueName:     "Zsa Zsa / Playa 3",
		VenueWhatsApp: "https://wa.me/51990411197?text=Pedido%20Bungalow%20{ROOM}",
		SSID:          "Regatas_San Jose",
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		typ   Type
		want  string
	}{
		{"short unchanged", "Ana", Single, "Ana"},
		{"exactly 24 unchanged", "Abcdefghijklmnopqrstuvwx", Couple, "Abcdefghijklmnopqrstuvwx"},
		{"24 runes with accents unchanged", "Zoë Ñúñez de la Ferrería", Couple, "Zoë Ñúñez de la Ferrería"},
		{"family scenario", "Familia Sánchez Gutiérrez", Family, "Familia S."},
		{"friends two words", "Compañeros de la Universidad", Friends, "Compañeros d."},
		{"family single long word", "Supercalifragilisticexpialidocious", Family, "Supercalifragilisticexpialidocious"},
		{"family double space", "Familia  Sánchez Gutiérrez", Family, "Familia ."},
		{"family accented initial", "Los Álvarez y sus amigos de siempre", Family, "Los Á."},
		{"couple cut", "Alexandria Montgomery-Whitfield", Couple, "Alexandria Montgomery-Wh..."},
		{"single cut keeps runes", "Señora Ángela Gutiérrez-Peñaloza", Single, "Señora Ángela Gutiérrez-..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DisplayName(Profile{PreferredName: tt.input, GuestType: tt.typ})
			if got != tt.want {
				t.Errorf("DisplayName(%q, %s) = %q, want %q", tt.input, tt.typ, got, tt.want)
			}
		})
	}
}

func TestDisplayNameProperties(t *testing.T) {
	names := []string{
		"A",
		"Mar",
		"Jean-Luc Picard",
		"Familia Sánchez Gutiérrez",
		"Hermanos Rodríguez Castillo de Lima",
		strings.Repeat("x", 24),
		strings.Repeat("y", 25),
		strings.Repeat("ñ", 40),
	}

	for _, name := range names {
		for _, typ := range Types {
			got := Truncate(name, typ)
			n := utf8.RuneCountInString(name)

			switch {
			case n <= MaxNameLength:
				if got != name {
					t.Errorf("Truncate(%q, %s) = %q, want unchanged", name, typ, got)
				}
			case !typ.IsGroup():
				if utf8.RuneCountInString(got) != MaxNameLength+3 {
					t.Errorf("Truncate(%q, %s) = %q, want %d runes", name, typ, got, MaxNameLength+3)
				}
				if !strings.HasSuffix(got, "...") {
					t.Errorf("Truncate(%q, %s) = %q, want ... suffix", name, typ, got)
				}
			default:
				words := strings.Split(name, " ")
				if len(words) >= 2 {
					want := words[0] + " " + string([]rune(words[1])[:1]) + "."
					if got != want {
						t.Errorf("Truncate(%q, %s) = %q, want %q", name, typ, got, want)
					}
				}
			}
		}
	}
}

func TestParseType(t *testing.T) {
	tests := []struct {
		input   string
		want    Type
		wantErr bool
	}{
		{"Family", Family, false},
		{"friends", Friends, false},
		{"COUPLE", Couple, false},
		{"Single", Single, false},
		{"Group", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseType(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseType(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseType(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Profile)
		wantErr bool
	}{
		{"valid", func(p *Profile) {}, false},
		{"valid with background", func(p *Profile) { p.Background = "https://cdn.example.com/beach.jpg" }, false},
		{"missing preferred name", func(p *Profile) { p.PreferredName = "" }, true},
		{"blank preferred name", func(p *Profile) { p.PreferredName = "  " }, true},
		{"bad guest type", func(p *Profile) { p.GuestType = "Group" }, true},
		{"missing room", func(p *Profile) { p.RoomNumber = "" }, true},
		{"missing venue", func(p *Profile) { p.VenueName = "" }, true},
		{"missing ssid", func(p *Profile) { p.SSID = "" }, true},
		{"template without placeholder", func(p *Profile) { p.VenueWhatsApp = "https://wa.me/51990411197" }, true},
		{"bad background scheme", func(p *Profile) { p.Background = "ftp://example.com/beach.jpg" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProfile()
			tt.mutate(&p)
			err := p.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeValidation) {
				t.Errorf("Validate() code = %v, want %v", errors.GetCode(err), errors.ErrCodeValidation)
			}
		})
	}
}
