package styles

import "github.com/matzehuels/welcomescreen/pkg/fonts"

// Role identifies a piece of text on the welcome screen.
type Role int

const (
	RoleTitle Role = iota
	RoleGuestName
	RoleCardLabel
	RoleCaptionPrimary
	RoleCaptionSecondary
	RoleFooterURL
	RoleFooterLogo
)

var roleNames = [...]string{"title", "guest-name", "card-label", "caption-primary", "caption-secondary", "footer-url", "footer-logo"}

func (r Role) String() string {
	if int(r) < len(roleNames) {
		return roleNames[r]
	}
	return "unknown"
}

// Align is the horizontal anchor of a text run relative to its X.
type Align int

const (
	AlignCenter Align = iota
	AlignRight
)

// Anchor returns the gg-style horizontal anchor fraction.
func (a Align) Anchor() float64 {
	if a == AlignRight {
		return 1
	}
	return 0.5
}

// CSS returns the text-align keyword.
func (a Align) CSS() string {
	if a == AlignRight {
		return "right"
	}
	return "center"
}

// SVG returns the text-anchor keyword.
func (a Align) SVG() string {
	if a == AlignRight {
		return "end"
	}
	return "middle"
}

// Shadow is a text drop shadow. Blur is the CSS blur radius.
type Shadow struct {
	DX, DY float64
	Blur   float64
	Color  Color
}

// TextStyle fully describes how a text run is drawn.
type TextStyle struct {
	Weight fonts.Weight
	Size   float64
	Color  Color
	Align  Align
	Shadow *Shadow
}

var headlineShadow = &Shadow{DX: 2, DY: 2, Blur: 4, Color: Black.Alpha(0.22)}

var typography = map[Role]TextStyle{
	RoleTitle:            {Weight: fonts.Bold, Size: 164, Color: White, Shadow: headlineShadow},
	RoleGuestName:        {Weight: fonts.Bold, Size: 118, Color: White, Shadow: headlineShadow},
	RoleCardLabel:        {Weight: fonts.Medium, Size: 56, Color: MustHex("#1F2937")},
	RoleCaptionPrimary:   {Weight: fonts.Medium, Size: 42, Color: MustHex("#374151")},
	RoleCaptionSecondary: {Weight: fonts.Medium, Size: 36, Color: MustHex("#4B5563")},
	RoleFooterURL:        {Weight: fonts.Medium, Size: 48, Color: White},
	RoleFooterLogo:       {Weight: fonts.Bold, Size: 72, Color: White.Alpha(0.92), Align: AlignRight},
}

// Typography returns the text style for role. Unknown roles fall back to
// the secondary caption style.
func Typography(role Role) TextStyle {
	if s, ok := typography[role]; ok {
		return s
	}
	return typography[RoleCaptionSecondary]
}
