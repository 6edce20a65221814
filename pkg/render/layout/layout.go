// Package layout computes the fixed geometry of the welcome screen.
//
// Every element sits at an absolute position derived only from the canvas
// size: no text is measured, so a long guest name can never push the cards
// around. All backends place their elements at these anchors and report
// what they actually drew through [Geometry], which makes the computed
// layout the reference for cross-backend comparison.
//
// Text anchors are baselines. X is the center for centered roles and the
// right edge for right-aligned ones.
package layout

// Canvas size of every welcome screen.
const (
	Width  = 3840
	Height = 2160
)

// Fixed positions and sizes.
const (
	TitleY = 460
	NameY  = 620

	CardY      = 980
	CardWidth  = 900
	CardHeight = 720
	CardRadius = 40
	CardGap    = 120

	LabelOffset    = 90
	QROffset       = 140
	QRSize         = 480
	CaptionOffset1 = 110
	CaptionOffset2 = 70

	FooterURLY = 2000
	LogoY      = 2040
	LogoInsetX = 240
)

// Point is a text anchor.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is an axis-aligned box with its origin at the top-left corner.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// CenterX returns the horizontal center of r.
func (r Rect) CenterX() float64 { return r.X + r.W/2 }

// Grid is the module grid of a QR code as placed on the canvas.
type Grid struct {
	// Symbol is the symbol width in modules, quiet zone excluded.
	Symbol int `json:"symbol"`
	// Pitch is the width of one module in canvas pixels.
	Pitch float64 `json:"pitch"`
	// Origin is the top-left corner of the first symbol module.
	Origin Point `json:"origin"`
}

// Extent is the width of the symbol in canvas pixels.
func (g Grid) Extent() float64 { return g.Pitch * float64(g.Symbol) }

// End is the bottom-right corner of the last symbol module.
func (g Grid) End() Point {
	return Point{g.Origin.X + g.Extent(), g.Origin.Y + g.Extent()}
}

// QRGrid returns the grid of a symbol modules wide, surrounded by margin
// quiet-zone modules on each side, stretched over r.
func QRGrid(r Rect, symbol, margin int) Grid {
	pitch := r.W / float64(symbol+2*margin)
	return Grid{
		Symbol: symbol,
		Pitch:  pitch,
		Origin: Point{r.X + float64(margin)*pitch, r.Y + float64(margin)*pitch},
	}
}

// Card is the geometry of one glass card and its contents. Grid is zero
// until a QR code has been placed in the card.
type Card struct {
	Rect     Rect    `json:"rect"`
	Radius   float64 `json:"radius"`
	Label    Point   `json:"label"`
	QR       Rect    `json:"qr"`
	Grid     Grid    `json:"grid"`
	Captions []Point `json:"captions"`
}

// Geometry is the position of every element on the canvas.
type Geometry struct {
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Title     Point   `json:"title"`
	Name      Point   `json:"name"`
	Cards     []Card  `json:"cards"`
	FooterURL Point   `json:"footerUrl"`
	Logo      Point   `json:"logo"`
}

// Card indexes into Geometry.Cards.
const (
	WiFiCard    = 0
	ContactCard = 1
)

// Compute returns the layout for a width×height canvas. The Wi-Fi card
// carries two caption lines, the contact card one.
func Compute(width, height float64) Geometry {
	left := (width - (2*CardWidth + CardGap)) / 2
	right := left + CardWidth + CardGap

	return Geometry{
		Width:  width,
		Height: height,
		Title:  Point{width / 2, TitleY},
		Name:   Point{width / 2, NameY},
		Cards: []Card{
			card(left, 2),
			card(right, 1),
		},
		FooterURL: Point{width / 2, FooterURLY},
		Logo:      Point{width - LogoInsetX, LogoY},
	}
}

// Default is Compute for the standard canvas.
func Default() Geometry {
	return Compute(Width, Height)
}

func card(x float64, captions int) Card {
	r := Rect{X: x, Y: CardY, W: CardWidth, H: CardHeight}
	cx := r.CenterX()

	c := Card{
		Rect:   r,
		Radius: CardRadius,
		Label:  Point{cx, r.Y + LabelOffset},
		QR:     Rect{X: r.X + (CardWidth-QRSize)/2, Y: r.Y + QROffset, W: QRSize, H: QRSize},
	}
	if captions == 2 {
		c.Captions = append(c.Captions, Point{cx, r.Y + r.H - CaptionOffset1})
	}
	c.Captions = append(c.Captions, Point{cx, r.Y + r.H - CaptionOffset2})
	return c
}
