package styles

// Pass identifies one full-canvas gradient overlay.
type Pass int

const (
	PassVerticalVignette Pass = iota
	PassHorizontalOverlay
	PassRightVignette
)

func (p Pass) String() string {
	switch p {
	case PassVerticalVignette:
		return "vertical-vignette"
	case PassHorizontalOverlay:
		return "horizontal-overlay"
	case PassRightVignette:
		return "right-vignette"
	}
	return "unknown"
}

func (p Pass) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// Axis is the direction a gradient runs across the canvas.
type Axis int

const (
	// Vertical runs top (t=0) to bottom (t=1).
	Vertical Axis = iota
	// Horizontal runs left (t=0) to right (t=1).
	Horizontal
)

func (a Axis) MarshalText() ([]byte, error) {
	if a == Horizontal {
		return []byte("horizontal"), nil
	}
	return []byte("vertical"), nil
}

// Stop is a color at a normalized offset along the axis.
type Stop struct {
	Offset float64 `json:"offset"`
	Color  Color   `json:"color"`
}

// Gradient is one overlay pass painted over the whole canvas.
type Gradient struct {
	Pass  Pass   `json:"pass"`
	Axis  Axis   `json:"axis"`
	Stops []Stop `json:"stops"`
}

// At returns the color at t. Values before the first stop or after the
// last take that stop's color.
func (g Gradient) At(t float64) Color {
	if len(g.Stops) == 0 {
		return Color{}
	}
	first, last := g.Stops[0], g.Stops[len(g.Stops)-1]
	if t <= first.Offset {
		return first.Color
	}
	if t >= last.Offset {
		return last.Color
	}
	for i := 1; i < len(g.Stops); i++ {
		a, b := g.Stops[i-1], g.Stops[i]
		if t <= b.Offset {
			span := b.Offset - a.Offset
			if span <= 0 {
				return b.Color
			}
			return Lerp(a.Color, b.Color, (t-a.Offset)/span)
		}
	}
	return last.Color
}

// VerticalVignette darkens the top and bottom edges.
func VerticalVignette() Gradient {
	return Gradient{Pass: PassVerticalVignette, Axis: Vertical, Stops: []Stop{
		{0, Black.Alpha(0.12)},
		{0.11, Black.Alpha(0)},
		{0.89, Black.Alpha(0)},
		{1, Black.Alpha(0.12)},
	}}
}

// HorizontalOverlay tints the left side navy for text legibility.
func HorizontalOverlay() Gradient {
	return Gradient{Pass: PassHorizontalOverlay, Axis: Horizontal, Stops: []Stop{
		{0, Navy.Alpha(0.75)},
		{0.45, Navy.Alpha(0.55)},
		{1, Navy.Alpha(0.12)},
	}}
}

// RightVignette deepens the right edge.
func RightVignette() Gradient {
	return Gradient{Pass: PassRightVignette, Axis: Horizontal, Stops: []Stop{
		{0.60, Navy.Alpha(0)},
		{0.80, Navy.Alpha(0.15)},
		{1, Navy.Alpha(0.45)},
	}}
}

// Gradients returns the overlay passes for p in paint order.
func Gradients(p Preset) []Gradient {
	passes := []Gradient{VerticalVignette(), HorizontalOverlay()}
	if Glass(p).RightVignette {
		passes = append(passes, RightVignette())
	}
	return passes
}
