package sink

import (
	"github.com/matzehuels/welcomescreen/pkg/render/layout"
	"github.com/matzehuels/welcomescreen/pkg/render/scene"
)

// Tolerance is the largest coordinate difference, in pixels, at which two
// backends are considered to agree.
const Tolerance = 0.5

// Report is the outcome of comparing one backend against the layout.
type Report struct {
	Backend    string            `json:"backend"`
	Geometry   layout.Geometry   `json:"geometry"`
	Mismatches []layout.Mismatch `json:"mismatches,omitempty"`
}

// OK reports whether the backend matched the layout.
func (r Report) OK() bool { return len(r.Mismatches) == 0 }

// Conform measures s with each backend and compares the result to the
// computed layout for the scene's canvas size. Each card's expected QR grid
// is the scene's code stretched over the computed QR box.
func Conform(s *scene.Scene, backends ...Backend) ([]Report, error) {
	want := layout.Compute(float64(s.Width), float64(s.Height))
	for i, c := range s.Cards() {
		if i < len(want.Cards) {
			want.Cards[i].Grid = layout.QRGrid(want.Cards[i].QR, len(c.QR.Modules), c.QR.MarginModules)
		}
	}

	reports := make([]Report, 0, len(backends))
	for _, b := range backends {
		got, err := b.Measure(s)
		if err != nil {
			return nil, err
		}
		reports = append(reports, Report{
			Backend:    b.Name(),
			Geometry:   got,
			Mismatches: layout.Diff(want, got, Tolerance),
		})
	}
	return reports, nil
}
