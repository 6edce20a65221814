package layout

import (
	"fmt"
	"math"
)

// Mismatch is one coordinate that differs between two geometries.
type Mismatch struct {
	Element string  `json:"element"`
	Want    float64 `json:"want"`
	Got     float64 `json:"got"`
}

func (m Mismatch) String() string {
	return fmt.Sprintf("%s: want %.2f, got %.2f", m.Element, m.Want, m.Got)
}

// Diff compares got against want and returns every coordinate that differs
// by more than tol. Missing cards or captions are reported as mismatches
// with Got set to NaN. QR grids are compared only when want carries one:
// the symbol size must match exactly, and both corners of the symbol must
// agree within tol.
func Diff(want, got Geometry, tol float64) []Mismatch {
	d := differ{tol: tol}
	d.num("width", want.Width, got.Width)
	d.num("height", want.Height, got.Height)
	d.point("title", want.Title, got.Title)
	d.point("name", want.Name, got.Name)

	for i, wc := range want.Cards {
		name := fmt.Sprintf("card[%d]", i)
		if i >= len(got.Cards) {
			d.missing(name)
			continue
		}
		gc := got.Cards[i]
		d.rect(name, wc.Rect, gc.Rect)
		d.num(name+".radius", wc.Radius, gc.Radius)
		d.point(name+".label", wc.Label, gc.Label)
		d.rect(name+".qr", wc.QR, gc.QR)
		if wc.Grid.Symbol > 0 {
			d.grid(name+".qr.grid", wc.Grid, gc.Grid)
		}
		for j, wp := range wc.Captions {
			cname := fmt.Sprintf("%s.caption[%d]", name, j)
			if j >= len(gc.Captions) {
				d.missing(cname)
				continue
			}
			d.point(cname, wp, gc.Captions[j])
		}
		if len(gc.Captions) > len(wc.Captions) {
			d.out = append(d.out, Mismatch{name + ".captions", float64(len(wc.Captions)), float64(len(gc.Captions))})
		}
	}
	if len(got.Cards) > len(want.Cards) {
		d.out = append(d.out, Mismatch{"cards", float64(len(want.Cards)), float64(len(got.Cards))})
	}

	d.point("footer.url", want.FooterURL, got.FooterURL)
	d.point("footer.logo", want.Logo, got.Logo)
	return d.out
}

type differ struct {
	tol float64
	out []Mismatch
}

func (d *differ) num(name string, want, got float64) {
	if math.IsNaN(got) || math.Abs(want-got) > d.tol {
		d.out = append(d.out, Mismatch{name, want, got})
	}
}

func (d *differ) point(name string, want, got Point) {
	d.num(name+".x", want.X, got.X)
	d.num(name+".y", want.Y, got.Y)
}

func (d *differ) rect(name string, want, got Rect) {
	d.num(name+".x", want.X, got.X)
	d.num(name+".y", want.Y, got.Y)
	d.num(name+".w", want.W, got.W)
	d.num(name+".h", want.H, got.H)
}

func (d *differ) grid(name string, want, got Grid) {
	if want.Symbol != got.Symbol {
		d.out = append(d.out, Mismatch{name + ".symbol", float64(want.Symbol), float64(got.Symbol)})
		return
	}
	d.point(name+".origin", want.Origin, got.Origin)
	d.point(name+".end", want.End(), got.End())
}

func (d *differ) missing(name string) {
	d.out = append(d.out, Mismatch{Element: name, Got: math.NaN()})
}
