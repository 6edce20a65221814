// Package fonts provides the embedded typefaces used by every render backend.
//
// The welcome screen uses two weights of the Go font family: bold for the
// greeting, guest name and logo, medium for card labels, captions and the
// footer URL. The TTF data is compiled into the binary so the canvas backend
// needs no system fonts, and the HTML backend embeds the same bytes as
// @font-face data URIs so both produce identical glyph metrics.
package fonts

import (
	"encoding/base64"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/opentype"
)

// Weight selects one of the embedded typefaces.
type Weight int

const (
	Medium Weight = 500
	Bold   Weight = 700
)

// String returns the CSS weight keyword.
func (w Weight) String() string {
	if w == Bold {
		return "bold"
	}
	return "medium"
}

// FontFamily is the CSS font-family name for the embedded fonts.
const FontFamily = "Go"

// FallbackFontFamily is the font-family list used in generated markup.
const FallbackFontFamily = `'Go', 'Helvetica Neue', Arial, sans-serif`

// TTF returns the raw font file for w.
func TTF(w Weight) []byte {
	if w == Bold {
		return gobold.TTF
	}
	return gomedium.TTF
}

// Parsed fonts are shared across goroutines; faces are not.
var (
	parseOnce sync.Once
	parsed    map[Weight]*opentype.Font
	parseErr  error
)

func load(w Weight) (*opentype.Font, error) {
	parseOnce.Do(func() {
		parsed = make(map[Weight]*opentype.Font, 2)
		for _, weight := range []Weight{Medium, Bold} {
			f, err := opentype.Parse(TTF(weight))
			if err != nil {
				parseErr = fmt.Errorf("parse %s font: %w", weight, err)
				return
			}
			parsed[weight] = f
		}
	})
	if parseErr != nil {
		return nil, parseErr
	}
	return parsed[w], nil
}

// NewFace returns a new face for w at size pixels. Faces are not safe for
// concurrent use, so each render creates its own.
func NewFace(w Weight, size float64) (font.Face, error) {
	f, err := load(w)
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
}

// Metrics holds vertical font metrics in pixels.
type Metrics struct {
	Ascent  float64
	Descent float64
}

// LineHeight is the distance from the top of the ascent to the bottom of
// the descent.
func (m Metrics) LineHeight() float64 {
	return m.Ascent + m.Descent
}

type metricsKey struct {
	weight Weight
	size   float64
}

var (
	metricsMu    sync.RWMutex
	metricsCache = map[metricsKey]Metrics{}
)

// MetricsFor returns the ascent and descent of w at size. Results are
// cached for the life of the process.
func MetricsFor(w Weight, size float64) (Metrics, error) {
	key := metricsKey{w, size}

	metricsMu.RLock()
	m, ok := metricsCache[key]
	metricsMu.RUnlock()
	if ok {
		return m, nil
	}

	face, err := NewFace(w, size)
	if err != nil {
		return Metrics{}, err
	}
	defer face.Close()

	fm := face.Metrics()
	m = Metrics{
		Ascent:  float64(fm.Ascent) / 64,
		Descent: float64(fm.Descent) / 64,
	}

	metricsMu.Lock()
	if existing, ok := metricsCache[key]; ok {
		m = existing
	} else {
		metricsCache[key] = m
	}
	metricsMu.Unlock()
	return m, nil
}

// MeasureString returns the advance width of s in pixels.
func MeasureString(w Weight, size float64, s string) (float64, error) {
	face, err := NewFace(w, size)
	if err != nil {
		return 0, err
	}
	defer face.Close()
	return float64(font.MeasureString(face, s)) / 64, nil
}

var (
	b64Once sync.Once
	b64     map[Weight]string
)

// Base64 returns the TTF data for w as a base64 string.
// The result is cached after first computation.
func Base64(w Weight) string {
	b64Once.Do(func() {
		b64 = map[Weight]string{
			Medium: base64.StdEncoding.EncodeToString(gomedium.TTF),
			Bold:   base64.StdEncoding.EncodeToString(gobold.TTF),
		}
	})
	return b64[w]
}

// FaceCSS returns @font-face rules declaring both weights under
// [FontFamily] with inline data URIs.
func FaceCSS() string {
	var b strings.Builder
	for _, w := range []Weight{Medium, Bold} {
		fmt.Fprintf(&b, "@font-face{font-family:'%s';font-weight:%d;src:url(data:font/ttf;base64,%s) format('truetype');}\n",
			FontFamily, int(w), Base64(w))
	}
	return b.String()
}
