package sink

import (
	"context"
	"image"
	"io"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/welcomescreen/pkg/errors"
	"github.com/matzehuels/welcomescreen/pkg/render/layout"
	"github.com/matzehuels/welcomescreen/pkg/render/scene"
)

// Backend renders scenes to images.
type Backend interface {
	// Name is the registry name ("canvas", "html", "svg").
	Name() string
	// QRPixelSize is the bitmap size QR codes should be encoded at.
	QRPixelSize() int
	// Render paints s and returns the composite.
	Render(ctx context.Context, s *scene.Scene) (image.Image, error)
	// Measure reports where Render places every element of s.
	Measure(s *scene.Scene) (layout.Geometry, error)
}

// Backend names.
const (
	Canvas = "canvas"
	HTML   = "html"
	SVG    = "svg"
)

// Names lists the registered backends.
func Names() []string {
	return []string{Canvas, HTML, SVG}
}

// Option configures a backend.
type Option func(*options)

type options struct {
	logger     *log.Logger
	qrSize     int
	chromePath string
	rsvgPath   string
}

// WithLogger sets the logger used for per-layer debug output.
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithQRPixelSize overrides the backend's QR bitmap size.
func WithQRPixelSize(n int) Option {
	return func(o *options) { o.qrSize = n }
}

// WithChromePath sets the Chrome executable for the html backend.
func WithChromePath(p string) Option {
	return func(o *options) { o.chromePath = p }
}

// WithRSVGPath sets the rsvg-convert executable for the svg backend.
func WithRSVGPath(p string) Option {
	return func(o *options) { o.rsvgPath = p }
}

func newOptions(defaultQR int, opts []Option) options {
	o := options{qrSize: defaultQR}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log.New(io.Discard)
	}
	if o.qrSize <= 0 {
		o.qrSize = defaultQR
	}
	return o
}

// New returns the backend registered under name.
func New(name string, opts ...Option) (Backend, error) {
	switch name {
	case Canvas:
		return NewCanvas(opts...), nil
	case HTML:
		return NewHTML(opts...), nil
	case SVG:
		return NewSVG(opts...), nil
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown backend %q (must be one of: %v)", name, Names())
}

// Valid reports whether name is a registered backend.
func Valid(name string) bool {
	return slices.Contains(Names(), name)
}
