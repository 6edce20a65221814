// Package pipeline turns a guest profile into a finished welcome-screen PNG.
//
// This package is the single entry point shared by the CLI commands and any
// embedding service, so every caller validates, caches and times renders the
// same way.
//
// # Architecture
//
// A render runs in three stages:
//
//  1. Prepare: validate the request, then load the background and encode
//     both QR codes concurrently, then assemble the scene
//  2. Render: paint the scene with the selected backend under a deadline
//  3. Encode: write the composite as a 3840x2160 PNG
//
// A failure at any stage aborts the render; no partial image is returned.
//
// # Usage
//
//	runner := pipeline.NewRunner(config.Default(), nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Request{
//	    Profile: profile,
//	    Backend: "canvas",
//	    Preset:  styles.Enhanced,
//	})
//	if err != nil {
//	    return err
//	}
//	os.WriteFile(result.Filename(), result.PNG, 0o644)
package pipeline

import (
	"fmt"
	"time"

	"github.com/matzehuels/welcomescreen/pkg/errors"
	"github.com/matzehuels/welcomescreen/pkg/guest"
	"github.com/matzehuels/welcomescreen/pkg/render/scene"
	"github.com/matzehuels/welcomescreen/pkg/render/sink"
	"github.com/matzehuels/welcomescreen/pkg/render/styles"
)

const (
	// DefaultBackend is used when a request names none.
	DefaultBackend = sink.Canvas

	// DefaultPreset is used when a request names no style.
	DefaultPreset = styles.Enhanced
)

// =============================================================================
// Request
// =============================================================================

// Request describes one render. Zero values select the runner's defaults.
type Request struct {
	Profile guest.Profile `json:"profile"`
	Backend string        `json:"backend,omitempty"`
	Preset  styles.Preset `json:"style,omitempty"`

	// QRSize overrides the backend's QR bitmap size in pixels.
	QRSize int `json:"qr_size,omitempty"`
}

// ValidateAndSetDefaults fills empty fields and validates the request.
func (r *Request) ValidateAndSetDefaults() error {
	if r.Backend == "" {
		r.Backend = DefaultBackend
	}
	if r.Preset == "" {
		r.Preset = DefaultPreset
	}
	if !sink.Valid(r.Backend) {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid backend: %q (must be one of: %v)", r.Backend, sink.Names())
	}
	p, err := styles.ParsePreset(string(r.Preset))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "invalid style")
	}
	r.Preset = p
	if r.QRSize < 0 {
		return errors.New(errors.ErrCodeValidation, "qr_size must not be negative")
	}
	return r.Profile.Validate()
}

// =============================================================================
// Result
// =============================================================================

// Result is a finished render.
type Result struct {
	// ID identifies the render in logs and hooks.
	ID string

	// PNG is the encoded 3840x2160 image.
	PNG []byte

	// Scene is the assembled scene the backend painted.
	Scene *scene.Scene

	// Backend names the backend that produced PNG.
	Backend string

	// Room is the room number the screen was rendered for.
	Room string

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains render statistics.
type Stats struct {
	PrepareTime time.Duration
	RenderTime  time.Duration
	EncodeTime  time.Duration
	Bytes       int
}

// Total is the wall time across all stages.
func (s Stats) Total() time.Duration {
	return s.PrepareTime + s.RenderTime + s.EncodeTime
}

// Filename is the conventional download name, "welcome-room-<room>-4K.png".
func (r *Result) Filename() string {
	return Filename(r.Room)
}

// Filename returns the conventional download name for room.
func Filename(room string) string {
	return fmt.Sprintf("welcome-room-%s-4K.png", room)
}
