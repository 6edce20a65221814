// Package pkg provides the libraries behind welcomescreen, a renderer for
// 3840x2160 guest welcome screens.
//
// # Overview
//
// A welcome screen greets the guest by name over a blurred background photo
// and carries two frosted-glass cards: one with a Wi-Fi QR code and one with
// a WhatsApp QR code for ordering to the room. The pkg directory is
// organized into three areas:
//
//  1. Domain inputs: [guest], [payload], [qr]
//  2. Rendering: [render/layout], [render/styles], [render/scene], [render/sink]
//  3. Infrastructure: [assets], [cache], [config], [observability], [pipeline]
//
// # Architecture
//
// The data flow through a render:
//
//	guest.Profile
//	     ↓
//	guest.DisplayName, payload.WiFi, payload.Contact
//	     ↓
//	qr.Encode ‖ assets.Store.Load (concurrent)
//	     ↓
//	scene.Assemble (layout.Default + styles presets)
//	     ↓
//	sink.Backend.Render (canvas, html or svg)
//	     ↓
//	sink.EncodePNG
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/welcomescreen/pkg/config"
//	    "github.com/matzehuels/welcomescreen/pkg/guest"
//	    "github.com/matzehuels/welcomescreen/pkg/pipeline"
//	)
//
//	cfg := config.Default()
//	p := guest.Profile{PreferredName: "Ana", GuestType: guest.Single, RoomNumber: "12"}
//	cfg.Venue.ApplyTo(&p)
//
//	runner := pipeline.NewRunner(cfg, nil, nil)
//	res, err := runner.Execute(ctx, pipeline.Request{Profile: p})
//	if err != nil {
//	    return err
//	}
//	os.WriteFile(res.Filename(), res.PNG, 0o644)
//
// # Errors
//
// Every failure carries a [errors.Code] so callers can tell bad input
// (VALIDATION_ERROR, QR_ENCODE_ERROR, ASSET_LOAD_ERROR) from a slow or
// interrupted render (RENDER_TIMEOUT, CANCELED).
package pkg
