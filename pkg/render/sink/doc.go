// Package sink turns a [scene.Scene] into pixels.
//
// # Backends
//
// Three interchangeable backends render the same scene:
//
//   - canvas: immediate-mode drawing with fogleman/gg, fully in process.
//   - html: an HTML/CSS document screenshotted by headless Chrome (chromedp).
//   - svg: an SVG document rasterized by rsvg-convert out of process.
//
// All three place every element at the scene's anchors. Each backend can
// also report where it put things through [Backend.Measure], which parses
// the backend's own intermediate representation (or, for canvas, replays
// the paint walk against a recording surface). [Conform] compares those
// measurements with the computed layout.
//
// Basic usage:
//
//	b, err := sink.New("canvas")
//	img, err := b.Render(ctx, s)
//	data, err := sink.EncodePNG(img)
//
// # Requirements
//
// The html backend needs Chrome or Chromium on PATH (or [WithChromePath]).
// The svg backend needs librsvg: brew install librsvg (macOS),
// apt install librsvg2-bin (Linux).
package sink
