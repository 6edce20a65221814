// Package render contains the welcome-screen composition packages.
//
// # Overview
//
// Rendering is split so that what is drawn is decided once and every
// backend only paints it:
//
//   - [layout]: absolute coordinates for every element on the canvas
//   - [styles]: colors, typography, gradient passes and glass-card presets
//   - [scene]: the ordered, validated layer list for one guest
//   - [sink]: backends that paint a scene, plus PNG encoding and
//     cross-backend conformance checks
//
// # Backends
//
// Three backends produce the same composite:
//
//   - canvas: pure Go raster painting with fogleman/gg
//   - html: an HTML document screenshotted by headless Chrome via chromedp
//   - svg: an SVG document rasterized by the external rsvg-convert tool
//
//	b, _ := sink.New(sink.Canvas)
//	img, err := b.Render(ctx, s)
//	png, err := sink.EncodePNG(img)
//
// Each backend can also report where it places elements without painting
// ([sink.Backend.Measure]); [sink.Conform] compares those measurements with
// [layout.Compute] so drift between backends is caught in tests.
package render
