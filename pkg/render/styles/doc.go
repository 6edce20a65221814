// Package styles defines the visual constants of the welcome screen:
// the typography table, the full-canvas gradient passes, and the two
// glass-card presets.
//
// Every backend reads its colors, sizes and stops from here. Gradient
// colors are computed by [Gradient.At], which the canvas backend samples
// row by row and the markup backends translate into CSS or SVG stops.
//
//	g := styles.Glass(styles.Enhanced)
//	// g.Fill = white at 25%, g.Shadow.Blur = 60, g.RightVignette = true
package styles
