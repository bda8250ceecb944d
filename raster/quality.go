// Package raster implements the rasterizer pipeline: a two-pass,
// atlas-free glyph fill algorithm run every frame, plus the screen
// compositing pass that blends the result over the user's background.
package raster

import "fmt"

// Quality selects the overlap/outline render-target resolution and the
// final output sampling filter.
type Quality int

const (
	QualityLow Quality = iota
	QualityMedium
	QualityHigh
	QualityVeryHigh
)

func (q Quality) String() string {
	switch q {
	case QualityLow:
		return "Low"
	case QualityMedium:
		return "Medium"
	case QualityHigh:
		return "High"
	case QualityVeryHigh:
		return "VeryHigh"
	default:
		return fmt.Sprintf("Quality(%d)", int(q))
	}
}

// maxSuperSampleDimension caps VeryHigh's 4x supersample so a large
// window doesn't request an unreasonably large offscreen target.
const maxSuperSampleDimension = 8192

// Scale returns the overlap/outline target's multiple of the logical
// screen size: Low/Medium 1x, High 2x, VeryHigh 4x (capped).
func (q Quality) Scale() int {
	switch q {
	case QualityHigh:
		return 2
	case QualityVeryHigh:
		return 4
	default:
		return 1
	}
}

// Linear reports whether the final output sampling filter is linear
// (Medium/High/VeryHigh) rather than nearest (Low).
func (q Quality) Linear() bool { return q != QualityLow }

// TargetSize computes the overlap/outline render target dimensions for a
// logical screen size, applying Scale and the VeryHigh cap.
func (q Quality) TargetSize(screenW, screenH uint32) (w, h uint32) {
	scale := uint32(q.Scale())
	w, h = screenW*scale, screenH*scale
	if w > maxSuperSampleDimension {
		w = maxSuperSampleDimension
	}
	if h > maxSuperSampleDimension {
		h = maxSuperSampleDimension
	}
	return w, h
}
