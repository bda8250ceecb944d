package outline

import (
	"math"

	gg "github.com/mitoma/vectortext"
)

// DefaultFlatnessTolerance bounds cubicFlatness (nine times a squared
// distance in font design units) before a cubic is subdivided again
// rather than approximated directly; 9.0 allows a control point to sit
// one design unit from its chord point.
const DefaultFlatnessTolerance = 9.0

// cubicToQuadratics approximates c with a small number of quadratic
// Beziers (typically 1-4) via recursive de Casteljau subdivision: halve
// the cubic until each half is flat enough to represent with a single
// quadratic, then emit that quadratic.
func cubicToQuadratics(c gg.CubicBez, tolerance float64) []gg.QuadBez {
	if cubicFlatness(c) <= tolerance {
		return []gg.QuadBez{approximateQuadratic(c)}
	}
	left, right := c.Subdivide()
	out := cubicToQuadratics(left, tolerance)
	out = append(out, cubicToQuadratics(right, tolerance)...)
	return out
}

// cubicFlatness returns nine times the larger squared distance of P1 from
// the chord point at 1/3 and of P2 from the chord point at 2/3.
func cubicFlatness(c gg.CubicBez) float64 {
	ux := 3.0*c.P1.X - 2.0*c.P0.X - c.P3.X
	uy := 3.0*c.P1.Y - 2.0*c.P0.Y - c.P3.Y
	vx := 3.0*c.P2.X - c.P0.X - 2.0*c.P3.X
	vy := 3.0*c.P2.Y - c.P0.Y - 2.0*c.P3.Y
	return math.Max(ux*ux+uy*uy, vx*vx+vy*vy)
}

// approximateQuadratic collapses a (near-flat) cubic to the quadratic
// sharing its endpoints whose midpoint equals the cubic's midpoint: the
// control point is (3*(P1+P2) - (P0+P3)) / 4.
func approximateQuadratic(c gg.CubicBez) gg.QuadBez {
	ctrl := gg.Point{
		X: (3*(c.P1.X+c.P2.X) - (c.P0.X + c.P3.X)) / 4,
		Y: (3*(c.P1.Y+c.P2.Y) - (c.P0.Y + c.P3.Y)) / 4,
	}
	return gg.NewQuadBez(c.P0, ctrl, c.P3)
}
