// Package overlap splits self-intersecting glyph contours into simple
// closed loops.
package overlap

import "math"

// Point is a plain 2D point in font design units.
type Point struct {
	X, Y float64
}

func (p Point) sub(o Point) Point  { return Point{p.X - o.X, p.Y - o.Y} }
func (p Point) add(o Point) Point  { return Point{p.X + o.X, p.Y + o.Y} }
func (p Point) scale(s float64) Point { return Point{p.X * s, p.Y * s} }
func (p Point) lerp(o Point, t float64) Point {
	return Point{p.X + (o.X-p.X)*t, p.Y + (o.Y-p.Y)*t}
}
func (p Point) distance(o Point) float64 {
	dx, dy := p.X-o.X, p.Y-o.Y
	return math.Hypot(dx, dy)
}
func (p Point) cross(o Point) float64 { return p.X*o.Y - p.Y*o.X }
func (p Point) dot(o Point) float64   { return p.X*o.X + p.Y*o.Y }
func (p Point) almostEqual(o Point) bool {
	const eps = 1e-6
	return math.Abs(p.X-o.X) < eps && math.Abs(p.Y-o.Y) < eps
}

// Segment is one of Line, Quadratic, or Cubic: the three primitive curve
// kinds a glyph outline decomposes into.
type Segment interface {
	Endpoints() (from, to Point)
	SetFrom(p Point)
	SetTo(p Point)
	// Chop splits the segment at parameter t in [0,1] into two segments
	// covering [0,t] and [t,1].
	Chop(t float64) (Segment, Segment)
	Reverse() Segment
	IsSameOrReversed(other Segment) bool
	// Polygon returns the segment's convex control polygon, used as a
	// cheap bounding test before the more precise intersection check.
	Polygon() []Point
	// FromVector/ToVector give the segment's tangent direction at its
	// start/end, used to pick the most-clockwise (or most-counter-
	// clockwise) continuation when reconstructing loops.
	FromVector() Point
	ToVector() Point
	sameFromTo() bool
	clone() Segment
}

// Line is a straight segment.
type Line struct{ From, To Point }

func (l *Line) Endpoints() (Point, Point) { return l.From, l.To }
func (l *Line) SetFrom(p Point)           { l.From = p }
func (l *Line) SetTo(p Point)             { l.To = p }
func (l *Line) Chop(t float64) (Segment, Segment) {
	mid := l.From.lerp(l.To, t)
	return &Line{From: l.From, To: mid}, &Line{From: mid, To: l.To}
}
func (l *Line) Reverse() Segment { return &Line{From: l.To, To: l.From} }
func (l *Line) IsSameOrReversed(other Segment) bool {
	o, ok := other.(*Line)
	if !ok {
		return false
	}
	return (l.From == o.From && l.To == o.To) || (l.From == o.To && l.To == o.From)
}
func (l *Line) Polygon() []Point      { return []Point{l.From, l.To} }
func (l *Line) FromVector() Point     { return l.To.sub(l.From) }
func (l *Line) ToVector() Point       { return l.To.sub(l.From) }
func (l *Line) sameFromTo() bool      { return l.From.almostEqual(l.To) }
func (l *Line) clone() Segment        { c := *l; return &c }

// Quadratic is a single quadratic-Bezier segment.
type Quadratic struct{ From, Control, To Point }

func (q *Quadratic) Endpoints() (Point, Point) { return q.From, q.To }
func (q *Quadratic) SetFrom(p Point)           { q.From = p }
func (q *Quadratic) SetTo(p Point)             { q.To = p }
func (q *Quadratic) Chop(t float64) (Segment, Segment) {
	p01 := q.From.lerp(q.Control, t)
	p12 := q.Control.lerp(q.To, t)
	mid := p01.lerp(p12, t)
	return &Quadratic{From: q.From, Control: p01, To: mid},
		&Quadratic{From: mid, Control: p12, To: q.To}
}
func (q *Quadratic) Reverse() Segment {
	return &Quadratic{From: q.To, Control: q.Control, To: q.From}
}
func (q *Quadratic) IsSameOrReversed(other Segment) bool {
	o, ok := other.(*Quadratic)
	if !ok {
		return false
	}
	if q.From == o.From && q.Control == o.Control && q.To == o.To {
		return true
	}
	return q.From == o.To && q.Control == o.Control && q.To == o.From
}
func (q *Quadratic) Polygon() []Point { return []Point{q.From, q.Control, q.To} }
func (q *Quadratic) FromVector() Point { return q.Control.sub(q.From) }
func (q *Quadratic) ToVector() Point   { return q.To.sub(q.Control) }
func (q *Quadratic) sameFromTo() bool  { return q.From.almostEqual(q.To) }
func (q *Quadratic) clone() Segment    { c := *q; return &c }

// Cubic is a single cubic-Bezier segment.
type Cubic struct{ From, Control1, Control2, To Point }

func (c *Cubic) Endpoints() (Point, Point) { return c.From, c.To }
func (c *Cubic) SetFrom(p Point)           { c.From = p }
func (c *Cubic) SetTo(p Point)             { c.To = p }
func (c *Cubic) Chop(t float64) (Segment, Segment) {
	p01 := c.From.lerp(c.Control1, t)
	p12 := c.Control1.lerp(c.Control2, t)
	p23 := c.Control2.lerp(c.To, t)
	p012 := p01.lerp(p12, t)
	p123 := p12.lerp(p23, t)
	mid := p012.lerp(p123, t)
	return &Cubic{From: c.From, Control1: p01, Control2: p012, To: mid},
		&Cubic{From: mid, Control1: p123, Control2: p23, To: c.To}
}
func (c *Cubic) Reverse() Segment {
	return &Cubic{From: c.To, Control1: c.Control2, Control2: c.Control1, To: c.From}
}
func (c *Cubic) IsSameOrReversed(other Segment) bool {
	o, ok := other.(*Cubic)
	if !ok {
		return false
	}
	if c.From == o.From && c.Control1 == o.Control1 && c.Control2 == o.Control2 && c.To == o.To {
		return true
	}
	return c.From == o.To && c.Control1 == o.Control2 && c.Control2 == o.Control1 && c.To == o.From
}
func (c *Cubic) Polygon() []Point {
	return []Point{c.From, c.Control1, c.Control2, c.To}
}
func (c *Cubic) FromVector() Point { return c.Control1.sub(c.From) }
func (c *Cubic) ToVector() Point   { return c.To.sub(c.Control2) }
func (c *Cubic) sameFromTo() bool  { return c.From.almostEqual(c.To) }
func (c *Cubic) clone() Segment    { d := *c; return &d }
