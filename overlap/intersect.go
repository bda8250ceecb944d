package overlap

import "sort"

const crossEpsilon = 1e-4

// crossPoint is one intersection between two segments, each expressed as
// the 0..1 parameter along the whole segment (not a subdivided piece).
type crossPoint struct {
	point       Point
	aPos, bPos  float64
}

// boundsOverlap is a cheap axis-aligned bounding-box prefilter before the
// more precise subdivision search: reject the common case of two segments
// whose control polygons don't come near each other.
func boundsOverlap(a, b []Point) bool {
	aMinX, aMinY, aMaxX, aMaxY := polyBounds(a)
	bMinX, bMinY, bMaxX, bMaxY := polyBounds(b)
	return aMinX <= bMaxX && aMaxX >= bMinX && aMinY <= bMaxY && aMaxY >= bMinY
}

func polyBounds(pts []Point) (minX, minY, maxX, maxY float64) {
	minX, minY = pts[0].X, pts[0].Y
	maxX, maxY = pts[0].X, pts[0].Y
	for _, p := range pts[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return
}

func polyDiagonal(pts []Point) float64 {
	minX, minY, maxX, maxY := polyBounds(pts)
	return Point{minX, minY}.distance(Point{maxX, maxY})
}

// lineLineCross finds the intersection of chord a0-a1 with chord b0-b1,
// returning the parameter along each chord.
func lineLineCross(a0, a1, b0, b1 Point) (t, u float64, ok bool) {
	d1 := a1.sub(a0)
	d2 := b1.sub(b0)
	denom := d1.cross(d2)
	if denom == 0 {
		return 0, 0, false
	}
	diff := b0.sub(a0)
	t = diff.cross(d2) / denom
	u = diff.cross(d1) / denom
	if t < -1e-9 || t > 1+1e-9 || u < -1e-9 || u > 1+1e-9 {
		return 0, 0, false
	}
	return t, u, true
}

// findCrossPoints searches for every intersection between a and b by
// recursive bounding-box subdivision (a generalization of Bezier
// clipping): each segment is halved until its control polygon is flat
// enough that a straight-line test against the other half is accurate,
// bottoming out to lineLineCross. This covers all nine (Line, Quadratic,
// Cubic) x (Line, Quadratic, Cubic) combinations with one routine instead
// of a per-pair dispatch table.
func findCrossPoints(a, b Segment) []crossPoint {
	if !boundsOverlap(a.Polygon(), b.Polygon()) {
		return nil
	}
	raw := subdivideCross(a, 0, 1, b, 0, 1, 0)
	return dedupeCrossPoints(raw)
}

const maxSubdivisionDepth = 24

func subdivideCross(a Segment, aLo, aHi float64, b Segment, bLo, bHi float64, depth int) []crossPoint {
	if !boundsOverlap(a.Polygon(), b.Polygon()) {
		return nil
	}

	flat := polyDiagonal(a.Polygon()) < crossEpsilon && polyDiagonal(b.Polygon()) < crossEpsilon
	if flat || depth >= maxSubdivisionDepth {
		a0, a1 := a.Endpoints()
		b0, b1 := b.Endpoints()
		t, u, ok := lineLineCross(a0, a1, b0, b1)
		if !ok {
			return nil
		}
		return []crossPoint{{
			point: a0.lerp(a1, t),
			aPos:  aLo + t*(aHi-aLo),
			bPos:  bLo + u*(bHi-bLo),
		}}
	}

	aMid := (aLo + aHi) / 2
	bMid := (bLo + bHi) / 2
	aLeft, aRight := a.Chop(0.5)
	bLeft, bRight := b.Chop(0.5)

	var out []crossPoint
	out = append(out, subdivideCross(aLeft, aLo, aMid, bLeft, bLo, bMid, depth+1)...)
	out = append(out, subdivideCross(aLeft, aLo, aMid, bRight, bMid, bHi, depth+1)...)
	out = append(out, subdivideCross(aRight, aMid, aHi, bLeft, bLo, bMid, depth+1)...)
	out = append(out, subdivideCross(aRight, aMid, aHi, bRight, bMid, bHi, depth+1)...)
	return out
}

func dedupeCrossPoints(in []crossPoint) []crossPoint {
	var out []crossPoint
	for _, cp := range in {
		dup := false
		for _, existing := range out {
			if cp.point.almostEqual(existing.point) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, cp)
		}
	}
	return out
}

// splitSegmentOnCrossPoint finds every intersection of a and b, discards
// ones that fall exactly on both segments' shared endpoints (those aren't
// real overlaps, just adjoining contours), then chops each segment at its
// surviving intersections. Returns ok=false when nothing needed splitting.
func splitSegmentOnCrossPoint(a, b Segment) (aOut, bOut []Segment, ok bool) {
	crosses := findCrossPoints(a, b)
	var kept []crossPoint
	for _, cp := range crosses {
		aEdge := isEdgeParam(cp.aPos)
		bEdge := isEdgeParam(cp.bPos)
		if aEdge && bEdge {
			continue
		}
		kept = append(kept, cp)
	}
	if len(kept) == 0 {
		return nil, nil, false
	}

	aOut = chopAtParams(a, kept, func(cp crossPoint) float64 { return cp.aPos })
	bOut = chopAtParams(b, kept, func(cp crossPoint) float64 { return cp.bPos })

	if len(aOut) == 1 && len(bOut) == 1 {
		return nil, nil, false
	}
	return aOut, bOut, true
}

func isEdgeParam(t float64) bool {
	return t < 1e-6 || t > 1-1e-6
}

func chopAtParams(seg Segment, crosses []crossPoint, param func(crossPoint) float64) []Segment {
	type paramPoint struct {
		t float64
		p Point
	}
	var pts []paramPoint
	for _, cp := range crosses {
		t := param(cp)
		if isEdgeParam(t) {
			continue
		}
		pts = append(pts, paramPoint{t: t, p: cp.point})
	}
	if len(pts) == 0 {
		return []Segment{seg}
	}
	sort.Slice(pts, func(i, j int) bool { return pts[i].t < pts[j].t })

	var out []Segment
	remaining := seg
	consumed := 0.0
	for _, pp := range pts {
		length := 1.0 - consumed
		localT := (pp.t - consumed) / length
		pre, post := remaining.Chop(localT)
		pre.SetTo(pp.p)
		post.SetFrom(pp.p)
		if !pre.sameFromTo() {
			out = append(out, pre)
		}
		remaining = post
		consumed = pp.t
	}
	if !remaining.sameFromTo() {
		out = append(out, remaining)
	}
	return out
}
