package overlap

import "math"

// Path is a glyph contour already decomposed into primitive segments, the
// unit RemovePathOverlap operates on.
type Path []Segment

// Recorder implements the same four-callback contract outline.OutlineSink
// does (MoveTo/LineTo/QuadTo/CubicTo/Close), so a font outline can be
// recorded straight into overlap Paths before triangulation.
type Recorder struct {
	start, cur Point
	segments   []Segment
	paths      []Path
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) MoveTo(x, y float64) {
	r.flush()
	r.start = Point{x, y}
	r.cur = r.start
}

func (r *Recorder) LineTo(x, y float64) {
	to := Point{x, y}
	r.segments = append(r.segments, &Line{From: r.cur, To: to})
	r.cur = to
}

func (r *Recorder) QuadTo(cx, cy, x, y float64) {
	to := Point{x, y}
	r.segments = append(r.segments, &Quadratic{From: r.cur, Control: Point{cx, cy}, To: to})
	r.cur = to
}

func (r *Recorder) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	to := Point{x, y}
	r.segments = append(r.segments, &Cubic{
		From: r.cur, Control1: Point{c1x, c1y}, Control2: Point{c2x, c2y}, To: to,
	})
	r.cur = to
}

func (r *Recorder) Close() {
	if len(r.segments) > 0 && !r.cur.almostEqual(r.start) {
		r.segments = append(r.segments, &Line{From: r.cur, To: r.start})
	}
	r.cur = r.start
}

func (r *Recorder) flush() {
	if len(r.segments) > 0 {
		r.paths = append(r.paths, Path(r.segments))
		r.segments = nil
	}
}

// Paths finalizes and returns every recorded contour.
func (r *Recorder) Paths() []Path {
	r.flush()
	return r.paths
}

// RemovePathOverlap splits every path's segments at their mutual
// intersections, then reconstructs simple closed loops from the
// resulting segment pool by always taking the outermost turn at each
// vertex (see resolveNextSegment).
func RemovePathOverlap(paths []Path) []Path {
	var all []Segment
	for _, p := range paths {
		all = append(all, p...)
	}
	all = splitAllSegments(all)
	loops := reconstructLoops(all)

	out := make([]Path, 0, len(loops))
	for _, l := range loops {
		out = append(out, Path(l))
	}
	return out
}

// splitAllSegments repeatedly finds a crossing pair and replaces both
// segments with their chopped pieces until no pair crosses.
func splitAllSegments(segs []Segment) []Segment {
	for {
		crossed := false
		for i := 0; i < len(segs) && !crossed; i++ {
			for j := i + 1; j < len(segs); j++ {
				aPieces, bPieces, ok := splitSegmentOnCrossPoint(segs[i], segs[j])
				if !ok {
					continue
				}
				result := make([]Segment, 0, len(segs)+len(aPieces)+len(bPieces))
				result = append(result, segs[:i]...)
				result = append(result, aPieces...)
				result = append(result, bPieces...)
				if i+1 != j {
					result = append(result, segs[i+1:j]...)
				}
				result = append(result, segs[j+1:]...)
				segs = result
				crossed = true
				break
			}
		}
		if !crossed {
			return segs
		}
	}
}

type loopSegment struct {
	segments []Segment
}

func (l loopSegment) isClosed() bool {
	if len(l.segments) == 0 {
		return false
	}
	for i := 0; i+1 < len(l.segments); i++ {
		_, to := l.segments[i].Endpoints()
		from, _ := l.segments[i+1].Endpoints()
		if !to.almostEqual(from) {
			return false
		}
	}
	firstFrom, _ := l.segments[0].Endpoints()
	_, lastTo := l.segments[len(l.segments)-1].Endpoints()
	return firstFrom.almostEqual(lastTo)
}

// isClockwise uses the shoelace sum over segment endpoints (sum of
// from.x*to.y - from.y*to.x over segments).
func (l loopSegment) isClockwise() bool {
	sum := 0.0
	for _, s := range l.segments {
		from, to := s.Endpoints()
		sum += from.cross(to)
	}
	return sum > 0
}

func (l loopSegment) reverse() loopSegment {
	out := make([]Segment, len(l.segments))
	for i, s := range l.segments {
		out[len(l.segments)-1-i] = s.Reverse()
	}
	return loopSegment{segments: out}
}

func (l loopSegment) samePath(o loopSegment) bool {
	if len(l.segments) != len(o.segments) {
		return false
	}
	used := make([]bool, len(o.segments))
	for _, s := range l.segments {
		found := false
		for j, os := range o.segments {
			if used[j] {
				continue
			}
			if segmentsEqual(s, os) {
				used[j] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func segmentsEqual(a, b Segment) bool {
	switch av := a.(type) {
	case *Line:
		bv, ok := b.(*Line)
		return ok && av.From == bv.From && av.To == bv.To
	case *Quadratic:
		bv, ok := b.(*Quadratic)
		return ok && av.From == bv.From && av.Control == bv.Control && av.To == bv.To
	case *Cubic:
		bv, ok := b.(*Cubic)
		return ok && av.From == bv.From && av.Control1 == bv.Control1 &&
			av.Control2 == bv.Control2 && av.To == bv.To
	default:
		return false
	}
}

// hasVectorTailLoop returns the start index of a repeating tail, requiring
// the repeat to cover at least two segments (spec's resolution of the
// source's "two spellings" open question: a length-1 repeat is not
// sufficient to close a loop).
func hasVectorTailLoop(path []Segment) (int, bool) {
	n := len(path)
	for i := 1; i < n; i++ {
		if n < (1+i)*2 {
			continue
		}
		tailStart := n - 1 - i
		repeatStart := n - (1+i)*2
		repeatEnd := n - (1 + i)
		if segmentSliceEqual(path[tailStart:], path[repeatStart:repeatEnd]) {
			return tailStart, true
		}
	}
	return 0, false
}

func segmentSliceEqual(a, b []Segment) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !segmentsEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

// resolveNextSegment finds the candidate continuations from
// current's endpoint and picks the one with the largest clockwiseAngle
// from the reversed incoming direction: the sharpest right turn in y-up
// axes, which keeps the walk on the outer boundary of contours with a
// positive shoelace sum.
func resolveNextSegment(pool []Segment, current Segment) (Segment, bool) {
	_, currentTo := current.Endpoints()
	var candidates []Segment
	for _, s := range pool {
		from, _ := s.Endpoints()
		if !from.almostEqual(currentTo) {
			continue
		}
		if s.IsSameOrReversed(current) {
			continue
		}
		candidates = append(candidates, s)
	}
	if len(candidates) == 0 {
		return nil, false
	}

	base := current.ToVector().scale(-1)
	best := candidates[0]
	bestAngle := clockwiseAngle(base, best.FromVector())
	for _, c := range candidates[1:] {
		angle := clockwiseAngle(base, c.FromVector())
		if angle > bestAngle {
			best = c
			bestAngle = angle
		}
	}
	return best, true
}

// clockwiseAngle returns the angle, in [0, 2π), you rotate base clockwise
// to reach v, via atan2 rather than a cross/dot comparison.
func clockwiseAngle(base, v Point) float64 {
	baseAngle := math.Atan2(base.Y, base.X)
	vAngle := math.Atan2(v.Y, v.X)
	delta := baseAngle - vAngle
	for delta < 0 {
		delta += 2 * math.Pi
	}
	for delta >= 2*math.Pi {
		delta -= 2 * math.Pi
	}
	return delta
}

// getLoopSegments builds every candidate closed loop by walking from each
// not-yet-consumed segment until a repeating tail closes a loop.
func getLoopSegments(pool []Segment) []loopSegment {
	var results []loopSegment

	inAnyResult := func(s Segment) bool {
		for _, r := range results {
			for _, rs := range r.segments {
				if rs == s {
					return true
				}
			}
		}
		return false
	}

	for _, seg := range pool {
		if inAnyResult(seg) {
			continue
		}

		current := seg
		path := []Segment{current}
		for {
			next, ok := resolveNextSegment(pool, current)
			if !ok {
				break
			}
			current = next
			path = append(path, current)

			if start, found := hasVectorTailLoop(path); found {
				candidate := loopSegment{segments: append([]Segment(nil), path[start:]...)}
				dup := false
				for _, r := range results {
					if r.samePath(candidate) || r.samePath(candidate.reverse()) {
						dup = true
						break
					}
				}
				if !dup && candidate.isClosed() {
					results = append(results, candidate)
				}
				break
			}
			if len(path) > len(pool)*4+8 {
				// Safety valve: a malformed pool (e.g. a dangling open
				// contour) would otherwise loop forever.
				break
			}
		}
	}
	return results
}

// reconstructLoops collects loops via the outward-turn traversal, then
// returns clockwise and counter-clockwise loops together (both
// orientations occur among legitimately distinct glyph contours, e.g. an
// outer shell and an inner counter).
func reconstructLoops(segs []Segment) [][]Segment {
	loops := getLoopSegments(segs)
	out := make([][]Segment, 0, len(loops))
	for _, l := range loops {
		if l.isClockwise() {
			out = append(out, l.segments)
		}
	}
	for _, l := range loops {
		if !l.isClockwise() {
			out = append(out, l.segments)
		}
	}
	return out
}
