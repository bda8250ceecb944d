// Package outline converts a font glyph's outline commands into the
// triangle soup the rasterizer pipeline consumes, including
// cubic-to-quadratic approximation, coordinate normalization, width
// classification, and vertical-glyph-variant lookup.
package outline

import gg "github.com/mitoma/vectortext"

// Role tags a vertex's part in the Loop-Blinn triangle scheme. The
// fragment shader uses it to decide whether a triangle fills a straight
// region or evaluates the Bezier-hull test u²-v<0.
type Role int

const (
	// RoleFlip and RoleFlop alternate on successive on-curve vertices.
	// The alternation lets the shader identify triangle fans without
	// index re-ordering.
	RoleFlip Role = iota
	RoleFlop
	// RoleControl tags the control point of a curve triangle.
	RoleControl
)

// wait returns the two-component encoding the vertex shader reads: role
// packs as [0,0] (Flip), [0,1] (Flop), or [1,0] (Control).
func (r Role) wait() [2]float32 {
	switch r {
	case RoleFlop:
		return [2]float32{0, 1}
	case RoleControl:
		return [2]float32{1, 0}
	default:
		return [2]float32{0, 0}
	}
}

// Vertex is one entry of a glyph's vertex buffer.
type Vertex struct {
	Position [2]float32
	Role     [2]float32
}

// GlyphVertex is the product of converting one glyph outline: a triangle
// soup (vertices + indices) plus the glyph's width class.
type GlyphVertex struct {
	Vertices []Vertex
	Indices  []uint32
	Width    GlyphWidth
}

// internalVertex carries font-design-unit coordinates before the
// coordinate-normalization pass recenters and scales them.
type internalVertex struct {
	x, y float64
	role [2]float32
}

// builder implements the four canonical outline commands and builds a
// fixed Origin-fan index pattern: index 0 is a shared Origin vertex;
// every line_to/quad_to appends one or two vertices and one or two
// triangles fanned from the Origin.
type builder struct {
	vertices []internalVertex
	indices  []uint32
	current  uint32 // index of the most recently appended on-curve vertex
	flip     bool
	tol      float64

	err error
}

func newBuilder(tolerance float64) *builder {
	return &builder{tol: tolerance}
}

func (b *builder) nextRole() Role {
	b.flip = !b.flip
	if b.flip {
		return RoleFlop
	}
	return RoleFlip
}

// MoveTo starts a new contour. Only one contour per glyph is expected to
// be open at a time; subsequent MoveTo calls without an intervening Close
// simply start a fresh fan anchored at Origin. Close itself is a no-op.
func (b *builder) MoveTo(x, y float64) {
	role := b.nextRole()
	b.vertices = append(b.vertices, internalVertex{x: x, y: y, role: role.wait()})
	b.current++
}

// LineTo emits one Origin-anchored triangle.
func (b *builder) LineTo(x, y float64) {
	role := b.nextRole()
	b.vertices = append(b.vertices, internalVertex{x: x, y: y, role: role.wait()})
	b.indices = append(b.indices, 0, b.current, b.current+1)
	b.current++
}

// QuadTo emits the straight triangle (Origin, prev, new) plus the curve
// triangle (prev, Control, new).
func (b *builder) QuadTo(cx, cy, x, y float64) {
	role := b.nextRole()

	b.vertices = append(b.vertices, internalVertex{x: cx, y: cy, role: RoleControl.wait()})
	b.vertices = append(b.vertices, internalVertex{x: x, y: y, role: role.wait()})

	b.indices = append(b.indices, 0, b.current, b.current+2)
	b.indices = append(b.indices, b.current, b.current+1, b.current+2)
	b.current += 2
}

// CubicTo approximates the cubic with quadratics (outline/cubic.go) and
// replays each approximation as a QuadTo call.
func (b *builder) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	last := len(b.vertices) - 1
	var start gg.Point
	if last >= 0 {
		start = gg.Point{X: b.vertices[last].x, Y: b.vertices[last].y}
	}
	cubic := gg.NewCubicBez(start, gg.Point{X: c1x, Y: c1y}, gg.Point{X: c2x, Y: c2y}, gg.Point{X: x, Y: y})
	for _, q := range cubicToQuadratics(cubic, b.tol) {
		b.QuadTo(q.P1.X, q.P1.Y, q.P2.X, q.P2.Y)
	}
}

// Close is a no-op: closure of the filled region is implicit in the
// accumulated Origin-anchored triangle fan.
func (b *builder) Close() {}

func (b *builder) build() []Vertex {
	out := make([]Vertex, len(b.vertices))
	for i, v := range b.vertices {
		out[i] = Vertex{
			Position: [2]float32{float32(v.x), float32(v.y)},
			Role:     v.role,
		}
	}
	return out
}
