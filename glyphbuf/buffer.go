// Package glyphbuf implements the glyph vertex buffer: an append-only
// store that converts codepoints to triangle soup (via package outline)
// and packs them into fixed-capacity GPU vertex/index buffers, never
// freeing a buffer once allocated. A multi-buffer, fixed-capacity,
// first-fit design: buffers are never freed during a session and have no
// eviction concept.
package glyphbuf

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	gg "github.com/mitoma/vectortext"
	"github.com/mitoma/vectortext/outline"
)

// DefaultCapacity is the vertex capacity of a newly created host buffer.
// Sized so that hundreds of ordinary glyphs fit per buffer.
const DefaultCapacity = 1 << 16 // 65536 vertices

// Key identifies one glyph's registered vertex-buffer entry.
type Key struct {
	Codepoint   rune
	Orientation outline.Orientation
}

// DrawInfo is what lookup returns: the GPU resources and index range
// needed to draw one glyph.
type DrawInfo struct {
	VertexBuffer hal.Buffer
	IndexBuffer  hal.Buffer
	IndexOffset  uint32
	IndexCount   uint32
	Width        outline.GlyphWidth
}

// host is one fixed-capacity vertex/index buffer pair.
type host struct {
	vertexBuf hal.Buffer
	indexBuf  hal.Buffer
	vertices  []outline.Vertex
	indices   []uint32
	capacity  int
}

func newHost(device hal.Device, capacity int, label string) (*host, error) {
	vertexBuf, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: label + "_vertex",
		Size:  uint64(capacity) * 16, // Vertex{Position[2]f32, Role[2]f32}
		Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("glyphbuf: create vertex buffer: %w", err)
	}
	indexBuf, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: label + "_index",
		Size:  uint64(capacity) * 3 * 4, // worst case 1 triangle per vertex
		Usage: gputypes.BufferUsageIndex | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("glyphbuf: create index buffer: %w", err)
	}

	h := &host{vertexBuf: vertexBuf, indexBuf: indexBuf, capacity: capacity}
	// Index 0 of every vertex buffer is reserved for the Origin vertex,
	// written at buffer creation.
	h.vertices = append(h.vertices, outline.Vertex{Position: [2]float32{0, 0}, Role: [2]float32{0, 0}})
	return h, nil
}

func (h *host) remaining() int { return h.capacity - len(h.vertices) }

// write appends gv's vertices and indices to the host, biasing every
// non-zero index by (len(h.vertices)-1) so the virtual 1-based numbering
// outline.Convert produces lands at the correct absolute offset; index 0
// always refers to the host's shared Origin vertex and is never rebiased.
func (h *host) write(gv *outline.GlyphVertex) (indexOffset, indexCount uint32) {
	bias := uint32(len(h.vertices)) - 1
	h.vertices = append(h.vertices, gv.Vertices...)

	indexOffset = uint32(len(h.indices))
	for _, idx := range gv.Indices {
		if idx == 0 {
			h.indices = append(h.indices, 0)
		} else {
			h.indices = append(h.indices, bias+idx)
		}
	}
	indexCount = uint32(len(h.indices)) - indexOffset
	return
}

// Store is the glyph vertex buffer: an append/lookup contract over
// fixed-capacity host buffers.
type Store struct {
	device   hal.Device
	queue    hal.Queue
	capacity int
	face     outline.Face
	tolerance float64

	hosts   []*host
	entries map[Key]DrawInfo
}

// NewStore creates an empty glyph vertex buffer backed by face for
// outline conversion. capacity is the vertex capacity of each host
// buffer; pass 0 to use DefaultCapacity.
func NewStore(device hal.Device, queue hal.Queue, face outline.Face, capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Store{
		device:    device,
		queue:     queue,
		capacity:  capacity,
		face:      face,
		tolerance: outline.DefaultFlatnessTolerance,
		entries:   make(map[Key]DrawInfo),
	}
}

// Append converts and registers every codepoint in chars not already
// present, for both orientations the face can resolve. It is idempotent:
// a codepoint already registered for an orientation is skipped, so a
// second call with the same chars changes neither the host-buffer count
// nor the index-range map.
func (s *Store) Append(chars []rune) error {
	for _, c := range chars {
		if err := s.appendOne(c, outline.Horizontal); err != nil {
			return err
		}
		// Vertical registration is best-effort: most codepoints have no
		// distinct vertical form, and that is not an error — only the
		// faces that resolve a glyph add an entry.
		_ = s.appendOne(c, outline.Vertical)
	}
	return nil
}

func (s *Store) appendOne(c rune, o outline.Orientation) error {
	key := Key{Codepoint: c, Orientation: o}
	if _, ok := s.entries[key]; ok {
		return nil
	}

	gv, err := outline.Convert(s.face, c, o, s.tolerance)
	if err != nil {
		if o == outline.Vertical {
			return nil // no distinct vertical form: not an error
		}
		var unavailable *outline.ErrGlyphUnavailable
		if errors.As(err, &unavailable) {
			return nil // logged upstream; codepoint skipped in layout
		}
		return err
	}

	h, err := s.hostFor(len(gv.Vertices))
	if err != nil {
		return err
	}
	indexOffset, indexCount := h.write(gv)

	s.queue.WriteBuffer(h.vertexBuf, 0, vertexBytes(h.vertices))
	s.queue.WriteBuffer(h.indexBuf, 0, indexBytes(h.indices))

	s.entries[key] = DrawInfo{
		VertexBuffer: h.vertexBuf,
		IndexBuffer:  h.indexBuf,
		IndexOffset:  indexOffset,
		IndexCount:   indexCount,
		Width:        gv.Width,
	}
	return nil
}

// hostFor returns a host with room for `needed` more vertices, scanning
// existing hosts first (first-fit) and creating a new one only if none fit.
func (s *Store) hostFor(needed int) (*host, error) {
	for _, h := range s.hosts {
		if h.remaining() >= needed {
			return h, nil
		}
	}
	capacity := s.capacity
	if needed > capacity {
		capacity = needed + 1
	}
	label := fmt.Sprintf("glyphbuf_host_%d", len(s.hosts))
	gg.Logger().Debug("glyphbuf: allocating host buffer", "label", label, "capacity", capacity)
	h, err := newHost(s.device, capacity, label)
	if err != nil {
		gg.Logger().Warn("glyphbuf: host buffer allocation failed", "label", label, "err", err)
		return nil, err
	}
	s.hosts = append(s.hosts, h)
	return h, nil
}

// Lookup returns the draw info for (c, o), or ok=false if it was never
// registered (or the face has no glyph for it).
func (s *Store) Lookup(c rune, o outline.Orientation) (DrawInfo, bool) {
	info, ok := s.entries[Key{Codepoint: c, Orientation: o}]
	return info, ok
}

// HostCount reports how many host buffers are currently allocated, for
// metrics and tests.
func (s *Store) HostCount() int { return len(s.hosts) }
