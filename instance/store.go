// Package instance implements the per-codepoint instance store: a keyed
// collection of draw instances backed by a GPU buffer that grows in
// fixed-size units and is never shrunk.
package instance

import (
	"fmt"
	"sort"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	gg "github.com/mitoma/vectortext"
)

// BufferUnit is the fixed growth unit a Store's backing buffer is sized
// in multiples of: small enough that common runs of a frequent glyph
// (Latin letters, hiragana) don't force frequent buffer recreation,
// large enough that a rare glyph (most kanji) doesn't waste much GPU
// memory.
const BufferUnit = 256

// Store is one codepoint(+orientation)'s collection of draw instances.
type Store struct {
	name   string
	device hal.Device

	values       map[Key]Attributes
	monotonicKey uint64

	bufferUnits uint64
	buffer      hal.Buffer
	dirty       bool
}

// NewStore creates an empty store with a one-unit backing buffer.
func NewStore(name string, device hal.Device) (*Store, error) {
	s := &Store{name: name, device: device, values: make(map[Key]Attributes)}
	if err := s.resize(1); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) Len() int      { return len(s.values) }
func (s *Store) IsEmpty() bool { return len(s.values) == 0 }

// First returns an arbitrary instance (the lowest-ordered key), useful
// for callers that just need "any" representative attributes (e.g. to
// clone a template).
func (s *Store) First() (Attributes, bool) {
	keys := s.sortedKeys()
	if len(keys) == 0 {
		return Attributes{}, false
	}
	return s.values[keys[0]], true
}

// Get returns the attributes stored at key.
func (s *Store) Get(key Key) (Attributes, bool) {
	a, ok := s.values[key]
	return a, ok
}

// Mutate looks up key, applies fn to a copy of its attributes, and writes
// the result back, marking the store dirty. It stands in for Rust's
// get_mut(&mut self, key) -> Option<&mut InstanceAttributes>, which Go's
// value-oriented map semantics can't express directly.
func (s *Store) Mutate(key Key, fn func(*Attributes)) bool {
	a, ok := s.values[key]
	if !ok {
		return false
	}
	fn(&a)
	s.values[key] = a
	s.dirty = true
	return true
}

// Push appends instance under a fresh Monotonic key and returns it.
func (s *Store) Push(a Attributes) Key {
	key := MonotonicKey(s.monotonicKey)
	s.monotonicKey++
	s.values[key] = a
	s.dirty = true
	return key
}

// Insert stores instance at an explicit key, overwriting any prior value.
func (s *Store) Insert(key Key, a Attributes) {
	s.values[key] = a
	s.dirty = true
}

// Remove deletes key's instance, if present.
func (s *Store) Remove(key Key) (Attributes, bool) {
	a, ok := s.values[key]
	if ok {
		delete(s.values, key)
		s.dirty = true
	}
	return a, ok
}

// Clear empties the store and resets monotonic key allocation.
func (s *Store) Clear() {
	s.values = make(map[Key]Attributes)
	s.monotonicKey = 0
	s.dirty = true
}

func (s *Store) sortedKeys() []Key {
	keys := make([]Key, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].less(keys[j]) })
	return keys
}

// Update re-uploads the instance buffer if any mutation happened since
// the last call, growing the backing buffer (in BufferUnit-sized steps,
// never shrinking) first if the logical count now exceeds capacity.
// Mirrors update_buffer's dirty-flag/grow-then-write sequence.
func (s *Store) Update(queue hal.Queue) error {
	if !s.dirty {
		return nil
	}
	neededUnits := (uint64(len(s.values)) + BufferUnit - 1) / BufferUnit
	if neededUnits > s.bufferUnits {
		gg.Logger().Debug("instance: growing buffer", "name", s.name, "from_units", s.bufferUnits, "to_units", neededUnits)
		if err := s.resize(neededUnits); err != nil {
			gg.Logger().Warn("instance: grow buffer failed", "name", s.name, "err", err)
			return fmt.Errorf("instance: grow buffer %q: %w", s.name, err)
		}
	}

	keys := s.sortedKeys()
	data := make([]byte, 0, len(keys)*RawSize)
	for _, k := range keys {
		data = append(data, raw(s.values[k])...)
	}
	queue.WriteBuffer(s.buffer, 0, data)
	s.dirty = false
	return nil
}

func (s *Store) resize(units uint64) error {
	if s.buffer != nil {
		s.device.DestroyBuffer(s.buffer)
	}
	buf, err := s.device.CreateBuffer(&hal.BufferDescriptor{
		Label: fmt.Sprintf("instances_%s", s.name),
		Size:  uint64(RawSize) * units * BufferUnit,
		Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return err
	}
	s.buffer = buf
	s.bufferUnits = units
	return nil
}

// Buffer returns the current backing GPU buffer, valid until the next
// Update that triggers a grow.
func (s *Store) Buffer() hal.Buffer { return s.buffer }
