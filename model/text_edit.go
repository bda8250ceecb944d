// Package model provides the concrete, renderable Model implementations
// for the seven editor-surface variants (TextEdit, SelectBox, TextInput,
// PlaneTextReader, Card, SingleLine, ImeInput). All seven share the same
// underlying shape — an editable or read-only text buffer laid out on a
// wrapped grid and driven by per-character GPU motion — so they are built
// as Kind-tagged configurations of one TextEdit struct rather than seven
// separate types, the same tagged-struct idiom layout.ModelOperation and
// instance.Key already use for the rest of this module.
package model

import (
	"time"

	"github.com/gogpu/wgpu/hal"

	"github.com/mitoma/vectortext/instance"
	"github.com/mitoma/vectortext/layout"
	"github.com/mitoma/vectortext/motion"
	"github.com/mitoma/vectortext/outline"
	"github.com/mitoma/vectortext/textedit"
)

// Kind names which editor-surface variant a TextEdit value was
// constructed as. It only changes default configuration and
// read-only-ness; all variants run through the same update/layout path.
type Kind int

const (
	KindTextEdit Kind = iota
	KindSingleLine
	KindPlaneTextReader
	KindCard
	KindTextInput
	KindSelectBox
	KindImeInput
)

// Config bundles the tunables a TextEdit model's layout and instance
// wiring reads.
type Config struct {
	MaxCol                   int
	ColInterval, RowInterval float32
	Color                    [3]float32
	Easings                  motion.CharEasings
}

// DefaultConfig returns a reasonable default: an 80-column wrap, unit
// column spacing with 1.4 row spacing, opaque white glyphs, and
// motion.DefaultCharEasings.
func DefaultConfig() Config {
	return Config{
		MaxCol:      80,
		ColInterval: 1.0,
		RowInterval: 1.4,
		Color:       [3]float32{1, 1, 1},
		Easings:     motion.DefaultCharEasings(),
	}
}

type dustEntry struct {
	key      instance.Key
	removeAt uint32
}

// TextEdit is the reference layout.Model implementation: an Editor whose
// buffer is wrapped to Config.MaxCol columns, with one glyph instance per
// character, retargeted through motion.CharEasings on every ChangeEvent.
type TextEdit struct {
	layout.ModelAttributes

	kind     Kind
	readOnly bool
	cfg      Config
	wrapper  textedit.LineWrapper
	editor   *textedit.Editor

	direction   outline.Orientation
	minBound    bool
	psychedelic bool
	border      layout.ModelBorder
	mode        layout.ModelMode

	glyphs *instance.Store
	dust   []dustEntry

	now    uint32
	primed bool
	boundW *motion.Point
	boundH *motion.Point
}

// New constructs a TextEdit model of the given kind. A glyph instance
// store is allocated on device immediately, mirroring the eager one-unit
// buffer allocation instance.Store performs on construction.
func New(device hal.Device, kind Kind, cfg Config) (*TextEdit, error) {
	glyphs, err := instance.NewStore("text_edit_glyphs", device)
	if err != nil {
		return nil, err
	}
	readOnly := kind == KindPlaneTextReader || kind == KindCard || kind == KindSelectBox
	if kind == KindSingleLine || kind == KindTextInput || kind == KindImeInput {
		cfg.MaxCol = 0
	}
	t := &TextEdit{
		kind:      kind,
		readOnly:  readOnly,
		cfg:       cfg,
		wrapper:   textedit.NewLineWrapper(cfg.MaxCol),
		direction: outline.Horizontal,
		glyphs:    glyphs,
		boundW:    motion.NewPoint(0),
		boundH:    motion.NewPoint(0),
	}
	t.editor = textedit.NewEditor(t.onChangeEvent)
	t.recompute()
	// recompute's first call targets a zero-duration ease (t.primed was
	// false); force it to settle immediately rather than waiting for the
	// first Update.
	t.boundW.Update(0)
	t.boundH.Update(0)
	return t, nil
}

// NewTextEdit constructs the plain editable multi-line variant.
func NewTextEdit(device hal.Device, cfg Config) (*TextEdit, error) {
	return New(device, KindTextEdit, cfg)
}

// NewSingleLine constructs a one-row input that never wraps (InsertEnter
// is still accepted by the underlying Editor; a key binder is expected to
// map Enter to a Noop/submit action for this variant instead).
func NewSingleLine(device hal.Device, cfg Config) (*TextEdit, error) {
	return New(device, KindSingleLine, cfg)
}

// NewPlaneTextReader constructs a read-only wrapped text display.
func NewPlaneTextReader(device hal.Device, cfg Config) (*TextEdit, error) {
	return New(device, KindPlaneTextReader, cfg)
}

// NewCard constructs a read-only, bordered single block of text.
func NewCard(device hal.Device, cfg Config) (*TextEdit, error) {
	m, err := New(device, KindCard, cfg)
	if err != nil {
		return nil, err
	}
	m.border = layout.BorderRounded
	return m, nil
}

// NewTextInput constructs a single-line editable field, the same shape as
// SingleLine but distinguished for callers that key off Kind.
func NewTextInput(device hal.Device, cfg Config) (*TextEdit, error) {
	return New(device, KindTextInput, cfg)
}

// NewSelectBox constructs a read-only, modal-friendly list surface; callers
// push it via World.AddModal and populate it with a fixed string.
func NewSelectBox(device hal.Device, cfg Config) (*TextEdit, error) {
	m, err := New(device, KindSelectBox, cfg)
	if err != nil {
		return nil, err
	}
	m.mode = layout.Modal
	return m, nil
}

// NewImeInput constructs the transient single-line composition buffer an
// IME preedit surface uses.
func NewImeInput(device hal.Device, cfg Config) (*TextEdit, error) {
	return New(device, KindImeInput, cfg)
}

// Kind reports which sealed Model variant this value was constructed as.
func (t *TextEdit) Kind() Kind { return t.kind }

// onChangeEvent is the textedit.Editor emit callback: it keeps t.glyphs in
// sync with the buffer one character at a time and assigns the motion
// word configured for that kind of change (add/move/remove/select).
// Positions are not set here (a single char's wrap position can shift
// every other character on its line); recompute, called after every
// EditorOperation, re-derives every instance's Position in one pass.
func (t *TextEdit) onChangeEvent(ev textedit.ChangeEvent) {
	switch ev.Kind {
	case textedit.ChangeAddChar:
		key := instance.PositionKey(ev.Char.Row, ev.Char.Col)
		a := instance.DefaultAttributes(t.cfg.Color)
		a.Motion = t.cfg.Easings.Add.Flags
		a.Duration = t.cfg.Easings.Add.Duration
		a.Gain = t.cfg.Easings.Add.Gain
		a.StartTime = t.now
		t.glyphs.Insert(key, a)

	case textedit.ChangeRemoveChar:
		key := instance.PositionKey(ev.Char.Row, ev.Char.Col)
		a, ok := t.glyphs.Remove(key)
		if !ok {
			return
		}
		a.Motion = t.cfg.Easings.Remove.Flags
		a.Duration = t.cfg.Easings.Remove.Duration
		a.Gain = t.cfg.Easings.Remove.Gain
		a.StartTime = t.now
		preKey := instance.PreRemovePositionKey(ev.Char.Row, ev.Char.Col)
		t.glyphs.Insert(preKey, a)
		t.dust = append(t.dust, dustEntry{key: preKey, removeAt: t.now + uint32(t.cfg.Easings.Remove.Duration/time.Millisecond)})

	case textedit.ChangeMoveChar:
		oldKey := instance.PositionKey(ev.From.Row, ev.From.Col)
		newKey := instance.PositionKey(ev.To.Row, ev.To.Col)
		a, ok := t.glyphs.Remove(oldKey)
		if !ok {
			return
		}
		a.Motion = t.cfg.Easings.Move.Flags
		a.Duration = t.cfg.Easings.Move.Duration
		a.Gain = t.cfg.Easings.Move.Gain
		a.StartTime = t.now
		t.glyphs.Insert(newKey, a)

	case textedit.ChangeSelectChar:
		key := instance.PositionKey(ev.Char.Row, ev.Char.Col)
		t.glyphs.Mutate(key, func(a *instance.Attributes) {
			a.Motion = t.cfg.Easings.Select.Flags
			a.Duration = t.cfg.Easings.Select.Duration
			a.Gain = t.cfg.Easings.Select.Gain
			a.StartTime = t.now
		})

	case textedit.ChangeUnSelectChar:
		key := instance.PositionKey(ev.Char.Row, ev.Char.Col)
		t.glyphs.Mutate(key, func(a *instance.Attributes) {
			a.Motion = t.cfg.Easings.Unselect.Flags
			a.Duration = t.cfg.Easings.Unselect.Duration
			a.Gain = t.cfg.Easings.Unselect.Gain
			a.StartTime = t.now
		})

	case textedit.ChangeAddCaret, textedit.ChangeMoveCaret, textedit.ChangeRemoveCaret:
		// Caret rendering would need its own instance.Store keyed by
		// caret identity; out of scope for the glyph store this model
		// owns, left for a dedicated caret-overlay model.
	}
}

// recompute re-derives every glyph's wrapped grid position and the
// model's bound, retargeting the bound's eased Points toward the new
// values rather than snapping.
func (t *TextEdit) recompute() {
	buf := t.editor.Buffer
	positions := t.wrapper.Layout(buf)
	w, h := textedit.Bound(positions, buf, t.cfg.ColInterval, t.cfg.RowInterval, t.direction, t.minBound)

	for li := range buf.Lines {
		line := buf.Lines[li]
		for ci := 0; ci < len(line.chars); ci++ {
			key := instance.PositionKey(li, ci)
			x, y := textedit.AdjustedPosition(positions[li][ci], textedit.WidthOf(line.chars[ci].Char), t.cfg.ColInterval, t.cfg.RowInterval, t.direction, w)
			t.glyphs.Mutate(key, func(a *instance.Attributes) {
				a.Position = instance.Vec3{X: x, Y: y, Z: 0}
			})
		}
	}

	dur := t.cfg.Easings.PositionDuration
	if !t.primed {
		dur = 0
		t.primed = true
	}
	t.boundW.SetTarget(float64(w), dur, motion.EasingQuad)
	t.boundH.SetTarget(float64(h), dur, motion.EasingQuad)
}

// SetPosition/Position/SetRotation/Rotation come from the embedded
// layout.ModelAttributes.

// FocusPosition returns the point the camera should track, which for a
// TextEdit is simply its placement anchor.
func (t *TextEdit) FocusPosition() layout.Vec3 { return t.Position() }

// Bound returns the model's current (eased) (width, height).
func (t *TextEdit) Bound() (float32, float32) {
	return float32(t.boundW.Current()), float32(t.boundH.Current())
}

// GlyphInstances returns this model's single glyph store.
func (t *TextEdit) GlyphInstances() []*instance.Store { return []*instance.Store{t.glyphs} }

// VectorInstances returns nil: text models draw only glyph instances, not
// the vector icon/shape instances a Card's decorative border (if any)
// would use — border rendering is a renderer-side concern keyed off
// Border(), not an instance this model owns.
func (t *TextEdit) VectorInstances() []*instance.Store { return nil }

// Update advances the bound's eased Points and prunes any dustbox entries
// whose remove animation has finished.
func (t *TextEdit) Update(ctx *layout.Context) {
	var dt time.Duration
	if t.now != 0 && ctx.NowMillis >= t.now {
		dt = time.Duration(ctx.NowMillis-t.now) * time.Millisecond
	}
	t.now = ctx.NowMillis

	t.boundW.Update(dt)
	t.boundH.Update(dt)

	kept := t.dust[:0]
	for _, d := range t.dust {
		if t.now >= d.removeAt {
			t.glyphs.Remove(d.key)
		} else {
			kept = append(kept, d)
		}
	}
	t.dust = kept
}

// isMutatingOp reports whether k changes buffer contents; a read-only
// model (PlaneTextReader, Card, SelectBox) ignores these but still allows
// caret motion, mark, and copy.
func isMutatingOp(k textedit.EditOperationKind) bool {
	switch k {
	case textedit.OpInsertChar, textedit.OpInsertString, textedit.OpInsertEnter,
		textedit.OpBackspace, textedit.OpBackspaceWord, textedit.OpDelete, textedit.OpDeleteWord,
		textedit.OpCut, textedit.OpPaste, textedit.OpUndo:
		return true
	default:
		return false
	}
}

// EditorOperation forwards op to the underlying Editor, ignoring mutating
// operations on a read-only model, then re-derives layout.
func (t *TextEdit) EditorOperation(op textedit.EditOperation) {
	if t.readOnly && isMutatingOp(op.Kind) {
		return
	}
	t.editor.Apply(op)
	t.recompute()
}

// ModelOperation applies one of the per-model rendering tweaks (direction,
// intervals, scale, border, max column, bound policy, selection/copy),
// reporting whether a World-level ReLayout is required.
func (t *TextEdit) ModelOperation(op layout.ModelOperation) layout.ModelOperationResult {
	const intervalStep = 0.1
	const scaleStep = 0.05

	switch op.Kind {
	case layout.ChangeDirection:
		dir := t.direction
		if op.HasDirection {
			dir = op.Direction
		} else if t.direction == outline.Horizontal {
			dir = outline.Vertical
		} else {
			dir = outline.Horizontal
		}
		if dir == t.direction {
			return layout.NoCare
		}
		t.direction = dir
		t.recompute()
		return layout.RequireReLayout

	case layout.IncreaseRowInterval:
		t.cfg.RowInterval += intervalStep
		t.recompute()
		return layout.RequireReLayout
	case layout.DecreaseRowInterval:
		if t.cfg.RowInterval > intervalStep {
			t.cfg.RowInterval -= intervalStep
		}
		t.recompute()
		return layout.RequireReLayout
	case layout.IncreaseColInterval:
		t.cfg.ColInterval += intervalStep
		t.recompute()
		return layout.RequireReLayout
	case layout.DecreaseColInterval:
		if t.cfg.ColInterval > intervalStep {
			t.cfg.ColInterval -= intervalStep
		}
		t.recompute()
		return layout.RequireReLayout

	case layout.IncreaseRowScale:
		t.ModelAttributes.WorldScale[1] += scaleStep
		return layout.NoCare
	case layout.DecreaseRowScale:
		if t.ModelAttributes.WorldScale[1] > scaleStep {
			t.ModelAttributes.WorldScale[1] -= scaleStep
		}
		return layout.NoCare
	case layout.IncreaseColScale:
		t.ModelAttributes.WorldScale[0] += scaleStep
		return layout.NoCare
	case layout.DecreaseColScale:
		if t.ModelAttributes.WorldScale[0] > scaleStep {
			t.ModelAttributes.WorldScale[0] -= scaleStep
		}
		return layout.NoCare

	case layout.ToggleMinBound:
		t.minBound = !t.minBound
		t.recompute()
		return layout.RequireReLayout

	case layout.CopyDisplayString:
		if op.CopySink != nil {
			op.CopySink(t.editor.String())
		}
		return layout.NoCare

	case layout.TogglePsychedelic:
		t.psychedelic = !t.psychedelic
		return layout.NoCare

	case layout.MoveToClick:
		t.editor.Apply(textedit.EditOperation{Kind: textedit.OpMoveTo, Caret: t.caretNear(op.ClickXRatio, op.ClickYRatio)})
		return layout.NoCare

	case layout.MarkAndClick:
		t.editor.Apply(textedit.EditOperation{Kind: textedit.OpMark})
		t.editor.Apply(textedit.EditOperation{Kind: textedit.OpMoveTo, Caret: t.caretNear(op.ClickXRatio, op.ClickYRatio)})
		return layout.NoCare

	case layout.SetModelBorder:
		t.border = op.Border
		return layout.NoCare

	case layout.SetMaxCol:
		t.cfg.MaxCol = op.MaxCol
		t.wrapper = textedit.NewLineWrapper(t.cfg.MaxCol)
		t.recompute()
		return layout.RequireReLayout
	case layout.IncreaseMaxCol:
		t.cfg.MaxCol++
		t.wrapper = textedit.NewLineWrapper(t.cfg.MaxCol)
		t.recompute()
		return layout.RequireReLayout
	case layout.DecreaseMaxCol:
		if t.cfg.MaxCol > 0 {
			t.cfg.MaxCol--
		}
		t.wrapper = textedit.NewLineWrapper(t.cfg.MaxCol)
		t.recompute()
		return layout.RequireReLayout
	}
	return layout.NoCare
}

// caretNear finds the buffer position visually closest to a click given in
// the model's local [-1, 1] normalized coordinates, scaled by the current
// bound — an approximation of the exact inverse-projection a renderer
// with full camera/viewport context would perform.
func (t *TextEdit) caretNear(xRatio, yRatio float32) textedit.Caret {
	w, h := t.Bound()
	localX := xRatio * w / 2
	localY := yRatio * h / 2

	buf := t.editor.Buffer
	positions := t.wrapper.Layout(buf)

	best := textedit.NewCaret(0, 0)
	bestDist := float32(-1)
	for li := range buf.Lines {
		line := buf.Lines[li]
		for ci := 0; ci < len(line.chars); ci++ {
			x, y := textedit.AdjustedPosition(positions[li][ci], textedit.WidthOf(line.chars[ci].Char), t.cfg.ColInterval, t.cfg.RowInterval, t.direction, w)
			dx, dy := x-localX, y-localY
			dist := dx*dx + dy*dy
			if bestDist < 0 || dist < bestDist {
				bestDist = dist
				best = textedit.NewCaret(li, ci)
			}
		}
	}
	return best
}

// String returns the buffer's full text.
func (t *TextEdit) String() string { return t.editor.String() }

// ModelMode reports whether this model participates in normal focus
// rotation (Normal) or sits on the modal stack (Modal) — SelectBox starts
// Modal; every other variant starts Normal.
func (t *TextEdit) ModelMode() layout.ModelMode { return t.mode }

// InAnimation reports whether any eased channel or dustbox entry is still
// in flight.
func (t *TextEdit) InAnimation() bool {
	return t.boundW.InAnimation() || t.boundH.InAnimation() || len(t.dust) > 0
}

// SetBorder sets the decorative border a renderer draws around this
// model's bound.
func (t *TextEdit) SetBorder(border layout.ModelBorder) { t.border = border }

// Border returns the currently configured border.
func (t *TextEdit) Border() layout.ModelBorder { return t.border }
