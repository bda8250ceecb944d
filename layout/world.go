package layout

import (
	"github.com/mitoma/vectortext/instance"
	"github.com/mitoma/vectortext/outline"
	"github.com/mitoma/vectortext/textedit"
)

// Context is the per-frame state every Model's Update receives: the
// global text direction and elapsed time a model needs to animate or
// re-flow against.
type Context struct {
	Direction outline.Orientation
	NowMillis uint32
	Window    WindowSize
}

// ModelMode reports whether a Model participates in normal focus
// rotation or sits on the modal stack.
type ModelMode int

const (
	Normal ModelMode = iota
	Modal
)

// ModelBorder selects the decorative border a renderer draws around a
// Model's bound.
type ModelBorder int

const (
	BorderNone ModelBorder = iota
	BorderSquare
	BorderRounded
)

// ModelOperationKind tags the variant carried by a ModelOperation.
type ModelOperationKind int

const (
	ChangeDirection ModelOperationKind = iota
	IncreaseRowInterval
	DecreaseRowInterval
	IncreaseRowScale
	DecreaseRowScale
	IncreaseColInterval
	DecreaseColInterval
	IncreaseColScale
	DecreaseColScale
	ToggleMinBound
	CopyDisplayString
	TogglePsychedelic
	MoveToClick
	MarkAndClick
	SetModelBorder
	SetMaxCol
	IncreaseMaxCol
	DecreaseMaxCol
)

// CharWidthResolver supplies the per-rune display width a CopyDisplayString
// operation needs to reconstruct the text a user sees, without requiring
// this package to depend on the textedit package's concrete resolver.
type CharWidthResolver interface {
	WidthOf(c rune) float32
}

// ModelOperation carries one of the per-model rendering tweaks a key
// binder can issue: direction/interval/scale changes, a psychedelic-mode
// toggle, or a click routed in model-local coordinates.
// Go has no sum types, so unused fields for a given Kind are simply left
// zero, following the same tagged-struct idiom already used for
// instance.Key and motion.Flags.
type ModelOperation struct {
	Kind ModelOperationKind

	HasDirection bool
	Direction    outline.Orientation

	ClickXRatio, ClickYRatio float32
	ViewProjection           Mat4

	WidthResolver CharWidthResolver
	CopySink      func(string)

	Border ModelBorder
	MaxCol int
}

// ModelOperationResult reports back to the World whether the operation
// changed a Model's bound, requiring the world to re-run ReLayout.
type ModelOperationResult int

const (
	NoCare ModelOperationResult = iota
	RequireReLayout
)

// ModelAttributes bundles the placement fields (center, position,
// rotation, world scale) common to most Model implementations, for
// embedders that want a ready-made struct rather than hand rolling the
// bookkeeping.
type ModelAttributes struct {
	Center     [2]float32
	Pos        Vec3
	Rot        Quat
	WorldScale [2]float32
}

// SetPosition implements the position half of the Model interface for an
// embedder.
func (a *ModelAttributes) SetPosition(p Vec3) { a.Pos = p }

// Position implements the position half of the Model interface for an
// embedder.
func (a *ModelAttributes) Position() Vec3 { return a.Pos }

// SetRotation implements the rotation half of the Model interface for an
// embedder.
func (a *ModelAttributes) SetRotation(q Quat) { a.Rot = q }

// Rotation implements the rotation half of the Model interface for an
// embedder.
func (a *ModelAttributes) Rotation() Quat { return a.Rot }

// Model is one placeable, focusable unit of content in a World: a text
// buffer, a selection box, a card, or any other of the closed set of
// variants (TextEdit, SelectBox, TextInput, PlaneTextReader, Card,
// SingleLine, ImeInput). Concrete variants live in other packages and
// satisfy this interface; layout stays agnostic to what's inside.
type Model interface {
	SetPosition(position Vec3)
	Position() Vec3
	// FocusPosition returns the point the camera should look at, which
	// may differ from Position for models whose visual center isn't
	// their placement anchor.
	FocusPosition() Vec3
	SetRotation(rotation Quat)
	Rotation() Quat
	// Bound returns the model's (width, height) in world units.
	Bound() (float32, float32)
	GlyphInstances() []*instance.Store
	VectorInstances() []*instance.Store
	Update(ctx *Context)
	EditorOperation(op textedit.EditOperation)
	ModelOperation(op ModelOperation) ModelOperationResult
	String() string
	ModelMode() ModelMode
	InAnimation() bool
	SetBorder(border ModelBorder)
	Border() ModelBorder
}

// World is the focus/camera/layout orchestrator every renderable surface
// is built around: an ordered list of Models, a modal stack that
// intercepts focus while non-empty, and a camera that tracks whichever
// Model (or modal) currently has focus.
type World interface {
	Add(model Model)
	AddNext(model Model)
	AddModal(model Model)
	RemoveCurrent()

	ReLayout()
	Update(ctx *Context)

	ModelLength() int
	LookAt(modelIndex int, adjustment CameraAdjustment)
	LookCurrent(adjustment CameraAdjustment)
	LookNext(adjustment CameraAdjustment)
	LookPrev(adjustment CameraAdjustment)
	SwapNext()
	SwapPrev()

	Camera() Camera
	CameraOperation(op CameraOperation)
	ChangeWindowSize(windowSize WindowSize)

	ChangeLayout(layout WorldLayout)
	Layout() WorldLayout

	GlyphInstances() []*instance.Store
	VectorInstances() []*instance.Store

	EditorOperation(op textedit.EditOperation)
	ModelOperation(op ModelOperation)

	CurrentString() string
	Strings() []string
	Chars() map[rune]struct{}

	CurrentModelMode() (ModelMode, bool)
	MoveToPosition(xRatio, yRatio float32)
}

const surroundingWindow = 5

// DefaultWorld is the reference World implementation.
type DefaultWorld struct {
	camera           Camera
	cameraController *CameraController
	models           []Model
	removedModels    []Model
	modalStack       []Model
	focus            int
	worldUpdated     bool
	direction        outline.Orientation
	layout           WorldLayout
}

// NewDefaultWorld creates an empty world sized for windowSize, laid out
// horizontally with the Linear layout, matching DefaultWorld::new.
func NewDefaultWorld(windowSize WindowSize) *DefaultWorld {
	return &DefaultWorld{
		camera:           BasicCamera(windowSize),
		cameraController: NewCameraController(5.0),
		direction:        outline.Horizontal,
		layout:           LayoutLinear,
		worldUpdated:     true,
	}
}

func (w *DefaultWorld) Add(model Model) {
	w.models = append(w.models, model)
	w.worldUpdated = true
}

func (w *DefaultWorld) AddNext(model Model) {
	idx := w.focus + 1
	if idx > len(w.models) {
		idx = len(w.models)
	}
	w.models = append(w.models, nil)
	copy(w.models[idx+1:], w.models[idx:])
	w.models[idx] = model
	w.worldUpdated = true
}

// AddModal pushes model onto the modal stack. While the stack is
// non-empty, editor/model operations, string queries, and focus
// navigation all target the topmost modal instead of the focused
// ordinary model.
func (w *DefaultWorld) AddModal(model Model) {
	w.modalStack = append(w.modalStack, model)
	w.worldUpdated = true
}

func (w *DefaultWorld) currentFocusModel() Model {
	if n := len(w.modalStack); n > 0 {
		return w.modalStack[n-1]
	}
	if w.focus < 0 || w.focus >= len(w.models) {
		return nil
	}
	return w.models[w.focus]
}

func (w *DefaultWorld) RemoveCurrent() {
	w.worldUpdated = true
	if n := len(w.modalStack); n > 0 {
		removed := w.modalStack[n-1]
		w.modalStack = w.modalStack[:n-1]
		pos := removed.Position()
		removed.SetPosition(Vec3{X: pos.X, Y: pos.Y - 5, Z: pos.Z})
		w.removedModels = append(w.removedModels, removed)
		return
	}
	if w.focus < 0 || w.focus >= len(w.models) {
		return
	}
	removed := w.models[w.focus]
	w.models = append(w.models[:w.focus], w.models[w.focus+1:]...)
	pos := removed.Position()
	removed.SetPosition(Vec3{X: pos.X, Y: pos.Y - 5, Z: pos.Z})
	w.removedModels = append(w.removedModels, removed)
}

func (w *DefaultWorld) ReLayout() {
	layoutModels(w.models, w.direction, w.layout)
}

func (w *DefaultWorld) getSurroundingModelRange() (int, int) {
	min := w.focus - surroundingWindow
	if min < 0 {
		min = 0
	}
	max := w.focus + surroundingWindow
	if max > len(w.models) {
		max = len(w.models)
	}
	return min, max
}

func (w *DefaultWorld) Update(ctx *Context) {
	if w.direction != ctx.Direction {
		w.direction = ctx.Direction
		dir := w.direction
		for _, m := range w.models {
			m.ModelOperation(ModelOperation{Kind: ChangeDirection, HasDirection: true, Direction: dir})
		}
		w.worldUpdated = true
	}

	lo, hi := 0, len(w.models)
	if !w.worldUpdated {
		lo, hi = w.getSurroundingModelRange()
	}
	for _, m := range w.models[lo:hi] {
		m.Update(ctx)
	}
	for _, m := range w.modalStack {
		m.Update(ctx)
	}
	for _, m := range w.removedModels {
		m.Update(ctx)
	}

	kept := w.removedModels[:0]
	for _, m := range w.removedModels {
		if m.InAnimation() {
			kept = append(kept, m)
		}
	}
	w.removedModels = kept

	if w.worldUpdated {
		w.ReLayout()
		w.LookCurrent(NoCare)
		w.worldUpdated = false
	}
}

func (w *DefaultWorld) ModelLength() int { return len(w.models) }

func (w *DefaultWorld) LookAt(modelIndex int, adjustment CameraAdjustment) {
	if modelIndex < 0 || modelIndex >= len(w.models) {
		return
	}
	w.focus = modelIndex
	w.cameraController.LookAt(&w.camera, w.models[modelIndex], adjustment)
	w.cameraController.UpdateCamera(&w.camera)
}

func (w *DefaultWorld) LookCurrent(adjustment CameraAdjustment) { w.LookAt(w.focus, adjustment) }

func (w *DefaultWorld) LookNext(adjustment CameraAdjustment) {
	if w.ModelLength() == 0 {
		return
	}
	if mode, ok := w.CurrentModelMode(); ok && mode == Modal {
		w.LookCurrent(adjustment)
		return
	}
	w.LookAt((w.focus+1)%w.ModelLength(), adjustment)
}

func (w *DefaultWorld) LookPrev(adjustment CameraAdjustment) {
	if w.ModelLength() == 0 {
		return
	}
	if mode, ok := w.CurrentModelMode(); ok && mode == Modal {
		w.LookCurrent(adjustment)
		return
	}
	prev := w.focus - 1
	if prev < 0 {
		prev = w.ModelLength() - 1
	}
	w.LookAt(prev, adjustment)
}

func (w *DefaultWorld) SwapNext() {
	w.worldUpdated = true
	if w.focus+1 >= w.ModelLength() {
		return
	}
	w.models[w.focus], w.models[w.focus+1] = w.models[w.focus+1], w.models[w.focus]
	w.LookAt(w.focus+1, NoCare)
}

func (w *DefaultWorld) SwapPrev() {
	w.worldUpdated = true
	if w.focus <= 0 {
		return
	}
	w.models[w.focus], w.models[w.focus-1] = w.models[w.focus-1], w.models[w.focus]
	w.ReLayout()
	w.LookAt(w.focus-1, NoCare)
}

func (w *DefaultWorld) Camera() Camera { return w.camera }

func (w *DefaultWorld) CameraOperation(op CameraOperation) {
	w.cameraController.Process(op)
	w.cameraController.UpdateCamera(&w.camera)
	w.cameraController.ResetState()
}

func (w *DefaultWorld) ChangeWindowSize(windowSize WindowSize) {
	w.cameraController.UpdateCameraAspect(&w.camera, windowSize)
}

func (w *DefaultWorld) ChangeLayout(layout WorldLayout) {
	if w.layout == layout {
		return
	}
	w.layout = layout
	w.worldUpdated = true
}

func (w *DefaultWorld) Layout() WorldLayout { return w.layout }

func (w *DefaultWorld) GlyphInstances() []*instance.Store {
	lo, hi := w.getSurroundingModelRange()
	var out []*instance.Store
	for _, m := range w.models[lo:hi] {
		out = append(out, m.GlyphInstances()...)
	}
	for _, m := range w.modalStack {
		out = append(out, m.GlyphInstances()...)
	}
	for _, m := range w.removedModels {
		out = append(out, m.GlyphInstances()...)
	}
	return out
}

func (w *DefaultWorld) VectorInstances() []*instance.Store {
	lo, hi := w.getSurroundingModelRange()
	var out []*instance.Store
	for _, m := range w.models[lo:hi] {
		out = append(out, m.VectorInstances()...)
	}
	for _, m := range w.modalStack {
		out = append(out, m.VectorInstances()...)
	}
	for _, m := range w.removedModels {
		out = append(out, m.VectorInstances()...)
	}
	return out
}

func (w *DefaultWorld) EditorOperation(op textedit.EditOperation) {
	w.worldUpdated = true
	if m := w.currentFocusModel(); m != nil {
		m.EditorOperation(op)
	}
}

func (w *DefaultWorld) ModelOperation(op ModelOperation) {
	m := w.currentFocusModel()
	if m == nil {
		return
	}
	if m.ModelOperation(op) == RequireReLayout {
		w.worldUpdated = true
	}
}

func (w *DefaultWorld) CurrentString() string {
	if m := w.currentFocusModel(); m != nil {
		return m.String()
	}
	return ""
}

func (w *DefaultWorld) Chars() map[rune]struct{} {
	out := make(map[rune]struct{})
	for _, m := range w.models {
		for _, r := range m.String() {
			out[r] = struct{}{}
		}
	}
	return out
}

func (w *DefaultWorld) Strings() []string {
	out := make([]string, 0, len(w.models))
	for _, m := range w.models {
		if m.ModelMode() == Modal {
			continue
		}
		out = append(out, m.String())
	}
	return out
}

func (w *DefaultWorld) CurrentModelMode() (ModelMode, bool) {
	if n := len(w.modalStack); n > 0 {
		return Modal, true
	}
	if w.focus < 0 || w.focus >= len(w.models) {
		return Normal, false
	}
	return w.models[w.focus].ModelMode(), true
}

func (w *DefaultWorld) MoveToPosition(xRatio, yRatio float32) {
	if len(w.models) == 0 {
		return
	}
	viewProj := w.camera.BuildViewProjectionMatrix()

	bestIdx := -1
	var bestDist float32
	for idx, m := range w.models {
		pos := m.Position()
		rot := m.Rotation().toMat4()
		model := translationMat4(pos).mul(rot)
		clip := viewProj.mul(model)
		wv := clip[15]
		if wv == 0 {
			wv = 1
		}
		ndcX := clip[12] / wv
		ndcY := clip[13] / wv
		dx := xRatio - ndcX
		dy := yRatio - ndcY
		dist := dx*dx + dy*dy
		if bestIdx == -1 || dist < bestDist {
			bestIdx, bestDist = idx, dist
		}
	}
	if bestIdx == -1 {
		return
	}
	if bestIdx != w.focus {
		w.LookAt(bestIdx, NoCare)
		return
	}
	w.ModelOperation(ModelOperation{
		Kind:           MoveToClick,
		ClickXRatio:    xRatio,
		ClickYRatio:    yRatio,
		ViewProjection: viewProj,
	})
}

func translationMat4(p Vec3) Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		p.X, p.Y, p.Z, 1,
	}
}
