package layout

import (
	"github.com/mitoma/vectortext/instance"
	"github.com/mitoma/vectortext/textedit"
)

// fakeModel is a minimal Model double for exercising World/DefaultWorld
// without any real renderable content.
type fakeModel struct {
	ModelAttributes
	width, height float32
	mode          ModelMode
	border        ModelBorder
	text          string
	animating     bool
	lastOp        *ModelOperation
	lastEdit      *textedit.EditOperation
}

func newFakeModel(text string, width, height float32) *fakeModel {
	return &fakeModel{text: text, width: width, height: height}
}

func (m *fakeModel) FocusPosition() Vec3 { return m.Position() }
func (m *fakeModel) Bound() (float32, float32) { return m.width, m.height }
func (m *fakeModel) GlyphInstances() []*instance.Store  { return nil }
func (m *fakeModel) VectorInstances() []*instance.Store { return nil }
func (m *fakeModel) Update(ctx *Context)                {}
func (m *fakeModel) EditorOperation(op textedit.EditOperation) { m.lastEdit = &op }
func (m *fakeModel) ModelOperation(op ModelOperation) ModelOperationResult {
	m.lastOp = &op
	return NoCare
}
func (m *fakeModel) String() string         { return m.text }
func (m *fakeModel) ModelMode() ModelMode   { return m.mode }
func (m *fakeModel) InAnimation() bool      { return m.animating }
func (m *fakeModel) SetBorder(b ModelBorder) { m.border = b }
func (m *fakeModel) Border() ModelBorder    { return m.border }
