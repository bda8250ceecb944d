//go:build !nogpu

package model

import (
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitoma/vectortext/layout"
	"github.com/mitoma/vectortext/outline"
	"github.com/mitoma/vectortext/textedit"
)

func createNoopDevice(t *testing.T) (hal.Device, func()) {
	t.Helper()
	api := noop.API{}
	inst, err := api.CreateInstance(nil)
	require.NoError(t, err)
	adapters := inst.EnumerateAdapters(nil)
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		inst.Destroy()
		t.Fatalf("Open failed: %v", err)
	}
	cleanup := func() {
		openDev.Device.Destroy()
		inst.Destroy()
	}
	return openDev.Device, cleanup
}

func TestTextEditSatisfiesModelInterface(t *testing.T) {
	device, cleanup := createNoopDevice(t)
	defer cleanup()

	m, err := NewTextEdit(device, DefaultConfig())
	require.NoError(t, err)
	var _ layout.Model = m
}

func TestInsertCharCreatesGlyphInstance(t *testing.T) {
	device, cleanup := createNoopDevice(t)
	defer cleanup()

	m, err := NewTextEdit(device, DefaultConfig())
	require.NoError(t, err)

	m.EditorOperation(textedit.EditOperation{Kind: textedit.OpInsertChar, Char: 'a'})
	assert.Equal(t, "a", m.String())
	assert.Equal(t, 1, m.glyphs.Len())
}

func TestBackspaceQueuesDustboxEntry(t *testing.T) {
	device, cleanup := createNoopDevice(t)
	defer cleanup()

	m, err := NewTextEdit(device, DefaultConfig())
	require.NoError(t, err)

	m.EditorOperation(textedit.EditOperation{Kind: textedit.OpInsertChar, Char: 'a'})
	m.EditorOperation(textedit.EditOperation{Kind: textedit.OpBackspace})

	assert.Equal(t, "", m.String())
	assert.True(t, m.InAnimation(), "a just-removed char should still be animating out of the dustbox")
	assert.Len(t, m.dust, 1)
}

func TestReadOnlyModelIgnoresMutatingOps(t *testing.T) {
	device, cleanup := createNoopDevice(t)
	defer cleanup()

	m, err := NewPlaneTextReader(device, DefaultConfig())
	require.NoError(t, err)

	m.EditorOperation(textedit.EditOperation{Kind: textedit.OpInsertChar, Char: 'x'})
	assert.Equal(t, "", m.String())
}

func TestSetMaxColRequiresRelayout(t *testing.T) {
	device, cleanup := createNoopDevice(t)
	defer cleanup()

	m, err := NewTextEdit(device, DefaultConfig())
	require.NoError(t, err)

	result := m.ModelOperation(layout.ModelOperation{Kind: layout.SetMaxCol, MaxCol: 10})
	assert.Equal(t, layout.RequireReLayout, result)
	assert.Equal(t, 10, m.cfg.MaxCol)
}

func TestChangeDirectionTogglesWhenNoDirectionGiven(t *testing.T) {
	device, cleanup := createNoopDevice(t)
	defer cleanup()

	m, err := NewTextEdit(device, DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, outline.Horizontal, m.direction)

	result := m.ModelOperation(layout.ModelOperation{Kind: layout.ChangeDirection})
	assert.Equal(t, layout.RequireReLayout, result)
	assert.Equal(t, outline.Vertical, m.direction)
}

func TestCopyDisplayStringInvokesSink(t *testing.T) {
	device, cleanup := createNoopDevice(t)
	defer cleanup()

	m, err := NewTextEdit(device, DefaultConfig())
	require.NoError(t, err)
	m.EditorOperation(textedit.EditOperation{Kind: textedit.OpInsertString, String: "hi"})

	var got string
	m.ModelOperation(layout.ModelOperation{Kind: layout.CopyDisplayString, CopySink: func(s string) { got = s }})
	assert.Equal(t, "hi", got)
}

func TestBoundGrowsAfterInsertingText(t *testing.T) {
	device, cleanup := createNoopDevice(t)
	defer cleanup()

	m, err := NewTextEdit(device, DefaultConfig())
	require.NoError(t, err)
	w0, _ := m.Bound()

	m.EditorOperation(textedit.EditOperation{Kind: textedit.OpInsertString, String: "hello world"})
	m.Update(&layout.Context{NowMillis: 1000})
	w1, _ := m.Bound()

	assert.GreaterOrEqual(t, w1, w0)
}
