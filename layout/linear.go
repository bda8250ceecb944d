package layout

import "github.com/mitoma/vectortext/outline"

// linearInterval is the world-space gap placed between consecutive
// models, regardless of layout kind.
const linearInterval float32 = 5.0

// linearLayout places models one after another along direction, each
// centered on the running cursor offset by half its own bound plus half
// its neighbor's, and resets every model's rotation to identity.
func linearLayout(models []Model, direction outline.Orientation) {
	var position float32
	for _, model := range models {
		w, h := model.Bound()
		model.SetRotation(QuatIdentity())

		switch direction {
		case outline.Horizontal:
			position += w / 2
			model.SetPosition(Vec3{X: position, Y: -h / 2, Z: 0})
			position += w/2 + linearInterval
		case outline.Vertical:
			position -= h / 2
			model.SetPosition(Vec3{X: -w / 2, Y: position, Z: 0})
			position -= h/2 + linearInterval
		}
	}
}
