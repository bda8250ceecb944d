package layout

import (
	"math"

	"github.com/mitoma/vectortext/outline"
)

// circleLayout arranges models around the circumference of a circle
// whose radius is chosen so the sum of every model's bound (plus
// linearInterval of spacing) along direction equals the circle's
// perimeter, then tilts each model tangentially to face outward.
func circleLayout(models []Model, direction outline.Orientation) {
	switch direction {
	case outline.Horizontal:
		var allWidth float32
		for _, m := range models {
			w, _ := m.Bound()
			allWidth += w + linearInterval
		}
		if allWidth == 0 {
			return
		}
		radius := allWidth / (2 * math.Pi)

		var xPosition float32
		for _, model := range models {
			w, h := model.Bound()
			xPosition += w / 2
			r := (xPosition / allWidth) * 2 * math.Pi
			sinR, cosR := float32(math.Sin(float64(r))), float32(math.Cos(float64(r)))
			model.SetPosition(Vec3{
				X: sinR * radius,
				Y: -h / 2,
				Z: -(cosR - 1) * radius,
			})
			xPosition += w/2 + linearInterval

			degrees := float32(-r * 180 / math.Pi)
			model.SetRotation(QuatFromAxisAngleY(degrees))
		}
	case outline.Vertical:
		var allHeight float32
		for _, m := range models {
			_, h := m.Bound()
			allHeight += h + linearInterval
		}
		if allHeight == 0 {
			return
		}
		radius := allHeight / (2 * math.Pi)

		var yPosition float32
		for _, model := range models {
			w, h := model.Bound()
			yPosition += h / 2
			r := (yPosition / allHeight) * 2 * math.Pi
			sinR, cosR := float32(math.Sin(float64(r))), float32(math.Cos(float64(r)))
			model.SetPosition(Vec3{
				X: -w / 2,
				Y: -sinR * radius,
				Z: -(cosR + 1) * radius,
			})
			yPosition += h/2 + linearInterval

			degrees := float32(-r * 180 / math.Pi)
			model.SetRotation(QuatFromAxisAngleX(degrees))
		}
	}
}

// WorldLayout selects the placement algorithm ReLayout applies to a
// World's models.
type WorldLayout int

const (
	LayoutLinear WorldLayout = iota
	LayoutCircle
)

// Next cycles to the other layout, for a key binding that toggles
// between them.
func (l WorldLayout) Next() WorldLayout {
	if l == LayoutLinear {
		return LayoutCircle
	}
	return LayoutLinear
}

func layoutModels(models []Model, direction outline.Orientation, layout WorldLayout) {
	switch layout {
	case LayoutLinear:
		linearLayout(models, direction)
	case LayoutCircle:
		circleLayout(models, direction)
	}
}
