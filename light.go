package umbra

import "math"

// MaxRadius is the side length of one shadow buffer cell. The shadow buffer
// is tiled into MaxRadius x MaxRadius cells, each holding up to four lights.
const MaxRadius = 320

// MaxLightRadius is the largest radius a light may use. Its expanded
// bounding square (2*radius plus a one-unit ring) must fit in one cell.
const MaxLightRadius = MaxRadius/2 - 1

// Light is a point or cone light source. The renderer only reads lights;
// they are owned and moved by the scene.
type Light struct {
	// X and Y are the light's position in world space.
	X, Y float64
	// Radius is the light's reach. It is floored to an integer and clamped to
	// MaxLightRadius before use.
	Radius float64
	// Color is the light tint. The zero value is treated as white.
	Color Color
	// Volume scales the light's brightness linearly.
	Volume float64
	// Rotation is the direction of a cone light in radians.
	Rotation float64
	// ConeAngle is the half-angle of a cone light in radians. Zero means the
	// light shines in every direction.
	ConeAngle float64
	// FalloffAngle widens the cone by a linearly fading band, in radians.
	FalloffAngle float64
	// Enabled determines whether the light is enumerated by World.
	Enabled bool
}

// EffectiveRadius returns the integer radius used for bounds and projection.
func (l *Light) EffectiveRadius() float64 {
	r := math.Floor(l.Radius)
	if r < 0 || math.IsNaN(r) {
		return 0
	}
	if r > MaxLightRadius {
		return MaxLightRadius
	}
	return r
}

// Position returns the light's world position.
func (l *Light) Position() Vec2 {
	return Vec2{l.X, l.Y}
}

// Bounds returns the light's bounding square: its rounded position plus or
// minus its effective radius.
func (l *Light) Bounds() Rect {
	r := l.EffectiveRadius()
	cx := math.Round(l.X)
	cy := math.Round(l.Y)
	return Rect{X: cx - r, Y: cy - r, Width: 2 * r, Height: 2 * r}
}

// Directional reports whether the light is a cone light.
func (l *Light) Directional() bool {
	return l.ConeAngle > 0
}

// tint returns the light color, mapping the zero value to white.
func (l *Light) tint() Color {
	if l.Color == (Color{}) {
		return ColorWhite
	}
	return l.Color
}
