package umbra

import "github.com/hajimehoshi/ebiten/v2"

// lightShaderSrc lights one pixel of a light's bounding rectangle. Images[0]
// is the shadow buffer; src addresses the light's cell in it. Channel is a
// one-hot vector selecting the light's mask channel.
//
// Params = (radius, volume, rotation, cone half-angle)
// Falloff = (falloff angle, directional flag, unused, unused)
const lightShaderSrc = `//kage:unit pixels
package main

var Center vec2
var Color vec4
var Params vec4
var Falloff vec4
var Channel vec4

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	d := dst.xy - Center
	dist := length(d)
	radius := Params.x
	if dist >= radius {
		return vec4(0)
	}
	if dot(imageSrc0UnsafeAt(src), Channel) > 0.5 {
		return vec4(0)
	}
	att := (1 - dist/radius) * Params.y
	if Falloff.y > 0 {
		a := atan2(d.y, d.x) - Params.z
		a = abs(mod(a+3.14159265, 6.28318531) - 3.14159265)
		cone := Params.w
		if a > cone+Falloff.x {
			return vec4(0)
		}
		if a > cone {
			att *= 1 - (a-cone)/max(Falloff.x, 0.0001)
		}
	}
	att = clamp(att, 0, 1)
	return vec4(Color.rgb*att, att) * color.a
}
`

// --- Lazy shader compilation (no sync.Once, rendering is single-threaded) ---

var lightShader *ebiten.Shader

func ensureLightShader() *ebiten.Shader {
	if lightShader == nil {
		s, err := ebiten.NewShader([]byte(lightShaderSrc))
		if err != nil {
			panic("umbra: failed to compile light shader: " + err.Error())
		}
		lightShader = s
	}
	return lightShader
}

// TextureBinding maps a region of a render target across a drawn rectangle.
type TextureBinding struct {
	Target Target
	Region Rect
}

// Material parameterizes a DrawRect call. Uniforms are passed to the shader
// by name; Textures are bound in order as the shader's source images.
type Material struct {
	// Shader overrides the built-in light shader when non-nil.
	Shader   *ebiten.Shader
	Uniforms map[string]any
	Textures []TextureBinding
}

// lightMaterial is the Material used for the accumulation pass. Uniform
// values live in persistent arrays so per-light updates do not allocate.
type lightMaterial struct {
	Material
	center  [2]float32
	color   [4]float32
	params  [4]float32
	falloff [4]float32
	channel [4]float32
	binding [1]TextureBinding
}

func newLightMaterial() *lightMaterial {
	m := &lightMaterial{}
	m.Uniforms = map[string]any{
		"Center":  m.center[:],
		"Color":   m.color[:],
		"Params":  m.params[:],
		"Falloff": m.falloff[:],
		"Channel": m.channel[:],
	}
	m.Textures = m.binding[:]
	return m
}

// set loads the parameters for light l drawn at center (accumulation buffer
// pixels) sampling the shadow mask at a.
func (m *lightMaterial) set(l *Light, a CellAssignment, center Vec2) {
	r := l.EffectiveRadius()
	c := l.tint()
	m.center = [2]float32{float32(center.X), float32(center.Y)}
	m.color = [4]float32{float32(c.R), float32(c.G), float32(c.B), float32(c.A)}
	m.params = [4]float32{float32(r), float32(l.Volume), float32(l.Rotation), float32(l.ConeAngle)}
	m.falloff = [4]float32{float32(l.FalloffAngle), 0, 0, 0}
	if l.Directional() {
		m.falloff[1] = 1
	}
	mask := a.Mask()
	m.channel = [4]float32{float32(mask.R), float32(mask.G), float32(mask.B), float32(mask.A)}
	m.binding[0] = TextureBinding{
		Target: TargetShadow,
		Region: Rect{X: a.Cell.X, Y: a.Cell.Y, Width: 2 * r, Height: 2 * r},
	}
}
