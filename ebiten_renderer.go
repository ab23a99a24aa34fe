package umbra

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// EbitenRenderer implements Renderer and DebugRenderer on Ebitengine render
// textures. It owns the shadow buffer and the accumulation buffer.
type EbitenRenderer struct {
	targets [2]*RenderTexture
	white   *ebiten.Image

	rectVerts [4]ebiten.Vertex
	rectInds  [6]uint32
	triOp     ebiten.DrawTrianglesOptions
	shaderOp  ebiten.DrawTrianglesShaderOptions
	imgOp     ebiten.DrawImageOptions
}

// NewEbitenRenderer creates the shadow buffer (shadowW x shadowH) and the
// accumulation buffer (accumW x accumH). The shadow buffer size must match
// the Config the Compositor is built with.
func NewEbitenRenderer(shadowW, shadowH, accumW, accumH int) *EbitenRenderer {
	white := ebiten.NewImage(1, 1)
	white.Fill(color.White)
	r := &EbitenRenderer{white: white}
	r.targets[TargetShadow] = NewRenderTexture(shadowW, shadowH)
	r.targets[TargetAccumulation] = NewRenderTexture(accumW, accumH)
	r.rectInds = [6]uint32{0, 1, 2, 1, 3, 2}
	return r
}

// Image returns the image backing target, or nil for an unknown target or a
// disposed renderer.
func (r *EbitenRenderer) Image(target Target) *ebiten.Image {
	if int(target) >= len(r.targets) || r.targets[target] == nil {
		return nil
	}
	return r.targets[target].Image()
}

// ResizeAccumulation reallocates the accumulation buffer when the size
// changes, typically from ebiten.Game.Layout.
func (r *EbitenRenderer) ResizeAccumulation(w, h int) {
	rt := r.targets[TargetAccumulation]
	if rt != nil && rt.Width() == w && rt.Height() == h {
		return
	}
	if rt != nil {
		rt.Dispose()
	}
	r.targets[TargetAccumulation] = NewRenderTexture(w, h)
}

// Clear fills target with c.
func (r *EbitenRenderer) Clear(target Target, c Color) {
	img := r.Image(target)
	if img == nil {
		return
	}
	if c == (Color{}) {
		img.Clear()
		return
	}
	img.Fill(c.toRGBA())
}

// SubmitBatch draws all triangles with a single DrawTriangles32 call
// sourcing the white pixel.
func (r *EbitenRenderer) SubmitBatch(target Target, blend BlendMode, verts []ebiten.Vertex, inds []uint32) {
	img := r.Image(target)
	if img == nil || len(verts) == 0 || len(inds) == 0 {
		return
	}
	r.triOp.Blend = blend.EbitenBlend()
	r.triOp.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	img.DrawTriangles32(verts, inds, r.white, &r.triOp)
}

// DrawRect draws rect through m's shader. The first texture binding's
// region is stretched across rect.
func (r *EbitenRenderer) DrawRect(target Target, blend BlendMode, rect Rect, m *Material, c Color) {
	img := r.Image(target)
	if img == nil || rect.Width <= 0 || rect.Height <= 0 {
		return
	}
	shader := m.Shader
	if shader == nil {
		shader = ensureLightShader()
	}

	src := Rect{Width: rect.Width, Height: rect.Height}
	r.shaderOp.Images = [4]*ebiten.Image{}
	for i, tb := range m.Textures {
		if i >= len(r.shaderOp.Images) {
			break
		}
		r.shaderOp.Images[i] = r.Image(tb.Target)
		if i == 0 {
			src = tb.Region
		}
	}

	a := float32(c.A)
	cr, cg, cb := float32(c.R)*a, float32(c.G)*a, float32(c.B)*a
	dx := [4]float64{rect.X, rect.X + rect.Width, rect.X, rect.X + rect.Width}
	dy := [4]float64{rect.Y, rect.Y, rect.Y + rect.Height, rect.Y + rect.Height}
	sx := [4]float64{src.X, src.X + src.Width, src.X, src.X + src.Width}
	sy := [4]float64{src.Y, src.Y, src.Y + src.Height, src.Y + src.Height}
	for i := range r.rectVerts {
		r.rectVerts[i] = ebiten.Vertex{
			DstX:   float32(dx[i]),
			DstY:   float32(dy[i]),
			SrcX:   float32(sx[i]),
			SrcY:   float32(sy[i]),
			ColorR: cr,
			ColorG: cg,
			ColorB: cb,
			ColorA: a,
		}
	}

	r.shaderOp.Blend = blend.EbitenBlend()
	r.shaderOp.Uniforms = m.Uniforms
	img.DrawTrianglesShader32(r.rectVerts[:], r.rectInds[:], shader, &r.shaderOp)
}

// StrokeRect outlines rect.
func (r *EbitenRenderer) StrokeRect(target Target, rect Rect, c Color) {
	if img := r.Image(target); img != nil {
		vector.StrokeRect(img, float32(rect.X), float32(rect.Y), float32(rect.Width), float32(rect.Height), 1, c.toRGBA(), false)
	}
}

// StrokeCircle outlines a circle.
func (r *EbitenRenderer) StrokeCircle(target Target, center Vec2, radius float64, c Color) {
	if img := r.Image(target); img != nil {
		vector.StrokeCircle(img, float32(center.X), float32(center.Y), float32(radius), 1, c.toRGBA(), true)
	}
}

// StrokeLine draws a one-pixel line from a to b.
func (r *EbitenRenderer) StrokeLine(target Target, a, b Vec2, c Color) {
	if img := r.Image(target); img != nil {
		vector.StrokeLine(img, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), 1, c.toRGBA(), false)
	}
}

// Label prints text with the built-in debug font.
func (r *EbitenRenderer) Label(target Target, at Vec2, text string) {
	if img := r.Image(target); img != nil {
		ebitenutil.DebugPrintAt(img, text, int(math.Round(at.X)), int(math.Round(at.Y)))
	}
}

// Composite multiplies the accumulation buffer over dst, darkening every
// pixel no light reaches down to the ambient color.
func (r *EbitenRenderer) Composite(dst *ebiten.Image) {
	img := r.Image(TargetAccumulation)
	if img == nil {
		return
	}
	r.imgOp.GeoM.Reset()
	r.imgOp.ColorScale.Reset()
	r.imgOp.Blend = BlendMultiply.EbitenBlend()
	dst.DrawImage(img, &r.imgOp)
}

// Dispose releases both buffers.
func (r *EbitenRenderer) Dispose() {
	for i, rt := range r.targets {
		if rt != nil {
			rt.Dispose()
			r.targets[i] = nil
		}
	}
	if r.white != nil {
		r.white.Deallocate()
		r.white = nil
	}
}
