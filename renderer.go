package umbra

import "github.com/hajimehoshi/ebiten/v2"

// Renderer draws into the offscreen targets a Compositor writes each frame.
// Calls are made from the render thread only.
type Renderer interface {
	// Clear fills target with c.
	Clear(target Target, c Color)
	// SubmitBatch draws the indexed triangles in one call. Vertex colors are
	// premultiplied; SrcX/SrcY address a white texel.
	SubmitBatch(target Target, blend BlendMode, verts []ebiten.Vertex, inds []uint32)
	// DrawRect draws r through material m tinted by c. The material and its
	// uniform values may be reused by the caller after DrawRect returns.
	DrawRect(target Target, blend BlendMode, r Rect, m *Material, c Color)
}

// DebugRenderer is implemented by renderers that can draw the wireframe
// debug overlay.
type DebugRenderer interface {
	StrokeRect(target Target, r Rect, c Color)
	StrokeCircle(target Target, center Vec2, radius float64, c Color)
	StrokeLine(target Target, a, b Vec2, c Color)
	Label(target Target, at Vec2, text string)
}
