package umbra

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// projectionScale multiplied by a light's radius reaches past the far corner
// of its bounding square from any point inside it.
const projectionScale = 2 * math.Sqrt2

// wedgeVertexCount is the number of vertices one wedge occupies: the near
// start point, steps+1 far samples, the end's far point and the near end
// point.
func wedgeVertexCount(steps int) int { return steps + 4 }

// wedgeIndexCount is steps fan triangles plus one closing triangle.
func wedgeIndexCount(steps int) int { return steps*3 + 3 }

// LightResult summarizes the geometry built for one light.
type LightResult struct {
	// PutOut is set when the light sits inside an occluder under
	// InBoundsPutOut. Nothing was emitted and the light must not be drawn.
	PutOut bool
	// Occluders is the number of occluders that contributed casting edges.
	Occluders int
	// Wedges is the number of wedges written to the arena.
	Wedges int
	// Skipped counts occluders whose silhouette could not be resolved.
	Skipped int
	// Truncated counts wedges dropped because the arena was full.
	Truncated int
}

// WedgeBuilder turns the occluders around a light into shadow wedges. The
// zero value is not usable; set Steps to at least 1.
type WedgeBuilder struct {
	// Steps is the number of angular samples along each wedge's far edge.
	Steps int
	// Policy decides what a light inside an occluder does.
	Policy InBoundsPolicy
	// Trace records rays and casting surfaces in world space for the debug
	// overlay.
	Trace bool

	rays     []Segment
	surfaces []Segment
}

// Rays returns the traced rays since the last ResetTrace.
func (b *WedgeBuilder) Rays() []Segment { return b.rays }

// Surfaces returns the traced casting edges since the last ResetTrace.
func (b *WedgeBuilder) Surfaces() []Segment { return b.surfaces }

// ResetTrace empties the traced geometry, keeping capacity.
func (b *WedgeBuilder) ResetTrace() {
	b.rays = b.rays[:0]
	b.surfaces = b.surfaces[:0]
}

// wedgeContext holds the per-light values shared by every wedge.
type wedgeContext struct {
	light    Vec2
	expanded Rect
	length   float64
	offset   Vec2
	mask     [4]float32
}

// Build writes the shadow wedges of every occluder in occluders for light l
// into s. Vertices land in the shadow buffer cell described by a and carry
// its channel mask.
func (b *WedgeBuilder) Build(l *Light, a CellAssignment, occluders []Occluder, s *Scratch) LightResult {
	var res LightResult
	r := l.EffectiveRadius()
	if r <= 0 {
		return res
	}
	pos := l.Position()
	bounds := l.Bounds()

	if b.Policy == InBoundsPutOut {
		for i := range occluders {
			if sil, ok := occluders[i].Silhouette(); ok && sil.Contains(pos.X, pos.Y) {
				res.PutOut = true
				return res
			}
		}
	}

	m := a.Mask()
	ctx := wedgeContext{
		light:    pos,
		expanded: bounds.Inset(1),
		length:   r * projectionScale,
		offset:   a.Cell.Sub(bounds.Min()),
		mask:     [4]float32{float32(m.R), float32(m.G), float32(m.B), float32(m.A)},
	}

	for i := range occluders {
		sil, ok := occluders[i].Silhouette()
		if !ok {
			res.Skipped++
			continue
		}
		if b.Policy == InBoundsExclude && sil.Contains(pos.X, pos.Y) {
			continue
		}
		clip, ok := sil.Intersection(bounds)
		if !ok || (clip.Width == 0 && clip.Height == 0) {
			continue
		}

		edges := clip.Edges()
		near, second := nearestEdges(&edges, pos)
		if near < 0 {
			continue
		}
		res.Occluders++
		b.emit(&ctx, edges[near], s, &res)
		if second >= 0 && !edges[near].faces(pos) {
			b.emit(&ctx, edges[second], s, &res)
		}
	}
	return res
}

// nearestEdges returns the indices of the two edges whose midpoints are
// closest to p, skipping zero-length edges. Ties keep the earlier edge.
// Missing results are -1.
func nearestEdges(edges *[4]Segment, p Vec2) (near, second int) {
	near, second = -1, -1
	var dNear, dSecond float64
	for i := range edges {
		if edges[i].Length() == 0 {
			continue
		}
		d := distance(p, edges[i].Midpoint())
		switch {
		case near < 0 || d < dNear:
			second, dSecond = near, dNear
			near, dNear = i, d
		case second < 0 || d < dSecond:
			second, dSecond = i, d
		}
	}
	return near, second
}

// emit writes one wedge for the edge start→end. The wedge is a fan around
// start through the far boundary samples, closed by the triangle
// start, far(end), end.
func (b *WedgeBuilder) emit(ctx *wedgeContext, edge Segment, s *Scratch, res *LightResult) {
	if edge.Length() == 0 {
		return
	}
	steps := b.Steps
	start, end := edge.A, edge.B
	startAngle := angleTo(ctx.light, start)
	endAngle := angleTo(ctx.light, end)

	farStart := projectClipped(start, startAngle, ctx.length, ctx.expanded)
	farEnd := projectClipped(end, endAngle, ctx.length, ctx.expanded)
	sweep := normalizeAngle(angleTo(start, farEnd) - startAngle)

	verts, inds, base, ok := s.Reserve(wedgeVertexCount(steps), wedgeIndexCount(steps))
	if !ok {
		res.Truncated++
		return
	}
	res.Wedges++

	ctx.vertex(&verts[0], start)
	ctx.vertex(&verts[1], farStart)
	for i := 1; i <= steps; i++ {
		angle := startAngle + sweep*float64(i)/float64(steps)
		q := projectClipped(start, angle, ctx.length, ctx.expanded)
		ctx.vertex(&verts[1+i], q)
		if b.Trace {
			b.rays = append(b.rays, Segment{start, q})
		}
	}
	ctx.vertex(&verts[steps+2], farEnd)
	ctx.vertex(&verts[steps+3], end)

	for i := 0; i < steps; i++ {
		inds[i*3] = base
		inds[i*3+1] = base + uint32(1+i)
		inds[i*3+2] = base + uint32(2+i)
	}
	inds[steps*3] = base
	inds[steps*3+1] = base + uint32(steps+2)
	inds[steps*3+2] = base + uint32(steps+3)

	if b.Trace {
		b.rays = append(b.rays, Segment{start, farStart}, Segment{end, farEnd})
		b.surfaces = append(b.surfaces, edge)
	}
}

// vertex writes p translated into the light's shadow buffer cell.
func (ctx *wedgeContext) vertex(v *ebiten.Vertex, p Vec2) {
	*v = ebiten.Vertex{
		DstX:   float32(p.X + ctx.offset.X),
		DstY:   float32(p.Y + ctx.offset.Y),
		SrcX:   0.5,
		SrcY:   0.5,
		ColorR: ctx.mask[0],
		ColorG: ctx.mask[1],
		ColorB: ctx.mask[2],
		ColorA: ctx.mask[3],
	}
}
