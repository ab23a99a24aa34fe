package umbra

import (
	"reflect"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

const testSteps = 12

func newTestBuilder(p InBoundsPolicy) *WedgeBuilder {
	return &WedgeBuilder{Steps: testSteps, Policy: p}
}

func testLight() *Light {
	return &Light{X: 100, Y: 100, Radius: 50, Volume: 1, Enabled: true}
}

func entity(x, y, w, h float64) Occluder {
	return Occluder{Entity: Rect{X: x, Y: y, Width: w, Height: h}}
}

func TestWedgeCounts(t *testing.T) {
	if got := wedgeVertexCount(testSteps); got != 16 {
		t.Errorf("wedgeVertexCount = %d, want 16", got)
	}
	if got := wedgeIndexCount(testSteps); got != 39 {
		t.Errorf("wedgeIndexCount = %d, want 39", got)
	}
}

func TestBuildNoOccluders(t *testing.T) {
	s := NewScratch(1024, 1024)
	a, _ := NewShadowGrid(640, 640).Assign(0)
	res := newTestBuilder(InBoundsIgnore).Build(testLight(), a, nil, s)
	if res != (LightResult{}) {
		t.Errorf("result = %+v, want zero", res)
	}
	if len(s.Vertices()) != 0 || len(s.Indices()) != 0 {
		t.Errorf("arena filled %d/%d, want empty", len(s.Vertices()), len(s.Indices()))
	}
}

func TestBuildFacingEdgeSingleWedge(t *testing.T) {
	s := NewScratch(1024, 1024)
	a, _ := NewShadowGrid(640, 640).Assign(0)
	b := newTestBuilder(InBoundsIgnore)
	res := b.Build(testLight(), a, []Occluder{entity(100, 70, 20, 20)}, s)

	if res.Occluders != 1 || res.Wedges != 1 {
		t.Fatalf("result = %+v, want 1 occluder, 1 wedge", res)
	}
	verts, inds := s.Vertices(), s.Indices()
	if len(verts) != 16 || len(inds) != 39 {
		t.Fatalf("arena = %d verts, %d inds, want 16, 39", len(verts), len(inds))
	}

	// The bottom edge runs (120,90)→(100,90); the cell offset is -B.min.
	if verts[0].DstX != 70 || verts[0].DstY != 40 {
		t.Errorf("start vertex = (%v,%v), want (70,40)", verts[0].DstX, verts[0].DstY)
	}
	if verts[15].DstX != 50 || verts[15].DstY != 40 {
		t.Errorf("end vertex = (%v,%v), want (50,40)", verts[15].DstX, verts[15].DstY)
	}

	if inds[0] != 0 || inds[1] != 1 || inds[2] != 2 {
		t.Errorf("first fan triangle = %v, want [0 1 2]", inds[:3])
	}
	last := inds[36:39]
	if last[0] != 0 || last[1] != 14 || last[2] != 15 {
		t.Errorf("closing triangle = %v, want [0 14 15]", last)
	}
	for _, i := range inds {
		if int(i) >= len(verts) {
			t.Fatalf("index %d out of range", i)
		}
	}
}

func TestBuildVerticesStayInExpandedBounds(t *testing.T) {
	s := NewScratch(4096, 4096)
	a, _ := NewShadowGrid(640, 640).Assign(5)
	l := testLight()
	occ := []Occluder{
		entity(100, 70, 20, 20),
		entity(60, 110, 10, 10),
		entity(130, 120, 40, 8),
		entity(20, 20, 50, 50),
	}
	newTestBuilder(InBoundsIgnore).Build(l, a, occ, s)

	expanded := l.Bounds().Inset(1).Offset(a.Cell.Sub(l.Bounds().Min()))
	const tol = 1e-3
	for i, v := range s.Vertices() {
		x, y := float64(v.DstX), float64(v.DstY)
		if x < expanded.X-tol || y < expanded.Y-tol ||
			x > expanded.X+expanded.Width+tol || y > expanded.Y+expanded.Height+tol {
			t.Errorf("vertex %d (%v,%v) outside %v", i, x, y, expanded)
		}
	}
}

func TestBuildCornerEmitsTwoWedges(t *testing.T) {
	s := NewScratch(1024, 1024)
	a, _ := NewShadowGrid(640, 640).Assign(0)
	res := newTestBuilder(InBoundsIgnore).Build(testLight(), a, []Occluder{entity(60, 110, 10, 10)}, s)
	if res.Wedges != 2 {
		t.Fatalf("Wedges = %d, want 2", res.Wedges)
	}
	inds := s.Indices()
	if len(inds) != 78 || inds[39] != 16 {
		t.Errorf("second wedge starts at index %d (len %d), want base 16", inds[39], len(inds))
	}
}

func TestBuildDeterministic(t *testing.T) {
	occ := []Occluder{entity(100, 70, 20, 20), entity(60, 110, 10, 10)}
	a, _ := NewShadowGrid(640, 640).Assign(2)
	run := func() ([]ebiten.Vertex, []uint32) {
		s := NewScratch(1024, 1024)
		newTestBuilder(InBoundsIgnore).Build(testLight(), a, occ, s)
		return append([]ebiten.Vertex(nil), s.Vertices()...), append([]uint32(nil), s.Indices()...)
	}
	v1, i1 := run()
	v2, i2 := run()
	if !reflect.DeepEqual(v1, v2) || !reflect.DeepEqual(i1, i2) {
		t.Error("identical inputs produced different geometry")
	}
}

func TestBuildChannelMasks(t *testing.T) {
	g := NewShadowGrid(640, 640)
	occ := []Occluder{entity(100, 70, 20, 20)}
	s := NewScratch(1024, 1024)
	b := newTestBuilder(InBoundsIgnore)
	a0, _ := g.Assign(0)
	a1, _ := g.Assign(1)
	b.Build(testLight(), a0, occ, s)
	b.Build(testLight(), a1, occ, s)

	verts := s.Vertices()
	for i, v := range verts {
		want := [4]float32{1, 0, 0, 0}
		if i >= 16 {
			want = [4]float32{0, 1, 0, 0}
		}
		got := [4]float32{v.ColorR, v.ColorG, v.ColorB, v.ColorA}
		if got != want {
			t.Fatalf("vertex %d color = %v, want %v", i, got, want)
		}
		if v.SrcX != 0.5 || v.SrcY != 0.5 {
			t.Fatalf("vertex %d src = (%v,%v), want (0.5,0.5)", i, v.SrcX, v.SrcY)
		}
	}
}

func TestBuildPolicies(t *testing.T) {
	inside := entity(90, 90, 20, 20)
	outside := entity(100, 70, 20, 20)
	occ := []Occluder{inside, outside}
	a, _ := NewShadowGrid(640, 640).Assign(0)

	t.Run("ignore", func(t *testing.T) {
		s := NewScratch(1024, 1024)
		res := newTestBuilder(InBoundsIgnore).Build(testLight(), a, occ, s)
		if res.PutOut || res.Occluders != 2 {
			t.Errorf("result = %+v, want both occluders casting", res)
		}
	})
	t.Run("exclude", func(t *testing.T) {
		s := NewScratch(1024, 1024)
		res := newTestBuilder(InBoundsExclude).Build(testLight(), a, occ, s)
		if res.PutOut || res.Occluders != 1 || res.Wedges != 1 {
			t.Errorf("result = %+v, want only the outside occluder", res)
		}
	})
	t.Run("putout", func(t *testing.T) {
		s := NewScratch(1024, 1024)
		res := newTestBuilder(InBoundsPutOut).Build(testLight(), a, []Occluder{outside, inside}, s)
		if !res.PutOut || res.Wedges != 0 {
			t.Errorf("result = %+v, want put out with no wedges", res)
		}
		if len(s.Vertices()) != 0 {
			t.Errorf("arena holds %d vertices after put out", len(s.Vertices()))
		}
	})
}

func TestBuildSkipsMalformed(t *testing.T) {
	s := NewScratch(1024, 1024)
	a, _ := NewShadowGrid(640, 640).Assign(0)
	occ := []Occluder{
		{Mode: 9, Entity: Rect{X: 100, Y: 70, Width: 20, Height: 20}},
		entity(100, 70, -20, 20),
		entity(100, 70, 20, 20),
	}
	res := newTestBuilder(InBoundsIgnore).Build(testLight(), a, occ, s)
	if res.Skipped != 2 || res.Wedges != 1 {
		t.Errorf("result = %+v, want 2 skipped, 1 wedge", res)
	}
}

func TestBuildIgnoresOutOfReach(t *testing.T) {
	s := NewScratch(1024, 1024)
	a, _ := NewShadowGrid(640, 640).Assign(0)
	occ := []Occluder{
		entity(300, 300, 10, 10),
		entity(150, 150, 10, 10), // touches the bounds at one corner
	}
	res := newTestBuilder(InBoundsIgnore).Build(testLight(), a, occ, s)
	if res.Occluders != 0 || len(s.Vertices()) != 0 {
		t.Errorf("result = %+v, %d verts, want nothing", res, len(s.Vertices()))
	}
}

func TestBuildZeroRadius(t *testing.T) {
	s := NewScratch(1024, 1024)
	a, _ := NewShadowGrid(640, 640).Assign(0)
	l := testLight()
	l.Radius = 0.5
	res := newTestBuilder(InBoundsPutOut).Build(l, a, []Occluder{entity(90, 90, 20, 20)}, s)
	if res != (LightResult{}) || len(s.Vertices()) != 0 {
		t.Errorf("result = %+v, want zero", res)
	}
}

func TestBuildTruncates(t *testing.T) {
	s := NewScratch(wedgeVertexCount(testSteps), wedgeIndexCount(testSteps))
	a, _ := NewShadowGrid(640, 640).Assign(0)
	occ := []Occluder{entity(100, 70, 20, 20), entity(60, 110, 10, 10)}
	res := newTestBuilder(InBoundsIgnore).Build(testLight(), a, occ, s)
	if res.Wedges != 1 || res.Truncated != 2 {
		t.Errorf("result = %+v, want 1 wedge, 2 truncated", res)
	}
	if s.Truncated() != 2 {
		t.Errorf("Scratch.Truncated = %d, want 2", s.Truncated())
	}
	if len(s.Vertices()) != 16 || len(s.Indices()) != 39 {
		t.Errorf("arena = %d/%d, want 16/39", len(s.Vertices()), len(s.Indices()))
	}
}

func TestBuildTrace(t *testing.T) {
	s := NewScratch(1024, 1024)
	a, _ := NewShadowGrid(640, 640).Assign(0)
	b := newTestBuilder(InBoundsIgnore)
	b.Trace = true
	b.Build(testLight(), a, []Occluder{entity(100, 70, 20, 20)}, s)

	if got := len(b.Rays()); got != testSteps+2 {
		t.Errorf("rays = %d, want %d", got, testSteps+2)
	}
	want := Segment{Vec2{120, 90}, Vec2{100, 90}}
	if len(b.Surfaces()) != 1 || b.Surfaces()[0] != want {
		t.Errorf("surfaces = %v, want [%v]", b.Surfaces(), want)
	}
	b.ResetTrace()
	if len(b.Rays()) != 0 || len(b.Surfaces()) != 0 {
		t.Error("ResetTrace kept geometry")
	}
}

func TestNearestEdges(t *testing.T) {
	edges := Rect{X: 100, Y: 70, Width: 20, Height: 20}.Edges()
	near, second := nearestEdges(&edges, Vec2{100, 100})
	if near != 2 || second != 3 {
		t.Errorf("nearestEdges = %d, %d, want 2 (bottom), 3 (left)", near, second)
	}

	flat := Rect{X: 0, Y: 0, Width: 10, Height: 0}.Edges()
	near, second = nearestEdges(&flat, Vec2{5, -5})
	if near != 0 || second != 2 {
		t.Errorf("flat nearestEdges = %d, %d, want 0, 2", near, second)
	}

	var point [4]Segment
	if near, second = nearestEdges(&point, Vec2{}); near != -1 || second != -1 {
		t.Errorf("degenerate nearestEdges = %d, %d, want -1, -1", near, second)
	}
}
