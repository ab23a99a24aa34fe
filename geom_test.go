package umbra

import (
	"math"
	"testing"
)

const eps = 1e-9

func near(a, b Vec2) bool {
	return math.Abs(a.X-b.X) < 1e-6 && math.Abs(a.Y-b.Y) < 1e-6
}

func TestSegmentIntersection(t *testing.T) {
	tests := []struct {
		name   string
		p, q   Segment
		want   Vec2
		wantT  float64
		wantOK bool
	}{
		{"cross", Segment{Vec2{0, 0}, Vec2{10, 10}}, Segment{Vec2{0, 10}, Vec2{10, 0}}, Vec2{5, 5}, 0.5, true},
		{"touch at end", Segment{Vec2{0, 0}, Vec2{10, 0}}, Segment{Vec2{10, -5}, Vec2{10, 5}}, Vec2{10, 0}, 1, true},
		{"parallel", Segment{Vec2{0, 0}, Vec2{10, 0}}, Segment{Vec2{0, 1}, Vec2{10, 1}}, Vec2{}, 0, false},
		{"short of target", Segment{Vec2{0, 0}, Vec2{4, 4}}, Segment{Vec2{0, 10}, Vec2{10, 0}}, Vec2{}, 0, false},
		{"misses segment", Segment{Vec2{0, 0}, Vec2{10, 10}}, Segment{Vec2{20, 0}, Vec2{20, 5}}, Vec2{}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, gotT, ok := segmentIntersection(tt.p, tt.q)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && (!near(got, tt.want) || math.Abs(gotT-tt.wantT) > eps) {
				t.Errorf("got %v t=%v, want %v t=%v", got, gotT, tt.want, tt.wantT)
			}
		})
	}
}

func TestClipRayNearestHit(t *testing.T) {
	bounds := Rect{0, 0, 100, 100}
	got, ok := clipRay(Vec2{50, 50}, Vec2{250, 50}, bounds)
	if !ok || !near(got, Vec2{100, 50}) {
		t.Errorf("clipRay = %v, %v, want (100,50), true", got, ok)
	}
}

func TestClipRayCorner(t *testing.T) {
	bounds := Rect{0, 0, 100, 100}
	got, ok := clipRay(Vec2{50, 50}, Vec2{-50, -50}, bounds)
	if !ok || !near(got, Vec2{0, 0}) {
		t.Errorf("clipRay = %v, %v, want (0,0), true", got, ok)
	}
}

func TestClipRayOriginOnBoundary(t *testing.T) {
	bounds := Rect{0, 0, 100, 100}
	origins := []Vec2{{0, 40}, {100, 0}, {30, 100}, {100, 100}}
	for _, o := range origins {
		got, ok := clipRay(o, Vec2{o.X + 500, o.Y + 300}, bounds)
		if !ok || got != o {
			t.Errorf("clipRay from %v = %v, %v, want origin", o, got, ok)
		}
	}
}

func TestClipRayShortRayMisses(t *testing.T) {
	bounds := Rect{0, 0, 100, 100}
	if _, ok := clipRay(Vec2{50, 50}, Vec2{60, 60}, bounds); ok {
		t.Error("ray ending inside bounds should not intersect")
	}
}

func TestProjectClippedFallsBack(t *testing.T) {
	bounds := Rect{0, 0, 100, 100}
	got := projectClipped(Vec2{50, 50}, 0, 10, bounds)
	if !near(got, Vec2{60, 50}) {
		t.Errorf("projectClipped = %v, want raw projection (60,50)", got)
	}
	got = projectClipped(Vec2{50, 50}, math.Pi/2, 1000, bounds)
	if !near(got, Vec2{50, 100}) {
		t.Errorf("projectClipped = %v, want (50,100)", got)
	}
}

func TestNormalizeAngle(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{0, 0},
		{math.Pi, math.Pi},
		{-math.Pi, math.Pi},
		{3 * math.Pi / 2, -math.Pi / 2},
		{-3 * math.Pi / 2, math.Pi / 2},
		{5 * math.Pi, math.Pi},
	}
	for _, tt := range tests {
		if got := normalizeAngle(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("normalizeAngle(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSegmentFaces(t *testing.T) {
	horizontal := Segment{Vec2{0, 10}, Vec2{20, 10}}
	vertical := Segment{Vec2{5, 0}, Vec2{5, 30}}
	tests := []struct {
		name string
		seg  Segment
		p    Vec2
		want bool
	}{
		{"above horizontal", horizontal, Vec2{10, 0}, true},
		{"at horizontal end", horizontal, Vec2{20, 50}, true},
		{"off horizontal corner", horizontal, Vec2{25, 0}, false},
		{"beside vertical", vertical, Vec2{-40, 15}, true},
		{"off vertical corner", vertical, Vec2{0, -1}, false},
		{"on horizontal line", horizontal, Vec2{-5, 10}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.seg.faces(tt.p); got != tt.want {
				t.Errorf("faces(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestSegmentLengthAndMidpoint(t *testing.T) {
	s := Segment{Vec2{0, 0}, Vec2{6, 8}}
	if s.Length() != 10 {
		t.Errorf("Length = %v, want 10", s.Length())
	}
	if s.Midpoint() != (Vec2{3, 4}) {
		t.Errorf("Midpoint = %v, want (3,4)", s.Midpoint())
	}
}
