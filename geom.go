package umbra

import "math"

// Segment is a line segment from A to B.
type Segment struct {
	A, B Vec2
}

// Length returns the Euclidean length of the segment.
func (s Segment) Length() float64 {
	return distance(s.A, s.B)
}

// Midpoint returns the point halfway between A and B.
func (s Segment) Midpoint() Vec2 {
	return Vec2{(s.A.X + s.B.X) / 2, (s.A.Y + s.B.Y) / 2}
}

// faces reports whether p lies within the coordinate span of the segment on
// at least one axis. For an axis-aligned edge this means p sits squarely in
// front of (or behind) the edge rather than off one of its corners.
func (s Segment) faces(p Vec2) bool {
	minX, maxX := math.Min(s.A.X, s.B.X), math.Max(s.A.X, s.B.X)
	minY, maxY := math.Min(s.A.Y, s.B.Y), math.Max(s.A.Y, s.B.Y)
	if maxX > minX && p.X >= minX && p.X <= maxX {
		return true
	}
	return maxY > minY && p.Y >= minY && p.Y <= maxY
}

func distance(a, b Vec2) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// angleTo returns the angle in radians of the direction from a to b.
func angleTo(a, b Vec2) float64 {
	return math.Atan2(b.Y-a.Y, b.X-a.X)
}

// normalizeAngle wraps a into (-π, π].
func normalizeAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// project returns the point at the given distance from origin along angle.
func project(origin Vec2, angle, length float64) Vec2 {
	return Vec2{origin.X + math.Cos(angle)*length, origin.Y + math.Sin(angle)*length}
}

// segmentIntersection intersects segments p and q. It returns the crossing
// point and the parameter t in [0, 1] along p. Parallel segments never
// intersect.
func segmentIntersection(p, q Segment) (Vec2, float64, bool) {
	pdx, pdy := p.B.X-p.A.X, p.B.Y-p.A.Y
	qdx, qdy := q.B.X-q.A.X, q.B.Y-q.A.Y

	denom := pdx*qdy - pdy*qdx
	if math.Abs(denom) < 1e-10 {
		return Vec2{}, 0, false
	}

	diffX := q.A.X - p.A.X
	diffY := q.A.Y - p.A.Y
	t := (diffX*qdy - diffY*qdx) / denom
	u := (diffX*pdy - diffY*pdx) / denom
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return Vec2{}, 0, false
	}
	return Vec2{p.A.X + t*pdx, p.A.Y + t*pdy}, t, true
}

// onBoundary reports whether p lies exactly on one of r's edges.
func onBoundary(p Vec2, r Rect) bool {
	minX, maxX := r.X, r.X+r.Width
	minY, maxY := r.Y, r.Y+r.Height
	if (p.X == minX || p.X == maxX) && p.Y >= minY && p.Y <= maxY {
		return true
	}
	return (p.Y == minY || p.Y == maxY) && p.X >= minX && p.X <= maxX
}

// clipRay intersects the ray segment origin→target with the edges of bounds
// and returns the intersection nearest to origin. An origin lying on the
// boundary is its own intersection. ok is false when the segment never
// reaches the boundary.
func clipRay(origin, target Vec2, bounds Rect) (Vec2, bool) {
	if onBoundary(origin, bounds) {
		return origin, true
	}
	ray := Segment{origin, target}
	best := math.Inf(1)
	var hit Vec2
	found := false
	for _, edge := range bounds.Edges() {
		p, t, ok := segmentIntersection(ray, edge)
		if ok && t < best {
			best = t
			hit = p
			found = true
		}
	}
	return hit, found
}

// projectClipped projects origin along angle by length and clips the result
// against bounds, falling back to the raw projection when nothing is hit.
func projectClipped(origin Vec2, angle, length float64, bounds Rect) Vec2 {
	target := project(origin, angle, length)
	if p, ok := clipRay(origin, target, bounds); ok {
		return p
	}
	return target
}
