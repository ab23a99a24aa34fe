package umbra

import (
	"fmt"
	"time"
)

// FrameStats holds the counters of the last rendered frame. Dropped and
// truncated counts expose capacity limits that are otherwise silent.
type FrameStats struct {
	// Lights is the number of lights the scene enumerated.
	Lights int
	// Assigned is the number of lights that received a shadow buffer cell.
	Assigned int
	// DroppedLights is the number of lights beyond the grid capacity.
	DroppedLights int
	// PutOut is the number of lights skipped by InBoundsPutOut.
	PutOut int
	// Drawn is the number of accumulation pass draws.
	Drawn int
	// Occluders is the number of occluders that contributed casting edges.
	Occluders int
	// Wedges is the number of wedges written.
	Wedges int
	// TruncatedWedges is the number of wedges dropped by a full arena.
	TruncatedWedges int
	// SkippedOccluders counts occluders without a valid silhouette.
	SkippedOccluders int
	// Vertices and Indices are the arena fill levels.
	Vertices, Indices int

	// Timings are only measured when Config.Debug is set.
	BuildTime  time.Duration
	ShadowTime time.Duration
	LightTime  time.Duration
}

func (s *FrameStats) add(res LightResult) {
	s.Occluders += res.Occluders
	s.Wedges += res.Wedges
	s.TruncatedWedges += res.Truncated
	s.SkippedOccluders += res.Skipped
	if res.PutOut {
		s.PutOut++
	}
}

// Overlay colors.
var (
	debugBoundsColor  = Color{R: 0.2, G: 0.6, B: 1, A: 1}
	debugRadiusColor  = Color{R: 1, G: 1, B: 0.3, A: 1}
	debugRayColor     = Color{R: 1, G: 0.3, B: 0.3, A: 0.6}
	debugSurfaceColor = Color{R: 0.3, G: 1, B: 0.3, A: 1}
)

// logStats reports the frame at debug level and warns whenever the number
// of dropped lights or truncated wedges changes.
func (c *Compositor) logStats() {
	st := &c.stats
	log := Logger()
	if st.DroppedLights != c.lastDropped || st.TruncatedWedges != c.lastTruncated {
		if st.DroppedLights > 0 || st.TruncatedWedges > 0 {
			log.Warn("umbra: capacity exceeded",
				"droppedLights", st.DroppedLights,
				"maxLights", c.grid.MaxLights(),
				"truncatedWedges", st.TruncatedWedges)
		}
		c.lastDropped = st.DroppedLights
		c.lastTruncated = st.TruncatedWedges
	}
	if !c.cfg.Debug {
		return
	}
	total := st.BuildTime + st.ShadowTime + st.LightTime
	log.Debug("umbra: frame",
		"build", st.BuildTime,
		"shadow", st.ShadowTime,
		"light", st.LightTime,
		"total", total,
		"lights", st.Lights,
		"drawn", st.Drawn,
		"wedges", st.Wedges,
		"vertices", st.Vertices,
		"indices", st.Indices)
}

// drawOverlay draws the wireframe diagnostics into the accumulation buffer
// after both passes. It needs a renderer implementing DebugRenderer.
func (c *Compositor) drawOverlay(view Vec2) {
	dr, ok := c.renderer.(DebugRenderer)
	if !ok {
		return
	}
	neg := view.Scale(-1)
	for i := range c.passes {
		p := &c.passes[i]
		b := p.light.Bounds().Offset(neg)
		dr.StrokeRect(TargetAccumulation, b, debugBoundsColor)
		dr.StrokeCircle(TargetAccumulation, b.Center(), p.light.EffectiveRadius(), debugRadiusColor)
		dr.Label(TargetAccumulation, Vec2{b.X + 2, b.Y + 2}, fmt.Sprintf("#%d c%d", p.ordinal, p.assign.Channel))
	}
	for _, r := range c.builder.Rays() {
		dr.StrokeLine(TargetAccumulation, r.A.Add(neg), r.B.Add(neg), debugRayColor)
	}
	for _, s := range c.builder.Surfaces() {
		dr.StrokeLine(TargetAccumulation, s.A.Add(neg), s.B.Add(neg), debugSurfaceColor)
	}
}
