package umbra

import (
	"errors"
	"fmt"
	"time"
)

// lightPass is a light that survived building and is drawn in the
// accumulation pass.
type lightPass struct {
	light   *Light
	assign  CellAssignment
	ordinal int
}

// Compositor renders a scene's lights in two passes. The shadow pass packs
// every light's shadow wedges into one shared buffer, one color channel per
// light within each cell. The accumulation pass draws each light's volume,
// masked by its channel of the shadow buffer, additively into the
// accumulation buffer.
//
// A Compositor is driven from the render thread only. After warmup, Render
// does not allocate.
type Compositor struct {
	cfg      Config
	grid     ShadowGrid
	renderer Renderer
	scratch  *Scratch
	builder  WedgeBuilder
	material *lightMaterial

	lights    []*Light
	occluders []Occluder
	passes    []lightPass

	stats         FrameStats
	lastDropped   int
	lastTruncated int
}

// NewCompositor validates cfg and returns a Compositor drawing through r.
func NewCompositor(cfg Config, r Renderer) (*Compositor, error) {
	if r == nil {
		return nil, errors.New("umbra: new compositor: nil renderer")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("umbra: new compositor: %w", err)
	}
	grid := NewShadowGrid(cfg.ShadowWidth, cfg.ShadowHeight)
	return &Compositor{
		cfg:      cfg,
		grid:     grid,
		renderer: r,
		scratch:  NewScratch(cfg.MaxVertices, cfg.MaxIndices),
		builder: WedgeBuilder{
			Steps:  cfg.AngularSteps,
			Policy: cfg.InBounds,
			Trace:  cfg.Debug,
		},
		material: newLightMaterial(),
		passes:   make([]lightPass, 0, grid.MaxLights()),
	}, nil
}

// Config returns the configuration the Compositor was built with, including
// later SetDebug changes.
func (c *Compositor) Config() Config { return c.cfg }

// Grid returns the shadow buffer grid.
func (c *Compositor) Grid() ShadowGrid { return c.grid }

// Stats returns the counters of the last Render call.
func (c *Compositor) Stats() FrameStats { return c.stats }

// Scratch returns the wedge arena. Its contents are valid until the next
// Render call.
func (c *Compositor) Scratch() *Scratch { return c.scratch }

// SetDebug toggles the debug overlay and per-frame stat logging.
func (c *Compositor) SetDebug(enabled bool) {
	c.cfg.Debug = enabled
	c.builder.Trace = enabled
}

// Render draws one frame: it resets all per-frame state, builds wedges for
// every light that fits the shadow buffer, then runs the shadow pass and the
// accumulation pass. view is the world position of the accumulation
// buffer's top-left pixel.
func (c *Compositor) Render(scene Scene, view Vec2) {
	c.reset()
	debug := c.cfg.Debug

	var t0 time.Time
	if debug {
		t0 = time.Now()
	}
	c.build(scene)
	if debug {
		t1 := time.Now()
		c.stats.BuildTime = t1.Sub(t0)
		t0 = t1
	}

	c.shadowPass()
	if debug {
		t1 := time.Now()
		c.stats.ShadowTime = t1.Sub(t0)
		t0 = t1
	}

	c.lightPass(view)
	if debug {
		c.stats.LightTime = time.Since(t0)
		c.drawOverlay(view)
	}
	c.logStats()
}

func (c *Compositor) reset() {
	c.scratch.Reset()
	c.builder.ResetTrace()
	c.lights = c.lights[:0]
	c.occluders = c.occluders[:0]
	c.passes = c.passes[:0]
	c.stats = FrameStats{}
}

// build enumerates lights, assigns cells in enumeration order and writes
// wedges into the arena. Lights past the grid capacity are dropped.
func (c *Compositor) build(scene Scene) {
	c.lights = scene.ActiveLights(c.lights)
	c.stats.Lights = len(c.lights)

	for i, l := range c.lights {
		a, ok := c.grid.Assign(i)
		if !ok {
			c.stats.DroppedLights = len(c.lights) - i
			break
		}
		c.stats.Assigned++
		if l.EffectiveRadius() <= 0 {
			continue
		}
		c.occluders = scene.OccludersIn(l.Bounds(), c.occluders[:0])
		res := c.builder.Build(l, a, c.occluders, c.scratch)
		c.stats.add(res)
		if res.PutOut {
			continue
		}
		c.passes = append(c.passes, lightPass{light: l, assign: a, ordinal: i})
	}
	c.stats.Vertices = len(c.scratch.Vertices())
	c.stats.Indices = len(c.scratch.Indices())
}

// shadowPass clears the shadow buffer and submits the whole arena as one
// additive batch.
func (c *Compositor) shadowPass() {
	c.renderer.Clear(TargetShadow, Color{})
	verts := c.scratch.Vertices()
	inds := c.scratch.Indices()
	if len(verts) == 0 || len(inds) == 0 {
		return
	}
	c.renderer.SubmitBatch(TargetShadow, BlendAdd, verts, inds)
}

// lightPass draws every surviving light's bounding rectangle additively
// into the accumulation buffer.
func (c *Compositor) lightPass(view Vec2) {
	if c.cfg.ClearAccumulation {
		c.renderer.Clear(TargetAccumulation, c.cfg.Ambient)
	}
	neg := view.Scale(-1)
	m := c.material
	for i := range c.passes {
		p := &c.passes[i]
		m.set(p.light, p.assign, p.light.Position().Add(neg))
		c.renderer.DrawRect(TargetAccumulation, BlendAdd, p.light.Bounds().Offset(neg), &m.Material, p.light.tint())
		c.stats.Drawn++
	}
}
