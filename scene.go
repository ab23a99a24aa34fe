package umbra

// Scene supplies the lights and occluders for a frame. Both methods append
// to dst and return the extended slice so callers can reuse buffers.
type Scene interface {
	// ActiveLights appends the lights to draw this frame. The order must be
	// stable for the duration of a frame.
	ActiveLights(dst []*Light) []*Light
	// OccludersIn appends every occluder whose bounds intersect area.
	OccludersIn(area Rect, dst []Occluder) []Occluder
}

// World is a minimal in-memory Scene holding lights and occluders in
// insertion order. Occluder queries are a linear scan.
type World struct {
	lights    []*Light
	occluders []*Occluder
}

// NewWorld returns an empty World.
func NewWorld() *World {
	return &World{}
}

// AddLight adds a light to the world.
func (w *World) AddLight(l *Light) {
	w.lights = append(w.lights, l)
}

// RemoveLight removes a light from the world.
func (w *World) RemoveLight(l *Light) {
	for i, existing := range w.lights {
		if existing == l {
			w.lights = append(w.lights[:i], w.lights[i+1:]...)
			return
		}
	}
}

// ClearLights removes all lights from the world.
func (w *World) ClearLights() {
	w.lights = w.lights[:0]
}

// Lights returns the current light list. The returned slice MUST NOT be mutated.
func (w *World) Lights() []*Light {
	return w.lights
}

// AddOccluder adds an occluder to the world.
func (w *World) AddOccluder(o *Occluder) {
	w.occluders = append(w.occluders, o)
}

// RemoveOccluder removes an occluder from the world.
func (w *World) RemoveOccluder(o *Occluder) {
	for i, existing := range w.occluders {
		if existing == o {
			w.occluders = append(w.occluders[:i], w.occluders[i+1:]...)
			return
		}
	}
}

// ClearOccluders removes all occluders from the world.
func (w *World) ClearOccluders() {
	w.occluders = w.occluders[:0]
}

// ActiveLights appends every enabled light.
func (w *World) ActiveLights(dst []*Light) []*Light {
	for _, l := range w.lights {
		if l.Enabled {
			dst = append(dst, l)
		}
	}
	return dst
}

// OccludersIn appends every occluder whose silhouette intersects area.
// Occluders that do not resolve to a silhouette are passed through so the
// builder can account for them.
func (w *World) OccludersIn(area Rect, dst []Occluder) []Occluder {
	for _, o := range w.occluders {
		if sil, ok := o.Silhouette(); ok && !sil.Intersects(area) {
			continue
		}
		dst = append(dst, *o)
	}
	return dst
}
