package ecs

import (
	"github.com/phanxgames/umbra"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
)

// Light is the component holding an entity's light source.
var Light = donburi.NewComponentType[umbra.Light]()

// Occluder is the component holding an entity's shadow-casting rectangle.
var Occluder = donburi.NewComponentType[umbra.Occluder]()

// Scene adapts a Donburi world to umbra.Scene. Light pointers handed out by
// ActiveLights point into component storage and stay valid until entities
// are created or destroyed.
type Scene struct {
	world     donburi.World
	lights    *donburi.Query
	occluders *donburi.Query
}

// NewScene returns a Scene querying world.
func NewScene(world donburi.World) *Scene {
	return &Scene{
		world:     world,
		lights:    donburi.NewQuery(filter.Contains(Light)),
		occluders: donburi.NewQuery(filter.Contains(Occluder)),
	}
}

// SpawnLight creates an entity carrying l.
func SpawnLight(world donburi.World, l umbra.Light) donburi.Entity {
	e := world.Create(Light)
	Light.SetValue(world.Entry(e), l)
	return e
}

// SpawnOccluder creates an entity carrying o.
func SpawnOccluder(world donburi.World, o umbra.Occluder) donburi.Entity {
	e := world.Create(Occluder)
	Occluder.SetValue(world.Entry(e), o)
	return e
}

// ActiveLights appends every enabled light component in query order.
func (s *Scene) ActiveLights(dst []*umbra.Light) []*umbra.Light {
	s.lights.Each(s.world, func(entry *donburi.Entry) {
		if l := Light.Get(entry); l.Enabled {
			dst = append(dst, l)
		}
	})
	return dst
}

// OccludersIn appends every occluder component whose silhouette intersects
// area. Occluders without a valid silhouette are passed through.
func (s *Scene) OccludersIn(area umbra.Rect, dst []umbra.Occluder) []umbra.Occluder {
	s.occluders.Each(s.world, func(entry *donburi.Entry) {
		o := Occluder.Get(entry)
		if sil, ok := o.Silhouette(); ok && !sil.Intersects(area) {
			return
		}
		dst = append(dst, *o)
	})
	return dst
}

var _ umbra.Scene = (*Scene)(nil)
