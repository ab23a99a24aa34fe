// Package ecs provides a [Donburi] backed umbra.Scene.
//
// Lights and occluders are plain components. Attach [Light] or [Occluder]
// to entities and hand the world to [NewScene]:
//
//	world := donburi.NewWorld()
//	ecs.SpawnLight(world, umbra.Light{X: 100, Y: 100, Radius: 80, Volume: 1, Enabled: true})
//	ecs.SpawnOccluder(world, umbra.Occluder{Entity: umbra.Rect{X: 120, Y: 90, Width: 20, Height: 20}})
//
//	scene := ecs.NewScene(world)
//	compositor.Render(scene, umbra.Vec2{})
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
