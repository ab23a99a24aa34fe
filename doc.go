// Package umbra is a dynamic 2D shadow-casting lighting layer for
// [Ebitengine].
//
// Every frame a [Compositor] asks a [Scene] for its active lights and, per
// light, for the occluders inside the light's bounding square. It builds
// shadow wedges for the edges of each occluder that face the light, packs
// them into a shared shadow buffer and then draws each light's volume into
// a light-accumulation buffer, masked by its shadows. The accumulation
// buffer is then multiplied over the finished scene.
//
// # Quick start
//
//	world := umbra.NewWorld()
//	world.AddLight(&umbra.Light{X: 200, Y: 150, Radius: 120, Volume: 1, Enabled: true})
//	world.AddOccluder(&umbra.Occluder{Entity: umbra.Rect{X: 240, Y: 140, Width: 40, Height: 40}})
//
//	cfg := umbra.DefaultConfig()
//	r := umbra.NewEbitenRenderer(cfg.ShadowWidth, cfg.ShadowHeight, 640, 480)
//	c, err := umbra.NewCompositor(cfg, r)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// In ebiten.Game.Draw, after drawing the scene:
//	c.Render(world, umbra.Vec2{})
//	r.Composite(screen)
//
// # Shadow buffer packing
//
// The shadow buffer is tiled into [MaxRadius] square cells. Each cell holds
// the masks of four lights, one per color channel, so a buffer of
// ShadowWidth x ShadowHeight pixels holds
// (ShadowWidth/MaxRadius)*(ShadowHeight/MaxRadius)*4 lights. Lights beyond
// that are dropped for the frame in enumeration order and reported in
// [FrameStats].
//
// # Occluders
//
// Occluders are axis-aligned rectangles. An [Occluder] carries the entity
// bounds, a custom rectangle and sprite bounds; its [OcclusionMode] picks
// which one casts. Lights placed inside an occluder follow the configured
// [InBoundsPolicy].
//
// # ECS
//
// Package umbra/ecs provides a [Scene] backed by a [Donburi] world.
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package umbra
