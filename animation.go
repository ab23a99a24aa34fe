package umbra

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 fields on a Light simultaneously.
// Create one via the convenience constructors (TweenPosition, TweenRadius,
// TweenVolume, TweenColor) and call Update(dt) each frame.
//
// There is no global animation manager; callers step their own tweens.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	Done   bool
}

// Update advances all tweens by dt seconds and writes values to the light.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// Reset rewinds every tween to its start value.
func (g *TweenGroup) Reset() {
	for i := 0; i < g.count; i++ {
		g.tweens[i].Reset()
		v, _ := g.tweens[i].Set(0)
		*g.fields[i] = float64(v)
	}
	g.Done = false
}

// TweenPosition animates l.X and l.Y to (toX, toY).
func TweenPosition(l *Light, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2}
	g.tweens[0] = gween.New(float32(l.X), float32(toX), duration, fn)
	g.tweens[1] = gween.New(float32(l.Y), float32(toY), duration, fn)
	g.fields[0] = &l.X
	g.fields[1] = &l.Y
	return g
}

// TweenRadius animates l.Radius.
func TweenRadius(l *Light, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1}
	g.tweens[0] = gween.New(float32(l.Radius), float32(to), duration, fn)
	g.fields[0] = &l.Radius
	return g
}

// TweenVolume animates l.Volume.
func TweenVolume(l *Light, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1}
	g.tweens[0] = gween.New(float32(l.Volume), float32(to), duration, fn)
	g.fields[0] = &l.Volume
	return g
}

// TweenRotation animates l.Rotation, sweeping a cone light.
func TweenRotation(l *Light, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1}
	g.tweens[0] = gween.New(float32(l.Rotation), float32(to), duration, fn)
	g.fields[0] = &l.Rotation
	return g
}

// TweenColor animates all four components of l.Color.
func TweenColor(l *Light, to Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 4}
	g.tweens[0] = gween.New(float32(l.Color.R), float32(to.R), duration, fn)
	g.tweens[1] = gween.New(float32(l.Color.G), float32(to.G), duration, fn)
	g.tweens[2] = gween.New(float32(l.Color.B), float32(to.B), duration, fn)
	g.tweens[3] = gween.New(float32(l.Color.A), float32(to.A), duration, fn)
	g.fields[0] = &l.Color.R
	g.fields[1] = &l.Color.G
	g.fields[2] = &l.Color.B
	g.fields[3] = &l.Color.A
	return g
}
