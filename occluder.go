package umbra

// OcclusionMode selects which rectangle of an occluder casts shadow.
type OcclusionMode uint8

const (
	OcclusionEntityRectangle  OcclusionMode = iota // the owning entity's bounds
	OcclusionCustomRectangle                       // Custom, relative to the entity origin
	OcclusionSpriteSilhouette                      // the sprite's drawn bounds
)

func (m OcclusionMode) String() string {
	switch m {
	case OcclusionEntityRectangle:
		return "entity"
	case OcclusionCustomRectangle:
		return "custom"
	case OcclusionSpriteSilhouette:
		return "sprite"
	default:
		return "unknown"
	}
}

// Occluder is a shadow-casting rectangle attached to a scene entity. Only the
// rectangle selected by Mode is used.
type Occluder struct {
	Mode OcclusionMode
	// Entity is the entity's bounds in world space.
	Entity Rect
	// Custom is a rectangle relative to Entity's top-left corner.
	Custom Rect
	// Sprite is the sprite's bounds in world space.
	Sprite Rect
}

// Silhouette resolves the occluder to a world-space rectangle. ok is false
// for an unknown mode or a rectangle that is not finite or has a negative size.
func (o *Occluder) Silhouette() (Rect, bool) {
	var r Rect
	switch o.Mode {
	case OcclusionEntityRectangle:
		r = o.Entity
	case OcclusionCustomRectangle:
		r = o.Custom.Offset(o.Entity.Min())
	case OcclusionSpriteSilhouette:
		r = o.Sprite
	default:
		return Rect{}, false
	}
	if !r.valid() {
		return Rect{}, false
	}
	return r, true
}
