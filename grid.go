package umbra

// channelsPerCell is the number of color channels a cell packs lights into.
const channelsPerCell = 4

// CellAssignment locates a light's mask in the shared shadow buffer.
type CellAssignment struct {
	// Cell is the top-left corner of the light's cell in shadow buffer pixels.
	Cell Vec2
	// Channel is the color channel (0=R, 1=G, 2=B, 3=A) holding the mask.
	Channel int
}

// Mask returns the one-hot color selecting the assignment's channel.
func (a CellAssignment) Mask() Color {
	var c Color
	switch a.Channel {
	case 0:
		c.R = 1
	case 1:
		c.G = 1
	case 2:
		c.B = 1
	case 3:
		c.A = 1
	}
	return c
}

// ShadowGrid maps light ordinals to cells of a fixed-size shadow buffer.
// It is a value type; Assign has no side effects.
type ShadowGrid struct {
	width, height int
	cellsPerRow   int
	rows          int
}

// NewShadowGrid returns the grid for a shadow buffer of the given size.
// Dimensions smaller than MaxRadius yield a grid with no capacity.
func NewShadowGrid(width, height int) ShadowGrid {
	g := ShadowGrid{width: width, height: height}
	if width > 0 && height > 0 {
		g.cellsPerRow = width / MaxRadius
		g.rows = height / MaxRadius
	}
	return g
}

// Width returns the shadow buffer width in pixels.
func (g ShadowGrid) Width() int { return g.width }

// Height returns the shadow buffer height in pixels.
func (g ShadowGrid) Height() int { return g.height }

// MaxLights returns how many lights fit in the shadow buffer.
func (g ShadowGrid) MaxLights() int {
	return g.cellsPerRow * g.rows * channelsPerCell
}

// Assign returns the cell and channel for the light with the given ordinal
// in this frame's enumeration. ok is false when ordinal is negative or at or
// beyond MaxLights.
func (g ShadowGrid) Assign(ordinal int) (CellAssignment, bool) {
	if ordinal < 0 || ordinal >= g.MaxLights() {
		return CellAssignment{}, false
	}
	cellIndex := ordinal / channelsPerCell
	return CellAssignment{
		Cell: Vec2{
			X: float64(cellIndex%g.cellsPerRow) * MaxRadius,
			Y: float64(cellIndex/g.cellsPerRow) * MaxRadius,
		},
		Channel: ordinal % channelsPerCell,
	}, true
}
