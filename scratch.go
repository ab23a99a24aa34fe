package umbra

import "github.com/hajimehoshi/ebiten/v2"

// Scratch is a fixed-capacity vertex and index arena reused every frame.
// Writes go through Reserve, which refuses any request that would exceed
// capacity instead of growing or wrapping.
type Scratch struct {
	verts     []ebiten.Vertex
	inds      []uint32
	nv, ni    int
	truncated int
}

// NewScratch allocates an arena holding up to maxVerts vertices and maxInds
// indices. This is the only allocation the arena ever makes.
func NewScratch(maxVerts, maxInds int) *Scratch {
	if maxVerts < 0 {
		maxVerts = 0
	}
	if maxInds < 0 {
		maxInds = 0
	}
	return &Scratch{
		verts: make([]ebiten.Vertex, maxVerts),
		inds:  make([]uint32, maxInds),
	}
}

// Reset rewinds both cursors and clears the truncation count.
func (s *Scratch) Reset() {
	s.nv = 0
	s.ni = 0
	s.truncated = 0
}

// Reserve claims nv vertices and ni indices. It returns the claimed windows
// and the index of the first claimed vertex. When the request does not fit,
// nothing is claimed, the truncation count is incremented and ok is false.
func (s *Scratch) Reserve(nv, ni int) (verts []ebiten.Vertex, inds []uint32, base uint32, ok bool) {
	if nv < 0 || ni < 0 || s.nv+nv > len(s.verts) || s.ni+ni > len(s.inds) {
		s.truncated++
		return nil, nil, 0, false
	}
	verts = s.verts[s.nv : s.nv+nv : s.nv+nv]
	inds = s.inds[s.ni : s.ni+ni : s.ni+ni]
	base = uint32(s.nv)
	s.nv += nv
	s.ni += ni
	return verts, inds, base, true
}

// Vertices returns the vertices written since the last Reset.
func (s *Scratch) Vertices() []ebiten.Vertex { return s.verts[:s.nv] }

// Indices returns the indices written since the last Reset.
func (s *Scratch) Indices() []uint32 { return s.inds[:s.ni] }

// Truncated returns how many reservations were refused since the last Reset.
func (s *Scratch) Truncated() int { return s.truncated }

// Capacity returns the maximum vertex and index counts.
func (s *Scratch) Capacity() (verts, inds int) { return len(s.verts), len(s.inds) }
