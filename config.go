package umbra

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by every Config validation failure.
var ErrInvalidConfig = errors.New("umbra: invalid config")

// InBoundsPolicy decides what happens when a light sits inside an occluder.
type InBoundsPolicy uint8

const (
	InBoundsIgnore  InBoundsPolicy = iota // cast shadows as usual
	InBoundsExclude                       // the containing occluder casts nothing for this light
	InBoundsPutOut                        // the light is skipped for the frame
)

func (p InBoundsPolicy) String() string {
	switch p {
	case InBoundsIgnore:
		return "ignore"
	case InBoundsExclude:
		return "exclude"
	case InBoundsPutOut:
		return "putout"
	default:
		return fmt.Sprintf("InBoundsPolicy(%d)", uint8(p))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (p InBoundsPolicy) MarshalText() ([]byte, error) {
	if p > InBoundsPutOut {
		return nil, fmt.Errorf("marshal in-bounds policy %d: unknown value", uint8(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *InBoundsPolicy) UnmarshalText(b []byte) error {
	switch string(b) {
	case "ignore":
		*p = InBoundsIgnore
	case "exclude":
		*p = InBoundsExclude
	case "putout":
		*p = InBoundsPutOut
	default:
		return fmt.Errorf("unmarshal in-bounds policy %q: unknown value", b)
	}
	return nil
}

const (
	defaultShadowSize   = 4 * MaxRadius
	defaultAngularSteps = 12
	defaultMaxVertices  = 1 << 16
	defaultMaxIndices   = 3 << 16
)

// Config controls a Compositor. Zero fields are not filled in; start from
// DefaultConfig.
type Config struct {
	// ShadowWidth and ShadowHeight size the shared shadow buffer. Together
	// they decide how many lights fit in a frame.
	ShadowWidth  int `json:"shadowWidth"`
	ShadowHeight int `json:"shadowHeight"`
	// AngularSteps is the number of samples taken along a wedge's far
	// boundary.
	AngularSteps int `json:"angularSteps"`
	// InBounds is the policy for lights positioned inside an occluder.
	InBounds InBoundsPolicy `json:"inBounds"`
	// Debug enables the wireframe overlay and per-frame stat logging.
	Debug bool `json:"debug"`
	// MaxVertices and MaxIndices size the wedge scratch arena.
	MaxVertices int `json:"maxVertices"`
	MaxIndices  int `json:"maxIndices"`
	// Ambient is the accumulation buffer's clear color.
	Ambient Color `json:"ambient"`
	// ClearAccumulation clears the accumulation buffer to Ambient before the
	// light pass. When false, lights blend into its previous contents.
	ClearAccumulation bool `json:"clearAccumulation"`
}

// DefaultConfig returns a Config for a 1280x1280 shadow buffer (64 lights).
func DefaultConfig() Config {
	return Config{
		ShadowWidth:       defaultShadowSize,
		ShadowHeight:      defaultShadowSize,
		AngularSteps:      defaultAngularSteps,
		InBounds:          InBoundsIgnore,
		MaxVertices:       defaultMaxVertices,
		MaxIndices:        defaultMaxIndices,
		Ambient:           Color{A: 1},
		ClearAccumulation: true,
	}
}

// Validate reports the first problem with c, wrapping ErrInvalidConfig.
func (c Config) Validate() error {
	switch {
	case c.ShadowWidth < MaxRadius || c.ShadowHeight < MaxRadius:
		return fmt.Errorf("%w: shadow buffer %dx%d smaller than one %d cell",
			ErrInvalidConfig, c.ShadowWidth, c.ShadowHeight, MaxRadius)
	case c.AngularSteps < 1:
		return fmt.Errorf("%w: angular steps %d, want >= 1", ErrInvalidConfig, c.AngularSteps)
	case c.InBounds > InBoundsPutOut:
		return fmt.Errorf("%w: unknown in-bounds policy %d", ErrInvalidConfig, uint8(c.InBounds))
	case c.MaxVertices < wedgeVertexCount(c.AngularSteps):
		return fmt.Errorf("%w: max vertices %d cannot hold one wedge", ErrInvalidConfig, c.MaxVertices)
	case c.MaxIndices < wedgeIndexCount(c.AngularSteps):
		return fmt.Errorf("%w: max indices %d cannot hold one wedge", ErrInvalidConfig, c.MaxIndices)
	}
	return nil
}

// LoadConfig parses a JSON config. Fields missing from the document keep
// their DefaultConfig values.
func LoadConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
