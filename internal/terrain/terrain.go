package terrain

import (
	"image/color"

	"github.com/google/uuid"
)

// Engine-wide layer and pixel-value limits. Six layers are packed three at a
// time into two channel buffers; a channel stores a 5-bit terrain key.
const (
	NumLayers       = 6
	LayersPerBuffer = 3
	NumBuffers      = NumLayers / LayersPerBuffer
	MaxPixelValue   = 31

	pixelValueMask = 0x1F // low 5 bits of a channel byte
)

// VisibilityMode controls who the host UI shows a terrain to.
type VisibilityMode uint8

const (
	VisibilityEveryone   VisibilityMode = iota // shown to all users
	VisibilityController                       // shown only to the scene controller
	VisibilityHidden                           // never drawn, query-only
)

// AnchorMode selects the reference point of a terrain's elevation range.
type AnchorMode uint8

const (
	AnchorAbsolute AnchorMode = iota // range offsets are absolute elevations
	AnchorTerrain                    // offsets relative to the surface elevation at the point
	AnchorLayer                      // offsets relative to a configured layer elevation
)

// Terrain is one paintable terrain definition. Identity is the stable ID
// string; PixelValue is the scene-local key assigned by the Registry
// (0 means unassigned, except for the built-in NoTerrain sentinel).
type Terrain struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Color      color.RGBA     `json:"color"`
	Visibility VisibilityMode `json:"visibility"`

	Anchor      AnchorMode `json:"anchor"`
	AnchorLayer int        `json:"anchorLayer"` // meaningful only when Anchor == AnchorLayer

	// Elevation range offsets. nil means unbounded on that side.
	RangeMin *float64 `json:"rangeMin,omitempty"`
	RangeMax *float64 `json:"rangeMax,omitempty"`

	PixelValue uint8 `json:"pixelValue"`
}

// NewTerrain creates a terrain definition with a fresh stable ID.
// The pixel value stays unassigned until the terrain is registered in a scene.
func NewTerrain(name string, c color.RGBA) *Terrain {
	return &Terrain{
		ID:    uuid.NewString(),
		Name:  name,
		Color: c,
	}
}

// newNoTerrain builds the per-scene "no terrain" sentinel permanently bound
// to pixel value 0.
func newNoTerrain() *Terrain {
	return &Terrain{
		ID:         "none",
		Name:       "No Terrain",
		Visibility: VisibilityHidden,
	}
}

// IsNone reports whether t is a scene's no-terrain sentinel.
func (t *Terrain) IsNone() bool {
	return t != nil && t.PixelValue == 0 && t.ID == "none"
}

// ActiveAt reports whether elevation falls inside the terrain's elevation
// range. surface is the terrain-surface elevation at the queried point;
// layerElev is the configured elevation of t.AnchorLayer. Both are ignored
// unless the matching anchor mode is set.
func (t *Terrain) ActiveAt(elevation, surface, layerElev float64) bool {
	base := 0.0
	switch t.Anchor {
	case AnchorTerrain:
		base = surface
	case AnchorLayer:
		base = layerElev
	}
	if t.RangeMin != nil && elevation < base+*t.RangeMin {
		return false
	}
	if t.RangeMax != nil && elevation > base+*t.RangeMax {
		return false
	}
	return true
}
