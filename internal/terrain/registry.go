package terrain

import "github.com/google/uuid"

// Registry maps scene-local pixel values (1..31) to terrain definitions.
// Value 0 is permanently bound to the no-terrain sentinel. Each Scene owns
// exactly one Registry; nothing here spans scenes.
type Registry struct {
	byKey [MaxPixelValue + 1]*Terrain
	byID  map[string]*Terrain

	// usedFn answers whether any enqueued shape still references a pixel
	// value. Wired by the owning Scene; nil means "never in use".
	usedFn func(uint8) bool
}

// NewRegistry creates a registry with the no-terrain sentinel bound to key 0.
func NewRegistry() *Registry {
	r := &Registry{byID: make(map[string]*Terrain)}
	none := newNoTerrain()
	r.byKey[0] = none
	r.byID[none.ID] = none
	return r
}

// None returns the registry's no-terrain sentinel (pixel value 0).
func (r *Registry) None() *Terrain {
	return r.byKey[0]
}

// Register assigns t the lowest unused pixel value in [1,31] and returns it.
// A terrain already registered keeps its value. A terrain carrying a
// pre-assigned free value (snapshot restore) keeps that value. Fails with
// ErrCapacityExceeded when all 31 non-zero values are taken; the registry is
// unchanged on failure.
func (r *Registry) Register(t *Terrain) (uint8, error) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if existing, ok := r.byID[t.ID]; ok {
		return existing.PixelValue, nil
	}
	if t.PixelValue != 0 {
		if t.PixelValue > MaxPixelValue {
			return 0, ErrInvalidPixelValue
		}
		if r.byKey[t.PixelValue] == nil {
			r.byKey[t.PixelValue] = t
			r.byID[t.ID] = t
			return t.PixelValue, nil
		}
		// Requested value taken: fall through to lowest-free assignment.
	}
	for key := uint8(1); key <= MaxPixelValue; key++ {
		if r.byKey[key] == nil {
			t.PixelValue = key
			r.byKey[key] = t
			r.byID[t.ID] = t
			return key, nil
		}
	}
	return 0, ErrCapacityExceeded
}

// Lookup returns the terrain bound to key, or nil if the key is unassigned
// or out of range.
func (r *Registry) Lookup(key uint8) *Terrain {
	if key > MaxPixelValue {
		return nil
	}
	return r.byKey[key]
}

// LookupByID returns the terrain with the given stable ID, or nil.
func (r *Registry) LookupByID(id string) *Terrain {
	return r.byID[id]
}

// Release unbinds key so it can be reassigned. The caller must first migrate
// every shape referencing the key to another terrain; while any remains the
// release fails with ErrKeyInUse. Key 0 can never be released.
func (r *Registry) Release(key uint8) error {
	if key == 0 || key > MaxPixelValue {
		return ErrInvalidPixelValue
	}
	t := r.byKey[key]
	if t == nil {
		return nil
	}
	if r.usedFn != nil && r.usedFn(key) {
		return ErrKeyInUse
	}
	r.byKey[key] = nil
	delete(r.byID, t.ID)
	t.PixelValue = 0
	return nil
}

// Registered returns all non-sentinel terrains in ascending pixel-value order.
func (r *Registry) Registered() []*Terrain {
	out := make([]*Terrain, 0, MaxPixelValue)
	for key := uint8(1); key <= MaxPixelValue; key++ {
		if t := r.byKey[key]; t != nil {
			out = append(out, t)
		}
	}
	return out
}
