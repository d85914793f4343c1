package terrain

import "errors"

// Sentinel errors for the terrain engine.
var (
	// ErrCapacityExceeded indicates all 31 non-zero pixel values are assigned.
	ErrCapacityExceeded = errors.New("terrain: registry full, all 31 pixel values in use")
	// ErrKeyInUse indicates a release was attempted while enqueued shapes still
	// reference the pixel value. Migrate the shapes first.
	ErrKeyInUse = errors.New("terrain: pixel value still referenced by enqueued shapes")
	// ErrNoEnclosingBoundary indicates no closed wall boundary encloses the point.
	ErrNoEnclosingBoundary = errors.New("terrain: no enclosing wall boundary at point")
	// ErrInvalidLayer indicates a layer index outside [0,5].
	ErrInvalidLayer = errors.New("terrain: layer index out of range")
	// ErrInvalidPixelValue indicates a pixel value outside [0,31].
	ErrInvalidPixelValue = errors.New("terrain: pixel value out of range")
	// ErrUnknownHandle indicates a shape handle that is not (or no longer) tracked.
	ErrUnknownHandle = errors.New("terrain: unknown shape handle")
	// ErrPersistence wraps failures reported by an external scene store.
	ErrPersistence = errors.New("terrain: persistence failure")
)
