package terrain

import (
	"fmt"
	"sync"
)

// SceneConfig sizes a scene and fixes its grid geometry.
type SceneConfig struct {
	Width, Height int     // raster dimensions in pixels
	CellSize      float64 // square grid cell edge length
	HexSize       float64 // hexagon circumradius

	// LayerElevations is the configured elevation of each layer, the base
	// for terrains anchored with AnchorLayer.
	LayerElevations [NumLayers]float64
}

// DefaultSceneConfig returns a config for a modest square scene.
func DefaultSceneConfig() SceneConfig {
	return SceneConfig{Width: 640, Height: 480, CellSize: 16, HexSize: 10}
}

// Scene is the per-scene context object. It exclusively owns the terrain
// registry, shape queues, channel buffers, and wall graph of one scene; no
// engine state spans scenes. Paint operations are expected on one logical
// thread of control; point queries may interleave freely and rebuild
// synchronously when dirty.
type Scene struct {
	cfg    SceneConfig
	reg    *Registry
	queues ShapeQueues
	raster *LayerRaster
	ras    Rasterizer
	walls  *WallGraph

	handleLayer map[Handle]int

	// ElevationAt supplies the terrain-surface elevation at a point for
	// AnchorTerrain ranges. The elevation model is a host concern; the
	// default is a flat surface at 0.
	ElevationAt func(Point) float64

	// saveMu is the advisory commit lock: a save holds it exclusively so
	// no concurrent save overlaps and no compaction races a serialization.
	saveMu sync.Mutex

	generation uint64
}

// NewScene creates a scene with its own software rasterizer.
func NewScene(cfg SceneConfig) *Scene {
	return NewSceneWith(cfg, NewSoftwareRasterizer(cfg.Width, cfg.Height))
}

// NewSceneWith creates a scene painting through the given rasterizer.
func NewSceneWith(cfg SceneConfig, ras Rasterizer) *Scene {
	s := &Scene{
		cfg:         cfg,
		reg:         NewRegistry(),
		ras:         ras,
		walls:       NewWallGraph(),
		handleLayer: make(map[Handle]int),
		ElevationAt: func(Point) float64 { return 0 },
	}
	s.raster = NewLayerRaster(cfg.Width, cfg.Height, ras)
	s.reg.usedFn = s.queues.IsPixelValueUsed
	return s
}

// Config returns the scene configuration.
func (s *Scene) Config() SceneConfig { return s.cfg }

// Registry returns the scene's terrain registry.
func (s *Scene) Registry() *Registry { return s.reg }

// Walls returns the scene's wall graph.
func (s *Scene) Walls() *WallGraph { return s.walls }

// Generation increments on every paint-affecting mutation; viewers use it
// to invalidate their own render caches.
func (s *Scene) Generation() uint64 { return s.generation }

// AddShape registers the terrain if needed, stamps its pixel value onto the
// shape, paints it, and appends it to the layer's queue. Temporary shapes
// paint normally but are excluded from snapshots. Nothing is mutated when
// registration fails (registry full) or the layer is out of range.
func (s *Scene) AddShape(shape Shape, t *Terrain, temporary bool) (Handle, error) {
	layer := shape.Layer()
	if layer < 0 || layer >= NumLayers {
		return 0, ErrInvalidLayer
	}
	if t == nil {
		t = s.reg.None()
	}
	value := t.PixelValue
	if !t.IsNone() {
		var err error
		value, err = s.reg.Register(t)
		if err != nil {
			return 0, err
		}
	}

	tagged := shape.WithPixelValue(value)
	buffer, channel := BufferForLayer(layer)
	h := s.ras.Paint(tagged, buffer, channel, value)
	s.queues.Layer(layer).Enqueue(&QueueEntry{Shape: tagged, Handle: h, Temporary: temporary})
	s.handleLayer[h] = layer
	s.raster.MarkDirty(layer)
	s.generation++
	return h, nil
}

// Undo removes the most recent paint on the layer and returns its entry.
// An empty queue is a no-op returning nil with all state unchanged.
func (s *Scene) Undo(layer int) *QueueEntry {
	if layer < 0 || layer >= NumLayers {
		return nil
	}
	e := s.queues.Layer(layer).Dequeue()
	if e == nil {
		return nil
	}
	s.dropEntry(e)
	s.repaintLayer(layer)
	return e
}

// RemoveShape deletes the shape with the given handle wherever it sits in
// its layer's history and repaints the layer.
func (s *Scene) RemoveShape(h Handle) error {
	layer, ok := s.handleLayer[h]
	if !ok {
		return ErrUnknownHandle
	}
	e := s.queues.Layer(layer).Remove(h)
	if e == nil {
		return ErrUnknownHandle
	}
	s.dropEntry(e)
	s.repaintLayer(layer)
	return nil
}

// Clean compacts the layer's history, keeping at least the newest retain
// entries, and releases the visual handles of everything removed. The
// decoded raster is unchanged, so no repaint happens. Compaction holds the
// advisory commit lock so it never races a save serializing the queues.
func (s *Scene) Clean(layer, retain int) []*QueueEntry {
	if layer < 0 || layer >= NumLayers {
		return nil
	}
	s.saveMu.Lock()
	defer s.saveMu.Unlock()
	removed := s.queues.Layer(layer).Clean(retain)
	for _, e := range removed {
		s.dropEntry(e)
	}
	return removed
}

// FillEnclosedArea resolves the minimal wall boundary around p and paints
// it on the layer with the given terrain. Fails with ErrNoEnclosingBoundary
// without touching any state when the point is in open space.
func (s *Scene) FillEnclosedArea(p Point, t *Terrain, layer int) (Handle, error) {
	region, err := s.walls.EncompassingPolygon(p, nil)
	if err != nil {
		return 0, err
	}
	shape := NewPolygonWithHoles(region.Outer, region.Holes, layer)
	return s.AddShape(shape, t, false)
}

// MigrateTerrain re-tags every enqueued shape using from's pixel value to
// to's, repainting affected layers. This is the precondition path for
// releasing a terrain's key.
func (s *Scene) MigrateTerrain(from, to *Terrain) error {
	if from == nil || to == nil {
		return fmt.Errorf("%w: migrate requires two terrains", ErrInvalidPixelValue)
	}
	// Value 0 is the erase sentinel; migrating from it would re-tag every
	// never-painted region, and an unregistered terrain has no shapes.
	if from.PixelValue == 0 {
		return fmt.Errorf("%w: migrate from an unregistered terrain", ErrInvalidPixelValue)
	}
	value, err := s.reg.Register(to)
	if err != nil {
		return err
	}
	fromValue := from.PixelValue
	for layer := 0; layer < NumLayers; layer++ {
		touched := false
		for _, e := range s.queues.Layer(layer).Entries() {
			if e.Shape.PixelValue() == fromValue {
				e.Shape = e.Shape.WithPixelValue(value)
				touched = true
			}
		}
		if touched {
			s.repaintLayer(layer)
		}
	}
	return nil
}

// ReleaseTerrain releases t's pixel value back to the registry. Fails with
// ErrKeyInUse while any enqueued shape still references it.
func (s *Scene) ReleaseTerrain(t *Terrain) error {
	return s.reg.Release(t.PixelValue)
}

// IsInScene reports whether any enqueued shape anywhere uses the pixel
// value. The queues are authoritative; the raster is derived.
func (s *Scene) IsInScene(value uint8) bool {
	return s.queues.IsPixelValueUsed(value)
}

// TerrainLayersAt returns the decoded per-layer terrain keys at p.
func (s *Scene) TerrainLayersAt(p Point) [NumLayers]uint8 {
	return s.raster.TerrainLayersAt(p)
}

// dropEntry releases an entry's visual handle and forgets it.
func (s *Scene) dropEntry(e *QueueEntry) {
	s.ras.Release(e.Handle)
	delete(s.handleLayer, e.Handle)
}

// repaintLayer clears the layer's channel and replays its queue in paint
// order. Replayed entries receive fresh visual handles.
func (s *Scene) repaintLayer(layer int) {
	buffer, channel := BufferForLayer(layer)
	s.ras.ClearChannel(buffer, channel)
	for _, e := range s.queues.Layer(layer).Entries() {
		s.ras.Release(e.Handle)
		delete(s.handleLayer, e.Handle)
		e.Handle = s.ras.Paint(e.Shape, buffer, channel, e.Shape.PixelValue())
		s.handleLayer[e.Handle] = layer
	}
	s.raster.MarkDirty(layer)
	s.generation++
}
