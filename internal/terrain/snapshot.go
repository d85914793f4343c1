package terrain

import (
	"encoding/json"
	"fmt"
	"os"
)

// SceneStore is the external persistence collaborator. Implementations own
// all I/O; the engine never retries a failed save, since a retried write
// could double-apply partial external I/O.
type SceneStore interface {
	LoadSceneData() (*SceneSnapshot, error)
	SaveSceneData(*SceneSnapshot) error
}

// SceneSnapshot is the JSON-compatible persisted form of a scene's terrain
// state: the pixel-value map plus the per-layer shape queues. Temporary
// shapes are not persisted.
type SceneSnapshot struct {
	SceneMap    []TerrainRecord          `json:"sceneMap"`
	ShapeQueues [NumLayers][]ShapeRecord `json:"shapeQueues"`
}

// TerrainRecord binds a pixel value to a terrain definition.
type TerrainRecord struct {
	PixelValue uint8    `json:"pixelValue"`
	Terrain    *Terrain `json:"terrain"`
}

// ShapeRecord is one serialized queue entry. Geometry fields vary by type.
type ShapeRecord struct {
	Type       string `json:"type"` // cell, hex, polygon, polygonHoles
	Layer      int    `json:"layer"`
	PixelValue uint8  `json:"pixelValue"`

	Col  int     `json:"col,omitempty"`
	Row  int     `json:"row,omitempty"`
	Size float64 `json:"size,omitempty"`

	Center   *Point    `json:"center,omitempty"`
	Vertices []Point   `json:"vertices,omitempty"`
	Outer    []Point   `json:"outer,omitempty"`
	Holes    [][]Point `json:"holes,omitempty"`
}

// recordShape serializes a shape into a ShapeRecord.
func recordShape(s Shape) ShapeRecord {
	rec := ShapeRecord{Layer: s.Layer(), PixelValue: s.PixelValue()}
	switch v := s.(type) {
	case *GridCell:
		rec.Type = "cell"
		rec.Col, rec.Row, rec.Size = v.Col, v.Row, v.Size
	case *Hexagon:
		rec.Type = "hex"
		c := v.Center
		rec.Center, rec.Size = &c, v.Size
	case *Polygon:
		rec.Type = "polygon"
		rec.Vertices = v.Vertices
	case *PolygonWithHoles:
		rec.Type = "polygonHoles"
		rec.Outer, rec.Holes = v.Outer, v.HoleRings
	}
	return rec
}

// shapeFromRecord reverses recordShape. Unknown types answer nil.
func shapeFromRecord(rec ShapeRecord) Shape {
	switch rec.Type {
	case "cell":
		return NewGridCell(rec.Col, rec.Row, rec.Size, rec.Layer).WithPixelValue(rec.PixelValue)
	case "hex":
		if rec.Center == nil {
			return nil
		}
		return NewHexagon(*rec.Center, rec.Size, rec.Layer).WithPixelValue(rec.PixelValue)
	case "polygon":
		return NewPolygon(rec.Vertices, rec.Layer).WithPixelValue(rec.PixelValue)
	case "polygonHoles":
		return NewPolygonWithHoles(rec.Outer, rec.Holes, rec.Layer).WithPixelValue(rec.PixelValue)
	}
	return nil
}

// Snapshot captures the scene's persistent terrain state.
func (s *Scene) Snapshot() *SceneSnapshot {
	snap := &SceneSnapshot{}
	for _, t := range s.reg.Registered() {
		snap.SceneMap = append(snap.SceneMap, TerrainRecord{PixelValue: t.PixelValue, Terrain: t})
	}
	for layer := 0; layer < NumLayers; layer++ {
		for _, e := range s.queues.Layer(layer).Entries() {
			if e.Temporary {
				continue
			}
			snap.ShapeQueues[layer] = append(snap.ShapeQueues[layer], recordShape(e.Shape))
		}
	}
	return snap
}

// Save serializes the scene through the store while holding the advisory
// commit lock, so saves never overlap each other or a concurrent
// compaction. A store failure is surfaced wrapped in ErrPersistence.
func (s *Scene) Save(store SceneStore) error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	if err := store.SaveSceneData(s.Snapshot()); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}

// Load replaces the scene's terrain state from the store: registry entries
// keep their persisted pixel values and every shape is re-enqueued and
// repainted in its original order.
func (s *Scene) Load(store SceneStore) error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	snap, err := store.LoadSceneData()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	s.reg = NewRegistry()
	s.reg.usedFn = s.queues.IsPixelValueUsed
	s.queues = ShapeQueues{}
	s.handleLayer = make(map[Handle]int)
	for buffer := 0; buffer < NumBuffers; buffer++ {
		for channel := 0; channel < LayersPerBuffer; channel++ {
			s.ras.ClearChannel(buffer, channel)
		}
	}

	for _, rec := range snap.SceneMap {
		if rec.Terrain == nil {
			continue
		}
		rec.Terrain.PixelValue = rec.PixelValue
		if _, err := s.reg.Register(rec.Terrain); err != nil {
			return fmt.Errorf("%w: %v", ErrPersistence, err)
		}
	}
	for layer := 0; layer < NumLayers; layer++ {
		buffer, channel := BufferForLayer(layer)
		for _, rec := range snap.ShapeQueues[layer] {
			shape := shapeFromRecord(rec)
			if shape == nil {
				continue
			}
			h := s.ras.Paint(shape, buffer, channel, shape.PixelValue())
			s.queues.Layer(layer).Enqueue(&QueueEntry{Shape: shape, Handle: h})
			s.handleLayer[h] = layer
		}
	}
	s.raster.MarkAllDirty()
	s.generation++
	return nil
}

// FileStore persists snapshots as indented JSON at a fixed path.
type FileStore struct {
	Path string
}

// LoadSceneData implements SceneStore.
func (f *FileStore) LoadSceneData() (*SceneSnapshot, error) {
	raw, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, err
	}
	var snap SceneSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// SaveSceneData implements SceneStore.
func (f *FileStore) SaveSceneData(snap *SceneSnapshot) error {
	raw, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(f.Path, raw, 0o644)
}
