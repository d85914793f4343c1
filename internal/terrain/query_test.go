package terrain

import (
	"image/color"
	"testing"
)

func floatPtr(v float64) *float64 { return &v }

func TestScene_TerrainsAtDedupsAcrossLayers(t *testing.T) {
	s := testScene()
	grass := NewTerrain("Grass", color.RGBA{0, 160, 0, 255})
	mud := NewTerrain("Mud", color.RGBA{120, 80, 20, 255})

	// Grass on layers 0 and 2, mud on layer 1, all over the same cell.
	if _, err := s.AddShape(NewGridCell(0, 0, 16, 0), grass, false); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := s.AddShape(NewGridCell(0, 0, 16, 1), mud, false); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := s.AddShape(NewGridCell(0, 0, 16, 2), grass, false); err != nil {
		t.Fatalf("add: %v", err)
	}
	p := Point{X: 8, Y: 8}

	terrains := s.TerrainsAt(p)
	if len(terrains) != 2 {
		t.Fatalf("TerrainsAt returned %d terrains, want 2", len(terrains))
	}
	if terrains[0] != grass || terrains[1] != mud {
		t.Fatalf("TerrainsAt order = [%s %s], want [Grass Mud]", terrains[0].Name, terrains[1].Name)
	}

	levels := s.TerrainLevelsAt(p)
	if len(levels) != 3 {
		t.Fatalf("TerrainLevelsAt returned %d levels, want 3", len(levels))
	}
	want := []struct {
		tr    *Terrain
		layer int
	}{{grass, 0}, {mud, 1}, {grass, 2}}
	for i, w := range want {
		if levels[i].Terrain != w.tr || levels[i].Layer != w.layer {
			t.Fatalf("level %d = {%s %d}, want {%s %d}",
				i, levels[i].Terrain.Name, levels[i].Layer, w.tr.Name, w.layer)
		}
	}
}

func TestScene_QueriesAtEmptyPoint(t *testing.T) {
	s := testScene()
	p := Point{X: 8, Y: 8}
	if got := s.TerrainsAt(p); len(got) != 0 {
		t.Fatalf("TerrainsAt on empty scene returned %d entries", len(got))
	}
	if got := s.TerrainLevelsAt(p); len(got) != 0 {
		t.Fatalf("TerrainLevelsAt on empty scene returned %d entries", len(got))
	}
}

func TestScene_ActiveTerrainLevelsAt_AbsoluteAnchor(t *testing.T) {
	s := testScene()
	water := NewTerrain("Water", color.RGBA{30, 90, 200, 255})
	water.RangeMin = floatPtr(-10)
	water.RangeMax = floatPtr(0)

	if _, err := s.AddShape(NewGridCell(0, 0, 16, 0), water, false); err != nil {
		t.Fatalf("add: %v", err)
	}
	p := Point{X: 8, Y: 8}

	if got := s.ActiveTerrainLevelsAt(p, -5); len(got) != 1 {
		t.Fatalf("inside range: %d levels, want 1", len(got))
	}
	if got := s.ActiveTerrainLevelsAt(p, 0); len(got) != 1 {
		t.Fatalf("range max is inclusive: %d levels, want 1", len(got))
	}
	if got := s.ActiveTerrainLevelsAt(p, 3); len(got) != 0 {
		t.Fatalf("above range: %d levels, want 0", len(got))
	}
	if got := s.ActiveTerrainLevelsAt(p, -15); len(got) != 0 {
		t.Fatalf("below range: %d levels, want 0", len(got))
	}
}

func TestScene_ActiveTerrainLevelsAt_TerrainAnchor(t *testing.T) {
	s := testScene()
	s.ElevationAt = func(Point) float64 { return 100 }

	snow := NewTerrain("Snow", color.RGBA{240, 240, 250, 255})
	snow.Anchor = AnchorTerrain
	snow.RangeMin = floatPtr(0)
	snow.RangeMax = floatPtr(5)

	if _, err := s.AddShape(NewGridCell(0, 0, 16, 0), snow, false); err != nil {
		t.Fatalf("add: %v", err)
	}
	p := Point{X: 8, Y: 8}

	if got := s.ActiveTerrainLevelsAt(p, 102); len(got) != 1 {
		t.Fatalf("within surface band: %d levels, want 1", len(got))
	}
	if got := s.ActiveTerrainLevelsAt(p, 2); len(got) != 0 {
		t.Fatalf("far below surface band: %d levels, want 0", len(got))
	}
}

func TestScene_ActiveTerrainLevelsAt_LayerAnchor(t *testing.T) {
	cfg := SceneConfig{Width: 64, Height: 64, CellSize: 16, HexSize: 10}
	cfg.LayerElevations = [NumLayers]float64{0, 10, 20, 30, 40, 50}
	s := NewScene(cfg)

	fog := NewTerrain("Fog", color.RGBA{200, 200, 200, 128})
	fog.Anchor = AnchorLayer
	fog.AnchorLayer = 3
	fog.RangeMin = floatPtr(-1)
	fog.RangeMax = floatPtr(1)

	if _, err := s.AddShape(NewGridCell(0, 0, 16, 3), fog, false); err != nil {
		t.Fatalf("add: %v", err)
	}
	p := Point{X: 8, Y: 8}

	if got := s.ActiveTerrainLevelsAt(p, 30); len(got) != 1 {
		t.Fatalf("at layer elevation: %d levels, want 1", len(got))
	}
	if got := s.ActiveTerrainLevelsAt(p, 35); len(got) != 0 {
		t.Fatalf("off layer elevation: %d levels, want 0", len(got))
	}
}

func TestScene_ActiveTerrainLevelsAt_UnboundedRange(t *testing.T) {
	s := testScene()
	rock := NewTerrain("Rock", color.RGBA{100, 100, 100, 255})

	if _, err := s.AddShape(NewGridCell(0, 0, 16, 0), rock, false); err != nil {
		t.Fatalf("add: %v", err)
	}
	p := Point{X: 8, Y: 8}
	for _, elev := range []float64{-1e6, 0, 1e6} {
		if got := s.ActiveTerrainLevelsAt(p, elev); len(got) != 1 {
			t.Fatalf("elevation %g: %d levels, want 1", elev, len(got))
		}
	}
}
