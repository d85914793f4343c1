package terrain

// TerrainLevel is one non-empty layer at a queried point.
type TerrainLevel struct {
	Terrain *Terrain
	Layer   int
}

// TerrainsAt returns the unique non-null terrains present at p across all
// layers, ordered by first containing layer. Layers are independent, so the
// same terrain on two layers collapses to one entry here but stays doubled
// in TerrainLevelsAt.
func (s *Scene) TerrainsAt(p Point) []*Terrain {
	keys := s.TerrainLayersAt(p)
	seen := make(map[uint8]struct{}, NumLayers)
	var out []*Terrain
	for _, key := range keys {
		if key == 0 {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		if t := s.reg.Lookup(key); t != nil {
			out = append(out, t)
		}
	}
	return out
}

// TerrainLevelsAt returns one entry per non-null layer at p, in layer
// order. Duplicate terrains across layers are preserved.
func (s *Scene) TerrainLevelsAt(p Point) []TerrainLevel {
	keys := s.TerrainLayersAt(p)
	var out []TerrainLevel
	for layer, key := range keys {
		if key == 0 {
			continue
		}
		if t := s.reg.Lookup(key); t != nil {
			out = append(out, TerrainLevel{Terrain: t, Layer: layer})
		}
	}
	return out
}

// ActiveTerrainLevelsAt filters TerrainLevelsAt to entries whose elevation
// range contains elevation, resolving each terrain's anchor mode against
// the surface elevation at p and the scene's configured layer elevations.
func (s *Scene) ActiveTerrainLevelsAt(p Point, elevation float64) []TerrainLevel {
	levels := s.TerrainLevelsAt(p)
	surface := s.ElevationAt(p)
	out := levels[:0]
	for _, lv := range levels {
		layerElev := 0.0
		if lv.Terrain.Anchor == AnchorLayer {
			al := lv.Terrain.AnchorLayer
			if al >= 0 && al < NumLayers {
				layerElev = s.cfg.LayerElevations[al]
			}
		}
		if lv.Terrain.ActiveAt(elevation, surface, layerElev) {
			out = append(out, lv)
		}
	}
	return out
}
