package terrain

import (
	"image/color"

	"github.com/aquilax/go-perlin"
)

// genConfig holds tuneable noise parameters for sample-scene generation.
type genConfig struct {
	GroundScale float64 // smaller = broader ground features
	WaterScale  float64

	WaterThreshold float64 // noise below this becomes water
	RockThreshold  float64 // noise above this becomes rock
	MudThreshold   float64
}

var defaultGenConfig = genConfig{
	GroundScale:    0.035,
	WaterScale:     0.02,
	WaterThreshold: -0.25,
	RockThreshold:  0.3,
	MudThreshold:   0.12,
}

// SamplePalette returns the terrain set used by generated demo scenes.
func SamplePalette() []*Terrain {
	water := NewTerrain("Water", color.RGBA{R: 40, G: 80, B: 180, A: 255})
	depth := -10.0
	water.RangeMin = &depth
	zero := 0.0
	water.RangeMax = &zero

	rock := NewTerrain("Rock", color.RGBA{R: 110, G: 105, B: 95, A: 255})
	mud := NewTerrain("Mud", color.RGBA{R: 90, G: 70, B: 45, A: 255})
	grass := NewTerrain("Grass", color.RGBA{R: 45, G: 95, B: 45, A: 255})
	return []*Terrain{water, rock, mud, grass}
}

// GenerateSampleScene paints a noise-driven ground layer onto layer 0 and a
// wet/low-lying overlay onto layer 1, then stands up a small walled room
// with a door so boundary fills have something to resolve against. The
// palette order is water, rock, mud, grass (SamplePalette). Returns the
// door's wall ID so callers can toggle it open.
func GenerateSampleScene(s *Scene, seed int64, palette []*Terrain) (WallID, error) {
	if len(palette) < 4 {
		palette = SamplePalette()
	}
	cfg := defaultGenConfig
	ground := perlin.NewPerlin(2, 2, 3, seed)
	water := perlin.NewPerlin(2, 2, 3, seed+1)

	size := s.cfg.CellSize
	cols := int(float64(s.cfg.Width) / size)
	rows := int(float64(s.cfg.Height) / size)

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			gn := ground.Noise2D(float64(col)*cfg.GroundScale, float64(row)*cfg.GroundScale)
			t := palette[3] // grass
			switch {
			case gn > cfg.RockThreshold:
				t = palette[1]
			case gn > cfg.MudThreshold:
				t = palette[2]
			}
			if _, err := s.AddShape(NewGridCell(col, row, size, 0), t, false); err != nil {
				return 0, err
			}

			wn := water.Noise2D(float64(col)*cfg.WaterScale, float64(row)*cfg.WaterScale)
			if wn < cfg.WaterThreshold {
				if _, err := s.AddShape(NewGridCell(col, row, size, 1), palette[0], false); err != nil {
					return 0, err
				}
			}
		}
	}

	// A closed room in the north-west quarter with one wall segment set
	// aside as the door, returned shut.
	x0 := float64(s.cfg.Width) * 0.1
	y0 := float64(s.cfg.Height) * 0.1
	x1 := float64(s.cfg.Width) * 0.35
	y1 := float64(s.cfg.Height) * 0.35
	doorX := (x0 + x1) / 2
	s.walls.AddWall(Point{X: x0, Y: y0}, Point{X: doorX, Y: y0}, false)
	door := s.walls.AddWall(Point{X: doorX, Y: y0}, Point{X: x1, Y: y0}, false) // shut
	s.walls.AddWall(Point{X: x1, Y: y0}, Point{X: x1, Y: y1}, false)
	s.walls.AddWall(Point{X: x1, Y: y1}, Point{X: x0, Y: y1}, false)
	s.walls.AddWall(Point{X: x0, Y: y1}, Point{X: x0, Y: y0}, false)
	return door, nil
}
