// Package config loads terrain palette definitions from YAML files so
// scenes can share hand-authored terrain sets between the editor and the
// headless tools.
package config

import (
	"fmt"
	"image/color"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Garsondee/Terrain-Painter/internal/terrain"
)

// Palette is the top-level YAML document: a named list of terrain defs.
type Palette struct {
	Name     string       `yaml:"name"`
	Terrains []TerrainDef `yaml:"terrains"`
}

// TerrainDef is one terrain entry in a palette file.
type TerrainDef struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Color       string   `yaml:"color"`      // "#rrggbb" or "#rrggbbaa"
	Visibility  string   `yaml:"visibility"` // everyone (default), controller, hidden
	Anchor      string   `yaml:"anchor"`     // absolute (default), terrain, layer
	AnchorLayer int      `yaml:"anchorLayer"`
	RangeMin    *float64 `yaml:"rangeMin"`
	RangeMax    *float64 `yaml:"rangeMax"`
}

// LoadPalette reads and validates a palette file.
func LoadPalette(path string) (*Palette, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read palette: %w", err)
	}
	var p Palette
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("config: parse palette: %w", err)
	}
	if len(p.Terrains) == 0 {
		return nil, fmt.Errorf("config: palette %q defines no terrains", path)
	}
	return &p, nil
}

// Build converts the palette into terrain definitions ready to register.
func (p *Palette) Build() ([]*terrain.Terrain, error) {
	out := make([]*terrain.Terrain, 0, len(p.Terrains))
	for _, d := range p.Terrains {
		t, err := d.toTerrain()
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func (d TerrainDef) toTerrain() (*terrain.Terrain, error) {
	c, err := parseHexColor(d.Color)
	if err != nil {
		return nil, fmt.Errorf("config: terrain %q: %w", d.Name, err)
	}
	t := terrain.NewTerrain(d.Name, c)
	if d.ID != "" {
		t.ID = d.ID
	}
	switch d.Visibility {
	case "", "everyone":
		t.Visibility = terrain.VisibilityEveryone
	case "controller":
		t.Visibility = terrain.VisibilityController
	case "hidden":
		t.Visibility = terrain.VisibilityHidden
	default:
		return nil, fmt.Errorf("config: terrain %q: unknown visibility %q", d.Name, d.Visibility)
	}
	switch d.Anchor {
	case "", "absolute":
		t.Anchor = terrain.AnchorAbsolute
	case "terrain":
		t.Anchor = terrain.AnchorTerrain
	case "layer":
		t.Anchor = terrain.AnchorLayer
		if d.AnchorLayer < 0 || d.AnchorLayer >= terrain.NumLayers {
			return nil, fmt.Errorf("config: terrain %q: anchorLayer %d out of range", d.Name, d.AnchorLayer)
		}
		t.AnchorLayer = d.AnchorLayer
	default:
		return nil, fmt.Errorf("config: terrain %q: unknown anchor %q", d.Name, d.Anchor)
	}
	t.RangeMin = d.RangeMin
	t.RangeMax = d.RangeMax
	return t, nil
}

// parseHexColor parses "#rrggbb" or "#rrggbbaa". Empty means opaque white.
func parseHexColor(s string) (color.RGBA, error) {
	if s == "" {
		return color.RGBA{R: 255, G: 255, B: 255, A: 255}, nil
	}
	if s[0] != '#' || (len(s) != 7 && len(s) != 9) {
		return color.RGBA{}, fmt.Errorf("bad color %q", s)
	}
	var r, g, b, a uint8 = 0, 0, 0, 255
	var err error
	if len(s) == 7 {
		_, err = fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b)
	} else {
		_, err = fmt.Sscanf(s, "#%02x%02x%02x%02x", &r, &g, &b, &a)
	}
	if err != nil {
		return color.RGBA{}, fmt.Errorf("bad color %q", s)
	}
	return color.RGBA{R: r, G: g, B: b, A: a}, nil
}
