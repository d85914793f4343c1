package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/Terrain-Painter/internal/config"
	"github.com/Garsondee/Terrain-Painter/internal/editor"
	"github.com/Garsondee/Terrain-Painter/internal/terrain"
)

func main() {
	var palettePath string
	var seed int64
	var width, height int
	flag.StringVar(&palettePath, "palette", "", "terrain palette YAML (default: built-in sample)")
	flag.Int64Var(&seed, "seed", 42, "sample scene generation seed")
	flag.IntVar(&width, "width", 640, "scene width in pixels")
	flag.IntVar(&height, "height", 480, "scene height in pixels")
	flag.Parse()

	palette := terrain.SamplePalette()
	if palettePath != "" {
		p, err := config.LoadPalette(palettePath)
		if err != nil {
			log.Fatal(err)
		}
		palette, err = p.Build()
		if err != nil {
			log.Fatal(err)
		}
	}

	cfg := terrain.DefaultSceneConfig()
	cfg.Width, cfg.Height = width, height
	ed, err := editor.New(cfg, seed, palette)
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowTitle("Terrain Painter")
	ebiten.SetWindowSize(width, height+editor.HUDHeight)
	if err := ebiten.RunGame(ed); err != nil {
		log.Fatal(err)
	}
}
