package editor

import (
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Terrain-Painter/internal/terrain"
)

// HUDHeight is the pixel strip below the scene reserved for status text.
// Window sizing must account for it so the surface is not rescaled.
const HUDHeight = 48

var (
	wallClosedColor = color.RGBA{R: 230, G: 230, B: 230, A: 255}
	wallOpenColor   = color.RGBA{R: 120, G: 170, B: 120, A: 255}
	backgroundColor = color.RGBA{R: 18, G: 18, B: 22, A: 255}
)

// Draw implements ebiten.Game.
func (e *Editor) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	e.refreshRasterView()
	if e.rasterImg != nil {
		screen.DrawImage(e.rasterImg, nil)
	}
	e.drawWalls(screen)
	e.drawHUD(screen)
}

// refreshRasterView re-renders the raster view when the scene changed or a
// layer visibility toggle invalidated it.
func (e *Editor) refreshRasterView() {
	gen := e.scene.Generation()
	if e.rasterImg != nil && gen == e.seenGen {
		return
	}
	e.seenGen = gen

	cfg := e.scene.Config()
	img := image.NewRGBA(image.Rect(0, 0, cfg.Width, cfg.Height))
	reg := e.scene.Registry()
	for y := 0; y < cfg.Height; y++ {
		for x := 0; x < cfg.Width; x++ {
			keys := e.scene.TerrainLayersAt(terrain.Point{X: float64(x), Y: float64(y)})
			// Topmost visible, non-hidden layer wins.
			for layer := terrain.NumLayers - 1; layer >= 0; layer-- {
				if !e.layerVisible[layer] || keys[layer] == 0 {
					continue
				}
				t := reg.Lookup(keys[layer])
				if t == nil || t.Visibility == terrain.VisibilityHidden {
					continue
				}
				img.SetRGBA(x, y, t.Color)
				break
			}
		}
	}
	e.rasterImg = ebiten.NewImageFromImage(img)
}

func (e *Editor) drawWalls(screen *ebiten.Image) {
	for _, w := range e.scene.Walls().Walls() {
		c := wallClosedColor
		if w.Open {
			c = wallOpenColor
		}
		vector.StrokeLine(screen,
			float32(w.A.X), float32(w.A.Y),
			float32(w.B.X), float32(w.B.Y),
			2, c, true)
	}
	if e.wallStart != nil {
		mx, my := ebiten.CursorPosition()
		vector.StrokeLine(screen,
			float32(e.wallStart.X), float32(e.wallStart.Y),
			float32(mx), float32(my),
			1, wallOpenColor, true)
	}
	for i := 1; i < len(e.polyVerts); i++ {
		a, b := e.polyVerts[i-1], e.polyVerts[i]
		vector.StrokeLine(screen,
			float32(a.X), float32(a.Y), float32(b.X), float32(b.Y),
			1, wallClosedColor, true)
	}
}

func (e *Editor) drawHUD(screen *ebiten.Image) {
	cfg := e.scene.Config()
	mx, my := ebiten.CursorPosition()
	var under string
	if mx >= 0 && mx < cfg.Width && my >= 0 && my < cfg.Height {
		levels := e.scene.TerrainLevelsAt(terrain.Point{X: float64(mx), Y: float64(my)})
		for _, lv := range levels {
			under += fmt.Sprintf(" L%d:%s", lv.Layer, lv.Terrain.Name)
		}
	}
	hud := fmt.Sprintf(
		"\n layer=%d tool=%s terrain=%s%s\n [tab]layer [t]terrain [1-6]tool [enter]close [u]undo [k]clean [v]vis [o]door [g]wall-open [c]copy\n %s",
		e.layer, toolNames[e.activeTool], e.palette[e.terrainIdx].Name, under, e.statusLine)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(0, float64(cfg.Height))
	hudImg := ebiten.NewImage(cfg.Width, HUDHeight)
	ebitenutil.DebugPrint(hudImg, hud)
	screen.DrawImage(hudImg, op)
}
