// Package editor is the interactive scene painter: an ebiten front-end over
// the terrain engine used to paint, fill, and inspect layered terrain.
package editor

import (
	"encoding/json"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/Terrain-Painter/internal/terrain"
)

// tool selects what a left click paints.
type tool int

const (
	toolCell tool = iota
	toolHex
	toolPolygon
	toolFill
	toolErase
	toolWall
	toolCount
)

var toolNames = [toolCount]string{"cell", "hex", "polygon", "fill", "erase", "wall"}

// Editor is the ebiten app state. It owns one scene and a palette and
// translates input into engine operations.
type Editor struct {
	scene   *terrain.Scene
	palette []*terrain.Terrain
	door    terrain.WallID

	layer        int
	terrainIdx   int
	activeTool   tool
	layerVisible [terrain.NumLayers]bool

	// Wall tool: first click arms the start point.
	wallStart *terrain.Point
	wallOpen  bool

	// Polygon tool: clicks accumulate vertices until enter closes the ring.
	polyVerts []terrain.Point

	statusLine string

	prevKeys  map[ebiten.Key]bool
	prevMouse bool

	// Raster view cache, rebuilt when the scene generation moves.
	rasterImg *ebiten.Image
	seenGen   uint64
}

// New creates an editor over a freshly generated sample scene.
func New(cfg terrain.SceneConfig, seed int64, palette []*terrain.Terrain) (*Editor, error) {
	s := terrain.NewScene(cfg)
	door, err := terrain.GenerateSampleScene(s, seed, palette)
	if err != nil {
		return nil, err
	}
	e := &Editor{
		scene:    s,
		palette:  palette,
		door:     door,
		prevKeys: make(map[ebiten.Key]bool),
	}
	for l := range e.layerVisible {
		e.layerVisible[l] = true
	}
	return e, nil
}

// Layout implements ebiten.Game.
func (e *Editor) Layout(outsideWidth, outsideHeight int) (int, int) {
	cfg := e.scene.Config()
	return cfg.Width, cfg.Height + HUDHeight
}

// Update implements ebiten.Game.
func (e *Editor) Update() error {
	e.handleKeys()
	e.handleMouse()
	return nil
}

// keyPressed reports a just-pressed transition for k.
func (e *Editor) keyPressed(k ebiten.Key) bool {
	down := ebiten.IsKeyPressed(k)
	was := e.prevKeys[k]
	e.prevKeys[k] = down
	return down && !was
}

func (e *Editor) handleKeys() {
	if e.keyPressed(ebiten.KeyTab) {
		e.layer = (e.layer + 1) % terrain.NumLayers
		e.status(fmt.Sprintf("layer %d", e.layer))
	}
	if e.keyPressed(ebiten.KeyT) {
		e.terrainIdx = (e.terrainIdx + 1) % len(e.palette)
		e.status("terrain " + e.palette[e.terrainIdx].Name)
	}
	for i := 0; i < int(toolCount); i++ {
		if e.keyPressed(ebiten.Key(int(ebiten.Key1) + i)) {
			e.activeTool = tool(i)
			e.wallStart = nil
			e.polyVerts = nil
			e.status("tool " + toolNames[e.activeTool])
		}
	}
	if e.keyPressed(ebiten.KeyEnter) && e.activeTool == toolPolygon {
		if len(e.polyVerts) >= 3 {
			e.paint(terrain.NewPolygon(e.polyVerts, e.layer), e.palette[e.terrainIdx])
			e.status(fmt.Sprintf("polygon closed (%d vertices)", len(e.polyVerts)))
		} else {
			e.status("polygon needs at least 3 vertices")
		}
		e.polyVerts = nil
	}
	if e.keyPressed(ebiten.KeyEscape) {
		e.wallStart = nil
		e.polyVerts = nil
		e.status("pending input cleared")
	}
	if e.keyPressed(ebiten.KeyU) {
		if entry := e.scene.Undo(e.layer); entry != nil {
			e.status(fmt.Sprintf("undo layer %d", e.layer))
		} else {
			e.status("nothing to undo")
		}
	}
	if e.keyPressed(ebiten.KeyK) {
		removed := e.scene.Clean(e.layer, 8)
		e.status(fmt.Sprintf("compacted %d entries", len(removed)))
	}
	if e.keyPressed(ebiten.KeyV) {
		e.layerVisible[e.layer] = !e.layerVisible[e.layer]
		e.seenGen = 0 // force raster view rebuild
	}
	if e.keyPressed(ebiten.KeyO) {
		if w, ok := e.scene.Walls().Wall(e.door); ok {
			e.scene.Walls().SetWallOpen(e.door, !w.Open)
			e.status(fmt.Sprintf("door open=%v", !w.Open))
		}
	}
	if e.keyPressed(ebiten.KeyG) {
		e.wallOpen = !e.wallOpen
		e.status(fmt.Sprintf("new walls open=%v", e.wallOpen))
	}
	if e.keyPressed(ebiten.KeyC) {
		e.copySnapshot()
	}
}

func (e *Editor) handleMouse() {
	down := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	clicked := down && !e.prevMouse
	e.prevMouse = down
	if !clicked {
		return
	}
	mx, my := ebiten.CursorPosition()
	cfg := e.scene.Config()
	if mx < 0 || mx >= cfg.Width || my < 0 || my >= cfg.Height {
		return
	}
	p := terrain.Point{X: float64(mx), Y: float64(my)}
	t := e.palette[e.terrainIdx]

	switch e.activeTool {
	case toolCell:
		col := int(p.X / cfg.CellSize)
		row := int(p.Y / cfg.CellSize)
		e.paint(terrain.NewGridCell(col, row, cfg.CellSize, e.layer), t)
	case toolHex:
		e.paint(terrain.NewHexagon(p, cfg.HexSize, e.layer), t)
	case toolPolygon:
		e.polyVerts = append(e.polyVerts, p)
		e.status(fmt.Sprintf("polygon vertex %d", len(e.polyVerts)))
	case toolErase:
		col := int(p.X / cfg.CellSize)
		row := int(p.Y / cfg.CellSize)
		e.paint(terrain.NewGridCell(col, row, cfg.CellSize, e.layer), nil)
	case toolFill:
		if _, err := e.scene.FillEnclosedArea(p, t, e.layer); err != nil {
			e.status("fill: " + err.Error())
		} else {
			e.status("filled enclosed area")
		}
	case toolWall:
		if e.wallStart == nil {
			start := p
			e.wallStart = &start
			e.status("wall start set")
		} else {
			e.scene.Walls().AddWall(*e.wallStart, p, e.wallOpen)
			e.wallStart = nil
			e.status("wall added")
		}
	}
}

func (e *Editor) paint(shape terrain.Shape, t *terrain.Terrain) {
	if _, err := e.scene.AddShape(shape, t, false); err != nil {
		e.status("paint: " + err.Error())
	}
}

// copySnapshot puts the scene's JSON snapshot on the system clipboard.
func (e *Editor) copySnapshot() {
	raw, err := json.MarshalIndent(e.scene.Snapshot(), "", "  ")
	if err != nil {
		e.status("snapshot: " + err.Error())
		return
	}
	if err := clipboard.WriteAll(string(raw)); err != nil {
		e.status("clipboard: " + err.Error())
		return
	}
	e.status(fmt.Sprintf("snapshot copied (%d bytes)", len(raw)))
}

func (e *Editor) status(msg string) { e.statusLine = msg }
