package terrain

import (
	"math"
	"sort"
	"sync"
)

// WallID identifies a wall edge in a scene's wall graph.
type WallID uint64

// Wall is one line obstacle. Open walls (doors ajar, gaps) never form
// boundaries. MinZ/MaxZ optionally restrict the wall to an elevation band.
type Wall struct {
	ID   WallID
	A, B Point
	Open bool

	MinZ *float64
	MaxZ *float64
}

// blocksAt reports whether the wall acts as a boundary at the given
// elevation (nil elevation matches every wall).
func (w *Wall) blocksAt(elevation *float64) bool {
	if w.Open {
		return false
	}
	if elevation == nil {
		return true
	}
	if w.MinZ != nil && *elevation < *w.MinZ {
		return false
	}
	if w.MaxZ != nil && *elevation > *w.MaxZ {
		return false
	}
	return true
}

// Vertices are shared between walls whose endpoints coincide within 1/256 px.
const vertexQuantum = 256.0

type vertexKey struct{ x, y int64 }

func keyFor(p Point) vertexKey {
	return vertexKey{
		x: int64(math.Round(p.X * vertexQuantum)),
		y: int64(math.Round(p.Y * vertexQuantum)),
	}
}

// graphVertex is a wall endpoint. walls is kept sorted by the angle of the
// outgoing direction so boundary walks can pick angular neighbours without
// per-step trigonometric comparison.
type graphVertex struct {
	pt    Point
	walls []*Wall
}

// otherEnd returns the wall endpoint opposite v.
func (v *graphVertex) otherEnd(w *Wall) Point {
	if keyFor(w.A) == keyFor(v.pt) {
		return w.B
	}
	return w.A
}

// angleOf returns the outgoing direction angle of w as seen from v.
func (v *graphVertex) angleOf(w *Wall) float64 {
	o := v.otherEnd(w)
	return math.Atan2(o.Y-v.pt.Y, o.X-v.pt.X)
}

func (v *graphVertex) sortWalls() {
	sort.Slice(v.walls, func(i, j int) bool {
		return v.angleOf(v.walls[i]) < v.angleOf(v.walls[j])
	})
}

// WallGraph is the planar graph of a scene's wall segments. Mutations take
// the write lock; boundary resolution reads under the read lock so it never
// observes a half-applied edit.
type WallGraph struct {
	mu     sync.RWMutex
	walls  map[WallID]*Wall
	verts  map[vertexKey]*graphVertex
	nextID WallID
}

// NewWallGraph creates an empty wall graph.
func NewWallGraph() *WallGraph {
	return &WallGraph{
		walls: make(map[WallID]*Wall),
		verts: make(map[vertexKey]*graphVertex),
	}
}

// AddWall inserts a wall segment and returns its ID.
func (g *WallGraph) AddWall(a, b Point, open bool) WallID {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.nextID++
	w := &Wall{ID: g.nextID, A: a, B: b, Open: open}
	g.walls[w.ID] = w
	g.attach(w)
	return w.ID
}

// UpdateWall replaces the geometry and state of an existing wall. Unknown
// IDs are ignored.
func (g *WallGraph) UpdateWall(id WallID, a, b Point, open bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	w, ok := g.walls[id]
	if !ok {
		return
	}
	g.detach(w)
	w.A, w.B, w.Open = a, b, open
	g.attach(w)
}

// SetWallOpen toggles the open/closed state of a wall (a door opening or
// closing) without touching its geometry.
func (g *WallGraph) SetWallOpen(id WallID, open bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if w, ok := g.walls[id]; ok {
		w.Open = open
	}
}

// SetWallElevation sets the wall's vertical band; nil bounds are unbounded.
func (g *WallGraph) SetWallElevation(id WallID, minZ, maxZ *float64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if w, ok := g.walls[id]; ok {
		w.MinZ, w.MaxZ = minZ, maxZ
	}
}

// RemoveWall deletes a wall. Vertices referenced by no remaining wall are
// dropped with it.
func (g *WallGraph) RemoveWall(id WallID) {
	g.mu.Lock()
	defer g.mu.Unlock()

	w, ok := g.walls[id]
	if !ok {
		return
	}
	g.detach(w)
	delete(g.walls, id)
}

// Wall returns a copy of the wall with the given ID.
func (g *WallGraph) Wall(id WallID) (Wall, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	w, ok := g.walls[id]
	if !ok {
		return Wall{}, false
	}
	return *w, true
}

// Walls returns copies of every wall in the graph, in unspecified order.
func (g *WallGraph) Walls() []Wall {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]Wall, 0, len(g.walls))
	for _, w := range g.walls {
		out = append(out, *w)
	}
	return out
}

// Len returns the number of walls in the graph.
func (g *WallGraph) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.walls)
}

func (g *WallGraph) attach(w *Wall) {
	for _, p := range [2]Point{w.A, w.B} {
		k := keyFor(p)
		v, ok := g.verts[k]
		if !ok {
			v = &graphVertex{pt: p}
			g.verts[k] = v
		}
		v.walls = append(v.walls, w)
		v.sortWalls()
	}
}

func (g *WallGraph) detach(w *Wall) {
	for _, p := range [2]Point{w.A, w.B} {
		k := keyFor(p)
		v, ok := g.verts[k]
		if !ok {
			continue
		}
		for i, cand := range v.walls {
			if cand.ID == w.ID {
				v.walls = append(v.walls[:i], v.walls[i+1:]...)
				break
			}
		}
		if len(v.walls) == 0 {
			delete(g.verts, k)
		}
	}
}

func (g *WallGraph) vertexAt(p Point) *graphVertex {
	return g.verts[keyFor(p)]
}
