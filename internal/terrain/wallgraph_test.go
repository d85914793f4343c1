package terrain

import "testing"

func TestWallGraph_AddRemoveLifecycle(t *testing.T) {
	g := NewWallGraph()
	id1 := g.AddWall(Point{0, 0}, Point{10, 0}, false)
	id2 := g.AddWall(Point{10, 0}, Point{10, 10}, false)

	if g.Len() != 2 {
		t.Fatalf("len = %d, want 2", g.Len())
	}
	if len(g.verts) != 3 {
		t.Fatalf("vertices = %d, want 3 (shared corner)", len(g.verts))
	}

	g.RemoveWall(id1)
	if g.Len() != 1 {
		t.Fatalf("len after remove = %d, want 1", g.Len())
	}
	// (0,0) had only id1; it must be gone. (10,0) is still held by id2.
	if len(g.verts) != 2 {
		t.Fatalf("vertices after remove = %d, want 2", len(g.verts))
	}

	g.RemoveWall(id2)
	if g.Len() != 0 || len(g.verts) != 0 {
		t.Fatal("graph should be empty after removing all walls")
	}
}

func TestWallGraph_UpdateMovesVertices(t *testing.T) {
	g := NewWallGraph()
	id := g.AddWall(Point{0, 0}, Point{10, 0}, false)
	g.UpdateWall(id, Point{5, 5}, Point{15, 5}, true)

	w, ok := g.Wall(id)
	if !ok {
		t.Fatal("wall should still exist after update")
	}
	if w.A != (Point{5, 5}) || w.B != (Point{15, 5}) || !w.Open {
		t.Fatalf("wall = %+v after update", w)
	}
	if _, old := g.verts[keyFor(Point{0, 0})]; old {
		t.Fatal("old endpoint vertex should be dropped")
	}
	if _, moved := g.verts[keyFor(Point{5, 5})]; !moved {
		t.Fatal("new endpoint vertex should exist")
	}
}

func TestWallGraph_AdjacencySortedByAngle(t *testing.T) {
	g := NewWallGraph()
	hub := Point{0, 0}
	g.AddWall(hub, Point{10, 0}, false)   // angle 0
	g.AddWall(hub, Point{0, 10}, false)   // angle pi/2
	g.AddWall(hub, Point{-10, 0}, false)  // angle pi
	g.AddWall(hub, Point{0, -10}, false)  // angle -pi/2

	v := g.vertexAt(hub)
	if v == nil || len(v.walls) != 4 {
		t.Fatalf("hub vertex missing or wrong degree")
	}
	for i := 1; i < len(v.walls); i++ {
		if v.angleOf(v.walls[i-1]) > v.angleOf(v.walls[i]) {
			t.Fatal("adjacency list should be sorted by angle")
		}
	}
}

func TestWallGraph_SetWallOpenAndElevation(t *testing.T) {
	g := NewWallGraph()
	id := g.AddWall(Point{0, 0}, Point{10, 0}, false)
	g.SetWallOpen(id, true)
	w, _ := g.Wall(id)
	if !w.Open {
		t.Fatal("wall should be open")
	}

	lo, hi := 0.0, 5.0
	g.SetWallElevation(id, &lo, &hi)
	w, _ = g.Wall(id)
	elev := 10.0
	if w.blocksAt(&elev) {
		t.Fatal("open wall never blocks")
	}
	g.SetWallOpen(id, false)
	w, _ = g.Wall(id)
	if w.blocksAt(&elev) {
		t.Fatal("elevation 10 is outside the wall's band")
	}
	elev = 3
	if !w.blocksAt(&elev) {
		t.Fatal("elevation 3 is inside the wall's band")
	}
}
