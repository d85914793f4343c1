package terrain

import (
	"math"
	"testing"
)

func TestGridCell_Geometry(t *testing.T) {
	c := NewGridCell(2, 3, 16, 0)
	b := c.Bounds()
	if b.MinX != 32 || b.MinY != 48 || b.MaxX != 48 || b.MaxY != 64 {
		t.Fatalf("bounds = %+v", b)
	}
	if !c.ContainsPoint(Point{X: 40, Y: 56}) {
		t.Fatal("cell should contain its centre")
	}
	if c.ContainsPoint(Point{X: 50, Y: 56}) {
		t.Fatal("cell should not contain a point east of it")
	}
	if len(c.Outline()) != 4 {
		t.Fatalf("outline has %d vertices, want 4", len(c.Outline()))
	}
}

func TestHexagon_Geometry(t *testing.T) {
	h := NewHexagon(Point{X: 50, Y: 50}, 10, 0)
	out := h.Outline()
	if len(out) != 6 {
		t.Fatalf("outline has %d vertices, want 6", len(out))
	}
	for i, v := range out {
		d := math.Hypot(v.X-50, v.Y-50)
		if math.Abs(d-10) > 1e-9 {
			t.Fatalf("vertex %d at distance %f, want 10", i, d)
		}
	}
	if !h.ContainsPoint(Point{X: 50, Y: 50}) {
		t.Fatal("hex should contain its centre")
	}
	if h.ContainsPoint(Point{X: 70, Y: 50}) {
		t.Fatal("hex should not contain a point past its radius")
	}
}

func TestPolygon_ConcaveContainment(t *testing.T) {
	// L-shape: the notch at the top-right is outside.
	p := NewPolygon([]Point{
		{0, 0}, {10, 0}, {10, 4}, {4, 4}, {4, 10}, {0, 10},
	}, 0)
	if !p.ContainsPoint(Point{X: 2, Y: 8}) {
		t.Fatal("point in the leg should be inside")
	}
	if p.ContainsPoint(Point{X: 8, Y: 8}) {
		t.Fatal("point in the notch should be outside")
	}
}

func TestPolygonWithHoles_Containment(t *testing.T) {
	p := NewPolygonWithHoles(
		[]Point{{0, 0}, {20, 0}, {20, 20}, {0, 20}},
		[][]Point{{{8, 8}, {12, 8}, {12, 12}, {8, 12}}},
		0,
	)
	if !p.ContainsPoint(Point{X: 4, Y: 4}) {
		t.Fatal("point between outer and hole should be inside")
	}
	if p.ContainsPoint(Point{X: 10, Y: 10}) {
		t.Fatal("point in the hole should be outside")
	}
}

func TestShapeCovers_FullContainment(t *testing.T) {
	big := NewGridCell(0, 0, 100, 0)
	small := NewHexagon(Point{X: 50, Y: 50}, 10, 0)
	if !ShapeCovers(big, small) {
		t.Fatal("hex inside cell should be covered")
	}
	if ShapeCovers(small, big) {
		t.Fatal("cell cannot be covered by a hex inside it")
	}
}

func TestShapeCovers_PartialOverlapIsNotCovered(t *testing.T) {
	a := NewGridCell(0, 0, 10, 0)  // [0,10]^2
	b := NewGridCell(0, 0, 10, 0)  // identical footprint but touching edges
	c := NewHexagon(Point{X: 10, Y: 5}, 4, 0) // straddles a's east edge

	// Identical shapes touch along their whole boundary; the conservative
	// test refuses them.
	if ShapeCovers(a, b) {
		t.Fatal("identical shapes must not count as covered")
	}
	if ShapeCovers(a, c) {
		t.Fatal("straddling shape must not count as covered")
	}
}

func TestShapeCovers_HolePunchesOutCoverage(t *testing.T) {
	outer := NewPolygonWithHoles(
		[]Point{{0, 0}, {40, 0}, {40, 40}, {0, 40}},
		[][]Point{{{18, 18}, {22, 18}, {22, 22}, {18, 22}}},
		0,
	)
	centered := NewHexagon(Point{X: 20, Y: 20}, 8, 0) // overlaps the hole
	offset := NewHexagon(Point{X: 8, Y: 8}, 4, 0)     // clear of the hole

	if ShapeCovers(outer, centered) {
		t.Fatal("shape over the hole must not count as covered")
	}
	if !ShapeCovers(outer, offset) {
		t.Fatal("shape clear of the hole should be covered")
	}
}
