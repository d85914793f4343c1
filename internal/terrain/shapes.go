package terrain

import "math"

// ShapeKind identifies the geometry variant of a painted shape.
type ShapeKind uint8

const (
	ShapeGridCell ShapeKind = iota
	ShapeHexagon
	ShapePolygon
	ShapePolygonHoles
)

// Shape is a painted vector region tagged with its owning layer and pixel
// value. Shapes are immutable once enqueued; WithPixelValue returns a
// re-tagged copy for terrain assignment and migration.
type Shape interface {
	Kind() ShapeKind
	Origin() Point
	Layer() int
	PixelValue() uint8
	WithPixelValue(v uint8) Shape

	// Outline returns the outer boundary ring (implicitly closed).
	Outline() []Point
	// Holes returns interior exclusion rings, empty for simple shapes.
	Holes() [][]Point
	Bounds() Rect
	ContainsPoint(p Point) bool
}

// shapeTag carries the layer and pixel value common to every shape kind.
type shapeTag struct {
	layer int
	value uint8
}

func (t shapeTag) Layer() int        { return t.layer }
func (t shapeTag) PixelValue() uint8 { return t.value }

// GridCell is one square cell of the scene grid.
type GridCell struct {
	shapeTag
	Col, Row int
	Size     float64
}

// NewGridCell creates a grid-cell shape; the pixel value is stamped when the
// shape is added to a scene.
func NewGridCell(col, row int, size float64, layer int) *GridCell {
	return &GridCell{shapeTag: shapeTag{layer: layer}, Col: col, Row: row, Size: size}
}

func (c *GridCell) Kind() ShapeKind { return ShapeGridCell }
func (c *GridCell) Origin() Point {
	return Point{X: float64(c.Col) * c.Size, Y: float64(c.Row) * c.Size}
}

func (c *GridCell) WithPixelValue(v uint8) Shape {
	cp := *c
	cp.value = v
	return &cp
}

func (c *GridCell) Outline() []Point {
	o := c.Origin()
	return []Point{
		o,
		{X: o.X + c.Size, Y: o.Y},
		{X: o.X + c.Size, Y: o.Y + c.Size},
		{X: o.X, Y: o.Y + c.Size},
	}
}

func (c *GridCell) Holes() [][]Point { return nil }

func (c *GridCell) Bounds() Rect {
	o := c.Origin()
	return Rect{MinX: o.X, MinY: o.Y, MaxX: o.X + c.Size, MaxY: o.Y + c.Size}
}

func (c *GridCell) ContainsPoint(p Point) bool { return c.Bounds().Contains(p) }

// Hexagon is a pointy-top hex centred on a point. Size is the circumradius
// (centre to vertex).
type Hexagon struct {
	shapeTag
	Center Point
	Size   float64
}

// NewHexagon creates a hexagon shape anchored at its centre.
func NewHexagon(center Point, size float64, layer int) *Hexagon {
	return &Hexagon{shapeTag: shapeTag{layer: layer}, Center: center, Size: size}
}

func (h *Hexagon) Kind() ShapeKind { return ShapeHexagon }
func (h *Hexagon) Origin() Point   { return h.Center }

func (h *Hexagon) WithPixelValue(v uint8) Shape {
	cp := *h
	cp.value = v
	return &cp
}

// Outline returns the six vertices starting at the top point.
func (h *Hexagon) Outline() []Point {
	pts := make([]Point, 6)
	for i := 0; i < 6; i++ {
		angle := math.Pi/2 + float64(i)*math.Pi/3
		pts[i] = Point{
			X: h.Center.X + h.Size*math.Cos(angle),
			Y: h.Center.Y - h.Size*math.Sin(angle),
		}
	}
	return pts
}

func (h *Hexagon) Holes() [][]Point { return nil }

func (h *Hexagon) Bounds() Rect { return boundsOf(h.Outline()) }

func (h *Hexagon) ContainsPoint(p Point) bool { return pointInRing(p, h.Outline()) }

// Polygon is a simple polygon from an ordered vertex ring.
type Polygon struct {
	shapeTag
	Vertices []Point
}

// NewPolygon creates a polygon shape from an ordered vertex ring.
func NewPolygon(vertices []Point, layer int) *Polygon {
	return &Polygon{shapeTag: shapeTag{layer: layer}, Vertices: vertices}
}

func (p *Polygon) Kind() ShapeKind { return ShapePolygon }
func (p *Polygon) Origin() Point {
	if len(p.Vertices) == 0 {
		return Point{}
	}
	return p.Vertices[0]
}

func (p *Polygon) WithPixelValue(v uint8) Shape {
	cp := *p
	cp.value = v
	return &cp
}

func (p *Polygon) Outline() []Point            { return p.Vertices }
func (p *Polygon) Holes() [][]Point            { return nil }
func (p *Polygon) Bounds() Rect                { return boundsOf(p.Vertices) }
func (p *Polygon) ContainsPoint(pt Point) bool { return pointInRing(pt, p.Vertices) }

// PolygonWithHoles is an outer ring minus a set of interior hole rings,
// the result shape of boolean wall-boundary fills.
type PolygonWithHoles struct {
	shapeTag
	Outer     []Point
	HoleRings [][]Point
}

// NewPolygonWithHoles creates a polygon-with-holes shape.
func NewPolygonWithHoles(outer []Point, holes [][]Point, layer int) *PolygonWithHoles {
	return &PolygonWithHoles{shapeTag: shapeTag{layer: layer}, Outer: outer, HoleRings: holes}
}

func (p *PolygonWithHoles) Kind() ShapeKind { return ShapePolygonHoles }
func (p *PolygonWithHoles) Origin() Point {
	if len(p.Outer) == 0 {
		return Point{}
	}
	return p.Outer[0]
}

func (p *PolygonWithHoles) WithPixelValue(v uint8) Shape {
	cp := *p
	cp.value = v
	return &cp
}

func (p *PolygonWithHoles) Outline() []Point { return p.Outer }
func (p *PolygonWithHoles) Holes() [][]Point { return p.HoleRings }
func (p *PolygonWithHoles) Bounds() Rect     { return boundsOf(p.Outer) }

func (p *PolygonWithHoles) ContainsPoint(pt Point) bool {
	if !pointInRing(pt, p.Outer) {
		return false
	}
	for _, hole := range p.HoleRings {
		if pointInRing(pt, hole) {
			return false
		}
	}
	return true
}

// shapeContains reports whether p lies in the painted region of s, i.e.
// inside the outline and outside every hole.
func shapeContains(s Shape, p Point) bool { return s.ContainsPoint(p) }

// ShapeCovers reports whether newer fully covers older: every point painted
// by older is also painted by newer. The test is conservative: any contact
// between the two boundaries, or any hole of newer near older, answers
// false. Compaction relies on this never returning a false positive.
func ShapeCovers(newer, older Shape) bool {
	if !newer.Bounds().ContainsRect(older.Bounds()) {
		return false
	}
	outline := older.Outline()
	if len(outline) == 0 {
		return false
	}
	for _, v := range outline {
		if !shapeContains(newer, v) {
			return false
		}
	}
	newerOutline := newer.Outline()
	if ringsIntersect(newerOutline, outline) {
		return false
	}
	for _, hole := range newer.Holes() {
		if ringsIntersect(hole, outline) {
			return false
		}
		// A hole strictly inside older punches out painted area.
		if len(hole) > 0 && shapeContains(older, hole[0]) {
			return false
		}
	}
	// Holes of older only shrink its painted region, so they cannot break
	// coverage once the outline is covered.
	return true
}
