package terrain

import "math"

const geomEpsilon = 1e-9

// Point is a position in scene pixel space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is an axis-aligned bounding box.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// Contains reports whether p lies inside or on the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.MinX && p.X <= r.MaxX && p.Y >= r.MinY && p.Y <= r.MaxY
}

// ContainsRect reports whether other lies entirely inside or on r.
func (r Rect) ContainsRect(other Rect) bool {
	return other.MinX >= r.MinX && other.MaxX <= r.MaxX &&
		other.MinY >= r.MinY && other.MaxY <= r.MaxY
}

// boundsOf computes the bounding box of a vertex ring.
func boundsOf(pts []Point) Rect {
	if len(pts) == 0 {
		return Rect{}
	}
	b := Rect{MinX: pts[0].X, MinY: pts[0].Y, MaxX: pts[0].X, MaxY: pts[0].Y}
	for _, p := range pts[1:] {
		b.MinX = math.Min(b.MinX, p.X)
		b.MinY = math.Min(b.MinY, p.Y)
		b.MaxX = math.Max(b.MaxX, p.X)
		b.MaxY = math.Max(b.MaxY, p.Y)
	}
	return b
}

// signedArea returns the signed area of a vertex ring: positive when the
// ring winds counter-clockwise in screen coordinates (Y down gives the
// opposite sign, which callers only use for orientation comparison).
func signedArea(pts []Point) float64 {
	area := 0.0
	n := len(pts)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += pts[i].X*pts[j].Y - pts[j].X*pts[i].Y
	}
	return area / 2
}

// pointInRing reports whether p lies inside the vertex ring using the
// even-odd rule with a half-open rule on Y, so a ray through a shared
// vertex counts exactly one of the two incident edges.
func pointInRing(p Point, ring []Point) bool {
	inside := false
	n := len(ring)
	for i := 0; i < n; i++ {
		a := ring[i]
		b := ring[(i+1)%n]
		if (a.Y <= p.Y) != (b.Y <= p.Y) {
			x := a.X + (p.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
			if x > p.X {
				inside = !inside
			}
		}
	}
	return inside
}

// segmentsIntersect reports whether segments a1-a2 and b1-b2 intersect,
// including endpoint touches. Used by the conservative coverage test, which
// treats any contact between boundaries as "not fully covered".
func segmentsIntersect(a1, a2, b1, b2 Point) bool {
	d1 := cross(b1, b2, a1)
	d2 := cross(b1, b2, a2)
	d3 := cross(a1, a2, b1)
	d4 := cross(a1, a2, b2)

	if ((d1 > geomEpsilon && d2 < -geomEpsilon) || (d1 < -geomEpsilon && d2 > geomEpsilon)) &&
		((d3 > geomEpsilon && d4 < -geomEpsilon) || (d3 < -geomEpsilon && d4 > geomEpsilon)) {
		return true
	}
	if math.Abs(d1) <= geomEpsilon && onSegment(b1, b2, a1) {
		return true
	}
	if math.Abs(d2) <= geomEpsilon && onSegment(b1, b2, a2) {
		return true
	}
	if math.Abs(d3) <= geomEpsilon && onSegment(a1, a2, b1) {
		return true
	}
	if math.Abs(d4) <= geomEpsilon && onSegment(a1, a2, b2) {
		return true
	}
	return false
}

// cross returns the z-component of (b-a) x (p-a).
func cross(a, b, p Point) float64 {
	return (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
}

// onSegment reports whether p, known colinear with a-b, lies within the
// segment's bounding box.
func onSegment(a, b, p Point) bool {
	return p.X >= math.Min(a.X, b.X)-geomEpsilon && p.X <= math.Max(a.X, b.X)+geomEpsilon &&
		p.Y >= math.Min(a.Y, b.Y)-geomEpsilon && p.Y <= math.Max(a.Y, b.Y)+geomEpsilon
}

// ringsIntersect reports whether any edge of ring a touches any edge of ring b.
func ringsIntersect(a, b []Point) bool {
	na, nb := len(a), len(b)
	for i := 0; i < na; i++ {
		a1 := a[i]
		a2 := a[(i+1)%na]
		for j := 0; j < nb; j++ {
			if segmentsIntersect(a1, a2, b[j], b[(j+1)%nb]) {
				return true
			}
		}
	}
	return false
}
