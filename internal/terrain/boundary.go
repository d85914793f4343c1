package terrain

import (
	"math"
	"sort"
)

// Region is the result of a boundary resolution: the minimal wall-enclosed
// outer ring around a point, minus any fully-closed interior rings.
type Region struct {
	Outer []Point
	Holes [][]Point
}

// rayCrossing is one closed wall crossed by the westward ray from the query
// point, ordered nearest-first.
type rayCrossing struct {
	wall *Wall
	dist float64
}

// directedWall is a traversal position: walking wall along wall.A->wall.B or
// reversed, identified by the vertex the walk came from.
type directedWall struct {
	id   WallID
	from vertexKey
}

// EncompassingPolygon computes the minimal closed wall boundary enclosing p,
// with holes for fully-closed interior wall rings. elevation, when non-nil,
// excludes walls whose vertical band does not contain it. Open walls never
// participate. Returns ErrNoEnclosingBoundary when no candidate produces a
// closed walk around p.
func (g *WallGraph) EncompassingPolygon(p Point, elevation *float64) (Region, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	crossings := g.westwardCrossings(p, elevation)
	for _, c := range crossings {
		// Either traversal direction of the crossing wall can trace the
		// enclosing face; try both and keep the walk that surrounds p.
		for _, start := range [2]Point{c.wall.A, c.wall.B} {
			ring, ids, ok := g.traceFace(c.wall, start, elevation)
			if !ok || !pointInRing(p, ring) {
				continue
			}
			return Region{Outer: ring, Holes: g.collectHoles(ring, ids, elevation)}, nil
		}
		// Dead end or a walk that does not surround p: discard this
		// crossing and retry from the next-nearest one.
	}
	return Region{}, ErrNoEnclosingBoundary
}

// westwardCrossings lists closed walls crossed by the ray going west from p,
// sorted nearest-first. The half-open rule on Y counts a crossing through a
// shared vertex against exactly one incident wall, and skips horizontal
// walls entirely.
func (g *WallGraph) westwardCrossings(p Point, elevation *float64) []rayCrossing {
	var out []rayCrossing
	for _, w := range g.walls {
		if !w.blocksAt(elevation) {
			continue
		}
		lo, hi := w.A, w.B
		if lo.Y > hi.Y {
			lo, hi = hi, lo
		}
		if lo.Y > p.Y || hi.Y <= p.Y || lo.Y == hi.Y {
			continue
		}
		x := lo.X + (p.Y-lo.Y)*(hi.X-lo.X)/(hi.Y-lo.Y)
		if x < p.X {
			out = append(out, rayCrossing{wall: w, dist: p.X - x})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].dist != out[j].dist {
			return out[i].dist < out[j].dist
		}
		return out[i].wall.ID < out[j].wall.ID
	})
	return out
}

// traceFace walks the planar face starting along start->other(start) of w.
// At each vertex the walk takes the first closed wall clockwise from the
// reversed incoming direction, the classic angular face traversal. The walk
// fails at dead ends (no onward closed wall besides the reverse) and on any
// revisit that is not the starting directed wall.
func (g *WallGraph) traceFace(w *Wall, start Point, elevation *float64) ([]Point, []WallID, bool) {
	startVert := g.vertexAt(start)
	if startVert == nil {
		return nil, nil, false
	}

	first := directedWall{id: w.ID, from: keyFor(startVert.pt)}
	visited := map[directedWall]struct{}{first: {}}

	var ring []Point
	var ids []WallID

	u := startVert
	cur := w
	limit := 4*len(g.walls) + 8
	for step := 0; step < limit; step++ {
		ring = append(ring, u.pt)
		ids = append(ids, cur.ID)

		v := g.vertexAt(u.otherEnd(cur))
		if v == nil {
			return nil, nil, false
		}
		next := g.nextClockwise(v, cur, elevation)
		if next == nil {
			return nil, nil, false // dead end
		}
		d := directedWall{id: next.ID, from: keyFor(v.pt)}
		if d == first {
			return ring, ids, true
		}
		if _, seen := visited[d]; seen {
			return nil, nil, false
		}
		visited[d] = struct{}{}
		u, cur = v, next
	}
	return nil, nil, false
}

// nextClockwise picks the onward wall at v: of the closed walls at v other
// than incoming, the one whose outgoing angle is the smallest clockwise
// rotation from the direction back along incoming. Exactly-overlapping
// duplicates sort last so colinear wall stacks stay stable.
func (g *WallGraph) nextClockwise(v *graphVertex, incoming *Wall, elevation *float64) *Wall {
	backAngle := v.angleOf(incoming)

	var best *Wall
	bestDelta := math.Inf(1)
	for _, cand := range v.walls {
		if cand.ID == incoming.ID || !cand.blocksAt(elevation) {
			continue
		}
		delta := math.Mod(backAngle-v.angleOf(cand), 2*math.Pi)
		if delta < 0 {
			delta += 2 * math.Pi
		}
		if delta < geomEpsilon {
			delta = 2 * math.Pi
		}
		if delta < bestDelta {
			bestDelta = delta
			best = cand
		}
	}
	return best
}

// collectHoles finds fully-closed wall rings strictly inside the outer ring.
// Walls on the outer walk, open walls, and walls with an endpoint outside
// the boundary are discarded; remaining walls that close into a cycle become
// holes, the rest are noise.
func (g *WallGraph) collectHoles(outer []Point, outerIDs []WallID, elevation *float64) [][]Point {
	onOuter := make(map[WallID]struct{}, len(outerIDs))
	for _, id := range outerIDs {
		onOuter[id] = struct{}{}
	}
	outerBounds := boundsOf(outer)

	candidates := make(map[WallID]*Wall)
	for _, w := range g.walls {
		if _, used := onOuter[w.ID]; used {
			continue
		}
		if !w.blocksAt(elevation) {
			continue
		}
		if !outerBounds.ContainsRect(boundsOf([]Point{w.A, w.B})) {
			continue
		}
		if !pointInRing(w.A, outer) || !pointInRing(w.B, outer) {
			continue
		}
		candidates[w.ID] = w
	}

	var holes [][]Point
	consumed := make(map[WallID]struct{})

	// Deterministic iteration order.
	ids := make([]WallID, 0, len(candidates))
	for id := range candidates {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		if _, done := consumed[id]; done {
			continue
		}
		w := candidates[id]
		ring, ringIDs, ok := g.traceFace(w, w.A, elevation)
		if !ok {
			consumed[id] = struct{}{} // open-ended noise
			continue
		}
		valid := true
		for _, rid := range ringIDs {
			if _, isCand := candidates[rid]; !isCand {
				valid = false
				break
			}
		}
		for _, rid := range ringIDs {
			consumed[rid] = struct{}{}
		}
		if valid && len(ring) >= 3 {
			holes = append(holes, ring)
		}
	}
	return holes
}
