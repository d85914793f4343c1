package terrain

import "testing"

func entryFor(s Shape, h Handle) *QueueEntry {
	return &QueueEntry{Shape: s, Handle: h}
}

func TestShapeQueue_DequeueIsLIFO(t *testing.T) {
	var q ShapeQueue
	q.Enqueue(entryFor(NewGridCell(0, 0, 10, 0).WithPixelValue(1), 1))
	q.Enqueue(entryFor(NewGridCell(1, 0, 10, 0).WithPixelValue(2), 2))

	if e := q.Dequeue(); e == nil || e.Handle != 2 {
		t.Fatalf("first dequeue = %+v, want handle 2", e)
	}
	if e := q.Dequeue(); e == nil || e.Handle != 1 {
		t.Fatalf("second dequeue = %+v, want handle 1", e)
	}
	if e := q.Dequeue(); e != nil {
		t.Fatalf("empty dequeue = %+v, want nil", e)
	}
}

func TestShapeQueue_CleanRemovesCoveredEntries(t *testing.T) {
	var q ShapeQueue
	small := NewHexagon(Point{X: 50, Y: 50}, 5, 0).WithPixelValue(1)
	big := NewGridCell(0, 0, 100, 0).WithPixelValue(2)
	side := NewGridCell(20, 0, 100, 0).WithPixelValue(3) // not covering small

	q.Enqueue(entryFor(small, 1))
	q.Enqueue(entryFor(side, 2))
	q.Enqueue(entryFor(big, 3))

	removed := q.Clean(0)
	if len(removed) != 1 || removed[0].Handle != 1 {
		t.Fatalf("removed = %d entries, want just the covered hex", len(removed))
	}
	if q.Len() != 2 {
		t.Fatalf("queue len = %d, want 2", q.Len())
	}
}

func TestShapeQueue_CleanHonoursRetain(t *testing.T) {
	var q ShapeQueue
	small := NewHexagon(Point{X: 50, Y: 50}, 5, 0).WithPixelValue(1)
	big := NewGridCell(0, 0, 100, 0).WithPixelValue(2)

	q.Enqueue(entryFor(small, 1))
	q.Enqueue(entryFor(big, 2))

	// Both entries sit inside the protected window: nothing may go.
	if removed := q.Clean(2); len(removed) != 0 {
		t.Fatalf("removed %d entries inside the retain window", len(removed))
	}
	if removed := q.Clean(1); len(removed) != 1 {
		t.Fatalf("removed %d entries, want the covered one", len(removed))
	}
}

func TestShapeQueue_CleanKeepsPartialOverlaps(t *testing.T) {
	var q ShapeQueue
	a := NewGridCell(0, 0, 10, 0).WithPixelValue(1)
	b := NewGridCell(0, 0, 10, 0).WithPixelValue(2) // same footprint, boundary contact

	q.Enqueue(entryFor(a, 1))
	q.Enqueue(entryFor(b, 2))
	if removed := q.Clean(0); len(removed) != 0 {
		t.Fatalf("equal-footprint entries must survive, removed %d", len(removed))
	}
}

func TestShapeQueues_IsPixelValueUsed(t *testing.T) {
	var qs ShapeQueues
	qs.Layer(3).Enqueue(entryFor(NewGridCell(0, 0, 10, 3).WithPixelValue(9), 1))

	if !qs.IsPixelValueUsed(9) {
		t.Fatal("value 9 is enqueued on layer 3")
	}
	if qs.IsPixelValueUsed(8) {
		t.Fatal("value 8 was never painted")
	}
	qs.Layer(3).Dequeue()
	if qs.IsPixelValueUsed(9) {
		t.Fatal("value 9 should be free after dequeue")
	}
}
