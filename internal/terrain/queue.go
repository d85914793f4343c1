package terrain

// Handle identifies the rasterizer-side visual of an enqueued shape. It is
// opaque to the engine and released when its entry leaves the queue.
type Handle uint64

// QueueEntry is one painted shape plus its external visual handle.
// Temporary entries paint normally but are excluded from snapshots.
type QueueEntry struct {
	Shape     Shape
	Handle    Handle
	Temporary bool
}

// ShapeQueue is the ordered paint history of one layer: FIFO append,
// LIFO undo. Queue order is paint order; later entries override earlier
// ones wherever they overlap.
type ShapeQueue struct {
	entries []*QueueEntry
}

// Enqueue appends an entry.
func (q *ShapeQueue) Enqueue(e *QueueEntry) {
	q.entries = append(q.entries, e)
}

// Dequeue removes and returns the most recently appended entry, or nil when
// the queue is empty. Repeated calls undo paints newest-first.
func (q *ShapeQueue) Dequeue() *QueueEntry {
	if len(q.entries) == 0 {
		return nil
	}
	e := q.entries[len(q.entries)-1]
	q.entries = q.entries[:len(q.entries)-1]
	return e
}

// Len returns the number of entries.
func (q *ShapeQueue) Len() int { return len(q.entries) }

// Entries returns the live entry slice in paint order. Callers must not
// mutate it.
func (q *ShapeQueue) Entries() []*QueueEntry { return q.entries }

// Remove deletes the entry with the given handle, preserving order.
func (q *ShapeQueue) Remove(h Handle) *QueueEntry {
	for i, e := range q.entries {
		if e.Handle == h {
			q.entries = append(q.entries[:i], q.entries[i+1:]...)
			return e
		}
	}
	return nil
}

// Clean removes older entries whose shape is fully covered by a single
// later entry in the same queue, and returns them so the caller can release
// their visual handles. The most recent retain entries are never touched,
// whatever their coverage, which bounds the undo depth Clean can destroy.
// Removal never changes the decoded raster: a removed shape was entirely
// repainted by a later one.
func (q *ShapeQueue) Clean(retain int) []*QueueEntry {
	if retain < 0 {
		retain = 0
	}
	limit := len(q.entries) - retain
	if limit <= 0 {
		return nil
	}

	var removed []*QueueEntry
	kept := q.entries[:0]
	for i, e := range q.entries {
		if i >= limit || !q.coveredLater(i) {
			kept = append(kept, e)
			continue
		}
		removed = append(removed, e)
	}
	q.entries = kept
	return removed
}

// coveredLater reports whether entry i is fully covered by some later entry.
func (q *ShapeQueue) coveredLater(i int) bool {
	older := q.entries[i].Shape
	for _, later := range q.entries[i+1:] {
		if ShapeCovers(later.Shape, older) {
			return true
		}
	}
	return false
}

// ShapeQueues groups the per-layer queues of one scene.
type ShapeQueues struct {
	layers [NumLayers]ShapeQueue
}

// Layer returns the queue for a layer index. Panics on out-of-range input;
// public entry points validate the layer first.
func (qs *ShapeQueues) Layer(layer int) *ShapeQueue {
	return &qs.layers[layer]
}

// IsPixelValueUsed reports whether any layer's queue holds a shape with the
// given pixel value. This is the authoritative "key is live" check consulted
// before a registry release.
func (qs *ShapeQueues) IsPixelValueUsed(value uint8) bool {
	for l := range qs.layers {
		for _, e := range qs.layers[l].entries {
			if e.Shape.PixelValue() == value {
				return true
			}
		}
	}
	return false
}

// TotalLen returns the entry count across all layers.
func (qs *ShapeQueues) TotalLen() int {
	n := 0
	for l := range qs.layers {
		n += qs.layers[l].Len()
	}
	return n
}
