package terrain

import "math"

// BufferForLayer maps a layer index to its owning channel buffer and the
// colour channel within it: layers 0-2 live in buffer 0, 3-5 in buffer 1.
func BufferForLayer(layer int) (buffer, channel int) {
	return layer / LayersPerBuffer, layer % LayersPerBuffer
}

// channelBuffer holds three layers' worth of terrain keys, one per colour
// channel. A channel byte keeps its terrain key in the low 5 bits; the upper
// 3 bits are reserved and preserved across repaints.
type channelBuffer struct {
	data  []uint8 // width*height*LayersPerBuffer, channel-interleaved
	dirty bool
}

// LayerRaster owns the scene's channel buffers and the merged point-query
// cache. The cache is derived state, rebuilt from the rasterizer's buffers
// whenever a read observes a dirty bit; it is never read stale.
type LayerRaster struct {
	width, height int
	buffers       [NumBuffers]channelBuffer
	cache         [][NumLayers]uint8
	ras           Rasterizer
}

// NewLayerRaster creates a raster of the given pixel dimensions backed by
// the rasterizer's buffers.
func NewLayerRaster(width, height int, ras Rasterizer) *LayerRaster {
	lr := &LayerRaster{width: width, height: height, ras: ras}
	for b := range lr.buffers {
		lr.buffers[b].data = make([]uint8, width*height*LayersPerBuffer)
	}
	lr.cache = make([][NumLayers]uint8, width*height)
	return lr
}

// Width returns the raster width in pixels.
func (lr *LayerRaster) Width() int { return lr.width }

// Height returns the raster height in pixels.
func (lr *LayerRaster) Height() int { return lr.height }

// MarkDirty flags the buffer owning layer for re-derivation on next read.
// The two-buffer split means a change to layers 0-2 never forces a re-read
// of layers 3-5.
func (lr *LayerRaster) MarkDirty(layer int) {
	if layer < 0 || layer >= NumLayers {
		return
	}
	b, _ := BufferForLayer(layer)
	lr.buffers[b].dirty = true
}

// MarkAllDirty flags every buffer.
func (lr *LayerRaster) MarkAllDirty() {
	for b := range lr.buffers {
		lr.buffers[b].dirty = true
	}
}

// Rebuild re-reads every dirty buffer from the rasterizer and, if anything
// changed, recomputes the merged per-point cache. Cost is raster area times
// the number of dirty buffers.
func (lr *LayerRaster) Rebuild() {
	changed := false
	for b := range lr.buffers {
		if !lr.buffers[b].dirty {
			continue
		}
		copy(lr.buffers[b].data, lr.ras.ReadBuffer(b))
		lr.buffers[b].dirty = false
		changed = true
	}
	if !changed {
		return
	}
	for i := range lr.cache {
		for layer := 0; layer < NumLayers; layer++ {
			b, ch := BufferForLayer(layer)
			lr.cache[i][layer] = lr.buffers[b].data[i*LayersPerBuffer+ch] & pixelValueMask
		}
	}
}

// dirty reports whether any buffer awaits a rebuild.
func (lr *LayerRaster) dirty() bool {
	for b := range lr.buffers {
		if lr.buffers[b].dirty {
			return true
		}
	}
	return false
}

// TerrainLayersAt returns the decoded terrain key for every layer at p,
// rebuilding first if any buffer is dirty. Out-of-scene points decode to
// all zeroes. O(1) after a rebuild.
func (lr *LayerRaster) TerrainLayersAt(p Point) [NumLayers]uint8 {
	x := int(math.Floor(p.X))
	y := int(math.Floor(p.Y))
	if x < 0 || x >= lr.width || y < 0 || y >= lr.height {
		return [NumLayers]uint8{}
	}
	if lr.dirty() {
		lr.Rebuild()
	}
	return lr.cache[y*lr.width+x]
}
