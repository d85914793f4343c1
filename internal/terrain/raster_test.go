package terrain

import "testing"

// countingRasterizer wraps SoftwareRasterizer and counts buffer reads, so
// tests can observe which buffers a rebuild re-derives.
type countingRasterizer struct {
	*SoftwareRasterizer
	reads [NumBuffers]int
}

func (c *countingRasterizer) ReadBuffer(buffer int) []uint8 {
	c.reads[buffer]++
	return c.SoftwareRasterizer.ReadBuffer(buffer)
}

func TestBufferForLayer_Split(t *testing.T) {
	cases := []struct{ layer, buffer, channel int }{
		{0, 0, 0}, {1, 0, 1}, {2, 0, 2},
		{3, 1, 0}, {4, 1, 1}, {5, 1, 2},
	}
	for _, c := range cases {
		b, ch := BufferForLayer(c.layer)
		if b != c.buffer || ch != c.channel {
			t.Fatalf("layer %d -> (%d,%d), want (%d,%d)", c.layer, b, ch, c.buffer, c.channel)
		}
	}
}

func TestLayerRaster_OutOfSceneIsZero(t *testing.T) {
	ras := NewSoftwareRasterizer(64, 64)
	lr := NewLayerRaster(64, 64, ras)
	for _, p := range []Point{{-1, 10}, {10, -1}, {64, 10}, {10, 64}} {
		if got := lr.TerrainLayersAt(p); got != ([NumLayers]uint8{}) {
			t.Fatalf("out-of-scene %v decoded %v, want zeros", p, got)
		}
	}
}

func TestLayerRaster_FiveBitDecode(t *testing.T) {
	ras := NewSoftwareRasterizer(16, 16)
	lr := NewLayerRaster(16, 16, ras)

	// Poke reserved upper bits plus a 5-bit value straight into buffer 0,
	// channel 1 (layer 1): the decode must mask the upper 3 bits away.
	data := ras.ReadBuffer(0)
	idx := (5*16 + 5) * LayersPerBuffer
	data[idx+1] = 0xE0 | 17
	lr.MarkDirty(1)

	got := lr.TerrainLayersAt(Point{X: 5, Y: 5})
	if got[1] != 17 {
		t.Fatalf("layer 1 decoded %d, want 17", got[1])
	}
	for l := 0; l < NumLayers; l++ {
		if l != 1 && got[l] != 0 {
			t.Fatalf("layer %d decoded %d, want 0", l, got[l])
		}
	}
}

func TestLayerRaster_DirtyRebuildIsPerBuffer(t *testing.T) {
	soft := NewSoftwareRasterizer(32, 32)
	ras := &countingRasterizer{SoftwareRasterizer: soft}
	lr := NewLayerRaster(32, 32, ras)

	// Initial rebuild of both buffers.
	lr.MarkAllDirty()
	lr.TerrainLayersAt(Point{X: 1, Y: 1})
	if ras.reads[0] != 1 || ras.reads[1] != 1 {
		t.Fatalf("initial rebuild reads = %v, want one each", ras.reads)
	}

	// Painting layer 4 dirties only buffer 1.
	shape := NewGridCell(0, 0, 16, 4).WithPixelValue(17)
	buffer, channel := BufferForLayer(4)
	ras.Paint(shape, buffer, channel, 17)
	lr.MarkDirty(4)

	got := lr.TerrainLayersAt(Point{X: 8, Y: 8})
	if ras.reads[0] != 1 {
		t.Fatalf("buffer 0 re-read %d times, want 1 (not dirtied)", ras.reads[0])
	}
	if ras.reads[1] != 2 {
		t.Fatalf("buffer 1 read %d times, want 2", ras.reads[1])
	}
	if got[4] != 17 {
		t.Fatalf("layer 4 decoded %d, want 17", got[4])
	}
	for _, l := range []int{0, 1, 2} {
		if got[l] != 0 {
			t.Fatalf("layer %d decoded %d after layer-4 paint, want 0", l, got[l])
		}
	}

	// A clean read triggers no further buffer reads.
	lr.TerrainLayersAt(Point{X: 8, Y: 8})
	if ras.reads[0] != 1 || ras.reads[1] != 2 {
		t.Fatalf("clean read re-derived buffers: %v", ras.reads)
	}
}

func TestSoftwareRasterizer_PaintPreservesUpperBits(t *testing.T) {
	ras := NewSoftwareRasterizer(32, 32)
	data := ras.ReadBuffer(0)
	idx := (8*32 + 8) * LayersPerBuffer
	data[idx] = 0xA0 // reserved bits set out-of-band

	shape := NewGridCell(0, 0, 32, 0).WithPixelValue(5)
	ras.Paint(shape, 0, 0, 5)
	if data[idx] != 0xA0|5 {
		t.Fatalf("channel byte = %#x, want upper bits kept and value 5", data[idx])
	}

	ras.ClearChannel(0, 0)
	if data[idx] != 0xA0 {
		t.Fatalf("channel byte after clear = %#x, want %#x", data[idx], 0xA0)
	}
}

func TestSoftwareRasterizer_HoleIsNotPainted(t *testing.T) {
	ras := NewSoftwareRasterizer(64, 64)
	shape := NewPolygonWithHoles(
		[]Point{{4, 4}, {60, 4}, {60, 60}, {4, 60}},
		[][]Point{{{24, 24}, {40, 24}, {40, 40}, {24, 40}}},
		0,
	).WithPixelValue(3)
	ras.Paint(shape, 0, 0, 3)

	data := ras.ReadBuffer(0)
	at := func(x, y int) uint8 { return data[(y*64+x)*LayersPerBuffer] & pixelValueMask }
	if at(10, 10) != 3 {
		t.Fatal("point between outline and hole should be painted")
	}
	if at(32, 32) != 0 {
		t.Fatal("point inside the hole should stay unpainted")
	}
	if at(2, 2) != 0 {
		t.Fatal("point outside the outline should stay unpainted")
	}
}
