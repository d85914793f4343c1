package terrain

import (
	"image"

	"golang.org/x/image/vector"
)

// Rasterizer is the external paint collaborator: it turns vector shapes
// into channel-buffer pixels and owns the visual handle of every paint.
type Rasterizer interface {
	// Paint fills the shape's region in the given buffer/channel with the
	// 5-bit value, preserving the channel's upper 3 bits, and returns the
	// visual handle for the paint.
	Paint(shape Shape, buffer, channel int, value uint8) Handle
	// Release frees the visual handle of a removed queue entry.
	Release(h Handle)
	// ClearChannel zeroes the 5-bit terrain keys of one channel, leaving
	// the upper bits untouched. Used before a layer replay.
	ClearChannel(buffer, channel int)
	// ReadBuffer returns the current raw bytes of a channel buffer.
	ReadBuffer(buffer int) []uint8
}

// SoftwareRasterizer is a CPU rasterizer on x/image/vector coverage fills.
// A pixel belongs to a shape when its coverage is at least one half, so
// adjacent shapes sharing an edge never double-claim or drop pixels.
type SoftwareRasterizer struct {
	width, height int
	buffers       [NumBuffers][]uint8
	nextHandle    Handle
	live          map[Handle]struct{}

	// scratch coverage mask, reused across paints
	mask *image.Alpha
}

// NewSoftwareRasterizer creates a rasterizer with zeroed channel buffers.
func NewSoftwareRasterizer(width, height int) *SoftwareRasterizer {
	r := &SoftwareRasterizer{
		width:  width,
		height: height,
		live:   make(map[Handle]struct{}),
		mask:   image.NewAlpha(image.Rect(0, 0, width, height)),
	}
	for b := range r.buffers {
		r.buffers[b] = make([]uint8, width*height*LayersPerBuffer)
	}
	return r
}

// Paint implements Rasterizer.
func (r *SoftwareRasterizer) Paint(shape Shape, buffer, channel int, value uint8) Handle {
	r.fill(shape, buffer, channel, value)
	r.nextHandle++
	h := r.nextHandle
	r.live[h] = struct{}{}
	return h
}

// Release implements Rasterizer. The software backend keeps no per-shape
// visual state, so this only retires the handle.
func (r *SoftwareRasterizer) Release(h Handle) {
	delete(r.live, h)
}

// LiveHandles returns the number of un-released paint handles.
func (r *SoftwareRasterizer) LiveHandles() int { return len(r.live) }

// ClearChannel implements Rasterizer.
func (r *SoftwareRasterizer) ClearChannel(buffer, channel int) {
	data := r.buffers[buffer]
	for i := channel; i < len(data); i += LayersPerBuffer {
		data[i] &^= pixelValueMask
	}
}

// ReadBuffer implements Rasterizer.
func (r *SoftwareRasterizer) ReadBuffer(buffer int) []uint8 {
	return r.buffers[buffer]
}

// fill rasterizes the shape's outline minus holes into the coverage mask,
// then stamps value into the low 5 bits of covered channel bytes.
func (r *SoftwareRasterizer) fill(shape Shape, buffer, channel int, value uint8) {
	ras := vector.NewRasterizer(r.width, r.height)

	outline := shape.Outline()
	if len(outline) < 3 {
		return
	}
	// Coverage accumulates signed winding area: holes must wind opposite
	// to the outline to cancel it.
	outerCW := signedArea(outline) < 0
	addRing(ras, outline, false)
	for _, hole := range shape.Holes() {
		holeCW := signedArea(hole) < 0
		addRing(ras, hole, holeCW == outerCW)
	}

	for i := range r.mask.Pix {
		r.mask.Pix[i] = 0
	}
	ras.Draw(r.mask, r.mask.Bounds(), image.Opaque, image.Point{})

	data := r.buffers[buffer]
	v := value & pixelValueMask
	for i, cov := range r.mask.Pix {
		if cov >= 128 {
			idx := i*LayersPerBuffer + channel
			data[idx] = data[idx]&^pixelValueMask | v
		}
	}
}

// addRing appends a closed ring to the path, optionally reversed.
func addRing(ras *vector.Rasterizer, ring []Point, reverse bool) {
	n := len(ring)
	at := func(i int) Point {
		if reverse {
			return ring[n-1-i]
		}
		return ring[i]
	}
	p0 := at(0)
	ras.MoveTo(float32(p0.X), float32(p0.Y))
	for i := 1; i < n; i++ {
		p := at(i)
		ras.LineTo(float32(p.X), float32(p.Y))
	}
	ras.ClosePath()
}
