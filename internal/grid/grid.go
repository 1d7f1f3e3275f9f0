// Package grid holds the tile coordinate types shared by the map, the
// visibility algorithm and events.
package grid

import "math/bits"

// Point is a tile coordinate. X grows east, Y grows south.
type Point struct{ X, Y int }

// Add returns p offset by (dx, dy).
func (p Point) Add(dx, dy int) Point { return Point{p.X + dx, p.Y + dy} }

// Chebyshev returns the king-move distance between p and q.
func (p Point) Chebyshev(q Point) int {
	return max(abs(p.X-q.X), abs(p.Y-q.Y))
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Mask is a fixed-size boolean grid, one bit per tile.
type Mask struct {
	width, height int
	bits          []uint64
}

// NewMask returns an all-false mask of the given size.
func NewMask(width, height int) *Mask {
	n := width * height
	return &Mask{width: width, height: height, bits: make([]uint64, (n+63)/64)}
}

// Size returns the mask dimensions.
func (m *Mask) Size() (int, int) { return m.width, m.height }

// Contains reports whether p lies inside the mask.
func (m *Mask) Contains(p Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < m.width && p.Y < m.height
}

// Get reports the bit at p; points outside the mask read false.
func (m *Mask) Get(p Point) bool {
	if !m.Contains(p) {
		return false
	}
	i := p.Y*m.width + p.X
	return m.bits[i/64]&(1<<(i%64)) != 0
}

// Set sets the bit at p. Points outside the mask are ignored.
func (m *Mask) Set(p Point) {
	if !m.Contains(p) {
		return
	}
	i := p.Y*m.width + p.X
	m.bits[i/64] |= 1 << (i % 64)
}

// Reset clears every bit.
func (m *Mask) Reset() { clear(m.bits) }

// Count returns the number of set bits.
func (m *Mask) Count() int {
	n := 0
	m.Each(func(Point) { n++ })
	return n
}

// Each calls fn for every set point in row-major order.
func (m *Mask) Each(fn func(Point)) {
	for w, word := range m.bits {
		for word != 0 {
			b := bits.TrailingZeros64(word)
			word &^= 1 << b
			i := w*64 + b
			fn(Point{i % m.width, i / m.width})
		}
	}
}

// SubsetOf reports whether every set bit of m is also set in other.
// Masks of different size are never subsets of each other.
func (m *Mask) SubsetOf(other *Mask) bool {
	if m.width != other.width || m.height != other.height {
		return false
	}
	for i, word := range m.bits {
		if word&^other.bits[i] != 0 {
			return false
		}
	}
	return true
}

// Terrain is the read-only map view the visibility code consumes.
type Terrain interface {
	// Size returns the map width and height in tiles.
	Size() (width, height int)
	InBounds(p Point) bool
	// BlocksSight reports whether p is opaque. Out-of-bounds points block.
	BlocksSight(p Point) bool
}

// Lighting is implemented by terrains that have dark tiles.
type Lighting interface {
	Lit(p Point) bool
}
