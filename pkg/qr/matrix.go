package qr

import (
	"fmt"
	"math"
)

// isqrt returns the integer square root of n.
//
// It panics if n is not a perfect square. A pixel count without an integer
// root can only come from a caller handing over a malformed grid, which is a
// programming defect rather than bad input.
func isqrt(n int) int {
	root := int(math.Sqrt(float64(n)))
	// Guard against float rounding on the boundary.
	for root > 0 && root*root > n {
		root--
	}
	for (root+1)*(root+1) <= n {
		root++
	}
	if root*root != n {
		panic(fmt.Sprintf("qr: pixel count %d is not a perfect square", n))
	}
	return root
}

// Matrix is a square pixel grid stored as a flat row-major sequence: the
// pixel at (row, col) lives at index row*side+col. The backing sequence
// always has a perfect-square length.
//
// Matrix is generic over the pixel type so tests and tooling can build grids
// of plain integers, while rendering works on Matrix[Color].
type Matrix[T any] struct {
	pixels []T
	side   int
}

// NewMatrix wraps a flat row-major pixel sequence in a Matrix.
//
// It panics if len(pixels) is not a perfect square; the encoder only ever
// produces square grids, so a non-square length signals a defect in the
// caller and is not reported as an error value.
func NewMatrix[T any](pixels []T) *Matrix[T] {
	return &Matrix[T]{
		pixels: pixels,
		side:   isqrt(len(pixels)),
	}
}

// Size returns the side length of the grid in pixels.
func (m *Matrix[T]) Size() int {
	return m.side
}

// Pixels returns the backing pixel sequence in row-major order. The slice is
// shared with the matrix, not copied.
func (m *Matrix[T]) Pixels() []T {
	return m.pixels
}

// Surround pads the matrix on all four sides with thickness rings of fill,
// growing the side length by 2*thickness and recentering the original pixels
// at offset (thickness, thickness). Growing an empty matrix yields a uniform
// (2*thickness)x(2*thickness) grid of fill: the border is laid out even when
// there is no payload to wrap.
//
// Quiet zones around barcodes are the typical use. Surround panics on a
// negative thickness.
func (m *Matrix[T]) Surround(thickness int, fill T) {
	if thickness < 0 {
		panic(fmt.Sprintf("qr: negative surround thickness %d", thickness))
	}

	side := m.side + 2*thickness
	pixels := make([]T, side*side)
	for i := range pixels {
		pixels[i] = fill
	}
	for row := 0; row < m.side; row++ {
		copy(pixels[(row+thickness)*side+thickness:], m.pixels[row*m.side:(row+1)*m.side])
	}

	m.pixels = pixels
	m.side = side
}
