package qr

import (
	"testing"
)

func TestIsqrt(t *testing.T) {
	tests := []struct {
		n        int
		expected int
	}{
		{0, 0},
		{1, 1},
		{4, 2},
		{9, 3},
		{25, 5},
		{441, 21},
		{1089, 33},
	}

	for _, tt := range tests {
		if got := isqrt(tt.n); got != tt.expected {
			t.Errorf("isqrt(%d) = %d, want %d", tt.n, got, tt.expected)
		}
	}
}

func TestIsqrtAllSquares(t *testing.T) {
	// Every perfect square up to typical barcode sizes round-trips exactly.
	for k := 0; k <= 200; k++ {
		if got := isqrt(k * k); got != k {
			t.Errorf("isqrt(%d) = %d, want %d", k*k, got, k)
		}
	}
}

func TestIsqrtPanicsOnNonSquare(t *testing.T) {
	for _, n := range []int{2, 3, 5, 8, 10, 24, 26, 440} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("isqrt(%d) did not panic", n)
				}
			}()
			isqrt(n)
		}()
	}
}

func TestNewMatrix(t *testing.T) {
	tests := []struct {
		name string
		size int
		side int
	}{
		{"empty", 0, 0},
		{"single pixel", 1, 1},
		{"2x2", 4, 2},
		{"3x3", 9, 3},
		{"21x21", 441, 21},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMatrix(make([]Color, tt.size))
			if got := m.Size(); got != tt.side {
				t.Errorf("Size() = %d, want %d", got, tt.side)
			}
			if got := len(m.Pixels()); got != tt.size {
				t.Errorf("len(Pixels()) = %d, want %d", got, tt.size)
			}
		})
	}
}

func TestNewMatrixPanicsOnNonSquare(t *testing.T) {
	for _, n := range []int{2, 5, 6, 12} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("NewMatrix(len %d) did not panic", n)
				}
			}()
			NewMatrix(make([]Color, n))
		}()
	}
}

func TestSurround(t *testing.T) {
	const (
		side      = 3
		thickness = 2
		fill      = -1
	)

	original := make([]int, side*side)
	for i := range original {
		original[i] = i
	}

	m := NewMatrix(append([]int(nil), original...))
	m.Surround(thickness, fill)

	padded := side + 2*thickness
	if got := m.Size(); got != padded {
		t.Fatalf("Size() = %d, want %d", got, padded)
	}

	for row := 0; row < padded; row++ {
		for col := 0; col < padded; col++ {
			got := m.Pixels()[row*padded+col]

			border := row < thickness || row >= side+thickness ||
				col < thickness || col >= side+thickness
			if border {
				if got != fill {
					t.Errorf("pixel (%d,%d) = %d, want fill %d", row, col, got, fill)
				}
				continue
			}

			if expected := original[(row-thickness)*side+(col-thickness)]; got != expected {
				t.Errorf("pixel (%d,%d) = %d, want %d", row, col, got, expected)
			}
		}
	}
}

func TestSurroundEmpty(t *testing.T) {
	// An empty matrix still grows a full border: (2*thickness)^2 fill pixels.
	m := NewMatrix([]int{})
	m.Surround(3, 7)

	if got := m.Size(); got != 6 {
		t.Fatalf("Size() = %d, want 6", got)
	}
	for i, px := range m.Pixels() {
		if px != 7 {
			t.Fatalf("pixel %d = %d, want 7", i, px)
		}
	}
}

func TestSurroundZeroThickness(t *testing.T) {
	m := NewMatrix([]int{1, 2, 3, 4})
	m.Surround(0, 9)

	if got := m.Size(); got != 2 {
		t.Errorf("Size() = %d, want 2", got)
	}
	for i, expected := range []int{1, 2, 3, 4} {
		if got := m.Pixels()[i]; got != expected {
			t.Errorf("pixel %d = %d, want %d", i, got, expected)
		}
	}
}

func TestSurroundRepeated(t *testing.T) {
	m := NewMatrix([]int{5})
	m.Surround(1, 8)
	m.Surround(1, 9)

	if got := m.Size(); got != 5 {
		t.Fatalf("Size() = %d, want 5", got)
	}

	// Center pixel survives both rounds, wrapped by an 8-ring then a 9-ring.
	px := m.Pixels()
	if px[2*5+2] != 5 {
		t.Errorf("center = %d, want 5", px[2*5+2])
	}
	if px[1*5+1] != 8 || px[1*5+3] != 8 || px[3*5+1] != 8 || px[3*5+3] != 8 {
		t.Error("inner ring overwritten")
	}
	if px[0] != 9 || px[4] != 9 || px[5*5-1] != 9 {
		t.Error("outer ring not filled")
	}
}

func TestSurroundPanicsOnNegativeThickness(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Surround(-1, ...) did not panic")
		}
	}()
	NewMatrix([]int{1}).Surround(-1, 0)
}
