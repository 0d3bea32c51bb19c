package qr_test

import (
	"fmt"

	"github.com/timvisee/qr2term/pkg/qr"
)

func ExampleNewMatrix() {
	// Wrap a flat row-major pixel sequence; the side length is derived.
	m := qr.NewMatrix([]int{1, 2, 3, 4, 5, 6, 7, 8, 9})

	fmt.Println("Side:", m.Size())
	fmt.Println("Pixels:", len(m.Pixels()))
	// Output:
	// Side: 3
	// Pixels: 9
}

func ExampleMatrix_Surround() {
	// Pad a 2x2 matrix with a one-pixel border of zeros.
	m := qr.NewMatrix([]int{1, 2, 3, 4})
	m.Surround(1, 0)

	side := m.Size()
	for row := 0; row < side; row++ {
		fmt.Println(m.Pixels()[row*side : (row+1)*side])
	}
	// Output:
	// [0 0 0 0]
	// [0 1 2 0]
	// [0 3 4 0]
	// [0 0 0 0]
}

func ExampleRenderer_Height() {
	// Two pixel rows pack into one text line; odd sides round up.
	r := qr.NewRenderer()

	even := qr.NewMatrix(make([]qr.Color, 4*4))
	odd := qr.NewMatrix(make([]qr.Color, 21*21))

	fmt.Println("4x4 lines:", r.Height(even))
	fmt.Println("21x21 lines:", r.Height(odd))
	// Output:
	// 4x4 lines: 2
	// 21x21 lines: 11
}

func ExampleNew() {
	// Encode and inspect the pixel grid without rendering.
	code, err := qr.New("https://example.com", qr.LevelMedium)
	if err != nil {
		fmt.Println("encode failed:", err)
		return
	}

	m := code.Matrix()
	fmt.Println("Square:", m.Size()*m.Size() == len(m.Pixels()))
	// Output:
	// Square: true
}
