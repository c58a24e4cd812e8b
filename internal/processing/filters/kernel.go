package filters

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// Kernel is a square convolution kernel. Each output sample is
// sum(weights·neighbourhood)/Divisor + Offset, clipped to [0, 255].
// Weights are listed row-major, top row first; the kernel is flipped
// vertically before it is applied. Border pixels within Size/2 of an edge
// pass through unfiltered.
type Kernel struct {
	Size    int
	Weights []float32
	Divisor float64
	Offset  float64
}

// SmoothKernel is the mild low-pass used as the degenerate image for sharpness.
var SmoothKernel = Kernel{
	Size: 3,
	Weights: []float32{
		1, 1, 1,
		1, 5, 1,
		1, 1, 1,
	},
	Divisor: 13,
}

func (k Kernel) validate() error {
	if k.Size < 1 || k.Size%2 == 0 {
		return fmt.Errorf("kernel size must be odd and positive, got %d", k.Size)
	}
	if len(k.Weights) != k.Size*k.Size {
		return fmt.Errorf("kernel of size %d needs %d weights, got %d", k.Size, k.Size*k.Size, len(k.Weights))
	}
	if k.Divisor == 0 {
		return fmt.Errorf("kernel divisor must not be zero")
	}
	return nil
}

// mat builds the correlation kernel handed to filter2D: weights scaled by the
// divisor, rows in reverse order.
func (k Kernel) mat() gocv.Mat {
	m := gocv.NewMatWithSize(k.Size, k.Size, gocv.MatTypeCV32F)
	last := k.Size - 1
	for r := 0; r < k.Size; r++ {
		for c := 0; c < k.Size; c++ {
			w := k.Weights[(last-r)*k.Size+c]
			m.SetFloatAt(r, c, float32(float64(w)/k.Divisor))
		}
	}
	return m
}

// Convolve filters an 8-bit Mat into dst. The outer Size/2 rows and columns
// are copied from src unfiltered, and an image smaller than the kernel is
// copied as is.
func (k Kernel) Convolve(src gocv.Mat, dst *gocv.Mat) error {
	if err := k.validate(); err != nil {
		return err
	}

	rows, cols := src.Rows(), src.Cols()
	if rows < k.Size || cols < k.Size {
		src.CopyTo(dst)
		return nil
	}

	kernel := k.mat()
	defer kernel.Close()

	gocv.Filter2D(src, dst, gocv.MatTypeCV8U, kernel, image.Pt(-1, -1), k.Offset, gocv.BorderReplicate)

	m := k.Size / 2
	if m == 0 {
		return nil
	}
	for _, strip := range []image.Rectangle{
		image.Rect(0, 0, cols, m),
		image.Rect(0, rows-m, cols, rows),
		image.Rect(0, m, m, rows-m),
		image.Rect(cols-m, m, cols, rows-m),
	} {
		copyRegion(src, dst, strip)
	}
	return nil
}

func copyRegion(src gocv.Mat, dst *gocv.Mat, rect image.Rectangle) {
	if rect.Empty() {
		return
	}
	from := src.Region(rect)
	defer from.Close()
	to := dst.Region(rect)
	defer to.Close()
	from.CopyTo(&to)
}
