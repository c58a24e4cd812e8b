package conversion

import (
	"fmt"
	"image"
	"math"

	"image-processor/internal/opencv/safe"

	"gocv.io/x/gocv"
)

// FitSize returns the largest size with the same aspect ratio as (width, height)
// that fits within (maxWidth, maxHeight). Sizes already inside the box are
// returned unchanged; nothing is ever scaled up.
func FitSize(width, height, maxWidth, maxHeight int) (int, int) {
	if width <= 0 || height <= 0 {
		return 0, 0
	}
	if maxWidth < 1 {
		maxWidth = 1
	}
	if maxHeight < 1 {
		maxHeight = 1
	}
	if width <= maxWidth && height <= maxHeight {
		return width, height
	}

	ratio := math.Min(float64(maxWidth)/float64(width), float64(maxHeight)/float64(height))
	newWidth := int(math.Round(float64(width) * ratio))
	newHeight := int(math.Round(float64(height) * ratio))

	newWidth = min(max(newWidth, 1), maxWidth)
	newHeight = min(max(newHeight, 1), maxHeight)
	return newWidth, newHeight
}

// ResizeMat resizes Mat to new dimensions using specified interpolation
func ResizeMat(src *safe.Mat, newWidth, newHeight int, interpolation gocv.InterpolationFlags, tracker safe.MemoryTracker, tag string) (*safe.Mat, error) {
	if err := safe.ValidateMatForOperation(src, "Mat resizing"); err != nil {
		return nil, err
	}

	if err := safe.ValidateDimensions(newWidth, newHeight, "Mat resizing"); err != nil {
		return nil, err
	}

	if newWidth == src.Cols() && newHeight == src.Rows() {
		return safe.NewMatFromMatWithTracker(src.GetMat(), tracker, tag)
	}

	dst := gocv.NewMat()
	gocv.Resize(src.GetMat(), &dst, image.Pt(newWidth, newHeight), 0, 0, interpolation)
	if dst.Cols() != newWidth || dst.Rows() != newHeight {
		dst.Close()
		return nil, fmt.Errorf("resize produced %dx%d, expected %dx%d", dst.Cols(), dst.Rows(), newWidth, newHeight)
	}

	return safe.Adopt(dst, tracker, tag)
}
