package conversion

import (
	"fmt"

	"image-processor/internal/opencv/safe"

	"gocv.io/x/gocv"
)

// ColorOp writes the result of an operation on a 3-channel BGR Mat into dst.
// dst must end up 8-bit BGR with the same size as src.
type ColorOp func(bgr gocv.Mat, dst *gocv.Mat) error

// MapColor runs op on the color planes of a BGRA Mat and re-attaches the
// untouched alpha plane. The source Mat is not modified.
func MapColor(src *safe.Mat, op ColorOp, tracker safe.MemoryTracker, tag string) (*safe.Mat, error) {
	if err := safe.ValidateBGRA(src, tag); err != nil {
		return nil, err
	}

	srcMat := src.GetMat()

	bgr := gocv.NewMat()
	defer bgr.Close()
	gocv.CvtColor(srcMat, &bgr, gocv.ColorBGRAToBGR)

	alpha := gocv.NewMat()
	defer alpha.Close()
	gocv.ExtractChannel(srcMat, &alpha, 3)

	out := gocv.NewMat()
	defer out.Close()
	if err := op(bgr, &out); err != nil {
		return nil, err
	}
	if out.Type() != gocv.MatTypeCV8UC3 || out.Rows() != src.Rows() || out.Cols() != src.Cols() {
		return nil, fmt.Errorf("%s produced %dx%d type %d, expected %dx%d BGR",
			tag, out.Cols(), out.Rows(), int(out.Type()), src.Cols(), src.Rows())
	}

	planes := gocv.Split(out)
	defer func() {
		for _, p := range planes {
			p.Close()
		}
	}()

	merged := gocv.NewMat()
	gocv.Merge([]gocv.Mat{planes[0], planes[1], planes[2], alpha}, &merged)

	return safe.Adopt(merged, tracker, tag)
}
