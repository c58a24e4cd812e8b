package services

import (
	"fmt"
	"image"

	"image-processor/internal/opencv/conversion"
	"image-processor/internal/opencv/safe"

	"gocv.io/x/gocv"
)

// PreviewService produces display-sized copies of the processed image.
type PreviewService struct {
	maxWidth  int
	maxHeight int
	tracker   safe.MemoryTracker
}

// NewPreviewService creates a renderer bounded to maxWidth×maxHeight.
func NewPreviewService(maxWidth, maxHeight int, tracker safe.MemoryTracker) *PreviewService {
	return &PreviewService{maxWidth: maxWidth, maxHeight: maxHeight, tracker: tracker}
}

// Bounds returns the preview bounding box.
func (ps *PreviewService) Bounds() (int, int) {
	return ps.maxWidth, ps.maxHeight
}

// Render returns a bitmap no larger than the bounding box with the aspect
// ratio of src. Images that already fit are copied at full size. src is
// never modified.
func (ps *PreviewService) Render(src *safe.Mat) (*image.NRGBA, error) {
	if err := safe.ValidateBGRA(src, "preview"); err != nil {
		return nil, err
	}

	width, height := conversion.FitSize(src.Cols(), src.Rows(), ps.maxWidth, ps.maxHeight)
	if width == src.Cols() && height == src.Rows() {
		return conversion.MatToImage(src)
	}

	scaled, err := conversion.ResizeMat(src, width, height, gocv.InterpolationLanczos4, ps.tracker, "preview")
	if err != nil {
		return nil, fmt.Errorf("preview resize failed: %w", err)
	}
	defer scaled.Close()

	return conversion.MatToImage(scaled)
}
