package conversion

import (
	"fmt"
	"image"

	"image-processor/internal/opencv/safe"

	"github.com/disintegration/imaging"
	"gocv.io/x/gocv"
)

// ImageToMat converts any Go image into an 8-bit BGRA Mat with straight alpha.
// Palette, gray and 16-bit sources are normalized through NRGBA first.
func ImageToMat(img image.Image, tracker safe.MemoryTracker, tag string) (*safe.Mat, error) {
	if img == nil {
		return nil, fmt.Errorf("input image is nil")
	}

	bounds := img.Bounds()
	if err := safe.ValidateDimensions(bounds.Dx(), bounds.Dy(), "image to Mat conversion"); err != nil {
		return nil, err
	}

	nrgba := imaging.Clone(img)
	width, height := nrgba.Rect.Dx(), nrgba.Rect.Dy()

	rgba, err := gocv.NewMatFromBytes(height, width, gocv.MatTypeCV8UC4, nrgba.Pix)
	if err != nil {
		return nil, fmt.Errorf("failed to wrap pixel buffer: %w", err)
	}
	defer rgba.Close()

	bgra := gocv.NewMat()
	gocv.CvtColor(rgba, &bgra, gocv.ColorRGBAToBGRA)

	return safe.Adopt(bgra, tracker, tag)
}

// MatToImage converts a BGRA Mat into a freshly allocated *image.NRGBA.
func MatToImage(src *safe.Mat) (*image.NRGBA, error) {
	if err := safe.ValidateBGRA(src, "Mat to image conversion"); err != nil {
		return nil, err
	}

	rgba := gocv.NewMat()
	defer rgba.Close()
	gocv.CvtColor(src.GetMat(), &rgba, gocv.ColorBGRAToRGBA)

	pix, err := rgba.DataPtrUint8()
	if err != nil {
		return nil, fmt.Errorf("pixel access failed: %w", err)
	}

	width, height := src.Cols(), src.Rows()
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	if len(pix) != len(img.Pix) {
		return nil, fmt.Errorf("unexpected pixel buffer size %d for %dx%d image", len(pix), width, height)
	}
	copy(img.Pix, pix)

	return img, nil
}
