// Package enhance implements the brightness, contrast and sharpness
// adjustments. Each one blends the image with a "degenerate" version of itself:
//
//	out = degenerate + factor·(image − degenerate)
//
// rounded and clipped to [0, 255]. A factor of 1 is the identity, 0 yields the
// degenerate image, values above 1 extrapolate away from it. Alpha is never
// touched.
package enhance

import (
	"math"

	"image-processor/internal/opencv/conversion"
	"image-processor/internal/opencv/safe"
	"image-processor/internal/processing/chain"
	"image-processor/internal/processing/filters"

	"gocv.io/x/gocv"
)

const (
	Brightness = "brightness"
	Contrast   = "contrast"
	Sharpness  = "sharpness"
)

// Kinds lists the adjustments in the order they are applied.
var Kinds = []string{Brightness, Contrast, Sharpness}

// NewChain builds brightness → contrast → sharpness.
func NewChain(tracker safe.MemoryTracker) *chain.ProcessingChain {
	return chain.NewProcessingChain(
		&BrightnessStep{tracker: tracker},
		&ContrastStep{tracker: tracker},
		&SharpnessStep{tracker: tracker},
	)
}

// factor returns the parameter for kind, defaulting to the identity.
func factor(params chain.Params, kind string) float64 {
	if v, ok := params[kind]; ok {
		return v
	}
	return 1.0
}

// BrightnessStep blends towards black.
type BrightnessStep struct {
	tracker safe.MemoryTracker
}

func (s *BrightnessStep) Name() string { return Brightness }

func (s *BrightnessStep) ShouldExecute(params chain.Params) bool {
	return factor(params, Brightness) != 1.0
}

func (s *BrightnessStep) Apply(input *safe.Mat, params chain.Params) (*safe.Mat, error) {
	f := factor(params, Brightness)
	return conversion.MapColor(input, func(bgr gocv.Mat, dst *gocv.Mat) error {
		bgr.ConvertToWithParams(dst, gocv.MatTypeCV8UC3, float32(f), 0)
		return nil
	}, s.tracker, "enhance_"+Brightness)
}

// ContrastStep blends towards a flat gray at the image's mean luminance.
type ContrastStep struct {
	tracker safe.MemoryTracker
}

func (s *ContrastStep) Name() string { return Contrast }

func (s *ContrastStep) ShouldExecute(params chain.Params) bool {
	return factor(params, Contrast) != 1.0
}

func (s *ContrastStep) Apply(input *safe.Mat, params chain.Params) (*safe.Mat, error) {
	f := factor(params, Contrast)
	return conversion.MapColor(input, func(bgr gocv.Mat, dst *gocv.Mat) error {
		mean := MeanLuminance(bgr)
		bgr.ConvertToWithParams(dst, gocv.MatTypeCV8UC3, float32(f), float32(mean*(1-f)))
		return nil
	}, s.tracker, "enhance_"+Contrast)
}

// MeanLuminance returns the mean Rec. 601 luma of a BGR Mat rounded to an
// integer level.
func MeanLuminance(bgr gocv.Mat) float64 {
	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(bgr, &gray, gocv.ColorBGRToGray)
	return math.Floor(gray.Mean().Val1 + 0.5)
}

// SharpnessStep blends against a smoothed copy; factors above 1 sharpen,
// below 1 soften.
type SharpnessStep struct {
	tracker safe.MemoryTracker
}

func (s *SharpnessStep) Name() string { return Sharpness }

func (s *SharpnessStep) ShouldExecute(params chain.Params) bool {
	return factor(params, Sharpness) != 1.0
}

func (s *SharpnessStep) Apply(input *safe.Mat, params chain.Params) (*safe.Mat, error) {
	f := factor(params, Sharpness)
	return conversion.MapColor(input, func(bgr gocv.Mat, dst *gocv.Mat) error {
		smooth := gocv.NewMat()
		defer smooth.Close()
		if err := filters.SmoothKernel.Convolve(bgr, &smooth); err != nil {
			return err
		}
		gocv.AddWeighted(bgr, f, smooth, 1-f, 0, dst)
		return nil
	}, s.tracker, "enhance_"+Sharpness)
}
