package filters

import (
	"fmt"

	"image-processor/internal/opencv/conversion"
	"image-processor/internal/opencv/safe"

	"gocv.io/x/gocv"
)

const (
	Blur        = "blur"
	Emboss      = "emboss"
	Contour     = "contour"
	EdgeEnhance = "edge_enhance"
)

// KernelFilter is a fixed, parameterless convolution applied to the color
// planes of a BGRA image. Alpha passes through unchanged.
type KernelFilter struct {
	name    string
	kernel  Kernel
	tracker safe.MemoryTracker
}

var kernels = map[string]Kernel{
	Blur: {
		Size: 5,
		Weights: []float32{
			1, 1, 1, 1, 1,
			1, 0, 0, 0, 1,
			1, 0, 0, 0, 1,
			1, 0, 0, 0, 1,
			1, 1, 1, 1, 1,
		},
		Divisor: 16,
	},
	Emboss: {
		Size: 3,
		Weights: []float32{
			-1, 0, 0,
			0, 1, 0,
			0, 0, 0,
		},
		Divisor: 1,
		Offset:  128,
	},
	Contour: {
		Size: 3,
		Weights: []float32{
			-1, -1, -1,
			-1, 8, -1,
			-1, -1, -1,
		},
		Divisor: 1,
		Offset:  255,
	},
	EdgeEnhance: {
		Size: 3,
		Weights: []float32{
			-1, -1, -1,
			-1, 10, -1,
			-1, -1, -1,
		},
		Divisor: 2,
	},
}

// Lookup returns the filter registered under name.
func Lookup(name string, tracker safe.MemoryTracker) (*KernelFilter, bool) {
	kernel, ok := kernels[name]
	if !ok {
		return nil, false
	}
	return &KernelFilter{name: name, kernel: kernel, tracker: tracker}, true
}

func (f *KernelFilter) Name() string {
	return f.name
}

// Apply returns a new Mat; input is left untouched.
func (f *KernelFilter) Apply(input *safe.Mat) (*safe.Mat, error) {
	out, err := conversion.MapColor(input, func(bgr gocv.Mat, dst *gocv.Mat) error {
		return f.kernel.Convolve(bgr, dst)
	}, f.tracker, "filter_"+f.name)
	if err != nil {
		return nil, fmt.Errorf("%s filter: %w", f.name, err)
	}
	return out, nil
}
