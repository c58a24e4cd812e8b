package filters

import (
	"image"
	"image/color"
	"testing"

	"image-processor/internal/opencv/conversion"
	"image-processor/internal/opencv/safe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

func uniformMat(t *testing.T, w, h int, c color.NRGBA) *safe.Mat {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	m, err := conversion.ImageToMat(img, nil, "uniform")
	require.NoError(t, err)
	t.Cleanup(m.Close)
	return m
}

func pixelAt(t *testing.T, m *safe.Mat, x, y int) color.NRGBA {
	t.Helper()
	img, err := conversion.MatToImage(m)
	require.NoError(t, err)
	return img.NRGBAAt(x, y)
}

func apply(t *testing.T, name string, m *safe.Mat) *safe.Mat {
	t.Helper()
	f, ok := Lookup(name, nil)
	require.True(t, ok, name)
	out, err := f.Apply(m)
	require.NoError(t, err)
	t.Cleanup(out.Close)
	return out
}

func TestLookup_Unknown(t *testing.T) {
	_, ok := Lookup("sepia", nil)
	assert.False(t, ok)
}

func TestFilters_OnUniformImage(t *testing.T) {
	src := uniformMat(t, 12, 9, color.NRGBA{R: 100, G: 100, B: 100, A: 200})

	tests := []struct {
		name string
		want uint8
	}{
		{Blur, 100},
		{EdgeEnhance, 100},
		{Emboss, 128},
		{Contour, 255},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := apply(t, tt.name, src)
			for _, pt := range []image.Point{{2, 2}, {5, 4}, {9, 6}} {
				got := pixelAt(t, out, pt.X, pt.Y)
				assert.Equal(t, color.NRGBA{R: tt.want, G: tt.want, B: tt.want, A: 200}, got, "at %v", pt)
			}
		})
	}

	assert.Equal(t, color.NRGBA{R: 100, G: 100, B: 100, A: 200}, pixelAt(t, src, 3, 3), "source untouched")
}

func TestFilters_OrderMatters(t *testing.T) {
	src := uniformMat(t, 8, 8, color.NRGBA{R: 60, G: 60, B: 60, A: 255})

	contourThenEmboss := apply(t, Emboss, apply(t, Contour, src))
	embossThenContour := apply(t, Contour, apply(t, Emboss, src))

	assert.Equal(t, uint8(128), pixelAt(t, contourThenEmboss, 4, 4).R)
	assert.Equal(t, uint8(255), pixelAt(t, embossThenContour, 4, 4).R)
}

func TestEmboss_KernelIsFlippedVertically(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 5, 5))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+3] = 255
	}
	img.SetNRGBA(2, 2, color.NRGBA{R: 100, G: 100, B: 100, A: 255})
	m, err := conversion.ImageToMat(img, nil, "dot")
	require.NoError(t, err)
	defer m.Close()

	out := apply(t, Emboss, m)

	// The -1 tap is listed top-left; after the vertical flip it samples the
	// lower-left neighbour, so the dot darkens the pixel up and to its right.
	assert.Equal(t, uint8(228), pixelAt(t, out, 2, 2).R)
	assert.Equal(t, uint8(28), pixelAt(t, out, 3, 1).R)
	assert.Equal(t, uint8(128), pixelAt(t, out, 1, 3).R)
	assert.Equal(t, uint8(128), pixelAt(t, out, 1, 1).R)
}

func TestFilters_BorderPassesThrough(t *testing.T) {
	src := uniformMat(t, 12, 9, color.NRGBA{R: 100, G: 100, B: 100, A: 255})

	tests := []struct {
		name   string
		margin int
	}{
		{Blur, 2},
		{Emboss, 1},
		{Contour, 1},
		{EdgeEnhance, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := conversion.MatToImage(apply(t, tt.name, src))
			require.NoError(t, err)

			b := out.Bounds()
			for y := 0; y < b.Dy(); y++ {
				for x := 0; x < b.Dx(); x++ {
					onBorder := x < tt.margin || y < tt.margin || x >= b.Dx()-tt.margin || y >= b.Dy()-tt.margin
					if onBorder {
						assert.Equal(t, uint8(100), out.NRGBAAt(x, y).R, "border %d,%d", x, y)
					}
				}
			}
			if tt.name == Contour {
				assert.Equal(t, uint8(255), out.NRGBAAt(tt.margin, tt.margin).R)
			}
		})
	}
}

func TestFilters_SmallerThanKernelIsCopied(t *testing.T) {
	src := uniformMat(t, 4, 3, color.NRGBA{R: 70, G: 80, B: 90, A: 255})

	out := apply(t, Blur, src)
	assert.Equal(t, color.NRGBA{R: 70, G: 80, B: 90, A: 255}, pixelAt(t, out, 1, 1))

	out = apply(t, Emboss, src)
	assert.Equal(t, uint8(128), pixelAt(t, out, 1, 1).R)
	assert.Equal(t, uint8(70), pixelAt(t, out, 0, 0).R)
}

func TestKernel_Validate(t *testing.T) {
	src := gocv.NewMatWithSize(3, 3, gocv.MatTypeCV8UC3)
	defer src.Close()
	dst := gocv.NewMat()
	defer dst.Close()

	assert.Error(t, Kernel{Size: 2, Weights: make([]float32, 4), Divisor: 1}.Convolve(src, &dst))
	assert.Error(t, Kernel{Size: 3, Weights: make([]float32, 4), Divisor: 1}.Convolve(src, &dst))
	assert.Error(t, Kernel{Size: 3, Weights: make([]float32, 9)}.Convolve(src, &dst))
	assert.NoError(t, SmoothKernel.Convolve(src, &dst))
}
