package conversion

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

func TestImageToMat_RoundTripPreservesStraightAlpha(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	src.SetNRGBA(0, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	src.SetNRGBA(1, 0, color.NRGBA{R: 200, G: 100, B: 50, A: 128})
	src.SetNRGBA(2, 1, color.NRGBA{R: 1, G: 2, B: 3, A: 0})

	mat, err := ImageToMat(src, nil, "test")
	require.NoError(t, err)
	defer mat.Close()

	assert.Equal(t, gocv.MatTypeCV8UC4, mat.Type())
	assert.Equal(t, 3, mat.Cols())
	assert.Equal(t, 2, mat.Rows())

	raw := mat.GetMat()
	px := raw.GetVecbAt(0, 0)
	assert.Equal(t, uint8(30), px[0], "blue is stored first")
	assert.Equal(t, uint8(10), px[2])
	assert.Equal(t, uint8(255), px[3])

	out, err := MatToImage(mat)
	require.NoError(t, err)
	assert.Equal(t, src.Pix, out.Pix)
}

func TestImageToMat_NormalizesGrayAndOffsetBounds(t *testing.T) {
	gray := image.NewGray(image.Rect(5, 5, 9, 7))
	for i := range gray.Pix {
		gray.Pix[i] = 77
	}

	mat, err := ImageToMat(gray, nil, "gray")
	require.NoError(t, err)
	defer mat.Close()

	out, err := MatToImage(mat)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 4, 2), out.Bounds())
	assert.Equal(t, color.NRGBA{R: 77, G: 77, B: 77, A: 255}, out.NRGBAAt(3, 1))
}

func TestImageToMat_RejectsEmpty(t *testing.T) {
	_, err := ImageToMat(nil, nil, "nil")
	assert.Error(t, err)

	_, err = ImageToMat(image.NewNRGBA(image.Rect(0, 0, 0, 0)), nil, "empty")
	assert.Error(t, err)
}

func TestFitSize(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		wantW, wantH  int
	}{
		{"square limited by height", 1000, 1000, 600, 600},
		{"wide limited by width", 1600, 600, 800, 300},
		{"tall", 300, 1200, 150, 600},
		{"already fits", 640, 480, 640, 480},
		{"exact box", 800, 600, 800, 600},
		{"tiny", 1, 1, 1, 1},
		{"extreme strip keeps one pixel", 100000, 10, 800, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := FitSize(tt.width, tt.height, 800, 600)
			assert.Equal(t, tt.wantW, w)
			assert.Equal(t, tt.wantH, h)
		})
	}
}

func TestResizeMat(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 40, 20))
	mat, err := ImageToMat(src, nil, "src")
	require.NoError(t, err)
	defer mat.Close()

	small, err := ResizeMat(mat, 10, 5, gocv.InterpolationLanczos4, nil, "small")
	require.NoError(t, err)
	defer small.Close()
	assert.Equal(t, 10, small.Cols())
	assert.Equal(t, 5, small.Rows())
	assert.Equal(t, 40, mat.Cols(), "source is untouched")

	same, err := ResizeMat(mat, 40, 20, gocv.InterpolationLanczos4, nil, "same")
	require.NoError(t, err)
	defer same.Close()
	assert.NotEqual(t, mat.ID(), same.ID())

	_, err = ResizeMat(mat, 0, 5, gocv.InterpolationLanczos4, nil, "bad")
	assert.Error(t, err)
}
