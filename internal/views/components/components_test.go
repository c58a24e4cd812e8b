package components

import (
	"image"
	"testing"

	"image-processor/internal/models"
	"image-processor/internal/processing/enhance"
	"image-processor/internal/processing/filters"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var factorRange = models.ParameterRange{Min: 0, Max: 2, Step: 0.01}

func TestToolbar_Handlers(t *testing.T) {
	test.NewApp()
	tb := NewToolbar()

	var loads, saves, resets int
	tb.SetLoadHandler(func() { loads++ })
	tb.SetSaveHandler(func() { saves++ })
	tb.SetResetHandler(func() { resets++ })

	test.Tap(tb.LoadButton())
	assert.Equal(t, 1, loads)

	assert.True(t, tb.SaveButton().Disabled())
	assert.True(t, tb.ResetButton().Disabled())
	test.Tap(tb.SaveButton())
	test.Tap(tb.ResetButton())
	assert.Zero(t, saves)
	assert.Zero(t, resets)

	tb.EnableImageOperations(true)
	test.Tap(tb.SaveButton())
	test.Tap(tb.ResetButton())
	assert.Equal(t, 1, saves)
	assert.Equal(t, 1, resets)
}

func TestAdjustmentPanel_StartsAtIdentity(t *testing.T) {
	test.NewApp()
	panel := NewAdjustmentPanel(factorRange)

	for _, kind := range enhance.Kinds {
		slider := panel.Slider(kind)
		require.NotNil(t, slider, kind)
		assert.Equal(t, 1.0, slider.Value)
		assert.Equal(t, 0.0, slider.Min)
		assert.Equal(t, 2.0, slider.Max)
	}
	assert.Nil(t, panel.Slider("hue"))
}

func TestAdjustmentPanel_ForwardsEveryChange(t *testing.T) {
	test.NewApp()
	panel := NewAdjustmentPanel(factorRange)

	type change struct {
		kind  string
		value float64
	}
	var got []change
	panel.SetChangeHandler(func(kind string, value float64) {
		got = append(got, change{kind, value})
	})

	panel.Slider(enhance.Contrast).SetValue(1.25)
	panel.Slider(enhance.Contrast).SetValue(1.5)
	panel.Slider(enhance.Sharpness).SetValue(0.5)

	want := []change{
		{enhance.Contrast, 1.25},
		{enhance.Contrast, 1.5},
		{enhance.Sharpness, 0.5},
	}
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].kind, got[i].kind)
		assert.InDelta(t, want[i].value, got[i].value, 1e-6)
	}
	assert.Equal(t, "1.50", panel.values[enhance.Contrast].Text)
}

func TestAdjustmentPanel_SetFactorsIsSilent(t *testing.T) {
	test.NewApp()
	panel := NewAdjustmentPanel(factorRange)

	calls := 0
	panel.SetChangeHandler(func(string, float64) { calls++ })

	panel.SetFactors(models.Factors{Brightness: 0.3, Contrast: 1.7, Sharpness: 1})

	assert.Zero(t, calls)
	assert.InDelta(t, 0.3, panel.Value(enhance.Brightness), 1e-9)
	assert.InDelta(t, 1.7, panel.Value(enhance.Contrast), 1e-9)
	assert.Equal(t, "0.30", panel.values[enhance.Brightness].Text)
}

func TestFilterPanel(t *testing.T) {
	test.NewApp()
	panel := NewFilterPanel()

	var applied []string
	panel.SetFilterHandler(func(name string) { applied = append(applied, name) })

	test.Tap(panel.Button(filters.Blur))
	assert.Empty(t, applied, "disabled until an image is loaded")

	panel.EnableImageOperations(true)
	for _, name := range []string{filters.Blur, filters.Emboss, filters.Contour, filters.EdgeEnhance} {
		require.NotNil(t, panel.Button(name), name)
		test.Tap(panel.Button(name))
	}
	assert.Equal(t, []string{filters.Blur, filters.Emboss, filters.Contour, filters.EdgeEnhance}, applied)
	assert.Equal(t, "Edge Enhance", panel.Button(filters.EdgeEnhance).Text)
}

func TestImageDisplay(t *testing.T) {
	test.NewApp()
	display := NewImageDisplay(800, 600)
	assert.False(t, display.HasImage())

	display.SetImage(image.NewNRGBA(image.Rect(0, 0, 600, 400)))
	assert.True(t, display.HasImage())
	w, h := display.GetImageSize()
	assert.Equal(t, 600, w)
	assert.Equal(t, 400, h)
	assert.False(t, display.placeholder.Visible())

	display.SetImage(nil)
	assert.False(t, display.HasImage())
	assert.True(t, display.placeholder.Visible())
}

func TestStatusBar(t *testing.T) {
	test.NewApp()
	sb := NewStatusBar()
	assert.Equal(t, "Ready", sb.GetStatus())

	sb.SetStatus("Image loaded")
	sb.SetImageInfo(1000, 1000, 4, "png")
	sb.SetMemoryInfo(8*1024*1024, 2)

	assert.Equal(t, "Image loaded", sb.GetStatus())
	assert.Equal(t, "Image: 1000x1000, 4 channels, png", sb.GetImageInfo())
	assert.Equal(t, "Memory: 8.0 MB in 2 Mats", sb.GetMemoryInfo())
}
