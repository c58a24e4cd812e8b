package components

import (
	"fmt"

	"image-processor/internal/models"
	"image-processor/internal/processing/enhance"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

var adjustmentLabels = map[string]string{
	enhance.Brightness: "Brightness",
	enhance.Contrast:   "Contrast",
	enhance.Sharpness:  "Sharpness",
}

// AdjustmentPanel shows one slider per enhancement. Every intermediate
// slider value is forwarded to the change handler.
type AdjustmentPanel struct {
	container *fyne.Container
	sliders   map[string]*widget.Slider
	values    map[string]*widget.Label
	rng       models.ParameterRange

	changeHandler func(kind string, value float64)
	syncing       bool
}

// NewAdjustmentPanel creates sliders spanning rng, positioned at the identity.
func NewAdjustmentPanel(rng models.ParameterRange) *AdjustmentPanel {
	panel := &AdjustmentPanel{
		sliders: make(map[string]*widget.Slider),
		values:  make(map[string]*widget.Label),
		rng:     rng,
	}
	panel.createComponents()
	panel.buildLayout()
	return panel
}

func (ap *AdjustmentPanel) createComponents() {
	for _, kind := range enhance.Kinds {
		slider := widget.NewSlider(ap.rng.Min, ap.rng.Max)
		slider.Step = ap.rng.Step
		slider.Value = models.IdentityFactor

		label := widget.NewLabel(formatFactor(models.IdentityFactor))

		slider.OnChanged = func(value float64) {
			label.SetText(formatFactor(value))
			if ap.syncing || ap.changeHandler == nil {
				return
			}
			ap.changeHandler(kind, value)
		}

		ap.sliders[kind] = slider
		ap.values[kind] = label
	}
}

func (ap *AdjustmentPanel) buildLayout() {
	rows := make([]fyne.CanvasObject, 0, len(enhance.Kinds)*3)
	for _, kind := range enhance.Kinds {
		rows = append(rows,
			widget.NewLabel(adjustmentLabels[kind]+":"),
			ap.sliders[kind],
			ap.values[kind],
		)
	}

	grid := container.New(newFormRowLayout(), rows...)
	ap.container = container.NewVBox(
		widget.NewCard("", "Image Controls", grid),
	)
}

// SetChangeHandler sets the handler receiving (kind, value) on slider moves
func (ap *AdjustmentPanel) SetChangeHandler(handler func(kind string, value float64)) {
	ap.changeHandler = handler
}

// SetFactors moves the sliders to factors without notifying the handler.
func (ap *AdjustmentPanel) SetFactors(factors models.Factors) {
	ap.syncing = true
	defer func() { ap.syncing = false }()

	for _, kind := range enhance.Kinds {
		value, _ := factors.Get(kind)
		ap.sliders[kind].SetValue(value)
		ap.values[kind].SetText(formatFactor(value))
	}
}

// Value returns the slider position for kind.
func (ap *AdjustmentPanel) Value(kind string) float64 {
	if slider, ok := ap.sliders[kind]; ok {
		return slider.Value
	}
	return 0
}

// Slider returns the slider for kind, or nil.
func (ap *AdjustmentPanel) Slider(kind string) *widget.Slider {
	return ap.sliders[kind]
}

// GetContainer returns the panel container
func (ap *AdjustmentPanel) GetContainer() *fyne.Container {
	return ap.container
}

func formatFactor(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
