package components

import (
	"image-processor/internal/processing/filters"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// filterButtons is the on-screen order of the filter buttons.
var filterButtons = []struct {
	name  string
	label string
}{
	{filters.Blur, "Blur"},
	{filters.Emboss, "Emboss"},
	{filters.Contour, "Contour"},
	{filters.EdgeEnhance, "Edge Enhance"},
}

// FilterPanel offers one button per convolution filter.
type FilterPanel struct {
	container *fyne.Container
	buttons   map[string]*widget.Button

	filterHandler func(name string)
}

// NewFilterPanel creates a new filter panel
func NewFilterPanel() *FilterPanel {
	panel := &FilterPanel{buttons: make(map[string]*widget.Button)}

	objects := make([]fyne.CanvasObject, 0, len(filterButtons))
	for _, fb := range filterButtons {
		name := fb.name
		button := widget.NewButton(fb.label, func() {
			if panel.filterHandler != nil {
				panel.filterHandler(name)
			}
		})
		button.Disable()
		panel.buttons[name] = button
		objects = append(objects, button)
	}

	panel.container = container.NewVBox(
		widget.NewCard("", "Filters", container.NewGridWithColumns(len(objects), objects...)),
	)
	return panel
}

// SetFilterHandler sets the handler receiving the filter name
func (fp *FilterPanel) SetFilterHandler(handler func(name string)) {
	fp.filterHandler = handler
}

// Button returns the button for the named filter, or nil.
func (fp *FilterPanel) Button(name string) *widget.Button {
	return fp.buttons[name]
}

// EnableImageOperations enables/disables the filter buttons
func (fp *FilterPanel) EnableImageOperations(enabled bool) {
	for _, button := range fp.buttons {
		if enabled {
			button.Enable()
		} else {
			button.Disable()
		}
	}
}

// GetContainer returns the panel container
func (fp *FilterPanel) GetContainer() *fyne.Container {
	return fp.container
}
