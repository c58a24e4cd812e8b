package components

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// StatusBar displays application status and information
type StatusBar struct {
	container   *fyne.Container
	statusLabel *widget.Label
	imageInfo   *widget.Label
	memoryInfo  *widget.Label
}

// NewStatusBar creates a new status bar component
func NewStatusBar() *StatusBar {
	sb := &StatusBar{}
	sb.createComponents()
	sb.buildLayout()
	return sb
}

func (sb *StatusBar) createComponents() {
	sb.statusLabel = widget.NewLabel("Ready")
	sb.imageInfo = widget.NewLabel("No image loaded")
	sb.memoryInfo = widget.NewLabel("Memory: --")
}

func (sb *StatusBar) buildLayout() {
	sb.container = container.NewHBox(
		sb.statusLabel,
		widget.NewSeparator(),
		sb.imageInfo,
		widget.NewSeparator(),
		sb.memoryInfo,
	)
}

// SetStatus updates the main status message
func (sb *StatusBar) SetStatus(status string) {
	sb.statusLabel.SetText(status)
}

// GetStatus returns the current status message
func (sb *StatusBar) GetStatus() string {
	return sb.statusLabel.Text
}

// SetImageInfo updates the image information display
func (sb *StatusBar) SetImageInfo(width, height, channels int, format string) {
	sb.imageInfo.SetText(fmt.Sprintf("Image: %dx%d, %d channels, %s", width, height, channels, format))
}

// GetImageInfo returns the image information text
func (sb *StatusBar) GetImageInfo() string {
	return sb.imageInfo.Text
}

// SetMemoryInfo updates the native memory display
func (sb *StatusBar) SetMemoryInfo(used, activeMats int64) {
	sb.memoryInfo.SetText(fmt.Sprintf("Memory: %.1f MB in %d Mats", float64(used)/(1024*1024), activeMats))
}

// GetMemoryInfo returns the memory information text
func (sb *StatusBar) GetMemoryInfo() string {
	return sb.memoryInfo.Text
}

// GetContainer returns the status bar container
func (sb *StatusBar) GetContainer() *fyne.Container {
	return sb.container
}
