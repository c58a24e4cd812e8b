package components

import (
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// ImageDisplay shows the preview of the processed image.
type ImageDisplay struct {
	container   *fyne.Container
	image       *canvas.Image
	placeholder *widget.Label
	hasImage    bool
}

// NewImageDisplay creates a preview surface of at least width×height.
func NewImageDisplay(width, height int) *ImageDisplay {
	display := &ImageDisplay{}

	display.image = canvas.NewImageFromImage(nil)
	display.image.FillMode = canvas.ImageFillContain
	display.image.ScaleMode = canvas.ImageScaleSmooth
	display.image.SetMinSize(fyne.NewSize(float32(width), float32(height)))
	display.image.Hide()

	display.placeholder = widget.NewLabel("Load an image to begin")
	display.placeholder.Alignment = fyne.TextAlignCenter

	display.container = container.NewStack(
		canvas.NewRectangle(color.NRGBA{R: 240, G: 240, B: 240, A: 255}),
		container.NewCenter(display.placeholder),
		display.image,
	)
	return display
}

// SetImage replaces the displayed bitmap; nil restores the placeholder.
func (id *ImageDisplay) SetImage(img image.Image) {
	id.image.Image = img
	id.hasImage = img != nil
	if id.hasImage {
		id.placeholder.Hide()
		id.image.Show()
	} else {
		id.image.Hide()
		id.placeholder.Show()
	}
	id.image.Refresh()
}

// HasImage returns true if a preview is shown
func (id *ImageDisplay) HasImage() bool {
	return id.hasImage
}

// GetImageSize returns the dimensions of the displayed bitmap
func (id *ImageDisplay) GetImageSize() (int, int) {
	if !id.hasImage || id.image.Image == nil {
		return 0, 0
	}
	bounds := id.image.Image.Bounds()
	return bounds.Dx(), bounds.Dy()
}

// GetContainer returns the main container
func (id *ImageDisplay) GetContainer() *fyne.Container {
	return id.container
}
