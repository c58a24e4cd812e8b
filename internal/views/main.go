package views

import (
	"errors"
	"image"
	"io"

	"image-processor/internal/models"
	"image-processor/internal/services"
	"image-processor/internal/views/components"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
)

// DefaultSaveName is proposed by the save dialog.
const DefaultSaveName = "image.png"

// Actions is what the view invokes in response to user input.
type Actions interface {
	Load(path string) error
	SaveTo(w io.Writer, name string) error
	Reset()
	SetEnhancement(kind string, value float64)
	ApplyFilter(name string)
	HasImage() bool
}

// MainView represents the main application window content
type MainView struct {
	window        fyne.Window
	mainContainer *fyne.Container
	toolbar       *components.Toolbar
	adjustments   *components.AdjustmentPanel
	filters       *components.FilterPanel
	imageDisplay  *components.ImageDisplay
	statusBar     *components.StatusBar

	actions Actions
}

// NewMainView builds the window content. Sliders span rng and the preview
// area reserves previewWidth×previewHeight.
func NewMainView(window fyne.Window, rng models.ParameterRange, previewWidth, previewHeight int) *MainView {
	view := &MainView{window: window}

	view.initializeComponents(rng, previewWidth, previewHeight)
	view.buildLayout()
	view.setupEventHandlers()

	return view
}

func (mv *MainView) initializeComponents(rng models.ParameterRange, previewWidth, previewHeight int) {
	mv.toolbar = components.NewToolbar()
	mv.adjustments = components.NewAdjustmentPanel(rng)
	mv.filters = components.NewFilterPanel()
	mv.imageDisplay = components.NewImageDisplay(previewWidth, previewHeight)
	mv.statusBar = components.NewStatusBar()
}

func (mv *MainView) buildLayout() {
	controls := container.NewVBox(
		mv.toolbar.GetContainer(),
		mv.adjustments.GetContainer(),
		mv.filters.GetContainer(),
	)

	mv.mainContainer = container.NewBorder(
		controls,
		mv.statusBar.GetContainer(),
		nil,
		nil,
		mv.imageDisplay.GetContainer(),
	)

	mv.window.SetContent(mv.mainContainer)
}

func (mv *MainView) setupEventHandlers() {
	mv.toolbar.SetLoadHandler(mv.showLoadDialog)
	mv.toolbar.SetSaveHandler(mv.showSaveDialog)
	mv.toolbar.SetResetHandler(func() {
		if mv.actions != nil {
			mv.actions.Reset()
		}
	})

	mv.adjustments.SetChangeHandler(func(kind string, value float64) {
		if mv.actions != nil {
			mv.actions.SetEnhancement(kind, value)
		}
	})

	mv.filters.SetFilterHandler(func(name string) {
		if mv.actions != nil {
			mv.actions.ApplyFilter(name)
		}
	})
}

// SetActions connects the view to the controller
func (mv *MainView) SetActions(actions Actions) {
	mv.actions = actions
}

func (mv *MainView) showLoadDialog() {
	if mv.actions == nil {
		return
	}

	fileDialog := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			mv.ShowError("File selection error", err)
			return
		}
		if reader == nil {
			return
		}

		path := reader.URI().Path()
		reader.Close()

		// The controller reports load failures itself.
		_ = mv.actions.Load(path)
	}, mv.window)

	fileDialog.SetFilter(storage.NewExtensionFileFilter(services.SupportedExtensions))
	fileDialog.Show()
}

func (mv *MainView) showSaveDialog() {
	if mv.actions == nil || !mv.actions.HasImage() {
		return
	}

	fileDialog := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			mv.ShowError("File save error", err)
			return
		}
		if writer == nil {
			return
		}

		saveErr := mv.actions.SaveTo(writer, writer.URI().Name())
		if closeErr := writer.Close(); closeErr != nil && saveErr == nil {
			mv.ShowError("Image save failed", &services.WriteError{Path: writer.URI().Path(), Err: closeErr})
		}
	}, mv.window)

	fileDialog.SetFileName(DefaultSaveName)
	fileDialog.SetFilter(storage.NewExtensionFileFilter(services.EncodableExtensions))
	fileDialog.Show()
}

// SetPreview shows img in the preview area
func (mv *MainView) SetPreview(img image.Image) {
	mv.imageDisplay.SetImage(img)
}

// SetFactors moves the sliders without feeding the values back
func (mv *MainView) SetFactors(factors models.Factors) {
	mv.adjustments.SetFactors(factors)
}

// UpdateStatus updates the status bar message
func (mv *MainView) UpdateStatus(status string) {
	mv.statusBar.SetStatus(status)
}

// SetImageInfo updates image information display
func (mv *MainView) SetImageInfo(width, height, channels int, format string) {
	mv.statusBar.SetImageInfo(width, height, channels, format)
}

// SetMemoryInfo updates the native memory display
func (mv *MainView) SetMemoryInfo(used, activeMats int64) {
	mv.statusBar.SetMemoryInfo(used, activeMats)
}

// ShowError displays an error dialog
func (mv *MainView) ShowError(title string, err error) {
	if err == nil || errors.Is(err, services.ErrNoImage) {
		return
	}
	mv.statusBar.SetStatus(title)
	dialog.ShowError(err, mv.window)
}

// EnableImageOperations enables/disables image-dependent operations
func (mv *MainView) EnableImageOperations(enabled bool) {
	mv.toolbar.EnableImageOperations(enabled)
	mv.filters.EnableImageOperations(enabled)
}

// GetWindow returns the main window
func (mv *MainView) GetWindow() fyne.Window {
	return mv.window
}

// GetToolbar returns the toolbar component
func (mv *MainView) GetToolbar() *components.Toolbar {
	return mv.toolbar
}

// GetAdjustmentPanel returns the slider panel
func (mv *MainView) GetAdjustmentPanel() *components.AdjustmentPanel {
	return mv.adjustments
}

// GetFilterPanel returns the filter button panel
func (mv *MainView) GetFilterPanel() *components.FilterPanel {
	return mv.filters
}

// GetImageDisplay returns the preview component
func (mv *MainView) GetImageDisplay() *components.ImageDisplay {
	return mv.imageDisplay
}

// GetStatusBar returns the status bar component
func (mv *MainView) GetStatusBar() *components.StatusBar {
	return mv.statusBar
}
