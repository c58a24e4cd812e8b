package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Toolbar holds the file and reset actions.
type Toolbar struct {
	container   *fyne.Container
	loadButton  *widget.Button
	saveButton  *widget.Button
	resetButton *widget.Button

	// Event handlers
	loadHandler  func()
	saveHandler  func()
	resetHandler func()
}

// NewToolbar creates a new toolbar component
func NewToolbar() *Toolbar {
	toolbar := &Toolbar{}
	toolbar.createComponents()
	toolbar.buildLayout()
	toolbar.setupEventHandlers()
	return toolbar
}

func (t *Toolbar) createComponents() {
	t.loadButton = widget.NewButtonWithIcon("Load Image", theme.FolderOpenIcon(), nil)
	t.loadButton.Importance = widget.HighImportance

	t.saveButton = widget.NewButtonWithIcon("Save Image", theme.DocumentSaveIcon(), nil)
	t.saveButton.Importance = widget.HighImportance
	t.saveButton.Disable()

	t.resetButton = widget.NewButtonWithIcon("Reset", theme.ContentUndoIcon(), nil)
	t.resetButton.Importance = widget.MediumImportance
	t.resetButton.Disable()
}

func (t *Toolbar) buildLayout() {
	t.container = container.NewHBox(
		t.loadButton,
		t.saveButton,
		widget.NewSeparator(),
		t.resetButton,
	)
}

func (t *Toolbar) setupEventHandlers() {
	t.loadButton.OnTapped = func() {
		if t.loadHandler != nil {
			t.loadHandler()
		}
	}

	t.saveButton.OnTapped = func() {
		if t.saveHandler != nil {
			t.saveHandler()
		}
	}

	t.resetButton.OnTapped = func() {
		if t.resetHandler != nil {
			t.resetHandler()
		}
	}
}

// SetLoadHandler sets the load image handler
func (t *Toolbar) SetLoadHandler(handler func()) {
	t.loadHandler = handler
}

// SetSaveHandler sets the save image handler
func (t *Toolbar) SetSaveHandler(handler func()) {
	t.saveHandler = handler
}

// SetResetHandler sets the reset handler
func (t *Toolbar) SetResetHandler(handler func()) {
	t.resetHandler = handler
}

// EnableImageOperations enables/disables image-dependent operations
func (t *Toolbar) EnableImageOperations(enabled bool) {
	if enabled {
		t.saveButton.Enable()
		t.resetButton.Enable()
	} else {
		t.saveButton.Disable()
		t.resetButton.Disable()
	}
}

// LoadButton returns the load button
func (t *Toolbar) LoadButton() *widget.Button { return t.loadButton }

// SaveButton returns the save button
func (t *Toolbar) SaveButton() *widget.Button { return t.saveButton }

// ResetButton returns the reset button
func (t *Toolbar) ResetButton() *widget.Button { return t.resetButton }

// GetContainer returns the toolbar container
func (t *Toolbar) GetContainer() *fyne.Container {
	return t.container
}
