package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// formRowLayout arranges objects in rows of three: a label sized to its
// content, a stretching control and a fixed-width value readout.
type formRowLayout struct{}

func newFormRowLayout() fyne.Layout {
	return &formRowLayout{}
}

const valueColumnWidth = 48

func (l *formRowLayout) columns(objects []fyne.CanvasObject) (labelWidth float32, rowHeights []float32) {
	for i := 0; i+2 < len(objects); i += 3 {
		labelWidth = max(labelWidth, objects[i].MinSize().Width)
		h := max(objects[i].MinSize().Height, objects[i+1].MinSize().Height, objects[i+2].MinSize().Height)
		rowHeights = append(rowHeights, h)
	}
	return labelWidth, rowHeights
}

func (l *formRowLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	pad := theme.Padding()
	labelWidth, rowHeights := l.columns(objects)
	controlWidth := max(size.Width-labelWidth-valueColumnWidth-2*pad, 0)

	y := float32(0)
	for row, h := range rowHeights {
		i := row * 3
		objects[i].Move(fyne.NewPos(0, y))
		objects[i].Resize(fyne.NewSize(labelWidth, h))

		objects[i+1].Move(fyne.NewPos(labelWidth+pad, y))
		objects[i+1].Resize(fyne.NewSize(controlWidth, h))

		objects[i+2].Move(fyne.NewPos(labelWidth+controlWidth+2*pad, y))
		objects[i+2].Resize(fyne.NewSize(valueColumnWidth, h))

		y += h + pad
	}
}

func (l *formRowLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	pad := theme.Padding()
	labelWidth, rowHeights := l.columns(objects)

	var height, controlWidth float32
	for row, h := range rowHeights {
		height += h
		if row > 0 {
			height += pad
		}
		controlWidth = max(controlWidth, objects[row*3+1].MinSize().Width)
	}
	return fyne.NewSize(labelWidth+controlWidth+valueColumnWidth+2*pad, height)
}
