package main

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/oukeidos/tlviz/internal/datefield"
)

var invalidColor = color.NRGBA{R: 220, G: 30, B: 30, A: 255}

// dateEntry is a text entry driven by a datefield.Field. The field owns the
// state; the entry only mirrors it. The placeholder sentinel is shown through
// the entry's hint text so it never becomes editable content.
type dateEntry struct {
	widget.Entry
	field   *datefield.Field
	marker  *canvas.Rectangle
	syncing bool
}

func newDateEntry(f *datefield.Field) *dateEntry {
	e := &dateEntry{field: f}
	e.ExtendBaseWidget(e)
	e.PlaceHolder = datefield.Placeholder
	e.OnChanged = e.edited

	e.marker = canvas.NewRectangle(color.Transparent)
	e.marker.StrokeColor = invalidColor
	e.marker.StrokeWidth = 2
	e.marker.Hide()

	e.syncFromField()
	return e
}

// view stacks the invalid marker over the entry.
func (e *dateEntry) view() fyne.CanvasObject {
	return container.NewStack(e, e.marker)
}

func (e *dateEntry) MinSize() fyne.Size {
	size := e.Entry.MinSize()
	if size.Width < 150 {
		size.Width = 150
	}
	return size
}

func (e *dateEntry) TypedRune(r rune) {
	if r == ' ' {
		return
	}
	e.Entry.TypedRune(r)
}

func (e *dateEntry) FocusGained() {
	e.field.FocusGained()
	e.syncFromField()
	e.Entry.FocusGained()
}

func (e *dateEntry) FocusLost() {
	e.Entry.FocusLost()
	e.field.FocusLost()
	e.syncFromField()
}

// edited forwards user edits (typing, paste, cut) to the field and reverts
// the entry when the field refuses them.
func (e *dateEntry) edited(text string) {
	if e.syncing {
		return
	}
	if !e.field.Edit(text) {
		e.syncFromField()
		return
	}
	e.refreshMarker()
}

// syncFromField pushes the field's text and mode into the widget.
func (e *dateEntry) syncFromField() {
	text := e.field.Text()
	if e.field.IsPlaceholder() {
		text = ""
	}
	if e.Entry.Text != text {
		e.syncing = true
		e.SetText(text)
		e.syncing = false
	}
	e.refreshMarker()
}

func (e *dateEntry) refreshMarker() {
	if e.marker == nil {
		return
	}
	if e.field.Mode() == datefield.ModeInvalid {
		e.marker.Show()
	} else {
		e.marker.Hide()
	}
	e.marker.Refresh()
}
