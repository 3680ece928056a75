package main

import (
	"fmt"
	"net/url"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"github.com/oukeidos/tlviz/internal/fileselect"
	"github.com/oukeidos/tlviz/internal/runner"
)

const (
	progressMaxLines = 12
	progressMaxWidth = 80
)

// fyneUI adapts the window to the blocking collaborator interfaces used by
// the selector, the form and the runner. Every method must be called off the
// fyne thread; each one dispatches its dialog and waits for the answer.
type fyneUI struct {
	app *tlvizApp
}

func (u *fyneUI) window() fyne.Window { return u.app.window }

func (u *fyneUI) PromptForFile(filter fileselect.Filter) (string, bool) {
	type answer struct {
		path string
		ok   bool
	}
	ch := make(chan answer, 1)
	u.app.safeDo("ui.prompt_file", func() {
		fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
			if err != nil || reader == nil {
				ch <- answer{}
				return
			}
			path := reader.URI().Path()
			reader.Close()
			ch <- answer{path: path, ok: true}
		}, u.window())
		if len(filter.Extensions) > 0 {
			fd.SetFilter(storage.NewExtensionFileFilter(filter.Extensions))
		}
		fd.Resize(fyne.NewSize(480, 460))
		fd.Show()
	})
	a := <-ch
	return a.path, a.ok
}

func (u *fyneUI) PromptForText(title, prompt string) (string, bool) {
	type answer struct {
		text string
		ok   bool
	}
	ch := make(chan answer, 1)
	u.app.safeDo("ui.prompt_text", func() {
		entry := widget.NewEntry()
		items := []*widget.FormItem{widget.NewFormItem(prompt, entry)}
		d := dialog.NewForm(title, "OK", "Cancel", items, func(confirmed bool) {
			ch <- answer{text: entry.Text, ok: confirmed}
		}, u.window())
		d.Resize(fyne.NewSize(380, 160))
		d.Show()
		u.window().Canvas().Focus(entry)
	})
	a := <-ch
	return a.text, a.ok
}

// ShowMessage blocks until the user dismisses the dialog, so consecutive
// messages from one run are shown in order.
func (u *fyneUI) ShowMessage(text string) {
	done := make(chan struct{})
	u.app.safeDo("ui.show_message", func() {
		d := dialog.NewInformation("Message", text, u.window())
		d.SetOnClosed(func() { close(done) })
		d.Show()
	})
	<-done
}

func (u *fyneUI) ShowModalWait(title, initial string) runner.WaitHandle {
	w := &waitDialog{app: u.app}
	u.app.setActiveWait(w)
	fyne.DoAndWait(func() {
		w.label = widget.NewLabel(initial)
		w.label.Wrapping = fyne.TextWrapOff
		w.dlg = dialog.NewCustomWithoutButtons(title, w.label, u.window())
		w.dlg.Show()
	})
	return w
}

func (u *fyneUI) OpenWithDefaultHandler(path string) error {
	u2, err := url.Parse(storage.NewFileURI(path).String())
	if err != nil {
		return fmt.Errorf("file url: %w", err)
	}
	var openErr error
	fyne.DoAndWait(func() {
		openErr = fyne.CurrentApp().OpenURL(u2)
	})
	return openErr
}

// waitDialog is the modal shown while the generator runs. It has no buttons;
// only the runner dismisses it.
type waitDialog struct {
	app   *tlvizApp
	dlg   dialog.Dialog
	label *widget.Label
	once  sync.Once
}

func (w *waitDialog) Update(lines []string) {
	text := progressText(lines)
	w.app.safeDo("ui.wait.update", func() {
		if w.label != nil {
			w.label.SetText(text)
		}
	})
}

func (w *waitDialog) Dismiss() {
	w.once.Do(func() {
		w.app.clearActiveWait(w)
		w.app.safeDo("ui.wait.dismiss", func() {
			if w.dlg != nil {
				w.dlg.Hide()
			}
		})
	})
}

// progressText renders the tail of the generator output for the wait dialog.
func progressText(lines []string) string {
	if len(lines) > progressMaxLines {
		lines = lines[len(lines)-progressMaxLines:]
	}
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = fileselect.Truncate(l, progressMaxWidth)
	}
	return strings.Join(out, "\n")
}
