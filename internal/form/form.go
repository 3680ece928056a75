// Package form implements the submit handler of the map generator form.
package form

import (
	"context"
	"errors"
	"strings"

	"github.com/oukeidos/tlviz/internal/apperrors"
	"github.com/oukeidos/tlviz/internal/daterange"
	"github.com/oukeidos/tlviz/internal/fileselect"
	"github.com/oukeidos/tlviz/internal/files"
	"github.com/oukeidos/tlviz/internal/logger"
	"github.com/oukeidos/tlviz/internal/runner"
)

// ErrCancelled is returned when the user backs out of the name prompt.
var ErrCancelled = errors.New("submission cancelled")

const (
	NameTitle  = "Name your map!"
	NamePrompt = "Name the file:"

	msgNoFile    = "Please upload a file first."
	msgEmptyName = "The field cannot be empty."
	msgBadName   = "The name must not contain path separators or \"..\"."
	msgBusy      = "A map is already being generated."
)

// UI is what the submit handler needs from the front end.
type UI interface {
	ShowMessage(text string)
	PromptForText(title, prompt string) (string, bool)
}

// Starter launches a validated request in the background.
type Starter interface {
	Start(ctx context.Context, req runner.Request, onDone func(runner.Result)) error
}

// Form holds the inputs collected by the window. CustomName and ExportCSV
// mirror the two checkboxes.
type Form struct {
	Files      *fileselect.Selector
	Dates      *daterange.Range
	CustomName bool
	ExportCSV  bool

	// Sync runs fn where the date fields may be touched. Front ends that
	// call Submit off their UI thread set it; nil runs fn directly.
	Sync func(fn func())

	ui     UI
	runner Starter
	onDone func(runner.Result)
}

func New(sel *fileselect.Selector, dates *daterange.Range, ui UI, r Starter, onDone func(runner.Result)) *Form {
	return &Form{Files: sel, Dates: dates, ui: ui, runner: r, onDone: onDone}
}

// Submit checks the inputs in order (file, dates, name) and starts a run.
// Every rejection is reported to the user once and returned.
func (f *Form) Submit(ctx context.Context) error {
	path, ok := f.Files.Selected()
	if !ok {
		f.ui.ShowMessage(msgNoFile)
		return apperrors.Validation(msgNoFile)
	}

	var (
		res      daterange.Result
		from, to string
	)
	f.sync(func() {
		res = f.Dates.Submit()
		from, to = f.Dates.Texts()
	})
	if !res.OK() {
		logger.Debug("Date validation failed", "kind", res.Kind.String(), "fields", res.Fields.String())
		f.ui.ShowMessage(res.Message())
		return apperrors.Validation(res.Message())
	}

	name := ""
	if f.CustomName {
		if name, ok = f.askName(); !ok {
			return ErrCancelled
		}
	}

	req, err := runner.NewRequest(path, from, to, f.ExportCSV, name)
	if err != nil {
		f.ui.ShowMessage(apperrors.PublicMessage(err))
		return err
	}
	if err := f.runner.Start(ctx, req, f.onDone); err != nil {
		if errors.Is(err, runner.ErrBusy) {
			f.ui.ShowMessage(msgBusy)
		}
		return err
	}
	return nil
}

func (f *Form) sync(fn func()) {
	if f.Sync == nil {
		fn()
		return
	}
	f.Sync(fn)
}

// askName loops until a usable name is entered. Cancel or an empty answer
// aborts; whitespace or an unsafe name re-prompts.
func (f *Form) askName() (string, bool) {
	for {
		text, ok := f.ui.PromptForText(NameTitle, NamePrompt)
		if !ok || text == "" {
			return "", false
		}
		name := strings.TrimSpace(text)
		if name == "" {
			f.ui.ShowMessage(msgEmptyName)
			continue
		}
		if err := files.ValidateBaseName(name); err != nil {
			f.ui.ShowMessage(msgBadName)
			continue
		}
		return name, true
	}
}
