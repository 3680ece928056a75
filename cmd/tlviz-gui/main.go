package main

import (
	"context"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"github.com/oukeidos/tlviz/internal/apperrors"
	"github.com/oukeidos/tlviz/internal/config"
	"github.com/oukeidos/tlviz/internal/daterange"
	"github.com/oukeidos/tlviz/internal/fileselect"
	"github.com/oukeidos/tlviz/internal/form"
	"github.com/oukeidos/tlviz/internal/logger"
	"github.com/oukeidos/tlviz/internal/runner"
	"github.com/oukeidos/tlviz/internal/version"
)

const (
	windowTitle   = "Create a map!"
	labelMaxChars = 40
)

type tlvizApp struct {
	window   fyne.Window
	prefs    fyne.Preferences
	settings appSettings
	cfg      config.Config

	selector *fileselect.Selector
	dates    *daterange.Range
	runner   *runner.Runner
	form     *form.Form
	ui       *fyneUI

	// UI Components
	content      *fyne.Container
	fileLabel    *widget.Label
	fromEntry    *dateEntry
	toEntry      *dateEntry
	customCheck  *widget.Check
	csvCheck     *widget.Check
	submitBtn    *widget.Button
	errorOverlay *canvas.Rectangle

	// Runtime data
	isAnimating     bool
	cancelMu        sync.Mutex
	activeCancel    context.CancelFunc
	activeCancelID  uint64
	waitMu          sync.Mutex
	activeWait      *waitDialog
	panicNoticeOnce sync.Once
}

func newTlvizApp(w fyne.Window, prefs fyne.Preferences) *tlvizApp {
	a := &tlvizApp{window: w, prefs: prefs}
	a.ui = &fyneUI{app: a}
	a.settings = loadSettings(prefs)
	applyLogLevel(a.settings.Debug)

	a.dates = daterange.New()
	a.selector = fileselect.New(a.ui, fileselect.DefaultFilter)
	a.cfg = a.loadConfig()
	a.buildPipeline()
	a.setupUI()
	return a
}

func applyLogLevel(debug bool) {
	level := logger.LevelInfo
	if debug {
		level = logger.LevelDebug
	}
	logger.Init(level, nil)
}

// loadConfig reads the configured file, falling back to defaults and telling
// the user when it is unusable.
func (a *tlvizApp) loadConfig() config.Config {
	cfg, err := config.Load(a.settings.ConfigPath)
	if err != nil {
		err = apperrors.Config("Could not load "+a.settings.ConfigPath+"; using defaults.", err)
		logger.Error("Configuration error", "path", a.settings.ConfigPath, "error", err)
		a.safeGo("config.notice", func() { a.ui.ShowMessage(apperrors.PublicMessage(err)) })
		return config.Default()
	}
	logger.Debug("Configuration loaded", "path", a.settings.ConfigPath, "interpreter", cfg.Interpreter, "script", cfg.Script)
	return cfg
}

// workDir is where the generator runs: next to the config file.
func (a *tlvizApp) workDir() string {
	if abs, err := filepath.Abs(a.settings.ConfigPath); err == nil {
		return filepath.Dir(abs)
	}
	wd, _ := os.Getwd()
	return wd
}

func (a *tlvizApp) buildPipeline() {
	a.runner = runner.New(a.cfg, a.ui,
		runner.WithLauncher(wrapLauncher(runner.ExecLauncher{})),
		runner.WithWorkDir(a.workDir()),
		runner.WithGo(func(fn func()) { a.safeGo("runner.run", fn) }),
		runner.WithStateHook(a.onRunnerState),
	)
	a.form = form.New(a.selector, a.dates, a.ui, a.runner, a.runFinished)
	a.form.Sync = func(fn func()) {
		fyne.DoAndWait(func() {
			fn()
			a.refreshDates()
		})
	}
}

func (a *tlvizApp) onRunnerState(s runner.State) {
	logger.Debug("Runner state", "state", s.String())
	a.safeDo("runner.state", func() {
		if a.submitBtn == nil {
			return
		}
		if s == runner.Idle {
			a.submitBtn.Enable()
		} else {
			a.submitBtn.Disable()
		}
	})
}

func (a *tlvizApp) runFinished(res runner.Result) {
	a.cancelMu.Lock()
	if a.activeCancel != nil {
		a.activeCancel()
		a.activeCancel = nil
	}
	a.cancelMu.Unlock()
	logger.Info("Run finished", "run_id", res.RunID, "state", res.State.String(), "map", res.HTMLPath, "csv", res.CSVPath)
}

func (a *tlvizApp) setActiveCancel(cancel context.CancelFunc) uint64 {
	a.cancelMu.Lock()
	if a.activeCancel != nil {
		a.activeCancel()
	}
	a.activeCancel = cancel
	a.activeCancelID++
	id := a.activeCancelID
	a.cancelMu.Unlock()
	return id
}

func (a *tlvizApp) clearActiveCancel(id uint64) {
	a.cancelMu.Lock()
	if a.activeCancelID == id {
		a.activeCancel = nil
	}
	a.cancelMu.Unlock()
}

func (a *tlvizApp) cancelActive(reason string) {
	a.cancelMu.Lock()
	cancel := a.activeCancel
	a.activeCancel = nil
	a.cancelMu.Unlock()
	if cancel != nil {
		logger.Warn("Cancellation requested", "reason", reason)
		cancel()
	}
}

func (a *tlvizApp) setActiveWait(w *waitDialog) {
	a.waitMu.Lock()
	a.activeWait = w
	a.waitMu.Unlock()
}

func (a *tlvizApp) clearActiveWait(w *waitDialog) {
	a.waitMu.Lock()
	if a.activeWait == w {
		a.activeWait = nil
	}
	a.waitMu.Unlock()
}

func (a *tlvizApp) dismissActiveWait() {
	a.waitMu.Lock()
	w := a.activeWait
	a.waitMu.Unlock()
	if w != nil {
		w.Dismiss()
	}
}

func (a *tlvizApp) setupUI() {
	title := widget.NewLabelWithStyle("🌎 Google Timeline Visualizer", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})

	a.fileLabel = widget.NewLabel(a.selector.Label(labelMaxChars))
	a.fileLabel.Truncation = fyne.TextTruncateEllipsis
	uploadBtn := widget.NewButton("Upload File", a.chooseFile)

	a.fromEntry = newDateEntry(a.dates.From)
	a.toEntry = newDateEntry(a.dates.To)
	dates := container.NewVBox(
		widget.NewLabel("Enter date range (e.g., 2019-01-01 to 2019-03-31):"),
		container.NewBorder(nil, nil, widget.NewLabel("From: "), nil, a.fromEntry.view()),
		container.NewBorder(nil, nil, widget.NewLabel("To: "), nil, a.toEntry.view()),
	)

	a.customCheck = widget.NewCheck("Create custom file name?", nil)
	a.csvCheck = widget.NewCheck("Export .csv file with coordinates", nil)

	a.submitBtn = widget.NewButton("Create map!", a.submit)
	a.submitBtn.Importance = widget.HighImportance

	body := container.NewVBox(
		title,
		container.NewBorder(nil, nil, uploadBtn, nil, a.fileLabel),
		widget.NewSeparator(),
		dates,
		widget.NewSeparator(),
		a.customCheck,
		a.csvCheck,
		a.submitBtn,
	)

	a.errorOverlay = canvas.NewRectangle(color.Transparent)
	a.errorOverlay.Hide()

	a.content = container.NewStack(container.NewPadded(body), a.errorOverlay)
	a.window.SetContent(a.content)
	a.window.SetMainMenu(a.buildMenu())
}

func (a *tlvizApp) buildMenu() *fyne.MainMenu {
	debugItem := fyne.NewMenuItem("Debug logging", nil)
	debugItem.Checked = a.settings.Debug
	debugItem.Action = func() {
		a.settings.Debug = !a.settings.Debug
		debugItem.Checked = a.settings.Debug
		saveSettings(a.prefs, a.settings)
		applyLogLevel(a.settings.Debug)
		logger.Info("Debug logging toggled", "enabled", a.settings.Debug)
	}
	configItem := fyne.NewMenuItem("Choose config file...", a.chooseConfig)
	aboutItem := fyne.NewMenuItem("About", func() {
		dialog.ShowInformation("About", version.Info(), a.window)
	})
	return fyne.NewMainMenu(
		fyne.NewMenu("Settings", debugItem, configItem),
		fyne.NewMenu("Help", aboutItem),
	)
}

func (a *tlvizApp) refreshFileLabel() {
	a.fileLabel.SetText(a.selector.Label(labelMaxChars))
}

func (a *tlvizApp) refreshDates() {
	a.fromEntry.syncFromField()
	a.toEntry.syncFromField()
}

func (a *tlvizApp) chooseFile() {
	a.safeGo("app.choose_file", func() {
		a.selector.Choose()
		a.safeDo("app.file_label", a.refreshFileLabel)
	})
}

func (a *tlvizApp) handleDropped(uri fyne.URI) {
	if a.runner.Busy() {
		return
	}
	path := uri.Path()
	if !a.selector.MatchesFilter(path) {
		logger.Debug("Rejected dropped file", "path", path)
		a.flashRed()
		return
	}
	a.selector.Set(path)
	a.refreshFileLabel()
}

func (a *tlvizApp) submit() {
	if a.runner.Busy() {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	id := a.setActiveCancel(cancel)
	f := a.form
	f.CustomName = a.customCheck.Checked
	f.ExportCSV = a.csvCheck.Checked
	a.safeGo("form.submit", func() {
		if err := f.Submit(ctx); err != nil {
			logger.Debug("Submission not started", "error", err)
			a.clearActiveCancel(id)
			cancel()
		}
	})
}

func (a *tlvizApp) chooseConfig() {
	if a.runner.Busy() {
		dialog.ShowInformation("Message", "A map is already being generated.", a.window)
		return
	}
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()
		a.settings.ConfigPath = path
		saveSettings(a.prefs, a.settings)
		a.cfg = a.loadConfig()
		a.buildPipeline()
		logger.Info("Configuration switched", "path", path)
	}, a.window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".yml", ".yaml"}))
	fd.Resize(fyne.NewSize(480, 460))
	fd.Show()
}

func (a *tlvizApp) flashRed() {
	if a.isAnimating {
		return
	}
	a.isAnimating = true
	a.errorOverlay.Show()

	a.safeGo("app.flash_red.animate", func() {
		steps := 10
		sleep := 150 * time.Millisecond / time.Duration(steps)
		fade := func(i int) {
			alpha := uint8(120 * float32(i) / float32(steps))
			a.safeDo("app.flash_red.fade", func() {
				a.errorOverlay.FillColor = color.NRGBA{R: 255, A: alpha}
				canvas.Refresh(a.errorOverlay)
			})
			time.Sleep(sleep)
		}
		for i := 1; i <= steps; i++ {
			fade(i)
		}
		for i := steps; i >= 0; i-- {
			fade(i)
		}
		a.safeDo("app.flash_red.end", func() {
			a.errorOverlay.FillColor = color.Transparent
			a.errorOverlay.Hide()
			a.isAnimating = false
			a.content.Refresh()
		})
	})
}

func main() {
	logger.Init(logger.LevelInfo, nil)
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Unrecovered GUI panic", "scope", "main", "panic", fmt.Sprint(r))
			os.Exit(1)
		}
	}()

	myApp := app.NewWithID("com.tlviz.app")

	w := myApp.NewWindow(windowTitle)
	w.SetMaster()
	w.Resize(fyne.NewSize(500, 500))
	w.SetFixedSize(true)
	w.CenterOnScreen()

	ta := newTlvizApp(w, myApp.Preferences())
	w.SetCloseIntercept(func() {
		ta.cancelActive("window closed")
		w.SetCloseIntercept(nil)
		w.Close()
	})
	w.SetOnDropped(func(_ fyne.Position, uris []fyne.URI) {
		if len(uris) > 0 {
			ta.handleDropped(uris[0])
		}
	})

	w.ShowAndRun()
}
