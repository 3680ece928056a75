package main

import (
	"strings"

	"fyne.io/fyne/v2"
)

const (
	prefConfigPath = "ConfigPath"
	prefDebug      = "DebugLogging"

	defaultConfigPath = "tlviz.yml"
)

// appSettings is everything the GUI persists. Form inputs are deliberately
// not stored: every launch starts from an empty form.
type appSettings struct {
	ConfigPath string
	Debug      bool
}

func loadSettings(prefs fyne.Preferences) appSettings {
	s := appSettings{
		ConfigPath: strings.TrimSpace(prefs.StringWithFallback(prefConfigPath, defaultConfigPath)),
		Debug:      prefs.BoolWithFallback(prefDebug, false),
	}
	if s.ConfigPath == "" {
		s.ConfigPath = defaultConfigPath
	}
	return s
}

func saveSettings(prefs fyne.Preferences, s appSettings) {
	prefs.SetString(prefConfigPath, s.ConfigPath)
	prefs.SetBool(prefDebug, s.Debug)
}
