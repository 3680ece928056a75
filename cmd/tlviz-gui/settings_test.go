package main

import (
	"testing"

	"fyne.io/fyne/v2/test"
)

func TestSettingsDefaults(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	s := loadSettings(a.Preferences())
	if s.ConfigPath != defaultConfigPath || s.Debug {
		t.Fatalf("loadSettings() = %+v, want defaults", s)
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()
	prefs := a.Preferences()

	saveSettings(prefs, appSettings{ConfigPath: "/etc/tlviz.yml", Debug: true})
	s := loadSettings(prefs)
	if s.ConfigPath != "/etc/tlviz.yml" || !s.Debug {
		t.Fatalf("loadSettings() = %+v", s)
	}
}

func TestSettingsBlankPathFallsBack(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()
	prefs := a.Preferences()

	prefs.SetString(prefConfigPath, "   ")
	if s := loadSettings(prefs); s.ConfigPath != defaultConfigPath {
		t.Fatalf("ConfigPath = %q, want default", s.ConfigPath)
	}
}
