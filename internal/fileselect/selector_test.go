package fileselect

import (
	"path/filepath"
	"testing"
)

type scriptedPrompter struct {
	answers []string // "" means cancel
	filters []Filter
}

func (p *scriptedPrompter) PromptForFile(filter Filter) (string, bool) {
	p.filters = append(p.filters, filter)
	if len(p.answers) == 0 {
		return "", false
	}
	next := p.answers[0]
	p.answers = p.answers[1:]
	return next, next != ""
}

func TestChooseKeepsSelectionOnCancel(t *testing.T) {
	tmp := t.TempDir()
	first := filepath.Join(tmp, "Timeline.json")
	p := &scriptedPrompter{answers: []string{first, ""}}
	s := New(p, DefaultFilter)

	if _, ok := s.Selected(); ok {
		t.Fatalf("new selector should have no selection")
	}
	if got := s.Label(0); got != "No file selected" {
		t.Fatalf("Label() = %q", got)
	}

	got, ok := s.Choose()
	if !ok || got != first {
		t.Fatalf("Choose() = (%q, %v), want (%q, true)", got, ok, first)
	}
	if got := s.Label(0); got != "Selected file: Timeline.json" {
		t.Fatalf("Label() = %q", got)
	}

	if _, ok := s.Choose(); ok {
		t.Fatalf("cancelled Choose() reported success")
	}
	sel, ok := s.Selected()
	if !ok || sel != first {
		t.Fatalf("Selected() = (%q, %v) after cancel, want previous selection", sel, ok)
	}
	if got := s.Label(0); got != "Upload cancelled" {
		t.Fatalf("Label() = %q", got)
	}

	if len(p.filters) != 2 || p.filters[0].Description != "JSON Files" {
		t.Fatalf("prompter did not receive the filter hint: %+v", p.filters)
	}
}

func TestChooseMakesPathAbsolute(t *testing.T) {
	s := New(&scriptedPrompter{answers: []string{"export.json"}}, DefaultFilter)
	got, ok := s.Choose()
	if !ok {
		t.Fatalf("Choose() failed")
	}
	if !filepath.IsAbs(got) {
		t.Fatalf("Choose() = %q, want absolute path", got)
	}
}

func TestMatchesFilter(t *testing.T) {
	s := New(nil, DefaultFilter)
	if !s.MatchesFilter("/a/Records.JSON") {
		t.Fatalf("extension match should be case-insensitive")
	}
	if s.MatchesFilter("/a/records.csv") {
		t.Fatalf("csv should not match the json filter")
	}
	if !New(nil, Filter{}).MatchesFilter("/a/anything") {
		t.Fatalf("empty filter matches everything")
	}
}

func TestTruncate(t *testing.T) {
	cases := []struct {
		in   string
		max  int
		want string
	}{
		{"short.json", 20, "short.json"},
		{"abcdefgh", 5, "abcd…"},
		{"🇯🇵🇰🇷🇺🇸", 2, "🇯🇵…"},
		{"anything", 0, "anything"},
	}
	for _, tc := range cases {
		if got := Truncate(tc.in, tc.max); got != tc.want {
			t.Fatalf("Truncate(%q, %d) = %q, want %q", tc.in, tc.max, got, tc.want)
		}
	}
}
