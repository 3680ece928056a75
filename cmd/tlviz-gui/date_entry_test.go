package main

import (
	"testing"

	"fyne.io/fyne/v2/test"

	"github.com/oukeidos/tlviz/internal/datefield"
	"github.com/oukeidos/tlviz/internal/daterange"
)

func TestDateEntryMirrorsField(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	f := datefield.New()
	e := newDateEntry(f)
	if e.Text != "" || e.PlaceHolder != datefield.Placeholder {
		t.Fatalf("placeholder should be shown as hint, text=%q hint=%q", e.Text, e.PlaceHolder)
	}

	e.FocusGained()
	e.edited("2019-01-01")
	if f.Text() != "2019-01-01" || f.Mode() != datefield.ModeNormal {
		t.Fatalf("field = (%q, %v)", f.Text(), f.Mode())
	}

	e.edited("2019-01-01 ")
	if f.Text() != "2019-01-01" {
		t.Fatalf("space edit leaked into field: %q", f.Text())
	}
	if e.Text != "2019-01-01" {
		t.Fatalf("entry not reverted after refused edit: %q", e.Text)
	}

	e.edited("")
	e.FocusLost()
	if !f.IsPlaceholder() || e.Text != "" {
		t.Fatalf("empty blur should restore placeholder, field=%q entry=%q", f.Text(), e.Text)
	}
}

func TestDateEntryTypedSpaceIgnored(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	f := datefield.New()
	e := newDateEntry(f)
	e.FocusGained()
	e.TypedRune('2')
	e.TypedRune(' ')
	e.TypedRune('0')
	if f.Text() != "20" {
		t.Fatalf("field text = %q, want %q", f.Text(), "20")
	}
}

func TestDateEntryInvalidMarker(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	r := daterange.New()
	from, to := newDateEntry(r.From), newDateEntry(r.To)
	from.FocusGained()
	from.edited("2019-02-30")
	from.FocusLost()
	to.FocusGained()
	to.edited("2019-03-01")
	to.FocusLost()

	r.Submit()
	from.syncFromField()
	to.syncFromField()
	if !from.marker.Visible() || to.marker.Visible() {
		t.Fatalf("marker visible from=%v to=%v, want true/false", from.marker.Visible(), to.marker.Visible())
	}

	from.FocusGained()
	if from.marker.Visible() {
		t.Fatalf("focus should clear the marker")
	}
	from.FocusLost()
	if !from.marker.Visible() {
		t.Fatalf("unchanged blur should restore the marker")
	}
}
