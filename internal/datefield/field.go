// Package datefield models a single date text input with placeholder
// semantics and a placeholder/normal/invalid display state.
package datefield

import "strings"

// Placeholder is the sentinel text shown while a field holds no user input.
const Placeholder = "Enter date here"

// Mode is the display state of a field.
type Mode int

const (
	ModePlaceholder Mode = iota
	ModeNormal
	ModeInvalid
)

func (m Mode) String() string {
	switch m {
	case ModePlaceholder:
		return "placeholder"
	case ModeNormal:
		return "normal"
	case ModeInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// Field is the state machine behind one date input. It is not safe for
// concurrent use; UI toolkits drive it from their event goroutine.
type Field struct {
	text string
	mode Mode

	// override lets programmatic writes through the space filter.
	override bool

	// armed is set by a failed submission; snapshot is the text at that time.
	armed    bool
	snapshot string
}

// New returns a field showing the placeholder.
func New() *Field {
	f := &Field{}
	f.SetText(Placeholder)
	return f
}

// Text returns the current text, including the placeholder sentinel.
func (f *Field) Text() string { return f.text }

// Mode returns the current display state.
func (f *Field) Mode() Mode { return f.mode }

// IsPlaceholder reports whether the field still shows the sentinel text.
func (f *Field) IsPlaceholder() bool { return f.text == Placeholder }

// SetText replaces the whole text, bypassing the space filter.
func (f *Field) SetText(s string) {
	f.override = true
	defer func() { f.override = false }()
	f.Replace(0, len([]rune(f.text)), s)
}

// Insert inserts s at the rune offset. It reports false and leaves the text
// untouched when s contains a space and the write is not programmatic.
func (f *Field) Insert(offset int, s string) bool {
	return f.Replace(offset, 0, s)
}

// Replace replaces length runes starting at offset with s. The same space
// rule as Insert applies.
func (f *Field) Replace(offset, length int, s string) bool {
	if !f.override && strings.Contains(s, " ") {
		return false
	}
	runes := []rune(f.text)
	offset = clamp(offset, 0, len(runes))
	end := clamp(offset+length, offset, len(runes))

	var b strings.Builder
	b.WriteString(string(runes[:offset]))
	b.WriteString(s)
	b.WriteString(string(runes[end:]))
	f.text = b.String()

	if f.text == Placeholder {
		f.mode = ModePlaceholder
	} else {
		f.mode = ModeNormal
	}
	return true
}

// Edit applies a whole-text edit coming from a toolkit that reports the new
// content rather than a delta.
func (f *Field) Edit(newText string) bool {
	if newText == f.text {
		return true
	}
	return f.Replace(0, len([]rune(f.text)), newText)
}

// FocusGained clears the invalid marker and removes the placeholder so the
// user starts typing into an empty field.
func (f *Field) FocusGained() {
	if f.mode == ModeInvalid {
		f.mode = ModeNormal
	}
	if f.text == Placeholder {
		f.text = ""
		f.mode = ModeNormal
	}
}

// FocusLost re-applies the invalid marker when the user left the field
// unchanged after a failed submission, and restores the placeholder when the
// field is empty.
func (f *Field) FocusLost() {
	if f.armed && f.text == f.snapshot {
		f.mode = ModeInvalid
	}
	if f.text == "" {
		f.SetText(Placeholder)
	}
}

// MarkInvalid switches the field to the invalid display state. A field
// showing the placeholder stays in placeholder mode.
func (f *Field) MarkInvalid() {
	if f.text == Placeholder {
		return
	}
	f.mode = ModeInvalid
}

// Arm records the current text as the failure snapshot.
func (f *Field) Arm() {
	f.armed = true
	f.snapshot = f.text
}

// Disarm forgets the failure snapshot.
func (f *Field) Disarm() {
	f.armed = false
	f.snapshot = ""
}

// Armed reports whether a failure snapshot is held.
func (f *Field) Armed() bool { return f.armed }

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
