// Package fileselect keeps track of the timeline export chosen by the user.
package fileselect

import (
	"path/filepath"
	"strings"
	"sync"

	"github.com/rivo/uniseg"
)

// Filter is a hint for the file chooser. It is not enforced on the result.
type Filter struct {
	Description string
	Extensions  []string
}

// DefaultFilter matches Google Timeline JSON exports.
var DefaultFilter = Filter{Description: "JSON Files", Extensions: []string{".json"}}

// Prompter asks the user for one file. ok is false when the user cancels.
type Prompter interface {
	PromptForFile(filter Filter) (path string, ok bool)
}

type status int

const (
	statusNone status = iota
	statusSelected
	statusCancelled
)

// Selector remembers the last successful choice. A cancelled prompt keeps
// the previous selection.
type Selector struct {
	prompter Prompter
	filter   Filter

	mu       sync.Mutex
	selected string
	status   status
}

// New returns a selector using filter as the chooser hint.
func New(p Prompter, filter Filter) *Selector {
	return &Selector{prompter: p, filter: filter}
}

// Choose prompts for a file and stores its absolute path on success.
func (s *Selector) Choose() (string, bool) {
	path, ok := s.prompter.PromptForFile(s.filter)
	if !ok || strings.TrimSpace(path) == "" {
		s.mu.Lock()
		s.status = statusCancelled
		s.mu.Unlock()
		return "", false
	}
	s.Set(path)
	return s.Selected()
}

// Set records a path chosen outside the prompt (drag and drop, CLI args).
func (s *Selector) Set(path string) {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	s.mu.Lock()
	s.selected = path
	s.status = statusSelected
	s.mu.Unlock()
}

// Selected returns the last successful choice.
func (s *Selector) Selected() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected, s.selected != ""
}

// Filter returns the chooser hint.
func (s *Selector) Filter() Filter { return s.filter }

// MatchesFilter reports whether path carries one of the hinted extensions.
func (s *Selector) MatchesFilter(path string) bool {
	if len(s.filter.Extensions) == 0 {
		return true
	}
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range s.filter.Extensions {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}

// Label is the status line shown next to the upload button, with the file
// name cut to maxGraphemes user-perceived characters.
func (s *Selector) Label(maxGraphemes int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.status {
	case statusSelected:
		return "Selected file: " + Truncate(filepath.Base(s.selected), maxGraphemes)
	case statusCancelled:
		return "Upload cancelled"
	default:
		return "No file selected"
	}
}

// Truncate shortens s to at most max grapheme clusters, ending with an
// ellipsis when anything was cut. max <= 0 disables truncation.
func Truncate(s string, max int) string {
	if max <= 0 || uniseg.GraphemeClusterCount(s) <= max {
		return s
	}
	var b strings.Builder
	g := uniseg.NewGraphemes(s)
	for n := 0; n < max-1 && g.Next(); n++ {
		b.WriteString(g.Str())
	}
	b.WriteString("…")
	return b.String()
}
