// Package daterange validates the from/to date pair collected by the form.
package daterange

import (
	"regexp"
	"strings"
	"time"

	"github.com/oukeidos/tlviz/internal/datefield"
)

// Layout is the only accepted date format.
const Layout = "2006-01-02"

var datePattern = regexp.MustCompile(`^[0-9]{4}-[0-9]{2}-[0-9]{2}$`)

// IsValidDate reports whether s is a real calendar date written as
// YYYY-MM-DD. Out-of-range components are rejected, never normalized.
func IsValidDate(s string) bool {
	if !datePattern.MatchString(s) {
		return false
	}
	_, err := time.Parse(Layout, s)
	return err == nil
}

// Which identifies one or both fields of the range.
type Which uint8

const (
	From Which = 1 << iota
	To
)

// Has reports whether w includes field.
func (w Which) Has(field Which) bool { return w&field != 0 }

func (w Which) String() string {
	var parts []string
	if w.Has(From) {
		parts = append(parts, "from")
	}
	if w.Has(To) {
		parts = append(parts, "to")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "+")
}

// Kind classifies a validation outcome.
type Kind int

const (
	Ok Kind = iota
	EmptyField
	BadFormat
)

func (k Kind) String() string {
	switch k {
	case Ok:
		return "ok"
	case EmptyField:
		return "empty_field"
	case BadFormat:
		return "bad_format"
	default:
		return "unknown"
	}
}

// Result is the outcome of Validate. Fields lists the offending fields for
// EmptyField and BadFormat.
type Result struct {
	Kind   Kind
	Fields Which
}

// OK reports whether the pair passed validation.
func (r Result) OK() bool { return r.Kind == Ok }

// Message returns the user-facing text for a failed result.
func (r Result) Message() string {
	switch r.Kind {
	case EmptyField:
		return "Date(s) cannot be empty!"
	case BadFormat:
		return "Incorrect date formats!"
	default:
		return ""
	}
}

// Validate checks the raw field texts. Placeholder text counts as empty and
// takes precedence over format errors. The order of from and to is not
// checked.
func Validate(fromText, toText string) Result {
	var empty Which
	if fromText == datefield.Placeholder {
		empty |= From
	}
	if toText == datefield.Placeholder {
		empty |= To
	}
	if empty != 0 {
		return Result{Kind: EmptyField, Fields: empty}
	}

	var bad Which
	if !IsValidDate(fromText) {
		bad |= From
	}
	if !IsValidDate(toText) {
		bad |= To
	}
	if bad != 0 {
		return Result{Kind: BadFormat, Fields: bad}
	}
	return Result{Kind: Ok}
}

// Reversed reports whether two valid dates are given in descending order.
func Reversed(fromDate, toDate string) bool {
	from, err := time.Parse(Layout, fromDate)
	if err != nil {
		return false
	}
	to, err := time.Parse(Layout, toDate)
	if err != nil {
		return false
	}
	return from.After(to)
}
