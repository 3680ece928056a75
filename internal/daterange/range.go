package daterange

import "github.com/oukeidos/tlviz/internal/datefield"

// Range is the from/to pair of date fields shown on the form.
type Range struct {
	From *datefield.Field
	To   *datefield.Field
}

// New returns a range with both fields showing the placeholder.
func New() *Range {
	return &Range{From: datefield.New(), To: datefield.New()}
}

// Texts returns the current raw texts of both fields.
func (r *Range) Texts() (string, string) {
	return r.From.Text(), r.To.Text()
}

// Submit validates the current texts. On a format error every bad field is
// marked invalid and both fields snapshot their text, so leaving a field
// unchanged re-applies the marker on blur. A successful submission clears
// the snapshots.
func (r *Range) Submit() Result {
	res := Validate(r.Texts())
	switch res.Kind {
	case BadFormat:
		if res.Fields.Has(From) {
			r.From.MarkInvalid()
		}
		if res.Fields.Has(To) {
			r.To.MarkInvalid()
		}
		r.From.Arm()
		r.To.Arm()
	case Ok:
		r.From.Disarm()
		r.To.Disarm()
	}
	return res
}
