package runner

import (
	"testing"

	"github.com/oukeidos/tlviz/internal/apperrors"
	"github.com/oukeidos/tlviz/internal/datefield"
)

func TestNewRequestValidates(t *testing.T) {
	cases := []struct {
		name     string
		file     string
		from, to string
		out      string
		wantMsg  string
	}{
		{"no_file", "", "2019-01-01", "2019-01-02", "", "Please upload a file first."},
		{"empty_date", "/a.json", datefield.Placeholder, "2019-01-02", "", "Date(s) cannot be empty!"},
		{"bad_date", "/a.json", "2019-02-30", "2019-03-01", "", "Incorrect date formats!"},
		{"escaping_name", "/a.json", "2019-01-01", "2019-01-02", "../x", "Invalid file name."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewRequest(tc.file, tc.from, tc.to, false, tc.out)
			if !apperrors.Is(err, apperrors.KindValidation) {
				t.Fatalf("err = %v, want validation", err)
			}
			if got := apperrors.PublicMessage(err); got != tc.wantMsg {
				t.Fatalf("message = %q, want %q", got, tc.wantMsg)
			}
		})
	}
}

func TestRequestBaseName(t *testing.T) {
	req, err := NewRequest("/a.json", "2019-03-01", "2019-01-01", false, "")
	if err != nil {
		t.Fatalf("reversed range must be accepted: %v", err)
	}
	if got := req.BaseName("filtered_map"); got != "filtered_map" {
		t.Fatalf("BaseName() = %q", got)
	}
	if got := req.Args("python3", "app.py")[5]; got != "false" {
		t.Fatalf("csv flag = %q", got)
	}
	if got := req.Args("python3", "app.py")[6]; got != "" {
		t.Fatalf("empty name must still be passed positionally, got %q", got)
	}
}
