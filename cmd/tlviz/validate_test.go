package main

import (
	"strings"
	"testing"
)

func TestValidateCommand(t *testing.T) {
	cases := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"ok", []string{"--from", "2019-01-01", "--to", "2019-12-31"}, ""},
		{"reversed_ok", []string{"--from", "2019-12-31", "--to", "2019-01-01"}, ""},
		{"empty", []string{"--to", "2019-12-31"}, "Date(s) cannot be empty! (from)"},
		{"bad", []string{"--from", "2019-1-01", "--to", "2019-13-01"}, "Incorrect date formats! (from+to)"},
		{"bad_name", []string{"--from", "2019-01-01", "--to", "2019-01-01", "--name", "a/b"}, "path separators"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := executeCommand(t, append([]string{"validate"}, tc.args...)...)
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if !strings.Contains(out, "OK") {
					t.Fatalf("output = %q", out)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("err = %v, want %q", err, tc.wantErr)
			}
		})
	}
}
