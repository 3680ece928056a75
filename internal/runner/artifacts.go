package runner

import (
	"errors"
	"io/fs"
	"sort"
	"strings"

	"github.com/oukeidos/tlviz/internal/files"
)

// artifacts is what the generator left in the output directory.
type artifacts struct {
	html       string // name relative to the output dir, "" when missing
	csvMatches []string
}

// csv returns the reported CSV: the lexicographically last match.
func (a artifacts) csv() string {
	if len(a.csvMatches) == 0 {
		return ""
	}
	return a.csvMatches[len(a.csvMatches)-1]
}

// baseCandidates lists the stems the generator may have used. Newer
// generator versions replace unsafe characters before writing.
func baseCandidates(base string) []string {
	out := []string{base}
	if s := files.SanitizeBaseName(base); s != base {
		out = append(out, s)
	}
	return out
}

// discover looks for <base>.html and, when wantCSV is set, <base>*.csv.
func discover(fsys fs.FS, base string, wantCSV bool) (artifacts, error) {
	var a artifacts
	stems := baseCandidates(base)
	for _, stem := range stems {
		info, err := fs.Stat(fsys, stem+".html")
		if err == nil && !info.IsDir() {
			a.html = stem + ".html"
			break
		}
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return a, err
		}
	}
	if !wantCSV {
		return a, nil
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return a, nil
		}
		return a, err
	}
	seen := make(map[string]bool)
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".csv") || seen[name] {
			continue
		}
		for _, stem := range stems {
			if strings.HasPrefix(name, stem) {
				a.csvMatches = append(a.csvMatches, name)
				seen[name] = true
				break
			}
		}
	}
	sort.Strings(a.csvMatches)
	return a, nil
}
