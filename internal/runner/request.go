package runner

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/oukeidos/tlviz/internal/apperrors"
	"github.com/oukeidos/tlviz/internal/daterange"
	"github.com/oukeidos/tlviz/internal/files"
)

// Request is one validated generator invocation. Build it with NewRequest;
// the runner never mutates it.
type Request struct {
	filePath   string
	fromDate   string
	toDate     string
	exportCSV  bool
	outputName string
}

// NewRequest validates its inputs. filePath must already be absolute when it
// comes from the file chooser; relative paths are passed through unchanged.
func NewRequest(filePath, fromDate, toDate string, exportCSV bool, outputName string) (Request, error) {
	if strings.TrimSpace(filePath) == "" {
		return Request{}, apperrors.Validation("Please upload a file first.")
	}
	if res := daterange.Validate(fromDate, toDate); !res.OK() {
		return Request{}, apperrors.New(apperrors.KindValidation, res.Message(), fmt.Errorf("dates %s", res.Fields))
	}
	if err := files.ValidateBaseName(outputName); err != nil {
		return Request{}, apperrors.New(apperrors.KindValidation, "Invalid file name.", err)
	}
	return Request{
		filePath:   filePath,
		fromDate:   fromDate,
		toDate:     toDate,
		exportCSV:  exportCSV,
		outputName: outputName,
	}, nil
}

func (r Request) FilePath() string   { return r.filePath }
func (r Request) FromDate() string   { return r.fromDate }
func (r Request) ToDate() string     { return r.toDate }
func (r Request) ExportCSV() bool    { return r.exportCSV }
func (r Request) OutputName() string { return r.outputName }

// Args is the positional contract of the generator script:
// interpreter, script, input, from, to, "true"|"false", name.
func (r Request) Args(interpreter, script string) []string {
	return []string{
		interpreter,
		script,
		r.filePath,
		r.fromDate,
		r.toDate,
		strconv.FormatBool(r.exportCSV),
		r.outputName,
	}
}

// BaseName is the artifact stem: the custom name or def when none was given.
func (r Request) BaseName(def string) string {
	if r.outputName == "" {
		return def
	}
	return r.outputName
}
