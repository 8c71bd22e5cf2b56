package dictionary

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"github.com/cognicore/shortname/pkg/shortname/internalerr"
)

var (
	termHeaders = map[string]struct{}{
		"term": {}, "full term": {}, "full": {}, "word": {}, "full word": {}, "description": {},
	}
	abbrHeaders = map[string]struct{}{
		"abbreviation": {}, "abbreviations": {}, "abbr": {}, "short": {}, "short form": {}, "code": {},
	}
)

// Load reads a dictionary file. The format is chosen by extension:
// .csv/.tsv/.txt (delimited text), .xlsx (first sheet) or .yaml/.yml.
//
// Expected tabular layout:
//
//	Full Term,Abbreviation     <- optional header
//	milliliters,ml
//	bottle,BTL
//
// Rows missing either column are skipped and recorded in Warnings.
// A source with zero usable rows fails with a DictionaryLoadError.
func Load(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, internalerr.NewDictionaryLoadError(path, err, "open")
	}
	defer f.Close()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx", ".xlsm":
		return LoadXLSX(f, path)
	case ".yaml", ".yml":
		return LoadYAML(f, path)
	case ".tsv":
		return loadDelimited(f, path, '\t')
	case ".xls":
		return nil, internalerr.NewDictionaryLoadError(path, nil, "legacy .xls workbooks are not supported, save as .xlsx or .csv")
	default:
		return LoadCSV(f, path)
	}
}

// LoadCSV reads comma separated rows: full term, abbreviation.
func LoadCSV(r io.Reader, source string) (*Dictionary, error) {
	return loadDelimited(r, source, ',')
}

func loadDelimited(r io.Reader, source string, comma rune) (*Dictionary, error) {
	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.LazyQuotes = true

	var rows [][]string
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, internalerr.NewDictionaryLoadError(source, err, "read row %d", len(rows)+1)
		}
		rows = append(rows, rec)
	}
	return fromRows(source, rows)
}

// LoadXLSX reads the first worksheet of an Excel workbook.
func LoadXLSX(r io.Reader, source string) (*Dictionary, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, internalerr.NewDictionaryLoadError(source, err, "open workbook")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, internalerr.NewDictionaryLoadError(source, nil, "workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, internalerr.NewDictionaryLoadError(source, err, "read sheet %q", sheets[0])
	}
	return fromRows(source, rows)
}

// LoadYAML reads a dictionary in YAML form.
//
// Expected format:
//
//	abbreviations:
//	  - term: milliliters
//	    abbreviation: ml
//	  - term: non-latex
//	    abbreviation: NL
func LoadYAML(r io.Reader, source string) (*Dictionary, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, internalerr.NewDictionaryLoadError(source, err, "read")
	}

	var doc struct {
		Abbreviations []Entry `yaml:"abbreviations"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, internalerr.NewDictionaryLoadError(source, err, "parse yaml")
	}

	d := FromEntries(source, doc.Abbreviations)
	if d.Empty() {
		return nil, internalerr.NewDictionaryLoadError(source, nil, "no usable entries")
	}
	return d, nil
}

// fromRows turns raw table rows into a dictionary. Column one is the
// full term, column two the abbreviation; extra columns are ignored.
func fromRows(source string, rows [][]string) (*Dictionary, error) {
	d := New()
	d.source = source

	for i, row := range rows {
		line := i + 1
		if i == 0 && isHeader(row) {
			continue
		}
		if isBlank(row) {
			continue
		}
		if len(row) < 2 {
			d.warnf("row %d skipped: expected 2 columns, got %d", line, len(row))
			continue
		}
		term, abbr := cell(row, 0), cell(row, 1)
		switch {
		case term == "":
			d.warnf("row %d skipped: missing full term", line)
		case abbr == "":
			d.warnf("row %d skipped: missing abbreviation for %q", line, term)
		default:
			d.add(term, abbr)
		}
	}

	if d.Empty() {
		return nil, internalerr.NewDictionaryLoadError(source, nil, "no usable rows (%d skipped)", len(d.warnings))
	}
	d.revision = newRevision()
	return d, nil
}

func isHeader(row []string) bool {
	if len(row) == 0 {
		return false
	}
	if _, ok := termHeaders[strings.ToLower(cell(row, 0))]; ok {
		return true
	}
	if len(row) > 1 {
		if _, ok := abbrHeaders[strings.ToLower(cell(row, 1))]; ok {
			return true
		}
	}
	return false
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(row[i], "\ufeff"))
}
