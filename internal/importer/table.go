// Package importer reads tabular files (CSV, XLSX) into schema-less records.
package importer

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	domrec "github.com/kailas-cloud/recdex/internal/domain/record"
	"github.com/kailas-cloud/recdex/internal/domain/search/filter"
)

var (
	// ErrUnsupportedFormat is returned for file extensions other than .csv and .xlsx.
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrNoHeader is returned when the source has no header row.
	ErrNoHeader = errors.New("missing header row")
)

// Table is a header row plus data rows. Rows may be ragged.
type Table struct {
	Header []string
	Rows   [][]string
}

// Options controls cell conversion.
type Options struct {
	// KeepStrings stores every cell as a string instead of sniffing numbers.
	KeepStrings bool
}

// Open reads path by extension. sheet selects the worksheet of an XLSX file;
// empty means the first one.
func Open(path, sheet string) (*Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ReadCSVFile(path)
	case ".xlsx", ".xlsm":
		return ReadXLSX(path, sheet)
	default:
		return nil, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
}

// Records converts data rows to records keyed by header names. Missing
// trailing cells become "". Numeric-like cells become numbers unless
// opts.KeepStrings is set.
func (t *Table) Records(opts Options) []domrec.Record {
	out := make([]domrec.Record, 0, len(t.Rows))
	for _, row := range t.Rows {
		if blankRow(row) {
			continue
		}
		rec := make(domrec.Record, len(t.Header))
		for i, name := range t.Header {
			var cell string
			if i < len(row) {
				cell = row[i]
			}
			rec[name] = convertCell(cell, opts)
		}
		out = append(out, rec)
	}
	return out
}

func convertCell(cell string, opts Options) any {
	if opts.KeepStrings {
		return cell
	}
	if n, ok := filter.ParseNumeric(cell); ok {
		return n
	}
	return cell
}

// normalizeHeader trims names, strips a UTF-8 BOM and names blank, reserved
// or duplicate columns positionally. A generated name never shadows a real one.
func normalizeHeader(raw []string) ([]string, error) {
	if len(raw) == 0 || blankRow(raw) {
		return nil, ErrNoHeader
	}
	names := make([]string, len(raw))
	taken := make(map[string]bool, len(raw))
	for i, name := range raw {
		names[i] = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if usableName(names[i]) {
			taken[names[i]] = true
		}
	}

	header := make([]string, len(raw))
	seen := make(map[string]bool, len(raw))
	for i, name := range names {
		if !usableName(name) || seen[name] {
			name = positionalName(i+1, seen, taken)
		}
		seen[name] = true
		header[i] = name
	}
	return header, nil
}

func usableName(name string) bool {
	return name != "" && name != domrec.IDField && name != domrec.VersionField
}

// positionalName returns field<pos>, bumping the suffix past taken names.
func positionalName(pos int, seen, taken map[string]bool) string {
	for n := pos; ; n++ {
		name := "field" + strconv.Itoa(n)
		if !seen[name] && !taken[name] {
			return name
		}
	}
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
