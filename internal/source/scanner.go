package source

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// sheet is a header-indexed view over the rows of one worksheet.
type sheet struct {
	name string
	cols map[string]int
	rows [][]string // data rows, header excluded
}

// ScanDir finds the legacy workbooks in dir. Names match case-insensitively.
// A missing workbook is not an error; the returned map only holds what exists.
func ScanDir(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	found := make(map[string]string)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		for _, want := range []string{CRMWorkbook, OperationsWorkbook} {
			if strings.EqualFold(e.Name(), want) {
				found[want] = filepath.Join(dir, e.Name())
			}
		}
	}
	return found, nil
}

// openSheets reads the named sheets of a workbook. Absent sheets are left
// out of the result.
func openSheets(path string, names ...string) (map[string]*sheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", filepath.Base(path), err)
	}
	defer func() { _ = f.Close() }()

	out := make(map[string]*sheet, len(names))
	for _, name := range names {
		if idx, err := f.GetSheetIndex(name); err != nil || idx < 0 {
			continue
		}
		// Raw values: number formats would otherwise round costs like 0.0045
		// to the displayed "0.00".
		rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("reading %s/%s: %w", filepath.Base(path), name, err)
		}
		out[name] = newSheet(name, rows)
	}
	return out, nil
}

func newSheet(name string, rows [][]string) *sheet {
	s := &sheet{name: name, cols: make(map[string]int)}
	if len(rows) == 0 {
		return s
	}
	for i, h := range rows[0] {
		key := normalizeHeader(h)
		if _, dup := s.cols[key]; !dup && key != "" {
			s.cols[key] = i
		}
	}
	s.rows = rows[1:]
	return s
}

func normalizeHeader(h string) string {
	return strings.ToLower(strings.Join(strings.Fields(h), " "))
}

// cell returns the trimmed value of column in row, or "" when absent.
func (s *sheet) cell(row []string, column string) string {
	i, ok := s.cols[normalizeHeader(column)]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func (s *sheet) has(column string) bool {
	_, ok := s.cols[normalizeHeader(column)]
	return ok
}

// blank reports whether every cell of row is empty.
func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
