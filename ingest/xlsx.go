package ingest

import (
	"fmt"
	"io"
	"strings"

	"github.com/midbel/ggraphs"
	"github.com/xuri/excelize/v2"
)

// ReadXLSX reads a table from a sheet of a workbook. The first sheet is used
// when sheet is empty. Blank leading rows are skipped.
func ReadXLSX(r io.Reader, sheet string) (charts.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return charts.Table{}, err
	}
	defer f.Close()
	return readSheet(f, sheet)
}

func readSheet(f *excelize.File, sheet string) (charts.Table, error) {
	var t charts.Table
	if sheet == "" {
		list := f.GetSheetList()
		if len(list) == 0 {
			return t, fmt.Errorf("%w: workbook without sheet", ErrNotFound)
		}
		sheet = list[0]
	}
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return t, fmt.Errorf("%w: sheet %q", ErrNotFound, sheet)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return t, err
	}
	for len(rows) > 0 && blank(rows[0]) {
		rows = rows[1:]
	}
	if len(rows) == 0 {
		return t, nil
	}
	t.Title = strings.TrimSpace(rows[0][0])
	t.Labels = trimAll(rows[0][1:])
	for _, row := range rows[1:] {
		if blank(row) {
			continue
		}
		t.Rows = append(t.Rows, charts.TableRow{
			Title: strings.TrimSpace(row[0]),
			Cells: trimAll(row[1:]),
		})
	}
	return t, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
