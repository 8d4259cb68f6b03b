package excel_parser_service

import (
	"strings"

	"github.com/init-pkg/siot-loader/domain/app"
	"github.com/xuri/excelize/v2"
)

// --- helpers: header columns kept after placeholder/blank filtering
func keptColumns(header []string) []int {
	cols := make([]int, 0, len(header))
	for c, h := range header {
		h = strings.TrimSpace(h)
		if h == "" || strings.HasPrefix(h, "Unnamed") {
			continue
		}
		cols = append(cols, c)
	}
	return cols
}

func nonEmptyInRow(row []app.CellValue) (cnt int) {
	for _, v := range row {
		if !v.IsBlank() {
			cnt++
		}
	}
	return
}

// cellAt returns row[c] or null past the end of a short row.
func cellAt(row []app.CellValue, c int) app.CellValue {
	if c < len(row) {
		return row[c]
	}
	return app.NullCell()
}

func trimCell(v app.CellValue) app.CellValue {
	if v.Kind == app.CellString {
		v.Str = strings.TrimSpace(v.Str)
	}
	return v
}

// buildTable projects header and body onto the kept columns, trims strings
// and drops rows that carry nothing in any kept column.
func buildTable(sheet string, source app.TableSource, headerRowIndex int, header []string, body [][]app.CellValue, sheetRows []int) *app.RawTable {
	cols := keptColumns(header)

	table := &app.RawTable{
		Sheet:          sheet,
		Source:         source,
		HeaderRowIndex: headerRowIndex,
		Columns:        make([]string, 0, len(cols)),
	}
	for _, c := range cols {
		table.Columns = append(table.Columns, strings.TrimSpace(header[c]))
	}

	for i, raw := range body {
		row := make([]app.CellValue, len(cols))
		for j, c := range cols {
			row[j] = trimCell(cellAt(raw, c))
		}
		if nonEmptyInRow(row) == 0 {
			continue
		}
		table.Rows = append(table.Rows, row)
		table.SheetRows = append(table.SheetRows, sheetRows[i])
	}

	return table
}

// parseRange splits an "A1:D10" reference into 1-based inclusive bounds.
func parseRange(ref string) (c1, r1, c2, r2 int, err error) {
	ref = strings.ReplaceAll(ref, "$", "")
	parts := strings.Split(ref, ":")
	if len(parts) == 1 {
		parts = append(parts, parts[0])
	}
	if c1, r1, err = excelize.CellNameToCoordinates(parts[0]); err != nil {
		return
	}
	if c2, r2, err = excelize.CellNameToCoordinates(parts[1]); err != nil {
		return
	}
	if c2 < c1 {
		c1, c2 = c2, c1
	}
	if r2 < r1 {
		r1, r2 = r2, r1
	}
	return
}
