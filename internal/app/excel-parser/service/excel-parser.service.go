package excel_parser_service

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"

	"github.com/init-pkg/siot-loader/domain/app"
	"github.com/xuri/excelize/v2"
)

const (
	DefaultScanRows = 40
	maxScanRows     = 200
)

// AnchorMatcher tells whether a header cell names the anchor field.
type AnchorMatcher interface {
	IsAnchor(header string) bool
}

type ExcelParserService struct {
	anchor   AnchorMatcher
	scanRows int
	log      *slog.Logger
}

var _ app.TableLocator = &ExcelParserService{}

func New(anchor AnchorMatcher, scanRows int, log *slog.Logger) *ExcelParserService {
	if scanRows <= 0 {
		scanRows = DefaultScanRows
	}
	if scanRows > maxScanRows {
		scanRows = maxScanRows
	}
	return &ExcelParserService{anchor: anchor, scanRows: scanRows, log: log}
}

// Locate finds the data region: the structured table named preferredTable
// on any sheet, else the first row of the first sheet that carries the
// anchor header. Neither found is app.ErrTableNotFound.
func (s *ExcelParserService) Locate(file []byte, preferredTable string) (*app.RawTable, error) {
	f, err := excelize.OpenReader(bytes.NewReader(file))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", app.ErrInvalidWorkbook, err)
	}
	defer f.Close()

	r := newCellReader(f)

	table, err := s.locateNamedTable(f, r, preferredTable)
	if err != nil {
		return nil, err
	}
	if table == nil {
		table, err = s.scanForHeader(f, r)
		if err != nil {
			return nil, err
		}
	}
	if table == nil {
		return nil, fmt.Errorf("%w: no table %q and no anchor header in the first %d rows", app.ErrTableNotFound, preferredTable, s.scanRows)
	}

	s.log.Info("table located",
		"sheet", table.Sheet,
		"source", table.Source,
		"headerRow", table.HeaderRowIndex+1,
		"columns", len(table.Columns),
		"rows", len(table.Rows))
	return table, nil
}

func (s *ExcelParserService) locateNamedTable(f *excelize.File, r *cellReader, name string) (*app.RawTable, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}

	for _, sheet := range f.GetSheetList() {
		tables, err := f.GetTables(sheet)
		if err != nil {
			s.log.Warn("failed to list tables", "sheet", sheet, "error", err)
			continue
		}
		for _, t := range tables {
			if !strings.EqualFold(strings.TrimSpace(t.Name), name) {
				continue
			}

			c1, r1, c2, r2, err := parseRange(t.Range)
			if err != nil {
				return nil, fmt.Errorf("table %q range %q: %w", t.Name, t.Range, err)
			}
			grid, err := r.sheetGrid(sheet)
			if err != nil {
				return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
			}

			header := r.row(sheet, rawRow(grid, r1), r1, c1, c2)
			var (
				body      [][]app.CellValue
				sheetRows []int
			)
			for row := r1 + 1; row <= r2; row++ {
				body = append(body, r.row(sheet, rawRow(grid, row), row, c1, c2))
				sheetRows = append(sheetRows, row)
			}

			s.log.Debug("structured table matched", "sheet", sheet, "table", t.Name, "range", t.Range)
			return buildTable(sheet, app.TableSourceNamed, r1-1, headerText(header), body, sheetRows), nil
		}
	}
	return nil, nil
}

func (s *ExcelParserService) scanForHeader(f *excelize.File, r *cellReader) (*app.RawTable, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	sheet := sheets[0]

	grid, err := r.sheetGrid(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	headerIdx := -1
	for i := 0; i < len(grid) && i < s.scanRows && headerIdx < 0; i++ {
		for _, cell := range grid[i] {
			if s.anchor.IsAnchor(cell) {
				headerIdx = i
				break
			}
		}
	}
	if headerIdx < 0 {
		return nil, nil
	}

	maxCol := 0
	for i := headerIdx; i < len(grid); i++ {
		if len(grid[i]) > maxCol {
			maxCol = len(grid[i])
		}
	}

	header := r.row(sheet, grid[headerIdx], headerIdx+1, 1, maxCol)
	var (
		body      [][]app.CellValue
		sheetRows []int
	)
	for i := headerIdx + 1; i < len(grid); i++ {
		body = append(body, r.row(sheet, grid[i], i+1, 1, maxCol))
		sheetRows = append(sheetRows, i+1)
	}

	s.log.Debug("header row detected", "sheet", sheet, "row", headerIdx+1)
	return buildTable(sheet, app.TableSourceScan, headerIdx, headerText(header), body, sheetRows), nil
}

func rawRow(grid [][]string, row int) []string {
	if row-1 < len(grid) && row >= 1 {
		return grid[row-1]
	}
	return nil
}

func headerText(cells []app.CellValue) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = strings.TrimSpace(c.String())
	}
	return out
}
