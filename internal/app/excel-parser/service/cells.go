package excel_parser_service

import (
	"strconv"
	"strings"
	"time"

	"github.com/init-pkg/siot-loader/domain/app"
	"github.com/xuri/excelize/v2"
)

type numFormat int

const (
	numFormatGeneral numFormat = iota
	numFormatDate
	numFormatTime
)

// cellReader types raw cell text using the cell's stored type and its
// number format. Style lookups are cached per style id.
type cellReader struct {
	f        *excelize.File
	date1904 bool
	formats  map[int]numFormat
}

func newCellReader(f *excelize.File) *cellReader {
	use1904 := false
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		use1904 = *props.Date1904
	}
	return &cellReader{f: f, date1904: use1904, formats: make(map[int]numFormat)}
}

// sheetGrid reads every row of a sheet as raw (unformatted) values.
func (r *cellReader) sheetGrid(sheet string) ([][]string, error) {
	return r.f.GetRows(sheet, excelize.Options{RawCellValue: true})
}

// row types the cells of one raw grid row between columns c1..c2 (1-based,
// inclusive). rowNum is the 1-based sheet row.
func (r *cellReader) row(sheet string, raw []string, rowNum, c1, c2 int) []app.CellValue {
	out := make([]app.CellValue, 0, c2-c1+1)
	for c := c1; c <= c2; c++ {
		val := ""
		if c-1 < len(raw) {
			val = raw[c-1]
		}
		out = append(out, r.value(sheet, c, rowNum, val))
	}
	return out
}

func (r *cellReader) value(sheet string, col, row int, raw string) app.CellValue {
	if raw == "" {
		return app.NullCell()
	}

	ref, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return app.StringCell(raw)
	}
	ctype, _ := r.f.GetCellType(sheet, ref)

	switch ctype {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeFormula, excelize.CellTypeError:
		return app.StringCell(raw)
	case excelize.CellTypeBool:
		if raw == "1" || strings.EqualFold(raw, "true") {
			return app.StringCell("TRUE")
		}
		return app.StringCell("FALSE")
	case excelize.CellTypeDate:
		for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"} {
			if t, err := time.Parse(layout, raw); err == nil {
				return app.DateCell(t)
			}
		}
		return app.StringCell(raw)
	}

	n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return app.StringCell(raw)
	}

	switch r.format(sheet, ref) {
	case numFormatDate:
		t, err := excelize.ExcelDateToTime(n, r.date1904)
		if err != nil {
			return app.NumberCell(n)
		}
		if n < 1 {
			return app.TimeCell(t)
		}
		return app.DateCell(t)
	case numFormatTime:
		t, err := excelize.ExcelDateToTime(n, r.date1904)
		if err != nil {
			return app.NumberCell(n)
		}
		return app.TimeCell(t)
	}
	return app.NumberCell(n)
}

func (r *cellReader) format(sheet, ref string) numFormat {
	styleID, err := r.f.GetCellStyle(sheet, ref)
	if err != nil || styleID == 0 {
		return numFormatGeneral
	}
	if nf, ok := r.formats[styleID]; ok {
		return nf
	}

	nf := numFormatGeneral
	if style, err := r.f.GetStyle(styleID); err == nil && style != nil {
		if style.CustomNumFmt != nil {
			nf = classifyCustomFormat(*style.CustomNumFmt)
		} else {
			nf = classifyBuiltinFormat(style.NumFmt)
		}
	}
	r.formats[styleID] = nf
	return nf
}

func classifyBuiltinFormat(id int) numFormat {
	switch {
	case id >= 18 && id <= 21, id >= 45 && id <= 47:
		return numFormatTime
	case id >= 14 && id <= 22, id >= 27 && id <= 36, id >= 50 && id <= 58:
		return numFormatDate
	}
	return numFormatGeneral
}

// classifyCustomFormat looks for date/time tokens outside quoted literals,
// escapes and bracketed locale/colour sections. Elapsed-time brackets like
// [h] still count as time.
func classifyCustomFormat(code string) numFormat {
	var b strings.Builder
	inQuote := false
	for i := 0; i < len(code); i++ {
		ch := code[i]
		switch {
		case ch == '"':
			inQuote = !inQuote
		case inQuote:
		case ch == '\\':
			i++
		case ch == '[':
			end := strings.IndexByte(code[i:], ']')
			if end < 0 {
				i = len(code)
				break
			}
			inner := strings.ToLower(code[i+1 : i+end])
			if inner == "h" || inner == "hh" || inner == "m" || inner == "mm" || inner == "s" || inner == "ss" {
				b.WriteString(inner)
			}
			i += end
		default:
			b.WriteByte(ch)
		}
	}

	s := strings.ToLower(b.String())
	if s == "general" {
		return numFormatGeneral
	}
	if strings.ContainsAny(s, "yd") {
		return numFormatDate
	}
	if strings.ContainsAny(s, "hs") {
		return numFormatTime
	}
	return numFormatGeneral
}
