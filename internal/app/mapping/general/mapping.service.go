package mapping_service

import (
	"log/slog"
	"strings"

	"github.com/init-pkg/siot-loader/domain/app"
)

// Service turns a located table into canonical records.
type Service struct {
	anchor string
	log    *slog.Logger
}

func New(anchor string, log *slog.Logger) *Service {
	return &Service{anchor: anchor, log: log}
}

// Extract renames the table columns through rename and builds one Record per
// body row holding only canonical keys. A column that renames to a name an
// earlier column already took is ignored.
//
// Rows after the last non-blank anchor value are dropped. Without an anchor
// column, or with no anchor value at all, the result is empty.
func (this *Service) Extract(table *app.RawTable, rename map[string]string) []app.Record {
	if table == nil {
		return nil
	}

	names := make([]string, len(table.Columns))
	taken := make(map[string]struct{}, len(table.Columns))
	anchorCol := -1
	for i, col := range table.Columns {
		canonical, ok := rename[col]
		if !ok {
			continue
		}
		if _, dup := taken[canonical]; dup {
			this.log.Warn("duplicate canonical column ignored", "column", col, "field", canonical)
			continue
		}
		taken[canonical] = struct{}{}
		names[i] = canonical
		if canonical == this.anchor {
			anchorCol = i
		}
	}

	if anchorCol < 0 {
		this.log.Warn("anchor column not found", "field", this.anchor, "columns", table.Columns)
		return nil
	}

	last := -1
	for i, row := range table.Rows {
		if anchorCol < len(row) && !IsBlankLike(row[anchorCol]) {
			last = i
		}
	}
	if last < 0 {
		this.log.Warn("anchor column is empty", "field", this.anchor)
		return nil
	}

	records := make([]app.Record, 0, last+1)
	for i := 0; i <= last; i++ {
		row := table.Rows[i]
		rec := app.Record{
			RowNumber: i + 1,
			Values:    make(map[string]app.CellValue, len(taken)),
		}
		if i < len(table.SheetRows) {
			rec.SheetRow = table.SheetRows[i]
		}
		for c, name := range names {
			if name == "" {
				continue
			}
			if c < len(row) {
				rec.Values[name] = row[c]
			} else {
				rec.Values[name] = app.NullCell()
			}
		}
		records = append(records, rec)
	}

	if dropped := len(table.Rows) - len(records); dropped > 0 {
		this.log.Debug("trailing rows truncated", "dropped", dropped)
	}
	return records
}

// IsBlankLike is IsBlank that also treats the text "none" and "nan"
// (any case) as empty.
func IsBlankLike(v app.CellValue) bool {
	if v.IsBlank() {
		return true
	}
	if v.Kind != app.CellString {
		return false
	}
	s := strings.TrimSpace(v.Str)
	return strings.EqualFold(s, "none") || strings.EqualFold(s, "nan")
}
