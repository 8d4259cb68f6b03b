package app

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

type CellKind int

const (
	CellNull CellKind = iota
	CellString
	CellNumber
	CellDate
	CellTime
	CellList
)

// CellValue is one spreadsheet cell after typing. Only the member matching
// Kind is meaningful.
type CellValue struct {
	Kind CellKind
	Str  string
	Num  float64
	Time time.Time
	List []string
}

func NullCell() CellValue { return CellValue{Kind: CellNull} }
func StringCell(s string) CellValue { return CellValue{Kind: CellString, Str: s} }
func NumberCell(n float64) CellValue { return CellValue{Kind: CellNumber, Num: n} }
func DateCell(t time.Time) CellValue { return CellValue{Kind: CellDate, Time: t} }
func TimeCell(t time.Time) CellValue { return CellValue{Kind: CellTime, Time: t} }
func ListCell(items []string) CellValue { return CellValue{Kind: CellList, List: items} }

// IsBlank reports whether the cell carries no data: null, whitespace-only
// text or an empty list.
func (v CellValue) IsBlank() bool {
	switch v.Kind {
	case CellNull:
		return true
	case CellString:
		return strings.TrimSpace(v.Str) == ""
	case CellList:
		for _, item := range v.List {
			if strings.TrimSpace(item) != "" {
				return false
			}
		}
		return true
	}
	return false
}

// String renders the cell as plain text. Null renders as "".
func (v CellValue) String() string {
	switch v.Kind {
	case CellString:
		return v.Str
	case CellNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case CellDate:
		if v.Time.Hour() == 0 && v.Time.Minute() == 0 && v.Time.Second() == 0 {
			return v.Time.Format("2006-01-02")
		}
		return v.Time.Format("2006-01-02 15:04:05")
	case CellTime:
		return v.Time.Format("15:04:05")
	case CellList:
		return strings.Join(v.List, ";")
	}
	return ""
}

func (v CellValue) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case CellNull:
		return []byte("null"), nil
	case CellNumber:
		return json.Marshal(v.Num)
	case CellList:
		return json.Marshal(v.List)
	}
	return json.Marshal(v.String())
}

type TableSource string

const (
	TableSourceNamed TableSource = "table"
	TableSourceScan  TableSource = "scan"
)

// RawTable is the located rectangular region. Rows[i] lines up with Columns;
// SheetRows[i] is the 1-based workbook row of Rows[i].
type RawTable struct {
	Sheet          string
	Source         TableSource
	HeaderRowIndex int
	Columns        []string
	Rows           [][]CellValue
	SheetRows      []int
}

// Record is one normalized row keyed by canonical field name.
type Record struct {
	RowNumber int                  `json:"row"`
	SheetRow  int                  `json:"sheet_row"`
	Values    map[string]CellValue `json:"values"`
}

type OutputField struct {
	FieldID    string `json:"field_id"`
	FieldValue any    `json:"field_value"` // string or []string
}

type ValidationResult struct {
	OK      bool
	Missing []string
}

type InvalidRow struct {
	RowNumber int      `json:"row"`
	SheetRow  int      `json:"sheet_row"`
	Missing   []string `json:"missing"`
}

type SubmissionStatus string

const (
	StatusCreated SubmissionStatus = "created"
	StatusSkipped SubmissionStatus = "skipped"
	StatusFailed  SubmissionStatus = "failed"
)

type SubmissionOutcome struct {
	RowNumber int              `json:"row"`
	Title     string           `json:"title"`
	Status    SubmissionStatus `json:"status"`
	CardID    string           `json:"card_id,omitempty"`
	Detail    string           `json:"detail,omitempty"`
}

type HeaderSuggestion struct {
	Header     string  `json:"header"`
	Field      string  `json:"field"`
	Confidence float64 `json:"confidence"`
}

type PreviewResult struct {
	Sheet       string             `json:"sheet"`
	Source      TableSource        `json:"source"`
	HeaderRow   int                `json:"header_row"`
	Columns     []string           `json:"columns"`
	Unresolved  []string           `json:"unresolved_headers,omitempty"`
	Suggestions []HeaderSuggestion `json:"suggestions,omitempty"`
	TotalRows   int                `json:"total_rows"`
	ValidRows   int                `json:"valid_rows"`
	Invalid     []InvalidRow       `json:"invalid_rows"`
	Records     []Record           `json:"records"`

	Valid []Record `json:"-"`
}

type ImportSummary struct {
	Created int `json:"created"`
	Failed  int `json:"failed"`
	Skipped int `json:"skipped"`
	Invalid int `json:"invalid"`
}

type ImportResult struct {
	Preview       *PreviewResult      `json:"preview"`
	Outcomes      []SubmissionOutcome `json:"outcomes"`
	MissingLabels []string            `json:"missing_labels,omitempty"`
	Summary       ImportSummary       `json:"summary"`
}

// Tally counts outcomes by status.
func Tally(outcomes []SubmissionOutcome, invalid int) ImportSummary {
	s := ImportSummary{Invalid: invalid}
	for _, o := range outcomes {
		switch o.Status {
		case StatusCreated:
			s.Created++
		case StatusFailed:
			s.Failed++
		case StatusSkipped:
			s.Skipped++
		}
	}
	return s
}
