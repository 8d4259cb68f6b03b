package excel_parser_service

import (
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/init-pkg/siot-loader/domain/app"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type anchorStub struct{}

func (anchorStub) IsAnchor(h string) bool {
	h = strings.ToUpper(strings.TrimSpace(h))
	return h == "EMPRESA" || h == "COMPANY"
}

func newTestService() *ExcelParserService {
	return New(anchorStub{}, DefaultScanRows, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func workbook(t *testing.T, build func(f *excelize.File)) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	build(f)
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func setRow(t *testing.T, f *excelize.File, sheet, cell string, values ...any) {
	t.Helper()
	require.NoError(t, f.SetSheetRow(sheet, cell, &values))
}

func TestLocateNamedTable(t *testing.T) {
	data := workbook(t, func(f *excelize.File) {
		setRow(t, f, "Sheet1", "A1", "Reporte mensual")
		setRow(t, f, "Sheet1", "B3", "EMPRESA", "CCU", "FECHA DE INICIO")
		setRow(t, f, "Sheet1", "B4", " Acme ", "CCU-1", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC))
		setRow(t, f, "Sheet1", "B5", "Beta", 42, "")
		require.NoError(t, f.AddTable("Sheet1", &excelize.Table{Range: "B3:D5", Name: "SIOT"}))
	})

	table, err := newTestService().Locate(data, "siot")
	require.NoError(t, err)

	assert.Equal(t, "Sheet1", table.Sheet)
	assert.Equal(t, app.TableSourceNamed, table.Source)
	assert.Equal(t, 2, table.HeaderRowIndex)
	assert.Equal(t, []string{"EMPRESA", "CCU", "FECHA DE INICIO"}, table.Columns)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []int{4, 5}, table.SheetRows)

	assert.Equal(t, app.StringCell("Acme"), table.Rows[0][0])
	assert.Equal(t, app.CellDate, table.Rows[0][2].Kind)
	assert.Equal(t, "2024-03-05", table.Rows[0][2].String())

	assert.Equal(t, app.CellNumber, table.Rows[1][1].Kind)
	assert.Equal(t, "42", table.Rows[1][1].String())
	assert.True(t, table.Rows[1][2].IsBlank())
}

func TestLocateNamedTableOnLaterSheet(t *testing.T) {
	data := workbook(t, func(f *excelize.File) {
		setRow(t, f, "Sheet1", "A1", "notes")
		_, err := f.NewSheet("Datos")
		require.NoError(t, err)
		setRow(t, f, "Datos", "A1", "EMPRESA", "CCU")
		setRow(t, f, "Datos", "A2", "Acme", "X")
		require.NoError(t, f.AddTable("Datos", &excelize.Table{Range: "A1:B2", Name: "SIOT"}))
	})

	table, err := newTestService().Locate(data, "SIOT")
	require.NoError(t, err)
	assert.Equal(t, "Datos", table.Sheet)
	assert.Equal(t, app.TableSourceNamed, table.Source)
	assert.Len(t, table.Rows, 1)
}

func TestLocateFallsBackToHeaderScan(t *testing.T) {
	data := workbook(t, func(f *excelize.File) {
		setRow(t, f, "Sheet1", "A1", "ORDEN DE TRABAJO")
		setRow(t, f, "Sheet1", "A2", "")
		setRow(t, f, "Sheet1", "A3", "Empresa", "", "CCU", "Unnamed: 3")
		setRow(t, f, "Sheet1", "A4", "Acme", "ignored", "CCU-1", "x")
		setRow(t, f, "Sheet1", "A6", "Beta", "", "CCU-2")
	})

	table, err := newTestService().Locate(data, "SIOT")
	require.NoError(t, err)

	assert.Equal(t, app.TableSourceScan, table.Source)
	assert.Equal(t, 2, table.HeaderRowIndex)
	assert.Equal(t, []string{"Empresa", "CCU"}, table.Columns)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []int{4, 6}, table.SheetRows)
	assert.Equal(t, "Beta", table.Rows[1][0].String())
	assert.Equal(t, "CCU-2", table.Rows[1][1].String())
}

func TestLocateScanRespectsRowLimit(t *testing.T) {
	data := workbook(t, func(f *excelize.File) {
		setRow(t, f, "Sheet1", "A10", "EMPRESA")
		setRow(t, f, "Sheet1", "A11", "Acme")
	})

	svc := New(anchorStub{}, 5, slog.New(slog.NewTextHandler(io.Discard, nil)))
	_, err := svc.Locate(data, "")
	require.ErrorIs(t, err, app.ErrTableNotFound)

	table, err := newTestService().Locate(data, "")
	require.NoError(t, err)
	assert.Equal(t, 9, table.HeaderRowIndex)
}

func TestLocateNoTable(t *testing.T) {
	data := workbook(t, func(f *excelize.File) {
		setRow(t, f, "Sheet1", "A1", "foo", "bar")
		setRow(t, f, "Sheet1", "A2", 1, 2)
	})

	_, err := newTestService().Locate(data, "SIOT")
	assert.ErrorIs(t, err, app.ErrTableNotFound)
}

func TestLocateRejectsGarbage(t *testing.T) {
	_, err := newTestService().Locate([]byte("not a workbook"), "SIOT")
	assert.ErrorIs(t, err, app.ErrInvalidWorkbook)
	assert.NotErrorIs(t, err, app.ErrTableNotFound)
}

func TestClassifyCustomFormat(t *testing.T) {
	tests := []struct {
		code string
		want numFormat
	}{
		{"dd/mm/yyyy", numFormatDate},
		{"yyyy-mm-dd hh:mm", numFormatDate},
		{"hh:mm:ss", numFormatTime},
		{"[h]:mm", numFormatTime},
		{`0.00" días"`, numFormatGeneral},
		{"[Red]0.00", numFormatGeneral},
		{"#,##0", numFormatGeneral},
		{"General", numFormatGeneral},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, classifyCustomFormat(tt.code))
		})
	}
}

func TestParseRange(t *testing.T) {
	c1, r1, c2, r2, err := parseRange("$B$3:$D$10")
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3, 4, 10}, []int{c1, r1, c2, r2})

	_, _, _, _, err = parseRange("nope")
	assert.Error(t, err)
}
