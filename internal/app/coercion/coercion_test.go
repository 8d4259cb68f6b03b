package coercion

import (
	"testing"
	"time"

	"github.com/init-pkg/siot-loader/domain/app"
	"github.com/init-pkg/siot-loader/domain/schema"
	"github.com/stretchr/testify/assert"
)

func TestText(t *testing.T) {
	tests := []struct {
		name string
		in   app.CellValue
		want string
		ok   bool
	}{
		{"trimmed", app.StringCell("  Acme "), "Acme", true},
		{"integer number", app.NumberCell(12), "12", true},
		{"decimal number", app.NumberCell(3.5), "3.5", true},
		{"time", app.TimeCell(time.Date(1899, 12, 30, 8, 30, 0, 0, time.UTC)), "08:30:00", true},
		{"nan", app.StringCell("NaN"), "", false},
		{"blank", app.StringCell("   "), "", false},
		{"null", app.NullCell(), "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Text(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		name string
		in   app.CellValue
		want string
		ok   bool
	}{
		{"date cell", app.DateCell(time.Date(2024, 3, 5, 14, 0, 0, 0, time.UTC)), "2024-03-05", true},
		{"iso text", app.StringCell("2024-03-05"), "2024-03-05", true},
		{"day first slash", app.StringCell("05/03/2024"), "2024-03-05", true},
		{"day first dash", app.StringCell("05-03-2024"), "2024-03-05", true},
		{"month first when day first fails", app.StringCell("12/31/2024"), "2024-12-31", true},
		{"single digit day and month", app.StringCell("5/3/2024"), "2024-03-05", true},
		{"single digit month", app.StringCell("15/3/2024"), "2024-03-15", true},
		{"iso without padding", app.StringCell("2024-3-5"), "2024-03-05", true},
		{"single digit dashes", app.StringCell("5-3-2024"), "2024-03-05", true},
		{"time cell keeps clock", app.TimeCell(time.Date(1899, 12, 30, 8, 15, 0, 0, time.UTC)), "08:15:00", true},
		{"unparseable passes through", app.StringCell(" próximo lunes "), "próximo lunes", true},
		{"nan", app.StringCell("nan"), "", false},
		{"null", app.NullCell(), "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FormatDate(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseMulti(t *testing.T) {
	assert.Equal(t, []string{"A", "B", "C"}, ParseMulti(app.StringCell("A; B,C")))
	assert.Equal(t, []string{"A", "B"}, ParseMulti(app.StringCell("A;;B;")))
	assert.Equal(t, []string{"x", "y"}, ParseMulti(app.ListCell([]string{" x ", "", "nan", "y"})))
	assert.Equal(t, []string{"4"}, ParseMulti(app.NumberCell(4)))
	assert.Nil(t, ParseMulti(app.StringCell(" ; , ")))
	assert.Nil(t, ParseMulti(app.StringCell("nan")))
	assert.Nil(t, ParseMulti(app.NullCell()))
}

func testRegistry() schema.Registry {
	return schema.Registry{
		{Name: "EMPRESA", OutputKey: "empresa", Kind: schema.KindText},
		{Name: "FECHA", OutputKey: "fecha", Kind: schema.KindDate},
		{Name: "VEHICULO", OutputKey: "vehiculo", Kind: schema.KindMultiValue},
		{Name: "ETIQUETA", OutputKey: "etiqueta", Kind: schema.KindLabelSelect},
		{Name: "NOTA", OutputKey: "nota", Kind: schema.KindText},
	}
}

func TestCoerceInRegistryOrder(t *testing.T) {
	c := NewCoercer(testRegistry(), map[string]string{"Urgente": "L1", "Zona Norte": "L2"})

	rec := app.Record{Values: map[string]app.CellValue{
		"ETIQUETA": app.StringCell("Urgente; Desconocida, Zona Norte"),
		"VEHICULO": app.StringCell("Camioneta, Grúa"),
		"FECHA":    app.StringCell("05/03/2024"),
		"EMPRESA":  app.StringCell(" Acme "),
		"NOTA":     app.StringCell("nan"),
		"OTRO":     app.StringCell("ignored"),
	}}

	assert.Equal(t, []app.OutputField{
		{FieldID: "empresa", FieldValue: "Acme"},
		{FieldID: "fecha", FieldValue: "2024-03-05"},
		{FieldID: "vehiculo", FieldValue: []string{"Camioneta", "Grúa"}},
		{FieldID: "etiqueta", FieldValue: []string{"L1", "L2"}},
	}, c.Coerce(rec))
	assert.Equal(t, []string{"Desconocida"}, c.MissingLabels())
}

func TestCoerceOmitsUnresolvedLabelField(t *testing.T) {
	c := NewCoercer(testRegistry(), nil)

	fields := c.Coerce(app.Record{Values: map[string]app.CellValue{
		"ETIQUETA": app.StringCell("b;a"),
	}})
	assert.Empty(t, fields)

	c.Coerce(app.Record{Values: map[string]app.CellValue{
		"ETIQUETA": app.StringCell("a"),
	}})
	assert.Equal(t, []string{"a", "b"}, c.MissingLabels())
}

func TestCoerceEmptyRecord(t *testing.T) {
	c := NewCoercer(testRegistry(), nil)
	assert.Empty(t, c.Coerce(app.Record{Values: map[string]app.CellValue{
		"EMPRESA":  app.StringCell(" "),
		"VEHICULO": app.StringCell(";"),
	}}))
	assert.Empty(t, c.MissingLabels())
}
