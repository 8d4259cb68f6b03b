package submission_service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/init-pkg/siot-loader/domain/app"
	"github.com/init-pkg/siot-loader/domain/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type createCall struct {
	pipeID string
	title  string
	fields []app.OutputField
	at     time.Time
}

type fakeCreator struct {
	mu    sync.Mutex
	calls []createCall
	fail  map[string]error
	after func(n int)
}

func (f *fakeCreator) CreateCard(_ context.Context, pipeID, title string, fields []app.OutputField) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, createCall{pipeID: pipeID, title: title, fields: fields, at: time.Now()})
	n := len(f.calls)
	f.mu.Unlock()

	if f.after != nil {
		f.after(n)
	}
	if err, ok := f.fail[title]; ok {
		return "", err
	}
	return "card-" + title, nil
}

var testRegistry = schema.Registry{
	{Name: schema.FieldEmpresa, OutputKey: "empresa", Kind: schema.KindText},
	{Name: schema.FieldCCU, OutputKey: "ccu", Kind: schema.KindText},
	{Name: schema.FieldEtiqueta, OutputKey: "seleccionar_etiqueta", Kind: schema.KindLabelSelect},
}

func newTestDriver(creator app.CardCreator, delay time.Duration) *Driver {
	return NewDriver(creator, testRegistry, "301", delay, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func record(row int, values map[string]string) app.Record {
	rec := app.Record{RowNumber: row, Values: map[string]app.CellValue{}}
	for k, v := range values {
		rec.Values[k] = app.StringCell(v)
	}
	return rec
}

func TestSubmitOutcomesInOrder(t *testing.T) {
	creator := &fakeCreator{fail: map[string]error{"Beta": errors.New("HTTP 500: boom")}}
	d := newTestDriver(creator, 0)

	records := []app.Record{
		record(1, map[string]string{schema.FieldEmpresa: " Acme ", schema.FieldEtiqueta: "Urgente;Nope"}),
		record(2, map[string]string{schema.FieldEmpresa: "Beta"}),
		record(3, map[string]string{schema.FieldEmpresa: "", schema.FieldCCU: "CCU-3"}),
		record(4, map[string]string{schema.FieldEmpresa: "nan", schema.FieldCCU: " "}),
	}

	var progress [][2]int
	outcomes, missing, err := d.Submit(context.Background(), records, map[string]string{"Urgente": "L1"}, func(done, total int) {
		progress = append(progress, [2]int{done, total})
	})
	require.NoError(t, err)

	assert.Equal(t, []app.SubmissionOutcome{
		{RowNumber: 1, Title: "Acme", Status: app.StatusCreated, CardID: "card-Acme"},
		{RowNumber: 2, Title: "Beta", Status: app.StatusFailed, Detail: "HTTP 500: boom"},
		{RowNumber: 3, Title: "Row 3", Status: app.StatusCreated, CardID: "card-Row 3"},
		{RowNumber: 4, Title: "Row 4", Status: app.StatusSkipped, Detail: "no reportable data"},
	}, outcomes)
	assert.Equal(t, []string{"Nope"}, missing)
	assert.Equal(t, [][2]int{{1, 4}, {2, 4}, {3, 4}, {4, 4}}, progress)

	require.Len(t, creator.calls, 3)
	assert.Equal(t, "301", creator.calls[0].pipeID)
	assert.Equal(t, []app.OutputField{
		{FieldID: "empresa", FieldValue: "Acme"},
		{FieldID: "seleccionar_etiqueta", FieldValue: []string{"L1"}},
	}, creator.calls[0].fields)
}

func TestSubmitFailureDoesNotContaminateNeighbours(t *testing.T) {
	creator := &fakeCreator{fail: map[string]error{"B": errors.New("pipefy: Invalid field")}}
	d := newTestDriver(creator, 0)

	outcomes, _, err := d.Submit(context.Background(), []app.Record{
		record(1, map[string]string{schema.FieldEmpresa: "A"}),
		record(2, map[string]string{schema.FieldEmpresa: "B"}),
		record(3, map[string]string{schema.FieldEmpresa: "C"}),
	}, nil, nil)
	require.NoError(t, err)

	require.Len(t, outcomes, 3)
	assert.Equal(t, app.StatusCreated, outcomes[0].Status)
	assert.Equal(t, app.StatusFailed, outcomes[1].Status)
	assert.Equal(t, app.StatusCreated, outcomes[2].Status)
	assert.Equal(t, "card-C", outcomes[2].CardID)
}

func TestSubmitPacesCalls(t *testing.T) {
	creator := &fakeCreator{}
	d := newTestDriver(creator, 30*time.Millisecond)

	_, _, err := d.Submit(context.Background(), []app.Record{
		record(1, map[string]string{schema.FieldEmpresa: "A"}),
		record(2, map[string]string{schema.FieldEmpresa: "B"}),
		record(3, map[string]string{schema.FieldEmpresa: "C"}),
	}, nil, nil)
	require.NoError(t, err)

	require.Len(t, creator.calls, 3)
	for i := 1; i < len(creator.calls); i++ {
		gap := creator.calls[i].at.Sub(creator.calls[i-1].at)
		assert.GreaterOrEqual(t, gap, 20*time.Millisecond)
	}
}

func TestSubmitStopsBetweenRowsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	creator := &fakeCreator{after: func(n int) {
		if n == 2 {
			cancel()
		}
	}}
	d := newTestDriver(creator, 0)

	outcomes, _, err := d.Submit(ctx, []app.Record{
		record(1, map[string]string{schema.FieldEmpresa: "A"}),
		record(2, map[string]string{schema.FieldEmpresa: "B"}),
		record(3, map[string]string{schema.FieldEmpresa: "C"}),
	}, nil, nil)

	assert.ErrorIs(t, err, context.Canceled)
	require.Len(t, outcomes, 2)
	assert.Len(t, creator.calls, 2)
}

func TestSubmitEmpty(t *testing.T) {
	outcomes, missing, err := newTestDriver(&fakeCreator{}, 0).Submit(context.Background(), nil, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, outcomes)
	assert.Empty(t, missing)
}
