package app

import (
	"context"
	"errors"

	"github.com/init-pkg/nova/errs"
)

var (
	ErrInvalidWorkbook    = errors.New("invalid workbook")
	ErrTableNotFound      = errors.New("siot table not found")
	ErrNoData             = errors.New("no data extracted")
	ErrMissingCredentials = errors.New("missing pipefy credentials")
)

type TableLocator interface {
	Locate(file []byte, preferredTable string) (*RawTable, error)
}

type HeaderResolver interface {
	Resolve(observed []string) map[string]string
	Unresolved(observed []string) []string
}

type HeaderSuggester interface {
	Suggest(ctx context.Context, unresolved []string, canonical []string) ([]HeaderSuggestion, error)
}

type LabelFetcher interface {
	FetchLabels(ctx context.Context, pipeID string) map[string]string
}

type CardCreator interface {
	CreateCard(ctx context.Context, pipeID, title string, fields []OutputField) (string, error)
}

type PipeClient interface {
	LabelFetcher
	CardCreator
}

type ImportOptions struct {
	// TableName overrides the configured structured table name when set.
	TableName string
	// Progress is called after every submitted row.
	Progress func(done, total int)
}

type ImportService interface {
	Preview(ctx context.Context, file []byte, opts ImportOptions) (*PreviewResult, errs.Error)
	Import(ctx context.Context, file []byte, opts ImportOptions) (*ImportResult, errs.Error)
}
