package siot_import_service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/init-pkg/nova/errs"
	"github.com/init-pkg/siot-loader/domain/app"
	"github.com/init-pkg/siot-loader/domain/schema"
	mapping_service "github.com/init-pkg/siot-loader/internal/app/mapping/general"
	submission_service "github.com/init-pkg/siot-loader/internal/app/submission"
	"github.com/init-pkg/siot-loader/internal/app/validation"
	"github.com/init-pkg/siot-loader/internal/config"
)

const previewRecords = 50

type Service struct {
	cfg       *config.Config
	locator   app.TableLocator
	resolver  app.HeaderResolver
	suggester app.HeaderSuggester
	extractor *mapping_service.Service
	pipe      app.LabelFetcher
	driver    *submission_service.Driver
	registry  schema.Registry
	log       *slog.Logger
}

var _ app.ImportService = &Service{}

func New(
	cfg *config.Config,
	locator app.TableLocator,
	resolver app.HeaderResolver,
	suggester app.HeaderSuggester,
	extractor *mapping_service.Service,
	pipe app.LabelFetcher,
	driver *submission_service.Driver,
	registry schema.Registry,
	log *slog.Logger,
) *Service {
	return &Service{
		cfg:       cfg,
		locator:   locator,
		resolver:  resolver,
		suggester: suggester,
		extractor: extractor,
		pipe:      pipe,
		driver:    driver,
		registry:  registry,
		log:       log,
	}
}

// Preview locates, resolves, extracts and validates without calling Pipefy.
func (this *Service) Preview(ctx context.Context, file []byte, opts app.ImportOptions) (*app.PreviewResult, errs.Error) {
	res, e := this.preview(ctx, file, opts)
	if e != nil {
		return nil, errs.WrapAppError(e, &errs.ErrorOpts{})
	}
	return res, nil
}

// Import previews, fetches labels once and submits every valid row. On
// cancellation the partial result comes back together with the error.
func (this *Service) Import(ctx context.Context, file []byte, opts app.ImportOptions) (*app.ImportResult, errs.Error) {
	if e := this.cfg.Validate(); e != nil {
		return nil, errs.WrapAppError(e, &errs.ErrorOpts{})
	}

	preview, e := this.preview(ctx, file, opts)
	if e != nil {
		return nil, errs.WrapAppError(e, &errs.ErrorOpts{})
	}

	result := &app.ImportResult{Preview: preview}
	if len(preview.Valid) == 0 {
		this.log.Warn("no valid rows to submit", "invalid", len(preview.Invalid))
		result.Outcomes = []app.SubmissionOutcome{}
		result.Summary = app.Tally(nil, len(preview.Invalid))
		return result, nil
	}

	pipeID := this.cfg.Clients.Pipefy.PipeID
	labels := this.pipe.FetchLabels(ctx, pipeID)

	outcomes, missing, e := this.driver.Submit(ctx, preview.Valid, labels, opts.Progress)
	result.Outcomes = outcomes
	result.MissingLabels = missing
	result.Summary = app.Tally(outcomes, len(preview.Invalid))

	if len(missing) > 0 {
		this.log.Warn("labels not found in pipe were omitted", "pipe", pipeID, "labels", strings.Join(missing, ", "))
	}
	this.log.Info("import finished",
		"created", result.Summary.Created,
		"failed", result.Summary.Failed,
		"skipped", result.Summary.Skipped,
		"invalid", result.Summary.Invalid)

	if e != nil {
		return result, errs.WrapAppError(e, &errs.ErrorOpts{})
	}
	return result, nil
}

func (this *Service) preview(ctx context.Context, file []byte, opts app.ImportOptions) (*app.PreviewResult, error) {
	tableName := strings.TrimSpace(opts.TableName)
	if tableName == "" {
		tableName = this.cfg.Import.TableName
	}

	table, e := this.locator.Locate(file, tableName)
	if e != nil {
		if errors.Is(e, app.ErrTableNotFound) {
			return nil, fmt.Errorf("%w: %v", app.ErrNoData, e)
		}
		return nil, e
	}

	rename := this.resolver.Resolve(table.Columns)
	unresolved := this.resolver.Unresolved(table.Columns)
	if len(unresolved) > 0 {
		this.log.Info("unresolved headers ignored", "headers", unresolved)
	}

	records := this.extractor.Extract(table, rename)
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no %s values under the located header", app.ErrNoData, schema.AnchorField)
	}

	valid, invalid := validation.Partition(records, schema.RequiredFields)

	res := &app.PreviewResult{
		Sheet:       table.Sheet,
		Source:      table.Source,
		HeaderRow:   table.HeaderRowIndex + 1,
		Columns:     table.Columns,
		Unresolved:  unresolved,
		Suggestions: this.suggest(ctx, unresolved),
		TotalRows:   len(records),
		ValidRows:   len(valid),
		Invalid:     invalid,
		Records:     records[:min(len(records), previewRecords)],
		Valid:       valid,
	}
	if res.Invalid == nil {
		res.Invalid = []app.InvalidRow{}
	}

	this.log.Info("preview ready",
		"sheet", res.Sheet,
		"source", res.Source,
		"rows", res.TotalRows,
		"valid", res.ValidRows,
		"invalid", len(res.Invalid))
	return res, nil
}

func (this *Service) suggest(ctx context.Context, unresolved []string) []app.HeaderSuggestion {
	if len(unresolved) == 0 {
		return nil
	}
	suggestions, e := this.suggester.Suggest(ctx, unresolved, this.registry.Names())
	if e != nil {
		this.log.Warn("header suggestions unavailable", "error", e)
		return nil
	}
	for _, s := range suggestions {
		this.log.Info("header suggestion", "header", s.Header, "field", s.Field, "confidence", s.Confidence)
	}
	return suggestions
}
