package submission_service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/init-pkg/siot-loader/domain/app"
	"github.com/init-pkg/siot-loader/domain/schema"
	"github.com/init-pkg/siot-loader/internal/app/coercion"
	"github.com/init-pkg/siot-loader/internal/config"
	"golang.org/x/time/rate"
)

// Driver submits valid records one card at a time, in order.
type Driver struct {
	creator  app.CardCreator
	registry schema.Registry
	anchor   string
	pipeID   string
	delay    time.Duration
	log      *slog.Logger
}

func New(creator app.CardCreator, cfg *config.Config, log *slog.Logger) *Driver {
	return NewDriver(creator, schema.SIOT(), cfg.Clients.Pipefy.PipeID, cfg.Import.SubmitDelay, log)
}

func NewDriver(creator app.CardCreator, registry schema.Registry, pipeID string, delay time.Duration, log *slog.Logger) *Driver {
	return &Driver{
		creator:  creator,
		registry: registry,
		anchor:   schema.AnchorField,
		pipeID:   pipeID,
		delay:    delay,
		log:      log,
	}
}

// Submit coerces and creates a card per record. A row failure never stops
// the batch. Cancellation is checked between rows; the outcomes gathered so
// far come back with ctx.Err(). progress, if set, runs after every row.
func (d *Driver) Submit(
	ctx context.Context,
	valid []app.Record,
	labels map[string]string,
	progress func(done, total int),
) ([]app.SubmissionOutcome, []string, error) {
	coercer := coercion.NewCoercer(d.registry, labels)
	limiter := d.newLimiter()
	outcomes := make([]app.SubmissionOutcome, 0, len(valid))

	for i, rec := range valid {
		if err := ctx.Err(); err != nil {
			d.log.Warn("submission cancelled", "done", i, "total", len(valid))
			return outcomes, coercer.MissingLabels(), err
		}

		outcome := app.SubmissionOutcome{RowNumber: rec.RowNumber, Title: d.title(rec)}

		fields := coercer.Coerce(rec)
		if len(fields) == 0 {
			outcome.Status = app.StatusSkipped
			outcome.Detail = "no reportable data"
		} else {
			if err := limiter.Wait(ctx); err != nil {
				if ctx.Err() != nil {
					err = ctx.Err()
				}
				d.log.Warn("submission cancelled", "done", i, "total", len(valid))
				return outcomes, coercer.MissingLabels(), err
			}

			id, err := d.creator.CreateCard(ctx, d.pipeID, outcome.Title, fields)
			if err != nil {
				outcome.Status = app.StatusFailed
				outcome.Detail = err.Error()
			} else {
				outcome.Status = app.StatusCreated
				outcome.CardID = id
			}
		}

		d.log.Info("row submitted",
			"row", outcome.RowNumber,
			"status", outcome.Status,
			"card", outcome.CardID,
			"detail", outcome.Detail)
		outcomes = append(outcomes, outcome)

		if progress != nil {
			progress(i+1, len(valid))
		}
	}

	return outcomes, coercer.MissingLabels(), nil
}

func (d *Driver) title(rec app.Record) string {
	if s, ok := coercion.Text(rec.Values[d.anchor]); ok {
		return s
	}
	return fmt.Sprintf("Row %d", rec.RowNumber)
}

// newLimiter lets the first call through and spaces the rest by delay.
func (d *Driver) newLimiter() *rate.Limiter {
	if d.delay <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(d.delay), 1)
}
