package bootstrap

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/init-pkg/siot-loader/domain/app"
	"go.uber.org/fx"
)

type UploadParams struct {
	File   string
	DryRun bool
	Out    string
}

type uploadReport struct {
	File    string             `json:"file"`
	DryRun  bool               `json:"dry_run"`
	Preview *app.PreviewResult `json:"preview,omitempty"`
	Import  *app.ImportResult  `json:"import,omitempty"`
	Error   string             `json:"error,omitempty"`
}

// UploadRunner runs one batch when the app starts and shuts it down with a
// non-zero exit code if anything failed.
func UploadRunner(lc fx.Lifecycle, shutdowner fx.Shutdowner, service app.ImportService, params UploadParams, log *slog.Logger) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				defer close(done)
				r := uploadRunner{service: service, params: params, log: log, w: os.Stdout}
				code := r.run(ctx)
				_ = shutdowner.Shutdown(fx.ExitCode(code))
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
			case <-stopCtx.Done():
			}
			return nil
		},
	})
}

type uploadRunner struct {
	service app.ImportService
	params  UploadParams
	log     *slog.Logger
	w       io.Writer
}

func (this *uploadRunner) run(ctx context.Context) int {
	report := uploadReport{File: this.params.File, DryRun: this.params.DryRun}
	code := this.execute(ctx, &report)

	if this.params.Out != "" {
		if err := writeReport(this.params.Out, report); err != nil {
			this.log.Error("failed to write report", "path", this.params.Out, "error", err)
			return 1
		}
		this.log.Info("report written", "path", this.params.Out)
	}
	return code
}

func (this *uploadRunner) execute(ctx context.Context, report *uploadReport) int {
	file, err := os.ReadFile(this.params.File)
	if err != nil {
		report.Error = err.Error()
		fmt.Fprintf(this.w, "cannot read %s: %v\n", this.params.File, err)
		return 1
	}

	if this.params.DryRun {
		preview, e := this.service.Preview(ctx, file, app.ImportOptions{})
		if e != nil {
			report.Error = e.Error()
			fmt.Fprintf(this.w, "preview failed: %s\n", e.Error())
			return 1
		}
		report.Preview = preview
		this.printPreview(preview)
		if len(preview.Invalid) > 0 {
			return 2
		}
		return 0
	}

	result, e := this.service.Import(ctx, file, app.ImportOptions{
		Progress: func(done, total int) {
			this.log.Debug("progress", "done", done, "total", total)
		},
	})
	if result != nil {
		report.Import = result
		this.printPreview(result.Preview)
		this.printImport(result)
	}
	if e != nil {
		report.Error = e.Error()
		fmt.Fprintf(this.w, "import failed: %s\n", e.Error())
		return 1
	}
	if result.Summary.Failed > 0 || result.Summary.Invalid > 0 {
		return 2
	}
	return 0
}

func (this *uploadRunner) printPreview(p *app.PreviewResult) {
	if p == nil {
		return
	}
	fmt.Fprintf(this.w, "sheet %q (%s, header row %d): %d rows, %d valid, %d with missing fields\n",
		p.Sheet, p.Source, p.HeaderRow, p.TotalRows, p.ValidRows, len(p.Invalid))
	for _, inv := range p.Invalid {
		fmt.Fprintf(this.w, "  row %d (sheet row %d) missing: %v\n", inv.RowNumber, inv.SheetRow, inv.Missing)
	}
	for _, h := range p.Unresolved {
		fmt.Fprintf(this.w, "  ignored column %q\n", h)
	}
	for _, s := range p.Suggestions {
		fmt.Fprintf(this.w, "  column %q looks like %s (%.2f)\n", s.Header, s.Field, s.Confidence)
	}
}

func (this *uploadRunner) printImport(r *app.ImportResult) {
	for _, o := range r.Outcomes {
		if o.Status == app.StatusCreated {
			continue
		}
		fmt.Fprintf(this.w, "  row %d %q %s: %s\n", o.RowNumber, o.Title, o.Status, o.Detail)
	}
	if len(r.MissingLabels) > 0 {
		fmt.Fprintf(this.w, "labels not found in the pipe were omitted: %v\n", r.MissingLabels)
	}
	fmt.Fprintf(this.w, "done: %d created, %d failed, %d skipped, %d invalid\n",
		r.Summary.Created, r.Summary.Failed, r.Summary.Skipped, r.Summary.Invalid)
}

func writeReport(path string, report uploadReport) error {
	js, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return err
		}
	}
	return os.WriteFile(path, js, 0644)
}
