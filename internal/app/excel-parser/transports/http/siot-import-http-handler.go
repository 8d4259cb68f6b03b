package excel_parser_http_handler

import (
	"errors"
	"io"
	"strings"

	"github.com/init-pkg/siot-loader/domain/app"
	"github.com/init-pkg/siot-loader/domain/dtos"

	"github.com/gofiber/fiber/v3"
)

type SiotImportHttpHandler struct {
	service app.ImportService
}

func New(service app.ImportService) *SiotImportHttpHandler {
	return &SiotImportHttpHandler{service}
}

func (this *SiotImportHttpHandler) Register(mainApp *fiber.App) {
	var app = mainApp.Group("/siot-imports")

	app.Post("/preview", this.preview)
	app.Post("/", this.upload)
}

func (this *SiotImportHttpHandler) preview(fctx fiber.Ctx) error {
	file, req, err := readUpload(fctx)
	if err != nil {
		return fctx.Status(fiber.StatusBadRequest).JSON(dtos.ErrorResponse{Error: err.Error()})
	}

	res, e := this.service.Preview(fctx.Context(), file, app.ImportOptions{TableName: req.TableName})
	if e != nil {
		return fctx.Status(statusFor(e)).JSON(dtos.ErrorResponse{Error: e.Error()})
	}
	return fctx.JSON(res)
}

func (this *SiotImportHttpHandler) upload(fctx fiber.Ctx) error {
	file, req, err := readUpload(fctx)
	if err != nil {
		return fctx.Status(fiber.StatusBadRequest).JSON(dtos.ErrorResponse{Error: err.Error()})
	}

	res, e := this.service.Import(fctx.Context(), file, app.ImportOptions{TableName: req.TableName})
	if e != nil {
		return fctx.Status(statusFor(e)).JSON(dtos.ErrorResponse{Error: e.Error()})
	}
	return fctx.JSON(res)
}

func readUpload(fctx fiber.Ctx) ([]byte, dtos.SiotImportUploadRequest, error) {
	req := dtos.SiotImportUploadRequest{TableName: fctx.FormValue("table_name")}

	fh, err := fctx.FormFile("file")
	if err != nil {
		return nil, req, errors.New("multipart field \"file\" is required")
	}
	f, err := fh.Open()
	if err != nil {
		return nil, req, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, req, err
	}
	if len(data) == 0 {
		return nil, req, errors.New("uploaded file is empty")
	}
	return data, req, nil
}

func statusFor(e error) int {
	switch {
	case is(e, app.ErrInvalidWorkbook):
		return fiber.StatusBadRequest
	case is(e, app.ErrNoData):
		return fiber.StatusUnprocessableEntity
	}
	return fiber.StatusInternalServerError
}

// is prefers the error chain. When errs.Error drops it, the message is
// checked for the sentinel as its leading "%w: ..." segment only.
func is(e, target error) bool {
	if errors.Is(e, target) {
		return true
	}
	msg, want := e.Error(), target.Error()
	return msg == want || strings.HasPrefix(msg, want+":")
}
