package excel_parser_module

import (
	"log/slog"

	"github.com/init-pkg/siot-loader/domain/app"
	excel_parser_service "github.com/init-pkg/siot-loader/internal/app/excel-parser/service"
	header_mapping_service "github.com/init-pkg/siot-loader/internal/app/mapping/header"
	"github.com/init-pkg/siot-loader/internal/config"
	"go.uber.org/fx"
)

func Register() fx.Option {
	return fx.Provide(
		fx.Annotate(newLocator, fx.As(new(app.TableLocator))),
	)
}

func newLocator(headers *header_mapping_service.HeaderMappingService, cfg *config.Config, log *slog.Logger) *excel_parser_service.ExcelParserService {
	return excel_parser_service.New(headers, cfg.Import.ScanRows, log)
}
