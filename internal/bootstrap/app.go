package bootstrap

import (
	excel_parser_module "github.com/init-pkg/siot-loader/internal/app/excel-parser"
	siot_import_module "github.com/init-pkg/siot-loader/internal/app/siot-import"
	"go.uber.org/fx"
)

func appOptions() fx.Option {
	return fx.Options(
		excel_parser_module.Register(),
		siot_import_module.Register(),
	)
}
