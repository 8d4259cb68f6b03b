package bootstrap

import (
	"go.uber.org/fx"
)

// Run starts the HTTP service and blocks until a signal arrives.
func Run() {
	app := fx.New(
		fxLogger(),
		coreOptions(),
		appOptions(),
		clientsOptions(),
		serverOptions(),
	)

	app.Run()
}

// RunUpload processes one local workbook and exits.
func RunUpload(params UploadParams) {
	app := fx.New(
		fxLogger(),
		coreOptions(),
		appOptions(),
		clientsOptions(),
		fx.Supply(params),
		fx.Invoke(UploadRunner),
	)

	app.Run()
}
