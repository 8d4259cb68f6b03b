package bootstrap

import (
	"github.com/init-pkg/siot-loader/domain/app"
	openai_client "github.com/init-pkg/siot-loader/internal/clients/openai"
	pipefy_client "github.com/init-pkg/siot-loader/internal/clients/pipefy"
	"go.uber.org/fx"
)

func clientsOptions() fx.Option {
	return fx.Options(
		fx.Provide(
			openai_client.New,
			fx.Annotate(pipefy_client.New, fx.As(new(app.LabelFetcher), new(app.CardCreator))),
		),
	)
}
