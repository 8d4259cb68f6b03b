package siot_import_module

import (
	"log/slog"

	"github.com/init-pkg/siot-loader/domain/app"
	"github.com/init-pkg/siot-loader/domain/schema"
	mapping_service "github.com/init-pkg/siot-loader/internal/app/mapping/general"
	header_mapping_service "github.com/init-pkg/siot-loader/internal/app/mapping/header"
	siot_import_service "github.com/init-pkg/siot-loader/internal/app/siot-import/service"
	submission_service "github.com/init-pkg/siot-loader/internal/app/submission"
	"github.com/init-pkg/siot-loader/internal/config"
	"github.com/openai/openai-go/v2"
	"go.uber.org/fx"
)

func Register() fx.Option {
	return fx.Provide(
		newRegistry,
		fx.Annotate(header_mapping_service.New, fx.As(fx.Self()), fx.As(new(app.HeaderResolver))),
		newSuggester,
		newExtractor,
		submission_service.New,
		fx.Annotate(siot_import_service.New, fx.As(new(app.ImportService))),
	)
}

func newRegistry(log *slog.Logger) (schema.Registry, error) {
	registry := schema.SIOT()
	if err := registry.Validate(schema.AnchorField, schema.RequiredFields); err != nil {
		return nil, err
	}
	for _, f := range registry {
		log.Debug("canonical field", "name", f.Name, "kind", f.Kind.String(), "output", f.OutputKey)
	}
	return registry, nil
}

func newSuggester(cfg *config.Config, client *openai.Client, log *slog.Logger) app.HeaderSuggester {
	if cfg.Clients.OpenAI.ApiKey == "" {
		return header_mapping_service.NoopSuggester{}
	}
	return header_mapping_service.NewSuggestionService(client, cfg.Clients.OpenAI.Model, log)
}

func newExtractor(log *slog.Logger) *mapping_service.Service {
	return mapping_service.New(schema.AnchorField, log)
}
