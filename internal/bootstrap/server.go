package bootstrap

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v3"
	"github.com/init-pkg/siot-loader/domain/dtos"
	excel_parser_http_handler "github.com/init-pkg/siot-loader/internal/app/excel-parser/transports/http"
	"github.com/init-pkg/siot-loader/internal/config"
	"go.uber.org/fx"
)

func serverOptions() fx.Option {
	return fx.Options(
		fx.Provide(
			excel_parser_http_handler.New,
			newFiberApp,
		),
		fx.Invoke(startServer),
	)
}

func newFiberApp(handler *excel_parser_http_handler.SiotImportHttpHandler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:   "siot-loader",
		BodyLimit: 32 << 20,
	})

	app.Get("/health", func(c fiber.Ctx) error {
		return c.JSON(dtos.HealthResponse{Status: "ok"})
	})
	handler.Register(app)

	return app
}

func startServer(lc fx.Lifecycle, app *fiber.App, cfg *config.Config, log *slog.Logger, shutdowner fx.Shutdowner) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				log.Info("http server listening", "addr", cfg.Http.Addr)
				if err := app.Listen(cfg.Http.Addr, fiber.ListenConfig{DisableStartupMessage: true}); err != nil {
					log.Error("http server stopped", "error", err)
					_ = shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.ShutdownWithContext(ctx)
		},
	})
}
