package main

import (
	"context"
	"log/slog"
	"os"

	"go.uber.org/fx"

	"github.com/ahmedhalac/brainstack-backend/config"
	"github.com/ahmedhalac/brainstack-backend/internal/delivery"
	"github.com/ahmedhalac/brainstack-backend/internal/delivery/http"
	"github.com/ahmedhalac/brainstack-backend/internal/delivery/http/middleware"
	"github.com/ahmedhalac/brainstack-backend/internal/delivery/http/router/handler"
	"github.com/ahmedhalac/brainstack-backend/internal/infra/auth"
	logs "github.com/ahmedhalac/brainstack-backend/internal/infra/log"
	"github.com/ahmedhalac/brainstack-backend/internal/infra/mail"
	"github.com/ahmedhalac/brainstack-backend/internal/infra/persistence/postgres"
	"github.com/ahmedhalac/brainstack-backend/internal/usecase/impl"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewAccountRepository,
			postgres.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			auth.NewCodeGenerator,
			mail.NewSMTPMailer,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAccountService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAccountHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
