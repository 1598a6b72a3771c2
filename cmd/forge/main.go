package main

import (
	"context"
	"log/slog"
	"os"

	"forge/config"
	"forge/internal/delivery"
	"forge/internal/delivery/http"
	"forge/internal/delivery/http/middleware"
	"forge/internal/delivery/http/router/handler"
	"forge/internal/domain/service"
	"forge/internal/infra/auth"
	logs "forge/internal/infra/log"
	"forge/internal/infra/persistence/postgres"
	"forge/internal/infra/qrcode"
	"forge/internal/infra/storage"
	"forge/internal/usecase/impl"

	"go.uber.org/fx"
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
			postgres.NewTransactionManager,
			postgres.NewUserRepository,
			postgres.NewAddressRepository,
			postgres.NewCategoryRepository,
			postgres.NewMaterialRepository,
			postgres.NewProductRepository,
			postgres.NewReviewRepository,
			postgres.NewStoreServiceRepository,
			postgres.NewQuotationRepository,
			postgres.NewBookingRepository,
			postgres.NewPortfolioRepository,
			postgres.NewStaffRepository,
			postgres.NewProjectRepository,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			storage.New,
			newClock,
			newQRCodeService,
		),
	)
}

func newClock() service.Clock {
	return service.SystemClock{}
}

// newQRCodeService creates a QR code service with dependency injection
func newQRCodeService(cfg *config.Config) service.QRCodeService {
	if cfg.QRCode == nil {
		// Use default values if not configured
		return qrcode.NewQRCodeService(256, "M")
	}

	return qrcode.NewQRCodeService(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAccountService,
			impl.NewAdminAccountService,
			impl.NewCatalogService,
			impl.NewQuotationService,
			impl.NewBookingService,
			impl.NewPortfolioService,
			impl.NewHRService,
			impl.NewProjectService,
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
			handler.NewAdminUserHandler,
			handler.NewCatalogHandler,
			handler.NewQuotationHandler,
			handler.NewBookingHandler,
			handler.NewPortfolioHandler,
			handler.NewHRHandler,
			handler.NewProjectHandler,
			handler.NewUploadHandler,
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
