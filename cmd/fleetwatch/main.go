package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/harborview/fleetwatch/client"
	"github.com/harborview/fleetwatch/internal/config"
	"github.com/harborview/fleetwatch/internal/infra/database"
	"github.com/harborview/fleetwatch/internal/infra/gateway"
	"github.com/harborview/fleetwatch/internal/infra/repository"
	"github.com/harborview/fleetwatch/internal/present/rest"
	"github.com/harborview/fleetwatch/internal/present/rest/middleware"
	"github.com/harborview/fleetwatch/internal/service"
	"github.com/harborview/fleetwatch/internal/usecase"
)

func main() {
	configPath := flag.String("config", "/etc/fleetwatch/config.yaml", "path to config file")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	conf, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()

	if conf.Server.EnableTrace {
		cleanup, err := setupTraceProvider(ctx, conf.Server.TraceEndpoint)
		if err != nil {
			slog.Error("Failed to setup tracing", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer cleanup()
	}

	db, err := database.NewPostgres(conf.Server.PostgresDsn)
	if err != nil {
		slog.Error("Failed to connect database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := database.MigratePostgres(db); err != nil {
		slog.Error("Failed to migrate database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	rdb, err := database.NewRedis(ctx, conf.Server.RedisAddr, "", conf.Server.RedisDB)
	if err != nil {
		slog.Error("Failed to connect redis", slog.String("error", err.Error()))
		os.Exit(1)
	}

	mc := database.NewMemcached(conf.Server.MemcachedAddr)

	platform := client.New(conf.Platform.Endpoint, conf.Platform.APIKey)

	trackingRepo := repository.NewTrackingRepository(db)
	salesRepo := repository.NewSalesRepository(db)

	catalogGw := gateway.NewCatalogGateway(platform)
	orgGw := gateway.NewOrganizationGateway(platform, mc)
	userGw := gateway.NewUserGateway(platform)

	signal := service.NewSignalService(rdb)
	auth := service.NewAuthService(conf.Auth.Secret)
	alert := service.NewAlertService(signal)

	visibilityUC := usecase.NewVisibilityUsecase(trackingRepo)
	trackingUC := usecase.NewTrackingUsecase(trackingRepo, salesRepo, catalogGw, signal)
	quotaUC := usecase.NewQuotaUsecase(trackingRepo, orgGw)
	catalogUC := usecase.NewCatalogUsecase(catalogGw)
	directoryUC := usecase.NewDirectoryUsecase(userGw)

	handler := rest.NewHandler(visibilityUC, trackingUC, quotaUC, catalogUC, directoryUC, alert, signal)
	authMiddleware := middleware.NewAuthMiddleware(auth)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	if conf.Server.EnableTrace {
		e.Use(otelecho.Middleware("fleetwatch"))
	}
	e.Use(authMiddleware.IdentifyIdentity)

	handler.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(conf.Server.Listen))
}

func setupTraceProvider(ctx context.Context, endpoint string) (func(), error) {
	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
	)
	otel.SetTracerProvider(provider)

	return func() {
		if err := provider.Shutdown(context.Background()); err != nil {
			slog.Error("Failed to shutdown tracer provider", slog.String("error", err.Error()))
		}
	}, nil
}
