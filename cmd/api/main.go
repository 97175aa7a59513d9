// @title        Mobile Subscribers API
// @version      1.0
// @description  API REST de líneas móviles y sus clientes (dueños y usuarios).
// @BasePath     /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
// @description                 Bearer <token>
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/swaggo/swag"

	"github.com/jhoicas/mobile-subscribers-api/docs"
	"github.com/jhoicas/mobile-subscribers-api/internal/application/customer"
	"github.com/jhoicas/mobile-subscribers-api/internal/application/metrics"
	"github.com/jhoicas/mobile-subscribers-api/internal/application/subscriber"
	"github.com/jhoicas/mobile-subscribers-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/mobile-subscribers-api/internal/interfaces/http"
	"github.com/jhoicas/mobile-subscribers-api/pkg/config"
	"github.com/jhoicas/mobile-subscribers-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.Migrate {
		if err := postgres.NewMigrator(pool, log).Up(ctx, postgres.Migrations()); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	subscriberRepo := postgres.NewSubscriberRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	subscriberUC := subscriber.NewUseCase(subscriberRepo, customerRepo, txRunner,
		subscriber.WithLogger(log),
		subscriber.WithMetrics(m),
	)
	customerUC := customer.NewUseCase(customerRepo, subscriberRepo, txRunner, log, m)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	if cfg.Swagger {
		// Swagger UI en local: http://localhost:<port>/docs
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/swagger.json",
			Path:     "docs",
			Title:    docs.SwaggerInfo.Title,
		}))
		app.Get("/openapi.json", func(c *fiber.Ctx) error {
			doc, err := swag.ReadDoc()
			if err != nil {
				return err
			}
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
			return c.SendString(doc)
		})
	}

	if cfg.Metrics {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "down", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		SubscriberUC: subscriberUC,
		CustomerUC:   customerUC,
		JWTSecret:    cfg.JWT.Secret,
	})
	if !cfg.JWT.Enabled() {
		log.Warn().Msg("JWT_SECRET vacío: las escrituras no requieren token")
	}

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
