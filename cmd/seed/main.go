// seed carga clientes y líneas de ejemplo desde un CSV usando los mismos casos de uso que la API.
//
// Uso: go run ./cmd/seed [ruta/clientes.csv] [charset]
// Por defecto busca clientes.csv en el directorio actual; charset admite utf-8 (por defecto) y latin1.
// Cabecera: type,address,first_name,last_name,document_id,company_name,tax_id,msisdn,service_type
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jhoicas/mobile-subscribers-api/internal/application/customer"
	"github.com/jhoicas/mobile-subscribers-api/internal/application/subscriber"
	"github.com/jhoicas/mobile-subscribers-api/internal/infrastructure/postgres"
	"github.com/jhoicas/mobile-subscribers-api/pkg/config"
	"github.com/jhoicas/mobile-subscribers-api/pkg/logger"
)

func main() {
	csvPath := "clientes.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}
	charset := ""
	if len(os.Args) > 2 {
		charset = os.Args[2]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	f, err := os.Open(csvPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", csvPath).Msg("abrir CSV")
	}
	defer f.Close()

	rows, err := parseRows(f, charset)
	if err != nil {
		log.Fatal().Err(err).Msg("leer CSV")
	}

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

	customerRepo := postgres.NewCustomerRepository(pool)
	subscriberRepo := postgres.NewSubscriberRepository(pool)
	txRunner := postgres.NewTxRunner(pool)
	customerUC := customer.NewUseCase(customerRepo, subscriberRepo, txRunner, log, nil)
	subscriberUC := subscriber.NewUseCase(subscriberRepo, customerRepo, txRunner, subscriber.WithLogger(log))

	l := &loader{customers: customerUC, subs: subscriberUC, log: log}
	res, err := l.load(ctx, rows)
	if err != nil {
		log.Fatal().Err(err).Msg("carga interrumpida")
	}

	log.Info().
		Int("clientes", res.Customers).
		Int("lineas", res.Lines).
		Int("omitidos", res.Skipped).
		Msg("carga finalizada")
}
