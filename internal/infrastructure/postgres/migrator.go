package postgres

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/mobile-subscribers-api/pkg/logger"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migrations scripts SQL del esquema, embebidos en el binario.
func Migrations() fs.FS {
	sub, err := fs.Sub(migrationFiles, "migrations")
	if err != nil {
		panic(err)
	}
	return sub
}

// Migrator aplica los scripts NNNN_nombre.sql en orden y registra la versión en schema_migrations.
type Migrator struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

// NewMigrator construye el migrador.
func NewMigrator(pool *pgxpool.Pool, log *logger.Logger) *Migrator {
	return &Migrator{pool: pool, log: log}
}

// Up aplica las migraciones pendientes de source. Cada script corre en su propia transacción.
func (m *Migrator) Up(ctx context.Context, source fs.FS) error {
	_, err := m.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    INT PRIMARY KEY,
			name       TEXT NOT NULL,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return fmt.Errorf("crear schema_migrations: %w", err)
	}

	names, err := migrationNames(source)
	if err != nil {
		return err
	}

	var current int
	if err := m.pool.QueryRow(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&current); err != nil {
		return fmt.Errorf("leer versión del esquema: %w", err)
	}

	applied := 0
	for _, name := range names {
		v, err := scriptVersion(name)
		if err != nil {
			return err
		}
		if v <= current {
			continue
		}
		script, err := fs.ReadFile(source, name)
		if err != nil {
			return fmt.Errorf("leer %s: %w", name, err)
		}
		m.log.Debug().Str("migration", name).Msg("aplicando migración")
		if err := m.apply(ctx, v, name, string(script)); err != nil {
			return err
		}
		applied++
	}
	if applied > 0 {
		m.log.Info().Int("migrations", applied).Msg("esquema actualizado")
	}
	return nil
}

func (m *Migrator) apply(ctx context.Context, version int, name, script string) error {
	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin migration %s: %w", name, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Sin argumentos pgx usa el protocolo simple, que admite varias sentencias por script.
	if _, err := tx.Exec(ctx, script); err != nil {
		return fmt.Errorf("migration %s: %w", name, err)
	}
	if _, err := tx.Exec(ctx, `INSERT INTO schema_migrations (version, name) VALUES ($1, $2)`, version, name); err != nil {
		return fmt.Errorf("registrar migration %s: %w", name, err)
	}
	return tx.Commit(ctx)
}

// migrationNames lista los .sql de source ordenados por nombre.
func migrationNames(source fs.FS) ([]string, error) {
	entries, err := fs.ReadDir(source, ".")
	if err != nil {
		return nil, fmt.Errorf("leer migraciones: %w", err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// scriptVersion extrae la versión de un nombre como "0002_create_mobile_subscribers.sql".
func scriptVersion(filename string) (int, error) {
	v, err := strconv.Atoi(strings.Split(filename, "_")[0])
	if err != nil {
		return 0, fmt.Errorf("nombre de migración inválido %q: %w", filename, err)
	}
	return v, nil
}
