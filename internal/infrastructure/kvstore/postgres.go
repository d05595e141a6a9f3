package kvstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Chatarreria-api/pkg/config"
)

// Asegura que PostgresBackend implementa Backend.
var _ Backend = (*PostgresBackend)(nil)

// PostgresBackend backend durable sobre PostgreSQL: una sola tabla
// clave→documento jsonb. El esquema se crea al conectar si no existe.
type PostgresBackend struct {
	pool *pgxpool.Pool
}

const createTableSQL = `
	CREATE TABLE IF NOT EXISTS kv_collections (
		key        text PRIMARY KEY,
		doc        jsonb NOT NULL,
		updated_at timestamptz NOT NULL DEFAULT now()
	)`

// NewPostgresBackend crea el pool de conexiones y asegura el esquema.
func NewPostgresBackend(ctx context.Context, cfg config.DBConfig) (*PostgresBackend, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}
	poolConfig.MaxConns = 10
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("crear pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping DB: %w", err)
	}
	if _, err := pool.Exec(ctx, createTableSQL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("crear tabla kv_collections: %w", err)
	}
	return &PostgresBackend{pool: pool}, nil
}

// Load devuelve el documento de la clave, o (nil, nil) si no existe.
func (b *PostgresBackend) Load(ctx context.Context, key string) ([]byte, error) {
	var doc []byte
	err := b.pool.QueryRow(ctx,
		`SELECT doc FROM kv_collections WHERE key = $1`, key).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	return doc, nil
}

// Save inserta o reemplaza el documento de la clave.
func (b *PostgresBackend) Save(ctx context.Context, key string, data []byte) error {
	_, err := b.pool.Exec(ctx, `
		INSERT INTO kv_collections (key, doc, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET doc = EXCLUDED.doc, updated_at = now()`,
		key, data)
	if err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Close cierra el pool.
func (b *PostgresBackend) Close() error {
	b.pool.Close()
	return nil
}
