package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Schema creates the catalog and lead tables when they do not exist. Column
// names match the managed database the storefront was first deployed on.
const Schema = `
	CREATE TABLE IF NOT EXISTS vehicles (
		id BIGSERIAL PRIMARY KEY,
		nombre TEXT NOT NULL,
		marca TEXT NOT NULL,
		categoria TEXT NOT NULL DEFAULT '',
		anio INTEGER NOT NULL,
		kilometraje INTEGER NOT NULL DEFAULT 0,
		precio NUMERIC(14,2) NOT NULL CHECK (precio >= 0),
		color TEXT NOT NULL DEFAULT '',
		destacado BOOLEAN NOT NULL DEFAULT FALSE,
		etiqueta TEXT,
		imagen TEXT NOT NULL DEFAULT '',
		imagenes TEXT,
		video_url TEXT,
		descripcion TEXT,
		caracteristicas TEXT,
		especificaciones TEXT,
		stock INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	CREATE INDEX IF NOT EXISTS idx_vehicles_marca ON vehicles(marca);
	CREATE INDEX IF NOT EXISTS idx_vehicles_destacado ON vehicles(destacado) WHERE destacado;

	CREATE TABLE IF NOT EXISTS appointments (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		phone TEXT NOT NULL DEFAULT '',
		service TEXT NOT NULL DEFAULT '',
		appointment_date TIMESTAMPTZ NOT NULL,
		message TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'pending',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS advisor_requests (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		phone TEXT NOT NULL DEFAULT '',
		interest TEXT NOT NULL DEFAULT '',
		budget TEXT NOT NULL DEFAULT 'no-definido',
		message TEXT NOT NULL DEFAULT '',
		preferred_contact TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'pending',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
`

// EnsureSchema applies Schema to the database behind pool.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, logger zerolog.Logger) error {
	if _, err := pool.Exec(ctx, Schema); err != nil {
		logger.Error().Err(err).Msg("failed to apply database schema")
		return fmt.Errorf("failed to apply database schema: %w", err)
	}

	logger.Info().Msg("database schema is up to date")
	return nil
}
