package repository

import (
	"context"

	"github.com/pkg/errors"
	"github.com/vfg2006/clinic-intake-api/infrastructure/database/postgres"
)

// Os valores monetários ficam em TEXT com duas casas decimais. Registros
// antigos podem ter valores malformados, que o relatório trata como zero.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            TEXT PRIMARY KEY,
		username      TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role          TEXT NOT NULL CHECK (role IN ('admin', 'receptionist')),
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS entries (
		id                 TEXT PRIMARY KEY,
		patient_name       TEXT NOT NULL,
		date               TIMESTAMPTZ NOT NULL,
		procedure          TEXT NOT NULL,
		payment_methods    TEXT[] NOT NULL,
		cash_amount        TEXT,
		pix_amount         TEXT,
		credit_card_amount TEXT,
		notes              TEXT,
		submitted_by       TEXT NOT NULL,
		created_at         TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS entries_date_idx ON entries (date)`,
	`CREATE TABLE IF NOT EXISTS expenses (
		id          TEXT PRIMARY KEY,
		description TEXT NOT NULL,
		amount      TEXT,
		date        TEXT NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS expenses_date_idx ON expenses (date)`,
}

// EnsureSchema cria as tabelas que ainda não existem
func EnsureSchema(ctx context.Context, conn postgres.Queryer) error {
	for _, stmt := range schemaStatements {
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			return errors.Wrap(err, "erro ao aplicar schema")
		}
	}
	return nil
}
