package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

// migrations are applied in order inside a single transaction. The schema
// encodes the referential and uniqueness rules the rule engine relies on:
// unique course/block names, unique coordinator email, positive room number
// and capacity, and hora_inicio < hora_fim.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS cursos (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		nome TEXT NOT NULL UNIQUE CHECK (length(nome) <= 100)
	)`,
	`CREATE TABLE IF NOT EXISTS blocos (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		nome TEXT NOT NULL UNIQUE CHECK (length(nome) <= 100),
		curso_id INTEGER NOT NULL REFERENCES cursos(id)
	)`,
	`CREATE TABLE IF NOT EXISTS salas (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		bloco_id INTEGER NOT NULL REFERENCES blocos(id),
		curso_id INTEGER NOT NULL REFERENCES cursos(id),
		numero INTEGER NOT NULL CHECK (numero > 0),
		capacidade INTEGER NOT NULL CHECK (capacidade > 0),
		recursos TEXT NOT NULL CHECK (length(recursos) <= 100),
		exclusivo INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_salas_bloco ON salas(bloco_id)`,
	`CREATE TABLE IF NOT EXISTS coordenadores (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		curso_id INTEGER NOT NULL REFERENCES cursos(id),
		nome TEXT NOT NULL CHECK (length(nome) <= 100),
		email TEXT NOT NULL UNIQUE,
		senha TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS reservas (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sala_id INTEGER NOT NULL REFERENCES salas(id),
		coordenador_id INTEGER NOT NULL REFERENCES coordenadores(id),
		data_reserva TEXT NOT NULL,
		hora_inicio TEXT NOT NULL,
		hora_fim TEXT NOT NULL CHECK (hora_inicio < hora_fim),
		motivo TEXT NOT NULL CHECK (length(motivo) <= 100)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_reservas_sala_data ON reservas(sala_id, data_reserva)`,
}

// Migrate applies the schema, creating missing tables and indexes.
func (cp *ConnectionPool) Migrate(ctx context.Context) error {
	return cp.WithTransaction(ctx, func(tx *sql.Tx) error {
		for i, stmt := range migrations {
			if _, err := tx.Exec(stmt); err != nil {
				return fmt.Errorf("migration %d failed: %w", i+1, err)
			}
		}
		return nil
	})
}
