package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/example/campus-reservations/internal/persistence"
)

// BlockRepository implements persistence.BlockRepository using SQLite.
type BlockRepository struct {
	pool *ConnectionPool
}

// NewBlockRepository creates a new SQLite block repository.
func NewBlockRepository(pool *ConnectionPool) *BlockRepository {
	return &BlockRepository{pool: pool}
}

// CreateBlock inserts a new block and returns it with its assigned id.
func (r *BlockRepository) CreateBlock(ctx context.Context, block persistence.Block) (persistence.Block, error) {
	result, err := r.pool.db.ExecContext(ctx,
		`INSERT INTO blocos (nome, curso_id) VALUES (?, ?)`,
		block.Name, block.CourseID)
	if err != nil {
		return persistence.Block{}, mapSQLiteError(err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return persistence.Block{}, err
	}
	block.ID = id
	return block, nil
}

// GetBlock retrieves a block by id.
func (r *BlockRepository) GetBlock(ctx context.Context, id int64) (persistence.Block, error) {
	var block persistence.Block
	err := r.pool.db.QueryRowContext(ctx,
		`SELECT id, nome, curso_id FROM blocos WHERE id = ?`, id).
		Scan(&block.ID, &block.Name, &block.CourseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return persistence.Block{}, persistence.ErrNotFound
		}
		return persistence.Block{}, mapSQLiteError(err)
	}
	return block, nil
}

// ListBlocks returns every block in id order.
func (r *BlockRepository) ListBlocks(ctx context.Context) ([]persistence.Block, error) {
	rows, err := r.pool.db.QueryContext(ctx,
		`SELECT id, nome, curso_id FROM blocos ORDER BY id ASC`)
	if err != nil {
		return nil, mapSQLiteError(err)
	}
	defer rows.Close()

	var blocks []persistence.Block
	for rows.Next() {
		var block persistence.Block
		if err := rows.Scan(&block.ID, &block.Name, &block.CourseID); err != nil {
			return nil, mapSQLiteError(err)
		}
		blocks = append(blocks, block)
	}
	if err := rows.Err(); err != nil {
		return nil, mapSQLiteError(err)
	}
	return blocks, nil
}

// UpdateBlock replaces the mutable fields of a block and rewrites the
// denormalized curso_id of its rooms in the same transaction, keeping
// sala.curso_id == bloco.curso_id at all times.
func (r *BlockRepository) UpdateBlock(ctx context.Context, block persistence.Block) (persistence.Block, error) {
	err := r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		result, err := tx.Exec(
			`UPDATE blocos SET nome = ?, curso_id = ? WHERE id = ?`,
			block.Name, block.CourseID, block.ID)
		if err != nil {
			return mapSQLiteError(err)
		}
		if err := rowsAffected(result); err != nil {
			return err
		}

		if _, err := tx.Exec(
			`UPDATE salas SET curso_id = ? WHERE bloco_id = ?`,
			block.CourseID, block.ID); err != nil {
			return mapSQLiteError(err)
		}
		return nil
	})
	if err != nil {
		return persistence.Block{}, err
	}
	return block, nil
}

// DeleteBlock removes a block, cascading to its rooms and those rooms'
// reservations inside one transaction.
func (r *BlockRepository) DeleteBlock(ctx context.Context, id int64) error {
	return r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.Exec(
			`DELETE FROM reservas WHERE sala_id IN (SELECT id FROM salas WHERE bloco_id = ?)`,
			id); err != nil {
			return mapSQLiteError(err)
		}
		if _, err := tx.Exec(`DELETE FROM salas WHERE bloco_id = ?`, id); err != nil {
			return mapSQLiteError(err)
		}

		result, err := tx.Exec(`DELETE FROM blocos WHERE id = ?`, id)
		if err != nil {
			return mapSQLiteError(err)
		}
		return rowsAffected(result)
	})
}
