package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/example/campus-reservations/internal/persistence"
)

// CoordinatorRepository implements persistence.CoordinatorRepository using
// SQLite.
type CoordinatorRepository struct {
	pool *ConnectionPool
}

// NewCoordinatorRepository creates a new SQLite coordinator repository.
func NewCoordinatorRepository(pool *ConnectionPool) *CoordinatorRepository {
	return &CoordinatorRepository{pool: pool}
}

// CreateCoordinator inserts a new coordinator and returns it with its
// assigned id. A duplicate email fails with ErrDuplicate.
func (r *CoordinatorRepository) CreateCoordinator(ctx context.Context, coordinator persistence.Coordinator) (persistence.Coordinator, error) {
	result, err := r.pool.db.ExecContext(ctx,
		`INSERT INTO coordenadores (curso_id, nome, email, senha) VALUES (?, ?, ?, ?)`,
		coordinator.CourseID, coordinator.Name, coordinator.Email, coordinator.PasswordHash)
	if err != nil {
		return persistence.Coordinator{}, mapSQLiteError(err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return persistence.Coordinator{}, err
	}
	coordinator.ID = id
	return coordinator, nil
}

// GetCoordinator retrieves a coordinator by id.
func (r *CoordinatorRepository) GetCoordinator(ctx context.Context, id int64) (persistence.Coordinator, error) {
	var coordinator persistence.Coordinator
	err := r.pool.db.QueryRowContext(ctx,
		`SELECT id, curso_id, nome, email, senha FROM coordenadores WHERE id = ?`, id).
		Scan(&coordinator.ID, &coordinator.CourseID, &coordinator.Name,
			&coordinator.Email, &coordinator.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return persistence.Coordinator{}, persistence.ErrNotFound
		}
		return persistence.Coordinator{}, mapSQLiteError(err)
	}
	return coordinator, nil
}

// GetCoordinatorByEmail retrieves a coordinator by email address.
func (r *CoordinatorRepository) GetCoordinatorByEmail(ctx context.Context, email string) (persistence.Coordinator, error) {
	var coordinator persistence.Coordinator
	err := r.pool.db.QueryRowContext(ctx,
		`SELECT id, curso_id, nome, email, senha FROM coordenadores WHERE email = ?`, email).
		Scan(&coordinator.ID, &coordinator.CourseID, &coordinator.Name,
			&coordinator.Email, &coordinator.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return persistence.Coordinator{}, persistence.ErrNotFound
		}
		return persistence.Coordinator{}, mapSQLiteError(err)
	}
	return coordinator, nil
}

// ListCoordinators returns every coordinator in id order.
func (r *CoordinatorRepository) ListCoordinators(ctx context.Context) ([]persistence.Coordinator, error) {
	rows, err := r.pool.db.QueryContext(ctx,
		`SELECT id, curso_id, nome, email, senha FROM coordenadores ORDER BY id ASC`)
	if err != nil {
		return nil, mapSQLiteError(err)
	}
	defer rows.Close()

	var coordinators []persistence.Coordinator
	for rows.Next() {
		var coordinator persistence.Coordinator
		if err := rows.Scan(&coordinator.ID, &coordinator.CourseID, &coordinator.Name,
			&coordinator.Email, &coordinator.PasswordHash); err != nil {
			return nil, mapSQLiteError(err)
		}
		coordinators = append(coordinators, coordinator)
	}
	if err := rows.Err(); err != nil {
		return nil, mapSQLiteError(err)
	}
	return coordinators, nil
}

// UpdateCoordinator replaces the mutable fields of an existing coordinator,
// including the recomputed password hash.
func (r *CoordinatorRepository) UpdateCoordinator(ctx context.Context, coordinator persistence.Coordinator) (persistence.Coordinator, error) {
	result, err := r.pool.db.ExecContext(ctx,
		`UPDATE coordenadores SET curso_id = ?, nome = ?, email = ?, senha = ? WHERE id = ?`,
		coordinator.CourseID, coordinator.Name, coordinator.Email,
		coordinator.PasswordHash, coordinator.ID)
	if err != nil {
		return persistence.Coordinator{}, mapSQLiteError(err)
	}
	if err := rowsAffected(result); err != nil {
		return persistence.Coordinator{}, err
	}
	return coordinator, nil
}

// DeleteCoordinator removes a coordinator. Coordinators with reservations are
// protected by foreign keys and fail with ErrForeignKeyViolation.
func (r *CoordinatorRepository) DeleteCoordinator(ctx context.Context, id int64) error {
	result, err := r.pool.db.ExecContext(ctx, `DELETE FROM coordenadores WHERE id = ?`, id)
	if err != nil {
		return mapSQLiteError(err)
	}
	return rowsAffected(result)
}
