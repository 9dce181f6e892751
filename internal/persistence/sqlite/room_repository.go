package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/example/campus-reservations/internal/persistence"
)

// RoomRepository implements persistence.RoomRepository using SQLite.
type RoomRepository struct {
	pool *ConnectionPool
}

// NewRoomRepository creates a new SQLite room repository.
func NewRoomRepository(pool *ConnectionPool) *RoomRepository {
	return &RoomRepository{pool: pool}
}

// CreateRoom inserts a new room and returns it with its assigned id.
func (r *RoomRepository) CreateRoom(ctx context.Context, room persistence.Room) (persistence.Room, error) {
	result, err := r.pool.db.ExecContext(ctx,
		`INSERT INTO salas (bloco_id, curso_id, numero, capacidade, recursos, exclusivo)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		room.BlockID, room.CourseID, room.Number, room.Capacity, room.Resources, boolToInt(room.Exclusive))
	if err != nil {
		return persistence.Room{}, mapSQLiteError(err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return persistence.Room{}, err
	}
	room.ID = id
	return room, nil
}

// GetRoom retrieves a room by id.
func (r *RoomRepository) GetRoom(ctx context.Context, id int64) (persistence.Room, error) {
	row := r.pool.db.QueryRowContext(ctx,
		`SELECT id, bloco_id, curso_id, numero, capacidade, recursos, exclusivo
		 FROM salas WHERE id = ?`, id)
	room, err := scanRoom(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return persistence.Room{}, persistence.ErrNotFound
		}
		return persistence.Room{}, mapSQLiteError(err)
	}
	return room, nil
}

// ListRooms returns every room in id order.
func (r *RoomRepository) ListRooms(ctx context.Context) ([]persistence.Room, error) {
	rows, err := r.pool.db.QueryContext(ctx,
		`SELECT id, bloco_id, curso_id, numero, capacidade, recursos, exclusivo
		 FROM salas ORDER BY id ASC`)
	if err != nil {
		return nil, mapSQLiteError(err)
	}
	defer rows.Close()

	var rooms []persistence.Room
	for rows.Next() {
		room, err := scanRoom(rows.Scan)
		if err != nil {
			return nil, mapSQLiteError(err)
		}
		rooms = append(rooms, room)
	}
	if err := rows.Err(); err != nil {
		return nil, mapSQLiteError(err)
	}
	return rooms, nil
}

// UpdateRoom replaces the mutable fields of an existing room.
func (r *RoomRepository) UpdateRoom(ctx context.Context, room persistence.Room) (persistence.Room, error) {
	result, err := r.pool.db.ExecContext(ctx,
		`UPDATE salas
		 SET bloco_id = ?, curso_id = ?, numero = ?, capacidade = ?, recursos = ?, exclusivo = ?
		 WHERE id = ?`,
		room.BlockID, room.CourseID, room.Number, room.Capacity, room.Resources,
		boolToInt(room.Exclusive), room.ID)
	if err != nil {
		return persistence.Room{}, mapSQLiteError(err)
	}
	if err := rowsAffected(result); err != nil {
		return persistence.Room{}, err
	}
	return room, nil
}

// DeleteRoom removes a room, cascading to its reservations inside one
// transaction.
func (r *RoomRepository) DeleteRoom(ctx context.Context, id int64) error {
	return r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM reservas WHERE sala_id = ?`, id); err != nil {
			return mapSQLiteError(err)
		}

		result, err := tx.Exec(`DELETE FROM salas WHERE id = ?`, id)
		if err != nil {
			return mapSQLiteError(err)
		}
		return rowsAffected(result)
	})
}

func scanRoom(scan func(dest ...any) error) (persistence.Room, error) {
	var room persistence.Room
	var exclusive int
	err := scan(&room.ID, &room.BlockID, &room.CourseID, &room.Number,
		&room.Capacity, &room.Resources, &exclusive)
	if err != nil {
		return persistence.Room{}, err
	}
	room.Exclusive = exclusive != 0
	return room, nil
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}
