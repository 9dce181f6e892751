package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/example/campus-reservations/internal/persistence"
)

// ReservationRepository implements persistence.ReservationRepository using
// SQLite.
type ReservationRepository struct {
	pool *ConnectionPool
}

// NewReservationRepository creates a new SQLite reservation repository.
func NewReservationRepository(pool *ConnectionPool) *ReservationRepository {
	return &ReservationRepository{pool: pool}
}

// CreateReservation inserts a new reservation. The overlap guard runs inside
// the write transaction so two concurrent requests for the same slot cannot
// both commit; the loser fails with ErrConflict.
func (r *ReservationRepository) CreateReservation(ctx context.Context, reservation persistence.Reservation) (persistence.Reservation, error) {
	err := r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		if err := guardOverlap(tx, reservation); err != nil {
			return err
		}

		result, err := tx.Exec(
			`INSERT INTO reservas (sala_id, coordenador_id, data_reserva, hora_inicio, hora_fim, motivo)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			reservation.RoomID, reservation.CoordinatorID, reservation.Date,
			reservation.StartTime, reservation.EndTime, reservation.Reason)
		if err != nil {
			return mapSQLiteError(err)
		}

		id, err := result.LastInsertId()
		if err != nil {
			return err
		}
		reservation.ID = id
		return nil
	})
	if err != nil {
		return persistence.Reservation{}, err
	}
	return reservation, nil
}

// GetReservation retrieves a reservation by id.
func (r *ReservationRepository) GetReservation(ctx context.Context, id int64) (persistence.Reservation, error) {
	var reservation persistence.Reservation
	err := r.pool.db.QueryRowContext(ctx,
		`SELECT id, sala_id, coordenador_id, data_reserva, hora_inicio, hora_fim, motivo
		 FROM reservas WHERE id = ?`, id).
		Scan(&reservation.ID, &reservation.RoomID, &reservation.CoordinatorID,
			&reservation.Date, &reservation.StartTime, &reservation.EndTime, &reservation.Reason)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return persistence.Reservation{}, persistence.ErrNotFound
		}
		return persistence.Reservation{}, mapSQLiteError(err)
	}
	return reservation, nil
}

// ListReservations returns every reservation in id order.
func (r *ReservationRepository) ListReservations(ctx context.Context) ([]persistence.Reservation, error) {
	return r.queryReservations(ctx,
		`SELECT id, sala_id, coordenador_id, data_reserva, hora_inicio, hora_fim, motivo
		 FROM reservas ORDER BY id ASC`)
}

// ListReservationsForRoomDate returns the reservations for a room on a date,
// ordered by start time.
func (r *ReservationRepository) ListReservationsForRoomDate(ctx context.Context, roomID int64, date string) ([]persistence.Reservation, error) {
	return r.queryReservations(ctx,
		`SELECT id, sala_id, coordenador_id, data_reserva, hora_inicio, hora_fim, motivo
		 FROM reservas WHERE sala_id = ? AND data_reserva = ?
		 ORDER BY hora_inicio ASC, id ASC`, roomID, date)
}

// UpdateReservation replaces the mutable fields of a reservation, re-running
// the overlap guard (excluding the reservation itself) in the same
// transaction.
func (r *ReservationRepository) UpdateReservation(ctx context.Context, reservation persistence.Reservation) (persistence.Reservation, error) {
	err := r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		if err := guardOverlap(tx, reservation); err != nil {
			return err
		}

		result, err := tx.Exec(
			`UPDATE reservas
			 SET sala_id = ?, coordenador_id = ?, data_reserva = ?, hora_inicio = ?, hora_fim = ?, motivo = ?
			 WHERE id = ?`,
			reservation.RoomID, reservation.CoordinatorID, reservation.Date,
			reservation.StartTime, reservation.EndTime, reservation.Reason, reservation.ID)
		if err != nil {
			return mapSQLiteError(err)
		}
		return rowsAffected(result)
	})
	if err != nil {
		return persistence.Reservation{}, err
	}
	return reservation, nil
}

// DeleteReservation removes a reservation by id.
func (r *ReservationRepository) DeleteReservation(ctx context.Context, id int64) error {
	result, err := r.pool.db.ExecContext(ctx, `DELETE FROM reservas WHERE id = ?`, id)
	if err != nil {
		return mapSQLiteError(err)
	}
	return rowsAffected(result)
}

func (r *ReservationRepository) queryReservations(ctx context.Context, query string, args ...any) ([]persistence.Reservation, error) {
	rows, err := r.pool.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapSQLiteError(err)
	}
	defer rows.Close()

	var reservations []persistence.Reservation
	for rows.Next() {
		var reservation persistence.Reservation
		if err := rows.Scan(&reservation.ID, &reservation.RoomID, &reservation.CoordinatorID,
			&reservation.Date, &reservation.StartTime, &reservation.EndTime, &reservation.Reason); err != nil {
			return nil, mapSQLiteError(err)
		}
		reservations = append(reservations, reservation)
	}
	if err := rows.Err(); err != nil {
		return nil, mapSQLiteError(err)
	}
	return reservations, nil
}

// guardOverlap is the storage-side half-open interval check:
// existing.hora_inicio < new.hora_fim AND existing.hora_fim > new.hora_inicio.
// Fixed-width HH:MM:SS strings make the TEXT comparisons chronological.
func guardOverlap(tx *sql.Tx, reservation persistence.Reservation) error {
	var count int
	err := tx.QueryRow(
		`SELECT COUNT(1) FROM reservas
		 WHERE sala_id = ? AND data_reserva = ? AND hora_inicio < ? AND hora_fim > ? AND id != ?`,
		reservation.RoomID, reservation.Date, reservation.EndTime,
		reservation.StartTime, reservation.ID).Scan(&count)
	if err != nil {
		return mapSQLiteError(err)
	}
	if count > 0 {
		return persistence.ErrConflict
	}
	return nil
}
