package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/example/campus-reservations/internal/booking"
	"github.com/example/campus-reservations/internal/persistence"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04:05"
)

// ReservationRepository captures the persistence operations needed by the
// service. CreateReservation and UpdateReservation re-run the overlap guard
// inside the store's write transaction and return persistence.ErrConflict
// when another writer claimed the window first.
type ReservationRepository interface {
	CreateReservation(ctx context.Context, reservation Reservation) (Reservation, error)
	GetReservation(ctx context.Context, id int64) (Reservation, error)
	ListReservations(ctx context.Context) ([]Reservation, error)
	UpdateReservation(ctx context.Context, reservation Reservation) (Reservation, error)
	DeleteReservation(ctx context.Context, id int64) error
	ListReservationsForRoomDate(ctx context.Context, roomID int64, date string) ([]Reservation, error)
}

// RoomDirectory exposes room lookups used by the reservation rules.
type RoomDirectory interface {
	GetRoom(ctx context.Context, id int64) (Room, error)
}

// CoordinatorDirectory exposes coordinator lookups used by the exclusivity
// rule.
type CoordinatorDirectory interface {
	GetCoordinator(ctx context.Context, id int64) (Coordinator, error)
}

// ReservationService enforces the reservation rules. Creates and updates run
// the checks in a fixed order: the room must exist, an exclusive room only
// accepts coordinators of its own course, and the requested window must not
// overlap an existing reservation for the same room and date.
type ReservationService struct {
	reservations ReservationRepository
	rooms        RoomDirectory
	coordinators CoordinatorDirectory
	logger       *slog.Logger
}

// NewReservationService constructs a reservation service with the provided
// dependencies.
func NewReservationService(reservations ReservationRepository, rooms RoomDirectory, coordinators CoordinatorDirectory, logger *slog.Logger) *ReservationService {
	return &ReservationService{
		reservations: reservations,
		rooms:        rooms,
		coordinators: coordinators,
		logger:       defaultLogger(logger),
	}
}

func (s *ReservationService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "ReservationService", operation, attrs...)
}

// CreateReservation validates input, runs the reservation rules, and persists
// a new reservation. The store re-checks the window inside its write
// transaction, so two racing requests for the same slot cannot both succeed.
func (s *ReservationService) CreateReservation(ctx context.Context, input ReservationInput) (reservation Reservation, err error) {
	if s == nil || s.reservations == nil {
		return Reservation{}, fmt.Errorf("reservation repository not configured")
	}

	logger := s.loggerWith(ctx, "CreateReservation", "room_id", input.RoomID, "coordinator_id", input.CoordinatorID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create reservation", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("reservation_id", reservation.ID).InfoContext(ctx, "reservation created")
	}()

	var candidate Reservation
	candidate, err = s.normalizeInput(input)
	if err != nil {
		return
	}

	if err = s.authorize(ctx, candidate); err != nil {
		return
	}
	if err = s.ensureSlotFree(ctx, candidate); err != nil {
		return
	}

	reservation, err = s.reservations.CreateReservation(ctx, candidate)
	if err != nil {
		err = s.mapWriteError(ctx, candidate, err)
		return
	}
	return
}

// GetReservation retrieves a reservation by id.
func (s *ReservationService) GetReservation(ctx context.Context, id int64) (Reservation, error) {
	if s == nil || s.reservations == nil {
		return Reservation{}, fmt.Errorf("reservation repository not configured")
	}

	reservation, err := s.reservations.GetReservation(ctx, id)
	if err != nil {
		return Reservation{}, mapReservationRepoError(err)
	}
	return reservation, nil
}

// ListReservations returns every reservation in store order.
func (s *ReservationService) ListReservations(ctx context.Context) ([]Reservation, error) {
	if s == nil || s.reservations == nil {
		return nil, fmt.Errorf("reservation repository not configured")
	}
	return s.reservations.ListReservations(ctx)
}

// UpdateReservation validates input and replaces an existing reservation,
// re-running the full rule set. The reservation's own window is excluded
// from the overlap check so a reservation can keep or shrink its slot.
func (s *ReservationService) UpdateReservation(ctx context.Context, id int64, input ReservationInput) (reservation Reservation, err error) {
	if s == nil || s.reservations == nil {
		return Reservation{}, fmt.Errorf("reservation repository not configured")
	}

	logger := s.loggerWith(ctx, "UpdateReservation", "reservation_id", id, "room_id", input.RoomID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update reservation", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "reservation updated")
	}()

	var candidate Reservation
	candidate, err = s.normalizeInput(input)
	if err != nil {
		return
	}

	var existing Reservation
	existing, err = s.reservations.GetReservation(ctx, id)
	if err != nil {
		err = mapReservationRepoError(err)
		return
	}
	candidate.ID = existing.ID

	if err = s.authorize(ctx, candidate); err != nil {
		return
	}
	if err = s.ensureSlotFree(ctx, candidate); err != nil {
		return
	}

	reservation, err = s.reservations.UpdateReservation(ctx, candidate)
	if err != nil {
		err = s.mapWriteError(ctx, candidate, err)
		return
	}
	return
}

// DeleteReservation removes a reservation.
func (s *ReservationService) DeleteReservation(ctx context.Context, id int64) error {
	if s == nil || s.reservations == nil {
		return fmt.Errorf("reservation repository not configured")
	}

	logger := s.loggerWith(ctx, "DeleteReservation", "reservation_id", id)
	if err := s.reservations.DeleteReservation(ctx, id); err != nil {
		err = mapReservationRepoError(err)
		logger.ErrorContext(ctx, "failed to delete reservation", "error", err, "error_kind", ErrorKind(err))
		return err
	}

	logger.InfoContext(ctx, "reservation deleted")
	return nil
}

// CheckAvailability reports whether a window is free for a room on a date.
// It is a dry run of the overlap predicate only: it does not check that the
// room exists and it never consults the exclusivity rule, so an "available"
// answer is not a promise that a particular coordinator may book the slot.
func (s *ReservationService) CheckAvailability(ctx context.Context, query AvailabilityQuery) (availability Availability, err error) {
	if s == nil || s.reservations == nil {
		return Availability{}, fmt.Errorf("reservation repository not configured")
	}

	logger := s.loggerWith(ctx, "CheckAvailability", "room_id", query.RoomID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to check availability", "error", err, "error_kind", ErrorKind(err))
		}
	}()

	var candidate Reservation
	candidate, err = s.normalizeAvailabilityQuery(query)
	if err != nil {
		return
	}

	var existing []Reservation
	existing, err = s.reservations.ListReservationsForRoomDate(ctx, candidate.RoomID, candidate.Date)
	if err != nil {
		return
	}

	_, conflict := booking.FindConflict(toBookingReservations(existing), toBookingReservation(candidate))
	availability = Availability{
		RoomID:    candidate.RoomID,
		Date:      candidate.Date,
		StartTime: candidate.StartTime,
		EndTime:   candidate.EndTime,
		Available: !conflict,
	}
	return
}

// authorize runs the existence and exclusivity checks in their fixed order.
func (s *ReservationService) authorize(ctx context.Context, candidate Reservation) error {
	if s.rooms == nil {
		return fmt.Errorf("room directory not configured")
	}

	room, err := s.rooms.GetRoom(ctx, candidate.RoomID)
	if err != nil {
		if errors.Is(err, ErrRoomNotFound) || errors.Is(err, persistence.ErrNotFound) {
			return ErrRoomNotFound
		}
		return err
	}

	if !room.Exclusive {
		return nil
	}

	if s.coordinators == nil {
		return fmt.Errorf("coordinator directory not configured")
	}
	coordinator, err := s.coordinators.GetCoordinator(ctx, candidate.CoordinatorID)
	if err != nil {
		if errors.Is(err, ErrCoordinatorNotFound) || errors.Is(err, persistence.ErrNotFound) {
			return ErrCoordinatorNotFound
		}
		return err
	}
	if coordinator.CourseID != room.CourseID {
		return ErrForbidden
	}
	return nil
}

func (s *ReservationService) ensureSlotFree(ctx context.Context, candidate Reservation) error {
	existing, err := s.reservations.ListReservationsForRoomDate(ctx, candidate.RoomID, candidate.Date)
	if err != nil {
		return err
	}
	if _, conflict := booking.FindConflict(toBookingReservations(existing), toBookingReservation(candidate)); conflict {
		return ErrConflict
	}
	return nil
}

// normalizeInput validates a reservation request and canonicalizes the date
// and times to their fixed-width layouts so the stored strings compare
// chronologically.
func (s *ReservationService) normalizeInput(input ReservationInput) (Reservation, error) {
	vErr := &ValidationError{}

	if input.RoomID <= 0 {
		vErr.add("sala_id", "room id is required")
	}
	if input.CoordinatorID <= 0 {
		vErr.add("coordenador_id", "coordinator id is required")
	}

	date, start, end := normalizeWindow(vErr, input.Date, input.StartTime, input.EndTime)

	reason := strings.TrimSpace(input.Reason)
	if reason == "" {
		vErr.add("motivo", "reason is required")
	} else if utf8.RuneCountInString(reason) > 100 {
		vErr.add("motivo", "reason must be at most 100 characters")
	}

	if vErr.HasErrors() {
		return Reservation{}, vErr
	}

	return Reservation{
		RoomID:        input.RoomID,
		CoordinatorID: input.CoordinatorID,
		Date:          date,
		StartTime:     start,
		EndTime:       end,
		Reason:        reason,
	}, nil
}

// normalizeAvailabilityQuery validates the dry-run parameters. Only the room
// id and the window are checked; the query carries no coordinator and no
// reason.
func (s *ReservationService) normalizeAvailabilityQuery(query AvailabilityQuery) (Reservation, error) {
	vErr := &ValidationError{}

	if query.RoomID <= 0 {
		vErr.add("sala_id", "room id is required")
	}
	date, start, end := normalizeWindow(vErr, query.Date, query.StartTime, query.EndTime)

	if vErr.HasErrors() {
		return Reservation{}, vErr
	}

	return Reservation{
		RoomID:    query.RoomID,
		Date:      date,
		StartTime: start,
		EndTime:   end,
	}, nil
}

// normalizeWindow canonicalizes a date and time pair, recording field errors
// on vErr for anything malformed or inverted.
func normalizeWindow(vErr *ValidationError, rawDate, rawStart, rawEnd string) (date, start, end string) {
	date, ok := normalizeDate(rawDate)
	if !ok {
		vErr.add("data_reserva", "date must use the YYYY-MM-DD format")
	}
	start, ok = normalizeTime(rawStart)
	if !ok {
		vErr.add("hora_inicio", "time must use the HH:MM:SS format")
	}
	end, ok = normalizeTime(rawEnd)
	if !ok {
		vErr.add("hora_fim", "time must use the HH:MM:SS format")
	}
	if start != "" && end != "" && start >= end {
		vErr.add("hora_fim", "end time must be after start time")
	}
	return date, start, end
}

func normalizeDate(value string) (string, bool) {
	parsed, err := time.Parse(dateLayout, strings.TrimSpace(value))
	if err != nil {
		return "", false
	}
	return parsed.Format(dateLayout), true
}

// normalizeTime accepts HH:MM:SS and the shorthand HH:MM, always returning
// the full fixed-width form.
func normalizeTime(value string) (string, bool) {
	trimmed := strings.TrimSpace(value)
	if parsed, err := time.Parse(timeLayout, trimmed); err == nil {
		return parsed.Format(timeLayout), true
	}
	if parsed, err := time.Parse("15:04", trimmed); err == nil {
		return parsed.Format(timeLayout), true
	}
	return "", false
}

func toBookingReservation(reservation Reservation) booking.Reservation {
	return booking.Reservation{
		ID:     reservation.ID,
		RoomID: reservation.RoomID,
		Slot: booking.Slot{
			Date:  reservation.Date,
			Start: reservation.StartTime,
			End:   reservation.EndTime,
		},
	}
}

func toBookingReservations(reservations []Reservation) []booking.Reservation {
	converted := make([]booking.Reservation, 0, len(reservations))
	for _, reservation := range reservations {
		converted = append(converted, toBookingReservation(reservation))
	}
	return converted
}

func mapReservationRepoError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, persistence.ErrNotFound):
		return ErrReservationNotFound
	case errors.Is(err, persistence.ErrConflict):
		return ErrConflict
	default:
		return err
	}
}

// mapWriteError resolves a failed insert or update. The store does not say
// which foreign key failed, so the room is looked up again: a room that
// vanished between the rule checks and the write is reported as missing,
// otherwise the coordinator reference must be the stale one.
func (s *ReservationService) mapWriteError(ctx context.Context, candidate Reservation, err error) error {
	if !errors.Is(err, persistence.ErrForeignKeyViolation) {
		return mapReservationRepoError(err)
	}
	if s.rooms != nil {
		if _, roomErr := s.rooms.GetRoom(ctx, candidate.RoomID); roomErr != nil {
			return ErrRoomNotFound
		}
	}
	return ErrCoordinatorNotFound
}
