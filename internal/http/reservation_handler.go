package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/example/campus-reservations/internal/application"
)

type reservationService interface {
	CreateReservation(ctx context.Context, input application.ReservationInput) (application.Reservation, error)
	GetReservation(ctx context.Context, id int64) (application.Reservation, error)
	ListReservations(ctx context.Context) ([]application.Reservation, error)
	UpdateReservation(ctx context.Context, id int64, input application.ReservationInput) (application.Reservation, error)
	DeleteReservation(ctx context.Context, id int64) error
	CheckAvailability(ctx context.Context, query application.AvailabilityQuery) (application.Availability, error)
}

type ReservationHandler struct {
	service   reservationService
	responder responder
	logger    *slog.Logger
}

func NewReservationHandler(service reservationService, logger *slog.Logger) *ReservationHandler {
	base := defaultLogger(logger)
	return &ReservationHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *ReservationHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "ReservationHandler", operation, attrs...)
}

func (h *ReservationHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req reservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Create", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode reservation request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Create", "room_id", req.RoomID, "coordinator_id", req.CoordinatorID)

	reservation, err := h.service.CreateReservation(r.Context(), req.toInput())
	if err != nil {
		logger.ErrorContext(r.Context(), "reservation creation failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("reservation_id", reservation.ID).InfoContext(r.Context(), "reservation created")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, toReservationDTO(reservation))
}

func (h *ReservationHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := contextID(r.Context(), ReservationIDFromContext)
	if !ok {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidID)
		return
	}

	reservation, err := h.service.GetReservation(r.Context(), id)
	if err != nil {
		h.log(r.Context(), "Get", "reservation_id", id).ErrorContext(r.Context(), "reservation lookup failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, toReservationDTO(reservation))
}

func (h *ReservationHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	logger := h.log(r.Context(), "List")
	reservations, err := h.service.ListReservations(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "reservation list failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("result_count", len(reservations)).InfoContext(r.Context(), "reservations listed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, toReservationDTOs(reservations))
}

func (h *ReservationHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := contextID(r.Context(), ReservationIDFromContext)
	if !ok {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidID)
		return
	}

	var req reservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Update", "reservation_id", id, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode reservation update", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Update", "reservation_id", id)

	reservation, err := h.service.UpdateReservation(r.Context(), id, req.toInput())
	if err != nil {
		logger.ErrorContext(r.Context(), "reservation update failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "reservation updated")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, toReservationDTO(reservation))
}

func (h *ReservationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := contextID(r.Context(), ReservationIDFromContext)
	if !ok {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidID)
		return
	}

	logger := h.log(r.Context(), "Delete", "reservation_id", id)
	if err := h.service.DeleteReservation(r.Context(), id); err != nil {
		logger.ErrorContext(r.Context(), "reservation delete failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "reservation deleted")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, detailResponse{Detail: "Reserva deletada com sucesso"})
}

// CheckAvailability is a dry run of the overlap predicate: it answers whether
// the window is free without creating anything and without consulting the
// exclusivity rule. The query arrives as GET parameters
// (sala_id, data, hora_inicio, hora_fim); anything malformed falls through to
// the service's field validation.
func (h *ReservationHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	params := r.URL.Query()
	roomID, _ := strconv.ParseInt(strings.TrimSpace(params.Get("sala_id")), 10, 64)
	query := application.AvailabilityQuery{
		RoomID:    roomID,
		Date:      strings.TrimSpace(params.Get("data")),
		StartTime: strings.TrimSpace(params.Get("hora_inicio")),
		EndTime:   strings.TrimSpace(params.Get("hora_fim")),
	}

	logger := h.log(r.Context(), "CheckAvailability", "room_id", query.RoomID)

	availability, err := h.service.CheckAvailability(r.Context(), query)
	if err != nil {
		logger.ErrorContext(r.Context(), "availability check failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	message := "Erro: A sala já está reservada para esse horário!"
	if availability.Available {
		message = "Sala disponível para esse horário."
	}
	logger.With("available", availability.Available).InfoContext(r.Context(), "availability checked")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, availabilityDTO{
		Available: availability.Available,
		Message:   message,
	})
}

type reservationRequest struct {
	RoomID        int64  `json:"sala_id"`
	CoordinatorID int64  `json:"coordenador_id"`
	Date          string `json:"data_reserva"`
	StartTime     string `json:"hora_inicio"`
	EndTime       string `json:"hora_fim"`
	Reason        string `json:"motivo"`
}

func (r reservationRequest) toInput() application.ReservationInput {
	return application.ReservationInput{
		RoomID:        r.RoomID,
		CoordinatorID: r.CoordinatorID,
		Date:          strings.TrimSpace(r.Date),
		StartTime:     strings.TrimSpace(r.StartTime),
		EndTime:       strings.TrimSpace(r.EndTime),
		Reason:        strings.TrimSpace(r.Reason),
	}
}

type reservationDTO struct {
	ID            int64  `json:"id"`
	RoomID        int64  `json:"sala_id"`
	CoordinatorID int64  `json:"coordenador_id"`
	Date          string `json:"data_reserva"`
	StartTime     string `json:"hora_inicio"`
	EndTime       string `json:"hora_fim"`
	Reason        string `json:"motivo"`
}

type availabilityDTO struct {
	Available bool   `json:"disponivel"`
	Message   string `json:"mensagem"`
}

func toReservationDTO(reservation application.Reservation) reservationDTO {
	return reservationDTO{
		ID:            reservation.ID,
		RoomID:        reservation.RoomID,
		CoordinatorID: reservation.CoordinatorID,
		Date:          reservation.Date,
		StartTime:     reservation.StartTime,
		EndTime:       reservation.EndTime,
		Reason:        reservation.Reason,
	}
}

func toReservationDTOs(reservations []application.Reservation) []reservationDTO {
	out := make([]reservationDTO, 0, len(reservations))
	for _, reservation := range reservations {
		out = append(out, toReservationDTO(reservation))
	}
	return out
}
