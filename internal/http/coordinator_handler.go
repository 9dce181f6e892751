package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/example/campus-reservations/internal/application"
)

type coordinatorService interface {
	CreateCoordinator(ctx context.Context, input application.CoordinatorInput) (application.Coordinator, error)
	GetCoordinator(ctx context.Context, id int64) (application.Coordinator, error)
	ListCoordinators(ctx context.Context) ([]application.Coordinator, error)
	UpdateCoordinator(ctx context.Context, id int64, input application.CoordinatorInput) (application.Coordinator, error)
	DeleteCoordinator(ctx context.Context, id int64) error
}

type CoordinatorHandler struct {
	service   coordinatorService
	responder responder
	logger    *slog.Logger
}

func NewCoordinatorHandler(service coordinatorService, logger *slog.Logger) *CoordinatorHandler {
	base := defaultLogger(logger)
	return &CoordinatorHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *CoordinatorHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "CoordinatorHandler", operation, attrs...)
}

func (h *CoordinatorHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req coordinatorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Create", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode coordinator request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Create", "course_id", req.CourseID)

	coordinator, err := h.service.CreateCoordinator(r.Context(), req.toInput())
	if err != nil {
		logger.ErrorContext(r.Context(), "coordinator creation failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("coordinator_id", coordinator.ID).InfoContext(r.Context(), "coordinator created")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, toCoordinatorDTO(coordinator))
}

func (h *CoordinatorHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := contextID(r.Context(), CoordinatorIDFromContext)
	if !ok {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidID)
		return
	}

	coordinator, err := h.service.GetCoordinator(r.Context(), id)
	if err != nil {
		h.log(r.Context(), "Get", "coordinator_id", id).ErrorContext(r.Context(), "coordinator lookup failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, toCoordinatorDTO(coordinator))
}

func (h *CoordinatorHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	logger := h.log(r.Context(), "List")
	coordinators, err := h.service.ListCoordinators(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "coordinator list failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("result_count", len(coordinators)).InfoContext(r.Context(), "coordinators listed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, toCoordinatorDTOs(coordinators))
}

func (h *CoordinatorHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := contextID(r.Context(), CoordinatorIDFromContext)
	if !ok {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidID)
		return
	}

	var req coordinatorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Update", "coordinator_id", id, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode coordinator update", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Update", "coordinator_id", id)

	coordinator, err := h.service.UpdateCoordinator(r.Context(), id, req.toInput())
	if err != nil {
		logger.ErrorContext(r.Context(), "coordinator update failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "coordinator updated")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, toCoordinatorDTO(coordinator))
}

func (h *CoordinatorHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := contextID(r.Context(), CoordinatorIDFromContext)
	if !ok {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidID)
		return
	}

	logger := h.log(r.Context(), "Delete", "coordinator_id", id)
	if err := h.service.DeleteCoordinator(r.Context(), id); err != nil {
		logger.ErrorContext(r.Context(), "coordinator delete failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "coordinator deleted")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, detailResponse{Detail: "Coordenador deletado com sucesso"})
}

type coordinatorRequest struct {
	CourseID int64  `json:"curso_id"`
	Name     string `json:"nome"`
	Email    string `json:"email"`
	Password string `json:"senha"`
}

func (r coordinatorRequest) toInput() application.CoordinatorInput {
	return application.CoordinatorInput{
		CourseID: r.CourseID,
		Name:     strings.TrimSpace(r.Name),
		Email:    strings.TrimSpace(r.Email),
		Password: r.Password,
	}
}

// coordinatorDTO never carries the password hash.
type coordinatorDTO struct {
	ID       int64  `json:"id"`
	CourseID int64  `json:"curso_id"`
	Name     string `json:"nome"`
	Email    string `json:"email"`
}

func toCoordinatorDTO(coordinator application.Coordinator) coordinatorDTO {
	return coordinatorDTO{
		ID:       coordinator.ID,
		CourseID: coordinator.CourseID,
		Name:     coordinator.Name,
		Email:    coordinator.Email,
	}
}

func toCoordinatorDTOs(coordinators []application.Coordinator) []coordinatorDTO {
	out := make([]coordinatorDTO, 0, len(coordinators))
	for _, coordinator := range coordinators {
		out = append(out, toCoordinatorDTO(coordinator))
	}
	return out
}
