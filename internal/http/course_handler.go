package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/example/campus-reservations/internal/application"
)

type courseService interface {
	CreateCourse(ctx context.Context, input application.CourseInput) (application.Course, error)
	GetCourse(ctx context.Context, id int64) (application.Course, error)
	ListCourses(ctx context.Context) ([]application.Course, error)
	UpdateCourse(ctx context.Context, id int64, input application.CourseInput) (application.Course, error)
	DeleteCourse(ctx context.Context, id int64) error
}

type CourseHandler struct {
	service   courseService
	responder responder
	logger    *slog.Logger
}

func NewCourseHandler(service courseService, logger *slog.Logger) *CourseHandler {
	base := defaultLogger(logger)
	return &CourseHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *CourseHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "CourseHandler", operation, attrs...)
}

func (h *CourseHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req courseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Create", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode course request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Create")

	course, err := h.service.CreateCourse(r.Context(), req.toInput())
	if err != nil {
		logger.ErrorContext(r.Context(), "course creation failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("course_id", course.ID).InfoContext(r.Context(), "course created")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, toCourseDTO(course))
}

func (h *CourseHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := contextID(r.Context(), CourseIDFromContext)
	if !ok {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidID)
		return
	}

	course, err := h.service.GetCourse(r.Context(), id)
	if err != nil {
		h.log(r.Context(), "Get", "course_id", id).ErrorContext(r.Context(), "course lookup failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, toCourseDTO(course))
}

func (h *CourseHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	logger := h.log(r.Context(), "List")
	courses, err := h.service.ListCourses(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "course list failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("result_count", len(courses)).InfoContext(r.Context(), "courses listed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, toCourseDTOs(courses))
}

func (h *CourseHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := contextID(r.Context(), CourseIDFromContext)
	if !ok {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidID)
		return
	}

	var req courseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Update", "course_id", id, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode course update", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Update", "course_id", id)

	course, err := h.service.UpdateCourse(r.Context(), id, req.toInput())
	if err != nil {
		logger.ErrorContext(r.Context(), "course update failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "course updated")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, toCourseDTO(course))
}

func (h *CourseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := contextID(r.Context(), CourseIDFromContext)
	if !ok {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidID)
		return
	}

	logger := h.log(r.Context(), "Delete", "course_id", id)
	if err := h.service.DeleteCourse(r.Context(), id); err != nil {
		logger.ErrorContext(r.Context(), "course delete failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "course deleted")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, detailResponse{Detail: "Curso deletado com sucesso"})
}

type courseRequest struct {
	Name string `json:"nome"`
}

func (r courseRequest) toInput() application.CourseInput {
	return application.CourseInput{Name: strings.TrimSpace(r.Name)}
}

type courseDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"nome"`
}

func toCourseDTO(course application.Course) courseDTO {
	return courseDTO{ID: course.ID, Name: course.Name}
}

func toCourseDTOs(courses []application.Course) []courseDTO {
	out := make([]courseDTO, 0, len(courses))
	for _, course := range courses {
		out = append(out, toCourseDTO(course))
	}
	return out
}
