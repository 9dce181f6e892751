package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/example/campus-reservations/internal/application"
)

var (
	errBadRequestBody = errors.New("Formato de requisição inválido.")
	errInvalidID      = errors.New("Identificador inválido.")
)

type responder struct {
	logger *slog.Logger
}

func newResponder(logger *slog.Logger) responder {
	if logger == nil {
		logger = slog.Default()
	}
	return responder{logger: logger}
}

func (r responder) writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}

	if status == http.StatusNoContent || payload == nil {
		w.WriteHeader(status)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		r.loggerFor(ctx).ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

func (r responder) writeError(ctx context.Context, w http.ResponseWriter, status int, err error) {
	message := statusMessage(status)
	if err != nil {
		if msg := strings.TrimSpace(err.Error()); msg != "" {
			message = msg
		}
		r.loggerFor(ctx).ErrorContext(ctx, "request failed", "status", status, "error", err)
	}

	r.writeJSON(ctx, w, status, detailResponse{Detail: message})
}

// handleServiceError translates application sentinels into the HTTP surface.
// Conflicts and duplicate emails answer 400 rather than 409: callers are
// ordinary web forms and treat any 4xx the same way, so the surface keeps
// the original contract.
func (r responder) handleServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	if err == nil {
		r.writeError(ctx, w, http.StatusInternalServerError, errors.New("unknown error"))
		return
	}

	switch {
	case errors.Is(err, application.ErrCourseNotFound):
		r.writeJSON(ctx, w, http.StatusNotFound, detailResponse{Detail: "Curso não encontrado"})
	case errors.Is(err, application.ErrBlockNotFound):
		r.writeJSON(ctx, w, http.StatusNotFound, detailResponse{Detail: "Bloco não encontrado"})
	case errors.Is(err, application.ErrRoomNotFound):
		r.writeJSON(ctx, w, http.StatusNotFound, detailResponse{Detail: "Sala não encontrada"})
	case errors.Is(err, application.ErrCoordinatorNotFound):
		r.writeJSON(ctx, w, http.StatusNotFound, detailResponse{Detail: "Coordenador não encontrado"})
	case errors.Is(err, application.ErrReservationNotFound):
		r.writeJSON(ctx, w, http.StatusNotFound, detailResponse{Detail: "Reserva não encontrada"})
	case errors.Is(err, application.ErrForbidden):
		r.writeJSON(ctx, w, http.StatusForbidden, detailResponse{Detail: "Erro: Coordenador não possui permissão para reservar essa sala/laboratório."})
	case errors.Is(err, application.ErrConflict):
		r.writeJSON(ctx, w, http.StatusBadRequest, detailResponse{Detail: "Erro: A sala já está reservada para esse horário!"})
	case errors.Is(err, application.ErrDuplicateEmail):
		r.writeJSON(ctx, w, http.StatusBadRequest, detailResponse{Detail: "Erro: Email já cadastrado!"})
	case errors.Is(err, application.ErrReferenced):
		r.writeJSON(ctx, w, http.StatusBadRequest, detailResponse{Detail: "Erro: Registro em uso não pode ser removido."})
	default:
		var vErr *application.ValidationError
		if errors.As(err, &vErr) {
			r.writeJSON(ctx, w, http.StatusUnprocessableEntity, validationResponse{
				Detail: "Dados inválidos.",
				Errors: localizeValidationErrors(vErr),
			})
			return
		}

		r.writeJSON(ctx, w, http.StatusInternalServerError, detailResponse{Detail: "Erro interno do servidor."})
	}
}

func (r responder) loggerFor(ctx context.Context) *slog.Logger {
	if logger := LoggerFromContext(ctx); logger != nil {
		return logger
	}
	return r.logger
}

func statusMessage(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "Requisição inválida."
	case http.StatusNotFound:
		return "Recurso não encontrado."
	case http.StatusForbidden:
		return "Operação não permitida."
	case http.StatusUnprocessableEntity:
		return "Dados inválidos."
	default:
		return "Erro interno do servidor."
	}
}

func localizeValidationErrors(vErr *application.ValidationError) map[string]string {
	if vErr == nil || len(vErr.FieldErrors) == 0 {
		return nil
	}

	translated := make(map[string]string, len(vErr.FieldErrors))
	for field, msg := range vErr.FieldErrors {
		translated[field] = translateValidationMessage(msg)
	}
	return translated
}

func translateValidationMessage(message string) string {
	switch message {
	case "name is required":
		return "O nome é obrigatório."
	case "name must be at most 100 characters":
		return "O nome deve ter no máximo 100 caracteres."
	case "name already in use":
		return "Erro: Nome já cadastrado!"
	case "course id is required":
		return "O curso é obrigatório."
	case "block id is required":
		return "O bloco é obrigatório."
	case "room id is required":
		return "A sala é obrigatória."
	case "coordinator id is required":
		return "O coordenador é obrigatório."
	case "number must be positive":
		return "O número deve ser um inteiro positivo."
	case "capacity must be positive":
		return "A capacidade deve ser um inteiro positivo."
	case "resources are required":
		return "Os recursos são obrigatórios."
	case "resources must be at most 100 characters":
		return "Os recursos devem ter no máximo 100 caracteres."
	case "email is required":
		return "O email é obrigatório."
	case "email is invalid":
		return "O email é inválido."
	case "email must be at most 100 characters":
		return "O email deve ter no máximo 100 caracteres."
	case "password is required":
		return "A senha é obrigatória."
	case "date must use the YYYY-MM-DD format":
		return "A data deve usar o formato AAAA-MM-DD."
	case "time must use the HH:MM:SS format":
		return "O horário deve usar o formato HH:MM:SS."
	case "end time must be after start time":
		return "O horário final deve ser posterior ao inicial."
	case "reason is required":
		return "O motivo é obrigatório."
	case "reason must be at most 100 characters":
		return "O motivo deve ter no máximo 100 caracteres."
	default:
		return message
	}
}

type detailResponse struct {
	Detail string `json:"detail"`
}

type validationResponse struct {
	Detail string            `json:"detail"`
	Errors map[string]string `json:"errors,omitempty"`
}
