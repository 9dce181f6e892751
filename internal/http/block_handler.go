package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/example/campus-reservations/internal/application"
)

type blockService interface {
	CreateBlock(ctx context.Context, input application.BlockInput) (application.Block, error)
	GetBlock(ctx context.Context, id int64) (application.Block, error)
	ListBlocks(ctx context.Context) ([]application.Block, error)
	UpdateBlock(ctx context.Context, id int64, input application.BlockInput) (application.Block, error)
	DeleteBlock(ctx context.Context, id int64) error
}

type BlockHandler struct {
	service   blockService
	responder responder
	logger    *slog.Logger
}

func NewBlockHandler(service blockService, logger *slog.Logger) *BlockHandler {
	base := defaultLogger(logger)
	return &BlockHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *BlockHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "BlockHandler", operation, attrs...)
}

func (h *BlockHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req blockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Create", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode block request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Create", "course_id", req.CourseID)

	block, err := h.service.CreateBlock(r.Context(), req.toInput())
	if err != nil {
		logger.ErrorContext(r.Context(), "block creation failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("block_id", block.ID).InfoContext(r.Context(), "block created")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, toBlockDTO(block))
}

func (h *BlockHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := contextID(r.Context(), BlockIDFromContext)
	if !ok {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidID)
		return
	}

	block, err := h.service.GetBlock(r.Context(), id)
	if err != nil {
		h.log(r.Context(), "Get", "block_id", id).ErrorContext(r.Context(), "block lookup failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, toBlockDTO(block))
}

func (h *BlockHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	logger := h.log(r.Context(), "List")
	blocks, err := h.service.ListBlocks(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "block list failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("result_count", len(blocks)).InfoContext(r.Context(), "blocks listed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, toBlockDTOs(blocks))
}

func (h *BlockHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := contextID(r.Context(), BlockIDFromContext)
	if !ok {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidID)
		return
	}

	var req blockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Update", "block_id", id, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode block update", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Update", "block_id", id)

	block, err := h.service.UpdateBlock(r.Context(), id, req.toInput())
	if err != nil {
		logger.ErrorContext(r.Context(), "block update failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "block updated")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, toBlockDTO(block))
}

func (h *BlockHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := contextID(r.Context(), BlockIDFromContext)
	if !ok {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidID)
		return
	}

	logger := h.log(r.Context(), "Delete", "block_id", id)
	if err := h.service.DeleteBlock(r.Context(), id); err != nil {
		logger.ErrorContext(r.Context(), "block delete failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "block deleted")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, detailResponse{Detail: "Bloco deletado com sucesso"})
}

type blockRequest struct {
	Name     string `json:"nome"`
	CourseID int64  `json:"curso_id"`
}

func (r blockRequest) toInput() application.BlockInput {
	return application.BlockInput{Name: strings.TrimSpace(r.Name), CourseID: r.CourseID}
}

type blockDTO struct {
	ID       int64  `json:"id"`
	Name     string `json:"nome"`
	CourseID int64  `json:"curso_id"`
}

func toBlockDTO(block application.Block) blockDTO {
	return blockDTO{ID: block.ID, Name: block.Name, CourseID: block.CourseID}
}

func toBlockDTOs(blocks []application.Block) []blockDTO {
	out := make([]blockDTO, 0, len(blocks))
	for _, block := range blocks {
		out = append(out, toBlockDTO(block))
	}
	return out
}
