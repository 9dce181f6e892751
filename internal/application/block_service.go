package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/example/campus-reservations/internal/persistence"
)

// BlockRepository captures the persistence operations needed by the service.
// UpdateBlock is expected to propagate the block's course to its rooms and
// DeleteBlock to cascade block -> rooms -> reservations.
type BlockRepository interface {
	CreateBlock(ctx context.Context, block Block) (Block, error)
	GetBlock(ctx context.Context, id int64) (Block, error)
	ListBlocks(ctx context.Context) ([]Block, error)
	UpdateBlock(ctx context.Context, block Block) (Block, error)
	DeleteBlock(ctx context.Context, id int64) error
}

// CourseDirectory exposes course existence lookups.
type CourseDirectory interface {
	CourseExists(ctx context.Context, id int64) (bool, error)
}

// BlockService orchestrates validation and persistence for blocks.
type BlockService struct {
	blocks  BlockRepository
	courses CourseDirectory
	logger  *slog.Logger
}

// NewBlockService constructs a block service with the provided dependencies.
func NewBlockService(blocks BlockRepository, courses CourseDirectory, logger *slog.Logger) *BlockService {
	return &BlockService{blocks: blocks, courses: courses, logger: defaultLogger(logger)}
}

func (s *BlockService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "BlockService", operation, attrs...)
}

// CreateBlock validates input, resolves the owning course, and persists a new
// block.
func (s *BlockService) CreateBlock(ctx context.Context, input BlockInput) (block Block, err error) {
	if s == nil || s.blocks == nil {
		return Block{}, fmt.Errorf("block repository not configured")
	}

	logger := s.loggerWith(ctx, "CreateBlock", "course_id", input.CourseID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create block", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("block_id", block.ID).InfoContext(ctx, "block created")
	}()

	vErr := validateBlockInput(input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	if err = s.ensureCourseExists(ctx, input.CourseID); err != nil {
		return
	}

	block, err = s.blocks.CreateBlock(ctx, Block{
		Name:     strings.TrimSpace(input.Name),
		CourseID: input.CourseID,
	})
	if err != nil {
		err = mapBlockRepoError(err)
		return
	}
	return
}

// GetBlock retrieves a block by id.
func (s *BlockService) GetBlock(ctx context.Context, id int64) (Block, error) {
	if s == nil || s.blocks == nil {
		return Block{}, fmt.Errorf("block repository not configured")
	}

	block, err := s.blocks.GetBlock(ctx, id)
	if err != nil {
		return Block{}, mapBlockRepoError(err)
	}
	return block, nil
}

// ListBlocks returns every block in store order.
func (s *BlockService) ListBlocks(ctx context.Context) ([]Block, error) {
	if s == nil || s.blocks == nil {
		return nil, fmt.Errorf("block repository not configured")
	}
	return s.blocks.ListBlocks(ctx)
}

// UpdateBlock validates input and replaces an existing block. Moving a block
// to another course also rewrites the denormalized course of its rooms; the
// repository performs both writes in one transaction.
func (s *BlockService) UpdateBlock(ctx context.Context, id int64, input BlockInput) (block Block, err error) {
	if s == nil || s.blocks == nil {
		return Block{}, fmt.Errorf("block repository not configured")
	}

	logger := s.loggerWith(ctx, "UpdateBlock", "block_id", id, "course_id", input.CourseID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update block", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "block updated")
	}()

	vErr := validateBlockInput(input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	var existing Block
	existing, err = s.blocks.GetBlock(ctx, id)
	if err != nil {
		err = mapBlockRepoError(err)
		return
	}

	if err = s.ensureCourseExists(ctx, input.CourseID); err != nil {
		return
	}

	existing.Name = strings.TrimSpace(input.Name)
	existing.CourseID = input.CourseID
	block, err = s.blocks.UpdateBlock(ctx, existing)
	if err != nil {
		err = mapBlockRepoError(err)
		return
	}
	return
}

// DeleteBlock removes a block together with its rooms and their reservations.
func (s *BlockService) DeleteBlock(ctx context.Context, id int64) error {
	if s == nil || s.blocks == nil {
		return fmt.Errorf("block repository not configured")
	}

	logger := s.loggerWith(ctx, "DeleteBlock", "block_id", id)
	if err := s.blocks.DeleteBlock(ctx, id); err != nil {
		err = mapBlockRepoError(err)
		logger.ErrorContext(ctx, "failed to delete block", "error", err, "error_kind", ErrorKind(err))
		return err
	}

	logger.InfoContext(ctx, "block deleted")
	return nil
}

func (s *BlockService) ensureCourseExists(ctx context.Context, courseID int64) error {
	if s.courses == nil {
		return nil
	}
	exists, err := s.courses.CourseExists(ctx, courseID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrCourseNotFound
	}
	return nil
}

func validateBlockInput(input BlockInput) *ValidationError {
	vErr := &ValidationError{}
	validateRequiredName(vErr, "nome", input.Name)
	if input.CourseID <= 0 {
		vErr.add("curso_id", "course id is required")
	}
	return vErr
}

func mapBlockRepoError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, persistence.ErrNotFound):
		return ErrBlockNotFound
	case errors.Is(err, persistence.ErrDuplicate):
		vErr := &ValidationError{}
		vErr.add("nome", "name already in use")
		return vErr
	case errors.Is(err, persistence.ErrForeignKeyViolation):
		return ErrCourseNotFound
	default:
		return err
	}
}
