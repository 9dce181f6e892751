package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/example/campus-reservations/internal/persistence"
)

// RoomRepository captures the persistence operations needed by the service.
// DeleteRoom is expected to cascade to the room's reservations.
type RoomRepository interface {
	CreateRoom(ctx context.Context, room Room) (Room, error)
	GetRoom(ctx context.Context, id int64) (Room, error)
	ListRooms(ctx context.Context) ([]Room, error)
	UpdateRoom(ctx context.Context, room Room) (Room, error)
	DeleteRoom(ctx context.Context, id int64) error
}

// BlockDirectory exposes block lookups used to resolve room ownership.
type BlockDirectory interface {
	GetBlock(ctx context.Context, id int64) (Block, error)
}

// RoomService orchestrates validation and persistence for rooms. Every
// create and update resolves the referenced block and copies its course id
// into the room, so the denormalized field never drifts.
type RoomService struct {
	rooms  RoomRepository
	blocks BlockDirectory
	logger *slog.Logger
}

// NewRoomService constructs a room service with the provided dependencies.
func NewRoomService(rooms RoomRepository, blocks BlockDirectory, logger *slog.Logger) *RoomService {
	return &RoomService{rooms: rooms, blocks: blocks, logger: defaultLogger(logger)}
}

func (s *RoomService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "RoomService", operation, attrs...)
}

// CreateRoom validates input, resolves the owning block, and persists a new
// room carrying the block's course id.
func (s *RoomService) CreateRoom(ctx context.Context, input RoomInput) (room Room, err error) {
	if s == nil || s.rooms == nil {
		return Room{}, fmt.Errorf("room repository not configured")
	}

	logger := s.loggerWith(ctx, "CreateRoom", "block_id", input.BlockID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create room", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("room_id", room.ID).InfoContext(ctx, "room created")
	}()

	vErr := validateRoomInput(input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	var block Block
	block, err = s.resolveBlock(ctx, input.BlockID)
	if err != nil {
		return
	}

	room, err = s.rooms.CreateRoom(ctx, Room{
		BlockID:   input.BlockID,
		CourseID:  block.CourseID,
		Number:    input.Number,
		Capacity:  input.Capacity,
		Resources: strings.TrimSpace(input.Resources),
		Exclusive: input.Exclusive,
	})
	if err != nil {
		err = mapRoomRepoError(err)
		return
	}
	return
}

// GetRoom retrieves a room by id.
func (s *RoomService) GetRoom(ctx context.Context, id int64) (Room, error) {
	if s == nil || s.rooms == nil {
		return Room{}, fmt.Errorf("room repository not configured")
	}

	room, err := s.rooms.GetRoom(ctx, id)
	if err != nil {
		return Room{}, mapRoomRepoError(err)
	}
	return room, nil
}

// ListRooms returns every room in store order.
func (s *RoomService) ListRooms(ctx context.Context) ([]Room, error) {
	if s == nil || s.rooms == nil {
		return nil, fmt.Errorf("room repository not configured")
	}
	return s.rooms.ListRooms(ctx)
}

// UpdateRoom validates input and replaces an existing room, re-deriving the
// course id from the (possibly new) block.
func (s *RoomService) UpdateRoom(ctx context.Context, id int64, input RoomInput) (room Room, err error) {
	if s == nil || s.rooms == nil {
		return Room{}, fmt.Errorf("room repository not configured")
	}

	logger := s.loggerWith(ctx, "UpdateRoom", "room_id", id, "block_id", input.BlockID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update room", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "room updated")
	}()

	vErr := validateRoomInput(input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	var block Block
	block, err = s.resolveBlock(ctx, input.BlockID)
	if err != nil {
		return
	}

	var existing Room
	existing, err = s.rooms.GetRoom(ctx, id)
	if err != nil {
		err = mapRoomRepoError(err)
		return
	}

	existing.BlockID = input.BlockID
	existing.CourseID = block.CourseID
	existing.Number = input.Number
	existing.Capacity = input.Capacity
	existing.Resources = strings.TrimSpace(input.Resources)
	existing.Exclusive = input.Exclusive

	room, err = s.rooms.UpdateRoom(ctx, existing)
	if err != nil {
		err = mapRoomRepoError(err)
		return
	}
	return
}

// DeleteRoom removes a room together with its reservations.
func (s *RoomService) DeleteRoom(ctx context.Context, id int64) error {
	if s == nil || s.rooms == nil {
		return fmt.Errorf("room repository not configured")
	}

	logger := s.loggerWith(ctx, "DeleteRoom", "room_id", id)
	if err := s.rooms.DeleteRoom(ctx, id); err != nil {
		err = mapRoomRepoError(err)
		logger.ErrorContext(ctx, "failed to delete room", "error", err, "error_kind", ErrorKind(err))
		return err
	}

	logger.InfoContext(ctx, "room deleted")
	return nil
}

func (s *RoomService) resolveBlock(ctx context.Context, blockID int64) (Block, error) {
	if s.blocks == nil {
		return Block{}, fmt.Errorf("block directory not configured")
	}
	block, err := s.blocks.GetBlock(ctx, blockID)
	if err != nil {
		if errors.Is(err, ErrBlockNotFound) || errors.Is(err, persistence.ErrNotFound) {
			return Block{}, ErrBlockNotFound
		}
		return Block{}, err
	}
	return block, nil
}

func validateRoomInput(input RoomInput) *ValidationError {
	vErr := &ValidationError{}

	if input.BlockID <= 0 {
		vErr.add("bloco_id", "block id is required")
	}
	if input.Number <= 0 {
		vErr.add("numero", "number must be positive")
	}
	if input.Capacity <= 0 {
		vErr.add("capacidade", "capacity must be positive")
	}
	if strings.TrimSpace(input.Resources) == "" {
		vErr.add("recursos", "resources are required")
	} else if utf8.RuneCountInString(strings.TrimSpace(input.Resources)) > 100 {
		vErr.add("recursos", "resources must be at most 100 characters")
	}

	return vErr
}

func mapRoomRepoError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, persistence.ErrNotFound):
		return ErrRoomNotFound
	case errors.Is(err, persistence.ErrForeignKeyViolation):
		return ErrBlockNotFound
	case errors.Is(err, persistence.ErrConstraintViolation):
		vErr := &ValidationError{}
		vErr.add("capacidade", "capacity must be positive")
		return vErr
	default:
		return err
	}
}
