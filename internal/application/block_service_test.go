package application

import (
	"context"
	"errors"
	"testing"

	"github.com/example/campus-reservations/internal/persistence"
)

type stubBlockRepo struct {
	blocks    map[int64]Block
	nextID    int64
	createErr error
	deleteErr error
}

func (s *stubBlockRepo) CreateBlock(_ context.Context, block Block) (Block, error) {
	if s.createErr != nil {
		return Block{}, s.createErr
	}
	s.nextID++
	block.ID = s.nextID
	if s.blocks == nil {
		s.blocks = make(map[int64]Block)
	}
	s.blocks[block.ID] = block
	return block, nil
}

func (s *stubBlockRepo) GetBlock(_ context.Context, id int64) (Block, error) {
	block, ok := s.blocks[id]
	if !ok {
		return Block{}, persistence.ErrNotFound
	}
	return block, nil
}

func (s *stubBlockRepo) ListBlocks(_ context.Context) ([]Block, error) {
	blocks := make([]Block, 0, len(s.blocks))
	for _, block := range s.blocks {
		blocks = append(blocks, block)
	}
	return blocks, nil
}

func (s *stubBlockRepo) UpdateBlock(_ context.Context, block Block) (Block, error) {
	if _, ok := s.blocks[block.ID]; !ok {
		return Block{}, persistence.ErrNotFound
	}
	s.blocks[block.ID] = block
	return block, nil
}

func (s *stubBlockRepo) DeleteBlock(_ context.Context, id int64) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	if _, ok := s.blocks[id]; !ok {
		return persistence.ErrNotFound
	}
	delete(s.blocks, id)
	return nil
}

func newBlockFixture() (*BlockService, *stubBlockRepo) {
	repo := &stubBlockRepo{}
	courses := &stubCourseDirectory{existing: map[int64]bool{10: true, 20: true}}
	return NewBlockService(repo, courses, nil), repo
}

func TestCreateBlock(t *testing.T) {
	t.Run("persists a block", func(t *testing.T) {
		service, _ := newBlockFixture()

		block, err := service.CreateBlock(context.Background(), BlockInput{Name: "Bloco A", CourseID: 10})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if block.ID == 0 {
			t.Fatal("expected a persisted id")
		}
	})

	t.Run("rejects a missing course", func(t *testing.T) {
		service, _ := newBlockFixture()

		if _, err := service.CreateBlock(context.Background(), BlockInput{Name: "Bloco A", CourseID: 99}); !errors.Is(err, ErrCourseNotFound) {
			t.Fatalf("expected ErrCourseNotFound, got %v", err)
		}
	})

	t.Run("rejects invalid fields", func(t *testing.T) {
		service, _ := newBlockFixture()

		_, err := service.CreateBlock(context.Background(), BlockInput{Name: " ", CourseID: 0})
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		for _, field := range []string{"nome", "curso_id"} {
			if _, ok := vErr.FieldErrors[field]; !ok {
				t.Errorf("expected a validation error for %q", field)
			}
		}
	})
}

func TestUpdateBlock(t *testing.T) {
	t.Run("moves a block to another course", func(t *testing.T) {
		service, _ := newBlockFixture()

		created, err := service.CreateBlock(context.Background(), BlockInput{Name: "Bloco A", CourseID: 10})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		updated, err := service.UpdateBlock(context.Background(), created.ID, BlockInput{Name: "Bloco A", CourseID: 20})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updated.CourseID != 20 {
			t.Fatalf("expected course 20, got %d", updated.CourseID)
		}
	})

	t.Run("rejects a missing block", func(t *testing.T) {
		service, _ := newBlockFixture()

		if _, err := service.UpdateBlock(context.Background(), 42, BlockInput{Name: "Bloco A", CourseID: 10}); !errors.Is(err, ErrBlockNotFound) {
			t.Fatalf("expected ErrBlockNotFound, got %v", err)
		}
	})
}

func TestDeleteBlock(t *testing.T) {
	service, repo := newBlockFixture()

	created, err := service.CreateBlock(context.Background(), BlockInput{Name: "Bloco B", CourseID: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := service.DeleteBlock(context.Background(), created.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.blocks) != 0 {
		t.Fatalf("expected block to be removed, %d left", len(repo.blocks))
	}

	if err := service.DeleteBlock(context.Background(), created.ID); !errors.Is(err, ErrBlockNotFound) {
		t.Fatalf("expected ErrBlockNotFound, got %v", err)
	}
}
