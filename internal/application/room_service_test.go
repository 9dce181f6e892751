package application

import (
	"context"
	"errors"
	"testing"

	"github.com/example/campus-reservations/internal/persistence"
)

type stubRoomRepo struct {
	rooms     map[int64]Room
	nextID    int64
	deleteErr error
}

func (s *stubRoomRepo) CreateRoom(_ context.Context, room Room) (Room, error) {
	s.nextID++
	room.ID = s.nextID
	if s.rooms == nil {
		s.rooms = make(map[int64]Room)
	}
	s.rooms[room.ID] = room
	return room, nil
}

func (s *stubRoomRepo) GetRoom(_ context.Context, id int64) (Room, error) {
	room, ok := s.rooms[id]
	if !ok {
		return Room{}, persistence.ErrNotFound
	}
	return room, nil
}

func (s *stubRoomRepo) ListRooms(_ context.Context) ([]Room, error) {
	rooms := make([]Room, 0, len(s.rooms))
	for _, room := range s.rooms {
		rooms = append(rooms, room)
	}
	return rooms, nil
}

func (s *stubRoomRepo) UpdateRoom(_ context.Context, room Room) (Room, error) {
	if _, ok := s.rooms[room.ID]; !ok {
		return Room{}, persistence.ErrNotFound
	}
	s.rooms[room.ID] = room
	return room, nil
}

func (s *stubRoomRepo) DeleteRoom(_ context.Context, id int64) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	if _, ok := s.rooms[id]; !ok {
		return persistence.ErrNotFound
	}
	delete(s.rooms, id)
	return nil
}

type stubBlockDirectory struct {
	blocks map[int64]Block
}

func (s *stubBlockDirectory) GetBlock(_ context.Context, id int64) (Block, error) {
	block, ok := s.blocks[id]
	if !ok {
		return Block{}, ErrBlockNotFound
	}
	return block, nil
}

func newRoomFixture() (*RoomService, *stubRoomRepo) {
	repo := &stubRoomRepo{}
	blocks := &stubBlockDirectory{blocks: map[int64]Block{
		1: {ID: 1, Name: "Bloco A", CourseID: 10},
		2: {ID: 2, Name: "Bloco B", CourseID: 20},
	}}
	return NewRoomService(repo, blocks, nil), repo
}

func validRoomInput() RoomInput {
	return RoomInput{BlockID: 1, Number: 101, Capacity: 40, Resources: "projetor, quadro"}
}

func TestCreateRoom(t *testing.T) {
	t.Run("copies the block's course", func(t *testing.T) {
		service, _ := newRoomFixture()

		room, err := service.CreateRoom(context.Background(), validRoomInput())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if room.CourseID != 10 {
			t.Fatalf("expected course 10 from the block, got %d", room.CourseID)
		}
	})

	t.Run("rejects a missing block", func(t *testing.T) {
		service, _ := newRoomFixture()

		input := validRoomInput()
		input.BlockID = 99
		if _, err := service.CreateRoom(context.Background(), input); !errors.Is(err, ErrBlockNotFound) {
			t.Fatalf("expected ErrBlockNotFound, got %v", err)
		}
	})

	t.Run("rejects invalid fields", func(t *testing.T) {
		service, _ := newRoomFixture()

		_, err := service.CreateRoom(context.Background(), RoomInput{BlockID: 1, Number: 0, Capacity: -3, Resources: ""})
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		for _, field := range []string{"numero", "capacidade", "recursos"} {
			if _, ok := vErr.FieldErrors[field]; !ok {
				t.Errorf("expected a validation error for %q", field)
			}
		}
	})
}

func TestUpdateRoom(t *testing.T) {
	t.Run("re-derives the course when the block changes", func(t *testing.T) {
		service, _ := newRoomFixture()

		created, err := service.CreateRoom(context.Background(), validRoomInput())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		input := validRoomInput()
		input.BlockID = 2
		updated, err := service.UpdateRoom(context.Background(), created.ID, input)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updated.CourseID != 20 {
			t.Fatalf("expected course 20 from the new block, got %d", updated.CourseID)
		}
	})

	t.Run("rejects a missing room", func(t *testing.T) {
		service, _ := newRoomFixture()

		if _, err := service.UpdateRoom(context.Background(), 42, validRoomInput()); !errors.Is(err, ErrRoomNotFound) {
			t.Fatalf("expected ErrRoomNotFound, got %v", err)
		}
	})
}

func TestDeleteRoom(t *testing.T) {
	service, repo := newRoomFixture()

	created, err := service.CreateRoom(context.Background(), validRoomInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := service.DeleteRoom(context.Background(), created.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.rooms) != 0 {
		t.Fatalf("expected room to be removed, %d left", len(repo.rooms))
	}

	if err := service.DeleteRoom(context.Background(), created.ID); !errors.Is(err, ErrRoomNotFound) {
		t.Fatalf("expected ErrRoomNotFound, got %v", err)
	}
}
