package main

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/example/campus-reservations/internal/application"
	"github.com/example/campus-reservations/internal/persistence/sqlite"
)

// newServiceStack wires the services exactly the way main does, backed by a
// temporary database.
func newServiceStack(t *testing.T) (*application.CourseService, *application.BlockService, *application.RoomService, *application.CoordinatorService, *application.ReservationService) {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "reservas.db") + "?_pragma=foreign_keys(1)"
	pool, err := sqlite.NewConnectionPool(dsn)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = pool.Close() })

	if err := pool.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to apply migrations: %v", err)
	}

	courseRepo := newCourseRepositoryAdapter(sqlite.NewCourseRepository(pool))
	blockRepo := newBlockRepositoryAdapter(sqlite.NewBlockRepository(pool))
	roomRepo := newRoomRepositoryAdapter(sqlite.NewRoomRepository(pool))
	coordinatorRepo := newCoordinatorRepositoryAdapter(sqlite.NewCoordinatorRepository(pool))
	reservationRepo := newReservationRepositoryAdapter(sqlite.NewReservationRepository(pool))

	hasher := application.NewArgon2idHasher()

	courseService := application.NewCourseService(courseRepo, nil)
	blockService := application.NewBlockService(blockRepo, courseRepo, nil)
	roomService := application.NewRoomService(roomRepo, blockService, nil)
	coordinatorService := application.NewCoordinatorService(coordinatorRepo, courseRepo, hasher, nil)
	reservationService := application.NewReservationService(reservationRepo, roomService, coordinatorService, nil)

	return courseService, blockService, roomService, coordinatorService, reservationService
}

func TestWiringEndToEnd(t *testing.T) {
	courses, blocks, rooms, coordinators, reservations := newServiceStack(t)
	ctx := context.Background()

	course, err := courses.CreateCourse(ctx, application.CourseInput{Name: "Engenharia de Software"})
	if err != nil {
		t.Fatalf("failed to create course: %v", err)
	}

	block, err := blocks.CreateBlock(ctx, application.BlockInput{Name: "Bloco A", CourseID: course.ID})
	if err != nil {
		t.Fatalf("failed to create block: %v", err)
	}

	room, err := rooms.CreateRoom(ctx, application.RoomInput{
		BlockID:   block.ID,
		Number:    101,
		Capacity:  40,
		Resources: "projetor, quadro",
		Exclusive: true,
	})
	if err != nil {
		t.Fatalf("failed to create room: %v", err)
	}
	if room.CourseID != course.ID {
		t.Fatalf("expected room to inherit course %d, got %d", course.ID, room.CourseID)
	}

	coordinator, err := coordinators.CreateCoordinator(ctx, application.CoordinatorInput{
		CourseID: course.ID,
		Name:     "Ana Souza",
		Email:    "ana@campus.edu",
		Password: "s3nh4-f0rte",
	})
	if err != nil {
		t.Fatalf("failed to create coordinator: %v", err)
	}

	reservation, err := reservations.CreateReservation(ctx, application.ReservationInput{
		RoomID:        room.ID,
		CoordinatorID: coordinator.ID,
		Date:          "2026-09-01",
		StartTime:     "09:00:00",
		EndTime:       "10:00:00",
		Reason:        "aula inaugural",
	})
	if err != nil {
		t.Fatalf("failed to create reservation: %v", err)
	}
	if reservation.ID == 0 {
		t.Fatal("expected a persisted reservation id")
	}

	// The same window must now be rejected, both by the service rules and by
	// the store's transactional guard.
	_, err = reservations.CreateReservation(ctx, application.ReservationInput{
		RoomID:        room.ID,
		CoordinatorID: coordinator.ID,
		Date:          "2026-09-01",
		StartTime:     "09:30:00",
		EndTime:       "10:30:00",
		Reason:        "reuniao",
	})
	if !errors.Is(err, application.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	availability, err := reservations.CheckAvailability(ctx, application.AvailabilityQuery{
		RoomID:    room.ID,
		Date:      "2026-09-01",
		StartTime: "10:00:00",
		EndTime:   "11:00:00",
	})
	if err != nil {
		t.Fatalf("failed to check availability: %v", err)
	}
	if !availability.Available {
		t.Fatal("expected the back-to-back window to be available")
	}
}

func TestWiringExclusivityDenial(t *testing.T) {
	courses, blocks, rooms, coordinators, reservations := newServiceStack(t)
	ctx := context.Background()

	owner, err := courses.CreateCourse(ctx, application.CourseInput{Name: "Medicina"})
	if err != nil {
		t.Fatalf("failed to create course: %v", err)
	}
	other, err := courses.CreateCourse(ctx, application.CourseInput{Name: "Direito"})
	if err != nil {
		t.Fatalf("failed to create course: %v", err)
	}

	block, err := blocks.CreateBlock(ctx, application.BlockInput{Name: "Bloco C", CourseID: owner.ID})
	if err != nil {
		t.Fatalf("failed to create block: %v", err)
	}

	lab, err := rooms.CreateRoom(ctx, application.RoomInput{
		BlockID:   block.ID,
		Number:    201,
		Capacity:  20,
		Resources: "bancadas",
		Exclusive: true,
	})
	if err != nil {
		t.Fatalf("failed to create room: %v", err)
	}

	outsider, err := coordinators.CreateCoordinator(ctx, application.CoordinatorInput{
		CourseID: other.ID,
		Name:     "Bruno Lima",
		Email:    "bruno@campus.edu",
		Password: "outra-senha",
	})
	if err != nil {
		t.Fatalf("failed to create coordinator: %v", err)
	}

	_, err = reservations.CreateReservation(ctx, application.ReservationInput{
		RoomID:        lab.ID,
		CoordinatorID: outsider.ID,
		Date:          "2026-09-01",
		StartTime:     "14:00:00",
		EndTime:       "15:00:00",
		Reason:        "aula pratica",
	})
	if !errors.Is(err, application.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
