package testfixtures

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/example/campus-reservations/internal/persistence"
	"github.com/example/campus-reservations/internal/persistence/sqlite"
)

// SQLiteHarness provides repository access backed by a temporary SQLite
// database for integration-style persistence tests.
type SQLiteHarness struct {
	Pool         *sqlite.ConnectionPool
	Courses      persistence.CourseRepository
	Blocks       persistence.BlockRepository
	Rooms        persistence.RoomRepository
	Coordinators persistence.CoordinatorRepository
	Reservations persistence.ReservationRepository

	cleanup func()
}

// Close releases resources associated with the harness.
func (h *SQLiteHarness) Close() {
	if h != nil && h.cleanup != nil {
		h.cleanup()
		h.cleanup = nil
	}
}

// NewSQLiteHarness constructs a SQLiteHarness using a temporary file that is
// migrated automatically. Callers may optionally invoke Close, but the helper
// also registers a cleanup callback with the provided testing.TB.
func NewSQLiteHarness(tb testing.TB) *SQLiteHarness {
	tb.Helper()

	dir := tb.TempDir()
	dsn := "file:" + filepath.Join(dir, "reservas.db") + "?_pragma=foreign_keys(1)"

	pool, err := sqlite.NewConnectionPool(dsn)
	if err != nil {
		tb.Fatalf("failed to open database: %v", err)
	}

	if err := pool.Migrate(context.Background()); err != nil {
		_ = pool.Close()
		tb.Fatalf("failed to migrate database: %v", err)
	}

	harness := &SQLiteHarness{
		Pool:         pool,
		Courses:      sqlite.NewCourseRepository(pool),
		Blocks:       sqlite.NewBlockRepository(pool),
		Rooms:        sqlite.NewRoomRepository(pool),
		Coordinators: sqlite.NewCoordinatorRepository(pool),
		Reservations: sqlite.NewReservationRepository(pool),
		cleanup: func() {
			_ = pool.Close()
		},
	}

	tb.Cleanup(harness.Close)
	return harness
}

// SeedHierarchy inserts a course, block, room, and coordinator and returns
// the persisted records. Repository tests use it to satisfy foreign keys
// without repeating the full setup.
func (h *SQLiteHarness) SeedHierarchy(tb testing.TB, exclusive bool) (persistence.Course, persistence.Block, persistence.Room, persistence.Coordinator) {
	tb.Helper()
	ctx := context.Background()

	course, err := h.Courses.CreateCourse(ctx, persistence.Course{Name: NewCourseFixture().Name})
	if err != nil {
		tb.Fatalf("failed to seed course: %v", err)
	}

	block, err := h.Blocks.CreateBlock(ctx, persistence.Block{Name: NewBlockFixture().Name, CourseID: course.ID})
	if err != nil {
		tb.Fatalf("failed to seed block: %v", err)
	}

	roomFixture := NewRoomFixture(WithRoomBlockID(block.ID), WithRoomCourseID(course.ID), WithRoomExclusive(exclusive))
	room, err := h.Rooms.CreateRoom(ctx, persistence.Room{
		BlockID:   block.ID,
		CourseID:  course.ID,
		Number:    roomFixture.Number,
		Capacity:  roomFixture.Capacity,
		Resources: roomFixture.Resources,
		Exclusive: exclusive,
	})
	if err != nil {
		tb.Fatalf("failed to seed room: %v", err)
	}

	coordinatorFixture := NewCoordinatorFixture(WithCoordinatorCourseID(course.ID))
	coordinator, err := h.Coordinators.CreateCoordinator(ctx, persistence.Coordinator{
		CourseID:     course.ID,
		Name:         coordinatorFixture.Name,
		Email:        coordinatorFixture.Email,
		PasswordHash: coordinatorFixture.PasswordHash,
	})
	if err != nil {
		tb.Fatalf("failed to seed coordinator: %v", err)
	}

	return course, block, room, coordinator
}
