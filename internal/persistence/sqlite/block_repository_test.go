package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/campus-reservations/internal/persistence"
	"github.com/example/campus-reservations/internal/testfixtures"
)

func TestBlockRepositoryUpdatePropagatesCourse(t *testing.T) {
	harness := testfixtures.NewSQLiteHarness(t)
	_, block, room, _ := harness.SeedHierarchy(t, false)
	ctx := context.Background()

	otherCourse, err := harness.Courses.CreateCourse(ctx, persistence.Course{Name: testfixtures.NewCourseFixture().Name})
	require.NoError(t, err)

	block.CourseID = otherCourse.ID
	_, err = harness.Blocks.UpdateBlock(ctx, block)
	require.NoError(t, err)

	reloaded, err := harness.Rooms.GetRoom(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, otherCourse.ID, reloaded.CourseID, "expected the room to follow its block's course")
}

func TestBlockRepositoryDeleteCascades(t *testing.T) {
	harness := testfixtures.NewSQLiteHarness(t)
	_, block, room, coordinator := harness.SeedHierarchy(t, false)
	ctx := context.Background()

	reservation, err := harness.Reservations.CreateReservation(ctx, persistence.Reservation{
		RoomID:        room.ID,
		CoordinatorID: coordinator.ID,
		Date:          "2026-09-01",
		StartTime:     "09:00:00",
		EndTime:       "10:00:00",
		Reason:        "aula",
	})
	require.NoError(t, err)

	require.NoError(t, harness.Blocks.DeleteBlock(ctx, block.ID))

	_, err = harness.Blocks.GetBlock(ctx, block.ID)
	require.ErrorIs(t, err, persistence.ErrNotFound)
	_, err = harness.Rooms.GetRoom(ctx, room.ID)
	require.ErrorIs(t, err, persistence.ErrNotFound)
	_, err = harness.Reservations.GetReservation(ctx, reservation.ID)
	require.ErrorIs(t, err, persistence.ErrNotFound)
}

func TestBlockRepositoryDuplicateName(t *testing.T) {
	harness := testfixtures.NewSQLiteHarness(t)
	course, block, _, _ := harness.SeedHierarchy(t, false)
	ctx := context.Background()

	_, err := harness.Blocks.CreateBlock(ctx, persistence.Block{Name: block.Name, CourseID: course.ID})
	require.ErrorIs(t, err, persistence.ErrDuplicate)
}

func TestCourseRepositoryDeleteRestricted(t *testing.T) {
	harness := testfixtures.NewSQLiteHarness(t)
	course, _, _, _ := harness.SeedHierarchy(t, false)
	ctx := context.Background()

	err := harness.Courses.DeleteCourse(ctx, course.ID)
	require.ErrorIs(t, err, persistence.ErrForeignKeyViolation)

	// An unreferenced course deletes cleanly.
	orphan, err := harness.Courses.CreateCourse(ctx, persistence.Course{Name: testfixtures.NewCourseFixture().Name})
	require.NoError(t, err)
	require.NoError(t, harness.Courses.DeleteCourse(ctx, orphan.ID))
}
