package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/campus-reservations/internal/persistence"
	"github.com/example/campus-reservations/internal/testfixtures"
)

func TestRoomRepositoryRoundTrip(t *testing.T) {
	harness := testfixtures.NewSQLiteHarness(t)
	_, block, _, _ := harness.SeedHierarchy(t, false)
	ctx := context.Background()

	created, err := harness.Rooms.CreateRoom(ctx, persistence.Room{
		BlockID:   block.ID,
		CourseID:  block.CourseID,
		Number:    305,
		Capacity:  25,
		Resources: "bancadas, lousa digital",
		Exclusive: true,
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	reloaded, err := harness.Rooms.GetRoom(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, reloaded)
	assert.True(t, reloaded.Exclusive, "expected the exclusive flag to survive the round trip")
}

func TestRoomRepositoryDeleteCascadesReservations(t *testing.T) {
	harness := testfixtures.NewSQLiteHarness(t)
	_, _, room, coordinator := harness.SeedHierarchy(t, false)
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

	require.NoError(t, harness.Rooms.DeleteRoom(ctx, room.ID))

	_, err = harness.Rooms.GetRoom(ctx, room.ID)
	require.ErrorIs(t, err, persistence.ErrNotFound)
	_, err = harness.Reservations.GetReservation(ctx, reservation.ID)
	require.ErrorIs(t, err, persistence.ErrNotFound)
}

func TestRoomRepositoryRejectsUnknownBlock(t *testing.T) {
	harness := testfixtures.NewSQLiteHarness(t)
	course, _, _, _ := harness.SeedHierarchy(t, false)
	ctx := context.Background()

	_, err := harness.Rooms.CreateRoom(ctx, persistence.Room{
		BlockID:   9999,
		CourseID:  course.ID,
		Number:    101,
		Capacity:  10,
		Resources: "projetor",
	})
	require.ErrorIs(t, err, persistence.ErrForeignKeyViolation)
}
