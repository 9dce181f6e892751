package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/campus-reservations/internal/persistence"
	"github.com/example/campus-reservations/internal/testfixtures"
)

func TestReservationRepositoryCreate(t *testing.T) {
	harness := testfixtures.NewSQLiteHarness(t)
	_, _, room, coordinator := harness.SeedHierarchy(t, false)
	ctx := context.Background()

	base := persistence.Reservation{
		RoomID:        room.ID,
		CoordinatorID: coordinator.ID,
		Date:          "2026-09-01",
		StartTime:     "09:00:00",
		EndTime:       "10:00:00",
		Reason:        "aula de algoritmos",
	}

	t.Run("assigns an id", func(t *testing.T) {
		created, err := harness.Reservations.CreateReservation(ctx, base)
		require.NoError(t, err)
		assert.NotZero(t, created.ID)
	})

	t.Run("rejects an overlapping window", func(t *testing.T) {
		overlapping := base
		overlapping.StartTime = "09:30:00"
		overlapping.EndTime = "10:30:00"
		_, err := harness.Reservations.CreateReservation(ctx, overlapping)
		require.ErrorIs(t, err, persistence.ErrConflict)
	})

	t.Run("accepts a back-to-back window", func(t *testing.T) {
		adjacent := base
		adjacent.StartTime = "10:00:00"
		adjacent.EndTime = "11:00:00"
		_, err := harness.Reservations.CreateReservation(ctx, adjacent)
		require.NoError(t, err)
	})

	t.Run("accepts the same window on another date", func(t *testing.T) {
		otherDate := base
		otherDate.Date = "2026-09-02"
		_, err := harness.Reservations.CreateReservation(ctx, otherDate)
		require.NoError(t, err)
	})

	t.Run("rejects an unknown coordinator", func(t *testing.T) {
		orphan := base
		orphan.CoordinatorID = 9999
		orphan.StartTime = "15:00:00"
		orphan.EndTime = "16:00:00"
		_, err := harness.Reservations.CreateReservation(ctx, orphan)
		require.ErrorIs(t, err, persistence.ErrForeignKeyViolation)
	})
}

func TestReservationRepositoryUpdate(t *testing.T) {
	harness := testfixtures.NewSQLiteHarness(t)
	_, _, room, coordinator := harness.SeedHierarchy(t, false)
	ctx := context.Background()

	first, err := harness.Reservations.CreateReservation(ctx, persistence.Reservation{
		RoomID:        room.ID,
		CoordinatorID: coordinator.ID,
		Date:          "2026-09-01",
		StartTime:     "09:00:00",
		EndTime:       "10:00:00",
		Reason:        "aula",
	})
	require.NoError(t, err)

	second, err := harness.Reservations.CreateReservation(ctx, persistence.Reservation{
		RoomID:        room.ID,
		CoordinatorID: coordinator.ID,
		Date:          "2026-09-01",
		StartTime:     "11:00:00",
		EndTime:       "12:00:00",
		Reason:        "monitoria",
	})
	require.NoError(t, err)

	t.Run("keeps its own window", func(t *testing.T) {
		first.Reason = "aula revisada"
		updated, err := harness.Reservations.UpdateReservation(ctx, first)
		require.NoError(t, err)
		assert.Equal(t, "aula revisada", updated.Reason)
	})

	t.Run("rejects moving onto another reservation", func(t *testing.T) {
		moved := second
		moved.StartTime = "09:30:00"
		moved.EndTime = "10:30:00"
		_, err := harness.Reservations.UpdateReservation(ctx, moved)
		require.ErrorIs(t, err, persistence.ErrConflict)
	})

	t.Run("rejects a missing reservation", func(t *testing.T) {
		missing := first
		missing.ID = 9999
		_, err := harness.Reservations.UpdateReservation(ctx, missing)
		require.ErrorIs(t, err, persistence.ErrNotFound)
	})
}

func TestReservationRepositoryListForRoomDate(t *testing.T) {
	harness := testfixtures.NewSQLiteHarness(t)
	_, block, room, coordinator := harness.SeedHierarchy(t, false)
	ctx := context.Background()

	otherRoom, err := harness.Rooms.CreateRoom(ctx, persistence.Room{
		BlockID:   block.ID,
		CourseID:  room.CourseID,
		Number:    room.Number + 1,
		Capacity:  20,
		Resources: "bancadas",
	})
	require.NoError(t, err)

	for _, seed := range []persistence.Reservation{
		{RoomID: room.ID, CoordinatorID: coordinator.ID, Date: "2026-09-01", StartTime: "09:00:00", EndTime: "10:00:00", Reason: "a"},
		{RoomID: room.ID, CoordinatorID: coordinator.ID, Date: "2026-09-02", StartTime: "09:00:00", EndTime: "10:00:00", Reason: "b"},
		{RoomID: otherRoom.ID, CoordinatorID: coordinator.ID, Date: "2026-09-01", StartTime: "09:00:00", EndTime: "10:00:00", Reason: "c"},
	} {
		_, err := harness.Reservations.CreateReservation(ctx, seed)
		require.NoError(t, err)
	}

	matched, err := harness.Reservations.ListReservationsForRoomDate(ctx, room.ID, "2026-09-01")
	require.NoError(t, err)
	require.Len(t, matched, 1)
	assert.Equal(t, "a", matched[0].Reason)
}

func TestReservationRepositoryDelete(t *testing.T) {
	harness := testfixtures.NewSQLiteHarness(t)
	_, _, room, coordinator := harness.SeedHierarchy(t, false)
	ctx := context.Background()

	created, err := harness.Reservations.CreateReservation(ctx, persistence.Reservation{
		RoomID:        room.ID,
		CoordinatorID: coordinator.ID,
		Date:          "2026-09-01",
		StartTime:     "09:00:00",
		EndTime:       "10:00:00",
		Reason:        "aula",
	})
	require.NoError(t, err)

	require.NoError(t, harness.Reservations.DeleteReservation(ctx, created.ID))
	require.ErrorIs(t, harness.Reservations.DeleteReservation(ctx, created.ID), persistence.ErrNotFound)

	_, err = harness.Reservations.GetReservation(ctx, created.ID)
	require.ErrorIs(t, err, persistence.ErrNotFound)
}
