package http

import "context"

type contextKey string

const (
	courseIDContextKey      contextKey = "course_id"
	blockIDContextKey       contextKey = "block_id"
	roomIDContextKey        contextKey = "room_id"
	coordinatorIDContextKey contextKey = "coordinator_id"
	reservationIDContextKey contextKey = "reservation_id"
)

// ContextWithCourseID injects the course identifier resolved from the request path.
func ContextWithCourseID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, courseIDContextKey, id)
}

// CourseIDFromContext extracts a course identifier previously associated with the context.
func CourseIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(courseIDContextKey).(string)
	return id, ok
}

// ContextWithBlockID injects the block identifier resolved from the request path.
func ContextWithBlockID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, blockIDContextKey, id)
}

// BlockIDFromContext extracts a block identifier previously associated with the context.
func BlockIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(blockIDContextKey).(string)
	return id, ok
}

// ContextWithRoomID injects the room identifier resolved from the request path.
func ContextWithRoomID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, roomIDContextKey, id)
}

// RoomIDFromContext extracts a room identifier previously associated with the context.
func RoomIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(roomIDContextKey).(string)
	return id, ok
}

// ContextWithCoordinatorID injects the coordinator identifier resolved from the request path.
func ContextWithCoordinatorID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, coordinatorIDContextKey, id)
}

// CoordinatorIDFromContext extracts a coordinator identifier previously associated with the context.
func CoordinatorIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(coordinatorIDContextKey).(string)
	return id, ok
}

// ContextWithReservationID injects the reservation identifier resolved from the request path.
func ContextWithReservationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, reservationIDContextKey, id)
}

// ReservationIDFromContext extracts a reservation identifier previously associated with the context.
func ReservationIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(reservationIDContextKey).(string)
	return id, ok
}
