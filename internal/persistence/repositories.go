package persistence

import "context"

// CourseRepository exposes CRUD operations for courses.
type CourseRepository interface {
	CreateCourse(ctx context.Context, course Course) (Course, error)
	GetCourse(ctx context.Context, id int64) (Course, error)
	ListCourses(ctx context.Context) ([]Course, error)
	UpdateCourse(ctx context.Context, course Course) (Course, error)
	DeleteCourse(ctx context.Context, id int64) error
}

// BlockRepository exposes CRUD operations for blocks. Updates rewrite the
// denormalized course id of the block's rooms in the same transaction, and
// deletes cascade block -> rooms -> reservations.
type BlockRepository interface {
	CreateBlock(ctx context.Context, block Block) (Block, error)
	GetBlock(ctx context.Context, id int64) (Block, error)
	ListBlocks(ctx context.Context) ([]Block, error)
	UpdateBlock(ctx context.Context, block Block) (Block, error)
	DeleteBlock(ctx context.Context, id int64) error
}

// RoomRepository exposes CRUD operations for rooms. Deletes cascade to the
// room's reservations.
type RoomRepository interface {
	CreateRoom(ctx context.Context, room Room) (Room, error)
	GetRoom(ctx context.Context, id int64) (Room, error)
	ListRooms(ctx context.Context) ([]Room, error)
	UpdateRoom(ctx context.Context, room Room) (Room, error)
	DeleteRoom(ctx context.Context, id int64) error
}

// CoordinatorRepository exposes CRUD operations for coordinators.
type CoordinatorRepository interface {
	CreateCoordinator(ctx context.Context, coordinator Coordinator) (Coordinator, error)
	GetCoordinator(ctx context.Context, id int64) (Coordinator, error)
	GetCoordinatorByEmail(ctx context.Context, email string) (Coordinator, error)
	ListCoordinators(ctx context.Context) ([]Coordinator, error)
	UpdateCoordinator(ctx context.Context, coordinator Coordinator) (Coordinator, error)
	DeleteCoordinator(ctx context.Context, id int64) error
}

// ReservationRepository stores reservations. Create and Update re-run the
// overlap guard inside their write transaction and fail with ErrConflict
// when a concurrent request already took the slot.
type ReservationRepository interface {
	CreateReservation(ctx context.Context, reservation Reservation) (Reservation, error)
	GetReservation(ctx context.Context, id int64) (Reservation, error)
	ListReservations(ctx context.Context) ([]Reservation, error)
	ListReservationsForRoomDate(ctx context.Context, roomID int64, date string) ([]Reservation, error)
	UpdateReservation(ctx context.Context, reservation Reservation) (Reservation, error)
	DeleteReservation(ctx context.Context, id int64) error
}
