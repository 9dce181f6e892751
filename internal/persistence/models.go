package persistence

// Course is the root of the ownership hierarchy.
type Course struct {
	ID   int64
	Name string
}

// Block groups rooms under a single course.
type Block struct {
	ID       int64
	Name     string
	CourseID int64
}

// Room is a bookable room inside a block. CourseID is denormalized from the
// owning block and must always mirror it.
type Room struct {
	ID        int64
	BlockID   int64
	CourseID  int64
	Number    int
	Capacity  int
	Resources string
	Exclusive bool
}

// Coordinator is a course staff member authorized to make reservations. Only
// the password hash is ever persisted.
type Coordinator struct {
	ID           int64
	CourseID     int64
	Name         string
	Email        string
	PasswordHash string
}

// Reservation holds a room for a half-open [StartTime, EndTime) window on a
// date. Date uses "2006-01-02"; times use "15:04:05".
type Reservation struct {
	ID            int64
	RoomID        int64
	CoordinatorID int64
	Date          string
	StartTime     string
	EndTime       string
	Reason        string
}
