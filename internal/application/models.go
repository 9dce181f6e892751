package application

// Course represents an academic course, the root of the ownership hierarchy.
type Course struct {
	ID   int64
	Name string
}

// CourseInput captures caller provided course fields.
type CourseInput struct {
	Name string
}

// Block represents an organizational block owned by a course.
type Block struct {
	ID       int64
	Name     string
	CourseID int64
}

// BlockInput captures caller provided block fields.
type BlockInput struct {
	Name     string
	CourseID int64
}

// Room represents a bookable room inside a block. CourseID always mirrors
// the owning block's course; callers never supply it directly.
type Room struct {
	ID        int64
	BlockID   int64
	CourseID  int64
	Number    int
	Capacity  int
	Resources string
	Exclusive bool
}

// RoomInput captures caller provided room fields.
type RoomInput struct {
	BlockID   int64
	Number    int
	Capacity  int
	Resources string
	Exclusive bool
}

// Coordinator represents a course staff member authorized to reserve rooms.
// The plaintext password never leaves the input; only the hash is stored.
type Coordinator struct {
	ID           int64
	CourseID     int64
	Name         string
	Email        string
	PasswordHash string
}

// CoordinatorInput captures caller provided coordinator fields.
type CoordinatorInput struct {
	CourseID int64
	Name     string
	Email    string
	Password string
}

// Reservation holds a room for a half-open [StartTime, EndTime) window on a
// date. Date uses "2006-01-02" and the times use "15:04:05".
type Reservation struct {
	ID            int64
	RoomID        int64
	CoordinatorID int64
	Date          string
	StartTime     string
	EndTime       string
	Reason        string
}

// ReservationInput captures caller provided reservation fields.
type ReservationInput struct {
	RoomID        int64
	CoordinatorID int64
	Date          string
	StartTime     string
	EndTime       string
	Reason        string
}

// AvailabilityQuery captures the parameters of a dry-run overlap check. No
// coordinator or reason is involved: the check asks only whether a window is
// free.
type AvailabilityQuery struct {
	RoomID    int64
	Date      string
	StartTime string
	EndTime   string
}

// Availability reports the outcome of a dry-run overlap check.
type Availability struct {
	RoomID    int64
	Date      string
	StartTime string
	EndTime   string
	Available bool
}
