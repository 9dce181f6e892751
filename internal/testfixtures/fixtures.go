package testfixtures

import (
	"fmt"
	"sync"
	"sync/atomic"

	gofakeit "github.com/brianvoe/gofakeit/v7"

	"github.com/example/campus-reservations/internal/application"
	"github.com/example/campus-reservations/internal/persistence"
)

var (
	courseCounter      uint64
	blockCounter       uint64
	roomCounter        uint64
	coordinatorCounter uint64
	reservationCounter uint64
)

// faker is seeded so fixture runs stay reproducible across test invocations.
var (
	fakerMu sync.Mutex
	faker   = gofakeit.New(7)
)

func fakeName() string {
	fakerMu.Lock()
	defer fakerMu.Unlock()
	return faker.Name()
}

func fakeWord() string {
	fakerMu.Lock()
	defer fakerMu.Unlock()
	return faker.Word()
}

// ---------------------------- Course fixtures ----------------------------

// CourseFixture represents a deterministic course record for application or
// persistence tests.
type CourseFixture struct {
	ID   int64
	Name string
}

// CourseOption configures the generated course fixture.
type CourseOption func(*CourseFixture)

// NewCourseFixture returns a deterministic course fixture with optional
// overrides. Generated names stay unique across the run so the store's
// uniqueness constraint never trips by accident.
func NewCourseFixture(opts ...CourseOption) CourseFixture {
	idx := atomic.AddUint64(&courseCounter, 1)
	fixture := CourseFixture{
		ID:   int64(idx),
		Name: fmt.Sprintf("Curso %03d %s", idx, fakeWord()),
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithCourseID overrides the generated course ID.
func WithCourseID(id int64) CourseOption {
	return func(f *CourseFixture) {
		f.ID = id
	}
}

// WithCourseName overrides the generated course name.
func WithCourseName(name string) CourseOption {
	return func(f *CourseFixture) {
		f.Name = name
	}
}

// Application returns the fixture as an application.Course value.
func (f CourseFixture) Application() application.Course {
	return application.Course{ID: f.ID, Name: f.Name}
}

// Persistence returns the fixture as a persistence.Course value.
func (f CourseFixture) Persistence() persistence.Course {
	return persistence.Course{ID: f.ID, Name: f.Name}
}

// Input returns the fixture as caller supplied course fields.
func (f CourseFixture) Input() application.CourseInput {
	return application.CourseInput{Name: f.Name}
}

// ----------------------------- Block fixtures -----------------------------

// BlockFixture represents a deterministic block record.
type BlockFixture struct {
	ID       int64
	Name     string
	CourseID int64
}

// BlockOption configures the generated block fixture.
type BlockOption func(*BlockFixture)

// NewBlockFixture returns a deterministic block fixture with optional
// overrides.
func NewBlockFixture(opts ...BlockOption) BlockFixture {
	idx := atomic.AddUint64(&blockCounter, 1)
	fixture := BlockFixture{
		ID:       int64(idx),
		Name:     fmt.Sprintf("Bloco %03d", idx),
		CourseID: 1,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithBlockID overrides the generated block ID.
func WithBlockID(id int64) BlockOption {
	return func(f *BlockFixture) {
		f.ID = id
	}
}

// WithBlockName overrides the generated block name.
func WithBlockName(name string) BlockOption {
	return func(f *BlockFixture) {
		f.Name = name
	}
}

// WithBlockCourseID sets the owning course on the fixture.
func WithBlockCourseID(courseID int64) BlockOption {
	return func(f *BlockFixture) {
		f.CourseID = courseID
	}
}

// Application returns the fixture as an application.Block value.
func (f BlockFixture) Application() application.Block {
	return application.Block{ID: f.ID, Name: f.Name, CourseID: f.CourseID}
}

// Persistence returns the fixture as a persistence.Block value.
func (f BlockFixture) Persistence() persistence.Block {
	return persistence.Block{ID: f.ID, Name: f.Name, CourseID: f.CourseID}
}

// Input returns the fixture as caller supplied block fields.
func (f BlockFixture) Input() application.BlockInput {
	return application.BlockInput{Name: f.Name, CourseID: f.CourseID}
}

// ----------------------------- Room fixtures ------------------------------

// RoomFixture represents a deterministic room record.
type RoomFixture struct {
	ID        int64
	BlockID   int64
	CourseID  int64
	Number    int
	Capacity  int
	Resources string
	Exclusive bool
}

// RoomOption configures the generated room fixture.
type RoomOption func(*RoomFixture)

// NewRoomFixture returns a deterministic room fixture with optional
// overrides.
func NewRoomFixture(opts ...RoomOption) RoomFixture {
	idx := atomic.AddUint64(&roomCounter, 1)
	fixture := RoomFixture{
		ID:        int64(idx),
		BlockID:   1,
		CourseID:  1,
		Number:    100 + int(idx),
		Capacity:  40,
		Resources: "projetor, quadro branco",
		Exclusive: false,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithRoomID overrides the generated room ID.
func WithRoomID(id int64) RoomOption {
	return func(f *RoomFixture) {
		f.ID = id
	}
}

// WithRoomBlockID sets the owning block on the fixture.
func WithRoomBlockID(blockID int64) RoomOption {
	return func(f *RoomFixture) {
		f.BlockID = blockID
	}
}

// WithRoomCourseID sets the denormalized course on the fixture.
func WithRoomCourseID(courseID int64) RoomOption {
	return func(f *RoomFixture) {
		f.CourseID = courseID
	}
}

// WithRoomNumber overrides the generated room number.
func WithRoomNumber(number int) RoomOption {
	return func(f *RoomFixture) {
		f.Number = number
	}
}

// WithRoomCapacity overrides the generated capacity.
func WithRoomCapacity(capacity int) RoomOption {
	return func(f *RoomFixture) {
		f.Capacity = capacity
	}
}

// WithRoomResources overrides the generated resource list.
func WithRoomResources(resources string) RoomOption {
	return func(f *RoomFixture) {
		f.Resources = resources
	}
}

// WithRoomExclusive marks the fixture as exclusive to its course.
func WithRoomExclusive(exclusive bool) RoomOption {
	return func(f *RoomFixture) {
		f.Exclusive = exclusive
	}
}

// Application returns the fixture as an application.Room value.
func (f RoomFixture) Application() application.Room {
	return application.Room{
		ID:        f.ID,
		BlockID:   f.BlockID,
		CourseID:  f.CourseID,
		Number:    f.Number,
		Capacity:  f.Capacity,
		Resources: f.Resources,
		Exclusive: f.Exclusive,
	}
}

// Persistence returns the fixture as a persistence.Room value.
func (f RoomFixture) Persistence() persistence.Room {
	return persistence.Room{
		ID:        f.ID,
		BlockID:   f.BlockID,
		CourseID:  f.CourseID,
		Number:    f.Number,
		Capacity:  f.Capacity,
		Resources: f.Resources,
		Exclusive: f.Exclusive,
	}
}

// Input returns the fixture as caller supplied room fields.
func (f RoomFixture) Input() application.RoomInput {
	return application.RoomInput{
		BlockID:   f.BlockID,
		Number:    f.Number,
		Capacity:  f.Capacity,
		Resources: f.Resources,
		Exclusive: f.Exclusive,
	}
}

// -------------------------- Coordinator fixtures --------------------------

// CoordinatorFixture represents a deterministic coordinator record.
type CoordinatorFixture struct {
	ID           int64
	CourseID     int64
	Name         string
	Email        string
	Password     string
	PasswordHash string
}

// CoordinatorOption configures the generated coordinator fixture.
type CoordinatorOption func(*CoordinatorFixture)

// NewCoordinatorFixture returns a deterministic coordinator fixture with
// optional overrides. Emails embed the counter so the store's uniqueness
// constraint never trips by accident.
func NewCoordinatorFixture(opts ...CoordinatorOption) CoordinatorFixture {
	idx := atomic.AddUint64(&coordinatorCounter, 1)
	fixture := CoordinatorFixture{
		ID:           int64(idx),
		CourseID:     1,
		Name:         fakeName(),
		Email:        fmt.Sprintf("coordenador-%03d@campus.edu", idx),
		Password:     fmt.Sprintf("senha-%03d", idx),
		PasswordHash: fmt.Sprintf("hash-%03d", idx),
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithCoordinatorID overrides the generated coordinator ID.
func WithCoordinatorID(id int64) CoordinatorOption {
	return func(f *CoordinatorFixture) {
		f.ID = id
	}
}

// WithCoordinatorCourseID sets the owning course on the fixture.
func WithCoordinatorCourseID(courseID int64) CoordinatorOption {
	return func(f *CoordinatorFixture) {
		f.CourseID = courseID
	}
}

// WithCoordinatorName overrides the generated name.
func WithCoordinatorName(name string) CoordinatorOption {
	return func(f *CoordinatorFixture) {
		f.Name = name
	}
}

// WithCoordinatorEmail overrides the generated email.
func WithCoordinatorEmail(email string) CoordinatorOption {
	return func(f *CoordinatorFixture) {
		f.Email = email
	}
}

// WithCoordinatorPasswordHash overrides the generated password hash.
func WithCoordinatorPasswordHash(hash string) CoordinatorOption {
	return func(f *CoordinatorFixture) {
		f.PasswordHash = hash
	}
}

// Application returns the fixture as an application.Coordinator value.
func (f CoordinatorFixture) Application() application.Coordinator {
	return application.Coordinator{
		ID:           f.ID,
		CourseID:     f.CourseID,
		Name:         f.Name,
		Email:        f.Email,
		PasswordHash: f.PasswordHash,
	}
}

// Persistence returns the fixture as a persistence.Coordinator value.
func (f CoordinatorFixture) Persistence() persistence.Coordinator {
	return persistence.Coordinator{
		ID:           f.ID,
		CourseID:     f.CourseID,
		Name:         f.Name,
		Email:        f.Email,
		PasswordHash: f.PasswordHash,
	}
}

// Input returns the fixture as caller supplied coordinator fields.
func (f CoordinatorFixture) Input() application.CoordinatorInput {
	return application.CoordinatorInput{
		CourseID: f.CourseID,
		Name:     f.Name,
		Email:    f.Email,
		Password: f.Password,
	}
}

// -------------------------- Reservation fixtures --------------------------

// ReservationFixture represents a deterministic reservation record. Each
// fixture claims its own hour so unrelated fixtures never collide.
type ReservationFixture struct {
	ID            int64
	RoomID        int64
	CoordinatorID int64
	Date          string
	StartTime     string
	EndTime       string
	Reason        string
}

// ReservationOption configures the generated reservation fixture.
type ReservationOption func(*ReservationFixture)

// NewReservationFixture returns a deterministic reservation fixture with
// optional overrides.
func NewReservationFixture(opts ...ReservationOption) ReservationFixture {
	idx := atomic.AddUint64(&reservationCounter, 1)
	hour := int(idx % 22)
	fixture := ReservationFixture{
		ID:            int64(idx),
		RoomID:        1,
		CoordinatorID: 1,
		Date:          "2026-09-01",
		StartTime:     fmt.Sprintf("%02d:00:00", hour),
		EndTime:       fmt.Sprintf("%02d:00:00", hour+1),
		Reason:        fmt.Sprintf("Reserva %03d", idx),
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithReservationID overrides the generated reservation ID.
func WithReservationID(id int64) ReservationOption {
	return func(f *ReservationFixture) {
		f.ID = id
	}
}

// WithReservationRoomID sets the reserved room on the fixture.
func WithReservationRoomID(roomID int64) ReservationOption {
	return func(f *ReservationFixture) {
		f.RoomID = roomID
	}
}

// WithReservationCoordinatorID sets the requesting coordinator on the fixture.
func WithReservationCoordinatorID(coordinatorID int64) ReservationOption {
	return func(f *ReservationFixture) {
		f.CoordinatorID = coordinatorID
	}
}

// WithReservationDate sets the reservation date on the fixture.
func WithReservationDate(date string) ReservationOption {
	return func(f *ReservationFixture) {
		f.Date = date
	}
}

// WithReservationWindow sets the start and end times on the fixture.
func WithReservationWindow(start, end string) ReservationOption {
	return func(f *ReservationFixture) {
		f.StartTime = start
		f.EndTime = end
	}
}

// WithReservationReason overrides the generated reason.
func WithReservationReason(reason string) ReservationOption {
	return func(f *ReservationFixture) {
		f.Reason = reason
	}
}

// Application returns the fixture as an application.Reservation value.
func (f ReservationFixture) Application() application.Reservation {
	return application.Reservation{
		ID:            f.ID,
		RoomID:        f.RoomID,
		CoordinatorID: f.CoordinatorID,
		Date:          f.Date,
		StartTime:     f.StartTime,
		EndTime:       f.EndTime,
		Reason:        f.Reason,
	}
}

// Persistence returns the fixture as a persistence.Reservation value.
func (f ReservationFixture) Persistence() persistence.Reservation {
	return persistence.Reservation{
		ID:            f.ID,
		RoomID:        f.RoomID,
		CoordinatorID: f.CoordinatorID,
		Date:          f.Date,
		StartTime:     f.StartTime,
		EndTime:       f.EndTime,
		Reason:        f.Reason,
	}
}

// Input returns the fixture as caller supplied reservation fields.
func (f ReservationFixture) Input() application.ReservationInput {
	return application.ReservationInput{
		RoomID:        f.RoomID,
		CoordinatorID: f.CoordinatorID,
		Date:          f.Date,
		StartTime:     f.StartTime,
		EndTime:       f.EndTime,
		Reason:        f.Reason,
	}
}
