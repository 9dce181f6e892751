package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/example/campus-reservations/internal/application"
	"github.com/example/campus-reservations/internal/config"
	httptransport "github.com/example/campus-reservations/internal/http"
	"github.com/example/campus-reservations/internal/persistence"
	"github.com/example/campus-reservations/internal/persistence/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.New(slog.NewJSONHandler(os.Stdout, nil)).Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))

	pool, err := sqlite.NewConnectionPool(cfg.SQLiteDSN)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := pool.Close(); cerr != nil {
			logger.Error("failed to close database", "error", cerr)
		}
	}()

	if err := pool.Migrate(context.Background()); err != nil {
		logger.Error("failed to apply migrations", "error", err)
		os.Exit(1)
	}

	courseRepo := newCourseRepositoryAdapter(sqlite.NewCourseRepository(pool))
	blockRepo := newBlockRepositoryAdapter(sqlite.NewBlockRepository(pool))
	roomRepo := newRoomRepositoryAdapter(sqlite.NewRoomRepository(pool))
	coordinatorRepo := newCoordinatorRepositoryAdapter(sqlite.NewCoordinatorRepository(pool))
	reservationRepo := newReservationRepositoryAdapter(sqlite.NewReservationRepository(pool))

	hasher := application.NewArgon2idHasher()

	courseService := application.NewCourseService(courseRepo, logger)
	blockService := application.NewBlockService(blockRepo, courseRepo, logger)
	roomService := application.NewRoomService(roomRepo, blockService, logger)
	coordinatorService := application.NewCoordinatorService(coordinatorRepo, courseRepo, hasher, logger)
	reservationService := application.NewReservationService(reservationRepo, roomService, coordinatorService, logger)

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Courses:      httptransport.NewCourseHandler(courseService, logger),
		Blocks:       httptransport.NewBlockHandler(blockService, logger),
		Rooms:        httptransport.NewRoomHandler(roomService, logger),
		Coordinators: httptransport.NewCoordinatorHandler(coordinatorService, logger),
		Reservations: httptransport.NewReservationHandler(reservationService, logger),
		Middleware: []func(http.Handler) http.Handler{
			httptransport.RequestLogger(logger),
		},
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to shutdown server", "error", err)
		}
	}()

	logger.Info("reservation API listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server encountered error", "error", err)
		os.Exit(1)
	}
}

// ----------------------------- Course adapter -----------------------------

type courseRepositoryAdapter struct {
	repo persistence.CourseRepository
}

func newCourseRepositoryAdapter(repo persistence.CourseRepository) *courseRepositoryAdapter {
	return &courseRepositoryAdapter{repo: repo}
}

func (a *courseRepositoryAdapter) CreateCourse(ctx context.Context, course application.Course) (application.Course, error) {
	stored, err := a.repo.CreateCourse(ctx, toPersistenceCourse(course))
	if err != nil {
		return application.Course{}, err
	}
	return toApplicationCourse(stored), nil
}

func (a *courseRepositoryAdapter) GetCourse(ctx context.Context, id int64) (application.Course, error) {
	stored, err := a.repo.GetCourse(ctx, id)
	if err != nil {
		return application.Course{}, err
	}
	return toApplicationCourse(stored), nil
}

func (a *courseRepositoryAdapter) ListCourses(ctx context.Context) ([]application.Course, error) {
	models, err := a.repo.ListCourses(ctx)
	if err != nil {
		return nil, err
	}
	courses := make([]application.Course, 0, len(models))
	for _, model := range models {
		courses = append(courses, toApplicationCourse(model))
	}
	return courses, nil
}

func (a *courseRepositoryAdapter) UpdateCourse(ctx context.Context, course application.Course) (application.Course, error) {
	stored, err := a.repo.UpdateCourse(ctx, toPersistenceCourse(course))
	if err != nil {
		return application.Course{}, err
	}
	return toApplicationCourse(stored), nil
}

func (a *courseRepositoryAdapter) DeleteCourse(ctx context.Context, id int64) error {
	return a.repo.DeleteCourse(ctx, id)
}

// CourseExists satisfies the course directory dependency of the block and
// coordinator services.
func (a *courseRepositoryAdapter) CourseExists(ctx context.Context, id int64) (bool, error) {
	_, err := a.repo.GetCourse(ctx, id)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ----------------------------- Block adapter ------------------------------

type blockRepositoryAdapter struct {
	repo persistence.BlockRepository
}

func newBlockRepositoryAdapter(repo persistence.BlockRepository) *blockRepositoryAdapter {
	return &blockRepositoryAdapter{repo: repo}
}

func (a *blockRepositoryAdapter) CreateBlock(ctx context.Context, block application.Block) (application.Block, error) {
	stored, err := a.repo.CreateBlock(ctx, toPersistenceBlock(block))
	if err != nil {
		return application.Block{}, err
	}
	return toApplicationBlock(stored), nil
}

func (a *blockRepositoryAdapter) GetBlock(ctx context.Context, id int64) (application.Block, error) {
	stored, err := a.repo.GetBlock(ctx, id)
	if err != nil {
		return application.Block{}, err
	}
	return toApplicationBlock(stored), nil
}

func (a *blockRepositoryAdapter) ListBlocks(ctx context.Context) ([]application.Block, error) {
	models, err := a.repo.ListBlocks(ctx)
	if err != nil {
		return nil, err
	}
	blocks := make([]application.Block, 0, len(models))
	for _, model := range models {
		blocks = append(blocks, toApplicationBlock(model))
	}
	return blocks, nil
}

func (a *blockRepositoryAdapter) UpdateBlock(ctx context.Context, block application.Block) (application.Block, error) {
	stored, err := a.repo.UpdateBlock(ctx, toPersistenceBlock(block))
	if err != nil {
		return application.Block{}, err
	}
	return toApplicationBlock(stored), nil
}

func (a *blockRepositoryAdapter) DeleteBlock(ctx context.Context, id int64) error {
	return a.repo.DeleteBlock(ctx, id)
}

// ------------------------------ Room adapter ------------------------------

type roomRepositoryAdapter struct {
	repo persistence.RoomRepository
}

func newRoomRepositoryAdapter(repo persistence.RoomRepository) *roomRepositoryAdapter {
	return &roomRepositoryAdapter{repo: repo}
}

func (a *roomRepositoryAdapter) CreateRoom(ctx context.Context, room application.Room) (application.Room, error) {
	stored, err := a.repo.CreateRoom(ctx, toPersistenceRoom(room))
	if err != nil {
		return application.Room{}, err
	}
	return toApplicationRoom(stored), nil
}

func (a *roomRepositoryAdapter) GetRoom(ctx context.Context, id int64) (application.Room, error) {
	stored, err := a.repo.GetRoom(ctx, id)
	if err != nil {
		return application.Room{}, err
	}
	return toApplicationRoom(stored), nil
}

func (a *roomRepositoryAdapter) ListRooms(ctx context.Context) ([]application.Room, error) {
	models, err := a.repo.ListRooms(ctx)
	if err != nil {
		return nil, err
	}
	rooms := make([]application.Room, 0, len(models))
	for _, model := range models {
		rooms = append(rooms, toApplicationRoom(model))
	}
	return rooms, nil
}

func (a *roomRepositoryAdapter) UpdateRoom(ctx context.Context, room application.Room) (application.Room, error) {
	stored, err := a.repo.UpdateRoom(ctx, toPersistenceRoom(room))
	if err != nil {
		return application.Room{}, err
	}
	return toApplicationRoom(stored), nil
}

func (a *roomRepositoryAdapter) DeleteRoom(ctx context.Context, id int64) error {
	return a.repo.DeleteRoom(ctx, id)
}

// --------------------------- Coordinator adapter --------------------------

type coordinatorRepositoryAdapter struct {
	repo persistence.CoordinatorRepository
}

func newCoordinatorRepositoryAdapter(repo persistence.CoordinatorRepository) *coordinatorRepositoryAdapter {
	return &coordinatorRepositoryAdapter{repo: repo}
}

func (a *coordinatorRepositoryAdapter) CreateCoordinator(ctx context.Context, coordinator application.Coordinator) (application.Coordinator, error) {
	stored, err := a.repo.CreateCoordinator(ctx, toPersistenceCoordinator(coordinator))
	if err != nil {
		return application.Coordinator{}, err
	}
	return toApplicationCoordinator(stored), nil
}

func (a *coordinatorRepositoryAdapter) GetCoordinator(ctx context.Context, id int64) (application.Coordinator, error) {
	stored, err := a.repo.GetCoordinator(ctx, id)
	if err != nil {
		return application.Coordinator{}, err
	}
	return toApplicationCoordinator(stored), nil
}

func (a *coordinatorRepositoryAdapter) GetCoordinatorByEmail(ctx context.Context, email string) (application.Coordinator, error) {
	stored, err := a.repo.GetCoordinatorByEmail(ctx, email)
	if err != nil {
		return application.Coordinator{}, err
	}
	return toApplicationCoordinator(stored), nil
}

func (a *coordinatorRepositoryAdapter) ListCoordinators(ctx context.Context) ([]application.Coordinator, error) {
	models, err := a.repo.ListCoordinators(ctx)
	if err != nil {
		return nil, err
	}
	coordinators := make([]application.Coordinator, 0, len(models))
	for _, model := range models {
		coordinators = append(coordinators, toApplicationCoordinator(model))
	}
	return coordinators, nil
}

func (a *coordinatorRepositoryAdapter) UpdateCoordinator(ctx context.Context, coordinator application.Coordinator) (application.Coordinator, error) {
	stored, err := a.repo.UpdateCoordinator(ctx, toPersistenceCoordinator(coordinator))
	if err != nil {
		return application.Coordinator{}, err
	}
	return toApplicationCoordinator(stored), nil
}

func (a *coordinatorRepositoryAdapter) DeleteCoordinator(ctx context.Context, id int64) error {
	return a.repo.DeleteCoordinator(ctx, id)
}

// --------------------------- Reservation adapter --------------------------

type reservationRepositoryAdapter struct {
	repo persistence.ReservationRepository
}

func newReservationRepositoryAdapter(repo persistence.ReservationRepository) *reservationRepositoryAdapter {
	return &reservationRepositoryAdapter{repo: repo}
}

func (a *reservationRepositoryAdapter) CreateReservation(ctx context.Context, reservation application.Reservation) (application.Reservation, error) {
	stored, err := a.repo.CreateReservation(ctx, toPersistenceReservation(reservation))
	if err != nil {
		return application.Reservation{}, err
	}
	return toApplicationReservation(stored), nil
}

func (a *reservationRepositoryAdapter) GetReservation(ctx context.Context, id int64) (application.Reservation, error) {
	stored, err := a.repo.GetReservation(ctx, id)
	if err != nil {
		return application.Reservation{}, err
	}
	return toApplicationReservation(stored), nil
}

func (a *reservationRepositoryAdapter) ListReservations(ctx context.Context) ([]application.Reservation, error) {
	models, err := a.repo.ListReservations(ctx)
	if err != nil {
		return nil, err
	}
	return toApplicationReservations(models), nil
}

func (a *reservationRepositoryAdapter) UpdateReservation(ctx context.Context, reservation application.Reservation) (application.Reservation, error) {
	stored, err := a.repo.UpdateReservation(ctx, toPersistenceReservation(reservation))
	if err != nil {
		return application.Reservation{}, err
	}
	return toApplicationReservation(stored), nil
}

func (a *reservationRepositoryAdapter) DeleteReservation(ctx context.Context, id int64) error {
	return a.repo.DeleteReservation(ctx, id)
}

func (a *reservationRepositoryAdapter) ListReservationsForRoomDate(ctx context.Context, roomID int64, date string) ([]application.Reservation, error) {
	models, err := a.repo.ListReservationsForRoomDate(ctx, roomID, date)
	if err != nil {
		return nil, err
	}
	return toApplicationReservations(models), nil
}

// ------------------------------ Conversions -------------------------------

func toPersistenceCourse(course application.Course) persistence.Course {
	return persistence.Course{ID: course.ID, Name: course.Name}
}

func toApplicationCourse(course persistence.Course) application.Course {
	return application.Course{ID: course.ID, Name: course.Name}
}

func toPersistenceBlock(block application.Block) persistence.Block {
	return persistence.Block{ID: block.ID, Name: block.Name, CourseID: block.CourseID}
}

func toApplicationBlock(block persistence.Block) application.Block {
	return application.Block{ID: block.ID, Name: block.Name, CourseID: block.CourseID}
}

func toPersistenceRoom(room application.Room) persistence.Room {
	return persistence.Room{
		ID:        room.ID,
		BlockID:   room.BlockID,
		CourseID:  room.CourseID,
		Number:    room.Number,
		Capacity:  room.Capacity,
		Resources: room.Resources,
		Exclusive: room.Exclusive,
	}
}

func toApplicationRoom(room persistence.Room) application.Room {
	return application.Room{
		ID:        room.ID,
		BlockID:   room.BlockID,
		CourseID:  room.CourseID,
		Number:    room.Number,
		Capacity:  room.Capacity,
		Resources: room.Resources,
		Exclusive: room.Exclusive,
	}
}

func toPersistenceCoordinator(coordinator application.Coordinator) persistence.Coordinator {
	return persistence.Coordinator{
		ID:           coordinator.ID,
		CourseID:     coordinator.CourseID,
		Name:         coordinator.Name,
		Email:        coordinator.Email,
		PasswordHash: coordinator.PasswordHash,
	}
}

func toApplicationCoordinator(coordinator persistence.Coordinator) application.Coordinator {
	return application.Coordinator{
		ID:           coordinator.ID,
		CourseID:     coordinator.CourseID,
		Name:         coordinator.Name,
		Email:        coordinator.Email,
		PasswordHash: coordinator.PasswordHash,
	}
}

func toPersistenceReservation(reservation application.Reservation) persistence.Reservation {
	return persistence.Reservation{
		ID:            reservation.ID,
		RoomID:        reservation.RoomID,
		CoordinatorID: reservation.CoordinatorID,
		Date:          reservation.Date,
		StartTime:     reservation.StartTime,
		EndTime:       reservation.EndTime,
		Reason:        reservation.Reason,
	}
}

func toApplicationReservation(reservation persistence.Reservation) application.Reservation {
	return application.Reservation{
		ID:            reservation.ID,
		RoomID:        reservation.RoomID,
		CoordinatorID: reservation.CoordinatorID,
		Date:          reservation.Date,
		StartTime:     reservation.StartTime,
		EndTime:       reservation.EndTime,
		Reason:        reservation.Reason,
	}
}

func toApplicationReservations(models []persistence.Reservation) []application.Reservation {
	if len(models) == 0 {
		return nil
	}
	reservations := make([]application.Reservation, 0, len(models))
	for _, model := range models {
		reservations = append(reservations, toApplicationReservation(model))
	}
	return reservations
}
