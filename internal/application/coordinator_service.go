package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/example/campus-reservations/internal/persistence"
)

// CoordinatorRepository captures the persistence operations needed by the
// service. GetCoordinatorByEmail returns persistence.ErrNotFound when no
// coordinator carries the email.
type CoordinatorRepository interface {
	CreateCoordinator(ctx context.Context, coordinator Coordinator) (Coordinator, error)
	GetCoordinator(ctx context.Context, id int64) (Coordinator, error)
	GetCoordinatorByEmail(ctx context.Context, email string) (Coordinator, error)
	ListCoordinators(ctx context.Context) ([]Coordinator, error)
	UpdateCoordinator(ctx context.Context, coordinator Coordinator) (Coordinator, error)
	DeleteCoordinator(ctx context.Context, id int64) error
}

// CoordinatorService orchestrates validation, email uniqueness, and password
// hashing for coordinators.
type CoordinatorService struct {
	coordinators CoordinatorRepository
	courses      CourseDirectory
	hasher       PasswordHasher
	logger       *slog.Logger
}

// NewCoordinatorService constructs a coordinator service with the provided
// dependencies.
func NewCoordinatorService(coordinators CoordinatorRepository, courses CourseDirectory, hasher PasswordHasher, logger *slog.Logger) *CoordinatorService {
	return &CoordinatorService{
		coordinators: coordinators,
		courses:      courses,
		hasher:       hasher,
		logger:       defaultLogger(logger),
	}
}

func (s *CoordinatorService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "CoordinatorService", operation, attrs...)
}

// CreateCoordinator validates input, rejects duplicate emails, hashes the
// password, and persists a new coordinator.
func (s *CoordinatorService) CreateCoordinator(ctx context.Context, input CoordinatorInput) (coordinator Coordinator, err error) {
	if s == nil || s.coordinators == nil {
		return Coordinator{}, fmt.Errorf("coordinator repository not configured")
	}
	if s.hasher == nil {
		return Coordinator{}, fmt.Errorf("password hasher not configured")
	}

	logger := s.loggerWith(ctx, "CreateCoordinator", "course_id", input.CourseID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create coordinator", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("coordinator_id", coordinator.ID).InfoContext(ctx, "coordinator created")
	}()

	vErr := validateCoordinatorInput(input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	email := normalizeEmail(input.Email)

	if err = s.ensureCourseExists(ctx, input.CourseID); err != nil {
		return
	}
	if err = s.ensureEmailFree(ctx, email, 0); err != nil {
		return
	}

	var hash string
	hash, err = s.hasher.Hash(input.Password)
	if err != nil {
		return
	}

	coordinator, err = s.coordinators.CreateCoordinator(ctx, Coordinator{
		CourseID:     input.CourseID,
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		err = mapCoordinatorRepoError(err)
		return
	}
	return
}

// GetCoordinator retrieves a coordinator by id.
func (s *CoordinatorService) GetCoordinator(ctx context.Context, id int64) (Coordinator, error) {
	if s == nil || s.coordinators == nil {
		return Coordinator{}, fmt.Errorf("coordinator repository not configured")
	}

	coordinator, err := s.coordinators.GetCoordinator(ctx, id)
	if err != nil {
		return Coordinator{}, mapCoordinatorRepoError(err)
	}
	return coordinator, nil
}

// ListCoordinators returns every coordinator in store order.
func (s *CoordinatorService) ListCoordinators(ctx context.Context) ([]Coordinator, error) {
	if s == nil || s.coordinators == nil {
		return nil, fmt.Errorf("coordinator repository not configured")
	}
	return s.coordinators.ListCoordinators(ctx)
}

// UpdateCoordinator validates input and replaces an existing coordinator. The
// password is always re-hashed from the supplied plaintext.
func (s *CoordinatorService) UpdateCoordinator(ctx context.Context, id int64, input CoordinatorInput) (coordinator Coordinator, err error) {
	if s == nil || s.coordinators == nil {
		return Coordinator{}, fmt.Errorf("coordinator repository not configured")
	}
	if s.hasher == nil {
		return Coordinator{}, fmt.Errorf("password hasher not configured")
	}

	logger := s.loggerWith(ctx, "UpdateCoordinator", "coordinator_id", id, "course_id", input.CourseID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update coordinator", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "coordinator updated")
	}()

	vErr := validateCoordinatorInput(input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	var existing Coordinator
	existing, err = s.coordinators.GetCoordinator(ctx, id)
	if err != nil {
		err = mapCoordinatorRepoError(err)
		return
	}

	email := normalizeEmail(input.Email)

	if err = s.ensureCourseExists(ctx, input.CourseID); err != nil {
		return
	}
	if err = s.ensureEmailFree(ctx, email, id); err != nil {
		return
	}

	var hash string
	hash, err = s.hasher.Hash(input.Password)
	if err != nil {
		return
	}

	existing.CourseID = input.CourseID
	existing.Name = strings.TrimSpace(input.Name)
	existing.Email = email
	existing.PasswordHash = hash

	coordinator, err = s.coordinators.UpdateCoordinator(ctx, existing)
	if err != nil {
		err = mapCoordinatorRepoError(err)
		return
	}
	return
}

// DeleteCoordinator removes a coordinator. Coordinators still referenced by
// reservations are rejected.
func (s *CoordinatorService) DeleteCoordinator(ctx context.Context, id int64) error {
	if s == nil || s.coordinators == nil {
		return fmt.Errorf("coordinator repository not configured")
	}

	logger := s.loggerWith(ctx, "DeleteCoordinator", "coordinator_id", id)
	if err := s.coordinators.DeleteCoordinator(ctx, id); err != nil {
		err = mapCoordinatorRepoError(err)
		logger.ErrorContext(ctx, "failed to delete coordinator", "error", err, "error_kind", ErrorKind(err))
		return err
	}

	logger.InfoContext(ctx, "coordinator deleted")
	return nil
}

func (s *CoordinatorService) ensureCourseExists(ctx context.Context, courseID int64) error {
	if s.courses == nil {
		return nil
	}
	exists, err := s.courses.CourseExists(ctx, courseID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrCourseNotFound
	}
	return nil
}

// ensureEmailFree rejects an email already carried by a different
// coordinator. The store's UNIQUE index is the race backstop; this check
// exists so the common case surfaces ErrDuplicateEmail before hashing.
func (s *CoordinatorService) ensureEmailFree(ctx context.Context, email string, selfID int64) error {
	existing, err := s.coordinators.GetCoordinatorByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return nil
		}
		return err
	}
	if existing.ID == selfID {
		return nil
	}
	return ErrDuplicateEmail
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateCoordinatorInput(input CoordinatorInput) *ValidationError {
	vErr := &ValidationError{}

	validateRequiredName(vErr, "nome", input.Name)
	if input.CourseID <= 0 {
		vErr.add("curso_id", "course id is required")
	}

	email := normalizeEmail(input.Email)
	if email == "" {
		vErr.add("email", "email is required")
	} else if _, err := mail.ParseAddress(email); err != nil {
		vErr.add("email", "email is invalid")
	} else if utf8.RuneCountInString(email) > 100 {
		vErr.add("email", "email must be at most 100 characters")
	}

	if strings.TrimSpace(input.Password) == "" {
		vErr.add("senha", "password is required")
	}

	return vErr
}

func mapCoordinatorRepoError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, persistence.ErrNotFound):
		return ErrCoordinatorNotFound
	case errors.Is(err, persistence.ErrDuplicate):
		return ErrDuplicateEmail
	case errors.Is(err, persistence.ErrForeignKeyViolation):
		return ErrReferenced
	default:
		return err
	}
}
