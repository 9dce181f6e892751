package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/example/campus-reservations/internal/persistence"
)

// CourseRepository captures the persistence operations needed by the service.
type CourseRepository interface {
	CreateCourse(ctx context.Context, course Course) (Course, error)
	GetCourse(ctx context.Context, id int64) (Course, error)
	ListCourses(ctx context.Context) ([]Course, error)
	UpdateCourse(ctx context.Context, course Course) (Course, error)
	DeleteCourse(ctx context.Context, id int64) error
}

// CourseService orchestrates validation and persistence for courses.
type CourseService struct {
	courses CourseRepository
	logger  *slog.Logger
}

// NewCourseService constructs a course service with the provided dependencies.
func NewCourseService(courses CourseRepository, logger *slog.Logger) *CourseService {
	return &CourseService{courses: courses, logger: defaultLogger(logger)}
}

func (s *CourseService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "CourseService", operation, attrs...)
}

// CreateCourse validates input and persists a new course.
func (s *CourseService) CreateCourse(ctx context.Context, input CourseInput) (course Course, err error) {
	if s == nil || s.courses == nil {
		return Course{}, fmt.Errorf("course repository not configured")
	}

	logger := s.loggerWith(ctx, "CreateCourse")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create course", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("course_id", course.ID).InfoContext(ctx, "course created")
	}()

	vErr := validateCourseInput(input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	course, err = s.courses.CreateCourse(ctx, Course{Name: strings.TrimSpace(input.Name)})
	if err != nil {
		err = mapCourseRepoError(err)
		return
	}
	return
}

// GetCourse retrieves a course by id.
func (s *CourseService) GetCourse(ctx context.Context, id int64) (Course, error) {
	if s == nil || s.courses == nil {
		return Course{}, fmt.Errorf("course repository not configured")
	}

	course, err := s.courses.GetCourse(ctx, id)
	if err != nil {
		return Course{}, mapCourseRepoError(err)
	}
	return course, nil
}

// ListCourses returns every course in store order.
func (s *CourseService) ListCourses(ctx context.Context) ([]Course, error) {
	if s == nil || s.courses == nil {
		return nil, fmt.Errorf("course repository not configured")
	}
	return s.courses.ListCourses(ctx)
}

// UpdateCourse validates input and replaces an existing course.
func (s *CourseService) UpdateCourse(ctx context.Context, id int64, input CourseInput) (course Course, err error) {
	if s == nil || s.courses == nil {
		return Course{}, fmt.Errorf("course repository not configured")
	}

	logger := s.loggerWith(ctx, "UpdateCourse", "course_id", id)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update course", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "course updated")
	}()

	vErr := validateCourseInput(input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	var existing Course
	existing, err = s.courses.GetCourse(ctx, id)
	if err != nil {
		err = mapCourseRepoError(err)
		return
	}

	existing.Name = strings.TrimSpace(input.Name)
	course, err = s.courses.UpdateCourse(ctx, existing)
	if err != nil {
		err = mapCourseRepoError(err)
		return
	}
	return
}

// DeleteCourse removes a course. Courses still referenced by blocks, rooms,
// or coordinators are rejected.
func (s *CourseService) DeleteCourse(ctx context.Context, id int64) error {
	if s == nil || s.courses == nil {
		return fmt.Errorf("course repository not configured")
	}

	logger := s.loggerWith(ctx, "DeleteCourse", "course_id", id)
	if err := s.courses.DeleteCourse(ctx, id); err != nil {
		err = mapCourseRepoError(err)
		logger.ErrorContext(ctx, "failed to delete course", "error", err, "error_kind", ErrorKind(err))
		return err
	}

	logger.InfoContext(ctx, "course deleted")
	return nil
}

func validateCourseInput(input CourseInput) *ValidationError {
	vErr := &ValidationError{}
	validateRequiredName(vErr, "nome", input.Name)
	return vErr
}

func validateRequiredName(vErr *ValidationError, field, value string) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		vErr.add(field, "name is required")
		return
	}
	if utf8.RuneCountInString(trimmed) > 100 {
		vErr.add(field, "name must be at most 100 characters")
	}
}

func mapCourseRepoError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, persistence.ErrNotFound):
		return ErrCourseNotFound
	case errors.Is(err, persistence.ErrDuplicate):
		vErr := &ValidationError{}
		vErr.add("nome", "name already in use")
		return vErr
	case errors.Is(err, persistence.ErrForeignKeyViolation):
		return ErrReferenced
	default:
		return err
	}
}
