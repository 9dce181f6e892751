package application

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/example/campus-reservations/internal/persistence"
)

type stubCourseRepo struct {
	courses   map[int64]Course
	nextID    int64
	createErr error
	deleteErr error
}

func (s *stubCourseRepo) CreateCourse(_ context.Context, course Course) (Course, error) {
	if s.createErr != nil {
		return Course{}, s.createErr
	}
	s.nextID++
	course.ID = s.nextID
	if s.courses == nil {
		s.courses = make(map[int64]Course)
	}
	s.courses[course.ID] = course
	return course, nil
}

func (s *stubCourseRepo) GetCourse(_ context.Context, id int64) (Course, error) {
	course, ok := s.courses[id]
	if !ok {
		return Course{}, persistence.ErrNotFound
	}
	return course, nil
}

func (s *stubCourseRepo) ListCourses(_ context.Context) ([]Course, error) {
	courses := make([]Course, 0, len(s.courses))
	for _, course := range s.courses {
		courses = append(courses, course)
	}
	return courses, nil
}

func (s *stubCourseRepo) UpdateCourse(_ context.Context, course Course) (Course, error) {
	if _, ok := s.courses[course.ID]; !ok {
		return Course{}, persistence.ErrNotFound
	}
	s.courses[course.ID] = course
	return course, nil
}

func (s *stubCourseRepo) DeleteCourse(_ context.Context, id int64) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	if _, ok := s.courses[id]; !ok {
		return persistence.ErrNotFound
	}
	delete(s.courses, id)
	return nil
}

func TestCreateCourse(t *testing.T) {
	t.Run("persists a trimmed name", func(t *testing.T) {
		service := NewCourseService(&stubCourseRepo{}, nil)

		course, err := service.CreateCourse(context.Background(), CourseInput{Name: "  Engenharia de Software  "})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if course.Name != "Engenharia de Software" {
			t.Fatalf("expected trimmed name, got %q", course.Name)
		}
		if course.ID == 0 {
			t.Fatal("expected a persisted id")
		}
	})

	t.Run("rejects a blank name", func(t *testing.T) {
		service := NewCourseService(&stubCourseRepo{}, nil)

		_, err := service.CreateCourse(context.Background(), CourseInput{Name: "   "})
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if _, ok := vErr.FieldErrors["nome"]; !ok {
			t.Fatal("expected a validation error for nome")
		}
	})

	t.Run("rejects an overlong name", func(t *testing.T) {
		service := NewCourseService(&stubCourseRepo{}, nil)

		_, err := service.CreateCourse(context.Background(), CourseInput{Name: strings.Repeat("x", 101)})
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	})

	t.Run("surfaces a duplicate name", func(t *testing.T) {
		service := NewCourseService(&stubCourseRepo{createErr: persistence.ErrDuplicate}, nil)

		_, err := service.CreateCourse(context.Background(), CourseInput{Name: "Direito"})
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if vErr.FieldErrors["nome"] != "name already in use" {
			t.Fatalf("unexpected message %q", vErr.FieldErrors["nome"])
		}
	})
}

func TestUpdateCourse(t *testing.T) {
	service := NewCourseService(&stubCourseRepo{}, nil)

	created, err := service.CreateCourse(context.Background(), CourseInput{Name: "Medicina"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	updated, err := service.UpdateCourse(context.Background(), created.ID, CourseInput{Name: "Medicina Veterinária"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Name != "Medicina Veterinária" {
		t.Fatalf("unexpected name %q", updated.Name)
	}

	if _, err := service.UpdateCourse(context.Background(), 42, CourseInput{Name: "Qualquer"}); !errors.Is(err, ErrCourseNotFound) {
		t.Fatalf("expected ErrCourseNotFound, got %v", err)
	}
}

func TestDeleteCourse(t *testing.T) {
	t.Run("removes a course", func(t *testing.T) {
		repo := &stubCourseRepo{}
		service := NewCourseService(repo, nil)

		created, err := service.CreateCourse(context.Background(), CourseInput{Name: "Física"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if err := service.DeleteCourse(context.Background(), created.ID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(repo.courses) != 0 {
			t.Fatalf("expected course to be removed, %d left", len(repo.courses))
		}
	})

	t.Run("rejects a referenced course", func(t *testing.T) {
		repo := &stubCourseRepo{deleteErr: persistence.ErrForeignKeyViolation}
		service := NewCourseService(repo, nil)

		if _, err := service.CreateCourse(context.Background(), CourseInput{Name: "Química"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if err := service.DeleteCourse(context.Background(), 1); !errors.Is(err, ErrReferenced) {
			t.Fatalf("expected ErrReferenced, got %v", err)
		}
	})
}
