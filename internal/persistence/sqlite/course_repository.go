package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/example/campus-reservations/internal/persistence"
)

// CourseRepository implements persistence.CourseRepository using SQLite.
type CourseRepository struct {
	pool *ConnectionPool
}

// NewCourseRepository creates a new SQLite course repository.
func NewCourseRepository(pool *ConnectionPool) *CourseRepository {
	return &CourseRepository{pool: pool}
}

// CreateCourse inserts a new course and returns it with its assigned id.
func (r *CourseRepository) CreateCourse(ctx context.Context, course persistence.Course) (persistence.Course, error) {
	result, err := r.pool.db.ExecContext(ctx,
		`INSERT INTO cursos (nome) VALUES (?)`, course.Name)
	if err != nil {
		return persistence.Course{}, mapSQLiteError(err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return persistence.Course{}, err
	}
	course.ID = id
	return course, nil
}

// GetCourse retrieves a course by id.
func (r *CourseRepository) GetCourse(ctx context.Context, id int64) (persistence.Course, error) {
	var course persistence.Course
	err := r.pool.db.QueryRowContext(ctx,
		`SELECT id, nome FROM cursos WHERE id = ?`, id).
		Scan(&course.ID, &course.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return persistence.Course{}, persistence.ErrNotFound
		}
		return persistence.Course{}, mapSQLiteError(err)
	}
	return course, nil
}

// ListCourses returns every course in id order.
func (r *CourseRepository) ListCourses(ctx context.Context) ([]persistence.Course, error) {
	rows, err := r.pool.db.QueryContext(ctx, `SELECT id, nome FROM cursos ORDER BY id ASC`)
	if err != nil {
		return nil, mapSQLiteError(err)
	}
	defer rows.Close()

	var courses []persistence.Course
	for rows.Next() {
		var course persistence.Course
		if err := rows.Scan(&course.ID, &course.Name); err != nil {
			return nil, mapSQLiteError(err)
		}
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, mapSQLiteError(err)
	}
	return courses, nil
}

// UpdateCourse replaces the mutable fields of an existing course.
func (r *CourseRepository) UpdateCourse(ctx context.Context, course persistence.Course) (persistence.Course, error) {
	result, err := r.pool.db.ExecContext(ctx,
		`UPDATE cursos SET nome = ? WHERE id = ?`, course.Name, course.ID)
	if err != nil {
		return persistence.Course{}, mapSQLiteError(err)
	}
	if err := rowsAffected(result); err != nil {
		return persistence.Course{}, err
	}
	return course, nil
}

// DeleteCourse removes a course. Courses still referenced by blocks, rooms,
// or coordinators are protected by foreign keys and fail with
// ErrForeignKeyViolation.
func (r *CourseRepository) DeleteCourse(ctx context.Context, id int64) error {
	result, err := r.pool.db.ExecContext(ctx, `DELETE FROM cursos WHERE id = ?`, id)
	if err != nil {
		return mapSQLiteError(err)
	}
	return rowsAffected(result)
}
