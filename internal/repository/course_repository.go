package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/course-enrollment/internal/model"
)

// CourseRepo encapsulates queries over the courses table.
type CourseRepo struct {
	db *sql.DB
}

func NewCourseRepo(db *sql.DB) *CourseRepo {
	return &CourseRepo{db: db}
}

const courseSelect = `SELECT c.id, c.name, c.description, c.duration, c.price, c.created_at, c.updated_at,
       (SELECT COUNT(*) FROM applications a WHERE a.course_id = c.id) AS application_count
  FROM courses c`

func scanCourse(row interface{ Scan(...any) error }) (*model.Course, error) {
	c := new(model.Course)
	if err := row.Scan(&c.ID, &c.Name, &c.Description, &c.Duration, &c.Price,
		&c.CreatedAt, &c.UpdatedAt, &c.ApplicationCount); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *CourseRepo) query(ctx context.Context, q string, args ...any) ([]*model.Course, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.Course{}
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// List returns every course ordered by name with its application count.
func (r *CourseRepo) List(ctx context.Context) ([]*model.Course, error) {
	return r.query(ctx, courseSelect+" ORDER BY c.name, c.id")
}

// Popular returns the limit courses with the most applications. Ties go to
// the newer course.
func (r *CourseRepo) Popular(ctx context.Context, limit int) ([]*model.Course, error) {
	return r.query(ctx, courseSelect+" ORDER BY application_count DESC, c.created_at DESC, c.id DESC LIMIT ?", limit)
}

// GetByID fetches a course or ErrNotFound.
func (r *CourseRepo) GetByID(ctx context.Context, id uint64) (*model.Course, error) {
	c, err := scanCourse(r.db.QueryRowContext(ctx, courseSelect+" WHERE c.id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return c, err
}

// IDByName resolves a course name to its id or ErrNotFound.
func (r *CourseRepo) IDByName(ctx context.Context, name string) (uint64, error) {
	var id uint64
	err := r.db.QueryRowContext(ctx, "SELECT id FROM courses WHERE name = ?", name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	return id, err
}

// Create inserts c and sets its ID and timestamps. A duplicate name yields
// ErrCourseExists.
func (r *CourseRepo) Create(ctx context.Context, c *model.Course) error {
	now := nowUTC()
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO courses (name, description, duration, price, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
		c.Name, c.Description, c.Duration, c.Price, now, now)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrCourseExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	c.CreatedAt, c.UpdatedAt = now, now
	return nil
}

// Update overwrites the editable fields of c.
func (r *CourseRepo) Update(ctx context.Context, c *model.Course) error {
	now := nowUTC()
	res, err := r.db.ExecContext(ctx,
		"UPDATE courses SET name = ?, description = ?, duration = ?, price = ?, updated_at = ? WHERE id = ?",
		c.Name, c.Description, c.Duration, c.Price, now, c.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrCourseExists
		}
		return err
	}
	if err := expectRow(res); err != nil {
		return err
	}
	c.UpdatedAt = now
	return nil
}

// Delete removes a course that no application references. A missing course
// yields ErrNotFound, a referenced one ErrConflict.
func (r *CourseRepo) Delete(ctx context.Context, id uint64) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	var exists int
	if err = tx.QueryRowContext(ctx, "SELECT 1 FROM courses WHERE id = ?", id).Scan(&exists); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	var refs int
	if err = tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM applications WHERE course_id = ?", id).Scan(&refs); err != nil {
		return err
	}
	if refs > 0 {
		return ErrConflict
	}
	if _, err = tx.ExecContext(ctx, "DELETE FROM courses WHERE id = ?", id); err != nil {
		if isForeignKeyViolation(err) {
			return ErrConflict
		}
		return err
	}
	return nil
}
