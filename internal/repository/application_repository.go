package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/course-enrollment/internal/model"
)

// ApplicationRepo encapsulates queries over the applications table. Course
// names are joined in so callers see the wire shape.
type ApplicationRepo struct {
	db *sql.DB
}

func NewApplicationRepo(db *sql.DB) *ApplicationRepo {
	return &ApplicationRepo{db: db}
}

const applicationSelect = `SELECT a.id, a.user_id, a.course_id, c.name, a.start_date, a.payment_method,
       a.status, a.feedback, a.created_at, a.updated_at
  FROM applications a
  JOIN courses c ON c.id = a.course_id`

const applicationAdminSelect = `SELECT a.id, a.user_id, a.course_id, c.name, a.start_date, a.payment_method,
       a.status, a.feedback, a.created_at, a.updated_at, u.full_name, u.email, u.phone
  FROM applications a
  JOIN courses c ON c.id = a.course_id
  JOIN users u ON u.id = a.user_id`

func scanApplication(row interface{ Scan(...any) error }, withOwner bool) (*model.Application, error) {
	var (
		a        model.Application
		status   string
		feedback sql.NullString
	)
	dest := []any{&a.ID, &a.UserID, &a.CourseID, &a.CourseName, &a.StartDate, &a.PaymentMethod,
		&status, &feedback, &a.CreatedAt, &a.UpdatedAt}
	var fullName, email, phone string
	if withOwner {
		dest = append(dest, &fullName, &email, &phone)
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	a.Status = model.ApplicationStatus(status)
	if feedback.Valid {
		a.Feedback = &feedback.String
	}
	if withOwner {
		a.FullName, a.Email, a.Phone = &fullName, &email, &phone
	}
	return &a, nil
}

func (r *ApplicationRepo) list(ctx context.Context, withOwner bool, q string, args ...any) ([]*model.Application, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.Application{}
	for rows.Next() {
		a, err := scanApplication(rows, withOwner)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Create inserts a with status New and fills in ID, status and timestamps.
// A.CourseID must already be resolved.
func (r *ApplicationRepo) Create(ctx context.Context, a *model.Application) error {
	now := nowUTC()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO applications (user_id, course_id, start_date, payment_method, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.UserID, a.CourseID, a.StartDate, a.PaymentMethod, string(model.StatusNew), now, now)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrNotFound
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = uint64(id)
	a.Status = model.StatusNew
	a.Feedback = nil
	a.CreatedAt, a.UpdatedAt = now, now
	return nil
}

// GetByID fetches one application or ErrNotFound.
func (r *ApplicationRepo) GetByID(ctx context.Context, id uint64) (*model.Application, error) {
	a, err := scanApplication(r.db.QueryRowContext(ctx, applicationSelect+" WHERE a.id = ?", id), false)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return a, err
}

// ListByUser returns the applications of userID, newest first.
func (r *ApplicationRepo) ListByUser(ctx context.Context, userID uint64) ([]*model.Application, error) {
	return r.list(ctx, false,
		applicationSelect+" WHERE a.user_id = ? ORDER BY a.created_at DESC, a.id DESC", userID)
}

// ListAll returns every application with owner contact details, newest
// first.
func (r *ApplicationRepo) ListAll(ctx context.Context) ([]*model.Application, error) {
	return r.list(ctx, true,
		applicationAdminSelect+" ORDER BY a.created_at DESC, a.id DESC")
}

// UpdateStatus moves application id from status from to status to. It only
// writes when the row still holds from; otherwise ErrStaleStatus is
// returned. Feedback is cleared whenever the new status is not Completed.
func (r *ApplicationRepo) UpdateStatus(ctx context.Context, id uint64, from, to model.ApplicationStatus) error {
	q := "UPDATE applications SET status = ?, updated_at = ? WHERE id = ? AND status = ?"
	if to != model.StatusCompleted {
		q = "UPDATE applications SET status = ?, feedback = NULL, updated_at = ? WHERE id = ? AND status = ?"
	}
	res, err := r.db.ExecContext(ctx, q, string(to), nowUTC(), id, string(from))
	if err != nil {
		if isCheckViolation(err) {
			return ErrConflict
		}
		return err
	}
	if err := expectRow(res); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrStaleStatus
		}
		return err
	}
	return nil
}

// UpdateFeedback stores feedback on a completed application owned by
// userID. Any other state yields ErrStaleStatus.
func (r *ApplicationRepo) UpdateFeedback(ctx context.Context, id, userID uint64, feedback string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE applications SET feedback = ?, updated_at = ? WHERE id = ? AND user_id = ? AND status = ?",
		feedback, nowUTC(), id, userID, string(model.StatusCompleted))
	if err != nil {
		if isCheckViolation(err) {
			return ErrConflict
		}
		return err
	}
	if err := expectRow(res); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrStaleStatus
		}
		return err
	}
	return nil
}

// ListReviews returns the latest non-empty feedback with author details.
func (r *ApplicationRepo) ListReviews(ctx context.Context, limit int) ([]*model.Review, error) {
	const q = `SELECT u.full_name, u.avatar, c.name, a.feedback, a.updated_at
	             FROM applications a
	             JOIN users u ON u.id = a.user_id
	             JOIN courses c ON c.id = a.course_id
	            WHERE a.feedback IS NOT NULL AND a.feedback <> ''
	            ORDER BY a.updated_at DESC, a.id DESC
	            LIMIT ?`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.Review{}
	for rows.Next() {
		var (
			rv     model.Review
			avatar sql.NullString
		)
		if err := rows.Scan(&rv.UserName, &avatar, &rv.CourseName, &rv.Feedback, &rv.CreatedAt); err != nil {
			return nil, err
		}
		if avatar.Valid {
			rv.Avatar = &avatar.String
		}
		out = append(out, &rv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
