package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/course-enrollment/internal/model"
)

// nowUTC is the timestamp written into created_at/updated_at columns.
func nowUTC() time.Time { return time.Now().UTC().Truncate(time.Second) }

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = "id,login,password_hash,full_name,phone,email,avatar,is_admin,created_at,updated_at"

func scanUser(row interface{ Scan(...any) error }) (model.User, error) {
	var (
		u      model.User
		avatar sql.NullString
	)
	err := row.Scan(&u.ID, &u.Login, &u.PasswordHash, &u.FullName, &u.Phone, &u.Email,
		&avatar, &u.IsAdmin, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return u, ErrNotFound
		}
		return u, err
	}
	if avatar.Valid {
		u.Avatar = &avatar.String
	}
	return u, nil
}

// Create inserts u (with an already hashed password) and returns its ID.
func (r *UserRepo) Create(ctx context.Context, u model.User) (uint64, error) {
	now := nowUTC()
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (login, password_hash, full_name, phone, email, is_admin, created_at, updated_at) VALUES (?,?,?,?,?,?,?,?)",
		u.Login, u.PasswordHash, u.FullName, u.Phone, u.Email, u.IsAdmin, now, now)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrLoginExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByLogin fetches a user by exact login.
func (r *UserRepo) GetByLogin(ctx context.Context, login string) (model.User, error) {
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE login=? LIMIT 1", login))
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id))
}

// LoginExists reports whether login is taken.
func (r *UserRepo) LoginExists(ctx context.Context, login string) (bool, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM users WHERE login=?", login).Scan(&n)
	return n > 0, err
}

// UpdateProfile overwrites the contact fields of user id.
func (r *UserRepo) UpdateProfile(ctx context.Context, id uint64, fullName, phone, email string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET full_name=?, phone=?, email=?, updated_at=? WHERE id=?",
		fullName, phone, email, nowUTC(), id)
	if err != nil {
		return err
	}
	return expectRow(res)
}

// UpdateAvatar stores the relative avatar path of user id.
func (r *UserRepo) UpdateAvatar(ctx context.Context, id uint64, path string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET avatar=?, updated_at=? WHERE id=?", path, nowUTC(), id)
	if err != nil {
		return err
	}
	return expectRow(res)
}

// expectRow maps a zero-row update to ErrNotFound. The MySQL DSN sets
// clientFoundRows so unchanged rows still count.
func expectRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
