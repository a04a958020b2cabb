package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/course-enrollment/internal/model"
)

// TicketRepo encapsulates queries over the support_tickets table.
type TicketRepo struct {
	db *sql.DB
}

func NewTicketRepo(db *sql.DB) *TicketRepo {
	return &TicketRepo{db: db}
}

const ticketSelect = `SELECT t.id, t.user_id, t.subject, t.message, t.status, t.admin_response,
       t.created_at, t.updated_at, u.full_name, u.email
  FROM support_tickets t
  JOIN users u ON u.id = t.user_id`

func scanTicket(row interface{ Scan(...any) error }, withRequester bool) (*model.Ticket, error) {
	var (
		t               model.Ticket
		status          string
		response        sql.NullString
		userName, email string
	)
	if err := row.Scan(&t.ID, &t.UserID, &t.Subject, &t.Message, &status, &response,
		&t.CreatedAt, &t.UpdatedAt, &userName, &email); err != nil {
		return nil, err
	}
	t.Status = model.TicketStatus(status)
	if response.Valid {
		t.AdminResponse = &response.String
	}
	if withRequester {
		t.UserName, t.UserEmail = &userName, &email
	}
	return &t, nil
}

func (r *TicketRepo) list(ctx context.Context, withRequester bool, q string, args ...any) ([]*model.Ticket, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.Ticket{}
	for rows.Next() {
		t, err := scanTicket(rows, withRequester)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Create inserts t as Open and fills in ID, status and timestamps.
func (r *TicketRepo) Create(ctx context.Context, t *model.Ticket) error {
	now := nowUTC()
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO support_tickets (user_id, subject, message, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
		t.UserID, t.Subject, t.Message, string(model.TicketOpen), now, now)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	t.Status = model.TicketOpen
	t.CreatedAt, t.UpdatedAt = now, now
	return nil
}

// GetByID fetches one ticket with its requester or ErrNotFound.
func (r *TicketRepo) GetByID(ctx context.Context, id uint64) (*model.Ticket, error) {
	t, err := scanTicket(r.db.QueryRowContext(ctx, ticketSelect+" WHERE t.id = ?", id), true)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return t, err
}

// ListByUser returns the tickets filed by userID, newest first.
func (r *TicketRepo) ListByUser(ctx context.Context, userID uint64) ([]*model.Ticket, error) {
	return r.list(ctx, false, ticketSelect+" WHERE t.user_id = ? ORDER BY t.created_at DESC, t.id DESC", userID)
}

// ListAll returns every ticket with requester name and email, newest first.
func (r *TicketRepo) ListAll(ctx context.Context) ([]*model.Ticket, error) {
	return r.list(ctx, true, ticketSelect+" ORDER BY t.created_at DESC, t.id DESC")
}

// Respond stores an admin response and sets status.
func (r *TicketRepo) Respond(ctx context.Context, id uint64, response string, status model.TicketStatus) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE support_tickets SET admin_response = ?, status = ?, updated_at = ? WHERE id = ?",
		response, string(status), nowUTC(), id)
	if err != nil {
		return err
	}
	return expectRow(res)
}

// UpdateStatus sets only the status of ticket id.
func (r *TicketRepo) UpdateStatus(ctx context.Context, id uint64, status model.TicketStatus) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE support_tickets SET status = ?, updated_at = ? WHERE id = ?",
		string(status), nowUTC(), id)
	if err != nil {
		return err
	}
	return expectRow(res)
}

// Exists reports whether ticket id exists.
func (r *TicketRepo) Exists(ctx context.Context, id uint64) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM support_tickets WHERE id = ?", id).Scan(&n)
	return n > 0, err
}
