package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/iliyamo/course-enrollment/internal/access"
	"github.com/iliyamo/course-enrollment/internal/apperr"
	"github.com/iliyamo/course-enrollment/internal/model"
	"github.com/iliyamo/course-enrollment/internal/repository"
	"github.com/iliyamo/course-enrollment/internal/utils"
)

// Support manages help tickets. Users file and read their own tickets;
// only admins respond or change status.
type Support struct {
	tickets *repository.TicketRepo
	log     *slog.Logger
}

func NewSupport(tickets *repository.TicketRepo, log *slog.Logger) *Support {
	return &Support{tickets: tickets, log: log.With("svc", "support")}
}

// Create files a ticket for the caller, who must be a non-admin.
func (s *Support) Create(ctx context.Context, who access.Identity, subject, message string) (*model.Ticket, error) {
	if !who.Member() {
		return nil, apperr.Forbidden("auth.members_only")
	}
	subject = utils.StripTags(subject)
	message = utils.StripTags(message)
	if subject == "" || message == "" {
		return nil, apperr.Validation("ticket.fields_required")
	}
	t := &model.Ticket{UserID: who.UserID, Subject: subject, Message: message}
	if err := s.tickets.Create(ctx, t); err != nil {
		return nil, apperr.Unavailable("ticket.create_failed", err)
	}
	s.log.Info("ticket created", "ticket_id", t.ID, "user_id", who.UserID)
	return t, nil
}

// List returns the caller's tickets, or every ticket for admins.
func (s *Support) List(ctx context.Context, who access.Identity) ([]*model.Ticket, error) {
	var (
		out []*model.Ticket
		err error
	)
	if who.Admin() {
		out, err = s.tickets.ListAll(ctx)
	} else {
		out, err = s.tickets.ListByUser(ctx, who.UserID)
	}
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return out, nil
}

// Get returns ticket id. Non-admins may only read their own.
func (s *Support) Get(ctx context.Context, who access.Identity, id uint64) (*model.Ticket, error) {
	t, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "ticket.not_found")
	}
	if !who.IsAdmin {
		if !who.Owns(t.UserID) {
			return nil, apperr.Forbidden("auth.forbidden")
		}
		t.UserName, t.UserEmail = nil, nil
	}
	return t, nil
}

// TicketUpdate is an admin change to a ticket. Empty fields are absent.
type TicketUpdate struct {
	Response string
	Status   string
}

// Update lets an admin respond to or re-status ticket id. A response
// without a status moves the ticket to InProcessing. It returns the
// updated ticket and the message key describing what happened.
func (s *Support) Update(ctx context.Context, who access.Identity, id uint64, in TicketUpdate) (*model.Ticket, string, error) {
	if !who.Admin() {
		ok, err := s.tickets.Exists(ctx, id)
		if err != nil {
			return nil, "", apperr.Internal(err)
		}
		if !ok {
			return nil, "", apperr.NotFound("ticket.not_found")
		}
		return nil, "", apperr.Forbidden("ticket.readonly")
	}

	response := utils.StripTags(in.Response)
	rawStatus := strings.TrimSpace(in.Status)
	if response == "" && rawStatus == "" {
		return nil, "", apperr.Validation("ticket.update_required")
	}
	status := model.TicketInProcessing
	if rawStatus != "" {
		st, ok := model.ParseTicketStatus(rawStatus)
		if !ok {
			return nil, "", apperr.Validation("ticket.invalid_status")
		}
		status = st
	}

	key := "ticket.status_updated"
	var err error
	if response != "" {
		key = "ticket.responded"
		err = s.tickets.Respond(ctx, id, response, status)
	} else {
		err = s.tickets.UpdateStatus(ctx, id, status)
	}
	if err != nil {
		return nil, "", notFoundOr(err, "ticket.not_found")
	}
	s.log.Info("ticket updated", "ticket_id", id, "status", status, "responded", response != "")

	t, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, "", notFoundOr(err, "ticket.not_found")
	}
	return t, key, nil
}
