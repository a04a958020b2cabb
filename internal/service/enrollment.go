package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/iliyamo/course-enrollment/internal/access"
	"github.com/iliyamo/course-enrollment/internal/apperr"
	"github.com/iliyamo/course-enrollment/internal/model"
	"github.com/iliyamo/course-enrollment/internal/queue"
	"github.com/iliyamo/course-enrollment/internal/repository"
	"github.com/iliyamo/course-enrollment/internal/utils"
)

const (
	DefaultReviewLimit = 5
	MaxReviewLimit     = 50
)

// ApplicationStore is the persistence Enrollment needs;
// *repository.ApplicationRepo implements it.
type ApplicationStore interface {
	Create(ctx context.Context, a *model.Application) error
	GetByID(ctx context.Context, id uint64) (*model.Application, error)
	ListByUser(ctx context.Context, userID uint64) ([]*model.Application, error)
	ListAll(ctx context.Context) ([]*model.Application, error)
	UpdateStatus(ctx context.Context, id uint64, from, to model.ApplicationStatus) error
	UpdateFeedback(ctx context.Context, id, userID uint64, feedback string) error
	ListReviews(ctx context.Context, limit int) ([]*model.Review, error)
}

// Enrollment runs the application lifecycle: New -> InProgress ->
// Completed, then feedback. Admins drive the first step, owners may only
// mark a running course as completed and leave feedback afterwards.
type Enrollment struct {
	apps    ApplicationStore
	courses *repository.CourseRepo
	events  queue.Publisher
	log     *slog.Logger
}

func NewEnrollment(apps ApplicationStore, courses *repository.CourseRepo, events queue.Publisher, log *slog.Logger) *Enrollment {
	if events == nil {
		events = queue.Noop{}
	}
	return &Enrollment{apps: apps, courses: courses, events: events, log: log.With("svc", "enrollment")}
}

// ApplicationInput is a new application as submitted.
type ApplicationInput struct {
	CourseName    string
	StartDate     string
	PaymentMethod string
}

// Create files an application for the caller, who must be a non-admin.
func (s *Enrollment) Create(ctx context.Context, who access.Identity, in ApplicationInput) (*model.Application, error) {
	if !who.Member() {
		return nil, apperr.Forbidden("auth.members_only")
	}
	courseName := utils.StripTags(in.CourseName)
	startDate := utils.StripTags(in.StartDate)
	payment := utils.StripTags(in.PaymentMethod)
	if courseName == "" || startDate == "" || payment == "" {
		return nil, apperr.Validation("application.fields_required")
	}
	if _, ok := utils.ParseDate(startDate); !ok {
		return nil, apperr.Validation("application.invalid_start_date")
	}

	courseID, err := s.courses.IDByName(ctx, courseName)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.Validation("application.unknown_course")
		}
		return nil, apperr.Internal(err)
	}

	a := &model.Application{
		UserID:        who.UserID,
		CourseID:      courseID,
		CourseName:    courseName,
		StartDate:     startDate,
		PaymentMethod: payment,
	}
	if err := s.apps.Create(ctx, a); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.Validation("application.unknown_course")
		}
		return nil, apperr.Unavailable("application.create_failed", err)
	}
	s.log.Info("application created", "application_id", a.ID, "user_id", a.UserID, "course_id", a.CourseID)
	s.publish(ctx, who, queue.EventApplicationCreated, a, "")
	return a, nil
}

// List returns the caller's applications, or every application for admins.
func (s *Enrollment) List(ctx context.Context, who access.Identity) ([]*model.Application, error) {
	var (
		out []*model.Application
		err error
	)
	if who.Admin() {
		out, err = s.apps.ListAll(ctx)
	} else {
		out, err = s.apps.ListByUser(ctx, who.UserID)
	}
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return out, nil
}

// UpdateStatus moves application id to the status named by raw. Admins may
// set any valid status; owners may only complete a course in progress. The
// write is conditional on the status read here so concurrent updates
// cannot both win.
func (s *Enrollment) UpdateStatus(ctx context.Context, who access.Identity, id uint64, raw string) (*model.Application, error) {
	if !who.Authenticated() {
		return nil, apperr.Auth("auth.required")
	}
	if strings.TrimSpace(raw) == "" {
		return nil, apperr.Validation("application.status_required")
	}
	to, ok := model.ParseApplicationStatus(raw)
	if !ok {
		return nil, apperr.Validation("application.invalid_status")
	}

	a, err := s.apps.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "application.not_found")
	}
	from := a.Status

	if !who.IsAdmin {
		if to != model.StatusCompleted {
			return nil, apperr.Forbidden("application.member_complete_only")
		}
		if !who.Owns(a.UserID) {
			return nil, apperr.Forbidden("auth.forbidden")
		}
		if !model.MemberMayTransition(from, to) {
			return nil, apperr.Validation("application.not_started")
		}
	}

	if err := s.apps.UpdateStatus(ctx, id, from, to); err != nil {
		switch {
		case errors.Is(err, repository.ErrStaleStatus), errors.Is(err, repository.ErrConflict):
			return nil, apperr.Conflict("application.stale")
		default:
			return nil, apperr.Internal(err)
		}
	}
	a.Status = to
	if to != model.StatusCompleted {
		a.Feedback = nil
	}
	a.UpdatedAt = time.Now().UTC().Truncate(time.Second)

	s.log.Info("application status changed",
		"application_id", id, "from", from, "to", to, "actor_id", who.UserID, "admin", who.IsAdmin)
	s.publish(ctx, who, queue.EventStatusChanged, a, string(from))
	return a, nil
}

// LeaveFeedback stores the owner's feedback on a completed application.
// Repeated calls overwrite the previous text.
func (s *Enrollment) LeaveFeedback(ctx context.Context, who access.Identity, id uint64, feedback string) (*model.Application, error) {
	if !who.Member() {
		return nil, apperr.Forbidden("auth.members_only")
	}
	feedback = utils.StripTags(feedback)
	if feedback == "" {
		return nil, apperr.Validation("application.feedback_required")
	}

	a, err := s.apps.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "application.not_found")
	}
	if !who.Owns(a.UserID) {
		return nil, apperr.Forbidden("auth.forbidden")
	}
	if !model.FeedbackAllowed(a.Status) {
		return nil, apperr.Validation("application.feedback_not_completed")
	}

	if err := s.apps.UpdateFeedback(ctx, id, who.UserID, feedback); err != nil {
		switch {
		case errors.Is(err, repository.ErrStaleStatus), errors.Is(err, repository.ErrConflict):
			return nil, apperr.Conflict("application.stale")
		default:
			return nil, apperr.Internal(err)
		}
	}
	a.Feedback = &feedback
	s.log.Info("feedback left", "application_id", id, "user_id", who.UserID)
	s.publish(ctx, who, queue.EventFeedbackLeft, a, "")
	return a, nil
}

// Reviews returns the latest feedback. limit is clamped to
// [1, MaxReviewLimit].
func (s *Enrollment) Reviews(ctx context.Context, limit int) ([]*model.Review, error) {
	if limit < 1 {
		limit = DefaultReviewLimit
	}
	if limit > MaxReviewLimit {
		limit = MaxReviewLimit
	}
	out, err := s.apps.ListReviews(ctx, limit)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return out, nil
}

func (s *Enrollment) publish(ctx context.Context, who access.Identity, typ queue.EventType, a *model.Application, from string) {
	ctx, cancel := detached(ctx, publishTimeout)
	defer cancel()
	ev := queue.EnrollmentEvent{
		Type:          typ,
		ApplicationID: a.ID,
		UserID:        a.UserID,
		CourseID:      a.CourseID,
		CourseName:    a.CourseName,
		FromStatus:    from,
		Status:        string(a.Status),
		ActorID:       who.UserID,
		ActorIsAdmin:  who.IsAdmin,
		OccurredAt:    time.Now().UTC(),
	}
	if err := s.events.Publish(ctx, ev); err != nil {
		s.log.Warn("publish event failed", "type", typ, "application_id", a.ID, "err", err)
	}
}
