package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/course-enrollment/internal/middleware"
	"github.com/iliyamo/course-enrollment/internal/service"
)

// ApplicationHandler serves enrollment applications.
type ApplicationHandler struct {
	Enrollment *service.Enrollment
}

func NewApplicationHandler(s *service.Enrollment) *ApplicationHandler {
	return &ApplicationHandler{Enrollment: s}
}

type createApplicationReq struct {
	CourseName    string `json:"course_name"`
	StartDate     string `json:"start_date"`
	PaymentMethod string `json:"payment_method"`
}

type statusReq struct {
	ID     uint64 `json:"id"`
	Status string `json:"status"`
}

type feedbackReq struct {
	ID       uint64 `json:"id"`
	Feedback string `json:"feedback"`
}

// Create handles POST /api/applications.
func (h *ApplicationHandler) Create(c echo.Context) error {
	var req createApplicationReq
	if err := bind(c, &req); err != nil {
		return err
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	a, err := h.Enrollment.Create(ctx, middleware.IdentityOf(c), service.ApplicationInput{
		CourseName:    req.CourseName,
		StartDate:     req.StartDate,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		return err
	}
	return ok(c, http.StatusCreated, "application.created", echo.Map{
		"id":          a.ID,
		"application": viewApplication(c, a),
	})
}

// List handles GET /api/applications: the caller's own, or all for admins.
func (h *ApplicationHandler) List(c echo.Context) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	out, err := h.Enrollment.List(ctx, middleware.IdentityOf(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, viewApplications(c, out))
}

// UpdateStatus handles PUT /api/applications[/:id].
func (h *ApplicationHandler) UpdateStatus(c echo.Context) error {
	var req statusReq
	if err := bind(c, &req); err != nil {
		return err
	}
	id, err := targetID(c, req.ID)
	if err != nil {
		return err
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	a, err := h.Enrollment.UpdateStatus(ctx, middleware.IdentityOf(c), id, req.Status)
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, "application.status_updated", echo.Map{"application": viewApplication(c, a)})
}

// LeaveFeedback handles PATCH /api/applications[/:id].
func (h *ApplicationHandler) LeaveFeedback(c echo.Context) error {
	var req feedbackReq
	if err := bind(c, &req); err != nil {
		return err
	}
	id, err := targetID(c, req.ID)
	if err != nil {
		return err
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	a, err := h.Enrollment.LeaveFeedback(ctx, middleware.IdentityOf(c), id, req.Feedback)
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, "application.feedback_saved", echo.Map{"application": viewApplication(c, a)})
}
