package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/course-enrollment/internal/service"
)

// ReviewHandler serves the public feed of course feedback.
type ReviewHandler struct {
	Enrollment *service.Enrollment
}

func NewReviewHandler(s *service.Enrollment) *ReviewHandler {
	return &ReviewHandler{Enrollment: s}
}

// List handles GET /api/reviews?limit=N.
func (h *ReviewHandler) List(c echo.Context) error {
	limit, err := queryLimit(c)
	if err != nil {
		return err
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	out, err := h.Enrollment.Reviews(ctx, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}
