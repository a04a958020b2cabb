package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/course-enrollment/internal/middleware"
	"github.com/iliyamo/course-enrollment/internal/service"
)

type SupportHandler struct {
	Support *service.Support
}

func NewSupportHandler(s *service.Support) *SupportHandler {
	return &SupportHandler{Support: s}
}

type createTicketReq struct {
	Subject string `json:"subject"`
	Message string `json:"message"`
}

type updateTicketReq struct {
	ID            uint64 `json:"id"`
	AdminResponse string `json:"admin_response"`
	Status        string `json:"status"`
}

// Create handles POST /api/support.
func (h *SupportHandler) Create(c echo.Context) error {
	var req createTicketReq
	if err := bind(c, &req); err != nil {
		return err
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	t, err := h.Support.Create(ctx, middleware.IdentityOf(c), req.Subject, req.Message)
	if err != nil {
		return err
	}
	return ok(c, http.StatusCreated, "ticket.created", echo.Map{"id": t.ID})
}

// List handles GET /api/support.
func (h *SupportHandler) List(c echo.Context) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	out, err := h.Support.List(ctx, middleware.IdentityOf(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, viewTickets(c, out))
}

// Get handles GET /api/support/:id.
func (h *SupportHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	t, err := h.Support.Get(ctx, middleware.IdentityOf(c), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, viewTicket(c, t))
}

// Update handles PUT /api/support[/:id].
func (h *SupportHandler) Update(c echo.Context) error {
	var req updateTicketReq
	if err := bind(c, &req); err != nil {
		return err
	}
	id, err := targetID(c, req.ID)
	if err != nil {
		return err
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	t, key, err := h.Support.Update(ctx, middleware.IdentityOf(c), id, service.TicketUpdate{
		Response: req.AdminResponse,
		Status:   req.Status,
	})
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, key, echo.Map{"ticket": viewTicket(c, t)})
}
