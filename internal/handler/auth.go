package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/course-enrollment/internal/apperr"
	"github.com/iliyamo/course-enrollment/internal/middleware"
	"github.com/iliyamo/course-enrollment/internal/service"
	"github.com/iliyamo/course-enrollment/internal/utils"
)

// AuthHandler serves the action-dispatch auth endpoint.
type AuthHandler struct {
	Account  *service.Account
	Sessions *middleware.Sessions
}

func NewAuthHandler(a *service.Account, s *middleware.Sessions) *AuthHandler {
	return &AuthHandler{Account: a, Sessions: s}
}

type authReq struct {
	Action   string `json:"action"`
	Login    string `json:"login"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
}

// Dispatch handles POST /api/auth with action register, login or logout.
func (h *AuthHandler) Dispatch(c echo.Context) error {
	var req authReq
	if err := bind(c, &req); err != nil {
		return err
	}
	switch strings.ToLower(strings.TrimSpace(req.Action)) {
	case "register":
		return h.register(c, req)
	case "login":
		return h.login(c, req)
	case "logout":
		return h.logout(c)
	default:
		return apperr.Validation("auth.unknown_action")
	}
}

func (h *AuthHandler) register(c echo.Context, req authReq) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	id, err := h.Account.Register(ctx, utils.Registration{
		Login:    req.Login,
		Password: req.Password,
		FullName: req.FullName,
		Phone:    req.Phone,
		Email:    req.Email,
	})
	if err != nil {
		return err
	}
	return ok(c, http.StatusCreated, "register.ok", echo.Map{"success": true, "user_id": id})
}

func (h *AuthHandler) login(c echo.Context, req authReq) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	res, err := h.Account.Login(ctx, req.Login, req.Password, middleware.SessionID(c))
	if err != nil {
		return err
	}
	if err := h.Sessions.Issue(c, res.SessionID); err != nil {
		return apperr.Internal(err)
	}
	return ok(c, http.StatusOK, "auth.login_ok", echo.Map{
		"success":   true,
		"is_admin":  res.User.IsAdmin,
		"user_id":   res.User.ID,
		"full_name": res.User.FullName,
		"avatar":    res.User.Avatar,
	})
}

func (h *AuthHandler) logout(c echo.Context) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.Account.Logout(ctx, middleware.SessionID(c)); err != nil {
		return err
	}
	h.Sessions.Clear(c)
	return ok(c, http.StatusOK, "auth.logout_ok", echo.Map{"success": true})
}

// Session handles GET /api/auth/session.
func (h *AuthHandler) Session(c echo.Context) error {
	id := middleware.IdentityOf(c)
	ctx, cancel := requestContext(c)
	defer cancel()

	p, err := h.Account.Profile(ctx, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"user_id":   id.UserID,
		"is_admin":  id.IsAdmin,
		"full_name": p.FullName,
		"avatar":    p.Avatar,
	})
}
