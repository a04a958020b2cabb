package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/course-enrollment/internal/apperr"
	"github.com/iliyamo/course-enrollment/internal/middleware"
	"github.com/iliyamo/course-enrollment/internal/service"
)

// AvatarField is the multipart field carrying the avatar image.
const AvatarField = "avatar"

type ProfileHandler struct {
	Account *service.Account
}

func NewProfileHandler(s *service.Account) *ProfileHandler {
	return &ProfileHandler{Account: s}
}

type profileReq struct {
	FullName *string `json:"full_name"`
	Phone    *string `json:"phone"`
	Email    *string `json:"email"`
}

// Get handles GET /api/profile.
func (h *ProfileHandler) Get(c echo.Context) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	p, err := h.Account.Profile(ctx, middleware.IdentityOf(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// Update handles PUT /api/profile.
func (h *ProfileHandler) Update(c echo.Context) error {
	var req profileReq
	if err := bind(c, &req); err != nil {
		return err
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	p, err := h.Account.UpdateProfile(ctx, middleware.IdentityOf(c), service.ProfileUpdate{
		FullName: req.FullName,
		Phone:    req.Phone,
		Email:    req.Email,
	})
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, "profile.updated", echo.Map{"user": p})
}

// UploadAvatar handles POST /api/profile/avatar.
func (h *ProfileHandler) UploadAvatar(c echo.Context) error {
	fh, err := c.FormFile(AvatarField)
	if err != nil {
		return apperr.Validation("profile.avatar_missing")
	}
	f, err := fh.Open()
	if err != nil {
		return apperr.Validation("profile.avatar_missing")
	}
	defer f.Close()

	ctx, cancel := requestContext(c)
	defer cancel()

	p, err := h.Account.SetAvatar(ctx, middleware.IdentityOf(c), f)
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, "profile.avatar_saved", echo.Map{"avatar": p.Avatar, "user": p})
}
