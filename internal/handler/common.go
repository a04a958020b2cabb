// Package handler contains the HTTP handlers. Handlers bind request DTOs,
// call a service with a bounded context and render JSON. Failures are
// returned as errors and rendered by ErrorHandler.
package handler

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/text/language"

	"github.com/iliyamo/course-enrollment/internal/apperr"
	"github.com/iliyamo/course-enrollment/internal/i18n"
	"github.com/iliyamo/course-enrollment/internal/model"
)

// requestTimeout bounds the storage work of a single request.
const requestTimeout = 5 * time.Second

func requestContext(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), requestTimeout)
}

func lang(c echo.Context) language.Tag {
	return i18n.ResolveTag(c.Request())
}

// message renders key in the caller's language.
func message(c echo.Context, key string, args ...any) string {
	return i18n.T(lang(c), key, args...)
}

func bind(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return apperr.Validation("request.invalid_body")
	}
	return nil
}

// pathID parses the :id path parameter.
func pathID(c echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, apperr.Validation("request.invalid_id")
	}
	return id, nil
}

// targetID takes the id from the path when routed with one, otherwise from
// the body.
func targetID(c echo.Context, bodyID uint64) (uint64, error) {
	if c.Param("id") != "" {
		return pathID(c)
	}
	if bodyID == 0 {
		return 0, apperr.Validation("request.invalid_id")
	}
	return bodyID, nil
}

// queryLimit parses ?limit. Absent means 0, which services replace with
// their default.
func queryLimit(c echo.Context) (int, error) {
	raw := strings.TrimSpace(c.QueryParam("limit"))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, apperr.Validation("request.invalid_limit")
	}
	return n, nil
}

// queryInt64 parses an optional integer query parameter; absent is 0.
func queryInt64(c echo.Context, name string) (int64, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return 0, nil
	}
	return strconv.ParseInt(raw, 10, 64)
}

func queryInt(c echo.Context, name string) (int, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

func ok(c echo.Context, status int, key string, payload echo.Map) error {
	body := echo.Map{"message": message(c, key)}
	for k, v := range payload {
		body[k] = v
	}
	return c.JSON(status, body)
}

type applicationView struct {
	*model.Application
	StatusLabel string `json:"status_label"`
}

func viewApplication(c echo.Context, a *model.Application) applicationView {
	return applicationView{Application: a, StatusLabel: message(c, "status."+string(a.Status))}
}

func viewApplications(c echo.Context, in []*model.Application) []applicationView {
	out := make([]applicationView, 0, len(in))
	for _, a := range in {
		out = append(out, viewApplication(c, a))
	}
	return out
}

type ticketView struct {
	*model.Ticket
	StatusLabel string `json:"status_label"`
}

func viewTicket(c echo.Context, t *model.Ticket) ticketView {
	return ticketView{Ticket: t, StatusLabel: message(c, "ticket_status."+string(t.Status))}
}

func viewTickets(c echo.Context, in []*model.Ticket) []ticketView {
	out := make([]ticketView, 0, len(in))
	for _, t := range in {
		out = append(out, viewTicket(c, t))
	}
	return out
}
