package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/course-enrollment/internal/apperr"
	"github.com/iliyamo/course-enrollment/internal/model"
)

func TestSupportFlow(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	owner := e.member(t, "teststudent")
	stranger := e.member(t, "otherstudent")
	admin := e.admin(t)

	_, err := e.support.Create(ctx, owner, "", "message")
	requireAppErr(t, err, apperr.KindValidation, "ticket.fields_required")
	_, err = e.support.Create(ctx, admin, "s", "m")
	requireAppErr(t, err, apperr.KindForbidden, "auth.members_only")

	tk, err := e.support.Create(ctx, owner, "Оплата", "Не проходит оплата")
	require.NoError(t, err)
	assert.Equal(t, model.TicketOpen, tk.Status)

	got, err := e.support.Get(ctx, owner, tk.ID)
	require.NoError(t, err)
	assert.Nil(t, got.UserEmail)
	_, err = e.support.Get(ctx, stranger, tk.ID)
	requireAppErr(t, err, apperr.KindForbidden, "auth.forbidden")
	_, err = e.support.Get(ctx, owner, 999)
	requireAppErr(t, err, apperr.KindNotFound, "ticket.not_found")
	got, err = e.support.Get(ctx, admin, tk.ID)
	require.NoError(t, err)
	require.NotNil(t, got.UserEmail)

	// owners never modify tickets
	_, _, err = e.support.Update(ctx, owner, tk.ID, TicketUpdate{Status: "Closed"})
	requireAppErr(t, err, apperr.KindForbidden, "ticket.readonly")
	_, _, err = e.support.Update(ctx, owner, 999, TicketUpdate{Status: "Closed"})
	requireAppErr(t, err, apperr.KindNotFound, "ticket.not_found")

	_, _, err = e.support.Update(ctx, admin, tk.ID, TicketUpdate{})
	requireAppErr(t, err, apperr.KindValidation, "ticket.update_required")
	_, _, err = e.support.Update(ctx, admin, tk.ID, TicketUpdate{Status: "Reopened"})
	requireAppErr(t, err, apperr.KindValidation, "ticket.invalid_status")
	_, _, err = e.support.Update(ctx, admin, 999, TicketUpdate{Status: "Closed"})
	requireAppErr(t, err, apperr.KindNotFound, "ticket.not_found")

	updated, key, err := e.support.Update(ctx, admin, tk.ID, TicketUpdate{Response: "Проверьте карту"})
	require.NoError(t, err)
	assert.Equal(t, "ticket.responded", key)
	assert.Equal(t, model.TicketInProcessing, updated.Status)
	require.NotNil(t, updated.AdminResponse)

	updated, key, err = e.support.Update(ctx, admin, tk.ID, TicketUpdate{Status: "Решен"})
	require.NoError(t, err)
	assert.Equal(t, "ticket.status_updated", key)
	assert.Equal(t, model.TicketResolved, updated.Status)
	assert.Equal(t, "Проверьте карту", *updated.AdminResponse)

	mine, err := e.support.List(ctx, stranger)
	require.NoError(t, err)
	assert.Empty(t, mine)
	all, err := e.support.List(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
