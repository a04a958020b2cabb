package repository

import (
	"context"
	"database/sql"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/course-enrollment/internal/database/dbtest"
	"github.com/iliyamo/course-enrollment/internal/model"
)

type fixture struct {
	db      *sql.DB
	users   *UserRepo
	courses *CourseRepo
	apps    *ApplicationRepo
	tickets *TicketRepo
}

func newFixture(t *testing.T) fixture {
	db := dbtest.Open(t)
	return fixture{
		db:      db,
		users:   NewUserRepo(db),
		courses: NewCourseRepo(db),
		apps:    NewApplicationRepo(db),
		tickets: NewTicketRepo(db),
	}
}

func (f fixture) user(t *testing.T, login string, admin bool) uint64 {
	id, err := f.users.Create(context.Background(), model.User{
		Login:        login,
		PasswordHash: "hash",
		FullName:     "Иванов Иван",
		Phone:        "8(900)123-45-67",
		Email:        login + "@example.com",
		IsAdmin:      admin,
	})
	require.NoError(t, err)
	return id
}

func (f fixture) course(t *testing.T, name string) uint64 {
	c := &model.Course{Name: name, Description: "d"}
	require.NoError(t, f.courses.Create(context.Background(), c))
	return c.ID
}

func (f fixture) application(t *testing.T, userID, courseID uint64) *model.Application {
	a := &model.Application{UserID: userID, CourseID: courseID, StartDate: "2025-01-01", PaymentMethod: "card"}
	require.NoError(t, f.apps.Create(context.Background(), a))
	return a
}

func TestUserRepo(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	id := f.user(t, "teststudent", false)
	_, err := f.users.Create(ctx, model.User{Login: "teststudent", PasswordHash: "x", FullName: "x", Phone: "x", Email: "x"})
	assert.ErrorIs(t, err, ErrLoginExists)

	u, err := f.users.GetByLogin(ctx, "teststudent")
	require.NoError(t, err)
	assert.Equal(t, id, u.ID)
	assert.False(t, u.IsAdmin)
	assert.Nil(t, u.Avatar)

	_, err = f.users.GetByLogin(ctx, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)

	exists, err := f.users.LoginExists(ctx, "teststudent")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, f.users.UpdateProfile(ctx, id, "Петров Петр", "8(911)000-00-00", "p@example.com"))
	require.NoError(t, f.users.UpdateAvatar(ctx, id, "uploads/avatars/a.png"))
	u, err = f.users.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Петров Петр", u.FullName)
	require.NotNil(t, u.Avatar)
	assert.Equal(t, "uploads/avatars/a.png", *u.Avatar)

	assert.ErrorIs(t, f.users.UpdateProfile(ctx, 999, "a", "b", "c"), ErrNotFound)
}

func TestCourseRepo(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	uid := f.user(t, "teststudent", false)

	python := f.course(t, "Python")
	golang := f.course(t, "Go")
	sqlID := f.course(t, "SQL")
	assert.ErrorIs(t, f.courses.Create(ctx, &model.Course{Name: "Python"}), ErrCourseExists)

	f.application(t, uid, golang)
	f.application(t, uid, golang)
	f.application(t, uid, python)

	list, err := f.courses.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Go", list[0].Name)
	assert.Equal(t, int64(2), list[0].ApplicationCount)

	popular, err := f.courses.Popular(ctx, 2)
	require.NoError(t, err)
	require.Len(t, popular, 2)
	assert.Equal(t, golang, popular[0].ID)
	assert.Equal(t, python, popular[1].ID)

	id, err := f.courses.IDByName(ctx, "SQL")
	require.NoError(t, err)
	assert.Equal(t, sqlID, id)
	_, err = f.courses.IDByName(ctx, "Rust")
	assert.ErrorIs(t, err, ErrNotFound)

	c, err := f.courses.GetByID(ctx, sqlID)
	require.NoError(t, err)
	c.Name = "PostgreSQL"
	c.Price = 1000
	require.NoError(t, f.courses.Update(ctx, c))
	c.Name = "Go"
	assert.ErrorIs(t, f.courses.Update(ctx, c), ErrCourseExists)

	_, err = f.courses.GetByID(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCourseDelete(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	uid := f.user(t, "teststudent", false)
	used := f.course(t, "Python")
	unused := f.course(t, "Go")
	f.application(t, uid, used)

	assert.ErrorIs(t, f.courses.Delete(ctx, used), ErrConflict)
	assert.ErrorIs(t, f.courses.Delete(ctx, 999), ErrNotFound)
	require.NoError(t, f.courses.Delete(ctx, unused))

	_, err := f.courses.GetByID(ctx, unused)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = f.courses.GetByID(ctx, used)
	assert.NoError(t, err)
}

func TestApplicationLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	uid := f.user(t, "teststudent", false)
	other := f.user(t, "otherstudent", false)
	cid := f.course(t, "Python")

	a := f.application(t, uid, cid)
	assert.Equal(t, model.StatusNew, a.Status)

	got, err := f.apps.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Python", got.CourseName)
	assert.Nil(t, got.Feedback)

	assert.ErrorIs(t, f.apps.UpdateFeedback(ctx, a.ID, uid, "too early"), ErrStaleStatus)

	require.NoError(t, f.apps.UpdateStatus(ctx, a.ID, model.StatusNew, model.StatusInProgress))
	assert.ErrorIs(t, f.apps.UpdateStatus(ctx, a.ID, model.StatusNew, model.StatusInProgress), ErrStaleStatus)
	require.NoError(t, f.apps.UpdateStatus(ctx, a.ID, model.StatusInProgress, model.StatusCompleted))

	assert.ErrorIs(t, f.apps.UpdateFeedback(ctx, a.ID, other, "not mine"), ErrStaleStatus)
	require.NoError(t, f.apps.UpdateFeedback(ctx, a.ID, uid, "great course"))

	got, err = f.apps.GetByID(ctx, a.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Feedback)
	assert.Equal(t, "great course", *got.Feedback)

	reviews, err := f.apps.ListReviews(ctx, 5)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, "great course", reviews[0].Feedback)
	assert.Equal(t, "Python", reviews[0].CourseName)

	require.NoError(t, f.apps.UpdateStatus(ctx, a.ID, model.StatusCompleted, model.StatusInProgress))
	got, err = f.apps.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Feedback)
}

func TestFeedbackCheckConstraint(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	a := f.application(t, f.user(t, "teststudent", false), f.course(t, "Python"))

	_, err := f.db.ExecContext(ctx, "UPDATE applications SET feedback = 'x' WHERE id = ?", a.ID)
	require.Error(t, err)
	assert.True(t, isCheckViolation(err))
}

func TestApplicationListScoping(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u1 := f.user(t, "firstuser", false)
	u2 := f.user(t, "seconduser", false)
	cid := f.course(t, "Python")
	first := f.application(t, u1, cid)
	second := f.application(t, u1, cid)
	f.application(t, u2, cid)

	mine, err := f.apps.ListByUser(ctx, u1)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, second.ID, mine[0].ID)
	assert.Equal(t, first.ID, mine[1].ID)
	for _, a := range mine {
		assert.Equal(t, u1, a.UserID)
		assert.Nil(t, a.FullName)
	}

	all, err := f.apps.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.NotNil(t, all[0].Email)
	assert.Equal(t, "seconduser@example.com", *all[0].Email)

	_, err = f.apps.GetByID(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)

	err = f.apps.Create(ctx, &model.Application{UserID: u1, CourseID: 999, StartDate: "2025-01-01", PaymentMethod: "card"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTicketRepo(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u1 := f.user(t, "firstuser", false)
	u2 := f.user(t, "seconduser", false)

	tk := &model.Ticket{UserID: u1, Subject: "Оплата", Message: "Не проходит оплата"}
	require.NoError(t, f.tickets.Create(ctx, tk))
	assert.Equal(t, model.TicketOpen, tk.Status)
	require.NoError(t, f.tickets.Create(ctx, &model.Ticket{UserID: u2, Subject: "s", Message: "m"}))

	mine, err := f.tickets.ListByUser(ctx, u1)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Nil(t, mine[0].UserName)

	all, err := f.tickets.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.NotNil(t, all[0].UserEmail)

	require.NoError(t, f.tickets.Respond(ctx, tk.ID, "Проверьте карту", model.TicketInProcessing))
	got, err := f.tickets.GetByID(ctx, tk.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TicketInProcessing, got.Status)
	require.NotNil(t, got.AdminResponse)
	assert.Equal(t, "Проверьте карту", *got.AdminResponse)

	require.NoError(t, f.tickets.UpdateStatus(ctx, tk.ID, model.TicketClosed))
	got, err = f.tickets.GetByID(ctx, tk.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TicketClosed, got.Status)

	assert.ErrorIs(t, f.tickets.UpdateStatus(ctx, 999, model.TicketClosed), ErrNotFound)
	_, err = f.tickets.GetByID(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)

	ok, err := f.tickets.Exists(ctx, tk.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCourseSearch(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	for _, c := range []*model.Course{
		{Name: "Python Basics", Price: 10000},
		{Name: "Advanced Python", Price: 30000},
		{Name: "Go", Price: 20000},
	} {
		require.NoError(t, f.courses.Create(ctx, c))
	}

	got, total, err := f.courses.Search(ctx, CourseSearchQuery{Name: "PYTHON", Sort: SortByPrice, Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, got, 2)
	assert.Equal(t, "Python Basics", got[0].Name)

	got, total, err = f.courses.Search(ctx, CourseSearchQuery{MaxPrice: 20000, Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Equal(t, "Go", got[0].Name)

	got, total, err = f.courses.Search(ctx, CourseSearchQuery{Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, got, 1)
	assert.Equal(t, "Python Basics", got[0].Name)

	assert.False(t, ValidCourseSort("random"))

	_, _, err = f.courses.Search(ctx, CourseSearchQuery{Page: math.MaxInt/2 + 2, PageSize: 2})
	assert.ErrorIs(t, err, ErrPageOutOfRange)
	_, _, err = f.courses.Search(ctx, CourseSearchQuery{Page: 0, PageSize: 2})
	assert.ErrorIs(t, err, ErrPageOutOfRange)
}

func TestCourseSearchWildcardsAreLiteral(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.course(t, "Go")
	f.course(t, "100% Python")
	f.course(t, "snake_case basics")

	for q, want := range map[string][]string{
		"_":  {"snake_case basics"},
		"%":  {"100% Python"},
		"!":  nil,
		"go": {"Go"},
	} {
		got, total, err := f.courses.Search(ctx, CourseSearchQuery{Name: q, Page: 1, PageSize: 10})
		require.NoError(t, err, q)
		names := []string{}
		for _, c := range got {
			names = append(names, c.Name)
		}
		assert.EqualValues(t, len(want), total, q)
		assert.ElementsMatch(t, want, names, q)
	}
}
