package service

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/course-enrollment/internal/access"
	"github.com/iliyamo/course-enrollment/internal/apperr"
	"github.com/iliyamo/course-enrollment/internal/database/dbtest"
	"github.com/iliyamo/course-enrollment/internal/model"
	"github.com/iliyamo/course-enrollment/internal/queue"
	"github.com/iliyamo/course-enrollment/internal/repository"
	"github.com/iliyamo/course-enrollment/internal/session"
	"github.com/iliyamo/course-enrollment/internal/utils"
)

type env struct {
	users      *repository.UserRepo
	courses    *repository.CourseRepo
	apps       *repository.ApplicationRepo
	sessions   *session.MemoryStore
	events     *queue.Recorder
	account    *Account
	catalog    *Catalog
	enrollment *Enrollment
	support    *Support
	uploadDir  string
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db := dbtest.Open(t)
	log := slog.New(slog.DiscardHandler)

	e := &env{
		users:     repository.NewUserRepo(db),
		sessions:  session.NewMemoryStore(),
		events:    &queue.Recorder{},
		uploadDir: t.TempDir(),
	}
	e.courses = repository.NewCourseRepo(db)
	e.apps = repository.NewApplicationRepo(db)
	e.account = NewAccount(e.users, e.sessions, AccountOptions{
		BcryptCost:     bcrypt.MinCost,
		SessionTTL:     time.Hour,
		UploadDir:      e.uploadDir,
		AvatarMaxBytes: 1 << 20,
	}, log)
	e.catalog = NewCatalog(e.courses, log)
	e.enrollment = NewEnrollment(e.apps, e.courses, e.events, log)
	e.support = NewSupport(repository.NewTicketRepo(db), log)
	return e
}

func validRegistration(login string) utils.Registration {
	return utils.Registration{
		Login:    login,
		Password: "password123",
		FullName: "Иванов Иван",
		Phone:    "8(900)123-45-67",
		Email:    login + "@example.com",
	}
}

// member registers a regular user and returns its identity.
func (e *env) member(t *testing.T, login string) access.Identity {
	t.Helper()
	id, err := e.account.Register(context.Background(), validRegistration(login))
	require.NoError(t, err)
	return access.Identity{UserID: id, FullName: "Иванов Иван"}
}

// admin inserts an administrator row directly, the way createadmin does.
func (e *env) admin(t *testing.T) access.Identity {
	t.Helper()
	hash, err := utils.HashPassword("adminpass1", bcrypt.MinCost)
	require.NoError(t, err)
	id, err := e.users.Create(context.Background(), model.User{
		Login: "administrator", PasswordHash: hash, FullName: "Админ",
		Phone: "8(900)000-00-00", Email: "admin@example.com", IsAdmin: true,
	})
	require.NoError(t, err)
	return access.Identity{UserID: id, IsAdmin: true}
}

func (e *env) course(t *testing.T, name string) *model.Course {
	t.Helper()
	c, err := e.catalog.Create(context.Background(), CourseInput{Name: &name})
	require.NoError(t, err)
	return c
}

func requireAppErr(t *testing.T, err error, kind apperr.Kind, key string) {
	t.Helper()
	require.Error(t, err)
	ae := apperr.From(err)
	assert.Equal(t, kind, ae.Kind, "kind of %v", err)
	if key != "" {
		assert.Equal(t, key, ae.Key)
	}
}
