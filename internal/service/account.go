package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/course-enrollment/internal/access"
	"github.com/iliyamo/course-enrollment/internal/apperr"
	"github.com/iliyamo/course-enrollment/internal/model"
	"github.com/iliyamo/course-enrollment/internal/repository"
	"github.com/iliyamo/course-enrollment/internal/session"
	"github.com/iliyamo/course-enrollment/internal/utils"
)

// AvatarURLPrefix is the public path avatars are served under.
const AvatarURLPrefix = "/uploads/avatars/"

var avatarExt = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// AccountOptions configures an Account service.
type AccountOptions struct {
	BcryptCost     int
	SessionTTL     time.Duration
	UploadDir      string
	AvatarMaxBytes int64
}

// Account handles registration, login sessions and profiles.
type Account struct {
	users    *repository.UserRepo
	sessions session.Store
	opts     AccountOptions
	log      *slog.Logger
}

func NewAccount(users *repository.UserRepo, sessions session.Store, opts AccountOptions, log *slog.Logger) *Account {
	return &Account{users: users, sessions: sessions, opts: opts, log: log.With("svc", "account")}
}

// Register validates r and creates a non-admin user.
func (s *Account) Register(ctx context.Context, r utils.Registration) (uint64, error) {
	r.Login = utils.StripTags(r.Login)
	r.FullName = utils.StripTags(r.FullName)
	r.Phone = utils.StripTags(r.Phone)
	r.Email = utils.StripTags(r.Email)
	r = r.Normalize()
	if err := r.Validate(); err != nil {
		return 0, err
	}

	taken, err := s.users.LoginExists(ctx, r.Login)
	if err != nil {
		return 0, apperr.Unavailable("register.failed", err)
	}
	if taken {
		return 0, apperr.Validation("register.login_taken")
	}

	hash, err := utils.HashPassword(r.Password, s.opts.BcryptCost)
	if err != nil {
		return 0, apperr.Internal(err)
	}
	id, err := s.users.Create(ctx, model.User{
		Login:        r.Login,
		PasswordHash: hash,
		FullName:     r.FullName,
		Phone:        r.Phone,
		Email:        r.Email,
	})
	if err != nil {
		if errors.Is(err, repository.ErrLoginExists) {
			return 0, apperr.Validation("register.login_taken")
		}
		return 0, apperr.Unavailable("register.failed", err)
	}
	s.log.Info("user registered", "user_id", id)
	return id, nil
}

// LoginResult is a freshly created session and its user.
type LoginResult struct {
	SessionID string
	User      model.User
}

// Login checks the credentials and starts a new session. priorSID, when
// set, is destroyed first so a pre-login session id is never reused.
func (s *Account) Login(ctx context.Context, login, password, priorSID string) (LoginResult, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return LoginResult{}, apperr.Validation("auth.incomplete")
	}

	u, err := s.users.GetByLogin(ctx, login)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return LoginResult{}, apperr.Internal(err)
		}
		utils.BurnPasswordCheck(password)
		return LoginResult{}, apperr.Auth("auth.invalid_credentials")
	}
	if !utils.VerifyPassword(u.PasswordHash, password) {
		return LoginResult{}, apperr.Auth("auth.invalid_credentials")
	}

	if priorSID != "" {
		if err := s.sessions.Destroy(ctx, priorSID); err != nil {
			s.log.Warn("destroy prior session", "err", err)
		}
	}
	sid, err := s.sessions.Create(ctx, session.Data{
		UserID:   u.ID,
		IsAdmin:  u.IsAdmin,
		FullName: u.FullName,
	}, s.opts.SessionTTL)
	if err != nil {
		return LoginResult{}, apperr.Internal(err)
	}
	s.log.Info("user logged in", "user_id", u.ID, "admin", u.IsAdmin)
	return LoginResult{SessionID: sid, User: u}, nil
}

// Logout ends session sid. Unknown ids are ignored.
func (s *Account) Logout(ctx context.Context, sid string) error {
	if sid == "" {
		return nil
	}
	if err := s.sessions.Destroy(ctx, sid); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// Identify resolves a session id into the caller's identity. Unknown or
// expired sessions yield the anonymous identity.
func (s *Account) Identify(ctx context.Context, sid string) (access.Identity, error) {
	if sid == "" {
		return access.Identity{}, nil
	}
	d, err := s.sessions.Get(ctx, sid)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return access.Identity{}, nil
		}
		return access.Identity{}, err
	}
	return access.Identity{UserID: d.UserID, IsAdmin: d.IsAdmin, FullName: d.FullName}, nil
}

// Profile returns the profile of the caller.
func (s *Account) Profile(ctx context.Context, who access.Identity) (model.Profile, error) {
	u, err := s.users.GetByID(ctx, who.UserID)
	if err != nil {
		return model.Profile{}, notFoundOr(err, "profile.not_found")
	}
	return model.ProfileOf(u), nil
}

// ProfileUpdate holds the fields a user may change. Nil means unchanged.
type ProfileUpdate struct {
	FullName *string
	Phone    *string
	Email    *string
}

// UpdateProfile applies p to the caller's profile.
func (s *Account) UpdateProfile(ctx context.Context, who access.Identity, p ProfileUpdate) (model.Profile, error) {
	u, err := s.users.GetByID(ctx, who.UserID)
	if err != nil {
		return model.Profile{}, notFoundOr(err, "profile.not_found")
	}
	if p.FullName != nil {
		u.FullName = strings.Join(strings.Fields(utils.StripTags(*p.FullName)), " ")
	}
	if p.Phone != nil {
		u.Phone = utils.StripTags(*p.Phone)
	}
	if p.Email != nil {
		u.Email = utils.StripTags(*p.Email)
	}
	if err := utils.ValidateContact(u.FullName, u.Phone, u.Email); err != nil {
		return model.Profile{}, err
	}
	if err := s.users.UpdateProfile(ctx, u.ID, u.FullName, u.Phone, u.Email); err != nil {
		return model.Profile{}, notFoundOr(err, "profile.not_found")
	}
	return model.ProfileOf(u), nil
}

// SetAvatar stores an uploaded image as the caller's avatar. The content
// type is sniffed from the bytes; the client supplied one is ignored.
func (s *Account) SetAvatar(ctx context.Context, who access.Identity, src io.Reader) (model.Profile, error) {
	u, err := s.users.GetByID(ctx, who.UserID)
	if err != nil {
		return model.Profile{}, notFoundOr(err, "profile.not_found")
	}

	data, err := io.ReadAll(io.LimitReader(src, s.opts.AvatarMaxBytes+1))
	if err != nil {
		return model.Profile{}, apperr.Validation("profile.avatar_missing")
	}
	if len(data) == 0 {
		return model.Profile{}, apperr.Validation("profile.avatar_missing")
	}
	if int64(len(data)) > s.opts.AvatarMaxBytes {
		return model.Profile{}, apperr.Validation("profile.avatar_size").With(s.AvatarMaxMB())
	}
	ext, ok := avatarExt[http.DetectContentType(data)]
	if !ok {
		return model.Profile{}, apperr.Validation("profile.avatar_type")
	}

	dir := filepath.Join(s.opts.UploadDir, "avatars")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return model.Profile{}, apperr.Internal(err)
	}
	name := uuid.NewString() + ext
	full := filepath.Join(dir, name)
	if err := writeFile(full, data); err != nil {
		return model.Profile{}, apperr.Internal(err)
	}

	url := AvatarURLPrefix + name
	if err := s.users.UpdateAvatar(ctx, u.ID, url); err != nil {
		_ = os.Remove(full)
		return model.Profile{}, notFoundOr(err, "profile.not_found")
	}
	if u.Avatar != nil {
		s.removeAvatar(*u.Avatar)
	}
	u.Avatar = &url
	s.log.Info("avatar updated", "user_id", u.ID, "file", name)
	return model.ProfileOf(u), nil
}

// removeAvatar deletes the file behind a stored avatar URL. Paths outside
// the avatar directory are left alone.
func (s *Account) removeAvatar(url string) {
	if !strings.HasPrefix(url, AvatarURLPrefix) {
		return
	}
	name := path.Base(url)
	if name == "." || name == "/" || strings.Contains(name, "..") {
		return
	}
	full := filepath.Join(s.opts.UploadDir, "avatars", name)
	if err := os.Remove(full); err != nil && !errors.Is(err, os.ErrNotExist) {
		s.log.Warn("remove old avatar", "file", full, "err", err)
	}
}

func writeFile(name string, data []byte) error {
	f, err := os.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, bytes.NewReader(data)); err != nil {
		_ = f.Close()
		_ = os.Remove(name)
		return fmt.Errorf("write %s: %w", name, err)
	}
	return f.Close()
}

// AvatarMaxMB is the upload cap rounded to whole megabytes, for messages.
func (s *Account) AvatarMaxMB() int64 {
	return s.opts.AvatarMaxBytes / (1 << 20)
}
