package service

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/course-enrollment/internal/apperr"
	"github.com/iliyamo/course-enrollment/internal/utils"
)

func TestRegisterStoresHashOnly(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	id, err := e.account.Register(ctx, validRegistration("teststudent"))
	require.NoError(t, err)

	u, err := e.users.GetByID(ctx, id)
	require.NoError(t, err)
	assert.NotEqual(t, "password123", u.PasswordHash)
	assert.True(t, utils.VerifyPassword(u.PasswordHash, "password123"))
	assert.False(t, u.IsAdmin)
}

func TestRegisterValidation(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	e.member(t, "teststudent")

	_, err := e.account.Register(ctx, validRegistration("teststudent"))
	requireAppErr(t, err, apperr.KindValidation, "register.login_taken")

	bad := validRegistration("another1")
	bad.Phone = "89001234567"
	_, err = e.account.Register(ctx, bad)
	requireAppErr(t, err, apperr.KindValidation, "register.invalid_phone")

	tagged := validRegistration("another2")
	tagged.FullName = "<b>Иванов</b> Иван"
	id, err := e.account.Register(ctx, tagged)
	require.NoError(t, err)
	u, err := e.users.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Иванов Иван", u.FullName)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	who := e.member(t, "teststudent")

	_, err := e.account.Login(ctx, "teststudent", "wrongpassword", "")
	requireAppErr(t, err, apperr.KindAuth, "auth.invalid_credentials")
	_, err = e.account.Login(ctx, "nobody", "password123", "")
	requireAppErr(t, err, apperr.KindAuth, "auth.invalid_credentials")
	_, err = e.account.Login(ctx, "", "", "")
	requireAppErr(t, err, apperr.KindValidation, "auth.incomplete")

	first, err := e.account.Login(ctx, "teststudent", "password123", "")
	require.NoError(t, err)
	assert.Equal(t, who.UserID, first.User.ID)

	id, err := e.account.Identify(ctx, first.SessionID)
	require.NoError(t, err)
	assert.Equal(t, who.UserID, id.UserID)
	assert.False(t, id.IsAdmin)

	second, err := e.account.Login(ctx, "teststudent", "password123", first.SessionID)
	require.NoError(t, err)
	assert.NotEqual(t, first.SessionID, second.SessionID)

	id, err = e.account.Identify(ctx, first.SessionID)
	require.NoError(t, err)
	assert.False(t, id.Authenticated(), "prior session must be destroyed")

	require.NoError(t, e.account.Logout(ctx, second.SessionID))
	id, err = e.account.Identify(ctx, second.SessionID)
	require.NoError(t, err)
	assert.False(t, id.Authenticated())
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	who := e.member(t, "teststudent")

	phone := "8(911)111-11-11"
	p, err := e.account.UpdateProfile(ctx, who, ProfileUpdate{Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, phone, p.Phone)
	assert.Equal(t, "Иванов Иван", p.FullName)

	email := "broken"
	_, err = e.account.UpdateProfile(ctx, who, ProfileUpdate{Email: &email})
	requireAppErr(t, err, apperr.KindValidation, "register.invalid_email")

	got, err := e.account.Profile(ctx, who)
	require.NoError(t, err)
	assert.Equal(t, phone, got.Phone)
	assert.Equal(t, "teststudent@example.com", got.Email)
}

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01")

func TestSetAvatar(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	who := e.member(t, "teststudent")

	p, err := e.account.SetAvatar(ctx, who, bytes.NewReader(pngHeader))
	require.NoError(t, err)
	require.NotNil(t, p.Avatar)
	assert.True(t, strings.HasPrefix(*p.Avatar, AvatarURLPrefix))
	assert.True(t, strings.HasSuffix(*p.Avatar, ".png"))
	first := filepath.Join(e.uploadDir, "avatars", filepath.Base(*p.Avatar))
	assert.FileExists(t, first)

	p, err = e.account.SetAvatar(ctx, who, bytes.NewReader(append([]byte("GIF89a"), make([]byte, 16)...)))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(*p.Avatar, ".gif"))
	assert.NoFileExists(t, first)

	_, err = e.account.SetAvatar(ctx, who, strings.NewReader("just some text"))
	requireAppErr(t, err, apperr.KindValidation, "profile.avatar_type")

	big := append(append([]byte{}, pngHeader...), make([]byte, 1<<20)...)
	_, err = e.account.SetAvatar(ctx, who, bytes.NewReader(big))
	requireAppErr(t, err, apperr.KindValidation, "profile.avatar_size")
	assert.Equal(t, []any{int64(1)}, apperr.From(err).Args)

	_, err = e.account.SetAvatar(ctx, who, bytes.NewReader(nil))
	requireAppErr(t, err, apperr.KindValidation, "profile.avatar_missing")

	entries, err := os.ReadDir(filepath.Join(e.uploadDir, "avatars"))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
