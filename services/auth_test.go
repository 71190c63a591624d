package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saqibam92/BlashBerry-nextjs/auth"
	"github.com/saqibam92/BlashBerry-nextjs/models"
	"github.com/saqibam92/BlashBerry-nextjs/repository/memory"
)

type stubGoogle struct {
	profile *auth.GoogleProfile
	err     error
}

func (s stubGoogle) Verify(context.Context, string) (*auth.GoogleProfile, error) {
	return s.profile, s.err
}

func TestRegisterAndLogin(t *testing.T) {
	f := newFixture(t, Options{})

	sess, err := f.svc.Auth.Register(f.ctx, "Jane", " Jane@Example.com ", "secret1")
	require.NoError(t, err)
	assert.NotEmpty(t, sess.Token)
	assert.Equal(t, "jane@example.com", sess.User.Email)
	assert.Equal(t, models.RoleUser, sess.User.Role)
	assert.NotEqual(t, "secret1", sess.User.PasswordHash)

	id, err := auth.NewTokens(testSecret, time.Hour).Parse(sess.Token)
	require.NoError(t, err)
	assert.Equal(t, sess.User.ID, id.UserID)

	_, err = f.svc.Auth.Register(f.ctx, "Jane", "jane@example.com", "secret1")
	assert.ErrorIs(t, err, models.ErrConflict)

	_, err = f.svc.Auth.Register(f.ctx, "J", "nope", "123")
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Fields, 3)

	_, err = f.svc.Auth.Login(f.ctx, "JANE@example.com", "secret1")
	assert.NoError(t, err)
	_, err = f.svc.Auth.Login(f.ctx, "jane@example.com", "wrong")
	assert.ErrorIs(t, err, models.ErrUnauthorized)
	_, err = f.svc.Auth.Login(f.ctx, "ghost@example.com", "secret1")
	assert.ErrorIs(t, err, models.ErrUnauthorized)

	me, err := f.svc.Auth.Me(f.ctx, sess.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane", me.Name)
}

func TestLoginRejectsDisabledAccount(t *testing.T) {
	f := newFixture(t, Options{})
	u := f.user(t, "off@example.com")
	_, err := f.svc.Admin.UpdateUser(f.ctx, u.ID, UserInput{IsActive: ptr(false)})
	require.NoError(t, err)

	_, err = f.svc.Auth.Login(f.ctx, "off@example.com", "secret1")
	assert.ErrorIs(t, err, models.ErrUnauthorized)
}

func TestAdminLogin(t *testing.T) {
	f := newFixture(t, Options{})
	f.user(t, "shopper@example.com")
	_, err := f.svc.Admin.CreateUser(f.ctx, UserInput{Name: ptr("Admin"), Email: ptr("admin@blashberry.com"), Password: ptr("admin123"), Role: ptr("admin")})
	require.NoError(t, err)

	sess, err := f.svc.Auth.AdminLogin(f.ctx, "admin@blashberry.com", "admin123")
	require.NoError(t, err)
	assert.True(t, sess.User.IsAdmin())

	_, err = f.svc.Auth.AdminLogin(f.ctx, "shopper@example.com", "secret1")
	assert.ErrorIs(t, err, models.ErrForbidden)
}

func TestGoogleLogin(t *testing.T) {
	store := memory.New().Repositories()
	google := stubGoogle{profile: &auth.GoogleProfile{UID: "g1", Email: "New.User@gmail.com"}}
	svc := New(store, auth.NewTokens(testSecret, time.Hour), google, Options{})
	ctx := context.Background()

	sess, err := svc.Auth.GoogleLogin(ctx, "id-token")
	require.NoError(t, err)
	assert.Equal(t, "new.user@gmail.com", sess.User.Email)
	assert.Equal(t, "New.User", sess.User.Name)
	assert.Equal(t, models.ProviderGoogle, sess.User.Provider)

	again, err := svc.Auth.GoogleLogin(ctx, "id-token")
	require.NoError(t, err)
	assert.Equal(t, sess.User.ID, again.User.ID)

	_, err = svc.Auth.GoogleLogin(ctx, " ")
	var verr *models.ValidationError
	assert.ErrorAs(t, err, &verr)

	_, err = svc.Auth.Login(ctx, "new.user@gmail.com", "")
	assert.ErrorIs(t, err, models.ErrUnauthorized)
}

func TestGoogleLoginNotConfigured(t *testing.T) {
	f := newFixture(t, Options{})
	_, err := f.svc.Auth.GoogleLogin(f.ctx, "id-token")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestGoogleLoginRejectedToken(t *testing.T) {
	store := memory.New().Repositories()
	svc := New(store, auth.NewTokens(testSecret, time.Hour), stubGoogle{err: models.NewUnauthorized("Invalid Google token")}, Options{})
	_, err := svc.Auth.GoogleLogin(context.Background(), "forged")
	assert.ErrorIs(t, err, models.ErrUnauthorized)
}

func TestAuthenticateReloadsAccount(t *testing.T) {
	f := newFixture(t, Options{})
	u, err := f.svc.Admin.CreateUser(f.ctx, UserInput{Name: ptr("Ops"), Email: ptr("ops@example.com"), Password: ptr("secret1"), Role: ptr("admin")})
	require.NoError(t, err)
	sess, err := f.svc.Auth.Login(f.ctx, "ops@example.com", "secret1")
	require.NoError(t, err)

	id, err := f.svc.Auth.Authenticate(f.ctx, sess.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, id.UserID)
	assert.True(t, id.IsAdmin())

	_, err = f.svc.Admin.UpdateUser(f.ctx, u.ID, UserInput{Role: ptr("user")})
	require.NoError(t, err)
	id, err = f.svc.Auth.Authenticate(f.ctx, sess.Token)
	require.NoError(t, err)
	assert.False(t, id.IsAdmin())

	_, err = f.svc.Admin.UpdateUser(f.ctx, u.ID, UserInput{IsActive: ptr(false)})
	require.NoError(t, err)
	_, err = f.svc.Auth.Authenticate(f.ctx, sess.Token)
	assert.ErrorIs(t, err, models.ErrUnauthorized)

	require.NoError(t, f.svc.Admin.DeleteUser(f.ctx, u.ID))
	_, err = f.svc.Auth.Authenticate(f.ctx, sess.Token)
	assert.ErrorIs(t, err, models.ErrUnauthorized)

	_, err = f.svc.Auth.Authenticate(f.ctx, "not-a-token")
	assert.ErrorIs(t, err, models.ErrUnauthorized)
}
