package domain

import (
	"testing"

	"github.com/Ltinterdonato1/BlinkShare/internal/model"
	"github.com/Ltinterdonato1/BlinkShare/internal/repository"
	"github.com/Ltinterdonato1/BlinkShare/pkg/crypto"
	"github.com/Ltinterdonato1/BlinkShare/pkg/testutil"
	"github.com/Ltinterdonato1/BlinkShare/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func newTestAuthDomain() *authDomain {
	return NewAuthDomain(
		repository.NewUserRepository(),
		repository.NewRefreshTokenRepository(),
	)
}

func Test_authDomain_RegisterAndLogin(t *testing.T) {
	ctx := testutil.MockContext()

	domain := newTestAuthDomain()

	registered, err := domain.Register(ctx, &model.RegisterRequest{
		Name:     "dave",
		Email:    "Dave@Example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)
	require.Equal(t, "dave", registered.User.Name)

	// Duplicate name or email is rejected.
	_, err = domain.Register(ctx, &model.RegisterRequest{
		Name:     "dave",
		Email:    "other@example.com",
		Password: "correct horse",
	})
	require.Error(t, err)

	_, err = domain.Register(ctx, &model.RegisterRequest{
		Name:     "dave2",
		Email:    "dave@example.com",
		Password: "correct horse",
	})
	require.Error(t, err)

	_, err = domain.Register(ctx, &model.RegisterRequest{
		Name:     "eve",
		Email:    "eve@example.com",
		Password: "short",
	})
	require.Error(t, err)

	login, err := domain.Login(ctx, &model.LoginRequest{
		Email:    "dave@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)
	require.NotEmpty(t, login.AccessToken)
	require.NotEmpty(t, login.RefreshToken)

	_, err = domain.Login(ctx, &model.LoginRequest{
		Email:    "dave@example.com",
		Password: "wrong horse",
	})
	require.Error(t, err)
}

func Test_authDomain_RefreshRotation(t *testing.T) {
	ctx := testutil.MockContext()

	domain := newTestAuthDomain()

	_, err := domain.Register(ctx, &model.RegisterRequest{
		Name:     "dave",
		Email:    "dave@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)

	login, err := domain.Login(ctx, &model.LoginRequest{
		Email:    "dave@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)

	refreshed, err := domain.Refresh(ctx, &model.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	require.NoError(t, err)
	require.NotEmpty(t, refreshed.AccessToken)

	// Replaying the rotated-out token revokes the whole family.
	_, err = domain.Refresh(ctx, &model.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	require.Error(t, err)

	_, err = domain.Refresh(ctx, &model.RefreshTokenRequest{RefreshToken: refreshed.RefreshToken})
	require.Error(t, err)
}

func Test_authDomain_RefreshFamilyStoredHashed(t *testing.T) {
	ctx := testutil.MockContext()

	domain := newTestAuthDomain()

	_, err := domain.Register(ctx, &model.RegisterRequest{
		Name:     "dave",
		Email:    "dave@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)

	login, err := domain.Login(ctx, &model.LoginRequest{
		Email:    "dave@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)

	var claims model.RefreshToken
	require.NoError(t, xcontext.TokenEngine(ctx).Verify(login.RefreshToken, &claims))

	// The database holds the hash of the family, never the raw value
	// the client carries.
	repo := repository.NewRefreshTokenRepository()
	_, err = repo.Get(ctx, claims.Family)
	require.Error(t, err)

	stored, err := repo.Get(ctx, crypto.SHA256([]byte(claims.Family)))
	require.NoError(t, err)
	require.EqualValues(t, 0, stored.Counter)
}

func Test_authDomain_Logout(t *testing.T) {
	ctx := testutil.MockContext()

	domain := newTestAuthDomain()

	_, err := domain.Register(ctx, &model.RegisterRequest{
		Name:     "dave",
		Email:    "dave@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)

	login, err := domain.Login(ctx, &model.LoginRequest{
		Email:    "dave@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)

	_, err = domain.Logout(ctx, &model.LogoutRequest{RefreshToken: login.RefreshToken})
	require.NoError(t, err)

	_, err = domain.Refresh(ctx, &model.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	require.Error(t, err)
}
