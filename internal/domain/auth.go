package domain

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Ltinterdonato1/BlinkShare/internal/entity"
	"github.com/Ltinterdonato1/BlinkShare/internal/model"
	"github.com/Ltinterdonato1/BlinkShare/internal/repository"
	"github.com/Ltinterdonato1/BlinkShare/pkg/crypto"
	"github.com/Ltinterdonato1/BlinkShare/pkg/errorx"
	"github.com/Ltinterdonato1/BlinkShare/pkg/xcontext"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuthDomain interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*model.RegisterResponse, error)
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)
	Refresh(ctx context.Context, req *model.RefreshTokenRequest) (*model.RefreshTokenResponse, error)
	Logout(ctx context.Context, req *model.LogoutRequest) (*model.LogoutResponse, error)
}

type authDomain struct {
	userRepo         repository.UserRepository
	refreshTokenRepo repository.RefreshTokenRepository
}

func NewAuthDomain(
	userRepo repository.UserRepository,
	refreshTokenRepo repository.RefreshTokenRepository,
) *authDomain {
	return &authDomain{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
	}
}

func (d *authDomain) Register(ctx context.Context, req *model.RegisterRequest) (*model.RegisterResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if req.Name == "" || req.Email == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty name or email")
	}

	if len(req.Password) < 8 {
		return nil, errorx.New(errorx.BadRequest, "Password must be at least 8 characters")
	}

	if _, err := d.userRepo.GetByName(ctx, req.Name); err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "This username is already taken")
	}

	if _, err := d.userRepo.GetByEmail(ctx, req.Email); err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "This email is already registered")
	}

	hashed, err := crypto.HashPassword(req.Password)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot hash password: %v", err)
		return nil, errorx.Unknown
	}

	user := &entity.User{
		Base:           entity.Base{ID: uuid.NewString()},
		Name:           req.Name,
		Email:          req.Email,
		HashedPassword: hashed,
	}
	if err := d.userRepo.Create(ctx, user); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create user: %v", err)
		return nil, errorx.Unknown
	}

	return &model.RegisterResponse{User: model.ConvertUser(user, 0, 0, false)}, nil
}

func (d *authDomain) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	user, err := d.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.Unauthenticated, "Invalid email or password")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	if err := crypto.ComparePassword(user.HashedPassword, req.Password); err != nil {
		return nil, errorx.New(errorx.Unauthenticated, "Invalid email or password")
	}

	accessToken, refreshToken, err := d.generateTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	return &model.LoginResponse{
		User:         model.ConvertUser(user, 0, 0, false),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (d *authDomain) Refresh(ctx context.Context, req *model.RefreshTokenRequest) (*model.RefreshTokenResponse, error) {
	var token model.RefreshToken
	if err := xcontext.TokenEngine(ctx).Verify(req.RefreshToken, &token); err != nil {
		return nil, errorx.New(errorx.TokenExpired, "Your refresh token is expired")
	}

	// Only the hash of the family reaches the database, so a leaked
	// table cannot be replayed as tokens.
	hashedFamily := crypto.SHA256([]byte(token.Family))
	stored, err := d.refreshTokenRepo.Get(ctx, hashedFamily)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.Unauthenticated, "Invalid refresh token")
		}

		xcontext.Logger(ctx).Errorf("Cannot get refresh token: %v", err)
		return nil, errorx.Unknown
	}

	if stored.Expiration.Before(time.Now()) {
		return nil, errorx.New(errorx.TokenExpired, "Your refresh token is expired")
	}

	if stored.Counter != token.Counter {
		// A replay of an already-rotated token. Revoke the full family.
		if err := d.refreshTokenRepo.Delete(ctx, hashedFamily); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot revoke token family: %v", err)
		}

		return nil, errorx.New(errorx.Unauthenticated, "Your refresh token is stolen")
	}

	user, err := d.userRepo.GetByID(ctx, stored.UserID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user of refresh token: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.refreshTokenRepo.Rotate(ctx, hashedFamily); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot rotate refresh token: %v", err)
		return nil, errorx.Unknown
	}

	cfg := xcontext.Configs(ctx)
	accessToken, err := xcontext.TokenEngine(ctx).Generate(
		cfg.Auth.AccessToken.Expiration,
		model.AccessToken{ID: user.ID, Name: user.Name},
	)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate access token: %v", err)
		return nil, errorx.Unknown
	}

	refreshToken, err := xcontext.TokenEngine(ctx).Generate(
		cfg.Auth.RefreshToken.Expiration,
		model.RefreshToken{Family: token.Family, Counter: token.Counter + 1},
	)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate refresh token: %v", err)
		return nil, errorx.Unknown
	}

	return &model.RefreshTokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (d *authDomain) Logout(ctx context.Context, req *model.LogoutRequest) (*model.LogoutResponse, error) {
	var token model.RefreshToken
	if err := xcontext.TokenEngine(ctx).Verify(req.RefreshToken, &token); err == nil {
		if err := d.refreshTokenRepo.Delete(ctx, crypto.SHA256([]byte(token.Family))); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot delete refresh token: %v", err)
		}
	}

	return &model.LogoutResponse{}, nil
}

func (d *authDomain) generateTokens(ctx context.Context, user *entity.User) (string, string, error) {
	cfg := xcontext.Configs(ctx)

	accessToken, err := xcontext.TokenEngine(ctx).Generate(
		cfg.Auth.AccessToken.Expiration,
		model.AccessToken{ID: user.ID, Name: user.Name},
	)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate access token: %v", err)
		return "", "", errorx.Unknown
	}

	family := uuid.NewString()
	refreshToken, err := xcontext.TokenEngine(ctx).Generate(
		cfg.Auth.RefreshToken.Expiration,
		model.RefreshToken{Family: family, Counter: 0},
	)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate refresh token: %v", err)
		return "", "", errorx.Unknown
	}

	err = d.refreshTokenRepo.Create(ctx, &entity.RefreshToken{
		UserID:     user.ID,
		Family:     crypto.SHA256([]byte(family)),
		Counter:    0,
		Expiration: time.Now().Add(cfg.Auth.RefreshToken.Expiration),
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot store refresh token: %v", err)
		return "", "", errorx.Unknown
	}

	return accessToken, refreshToken, nil
}
