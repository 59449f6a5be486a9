package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"spacecatalog-backend/internal/domains/user"
	"spacecatalog-backend/internal/shared/apperror"
	"spacecatalog-backend/pkg/jwt"
)

const bcryptCost = 12

type userService struct {
	repo user.Repository
	jwt  *jwt.Manager
}

func NewUserService(repo user.Repository, jwtManager *jwt.Manager) user.Service {
	return &userService{repo: repo, jwt: jwtManager}
}

func (s *userService) Register(ctx context.Context, req user.RegisterRequest) (*user.AuthResponse, error) {
	// 1. Validate payload
	if err := req.Validate(); err != nil {
		return nil, apperror.Wrap(apperror.KindValidation, user.ErrCodeValidation, err.Error(), err)
	}

	// 2. Hash the password; never store or log the plaintext
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, err
	}

	// 3. Persist; duplicate email/username surfaces as Conflict
	created, err := s.repo.Create(ctx, &user.User{
		Username:     strings.TrimSpace(req.Username),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hash),
	})
	if err != nil {
		return nil, err
	}

	return s.issueTokens(created)
}

func (s *userService) Login(ctx context.Context, req user.LoginRequest) (*user.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, apperror.Wrap(apperror.KindValidation, user.ErrCodeValidation, err.Error(), err)
	}

	invalidCredentials := apperror.New(apperror.KindUnauthorized, user.ErrCodeInvalidCredentials,
		"invalid email or password")

	// An unknown email and a wrong password answer identically.
	u, err := s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if apperror.IsKind(err, apperror.KindNotFound) {
			return nil, invalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, invalidCredentials
	}

	return s.issueTokens(u)
}

func (s *userService) Refresh(ctx context.Context, req user.RefreshTokenRequest) (*user.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, apperror.Wrap(apperror.KindValidation, user.ErrCodeValidation, err.Error(), err)
	}

	claims, err := s.jwt.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, apperror.New(apperror.KindUnauthorized, user.ErrCodeInvalidToken, "invalid refresh token")
	}

	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, apperror.New(apperror.KindUnauthorized, user.ErrCodeInvalidToken, "invalid refresh token")
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if apperror.IsKind(err, apperror.KindNotFound) {
			return nil, apperror.New(apperror.KindUnauthorized, user.ErrCodeInvalidToken, "invalid refresh token")
		}
		return nil, err
	}

	return s.issueTokens(u)
}

func (s *userService) Profile(ctx context.Context, id uuid.UUID) (*user.UserResponse, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.ToResponse(u), nil
}

func (s *userService) issueTokens(u *user.User) (*user.AuthResponse, error) {
	accessToken, err := s.jwt.GenerateAccessToken(u.ID.String(), u.Username, u.Email)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.jwt.GenerateRefreshToken(u.ID.String())
	if err != nil {
		return nil, err
	}

	return &user.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.jwt.AccessTTL().Seconds()),
		User:         user.ToResponse(u),
	}, nil
}
