package user

import (
	"context"

	"github.com/google/uuid"
)

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)
	Refresh(ctx context.Context, req RefreshTokenRequest) (*AuthResponse, error)
	Profile(ctx context.Context, id uuid.UUID) (*UserResponse, error)
}
