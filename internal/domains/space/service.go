package space

import (
	"context"

	"github.com/google/uuid"
)

// Service is the business contract for space mutations and reads. The
// caller's identity comes from the auth layer, never from the payload.
type Service interface {
	Create(ctx context.Context, authorID uuid.UUID, req CreateSpaceRequest) (*SpaceResponse, error)
	Update(ctx context.Context, callerID uuid.UUID, identifier string, req UpdateSpaceRequest) (*SpaceResponse, error)
	Delete(ctx context.Context, callerID uuid.UUID, id uuid.UUID) error
	Get(ctx context.Context, identifier string) (*SpaceResponse, error)
	List(ctx context.Context) ([]SpaceResponse, error)
}
