package realty

import (
	"context"

	"snapapp/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UserRepository interface {
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	Create(ctx context.Context, u *domain.User) error
}

type PropertyRepository interface {
	Create(ctx context.Context, p *domain.Property) error
	CreateWithClient(ctx context.Context, client *domain.User, p *domain.Property) error
	ExistsByAddress(ctx context.Context, a domain.Address) (bool, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.Property, error)
}

type Protector interface {
	Protect(op domain.Operation, h func(*gin.Context, domain.Identity)) gin.HandlerFunc
}
