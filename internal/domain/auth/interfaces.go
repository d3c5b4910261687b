package auth

import (
	"context"
	"time"

	"snapapp/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UserRepository: only the methods the auth service uses
type UserRepository interface {
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	CreateWithLogin(ctx context.Context, u *domain.User, l *domain.Login) error
}

type LoginRepository interface {
	GetLoginInfoByUserID(ctx context.Context, userID uuid.UUID) (*domain.LoginInfo, error)
	GetLoginInfoByEmail(ctx context.Context, email string) (*domain.LoginInfo, error)
	UpsertLogin(ctx context.Context, l *domain.Login) (int64, error)
	DeleteLoginByUserID(ctx context.Context, userID uuid.UUID) error
	DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// Protector wraps a handler with the authorization gate for op.
type Protector interface {
	Protect(op domain.Operation, h func(*gin.Context, domain.Identity)) gin.HandlerFunc
}
