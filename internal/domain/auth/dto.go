package auth

import (
	"time"

	"snapapp/internal/domain"

	"github.com/google/uuid"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type SignUpRequest struct {
	Email     string      `json:"email" validate:"required,email"`
	Password  string      `json:"password" validate:"required"`
	Company   string      `json:"company"`
	FirstName string      `json:"firstName"`
	LastName  string      `json:"lastName"`
	Phone     string      `json:"phone"`
	Role      domain.Role `json:"role" validate:"required,oneof=Client Realtor"`
	Picture   string      `json:"picture"`
}

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type LoginResult struct {
	UserInfo domain.UserInfo `json:"userInfo"`
	TokenPair
}

type SignUpResult struct {
	UserID        uuid.UUID `json:"userId"`
	UserCreatedOn time.Time `json:"userCreatedOn"`
	TokenPair
}

type PurgeResult struct {
	Deleted int64 `json:"deleted"`
}
