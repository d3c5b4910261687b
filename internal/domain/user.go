package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleClient  Role = "Client"
	RoleRealtor Role = "Realtor"
)

func (r Role) Valid() bool {
	return r == RoleClient || r == RoleRealtor
}

// ParseRole accepts a role name in any letter case.
func ParseRole(s string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "client":
		return RoleClient, true
	case "realtor":
		return RoleRealtor, true
	}
	return "", false
}

type User struct {
	ID              uuid.UUID
	Email           string
	PasswordHash    string
	Salt            []byte
	Company         string
	FirstName       string
	LastName        string
	Phone           string
	Role            Role
	IsEmailVerified bool
	Picture         string
	CreatedOn       time.Time
}

// UserInfo is the part of a user that is safe to hand back to clients.
type UserInfo struct {
	ID              uuid.UUID `json:"id"`
	Email           string    `json:"email"`
	Company         string    `json:"company"`
	FirstName       string    `json:"firstName"`
	LastName        string    `json:"lastName"`
	Phone           string    `json:"phone"`
	Role            Role      `json:"role"`
	IsEmailVerified bool      `json:"isEmailVerified"`
	Picture         string    `json:"picture"`
	CreatedOn       time.Time `json:"createdOn"`
}

func (u *User) Info() UserInfo {
	return UserInfo{
		ID:              u.ID,
		Email:           u.Email,
		Company:         u.Company,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		Phone:           u.Phone,
		Role:            u.Role,
		IsEmailVerified: u.IsEmailVerified,
		Picture:         u.Picture,
		CreatedOn:       u.CreatedOn,
	}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
