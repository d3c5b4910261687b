package domain

import "github.com/google/uuid"

// Operation names a gated endpoint. The gate looks up the roles allowed to
// call it in a static policy table.
type Operation string

const (
	OpLogout         Operation = "Logout"
	OpWhoAmI         Operation = "WhoAmI"
	OpListProperties Operation = "ListProperties"
	OpAddClient      Operation = "AddClient"
	OpAddProperty    Operation = "AddProperty"
	OpAddTransaction Operation = "AddTransaction"
)

// Identity is the authenticated caller, produced by the authorization gate
// and handed to the protected operation as an argument.
type Identity struct {
	LoginID         int64     `json:"loginId"`
	UserID          uuid.UUID `json:"userId"`
	Email           string    `json:"email"`
	Company         string    `json:"company"`
	FirstName       string    `json:"firstName"`
	LastName        string    `json:"lastName"`
	Phone           string    `json:"phone"`
	Role            Role      `json:"role"`
	IsEmailVerified bool      `json:"isEmailVerified"`
	Picture         string    `json:"picture"`
}

func NewIdentity(info *LoginInfo) Identity {
	id := Identity{
		UserID:          info.User.ID,
		Email:           info.User.Email,
		Company:         info.User.Company,
		FirstName:       info.User.FirstName,
		LastName:        info.User.LastName,
		Phone:           info.User.Phone,
		Role:            info.User.Role,
		IsEmailVerified: info.User.IsEmailVerified,
		Picture:         info.User.Picture,
	}
	if info.Login != nil && info.Login.ID != nil {
		id.LoginID = *info.Login.ID
	}
	return id
}
