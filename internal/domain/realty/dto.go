package realty

import (
	"strings"
	"time"

	"snapapp/internal/domain"

	"github.com/google/uuid"
)

// ClientRequest is the profile a realtor submits for a new client account.
type ClientRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
	Company   string `json:"company"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Phone     string `json:"phone"`
	Picture   string `json:"picture"`
}

func (r *ClientRequest) normalize() {
	r.Email = domain.NormalizeEmail(r.Email)
	r.Company = strings.TrimSpace(r.Company)
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Picture = strings.TrimSpace(r.Picture)
}

type PropertyRequest struct {
	ClientID   uuid.UUID         `json:"clientId"`
	RealtorID  uuid.UUID         `json:"realtorId" validate:"required"`
	ClientType domain.ClientType `json:"clientType" validate:"omitempty,oneof=Buyer Seller"`
	Address1   string            `json:"address1" validate:"required"`
	Address2   string            `json:"address2"`
	City       string            `json:"city" validate:"required"`
	State      string            `json:"state" validate:"required"`
	ZipCode    string            `json:"zipCode" validate:"required"`

	ListedOn              *time.Time `json:"listedOn"`
	ListingExpiresOn      *time.Time `json:"listingExpiresOn"`
	ContractAcceptedOn    *time.Time `json:"contractAcceptedOn"`
	DueDiligenceExpiresOn *time.Time `json:"dueDiligenceExpiresOn"`
	ClosesOn              *time.Time `json:"closesOn"`
}

func (r *PropertyRequest) normalize() {
	r.Address1 = strings.TrimSpace(r.Address1)
	r.Address2 = strings.TrimSpace(r.Address2)
	r.City = strings.TrimSpace(r.City)
	r.State = strings.ToUpper(strings.TrimSpace(r.State))
	r.ZipCode = strings.TrimSpace(r.ZipCode)
	if r.ClientType == "" {
		r.ClientType = domain.ClientTypeBuyer
	}
}

func (r PropertyRequest) address() domain.Address {
	return domain.Address{
		Address1: r.Address1,
		Address2: r.Address2,
		City:     r.City,
		State:    r.State,
		ZipCode:  r.ZipCode,
	}
}

// TransactionRequest opens a deal for a client who has no account yet.
type TransactionRequest struct {
	Client   ClientRequest   `json:"client"`
	Property PropertyRequest `json:"property"`
}

type TransactionResult struct {
	Client   domain.UserInfo `json:"client"`
	Property domain.Property `json:"property"`
}
