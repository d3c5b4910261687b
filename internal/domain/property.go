package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type ClientType string

const (
	ClientTypeBuyer  ClientType = "Buyer"
	ClientTypeSeller ClientType = "Seller"
)

func (t ClientType) Valid() bool {
	return t == ClientTypeBuyer || t == ClientTypeSeller
}

type Address struct {
	Address1 string `json:"address1"`
	Address2 string `json:"address2"`
	City     string `json:"city"`
	State    string `json:"state"`
	ZipCode  string `json:"zipCode"`
}

// String renders "1 Main St, Apt 2, Springfield, IL 62701".
func (a Address) String() string {
	line := a.Address1
	if strings.TrimSpace(a.Address2) != "" {
		line += ", " + a.Address2
	}
	return fmt.Sprintf("%s, %s, %s %s", line, a.City, a.State, a.ZipCode)
}

type Property struct {
	ID         int64      `json:"id"`
	ClientID   uuid.UUID  `json:"clientId"`
	RealtorID  uuid.UUID  `json:"realtorId"`
	ClientType ClientType `json:"clientType"`
	Address

	ListedOn              *time.Time `json:"listedOn,omitempty"`
	ListingExpiresOn      *time.Time `json:"listingExpiresOn,omitempty"`
	ContractAcceptedOn    *time.Time `json:"contractAcceptedOn,omitempty"`
	DueDiligenceExpiresOn *time.Time `json:"dueDiligenceExpiresOn,omitempty"`
	ClosesOn              *time.Time `json:"closesOn,omitempty"`
	CreatedOn             time.Time  `json:"createdOn"`
}
