package middleware

import (
	"slices"

	"snapapp/internal/domain"
)

// Policy maps each gated operation to the roles allowed to call it. An empty
// role list admits any authenticated user.
type Policy map[domain.Operation][]domain.Role

func DefaultPolicy() Policy {
	return Policy{
		domain.OpLogout:         nil,
		domain.OpWhoAmI:         nil,
		domain.OpListProperties: nil,
		domain.OpAddClient:      {domain.RoleRealtor},
		domain.OpAddProperty:    {domain.RoleRealtor},
		domain.OpAddTransaction: {domain.RoleRealtor},
	}
}

func allows(roles []domain.Role, r domain.Role) bool {
	return len(roles) == 0 || slices.Contains(roles, r)
}
