package domain

import "time"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Account statuses. "no active" is the legacy spelling carried by existing
// documents; changing it would orphan stored records.
const (
	AccountActive   = "active"
	AccountInactive = "no active"
)

// Account models a person able to log in. All accounts sharing a
// TenantSession belong to the same workspace and see the same data.
type Account struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"`
	Role          string    `json:"role"`
	Status        string    `json:"status"`
	TenantSession string    `json:"tenant_session"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// AccessClaims is the verified content of a bearer token.
type AccessClaims struct {
	AccountID     string
	Email         string
	Role          string
	TenantSession string
}

// ValidAccountRole reports whether role is one of the known account roles.
func ValidAccountRole(role string) bool {
	return role == RoleAdmin || role == RoleUser
}

// ValidAccountStatus reports whether status is a known account status.
func ValidAccountStatus(status string) bool {
	return status == AccountActive || status == AccountInactive
}
