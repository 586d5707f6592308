package auth

import (
	"time"

	"github.com/google/uuid"
)

// Profile roles.
const (
	RoleManufacturer = "manufacturer"
	RoleAdmin        = "admin"
)

// User is an account that can sign in.
type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Profile links a user to the manufacturer it represents. Manufacturer
// accounts start unapproved.
type Profile struct {
	ID             uuid.UUID  `json:"id"`
	UserID         uuid.UUID  `json:"user_id"`
	Role           string     `json:"role"`
	Approved       bool       `json:"approved"`
	ManufacturerID *uuid.UUID `json:"manufacturer_id,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// Identity is everything known about a signed-in user.
type Identity struct {
	User    User     `json:"user"`
	Profile *Profile `json:"profile,omitempty"`
	IsAdmin bool     `json:"is_admin"`
}

// CanManage reports whether the identity may edit the given manufacturer's
// catalog and leads.
func (i *Identity) CanManage(manufacturerID uuid.UUID) bool {
	if i == nil || i.Profile == nil || i.Profile.ManufacturerID == nil {
		return false
	}
	return i.Profile.Approved && *i.Profile.ManufacturerID == manufacturerID
}

// Registration is persisted atomically by Storage.CreateAccount: the user,
// its manufacturer record and an unapproved manufacturer profile.
type Registration struct {
	User           User
	PasswordHash   []byte
	ProfileID      uuid.UUID
	ManufacturerID uuid.UUID
	CompanyName    string
}
