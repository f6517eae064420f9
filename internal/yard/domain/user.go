package domain

import "time"

// UserRole is the operational role granted to a user.
type UserRole string

const (
	RoleSuperuser   UserRole = "SUPERUSER"
	RoleAdmin       UserRole = "ADMIN"
	RoleSpotter     UserRole = "SPOTTER"
	RoleGateGuard   UserRole = "GATE_GUARD"
	RoleDockManager UserRole = "DOCK_MANAGER"
)

// User is an operator acting on the yard.
type User struct {
	ID                string    `json:"id" gorm:"primaryKey"`
	Username          string    `json:"username" gorm:"uniqueIndex"`
	FirstName         string    `json:"first_name,omitempty"`
	LastName          string    `json:"last_name,omitempty"`
	Email             string    `json:"email,omitempty"`
	Role              UserRole  `json:"role"`
	Active            bool      `json:"active"`
	AccessibleSiteIDs []string  `json:"accessible_site_ids" gorm:"serializer:json"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// HasSiteAccess reports whether the user may act on the site.
// Superusers and admins implicitly have access everywhere; everyone
// else needs an explicit grant.
func (u *User) HasSiteAccess(siteID string) bool {
	if u.Role == RoleSuperuser || u.Role == RoleAdmin {
		return true
	}
	for _, id := range u.AccessibleSiteIDs {
		if id == siteID {
			return true
		}
	}
	return false
}

// FullName joins the user's first and last names.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
