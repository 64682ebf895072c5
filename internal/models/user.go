// Package models defines the data structures that map to database tables
// and provides the core types used throughout the application.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Role represents a user's permission level, stored as a small integer.
type Role int

const (
	RoleUser      Role = 0
	RoleModerator Role = 1
	RoleAdmin     Role = 2
)

// String returns the human-readable role name used in API responses.
func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleModerator:
		return "moderator"
	default:
		return "user"
	}
}

// User represents a community member with a public profile.
type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never serialize the hash
	DisplayName  string    `json:"display_name"`
	AvatarURL    *string   `json:"avatar_url,omitempty"`
	Bio          *string   `json:"bio,omitempty"`
	Location     *string   `json:"location,omitempty"`
	Role         Role      `json:"role"`
	Suspended    bool      `json:"suspended"`
	JoinedAt     time.Time `json:"joined_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsAdmin returns true if the user has the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanModerate returns true for moderators and admins.
func (u *User) CanModerate() bool {
	return u.Role >= RoleModerator
}

// ProfileStats holds the aggregate counters shown on a public profile.
type ProfileStats struct {
	Projects int `json:"projects"`
	Posts    int `json:"posts"`
	Likes    int `json:"likes"`
	Views    int `json:"views"`
}
