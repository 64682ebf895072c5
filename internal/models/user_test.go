package models

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestRoleString(t *testing.T) {
	tests := []struct {
		role Role
		want string
	}{
		{RoleUser, "user"},
		{RoleModerator, "moderator"},
		{RoleAdmin, "admin"},
		{Role(99), "user"}, // Unknown values fall back to the lowest role.
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.role.String(); got != tt.want {
				t.Errorf("Role(%d).String() = %q, want %q", tt.role, got, tt.want)
			}
		})
	}
}

func TestUserRoleHelpers(t *testing.T) {
	tests := []struct {
		name        string
		role        Role
		isAdmin     bool
		canModerate bool
	}{
		{"plain user", RoleUser, false, false},
		{"moderator", RoleModerator, false, true},
		{"admin", RoleAdmin, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := User{Role: tt.role}
			if got := u.IsAdmin(); got != tt.isAdmin {
				t.Errorf("IsAdmin() = %v, want %v", got, tt.isAdmin)
			}
			if got := u.CanModerate(); got != tt.canModerate {
				t.Errorf("CanModerate() = %v, want %v", got, tt.canModerate)
			}
		})
	}
}

// TestUserJSONHidesPasswordHash guards against the hash ever leaking
// into an API response.
func TestUserJSONHidesPasswordHash(t *testing.T) {
	u := User{
		ID:           uuid.New(),
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "$2a$10$supersecret",
		DisplayName:  "Alice",
	}

	out, err := json.Marshal(u)
	if err != nil {
		t.Fatalf("marshal user: %v", err)
	}
	if strings.Contains(string(out), "supersecret") {
		t.Errorf("serialized user leaks password hash: %s", out)
	}
	if strings.Contains(string(out), "password") {
		t.Errorf("serialized user exposes a password field: %s", out)
	}
}
