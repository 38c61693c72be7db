// Package models holds the authentication domain types shared by the auth
// engine, its backend, and the guard chain.
package models

import (
	"slices"
	"time"
)

// User is the authenticated principal. It is scoped to one tenant; a
// credential minted for tenant A never authorizes access under tenant B.
type User struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	Roles       []string   `json:"roles"`
	Permissions []string   `json:"permissions"`
	TenantID    string     `json:"tenantId"`
	IsActive    bool       `json:"isActive"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// HasRole reports membership in the user's role set; false for a nil user.
func (u *User) HasRole(role string) bool {
	return u != nil && slices.Contains(u.Roles, role)
}

// HasPermission reports membership in the user's permission set; false for
// a nil user.
func (u *User) HasPermission(permission string) bool {
	return u != nil && slices.Contains(u.Permissions, permission)
}

// Credentials is the login input. TenantID is stamped by the auth engine
// from the resolved tenant, not supplied by the caller.
type Credentials struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"rememberMe,omitempty"`
	TenantID   string `json:"tenantId,omitempty"`
}
