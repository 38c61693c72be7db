// Package backend defines the credential backend the auth engine drives.
// The engine treats it as an opaque collaborator: it logs users in against
// a tenant and validates previously issued tokens.
package backend

import (
	"context"
	"errors"

	"gatehouse/internal/auth/models"
)

// Sentinel errors returned by backends. Login surfaces these to the user;
// Validate failures are swallowed by the engine's silent degradation.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTenantRequired     = errors.New("tenant is required")
	ErrInvalidToken       = errors.New("invalid token")
)

// Result is a successful authentication outcome.
type Result struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// Backend authenticates credentials and validates tokens.
type Backend interface {
	// Login exchanges credentials for a user and token. The credentials
	// must carry the tenant they authenticate against.
	Login(ctx context.Context, creds models.Credentials) (*Result, error)

	// Validate checks a previously issued token and returns the user it
	// encodes. It fails if the token is structurally invalid or the
	// encoded tenant/user cannot be found.
	Validate(ctx context.Context, token string) (*Result, error)
}
