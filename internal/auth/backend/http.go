package backend

import (
	"context"
	"errors"
	"net/http"

	"gatehouse/internal/apiclient"
	"gatehouse/internal/auth/models"
)

// HTTP is a credential backend reached over the request pipeline, so login
// and validation calls carry tenant headers and spans like any other call.
type HTTP struct {
	api *apiclient.Client
}

// NewHTTP creates a backend talking to the auth endpoints on api's origin.
func NewHTTP(api *apiclient.Client) *HTTP {
	return &HTTP{api: api}
}

func (h *HTTP) Login(ctx context.Context, creds models.Credentials) (*Result, error) {
	var out Result
	if err := h.api.Post(ctx, "/auth/login", creds, &out); err != nil {
		return nil, mapAuthError(err, ErrInvalidCredentials)
	}
	return &out, nil
}

func (h *HTTP) Validate(ctx context.Context, token string) (*Result, error) {
	var out Result
	err := h.api.Get(ctx, "/auth/validate", &out,
		apiclient.WithHeader("Authorization", "Bearer "+token))
	if err != nil {
		return nil, mapAuthError(err, ErrInvalidToken)
	}
	return &out, nil
}

// authError keeps the server's message as the user-visible text while
// matching the sentinel under errors.Is.
type authError struct {
	sentinel error
	apiErr   *apiclient.Error
}

func (e *authError) Error() string {
	return e.apiErr.Message
}

func (e *authError) Is(target error) bool {
	return target == e.sentinel
}

func (e *authError) Unwrap() error {
	return e.apiErr
}

// mapAuthError folds a 4xx pipeline error into the matching sentinel while
// keeping the server's message; transport failures pass through untouched.
func mapAuthError(err error, sentinel error) error {
	var apiErr *apiclient.Error
	if !errors.As(err, &apiErr) {
		return err
	}
	switch apiErr.Status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return &authError{sentinel: sentinel, apiErr: apiErr}
	case http.StatusBadRequest:
		return &authError{sentinel: ErrTenantRequired, apiErr: apiErr}
	default:
		return err
	}
}

var _ Backend = (*HTTP)(nil)
