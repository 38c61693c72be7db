package backend

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"gatehouse/internal/auth/models"
)

const defaultTokenTTL = 24 * time.Hour

// sessionClaims is the JWT payload a mock token carries: the user and the
// tenant the credential was minted for.
type sessionClaims struct {
	TenantID string `json:"tid"`
	jwt.RegisteredClaims
}

// Mock is an in-memory credential backend seeded with a small multi-tenant
// user directory. Tokens are HS256 JWTs so structural validation failures
// behave like a real identity provider's.
type Mock struct {
	signingKey []byte
	tokenTTL   time.Duration
	now        func() time.Time
	users      []models.User
}

// MockOption configures the mock backend.
type MockOption func(*Mock)

// WithUsers replaces the seeded directory.
func WithUsers(users []models.User) MockOption {
	return func(m *Mock) { m.users = users }
}

// WithTokenTTL overrides the issued token lifetime.
func WithTokenTTL(ttl time.Duration) MockOption {
	return func(m *Mock) { m.tokenTTL = ttl }
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) MockOption {
	return func(m *Mock) { m.now = now }
}

// NewMock creates a mock backend signing tokens with signingKey.
func NewMock(signingKey string, opts ...MockOption) *Mock {
	m := &Mock{
		signingKey: []byte(signingKey),
		tokenTTL:   defaultTokenTTL,
		now:        time.Now,
		users:      SeedUsers(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Login matches the credentials against the seeded directory, scoped to
// the tenant the credentials carry.
func (m *Mock) Login(_ context.Context, creds models.Credentials) (*Result, error) {
	if creds.TenantID == "" {
		return nil, ErrTenantRequired
	}
	if len(creds.Password) < 4 {
		return nil, ErrInvalidCredentials
	}

	matched := m.findByEmail(creds.Email, creds.TenantID)
	if matched == nil {
		return nil, ErrInvalidCredentials
	}

	now := m.now()
	user := *matched
	user.LastLoginAt = &now
	user.UpdatedAt = now

	token, err := m.mintToken(&user)
	if err != nil {
		return nil, err
	}
	return &Result{User: &user, Token: token}, nil
}

// Validate parses the token and resolves the user and tenant it encodes.
func (m *Mock) Validate(_ context.Context, token string) (*Result, error) {
	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return m.signingKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(m.now))
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	user := m.findByID(claims.Subject, claims.TenantID)
	if user == nil {
		return nil, ErrInvalidToken
	}
	copied := *user
	return &Result{User: &copied, Token: token}, nil
}

func (m *Mock) findByEmail(email, tenantID string) *models.User {
	for i := range m.users {
		u := &m.users[i]
		if u.IsActive && strings.EqualFold(u.Email, email) && u.TenantID == tenantID {
			return u
		}
	}
	return nil
}

func (m *Mock) findByID(userID, tenantID string) *models.User {
	for i := range m.users {
		u := &m.users[i]
		if u.ID == userID && u.TenantID == tenantID {
			return u
		}
	}
	return nil
}

func (m *Mock) mintToken(user *models.User) (string, error) {
	now := m.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		TenantID: user.TenantID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	})
	return token.SignedString(m.signingKey)
}

// SeedUsers returns the demo directory: one user per sample tenant.
func SeedUsers() []models.User {
	created := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	return []models.User{
		{
			ID:          "1",
			Email:       "tenant-default-user@example.com",
			Name:        "Default Tenant Owner",
			Roles:       []string{"admin"},
			Permissions: []string{"read", "write", "delete"},
			TenantID:    "default",
			IsActive:    true,
			CreatedAt:   created,
			UpdatedAt:   created,
		},
		{
			ID:          "2",
			Email:       "tenant-drf-user@example.com",
			Name:        "DRF User",
			Roles:       []string{"user"},
			Permissions: []string{"read", "write"},
			TenantID:    "drf",
			IsActive:    true,
			CreatedAt:   created,
			UpdatedAt:   created,
		},
		{
			ID:          "3",
			Email:       "tenant-venu-user@example.com",
			Name:        "Venu Admin",
			Roles:       []string{"admin"},
			Permissions: []string{"read", "write"},
			TenantID:    "venu",
			IsActive:    true,
			CreatedAt:   created,
			UpdatedAt:   created,
		},
	}
}

var _ Backend = (*Mock)(nil)
