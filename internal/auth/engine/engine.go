// Package engine owns the client's authentication state machine:
// Uninitialized → Initializing → {Authenticated, Anonymous}, with explicit
// login/logout transitions in between. It runs independently of tenant
// resolution; neither blocks the other.
package engine

import (
	"context"
	"log/slog"
	"sync"

	"gatehouse/internal/auth/backend"
	"gatehouse/internal/auth/models"
	"gatehouse/internal/session"
	"gatehouse/internal/tenant/config"
)

// Status is the engine's lifecycle state.
type Status int

const (
	StatusUninitialized Status = iota
	StatusInitializing
	StatusAuthenticated
	StatusAnonymous
)

func (s Status) String() string {
	switch s {
	case StatusInitializing:
		return "initializing"
	case StatusAuthenticated:
		return "authenticated"
	case StatusAnonymous:
		return "anonymous"
	default:
		return "uninitialized"
	}
}

// TenantProvider exposes the currently resolved tenant, nil while tenant
// resolution is still in flight.
type TenantProvider interface {
	Current() *config.Tenant
}

// Snapshot is the engine state as seen by callers at one instant.
type Snapshot struct {
	User            *models.User
	Token           string
	IsAuthenticated bool
	IsInitializing  bool
	IsLoading       bool
	Err             string
}

// Engine drives authentication against the backend and persists the
// credential pair across restarts through the session store.
type Engine struct {
	backend  backend.Backend
	sessions session.Store
	tenants  TenantProvider
	log      *slog.Logger
	metrics  *Metrics

	mu      sync.RWMutex
	status  Status
	user    *models.User
	token   string
	loading bool
	errMsg  string
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the structured logger.
func WithLogger(log *slog.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// WithMetrics attaches auth counters.
func WithMetrics(m *Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// New creates an engine in the Uninitialized state.
func New(b backend.Backend, sessions session.Store, tenants TenantProvider, opts ...Option) *Engine {
	e := &Engine{
		backend:  b,
		sessions: sessions,
		tenants:  tenants,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Initialize restores a persisted session. Absent credentials settle
// Anonymous immediately; an invalid persisted token clears the stored
// credentials and settles Anonymous without surfacing the validation error.
// Initialize never fails.
func (e *Engine) Initialize(ctx context.Context) {
	e.mu.Lock()
	e.status = StatusInitializing
	e.loading = true
	e.errMsg = ""
	e.mu.Unlock()

	stored, err := e.sessions.GetUser()
	if err != nil {
		e.log.WarnContext(ctx, "failed to read persisted session", "error", err)
	}
	if stored == nil || stored.Token == "" {
		e.settleAnonymous()
		return
	}

	res, err := e.backend.Validate(ctx, stored.Token)
	if err != nil {
		// Silent degradation: a stale or tampered credential just means
		// the user starts anonymous.
		e.log.InfoContext(ctx, "persisted token failed validation, clearing session",
			"error", err,
		)
		if clearErr := e.sessions.ClearToken(); clearErr != nil {
			e.log.WarnContext(ctx, "failed to clear persisted session", "error", clearErr)
		}
		e.settleAnonymous()
		return
	}

	e.mu.Lock()
	e.status = StatusAuthenticated
	e.user = res.User
	e.token = res.Token
	e.loading = false
	e.mu.Unlock()

	if e.metrics != nil {
		e.metrics.SessionsRestored.Inc()
	}
}

// Login authenticates the credentials against the backend under the
// currently resolved tenant. Success persists the credential pair; failure
// records the backend's message for the UI and returns the error so the
// caller can react synchronously.
//
// Concurrent logins are not de-duplicated or cancelled: the last call to
// commit wins, even if it started earlier and carries staler data.
func (e *Engine) Login(ctx context.Context, creds models.Credentials) error {
	e.mu.Lock()
	e.loading = true
	e.errMsg = ""
	e.mu.Unlock()

	tenantID := ""
	if tenant := e.tenants.Current(); tenant != nil {
		tenantID = tenant.ID
	}
	creds.TenantID = tenantID

	res, err := e.backend.Login(ctx, creds)
	if err != nil {
		e.mu.Lock()
		e.status = StatusAnonymous
		e.user = nil
		e.token = ""
		e.loading = false
		e.errMsg = err.Error()
		e.mu.Unlock()

		if e.metrics != nil {
			e.metrics.LoginFailures.Inc()
		}
		return err
	}

	if err := e.sessions.SetToken(res.Token, tenantID); err != nil {
		e.log.WarnContext(ctx, "failed to persist session", "error", err)
	}

	e.mu.Lock()
	e.status = StatusAuthenticated
	e.user = res.User
	e.token = res.Token
	e.loading = false
	e.errMsg = ""
	e.mu.Unlock()

	if e.metrics != nil {
		e.metrics.Logins.Inc()
	}
	return nil
}

// Logout clears the persisted credentials unconditionally and settles
// Anonymous. It never fails.
func (e *Engine) Logout(ctx context.Context) {
	if err := e.sessions.ClearToken(); err != nil {
		e.log.WarnContext(ctx, "failed to clear persisted session", "error", err)
	}
	e.settleAnonymous()
}

// Snapshot returns the current state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return Snapshot{
		User:            e.user,
		Token:           e.token,
		IsAuthenticated: e.user != nil,
		IsInitializing:  e.status == StatusUninitialized || e.status == StatusInitializing,
		IsLoading:       e.loading,
		Err:             e.errMsg,
	}
}

// Status returns the lifecycle state.
func (e *Engine) Status() Status {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.status
}

// HasRole reports membership in the current user's role set.
func (e *Engine) HasRole(role string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.user.HasRole(role)
}

// HasPermission reports membership in the current user's permission set.
func (e *Engine) HasPermission(permission string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.user.HasPermission(permission)
}

// HasFeature delegates to the resolved tenant's flags; false when no
// tenant has resolved yet.
func (e *Engine) HasFeature(name config.Feature) bool {
	return e.tenants.Current().HasFeature(name)
}

func (e *Engine) settleAnonymous() {
	e.mu.Lock()
	e.status = StatusAnonymous
	e.user = nil
	e.token = ""
	e.loading = false
	e.errMsg = ""
	e.mu.Unlock()
}
