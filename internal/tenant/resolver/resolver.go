// Package resolver loads the tenant configuration for the session. It
// resolves exactly once per process and always settles to a usable tenant:
// the host-derived key first, then the literal "default" key, then the
// hardcoded fallback constant. Tenant misconfiguration degrades the
// experience, it never blocks or crashes the client.
package resolver

import (
	"context"
	"log/slog"
	"sync"

	"gatehouse/internal/apiclient"
	"gatehouse/internal/tenant/config"
	"gatehouse/internal/tenant/identify"
)

// State is the published resolution snapshot. Loading starts true and
// flips to false exactly once, when the whole attempt sequence settles.
type State struct {
	Tenant  *config.Tenant
	Loading bool
	Err     string
}

// Resolver performs the two-level fallback resolution.
type Resolver struct {
	api     *apiclient.Client
	host    string
	path    string
	log     *slog.Logger
	metrics *Metrics

	once sync.Once
	done chan struct{}

	mu      sync.RWMutex
	tenant  *config.Tenant
	loading bool
	errMsg  string
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithPath supplies the request path used for localhost tenant derivation.
func WithPath(path string) Option {
	return func(r *Resolver) { r.path = path }
}

// WithLogger sets the structured logger.
func WithLogger(log *slog.Logger) Option {
	return func(r *Resolver) { r.log = log }
}

// WithMetrics attaches resolution counters.
func WithMetrics(m *Metrics) Option {
	return func(r *Resolver) { r.metrics = m }
}

// New creates a resolver fetching tenant documents through api, deriving
// the primary key from host.
func New(api *apiclient.Client, host string, opts ...Option) *Resolver {
	r := &Resolver{
		api:     api,
		host:    host,
		log:     slog.Default(),
		done:    make(chan struct{}),
		loading: true,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve runs the attempt sequence on first call and returns the settled
// tenant; later calls return the cached result without refetching. The
// returned tenant is never nil.
func (r *Resolver) Resolve(ctx context.Context) *config.Tenant {
	r.once.Do(func() { r.run(ctx) })
	return r.Current()
}

// Current returns the resolved tenant, or nil while resolution is still in
// flight.
func (r *Resolver) Current() *config.Tenant {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.tenant
}

// State returns the published snapshot.
func (r *Resolver) State() State {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return State{Tenant: r.tenant, Loading: r.loading, Err: r.errMsg}
}

// Done is closed once resolution has settled.
func (r *Resolver) Done() <-chan struct{} {
	return r.done
}

// run walks the ordered attempt list. The terminal entry is the hardcoded
// fallback, which cannot fail, so run always settles.
func (r *Resolver) run(ctx context.Context) {
	key := identify.Identify(r.host, r.path)

	tenant, err := r.fetch(ctx, key)
	if err != nil {
		r.log.WarnContext(ctx, "failed to load tenant config, retrying with default",
			"tenant", key,
			"error", err,
		)
		tenant, err = r.fetch(ctx, identify.DefaultTenant)
	}

	errMsg := ""
	if err != nil {
		r.log.WarnContext(ctx, "failed to load default tenant config, using hardcoded fallback",
			"error", err,
		)
		if r.metrics != nil {
			r.metrics.HardcodedFallbacks.Inc()
		}
		tenant = config.Fallback()
		errMsg = err.Error()
	}

	r.mu.Lock()
	r.tenant = tenant
	r.loading = false
	r.errMsg = errMsg
	r.mu.Unlock()
	close(r.done)
}

func (r *Resolver) fetch(ctx context.Context, tenantID string) (*config.Tenant, error) {
	var tenant config.Tenant
	err := r.api.Get(ctx, "/tenants/"+tenantID+".json", &tenant)
	if r.metrics != nil {
		r.metrics.observeFetch(tenantID, err)
	}
	if err != nil {
		return nil, err
	}
	return &tenant, nil
}
