// Package router composes tenant resolution and auth initialization with
// the guard chain to gate rendering per navigation. Guarded content never
// renders until both subsystems have settled, in whichever order they
// finish.
package router

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"gatehouse/internal/auth/engine"
	"gatehouse/internal/guard"
	"gatehouse/internal/routes"
	"gatehouse/internal/tenant/resolver"
)

// Action tells the shell what to do with a navigation.
type Action int

const (
	// ActionLoading means the bootstrap has not settled; render a loading
	// indicator, not guarded content.
	ActionLoading Action = iota
	ActionRender
	ActionRedirect
	ActionFallback
)

func (a Action) String() string {
	switch a {
	case ActionRender:
		return "render"
	case ActionRedirect:
		return "redirect"
	case ActionFallback:
		return "fallback"
	default:
		return "loading"
	}
}

// Decision is the gate's verdict for one navigation.
type Decision struct {
	Action   Action
	Route    *routes.Config
	Redirect *guard.Redirect
	Element  guard.Element
}

// Gate gates every navigation on readiness and the guard chain.
type Gate struct {
	resolver *resolver.Resolver
	engine   *engine.Engine
	table    *routes.Table
	policies []guard.Policy
	log      *slog.Logger
	metrics  *Metrics
}

// Option configures a Gate.
type Option func(*Gate)

// WithPolicies appends extension policies after the defaults. They never
// run before the defaults and cannot override an earlier short-circuit.
func WithPolicies(extra ...guard.Policy) Option {
	return func(g *Gate) { g.policies = append(g.policies, extra...) }
}

// WithLogger sets the structured logger.
func WithLogger(log *slog.Logger) Option {
	return func(g *Gate) { g.log = log }
}

// WithMetrics attaches navigation counters.
func WithMetrics(m *Metrics) Option {
	return func(g *Gate) { g.metrics = m }
}

// New creates a gate over the given subsystems and route table.
func New(res *resolver.Resolver, eng *engine.Engine, table *routes.Table, opts ...Option) *Gate {
	g := &Gate{
		resolver: res,
		engine:   eng,
		table:    table,
		policies: guard.DefaultPolicies(),
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Bootstrap starts tenant resolution and auth initialization concurrently
// and waits for both to settle. Neither can fail terminally, so Bootstrap
// returns only when the gate is ready or the context is cancelled.
func (g *Gate) Bootstrap(ctx context.Context) error {
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		g.resolver.Resolve(groupCtx)
		return nil
	})
	group.Go(func() error {
		g.engine.Initialize(groupCtx)
		return nil
	})
	if err := group.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// Ready reports whether both subsystems have settled.
func (g *Gate) Ready() bool {
	if g.resolver.State().Loading {
		return false
	}
	switch g.engine.Status() {
	case engine.StatusAuthenticated, engine.StatusAnonymous:
		return true
	default:
		return false
	}
}

// Navigate evaluates one navigation. fallback, when non-nil, is rendered
// instead of redirecting on role/permission/feature denials.
func (g *Gate) Navigate(ctx context.Context, path string, fallback guard.Element) Decision {
	if !g.Ready() {
		return g.observe(ctx, path, Decision{Action: ActionLoading})
	}

	auth := g.engine.Snapshot()

	if path == "" || path == "/" {
		target := routes.DefaultUnauthenticated
		if auth.IsAuthenticated {
			target = routes.DefaultAuthenticated
		}
		return g.observe(ctx, path, Decision{
			Action:   ActionRedirect,
			Redirect: &guard.Redirect{To: target, Replace: true},
		})
	}

	route, ok := g.table.Lookup(path)
	if !ok {
		return g.observe(ctx, path, Decision{
			Action:   ActionRedirect,
			Redirect: &guard.Redirect{To: routes.PathNotFound, Replace: true},
		})
	}

	guardCtx := guard.Context{
		Route:           route,
		Tenant:          g.resolver.Current(),
		User:            auth.User,
		IsAuthenticated: auth.IsAuthenticated,
		Location:        path,
		Fallback:        fallback,
	}

	failure := guard.Evaluate(guardCtx, g.policies)
	if failure == nil {
		return g.observe(ctx, path, Decision{Action: ActionRender, Route: &route})
	}
	if failure.Redirect != nil {
		return g.observe(ctx, path, Decision{
			Action:   ActionRedirect,
			Route:    &route,
			Redirect: failure.Redirect,
		})
	}
	return g.observe(ctx, path, Decision{
		Action:  ActionFallback,
		Route:   &route,
		Element: failure.Element,
	})
}

func (g *Gate) observe(ctx context.Context, path string, d Decision) Decision {
	if g.metrics != nil {
		g.metrics.Navigations.WithLabelValues(d.Action.String()).Inc()
	}
	if d.Action == ActionRedirect {
		g.log.DebugContext(ctx, "navigation redirected",
			"path", path,
			"to", d.Redirect.To,
		)
	}
	return d
}
