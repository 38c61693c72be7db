// Package routes declares the static route table: one configuration per
// path, loaded at startup and never mutated afterwards.
package routes

import (
	"fmt"

	"gatehouse/internal/tenant/config"
)

// Reserved destinations. These are always renderable without
// authentication so a guard denial can land somewhere.
const (
	PathLogin              = "/login"
	PathUnauthorized       = "/unauthorized"
	PathFeatureUnavailable = "/feature-unavailable"
	PathNotFound           = "/404"
)

// Default redirect targets.
const (
	DefaultAuthenticated   = "/dashboard"
	DefaultUnauthenticated = PathLogin
)

// Meta carries presentation hints that guards never inspect.
type Meta struct {
	Description string
	Keywords    []string
	NoIndex     bool
}

// Config is one route's declaration. Routes require authentication unless
// declared public.
type Config struct {
	Path                string
	Component           string
	Title               string
	RequiresAuth        bool
	RequiresFeature     config.Feature
	RequiresPermissions []string
	Roles               []string
	AllowTenantMismatch bool
	Meta                Meta
}

// Option adjusts a route declaration.
type Option func(*Config)

// Public marks the route renderable without authentication.
func Public() Option {
	return func(c *Config) { c.RequiresAuth = false }
}

// WithTitle sets the page title.
func WithTitle(title string) Option {
	return func(c *Config) { c.Title = title }
}

// WithFeature requires a tenant feature flag.
func WithFeature(feature config.Feature) Option {
	return func(c *Config) { c.RequiresFeature = feature }
}

// WithRoles requires at least one of the given roles.
func WithRoles(roles ...string) Option {
	return func(c *Config) { c.Roles = roles }
}

// WithPermissions requires at least one of the given permissions.
func WithPermissions(permissions ...string) Option {
	return func(c *Config) { c.RequiresPermissions = permissions }
}

// AllowTenantMismatch opts the route out of the tenant-mismatch policy.
func AllowTenantMismatch() Option {
	return func(c *Config) { c.AllowTenantMismatch = true }
}

// WithMeta attaches presentation metadata.
func WithMeta(meta Meta) Option {
	return func(c *Config) { c.Meta = meta }
}

// New declares a route. RequiresAuth defaults to true.
func New(path, component string, opts ...Option) Config {
	c := Config{
		Path:         path,
		Component:    component,
		RequiresAuth: true,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Table is the immutable path → route mapping.
type Table struct {
	byPath map[string]Config
}

// NewTable builds a table, rejecting duplicate paths.
func NewTable(configs ...Config) (*Table, error) {
	byPath := make(map[string]Config, len(configs))
	for _, c := range configs {
		if _, exists := byPath[c.Path]; exists {
			return nil, fmt.Errorf("duplicate route path %q", c.Path)
		}
		byPath[c.Path] = c
	}
	return &Table{byPath: byPath}, nil
}

// Lookup returns the route declared for path.
func (t *Table) Lookup(path string) (Config, bool) {
	c, ok := t.byPath[path]
	return c, ok
}

// Default returns the stock application table.
func Default() *Table {
	table, err := NewTable(
		New(PathLogin, "Login", Public(),
			WithTitle("Sign In"),
			WithMeta(Meta{Description: "Sign in to your account", NoIndex: true}),
		),
		New("/dashboard", "Dashboard",
			WithTitle("Dashboard"),
			WithMeta(Meta{Description: "Your dashboard overview"}),
		),
		New("/reports", "Reports",
			WithTitle("Reports"),
			WithFeature(config.FeatureAdvancedReports),
			WithRoles("user", "admin"),
			WithMeta(Meta{Description: "View reports and analytics"}),
		),
		New("/admin-panel", "AdminPanel",
			WithTitle("Admin Panel"),
			WithRoles("admin"),
			WithMeta(Meta{Description: "Admin panel for tenant management"}),
		),
		New(PathNotFound, "NotFound", Public(),
			WithTitle("Page Not Found"),
			WithMeta(Meta{NoIndex: true}),
		),
		New(PathUnauthorized, "Unauthorized", Public(),
			WithTitle("Access Denied"),
			WithMeta(Meta{NoIndex: true}),
		),
		New(PathFeatureUnavailable, "FeatureUnavailable", Public(),
			WithTitle("Feature Unavailable"),
			WithMeta(Meta{NoIndex: true}),
		),
	)
	if err != nil {
		// The stock table is static; a duplicate is a programming error.
		panic(err)
	}
	return table
}
