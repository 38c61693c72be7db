// Package guard decides, per navigation, whether a route renders. Policies
// are pure functions over an ephemeral context; the chain runs them in
// fixed order and the first opinionated policy wins. Denials are redirects
// or fallback renders, never errors.
package guard

import (
	"gatehouse/internal/auth/models"
	"gatehouse/internal/routes"
	"gatehouse/internal/tenant/config"
)

// Element is an opaque renderable the engine passes through untouched.
type Element any

// Redirect sends the navigation elsewhere.
type Redirect struct {
	To      string
	Replace bool
	State   map[string]any
}

// Failure is a policy's veto: exactly one of Redirect or Element is set.
type Failure struct {
	Redirect *Redirect
	Element  Element
}

// RedirectTo builds a replacing redirect failure.
func RedirectTo(to string, state map[string]any) *Failure {
	return &Failure{Redirect: &Redirect{To: to, Replace: true, State: state}}
}

// RenderElement builds a fallback-render failure.
func RenderElement(el Element) *Failure {
	return &Failure{Element: el}
}

// Context is built fresh for every navigation and never stored.
type Context struct {
	Route           routes.Config
	Tenant          *config.Tenant
	User            *models.User
	IsAuthenticated bool
	Location        string
	Fallback        Element
}

// Policy inspects a context and may veto the render. A nil result means
// the policy has no opinion and the chain continues.
type Policy func(Context) *Failure

// Evaluate runs the policies in order and returns the first non-nil
// failure, or nil when every policy abstains. It is synchronous and
// side-effect-free, safe to call on every render.
func Evaluate(ctx Context, policies []Policy) *Failure {
	for _, policy := range policies {
		if failure := policy(ctx); failure != nil {
			return failure
		}
	}
	return nil
}
