package guard

import "gatehouse/internal/routes"

// DefaultPolicies returns the stock chain in its required order. Later
// policies assume the earlier ones already passed; callers may append
// extra policies but never reorder or precede these.
func DefaultPolicies() []Policy {
	return []Policy{
		AuthPolicy,
		TenantMismatchPolicy,
		RolesPolicy,
		PermissionsPolicy,
		FeaturePolicy,
	}
}

// AuthPolicy redirects unauthenticated users off routes that require auth,
// remembering where they were headed.
func AuthPolicy(ctx Context) *Failure {
	if !ctx.Route.RequiresAuth {
		return nil
	}
	if !ctx.IsAuthenticated {
		return RedirectTo(routes.PathLogin, map[string]any{"from": ctx.Location})
	}
	return nil
}

// TenantMismatchPolicy rejects a credential minted for one tenant while
// browsing under another tenant's host. Routes can opt out, and public
// routes are exempt.
func TenantMismatchPolicy(ctx Context) *Failure {
	if !ctx.Route.RequiresAuth || ctx.Route.AllowTenantMismatch {
		return nil
	}
	if ctx.User != nil && ctx.Tenant != nil && ctx.User.TenantID != ctx.Tenant.ID {
		return RedirectTo(routes.PathLogin, map[string]any{"from": ctx.Location})
	}
	return nil
}

// RolesPolicy requires the user to hold at least one of the route's roles.
func RolesPolicy(ctx Context) *Failure {
	if len(ctx.Route.Roles) == 0 {
		return nil
	}
	if !anyMatch(ctx.User != nil, ctx.Route.Roles, ctx.User.HasRole) {
		return deny(ctx, routes.PathUnauthorized)
	}
	return nil
}

// PermissionsPolicy requires at least one of the route's permissions.
func PermissionsPolicy(ctx Context) *Failure {
	if len(ctx.Route.RequiresPermissions) == 0 {
		return nil
	}
	if !anyMatch(ctx.User != nil, ctx.Route.RequiresPermissions, ctx.User.HasPermission) {
		return deny(ctx, routes.PathUnauthorized)
	}
	return nil
}

// FeaturePolicy requires the tenant to have the route's feature flag on.
// With no tenant resolved the route cannot be shown at all.
func FeaturePolicy(ctx Context) *Failure {
	if ctx.Route.RequiresFeature == "" {
		return nil
	}
	if ctx.Tenant == nil {
		return RedirectTo(routes.PathFeatureUnavailable, nil)
	}
	if !ctx.Tenant.HasFeature(ctx.Route.RequiresFeature) {
		return deny(ctx, routes.PathFeatureUnavailable)
	}
	return nil
}

// deny renders the supplied fallback when one exists, else redirects.
func deny(ctx Context, redirectTo string) *Failure {
	if ctx.Fallback != nil {
		return RenderElement(ctx.Fallback)
	}
	return RedirectTo(redirectTo, nil)
}

func anyMatch(hasUser bool, required []string, check func(string) bool) bool {
	if !hasUser {
		return false
	}
	for _, item := range required {
		if check(item) {
			return true
		}
	}
	return false
}
