package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gatehouse/internal/auth/models"
	"gatehouse/internal/routes"
	"gatehouse/internal/tenant/config"
)

func tenantA() *config.Tenant {
	return &config.Tenant{
		ID:       "a",
		Features: config.Features{config.FeatureAdvancedReports: true},
	}
}

func userForTenant(tenantID string) *models.User {
	return &models.User{
		ID:          "1",
		Roles:       []string{"user"},
		Permissions: []string{"read"},
		TenantID:    tenantID,
	}
}

func authedContext(route routes.Config) Context {
	return Context{
		Route:           route,
		Tenant:          tenantA(),
		User:            userForTenant("a"),
		IsAuthenticated: true,
		Location:        route.Path,
	}
}

func TestEvaluate_AllPoliciesAbstainRenders(t *testing.T) {
	ctx := authedContext(routes.New("/dashboard", "Dashboard"))
	assert.Nil(t, Evaluate(ctx, DefaultPolicies()))
}

func TestAuthPolicy_RedirectsAnonymousWithOrigin(t *testing.T) {
	ctx := Context{
		Route:    routes.New("/dashboard", "Dashboard"),
		Location: "/dashboard",
	}

	failure := Evaluate(ctx, DefaultPolicies())
	require.NotNil(t, failure)
	require.NotNil(t, failure.Redirect)
	assert.Equal(t, routes.PathLogin, failure.Redirect.To)
	assert.True(t, failure.Redirect.Replace)
	assert.Equal(t, "/dashboard", failure.Redirect.State["from"])
}

func TestAuthPolicy_PublicRouteAbstains(t *testing.T) {
	ctx := Context{Route: routes.New("/login", "Login", routes.Public())}
	assert.Nil(t, Evaluate(ctx, DefaultPolicies()))
}

func TestTenantMismatch_RedirectsToLogin(t *testing.T) {
	ctx := authedContext(routes.New("/dashboard", "Dashboard"))
	ctx.User = userForTenant("b")

	failure := Evaluate(ctx, DefaultPolicies())
	require.NotNil(t, failure)
	require.NotNil(t, failure.Redirect)
	assert.Equal(t, routes.PathLogin, failure.Redirect.To)
}

func TestTenantMismatch_OptOutAllowsRender(t *testing.T) {
	ctx := authedContext(routes.New("/dashboard", "Dashboard", routes.AllowTenantMismatch()))
	ctx.User = userForTenant("b")

	assert.Nil(t, Evaluate(ctx, DefaultPolicies()))
}

func TestTenantMismatch_AbstainsWithoutResolvedTenant(t *testing.T) {
	ctx := authedContext(routes.New("/dashboard", "Dashboard"))
	ctx.Tenant = nil

	assert.Nil(t, Evaluate(ctx, DefaultPolicies()))
}

func TestRolesPolicy_MissingRoleRedirectsUnauthorized(t *testing.T) {
	ctx := authedContext(routes.New("/admin-panel", "AdminPanel", routes.WithRoles("admin")))

	failure := Evaluate(ctx, DefaultPolicies())
	require.NotNil(t, failure)
	require.NotNil(t, failure.Redirect)
	assert.Equal(t, routes.PathUnauthorized, failure.Redirect.To)
}

func TestRolesPolicy_AnyRoleMatches(t *testing.T) {
	ctx := authedContext(routes.New("/reports", "Reports", routes.WithRoles("user", "admin")))
	assert.Nil(t, Evaluate(ctx, DefaultPolicies()))
}

func TestRolesPolicy_FallbackRendersInsteadOfRedirect(t *testing.T) {
	ctx := authedContext(routes.New("/admin-panel", "AdminPanel", routes.WithRoles("admin")))
	ctx.Fallback = "AccessDeniedBanner"

	failure := Evaluate(ctx, DefaultPolicies())
	require.NotNil(t, failure)
	assert.Nil(t, failure.Redirect)
	assert.Equal(t, "AccessDeniedBanner", failure.Element)
}

func TestPermissionsPolicy_MissingPermissionDenied(t *testing.T) {
	ctx := authedContext(routes.New("/exports", "Exports", routes.WithPermissions("delete")))

	failure := Evaluate(ctx, DefaultPolicies())
	require.NotNil(t, failure)
	require.NotNil(t, failure.Redirect)
	assert.Equal(t, routes.PathUnauthorized, failure.Redirect.To)
}

func TestFeaturePolicy_FlagOffDeniesFeatureUnavailable(t *testing.T) {
	ctx := authedContext(routes.New("/charts", "Charts", routes.WithFeature(config.FeatureReportCharts)))

	failure := Evaluate(ctx, DefaultPolicies())
	require.NotNil(t, failure)
	require.NotNil(t, failure.Redirect)
	assert.Equal(t, routes.PathFeatureUnavailable, failure.Redirect.To)
}

func TestFeaturePolicy_NoTenantRedirects(t *testing.T) {
	ctx := authedContext(routes.New("/reports", "Reports", routes.WithFeature(config.FeatureAdvancedReports)))
	ctx.Tenant = nil

	failure := Evaluate(ctx, DefaultPolicies())
	require.NotNil(t, failure)
	require.NotNil(t, failure.Redirect)
	assert.Equal(t, routes.PathFeatureUnavailable, failure.Redirect.To)
}

// A context failing both the auth policy and the feature policy must
// surface the auth redirect: order decides the outcome.
func TestEvaluate_AuthWinsOverFeature(t *testing.T) {
	ctx := Context{
		Route:    routes.New("/reports", "Reports", routes.WithFeature(config.FeatureReportCharts)),
		Tenant:   tenantA(),
		Location: "/reports",
	}

	failure := Evaluate(ctx, DefaultPolicies())
	require.NotNil(t, failure)
	require.NotNil(t, failure.Redirect)
	assert.Equal(t, routes.PathLogin, failure.Redirect.To)
}

func TestEvaluate_ExtensionPoliciesRunAfterDefaults(t *testing.T) {
	var extensionRan bool
	extension := func(Context) *Failure {
		extensionRan = true
		return RedirectTo("/maintenance", nil)
	}

	// Extension cannot override an earlier short-circuit.
	anonymous := Context{Route: routes.New("/dashboard", "Dashboard"), Location: "/dashboard"}
	failure := Evaluate(anonymous, append(DefaultPolicies(), extension))
	require.NotNil(t, failure)
	assert.Equal(t, routes.PathLogin, failure.Redirect.To)
	assert.False(t, extensionRan)

	// When the defaults all pass, the extension gets its turn.
	failure = Evaluate(authedContext(routes.New("/dashboard", "Dashboard")), append(DefaultPolicies(), extension))
	require.NotNil(t, failure)
	assert.True(t, extensionRan)
	assert.Equal(t, "/maintenance", failure.Redirect.To)
}

func TestEvaluate_NilUserWithRoleRequirement(t *testing.T) {
	// Public route with role requirement and no user: roles policy still
	// applies even though auth abstained.
	ctx := Context{Route: routes.New("/stats", "Stats", routes.Public(), routes.WithRoles("admin"))}

	failure := Evaluate(ctx, DefaultPolicies())
	require.NotNil(t, failure)
	require.NotNil(t, failure.Redirect)
	assert.Equal(t, routes.PathUnauthorized, failure.Redirect.To)
}
