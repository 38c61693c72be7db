// Package config defines the per-tenant configuration document: identity,
// branding, layout, feature flags, and the observability block. A Tenant is
// immutable once resolved; a tenant switch replaces the whole value.
package config

// Feature names a tenant-scoped boolean capability flag.
type Feature string

// Known feature flags. Route declarations and components reference these.
const (
	FeatureAdvancedReports Feature = "advancedReports"
	FeatureReportCharts    Feature = "reportCharts"
)

// Features maps flag names to their enabled state.
type Features map[Feature]bool

// Enabled reports whether a flag is on. It is total: absent or unknown
// flags, and a nil map, all read as false.
func (f Features) Enabled(name Feature) bool {
	return f != nil && f[name]
}

// Layout selects the navigation chrome a tenant renders.
type Layout string

const (
	LayoutNavbar  Layout = "navbar"
	LayoutSidebar Layout = "sidebar"
	LayoutBoth    Layout = "both"
	LayoutNone    Layout = "none"
)

// Branding holds optional visual identity assets.
type Branding struct {
	Logo string `json:"logo,omitempty"`
}

// Observability is the tenant-provided tracing configuration block. Any
// field left empty defers to the environment-level configuration.
type Observability struct {
	Active                    *bool    `json:"active,omitempty"`
	ServerURL                 string   `json:"serverUrl,omitempty"`
	ServiceName               string   `json:"serviceName,omitempty"`
	Environment               string   `json:"environment,omitempty"`
	ServiceVersion            string   `json:"serviceVersion,omitempty"`
	DistributedTracingOrigins []string `json:"distributedTracingOrigins,omitempty"`
	LogLevel                  string   `json:"logLevel,omitempty"`
	SampleRate                *float64 `json:"transactionSampleRate,omitempty"`
}

// Tenant is the identity and policy surface of one organization.
type Tenant struct {
	ID            string            `json:"id"`
	DisplayName   string            `json:"displayName"`
	Theme         map[string]string `json:"theme"`
	Branding      *Branding         `json:"branding,omitempty"`
	Layout        Layout            `json:"layout,omitempty"`
	Features      Features          `json:"features"`
	FooterText    string            `json:"footerText,omitempty"`
	Observability *Observability    `json:"apm,omitempty"`
}

// HasFeature is a total lookup over the tenant's flags; false for a nil tenant.
func (t *Tenant) HasFeature(name Feature) bool {
	if t == nil {
		return false
	}
	return t.Features.Enabled(name)
}

// Fallback returns the hardcoded tenant used when every remote resolution
// attempt has failed: default identity, minimal theme, all features off,
// tracing disabled. A fresh value is returned each call so callers cannot
// mutate a shared instance.
func Fallback() *Tenant {
	inactive := false
	return &Tenant{
		ID:          "default",
		DisplayName: "Default Tenant",
		Theme: map[string]string{
			"primary":   "#19345E",
			"secondary": "#FFFFFF",
		},
		Features: Features{
			FeatureAdvancedReports: false,
			FeatureReportCharts:    false,
		},
		Observability: &Observability{
			Active:      &inactive,
			Environment: "prod",
			LogLevel:    "error",
		},
	}
}
