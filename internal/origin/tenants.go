package origin

import "gatehouse/internal/tenant/config"

// SampleTenants returns the demo tenant directory keyed by tenant id,
// matching the users seeded into the mock credential backend.
func SampleTenants() map[string]*config.Tenant {
	apmOn := true
	rate := 0.1
	return map[string]*config.Tenant{
		"default": {
			ID:          "default",
			DisplayName: "Default Tenant",
			Theme: map[string]string{
				"primary":   "#19345E",
				"secondary": "#FFFFFF",
			},
			Layout: config.LayoutNavbar,
			Features: config.Features{
				config.FeatureAdvancedReports: false,
				config.FeatureReportCharts:    false,
			},
		},
		"drf": {
			ID:          "drf",
			DisplayName: "DRF",
			Theme: map[string]string{
				"primary":   "#14532D",
				"secondary": "#F0FDF4",
			},
			Layout: config.LayoutSidebar,
			Features: config.Features{
				config.FeatureAdvancedReports: true,
				config.FeatureReportCharts:    false,
			},
			FooterText: "DRF internal use only",
		},
		"venu": {
			ID:          "venu",
			DisplayName: "Venu",
			Theme: map[string]string{
				"primary":   "#7C2D12",
				"secondary": "#FFF7ED",
			},
			Layout: config.LayoutBoth,
			Branding: &config.Branding{
				Logo: "/assets/venu-logo.svg",
			},
			Features: config.Features{
				config.FeatureAdvancedReports: true,
				config.FeatureReportCharts:    true,
			},
			Observability: &config.Observability{
				Active:      &apmOn,
				ServerURL:   "https://apm.venu.haptiq.com",
				ServiceName: "venu-client",
				Environment: "prod",
				SampleRate:  &rate,
			},
		},
	}
}
