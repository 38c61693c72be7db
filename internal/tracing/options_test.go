package tracing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gatehouse/internal/tenant/config"
)

func boolPtr(v bool) *bool        { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestResolve_TenantValuesWinOverEnvironment(t *testing.T) {
	tenant := &config.Tenant{
		ID: "drf",
		Observability: &config.Observability{
			ServerURL:   "https://apm.drf.example",
			Environment: "stage",
			LogLevel:    "debug",
		},
	}
	env := config.Observability{
		ServerURL:   "https://apm.shared.example",
		ServiceName: "shared-shell",
		Environment: "prod",
	}

	got := Resolve(tenant, env)

	assert.Equal(t, "https://apm.drf.example", got.ServerURL)
	assert.Equal(t, "shared-shell", got.ServiceName)
	assert.Equal(t, "stage", got.Environment)
	assert.Equal(t, "debug", got.LogLevel)
	assert.True(t, got.Active)
}

func TestResolve_DefaultsApplyWhenBothLayersSilent(t *testing.T) {
	got := Resolve(nil, config.Observability{})

	assert.Equal(t, DefaultServiceName, got.ServiceName)
	assert.Equal(t, DefaultLogLevel, got.LogLevel)
	assert.False(t, got.Active, "no server URL resolved, tracing stays off")
}

func TestResolve_ExplicitActivePreferenceWins(t *testing.T) {
	tenant := &config.Tenant{
		Observability: &config.Observability{
			Active:    boolPtr(false),
			ServerURL: "https://apm.example",
		},
	}
	got := Resolve(tenant, config.Observability{ServiceName: "shell"})
	assert.False(t, got.Active)

	got = Resolve(nil, config.Observability{Active: boolPtr(true)})
	assert.True(t, got.Active)
}

func TestResolve_SampleRateClamped(t *testing.T) {
	got := Resolve(nil, config.Observability{SampleRate: floatPtr(1.7)})
	assert.Equal(t, 1.0, *got.SampleRate)

	got = Resolve(nil, config.Observability{SampleRate: floatPtr(-0.2)})
	assert.Equal(t, 0.0, *got.SampleRate)

	got = Resolve(nil, config.Observability{SampleRate: floatPtr(0.25)})
	assert.Equal(t, 0.25, *got.SampleRate)
}

func TestSelect_InactiveOptionsYieldNoop(t *testing.T) {
	assert.IsType(t, &NoopTracer{}, Select(Options{}))
	assert.IsType(t, &OTelTracer{}, Select(Options{Active: true}))
}
