package identify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentify_LocalhostWithPathSegment(t *testing.T) {
	assert.Equal(t, "drf", Identify("localhost", "/drf"))
	assert.Equal(t, "drf", Identify("localhost", "/drf/reports"))
	assert.Equal(t, "drf", Identify("localhost", "//drf"))
}

func TestIdentify_BareLocalhostReturnsDefault(t *testing.T) {
	assert.Equal(t, "default", Identify("localhost", "/"))
	assert.Equal(t, "default", Identify("localhost", ""))
}

func TestIdentify_TenantLocalHost(t *testing.T) {
	assert.Equal(t, "drf", Identify("tenantlocal.drf.com", ""))
	assert.Equal(t, "gemini", Identify("tenantlocal.gemini.com", ""))
	assert.Equal(t, "default", Identify("tenantlocal.", ""))
}

func TestIdentify_SubdomainStripsEnvSuffix(t *testing.T) {
	assert.Equal(t, "gemini", Identify("gemini-dev.example.com", ""))
	assert.Equal(t, "gemini", Identify("gemini-stage.example.com", ""))
	assert.Equal(t, "gemini", Identify("gemini-STAGE.example.com", ""))
	assert.Equal(t, "drf", Identify("drf.haptiq.com", ""))
}

func TestIdentify_Totality(t *testing.T) {
	inputs := []struct{ host, path string }{
		{"", ""},
		{".", "/"},
		{".haptiq.com", ""},
		{"-dev.haptiq.com", ""},
		{"localhost", "///"},
	}
	for _, in := range inputs {
		got := Identify(in.host, in.path)
		assert.NotEmpty(t, got, "host=%q path=%q", in.host, in.path)
	}
}

func TestEnvFromHost(t *testing.T) {
	assert.Equal(t, EnvLocal, EnvFromHost("localhost"))
	assert.Equal(t, EnvLocal, EnvFromHost("tenantlocal.drf.com"))
	assert.Equal(t, EnvDev, EnvFromHost("drf-dev.haptiq.com"))
	assert.Equal(t, EnvStage, EnvFromHost("drf-stage.haptiq.com"))
	assert.Equal(t, EnvProd, EnvFromHost("drf.haptiq.com"))
}

func TestAPIBaseURL(t *testing.T) {
	assert.Equal(t, "http://localhost:8080", APIBaseURL("localhost"))
	assert.Equal(t, "https://drf-dev.haptiq.com", APIBaseURL("drf-dev.haptiq.com"))
	assert.Equal(t, "https://drf-stage.haptiq.com", APIBaseURL("drf-stage.haptiq.com"))
	assert.Equal(t, "https://drf.haptiq.com", APIBaseURL("drf.haptiq.com"))
}
