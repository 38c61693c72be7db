// Package identify derives the tenant key and deployment environment from
// the host the client is being served under. Everything here is a pure
// function of its inputs so it can run before any state exists.
package identify

import "strings"

// DefaultTenant is the key used when no tenant can be derived from the host.
const DefaultTenant = "default"

// localHostname is the bare local-development hostname.
const localHostname = "localhost"

// tenantLocalPrefix marks hosts of the form tenantlocal.<tenant>.<rest>.
const tenantLocalPrefix = "tenantlocal."

// apexDomain is the deployment domain shared by all tenant hosts.
const apexDomain = "haptiq.com"

// Env is the deployment environment derived from the hostname pattern.
type Env string

const (
	EnvLocal Env = "localhost"
	EnvDev   Env = "dev"
	EnvStage Env = "stage"
	EnvProd  Env = "prod"
)

// Identify returns the tenant key for a host/path pair. It is total: it
// never fails and always returns a non-empty key, falling back to
// DefaultTenant when nothing can be derived.
//
// Rules, in priority order:
//  1. localhost with a path: the first non-empty path segment is the key.
//  2. tenantlocal.<tenant>.<rest>: the key is <tenant>.
//  3. Otherwise the first host label, minus a trailing -dev/-stage suffix.
func Identify(host, path string) string {
	if host == localHostname {
		if seg := firstSegment(path); seg != "" {
			return seg
		}
		return DefaultTenant
	}

	if rest, ok := strings.CutPrefix(host, tenantLocalPrefix); ok {
		if tenant, _, _ := strings.Cut(rest, "."); tenant != "" {
			return tenant
		}
		return DefaultTenant
	}

	subdomain, _, _ := strings.Cut(host, ".")
	if cleaned := stripEnvSuffix(subdomain); cleaned != "" {
		return cleaned
	}
	return DefaultTenant
}

// EnvFromHost maps a hostname to its deployment environment.
func EnvFromHost(host string) Env {
	switch {
	case host == localHostname || strings.HasPrefix(host, "tenantlocal"):
		return EnvLocal
	case strings.Contains(host, "-dev"):
		return EnvDev
	case strings.Contains(host, "-stage"):
		return EnvStage
	default:
		return EnvProd
	}
}

// APIBaseURL resolves the backend base address for the tenant and
// environment the host implies. Local development targets the demo origin
// on the loopback interface.
func APIBaseURL(host string) string {
	tenant := Identify(host, "")
	switch EnvFromHost(host) {
	case EnvLocal:
		return "http://localhost:8080"
	case EnvDev:
		return "https://" + tenant + "-dev." + apexDomain
	case EnvStage:
		return "https://" + tenant + "-stage." + apexDomain
	default:
		return "https://" + tenant + "." + apexDomain
	}
}

func firstSegment(path string) string {
	for _, seg := range strings.Split(path, "/") {
		if seg != "" {
			return seg
		}
	}
	return ""
}

// stripEnvSuffix removes a trailing -dev or -stage marker, case-insensitively.
func stripEnvSuffix(label string) string {
	lower := strings.ToLower(label)
	for _, suffix := range []string{"-dev", "-stage"} {
		if strings.HasSuffix(lower, suffix) {
			return label[:len(label)-len(suffix)]
		}
	}
	return label
}
