package tracing

import "gatehouse/internal/tenant/config"

// DefaultServiceName identifies the client when no other name is configured.
const DefaultServiceName = "gatehouse-client"

// DefaultLogLevel applies when neither tenant nor environment set one.
const DefaultLogLevel = "error"

// Options is the resolved observability configuration for one session.
type Options struct {
	Active                    bool
	ServerURL                 string
	ServiceName               string
	Environment               string
	ServiceVersion            string
	DistributedTracingOrigins []string
	LogLevel                  string
	SampleRate                *float64
}

// Resolve merges the tenant's observability block over the environment
// configuration: tenant values win, then environment values, then defaults.
// When neither layer states an Active preference, tracing is on only if
// both a server URL and a service name resolved. The sample rate is clamped
// to [0, 1].
func Resolve(tenant *config.Tenant, env config.Observability) Options {
	var block *config.Observability
	if tenant != nil {
		block = tenant.Observability
	}
	if block == nil {
		block = &config.Observability{}
	}

	out := Options{
		ServerURL:                 firstNonEmpty(block.ServerURL, env.ServerURL),
		ServiceName:               firstNonEmpty(block.ServiceName, env.ServiceName, DefaultServiceName),
		Environment:               firstNonEmpty(block.Environment, env.Environment),
		ServiceVersion:            firstNonEmpty(block.ServiceVersion, env.ServiceVersion),
		LogLevel:                  firstNonEmpty(block.LogLevel, env.LogLevel, DefaultLogLevel),
		SampleRate:                clampSampleRate(firstNonNil(block.SampleRate, env.SampleRate)),
		DistributedTracingOrigins: env.DistributedTracingOrigins,
	}
	if len(block.DistributedTracingOrigins) > 0 {
		out.DistributedTracingOrigins = block.DistributedTracingOrigins
	}

	switch active := firstNonNil(block.Active, env.Active); {
	case active != nil:
		out.Active = *active
	default:
		out.Active = out.ServerURL != "" && out.ServiceName != ""
	}
	return out
}

// Select returns the tracer a session should emit through: an OTel tracer
// when the resolved options are active, a noop otherwise.
func Select(opts Options) Tracer {
	if opts.Active {
		return NewOTel()
	}
	return NewNoop()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstNonNil[T any](values ...*T) *T {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}

func clampSampleRate(rate *float64) *float64 {
	if rate == nil {
		return nil
	}
	v := min(max(*rate, 0), 1)
	return &v
}
