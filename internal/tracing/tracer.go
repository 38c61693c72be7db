// Package tracing provides the span abstraction the request pipeline emits
// through. It defines a small internal interface so the client does not
// depend on OpenTelemetry APIs outside this package.
//
// Implementations:
//   - NoopTracer: for tests (zero overhead)
//   - OTelTracer: OpenTelemetry adapter for deployments
package tracing

import "context"

// Span represents one timed unit of work correlated with a single outbound
// call. A span is closed exactly once.
type Span interface {
	// End completes the span. A non-nil err marks the outcome as failure.
	End(err error)

	// SetAttributes adds key-value pairs to the span.
	SetAttributes(attrs ...Attribute)
}

// Tracer creates spans. Implementations must be safe for concurrent use;
// each call owns its span, so concurrent calls never share one.
type Tracer interface {
	Start(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span)
}

// Attribute is a key-value pair attached to spans.
type Attribute struct {
	Key   string
	Value any
}

// String creates a string attribute.
func String(key, value string) Attribute {
	return Attribute{Key: key, Value: value}
}

// Bool creates a boolean attribute.
func Bool(key string, value bool) Attribute {
	return Attribute{Key: key, Value: value}
}

// Int64 creates an int64 attribute.
func Int64(key string, value int64) Attribute {
	return Attribute{Key: key, Value: value}
}

// Attribute keys used by the request pipeline.
const (
	AttrTenantID = "tenant.id"
	AttrBaseURL  = "http.base_url"
	AttrStatus   = "http.status_code"
)
