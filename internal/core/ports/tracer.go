package ports

import "context"

// Span represents one traced unit of work.
type Span interface {
	// End completes the span.
	End()
	// RecordError attaches an error to the span and marks it failed.
	RecordError(err error)
	// SetAttribute attaches a key/value attribute to the span.
	SetAttribute(key string, value any)
}

// Tracer creates spans around pipeline work such as compile dispatches.
type Tracer interface {
	Start(ctx context.Context, name string) (context.Context, Span)
}
