package mkdb

import "context"

// CreateTrace is a set of hooks run at the stages of a creation attempt.
// Any hook may be nil.
type CreateTrace struct {
	// Connecting is called before the transport connects.
	Connecting func()

	// Executing is called after connecting, before the statement is sent.
	Executing func()
}

type createTraceKey struct{}

// WithCreateTrace returns a context carrying trace. A DatabaseCreator invoked
// with the returned context calls the trace hooks as it progresses.
func WithCreateTrace(ctx context.Context, trace *CreateTrace) context.Context {
	return context.WithValue(ctx, createTraceKey{}, trace)
}

// ContextCreateTrace returns the trace attached to ctx, or nil.
func ContextCreateTrace(ctx context.Context) *CreateTrace {
	trace, _ := ctx.Value(createTraceKey{}).(*CreateTrace)
	return trace
}

func (t *CreateTrace) connecting() {
	if t != nil && t.Connecting != nil {
		t.Connecting()
	}
}

func (t *CreateTrace) executing() {
	if t != nil && t.Executing != nil {
		t.Executing()
	}
}

// TraceConnecting runs the Connecting hook of the trace attached to ctx, if any.
func TraceConnecting(ctx context.Context) { ContextCreateTrace(ctx).connecting() }

// TraceExecuting runs the Executing hook of the trace attached to ctx, if any.
func TraceExecuting(ctx context.Context) { ContextCreateTrace(ctx).executing() }
