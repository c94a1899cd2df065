package logs

import "context"

// Span identifies one unit of work, such as a compilation or an execution.
type Span string

type spanKey struct{}

var SpanKey spanKey

func SpanOf(ctx context.Context) Span {
	if v := ctx.Value(SpanKey); v != nil {
		return v.(Span)
	}
	return ""
}
