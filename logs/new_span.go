package logs

import (
	"context"
	"crypto/rand"
)

type NewSpan func(ctx context.Context, parent Span) (context.Context, Span)

func (Module) NewSpan(
	logger Logger,
) NewSpan {
	return func(ctx context.Context, parent Span) (context.Context, Span) {
		creator := SpanOf(ctx)
		if parent == "" {
			parent = creator
		}

		span := Span(rand.Text()[:10])
		ctx = context.WithValue(ctx, SpanKey, span)

		var args []any
		if creator != "" && creator != parent {
			args = append(args, "creator", creator)
		}
		if parent != "" {
			args = append(args, "parent", parent)
		}
		logger.DebugContext(ctx, "new span", args...)

		return ctx, span
	}
}
