package log

import (
	"context"

	"github.com/go-logr/logr"
)

// DebugLevel is the verbosity of the messages about omitted federation members.
const DebugLevel = 1

func FromContext(ctx context.Context) logr.Logger {
	if ctx == nil {
		return logr.Discard()
	}
	return logr.FromContextOrDiscard(ctx)
}

func WithLogger(ctx context.Context, logger logr.Logger) context.Context {
	return logr.NewContext(ctx, logger)
}

func Debug(ctx context.Context) logr.Logger {
	return FromContext(ctx).V(DebugLevel)
}
