package logging

import (
	"context"

	"github.com/charmbracelet/log"
)

type loggerKey struct{}

// FromContext returns the logger attached to ctx, or the default logger.
func FromContext(ctx context.Context) *log.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(loggerKey{}).(*log.Logger); ok && logger != nil {
			return logger
		}
	}
	return Default()
}

// WithLogger attaches logger to ctx.
func WithLogger(ctx context.Context, logger *log.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, loggerKey{}, logger)
}

// WithPath attaches a child of the context logger that tags every entry with
// the document path.
func WithPath(ctx context.Context, path string) (context.Context, *log.Logger) {
	logger := FromContext(ctx).With(FieldPath, path)
	return WithLogger(ctx, logger), logger
}
