package async

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/spendgraph/spendgraph/pkg/utils/logging"
)

// Dispatch executes a handler function asynchronously in a new goroutine.
// It creates a background context (preserving the logger) and absorbs
// errors and panics, so it suits fire-and-forget work such as best-effort
// graph persistence.
func Dispatch(ctx context.Context, handler func(ctx context.Context) error) {
	bgCtx := context.Background()
	if logger := logging.From(ctx); logger != nil {
		bgCtx = logging.With(bgCtx, logger)
	}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				logging.From(bgCtx).Error("panic in async handler", "panic", r)
			}
		}()

		if err := handler(bgCtx); err != nil {
			logging.From(bgCtx).Error("async handler failed", "error", goerr.Unwrap(err))
		}
	}()
}
