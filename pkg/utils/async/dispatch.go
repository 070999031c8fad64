package async

import (
	"context"
	"runtime/debug"

	"github.com/hashtags-tool/hashdash/pkg/domain/model"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// Go runs fn in its own goroutine and delivers its outcome on the returned
// channel. The channel is buffered, so fn never blocks on an absent reader,
// and it receives exactly one Result. A panic in fn is recovered and
// delivered as a failed Result.
func Go[T any](ctx context.Context, name string, fn func(ctx context.Context) (T, error)) <-chan model.Result[T] {
	ch := make(chan model.Result[T], 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				stack := debug.Stack()
				ctxlog.From(ctx).Error("Panic in async task",
					"task", name,
					"recover", r,
					"stack", string(stack),
				)
				ch <- model.Fail[T](goerr.New("async task panicked",
					goerr.V("task", name),
					goerr.V("recover", r)))
			}
		}()

		v, err := fn(ctx)
		if err != nil {
			ch <- model.Fail[T](err)
			return
		}
		ch <- model.OK(v)
	}()

	return ch
}

// Dispatch executes a handler asynchronously on a context detached from the
// caller's cancellation, with panic recovery. Errors are logged.
func Dispatch(ctx context.Context, name string, handler func(ctx context.Context) error) {
	newCtx := newBackgroundContext(ctx)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				stack := debug.Stack()
				ctxlog.From(newCtx).Error("Panic in async handler",
					"task", name,
					"recover", r,
					"stack", string(stack),
				)
			}
		}()

		if err := handler(newCtx); err != nil {
			ctxlog.From(newCtx).Error("Error in async handler",
				"task", name,
				"error", err,
			)
		}
	}()
}

// newBackgroundContext creates a background context that keeps the logger of ctx
func newBackgroundContext(ctx context.Context) context.Context {
	return ctxlog.With(context.Background(), ctxlog.From(ctx))
}
