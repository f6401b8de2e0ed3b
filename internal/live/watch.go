package live

import "context"

// Snapshot is one emission of a projection: either a value or the storage
// error that prevented loading it.
type Snapshot[T any] struct {
	Value T
	Err   error
}

// Loader reads the current value of a projection.
type Loader[T any] func(ctx context.Context) (T, error)

// Watch emits load's result immediately and again after every change to
// one of tables. The returned channel is closed once ctx is done; a load
// that completes after cancellation is discarded.
func Watch[T any](ctx context.Context, bus *Bus, load Loader[T], tables ...string) <-chan Snapshot[T] {
	out := make(chan Snapshot[T], 1)
	// Subscribe before the first load so a write racing it is not missed.
	changes, unsubscribe := bus.Subscribe(tables...)

	go func() {
		defer finish(ctx, out)
		defer unsubscribe()

		for {
			value, err := load(ctx)
			if ctx.Err() != nil {
				return
			}
			if !offer(ctx, out, Snapshot[T]{Value: value, Err: err}) {
				return
			}

			select {
			case <-ctx.Done():
				return
			case <-changes:
			}
		}
	}()

	return out
}

// Once emits a single snapshot and closes. It is used for projections that
// short-circuit without touching the store.
func Once[T any](ctx context.Context, value T) <-chan Snapshot[T] {
	out := make(chan Snapshot[T], 1)
	if ctx.Err() == nil {
		out <- Snapshot[T]{Value: value}
	}
	close(out)
	return out
}

// offer delivers s, replacing an undelivered older snapshot if the
// consumer has fallen behind. Only the owning goroutine may call it.
func offer[T any](ctx context.Context, out chan Snapshot[T], s Snapshot[T]) bool {
	for {
		if ctx.Err() != nil {
			return false
		}
		select {
		case out <- s:
			return true
		default:
		}
		select {
		case <-out:
		default:
		}
	}
}

// finish closes out. After cancellation it first drops any snapshot still
// buffered so nothing reaches a consumer that has lost interest.
func finish[T any](ctx context.Context, out chan Snapshot[T]) {
	if ctx.Err() != nil {
		select {
		case <-out:
		default:
		}
	}
	close(out)
}
