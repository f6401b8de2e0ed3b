package live

import (
	"context"
	"sync"
)

// Input is a stream that can feed CombineLatest.
type Input interface {
	forward(ctx context.Context, index int, updates chan<- update)
}

type update struct {
	index  int
	value  any
	err    error
	closed bool
}

type input[T any] struct {
	ch <-chan Snapshot[T]
}

// From adapts a typed snapshot stream for CombineLatest.
func From[T any](ch <-chan Snapshot[T]) Input {
	return input[T]{ch: ch}
}

func (in input[T]) forward(ctx context.Context, index int, updates chan<- update) {
	for {
		select {
		case <-ctx.Done():
			return
		case snap, ok := <-in.ch:
			u := update{index: index, value: snap.Value, err: snap.Err, closed: !ok}
			select {
			case updates <- u:
			case <-ctx.Done():
				return
			}
			if !ok {
				return
			}
		}
	}
}

// CombineLatest emits the latest value of every input each time any input
// emits, once all of them have emitted at least once. Values are in input
// order. If any input's latest snapshot is an error, the emission carries
// that error and no values. The output closes when ctx is done or every
// input has closed.
func CombineLatest(ctx context.Context, inputs ...Input) <-chan Snapshot[[]any] {
	out := make(chan Snapshot[[]any], 1)
	updates := make(chan update)

	var wg sync.WaitGroup
	for i, in := range inputs {
		wg.Add(1)
		go func(i int, in Input) {
			defer wg.Done()
			in.forward(ctx, i, updates)
		}(i, in)
	}

	go func() {
		defer finish(ctx, out)

		values := make([]any, len(inputs))
		errs := make([]error, len(inputs))
		seen := make([]bool, len(inputs))
		open := len(inputs)
		pending := len(inputs)

		for open > 0 {
			var u update
			select {
			case <-ctx.Done():
				wg.Wait()
				return
			case u = <-updates:
			}

			if u.closed {
				open--
				continue
			}

			if !seen[u.index] {
				seen[u.index] = true
				pending--
			}
			values[u.index] = u.value
			errs[u.index] = u.err

			if pending > 0 {
				continue
			}
			if !offer(ctx, out, combined(values, errs)) {
				wg.Wait()
				return
			}
		}
	}()

	return out
}

func combined(values []any, errs []error) Snapshot[[]any] {
	for _, err := range errs {
		if err != nil {
			return Snapshot[[]any]{Err: err}
		}
	}
	snapshot := make([]any, len(values))
	copy(snapshot, values)
	return Snapshot[[]any]{Value: snapshot}
}

// Map applies fn to every value of in, passing errors through untouched.
// The output keeps the latest-value-wins behaviour of its input.
func Map[T, U any](ctx context.Context, in <-chan Snapshot[T], fn func(T) U) <-chan Snapshot[U] {
	out := make(chan Snapshot[U], 1)

	go func() {
		defer finish(ctx, out)

		for {
			select {
			case <-ctx.Done():
				return
			case snap, ok := <-in:
				if !ok {
					return
				}
				next := Snapshot[U]{Err: snap.Err}
				if snap.Err == nil {
					next.Value = fn(snap.Value)
				}
				if !offer(ctx, out, next) {
					return
				}
			}
		}
	}()

	return out
}
