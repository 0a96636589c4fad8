package collector

import "context"

type Result[T any] struct {
	Result T
	Err    error
}

// Collector streams items over a channel that is closed once collection ends or ctx is done.
type Collector[T any] interface {
	Collect(ctx context.Context) (<-chan Result[T], error)
}

// Func adapts a plain function to a Collector.
type Func[T any] func(ctx context.Context) (<-chan Result[T], error)

func (f Func[T]) Collect(ctx context.Context) (<-chan Result[T], error) {
	return f(ctx)
}

// FromSlice emits the given items in order.
func FromSlice[T any](items ...T) Collector[T] {
	return Func[T](func(ctx context.Context) (<-chan Result[T], error) {
		out := make(chan Result[T])
		go func() {
			defer close(out)
			for _, item := range items {
				select {
				case <-ctx.Done():
					return
				case out <- Result[T]{Result: item}:
				}
			}
		}()
		return out, nil
	})
}
