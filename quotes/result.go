package quotes

// Result carries the outcome of one optional data source: either a value or
// the reason it is unavailable
type Result[T any] struct {
	value T
	err   error
	ok    bool
}

// Ok wraps a successfully fetched value
func Ok[T any](v T) Result[T] {
	return Result[T]{value: v, ok: true}
}

// Unavailable records that a source failed
func Unavailable[T any](err error) Result[T] {
	return Result[T]{err: err}
}

// Get returns the value and whether it is available
func (r Result[T]) Get() (T, bool) {
	return r.value, r.ok
}

// OrElse returns the value, or fallback when unavailable
func (r Result[T]) OrElse(fallback T) T {
	if !r.ok {
		return fallback
	}
	return r.value
}

// Err returns the failure reason for an unavailable result
func (r Result[T]) Err() error {
	return r.err
}

// IsOk reports whether the result holds a value
func (r Result[T]) IsOk() bool {
	return r.ok
}
