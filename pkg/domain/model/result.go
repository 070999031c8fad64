package model

// Result is the outcome of one stats fetch. Exactly one of Value and Err is meaningful.
type Result[T any] struct {
	Value T
	Err   error
}

// OK wraps a successful value
func OK[T any](v T) Result[T] {
	return Result[T]{Value: v}
}

// Fail wraps an error
func Fail[T any](err error) Result[T] {
	return Result[T]{Err: err}
}

// Failed reports whether the fetch failed
func (r Result[T]) Failed() bool {
	return r.Err != nil
}

// Unwrap returns the value and error as a pair
func (r Result[T]) Unwrap() (T, error) {
	return r.Value, r.Err
}
