// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package advisor

// Result carries either a real answer or the fallback value that was used
// because the model could not deliver one.
type Result[T any] struct {
	Value    T
	Degraded bool
	Err      error
}

func Ok[T any](v T) Result[T] {
	return Result[T]{Value: v}
}

func Degraded[T any](fallback T, err error) Result[T] {
	return Result[T]{Value: fallback, Degraded: true, Err: err}
}
