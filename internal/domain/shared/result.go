package shared

// ══════════════════════════════════════════════════════════════════════════════
// LOOKUP RESULT
// ══════════════════════════════════════════════════════════════════════════════

// Result is the outcome of an operation that locates an entity by identity.
// A NotFound result means the operation was not applied. Callers decide
// whether that is an error; the store itself treats it as a no-op.
type Result[T any] struct {
	value T
	found bool
}

// Found wraps a located entity.
func Found[T any](v T) Result[T] {
	return Result[T]{value: v, found: true}
}

// NotFound reports a missing identity.
func NotFound[T any]() Result[T] {
	return Result[T]{}
}

// IsFound returns true if the entity was located.
func (r Result[T]) IsFound() bool {
	return r.found
}

// Get returns the value and whether it was found.
func (r Result[T]) Get() (T, bool) {
	return r.value, r.found
}

// Value returns the value, or the zero value for NotFound.
func (r Result[T]) Value() T {
	return r.value
}

// OrErr promotes a NotFound result to the given error.
func (r Result[T]) OrErr(err error) (T, error) {
	if !r.found {
		var zero T
		return zero, err
	}
	return r.value, nil
}
