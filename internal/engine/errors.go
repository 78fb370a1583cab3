package engine

import "fmt"

// RuntimeBoundsError reports a script reference outside a fixed-size table
// or an arithmetic operation with no defined result. It aborts the tick.
type RuntimeBoundsError struct {
	What  string // "object", "var", "flag", "loop", "priority", "division", ...
	Index int
	Min   int
	Limit int
}

func (e *RuntimeBoundsError) Error() string {
	if e.What == "division" {
		return "engine: division by zero"
	}
	return fmt.Sprintf("engine: %s %d out of range [%d,%d)", e.What, e.Index, e.Min, e.Limit)
}

// ResourceError reports a resource that could not be obtained or decoded.
type ResourceError struct {
	Kind   string
	Number int
	Err    error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("engine: %s %d unavailable: %v", e.Kind, e.Number, e.Err)
}

func (e *ResourceError) Unwrap() error { return e.Err }

// checkIndex returns a RuntimeBoundsError when i is outside [0, limit).
func checkIndex(what string, i, limit int) error {
	if i < 0 || i >= limit {
		return &RuntimeBoundsError{What: what, Index: i, Limit: limit}
	}
	return nil
}
