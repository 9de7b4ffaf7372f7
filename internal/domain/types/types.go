// Package types contains common types used across the application
package types

import "fmt"

// NoneText is how an absent Optional renders in messages.
const NoneText = "None"

// Optional holds a value that may be absent.
type Optional[T any] struct {
	value T
	set   bool
}

// Some returns a present Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, set: true}
}

// None returns an absent Optional.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// String renders the value with fmt, or NoneText when absent.
func (o Optional[T]) String() string {
	if !o.set {
		return NoneText
	}
	return fmt.Sprint(o.value)
}
