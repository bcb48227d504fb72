// Copyright (c) 2026 Minh Dang. All rights reserved.

/*
Package pointer provides utilities for working with pointers in Go.

Partial-update payloads in this codebase are all-pointer structs (nil means
"field absent"), so constructing and safely dereferencing pointers comes up
constantly in services, tests, and the seeding tool.

Key Functions:
  - To: Creates a pointer from a value literal.
  - Val: Safely dereferences a pointer, returning the zero value if nil.
*/
package pointer

// To returns a pointer to the provided value.
// It is useful when you need to pass a primitive value to a function or struct field
// that expects a pointer (e.g. pointer.To("something")).
func To[T any](v T) *T {
	return &v
}

// Val safely dereferences a pointer.
// If the pointer is nil, it returns the zero value of the underlying type.
func Val[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}
