// SPDX-License-Identifier: Apache-2.0

// Package assert provides minimal assertion helpers used to guard against
// programmer error (as opposed to user-facing errors, which are always
// returned rather than panicked).
package assert

import "fmt"

// Assert panics if the predicate is false with the provided argument.
func Assert(predicate bool, msg any) {
	if !predicate {
		panic(msg)
	}
}

// Assertf panics if the predicate is false and formats the message using the
// same formatting as [fmt.Printf].
func Assertf(predicate bool, fmtMsg string, args ...any) {
	Assert(predicate, fmt.Sprintf(fmtMsg, args...))
}
