// SPDX-License-Identifier: Apache-2.0

// Package funchelpers contains small helpers for ergonomically handling
// errors returned from deferred functions (most commonly Close).
package funchelpers

import (
	"io"

	"github.com/cyphar/tcow/internal/assert"
)

// VerifyError is a helper designed to make verifying deferred functions that
// return errors more ergonomic (most notably Close). This helper is intended
// to be used with named return values.
//
//	func foo() (Err error) {
//		f, err := os.Create("foobar")
//		if err != nil {
//			return err
//		}
//		defer funchelpers.VerifyClose(&Err, f)
//		return nil
//	}
func VerifyError(Err *error, closeFn func() error) {
	assert.Assert(Err != nil, "VerifyError must be called with non-nil Err slot")
	if err := closeFn(); err != nil && *Err == nil {
		*Err = err
	}
}

// VerifyClose is shorthand for `VerifyError(Err, closer.Close)`.
func VerifyClose(Err *error, closer io.Closer) {
	VerifyError(Err, closer.Close)
}
