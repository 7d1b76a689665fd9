// SPDX-License-Identifier: Apache-2.0

package internal

import "errors"

// The sentinel errors below make up the container's error taxonomy. They are
// wrapped with context (which layer, which byte range, which path) via
// github.com/pkg/errors before being returned to callers, but remain
// reachable through errors.Is because pkg/errors preserves Unwrap().

var (
	// ErrBadMagic is returned when the header or footer magic bytes don't
	// match what a .tcow file is expected to contain.
	ErrBadMagic = errors.New("bad tcow magic")

	// ErrUnsupportedVersion is returned when the header version is not one
	// this implementation understands.
	ErrUnsupportedVersion = errors.New("unsupported tcow format version")

	// ErrTruncated is returned when the file is shorter than its header and
	// footer require, or a layer/trailer byte range runs past EOF.
	ErrTruncated = errors.New("truncated tcow file")

	// ErrBadTrailer is returned when the CBOR trailer fails to decode or
	// doesn't match the expected schema.
	ErrBadTrailer = errors.New("malformed tcow trailer")

	// ErrBadArchive is returned when a layer's tar stream is structurally
	// invalid.
	ErrBadArchive = errors.New("malformed tcow layer archive")

	// ErrNotFound is returned when a requested canonical path is absent from
	// the selected view or layer.
	ErrNotFound = errors.New("path not found")

	// ErrNotDeletable is returned when a delete is requested for a path that
	// isn't currently visible in the union view.
	ErrNotDeletable = errors.New("path not present in union view, nothing to delete")

	// ErrLayerOutOfRange is returned when a numeric layer selector exceeds
	// the layer count.
	ErrLayerOutOfRange = errors.New("layer index out of range")

	// ErrIntegrity is returned by Verify when at least one layer's computed
	// digest doesn't match its stored digest.
	ErrIntegrity = errors.New("layer integrity check failed")
)
