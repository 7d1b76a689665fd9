// SPDX-License-Identifier: Apache-2.0

package tcow

import (
	"github.com/pkg/errors"

	"github.com/cyphar/tcow/internal"
)

// Re-exported sentinels so callers can errors.Is against the public API
// without importing the internal package directly.
var (
	ErrBadMagic           = internal.ErrBadMagic
	ErrUnsupportedVersion = internal.ErrUnsupportedVersion
	ErrTruncated          = internal.ErrTruncated
	ErrBadTrailer         = internal.ErrBadTrailer
	ErrBadArchive         = internal.ErrBadArchive
	ErrNotFound           = internal.ErrNotFound
	ErrNotDeletable       = internal.ErrNotDeletable
	ErrLayerOutOfRange    = internal.ErrLayerOutOfRange
	ErrIntegrity          = internal.ErrIntegrity
)

func layerOutOfRangeErr(idx, count int) error {
	return errors.Wrapf(internal.ErrLayerOutOfRange, "layer %d (have %d layers)", idx, count)
}

func notDeletableErr(vpath string) error {
	return errors.Wrapf(internal.ErrNotDeletable, "path %q", vpath)
}
