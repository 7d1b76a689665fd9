// SPDX-License-Identifier: Apache-2.0

package tcow

import (
	"os"

	"github.com/pkg/errors"

	"github.com/cyphar/tcow/index"
)

// writeTrailerAndFooter CBOR-encodes idx and writes it followed by the
// 16-byte footer at the file's current offset, which must equal
// trailerOffset. Shared by Create, AppendDelta and Verify's fix-missing path.
func writeTrailerAndFooter(f *os.File, idx index.Index, trailerOffset uint64) error {
	trailerBytes, err := index.Encode(idx)
	if err != nil {
		return errors.Wrap(err, "encode trailer")
	}
	if _, err := f.Write(trailerBytes); err != nil {
		return errors.Wrap(err, "write trailer")
	}
	if err := index.WriteFooter(f, trailerOffset, uint32(len(trailerBytes))); err != nil {
		return errors.Wrap(err, "write footer")
	}
	return nil
}
