// SPDX-License-Identifier: Apache-2.0

package index

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/pkg/errors"

	"github.com/cyphar/tcow/internal"
)

const (
	// HeaderSize is the fixed size, in bytes, of the file header.
	HeaderSize = 16
	// FooterSize is the fixed size, in bytes, of the file footer.
	FooterSize = 16

	// FormatVersion is the only header version this implementation
	// understands.
	FormatVersion uint16 = 1

	// FlagHasBase is set in the header's flags field when the container has
	// at least a Base layer.
	FlagHasBase uint16 = 0x0001
)

// magic and magicTail are the four-byte sentinels bracketing a .tcow file.
var (
	magic     = [4]byte{'T', 'C', 'O', 'W'}
	magicTail = [4]byte{'W', '0', 'C', 'T'}
)

// Header is the 16-byte little-endian structure at offset 0 of a container.
type Header struct {
	Version uint16
	Flags   uint16
}

// HasBase reports whether FlagHasBase is set.
func (h Header) HasBase() bool {
	return h.Flags&FlagHasBase != 0
}

// WriteHeader emits the 16-byte file header. The 8 trailing bytes are
// reserved and always zero.
func WriteHeader(w io.Writer, hasBase bool) error {
	var flags uint16
	if hasBase {
		flags = FlagHasBase
	}

	var buf [HeaderSize]byte
	copy(buf[0:4], magic[:])
	binary.LittleEndian.PutUint16(buf[4:6], FormatVersion)
	binary.LittleEndian.PutUint16(buf[6:8], flags)
	// buf[8:16] stays zero (reserved).

	if _, err := w.Write(buf[:]); err != nil {
		return errors.Wrap(err, "write header")
	}
	return nil
}

// ParseHeader validates and decodes the 16-byte file header.
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, errors.Wrapf(internal.ErrTruncated, "header is %d bytes, need %d", len(data), HeaderSize)
	}
	if !bytes.Equal(data[0:4], magic[:]) {
		return Header{}, errors.Wrapf(internal.ErrBadMagic, "got %q", data[0:4])
	}
	version := binary.LittleEndian.Uint16(data[4:6])
	if version != FormatVersion {
		return Header{}, errors.Wrapf(internal.ErrUnsupportedVersion, "version %d", version)
	}
	flags := binary.LittleEndian.Uint16(data[6:8])
	return Header{Version: version, Flags: flags}, nil
}

// Footer is the 16-byte little-endian structure at the tail of a container,
// locating the CBOR trailer that precedes it.
type Footer struct {
	TrailerOffset uint64
	TrailerLen    uint32
}

// WriteFooter emits the 16-byte file footer.
func WriteFooter(w io.Writer, trailerOffset uint64, trailerLen uint32) error {
	var buf [FooterSize]byte
	binary.LittleEndian.PutUint64(buf[0:8], trailerOffset)
	binary.LittleEndian.PutUint32(buf[8:12], trailerLen)
	copy(buf[12:16], magicTail[:])

	if _, err := w.Write(buf[:]); err != nil {
		return errors.Wrap(err, "write footer")
	}
	return nil
}

// ParseFooter validates and decodes the 16-byte file footer.
func ParseFooter(data []byte) (Footer, error) {
	if len(data) < FooterSize {
		return Footer{}, errors.Wrapf(internal.ErrTruncated, "footer is %d bytes, need %d", len(data), FooterSize)
	}
	if !bytes.Equal(data[12:16], magicTail[:]) {
		return Footer{}, errors.Wrapf(internal.ErrBadMagic, "bad footer tail magic %q", data[12:16])
	}
	return Footer{
		TrailerOffset: binary.LittleEndian.Uint64(data[0:8]),
		TrailerLen:    binary.LittleEndian.Uint32(data[8:12]),
	}, nil
}
