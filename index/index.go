// SPDX-License-Identifier: Apache-2.0

// Package index implements the CBOR-encoded trailer document (the Index)
// that closes out a .tcow container, plus the fixed-size binary header and
// footer that locate it.
package index

import (
	"bytes"

	"github.com/fxamacker/cbor/v2"
	"github.com/pkg/errors"

	"github.com/cyphar/tcow/internal"
)

// Kind distinguishes a container's Base layer (always index 0) from its
// subsequent Delta layers. Nothing in the union algorithm treats the two
// differently at runtime; the tag exists purely for diagnostics and future
// format evolution.
type Kind string

const (
	Base  Kind = "Base"
	Delta Kind = "Delta"
)

// LayerRecord describes one layer's placement within the container file and
// its integrity metadata.
type LayerRecord struct {
	Offset    uint64  `cbor:"offset"`
	Size      uint64  `cbor:"size"`
	Kind      Kind    `cbor:"kind"`
	Digest    *string `cbor:"digest,omitempty"`
	CreatedAt string  `cbor:"created_at"`
}

// Index is the trailer document: the ordered layer stack plus container
// metadata. Index 0 of Layers, if present, is always the Base layer.
type Index struct {
	Version      uint16        `cbor:"version"`
	Layers       []LayerRecord `cbor:"layers"`
	LastModified string        `cbor:"last_modified"`
	Label        *string       `cbor:"label,omitempty"`
}

// Encode serialises the Index as a self-delimiting CBOR document.
func Encode(idx Index) ([]byte, error) {
	buf, err := cbor.Marshal(idx)
	if err != nil {
		return nil, errors.Wrap(err, "encode trailer")
	}
	return buf, nil
}

// Decode parses a CBOR-encoded trailer document.
func Decode(data []byte) (Index, error) {
	var idx Index
	dec := cbor.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&idx); err != nil {
		return Index{}, errors.Wrapf(internal.ErrBadTrailer, "decode CBOR trailer: %v", err)
	}
	return idx, nil
}
