// SPDX-License-Identifier: Apache-2.0

package tcow

import (
	"os"

	"github.com/apex/log"
	"github.com/opencontainers/go-digest"
	"github.com/pkg/errors"

	"github.com/cyphar/tcow/index"
	"github.com/cyphar/tcow/internal/funchelpers"
	"github.com/cyphar/tcow/layer"
)

// Create writes a brand new container file at path: a header, a single Base
// layer built from entries and whiteouts, and a trailer/footer naming it.
// Any file already at path is truncated and overwritten.
func Create(path string, entries []layer.Entry, whiteouts []string, label *string) (_ *Container, Err error) {
	layerBytes, err := layer.Build(entries, whiteouts, nowUnix())
	if err != nil {
		return nil, errors.Wrap(err, "build base layer")
	}

	createdAt := nowRFC3339()
	dgst := digest.Canonical.FromBytes(layerBytes).Encoded()
	rec := index.LayerRecord{
		Offset:    index.HeaderSize,
		Size:      uint64(len(layerBytes)),
		Kind:      index.Base,
		Digest:    &dgst,
		CreatedAt: createdAt,
	}
	idx := index.Index{
		Version:      index.FormatVersion,
		Layers:       []index.LayerRecord{rec},
		LastModified: createdAt,
		Label:        label,
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrap(err, "create container file")
	}
	defer funchelpers.VerifyClose(&Err, f)

	hasBase := len(entries) > 0 || len(whiteouts) > 0
	if err := index.WriteHeader(f, hasBase); err != nil {
		return nil, errors.Wrap(err, "write header")
	}
	if _, err := f.Write(layerBytes); err != nil {
		return nil, errors.Wrap(err, "write base layer")
	}

	trailerOffset := index.HeaderSize + rec.Size
	if err := writeTrailerAndFooter(f, idx, trailerOffset); err != nil {
		return nil, err
	}

	m, err := layer.Parse(layerBytes)
	if err != nil {
		return nil, errors.Wrap(err, "parse freshly built base layer")
	}

	log.WithFields(log.Fields{"path": path, "entries": len(entries), "whiteouts": len(whiteouts)}).Debugf("created container")

	return &Container{path: path, index: idx, layers: []layer.Map{m}}, nil
}
