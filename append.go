// SPDX-License-Identifier: Apache-2.0

package tcow

import (
	"io"
	"os"

	"github.com/apex/log"
	"github.com/opencontainers/go-digest"
	"github.com/pkg/errors"

	"github.com/cyphar/tcow/index"
	"github.com/cyphar/tcow/internal/funchelpers"
	"github.com/cyphar/tcow/layer"
)

// AppendDelta opens the existing container at path, truncates it at the
// start of its current trailer, appends a new Delta layer built from entries
// and whiteouts, then writes a fresh trailer and footer. An empty delta
// (nil/empty entries and whiteouts) is legal and serves as a snapshot
// marker: it advances LastModified without changing the visible contents.
func AppendDelta(path string, entries []layer.Entry, whiteouts []string) (_ *Container, Err error) {
	prior, err := Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open container for append")
	}

	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, errors.Wrap(err, "reopen container file for append")
	}
	defer funchelpers.VerifyClose(&Err, f)

	oldTrailerOffset := uint64(index.HeaderSize)
	if n := len(prior.index.Layers); n > 0 {
		last := prior.index.Layers[n-1]
		oldTrailerOffset = last.Offset + last.Size
	}

	if err := f.Truncate(int64(oldTrailerOffset)); err != nil {
		return nil, errors.Wrap(err, "truncate container at trailer offset")
	}
	if _, err := f.Seek(int64(oldTrailerOffset), io.SeekStart); err != nil {
		return nil, errors.Wrap(err, "seek to trailer offset")
	}

	layerBytes, err := layer.Build(entries, whiteouts, nowUnix())
	if err != nil {
		return nil, errors.Wrap(err, "build delta layer")
	}
	if _, err := f.Write(layerBytes); err != nil {
		return nil, errors.Wrap(err, "write delta layer")
	}

	createdAt := nowRFC3339()
	dgst := digest.Canonical.FromBytes(layerBytes).Encoded()
	rec := index.LayerRecord{
		Offset:    oldTrailerOffset,
		Size:      uint64(len(layerBytes)),
		Kind:      index.Delta,
		Digest:    &dgst,
		CreatedAt: createdAt,
	}

	newLayers := append(append([]index.LayerRecord{}, prior.index.Layers...), rec)
	newIdx := index.Index{
		Version:      index.FormatVersion,
		Layers:       newLayers,
		LastModified: createdAt,
		Label:        prior.index.Label,
	}

	trailerOffset := oldTrailerOffset + rec.Size
	if err := writeTrailerAndFooter(f, newIdx, trailerOffset); err != nil {
		return nil, err
	}

	m, err := layer.Parse(layerBytes)
	if err != nil {
		return nil, errors.Wrap(err, "parse freshly built delta layer")
	}

	log.WithFields(log.Fields{"path": path, "layer_idx": len(newLayers) - 1}).Debugf("appended delta layer")

	return &Container{
		path:   path,
		index:  newIdx,
		layers: append(append([]layer.Map{}, prior.layers...), m),
	}, nil
}
