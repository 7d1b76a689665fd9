// SPDX-License-Identifier: Apache-2.0

package tcow

import (
	"os"

	"github.com/apex/log"
	"github.com/pkg/errors"

	"github.com/cyphar/tcow/index"
	"github.com/cyphar/tcow/internal"
	"github.com/cyphar/tcow/layer"
)

// Open reads and fully parses an existing .tcow container file: the header,
// every layer's tar bytes (by the trailer's recorded byte ranges), and the
// trailer Index itself. The container is always fully materialized in
// memory; there is no incremental/streaming open.
func Open(path string) (*Container, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read container file")
	}
	c, err := parseContainer(path, data)
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{"path": path, "layers": len(c.layers)}).Debugf("opened container")
	return c, nil
}

// parseContainer decodes an in-memory container image without touching
// disk; Open, AppendDelta and Verify all route through it.
func parseContainer(path string, data []byte) (*Container, error) {
	if len(data) < index.HeaderSize+index.FooterSize {
		return nil, errors.Wrapf(internal.ErrTruncated, "container is %d bytes, need at least %d", len(data), index.HeaderSize+index.FooterSize)
	}

	if _, err := index.ParseHeader(data[:index.HeaderSize]); err != nil {
		return nil, errors.Wrap(err, "parse header")
	}

	footerStart := len(data) - index.FooterSize
	footer, err := index.ParseFooter(data[footerStart:])
	if err != nil {
		return nil, errors.Wrap(err, "parse footer")
	}

	trailerEnd := footer.TrailerOffset + uint64(footer.TrailerLen)
	if footer.TrailerOffset > uint64(footerStart) || trailerEnd > uint64(footerStart) {
		return nil, errors.Wrapf(internal.ErrTruncated, "trailer range [%d, %d) exceeds file bounds", footer.TrailerOffset, trailerEnd)
	}

	idx, err := index.Decode(data[footer.TrailerOffset:trailerEnd])
	if err != nil {
		return nil, errors.Wrap(err, "decode trailer")
	}

	layers := make([]layer.Map, len(idx.Layers))
	for i, rec := range idx.Layers {
		end := rec.Offset + rec.Size
		if end > uint64(len(data)) {
			return nil, errors.Wrapf(internal.ErrTruncated, "layer %d range [%d, %d) exceeds file bounds", i, rec.Offset, end)
		}
		m, err := layer.Parse(data[rec.Offset:end])
		if err != nil {
			return nil, errors.Wrapf(err, "parse layer %d", i)
		}
		layers[i] = m
	}

	return &Container{path: path, index: idx, layers: layers}, nil
}
