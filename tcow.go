// SPDX-License-Identifier: Apache-2.0

// Package tcow implements a single-file, layered copy-on-write virtual
// filesystem container: an ordered stack of Base/Delta layers, a union-view
// resolver over that stack, and the mutation primitives that grow, compact
// and verify a container file.
package tcow

import (
	"github.com/cyphar/tcow/index"
	"github.com/cyphar/tcow/layer"
)

// Container holds the parsed state of an open .tcow file: its path, trailer
// Index, and the per-layer entry maps decoded from each layer's byte range.
// Mutating operations (Create, AppendDelta, Compact) return a fresh Container
// rather than mutating one in place; Verify with fixMissing rewrites the
// trailer on disk and returns only a VerifyReport.
type Container struct {
	path   string
	index  index.Index
	layers []layer.Map
}

// Path is the filesystem path this Container was opened from or written to.
func (c *Container) Path() string {
	return c.path
}

// LayerCount returns the number of layers currently in the container.
func (c *Container) LayerCount() int {
	return len(c.layers)
}

// LayerEntries returns the raw entry map for layer idx (0 = Base, if
// present). Fails with internal.ErrLayerOutOfRange if idx is out of bounds.
func (c *Container) LayerEntries(idx int) (layer.Map, error) {
	if idx < 0 || idx >= len(c.layers) {
		return nil, layerOutOfRangeErr(idx, len(c.layers))
	}
	return c.layers[idx], nil
}

// Label is the container's optional human-assigned label, if one was set by
// Create or Compact.
func (c *Container) Label() *string {
	return c.index.Label
}

// LastModified is the RFC 3339 UTC timestamp of the most recent mutation.
func (c *Container) LastModified() string {
	return c.index.LastModified
}
