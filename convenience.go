// SPDX-License-Identifier: Apache-2.0

package tcow

import (
	"os"

	"github.com/pkg/errors"

	"github.com/cyphar/tcow/layer"
	vpathpkg "github.com/cyphar/tcow/pkg/vpath"
	"github.com/cyphar/tcow/resolver"
)

// Insert writes data at vpath inside the container at path: AppendDelta if
// the container already exists, Create if it doesn't.
func Insert(path, vpath string, data []byte) (*Container, error) {
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return AppendDelta(path, []layer.Entry{{Path: vpath, Data: data}}, nil)
	case os.IsNotExist(err):
		return Create(path, []layer.Entry{{Path: vpath, Data: data}}, nil, nil)
	default:
		return nil, errors.Wrap(err, "stat container file")
	}
}

// Delete whites out vpath in a new Delta layer appended to the container at
// path. Fails with ErrNotDeletable if vpath is not currently visible in the
// container's union view.
func Delete(path, vpath string) (*Container, error) {
	container, err := Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open container for delete")
	}

	canonical := vpathpkg.Normalize(vpath)
	view := resolver.UnionView(container.layers)
	if _, ok := view[canonical]; !ok {
		return nil, notDeletableErr(canonical)
	}

	return AppendDelta(path, nil, []string{canonical})
}

// UnionView folds the container's entire layer stack into its currently
// visible set of files.
func (c *Container) UnionView() map[string]layer.ResolvedEntry {
	return resolver.UnionView(c.layers)
}

// Resolve looks up a single virtual path in the container's union view.
func (c *Container) Resolve(vpath string) (layer.ResolvedEntry, int, bool) {
	canonical := vpathpkg.Normalize(vpath)
	entry, ok := resolver.Resolve(c.layers, canonical)
	if !ok {
		return layer.ResolvedEntry{}, -1, false
	}
	return entry, entry.LayerIdx, true
}

// List returns every visible (path, entry) pair under prefix, sorted
// ascending by canonical path.
func (c *Container) List(prefix string) []resolver.ListEntry {
	return resolver.List(c.UnionView(), vpathpkg.Normalize(prefix))
}

// VisibleCount is the number of files in the container's union view.
func (c *Container) VisibleCount() int {
	return len(c.UnionView())
}
