// SPDX-License-Identifier: Apache-2.0

package tcow

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/apex/log"
	"github.com/pkg/errors"

	"github.com/cyphar/tcow/layer"
	"github.com/cyphar/tcow/resolver"
)

// Compact collapses src's entire layer stack into a single new Base layer
// holding exactly the files visible in its union view, written to dst. If
// inPlace is true, dst is ignored and the result replaces src via a
// write-to-temp-then-rename, so a crash mid-compaction never leaves src
// truncated or unreadable. No whiteouts survive compaction.
func Compact(src, dst string, inPlace bool) (*Container, error) {
	container, err := Open(src)
	if err != nil {
		return nil, errors.Wrap(err, "open source container")
	}

	view := resolver.UnionView(container.layers)
	paths := make([]string, 0, len(view))
	for p := range view {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	entries := make([]layer.Entry, len(paths))
	for i, p := range paths {
		entries[i] = layer.Entry{Path: p, Data: view[p].Data}
	}

	target := dst
	if inPlace {
		tmp, err := os.CreateTemp(filepath.Dir(src), ".tcow-compact-")
		if err != nil {
			return nil, errors.Wrap(err, "create temporary file for in-place compaction")
		}
		tmp.Close()
		target = tmp.Name()
	}

	out, err := Create(target, entries, nil, container.index.Label)
	if err != nil {
		return nil, errors.Wrap(err, "write compacted container")
	}

	if inPlace {
		if err := os.Rename(target, src); err != nil {
			return nil, errors.Wrap(err, "rename compacted container into place")
		}
		out.path = src
	}

	log.WithFields(log.Fields{"src": src, "dst": out.path, "visible_count": len(view)}).Debugf("compacted container")
	return out, nil
}
