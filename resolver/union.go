// SPDX-License-Identifier: Apache-2.0

// Package resolver implements the union-view fold over an ordered layer
// stack: higher layers shadow lower ones, and whiteouts hide same-path
// entries in every strictly lower layer.
package resolver

import "github.com/cyphar/tcow/layer"

// ListEntry is one (path, entry) pair returned by List.
type ListEntry struct {
	Path  string
	Entry layer.ResolvedEntry
}

// UnionView folds layers (ordered from Base at index 0 to the most recent
// Delta at the end) into the currently visible set of files. Layers are
// walked from highest index to lowest; a whiteout at path p in layer i hides
// every occurrence of p in layers 0..i-1 but never in layers above i.
// Directory entries never appear in the result.
func UnionView(layers []layer.Map) map[string]layer.ResolvedEntry {
	result := map[string]layer.ResolvedEntry{}
	deleted := map[string]struct{}{}

	for i := len(layers) - 1; i >= 0; i-- {
		for path, entry := range layers[i] {
			switch {
			case entry.IsWhiteout:
				deleted[path] = struct{}{}
			case entry.IsDir:
				// A directory shadows a regular file at the same path in any
				// strictly lower layer, the same way a whiteout does.
				deleted[path] = struct{}{}
			default:
				if _, hidden := deleted[path]; hidden {
					continue
				}
				if _, already := result[path]; already {
					continue
				}
				result[path] = layer.ResolvedEntry{
					Data:     entry.Data,
					Mtime:    entry.Mtime,
					LayerIdx: i,
					Size:     uint64(len(entry.Data)),
				}
			}
		}
	}
	return result
}

// Resolve looks up a single canonical path in the union view of layers.
func Resolve(layers []layer.Map, canonical string) (layer.ResolvedEntry, bool) {
	view := UnionView(layers)
	entry, ok := view[canonical]
	return entry, ok
}

// List returns every (path, entry) pair in view whose canonical path is
// prefix itself or a descendant of it (matched on '/'-separated path
// components, never on partial basenames), sorted ascending by path. An
// empty prefix matches everything.
func List(view map[string]layer.ResolvedEntry, prefix string) []ListEntry {
	trie := newPathTrie[layer.ResolvedEntry]()
	for path, entry := range view {
		trie.insert(path, entry)
	}

	matches := trie.walkPrefix(prefix)
	out := make([]ListEntry, len(matches))
	for i, m := range matches {
		out[i] = ListEntry{Path: m.Path, Entry: m.Value}
	}
	return out
}
