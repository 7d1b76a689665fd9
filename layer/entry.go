// SPDX-License-Identifier: Apache-2.0

// Package layer implements the ustar-based layer codec (parse and emit) used
// by each Base or Delta layer inside a .tcow container.
package layer

// RawEntry is a single path's record within one layer, as parsed from that
// layer's tar stream. Whiteout entries are stored under their real
// (non-".wh."-prefixed) canonical path with an empty Data payload.
type RawEntry struct {
	// Data is the entry's file content. Empty for whiteouts and directories.
	Data []byte
	// Mtime is the modification time, in whole seconds since the Unix epoch,
	// as recorded in the tar header (0 if the header carried none).
	Mtime uint64
	// IsWhiteout marks this entry as a deletion tombstone for the same path
	// in any lower layer.
	IsWhiteout bool
	// IsDir marks this entry as a directory. Directory entries are kept in
	// the layer map (so direct layer inspection can see them) but are never
	// surfaced by the union resolver.
	IsDir bool
}

// Map is the parsed contents of one layer: canonical path -> RawEntry.
type Map map[string]RawEntry

// ResolvedEntry is the result of resolving a virtual path through the union
// view of a layer stack. It is derived on demand and never persisted.
type ResolvedEntry struct {
	Data     []byte
	Mtime    uint64
	LayerIdx int
	Size     uint64
}
