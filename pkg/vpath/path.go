// SPDX-License-Identifier: Apache-2.0

// Package vpath implements the canonical-path and whiteout-naming rules
// shared by the layer codec and the union resolver. Canonicalisation here is
// purely lexical: no resolution, no percent-decoding, no case folding.
package vpath

import (
	"os"
	"path/filepath"
	"strings"
)

// whPrefix marks a tar entry as a whiteout (deletion marker) for its sibling
// of the same basename once stripped of this prefix.
const whPrefix = ".wh."

// Normalize strips any leading '/' characters from p. It does not otherwise
// touch the path: no cleaning, no resolution.
func Normalize(p string) string {
	return strings.TrimLeft(p, "/")
}

// ToWhiteoutTarName maps a canonical path to the tar entry name used to
// record a whiteout of that path: the basename is prefixed with ".wh.".
func ToWhiteoutTarName(canonical string) string {
	if idx := strings.LastIndexByte(canonical, '/'); idx >= 0 {
		return canonical[:idx+1] + whPrefix + canonical[idx+1:]
	}
	return whPrefix + canonical
}

// FromWhiteoutTarName extracts the real canonical path a whiteout tar entry
// name refers to. It returns ("", false) if name isn't a whiteout entry, and
// it never treats the reserved ".wh..wh." sentinel prefix as a whiteout.
func FromWhiteoutTarName(name string) (string, bool) {
	dir, base := splitPath(name)
	if !strings.HasPrefix(base, whPrefix) || strings.HasPrefix(base, whPrefix+whPrefix) {
		return "", false
	}
	real := base[len(whPrefix):]
	if dir == "" {
		return real, true
	}
	return dir + "/" + real, true
}

// CleanPath makes a canonical path safe for use with filepath.Join against a
// host destination directory. It lexically resolves ".." and "." components
// as if the path were rooted, so a result of prepending another path always
// stays a lexical subdirectory of the prefixed path -- without this, a
// container entry literally named "../../etc/passwd" would let filepath.Join
// escape the destination directory (the "zip-slip" class of bug). This is
// all lexical: a path containing symlinks isn't made safe by this function
// alone.
func CleanPath(path string) string {
	if path == "" {
		return ""
	}

	path = filepath.Clean(path)
	if !filepath.IsAbs(path) {
		path = filepath.Clean(string(os.PathSeparator) + path)
		path, _ = filepath.Rel(string(os.PathSeparator), path)
	}
	return filepath.Clean(path)
}

// splitPath splits a canonical path into its directory prefix (without a
// trailing slash, "" if root-level) and basename.
func splitPath(p string) (dir, base string) {
	if idx := strings.LastIndexByte(p, '/'); idx >= 0 {
		return p[:idx], p[idx+1:]
	}
	return "", p
}
