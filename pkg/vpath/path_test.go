// SPDX-License-Identifier: Apache-2.0

package vpath

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeIdempotent(t *testing.T) {
	for _, p := range []string{"", "/", "//", "a/b/c", "/a/b/c", "etc/hosts", "/etc/hosts"} {
		once := Normalize(p)
		twice := Normalize(once)
		assert.Equal(t, once, twice, "normalize should be idempotent for %q", p)
	}
}

func TestNormalizeStripsLeadingSlashesOnly(t *testing.T) {
	assert.Equal(t, "etc/hosts", Normalize("/etc/hosts"))
	assert.Equal(t, "etc/hosts", Normalize("///etc/hosts"))
	assert.Equal(t, "a/b/../c", Normalize("/a/b/../c"), "no lexical cleaning is performed")
}

func TestWhiteoutRoundTrip(t *testing.T) {
	for _, canonical := range []string{"c", "a/b/c", "deeply/nested/path/file.txt"} {
		tarName := ToWhiteoutTarName(canonical)
		got, ok := FromWhiteoutTarName(tarName)
		assert.True(t, ok)
		assert.Equal(t, canonical, got)
	}
}

func TestToWhiteoutTarName(t *testing.T) {
	assert.Equal(t, ".wh.c", ToWhiteoutTarName("c"))
	assert.Equal(t, "a/b/.wh.c", ToWhiteoutTarName("a/b/c"))
}

func TestFromWhiteoutTarNameRejectsOpaqueSentinel(t *testing.T) {
	_, ok := FromWhiteoutTarName(".wh..wh.foo")
	assert.False(t, ok, "the .wh..wh. sentinel must never be interpreted as a whiteout")

	_, ok = FromWhiteoutTarName("dir/.wh..wh.opq")
	assert.False(t, ok)
}

func TestFromWhiteoutTarNameNonWhiteout(t *testing.T) {
	_, ok := FromWhiteoutTarName("etc/hosts")
	assert.False(t, ok)

	_, ok = FromWhiteoutTarName("whoops")
	assert.False(t, ok, "plain prefix similarity shouldn't matter, this literally has no .wh. prefix")
}

func TestCleanPathStripsTraversal(t *testing.T) {
	assert.Equal(t, "tmp/evil", CleanPath("../../../tmp/evil"))
	assert.Equal(t, "etc/passwd", CleanPath("../../etc/passwd"))
	assert.Equal(t, "a/c", CleanPath("a/b/../c"))
	assert.Equal(t, "a/b/c", CleanPath("a/b/c"))
	assert.Equal(t, "", CleanPath(""))
}

func TestCleanPathNeverEscapesWhenJoined(t *testing.T) {
	for _, p := range []string{"../../../etc/passwd", "a/../../b", "../../../../x"} {
		cleaned := CleanPath(p)
		assert.False(t, strings.HasPrefix(cleaned, ".."), "cleaned path %q from %q must not start with ..", cleaned, p)
	}
}
