// SPDX-License-Identifier: Apache-2.0

package tcow

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cyphar/tcow/layer"
)

func tempContainerPath(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	return filepath.Join(dir, "test.tcow")
}

func TestCreateAndResolve(t *testing.T) {
	path := tempContainerPath(t)

	c, err := Create(path, []layer.Entry{
		{Path: "etc/hosts", Data: []byte("127.0.0.1 localhost")},
		{Path: "var/log/app.log", Data: []byte("boot")},
	}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, c.LayerCount())
	assert.Equal(t, 2, c.VisibleCount())

	entry, idx, ok := c.Resolve("etc/hosts")
	require.True(t, ok)
	assert.Equal(t, 0, idx)
	assert.Equal(t, []byte("127.0.0.1 localhost"), entry.Data)

	reopened, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, c.VisibleCount(), reopened.VisibleCount())
}

func TestDeltaShadowsBase(t *testing.T) {
	path := tempContainerPath(t)

	_, err := Create(path, []layer.Entry{{Path: "etc/hosts", Data: []byte("base")}}, nil, nil)
	require.NoError(t, err)

	c, err := AppendDelta(path, []layer.Entry{{Path: "etc/hosts", Data: []byte("delta")}}, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, c.LayerCount())

	entry, idx, ok := c.Resolve("etc/hosts")
	require.True(t, ok)
	assert.Equal(t, 1, idx)
	assert.Equal(t, []byte("delta"), entry.Data)
}

func TestWhiteoutHidesBase(t *testing.T) {
	path := tempContainerPath(t)

	_, err := Create(path, []layer.Entry{{Path: "etc/hosts", Data: []byte("base")}}, nil, nil)
	require.NoError(t, err)

	c, err := AppendDelta(path, nil, []string{"etc/hosts"})
	require.NoError(t, err)

	_, _, ok := c.Resolve("etc/hosts")
	assert.False(t, ok)
	assert.Equal(t, 0, c.VisibleCount())
}

func TestCompactCollapsesLayers(t *testing.T) {
	path := tempContainerPath(t)

	_, err := Create(path, []layer.Entry{
		{Path: "a", Data: []byte("1")},
		{Path: "b", Data: []byte("2")},
	}, nil, nil)
	require.NoError(t, err)

	_, err = AppendDelta(path, []layer.Entry{{Path: "b", Data: []byte("2-delta")}}, []string{"a"})
	require.NoError(t, err)

	before, err := Open(path)
	require.NoError(t, err)
	beforeView := before.UnionView()

	compacted, err := Compact(path, path, true)
	require.NoError(t, err)
	assert.Equal(t, 1, compacted.LayerCount())

	afterView := compacted.UnionView()
	assert.Equal(t, len(beforeView), len(afterView))
	for p, e := range beforeView {
		got, ok := afterView[p]
		require.True(t, ok)
		assert.Equal(t, e.Data, got.Data)
	}

	_, _, ok := compacted.Resolve("a")
	assert.False(t, ok, "whiteout entry must not survive compaction")
}

func TestVerifyDetectsCorruption(t *testing.T) {
	path := tempContainerPath(t)

	_, err := Create(path, []layer.Entry{{Path: "a", Data: []byte("hello")}}, nil, nil)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	// Flip a byte inside the base layer's content region, after the header.
	data[20] ^= 0xff
	require.NoError(t, os.WriteFile(path, data, 0o644))

	report, err := Verify(path, false)
	require.Error(t, err)
	require.NotNil(t, report)
	assert.False(t, report.OK)
	assert.Equal(t, StatusDigestMismatch, report.Results[0].Status)
}

func TestVerifyFixesMissingDigest(t *testing.T) {
	path := tempContainerPath(t)

	_, err := Create(path, []layer.Entry{{Path: "a", Data: []byte("hello")}}, nil, nil)
	require.NoError(t, err)

	c, err := Open(path)
	require.NoError(t, err)
	last := c.index.Layers[len(c.index.Layers)-1]
	last.Digest = nil
	c.index.Layers[len(c.index.Layers)-1] = last
	require.NoError(t, rewriteTrailerInPlace(path, last.Offset+last.Size, c.index.Layers, c.index.Label))

	report, err := Verify(path, false)
	require.Error(t, err)
	assert.Equal(t, StatusMissing, report.Results[0].Status)

	report, err = Verify(path, true)
	require.NoError(t, err)
	assert.True(t, report.OK)

	reopened, err := Open(path)
	require.NoError(t, err)
	require.NotNil(t, reopened.index.Layers[0].Digest)
}

func TestInsertCreatesThenAppends(t *testing.T) {
	path := tempContainerPath(t)

	c, err := Insert(path, "a", []byte("v1"))
	require.NoError(t, err)
	assert.Equal(t, 1, c.LayerCount())

	c, err = Insert(path, "a", []byte("v2"))
	require.NoError(t, err)
	assert.Equal(t, 2, c.LayerCount())

	entry, _, ok := c.Resolve("a")
	require.True(t, ok)
	assert.Equal(t, []byte("v2"), entry.Data)
}

func TestDeleteFailsWhenNotVisible(t *testing.T) {
	path := tempContainerPath(t)

	_, err := Create(path, []layer.Entry{{Path: "a", Data: []byte("1")}}, nil, nil)
	require.NoError(t, err)

	_, err = Delete(path, "missing")
	assert.ErrorIs(t, err, ErrNotDeletable)
}

func TestDeleteRemovesVisiblePath(t *testing.T) {
	path := tempContainerPath(t)

	_, err := Create(path, []layer.Entry{{Path: "a", Data: []byte("1")}}, nil, nil)
	require.NoError(t, err)

	c, err := Delete(path, "a")
	require.NoError(t, err)
	assert.Equal(t, 0, c.VisibleCount())
}

func TestListPrefix(t *testing.T) {
	path := tempContainerPath(t)

	_, err := Create(path, []layer.Entry{
		{Path: "etc/hosts", Data: []byte("1")},
		{Path: "etc/resolv.conf", Data: []byte("2")},
		{Path: "var/log/a", Data: []byte("3")},
	}, nil, nil)
	require.NoError(t, err)

	c, err := Open(path)
	require.NoError(t, err)

	got := c.List("etc")
	assert.Len(t, got, 2)
}

func TestEmptyContainerHasZeroVisibleCount(t *testing.T) {
	path := tempContainerPath(t)

	c, err := Create(path, nil, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, c.VisibleCount())
	assert.Equal(t, 1, c.LayerCount())
}

func TestLabelSurvivesReopen(t *testing.T) {
	path := tempContainerPath(t)
	label := "release-1"

	_, err := Create(path, nil, nil, &label)
	require.NoError(t, err)

	c, err := Open(path)
	require.NoError(t, err)
	require.NotNil(t, c.Label())
	assert.Equal(t, label, *c.Label())
}
