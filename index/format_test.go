// SPDX-License-Identifier: Apache-2.0

package index

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeaderRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteHeader(&buf, true))
	assert.Equal(t, HeaderSize, buf.Len())

	hdr, err := ParseHeader(buf.Bytes())
	require.NoError(t, err)
	assert.True(t, hdr.HasBase())
	assert.Equal(t, FormatVersion, hdr.Version)
}

func TestHeaderWithoutBase(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteHeader(&buf, false))

	hdr, err := ParseHeader(buf.Bytes())
	require.NoError(t, err)
	assert.False(t, hdr.HasBase())
}

func TestParseHeaderBadMagic(t *testing.T) {
	data := make([]byte, HeaderSize)
	copy(data, "XXXX")
	_, err := ParseHeader(data)
	assert.Error(t, err)
}

func TestParseHeaderTruncated(t *testing.T) {
	_, err := ParseHeader([]byte{'T', 'C'})
	assert.Error(t, err)
}

func TestFooterRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFooter(&buf, 12345, 678))

	ftr, err := ParseFooter(buf.Bytes())
	require.NoError(t, err)
	assert.EqualValues(t, 12345, ftr.TrailerOffset)
	assert.EqualValues(t, 678, ftr.TrailerLen)
}

func TestParseFooterBadMagic(t *testing.T) {
	data := make([]byte, FooterSize)
	_, err := ParseFooter(data)
	assert.Error(t, err)
}

func TestIndexEncodeDecodeRoundTrip(t *testing.T) {
	digest := "deadbeef"
	label := "v1"
	idx := Index{
		Version: 1,
		Layers: []LayerRecord{
			{Offset: 16, Size: 100, Kind: Base, Digest: &digest, CreatedAt: "2024-05-01T12:34:56Z"},
		},
		LastModified: "2024-05-01T12:34:56Z",
		Label:        &label,
	}

	data, err := Encode(idx)
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, idx, got)
}

func TestIndexDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode([]byte{0xff, 0xff, 0xff})
	assert.Error(t, err)
}

func TestLayerRecordDigestOmittedWhenNil(t *testing.T) {
	idx := Index{
		Version:      1,
		Layers:       []LayerRecord{{Offset: 16, Size: 0, Kind: Base, CreatedAt: "2024-01-01T00:00:00Z"}},
		LastModified: "2024-01-01T00:00:00Z",
	}
	data, err := Encode(idx)
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)
	assert.Nil(t, got.Layers[0].Digest)
	assert.Nil(t, got.Label)
}
