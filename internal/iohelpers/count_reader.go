// SPDX-License-Identifier: Apache-2.0

// Package iohelpers contains a small io.Reader wrapper used by the layer
// codec.
package iohelpers

import "io"

// CountingReader is an [io.Reader] wrapper that counts how many bytes were
// read from the underlying [io.Reader].
type CountingReader struct {
	R io.Reader // underlying reader
	N int64     // number of bytes read
}

// CountReader returns a new *CountingReader that wraps the given [io.Reader].
func CountReader(rdr io.Reader) *CountingReader {
	return &CountingReader{R: rdr}
}

func (c *CountingReader) Read(p []byte) (int, error) {
	n, err := c.R.Read(p)
	c.N += int64(n)
	return n, err
}

// BytesRead returns the number of bytes read so far from the reader.
func (c CountingReader) BytesRead() int64 {
	return c.N
}
