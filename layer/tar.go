// SPDX-License-Identifier: Apache-2.0

package layer

import (
	"archive/tar"
	"bytes"
	"io"

	"github.com/pkg/errors"

	"github.com/cyphar/tcow/internal"
	"github.com/cyphar/tcow/internal/iohelpers"
	"github.com/cyphar/tcow/pkg/vpath"
)

// defaultMode is the POSIX mode bits stamped on every entry this package
// emits. The container format doesn't otherwise preserve permission
// semantics (see the Non-goals in the format's spec).
const defaultMode = 0o644

// Entry is one (canonical path, content) pair to be written into a layer by
// Build. Entries are not required to be given in any particular order, but
// lexicographic order keeps the resulting tar stream deterministic.
type Entry struct {
	Path string
	Data []byte
}

// Parse decodes a single layer's ustar byte stream into a canonical-path ->
// RawEntry map. Entries for the same canonical path encountered later in the
// stream overwrite earlier ones, matching the behaviour of GNU tar when the
// same name is repeated. Non-regular, non-directory entries are ignored.
func Parse(data []byte) (Map, error) {
	entries := Map{}
	counted := iohelpers.CountReader(bytes.NewReader(data))
	tr := tar.NewReader(counted)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(internal.ErrBadArchive, "at byte offset %d: %v", counted.BytesRead(), err)
		}

		switch hdr.Typeflag {
		case tar.TypeReg, tar.TypeRegA, tar.TypeDir:
			// handled below
		default:
			// Out of scope: symlinks, hardlinks, devices, etc. are ignored.
			continue
		}

		canonical := vpath.Normalize(hdr.Name)
		if canonical == "" {
			continue
		}

		if real, ok := vpath.FromWhiteoutTarName(canonical); ok {
			entries[real] = RawEntry{
				IsWhiteout: true,
			}
			continue
		}

		buf := make([]byte, hdr.Size)
		if _, err := io.ReadFull(tr, buf); err != nil {
			return nil, errors.Wrapf(internal.ErrBadArchive, "reading content of %q at byte offset %d: %v", canonical, counted.BytesRead(), err)
		}

		mtime := uint64(0)
		if unixTime := hdr.ModTime.Unix(); unixTime > 0 {
			mtime = uint64(unixTime)
		}

		entries[canonical] = RawEntry{
			Data:  buf,
			Mtime: mtime,
			IsDir: hdr.Typeflag == tar.TypeDir,
		}
	}
	return entries, nil
}

// Build serialises the given content entries and whiteout paths into a new
// ustar layer. All headers in the resulting archive share a single emit
// timestamp. Build does not validate entries against whiteouts (a path may
// legally appear in both lists; the caller is responsible for that policy).
func Build(entries []Entry, whiteouts []string, emitTime uint64) ([]byte, error) {
	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)

	modTime := unixSeconds(emitTime)

	for _, e := range entries {
		canonical := vpath.Normalize(e.Path)
		hdr := &tar.Header{
			Name:     canonical,
			Typeflag: tar.TypeReg,
			Size:     int64(len(e.Data)),
			Mode:     defaultMode,
			ModTime:  modTime,
		}
		if err := tw.WriteHeader(hdr); err != nil {
			return nil, errors.Wrapf(err, "write header for %q", canonical)
		}
		if _, err := tw.Write(e.Data); err != nil {
			return nil, errors.Wrapf(err, "write content for %q", canonical)
		}
	}

	for _, w := range whiteouts {
		canonical := vpath.Normalize(w)
		tarName := vpath.ToWhiteoutTarName(canonical)
		hdr := &tar.Header{
			Name:     tarName,
			Typeflag: tar.TypeReg,
			Size:     0,
			Mode:     defaultMode,
			ModTime:  modTime,
		}
		if err := tw.WriteHeader(hdr); err != nil {
			return nil, errors.Wrapf(err, "write whiteout header for %q", canonical)
		}
	}

	if err := tw.Close(); err != nil {
		return nil, errors.Wrap(err, "finalise layer archive")
	}
	return buf.Bytes(), nil
}
