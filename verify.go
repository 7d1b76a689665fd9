// SPDX-License-Identifier: Apache-2.0

package tcow

import (
	"io"
	"os"

	"github.com/apex/log"
	"github.com/opencontainers/go-digest"
	"github.com/pkg/errors"

	"github.com/cyphar/tcow/index"
	"github.com/cyphar/tcow/internal"
	"github.com/cyphar/tcow/internal/funchelpers"
)

// LayerVerifyStatus classifies the outcome of checking one layer's stored
// digest against its recomputed content digest.
type LayerVerifyStatus string

const (
	StatusOK             LayerVerifyStatus = "ok"
	StatusDigestMismatch LayerVerifyStatus = "mismatch"
	StatusMissing        LayerVerifyStatus = "missing"
)

// LayerVerifyResult is the per-layer outcome of Verify.
type LayerVerifyResult struct {
	LayerIdx int
	Status   LayerVerifyStatus
	Computed string
}

// VerifyReport is the outcome of verifying every layer in a container.
type VerifyReport struct {
	Results []LayerVerifyResult
	OK      bool
}

// Verify reads every layer's exact byte range, recomputes its SHA-256
// digest, and compares it to the stored digest (if any). A digest mismatch
// always fails the report. A missing digest fails the report too, unless
// fixMissing is set, in which case the computed digest is filled in and the
// trailer is rewritten in place with an advanced LastModified.
func Verify(path string, fixMissing bool) (*VerifyReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read container file")
	}
	container, err := parseContainer(path, data)
	if err != nil {
		return nil, err
	}

	report := &VerifyReport{OK: true}
	newLayers := append([]index.LayerRecord{}, container.index.Layers...)
	fixedAny := false

	for i, rec := range container.index.Layers {
		layerBytes := data[rec.Offset : rec.Offset+rec.Size]
		computed := digest.Canonical.FromBytes(layerBytes).Encoded()

		switch {
		case rec.Digest == nil:
			report.Results = append(report.Results, LayerVerifyResult{LayerIdx: i, Status: StatusMissing, Computed: computed})
			if fixMissing {
				c := computed
				newLayers[i].Digest = &c
				fixedAny = true
			} else {
				report.OK = false
			}
		case *rec.Digest != computed:
			report.Results = append(report.Results, LayerVerifyResult{LayerIdx: i, Status: StatusDigestMismatch, Computed: computed})
			report.OK = false
		default:
			report.Results = append(report.Results, LayerVerifyResult{LayerIdx: i, Status: StatusOK, Computed: computed})
		}
	}

	if !report.OK {
		return report, errors.Wrapf(internal.ErrIntegrity, "container %q failed verification", path)
	}

	if fixMissing && fixedAny {
		last := container.index.Layers[len(container.index.Layers)-1]
		if err := rewriteTrailerInPlace(path, last.Offset+last.Size, newLayers, container.index.Label); err != nil {
			return nil, errors.Wrap(err, "rewrite trailer with recovered digests")
		}
	}

	log.WithFields(log.Fields{"path": path, "layers": len(container.index.Layers), "fix_missing": fixMissing}).Debugf("verified container")
	return report, nil
}

// rewriteTrailerInPlace truncates the container at trailerOffset and writes
// a fresh trailer (carrying layers and label forward) plus footer.
func rewriteTrailerInPlace(path string, trailerOffset uint64, layers []index.LayerRecord, label *string) (Err error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return errors.Wrap(err, "reopen container file")
	}
	defer funchelpers.VerifyClose(&Err, f)

	if err := f.Truncate(int64(trailerOffset)); err != nil {
		return errors.Wrap(err, "truncate container at trailer offset")
	}
	if _, err := f.Seek(int64(trailerOffset), io.SeekStart); err != nil {
		return errors.Wrap(err, "seek to trailer offset")
	}

	idx := index.Index{
		Version:      index.FormatVersion,
		Layers:       layers,
		LastModified: nowRFC3339(),
		Label:        label,
	}
	return writeTrailerAndFooter(f, idx, trailerOffset)
}
