// SPDX-License-Identifier: Apache-2.0

package layer

import "time"

// unixSeconds converts a second-precision Unix timestamp (as stored in the
// trailer and tar headers) into a time.Time suitable for a tar.Header.
func unixSeconds(ts uint64) time.Time {
	return time.Unix(int64(ts), 0).UTC()
}
