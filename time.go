// SPDX-License-Identifier: Apache-2.0

package tcow

import "time"

// nowUnix is the current time, truncated to whole seconds since the Unix
// epoch, as stamped on every tar header emitted by a single mutating
// operation.
func nowUnix() uint64 {
	return uint64(time.Now().Unix())
}

// nowRFC3339 is the current time formatted as required for Index timestamps:
// RFC 3339, UTC, second precision, 'Z' suffix.
func nowRFC3339() string {
	return time.Now().UTC().Truncate(time.Second).Format(time.RFC3339)
}
