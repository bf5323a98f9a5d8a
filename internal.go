// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bipring

// pad is cache-line padding used to separate hot fields that are written by
// different goroutines and would otherwise false-share. It is never used
// inside a Header or SPMCHeader: those layouts are an ABI (see header.go)
// and must not carry implementation-only bytes between their fields.
type pad [64]byte

// unclaimedCursor marks a SPMC reader slot with no bound reader. It is the
// all-ones bit pattern, which no real cursor reaches for any buffer under
// 2^63 bytes, so it can never be confused with a legitimate position.
const unclaimedCursor = ^uint64(0)

// saturatingSub returns a-b, or 0 if that would underflow. The writer's
// reservation arithmetic depends on this never wrapping around through a
// huge unsigned value.
func saturatingSub(a, b uint64) uint64 {
	if b >= a {
		return 0
	}
	return a - b
}
