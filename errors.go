// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bipring

import (
	"errors"

	"code.hybscloud.com/iox"
)

// ErrNoSpace indicates a reservation cannot proceed because no sufficiently
// large contiguous run is currently free.
//
// ErrNoSpace is a control flow signal, not a failure: the writer should
// retry later, typically after the reader(s) have advanced. It is an alias
// for [iox.ErrWouldBlock] for ecosystem consistency with other queue
// packages that surface backpressure the same way.
//
// Example:
//
//	backoff := iox.Backoff{}
//	for {
//	    res, err := w.Reserve(len(chunk))
//	    if err == nil {
//	        break
//	    }
//	    if bipring.IsNoSpace(err) {
//	        backoff.Wait()
//	        continue
//	    }
//	    return err // unexpected error
//	}
var ErrNoSpace = iox.ErrWouldBlock

// ErrInvalidRegion indicates the backing byte slice is too small to hold a
// header plus at least one payload byte, or that an already-initialized
// region's recorded buffer size does not match its actual length.
var ErrInvalidRegion = errors.New("bipring: invalid region")

// ErrNoReaderSlots indicates every SPMC reader slot is already claimed.
var ErrNoReaderSlots = errors.New("bipring: no reader slots available")

// IsNoSpace reports whether err indicates a reservation was refused for
// lack of contiguous space. Delegates to [iox.IsWouldBlock].
func IsNoSpace(err error) bool {
	return iox.IsWouldBlock(err)
}

// IsSemantic reports whether err is a control flow signal rather than a
// failure. Delegates to [iox.IsSemantic].
func IsSemantic(err error) bool {
	return iox.IsSemantic(err)
}

// IsNonFailure reports whether err represents a non-failure condition:
// nil or [ErrNoSpace]. Delegates to [iox.IsNonFailure].
func IsNonFailure(err error) bool {
	return iox.IsNonFailure(err)
}
