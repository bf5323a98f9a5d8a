// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bipring

// Reader is the sole consumer of a SPSC region. It must not be used from
// more than one goroutine. It caches the write/last cursors it observed
// during the last [Reader.Read] so that [Reader.Advance] can validate
// against a self-consistent snapshot without a second pair of atomic
// loads.
type Reader struct {
	_ pad

	header      *Header
	payload     []byte
	cachedRead  uint64
	cachedWrite uint64
	cachedLast  uint64
}

// NewReader attaches to a region a [Writer] has already initialized.
func NewReader(region []byte) (*Reader, error) {
	h, payload, err := OpenHeader(region)
	if err != nil {
		return nil, err
	}
	return &Reader{header: h, payload: payload, cachedRead: h.read.LoadAcquire()}, nil
}

// Read returns the currently readable bytes without copying them. The
// returned slice aliases the region's payload and is valid only until the
// next call to Read or Advance. An empty slice means there is nothing to
// read right now.
func (r *Reader) Read() []byte {
	for {
		r.cachedWrite = r.header.write.LoadAcquire()
		if r.cachedWrite >= r.cachedRead {
			return r.payload[r.cachedRead:r.cachedWrite]
		}
		r.cachedLast = r.header.last.LoadAcquire()
		if r.cachedRead == r.cachedLast {
			// Consumed up to the high-water mark; rejoin at the start of
			// the segment the writer wrapped into.
			r.cachedRead = 0
			continue
		}
		return r.payload[r.cachedRead:r.cachedLast]
	}
}

// Advance marks count bytes of the most recently returned [Reader.Read]
// slice as consumed. It reports false, leaving all state unchanged, if
// count exceeds what was available in that slice.
func (r *Reader) Advance(count int) bool {
	c := uint64(count)
	if r.cachedWrite >= r.cachedRead {
		if c > r.cachedWrite-r.cachedRead {
			return false
		}
		r.cachedRead += c
	} else {
		remaining := r.cachedLast - r.cachedRead
		switch {
		case c == remaining:
			r.cachedRead = 0
		case c < remaining:
			r.cachedRead += c
		default:
			return false
		}
	}
	r.header.read.StoreRelease(r.cachedRead)
	return true
}

// Offset returns the reader's current cursor position within the payload.
func (r *Reader) Offset() uint64 {
	return r.cachedRead
}
