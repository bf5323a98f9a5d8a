// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bipring

// SPMCReader is one consumer of a broadcast region. Multiple SPMCReaders
// may read the same region concurrently, each from its own goroutine; a
// single SPMCReader must not be shared across goroutines.
//
// A new reader claims a slot at the writer's current position, so it only
// observes bytes committed after it attaches — bytes already overwritten
// by an earlier wraparound are never exposed to a late joiner. This
// package does not reclaim a dropped reader's slot automatically; call
// [SPMCReader.Release] when a reader is done so its slot can be reused,
// otherwise its last position becomes a permanent floor on the writer's
// available space, which is correct, not a leak.
type SPMCReader struct {
	_ pad

	header      *SPMCHeader
	payload     []byte
	slot        int
	cachedRead  uint64
	cachedWrite uint64
	cachedLast  uint64
}

// NewSPMCReader attaches to a region a [SPMCWriter] has already
// initialized, claiming the first available reader slot. It returns
// [ErrNoReaderSlots] if every slot is already claimed.
func NewSPMCReader(region []byte) (*SPMCReader, error) {
	h, payload, err := OpenSPMCHeader(region)
	if err != nil {
		return nil, err
	}
	start := h.write.LoadAcquire()
	slot, err := h.claimReaderSlot(start)
	if err != nil {
		return nil, err
	}
	return &SPMCReader{header: h, payload: payload, slot: slot, cachedRead: start}, nil
}

// Read returns the currently readable bytes without copying them. See
// [Reader.Read] for the wraparound rebase this mirrors.
func (r *SPMCReader) Read() []byte {
	for {
		r.cachedWrite = r.header.write.LoadAcquire()
		if r.cachedWrite >= r.cachedRead {
			return r.payload[r.cachedRead:r.cachedWrite]
		}
		r.cachedLast = r.header.last.LoadAcquire()
		if r.cachedRead == r.cachedLast {
			r.cachedRead = 0
			continue
		}
		return r.payload[r.cachedRead:r.cachedLast]
	}
}

// Advance marks count bytes of the most recently returned
// [SPMCReader.Read] slice as consumed. See [Reader.Advance].
func (r *SPMCReader) Advance(count int) bool {
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
	r.header.readerCursor(r.slot).StoreRelease(r.cachedRead)
	return true
}

// Offset returns the reader's current cursor position within the payload.
func (r *SPMCReader) Offset() uint64 {
	return r.cachedRead
}

// Release gives up this reader's slot, allowing a future [NewSPMCReader]
// call to claim it. The SPMCReader must not be used afterward.
func (r *SPMCReader) Release() {
	r.header.releaseReaderSlot(r.slot)
}
