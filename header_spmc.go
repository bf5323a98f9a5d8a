// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bipring

import (
	"unsafe"

	"code.hybscloud.com/atomix"
)

// SPMCHeader is the broadcast control block: a single producer's write/last
// cursors, plus a fixed-size table of independent reader cursors that
// immediately follows the fixed fields in memory.
//
// Layout (an ABI, same rationale as [Header]): offset 0 is write, 8 is
// last, 16 is readerCount, 24 is bufferSize, and readerCount 8-byte reader
// cursors follow starting at offset 32.
type SPMCHeader struct {
	write       atomix.Uint64
	last        atomix.Uint64
	readerCount uint64
	bufferSize  uint64
}

const spmcHeaderSize = int(unsafe.Sizeof(SPMCHeader{}))

// CreateSPMCHeader places a fresh SPMCHeader at the start of region,
// provisions readerCount reader slots (all initially unclaimed), and
// returns the header and the payload slice that follows the reader table.
func CreateSPMCHeader(region []byte, readerCount int) (*SPMCHeader, []byte, error) {
	if readerCount <= 0 {
		return nil, nil, ErrInvalidRegion
	}
	overhead := spmcHeaderSize + 8*readerCount
	if len(region) <= overhead {
		return nil, nil, ErrInvalidRegion
	}
	h := (*SPMCHeader)(unsafe.Pointer(unsafe.SliceData(region)))
	h.write.StoreRelaxed(0)
	h.last.StoreRelaxed(0)
	h.readerCount = uint64(readerCount)
	h.bufferSize = uint64(len(region) - overhead)
	for i := 0; i < readerCount; i++ {
		h.readerCursor(i).StoreRelaxed(unclaimedCursor)
	}
	return h, region[overhead:], nil
}

// OpenSPMCHeader overlays an already-initialized SPMCHeader onto region,
// for a reader attaching to a region the writer already created.
func OpenSPMCHeader(region []byte) (*SPMCHeader, []byte, error) {
	if len(region) <= spmcHeaderSize {
		return nil, nil, ErrInvalidRegion
	}
	h := (*SPMCHeader)(unsafe.Pointer(unsafe.SliceData(region)))
	overhead := spmcHeaderSize + 8*int(h.readerCount)
	if overhead <= spmcHeaderSize || int(h.bufferSize) != len(region)-overhead {
		return nil, nil, ErrInvalidRegion
	}
	return h, region[overhead:], nil
}

// BufferSize returns the fixed payload length recorded at creation.
func (h *SPMCHeader) BufferSize() uint64 {
	return h.bufferSize
}

// Write returns the current write cursor. Exposed for diagnostics and
// testing.
func (h *SPMCHeader) Write() uint64 {
	return h.write.LoadAcquire()
}

// Last returns the current high-water mark.
func (h *SPMCHeader) Last() uint64 {
	return h.last.LoadAcquire()
}

// ReaderCount returns the fixed number of reader slots.
func (h *SPMCHeader) ReaderCount() int {
	return int(h.readerCount)
}

// readerCursor addresses the i-th reader cursor as
// base_address + spmcHeaderSize + i*8, where base_address is the region's
// own start (h is placed there by Create/OpenSPMCHeader). This is the
// corrected form of the offset computation: it is never taken relative to
// sizeof(SPMCHeader) multiplied by the header pointer itself, which would
// address memory far outside the reader table for any readerCount > 1.
func (h *SPMCHeader) readerCursor(i int) *atomix.Uint64 {
	return (*atomix.Uint64)(unsafe.Add(unsafe.Pointer(h), spmcHeaderSize+i*8))
}

// claimReaderSlot finds a slot holding the unclaimed sentinel and atomically
// takes it, initializing its cursor to the given starting position. It
// returns the claimed slot index, or ErrNoReaderSlots if every slot is
// already bound to a reader.
func (h *SPMCHeader) claimReaderSlot(start uint64) (int, error) {
	for i := 0; i < int(h.readerCount); i++ {
		if h.readerCursor(i).CompareAndSwapAcqRel(unclaimedCursor, start) {
			return i, nil
		}
	}
	return 0, ErrNoReaderSlots
}

// releaseReaderSlot resets slot i back to the unclaimed sentinel, making it
// available for a future reader.
func (h *SPMCHeader) releaseReaderSlot(i int) {
	h.readerCursor(i).StoreRelease(unclaimedCursor)
}

// effectiveRead computes the writer-visible read cursor: the slowest
// claimed reader, expressed as a single position comparable to write so it
// can feed directly into the same reservation decision tree used by the
// SPSC writer. Slots holding the unclaimed sentinel are excluded. If no
// reader is claimed, the whole buffer is available.
//
// A reader cursor r > write means that reader is still trailing the
// segment from before the producer's most recent wraparound commit; it has
// not rebased to the new segment yet. Such a reader constrains the writer
// exactly like a single SPSC reader would (the writer cannot touch
// [r, last) until it catches up), so its raw cursor is used directly.
// A reader with r <= write has already rebased (or never needed to); among
// those, only the least-advanced one matters. Trailing readers always take
// priority: the writer must not wrap into the old segment while any reader
// still has unread bytes there, regardless of how far ahead other readers
// already are in the new segment.
func (h *SPMCHeader) effectiveRead() uint64 {
	write := h.write.LoadRelaxed()

	haveTrailing, haveCaughtUp := false, false
	var minTrailing, minCaughtUp uint64
	for i := 0; i < int(h.readerCount); i++ {
		r := h.readerCursor(i).LoadAcquire()
		if r == unclaimedCursor {
			continue
		}
		if r > write {
			if !haveTrailing || r < minTrailing {
				minTrailing, haveTrailing = r, true
			}
			continue
		}
		if !haveCaughtUp || r < minCaughtUp {
			minCaughtUp, haveCaughtUp = r, true
		}
	}
	if haveTrailing {
		return minTrailing
	}
	if haveCaughtUp {
		return minCaughtUp
	}
	return write
}
