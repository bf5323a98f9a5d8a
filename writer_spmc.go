// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bipring

// SPMCWriter is the sole producer of a broadcast region. It must not be
// used from more than one goroutine, and only one [Reservation] may be
// live at a time. It never reclaims a byte until every claimed reader has
// advanced past it, per [SPMCHeader.effectiveRead].
type SPMCWriter struct {
	_       pad
	header  *SPMCHeader
	payload []byte
}

// NewSPMCWriter initializes region as a fresh broadcast buffer with the
// given fixed reader-slot count and returns a SPMCWriter over it. The
// caller must be the only initializer of region; readers attach afterward
// via [NewSPMCReader].
func NewSPMCWriter(region []byte, readerCount int) (*SPMCWriter, error) {
	h, payload, err := CreateSPMCHeader(region, readerCount)
	if err != nil {
		return nil, err
	}
	return &SPMCWriter{header: h, payload: payload}, nil
}

// Header returns the writer's control block, for diagnostics and testing.
func (w *SPMCWriter) Header() *SPMCHeader {
	return w.header
}

// Cap returns the fixed payload capacity in bytes.
func (w *SPMCWriter) Cap() int {
	return int(w.header.bufferSize)
}

// ReaderCount returns the fixed number of reader slots.
func (w *SPMCWriter) ReaderCount() int {
	return w.header.ReaderCount()
}

// Reserve requests a contiguous run of length bytes to write into,
// respecting the slowest claimed reader. It returns [ErrNoSpace] if no
// run of that length is currently free.
func (w *SPMCWriter) Reserve(length int) (*Reservation, error) {
	l := uint64(length)
	b := w.header.bufferSize
	write := w.header.write.LoadRelaxed()
	read := w.header.effectiveRead()

	if write >= read {
		if saturatingSub(b, write) >= l {
			return w.reservation(write, l, false), nil
		}
		if saturatingSub(read, 1) >= l {
			return w.reservation(0, l, true), nil
		}
		return nil, ErrNoSpace
	}

	if saturatingSub(saturatingSub(read, write), 1) >= l {
		return w.reservation(write, l, false), nil
	}
	return nil, ErrNoSpace
}

func (w *SPMCWriter) reservation(start, length uint64, wraparound bool) *Reservation {
	return &Reservation{c: w, payload: w.payload, start: start, length: length, wraparound: wraparound}
}

func (w *SPMCWriter) commitReservation(start, length uint64, wraparound bool) {
	if wraparound {
		oldWrite := w.header.write.LoadRelaxed()
		w.header.last.StoreRelease(oldWrite)
		w.header.write.StoreRelease(start + length)
		return
	}
	newWrite := start + length
	w.header.write.StoreRelease(newWrite)
	if newWrite > w.header.last.LoadRelaxed() {
		w.header.last.StoreRelease(newWrite)
	}
}
