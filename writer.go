// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bipring

// Writer is the sole producer of a SPSC region. It must not be used from
// more than one goroutine, and only one [Reservation] may be live at a
// time.
type Writer struct {
	_       pad
	header  *Header
	payload []byte
}

// NewWriter initializes region as a fresh SPSC buffer and returns a Writer
// over it. The caller must be the only initializer of region; any existing
// Reader must attach afterward via [NewReader].
func NewWriter(region []byte) (*Writer, error) {
	h, payload, err := CreateHeader(region)
	if err != nil {
		return nil, err
	}
	return &Writer{header: h, payload: payload}, nil
}

// Header returns the writer's control block, for diagnostics and testing.
func (w *Writer) Header() *Header {
	return w.header
}

// Cap returns the fixed payload capacity in bytes. A reservation in the
// tail may run up to the end of the payload, so a buffer filled in one
// linear run from offset 0 holds Cap() readable bytes. Reservations that
// wrap to the head, or that fill the gap in front of the read cursor,
// always leave one byte free before that cursor.
func (w *Writer) Cap() int {
	return int(w.header.bufferSize)
}

// Reserve requests a contiguous run of length bytes to write into. It
// returns [ErrNoSpace] if no run of that length is currently free; this is
// a normal, recoverable outcome, not a failure. The returned Reservation
// must be released (typically via defer) before the next call to Reserve.
func (w *Writer) Reserve(length int) (*Reservation, error) {
	l := uint64(length)
	b := w.header.bufferSize
	write := w.header.write.LoadRelaxed()
	read := w.header.read.LoadAcquire()

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

func (w *Writer) reservation(start, length uint64, wraparound bool) *Reservation {
	return &Reservation{c: w, payload: w.payload, start: start, length: length, wraparound: wraparound}
}

func (w *Writer) commitReservation(start, length uint64, wraparound bool) {
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
