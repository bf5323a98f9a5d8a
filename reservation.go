// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bipring

// committer is implemented by [Writer] and [SPMCWriter]. It lets
// [Reservation] commit through either writer shape without the core
// needing a generic writer type: the bip-buffer only ever has these two
// concrete shapes, so an interface is simpler than a type parameter here.
type committer interface {
	commitReservation(start, length uint64, wraparound bool)
}

// noCopy causes `go vet`'s -copylocks analysis to flag accidental copies
// of a [Reservation], the same way it flags a copied sync.Mutex. Go has no
// non-copyable types and no destructors, so this is the closest idiomatic
// stand-in for the non-movable, scope-exit-committing reservation handle
// this package's C++ ancestor expresses with a deleted copy constructor
// and unique_ptr-driven RAII.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Reservation is a scoped capability over one in-flight write. It must be
// released exactly once, typically via defer, which commits any bytes
// still reserved so a reader becomes able to observe them. A Reservation
// must not outlive the Writer or SPMCWriter that created it, and at most
// one Reservation may be live per writer at a time.
type Reservation struct {
	_ noCopy

	c          committer
	payload    []byte
	start      uint64
	length     uint64
	wraparound bool
	released   bool
}

// Data returns the reserved byte slice. Its contents are undefined until
// the caller fills them; the slice becomes visible to readers only once
// Release is called with a nonzero Size.
func (r *Reservation) Data() []byte {
	return r.payload[r.start : r.start+r.length]
}

// Size returns the reservation's current length in bytes.
func (r *Reservation) Size() int {
	return int(r.length)
}

// Truncate shrinks the reservation to newSize bytes. It reports whether
// the truncation was accepted; it is rejected if newSize exceeds the
// current size or the reservation was already released. Truncating to 0
// has the same effect as Cancel.
func (r *Reservation) Truncate(newSize int) bool {
	if r.released || newSize < 0 || uint64(newSize) > r.length {
		return false
	}
	r.length = uint64(newSize)
	return true
}

// Cancel discards the reservation: the subsequent Release becomes a no-op
// and no cursor state changes.
func (r *Reservation) Cancel() {
	if r.released {
		return
	}
	r.length = 0
}

// Release commits the reservation, or does nothing if it was canceled or
// truncated to zero. Release is idempotent: calling it again after the
// first call has no further effect. Callers should defer Release
// immediately after a successful Reserve.
func (r *Reservation) Release() {
	if r.released {
		return
	}
	r.released = true
	if r.length == 0 {
		return
	}
	r.c.commitReservation(r.start, r.length, r.wraparound)
}
