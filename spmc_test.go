// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bipring_test

import (
	"errors"
	"testing"

	"code.hybscloud.com/bipring"
)

func newSPMCRegion(t *testing.T, readerCount, payloadSize int) []byte {
	t.Helper()
	return make([]byte, 32+8*readerCount+payloadSize)
}

func TestSPMCWriterRespectsSlowestReader(t *testing.T) {
	region := newSPMCRegion(t, 2, 16)
	w, err := bipring.NewSPMCWriter(region, 2)
	if err != nil {
		t.Fatalf("NewSPMCWriter: %v", err)
	}

	fast, err := bipring.NewSPMCReader(region)
	if err != nil {
		t.Fatalf("NewSPMCReader (fast): %v", err)
	}
	slow, err := bipring.NewSPMCReader(region)
	if err != nil {
		t.Fatalf("NewSPMCReader (slow): %v", err)
	}

	res, err := w.Reserve(16)
	if err != nil {
		t.Fatalf("Reserve(16): %v", err)
	}
	res.Release()

	fastData := fast.Read()
	if !fast.Advance(len(fastData)) {
		t.Fatalf("fast.Advance failed")
	}

	// The slow reader has not advanced at all, so the writer must still
	// treat the whole 16 bytes as unreclaimable: no wraparound room exists.
	if _, err := w.Reserve(1); !errors.Is(err, bipring.ErrNoSpace) {
		t.Fatalf("Reserve(1) while slow reader is behind: got err=%v, want ErrNoSpace", err)
	}

	slowData := slow.Read()
	if !slow.Advance(len(slowData)) {
		t.Fatalf("slow.Advance failed")
	}

	// Now both readers have caught up; the writer can reclaim the space.
	res, err = w.Reserve(1)
	if err != nil {
		t.Fatalf("Reserve(1) after both readers caught up: %v", err)
	}
	res.Release()
}

func TestSPMCReaderSlotsAreIndependent(t *testing.T) {
	region := newSPMCRegion(t, 4, 64)
	w, err := bipring.NewSPMCWriter(region, 4)
	if err != nil {
		t.Fatalf("NewSPMCWriter: %v", err)
	}

	// Readers join before anything is committed, so all four see the same
	// reservation once it lands.
	readers := make([]*bipring.SPMCReader, 4)
	for i := range readers {
		r, err := bipring.NewSPMCReader(region)
		if err != nil {
			t.Fatalf("NewSPMCReader(%d): %v", i, err)
		}
		readers[i] = r
	}

	res, _ := w.Reserve(10)
	copy(res.Data(), "0123456789")
	res.Release()

	// Advance each reader by a different amount. If slot addressing ever
	// regressed to the original's buggy pointer arithmetic, these would
	// collide and corrupt each other's cursor.
	for i, r := range readers {
		data := r.Read()
		if got, want := string(data), "0123456789"; got != want {
			t.Fatalf("reader %d: Read() = %q, want %q", i, got, want)
		}
		if !r.Advance(i + 1) {
			t.Fatalf("reader %d: Advance(%d) rejected", i, i+1)
		}
	}

	for i, r := range readers {
		if got, want := r.Offset(), uint64(i+1); got != want {
			t.Fatalf("reader %d: Offset() = %d, want %d", i, got, want)
		}
	}
}

func TestSPMCReaderSlotExhaustionAndRelease(t *testing.T) {
	region := newSPMCRegion(t, 1, 16)
	w, err := bipring.NewSPMCWriter(region, 1)
	if err != nil {
		t.Fatalf("NewSPMCWriter: %v", err)
	}
	_ = w

	r1, err := bipring.NewSPMCReader(region)
	if err != nil {
		t.Fatalf("NewSPMCReader: %v", err)
	}

	if _, err := bipring.NewSPMCReader(region); !errors.Is(err, bipring.ErrNoReaderSlots) {
		t.Fatalf("NewSPMCReader on an exhausted slot table: got err=%v, want ErrNoReaderSlots", err)
	}

	r1.Release()

	r2, err := bipring.NewSPMCReader(region)
	if err != nil {
		t.Fatalf("NewSPMCReader after Release: %v", err)
	}
	_ = r2
}

func TestSPMCReaderJoinsAtCurrentWrite(t *testing.T) {
	region := newSPMCRegion(t, 2, 16)
	w, err := bipring.NewSPMCWriter(region, 2)
	if err != nil {
		t.Fatalf("NewSPMCWriter: %v", err)
	}

	res, _ := w.Reserve(4)
	copy(res.Data(), "ABCD")
	res.Release()

	// A reader attaching now should not see bytes committed before it
	// joined.
	late, err := bipring.NewSPMCReader(region)
	if err != nil {
		t.Fatalf("NewSPMCReader: %v", err)
	}
	if got := late.Read(); len(got) != 0 {
		t.Fatalf("late.Read() = %q, want empty", got)
	}

	res, _ = w.Reserve(2)
	copy(res.Data(), "EF")
	res.Release()

	if got, want := string(late.Read()), "EF"; got != want {
		t.Fatalf("late.Read() = %q, want %q", got, want)
	}
}
