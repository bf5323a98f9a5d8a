// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bipring_test

import (
	"testing"

	"code.hybscloud.com/bipring"
)

func TestReaderAdvanceRejectsPastReadableEnd(t *testing.T) {
	region := newRegion(t, 16)
	w, err := bipring.NewWriter(region)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	res, err := w.Reserve(5)
	if err != nil {
		t.Fatalf("Reserve(5): %v", err)
	}
	res.Release()

	r, err := bipring.NewReader(region)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	data := r.Read()
	if len(data) != 5 {
		t.Fatalf("len(Read()) = %d, want 5", len(data))
	}
	if r.Advance(6) {
		t.Fatalf("Advance(6) accepted for a 5-byte readable slice")
	}
	if got, want := r.Offset(), uint64(0); got != want {
		t.Fatalf("Offset() after rejected Advance = %d, want %d", got, want)
	}

	// The cursor is untouched, so a correctly sized Advance still works.
	if !r.Advance(5) {
		t.Fatalf("Advance(5) rejected after a prior rejected Advance(6)")
	}
}

func TestReaderAdvanceRejectsPastWrappedTail(t *testing.T) {
	region := newRegion(t, 32)
	w, err := bipring.NewWriter(region)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	res, _ := w.Reserve(32)
	res.Release()

	r, err := bipring.NewReader(region)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	r.Read()
	if !r.Advance(2) {
		t.Fatalf("Advance(2) rejected")
	}

	res, err = w.Reserve(1)
	if err != nil {
		t.Fatalf("Reserve(1): %v", err)
	}
	res.Release()

	// The readable slice is the old segment's tail, [2,32): 30 bytes.
	data := r.Read()
	if len(data) != 30 {
		t.Fatalf("len(Read()) = %d, want 30", len(data))
	}
	if r.Advance(31) {
		t.Fatalf("Advance(31) accepted past the 30-byte tail")
	}
}

func TestReaderReadIsIdempotentWithoutAdvance(t *testing.T) {
	region := newRegion(t, 16)
	w, err := bipring.NewWriter(region)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	res, err := w.Reserve(4)
	if err != nil {
		t.Fatalf("Reserve(4): %v", err)
	}
	copy(res.Data(), "abcd")
	res.Release()

	r, err := bipring.NewReader(region)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	first := string(r.Read())
	second := string(r.Read())
	if first != second {
		t.Fatalf("Read() changed between calls without an intervening Advance: %q then %q", first, second)
	}
}
