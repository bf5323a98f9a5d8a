// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package bipring provides a lock-free bipartite circular buffer for
// streaming bytes between goroutines, processes, or peers mapping a
// shared memory region.
//
// Two shapes are available:
//
//   - SPSC: single producer ([Writer]), single consumer ([Reader])
//   - SPMC: single producer ([SPMCWriter]), multiple consumers ([SPMCReader])
//
// # Quick Start
//
//	region := make([]byte, 1<<16)
//	w, err := bipring.NewWriter(region)
//	r, err := bipring.NewReader(region)
//
//	res, err := w.Reserve(len(msg))
//	if bipring.IsNoSpace(err) {
//	    // not enough contiguous room right now; try again later
//	}
//	copy(res.Data(), msg)
//	res.Release()
//
//	data := r.Read()      // zero-copy peek, aliases the region
//	process(data)
//	r.Advance(len(data))
//
// # Reservations
//
// Reserve hands out a [Reservation]: a scoped capability over a
// contiguous byte range. It must be released exactly once, typically via
// defer, which is what publishes the bytes to the reader side:
//
//	res, err := w.Reserve(4096)
//	if err != nil {
//	    return err
//	}
//	defer res.Release()
//
//	n := fillFrame(res.Data())
//	res.Truncate(n) // shrink to the bytes actually written
//
// Calling [Reservation.Cancel] before Release discards the reservation
// instead of committing it — no cursor state changes.
//
// # Broadcast (SPMC)
//
//	region := make([]byte, 1<<16)
//	w, err := bipring.NewSPMCWriter(region, 4) // up to 4 readers
//	r1, err := bipring.NewSPMCReader(region)
//	r2, err := bipring.NewSPMCReader(region)
//
// The writer never reclaims a byte until every claimed reader slot has
// advanced past it. A reader that attaches late only observes bytes
// committed after it attached; call [SPMCReader.Release] when a reader
// is done so its slot can be reused by a later one.
//
// # Blocking
//
// Reserve and Read never suspend; both return immediately with a
// not-ready signal ([ErrNoSpace] for Reserve, an empty slice for Read).
// [ReserveBlocking] and [ReadBlocking] layer a context-cancelable
// poll-and-spin loop on top, using [code.hybscloud.com/spin] for the
// backoff between attempts:
//
//	res, err := bipring.ReserveBlocking(ctx, w, len(msg))
//	data, err := bipring.ReadBlocking(ctx, r)
//
// # Shared memory
//
// bipring never allocates or names the backing region itself — any
// []byte works, including one backed by a memory-mapped file shared
// across processes. The sibling package shmregion provides one concrete
// provider for that case.
//
// # Error Handling
//
// [Writer.Reserve] and [SPMCWriter.Reserve] return [ErrNoSpace] when no
// sufficiently large contiguous run is free. This is sourced from
// [code.hybscloud.com/iox] for ecosystem consistency with other queue
// packages:
//
//	for {
//	    res, err := w.Reserve(n)
//	    if err == nil {
//	        break
//	    }
//	    if !bipring.IsNoSpace(err) {
//	        return err // unexpected error
//	    }
//	    runtime.Gosched()
//	}
//
// [ErrInvalidRegion] and [ErrNoReaderSlots] are true failures, not
// retried: a malformed region or an exhausted reader table is a caller
// bug, not backpressure.
//
// # Race Detection
//
// Go's race detector tracks explicit synchronization primitives, not the
// happens-before relationships this package establishes through
// acquire/release orderings on independent cursor fields. Concurrent
// stress tests that exercise the full producer/consumer protocol are
// gated behind [RaceEnabled] and skipped under the race detector for this
// reason; the protocol's correctness rests on the acquire/release
// ordering of the writer's and readers' cursor loads and stores, not on
// anything the detector can observe.
//
// # Dependencies
//
// This package uses [code.hybscloud.com/atomix] for atomic primitives
// with explicit memory ordering, [code.hybscloud.com/iox] for semantic
// errors, and [code.hybscloud.com/spin] for the CPU-pause backoff behind
// [ReserveBlocking] and [ReadBlocking].
package bipring
