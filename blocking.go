// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bipring

import (
	"context"

	"code.hybscloud.com/spin"
)

// Reserver is satisfied by [Writer] and [SPMCWriter]. It exists so
// [ReserveBlocking] can wrap either writer shape without depending on a
// concrete type.
type Reserver interface {
	Reserve(length int) (*Reservation, error)
}

// Peeker is satisfied by [Reader] and [SPMCReader]. It exists so
// [ReadBlocking] can wrap either reader shape without depending on a
// concrete type.
type Peeker interface {
	Read() []byte
}

// ReserveBlocking polls Reserve until it succeeds, an error other than
// [ErrNoSpace] occurs, or ctx is done. Between attempts it spins via
// [spin.Wait], a CPU-pause backoff primitive.
//
// The core itself never blocks; this is the supported way to layer
// blocking producer semantics on top of it.
func ReserveBlocking(ctx context.Context, w Reserver, length int) (*Reservation, error) {
	sw := spin.Wait{}
	for {
		res, err := w.Reserve(length)
		if err == nil {
			return res, nil
		}
		if !IsNoSpace(err) {
			return nil, err
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		sw.Once()
	}
}

// ReadBlocking polls Read until it returns a nonempty slice or ctx is
// done. Between attempts it spins via [spin.Wait].
func ReadBlocking(ctx context.Context, r Peeker) ([]byte, error) {
	sw := spin.Wait{}
	for {
		data := r.Read()
		if len(data) > 0 {
			return data, nil
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		sw.Once()
	}
}
