// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bipring_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"code.hybscloud.com/bipring"
)

// TestSPSCStreamRoundTrip pushes a multi-megabyte stream through a buffer
// far smaller than the stream itself, forcing many wraparounds, and checks
// the consumer sees exactly the bytes the producer sent, in order.
func TestSPSCStreamRoundTrip(t *testing.T) {
	if bipring.RaceEnabled {
		t.Skip("skip: lock-free cursor handoff uses cross-variable memory ordering the race detector cannot model")
	}

	const (
		totalBytes = 10 * 1024 * 1024
		chunkSize  = 32
		bufferSize = 96
		timeout    = 10 * time.Second
	)

	region := make([]byte, 32+bufferSize)
	w, err := bipring.NewWriter(region)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	r, err := bipring.NewReader(region)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}

	source := make([]byte, totalBytes)
	for i := range source {
		source[i] = byte(i)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		sent := 0
		for sent < totalBytes {
			n := chunkSize
			if totalBytes-sent < n {
				n = totalBytes - sent
			}
			res, err := bipring.ReserveBlocking(ctx, w, n)
			if err != nil {
				errCh <- err
				return
			}
			copy(res.Data(), source[sent:sent+n])
			res.Release()
			sent += n
		}
		errCh <- nil
	}()

	got := make([]byte, 0, totalBytes)
	deadline := time.Now().Add(timeout)
	for len(got) < totalBytes {
		data := r.Read()
		if len(data) == 0 {
			if time.Now().After(deadline) {
				t.Fatalf("timed out after reading %d/%d bytes", len(got), totalBytes)
			}
			continue
		}
		got = append(got, data...)
		r.Advance(len(data))
	}

	if err := <-errCh; err != nil {
		t.Fatalf("producer: %v", err)
	}
	if !bytes.Equal(got, source) {
		t.Fatalf("stream content mismatch over %d bytes", totalBytes)
	}
}
