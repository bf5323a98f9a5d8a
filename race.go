// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package bipring

// RaceEnabled is true when the race detector is active.
// Used by tests to skip concurrent stress tests, which trigger false
// positives: the race detector tracks explicit synchronization primitives,
// not happens-before relationships established through acquire/release
// orderings on independent cursor fields.
const RaceEnabled = true
