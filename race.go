// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package bbq

// RaceEnabled is true when the race detector is active.
// Used by tests to skip stress tests that share atomix counters across
// goroutines, since the detector cannot see atomix memory orderings.
const RaceEnabled = true
