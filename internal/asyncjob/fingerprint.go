// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package asyncjob

import (
	"strconv"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
)

// Generation is a monotonic counter that invalidates every outstanding
// fingerprint when bumped (spec §4.C: "a generation counter invalidates
// cached results"). The zero value is ready to use.
type Generation struct {
	n atomic.Int64
}

// Load returns the current generation value.
func (g *Generation) Load() int64 {
	return g.n.Load()
}

// Bump advances the generation, invalidating every fingerprint computed
// against an earlier value.
func (g *Generation) Bump() int64 {
	return g.n.Add(1)
}

// Fingerprint hashes a job's request parameters together with the
// generation they were computed against, so that two requests are
// considered the same job only if both their parameters and the
// generation they observed match (spec §4.C).
func Fingerprint(params string, generation int64) uint64 {
	h := xxhash.New()
	_, _ = h.WriteString(params)
	_, _ = h.WriteString("|")
	_, _ = h.WriteString(strconv.FormatInt(generation, 10))
	return h.Sum64()
}
