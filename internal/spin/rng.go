// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package spin

import "math/rand/v2"

// Source yields floats in [0, 1) used to pick among wording alternatives.
// The renderer takes its source as an explicit parameter so determinism
// is enforced by the signature rather than by convention.
type Source interface {
	Float64() float64
}

// FNV-1a 32-bit constants.
const (
	fnvOffset32 uint32 = 0x811c9dc5
	fnvPrime32  uint32 = 0x01000193
)

// hashSeed derives a 32-bit seed from a seed key using FNV-1a,
// byte by byte. The hash is fixed so the same key produces the same
// seed on every machine and in every process.
func hashSeed(key string) uint32 {
	h := fnvOffset32
	for i := 0; i < len(key); i++ {
		h ^= uint32(key[i])
		h *= fnvPrime32
	}
	return h
}

// seededSource is a mulberry32 generator. It operates purely on unsigned
// 32-bit arithmetic, so its sequence is identical across architectures.
type seededSource struct {
	state uint32
}

// NewSeeded returns a deterministic Source for the given seed key.
// Equal keys always yield equal sequences.
func NewSeeded(seedKey string) Source {
	return &seededSource{state: hashSeed(seedKey)}
}

// Float64 implements Source using the mulberry32 recurrence.
func (s *seededSource) Float64() float64 {
	s.state += 0x6d2b79f5
	z := s.state
	z = (z ^ (z >> 15)) * (z | 1)
	z ^= z + (z^(z>>7))*(z|61)
	z ^= z >> 14
	return float64(z) / 4294967296.0
}

// randomSource draws from the process-wide random generator. It exists
// for preview/demo rendering only and must never back tenant-facing
// persisted pages.
type randomSource struct{}

// NewRandom returns a non-deterministic Source.
func NewRandom() Source {
	return randomSource{}
}

func (randomSource) Float64() float64 {
	return rand.Float64()
}
