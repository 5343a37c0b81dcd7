// Package simd provides popcount kernels for packed bit words.
//
// # Supported Platforms
//
//   - x86-64: POPCNT
//   - ARM64: ASIMD CNT
//
// Runtime CPU feature detection selects the optimal implementation.
// Set BITVEC_SIMD=generic to force the portable SWAR fallback.
//
// # Operations
//
//   - Single word: Popcount, PopcountPrefix
//   - Slices: PopcountWords, PrefixPopcounts
//
// Both kernels produce identical results; the override exists for
// diagnostics and for testing the fallback on hardware that has POPCNT.
package simd
